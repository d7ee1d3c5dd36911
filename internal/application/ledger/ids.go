package ledger

import (
	"strings"

	"github.com/google/uuid"
	"github.com/ledgeranchor/backend/internal/domain/shared"
)

// parseID parses a required UUID field, returning a validation error naming the field
func parseID(field, value string) (uuid.UUID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return uuid.Nil, shared.NewValidationError("%s is required", field)
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, shared.NewValidationError("%s must be a valid UUID", field)
	}
	return id, nil
}

// parseOptionalID parses an optional UUID filter; blank means no filter
func parseOptionalID(field, value string) (*uuid.UUID, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	id, err := parseID(field, value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
