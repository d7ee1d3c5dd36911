package ledger

import (
	"github.com/google/uuid"
	"github.com/ledgeranchor/backend/internal/domain/shared"
)

const (
	// DefaultConfidence is used when the caller gives no confidence score
	DefaultConfidence = 90
	MinConfidence     = 0
	MaxConfidence     = 100
)

// ReconciliationLink associates an external transaction with a ledger entry.
// Several links may exist for the same pair; uniqueness is not enforced.
type ReconciliationLink struct {
	shared.BaseEntity
	OrgID         uuid.UUID
	TransactionID uuid.UUID
	EntryID       uuid.UUID
	Confidence    int
}

// NewReconciliationLink validates the association and creates the link
func NewReconciliationLink(orgID, transactionID, entryID uuid.UUID, confidence int) (*ReconciliationLink, error) {
	if orgID == uuid.Nil {
		return nil, shared.NewValidationError("org_id is required")
	}
	if transactionID == uuid.Nil {
		return nil, shared.NewValidationError("tx_id is required")
	}
	if entryID == uuid.Nil {
		return nil, shared.NewValidationError("entry_id is required")
	}
	if confidence < MinConfidence || confidence > MaxConfidence {
		return nil, shared.NewValidationError("confidence must be between %d and %d", MinConfidence, MaxConfidence)
	}
	return &ReconciliationLink{
		BaseEntity:    shared.NewBaseEntity(),
		OrgID:         orgID,
		TransactionID: transactionID,
		EntryID:       entryID,
		Confidence:    confidence,
	}, nil
}
