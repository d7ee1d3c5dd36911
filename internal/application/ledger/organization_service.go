package ledger

import (
	"context"

	"github.com/ledgeranchor/backend/internal/domain/ledger"
	"github.com/ledgeranchor/backend/internal/domain/shared"
)

const (
	organizationListLimit = 50
	fallbackOrgScanLimit  = 100
)

// OrganizationService lists organizations available to the ledger
type OrganizationService struct {
	orgs ledger.OrganizationRepository
}

// NewOrganizationService creates a new OrganizationService
func NewOrganizationService(orgs ledger.OrganizationRepository) *OrganizationService {
	return &OrganizationService{orgs: orgs}
}

// ListOrganizations returns the organizations table, or when it is empty,
// the org ids found in ledger data with generated labels.
func (s *OrganizationService) ListOrganizations(ctx context.Context) ([]OrganizationResponse, error) {
	orgs, err := s.orgs.FindAll(ctx, organizationListLimit)
	if err != nil {
		return nil, shared.WrapStoreError("list organizations", err)
	}

	if len(orgs) == 0 {
		ids, err := s.orgs.FindDistinctOrgIDs(ctx, fallbackOrgScanLimit)
		if err != nil {
			return nil, shared.WrapStoreError("list organization ids", err)
		}
		orgs = ledger.FallbackOrganizations(ids)
	}
	if len(orgs) == 0 {
		return nil, shared.NewNotFoundError("no organization available")
	}

	out := make([]OrganizationResponse, 0, len(orgs))
	for _, o := range orgs {
		out = append(out, OrganizationResponse{ID: o.ID, Label: o.Label})
	}
	return out, nil
}
