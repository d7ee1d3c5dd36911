package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/ledgeranchor/backend/internal/domain/ledger"
	"github.com/ledgeranchor/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOrganizationService_ListOrganizations(t *testing.T) {
	ctx := context.Background()

	t.Run("returns organizations table", func(t *testing.T) {
		repo := new(MockOrganizationRepository)
		id := uuid.New()
		repo.On("FindAll", mock.Anything, 50).Return([]ledger.Organization{{ID: id, Label: "Acme"}}, nil)

		orgs, err := NewOrganizationService(repo).ListOrganizations(ctx)
		require.NoError(t, err)
		require.Len(t, orgs, 1)
		assert.Equal(t, "Acme", orgs[0].Label)
		repo.AssertNotCalled(t, "FindDistinctOrgIDs", mock.Anything, 100)
	})

	t.Run("falls back to org ids in ledger data", func(t *testing.T) {
		repo := new(MockOrganizationRepository)
		id := uuid.MustParse("0f1e2d3c-4b5a-6978-8796-a5b4c3d2e1f0")
		repo.On("FindAll", mock.Anything, 50).Return([]ledger.Organization{}, nil)
		repo.On("FindDistinctOrgIDs", mock.Anything, 100).Return([]uuid.UUID{id}, nil)

		orgs, err := NewOrganizationService(repo).ListOrganizations(ctx)
		require.NoError(t, err)
		require.Len(t, orgs, 1)
		assert.Equal(t, "Organization 1 - 0f1e2d3c", orgs[0].Label)
	})

	t.Run("nothing available", func(t *testing.T) {
		repo := new(MockOrganizationRepository)
		repo.On("FindAll", mock.Anything, 50).Return([]ledger.Organization{}, nil)
		repo.On("FindDistinctOrgIDs", mock.Anything, 100).Return([]uuid.UUID{}, nil)

		_, err := NewOrganizationService(repo).ListOrganizations(ctx)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})

	t.Run("store failure", func(t *testing.T) {
		repo := new(MockOrganizationRepository)
		repo.On("FindAll", mock.Anything, 50).Return([]ledger.Organization{}, errors.New("down"))

		_, err := NewOrganizationService(repo).ListOrganizations(ctx)
		assert.True(t, shared.IsStoreError(err))
	})
}
