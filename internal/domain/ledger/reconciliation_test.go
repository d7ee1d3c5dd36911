package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ledgeranchor/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReconciliationLink(t *testing.T) {
	orgID, txID, entryID := uuid.New(), uuid.New(), uuid.New()

	t.Run("creates link", func(t *testing.T) {
		link, err := NewReconciliationLink(orgID, txID, entryID, DefaultConfidence)
		require.NoError(t, err)
		assert.Equal(t, 90, link.Confidence)
		assert.Equal(t, txID, link.TransactionID)
	})

	t.Run("accepts bounds", func(t *testing.T) {
		_, err := NewReconciliationLink(orgID, txID, entryID, 0)
		assert.NoError(t, err)
		_, err = NewReconciliationLink(orgID, txID, entryID, 100)
		assert.NoError(t, err)
	})

	t.Run("missing ids", func(t *testing.T) {
		_, err := NewReconciliationLink(uuid.Nil, txID, entryID, 90)
		assert.True(t, errors.Is(err, shared.ErrValidation))
		_, err = NewReconciliationLink(orgID, uuid.Nil, entryID, 90)
		assert.True(t, errors.Is(err, shared.ErrValidation))
		_, err = NewReconciliationLink(orgID, txID, uuid.Nil, 90)
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})

	t.Run("confidence out of range", func(t *testing.T) {
		_, err := NewReconciliationLink(orgID, txID, entryID, 101)
		assert.True(t, errors.Is(err, shared.ErrValidation))
		_, err = NewReconciliationLink(orgID, txID, entryID, -1)
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})
}

func TestNewSimulatedTransaction(t *testing.T) {
	network := NewNetwork("", 11155111)
	assert.Equal(t, "chain-11155111", network.Name)
	token := NewToken(network.ID, "usdc", 0)
	assert.Equal(t, "USDC", token.Symbol)
	assert.Equal(t, DefaultTokenDecimals, token.Decimals)

	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	t.Run("confirmed simulated transfer", func(t *testing.T) {
		tx, err := NewSimulatedTransaction(uuid.New(), network, token, "0xfrom", "0xto", dec("12.5"), now)
		require.NoError(t, err)
		assert.Contains(t, tx.TxHash, "sim_")
		assert.Equal(t, now.Unix(), tx.BlockNumber)
		assert.Equal(t, TransactionStatusConfirmed, tx.Status)
		assert.True(t, tx.Simulated)
		assert.Equal(t, network.ID, tx.NetworkID)
	})

	t.Run("requires org", func(t *testing.T) {
		_, err := NewSimulatedTransaction(uuid.Nil, network, token, "", "", dec("1"), now)
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		_, err := NewSimulatedTransaction(uuid.New(), network, token, "", "", dec("-1"), now)
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})
}

func TestFallbackOrganizations(t *testing.T) {
	id := uuid.MustParse("abcdef12-3456-7890-abcd-ef1234567890")
	orgs := FallbackOrganizations([]uuid.UUID{id})
	require.Len(t, orgs, 1)
	assert.Equal(t, "Organization 1 - abcdef12", orgs[0].Label)
}
