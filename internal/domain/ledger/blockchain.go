package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ledgeranchor/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	TransactionStatusConfirmed = "confirmed"
	DefaultTokenDecimals       = 18
)

// Network is a blockchain network known to the service
type Network struct {
	ID        uuid.UUID
	Name      string
	ChainID   int64
	CreatedAt time.Time
}

// NewNetwork creates a network, naming it after the chain id when no name is given
func NewNetwork(name string, chainID int64) *Network {
	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("chain-%d", chainID)
	}
	return &Network{ID: uuid.New(), Name: name, ChainID: chainID, CreatedAt: time.Now()}
}

// Token is an asset on a network
type Token struct {
	ID        uuid.UUID
	NetworkID uuid.UUID
	Symbol    string
	Decimals  int
}

// NewToken creates a token on the given network
func NewToken(networkID uuid.UUID, symbol string, decimals int) *Token {
	if decimals <= 0 {
		decimals = DefaultTokenDecimals
	}
	return &Token{ID: uuid.New(), NetworkID: networkID, Symbol: strings.ToUpper(strings.TrimSpace(symbol)), Decimals: decimals}
}

// ExternalTransaction is an on-chain (here simulated) transfer that may be
// reconciled against ledger entries.
type ExternalTransaction struct {
	shared.BaseEntity
	OrgID       uuid.UUID
	NetworkID   uuid.UUID
	TokenID     uuid.UUID
	TxHash      string
	FromAddr    string
	ToAddr      string
	Amount      decimal.Decimal
	BlockNumber int64
	BlockTime   time.Time
	Status      string
	Simulated   bool
}

// NewSimulatedTransaction creates a confirmed transaction with a synthetic
// hash and a block number derived from the current unix time.
func NewSimulatedTransaction(orgID uuid.UUID, network *Network, token *Token, from, to string, amount decimal.Decimal, now time.Time) (*ExternalTransaction, error) {
	if orgID == uuid.Nil {
		return nil, shared.NewValidationError("org_id is required")
	}
	if amount.IsNegative() {
		return nil, shared.NewValidationError("amount must not be negative")
	}
	tx := &ExternalTransaction{
		BaseEntity:  shared.BaseEntity{ID: uuid.New(), CreatedAt: now},
		OrgID:       orgID,
		NetworkID:   network.ID,
		TokenID:     token.ID,
		TxHash:      "sim_" + uuid.NewString(),
		FromAddr:    from,
		ToAddr:      to,
		Amount:      amount,
		BlockNumber: now.Unix(),
		BlockTime:   now,
		Status:      TransactionStatusConfirmed,
		Simulated:   true,
	}
	return tx, nil
}

// TransactionSummary is a list view of an external transaction
type TransactionSummary struct {
	ID          uuid.UUID
	Amount      decimal.Decimal
	FromAddr    string
	ToAddr      string
	BlockTime   time.Time
	Status      string
	TokenSymbol string
	NetworkName *string
}
