package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/ledgeranchor/backend/internal/domain/ledger"
	"github.com/ledgeranchor/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// NetworkModel is the persistence model for blockchain networks
type NetworkModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(100);not null;index"`
	ChainID   int64     `gorm:"not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (NetworkModel) TableName() string {
	return "blockchain_networks"
}

// NetworkModelFromDomain converts a domain Network to a model
func NetworkModelFromDomain(n *ledger.Network) *NetworkModel {
	return &NetworkModel{ID: n.ID, Name: n.Name, ChainID: n.ChainID, CreatedAt: n.CreatedAt}
}

// ToDomain converts the model to a domain Network
func (m *NetworkModel) ToDomain() *ledger.Network {
	return &ledger.Network{ID: m.ID, Name: m.Name, ChainID: m.ChainID, CreatedAt: m.CreatedAt}
}

// TokenModel is the persistence model for blockchain tokens
type TokenModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	NetworkID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_token_network_symbol,priority:1"`
	Symbol    string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_token_network_symbol,priority:2"`
	Decimals  int       `gorm:"not null;default:18"`
}

// TableName returns the table name for GORM
func (TokenModel) TableName() string {
	return "blockchain_tokens"
}

// TokenModelFromDomain converts a domain Token to a model
func TokenModelFromDomain(t *ledger.Token) *TokenModel {
	return &TokenModel{ID: t.ID, NetworkID: t.NetworkID, Symbol: t.Symbol, Decimals: t.Decimals}
}

// ToDomain converts the model to a domain Token
func (m *TokenModel) ToDomain() *ledger.Token {
	return &ledger.Token{ID: m.ID, NetworkID: m.NetworkID, Symbol: m.Symbol, Decimals: m.Decimals}
}

// TransactionModel is the persistence model for external blockchain transactions
type TransactionModel struct {
	OrgModel
	NetworkID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	TokenID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	TxHash      string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	FromAddr    string          `gorm:"type:varchar(100)"`
	ToAddr      string          `gorm:"type:varchar(100)"`
	Amount      decimal.Decimal `gorm:"type:decimal(38,18);not null"`
	BlockNumber int64           `gorm:"not null"`
	BlockTime   time.Time       `gorm:"not null;index"`
	Status      string          `gorm:"type:varchar(20);not null"`
	Simulated   bool            `gorm:"not null;default:false"`
	Token       *TokenModel     `gorm:"foreignKey:TokenID"`
	Network     *NetworkModel   `gorm:"foreignKey:NetworkID"`
}

// TableName returns the table name for GORM
func (TransactionModel) TableName() string {
	return "blockchain_transactions"
}

// TransactionModelFromDomain converts a domain ExternalTransaction to a model
func TransactionModelFromDomain(tx *ledger.ExternalTransaction) *TransactionModel {
	m := &TransactionModel{
		NetworkID:   tx.NetworkID,
		TokenID:     tx.TokenID,
		TxHash:      tx.TxHash,
		FromAddr:    tx.FromAddr,
		ToAddr:      tx.ToAddr,
		Amount:      tx.Amount,
		BlockNumber: tx.BlockNumber,
		BlockTime:   tx.BlockTime,
		Status:      tx.Status,
		Simulated:   tx.Simulated,
	}
	m.FromDomainBaseEntity(tx.BaseEntity)
	m.OrgID = tx.OrgID
	return m
}

// ToSummary converts the model with its loaded associations to a list view
func (m *TransactionModel) ToSummary() ledger.TransactionSummary {
	s := ledger.TransactionSummary{
		ID:        m.ID,
		Amount:    m.Amount,
		FromAddr:  m.FromAddr,
		ToAddr:    m.ToAddr,
		BlockTime: m.BlockTime,
		Status:    m.Status,
	}
	if m.Token != nil {
		s.TokenSymbol = m.Token.Symbol
	}
	if m.Network != nil {
		name := m.Network.Name
		s.NetworkName = &name
	}
	return s
}

// TxEntryLinkModel is the persistence model for reconciliation links
type TxEntryLinkModel struct {
	OrgModel
	TxID       uuid.UUID `gorm:"type:uuid;not null;index"`
	EntryID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Confidence int       `gorm:"not null;default:90"`
}

// TableName returns the table name for GORM
func (TxEntryLinkModel) TableName() string {
	return "blockchain_tx_entry_links"
}

// TxEntryLinkModelFromDomain converts a domain ReconciliationLink to a model
func TxEntryLinkModelFromDomain(l *ledger.ReconciliationLink) *TxEntryLinkModel {
	m := &TxEntryLinkModel{TxID: l.TransactionID, EntryID: l.EntryID, Confidence: l.Confidence}
	m.FromDomainBaseEntity(l.BaseEntity)
	m.OrgID = l.OrgID
	return m
}

// ToDomain converts the model to a domain ReconciliationLink
func (m *TxEntryLinkModel) ToDomain() ledger.ReconciliationLink {
	return ledger.ReconciliationLink{
		BaseEntity:    m.BaseModel.ToDomain(),
		OrgID:         m.OrgID,
		TransactionID: m.TxID,
		EntryID:       m.EntryID,
		Confidence:    m.Confidence,
	}
}

// PeriodAnchorModel is the persistence model for period anchors
type PeriodAnchorModel struct {
	OrgModel
	Period      string     `gorm:"type:varchar(7);not null;index"`
	Commitment  string     `gorm:"type:varchar(64);not null"`
	EntryCount  int        `gorm:"not null;default:0"`
	ExternalRef string     `gorm:"type:varchar(200)"`
	NetworkID   *uuid.UUID `gorm:"type:uuid;index"`
	AnchorTxRef string     `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (PeriodAnchorModel) TableName() string {
	return "blockchain_period_anchors"
}

// PeriodAnchorModelFromDomain converts a domain PeriodAnchor to a model
func PeriodAnchorModelFromDomain(a *ledger.PeriodAnchor) *PeriodAnchorModel {
	m := &PeriodAnchorModel{
		Period:      a.Period,
		Commitment:  a.Commitment,
		EntryCount:  a.EntryCount,
		ExternalRef: a.ExternalRef,
		NetworkID:   a.NetworkID,
		AnchorTxRef: a.AnchorTxRef,
	}
	m.FromDomainBaseEntity(a.BaseEntity)
	m.OrgID = a.OrgID
	return m
}

// ToDomain converts the model to a domain PeriodAnchor
func (m *PeriodAnchorModel) ToDomain() *ledger.PeriodAnchor {
	return &ledger.PeriodAnchor{
		BaseEntity:  shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt},
		OrgID:       m.OrgID,
		Period:      m.Period,
		Commitment:  m.Commitment,
		EntryCount:  m.EntryCount,
		ExternalRef: m.ExternalRef,
		NetworkID:   m.NetworkID,
		AnchorTxRef: m.AnchorTxRef,
	}
}
