package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/ledgeranchor/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// OrganizationModel is the persistence model for organizations
type OrganizationModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(200)"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrganizationModel) TableName() string {
	return "organizations"
}

// ToDomain converts the model to a domain Organization, labeled by name or id
func (m *OrganizationModel) ToDomain() ledger.Organization {
	label := m.Name
	if label == "" {
		label = m.ID.String()
	}
	return ledger.Organization{ID: m.ID, Label: label}
}

// JournalModel is the persistence model for accounting journals
type JournalModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrgID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_journal_org_code,priority:1"`
	Code      string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_journal_org_code,priority:2"`
	Name      string    `gorm:"type:varchar(200)"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (JournalModel) TableName() string {
	return "accounting_journals"
}

// ToDomain converts the model to a domain Journal
func (m *JournalModel) ToDomain() *ledger.Journal {
	return &ledger.Journal{ID: m.ID, OrgID: m.OrgID, Code: m.Code, Name: m.Name}
}

// AccountModel is the persistence model for accounting accounts
type AccountModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrgID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_account_org_code,priority:1"`
	Code      string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_account_org_code,priority:2"`
	Name      string    `gorm:"type:varchar(200);not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "accounting_accounts"
}

// ToDomain converts the model to a domain Account
func (m *AccountModel) ToDomain() *ledger.Account {
	return &ledger.Account{ID: m.ID, OrgID: m.OrgID, Code: m.Code, Name: m.Name}
}

// EntryModel is the persistence model for accounting entries
type EntryModel struct {
	OrgModel
	JournalID uuid.UUID        `gorm:"type:uuid;not null;index"`
	EntryDate time.Time        `gorm:"type:date;not null;index"`
	Ref       *string          `gorm:"type:varchar(100)"`
	Source    string           `gorm:"type:varchar(20);not null;default:'api'"`
	Lines     []EntryLineModel `gorm:"foreignKey:EntryID"`
	Journal   *JournalModel    `gorm:"foreignKey:JournalID"`
}

// TableName returns the table name for GORM
func (EntryModel) TableName() string {
	return "accounting_entries"
}

// EntryModelFromDomain converts a domain Entry with its lines to a model
func EntryModelFromDomain(e *ledger.Entry) *EntryModel {
	m := &EntryModel{
		OrgModel: OrgModel{
			BaseModel: BaseModel{ID: e.ID, CreatedAt: e.CreatedAt},
			OrgID:     e.OrgID,
		},
		JournalID: e.JournalID,
		EntryDate: e.Date,
		Ref:       e.Ref,
		Source:    e.Source,
		Lines:     make([]EntryLineModel, 0, len(e.Lines)),
	}
	for _, l := range e.Lines {
		m.Lines = append(m.Lines, EntryLineModel{
			ID:          l.ID,
			OrgID:       l.OrgID,
			EntryID:     e.ID,
			AccountID:   l.AccountID,
			Position:    l.Position,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Currency:    l.Currency,
			Description: l.Description,
			Analytic:    l.Analytic,
			CreatedAt:   e.CreatedAt,
		})
	}
	return m
}

// EntryLineModel is the persistence model for entry lines
type EntryLineModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrgID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	EntryID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	AccountID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position    int             `gorm:"not null;default:0"`
	Debit       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Credit      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Currency    string          `gorm:"type:varchar(3);not null;default:'EUR'"`
	Description *string         `gorm:"type:text"`
	Analytic    *string         `gorm:"type:varchar(100)"`
	CreatedAt   time.Time       `gorm:"not null"`
	Account     *AccountModel   `gorm:"foreignKey:AccountID"`
}

// TableName returns the table name for GORM
func (EntryLineModel) TableName() string {
	return "accounting_entry_lines"
}

