package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ledgeranchor/backend/internal/domain/ledger"
	"github.com/ledgeranchor/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormEntryRepository implements ledger.EntryRepository using GORM
type GormEntryRepository struct {
	db *gorm.DB
}

// NewGormEntryRepository creates a new GormEntryRepository
func NewGormEntryRepository(db *gorm.DB) *GormEntryRepository {
	return &GormEntryRepository{db: db}
}

// CreateWithLines inserts the entry header and its lines in one transaction.
// A failure on any line rolls back the header.
func (r *GormEntryRepository) CreateWithLines(ctx context.Context, entry *ledger.Entry) error {
	model := models.EntryModelFromDomain(entry)
	lines := model.Lines
	model.Lines = nil

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(model).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return nil
		}
		return tx.Omit(clause.Associations).Create(&lines).Error
	})
}

// FindHeadersInRange returns entry headers with start <= entry_date < end.
// Ties on the date are ordered by id so the sequence is stable.
func (r *GormEntryRepository) FindHeadersInRange(ctx context.Context, orgID uuid.UUID, start, end time.Time) ([]ledger.EntryHeader, error) {
	var rows []models.EntryModel
	if err := r.db.WithContext(ctx).
		Select("id", "entry_date", "ref", "org_id").
		Where("org_id = ? AND entry_date >= ? AND entry_date < ?", orgID, start, end).
		Order("entry_date ASC").
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	headers := make([]ledger.EntryHeader, 0, len(rows))
	for _, row := range rows {
		headers = append(headers, ledger.EntryHeader{
			ID:    row.ID,
			Date:  row.EntryDate,
			Ref:   row.Ref,
			OrgID: row.OrgID,
		})
	}
	return headers, nil
}

// FindRecent returns the newest entries first with their journal code
func (r *GormEntryRepository) FindRecent(ctx context.Context, filter ledger.ListFilter) ([]ledger.EntrySummary, error) {
	query := r.db.WithContext(ctx).
		Preload("Journal").
		Order("created_at DESC").
		Limit(filter.Limit)
	if filter.OrgID != nil {
		query = query.Where("org_id = ?", *filter.OrgID)
	}

	var rows []models.EntryModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	summaries := make([]ledger.EntrySummary, 0, len(rows))
	for _, row := range rows {
		s := ledger.EntrySummary{
			ID:        row.ID,
			Date:      row.EntryDate,
			Ref:       row.Ref,
			CreatedAt: row.CreatedAt,
		}
		if row.Journal != nil {
			s.JournalCode = row.Journal.Code
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

// GormLineRepository implements ledger.LineRepository using GORM
type GormLineRepository struct {
	db *gorm.DB
}

// NewGormLineRepository creates a new GormLineRepository
func NewGormLineRepository(db *gorm.DB) *GormLineRepository {
	return &GormLineRepository{db: db}
}

// accountLineRow is the scan target of the line/account join
type accountLineRow struct {
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	AccountCode *string
	AccountName *string
}

// FindWithAccounts returns up to limit lines of the organization joined with
// their account. Lines whose account is missing carry an empty code.
func (r *GormLineRepository) FindWithAccounts(ctx context.Context, orgID uuid.UUID, limit int) ([]ledger.AccountLine, error) {
	var rows []accountLineRow
	if err := r.db.WithContext(ctx).
		Table("accounting_entry_lines AS l").
		Select("l.debit, l.credit, a.code AS account_code, a.name AS account_name").
		Joins("LEFT JOIN accounting_accounts AS a ON a.id = l.account_id").
		Where("l.org_id = ?", orgID).
		Order("l.created_at ASC").
		Order("l.position ASC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	lines := make([]ledger.AccountLine, 0, len(rows))
	for _, row := range rows {
		line := ledger.AccountLine{Debit: row.Debit, Credit: row.Credit}
		if row.AccountCode != nil {
			line.AccountCode = *row.AccountCode
		}
		if row.AccountName != nil {
			line.AccountName = *row.AccountName
		}
		lines = append(lines, line)
	}
	return lines, nil
}
