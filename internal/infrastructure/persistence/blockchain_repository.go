package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ledgeranchor/backend/internal/domain/ledger"
	"github.com/ledgeranchor/backend/internal/domain/shared"
	"github.com/ledgeranchor/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormNetworkRepository implements ledger.NetworkRepository using GORM
type GormNetworkRepository struct {
	db *gorm.DB
}

// NewGormNetworkRepository creates a new GormNetworkRepository
func NewGormNetworkRepository(db *gorm.DB) *GormNetworkRepository {
	return &GormNetworkRepository{db: db}
}

// FindByName finds a network by name
func (r *GormNetworkRepository) FindByName(ctx context.Context, name string) (*ledger.Network, error) {
	return r.findOne(ctx, "name = ?", name)
}

// FindByChainID finds a network by chain id
func (r *GormNetworkRepository) FindByChainID(ctx context.Context, chainID int64) (*ledger.Network, error) {
	return r.findOne(ctx, "chain_id = ?", chainID)
}

func (r *GormNetworkRepository) findOne(ctx context.Context, query string, arg any) (*ledger.Network, error) {
	var model models.NetworkModel
	if err := r.db.WithContext(ctx).Where(query, arg).Order("created_at ASC").First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save inserts a network
func (r *GormNetworkRepository) Save(ctx context.Context, network *ledger.Network) error {
	return r.db.WithContext(ctx).Create(models.NetworkModelFromDomain(network)).Error
}

// GormTokenRepository implements ledger.TokenRepository using GORM
type GormTokenRepository struct {
	db *gorm.DB
}

// NewGormTokenRepository creates a new GormTokenRepository
func NewGormTokenRepository(db *gorm.DB) *GormTokenRepository {
	return &GormTokenRepository{db: db}
}

// FindBySymbol finds a token by symbol on a network
func (r *GormTokenRepository) FindBySymbol(ctx context.Context, networkID uuid.UUID, symbol string) (*ledger.Token, error) {
	var model models.TokenModel
	if err := r.db.WithContext(ctx).
		Where("network_id = ? AND symbol = ?", networkID, symbol).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save inserts a token
func (r *GormTokenRepository) Save(ctx context.Context, token *ledger.Token) error {
	return r.db.WithContext(ctx).Create(models.TokenModelFromDomain(token)).Error
}

// GormTransactionRepository implements ledger.ExternalTransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// Save inserts an external transaction
func (r *GormTransactionRepository) Save(ctx context.Context, tx *ledger.ExternalTransaction) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(models.TransactionModelFromDomain(tx)).Error
}

// FindRecent returns the newest transactions by block time with token and network
func (r *GormTransactionRepository) FindRecent(ctx context.Context, filter ledger.ListFilter) ([]ledger.TransactionSummary, error) {
	query := r.db.WithContext(ctx).
		Preload("Token").
		Preload("Network").
		Order("block_time DESC").
		Limit(filter.Limit)
	if filter.OrgID != nil {
		query = query.Where("org_id = ?", *filter.OrgID)
	}

	var rows []models.TransactionModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	summaries := make([]ledger.TransactionSummary, 0, len(rows))
	for i := range rows {
		summaries = append(summaries, rows[i].ToSummary())
	}
	return summaries, nil
}

// GormReconciliationRepository implements ledger.ReconciliationRepository using GORM
type GormReconciliationRepository struct {
	db *gorm.DB
}

// NewGormReconciliationRepository creates a new GormReconciliationRepository
func NewGormReconciliationRepository(db *gorm.DB) *GormReconciliationRepository {
	return &GormReconciliationRepository{db: db}
}

// Save inserts a link. Duplicate pairs are accepted.
func (r *GormReconciliationRepository) Save(ctx context.Context, link *ledger.ReconciliationLink) error {
	return r.db.WithContext(ctx).Create(models.TxEntryLinkModelFromDomain(link)).Error
}

// FindByEntry lists the links of an entry, oldest first
func (r *GormReconciliationRepository) FindByEntry(ctx context.Context, orgID, entryID uuid.UUID) ([]ledger.ReconciliationLink, error) {
	var rows []models.TxEntryLinkModel
	if err := r.db.WithContext(ctx).
		Where("org_id = ? AND entry_id = ?", orgID, entryID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	links := make([]ledger.ReconciliationLink, 0, len(rows))
	for i := range rows {
		links = append(links, rows[i].ToDomain())
	}
	return links, nil
}

// GormPeriodAnchorRepository implements ledger.PeriodAnchorRepository using GORM
type GormPeriodAnchorRepository struct {
	db *gorm.DB
}

// NewGormPeriodAnchorRepository creates a new GormPeriodAnchorRepository
func NewGormPeriodAnchorRepository(db *gorm.DB) *GormPeriodAnchorRepository {
	return &GormPeriodAnchorRepository{db: db}
}

// Save inserts an anchor. Every call creates a new row.
func (r *GormPeriodAnchorRepository) Save(ctx context.Context, anchor *ledger.PeriodAnchor) error {
	return r.db.WithContext(ctx).Create(models.PeriodAnchorModelFromDomain(anchor)).Error
}

// FindByID finds an anchor of the organization
func (r *GormPeriodAnchorRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*ledger.PeriodAnchor, error) {
	var model models.PeriodAnchorModel
	if err := r.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPeriod lists anchors of the organization, newest first. An empty
// period lists every anchor of the organization.
func (r *GormPeriodAnchorRepository) FindByPeriod(ctx context.Context, orgID uuid.UUID, period string) ([]ledger.PeriodAnchor, error) {
	query := r.db.WithContext(ctx).Where("org_id = ?", orgID)
	if period != "" {
		query = query.Where("period = ?", period)
	}

	var rows []models.PeriodAnchorModel
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	anchors := make([]ledger.PeriodAnchor, 0, len(rows))
	for i := range rows {
		anchors = append(anchors, *rows[i].ToDomain())
	}
	return anchors, nil
}
