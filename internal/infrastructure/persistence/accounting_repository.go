package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ledgeranchor/backend/internal/domain/ledger"
	"github.com/ledgeranchor/backend/internal/domain/shared"
	"github.com/ledgeranchor/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOrganizationRepository implements ledger.OrganizationRepository using GORM
type GormOrganizationRepository struct {
	db *gorm.DB
}

// NewGormOrganizationRepository creates a new GormOrganizationRepository
func NewGormOrganizationRepository(db *gorm.DB) *GormOrganizationRepository {
	return &GormOrganizationRepository{db: db}
}

// FindAll returns up to limit rows of the organizations table
func (r *GormOrganizationRepository) FindAll(ctx context.Context, limit int) ([]ledger.Organization, error) {
	var rows []models.OrganizationModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	orgs := make([]ledger.Organization, 0, len(rows))
	for i := range rows {
		orgs = append(orgs, rows[i].ToDomain())
	}
	return orgs, nil
}

// orgIDSources are the tables scanned for organization ids, in order
var orgIDSources = []string{
	models.EntryModel{}.TableName(),
	models.EntryLineModel{}.TableName(),
	models.TransactionModel{}.TableName(),
}

// FindDistinctOrgIDs returns org ids referenced by ledger data, in discovery order.
// Each source table contributes at most limit rows.
func (r *GormOrganizationRepository) FindDistinctOrgIDs(ctx context.Context, limit int) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	for _, table := range orgIDSources {
		var found []uuid.UUID
		if err := r.db.WithContext(ctx).Table(table).
			Where("org_id IS NOT NULL").
			Limit(limit).
			Pluck("org_id", &found).Error; err != nil {
			return nil, fmt.Errorf("find org ids in %s: %w", table, err)
		}
		for _, id := range found {
			if _, ok := seen[id]; ok || id == uuid.Nil {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// GormJournalRepository implements ledger.JournalRepository using GORM
type GormJournalRepository struct {
	db *gorm.DB
}

// NewGormJournalRepository creates a new GormJournalRepository
func NewGormJournalRepository(db *gorm.DB) *GormJournalRepository {
	return &GormJournalRepository{db: db}
}

// FindByCode finds a journal by its code within an organization
func (r *GormJournalRepository) FindByCode(ctx context.Context, orgID uuid.UUID, code string) (*ledger.Journal, error) {
	var model models.JournalModel
	if err := r.db.WithContext(ctx).
		Where("org_id = ? AND code = ?", orgID, code).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// GormAccountRepository implements ledger.AccountRepository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// FindByCode finds an account by its code within an organization
func (r *GormAccountRepository) FindByCode(ctx context.Context, orgID uuid.UUID, code string) (*ledger.Account, error) {
	var model models.AccountModel
	if err := r.db.WithContext(ctx).
		Where("org_id = ? AND code = ?", orgID, code).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}
