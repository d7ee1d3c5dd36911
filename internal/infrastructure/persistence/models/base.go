package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/ledgeranchor/backend/internal/domain/shared"
)

// BaseModel provides the identity columns of append-only ledger records.
// Rows are inserted once and never updated, so there is no updated_at.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null;index"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
}

// OrgModel is a BaseModel owned by an organization
type OrgModel struct {
	BaseModel
	OrgID uuid.UUID `gorm:"type:uuid;not null;index"`
}
