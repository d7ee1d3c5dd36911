package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ListFilter restricts list queries to an organization and a row count
type ListFilter struct {
	OrgID *uuid.UUID // nil lists across organizations
	Limit int
}

// OrganizationRepository reads organizations
type OrganizationRepository interface {
	// FindAll returns rows of the organizations table
	FindAll(ctx context.Context, limit int) ([]Organization, error)

	// FindDistinctOrgIDs returns org ids referenced by entries, lines and transactions
	FindDistinctOrgIDs(ctx context.Context, limit int) ([]uuid.UUID, error)
}

// JournalRepository resolves journals
type JournalRepository interface {
	// FindByCode finds a journal by code within an organization, or shared.ErrNotFound
	FindByCode(ctx context.Context, orgID uuid.UUID, code string) (*Journal, error)
}

// AccountRepository resolves accounts
type AccountRepository interface {
	// FindByCode finds an account by code within an organization, or shared.ErrNotFound
	FindByCode(ctx context.Context, orgID uuid.UUID, code string) (*Account, error)
}

// EntryRepository persists entries. There is no update or delete.
type EntryRepository interface {
	// CreateWithLines inserts the entry and all its lines atomically
	CreateWithLines(ctx context.Context, entry *Entry) error

	// FindHeadersInRange returns entries with start <= date < end, ordered by date ascending
	FindHeadersInRange(ctx context.Context, orgID uuid.UUID, start, end time.Time) ([]EntryHeader, error)

	// FindRecent returns the newest entries first
	FindRecent(ctx context.Context, filter ListFilter) ([]EntrySummary, error)
}

// LineRepository reads entry lines joined with their accounts
type LineRepository interface {
	// FindWithAccounts returns up to limit lines of the organization with account code and name
	FindWithAccounts(ctx context.Context, orgID uuid.UUID, limit int) ([]AccountLine, error)
}

// ReconciliationRepository persists reconciliation links
type ReconciliationRepository interface {
	Save(ctx context.Context, link *ReconciliationLink) error
	FindByEntry(ctx context.Context, orgID, entryID uuid.UUID) ([]ReconciliationLink, error)
}

// PeriodAnchorRepository persists period anchors
type PeriodAnchorRepository interface {
	Save(ctx context.Context, anchor *PeriodAnchor) error

	// FindByID finds an anchor of the organization, or shared.ErrNotFound
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*PeriodAnchor, error)

	// FindByPeriod lists anchors of the organization, newest first; an empty period lists all
	FindByPeriod(ctx context.Context, orgID uuid.UUID, period string) ([]PeriodAnchor, error)
}

// NetworkRepository persists blockchain networks
type NetworkRepository interface {
	// FindByName finds a network by name, or shared.ErrNotFound
	FindByName(ctx context.Context, name string) (*Network, error)

	// FindByChainID finds a network by chain id, or shared.ErrNotFound
	FindByChainID(ctx context.Context, chainID int64) (*Network, error)

	Save(ctx context.Context, network *Network) error
}

// TokenRepository persists tokens
type TokenRepository interface {
	// FindBySymbol finds a token on a network, or shared.ErrNotFound
	FindBySymbol(ctx context.Context, networkID uuid.UUID, symbol string) (*Token, error)

	Save(ctx context.Context, token *Token) error
}

// ExternalTransactionRepository persists external transactions
type ExternalTransactionRepository interface {
	Save(ctx context.Context, tx *ExternalTransaction) error

	// FindRecent returns the newest transactions first with token symbol and network name
	FindRecent(ctx context.Context, filter ListFilter) ([]TransactionSummary, error)
}
