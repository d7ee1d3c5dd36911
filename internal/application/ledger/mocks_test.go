package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ledgeranchor/backend/internal/domain/ledger"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) FindByCode(ctx context.Context, orgID uuid.UUID, code string) (*ledger.Journal, error) {
	args := m.Called(ctx, orgID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Journal), args.Error(1)
}

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindByCode(ctx context.Context, orgID uuid.UUID, code string) (*ledger.Account, error) {
	args := m.Called(ctx, orgID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Account), args.Error(1)
}

type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) CreateWithLines(ctx context.Context, entry *ledger.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) FindHeadersInRange(ctx context.Context, orgID uuid.UUID, start, end time.Time) ([]ledger.EntryHeader, error) {
	args := m.Called(ctx, orgID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.EntryHeader), args.Error(1)
}

func (m *MockEntryRepository) FindRecent(ctx context.Context, filter ledger.ListFilter) ([]ledger.EntrySummary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.EntrySummary), args.Error(1)
}

type MockLineRepository struct {
	mock.Mock
}

func (m *MockLineRepository) FindWithAccounts(ctx context.Context, orgID uuid.UUID, limit int) ([]ledger.AccountLine, error) {
	args := m.Called(ctx, orgID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.AccountLine), args.Error(1)
}

type MockReconciliationRepository struct {
	mock.Mock
}

func (m *MockReconciliationRepository) Save(ctx context.Context, link *ledger.ReconciliationLink) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockReconciliationRepository) FindByEntry(ctx context.Context, orgID, entryID uuid.UUID) ([]ledger.ReconciliationLink, error) {
	args := m.Called(ctx, orgID, entryID)
	return args.Get(0).([]ledger.ReconciliationLink), args.Error(1)
}

type MockPeriodAnchorRepository struct {
	mock.Mock
}

func (m *MockPeriodAnchorRepository) Save(ctx context.Context, anchor *ledger.PeriodAnchor) error {
	args := m.Called(ctx, anchor)
	return args.Error(0)
}

func (m *MockPeriodAnchorRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*ledger.PeriodAnchor, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.PeriodAnchor), args.Error(1)
}

func (m *MockPeriodAnchorRepository) FindByPeriod(ctx context.Context, orgID uuid.UUID, period string) ([]ledger.PeriodAnchor, error) {
	args := m.Called(ctx, orgID, period)
	return args.Get(0).([]ledger.PeriodAnchor), args.Error(1)
}

type MockNetworkRepository struct {
	mock.Mock
}

func (m *MockNetworkRepository) FindByName(ctx context.Context, name string) (*ledger.Network, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Network), args.Error(1)
}

func (m *MockNetworkRepository) FindByChainID(ctx context.Context, chainID int64) (*ledger.Network, error) {
	args := m.Called(ctx, chainID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Network), args.Error(1)
}

func (m *MockNetworkRepository) Save(ctx context.Context, network *ledger.Network) error {
	args := m.Called(ctx, network)
	return args.Error(0)
}

type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) FindBySymbol(ctx context.Context, networkID uuid.UUID, symbol string) (*ledger.Token, error) {
	args := m.Called(ctx, networkID, symbol)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Token), args.Error(1)
}

func (m *MockTokenRepository) Save(ctx context.Context, token *ledger.Token) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Save(ctx context.Context, tx *ledger.ExternalTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindRecent(ctx context.Context, filter ledger.ListFilter) ([]ledger.TransactionSummary, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ledger.TransactionSummary), args.Error(1)
}

type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) FindAll(ctx context.Context, limit int) ([]ledger.Organization, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]ledger.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) FindDistinctOrgIDs(ctx context.Context, limit int) ([]uuid.UUID, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

// =============================================================================
// Mock ports
// =============================================================================

type MockStatementCache struct {
	mock.Mock
}

func (m *MockStatementCache) Get(ctx context.Context, orgID uuid.UUID) (*StatementsResponse, bool, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*StatementsResponse), args.Bool(1), args.Error(2)
}

func (m *MockStatementCache) Generation(ctx context.Context, orgID uuid.UUID) (uint64, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockStatementCache) Set(ctx context.Context, orgID uuid.UUID, generation uint64, statements *StatementsResponse) error {
	args := m.Called(ctx, orgID, generation, statements)
	return args.Error(0)
}

func (m *MockStatementCache) Invalidate(ctx context.Context, orgID uuid.UUID) error {
	args := m.Called(ctx, orgID)
	return args.Error(0)
}

type MockAnchorPublisher struct {
	mock.Mock
}

func (m *MockAnchorPublisher) Publish(ctx context.Context, manifest AnchorManifest) (*PublishResult, error) {
	args := m.Called(ctx, manifest)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PublishResult), args.Error(1)
}

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) EntryRecorded(ctx context.Context, lineCount int) {
	m.Called(ctx, lineCount)
}

func (m *MockMetrics) EntryRejected(ctx context.Context, reason string) {
	m.Called(ctx, reason)
}

func (m *MockMetrics) StatementsDerived(ctx context.Context, cacheHit bool) {
	m.Called(ctx, cacheHit)
}

func (m *MockMetrics) ReconciliationLinked(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockMetrics) PeriodAnchored(ctx context.Context, entryCount int) {
	m.Called(ctx, entryCount)
}

func (m *MockMetrics) TransactionSimulated(ctx context.Context) {
	m.Called(ctx)
}
