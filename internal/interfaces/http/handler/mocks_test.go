package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	ledgerapp "github.com/ledgeranchor/backend/internal/application/ledger"
)

type MockEntryService struct {
	mock.Mock
}

func (m *MockEntryService) RecordEntry(ctx context.Context, req ledgerapp.RecordEntryRequest) (*ledgerapp.RecordEntryResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledgerapp.RecordEntryResponse), args.Error(1)
}

func (m *MockEntryService) ListRecentEntries(ctx context.Context, orgID string) ([]ledgerapp.EntrySummaryResponse, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledgerapp.EntrySummaryResponse), args.Error(1)
}

type MockStatementService struct {
	mock.Mock
}

func (m *MockStatementService) GetStatements(ctx context.Context, orgID string) (*ledgerapp.StatementsResponse, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledgerapp.StatementsResponse), args.Error(1)
}

type MockReconciliationService struct {
	mock.Mock
}

func (m *MockReconciliationService) Reconcile(ctx context.Context, req ledgerapp.ReconcileRequest) (*ledgerapp.ReconcileResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledgerapp.ReconcileResponse), args.Error(1)
}

func (m *MockReconciliationService) ListLinks(ctx context.Context, orgID, entryID string) ([]ledgerapp.ReconcileResponse, error) {
	args := m.Called(ctx, orgID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledgerapp.ReconcileResponse), args.Error(1)
}

type MockAnchorService struct {
	mock.Mock
}

func (m *MockAnchorService) AnchorPeriod(ctx context.Context, req ledgerapp.AnchorPeriodRequest) (*ledgerapp.AnchorResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledgerapp.AnchorResponse), args.Error(1)
}

func (m *MockAnchorService) ListAnchors(ctx context.Context, orgID, period string) ([]ledgerapp.AnchorResponse, error) {
	args := m.Called(ctx, orgID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledgerapp.AnchorResponse), args.Error(1)
}

func (m *MockAnchorService) VerifyAnchor(ctx context.Context, orgID, anchorID string) (*ledgerapp.AnchorVerificationResponse, error) {
	args := m.Called(ctx, orgID, anchorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledgerapp.AnchorVerificationResponse), args.Error(1)
}

type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) SimulateTransaction(ctx context.Context, req ledgerapp.SimulateTransactionRequest) (*ledgerapp.TransactionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledgerapp.TransactionResponse), args.Error(1)
}

func (m *MockTransactionService) ListTransactions(ctx context.Context, orgID string) ([]ledgerapp.TransactionResponse, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledgerapp.TransactionResponse), args.Error(1)
}

type MockOrganizationService struct {
	mock.Mock
}

func (m *MockOrganizationService) ListOrganizations(ctx context.Context) ([]ledgerapp.OrganizationResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledgerapp.OrganizationResponse), args.Error(1)
}

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
