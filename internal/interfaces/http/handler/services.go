package handler

import (
	"context"

	ledgerapp "github.com/ledgeranchor/backend/internal/application/ledger"
)

// EntryService is the part of the entry service used by EntryHandler
type EntryService interface {
	RecordEntry(ctx context.Context, req ledgerapp.RecordEntryRequest) (*ledgerapp.RecordEntryResponse, error)
	ListRecentEntries(ctx context.Context, orgID string) ([]ledgerapp.EntrySummaryResponse, error)
}

// StatementService derives financial statements
type StatementService interface {
	GetStatements(ctx context.Context, orgID string) (*ledgerapp.StatementsResponse, error)
}

// ReconciliationService links transactions to entries
type ReconciliationService interface {
	Reconcile(ctx context.Context, req ledgerapp.ReconcileRequest) (*ledgerapp.ReconcileResponse, error)
	ListLinks(ctx context.Context, orgID, entryID string) ([]ledgerapp.ReconcileResponse, error)
}

// AnchorService anchors and verifies periods
type AnchorService interface {
	AnchorPeriod(ctx context.Context, req ledgerapp.AnchorPeriodRequest) (*ledgerapp.AnchorResponse, error)
	ListAnchors(ctx context.Context, orgID, period string) ([]ledgerapp.AnchorResponse, error)
	VerifyAnchor(ctx context.Context, orgID, anchorID string) (*ledgerapp.AnchorVerificationResponse, error)
}

// TransactionService simulates and lists external transactions
type TransactionService interface {
	SimulateTransaction(ctx context.Context, req ledgerapp.SimulateTransactionRequest) (*ledgerapp.TransactionResponse, error)
	ListTransactions(ctx context.Context, orgID string) ([]ledgerapp.TransactionResponse, error)
}

// OrganizationService lists organizations
type OrganizationService interface {
	ListOrganizations(ctx context.Context) ([]ledgerapp.OrganizationResponse, error)
}

var (
	_ EntryService          = (*ledgerapp.EntryService)(nil)
	_ StatementService      = (*ledgerapp.StatementService)(nil)
	_ ReconciliationService = (*ledgerapp.ReconciliationService)(nil)
	_ AnchorService         = (*ledgerapp.AnchorService)(nil)
	_ TransactionService    = (*ledgerapp.TransactionService)(nil)
	_ OrganizationService   = (*ledgerapp.OrganizationService)(nil)
)
