package ledger

import (
	"context"
	"errors"
	"strings"

	"github.com/ledgeranchor/backend/internal/domain/ledger"
	"github.com/ledgeranchor/backend/internal/domain/shared"
	"github.com/ledgeranchor/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

const defaultRecentEntriesLimit = 10

// EntryService records and lists ledger entries
type EntryService struct {
	journals    ledger.JournalRepository
	accounts    ledger.AccountRepository
	entries     ledger.EntryRepository
	cache       StatementCache
	metrics     Metrics
	logger      *zap.Logger
	recentLimit int
}

// EntryServiceConfig holds the dependencies of EntryService
type EntryServiceConfig struct {
	Journals    ledger.JournalRepository
	Accounts    ledger.AccountRepository
	Entries     ledger.EntryRepository
	Cache       StatementCache // optional
	Metrics     Metrics        // optional
	Logger      *zap.Logger
	RecentLimit int
}

// NewEntryService creates a new EntryService
func NewEntryService(cfg EntryServiceConfig) *EntryService {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	limit := cfg.RecentLimit
	if limit <= 0 {
		limit = defaultRecentEntriesLimit
	}
	return &EntryService{
		journals:    cfg.Journals,
		accounts:    cfg.Accounts,
		entries:     cfg.Entries,
		cache:       cfg.Cache,
		metrics:     metrics,
		logger:      logger,
		recentLimit: limit,
	}
}

// RecordEntry validates a proposed entry, resolves its journal and accounts,
// and persists the entry with all its lines atomically.
// Account resolution stops at the first unknown code; nothing is written then.
func (s *EntryService) RecordEntry(ctx context.Context, req RecordEntryRequest) (*RecordEntryResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "entry", "record", telemetry.SpanAttrOrgID, req.OrgID, telemetry.SpanAttrLineCount, len(req.Lines))
	defer span.End()

	resp, err := s.recordEntry(ctx, req)
	telemetry.RecordError(span, err)
	return resp, err
}

func (s *EntryService) recordEntry(ctx context.Context, req RecordEntryRequest) (*RecordEntryResponse, error) {
	draft, err := s.toDraft(req)
	if err != nil {
		s.metrics.EntryRejected(ctx, "validation")
		return nil, err
	}

	if err := draft.Validate(); err != nil {
		s.metrics.EntryRejected(ctx, rejectReason(err))
		return nil, err
	}

	journal, err := s.journals.FindByCode(ctx, draft.OrgID, draft.JournalCode)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.metrics.EntryRejected(ctx, "journal_not_found")
			return nil, shared.NewNotFoundError("journal %s not found for organization %s", draft.JournalCode, draft.OrgID)
		}
		return nil, shared.WrapStoreError("find journal", err)
	}

	accounts := make(map[string]*ledger.Account, len(draft.Lines))
	for _, code := range draft.AccountCodes() {
		account, err := s.accounts.FindByCode(ctx, draft.OrgID, code)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				s.metrics.EntryRejected(ctx, "account_not_found")
				return nil, shared.NewNotFoundError("account %s not found for organization %s", code, draft.OrgID)
			}
			return nil, shared.WrapStoreError("find account", err)
		}
		accounts[code] = account
	}

	entry, err := draft.Build(journal, accounts)
	if err != nil {
		return nil, err
	}

	if err := s.entries.CreateWithLines(ctx, entry); err != nil {
		s.metrics.EntryRejected(ctx, "store")
		return nil, shared.WrapStoreError("insert entry", err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, entry.OrgID); err != nil {
			s.logger.Warn("Failed to invalidate statement cache",
				zap.String("org_id", entry.OrgID.String()),
				zap.Error(err))
		}
	}
	s.metrics.EntryRecorded(ctx, len(entry.Lines))

	s.logger.Info("Entry recorded",
		zap.String("entry_id", entry.ID.String()),
		zap.String("org_id", entry.OrgID.String()),
		zap.String("journal_code", entry.JournalCode),
		zap.Int("line_count", len(entry.Lines)),
		zap.String("total", entry.TotalDebit().String()))

	return &RecordEntryResponse{ID: entry.ID}, nil
}

// ListRecentEntries returns the newest entries first, optionally for one organization
func (s *EntryService) ListRecentEntries(ctx context.Context, orgID string) ([]EntrySummaryResponse, error) {
	org, err := parseOptionalID("org_id", orgID)
	if err != nil {
		return nil, err
	}

	summaries, err := s.entries.FindRecent(ctx, ledger.ListFilter{OrgID: org, Limit: s.recentLimit})
	if err != nil {
		return nil, shared.WrapStoreError("list entries", err)
	}

	out := make([]EntrySummaryResponse, 0, len(summaries))
	for _, e := range summaries {
		out = append(out, EntrySummaryResponse{
			ID:          e.ID,
			EntryDate:   e.Date.Format(ledger.DateLayout),
			Ref:         e.Ref,
			JournalCode: e.JournalCode,
		})
	}
	return out, nil
}

func (s *EntryService) toDraft(req RecordEntryRequest) (*ledger.EntryDraft, error) {
	orgID, err := parseID("org_id", req.OrgID)
	if err != nil {
		return nil, err
	}
	lines := make([]ledger.LineDraft, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, ledger.LineDraft{
			AccountCode: l.AccountCode,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Currency:    l.Currency,
			Description: l.Description,
			Analytic:    l.Analytic,
		})
	}
	return &ledger.EntryDraft{
		OrgID:       orgID,
		JournalCode: strings.TrimSpace(req.JournalCode),
		Date:        req.EntryDate,
		Ref:         req.Ref,
		Lines:       lines,
	}, nil
}

func rejectReason(err error) string {
	if errors.Is(err, shared.ErrImbalancedEntry) {
		return "imbalanced"
	}
	return "validation"
}
