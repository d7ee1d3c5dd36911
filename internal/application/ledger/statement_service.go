package ledger

import (
	"context"
	"time"

	"github.com/ledgeranchor/backend/internal/domain/ledger"
	"github.com/ledgeranchor/backend/internal/domain/shared"
	"github.com/ledgeranchor/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

const defaultInsightsMaxLines = 5000

// StatementService derives financial statements for an organization
type StatementService struct {
	lines    ledger.LineRepository
	cache    StatementCache
	metrics  Metrics
	logger   *zap.Logger
	maxLines int
	now      func() time.Time
}

// StatementServiceConfig holds the dependencies of StatementService
type StatementServiceConfig struct {
	Lines    ledger.LineRepository
	Cache    StatementCache // optional
	Metrics  Metrics        // optional
	Logger   *zap.Logger
	MaxLines int
}

// NewStatementService creates a new StatementService
func NewStatementService(cfg StatementServiceConfig) *StatementService {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	maxLines := cfg.MaxLines
	if maxLines <= 0 {
		maxLines = defaultInsightsMaxLines
	}
	return &StatementService{
		lines:    cfg.Lines,
		cache:    cfg.Cache,
		metrics:  metrics,
		logger:   logger,
		maxLines: maxLines,
		now:      time.Now,
	}
}

// GetStatements returns cashflow, P&L and balance sheet for the organization.
// Derivation never fails; only the line query can return an error.
func (s *StatementService) GetStatements(ctx context.Context, orgID string) (*StatementsResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "statements", "derive", telemetry.SpanAttrOrgID, orgID)
	defer span.End()

	resp, err := s.getStatements(ctx, orgID)
	telemetry.RecordError(span, err)
	return resp, err
}

func (s *StatementService) getStatements(ctx context.Context, orgID string) (*StatementsResponse, error) {
	org, err := parseID("org_id", orgID)
	if err != nil {
		return nil, err
	}

	var generation uint64
	cacheable := s.cache != nil
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, org)
		if err != nil {
			s.logger.Warn("Statement cache read failed", zap.String("org_id", org.String()), zap.Error(err))
		} else if ok {
			s.metrics.StatementsDerived(ctx, true)
			return cached, nil
		}
		if generation, err = s.cache.Generation(ctx, org); err != nil {
			s.logger.Warn("Statement cache generation read failed", zap.String("org_id", org.String()), zap.Error(err))
			cacheable = false
		}
	}

	lines, err := s.lines.FindWithAccounts(ctx, org, s.maxLines)
	if err != nil {
		return nil, shared.WrapStoreError("query lines", err)
	}

	usable := make([]ledger.AccountLine, 0, len(lines))
	for _, l := range lines {
		if l.AccountCode != "" {
			usable = append(usable, l)
		}
	}

	var statements ledger.Statements
	telemetry.WithOperationLabels(ctx, "derive_statements", func(context.Context) {
		statements = ledger.DeriveStatements(usable)
	})
	resp := toStatementsResponse(org, len(usable), statements, s.now().UTC())
	if !statements.BalanceSheet.IsBalanced() {
		resp.Warnings = append(resp.Warnings,
			"balance sheet is not balanced: difference "+statements.BalanceSheet.Balance.StringFixed(2))
		s.logger.Warn("Unbalanced balance sheet",
			zap.String("org_id", org.String()),
			zap.String("balance", statements.BalanceSheet.Balance.String()))
	}
	if len(lines) >= s.maxLines {
		resp.Warnings = append(resp.Warnings, "line limit reached, statements may be incomplete")
	}

	if cacheable {
		if err := s.cache.Set(ctx, org, generation, resp); err != nil {
			s.logger.Warn("Statement cache write failed", zap.String("org_id", org.String()), zap.Error(err))
		}
	}
	s.metrics.StatementsDerived(ctx, false)
	return resp, nil
}
