package ledger

import (
	"context"

	"github.com/ledgeranchor/backend/internal/domain/ledger"
	"github.com/ledgeranchor/backend/internal/domain/shared"
	"github.com/ledgeranchor/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ReconciliationService links external transactions to ledger entries
type ReconciliationService struct {
	links             ledger.ReconciliationRepository
	metrics           Metrics
	logger            *zap.Logger
	defaultConfidence int
}

// ReconciliationServiceConfig holds the dependencies of ReconciliationService
type ReconciliationServiceConfig struct {
	Links             ledger.ReconciliationRepository
	Metrics           Metrics // optional
	Logger            *zap.Logger
	DefaultConfidence int
}

// NewReconciliationService creates a new ReconciliationService
func NewReconciliationService(cfg ReconciliationServiceConfig) *ReconciliationService {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	confidence := cfg.DefaultConfidence
	if confidence <= 0 || confidence > ledger.MaxConfidence {
		confidence = ledger.DefaultConfidence
	}
	return &ReconciliationService{
		links:             cfg.Links,
		metrics:           metrics,
		logger:            logger,
		defaultConfidence: confidence,
	}
}

// Reconcile records a confidence-scored link between an external transaction
// and an entry. Neither the amounts nor existing links are checked.
func (s *ReconciliationService) Reconcile(ctx context.Context, req ReconcileRequest) (*ReconcileResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "reconciliation", "link", telemetry.SpanAttrOrgID, req.OrgID, telemetry.SpanAttrEntryID, req.EntryID)
	defer span.End()

	resp, err := s.reconcile(ctx, req)
	telemetry.RecordError(span, err)
	return resp, err
}

func (s *ReconciliationService) reconcile(ctx context.Context, req ReconcileRequest) (*ReconcileResponse, error) {
	orgID, err := parseID("org_id", req.OrgID)
	if err != nil {
		return nil, err
	}
	txID, err := parseID("tx_id", req.TxID)
	if err != nil {
		return nil, err
	}
	entryID, err := parseID("entry_id", req.EntryID)
	if err != nil {
		return nil, err
	}

	confidence := s.defaultConfidence
	if req.Confidence != nil {
		confidence = *req.Confidence
	}

	link, err := ledger.NewReconciliationLink(orgID, txID, entryID, confidence)
	if err != nil {
		return nil, err
	}
	if err := s.links.Save(ctx, link); err != nil {
		return nil, shared.WrapStoreError("insert reconciliation link", err)
	}
	s.metrics.ReconciliationLinked(ctx)

	s.logger.Info("Reconciliation link created",
		zap.String("link_id", link.ID.String()),
		zap.String("org_id", orgID.String()),
		zap.String("tx_id", txID.String()),
		zap.String("entry_id", entryID.String()),
		zap.Int("confidence", confidence))

	resp := toReconcileResponse(*link)
	return &resp, nil
}

// ListLinks returns the reconciliation links of an entry, oldest first
func (s *ReconciliationService) ListLinks(ctx context.Context, orgID, entryID string) ([]ReconcileResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "reconciliation", "list", telemetry.SpanAttrOrgID, orgID, telemetry.SpanAttrEntryID, entryID)
	defer span.End()

	resp, err := s.listLinks(ctx, orgID, entryID)
	telemetry.RecordError(span, err)
	return resp, err
}

func (s *ReconciliationService) listLinks(ctx context.Context, orgID, entryID string) ([]ReconcileResponse, error) {
	org, err := parseID("org_id", orgID)
	if err != nil {
		return nil, err
	}
	entry, err := parseID("entry_id", entryID)
	if err != nil {
		return nil, err
	}

	links, err := s.links.FindByEntry(ctx, org, entry)
	if err != nil {
		return nil, shared.WrapStoreError("query reconciliation links", err)
	}
	resp := make([]ReconcileResponse, 0, len(links))
	for _, l := range links {
		resp = append(resp, toReconcileResponse(l))
	}
	return resp, nil
}

func toReconcileResponse(link ledger.ReconciliationLink) ReconcileResponse {
	return ReconcileResponse{
		ID:         link.ID,
		OrgID:      link.OrgID,
		TxID:       link.TransactionID,
		EntryID:    link.EntryID,
		Confidence: link.Confidence,
	}
}
