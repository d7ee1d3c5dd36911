package ledger

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/ledgeranchor/backend/internal/domain/ledger"
	"github.com/ledgeranchor/backend/internal/domain/shared"
	"github.com/ledgeranchor/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// AnchorService computes and records period commitments
type AnchorService struct {
	entries   ledger.EntryRepository
	anchors   ledger.PeriodAnchorRepository
	networks  ledger.NetworkRepository
	publisher AnchorPublisher
	metrics   Metrics
	logger    *zap.Logger
}

// AnchorServiceConfig holds the dependencies of AnchorService
type AnchorServiceConfig struct {
	Entries   ledger.EntryRepository
	Anchors   ledger.PeriodAnchorRepository
	Networks  ledger.NetworkRepository
	Publisher AnchorPublisher
	Metrics   Metrics // optional
	Logger    *zap.Logger
}

// NewAnchorService creates a new AnchorService
func NewAnchorService(cfg AnchorServiceConfig) *AnchorService {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	return &AnchorService{
		entries:   cfg.Entries,
		anchors:   cfg.Anchors,
		networks:  cfg.Networks,
		publisher: cfg.Publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// AnchorPeriod computes the chained digest of the organization's entries dated
// within the period and records a new anchor. Anchoring the same period twice
// creates two anchors. An unknown network name leaves the network unset.
func (s *AnchorService) AnchorPeriod(ctx context.Context, req AnchorPeriodRequest) (*AnchorResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "anchor", "create", telemetry.SpanAttrOrgID, req.OrgID, telemetry.SpanAttrPeriod, req.Period)
	defer span.End()

	resp, err := s.anchorPeriod(ctx, req)
	telemetry.RecordError(span, err)
	return resp, err
}

func (s *AnchorService) anchorPeriod(ctx context.Context, req AnchorPeriodRequest) (*AnchorResponse, error) {
	orgID, err := parseID("org_id", req.OrgID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Period) == "" {
		return nil, shared.NewValidationError("period is required")
	}
	period, err := ledger.ParsePeriod(req.Period)
	if err != nil {
		return nil, err
	}

	headers, err := s.entries.FindHeadersInRange(ctx, orgID, period.Start(), period.End())
	if err != nil {
		return nil, shared.WrapStoreError("query period entries", err)
	}
	commitment, err := ledger.ChainedDigest(headers)
	if err != nil {
		return nil, err
	}

	networkName := strings.TrimSpace(req.NetworkName)
	networkID, err := s.resolveNetwork(ctx, networkName)
	if err != nil {
		return nil, err
	}

	anchor := ledger.NewPeriodAnchor(orgID, period, commitment, len(headers), networkID)

	manifest := AnchorManifest{
		AnchorID:   anchor.ID,
		OrgID:      orgID,
		Period:     anchor.Period,
		Commitment: commitment,
		EntryCount: len(headers),
		EntryIDs:   make([]string, 0, len(headers)),
		CreatedAt:  anchor.CreatedAt,
	}
	if networkID != nil {
		manifest.Network = networkName
	}
	for _, h := range headers {
		manifest.EntryIDs = append(manifest.EntryIDs, h.ID.String())
	}

	published, err := s.publisher.Publish(ctx, manifest)
	if err != nil {
		return nil, shared.WrapStoreError("publish anchor manifest", err)
	}
	anchor.ExternalRef = published.ExternalRef
	anchor.AnchorTxRef = published.AnchorTxRef

	if err := s.anchors.Save(ctx, anchor); err != nil {
		return nil, shared.WrapStoreError("insert period anchor", err)
	}
	s.metrics.PeriodAnchored(ctx, anchor.EntryCount)

	s.logger.Info("Period anchored",
		zap.String("anchor_id", anchor.ID.String()),
		zap.String("org_id", orgID.String()),
		zap.String("period", anchor.Period),
		zap.String("commitment", commitment),
		zap.Int("entry_count", anchor.EntryCount),
		zap.String("external_ref", anchor.ExternalRef))

	return toAnchorResponse(anchor), nil
}

// ListAnchors returns the anchors of an organization, optionally for one period
func (s *AnchorService) ListAnchors(ctx context.Context, orgID, period string) ([]AnchorResponse, error) {
	org, err := parseID("org_id", orgID)
	if err != nil {
		return nil, err
	}
	if period = strings.TrimSpace(period); period != "" {
		p, err := ledger.ParsePeriod(period)
		if err != nil {
			return nil, err
		}
		period = p.String()
	}

	anchors, err := s.anchors.FindByPeriod(ctx, org, period)
	if err != nil {
		return nil, shared.WrapStoreError("list period anchors", err)
	}
	out := make([]AnchorResponse, 0, len(anchors))
	for i := range anchors {
		out = append(out, *toAnchorResponse(&anchors[i]))
	}
	return out, nil
}

// VerifyAnchor recomputes the commitment of the anchored period from the
// current entries and compares it with the stored one.
func (s *AnchorService) VerifyAnchor(ctx context.Context, orgID, anchorID string) (*AnchorVerificationResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "anchor", "verify", telemetry.SpanAttrOrgID, orgID, telemetry.SpanAttrAnchorID, anchorID)
	defer span.End()

	resp, err := s.verifyAnchor(ctx, orgID, anchorID)
	telemetry.RecordError(span, err)
	return resp, err
}

func (s *AnchorService) verifyAnchor(ctx context.Context, orgID, anchorID string) (*AnchorVerificationResponse, error) {
	org, err := parseID("org_id", orgID)
	if err != nil {
		return nil, err
	}
	id, err := parseID("anchor_id", anchorID)
	if err != nil {
		return nil, err
	}

	anchor, err := s.anchors.FindByID(ctx, org, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("anchor %s not found for organization %s", id, org)
		}
		return nil, shared.WrapStoreError("find period anchor", err)
	}

	period, err := ledger.ParsePeriod(anchor.Period)
	if err != nil {
		return nil, err
	}
	headers, err := s.entries.FindHeadersInRange(ctx, org, period.Start(), period.End())
	if err != nil {
		return nil, shared.WrapStoreError("query period entries", err)
	}
	current, err := ledger.ChainedDigest(headers)
	if err != nil {
		return nil, err
	}

	verification := ledger.AnchorVerification{
		AnchorID:          anchor.ID,
		Period:            anchor.Period,
		StoredCommitment:  anchor.Commitment,
		CurrentCommitment: current,
		StoredEntryCount:  anchor.EntryCount,
		CurrentEntryCount: len(headers),
	}
	if !verification.Matches() {
		s.logger.Warn("Period anchor no longer matches ledger",
			zap.String("anchor_id", anchor.ID.String()),
			zap.String("org_id", org.String()),
			zap.String("period", anchor.Period))
	}

	return &AnchorVerificationResponse{
		AnchorID:          verification.AnchorID,
		Period:            verification.Period,
		StoredCommitment:  verification.StoredCommitment,
		CurrentCommitment: verification.CurrentCommitment,
		StoredEntryCount:  verification.StoredEntryCount,
		CurrentEntryCount: verification.CurrentEntryCount,
		Valid:             verification.Matches(),
	}, nil
}

func (s *AnchorService) resolveNetwork(ctx context.Context, name string) (*uuid.UUID, error) {
	if name == "" || s.networks == nil {
		return nil, nil
	}
	network, err := s.networks.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Debug("Anchor network not found, leaving unset", zap.String("network", name))
			return nil, nil
		}
		return nil, shared.WrapStoreError("find network", err)
	}
	return &network.ID, nil
}
