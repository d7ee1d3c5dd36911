package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// StatementCache caches derived statements per organization.
// Implementations must be safe for concurrent use.
//
// Every Invalidate advances the organization's generation. Set stores a
// result only while the generation read before the lines were loaded is
// still current, so a derivation that raced a write is never cached.
type StatementCache interface {
	// Get returns the cached statements and whether they were found
	Get(ctx context.Context, orgID uuid.UUID) (*StatementsResponse, bool, error)
	// Generation returns the current invalidation generation of the organization
	Generation(ctx context.Context, orgID uuid.UUID) (uint64, error)
	// Set stores statements derived at generation; it is a no-op when the
	// generation has moved on
	Set(ctx context.Context, orgID uuid.UUID, generation uint64, statements *StatementsResponse) error
	Invalidate(ctx context.Context, orgID uuid.UUID) error
}

// AnchorManifest is the document published for a period anchor
type AnchorManifest struct {
	AnchorID   uuid.UUID `json:"anchor_id"`
	OrgID      uuid.UUID `json:"org_id"`
	Period     string    `json:"period"`
	Commitment string    `json:"commitment"`
	EntryCount int       `json:"entry_count"`
	EntryIDs   []string  `json:"entry_ids"`
	Network    string    `json:"network,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// PublishResult holds the references returned by an AnchorPublisher
type PublishResult struct {
	// ExternalRef locates the published manifest (content id or object key)
	ExternalRef string
	// AnchorTxRef is the reference of the on-chain anchoring transaction
	AnchorTxRef string
}

// AnchorPublisher publishes anchor manifests outside the ledger store
type AnchorPublisher interface {
	Publish(ctx context.Context, manifest AnchorManifest) (*PublishResult, error)
}

// Metrics records ledger business events
type Metrics interface {
	EntryRecorded(ctx context.Context, lineCount int)
	EntryRejected(ctx context.Context, reason string)
	StatementsDerived(ctx context.Context, cacheHit bool)
	ReconciliationLinked(ctx context.Context)
	PeriodAnchored(ctx context.Context, entryCount int)
	TransactionSimulated(ctx context.Context)
}

// NoopMetrics discards all events
type NoopMetrics struct{}

func (NoopMetrics) EntryRecorded(context.Context, int) {}
func (NoopMetrics) EntryRejected(context.Context, string) {}
func (NoopMetrics) StatementsDerived(context.Context, bool) {}
func (NoopMetrics) ReconciliationLinked(context.Context) {}
func (NoopMetrics) PeriodAnchored(context.Context, int) {}
func (NoopMetrics) TransactionSimulated(context.Context) {}
