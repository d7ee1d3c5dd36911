package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/metric"
)

// LedgerMetrics records ledger business events as OpenTelemetry instruments.
// It satisfies the application Metrics port.
type LedgerMetrics struct {
	entriesRecorded   *Counter
	entriesRejected   *Counter
	entryLines        *Histogram
	statementsDerived *Counter
	reconciliations   *Counter
	anchorsCreated    *Counter
	anchoredEntries   *Counter
	txSimulated       *Counter
}

// NewLedgerMetrics creates the ledger instruments on meter.
func NewLedgerMetrics(meter metric.Meter) (*LedgerMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	m := &LedgerMetrics{}
	var err error

	counters := []struct {
		dst              **Counter
		name, desc, unit string
	}{
		{&m.entriesRecorded, "ledger_entries_recorded_total", "Journal entries persisted", "{entries}"},
		{&m.entriesRejected, "ledger_entries_rejected_total", "Journal entries rejected by validation", "{entries}"},
		{&m.statementsDerived, "ledger_statements_derived_total", "Statement derivations served", "{statements}"},
		{&m.reconciliations, "ledger_reconciliations_total", "Transaction to entry links created", "{links}"},
		{&m.anchorsCreated, "ledger_period_anchors_total", "Period anchors created", "{anchors}"},
		{&m.anchoredEntries, "ledger_anchored_entries_total", "Entries covered by period anchors", "{entries}"},
		{&m.txSimulated, "ledger_transactions_simulated_total", "Simulated blockchain transactions ingested", "{transactions}"},
	}
	for _, c := range counters {
		if *c.dst, err = NewCounter(meter, c.name, c.desc, c.unit); err != nil {
			return nil, err
		}
	}

	m.entryLines, err = NewHistogram(meter, HistogramOpts{
		Name:        "ledger_entry_lines",
		Description: "Number of lines per recorded journal entry",
		Unit:        "{lines}",
		Boundaries:  LineCountBuckets,
	})
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (m *LedgerMetrics) EntryRecorded(ctx context.Context, lineCount int) {
	m.entriesRecorded.Inc(ctx)
	m.entryLines.Record(ctx, float64(lineCount))
}

func (m *LedgerMetrics) EntryRejected(ctx context.Context, reason string) {
	m.entriesRejected.Inc(ctx, AttrReason.String(reason))
}

func (m *LedgerMetrics) StatementsDerived(ctx context.Context, cacheHit bool) {
	m.statementsDerived.Inc(ctx, AttrCacheHit.Bool(cacheHit))
}

func (m *LedgerMetrics) ReconciliationLinked(ctx context.Context) {
	m.reconciliations.Inc(ctx)
}

func (m *LedgerMetrics) PeriodAnchored(ctx context.Context, entryCount int) {
	m.anchorsCreated.Inc(ctx)
	m.anchoredEntries.Add(ctx, int64(entryCount))
}

func (m *LedgerMetrics) TransactionSimulated(ctx context.Context) {
	m.txSimulated.Inc(ctx)
}
