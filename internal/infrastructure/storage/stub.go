// Package storage publishes period anchor manifests outside the ledger database.
package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	ledgerapp "github.com/ledgeranchor/backend/internal/application/ledger"
)

const (
	stubExternalRefPrefix = "sim_cid_"
	simulatedTxRefPrefix  = "sim_anchor_"
)

// StubAnchorPublisher simulates publication: it stores nothing and returns
// synthetic content and transaction references.
type StubAnchorPublisher struct{}

// NewStubAnchorPublisher creates a new StubAnchorPublisher
func NewStubAnchorPublisher() *StubAnchorPublisher {
	return &StubAnchorPublisher{}
}

// Publish returns sim_cid_<uuid> and sim_anchor_<uuid> references
func (p *StubAnchorPublisher) Publish(_ context.Context, manifest ledgerapp.AnchorManifest) (*ledgerapp.PublishResult, error) {
	if manifest.AnchorID == uuid.Nil {
		return nil, errors.New("anchor id is required")
	}
	return &ledgerapp.PublishResult{
		ExternalRef: stubExternalRefPrefix + uuid.NewString(),
		AnchorTxRef: simulatedTxRef(),
	}, nil
}

// simulatedTxRef stands in for an on-chain anchoring transaction
func simulatedTxRef() string {
	return simulatedTxRefPrefix + uuid.NewString()
}

var _ ledgerapp.AnchorPublisher = (*StubAnchorPublisher)(nil)
