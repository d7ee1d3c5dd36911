package storage

import (
	"context"
	"fmt"

	ledgerapp "github.com/ledgeranchor/backend/internal/application/ledger"
	"github.com/ledgeranchor/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Publisher drivers accepted by NewAnchorPublisher
const (
	DriverStub = "stub"
	DriverS3   = "s3"
)

// NewAnchorPublisher returns the publisher selected by the storage driver.
// The S3 bucket is created when missing.
func NewAnchorPublisher(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (ledgerapp.AnchorPublisher, error) {
	switch cfg.Driver {
	case "", DriverStub:
		logger.Info("Using simulated anchor publisher")
		return NewStubAnchorPublisher(), nil
	case DriverS3:
		p, err := NewS3AnchorPublisher(ctx, cfg, WithLogger(logger))
		if err != nil {
			return nil, err
		}
		if err := p.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		logger.Info("Using S3 anchor publisher", zap.String("bucket", cfg.Bucket))
		return p, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
