package cache

import (
	"fmt"
	"io"

	ledgerapp "github.com/ledgeranchor/backend/internal/application/ledger"
	"github.com/ledgeranchor/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Cache drivers accepted by NewStatementCache
const (
	DriverNone   = "none"
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// StatementCacheFactory creates the statement cache selected by configuration
type StatementCacheFactory struct {
	ledgerConfig          config.LedgerConfig
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// StatementCacheFactoryOption is a functional option for configuring the factory
type StatementCacheFactoryOption func(*StatementCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) StatementCacheFactoryOption {
	return func(f *StatementCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis falls back to memory.
// Default is true.
func WithInMemoryFallback(allow bool) StatementCacheFactoryOption {
	return func(f *StatementCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewStatementCacheFactory creates a new factory
func NewStatementCacheFactory(ledgerCfg config.LedgerConfig, redisCfg config.RedisConfig, opts ...StatementCacheFactoryOption) *StatementCacheFactory {
	f := &StatementCacheFactory{
		ledgerConfig:          ledgerCfg,
		redisConfig:           redisCfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create returns the configured cache and a closer for its resources.
// The "none" driver returns a nil cache, which disables caching.
func (f *StatementCacheFactory) Create() (ledgerapp.StatementCache, io.Closer, error) {
	ttl := f.ledgerConfig.CacheTTL

	switch f.ledgerConfig.CacheDriver {
	case DriverNone:
		f.logger.Info("statement cache disabled")
		return nil, nopCloser{}, nil
	case "", DriverMemory:
		c := NewInMemoryStatementCache(ttl)
		f.logger.Info("using in-memory statement cache", zap.Duration("ttl", c.ttl))
		return c, c, nil
	case DriverRedis:
		c, err := NewRedisStatementCache(f.redisConfig, ttl)
		if err == nil {
			f.logger.Info("using Redis statement cache", zap.String("addr", f.redisConfig.Addr()))
			return c, c, nil
		}
		if !f.allowInMemoryFallback {
			return nil, nil, fmt.Errorf("redis statement cache unavailable: %w", err)
		}
		f.logger.Warn("Redis unavailable, falling back to in-memory statement cache. "+
			"Instances will not share cached statements.",
			zap.Error(err),
		)
		mem := NewInMemoryStatementCache(ttl)
		return mem, mem, nil
	default:
		return nil, nil, fmt.Errorf("unknown statement cache driver %q", f.ledgerConfig.CacheDriver)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
