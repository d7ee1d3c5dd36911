package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	ledgerapp "github.com/ledgeranchor/backend/internal/application/ledger"
	"github.com/ledgeranchor/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

const defaultStatementKeyPrefix = "ledger:statements:"

// RedisStatementCache shares derived statements across service instances
type RedisStatementCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisStatementCache connects to Redis and verifies the connection
func NewRedisStatementCache(cfg config.RedisConfig, ttl time.Duration) (*RedisStatementCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return NewRedisStatementCacheWithClient(client, "", ttl), nil
}

// NewRedisStatementCacheWithClient creates a cache over an existing client
func NewRedisStatementCacheWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisStatementCache {
	if keyPrefix == "" {
		keyPrefix = defaultStatementKeyPrefix
	}
	if ttl <= 0 {
		ttl = DefaultStatementTTL
	}
	return &RedisStatementCache{client: client, keyPrefix: keyPrefix, ttl: ttl}
}

func (c *RedisStatementCache) key(orgID uuid.UUID) string {
	return c.keyPrefix + orgID.String()
}

func (c *RedisStatementCache) generationKey(orgID uuid.UUID) string {
	return c.keyPrefix + orgID.String() + ":gen"
}

// Get reads and decodes the cached statements of an organization
func (c *RedisStatementCache) Get(ctx context.Context, orgID uuid.UUID) (*ledgerapp.StatementsResponse, bool, error) {
	data, err := c.client.Get(ctx, c.key(orgID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached statements: %w", err)
	}

	var statements ledgerapp.StatementsResponse
	if err := json.Unmarshal(data, &statements); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached statements: %w", err)
	}
	return &statements, true, nil
}

// Generation reads the invalidation counter of an organization, 0 when unset
func (c *RedisStatementCache) Generation(ctx context.Context, orgID uuid.UUID) (uint64, error) {
	return readGeneration(ctx, c.client, c.generationKey(orgID))
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readGeneration(ctx context.Context, cmd stringGetter, key string) (uint64, error) {
	gen, err := cmd.Get(ctx, key).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read statement generation: %w", err)
	}
	return gen, nil
}

// Set encodes and stores the statements with the cache TTL. The write runs
// in a transaction watching the generation key and is dropped when the
// organization was invalidated after generation was read.
func (c *RedisStatementCache) Set(ctx context.Context, orgID uuid.UUID, generation uint64, statements *ledgerapp.StatementsResponse) error {
	data, err := json.Marshal(statements)
	if err != nil {
		return fmt.Errorf("failed to encode statements: %w", err)
	}

	genKey := c.generationKey(orgID)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readGeneration(ctx, tx, genKey)
		if err != nil {
			return err
		}
		if current != generation {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.key(orgID), data, c.ttl)
			return nil
		})
		return err
	}, genKey)
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to cache statements: %w", err)
	}
	return nil
}

// Invalidate deletes the cached statements of an organization and advances
// its generation
func (c *RedisStatementCache) Invalidate(ctx context.Context, orgID uuid.UUID) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, c.generationKey(orgID))
		pipe.Del(ctx, c.key(orgID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to invalidate statements: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisStatementCache) Close() error {
	return c.client.Close()
}

var _ ledgerapp.StatementCache = (*RedisStatementCache)(nil)
