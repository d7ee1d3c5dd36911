package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	ledgerapp "github.com/ledgeranchor/backend/internal/application/ledger"
)

// DefaultStatementTTL is used when no TTL is configured
const DefaultStatementTTL = 5 * time.Minute

type cachedStatements struct {
	value     *ledgerapp.StatementsResponse
	expiresAt time.Time
}

// InMemoryStatementCache caches derived statements per organization in process memory.
// Invalidation is local to the process, so it only suits single-instance
// deployments and tests; use the redis driver when running several instances.
type InMemoryStatementCache struct {
	ttl         time.Duration
	mu          sync.RWMutex
	entries     map[uuid.UUID]cachedStatements
	generations map[uuid.UUID]uint64
	now         func() time.Time
	stopChan    chan struct{}
	wg          sync.WaitGroup
	closeOnce   sync.Once
}

// NewInMemoryStatementCache creates the cache and starts its expiry sweep
func NewInMemoryStatementCache(ttl time.Duration) *InMemoryStatementCache {
	if ttl <= 0 {
		ttl = DefaultStatementTTL
	}
	c := &InMemoryStatementCache{
		ttl:         ttl,
		entries:     make(map[uuid.UUID]cachedStatements),
		generations: make(map[uuid.UUID]uint64),
		now:         time.Now,
		stopChan:    make(chan struct{}),
	}
	c.wg.Add(1)
	go c.sweepLoop()
	return c
}

// Get returns the statements of an organization if present and not expired
func (c *InMemoryStatementCache) Get(_ context.Context, orgID uuid.UUID) (*ledgerapp.StatementsResponse, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[orgID]
	if !ok || !c.now().Before(e.expiresAt) {
		return nil, false, nil
	}
	return e.value, true, nil
}

// Generation returns the number of invalidations seen for the organization
func (c *InMemoryStatementCache) Generation(_ context.Context, orgID uuid.UUID) (uint64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generations[orgID], nil
}

// Set stores the statements of an organization unless it was invalidated
// after generation was read
func (c *InMemoryStatementCache) Set(_ context.Context, orgID uuid.UUID, generation uint64, statements *ledgerapp.StatementsResponse) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[orgID] != generation {
		return nil
	}
	c.entries[orgID] = cachedStatements{value: statements, expiresAt: c.now().Add(c.ttl)}
	return nil
}

// Invalidate drops the statements of an organization and advances its generation
func (c *InMemoryStatementCache) Invalidate(_ context.Context, orgID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, orgID)
	c.generations[orgID]++
	return nil
}

// Close stops the sweep goroutine. Safe to call multiple times.
func (c *InMemoryStatementCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

func (c *InMemoryStatementCache) sweepLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

func (c *InMemoryStatementCache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for orgID, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, orgID)
		}
	}
}

var _ ledgerapp.StatementCache = (*InMemoryStatementCache)(nil)
