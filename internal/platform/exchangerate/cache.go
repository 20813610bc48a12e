package exchangerate

import (
	"sync"
	"time"

	"github.com/SscSPs/cek_senet_app/internal/core/domain"
)

// Cache holds the last fetched rate table for a fixed TTL.
// A stale value is kept after expiry so callers can fall back to it.
type Cache struct {
	mu        sync.RWMutex
	value     *domain.RateTable
	fetchedAt time.Time
	ttl       time.Duration
	now       func() time.Time
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithClock injects the time source, mainly for tests.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) {
		c.now = now
	}
}

// NewCache creates an empty cache whose entries are fresh for ttl.
func NewCache(ttl time.Duration, opts ...CacheOption) *Cache {
	c := &Cache{ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached table and whether it is still fresh.
// It returns nil when nothing was ever stored or the cache was cleared.
func (c *Cache) Get() (*domain.RateTable, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.value == nil {
		return nil, false
	}
	return c.value, c.now().Sub(c.fetchedAt) < c.ttl
}

// Set stores table as fetched now.
func (c *Cache) Set(table *domain.RateTable) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = table
	c.fetchedAt = c.now()
}

// Clear drops the cached value.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = nil
	c.fetchedAt = time.Time{}
}
