package apod

import (
	"sync"
	"time"

	"skydeck/models"
)

// DefaultCacheTTL is used when the configured TTL is zero or negative.
const DefaultCacheTTL = time.Hour

// FetchFunc produces an entry on a cache miss.
type FetchFunc func() (models.APODEntry, error)

type cacheEntry struct {
	entry     models.APODEntry
	fetchedAt time.Time
}

// Cache memoises fetched entries per selection for a fixed TTL. Only
// successful fetches are stored; failures pass through uncached so the next
// request retries the upstream.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[DateSelection]cacheEntry
	now     func() time.Time
}

func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		ttl:     ttl,
		entries: make(map[DateSelection]cacheEntry),
		now:     time.Now,
	}
}

// GetOrFetch returns the cached entry for sel while it is still fresh,
// otherwise calls fetch and stores the result. The boolean reports whether
// the entry came from the cache. fetch runs outside the lock, so two
// concurrent misses for the same selection may both hit the upstream; the
// later result wins.
func (c *Cache) GetOrFetch(sel DateSelection, fetch FetchFunc) (models.APODEntry, bool, error) {
	c.mu.Lock()
	if e, ok := c.entries[sel]; ok && c.now().Sub(e.fetchedAt) < c.ttl {
		c.mu.Unlock()
		return e.entry, true, nil
	}
	c.mu.Unlock()

	entry, err := fetch()
	if err != nil {
		return models.APODEntry{}, false, err
	}

	c.mu.Lock()
	c.pruneLocked()
	c.entries[sel] = cacheEntry{entry: entry, fetchedAt: c.now()}
	c.mu.Unlock()
	return entry, false, nil
}

// Clear drops every cached entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[DateSelection]cacheEntry)
	c.mu.Unlock()
}

// pruneLocked evicts stale entries. Caller holds the lock.
func (c *Cache) pruneLocked() {
	cutoff := c.now().Add(-c.ttl)
	for sel, e := range c.entries {
		if e.fetchedAt.Before(cutoff) {
			delete(c.entries, sel)
		}
	}
}
