package resilience

import (
	"sync"
	"time"
)

// Cache is a bounded-lifetime key-value store. Entries older than the TTL are
// treated as absent and purged lazily on the next read. There is no capacity
// bound or LRU: the catalogue is small and the entry count is bounded by the
// number of distinct queries.
//
// Cache instances are explicit and injectable; nothing in this package holds
// process-wide state.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

type cacheEntry struct {
	value    interface{}
	storedAt time.Time
}

// CacheOption customises a Cache.
type CacheOption func(*Cache)

// WithClock replaces the cache's time source. Used by tests to control
// expiry.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) {
		c.now = now
	}
}

// NewCache creates a cache whose entries live for ttl.
func NewCache(ttl time.Duration, opts ...CacheOption) *Cache {
	c := &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached value when present and within the TTL. Expired
// entries are evicted and reported absent.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.storedAt) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return entry.value, true
}

// Lookup returns the cached value and its age regardless of the TTL. Callers
// that serve stale data while revalidating use this instead of Get.
func (c *Cache) Lookup(key string) (interface{}, time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, 0, false
	}
	return entry.value, c.now().Sub(entry.storedAt), true
}

// Set stores a value, unconditionally overwriting any prior entry.
func (c *Cache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{value: value, storedAt: c.now()}
}

// Delete removes one entry.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear drops all entries. Used for manual invalidation after external
// content edits.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
