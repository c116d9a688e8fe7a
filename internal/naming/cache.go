package naming

import (
	"sync"
	"time"

	"github.com/godshot/godshot/internal/metrics"
)

// cacheEntry pairs a value with its insertion instant. An entry reads as a
// hit only while now - insertedAt < ttl.
type cacheEntry[T any] struct {
	value      T
	insertedAt time.Time
}

// ttlCache is a mutex-guarded read-through cache. Expired entries are
// removed lazily on access; the naming caches stay small enough (one entry
// per recently-named barista/bean/bag) that no sweeper is needed.
type ttlCache[T any] struct {
	mu      sync.RWMutex
	label   string
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry[T]

	hits   int64
	misses int64
}

func newTTLCache[T any](label string, ttl time.Duration, now func() time.Time) *ttlCache[T] {
	return &ttlCache[T]{
		label:   label,
		ttl:     ttl,
		now:     now,
		entries: make(map[string]cacheEntry[T]),
	}
}

// get returns the cached value if present and fresh.
func (c *ttlCache[T]) get(key string) (T, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && c.now().Sub(entry.insertedAt) < c.ttl {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
		metrics.NamingCacheHits.WithLabelValues(c.label).Inc()
		return entry.value, true
	}

	c.mu.Lock()
	c.misses++
	if ok {
		// Expired; drop it so invalidation counts stay accurate.
		delete(c.entries, key)
	}
	c.mu.Unlock()
	metrics.NamingCacheMisses.WithLabelValues(c.label).Inc()

	var zero T
	return zero, false
}

// set stores a value, stamping the current instant.
func (c *ttlCache[T]) set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry[T]{value: value, insertedAt: c.now()}
}

// invalidate removes a key and reports how many entries were removed (0 or 1).
func (c *ttlCache[T]) invalidate(key string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; !ok {
		return 0
	}
	delete(c.entries, key)
	return 1
}

// stats returns hit/miss counters and the current entry count.
func (c *ttlCache[T]) stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return CacheStats{Hits: c.hits, Misses: c.misses, Entries: len(c.entries)}
}

// CacheStats reports per-cache effectiveness for the metrics surface.
type CacheStats struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Entries int   `json:"entries"`
}
