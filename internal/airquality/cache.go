package airquality

import (
	"sync"
	"time"

	"github.com/Yoloholoknow/Respire/internal/geo"
)

// sampleCache memoizes provider responses keyed by coordinates rounded to
// 4 decimal places (~11 m). Entries expire after the TTL; expired entries
// are dropped lazily on read.
type sampleCache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	sample   *Sample
	storedAt time.Time
}

func newSampleCache(ttl time.Duration) *sampleCache {
	return &sampleCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// Get returns a live cached sample for the coordinate, or nil.
func (c *sampleCache) Get(lat, lng float64) *Sample {
	key := geo.CacheKey(lat, lng)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil
	}
	if c.now().Sub(entry.storedAt) > c.ttl {
		c.mu.Lock()
		// Re-check under the write lock: another goroutine may have
		// refreshed this key since the read.
		if cur, still := c.entries[key]; still && c.now().Sub(cur.storedAt) > c.ttl {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil
	}
	return entry.sample
}

// Put stores a sample for the coordinate.
func (c *sampleCache) Put(lat, lng float64, s *Sample) {
	key := geo.CacheKey(lat, lng)
	c.mu.Lock()
	c.entries[key] = cacheEntry{sample: s, storedAt: c.now()}
	c.mu.Unlock()
}

// Len returns the number of entries, including any not yet lazily expired.
func (c *sampleCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear drops every entry.
func (c *sampleCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}
