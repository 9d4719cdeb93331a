// Package hotcache caches resolved per-token variant lists so repeated
// queries over popular tokens skip PrefixIndex/FuzzyIndex lookups.
package hotcache

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/geophrase/pkg/phraseidx"
)

// Key identifies one resolved-variant cache entry: a token at a given
// fuzzy budget, resolved either as an interior token or as a prefix tail.
type Key struct {
	Token       string
	MaxDistance int
	AllowPrefix bool
}

// Cache is a fixed-capacity, least-recently-used cache of resolved
// variant lists.
type Cache struct {
	mu          sync.RWMutex
	entries     map[Key][]phraseidx.Variant
	accessTime  map[Key]int64
	accessCount int64
	maxEntries  int
}

// New creates a Cache holding at most maxEntries resolved lookups.
func New(maxEntries int) *Cache {
	return &Cache{
		entries:    make(map[Key][]phraseidx.Variant, maxEntries),
		accessTime: make(map[Key]int64, maxEntries),
		maxEntries: maxEntries,
	}
}

// Get returns the cached variants for key, if present.
func (c *Cache) Get(key Key) ([]phraseidx.Variant, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.markAccessed(key)
	return v, true
}

// Put stores variants for key, evicting the least recently used entry if
// the cache is at capacity.
func (c *Cache) Put(key Key, variants []phraseidx.Variant) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictLRU()
	}
	c.entries[key] = variants
	c.markAccessed(key)
}

// Stats reports current occupancy, the configured capacity, and the number
// of accesses so far (every Get that found its key plus every Put).
func (c *Cache) Stats() map[string]int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return map[string]int{
		"entries":    len(c.entries),
		"maxEntries": c.maxEntries,
		"accesses":   int(c.accessCount),
	}
}

func (c *Cache) markAccessed(key Key) {
	c.accessCount++
	c.accessTime[key] = c.accessCount
}

func (c *Cache) evictLRU() {
	var oldestKey Key
	var oldestTime int64 = 1<<63 - 1
	found := false

	for key, t := range c.accessTime {
		if t < oldestTime {
			oldestTime = t
			oldestKey = key
			found = true
		}
	}

	if found {
		delete(c.entries, oldestKey)
		delete(c.accessTime, oldestKey)
		log.Debugf("hotcache: evicted %q (maxDistance=%d, allowPrefix=%v)",
			oldestKey.Token, oldestKey.MaxDistance, oldestKey.AllowPrefix)
	}
}
