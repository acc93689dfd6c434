package research

import (
	"strings"
	"sync"
	"time"

	"github.com/voyagetravel/voyage-backend/internal/model"
)

// Cache holds research bundles per destination for a fixed TTL. Expiry is
// checked on read; there is no sweeper, stale entries are overwritten by the
// next Put. Keys are case-folded destination text with no deeper
// normalization, so "Goa" and "Goa, India" are distinct entries.
//
// Two requests that miss the same key concurrently will both fetch; the
// duplicate in-flight fetch is tolerated rather than deduplicated.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	nowFn   func() time.Time
	entries map[string]cacheEntry
}

type cacheEntry struct {
	research model.CostResearch
	storedAt time.Time
}

// NewCache creates a cache whose entries expire ttl after insertion.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		nowFn:   time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// Get returns the cached bundle for the destination if present and fresh.
func (c *Cache) Get(destination string) (model.CostResearch, bool) {
	key := cacheKey(destination)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.nowFn().Sub(entry.storedAt) >= c.ttl {
		return model.CostResearch{}, false
	}
	return entry.research, true
}

// Put stores the bundle for the destination, resetting its expiry clock.
func (c *Cache) Put(destination string, research model.CostResearch) {
	key := cacheKey(destination)

	c.mu.Lock()
	c.entries[key] = cacheEntry{research: research, storedAt: c.nowFn()}
	c.mu.Unlock()
}

func cacheKey(destination string) string {
	return strings.ToLower(strings.TrimSpace(destination))
}
