package themes

import (
	"strings"
	"sync"
	"time"
)

// DefaultTTL is how long a cached bundle stays fresh.
const DefaultTTL = 24 * time.Hour

type cacheEntry struct {
	bundle   Bundle
	storedAt time.Time
}

// Cache is a TTL cache of resolved bundles keyed by lowercased, trimmed
// title. Entries past their TTL are treated as absent and overwritten on the
// next Put.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
	now     func() time.Time
}

// NewCache creates a bundle cache. A non-positive ttl falls back to
// DefaultTTL.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

func cacheKey(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// Get returns the cached bundle for title while it is still fresh.
func (c *Cache) Get(title string) (Bundle, bool) {
	key := cacheKey(title)
	if key == "" {
		return Bundle{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, found := c.entries[key]
	if !found {
		return Bundle{}, false
	}
	if c.now().Sub(entry.storedAt) >= c.ttl {
		delete(c.entries, key)
		return Bundle{}, false
	}
	return entry.bundle, true
}

// Put stores a bundle for title. Empty bundles are cached too: a title that
// resolved to nothing should not be re-resolved on every request.
func (c *Cache) Put(title string, bundle Bundle) {
	key := cacheKey(title)
	if key == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{bundle: bundle, storedAt: c.now()}
}

// Len returns the number of cached entries, fresh or stale.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
