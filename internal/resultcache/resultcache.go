// Package resultcache provides the short-TTL cache wrapped around the whole
// discovery pipeline.
package resultcache

import (
	"strings"
	"sync"
	"time"
)

const (
	// DefaultTTL is how long a cached result stays servable.
	DefaultTTL = 5 * time.Minute
	// DefaultCapacity is the hard entry cap.
	DefaultCapacity = 100

	anonymousUser = "anonymous"
)

// Key builds the cache key from the requesting user and the normalized
// query. A blank user ID maps to the shared anonymous namespace.
func Key(userID, normalizedQuery string) string {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		userID = anonymousUser
	}
	return userID + ":" + normalizedQuery
}

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// Cache is a mutex-guarded TTL cache with a hard capacity: Set evicts
// oldest-inserted keys until the store is back within the cap, so the entry
// count never exceeds capacity even under concurrent insertion.
type Cache[V any] struct {
	mu       sync.Mutex
	entries  map[string]entry[V]
	order    []string
	ttl      time.Duration
	capacity int
	now      func() time.Time
}

// New constructs a cache. Non-positive ttl or capacity fall back to the
// defaults.
func New[V any](ttl time.Duration, capacity int) *Cache[V] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache[V]{
		entries:  make(map[string]entry[V]),
		ttl:      ttl,
		capacity: capacity,
		now:      time.Now,
	}
}

// Get returns the cached value if it is younger than the TTL. Stale entries
// are removed on access.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	cached, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if c.now().Sub(cached.storedAt) >= c.ttl {
		c.remove(key)
		return zero, false
	}
	return cached.value, true
}

// Set stores the value under key, then evicts the oldest-inserted keys until
// the store is within capacity. Overwriting an existing key refreshes its
// timestamp but keeps its original insertion position.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		c.order = append(c.order, key)
	}
	c.entries[key] = entry[V]{value: value, storedAt: c.now()}

	for len(c.entries) > c.capacity && len(c.order) > 0 {
		c.remove(c.order[0])
	}
}

// Len reports the current entry count.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// remove deletes a key from both the map and the insertion order. Callers
// hold the mutex.
func (c *Cache[V]) remove(key string) {
	delete(c.entries, key)
	for i, candidate := range c.order {
		if candidate == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
