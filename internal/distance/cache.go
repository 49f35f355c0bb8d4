package distance

import (
	"fmt"
	"sync"
	"time"

	"github.com/example/fare-engine/internal/models"
)

// Cache is a tiny in-memory cache for resolved legs keyed by coords.
type Cache struct {
	mu    sync.RWMutex
	store map[string]cacheEntry
	ttl   time.Duration
}

type cacheEntry struct {
	v  Leg
	ts time.Time
}

// NewCache creates a cache with the provided TTL.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{store: make(map[string]cacheEntry), ttl: ttl}
}

func keyFor(a, b models.Coordinates) string {
	return fmtCoord(a) + "->" + fmtCoord(b)
}

func fmtCoord(c models.Coordinates) string {
	return fmt.Sprintf("%.6f,%.6f", c.Latitude, c.Longitude)
}

// Get returns the cached leg and true if present and not expired.
func (c *Cache) Get(a, b models.Coordinates) (Leg, bool) {
	k := keyFor(a, b)
	c.mu.RLock()
	e, ok := c.store[k]
	c.mu.RUnlock()
	if !ok {
		return Leg{}, false
	}
	if time.Since(e.ts) > c.ttl {
		c.mu.Lock()
		delete(c.store, k)
		c.mu.Unlock()
		return Leg{}, false
	}
	return e.v, true
}

// Set stores a leg in the cache.
func (c *Cache) Set(a, b models.Coordinates, v Leg) {
	k := keyFor(a, b)
	c.mu.Lock()
	c.store[k] = cacheEntry{v: v, ts: time.Now()}
	c.mu.Unlock()
}
