// v0
// cache.go
package registry

import (
	"sync"
	"time"
)

// CacheObserver receives hit/miss signals so callers can wire metrics
// without the cache itself depending on a metrics backend.
type CacheObserver interface {
	CacheHit()
	CacheMiss()
}

type entry struct {
	val string
	ok  bool
	exp time.Time
}

// Cache is a bounded-TTL cache of registry lookup results, keyed by the
// full registry key string. A TTL of zero disables caching: every Get
// reports a miss. Ceiling of 60s is enforced by the caller's config
// validation, not here.
type Cache struct {
	mu  sync.RWMutex
	m   map[string]entry
	ttl time.Duration
	obs CacheObserver
}

// NewCache builds a TTL cache. obs may be nil.
func NewCache(ttl time.Duration, obs CacheObserver) *Cache {
	return &Cache{m: make(map[string]entry), ttl: ttl, obs: obs}
}

// Get returns the cached (value, present) pair for key, and whether the
// cache entry itself was found (a cached "absent" result is a hit too).
func (c *Cache) Get(key string) (value string, present bool, hit bool) {
	if c.ttl <= 0 {
		c.observe(false)
		return "", false, false
	}
	c.mu.RLock()
	e, found := c.m[key]
	c.mu.RUnlock()
	if !found || time.Now().After(e.exp) {
		c.observe(false)
		return "", false, false
	}
	c.observe(true)
	return e.val, e.ok, true
}

// Set records the outcome of a registry lookup — present or absent —
// for key, to expire after the configured TTL.
func (c *Cache) Set(key, value string, present bool) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.m[key] = entry{val: value, ok: present, exp: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

func (c *Cache) observe(hit bool) {
	if c.obs == nil {
		return
	}
	if hit {
		c.obs.CacheHit()
	} else {
		c.obs.CacheMiss()
	}
}
