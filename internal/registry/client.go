// v0
// client.go
//
// Client is the Registry Client of §4.1: a read-only, stateless view
// over a key-value Store. Transient failures and true absences are
// both reported as absent — one broken lookup must never poison the
// stream. A bounded-TTL Cache sits in front of Store to bound lookup
// rate, and a resilience.Guard applies a per-call timeout plus circuit
// breaking around the underlying connection.
package registry

import (
	"context"
	"errors"

	"github.com/mindis/observation-management-system/internal/logging"
	"github.com/mindis/observation-management-system/internal/resilience"
)

// Getter is the narrow interface check packages depend on, so tests can
// supply an in-memory fake without pulling in badger or the cache.
type Getter interface {
	Get(ctx context.Context, key string) (value string, present bool)
}

// Client implements Getter against a Store, a Cache and a Guard.
type Client struct {
	store  Store
	cache  *Cache
	guard  *resilience.Guard
	warner *logging.RateLimitedWarner
}

// NewClient builds a registry Client. cache and guard may be nil to
// disable caching / circuit breaking respectively (used by tests).
func NewClient(store Store, cache *Cache, guard *resilience.Guard, warner *logging.RateLimitedWarner) *Client {
	return &Client{store: store, cache: cache, guard: guard, warner: warner}
}

// Get returns the value stored at key and whether it was present.
// Transient store failures (I/O, timeout, circuit open) are logged at
// a rate-limited warning and reported as absent, matching §4.1's
// "malformed/transient maps to absent" contract.
func (c *Client) Get(ctx context.Context, key string) (string, bool) {
	if c.cache != nil {
		if val, present, hit := c.cache.Get(key); hit {
			return val, present
		}
	}

	val, err := c.fetch(ctx, key)
	present := err == nil
	if err != nil && !errors.Is(err, ErrNotFound) {
		if c.warner != nil {
			c.warner.Warn(pattern(key), "registry lookup failed, treating as absent", "key", key, "error", err.Error())
		}
	}

	if c.cache != nil {
		c.cache.Set(key, val, present)
	}
	return val, present
}

func (c *Client) fetch(ctx context.Context, key string) (string, error) {
	if c.guard == nil {
		return c.store.Get(ctx, key)
	}
	var val string
	var notFound bool
	err := c.guard.Do(ctx, func(ctx context.Context) error {
		v, err := c.store.Get(ctx, key)
		if errors.Is(err, ErrNotFound) {
			// absence is not a breaker failure: it is a normal, expected
			// outcome and must not trip the circuit.
			notFound = true
			return nil
		}
		if err != nil {
			return err
		}
		val = v
		return nil
	})
	if err != nil {
		return "", err
	}
	if notFound {
		return "", ErrNotFound
	}
	return val, nil
}

// pattern derives the rate-limit bucket for a key: the family segment
// (e.g. "thresholds::range"), so keys of one family that differ only by
// method, bound or time suffix share a single warning budget. Keys with
// fewer than five segments are their own bucket.
func pattern(key string) string {
	parts := splitKey(key)
	if len(parts) >= 5 {
		return parts[3] + sep + parts[4]
	}
	return key
}

func splitKey(key string) []string {
	var parts []string
	start := 0
	for i := 0; i+1 < len(key); i++ {
		if key[i] == ':' && key[i+1] == ':' {
			parts = append(parts, key[start:i])
			i++
			start = i + 1
		}
	}
	parts = append(parts, key[start:])
	return parts
}
