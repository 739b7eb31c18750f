// Package cache provides a process-wide TTL cache for provider fetches.
// It is strictly a request-volume reduction measure: entries are evicted
// lazily on access past expiry and the whole cache is lost on restart.
// Concurrent misses for the same key are collapsed into one underlying
// fetch via singleflight.
package cache

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry struct {
	value   interface{}
	expires time.Time
}

// TTLCache memoizes fetch results per key for a fixed duration.
type TTLCache struct {
	ttl   time.Duration
	now   func() time.Time
	group singleflight.Group

	mu      sync.Mutex
	entries map[string]entry
}

// New creates a cache whose entries expire after ttl.
func New(ttl time.Duration) *TTLCache {
	return &TTLCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

// Do returns the cached value for key, or runs fetch to populate it.
// The bool reports whether the value was served from cache without this
// caller paying for a fetch. Fetch errors are not cached.
func (c *TTLCache) Do(key string, fetch func() (interface{}, error)) (interface{}, bool, error) {
	if v, ok := c.lookup(key); ok {
		return v, true, nil
	}

	var fetched bool
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// Another caller may have populated the key while we waited
		// for the flight slot.
		if v, ok := c.lookup(key); ok {
			return v, nil
		}
		fetched = true
		v, err := fetch()
		if err != nil {
			return nil, err
		}
		c.store(key, v)
		return v, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v, !fetched, nil
}

func (c *TTLCache) lookup(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expires) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

func (c *TTLCache) store(key string, v interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: v, expires: c.now().Add(c.ttl)}
}
