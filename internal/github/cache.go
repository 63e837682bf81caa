package github

import (
	"sync"
	"time"
)

type cacheEntry struct {
	value    interface{}
	cachedAt time.Time
}

// ttlCache is a last-write-wins map with a fixed per-entry lifetime.
// Entries are replaced wholesale, never partially updated.
type ttlCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

func newTTLCache(ttl time.Duration) *ttlCache {
	return &ttlCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

func (c *ttlCache) get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Since(entry.cachedAt) >= c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return entry.value, true
}

func (c *ttlCache) set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{value: value, cachedAt: time.Now()}
}

func (c *ttlCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]cacheEntry)
}

// cached returns the fresh cache entry for key or invokes produce and
// stores its result. Overlapping calls for the same key are not
// de-duplicated; both reach the producer.
func cached[T any](c *Client, key string, produce func() (T, error)) (T, error) {
	if v, ok := c.cache.get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}

	value, err := produce()
	if err != nil {
		var zero T
		return zero, err
	}

	c.cache.set(key, value)
	return value, nil
}
