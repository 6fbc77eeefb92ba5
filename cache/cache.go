// Package cache provides a small thread-safe TTL cache
package cache

import (
	"sync"
	"time"
)

// entry is a cached value with its expiry
type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache provides thread-safe caching with TTL support
type Cache[V any] struct {
	data     map[string]entry[V]
	mutex    sync.RWMutex
	ttl      time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
}

// New creates a new Cache instance with the specified TTL and starts the
// janitor that drops expired entries. Call Stop to release it. A
// non-positive TTL stores entries that are already expired.
func New[V any](ttl time.Duration) *Cache[V] {
	c := &Cache[V]{
		data:   make(map[string]entry[V]),
		ttl:    ttl,
		stopCh: make(chan struct{}),
	}

	if ttl > 0 {
		go c.cleanup()
	}

	return c
}

// Get retrieves a value from the cache if it exists and hasn't expired
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	var zero V

	e, exists := c.data[key]
	if !exists {
		return zero, false
	}

	if !time.Now().Before(e.expiresAt) {
		return zero, false
	}

	return e.value, true
}

// Set stores a value that expires one TTL from now
func (c *Cache[V]) Set(key string, value V) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = entry[V]{
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Len returns the number of stored entries, expired ones included until the
// janitor runs.
func (c *Cache[V]) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.data)
}

// TTL returns the lifetime given to new entries
func (c *Cache[V]) TTL() time.Duration {
	return c.ttl
}

func (c *Cache[V]) cleanup() {
	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stopCh:
			return
		}
	}
}

func (c *Cache[V]) removeExpired() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	for key, e := range c.data {
		if !now.Before(e.expiresAt) {
			delete(c.data, key)
		}
	}
}

// Stop stops the janitor goroutine and drops every entry. It is safe to
// call more than once.
func (c *Cache[V]) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopCh)

		c.mutex.Lock()
		c.data = make(map[string]entry[V])
		c.mutex.Unlock()
	})
}
