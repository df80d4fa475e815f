package cache

import (
	"sync"
	"time"
)

// TTLCache is a thread-safe in-memory cache with per-entry expiry.
// Expired entries are invisible to readers and swept by a background goroutine.
type TTLCache[V any] struct {
	mu      sync.RWMutex
	items   map[string]entry[V]
	stop    chan struct{}
	stopped sync.Once
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

func (e entry[V]) expired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// New creates a cache sweeping expired entries every cleanupInterval.
func New[V any](cleanupInterval time.Duration) *TTLCache[V] {
	c := &TTLCache[V]{
		items: make(map[string]entry[V]),
		stop:  make(chan struct{}),
	}
	go c.sweep(cleanupInterval)
	return c
}

func (c *TTLCache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.items[key]
	if !ok || e.expired(time.Now()) {
		var zero V
		return zero, false
	}
	return e.value, true
}

func (c *TTLCache[V]) Set(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = entry[V]{value: value, expiresAt: time.Now().Add(ttl)}
}

// GetOrSet returns the cached value or computes, stores and returns it.
// compute runs under the write lock so concurrent misses on one key compute once.
func (c *TTLCache[V]) GetOrSet(key string, ttl time.Duration, compute func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok && !e.expired(time.Now()) {
		return e.value, nil
	}

	v, err := compute()
	if err != nil {
		var zero V
		return zero, err
	}
	c.items[key] = entry[V]{value: v, expiresAt: time.Now().Add(ttl)}
	return v, nil
}

func (c *TTLCache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Len includes expired entries not yet swept.
func (c *TTLCache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *TTLCache[V]) Stop() {
	c.stopped.Do(func() { close(c.stop) })
}

func (c *TTLCache[V]) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stop:
			return
		}
	}
}

func (c *TTLCache[V]) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, e := range c.items {
		if e.expired(now) {
			delete(c.items, key)
		}
	}
}
