package reconcile

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache holds built values keyed by string with a TTL. Concurrent misses for
// the same key share one build.
type Cache[T any] struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry[T]
	sf      singleflight.Group
	ttl     time.Duration
}

type cacheEntry[T any] struct {
	value T
	built time.Time
	ttl   time.Duration
}

// IsExpired returns true if this entry has expired based on its TTL.
func (e *cacheEntry[T]) IsExpired() bool {
	if e.ttl == 0 {
		return true // No caching
	}
	return time.Since(e.built) > e.ttl
}

// NewCache creates a cache whose entries live for ttl. A zero ttl disables
// caching but still collapses concurrent builds.
func NewCache[T any](ttl time.Duration) *Cache[T] {
	return &Cache[T]{
		entries: make(map[string]*cacheEntry[T]),
		ttl:     ttl,
	}
}

// GetOrBuild returns the cached value for key, or builds and stores a new one
// if it doesn't exist or has expired.
func (c *Cache[T]) GetOrBuild(ctx context.Context, key string, build func(ctx context.Context) (T, error)) (T, error) {
	// Fast path: check if entry exists and is fresh
	if v, ok := c.fresh(key); ok {
		return v, nil
	}

	// Slow path: build using singleflight to prevent stampedes
	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		if v, ok := c.fresh(key); ok {
			return v, nil
		}

		v, err := build(ctx)
		if err != nil {
			return nil, err
		}
		c.Set(key, v)
		return v, nil
	})

	if err != nil {
		var zero T
		return zero, err
	}
	return result.(T), nil
}

// Set stores value under key, resetting its age.
func (c *Cache[T]) Set(key string, value T) {
	c.mu.Lock()
	c.entries[key] = &cacheEntry[T]{value: value, built: time.Now(), ttl: c.ttl}
	c.mu.Unlock()
}

// Invalidate removes key so the next GetOrBuild rebuilds it.
func (c *Cache[T]) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

func (c *Cache[T]) fresh(key string) (T, bool) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if exists && !entry.IsExpired() {
		return entry.value, true
	}
	var zero T
	return zero, false
}
