package cachemanager

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/quill/internal/log"
)

// InMemoryCacheManager is a CacheManager backed by go-cache. Every entry
// uses the expiration given at construction.
type InMemoryCacheManager[V any] struct {
	useCase string
	ttl     time.Duration
	cache   *gocache.Cache
}

// NewInMemoryCacheManager returns an empty cache. useCase only labels log
// lines.
func NewInMemoryCacheManager[V any](useCase string, ttl, cleanupInterval time.Duration) *InMemoryCacheManager[V] {
	return &InMemoryCacheManager[V]{
		useCase: useCase,
		ttl:     ttl,
		cache:   gocache.New(ttl, cleanupInterval),
	}
}

// Get retrieves an item from the cache by its key.
func (c *InMemoryCacheManager[V]) Get(key string) (V, bool) {
	var zeroValue V

	value, found := c.cache.Get(key)
	if !found {
		return zeroValue, false
	}

	v, ok := value.(V)
	if !ok {
		log.Error(log.CatCache, "wrong type assertion when getting value", "cache", c.useCase, "key", key)
		return zeroValue, false
	}
	return v, true
}

// Set stores value under key with the cache's expiration.
func (c *InMemoryCacheManager[V]) Set(key string, value V) {
	c.cache.Set(key, value, c.ttl)
}

// Delete removes the given keys.
func (c *InMemoryCacheManager[V]) Delete(keys ...string) {
	for _, key := range keys {
		c.cache.Delete(key)
	}
}

// Flush removes every entry.
func (c *InMemoryCacheManager[V]) Flush() {
	c.cache.Flush()
	log.Debug(log.CatCache, "cache flushed", "cache", c.useCase)
}

// Len reports the number of entries, including expired ones not yet
// cleaned up.
func (c *InMemoryCacheManager[V]) Len() int {
	return c.cache.ItemCount()
}
