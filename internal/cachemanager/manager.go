// Package cachemanager provides small in-memory caches with expiry.
package cachemanager

import "time"

const (
	DefaultExpiration      = 10 * time.Minute
	DefaultCleanupInterval = 30 * time.Minute
)

// CacheManager stores values by string key.
type CacheManager[V any] interface {
	Get(key string) (V, bool)
	Set(key string, value V)
	Delete(keys ...string)
	Flush()
	Len() int
}

// GetOrCompute returns the cached value for key, computing and storing it
// on a miss. A nil cache always computes.
func GetOrCompute[V any](cache CacheManager[V], key string, fn func() V) V {
	if cache == nil {
		return fn()
	}
	if value, ok := cache.Get(key); ok {
		return value
	}
	value := fn()
	cache.Set(key, value)
	return value
}
