package cachemanager

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type exampleStruct struct {
	ID   int
	Name string
}

func TestNewInMemoryCacheManager(t *testing.T) {
	require.NotPanics(t, func() {
		NewInMemoryCacheManager[string]("test", DefaultExpiration, DefaultCleanupInterval)
	})
}

func TestInMemoryCacheManager_GetExistingValue_StructType(t *testing.T) {
	cache := NewInMemoryCacheManager[exampleStruct]("food-cache", DefaultExpiration, DefaultCleanupInterval)
	cache.Set("ex:1", exampleStruct{Name: "apple"})

	value, ok := cache.Get("ex:1")
	require.True(t, ok)
	require.Equal(t, exampleStruct{Name: "apple"}, value)
}

func TestInMemoryCacheManager_GetMissingValue(t *testing.T) {
	cache := NewInMemoryCacheManager[[]int]("ints", DefaultExpiration, DefaultCleanupInterval)

	value, ok := cache.Get("missing")
	require.False(t, ok)
	require.Nil(t, value)
}

func TestInMemoryCacheManager_Expires(t *testing.T) {
	cache := NewInMemoryCacheManager[string]("short", 10*time.Millisecond, time.Minute)
	cache.Set("k", "v")

	require.Eventually(t, func() bool {
		_, ok := cache.Get("k")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestInMemoryCacheManager_DeleteAndFlush(t *testing.T) {
	cache := NewInMemoryCacheManager[int]("counts", DefaultExpiration, DefaultCleanupInterval)
	cache.Set("a", 1)
	cache.Set("b", 2)
	cache.Set("c", 3)
	require.Equal(t, 3, cache.Len())

	cache.Delete("a", "b")
	require.Equal(t, 1, cache.Len())
	_, ok := cache.Get("a")
	require.False(t, ok)

	cache.Flush()
	require.Zero(t, cache.Len())
}

func TestGetOrCompute(t *testing.T) {
	cache := NewInMemoryCacheManager[int]("compute", DefaultExpiration, DefaultCleanupInterval)
	calls := 0
	fn := func() int {
		calls++
		return 42
	}

	require.Equal(t, 42, GetOrCompute[int](cache, "answer", fn))
	require.Equal(t, 42, GetOrCompute[int](cache, "answer", fn))
	require.Equal(t, 1, calls, "second lookup is a hit")
}

func TestGetOrCompute_NilCache(t *testing.T) {
	calls := 0
	fn := func() string {
		calls++
		return "x"
	}

	require.Equal(t, "x", GetOrCompute[string](nil, "k", fn))
	require.Equal(t, "x", GetOrCompute[string](nil, "k", fn))
	require.Equal(t, 2, calls)
}
