package cache_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/d4go/internal/cache"
)

func TestCacheInsertLookup(t *testing.T) {
	c := cache.New[int](64, 4, cache.IncrementByOne, cache.Subtract)

	key1 := []byte{1, 2, 3}
	key2 := []byte{4, 5, 6, 7}

	_, ok := c.Lookup(key1)
	require.False(t, ok)

	c.Insert(key1, 42)
	c.Insert(key2, 7)

	v, ok := c.Lookup(key1)
	require.True(t, ok)
	require.Equal(t, 42, v)

	v, ok = c.Lookup(key2)
	require.True(t, ok)
	require.Equal(t, 7, v)

	require.Equal(t, 2, c.Len())
}

func TestCacheDistinguishesEqualLengthKeys(t *testing.T) {
	c := cache.New[string](16, 4, cache.IncrementByOne, cache.Subtract)

	c.Insert([]byte{1, 2}, "a")
	c.Insert([]byte{2, 1}, "b")

	v, ok := c.Lookup([]byte{1, 2})
	require.True(t, ok)
	require.Equal(t, "a", v)

	v, ok = c.Lookup([]byte{2, 1})
	require.True(t, ok)
	require.Equal(t, "b", v)
}

func TestCacheReduceEvictsStaleEntries(t *testing.T) {
	c := cache.New[int](8, 1, cache.IncrementByOne, cache.Subtract)

	c.Insert([]byte{9, 9}, 1)
	// MaybeReduce runs every 1<<1 = 2 lookups.
	c.Lookup([]byte{9, 9})
	c.Lookup([]byte{9, 9})
	c.MaybeReduce(100) // threshold far above any access count: evicts everything

	_, ok := c.Lookup([]byte{9, 9})
	require.False(t, ok)
}

func TestCacheStats(t *testing.T) {
	c := cache.New[int](8, 8, cache.ResetToTotal, cache.Halve)
	c.Insert([]byte{1}, 1)

	c.Lookup([]byte{1})
	c.Lookup([]byte{2})

	hits, misses := c.Stats()
	require.Equal(t, int64(1), hits)
	require.Equal(t, int64(1), misses)
}
