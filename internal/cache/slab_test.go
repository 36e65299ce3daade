package cache_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/d4go/internal/cache"
)

func TestSlabAllocReturnsNonOverlappingBlocks(t *testing.T) {
	s := cache.NewSlab(16)

	a := s.Alloc(4)
	b := s.Alloc(4)
	require.Len(t, a, 4)
	require.Len(t, b, 4)

	a[0] = 1
	require.Zero(t, b[0])
}

func TestSlabAllocSpansPages(t *testing.T) {
	s := cache.NewSlab(4)

	a := s.Alloc(4)
	b := s.Alloc(4)
	c := s.Alloc(4)
	require.Len(t, a, 4)
	require.Len(t, b, 4)
	require.Len(t, c, 4)
}

func TestSlabFreeListReuse(t *testing.T) {
	s := cache.NewSlab(64)

	a := s.Alloc(8)
	s.Free(a)
	b := s.Alloc(8)
	require.Len(t, b, 8)
	require.Same(t, &a[0], &b[0])
}
