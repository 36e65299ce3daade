package cache

import "bytes"

// HitStrategy selects how a cache hit updates an entry's access counter
// (§4.4).
type HitStrategy int

const (
	// IncrementByOne bumps the counter by one per hit.
	IncrementByOne HitStrategy = iota
	// ResetToTotal resets the counter to positiveHits + negativeHits.
	ResetToTotal
)

// AgingMode selects how periodic reduction decays an entry's counter.
type AgingMode int

const (
	// Subtract lowers the counter by a fixed amount.
	Subtract AgingMode = iota
	// Halve divides the counter by two.
	Halve
)

type entry[V any] struct {
	key       []byte // owned by the slab
	value     V
	hash      uint32
	access    int64
	positive  int64
	negative  int64
	dirty     bool
}

// Cache is the hash-indexed component cache of §4.4: a fixed-bucket-count
// hash table with open chaining, storing either a numeric value or a
// d-DNNF node handle (the type parameter V) per residual key.
type Cache[V any] struct {
	buckets  []int32 // head entry index per bucket, -1 if empty
	next     []int32 // chained next-entry index, -1 if none
	entries  []entry[V]
	slab     *Slab

	hitStrategy HitStrategy
	aging       AgingMode
	reducePeriod int64 // reduce every 1<<k lookups
	lookups      int64

	hits, misses int64
}

// New builds a cache with the given fixed bucket count (ideally a power of
// two or a large prime) and reduction periodicity 1<<reducePeriodLog2.
func New[V any](numBuckets int, reducePeriodLog2 int, hit HitStrategy, aging AgingMode) *Cache[V] {
	buckets := make([]int32, numBuckets)
	for i := range buckets {
		buckets[i] = -1
	}
	return &Cache[V]{
		buckets:      buckets,
		slab:         NewSlab(1 << 20),
		hitStrategy:  hit,
		aging:        aging,
		reducePeriod: 1 << uint(reducePeriodLog2),
	}
}

// murmurMix is a 32-bit multiply/xor mixing hash of the key bytes (§4.4).
func murmurMix(key []byte) uint32 {
	var h uint32 = 0x9747b28c
	for i := 0; i < len(key); i += 4 {
		var k uint32
		for j := 0; j < 4 && i+j < len(key); j++ {
			k |= uint32(key[i+j]) << (8 * uint(j))
		}
		k *= 0xcc9e2d51
		k = (k << 15) | (k >> 17)
		k *= 0x1b873593
		h ^= k
		h = (h << 13) | (h >> 19)
		h = h*5 + 0xe6546b64
	}
	h ^= uint32(len(key))
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16
	return h
}

// Lookup searches for key, comparing header (hash) equality first, then
// byte-equality of the payload (§4.4). On a hit it bumps the access
// counter per the configured HitStrategy and returns the stored value.
func (c *Cache[V]) Lookup(key []byte) (value V, ok bool) {
	c.lookups++
	h := murmurMix(key)
	b := int(h) % len(c.buckets)
	for i := c.buckets[b]; i != -1; i = c.next[i] {
		e := &c.entries[i]
		if e.hash != h || !bytes.Equal(e.key, key) {
			continue
		}
		e.positive++
		switch c.hitStrategy {
		case ResetToTotal:
			e.access = e.positive + e.negative
		default:
			e.access++
		}
		e.dirty = true
		c.hits++
		return e.value, true
	}
	c.misses++
	return value, false
}

// Insert stores value under key, taking ownership of a slab-allocated copy
// of the key bytes.
func (c *Cache[V]) Insert(key []byte, value V) {
	h := murmurMix(key)
	b := int(h) % len(c.buckets)
	owned := c.slab.Alloc(len(key))
	copy(owned, key)
	c.entries = append(c.entries, entry[V]{key: owned, value: value, hash: h, access: 1})
	idx := int32(len(c.entries) - 1)
	c.next = append(c.next, c.buckets[b])
	c.buckets[b] = idx
}

// MaybeReduce runs the eviction policy if the configured lookup period has
// elapsed: entries below threshold are evicted and their key memory
// returned to the slab's free list.
func (c *Cache[V]) MaybeReduce(threshold int64) {
	if c.lookups == 0 || c.lookups%c.reducePeriod != 0 {
		return
	}
	c.reduce(threshold)
}

func (c *Cache[V]) reduce(threshold int64) {
	var kept []entry[V]
	for i := range c.entries {
		e := &c.entries[i]
		switch c.aging {
		case Halve:
			e.access /= 2
		default:
			e.access--
		}
		if e.access < threshold {
			c.slab.Free(e.key)
			continue
		}
		kept = append(kept, *e)
	}
	c.entries = kept

	for b := range c.buckets {
		c.buckets[b] = -1
	}
	c.next = make([]int32, len(c.entries))
	for newIdx := range c.entries {
		h := c.entries[newIdx].hash
		bucket := int(h) % len(c.buckets)
		c.next[newIdx] = c.buckets[bucket]
		c.buckets[bucket] = int32(newIdx)
	}
}

// Stats reports cumulative hit/miss counts for progress reporting (§7).
func (c *Cache[V]) Stats() (hits, misses int64) { return c.hits, c.misses }

// Len returns the number of live entries.
func (c *Cache[V]) Len() int { return len(c.entries) }
