// SPDX-License-Identifier: MIT

package expr

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Hasher accumulates a structural hash with xxhash.
// The zero value is not usable; call NewHasher.
type Hasher struct {
	d   *xxhash.Digest
	buf [8]byte
}

// NewHasher returns a Hasher seeded with a type tag, so that different node
// kinds with the same children hash apart.
func NewHasher(tag string) *Hasher {
	h := &Hasher{d: xxhash.New()}
	h.String(tag)

	return h
}

// String mixes s, length-prefixed.
func (h *Hasher) String(s string) *Hasher {
	h.Int(len(s))
	_, _ = h.d.WriteString(s)

	return h
}

// Int mixes i.
func (h *Hasher) Int(i int) *Hasher { return h.Uint64(uint64(i)) }

// Uint64 mixes v.
func (h *Hasher) Uint64(v uint64) *Hasher {
	binary.LittleEndian.PutUint64(h.buf[:], v)
	_, _ = h.d.Write(h.buf[:])

	return h
}

// Complex mixes both parts of c.
func (h *Hasher) Complex(c complex128) *Hasher {
	return h.Uint64(math.Float64bits(real(c))).Uint64(math.Float64bits(imag(c)))
}

// Sum returns the accumulated hash.
func (h *Hasher) Sum() uint64 { return h.d.Sum64() }

// Cache interns values by structural hash. A lookup returns the cached
// instance only when it is also Equal to the probe, so hash collisions never
// merge distinct values.
type Cache[T any] struct {
	lru   *lru.Cache[uint64, T] // nil when interning is disabled
	equal func(a, b T) bool
}

// NewCache creates a cache of the given capacity; size 0 disables it.
func NewCache[T any](size int, equal func(a, b T) bool) (*Cache[T], error) {
	c := &Cache[T]{equal: equal}
	if size == 0 {
		return c, nil
	}
	l, err := lru.New[uint64, T](size)
	if err != nil {
		return nil, err
	}
	c.lru = l

	return c, nil
}

// Intern returns the cached instance equal to v, or stores v and returns it.
// hit reports whether a cached instance was returned.
func (c *Cache[T]) Intern(key uint64, v T) (out T, hit bool) {
	if c.lru == nil {
		return v, false
	}
	if prev, ok := c.lru.Get(key); ok && c.equal(prev, v) {
		return prev, true
	}
	c.lru.Add(key, v)

	return v, false
}

// Len returns the number of cached instances.
func (c *Cache[T]) Len() int {
	if c.lru == nil {
		return 0
	}
	return c.lru.Len()
}

// Purge empties the cache.
func (c *Cache[T]) Purge() {
	if c.lru != nil {
		c.lru.Purge()
	}
}
