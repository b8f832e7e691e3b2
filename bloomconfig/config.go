// Package bloomconfig implements BloomConfig: the immutable triple
// (hasher, hashCount, capacity) shared by BloomSet and BloomMap, with its
// construction validation and compatibility equality (spec §4.1).
package bloomconfig

import (
	"github.com/bloomlattice/bloomlattice/bloomerr"
	"github.com/bloomlattice/bloomlattice/hasher"
)

// Config is the immutable (hasher, hashCount, capacity) triple every
// BloomSet and BloomMap is built from.
//
// original is the hasher exactly as supplied by the caller; bound is
// original rebound to capacity whenever original.Size() > capacity (so
// that indices produced by bound are already in [0, capacity)). Equality
// and all hashing operations use bound; WithCapacity re-derives from
// original so repeated capacity changes never compound a prior modulo
// rebinding.
type Config[E any] struct {
	original  hasher.Hasher[E]
	bound     hasher.Hasher[E]
	hashCount int
	capacity  int
}

// New derives capacity from h.Size().
func New[E any](h hasher.Hasher[E], hashCount int) (*Config[E], error) {
	if h == nil {
		return nil, bloomerr.InvalidArgument("bloomconfig: hasher is nil")
	}
	return NewWithCapacity(h.Size(), h, hashCount)
}

// NewWithCapacity rebinds h to capacity if h.Size() > capacity.
func NewWithCapacity[E any](capacity int, h hasher.Hasher[E], hashCount int) (*Config[E], error) {
	if h == nil {
		return nil, bloomerr.InvalidArgument("bloomconfig: hasher is nil")
	}
	if hashCount < 1 {
		return nil, bloomerr.InvalidArgument("bloomconfig: hashCount must be >= 1, got %d", hashCount)
	}
	if hashCount > h.Quantity() {
		return nil, bloomerr.InvalidArgument("bloomconfig: hashCount %d exceeds hasher quantity %d", hashCount, h.Quantity())
	}
	if capacity < 0 {
		return nil, bloomerr.InvalidArgument("bloomconfig: capacity must be >= 0, got %d", capacity)
	}
	if h.Size() < capacity {
		return nil, bloomerr.InvalidArgument("bloomconfig: hasher size %d smaller than requested capacity %d", h.Size(), capacity)
	}
	bound := h
	if h.Size() > capacity {
		bound = h.Sized(capacity)
	}
	return &Config[E]{original: h, bound: bound, hashCount: hashCount, capacity: capacity}, nil
}

// Hasher returns the hasher used for hash operations (already rebound to
// Capacity()).
func (c *Config[E]) Hasher() hasher.Hasher[E] { return c.bound }

// HashCount returns the number of indices consulted per operation.
func (c *Config[E]) HashCount() int { return c.hashCount }

// Capacity returns the bit-array / store length this config is bound to.
func (c *Config[E]) Capacity() int { return c.capacity }

// WithCapacity derives a new config with capacity c, rebinding the
// original (pre-rebinding) hasher rather than the already-bound one.
func (c *Config[E]) WithCapacity(capacity int) (*Config[E], error) {
	return NewWithCapacity(capacity, c.original, c.hashCount)
}

// Equal reports compatibility: equal hashCount and equal bound hasher.
// Capacity is derivable from the hasher's size and is therefore not an
// independent axis of equality.
func (c *Config[E]) Equal(other *Config[E]) bool {
	if other == nil {
		return false
	}
	return c.hashCount == other.hashCount && c.bound.Equal(other.bound)
}
