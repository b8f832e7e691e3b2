// Package store implements the generic typed-store primitive: an
// indexable, fixed-capacity array of values with the same mutability
// discipline as bitstore.BitStore, used as BloomMap's backing storage.
package store

import "github.com/bloomlattice/bloomlattice/bloomerr"

type state[V any] struct {
	values []V
}

// Store is a fixed-length, indexable array of V with a mutability flag.
type Store[V any] struct {
	st      *state[V]
	mutable bool
}

// New allocates a fresh, mutable store of the given length, every slot
// initialized to the supplied zero value.
func New[V any](length int, zero V) *Store[V] {
	values := make([]V, length)
	for i := range values {
		values[i] = zero
	}
	return &Store[V]{st: &state[V]{values: values}, mutable: true}
}

// FromSlice adopts values directly as the backing array (no copy). The
// caller must not retain other references to values if mutable is true.
func FromSlice[V any](values []V, mutable bool) *Store[V] {
	return &Store[V]{st: &state[V]{values: values}, mutable: mutable}
}

// Size returns the store's fixed length.
func (s *Store[V]) Size() int { return len(s.st.values) }

// IsMutable reports whether mutating methods are permitted.
func (s *Store[V]) IsMutable() bool { return s.mutable }

// Get reads the value at index i.
func (s *Store[V]) Get(i int) V { return s.st.values[i] }

// Set writes the value at index i.
func (s *Store[V]) Set(i int, v V) error {
	if !s.mutable {
		return bloomerr.Immutable("store: store is immutable")
	}
	s.st.values[i] = v
	return nil
}

// Fill writes v to every index.
func (s *Store[V]) Fill(v V) error {
	if !s.mutable {
		return bloomerr.Immutable("store: store is immutable")
	}
	for i := range s.st.values {
		s.st.values[i] = v
	}
	return nil
}

// AsSlice returns an independent copy of the current contents.
func (s *Store[V]) AsSlice() []V {
	out := make([]V, len(s.st.values))
	copy(out, s.st.values)
	return out
}

// Equal reports whether s and other have equal length and pairwise-equal
// values under eq.
func (s *Store[V]) Equal(other *Store[V], eq func(a, b V) bool) bool {
	if other == nil || len(s.st.values) != len(other.st.values) {
		return false
	}
	for i := range s.st.values {
		if !eq(s.st.values[i], other.st.values[i]) {
			return false
		}
	}
	return true
}

// ImmutableView returns a read-only wrapper sharing storage with s.
func (s *Store[V]) ImmutableView() *Store[V] {
	return &Store[V]{st: s.st, mutable: false}
}

// ImmutableCopy returns a read-only, independent snapshot.
func (s *Store[V]) ImmutableCopy() *Store[V] {
	return &Store[V]{st: &state[V]{values: s.AsSlice()}, mutable: false}
}

// MutableCopy returns an independently mutable snapshot.
func (s *Store[V]) MutableCopy() *Store[V] {
	return &Store[V]{st: &state[V]{values: s.AsSlice()}, mutable: true}
}

// TransformedView returns a lazily-mapped, always read-only view: each
// Get(i) call applies fn to the live underlying value.
func (s *Store[V]) TransformedView(fn func(V) V) *TransformedStore[V] {
	return &TransformedStore[V]{base: s, fn: fn}
}

// TransformedStore is a read-only, lazily-computed view over a Store.
type TransformedStore[V any] struct {
	base *Store[V]
	fn   func(V) V
}

// Size returns the underlying store's length.
func (t *TransformedStore[V]) Size() int { return t.base.Size() }

// Get applies the transform to the live value at index i.
func (t *TransformedStore[V]) Get(i int) V { return t.fn(t.base.Get(i)) }
