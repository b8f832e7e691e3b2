// Package bitstore implements the mutable/immutable bit container the specification treats as an external collaborator: a
// fixed-length bit array with bulk boolean algebra and the library's
// mutability discipline (live view, immutable copy, mutable copy).
//
// It is grounded on the teacher's atomicBitSet (bitset.go): the same
// Set/Test/ClearAll/InPlaceUnion/Count shape, but backed by the pack's
// own non-atomic github.com/bits-and-blooms/bitset, since the
// specification's concurrency model (single-threaded, synchronous, no
// suspension points) needs none of the teacher's atomic.Int64 machinery.
package bitstore

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/bloomlattice/bloomlattice/bloomerr"
)

// state is the shared, indirectly-referenced backing storage. Two
// BitStore values that hold the same *state are a live view pair: a
// mutation through one is immediately observable through the other,
// because ClearWithZeros and Or mutate st.bits in place rather than
// replacing the BitStore's own pointer.
type state struct {
	bits *bitset.BitSet
}

// BitStore is a fixed-length bit array with a mutability flag. The zero
// value is not usable; construct with New or one of the view/copy
// constructors.
type BitStore struct {
	st      *state
	length  uint
	mutable bool
}

// New allocates a fresh, mutable, all-zero BitStore of the given length.
func New(length uint) *BitStore {
	return &BitStore{st: &state{bits: bitset.New(length)}, length: length, mutable: true}
}

// Size returns the fixed length of the store.
func (s *BitStore) Size() uint { return s.length }

// IsMutable reports whether mutating methods are permitted.
func (s *BitStore) IsMutable() bool { return s.mutable }

// Get reads the bit at index i.
func (s *BitStore) Get(i uint) bool { return s.st.bits.Test(i) }

// Set writes the bit at index i. Fails with bloomerr.ErrImmutable on a
// non-mutable store.
func (s *BitStore) Set(i uint, v bool) error {
	if !s.mutable {
		return bloomerr.Immutable("bitstore: store is immutable")
	}
	s.st.bits.SetTo(i, v)
	return nil
}

// GetThenSet atomically, from the caller's point of view, reads the bit
// at i and then writes v, returning the pre-write value. This is the
// single-pass primitive BloomSet.Add is built on (spec §4.2's algorithm
// note).
func (s *BitStore) GetThenSet(i uint, v bool) (bool, error) {
	if !s.mutable {
		return false, bloomerr.Immutable("bitstore: store is immutable")
	}
	prev := s.st.bits.Test(i)
	s.st.bits.SetTo(i, v)
	return prev, nil
}

// ClearWithZeros sets every bit to 0, in place, so live views observe the
// clear.
func (s *BitStore) ClearWithZeros() error {
	if !s.mutable {
		return bloomerr.Immutable("bitstore: store is immutable")
	}
	s.st.bits.ClearAll()
	return nil
}

// Or performs an in-place union with other, returning whether any bit
// changed. Fails with bloomerr.ErrImmutable on a non-mutable store, and
// with bloomerr.ErrInvalidArgument on a length mismatch.
func (s *BitStore) Or(other *BitStore) (bool, error) {
	if !s.mutable {
		return false, bloomerr.Immutable("bitstore: store is immutable")
	}
	if other == nil {
		return false, bloomerr.InvalidArgument("bitstore: other store is nil")
	}
	if other.length != s.length {
		return false, bloomerr.InvalidArgument("bitstore: length mismatch %d != %d", s.length, other.length)
	}
	if s.Contains(other) {
		return false, nil
	}
	s.st.bits.InPlaceUnion(other.st.bits)
	return true, nil
}

// Contains reports whether every bit set in other is also set in s
// (s ⊇ other).
func (s *BitStore) Contains(other *BitStore) bool {
	return s.st.bits.IsSuperSet(other.st.bits)
}

// Equal reports whether s and other have the same length and the same
// bits set.
func (s *BitStore) Equal(other *BitStore) bool {
	if other == nil {
		return false
	}
	return s.length == other.length && s.st.bits.Equal(other.st.bits)
}

// Hash returns a hash of the bit content, suitable for BloomSet.Hash.
func (s *BitStore) Hash() uint64 {
	var h uint64 = 1469598103934665603 // FNV offset basis
	words := s.st.bits.Bytes()
	for _, w := range words {
		h ^= w
		h *= 1099511628211
	}
	return h
}

// OnesCount returns the number of set bits.
func (s *BitStore) OnesCount() int { return int(s.st.bits.Count()) }

// AllZero reports whether every bit is clear.
func (s *BitStore) AllZero() bool { return s.st.bits.None() }

// IsFull reports whether every bit in [0, length) is set.
func (s *BitStore) IsFull() bool { return s.OnesCount() == int(s.length) }

// Complement returns a fresh, immutable snapshot with every bit flipped.
// It is a snapshot, not a live view: the specification's only live
// complement-shaped operation is BloomSet.BoundedBy, which computes its
// bits per-index rather than through Complement.
func (s *BitStore) Complement() *BitStore {
	return &BitStore{st: &state{bits: s.st.bits.Clone().Complement()}, length: s.length, mutable: false}
}

// ImmutableView returns a read-only wrapper sharing storage with s:
// writes through s (or any other mutable view over the same state)
// remain visible.
func (s *BitStore) ImmutableView() *BitStore {
	return &BitStore{st: s.st, length: s.length, mutable: false}
}

// ImmutableCopy returns a read-only, independent snapshot.
func (s *BitStore) ImmutableCopy() *BitStore {
	return &BitStore{st: &state{bits: s.st.bits.Clone()}, length: s.length, mutable: false}
}

// MutableCopy returns an independently mutable snapshot.
func (s *BitStore) MutableCopy() *BitStore {
	return &BitStore{st: &state{bits: s.st.bits.Clone()}, length: s.length, mutable: true}
}

// OnePositions returns the indices of every set bit, in ascending order.
func (s *BitStore) OnePositions() []uint {
	out := make([]uint, 0, s.OnesCount())
	for i, ok := s.st.bits.NextSet(0); ok; i, ok = s.st.bits.NextSet(i + 1) {
		out = append(out, i)
	}
	return out
}
