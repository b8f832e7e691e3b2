package lattice

import "golang.org/x/exp/constraints"

// IntRangeLattice is the ordered-integer-range lattice [lo, hi]: meet and
// join are min and max, and BoundedAbove narrows hi. This is the
// "approximate max-of-keys" lattice from spec §4.3's worked example and
// the one exercised by the Concrete Scenario 4 ("Map supremum bounded").
type IntRangeLattice[N constraints.Integer] struct {
	lo, hi N
}

// NewIntRangeLattice builds the lattice [lo, hi]. Panics if hi < lo,
// mirroring the pack's convention of failing fast on malformed numeric
// ranges rather than silently swapping bounds.
func NewIntRangeLattice[N constraints.Integer](lo, hi N) *IntRangeLattice[N] {
	if hi < lo {
		panic("lattice: IntRangeLattice requires hi >= lo")
	}
	return &IntRangeLattice[N]{lo: lo, hi: hi}
}

func (l *IntRangeLattice[N]) Top() N    { return l.hi }
func (l *IntRangeLattice[N]) Bottom() N { return l.lo }

func (l *IntRangeLattice[N]) Meet(a, b N) N {
	if a < b {
		return a
	}
	return b
}

func (l *IntRangeLattice[N]) Join(a, b N) N {
	if a > b {
		return a
	}
	return b
}

func (l *IntRangeLattice[N]) Contains(v N) bool { return v >= l.lo && v <= l.hi }

func (l *IntRangeLattice[N]) IsOrdered(a, b N) bool { return a <= b }
func (l *IntRangeLattice[N]) Equal(a, b N) bool     { return a == b }

func (l *IntRangeLattice[N]) IsBoundedBelow() bool { return true }

func (l *IntRangeLattice[N]) BoundedAbove(u N) Lattice[N] {
	bound := u
	if bound > l.hi {
		bound = l.hi
	}
	if bound == l.hi {
		return l
	}
	return NewIntRangeLattice(l.lo, bound)
}
