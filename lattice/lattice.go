// Package lattice provides the bounded-lattice abstraction BloomMap
// generalizes a Bloom filter's {0,1} codomain into: a value space with a
// top, a bottom, a meet (greatest lower bound) and a join (least upper
// bound), an ordering, and sub-lattice construction bounded above by some
// element.
package lattice

// Lattice is a bounded lattice over V: top and bottom exist, meet and
// join are associative/commutative/idempotent, and IsOrdered(a, b) holds
// iff a is below-or-equal b.
type Lattice[V any] interface {
	// Top returns the greatest element.
	Top() V
	// Bottom returns the least element.
	Bottom() V
	// Meet returns the greatest lower bound of a and b.
	Meet(a, b V) V
	// Join returns the least upper bound of a and b.
	Join(a, b V) V
	// Contains reports whether v is a member of this lattice's carrier.
	Contains(v V) bool
	// IsOrdered reports whether a <= b.
	IsOrdered(a, b V) bool
	// Equal is this lattice's equivalence relation over V.
	Equal(a, b V) bool
	// IsBoundedBelow reports whether Bottom is a true least element
	// (required: BloomMap's "never set" marker is Bottom).
	IsBoundedBelow() bool
	// BoundedAbove returns the sub-lattice of this lattice whose carrier
	// is bounded above by u. If u == Top(), implementations may return
	// the receiver itself.
	BoundedAbove(u V) Lattice[V]
}
