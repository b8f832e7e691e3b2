package bloomset

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/bloomlattice/bloomlattice/bitstore"
	"github.com/bloomlattice/bloomlattice/bloomconfig"
	"github.com/bloomlattice/bloomlattice/bloomerr"
	"github.com/bloomlattice/bloomlattice/metrics"
)

// boundedView is the derived, immutable BloomSet returned by BoundedBy:
// its bit at i is ¬this.bits[i] ∨ other.bits[i], computed fresh on every
// read from the two live sets it was built from (spec §4.2's BoundedBy,
// and §9's guidance to represent live derived views as thin wrappers
// carrying a reference to the owning structures rather than snapshots).
type boundedView[E any] struct {
	queryMixin[E]
	this, other BloomSet[E]
	id          uuid.UUID
	name        string
	logger      *slog.Logger
	rec         *metrics.Recorder
}

func newBoundedView[E any](cfg *bloomconfig.Config[E], this, other BloomSet[E], name string, logger *slog.Logger, rec *metrics.Recorder) *boundedView[E] {
	v := &boundedView[E]{this: this, other: other, id: uuid.New(), name: name, logger: logger, rec: rec}
	v.queryMixin = queryMixin[E]{cfg: cfg, src: v}
	return v
}

// Capacity, BitAt and Ones implement BitSource directly against the two
// underlying live sets, so boundedView never materializes a full bit
// array except when Bits() is explicitly requested.
func (v *boundedView[E]) Capacity() int { return int(v.this.Bits().Size()) }

func (v *boundedView[E]) BitAt(i int) bool {
	return !v.this.Bits().Get(uint(i)) || v.other.Bits().Get(uint(i))
}

func (v *boundedView[E]) Ones() int {
	n, capacity := 0, v.Capacity()
	for i := 0; i < capacity; i++ {
		if v.BitAt(i) {
			n++
		}
	}
	return n
}

func (v *boundedView[E]) Bits() *bitstore.BitStore {
	capacity := v.Capacity()
	bs := bitstore.New(uint(capacity))
	for i := 0; i < capacity; i++ {
		if v.BitAt(i) {
			_ = bs.Set(uint(i), true)
		}
	}
	return bs.ImmutableView()
}

func (v *boundedView[E]) ID() uuid.UUID   { return v.id }
func (v *boundedView[E]) IsMutable() bool { return false }

func (v *boundedView[E]) Add(E) (bool, error) {
	return false, bloomerr.Immutable("bloomset: boundedBy view is immutable")
}

func (v *boundedView[E]) AddAllElements([]E) (bool, error) {
	return false, bloomerr.Immutable("bloomset: boundedBy view is immutable")
}

func (v *boundedView[E]) AddAllSet(BloomSet[E]) (bool, error) {
	return false, bloomerr.Immutable("bloomset: boundedBy view is immutable")
}

func (v *boundedView[E]) Clear() error {
	return bloomerr.Immutable("bloomset: boundedBy view is immutable")
}

func (v *boundedView[E]) ContainsAll(other BloomSet[E]) (bool, error) {
	if other == nil {
		return false, bloomerr.InvalidArgument("bloomset: other set is nil")
	}
	if !v.cfg.Equal(other.Config()) {
		return false, bloomerr.InvalidArgument("bloomset: incompatible configs")
	}
	return v.Bits().Contains(other.Bits()), nil
}

func (v *boundedView[E]) BoundedBy(other BloomSet[E]) (BloomSet[E], error) {
	if other == nil {
		return nil, bloomerr.InvalidArgument("bloomset: other set is nil")
	}
	if !v.cfg.Equal(other.Config()) {
		return nil, bloomerr.InvalidArgument("bloomset: incompatible configs")
	}
	return newBoundedView[E](v.cfg, v, other, v.name+".boundedBy", v.logger, v.rec), nil
}

func (v *boundedView[E]) ImmutableView() BloomSet[E] { return v }

func (v *boundedView[E]) ImmutableCopy() BloomSet[E] {
	return New[E](v.cfg, v.Bits().ImmutableCopy(), WithName[E](v.name+".copy"), WithLogger[E](v.logger), WithRecorder[E](v.rec))
}

func (v *boundedView[E]) MutableCopy() BloomSet[E] {
	return New[E](v.cfg, v.Bits().MutableCopy(), WithName[E](v.name+".copy"), WithLogger[E](v.logger), WithRecorder[E](v.rec))
}

func (v *boundedView[E]) Equal(other BloomSet[E]) bool { return equalSets[E](v, other) }
func (v *boundedView[E]) Hash() uint64                 { return hashSet[E](v) }
