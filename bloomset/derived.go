package bloomset

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/bloomlattice/bloomlattice/bitstore"
	"github.com/bloomlattice/bloomlattice/bloomconfig"
	"github.com/bloomlattice/bloomlattice/bloomerr"
	"github.com/bloomlattice/bloomlattice/metrics"
)

// Mutator lets a foreign owner (bloommap's Keys/AsBloomSet projections)
// supply write semantics for a Derived BloomSet without that set owning
// any storage of its own. A nil Mutator makes the Derived set's mutating
// operations fail with bloomerr.ErrImmutable, which is exactly bloommap.
// Keys()'s "read-only from the set's side" contract.
type Mutator[E any] interface {
	Add(e E) (bool, error)
	AddAllSet(bits *bitstore.BitStore) (bool, error)
	Clear() error
}

// Derived is a BloomSet whose bits are computed by a BitSource owned by
// someone else (spec §9: "represent live derived views as thin wrappers
// carrying a reference to the owning structure"). It backs BloomMap's
// Keys/AsBloomSet projections, which live in the bloommap package and
// therefore cannot share boundedView's unexported fields directly;
// BloomSet.BoundedBy uses boundedView, which inlines the same pattern.
type Derived[E any] struct {
	queryMixin[E]
	src    BitSource
	mut    Mutator[E]
	id     uuid.UUID
	name   string
	logger *slog.Logger
	rec    *metrics.Recorder
}

// NewDerived builds a read BloomSet over src, optionally writable
// through mut.
func NewDerived[E any](cfg *bloomconfig.Config[E], src BitSource, mut Mutator[E], name string, logger *slog.Logger, rec *metrics.Recorder) *Derived[E] {
	if name == "" {
		name = "derived"
	}
	return &Derived[E]{
		queryMixin: queryMixin[E]{cfg: cfg, src: src},
		src:        src,
		mut:        mut,
		id:         uuid.New(),
		name:       name,
		logger:     logger,
		rec:        rec,
	}
}

func (d *Derived[E]) logMutation(op string) {
	if d.logger != nil {
		d.logger.Debug("bloomset mutation", "structure", d.name, "op", op, "id", d.id.String())
	}
	d.rec.Mutation(d.name, op)
}

func (d *Derived[E]) Bits() *bitstore.BitStore {
	capacity := d.src.Capacity()
	bs := bitstore.New(uint(capacity))
	for i := 0; i < capacity; i++ {
		if d.src.BitAt(i) {
			_ = bs.Set(uint(i), true)
		}
	}
	return bs.ImmutableView()
}

func (d *Derived[E]) ID() uuid.UUID   { return d.id }
func (d *Derived[E]) IsMutable() bool { return d.mut != nil }

func (d *Derived[E]) Add(e E) (bool, error) {
	if d.mut == nil {
		return false, bloomerr.Immutable("bloomset: derived set is read-only")
	}
	changed, err := d.mut.Add(e)
	if err == nil && changed {
		d.logMutation("add")
	}
	return changed, err
}

func (d *Derived[E]) AddAllElements(es []E) (bool, error) {
	if es == nil {
		return false, bloomerr.InvalidArgument("bloomset: elements slice is nil")
	}
	if d.mut == nil {
		return false, bloomerr.Immutable("bloomset: derived set is read-only")
	}
	anyChanged := false
	for _, e := range es {
		changed, err := d.Add(e)
		if err != nil {
			return false, err
		}
		if changed {
			anyChanged = true
		}
	}
	return anyChanged, nil
}

func (d *Derived[E]) AddAllSet(other BloomSet[E]) (bool, error) {
	if other == nil {
		return false, bloomerr.InvalidArgument("bloomset: other set is nil")
	}
	if !d.cfg.Equal(other.Config()) {
		return false, bloomerr.InvalidArgument("bloomset: incompatible configs")
	}
	if d.mut == nil {
		return false, bloomerr.Immutable("bloomset: derived set is read-only")
	}
	changed, err := d.mut.AddAllSet(other.Bits())
	if err == nil && changed {
		d.logMutation("addAllSet")
	}
	return changed, err
}

func (d *Derived[E]) Clear() error {
	if d.mut == nil {
		return bloomerr.Immutable("bloomset: derived set is read-only")
	}
	if err := d.mut.Clear(); err != nil {
		return err
	}
	d.logMutation("clear")
	return nil
}

func (d *Derived[E]) ContainsAll(other BloomSet[E]) (bool, error) {
	if other == nil {
		return false, bloomerr.InvalidArgument("bloomset: other set is nil")
	}
	if !d.cfg.Equal(other.Config()) {
		return false, bloomerr.InvalidArgument("bloomset: incompatible configs")
	}
	return d.Bits().Contains(other.Bits()), nil
}

func (d *Derived[E]) BoundedBy(other BloomSet[E]) (BloomSet[E], error) {
	if other == nil {
		return nil, bloomerr.InvalidArgument("bloomset: other set is nil")
	}
	if !d.cfg.Equal(other.Config()) {
		return nil, bloomerr.InvalidArgument("bloomset: incompatible configs")
	}
	return newBoundedView[E](d.cfg, d, other, d.name+".boundedBy", d.logger, d.rec), nil
}

func (d *Derived[E]) ImmutableView() BloomSet[E] { return d }

func (d *Derived[E]) ImmutableCopy() BloomSet[E] {
	return New[E](d.cfg, d.Bits().ImmutableCopy(), WithName[E](d.name+".copy"), WithLogger[E](d.logger), WithRecorder[E](d.rec))
}

func (d *Derived[E]) MutableCopy() BloomSet[E] {
	return New[E](d.cfg, d.Bits().MutableCopy(), WithName[E](d.name+".copy"), WithLogger[E](d.logger), WithRecorder[E](d.rec))
}

func (d *Derived[E]) Equal(other BloomSet[E]) bool { return equalSets[E](d, other) }
func (d *Derived[E]) Hash() uint64                 { return hashSet[E](d) }
