// Package bloomset implements BloomSet: the bit-array-backed
// probabilistic set of spec §4.2, its compatibility algebra
// (containsAll, boundedBy, addAll of another set), and the mutability
// discipline of spec §4.4.
//
// The shared query operations (mightContain, mightContainAll, isEmpty,
// isFull, getFalsePositiveProbability) are
// factored into queryMixin, following the "capability trait with
// default implementations keyed off config()/bits()" re-architecture
// pattern the specification names in §9 — Go's analogue of that pattern
// is struct embedding over a small BitSource interface, so the same
// logic serves both the live, bit-owning set and the computed BoundedBy
// view without duplication.
package bloomset

import (
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/bloomlattice/bloomlattice/bitstore"
	"github.com/bloomlattice/bloomlattice/bloomconfig"
	"github.com/bloomlattice/bloomlattice/bloomerr"
	"github.com/bloomlattice/bloomlattice/metrics"
)

// BloomSet is a live pairing of a BloomConfig[E] and a bit store,
// answering approximate containment queries with no false negatives.
type BloomSet[E any] interface {
	// Config returns the shared configuration.
	Config() *bloomconfig.Config[E]
	// Bits returns an immutable view of the underlying bits.
	Bits() *bitstore.BitStore

	MightContain(e E) bool
	MightContainAll(es []E) bool

	Add(e E) (bool, error)
	AddAllElements(es []E) (bool, error)
	AddAllSet(other BloomSet[E]) (bool, error)
	Clear() error

	IsEmpty() bool
	IsFull() bool

	ContainsAll(other BloomSet[E]) (bool, error)
	BoundedBy(other BloomSet[E]) (BloomSet[E], error)

	FalsePositiveProbability() float64
	// FillRatio returns ones/capacity, the raw quantity
	// FalsePositiveProbability raises to the hashCount power.
	FillRatio() float64

	IsMutable() bool
	ImmutableView() BloomSet[E]
	ImmutableCopy() BloomSet[E]
	MutableCopy() BloomSet[E]

	Equal(other BloomSet[E]) bool
	Hash() uint64

	// ID is a per-wrapper identity used only for log correlation; it is
	// not part of equality.
	ID() uuid.UUID
}

// BitSource is the minimal read surface queryMixin needs: the live set
// backs it directly with its bit store, BoundedBy backs it with a
// per-index formula over two other sets.
type BitSource interface {
	Capacity() int
	BitAt(i int) bool
	Ones() int
}

// queryMixin implements every BloomSet query operation that depends only
// on (config, BitSource), shared by liveSet and boundedView.
type queryMixin[E any] struct {
	cfg *bloomconfig.Config[E]
	src BitSource
}

func (q *queryMixin[E]) Config() *bloomconfig.Config[E] { return q.cfg }

func (q *queryMixin[E]) MightContain(e E) bool {
	hc := q.cfg.Hasher().Hash(e)
	for i := 0; i < q.cfg.HashCount(); i++ {
		if !q.src.BitAt(hc.Next()) {
			return false
		}
	}
	return true
}

func (q *queryMixin[E]) MightContainAll(es []E) bool {
	for _, e := range es {
		if !q.MightContain(e) {
			return false
		}
	}
	return true
}

func (q *queryMixin[E]) IsEmpty() bool { return q.src.Ones() == 0 }
func (q *queryMixin[E]) IsFull() bool  { return q.src.Ones() == q.src.Capacity() }

func (q *queryMixin[E]) FalsePositiveProbability() float64 {
	return math.Pow(q.FillRatio(), float64(q.cfg.HashCount()))
}

func (q *queryMixin[E]) FillRatio() float64 {
	return float64(q.src.Ones()) / float64(q.src.Capacity())
}

// bitsSource adapts a *bitstore.BitStore to BitSource.
type bitsSource struct{ bits *bitstore.BitStore }

func (b bitsSource) Capacity() int    { return int(b.bits.Size()) }
func (b bitsSource) BitAt(i int) bool { return b.bits.Get(uint(i)) }
func (b bitsSource) Ones() int        { return b.bits.OnesCount() }

// equalSets and hashSet are shared by every BloomSet implementation:
// equal iff configs equal and bits equal; hash is the hash of the bits.
func equalSets[E any](a, b BloomSet[E]) bool {
	if b == nil {
		return false
	}
	return a.Config().Equal(b.Config()) && a.Bits().Equal(b.Bits())
}

func hashSet[E any](s BloomSet[E]) uint64 { return s.Bits().Hash() }

// Option configures optional cross-cutting concerns (name for metrics
// labeling, structured logging, Prometheus recording) on a constructed
// BloomSet. None of these affect the contract above.
type Option[E any] func(*liveSet[E])

// WithName sets the label used in log lines and metrics.
func WithName[E any](name string) Option[E] {
	return func(s *liveSet[E]) { s.name = name }
}

// WithLogger attaches a structured logger for mutating operations. A nil
// logger (the default) disables logging entirely.
func WithLogger[E any](l *slog.Logger) Option[E] {
	return func(s *liveSet[E]) { s.logger = l }
}

// WithRecorder attaches a metrics recorder for mutating operations. A
// nil recorder (the default) disables metrics entirely.
func WithRecorder[E any](r *metrics.Recorder) Option[E] {
	return func(s *liveSet[E]) { s.rec = r }
}

// New builds a live BloomSet over cfg, owning bits.
func New[E any](cfg *bloomconfig.Config[E], bits *bitstore.BitStore, opts ...Option[E]) BloomSet[E] {
	s := &liveSet[E]{bits: bits, id: uuid.New(), name: "bloomset"}
	for _, opt := range opts {
		opt(s)
	}
	s.queryMixin = queryMixin[E]{cfg: cfg, src: bitsSource{bits: bits}}
	return s
}

// liveSet is the bit-owning BloomSet implementation.
type liveSet[E any] struct {
	queryMixin[E]
	bits   *bitstore.BitStore
	id     uuid.UUID
	name   string
	logger *slog.Logger
	rec    *metrics.Recorder
}

func (s *liveSet[E]) Bits() *bitstore.BitStore { return s.bits.ImmutableView() }
func (s *liveSet[E]) ID() uuid.UUID            { return s.id }
func (s *liveSet[E]) IsMutable() bool          { return s.bits.IsMutable() }

func (s *liveSet[E]) logMutation(op string) {
	if s.logger != nil {
		s.logger.Debug("bloomset mutation", "structure", s.name, "op", op, "id", s.id.String())
	}
	s.rec.Mutation(s.name, op)
}

// Add walks the hash stream once, calling GetThenSet on each index, and
// reports whether any previously-clear bit was set — the single-pass
// formulation from spec §4.2's algorithm note (the alternative two-phase
// scan-then-set formulation yields identical post-state and is not
// implemented separately).
func (s *liveSet[E]) Add(e E) (bool, error) {
	if !s.bits.IsMutable() {
		return false, bloomerr.Immutable("bloomset: set is immutable")
	}
	hc := s.cfg.Hasher().Hash(e)
	changed := false
	for i := 0; i < s.cfg.HashCount(); i++ {
		prev, err := s.bits.GetThenSet(uint(hc.Next()), true)
		if err != nil {
			return false, err
		}
		if !prev {
			changed = true
		}
	}
	s.logMutation("add")
	return changed, nil
}

// AddAllElements folds Add over es without short-circuiting: every
// element is visited even after the first mutation is observed.
func (s *liveSet[E]) AddAllElements(es []E) (bool, error) {
	if es == nil {
		return false, bloomerr.InvalidArgument("bloomset: elements slice is nil")
	}
	if !s.bits.IsMutable() {
		return false, bloomerr.Immutable("bloomset: set is immutable")
	}
	anyChanged := false
	for _, e := range es {
		changed, err := s.Add(e)
		if err != nil {
			return false, err
		}
		if changed {
			anyChanged = true
		}
	}
	return anyChanged, nil
}

func (s *liveSet[E]) AddAllSet(other BloomSet[E]) (bool, error) {
	if other == nil {
		return false, bloomerr.InvalidArgument("bloomset: other set is nil")
	}
	if !s.cfg.Equal(other.Config()) {
		return false, bloomerr.InvalidArgument("bloomset: incompatible configs")
	}
	changed, err := s.bits.Or(other.Bits())
	if err != nil {
		return false, err
	}
	if changed {
		s.logMutation("addAllSet")
	}
	return changed, nil
}

func (s *liveSet[E]) Clear() error {
	if !s.bits.IsMutable() {
		return bloomerr.Immutable("bloomset: set is immutable")
	}
	if err := s.bits.ClearWithZeros(); err != nil {
		return err
	}
	s.logMutation("clear")
	return nil
}

func (s *liveSet[E]) ContainsAll(other BloomSet[E]) (bool, error) {
	if other == nil {
		return false, bloomerr.InvalidArgument("bloomset: other set is nil")
	}
	if !s.cfg.Equal(other.Config()) {
		return false, bloomerr.InvalidArgument("bloomset: incompatible configs")
	}
	return s.bits.Contains(other.Bits()), nil
}

func (s *liveSet[E]) BoundedBy(other BloomSet[E]) (BloomSet[E], error) {
	if other == nil {
		return nil, bloomerr.InvalidArgument("bloomset: other set is nil")
	}
	if !s.cfg.Equal(other.Config()) {
		return nil, bloomerr.InvalidArgument("bloomset: incompatible configs")
	}
	return newBoundedView[E](s.cfg, s, other, s.name+".boundedBy", s.logger, s.rec), nil
}

func (s *liveSet[E]) ImmutableView() BloomSet[E] {
	return &liveSet[E]{
		queryMixin: queryMixin[E]{cfg: s.cfg, src: bitsSource{bits: s.bits.ImmutableView()}},
		bits:       s.bits.ImmutableView(),
		id:         uuid.New(),
		name:       s.name,
		logger:     s.logger,
		rec:        s.rec,
	}
}

func (s *liveSet[E]) ImmutableCopy() BloomSet[E] {
	bits := s.bits.ImmutableCopy()
	return &liveSet[E]{
		queryMixin: queryMixin[E]{cfg: s.cfg, src: bitsSource{bits: bits}},
		bits:       bits,
		id:         uuid.New(),
		name:       s.name,
		logger:     s.logger,
		rec:        s.rec,
	}
}

func (s *liveSet[E]) MutableCopy() BloomSet[E] {
	bits := s.bits.MutableCopy()
	return &liveSet[E]{
		queryMixin: queryMixin[E]{cfg: s.cfg, src: bitsSource{bits: bits}},
		bits:       bits,
		id:         uuid.New(),
		name:       s.name,
		logger:     s.logger,
		rec:        s.rec,
	}
}

func (s *liveSet[E]) Equal(other BloomSet[E]) bool { return equalSets[E](s, other) }
func (s *liveSet[E]) Hash() uint64                 { return hashSet[E](s) }
