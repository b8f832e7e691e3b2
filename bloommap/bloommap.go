// Package bloommap implements BloomMap: the lattice-valued
// generalization of BloomSet from spec §4.3. Where a BloomSet stores a
// bit per index, a BloomMap stores a value from a bounded lattice L_s
// (the store-lattice) per index, and reads/writes are projected through
// a possibly-narrower access-lattice L_a.
//
// The live/view-sharing discipline is grounded on the same
// pointer-indirection idiom bitstore.BitStore and store.Store use: a
// mapCore holds the config, store-lattice and value store that every
// view of one map shares, and a mapView adds only the access-lattice
// and per-wrapper identity that make one view distinct from another
// over the same core.
package bloommap

import (
	"log/slog"
	"reflect"

	"github.com/google/uuid"

	"github.com/bloomlattice/bloomlattice/bloomconfig"
	"github.com/bloomlattice/bloomlattice/bloomerr"
	"github.com/bloomlattice/bloomlattice/bloomset"
	"github.com/bloomlattice/bloomlattice/lattice"
	"github.com/bloomlattice/bloomlattice/metrics"
	"github.com/bloomlattice/bloomlattice/store"
)

// BloomMap is a live pairing of a BloomConfig[K], a store-lattice, an
// access-lattice, and a value store of length capacity.
type BloomMap[K, V any] interface {
	Config() *bloomconfig.Config[K]
	StoreLattice() lattice.Lattice[V]
	AccessLattice() lattice.Lattice[V]
	// Values returns an immutable view of the raw store-lattice values.
	Values() *store.Store[V]

	Put(k K, v V) (V, error)
	GetSupremum(k K) V
	MightContain(k K) bool
	MightContainAll(ks []K) bool
	Clear() error

	IsEmpty() bool
	IsFull() bool
	// FillRatio returns the fraction of cells that are not bottom(L_s),
	// the BloomMap analogue of BloomSet.FillRatio.
	FillRatio() float64

	Bounds(other BloomMap[K, V]) (bool, error)
	BoundedAbove(u V) BloomMap[K, V]

	Keys() bloomset.BloomSet[K]
	AsBloomSet() bloomset.BloomSet[K]

	IsMutable() bool
	ImmutableView() BloomMap[K, V]
	ImmutableCopy() BloomMap[K, V]
	MutableCopy() BloomMap[K, V]

	// Equal uses object equality of stored values, not lattice equality
	// — see spec §9's open question and DESIGN.md for why the two must
	// stay consistent with Hash.
	Equal(other BloomMap[K, V]) bool
	Hash() uint64

	ID() uuid.UUID
}

// mapCore is the storage every view of one BloomMap shares: cfg,
// store-lattice and values never change identity across
// BoundedAbove-derived views, only accessLattice does.
type mapCore[K, V any] struct {
	cfg          *bloomconfig.Config[K]
	storeLattice lattice.Lattice[V]
	values       *store.Store[V]
	valueEqual   func(a, b V) bool
}

// mapView is the sole BloomMap implementation: both a freshly
// constructed map and every BoundedAbove-derived view of it are
// *mapView values sharing one *mapCore.
type mapView[K, V any] struct {
	core          *mapCore[K, V]
	accessLattice lattice.Lattice[V]
	id            uuid.UUID
	name          string
	logger        *slog.Logger
	rec           *metrics.Recorder

	// asSet memoizes AsBloomSet per spec §3 ("asBloomSet() is memoized
	// on first call"); Keys() is deliberately not memoized.
	asSet bloomset.BloomSet[K]
}

// Option configures a newly constructed BloomMap.
type Option[K, V any] func(*mapView[K, V])

// WithName sets the label used in log lines and metrics.
func WithName[K, V any](name string) Option[K, V] {
	return func(m *mapView[K, V]) { m.name = name }
}

// WithLogger attaches a structured logger for mutating operations.
func WithLogger[K, V any](l *slog.Logger) Option[K, V] {
	return func(m *mapView[K, V]) { m.logger = l }
}

// WithRecorder attaches a metrics recorder for mutating operations.
func WithRecorder[K, V any](r *metrics.Recorder) Option[K, V] {
	return func(m *mapView[K, V]) { m.rec = r }
}

// WithValueEqual overrides the object-equality comparator used by Equal
// (spec §9's open question). The default is reflect.DeepEqual. Hash does
// not consult this comparator.
func WithValueEqual[K, V any](eq func(a, b V) bool) Option[K, V] {
	return func(m *mapView[K, V]) { m.core.valueEqual = eq }
}

// New builds a live BloomMap over cfg with storeLattice as both the
// store- and (initially) access-lattice, backed by values. Rejects a
// store-lattice that is not bounded below, per spec §3's invariant that
// bottom(L_s) be a well-defined "never set" marker.
func New[K, V any](cfg *bloomconfig.Config[K], storeLattice lattice.Lattice[V], values *store.Store[V], opts ...Option[K, V]) (BloomMap[K, V], error) {
	if storeLattice == nil {
		return nil, bloomerr.InvalidArgument("bloommap: store lattice is nil")
	}
	if !storeLattice.IsBoundedBelow() {
		return nil, bloomerr.InvalidArgument("bloommap: store lattice is not bounded below")
	}
	if values == nil {
		return nil, bloomerr.InvalidArgument("bloommap: values store is nil")
	}
	if values.Size() != cfg.Capacity() {
		return nil, bloomerr.InvalidArgument("bloommap: values store length %d does not match capacity %d", values.Size(), cfg.Capacity())
	}
	core := &mapCore[K, V]{
		cfg:          cfg,
		storeLattice: storeLattice,
		values:       values,
		valueEqual:   func(a, b V) bool { return reflect.DeepEqual(a, b) },
	}
	m := &mapView[K, V]{core: core, accessLattice: storeLattice, id: uuid.New(), name: "bloommap"}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

func (m *mapView[K, V]) Config() *bloomconfig.Config[K]    { return m.core.cfg }
func (m *mapView[K, V]) StoreLattice() lattice.Lattice[V]  { return m.core.storeLattice }
func (m *mapView[K, V]) AccessLattice() lattice.Lattice[V] { return m.accessLattice }
func (m *mapView[K, V]) Values() *store.Store[V]           { return m.core.values.ImmutableView() }
func (m *mapView[K, V]) ID() uuid.UUID                     { return m.id }
func (m *mapView[K, V]) IsMutable() bool                   { return m.core.values.IsMutable() }

func (m *mapView[K, V]) logMutation(op string) {
	if m.logger != nil {
		m.logger.Debug("bloommap mutation", "structure", m.name, "op", op, "id", m.id.String())
	}
	m.rec.Mutation(m.name, op)
}

// accessAt projects the store-lattice value at index i down through the
// access-lattice cap: meet(top(L_a), values[i]).
func (m *mapView[K, V]) accessAt(i int) V {
	return m.core.storeLattice.Meet(m.accessLattice.Top(), m.core.values.Get(i))
}

// Put rejects v outside the access-lattice, then for each of the first
// hashCount indices in k's hash stream computes the running meet
// (starting at top(L_a)) of the cell's prior value — the supremum
// getSupremum(k) would have returned before this call — and joins v into
// the cell. The two loops (this one and GetSupremum's) must visit the
// same indices in the same order; both derive their stream from the
// same deterministic Hasher, so they do (spec §9, "Hash-stream reuse").
func (m *mapView[K, V]) Put(k K, v V) (V, error) {
	var zero V
	if !m.core.values.IsMutable() {
		return zero, bloomerr.Immutable("bloommap: map is immutable")
	}
	if !m.accessLattice.Contains(v) {
		return zero, bloomerr.InvalidArgument("bloommap: value outside access lattice")
	}
	hc := m.core.cfg.Hasher().Hash(k)
	previous := m.accessLattice.Top()
	for i := 0; i < m.core.cfg.HashCount(); i++ {
		idx := hc.Next()
		old := m.core.values.Get(idx)
		previous = m.core.storeLattice.Meet(previous, old)
		if err := m.core.values.Set(idx, m.core.storeLattice.Join(v, old)); err != nil {
			return previous, err
		}
	}
	m.logMutation("put")
	return previous, nil
}

func (m *mapView[K, V]) GetSupremum(k K) V {
	hc := m.core.cfg.Hasher().Hash(k)
	acc := m.accessLattice.Top()
	for i := 0; i < m.core.cfg.HashCount(); i++ {
		acc = m.core.storeLattice.Meet(acc, m.core.values.Get(hc.Next()))
	}
	return acc
}

func (m *mapView[K, V]) MightContain(k K) bool {
	hc := m.core.cfg.Hasher().Hash(k)
	bottom := m.core.storeLattice.Bottom()
	for i := 0; i < m.core.cfg.HashCount(); i++ {
		if m.core.storeLattice.Equal(m.core.values.Get(hc.Next()), bottom) {
			return false
		}
	}
	return true
}

func (m *mapView[K, V]) MightContainAll(ks []K) bool {
	for _, k := range ks {
		if !m.MightContain(k) {
			return false
		}
	}
	return true
}

func (m *mapView[K, V]) Clear() error {
	if !m.core.values.IsMutable() {
		return bloomerr.Immutable("bloommap: map is immutable")
	}
	if err := m.core.values.Fill(m.core.storeLattice.Bottom()); err != nil {
		return err
	}
	m.logMutation("clear")
	return nil
}

func (m *mapView[K, V]) IsEmpty() bool {
	bottom := m.core.storeLattice.Bottom()
	for i := 0; i < m.core.values.Size(); i++ {
		if !m.core.storeLattice.Equal(m.core.values.Get(i), bottom) {
			return false
		}
	}
	return true
}

// IsFull compares every cell against the store-lattice top, not the
// access-lattice cap (spec §4.3's explicit note).
func (m *mapView[K, V]) IsFull() bool {
	top := m.core.storeLattice.Top()
	for i := 0; i < m.core.values.Size(); i++ {
		if !m.core.storeLattice.Equal(m.core.values.Get(i), top) {
			return false
		}
	}
	return true
}

func (m *mapView[K, V]) FillRatio() float64 {
	bottom := m.core.storeLattice.Bottom()
	nonBottom := 0
	for i := 0; i < m.core.values.Size(); i++ {
		if !m.core.storeLattice.Equal(m.core.values.Get(i), bottom) {
			nonBottom++
		}
	}
	return float64(nonBottom) / float64(m.core.values.Size())
}

func (m *mapView[K, V]) Bounds(other BloomMap[K, V]) (bool, error) {
	o, ok := other.(*mapView[K, V])
	if other == nil || !ok {
		return false, bloomerr.InvalidArgument("bloommap: other map is nil or a foreign implementation")
	}
	if !m.core.cfg.Equal(o.core.cfg) {
		return false, bloomerr.InvalidArgument("bloommap: incompatible configs")
	}
	if !sameLattice(m.accessLattice, o.accessLattice, m.core.storeLattice.Equal) {
		return false, bloomerr.InvalidArgument("bloommap: incompatible access lattices")
	}
	for i := 0; i < m.core.values.Size(); i++ {
		if !m.core.storeLattice.IsOrdered(o.accessAt(i), m.accessAt(i)) {
			return false, nil
		}
	}
	return true, nil
}

// BoundedAbove returns a live view sharing core with m, capped at u. If
// the resulting lattice equals m's own access-lattice, m itself is
// returned (spec §4.3).
func (m *mapView[K, V]) BoundedAbove(u V) BloomMap[K, V] {
	newLattice := m.accessLattice.BoundedAbove(u)
	if sameLattice(newLattice, m.accessLattice, m.core.storeLattice.Equal) {
		return m
	}
	return &mapView[K, V]{core: m.core, accessLattice: newLattice, id: uuid.New(), name: m.name + ".boundedAbove", logger: m.logger, rec: m.rec}
}

func (m *mapView[K, V]) ImmutableView() BloomMap[K, V] {
	core := &mapCore[K, V]{cfg: m.core.cfg, storeLattice: m.core.storeLattice, values: m.core.values.ImmutableView(), valueEqual: m.core.valueEqual}
	return &mapView[K, V]{core: core, accessLattice: m.accessLattice, id: uuid.New(), name: m.name, logger: m.logger, rec: m.rec}
}

func (m *mapView[K, V]) ImmutableCopy() BloomMap[K, V] {
	core := &mapCore[K, V]{cfg: m.core.cfg, storeLattice: m.core.storeLattice, values: m.core.values.ImmutableCopy(), valueEqual: m.core.valueEqual}
	return &mapView[K, V]{core: core, accessLattice: m.accessLattice, id: uuid.New(), name: m.name, logger: m.logger, rec: m.rec}
}

func (m *mapView[K, V]) MutableCopy() BloomMap[K, V] {
	core := &mapCore[K, V]{cfg: m.core.cfg, storeLattice: m.core.storeLattice, values: m.core.values.MutableCopy(), valueEqual: m.core.valueEqual}
	return &mapView[K, V]{core: core, accessLattice: m.accessLattice, id: uuid.New(), name: m.name, logger: m.logger, rec: m.rec}
}

// Equal compares configs, access-lattices, and value stores using
// object equality of stored values (reflect.DeepEqual by default, or
// the comparator passed via WithValueEqual) — not lattice equality. See
// DESIGN.md: the source this is grounded on explicitly notes that using
// lattice equality here would break Hash consistency, since two
// lattice-equal-but-object-distinct values could hash differently.
func (m *mapView[K, V]) Equal(other BloomMap[K, V]) bool {
	o, ok := other.(*mapView[K, V])
	if other == nil || !ok {
		return false
	}
	if !m.core.cfg.Equal(o.core.cfg) {
		return false
	}
	if !sameLattice(m.accessLattice, o.accessLattice, m.core.storeLattice.Equal) {
		return false
	}
	return m.core.values.Equal(o.core.values, m.core.valueEqual)
}

// Hash is derived from the same object-level value representation Equal
// uses, keeping the two consistent.
func (m *mapView[K, V]) Hash() uint64 {
	var h uint64 = 1469598103934665603
	for i := 0; i < m.core.values.Size(); i++ {
		h ^= uint64(i) + hashOf(m.core.values.Get(i))
		h *= 1099511628211
	}
	return h
}

func hashOf(v any) uint64 {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return uint64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint()
	case reflect.Bool:
		if rv.Bool() {
			return 1
		}
		return 0
	case reflect.String:
		var h uint64 = 1469598103934665603
		for _, b := range []byte(rv.String()) {
			h ^= uint64(b)
			h *= 1099511628211
		}
		return h
	default:
		return 0
	}
}

// sameLattice is a pragmatic structural-equality check for Lattice
// values: same concrete implementation type, same top and same bottom
// under eq. The lattice interface itself exposes no identity beyond its
// behavior, so this is the best compatibility test available without
// requiring every Lattice implementation to carry its own equality.
func sameLattice[V any](a, b lattice.Lattice[V], eq func(x, y V) bool) bool {
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	return eq(a.Top(), b.Top()) && eq(a.Bottom(), b.Bottom())
}
