// Package bloomfactory is the single entry point spec §6 names: given a
// BloomConfig[K] a client builds a BloomSet[K] or a BloomMap[K,V] without
// reaching into bitstore/store/bloomset/bloommap constructors directly.
// Grounded on the teacher's free-function constructors (New, NewWithM,
// From in ericvolp12-atomic-bloom/bloom.go), generalized from a single
// concrete BloomFilter type to a generic config-driven factory.
package bloomfactory

import (
	"log/slog"

	"github.com/bloomlattice/bloomlattice/bitstore"
	"github.com/bloomlattice/bloomlattice/bloomconfig"
	"github.com/bloomlattice/bloomlattice/bloomerr"
	"github.com/bloomlattice/bloomlattice/bloommap"
	"github.com/bloomlattice/bloomlattice/bloomset"
	"github.com/bloomlattice/bloomlattice/hasher"
	"github.com/bloomlattice/bloomlattice/lattice"
	"github.com/bloomlattice/bloomlattice/metrics"
	"github.com/bloomlattice/bloomlattice/store"
)

// EstimateCapacityAndHashCount is a convenience wrapping
// bloomset.EstimateParameters, letting a caller go straight from an
// expected element count and target false-positive rate to the
// (capacity, hashCount) pair a Config needs, without reaching into
// bloomset directly.
func EstimateCapacityAndHashCount(expectedElements uint, falsePositiveRate float64) (capacity, hashCount uint) {
	return bloomset.EstimateParameters(expectedElements, falsePositiveRate)
}

// NewConfig is a convenience building a Config[K] over a Murmur3Hasher of
// size capacity, the given quantity and toBytes projection, with the given
// hashCount, saving a caller the trip through bloomconfig and hasher.
func NewConfig[K any](capacity int, hashCount int, toBytes func(K) []byte, quantity int) (*bloomconfig.Config[K], error) {
	h := hasher.NewMurmur3Hasher[K](capacity, quantity, toBytes)
	return bloomconfig.NewWithCapacity[K](capacity, h, hashCount)
}

// Factory carries a BloomConfig[K] and the cross-cutting options (name,
// logger, recorder) every set or map it builds is constructed with.
type Factory[K any] struct {
	cfg    *bloomconfig.Config[K]
	name   string
	logger *slog.Logger
	rec    *metrics.Recorder
}

// Option configures cross-cutting concerns on every structure a Factory
// produces.
type Option[K any] func(*Factory[K])

// WithName sets the label used in log lines and metrics for structures
// built by this factory.
func WithName[K any](name string) Option[K] {
	return func(f *Factory[K]) { f.name = name }
}

// WithLogger attaches a structured logger.
func WithLogger[K any](l *slog.Logger) Option[K] {
	return func(f *Factory[K]) { f.logger = l }
}

// WithRecorder attaches a metrics recorder.
func WithRecorder[K any](r *metrics.Recorder) Option[K] {
	return func(f *Factory[K]) { f.rec = r }
}

// New builds a Factory over cfg.
func New[K any](cfg *bloomconfig.Config[K], opts ...Option[K]) (*Factory[K], error) {
	if cfg == nil {
		return nil, bloomerr.InvalidArgument("bloomfactory: config is nil")
	}
	f := &Factory[K]{cfg: cfg, name: "bloom"}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// NewSet allocates a fresh bit store of length Capacity() and returns a
// BloomSet over it.
func (f *Factory[K]) NewSet() bloomset.BloomSet[K] {
	bits := bitstore.New(uint(f.cfg.Capacity()))
	return bloomset.New[K](f.cfg, bits, bloomset.WithName[K](f.name), bloomset.WithLogger[K](f.logger), bloomset.WithRecorder[K](f.rec))
}

// NewSetFromBits adopts a caller-supplied mutable bit store: capacity is
// taken from the store's own length, and the factory's config is resized
// to match if necessary (spec §6, "new_set(bits)").
func (f *Factory[K]) NewSetFromBits(bits *bitstore.BitStore) (bloomset.BloomSet[K], error) {
	if bits == nil {
		return nil, bloomerr.InvalidArgument("bloomfactory: bits is nil")
	}
	if !bits.IsMutable() {
		return nil, bloomerr.InvalidArgument("bloomfactory: bits is immutable")
	}
	cfg := f.cfg
	if int(bits.Size()) != cfg.Capacity() {
		resized, err := cfg.WithCapacity(int(bits.Size()))
		if err != nil {
			return nil, err
		}
		cfg = resized
	}
	return bloomset.New[K](cfg, bits, bloomset.WithName[K](f.name), bloomset.WithLogger[K](f.logger), bloomset.WithRecorder[K](f.rec)), nil
}

// StorageFactory allocates a fresh Store[V] of the given length, used by
// NewMapAllocated for the "new_map(storage_factory, lattice)" factory
// entry point.
type StorageFactory[V any] func(length int) *store.Store[V]

// NewMapFromStore adopts a caller-supplied mutable value store of length
// Capacity() and pairs it with storeLattice as both the store- and
// access-lattice (spec §6, "new_map(store, lattice)"). Go methods cannot
// introduce a type parameter beyond their receiver's, so this and
// NewMapAllocated are package-level functions taking the Factory as their
// first argument rather than methods on *Factory[K].
func NewMapFromStore[K, V any](f *Factory[K], values *store.Store[V], storeLattice lattice.Lattice[V], opts ...bloommap.Option[K, V]) (bloommap.BloomMap[K, V], error) {
	if values == nil {
		return nil, bloomerr.InvalidArgument("bloomfactory: values store is nil")
	}
	if !values.IsMutable() {
		return nil, bloomerr.InvalidArgument("bloomfactory: values store is immutable")
	}
	if values.Size() != f.cfg.Capacity() {
		return nil, bloomerr.InvalidArgument("bloomfactory: values store length %d does not match capacity %d", values.Size(), f.cfg.Capacity())
	}
	allOpts := append([]bloommap.Option[K, V]{
		bloommap.WithName[K, V](f.name),
		bloommap.WithLogger[K, V](f.logger),
		bloommap.WithRecorder[K, V](f.rec),
	}, opts...)
	return bloommap.New[K, V](f.cfg, storeLattice, values, allOpts...)
}

// NewMapAllocated allocates a Store[V] of length Capacity() via alloc and
// pairs it with storeLattice (spec §6, "new_map(storage_factory,
// lattice)").
func NewMapAllocated[K, V any](f *Factory[K], alloc StorageFactory[V], storeLattice lattice.Lattice[V], opts ...bloommap.Option[K, V]) (bloommap.BloomMap[K, V], error) {
	if alloc == nil {
		return nil, bloomerr.InvalidArgument("bloomfactory: storage factory is nil")
	}
	values := alloc(f.cfg.Capacity())
	return NewMapFromStore[K, V](f, values, storeLattice, opts...)
}
