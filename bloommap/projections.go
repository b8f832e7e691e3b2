package bloommap

import (
	"github.com/bloomlattice/bloomlattice/bitstore"
	"github.com/bloomlattice/bloomlattice/bloomset"
)

// keysSource backs Keys(): bit i is "values[i] != bottom(L_s)" (spec §4.3).
type keysSource[K, V any] struct{ m *mapView[K, V] }

func (s keysSource[K, V]) Capacity() int { return s.m.core.values.Size() }

func (s keysSource[K, V]) BitAt(i int) bool {
	return !s.m.core.storeLattice.Equal(s.m.core.values.Get(i), s.m.core.storeLattice.Bottom())
}

func (s keysSource[K, V]) Ones() int {
	n := 0
	for i := 0; i < s.Capacity(); i++ {
		if s.BitAt(i) {
			n++
		}
	}
	return n
}

// Keys returns a live, read-only projection of which indices have ever
// been raised above bottom. It carries no Mutator: mutation happens only
// through the owning map (spec §4.3, "read-only from the set's side").
func (m *mapView[K, V]) Keys() bloomset.BloomSet[K] {
	return bloomset.NewDerived[K](m.core.cfg, keysSource[K, V]{m: m}, nil, m.name+".keys", m.logger, m.rec)
}

// asBloomSetSource backs AsBloomSet(): bit i is "top(L_a) <= values[i]".
type asBloomSetSource[K, V any] struct{ m *mapView[K, V] }

func (s asBloomSetSource[K, V]) Capacity() int { return s.m.core.values.Size() }

func (s asBloomSetSource[K, V]) BitAt(i int) bool {
	return s.m.core.storeLattice.IsOrdered(s.m.accessLattice.Top(), s.m.core.values.Get(i))
}

func (s asBloomSetSource[K, V]) Ones() int {
	n := 0
	for i := 0; i < s.Capacity(); i++ {
		if s.BitAt(i) {
			n++
		}
	}
	return n
}

// asBloomSetMutator implements bloomset.Mutator[K] in terms of put/join
// against the owning map's store, per spec §4.3's asBloomSet semantics.
type asBloomSetMutator[K, V any] struct{ m *mapView[K, V] }

// Add(k) is defined as "return !equal(top(L_a), put(k, top(L_a)))": true
// iff the put raised at least one cell.
func (a asBloomSetMutator[K, V]) Add(k K) (bool, error) {
	top := a.m.accessLattice.Top()
	previous, err := a.m.Put(k, top)
	if err != nil {
		return false, err
	}
	return !a.m.core.storeLattice.Equal(top, previous), nil
}

// AddAllSet raises values[i] <- join(top(L_a), values[i]) for every bit
// set in other but clear in this projection.
func (a asBloomSetMutator[K, V]) AddAllSet(other *bitstore.BitStore) (bool, error) {
	src := asBloomSetSource[K, V]{m: a.m}
	top := a.m.accessLattice.Top()
	changed := false
	for i := 0; i < src.Capacity(); i++ {
		if !other.Get(uint(i)) || src.BitAt(i) {
			continue
		}
		old := a.m.core.values.Get(i)
		if err := a.m.core.values.Set(i, a.m.core.storeLattice.Join(top, old)); err != nil {
			return false, err
		}
		changed = true
	}
	return changed, nil
}

// Clear defers to the owning map's Clear, per spec §4.3.
func (a asBloomSetMutator[K, V]) Clear() error { return a.m.Clear() }

// AsBloomSet returns a live projection memoized on first call, writable
// through add/addAll (which raise cells to top(L_a)) but not through
// clear-a-single-bit (forbidden by spec §4.3; Clear() on the whole
// projection still defers to the map).
func (m *mapView[K, V]) AsBloomSet() bloomset.BloomSet[K] {
	if m.asSet == nil {
		mut := asBloomSetMutator[K, V]{m: m}
		m.asSet = bloomset.NewDerived[K](m.core.cfg, asBloomSetSource[K, V]{m: m}, mut, m.name+".asBloomSet", m.logger, m.rec)
	}
	return m.asSet
}
