package bloommap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bloomlattice/bloomlattice/bloomconfig"
	"github.com/bloomlattice/bloomlattice/bloomerr"
	"github.com/bloomlattice/bloomlattice/hasher"
	"github.com/bloomlattice/bloomlattice/lattice"
	"github.com/bloomlattice/bloomlattice/store"
)

func newTestConfig(t *testing.T, capacity, hashCount int) *bloomconfig.Config[string] {
	t.Helper()
	h := hasher.NewMurmur3Hasher[string](capacity, hashCount, func(s string) []byte { return []byte(s) })
	cfg, err := bloomconfig.New[string](h, hashCount)
	require.NoError(t, err)
	return cfg
}

func newTestMap(t *testing.T, capacity, hashCount int) BloomMap[string, int] {
	t.Helper()
	cfg := newTestConfig(t, capacity, hashCount)
	rangeLattice := lattice.NewIntRangeLattice(0, 10000)
	m, err := New[string, int](cfg, rangeLattice, store.New[int](capacity, 0))
	require.NoError(t, err)
	return m
}

func TestPutAndGetSupremum(t *testing.T) {
	m := newTestMap(t, 1000, 10)

	previous, err := m.Put("alice", 50)
	require.NoError(t, err)
	assert.Equal(t, 0, previous, "every cell starts at bottom(L_s), collapsing the running meet to bottom")

	assert.Equal(t, 50, m.GetSupremum("alice"))
}

func TestPutReturnsPriorSupremum(t *testing.T) {
	m := newTestMap(t, 1000, 10)

	_, err := m.Put("alice", 50)
	require.NoError(t, err)

	previous, err := m.Put("alice", 30)
	require.NoError(t, err)
	assert.Equal(t, 50, previous)
	assert.Equal(t, 50, m.GetSupremum("alice"), "put only raises values; a lower put cannot lower the supremum")
}

func TestPutRejectsValueOutsideAccessLattice(t *testing.T) {
	m := newTestMap(t, 1000, 10)
	bounded := m.BoundedAbove(100)

	_, err := bounded.Put("bob", 5000)
	assert.ErrorIs(t, err, bloomerr.ErrInvalidArgument)
}

func TestBoundedAboveCapsSupremumButNotStore(t *testing.T) {
	m := newTestMap(t, 1000, 10)
	view := m.BoundedAbove(100)

	_, err := m.Put("carol", 1500)
	require.NoError(t, err)

	assert.Equal(t, 100, view.GetSupremum("carol"), "the view caps reads at its access-lattice top")
	assert.Equal(t, 1500, m.GetSupremum("carol"), "the base map sees the uncapped stored value")
}

func TestBoundedAboveReturnsSelfWhenUnchanged(t *testing.T) {
	m := newTestMap(t, 1000, 10)
	assert.Same(t, m, m.BoundedAbove(10000))
}

func TestClear(t *testing.T) {
	m := newTestMap(t, 1000, 10)
	_, err := m.Put("dave", 20)
	require.NoError(t, err)
	require.NoError(t, m.Clear())
	assert.True(t, m.IsEmpty())
	assert.Equal(t, 0, m.GetSupremum("dave"))
}

func TestMightContain(t *testing.T) {
	m := newTestMap(t, 1000, 10)
	assert.False(t, m.MightContain("erin"))
	_, err := m.Put("erin", 1)
	require.NoError(t, err)
	assert.True(t, m.MightContain("erin"))
}

func TestKeysProjectionIsLive(t *testing.T) {
	m := newTestMap(t, 1000, 10)
	keys := m.Keys()

	for i := 0; i < 10; i++ {
		name := string(rune('a' + i))
		assert.False(t, keys.MightContain(name))
		_, err := m.Put(name, i+10)
		require.NoError(t, err)
		assert.True(t, keys.MightContain(name))
	}

	require.NoError(t, m.Clear())
	assert.True(t, keys.IsEmpty())
}

func TestKeysProjectionIsReadOnly(t *testing.T) {
	m := newTestMap(t, 1000, 10)
	keys := m.Keys()

	_, err := keys.Add("frank")
	assert.ErrorIs(t, err, bloomerr.ErrImmutable)
}

func TestAsBloomSetIsMemoized(t *testing.T) {
	m := newTestMap(t, 1000, 10)
	first := m.AsBloomSet()
	second := m.AsBloomSet()
	assert.Same(t, first, second)
}

func TestAsBloomSetAddRaisesToAccessTop(t *testing.T) {
	m := newTestMap(t, 1000, 10)
	asSet := m.AsBloomSet()

	changed, err := asSet.Add("gina")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 10000, m.GetSupremum("gina"), "asBloomSet().add(k) is put(k, top(L_a))")

	changed, err = asSet.Add("gina")
	require.NoError(t, err)
	assert.False(t, changed, "raising an already-top cell reports no change")
}

func TestAsBloomSetMightContainReflectsTopAttaining(t *testing.T) {
	m := newTestMap(t, 1000, 10)
	asSet := m.AsBloomSet()

	_, err := m.Put("harry", 5)
	require.NoError(t, err)
	assert.False(t, asSet.MightContain("harry"), "a low value does not raise any cell to top(L_a)")

	_, err = m.Put("harry", 10000)
	require.NoError(t, err)
	assert.True(t, asSet.MightContain("harry"))
}

func TestEqualUsesObjectEquality(t *testing.T) {
	cfg := newTestConfig(t, 100, 4)
	rangeLattice := lattice.NewIntRangeLattice(0, 1000)
	a, err := New[string, int](cfg, rangeLattice, store.New[int](100, 0))
	require.NoError(t, err)
	b, err := New[string, int](cfg, rangeLattice, store.New[int](100, 0))
	require.NoError(t, err)

	assert.True(t, a.Equal(b))

	_, err = a.Put("ivy", 5)
	require.NoError(t, err)
	assert.False(t, a.Equal(b))
}

func TestMutableCopyIsIndependent(t *testing.T) {
	m := newTestMap(t, 1000, 10)
	_, err := m.Put("jane", 5)
	require.NoError(t, err)

	cp := m.MutableCopy()
	_, err = cp.Put("jane", 500)
	require.NoError(t, err)

	assert.Equal(t, 5, m.GetSupremum("jane"))
	assert.Equal(t, 500, cp.GetSupremum("jane"))
}

func TestNewRejectsUnboundedBelowLattice(t *testing.T) {
	cfg := newTestConfig(t, 100, 4)
	_, err := New[string, int](cfg, unboundedLattice{}, store.New[int](100, 0))
	assert.ErrorIs(t, err, bloomerr.ErrInvalidArgument)
}

type unboundedLattice struct{}

func (unboundedLattice) Top() int                              { return 1 }
func (unboundedLattice) Bottom() int                            { return 0 }
func (unboundedLattice) Meet(a, b int) int                      { return a }
func (unboundedLattice) Join(a, b int) int                      { return b }
func (unboundedLattice) Contains(int) bool                      { return true }
func (unboundedLattice) IsOrdered(a, b int) bool                { return a <= b }
func (unboundedLattice) Equal(a, b int) bool                    { return a == b }
func (unboundedLattice) IsBoundedBelow() bool                   { return false }
func (unboundedLattice) BoundedAbove(u int) lattice.Lattice[int] { return unboundedLattice{} }
