package bloomset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bloomlattice/bloomlattice/bitstore"
	"github.com/bloomlattice/bloomlattice/bloomconfig"
	"github.com/bloomlattice/bloomlattice/bloomerr"
	"github.com/bloomlattice/bloomlattice/hasher"
)

func newTestConfig(t *testing.T, capacity, hashCount int) *bloomconfig.Config[string] {
	t.Helper()
	h := hasher.NewMurmur3Hasher[string](capacity, hashCount, func(s string) []byte { return []byte(s) })
	cfg, err := bloomconfig.New[string](h, hashCount)
	require.NoError(t, err)
	return cfg
}

func newTestSet(t *testing.T, capacity, hashCount int) BloomSet[string] {
	t.Helper()
	cfg := newTestConfig(t, capacity, hashCount)
	return New[string](cfg, bitstore.New(uint(capacity)))
}

func TestAddAndMightContain(t *testing.T) {
	s := newTestSet(t, 1000, 4)
	assert.False(t, s.MightContain("alpha"))

	changed, err := s.Add("alpha")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, s.MightContain("alpha"))

	changed, err = s.Add("alpha")
	require.NoError(t, err)
	assert.False(t, changed, "adding the same element twice reports no change")
}

func TestAddAllElementsRejectsNilSlice(t *testing.T) {
	s := newTestSet(t, 100, 4)
	_, err := s.AddAllElements(nil)
	assert.ErrorIs(t, err, bloomerr.ErrInvalidArgument)
}

func TestAddAllElementsVisitsEveryElement(t *testing.T) {
	s := newTestSet(t, 1000, 4)
	changed, err := s.AddAllElements([]string{"a", "b", "c"})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, s.MightContainAll([]string{"a", "b", "c"}))
}

func TestClear(t *testing.T) {
	s := newTestSet(t, 1000, 4)
	_, err := s.Add("alpha")
	require.NoError(t, err)
	require.NoError(t, s.Clear())
	assert.True(t, s.IsEmpty())
	assert.False(t, s.MightContain("alpha"))
}

func TestContainsAllRequiresCompatibleConfig(t *testing.T) {
	a := newTestSet(t, 1000, 4)
	b := newTestSet(t, 500, 4)
	_, err := a.ContainsAll(b)
	assert.ErrorIs(t, err, bloomerr.ErrInvalidArgument)
}

func TestContainsAll(t *testing.T) {
	cfg := newTestConfig(t, 1000, 4)
	a := New[string](cfg, bitstore.New(1000))
	b := New[string](cfg, bitstore.New(1000))

	_, err := a.AddAllElements([]string{"x", "y"})
	require.NoError(t, err)
	_, err = b.Add("x")
	require.NoError(t, err)

	ok, err := a.ContainsAll(b)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = b.ContainsAll(a)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAddAllSet(t *testing.T) {
	cfg := newTestConfig(t, 1000, 4)
	a := New[string](cfg, bitstore.New(1000))
	b := New[string](cfg, bitstore.New(1000))

	_, err := a.Add("x")
	require.NoError(t, err)
	_, err = b.Add("y")
	require.NoError(t, err)

	changed, err := a.AddAllSet(b)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, a.MightContain("x"))
	assert.True(t, a.MightContain("y"))
}

func TestBoundedByIsLive(t *testing.T) {
	cfg := newTestConfig(t, 1000, 4)
	this := New[string](cfg, bitstore.New(1000))
	other := New[string](cfg, bitstore.New(1000))

	bounded, err := this.BoundedBy(other)
	require.NoError(t, err)
	assert.True(t, bounded.IsFull(), "this is empty: ¬this[i] is true everywhere, vacuously bounded")

	_, err = this.AddAllElements([]string{"x", "y", "z"})
	require.NoError(t, err)
	assert.False(t, bounded.IsFull(), "this now has bits other lacks")

	_, err = other.AddAllElements([]string{"x", "y", "z"})
	require.NoError(t, err)
	assert.True(t, bounded.IsFull(), "once this ⊆ other on every observed bit, boundedBy(other) is full again")
}

func TestBoundedBySelfIsAlwaysFull(t *testing.T) {
	s := newTestSet(t, 1000, 4)
	_, err := s.AddAllElements([]string{"a", "b", "c"})
	require.NoError(t, err)

	bounded, err := s.BoundedBy(s)
	require.NoError(t, err)
	assert.True(t, bounded.IsFull())
}

func TestBoundedByIsImmutable(t *testing.T) {
	this := newTestSet(t, 100, 4)
	other := newTestSet(t, 100, 4)
	bounded, err := this.BoundedBy(other)
	require.NoError(t, err)

	_, err = bounded.Add("x")
	assert.ErrorIs(t, err, bloomerr.ErrImmutable)
	assert.ErrorIs(t, bounded.Clear(), bloomerr.ErrImmutable)
}

func TestImmutableViewRejectsMutation(t *testing.T) {
	s := newTestSet(t, 100, 4)
	view := s.ImmutableView()

	_, err := view.Add("x")
	assert.ErrorIs(t, err, bloomerr.ErrImmutable)
}

func TestImmutableViewIsLive(t *testing.T) {
	s := newTestSet(t, 100, 4)
	view := s.ImmutableView()

	assert.False(t, view.MightContain("x"))
	_, err := s.Add("x")
	require.NoError(t, err)
	assert.True(t, view.MightContain("x"))
}

func TestImmutableCopyIsIndependent(t *testing.T) {
	s := newTestSet(t, 100, 4)
	_, err := s.Add("x")
	require.NoError(t, err)
	snapshot := s.ImmutableCopy()

	_, err = s.Add("y")
	require.NoError(t, err)
	assert.False(t, snapshot.MightContain("y"))
}

func TestMutableCopyIsIndependentAndWritable(t *testing.T) {
	s := newTestSet(t, 100, 4)
	mutableSnapshot := s.MutableCopy()

	_, err := mutableSnapshot.Add("x")
	require.NoError(t, err)
	assert.False(t, s.MightContain("x"))
}

func TestEqualAndHash(t *testing.T) {
	cfg := newTestConfig(t, 1000, 4)
	a := New[string](cfg, bitstore.New(1000))
	b := New[string](cfg, bitstore.New(1000))

	_, err := a.Add("x")
	require.NoError(t, err)
	_, err = b.Add("x")
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())
}

func TestFalsePositiveProbabilityAndFillRatio(t *testing.T) {
	s := newTestSet(t, 100, 4)
	assert.Equal(t, 0.0, s.FillRatio())
	assert.Equal(t, 0.0, s.FalsePositiveProbability())

	_, err := s.Add("x")
	require.NoError(t, err)
	assert.Greater(t, s.FillRatio(), 0.0)
}
