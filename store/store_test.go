package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bloomlattice/bloomlattice/bloomerr"
)

func TestNewFillsZero(t *testing.T) {
	s := New[int](4, -1)
	for i := 0; i < 4; i++ {
		assert.Equal(t, -1, s.Get(i))
	}
}

func TestSetAndFill(t *testing.T) {
	s := New[int](4, 0)
	require.NoError(t, s.Set(1, 9))
	assert.Equal(t, 9, s.Get(1))

	require.NoError(t, s.Fill(7))
	for i := 0; i < 4; i++ {
		assert.Equal(t, 7, s.Get(i))
	}
}

func TestImmutableViewRejectsMutation(t *testing.T) {
	s := New[int](4, 0)
	view := s.ImmutableView()

	err := view.Set(0, 1)
	assert.ErrorIs(t, err, bloomerr.ErrImmutable)
	err = view.Fill(1)
	assert.ErrorIs(t, err, bloomerr.ErrImmutable)
}

func TestImmutableViewSeesLiveMutation(t *testing.T) {
	s := New[int](4, 0)
	view := s.ImmutableView()

	require.NoError(t, s.Set(2, 42))
	assert.Equal(t, 42, view.Get(2))
}

func TestImmutableCopyIsIndependent(t *testing.T) {
	s := New[int](4, 0)
	require.NoError(t, s.Set(0, 1))
	cp := s.ImmutableCopy()

	require.NoError(t, s.Set(0, 2))
	assert.Equal(t, 1, cp.Get(0))
}

func TestMutableCopyIsIndependent(t *testing.T) {
	s := New[int](4, 0)
	cp := s.MutableCopy()
	require.NoError(t, cp.Set(0, 5))
	assert.Equal(t, 0, s.Get(0))
}

func TestEqual(t *testing.T) {
	a := New[int](3, 0)
	b := New[int](3, 0)
	require.NoError(t, a.Set(1, 5))
	require.NoError(t, b.Set(1, 5))
	assert.True(t, a.Equal(b, func(x, y int) bool { return x == y }))

	require.NoError(t, b.Set(2, 9))
	assert.False(t, a.Equal(b, func(x, y int) bool { return x == y }))
}

func TestTransformedView(t *testing.T) {
	s := New[int](3, 1)
	require.NoError(t, s.Set(0, 10))
	doubled := s.TransformedView(func(v int) int { return v * 2 })

	assert.Equal(t, 20, doubled.Get(0))
	assert.Equal(t, 2, doubled.Get(1))

	require.NoError(t, s.Set(1, 4))
	assert.Equal(t, 8, doubled.Get(1), "a transformed view reads the live underlying value")
}

func TestFromSlice(t *testing.T) {
	values := []string{"a", "b", "c"}
	s := FromSlice(values, true)
	assert.Equal(t, 3, s.Size())
	assert.Equal(t, "b", s.Get(1))
}
