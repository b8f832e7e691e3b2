package lattice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoolLattice(t *testing.T) {
	var l BoolLattice
	assert.True(t, l.Top())
	assert.False(t, l.Bottom())
	assert.True(t, l.Meet(true, true))
	assert.False(t, l.Meet(true, false))
	assert.True(t, l.Join(false, true))
	assert.True(t, l.IsOrdered(false, true))
	assert.False(t, l.IsOrdered(true, false))
	assert.True(t, l.IsBoundedBelow())
}

func TestBoolLatticeBoundedAbove(t *testing.T) {
	var l BoolLattice
	assert.Equal(t, Lattice[bool](l), l.BoundedAbove(true))

	bounded := l.BoundedAbove(false)
	assert.False(t, bounded.Contains(true))
	assert.True(t, bounded.Contains(false))
	assert.Equal(t, false, bounded.Top())
}

func TestIntRangeLattice(t *testing.T) {
	l := NewIntRangeLattice(0, 100)
	assert.Equal(t, 0, l.Bottom())
	assert.Equal(t, 100, l.Top())
	assert.Equal(t, 10, l.Meet(10, 20))
	assert.Equal(t, 20, l.Join(10, 20))
	assert.True(t, l.Contains(50))
	assert.False(t, l.Contains(101))
	assert.True(t, l.IsOrdered(10, 20))
}

func TestIntRangeLatticeBoundedAbove(t *testing.T) {
	l := NewIntRangeLattice(0, 1000)
	narrowed := l.BoundedAbove(100)
	assert.Equal(t, 100, narrowed.Top())
	assert.Equal(t, 0, narrowed.Bottom())
	assert.False(t, narrowed.Contains(101))

	unchanged := l.BoundedAbove(1000)
	assert.Same(t, l, unchanged)
}

func TestIntRangeLatticePanicsOnInvalidRange(t *testing.T) {
	assert.Panics(t, func() { NewIntRangeLattice(10, 0) })
}

func TestSetLattice(t *testing.T) {
	l := NewSetLattice([]string{"a", "b", "c"})
	top := l.Top()
	bottom := l.Bottom()

	assert.True(t, l.Equal(top, NewMember("a", "b", "c")))
	assert.True(t, l.Equal(bottom, Member[string]{}))

	ab := NewMember("a", "b")
	bc := NewMember("b", "c")
	assert.True(t, l.Equal(l.Meet(ab, bc), NewMember("b")))
	assert.True(t, l.Equal(l.Join(ab, bc), NewMember("a", "b", "c")))
	assert.True(t, l.IsOrdered(NewMember("a"), ab))
	assert.False(t, l.IsOrdered(ab, NewMember("a")))
}

func TestSetLatticeContains(t *testing.T) {
	l := NewSetLattice([]string{"a", "b"})
	assert.True(t, l.Contains(NewMember("a")))
	assert.False(t, l.Contains(NewMember("z")))
}
