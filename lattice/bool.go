package lattice

// BoolLattice is the classical two-element lattice ({false <= true}, ||,
// &&): the special case V = {0,1} under which BloomMap degenerates to a
// plain Bloom filter (spec §4.3's "Why the lattice generalization?").
type BoolLattice struct{}

func (BoolLattice) Top() bool    { return true }
func (BoolLattice) Bottom() bool { return false }

func (BoolLattice) Meet(a, b bool) bool { return a && b }
func (BoolLattice) Join(a, b bool) bool { return a || b }

func (BoolLattice) Contains(bool) bool { return true }

func (BoolLattice) IsOrdered(a, b bool) bool { return !a || b }
func (BoolLattice) Equal(a, b bool) bool     { return a == b }

func (BoolLattice) IsBoundedBelow() bool { return true }

func (l BoolLattice) BoundedAbove(u bool) Lattice[bool] {
	if u {
		return l
	}
	return trivialBoolLattice{}
}

// trivialBoolLattice is the sub-lattice bounded above by false: its only
// member is false.
type trivialBoolLattice struct{}

func (trivialBoolLattice) Top() bool               { return false }
func (trivialBoolLattice) Bottom() bool            { return false }
func (trivialBoolLattice) Meet(a, b bool) bool      { return false }
func (trivialBoolLattice) Join(a, b bool) bool      { return false }
func (trivialBoolLattice) Contains(v bool) bool     { return !v }
func (trivialBoolLattice) IsOrdered(a, b bool) bool { return true }
func (trivialBoolLattice) Equal(a, b bool) bool     { return a == b }
func (trivialBoolLattice) IsBoundedBelow() bool     { return true }

func (l trivialBoolLattice) BoundedAbove(u bool) Lattice[bool] { return l }
