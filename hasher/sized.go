package hasher

// WithSize rebinds any Hasher implementation to a new modulus by wrapping
// it and reducing each produced index modulo the new size. Concrete
// hashers that can rebind more precisely (Murmur3Hasher reduces its
// full 64-bit locations modulo the new size directly) should prefer their own
// Sized method; WithSize is the fallback every Hasher.Sized can delegate
// to when no sharper rebinding is available.
func WithSize[E any](h Hasher[E], size int) Hasher[E] {
	if h.Size() == size {
		return h
	}
	return &sizedHasher[E]{inner: h, size: size}
}

type sizedHasher[E any] struct {
	inner Hasher[E]
	size  int
}

func (s *sizedHasher[E]) Size() int     { return s.size }
func (s *sizedHasher[E]) Quantity() int { return s.inner.Quantity() }

func (s *sizedHasher[E]) Sized(size int) Hasher[E] {
	return WithSize(s.inner, size)
}

func (s *sizedHasher[E]) Equal(other Hasher[E]) bool {
	o, ok := other.(*sizedHasher[E])
	if !ok {
		return false
	}
	return s.size == o.size && s.inner.Equal(o.inner)
}

func (s *sizedHasher[E]) Hash(e E) HashCode {
	return &moduloStream{inner: s.inner.Hash(e), size: uint64(s.size)}
}

type moduloStream struct {
	inner HashCode
	size  uint64
}

func (m *moduloStream) Next() int {
	return int(uint64(m.inner.Next()) % m.size)
}
