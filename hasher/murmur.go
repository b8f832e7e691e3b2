package hasher

import "github.com/twmb/murmur3"

// Murmur3Hasher hashes elements of type E by first converting them to
// bytes (via toBytes) and then deriving an arbitrarily long stream of
// indices from two 128-bit murmur3 digests, using the Kirsch-Mitzenmacher
// double-hashing combination: location(i) = h1 + i*h2 (mod size), drawing
// h1/h2 alternately from two independently seeded digests so that k can
// exceed 2 without visible correlation between adjacent indices.
type Murmur3Hasher[E any] struct {
	size     int
	quantity int
	toBytes  func(E) []byte
}

// NewMurmur3Hasher builds a Hasher over E. size is the modulus, quantity
// the minimum stream length the hasher promises, and toBytes the
// element-to-bytes projection fed to murmur3.
func NewMurmur3Hasher[E any](size, quantity int, toBytes func(E) []byte) *Murmur3Hasher[E] {
	return &Murmur3Hasher[E]{size: size, quantity: quantity, toBytes: toBytes}
}

func (h *Murmur3Hasher[E]) Size() int     { return h.size }
func (h *Murmur3Hasher[E]) Quantity() int { return h.quantity }

func (h *Murmur3Hasher[E]) Sized(size int) Hasher[E] {
	return &Murmur3Hasher[E]{size: size, quantity: h.quantity, toBytes: h.toBytes}
}

func (h *Murmur3Hasher[E]) Equal(other Hasher[E]) bool {
	o, ok := other.(*Murmur3Hasher[E])
	if !ok {
		return false
	}
	return h.size == o.size && h.quantity == o.quantity
}

func (h *Murmur3Hasher[E]) Hash(e E) HashCode {
	data := h.toBytes(e)
	return &kmStream{h: baseHashes(data), size: uint64(h.size)}
}

// baseHashes derives four independent 64-bit hash values from two
// differently-seeded 128-bit murmur3 digests of data.
func baseHashes(data []byte) [4]uint64 {
	h1, h2 := murmur3.Sum128(data)
	h3, h4 := murmur3.SeedSum128(0xc6a4a7935bd1e995, 0x9ae16a3b2f90404f, data)
	return [4]uint64{h1, h2, h3, h4}
}

// location computes the ith derived index from the four base hashes,
// following the standard Kirsch-Mitzenmacher combination used by most
// production Bloom filter implementations.
func location(h [4]uint64, i uint64) uint64 {
	return h[i%2] + i*h[2+((i+(i%2))%4)/2]
}

// kmStream is the HashCode produced by Murmur3Hasher: a counter over the
// precomputed base hashes, reduced modulo size on each Next call.
type kmStream struct {
	h    [4]uint64
	size uint64
	i    uint64
}

func (s *kmStream) Next() int {
	loc := location(s.h, s.i) % s.size
	s.i++
	return int(loc)
}
