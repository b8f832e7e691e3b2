package bloomset

import "math"

// EstimateParameters estimates the bit-array length m and hash count k
// that minimize the false-positive probability for n expected elements
// at target false-positive rate p. Grounded on the teacher's
// EstimateParameters (ericvolp12-atomic-bloom/bloom.go).
func EstimateParameters(n uint, p float64) (m uint, k uint) {
	m = uint(math.Ceil(-1 * float64(n) * math.Log(p) / math.Pow(math.Log(2), 2)))
	if m < 1 {
		m = 1
	}
	k = uint(math.Ceil(math.Log(2) * float64(m) / float64(n)))
	if k < 1 {
		k = 1
	}
	return m, k
}

// EstimateFalsePositiveRate returns the theoretical false-positive
// probability for a filter of m bits and k hash functions holding n
// elements under ideal uniform hashing: (1 - e^(-kn/m))^k. This is the
// closed-form counterpart to the teacher's EstimateFalsePositiveRate,
// which instead ran an empirical simulation fixed to []byte keys; the
// closed form generalizes across every element type E without requiring
// a concrete hasher.
func EstimateFalsePositiveRate(m, k, n uint) float64 {
	if m == 0 {
		return 1
	}
	return math.Pow(1-math.Exp(-float64(k)*float64(n)/float64(m)), float64(k))
}
