package gameplay

// Rand is the random source gameplay draws from. *math/rand/v2.Rand
// satisfies it; tests pass a seeded one.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// FloatBetween returns a uniform float in [lo, hi).
func FloatBetween(r Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.Float64()*(hi-lo)
}

// IntBetween returns a uniform integer in [lo, hi], both ends inclusive.
func IntBetween(r Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}
