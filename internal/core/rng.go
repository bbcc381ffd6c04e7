package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Seed restarts the sequence from the provided seed.
func (r *RNG) Seed(seed int64) {
	r.r = rand.New(rand.NewPCG(uint64(seed), 0))
}

// Bool returns a random boolean value.
func (r *RNG) Bool() bool {
	return r.r.IntN(2) == 1
}

// Sign returns -1 or 1 with equal probability.
func (r *RNG) Sign() int {
	if r.Bool() {
		return 1
	}
	return -1
}

// IntRange returns a uniform integer in the closed range [lo, hi]. The bounds
// are swapped when hi < lo.
func (r *RNG) IntRange(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + r.r.IntN(hi-lo+1)
}

// Float32 returns a uniform value in [0, 1).
func (r *RNG) Float32() float32 {
	return r.r.Float32()
}

// Chance reports true with probability p. Values outside [0, 1] saturate.
func (r *RNG) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.r.Float64() < p
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
