// Package randutil derives math/rand/v2 generators from integer seeds so that
// tables, bots and simulations can be replayed exactly.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from seed.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// NewFromTime returns a generator seeded from the wall clock, for interactive play.
func NewFromTime() *rand.Rand {
	return New(time.Now().UnixNano())
}

// Child returns the seed for the n-th independent stream derived from seed.
// Simulations use it to give every worker its own reproducible generator.
func Child(seed int64, n int) int64 {
	return int64(mix(uint64(seed) + uint64(n+1)*goldenRatio64))
}

// mix is the splitmix64 finaliser.
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
