package utils

import (
	"math/rand/v2"
)

// Rand is the source of game randomness. Tests inject deterministic implementations.
type Rand interface {
	// Float64 returns a value in [0.0, 1.0)
	Float64() float64
	// IntN returns a value in [0, n)
	IntN(n int) int
}

type defaultRand struct{}

func (defaultRand) Float64() float64 { return RandomFloat() }
func (defaultRand) IntN(n int) int   { return rand.IntN(n) } //nolint:gosec // Game logic randomness, not security critical

// DefaultRand returns the process-wide random source
func DefaultRand() Rand {
	return defaultRand{}
}

// RandomFloat returns a random float64 in [0.0, 1.0)
func RandomFloat() float64 {
	return rand.Float64() //nolint:gosec // Game logic randomness, not security critical
}

// RandomInt returns a random integer between min and max (inclusive)
func RandomInt(min, max int) int {
	if min > max {
		return min
	}
	return rand.IntN(max-min+1) + min //nolint:gosec // Game logic randomness, not security critical
}
