package core

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// RandSource provides random number generation for bid jitter and
// counter-offer probabilities. This interface enables dependency
// injection for deterministic testing.
type RandSource interface {
	// Intn returns a random integer in [0, n). Panics if n <= 0.
	Intn(n int) int
	// Float64 returns a random float in [0, 1).
	Float64() float64
}

// cryptoRandSource wraps crypto/rand for production use
type cryptoRandSource struct{}

// Intn returns a cryptographically secure random integer in [0, n).
// Panics if n <= 0 (programmer error).
func (cryptoRandSource) Intn(n int) int {
	if n <= 0 {
		panic(fmt.Sprintf("cryptoRandSource.Intn: n must be positive, got %d", n))
	}
	// rand.Int does not error when using rand.Reader
	// https://pkg.go.dev/crypto/rand#Int
	nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(nBig.Int64())
}

// Float64 returns a cryptographically secure random float in [0, 1)
// with 53 bits of precision.
func (cryptoRandSource) Float64() float64 {
	nBig, _ := rand.Int(rand.Reader, big.NewInt(1<<53))
	return float64(nBig.Int64()) / (1 << 53)
}

// defaultRandSource provides a cryptographically secure random source for production
var defaultRandSource RandSource = cryptoRandSource{}

// NewRandSource returns the production crypto/rand-backed source.
func NewRandSource() RandSource {
	return defaultRandSource
}
