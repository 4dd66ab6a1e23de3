package rng

import (
	"crypto/rand"
	"math/big"
)

// float64Bits is the number of uniformly random bits used to build a
// Float64 value. 53 bits is the full mantissa width of a float64, so
// every representable value in [0, 1) with that granularity is equally
// likely.
const float64Bits = 53

// cryptoSource implements Source using crypto/rand.
//
// Invariant: All values produced are cryptographically secure and uniformly
// distributed over their documented ranges.
type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand.
//
// Postcondition: Every value returned by Intn is in [0, n); every value
// returned by Float64 is in [0.0, 1.0).
func NewCryptoSource() Source {
	return &cryptoSource{}
}

// Intn returns a cryptographically secure random int in [0, n).
//
// Precondition: n > 0. Panics with "rng: Intn called with n <= 0" if n <= 0.
// Panics with "rng: crypto/rand failure: <err>" if crypto/rand fails.
func (c *cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn called with n <= 0")
	}
	val, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("rng: crypto/rand failure: " + err.Error())
	}
	return int(val.Int64())
}

// Float64 returns a cryptographically secure random float64 in [0.0, 1.0).
func (c *cryptoSource) Float64() float64 {
	val, err := rand.Int(rand.Reader, big.NewInt(1<<float64Bits))
	if err != nil {
		panic("rng: crypto/rand failure: " + err.Error())
	}
	return float64(val.Int64()) / (1 << float64Bits)
}
