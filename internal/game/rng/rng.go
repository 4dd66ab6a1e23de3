// Package rng provides the core randomness abstraction for the battle
// engine. Every random draw the simulator makes goes through a Source,
// so a battle can be replayed deterministically by injecting a seeded
// implementation.
package rng

// Source is the randomness provider for battle rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int

	// Float64 returns a random float64 in [0.0, 1.0).
	Float64() float64
}
