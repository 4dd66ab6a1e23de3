package rng

import (
	"math/rand"
	"sync"
)

// seededSource implements Source using a math/rand generator with a fixed
// seed. Two seededSources created with the same seed produce identical
// draw sequences, which is what makes battle replays reproducible.
type seededSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSeededSource returns a deterministic Source seeded with seed.
//
// Postcondition: Sources with equal seeds yield equal draw sequences.
func NewSeededSource(seed int64) Source {
	return &seededSource{r: rand.New(rand.NewSource(seed))}
}

// Intn returns a random int in [0, n) from the seeded stream.
//
// Precondition: n > 0. Panics with "rng: Intn called with n <= 0" if n <= 0.
func (s *seededSource) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn called with n <= 0")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Intn(n)
}

// Float64 returns a random float64 in [0.0, 1.0) from the seeded stream.
func (s *seededSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}
