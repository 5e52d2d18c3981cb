package rng

import "math/rand"

// Seeded wraps math/rand for reproducible simulations
type Seeded struct {
	r *rand.Rand
}

// NewSeeded returns a Seeded generator for the seed
func NewSeeded(seed int64) *Seeded {
	return &Seeded{r: rand.New(rand.NewSource(seed))} // nolint:gosec
}

// Intn returns a random number from 0 < n
func (s *Seeded) Intn(n int) int {
	return s.r.Intn(n)
}
