// Package rng provides the injectable randomness source used by the AI
// planner and card-creation effects so outcomes are reproducible in tests.
package rng

import "math/rand"

// RNG is the minimal randomness surface the engine consumes.
type RNG interface {
	Intn(n int) int
	Float64() float64
}

type source struct {
	r *rand.Rand
}

// New returns an RNG backed by math/rand with the given seed.
func New(seed int64) RNG {
	return &source{r: rand.New(rand.NewSource(seed))}
}

func (s *source) Intn(n int) int { return s.r.Intn(n) }
func (s *source) Float64() float64 { return s.r.Float64() }

// Scripted replays fixed values, for tests. Intn values are taken modulo n;
// Float64 values are consumed in order and the last one repeats.
type Scripted struct {
	Ints   []int
	Floats []float64
	ii, fi int
}

func (s *Scripted) Intn(n int) int {
	if len(s.Ints) == 0 || n <= 0 {
		return 0
	}
	v := s.Ints[s.ii%len(s.Ints)]
	s.ii++
	return v % n
}

func (s *Scripted) Float64() float64 {
	if len(s.Floats) == 0 {
		return 0
	}
	i := s.fi
	if i >= len(s.Floats) {
		i = len(s.Floats) - 1
	}
	s.fi++
	return s.Floats[i]
}
