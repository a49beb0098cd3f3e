package rbm

import (
	rng "github.com/leesper/go_rng"
)

// Source is the stream of random draws a machine consumes. Every
// stochastic decision (weight init, Bernoulli hidden states, Gaussian
// visible reconstructions) flows through one Source, so a fixed seed
// makes a whole run exactly reproducible.
type Source struct {
	gaussian *rng.GaussianGenerator
	uniform  *rng.UniformGenerator
}

// NewSource returns a Source seeded with seed.
func NewSource(seed int64) *Source {
	return &Source{
		gaussian: rng.NewGaussianGenerator(seed),
		uniform:  rng.NewUniformGenerator(seed + 1),
	}
}

// Normal draws from N(mean, stddev).
func (s *Source) Normal(mean, stddev float64) float64 {
	return s.gaussian.Gaussian(mean, stddev)
}

// Uniform draws from [0, 1).
func (s *Source) Uniform() float64 {
	return s.uniform.Float64()
}

// intn maps a uniform draw onto [0, n). Used to pick a display sample.
func (s *Source) intn(n int) int {
	return int(s.Uniform() * float64(n))
}
