package turing

import "math/rand"

// Option customizes a Pattern at construction. Options never fail
// themselves; New validates the combined result.
type Option func(*settings)

type override struct {
	name  string
	value float64
}

type settings struct {
	size      *int
	dx, dy    *float64
	dt        *float64
	overrides []override
	rng       *rand.Rand
}

// WithSize sets the grid edge length.
func WithSize(n int) Option {
	return func(s *settings) { s.size = &n }
}

// WithSpacing sets the spatial steps.
func WithSpacing(dx, dy float64) Option {
	return func(s *settings) { s.dx, s.dy = &dx, &dy }
}

// WithTimeStep sets dt.
func WithTimeStep(dt float64) Option {
	return func(s *settings) { s.dt = &dt }
}

// WithParam overrides the default value of one parameter.
func WithParam(name string, v float64) Option {
	return func(s *settings) { s.overrides = append(s.overrides, override{name, v}) }
}

// WithParams applies several overrides. Map iteration order does not matter
// since each override is validated independently.
func WithParams(values map[string]float64) Option {
	return func(s *settings) {
		for k, v := range values {
			s.overrides = append(s.overrides, override{k, v})
		}
	}
}

// WithRand injects the random source used by InitConcentrations. A nil
// source is ignored.
func WithRand(r *rand.Rand) Option {
	return func(s *settings) {
		if r != nil {
			s.rng = r
		}
	}
}

// WithSeed is WithRand(rand.New(rand.NewSource(seed))).
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}
