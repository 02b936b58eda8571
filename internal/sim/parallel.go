package sim

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/rdsim/internal/turing"
)

// Factory builds a fresh pattern for one ensemble member.
type Factory func(seed int64) (*turing.Pattern, error)

// Ensemble runs independent instances that differ only in their seed.
// Every member owns its pattern, so no state is shared between goroutines.
type Ensemble struct {
	factory   Factory
	metrics   func() []Metric
	numRuns   int
	seedStart int64
	workers   int
}

func NewEnsemble(factory Factory, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{
		factory:   factory,
		numRuns:   numRuns,
		seedStart: seedStart,
		workers:   runtime.NumCPU(),
	}
}

// WithMetrics sets a constructor for per-member metrics. Metrics hold
// state, so each member receives its own set.
func (e *Ensemble) WithMetrics(fn func() []Metric) *Ensemble {
	e.metrics = fn
	return e
}

func (e *Ensemble) WithWorkers(n int) *Ensemble {
	if n > 0 {
		e.workers = n
	}
	return e
}

// Run returns one result per seed in seed order. The first error cancels
// the remaining members.
func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i := 0; i < e.numRuns; i++ {
		i := i
		g.Go(func() error {
			p, err := e.factory(e.seedStart + int64(i))
			if err != nil {
				return err
			}

			s := New(p)
			if e.metrics != nil {
				for _, m := range e.metrics() {
					s.AddMetric(m)
				}
			}

			results[i], err = s.Run(ctx, cfg)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
