package experiment

import (
	"context"
	"math/rand"
	"time"

	"github.com/san-kum/rdsim/internal/config"
	"github.com/san-kum/rdsim/internal/metrics"
	"github.com/san-kum/rdsim/internal/sim"
	"github.com/san-kum/rdsim/internal/storage"
	"github.com/san-kum/rdsim/internal/turing"
)

// Experiment is one configured run: a pattern, its simulator and the
// standard metric set. A zero seed in the config is replaced by a random
// one so every run can be reproduced from its metadata.
type Experiment struct {
	cfg       *config.Config
	pattern   *turing.Pattern
	simulator *sim.Simulator
}

func New(cfg *config.Config) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clone()
	if c.Seed == 0 {
		c.Seed = rand.New(rand.NewSource(time.Now().UnixNano())).Int63() + 1
	}

	p, err := c.Build()
	if err != nil {
		return nil, err
	}

	s := sim.New(p)
	for _, m := range metrics.Standard(p.Species()) {
		s.AddMetric(m)
	}

	return &Experiment{cfg: c, pattern: p, simulator: s}, nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	return e.simulator.Run(ctx, sim.Config{
		Steps:         e.cfg.Steps,
		SampleEvery:   e.cfg.SampleEvery,
		ValidateState: true,
	})
}

// Metadata describes a finished run for the run log.
func (e *Experiment) Metadata(result *sim.Result) storage.RunMetadata {
	return storage.NewRunMetadata(e.pattern, e.cfg.Seed, e.cfg.SampleEvery, result)
}

func (e *Experiment) Seed() int64               { return e.cfg.Seed }
func (e *Experiment) Config() *config.Config    { return e.cfg.Clone() }
func (e *Experiment) Pattern() *turing.Pattern  { return e.pattern }
func (e *Experiment) Simulator() *sim.Simulator { return e.simulator }
