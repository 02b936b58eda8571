package sim

import (
	"context"
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/rdsim/internal/turing"
)

// Simulator drives one pattern through a run, sampling statistics and
// feeding metrics and observers. Like the pattern it wraps, it must be
// used from a single goroutine.
type Simulator struct {
	pattern   *turing.Pattern
	metrics   []Metric
	observers []Observer
	log       *slog.Logger
}

func New(p *turing.Pattern) *Simulator {
	return &Simulator{
		pattern:   p,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		log:       slog.Default(),
	}
}

func (s *Simulator) AddMetric(m Metric)       { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer)   { s.observers = append(s.observers, o) }
func (s *Simulator) SetLogger(l *slog.Logger) { s.log = l }
func (s *Simulator) Pattern() *turing.Pattern { return s.pattern }

// Run advances the pattern cfg.Steps times. Species the caller has not
// initialized are initialized here; fields that already exist are kept.
//
// With cfg.ValidateState a frame holding NaN or Inf ends the run: it is
// recorded as a SimError and as the final state, metrics see it, but no
// sample is stored for it and observers are not notified.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	p := s.pattern
	if missing := p.Uninitialized(); len(missing) > 0 {
		if err := p.InitConcentrations(missing...); err != nil {
			return nil, err
		}
	}

	result := &Result{
		Samples: make([]Sample, 0, (cfg.Steps/cfg.SampleEvery+1)*len(p.Species())),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}
	for _, m := range s.metrics {
		m.Reset()
	}

	s.log.Debug("run started", "model", p.Name(), "size", p.Size(), "steps", cfg.Steps, "dt", p.Dt())

	ok, err := s.sample(result, cfg.ValidateState)
	if err != nil {
		return nil, err
	}

	for i := 1; ok && i <= cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			s.finish(result)
			return result, ctx.Err()
		default:
		}

		if err := p.Step(); err != nil {
			return result, err
		}
		result.Steps++

		last := i == cfg.Steps
		if i%cfg.SampleEvery != 0 && !last {
			continue
		}
		if ok, err = s.sample(result, cfg.ValidateState); err != nil {
			return result, err
		}
	}

	s.finish(result)
	s.log.Debug("run finished", "model", p.Name(), "steps", result.Steps, "time", result.Time)
	return result, nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Steps < 0 {
		return fmt.Errorf("steps must not be negative, got %d", cfg.Steps)
	}
	if cfg.SampleEvery <= 0 {
		return fmt.Errorf("sample interval must be positive, got %d", cfg.SampleEvery)
	}
	return nil
}

// sample records the current fields. It reports false when validate is set
// and the fields are no longer finite.
func (s *Simulator) sample(result *Result, validate bool) (bool, error) {
	p := s.pattern
	fields, err := p.Fields()
	if err != nil {
		return false, err
	}
	frame := Frame{Step: p.Steps(), Time: p.Time(), Fields: fields}
	result.Final = fields

	for _, m := range s.metrics {
		m.Observe(frame)
	}

	if validate && !valid(frame) {
		err := SimError{Time: p.Time(), Step: p.Steps(), Message: "invalid state (NaN/Inf)"}
		result.Errors = append(result.Errors, err)
		s.log.Warn("run diverged", "model", p.Name(), "step", p.Steps())
		return false, nil
	}

	for _, sp := range p.Species() {
		sm := Summarize(fields[sp])
		sm.Step, sm.Time, sm.Species = frame.Step, frame.Time, sp
		result.Samples = append(result.Samples, sm)
	}
	for _, obs := range s.observers {
		obs.OnFrame(frame)
	}
	return true, nil
}

func (s *Simulator) finish(result *Result) {
	result.Time = s.pattern.Time()
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

// Summarize computes the mean, standard deviation and range of a field.
func Summarize(f turing.Field) Sample {
	if len(f.Data) == 0 {
		return Sample{}
	}
	mean, std := stat.MeanStdDev(f.Data, nil)
	if len(f.Data) == 1 {
		std = 0
	}
	return Sample{
		Mean: mean,
		Std:  std,
		Min:  floats.Min(f.Data),
		Max:  floats.Max(f.Data),
	}
}

func valid(f Frame) bool {
	for _, field := range f.Fields {
		if !field.IsValid() {
			return false
		}
	}
	return true
}
