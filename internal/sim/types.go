package sim

import (
	"fmt"

	"github.com/san-kum/rdsim/internal/turing"
)

// Frame is a copy of every species field at one point of a run.
type Frame struct {
	Step   int
	Time   float64
	Fields map[string]turing.Field
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(f Frame)
}

type Config struct {
	Steps         int
	SampleEvery   int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Steps:         1000,
		SampleEvery:   10,
		ValidateState: true,
	}
}

// Sample summarizes one species at one sampled step.
type Sample struct {
	Step    int     `csv:"step" json:"step"`
	Time    float64 `csv:"time" json:"time"`
	Species string  `csv:"species" json:"species"`
	Mean    float64 `csv:"mean" json:"mean"`
	Std     float64 `csv:"std" json:"std"`
	Min     float64 `csv:"min" json:"min"`
	Max     float64 `csv:"max" json:"max"`
}

type Result struct {
	Steps   int
	Time    float64
	Samples []Sample
	Final   map[string]turing.Field
	Metrics map[string]float64
	Errors  []error
}

// Series returns the sampled values of one species' statistic in step order.
func (r *Result) Series(species, stat string) []float64 {
	out := make([]float64, 0, len(r.Samples))
	for _, s := range r.Samples {
		if s.Species != species {
			continue
		}
		switch stat {
		case "std":
			out = append(out, s.Std)
		case "min":
			out = append(out, s.Min)
		case "max":
			out = append(out, s.Max)
		default:
			out = append(out, s.Mean)
		}
	}
	return out
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
