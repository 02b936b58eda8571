package metrics

import (
	"math"

	"github.com/san-kum/rdsim/internal/sim"
)

// Stability is the fraction of observed frames in which every cell of every
// species is finite and bounded by threshold.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(f sim.Frame) {
	s.samples++
	for _, field := range f.Fields {
		if !bounded(field.Data, s.threshold) {
			s.violations++
			return
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

func bounded(data []float64, threshold float64) bool {
	for _, v := range data {
		if math.IsNaN(v) || math.Abs(v) > threshold {
			return false
		}
	}
	return true
}
