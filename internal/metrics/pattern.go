package metrics

import (
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/rdsim/internal/sim"
)

// Mean is the time average of the spatial mean of one species. Frames
// holding NaN or Inf are skipped by every per-species metric; Stability
// counts them.
type Mean struct {
	name    string
	species string
	sum     float64
	samples int
}

func NewMean(species string) *Mean {
	return &Mean{name: "mean_" + species, species: species}
}

func (m *Mean) Name() string { return m.name }

func (m *Mean) Observe(f sim.Frame) {
	field, ok := f.Fields[m.species]
	if !ok || len(field.Data) == 0 || !field.IsValid() {
		return
	}
	m.sum += stat.Mean(field.Data, nil)
	m.samples++
}

func (m *Mean) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *Mean) Reset() {
	m.sum = 0
	m.samples = 0
}

// Contrast tracks the largest spatial standard deviation of one species
// seen during a run. A homogeneous field has zero contrast; a developed
// pattern has a large one.
type Contrast struct {
	name    string
	species string
	max     float64
	last    float64
}

func NewContrast(species string) *Contrast {
	return &Contrast{name: "contrast_" + species, species: species}
}

func (c *Contrast) Name() string { return c.name }

func (c *Contrast) Observe(f sim.Frame) {
	field, ok := f.Fields[c.species]
	if !ok || len(field.Data) < 2 || !field.IsValid() {
		return
	}
	c.last = stat.StdDev(field.Data, nil)
	if c.last > c.max {
		c.max = c.last
	}
}

func (c *Contrast) Value() float64 { return c.max }

// Last returns the standard deviation of the most recent frame.
func (c *Contrast) Last() float64 { return c.last }

func (c *Contrast) Reset() {
	c.max = 0
	c.last = 0
}
