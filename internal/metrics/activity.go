package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/rdsim/internal/sim"
)

// Activity is the mean absolute change per cell between consecutive
// observed frames of one species. It decays to zero once a pattern has
// settled.
type Activity struct {
	name    string
	species string
	prev    []float64
	sum     float64
	samples int
}

func NewActivity(species string) *Activity {
	return &Activity{name: "activity_" + species, species: species}
}

func (a *Activity) Name() string { return a.name }

func (a *Activity) Observe(f sim.Frame) {
	field, ok := f.Fields[a.species]
	if !ok || len(field.Data) == 0 || !field.IsValid() {
		return
	}
	if len(a.prev) == len(field.Data) {
		a.sum += floats.Distance(field.Data, a.prev, 1) / float64(len(field.Data))
		a.samples++
	}
	a.prev = append(a.prev[:0], field.Data...)
}

func (a *Activity) Value() float64 {
	if a.samples == 0 {
		return 0
	}
	return a.sum / float64(a.samples)
}

func (a *Activity) Reset() {
	a.prev = a.prev[:0]
	a.sum = 0
	a.samples = 0
}

// MassDrift is the largest relative change of the total amount of one
// species with respect to the first observed frame.
type MassDrift struct {
	name     string
	species  string
	initial  float64
	maxDrift float64
	samples  int
}

func NewMassDrift(species string) *MassDrift {
	return &MassDrift{name: "mass_drift_" + species, species: species}
}

func (m *MassDrift) Name() string { return m.name }

func (m *MassDrift) Observe(f sim.Frame) {
	field, ok := f.Fields[m.species]
	if !ok || !field.IsValid() {
		return
	}
	mass := floats.Sum(field.Data)
	if m.samples == 0 {
		m.initial = mass
	}
	m.samples++

	if m.initial != 0 {
		drift := math.Abs(mass-m.initial) / math.Abs(m.initial)
		m.maxDrift = math.Max(m.maxDrift, drift)
	}
}

func (m *MassDrift) Value() float64 { return m.maxDrift }

func (m *MassDrift) Reset() {
	m.initial = 0
	m.maxDrift = 0
	m.samples = 0
}
