package turing

import (
	"math"
	"strings"
)

// DType tags whether a parameter holds a real or an integer value.
type DType int

const (
	Real DType = iota
	Integer
)

func (d DType) String() string {
	if d == Integer {
		return "int"
	}
	return "float"
}

// Parameter describes one tunable scalar of a model.
//
// Exponent only shapes the slider mapping in Scaled/Position; the
// integration never reads it.
type Parameter struct {
	Name        string
	Value       float64
	Min         float64
	Max         float64
	Exponent    float64
	Description string
	DType       DType
}

// Validate checks the descriptor invariants: Min < Max and Min <= Value <= Max.
func (p Parameter) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return configErr("", p.Value, "parameter name is empty")
	}
	if math.IsNaN(p.Min) || math.IsNaN(p.Max) || !(p.Min < p.Max) {
		return configErr(p.Name, p.Value, "min %g must be below max %g", p.Min, p.Max)
	}
	if !(p.Exponent > 0) {
		return configErr(p.Name, p.Value, "exponent %g must be positive", p.Exponent)
	}
	return p.check(p.Value)
}

func (p Parameter) check(v float64) error {
	if math.IsNaN(v) || v < p.Min || v > p.Max {
		return configErr(p.Name, v, "outside [%g, %g]", p.Min, p.Max)
	}
	return nil
}

func (p Parameter) coerce(v float64) float64 {
	if p.DType == Integer {
		return math.Round(v)
	}
	return v
}

// Set assigns v after integer rounding and bound checking. On error the
// previous value is kept.
func (p *Parameter) Set(v float64) error {
	v = p.coerce(v)
	if err := p.check(v); err != nil {
		return err
	}
	p.Value = v
	return nil
}

// Scaled maps a slider position in [0, 1] onto [Min, Max].
func (p Parameter) Scaled(pos float64) float64 {
	pos = math.Min(1, math.Max(0, pos))
	v := p.Min + (p.Max-p.Min)*math.Pow(pos, 1/p.Exponent)
	return math.Min(p.Max, math.Max(p.Min, p.coerce(v)))
}

// Position is the inverse of Scaled for the current value.
func (p Parameter) Position() float64 {
	frac := (p.Value - p.Min) / (p.Max - p.Min)
	return math.Pow(math.Min(1, math.Max(0, frac)), p.Exponent)
}

// Parameters is the per-instance, ordered set of parameter values of a
// model. It is always built from a copy of a static table.
type Parameters struct {
	list  []Parameter
	index map[string]int
}

// NewParameters validates table and returns an independent copy of it.
func NewParameters(table []Parameter) (*Parameters, error) {
	ps := &Parameters{
		list:  make([]Parameter, len(table)),
		index: make(map[string]int, len(table)),
	}
	for i, p := range table {
		p.Value = p.coerce(p.Value)
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, dup := ps.index[p.Name]; dup {
			return nil, configErr(p.Name, p.Value, "declared twice")
		}
		ps.list[i] = p
		ps.index[p.Name] = i
	}
	return ps, nil
}

func (ps *Parameters) lookup(name string) (*Parameter, error) {
	i, ok := ps.index[name]
	if !ok {
		return nil, configErr(name, math.NaN(), "unknown parameter")
	}
	return &ps.list[i], nil
}

// Has reports whether name is declared.
func (ps *Parameters) Has(name string) bool {
	_, ok := ps.index[name]
	return ok
}

// Get returns the current value of name.
func (ps *Parameters) Get(name string) (float64, error) {
	p, err := ps.lookup(name)
	if err != nil {
		return 0, err
	}
	return p.Value, nil
}

// Set assigns name, enforcing bounds and dtype.
func (ps *Parameters) Set(name string, v float64) error {
	p, err := ps.lookup(name)
	if err != nil {
		return err
	}
	return p.Set(v)
}

// Float returns the value of a parameter the model is known to declare.
// Laws use it on their own necessary parameters; an undeclared name yields NaN.
func (ps *Parameters) Float(name string) float64 {
	i, ok := ps.index[name]
	if !ok {
		return math.NaN()
	}
	return ps.list[i].Value
}

// Int is Float for integer parameters.
func (ps *Parameters) Int(name string) int {
	return int(ps.Float(name))
}

// Names lists the parameter names in declaration order.
func (ps *Parameters) Names() []string {
	names := make([]string, len(ps.list))
	for i, p := range ps.list {
		names[i] = p.Name
	}
	return names
}

// List returns a copy of the descriptors with their current values.
func (ps *Parameters) List() []Parameter {
	out := make([]Parameter, len(ps.list))
	copy(out, ps.list)
	return out
}

// Values returns a name to value map.
func (ps *Parameters) Values() map[string]float64 {
	out := make(map[string]float64, len(ps.list))
	for _, p := range ps.list {
		out[p.Name] = p.Value
	}
	return out
}

// Clone returns an independent copy.
func (ps *Parameters) Clone() *Parameters {
	c := &Parameters{
		list:  ps.List(),
		index: make(map[string]int, len(ps.index)),
	}
	for k, v := range ps.index {
		c.index[k] = v
	}
	return c
}
