package turing

import (
	"math"
	"math/rand"
	"time"
)

// NbPos is the parameter holding the number of perturbed cells.
const NbPos = "nb_pos"

// Pattern is the reaction-diffusion engine: it owns the species fields and
// parameter values of one model instance and advances them in time.
//
// A Pattern is not safe for concurrent use.
type Pattern struct {
	info   Info
	laws   map[string]Law
	scheme Scheme
	rng    *rand.Rand

	state State
	next  map[string]Field

	reaction  Field
	diffusion Field

	steps int
	time  float64
}

// New builds a Pattern for m. Defaults come from m.Info(); opts override them.
func New(m Model, opts ...Option) (*Pattern, error) {
	info := m.Info()

	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	size := info.DefaultSize
	if s.size != nil {
		size = *s.size
	}
	dx, dy, dt := info.DefaultDx, info.DefaultDy, info.DefaultDt
	if s.dx != nil {
		dx, dy = *s.dx, *s.dy
	}
	if s.dt != nil {
		dt = *s.dt
	}

	if size < 0 {
		return nil, configErr("size", float64(size), "grid size must not be negative")
	}
	if !(dx > 0) || math.IsInf(dx, 0) {
		return nil, configErr("dx", dx, "spatial step must be positive")
	}
	if !(dy > 0) || math.IsInf(dy, 0) {
		return nil, configErr("dy", dy, "spatial step must be positive")
	}
	if !(dt > 0) || math.IsInf(dt, 0) {
		return nil, configErr("dt", dt, "time step must be positive")
	}

	kernel := info.Kernel
	if kernel.Size == 0 {
		kernel = VonNeumann()
	}
	if !kernel.valid() {
		return nil, configErr("", 0, "kernel of %s must be an odd square", info.Name)
	}
	if info.Scheme == nil {
		return nil, configErr("", 0, "model %s declares no integration scheme", info.Name)
	}

	params, err := NewParameters(info.Parameters)
	if err != nil {
		return nil, err
	}
	for _, name := range info.Tunable {
		if !params.Has(name) {
			return nil, configErr(name, math.NaN(), "tunable parameter is not declared")
		}
	}
	for _, o := range s.overrides {
		if err := params.Set(o.name, o.value); err != nil {
			return nil, err
		}
	}

	laws := m.Laws()
	for _, sp := range info.Species {
		law, ok := laws[sp]
		if !ok || law.Reaction == nil || law.Diffusion == nil || law.Init == nil {
			return nil, configErr("", 0, "model %s has no complete law for species %q", info.Name, sp)
		}
	}

	rng := s.rng
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	info.Species = append([]string(nil), info.Species...)
	info.Tunable = append([]string(nil), info.Tunable...)
	info.Parameters = append([]Parameter(nil), info.Parameters...)
	info.Kernel = kernel

	return &Pattern{
		info:   info,
		laws:   laws,
		scheme: info.Scheme,
		rng:    rng,
		state: State{
			Size:   size,
			Dx:     dx,
			Dy:     dy,
			Dt:     dt,
			Kernel: kernel,
			Params: params,
			Fields: make(map[string]Field, len(info.Species)),
		},
		next: make(map[string]Field, len(info.Species)),
	}, nil
}

func (p *Pattern) Info() Info     { return p.info }
func (p *Pattern) Name() string   { return p.info.Name }
func (p *Pattern) Size() int      { return p.state.Size }
func (p *Pattern) Dx() float64    { return p.state.Dx }
func (p *Pattern) Dy() float64    { return p.state.Dy }
func (p *Pattern) Dt() float64    { return p.state.Dt }
func (p *Pattern) Kernel() Kernel { return p.state.Kernel }
func (p *Pattern) Steps() int     { return p.steps }
func (p *Pattern) Time() float64  { return p.time }

func (p *Pattern) Species() []string {
	return append([]string(nil), p.info.Species...)
}

// Initialized reports whether every species holds a field.
func (p *Pattern) Initialized() bool {
	for _, sp := range p.info.Species {
		if _, ok := p.state.Fields[sp]; !ok {
			return false
		}
	}
	return true
}

// Uninitialized lists the species that hold no field yet, in declaration
// order.
func (p *Pattern) Uninitialized() []string {
	var missing []string
	for _, sp := range p.info.Species {
		if _, ok := p.state.Fields[sp]; !ok {
			missing = append(missing, sp)
		}
	}
	return missing
}

func (p *Pattern) known(sp string) bool {
	_, ok := p.laws[sp]
	if !ok {
		return false
	}
	for _, s := range p.info.Species {
		if s == sp {
			return true
		}
	}
	return false
}

// InitConcentrations (re)builds the fields of the named species, or of all
// species when none is named. One perturbation is drawn per call and shared
// by every initialized species.
func (p *Pattern) InitConcentrations(species ...string) error {
	for _, sp := range species {
		if !p.known(sp) {
			return &UnknownSpeciesError{Model: p.info.Name, Species: sp}
		}
	}
	if len(species) == 0 {
		species = p.info.Species
	}

	pert := p.perturbation()
	for _, sp := range species {
		f := NewField(p.state.Size)
		p.laws[sp].Init(&p.state, f, pert)
		p.state.Fields[sp] = f
	}

	n := p.state.Size
	if p.reaction.Size != n || p.reaction.Data == nil {
		p.reaction = NewField(n)
		p.diffusion = NewField(n)
	}
	return nil
}

func (p *Pattern) perturbation() Perturbation {
	n := p.state.Size
	count := 0
	if p.state.Params.Has(NbPos) {
		count = p.state.Params.Int(NbPos)
	}
	if n == 0 || count <= 0 {
		return Perturbation{}
	}

	rows := make([]int, count)
	cols := make([]int, count)
	for i := range rows {
		rows[i] = int(p.rng.Float64() * float64(n))
	}
	for i := range cols {
		cols[i] = int(p.rng.Float64() * float64(n))
	}
	pert := Perturbation{Cells: make([]int, count), Offsets: make([]float64, count)}
	for i := range pert.Cells {
		pert.Cells[i] = rows[i]*n + cols[i]
		pert.Offsets[i] = p.rng.Float64()
	}
	return pert
}

// Step advances every species by one time step. All rate terms are read
// from the pre-step fields; the new fields replace the old ones together.
func (p *Pattern) Step() error {
	if !p.Initialized() {
		return &UninitializedStateError{Op: "step"}
	}

	n := p.state.Size
	for _, sp := range p.info.Species {
		law := p.laws[sp]
		law.Reaction(&p.state, p.reaction)
		law.Diffusion(&p.state, p.diffusion)

		dst, ok := p.next[sp]
		if !ok || dst.Size != n {
			dst = NewField(n)
		}
		p.scheme.Advance(dst, p.state.Fields[sp], p.reaction, p.diffusion, p.state.Dt)
		p.next[sp] = dst
	}

	for _, sp := range p.info.Species {
		p.state.Fields[sp], p.next[sp] = p.next[sp], p.state.Fields[sp]
	}
	p.steps++
	p.time += p.state.Dt
	return nil
}

func (p *Pattern) checkRead(sp, op string) error {
	if !p.known(sp) {
		return &UnknownSpeciesError{Model: p.info.Name, Species: sp}
	}
	if _, ok := p.state.Fields[sp]; !ok {
		return &UninitializedStateError{Op: op}
	}
	return nil
}

// Field returns a copy of the current field of sp.
func (p *Pattern) Field(sp string) (Field, error) {
	if err := p.checkRead(sp, "field read"); err != nil {
		return Field{}, err
	}
	return p.state.Fields[sp].Clone(), nil
}

// Fields returns copies of every species field.
func (p *Pattern) Fields() (map[string]Field, error) {
	if !p.Initialized() {
		return nil, &UninitializedStateError{Op: "field read"}
	}
	out := make(map[string]Field, len(p.info.Species))
	for _, sp := range p.info.Species {
		out[sp] = p.state.Fields[sp].Clone()
	}
	return out, nil
}

// Reaction evaluates the reaction term of sp on the current fields.
func (p *Pattern) Reaction(sp string) (Field, error) {
	return p.evaluate(sp, "reaction", func(l Law) RateFunc { return l.Reaction })
}

// Diffusion evaluates the diffusion term of sp on the current fields.
func (p *Pattern) Diffusion(sp string) (Field, error) {
	return p.evaluate(sp, "diffusion", func(l Law) RateFunc { return l.Diffusion })
}

func (p *Pattern) evaluate(sp, op string, pick func(Law) RateFunc) (Field, error) {
	if !p.known(sp) {
		return Field{}, &UnknownSpeciesError{Model: p.info.Name, Species: sp}
	}
	if !p.Initialized() {
		return Field{}, &UninitializedStateError{Op: op}
	}
	out := NewField(p.state.Size)
	pick(p.laws[sp])(&p.state, out)
	return out, nil
}

// Param returns the current value of a parameter.
func (p *Pattern) Param(name string) (float64, error) {
	return p.state.Params.Get(name)
}

// SetParam changes a parameter between steps, enforcing its bounds.
func (p *Pattern) SetParam(name string, v float64) error {
	return p.state.Params.Set(name, v)
}

// Parameters returns the descriptors with their current values.
func (p *Pattern) Parameters() []Parameter {
	return p.state.Params.List()
}

// Params returns the current values keyed by name.
func (p *Pattern) Params() map[string]float64 {
	return p.state.Params.Values()
}
