package turing

// Scheme advances one species field by one step from its rate terms.
type Scheme interface {
	Name() string
	Advance(dst, old, reaction, diffusion Field, dt float64)
}

// State is the read-only view a Law evaluates against. During Step it holds
// the pre-step snapshot of every species.
type State struct {
	Size   int
	Dx     float64
	Dy     float64
	Dt     float64
	Kernel Kernel
	Params *Parameters
	Fields map[string]Field
}

// Diffuse applies the engine kernel and grid spacing to arr.
func (s *State) Diffuse(out, arr Field, mu float64) {
	Diffuse(out, arr, mu, s.Dx, s.Dy, s.Kernel)
}

// Perturbation is the random seed shared by every species of one
// InitConcentrations call. Cells are flat row-major indices; duplicates are
// allowed and their offsets accumulate.
type Perturbation struct {
	Cells   []int
	Offsets []float64
}

// Add adds sign*offset at every perturbed cell of f.
func (p Perturbation) Add(f Field, sign float64) {
	for i, c := range p.Cells {
		f.Data[c] += sign * p.Offsets[i]
	}
}

// RateFunc writes one species' reaction or diffusion term into out. It must
// overwrite every cell of out and must not modify s.
type RateFunc func(s *State, out Field)

// InitFunc fills f with the species' initial concentrations.
type InitFunc func(s *State, f Field, p Perturbation)

// Law bundles the per-species behaviour of a model.
type Law struct {
	Reaction  RateFunc
	Diffusion RateFunc
	Init      InitFunc
}

// Info is the static description of a model exposed to registries and UIs.
type Info struct {
	Name        string
	Description string
	Species     []string
	// Parameters is the static descriptor table; every entry is necessary.
	Parameters     []Parameter
	Tunable        []string
	DefaultSize    int
	DefaultDx      float64
	DefaultDy      float64
	DefaultDt      float64
	ContrastLimits [2]float64
	Kernel         Kernel
	Scheme         Scheme
}

// Model is implemented by every concrete reaction-diffusion system.
type Model interface {
	Info() Info
	Laws() map[string]Law
}
