package models

import (
	"github.com/san-kum/rdsim/internal/integrators"
	"github.com/san-kum/rdsim/internal/turing"
)

var gameOfLifeParams = []turing.Parameter{
	{Name: "birth", Value: 3, Min: 0, Max: 8, Exponent: 1, Description: "Neighbour count that brings a dead cell to life", DType: turing.Integer},
	{Name: "survive_min", Value: 2, Min: 0, Max: 8, Exponent: 1, Description: "Fewest neighbours a live cell survives with", DType: turing.Integer},
	{Name: "survive_max", Value: 3, Min: 0, Max: 8, Exponent: 1, Description: "Most neighbours a live cell survives with", DType: turing.Integer},
	{Name: turing.NbPos, Value: 3000, Min: 0, Max: 40000, Exponent: 0.5, Description: "Number of cells alive at start", DType: turing.Integer},
}

// GameOfLife is Conway's automaton expressed through the stepping contract:
// the reaction term is the next generation, there is no diffusion and the
// discrete scheme ignores dt. The grid edge is dead (zero padded).
type GameOfLife struct{}

func (GameOfLife) Info() turing.Info {
	return turing.Info{
		Name:           "GameOfLife",
		Description:    "Conway's Game of Life (B3/S23 by default)",
		Species:        []string{"C"},
		Parameters:     table(gameOfLifeParams),
		Tunable:        []string{"birth", "survive_min", "survive_max", turing.NbPos},
		DefaultSize:    100,
		DefaultDx:      1,
		DefaultDy:      1,
		DefaultDt:      1,
		ContrastLimits: [2]float64{0, 1},
		Scheme:         integrators.NewDiscrete(),
	}
}

func (GameOfLife) Laws() map[string]turing.Law {
	return map[string]turing.Law{
		"C": {
			Reaction:  lifeRule,
			Diffusion: zero,
			Init:      seedAlive,
		},
	}
}

func lifeRule(s *turing.State, out turing.Field) {
	cells := s.Fields["C"]
	turing.Convolve(out, cells, turing.Moore())

	birth := s.Params.Int("birth")
	lo, hi := s.Params.Int("survive_min"), s.Params.Int("survive_max")
	for i, n := range out.Data {
		count := int(n + 0.5)
		alive := cells.Data[i] >= 0.5
		if (alive && count >= lo && count <= hi) || (!alive && count == birth) {
			out.Data[i] = 1
		} else {
			out.Data[i] = 0
		}
	}
}

// seedAlive sets perturbed cells to 1; repeated cells stay at 1.
func seedAlive(_ *turing.State, f turing.Field, p turing.Perturbation) {
	f.Fill(0)
	for _, c := range p.Cells {
		f.Data[c] = 1
	}
}

func NewGameOfLife(opts ...turing.Option) (*turing.Pattern, error) {
	return turing.New(GameOfLife{}, opts...)
}
