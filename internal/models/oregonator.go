package models

import (
	"github.com/san-kum/rdsim/internal/integrators"
	"github.com/san-kum/rdsim/internal/turing"
)

var oregonatorParams = []turing.Parameter{
	{Name: "A", Value: 1.0, Min: 0.1, Max: 5.0, Exponent: 1, Description: "Concentration of productor of X"},
	{Name: "B", Value: 1.0, Min: 0.1, Max: 5.0, Exponent: 1, Description: "Concentration of productor of Y (combined with X)"},
	{Name: "C", Value: 0.1, Min: 0.1, Max: 5.0, Exponent: 1, Description: "Concentration of inhibitor"},
	{Name: "mu_x", Value: 2.0e-5, Min: 0.1e-5, Max: 5.0e-5, Exponent: 1, Description: "Diffusion coefficient of X"},
	{Name: "mu_y", Value: 1.0e-5, Min: 0.01e-5, Max: 20.0e-5, Exponent: 0.1, Description: "Diffusion coefficient of Y"},
	{Name: "mu_z", Value: 1.0e-5, Min: 0.01e-5, Max: 20.0e-5, Exponent: 0.1, Description: "Diffusion coefficient of Z"},
	{Name: turing.NbPos, Value: 1, Min: 0, Max: 300, Exponent: 1, Description: "Number of random perturbations", DType: turing.Integer},
}

// Oregonator is the three-variable Belousov-Zhabotinsky model.
type Oregonator struct{}

func (Oregonator) Info() turing.Info {
	return turing.Info{
		Name:           "Oregonator",
		Description:    "Belousov-Zhabotinsky oscillating reaction",
		Species:        []string{"X", "Y", "Z"},
		Parameters:     table(oregonatorParams),
		Tunable:        []string{"A", "B", "C", "mu_x", "mu_y", "mu_z", turing.NbPos},
		DefaultSize:    200,
		DefaultDx:      1,
		DefaultDy:      1,
		DefaultDt:      0.01,
		ContrastLimits: [2]float64{0.3, 3.5},
		Scheme:         integrators.NewEuler(),
	}
}

func (Oregonator) Laws() map[string]turing.Law {
	return map[string]turing.Law{
		"X": {
			Reaction: func(s *turing.State, out turing.Field) {
				a := s.Params.Float("A")
				x, y := s.Fields["X"].Data, s.Fields["Y"].Data
				for i := range out.Data {
					out.Data[i] = a - x[i] + x[i]*x[i]*y[i]
				}
			},
			Diffusion: diffuse("X", "mu_x"),
			Init:      baseline(func(p *turing.Parameters) float64 { return p.Float("A") }, 1),
		},
		"Y": {
			Reaction: func(s *turing.State, out turing.Field) {
				b, c := s.Params.Float("B"), s.Params.Float("C")
				x, y := s.Fields["X"].Data, s.Fields["Y"].Data
				for i := range out.Data {
					out.Data[i] = b * (x[i] - x[i]*x[i]*y[i] - c*y[i])
				}
			},
			Diffusion: diffuse("Y", "mu_y"),
			Init:      baseline(oregonatorRatio, -1),
		},
		"Z": {
			Reaction: func(s *turing.State, out turing.Field) {
				c := s.Params.Float("C")
				x, z := s.Fields["X"].Data, s.Fields["Z"].Data
				for i := range out.Data {
					out.Data[i] = c * (x[i] - z[i])
				}
			},
			Diffusion: diffuse("Z", "mu_z"),
			Init:      baseline(oregonatorRatio, -1),
		},
	}
}

func oregonatorRatio(p *turing.Parameters) float64 {
	return p.Float("B") / p.Float("A")
}

// NewOregonator builds an Oregonator pattern.
func NewOregonator(opts ...turing.Option) (*turing.Pattern, error) {
	return turing.New(Oregonator{}, opts...)
}
