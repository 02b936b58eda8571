package models

import (
	"github.com/san-kum/rdsim/internal/integrators"
	"github.com/san-kum/rdsim/internal/turing"
)

var brusselatorParams = []turing.Parameter{
	{Name: "A", Value: 4.5, Min: 0.1, Max: 10.0, Exponent: 1, Description: "Concentration of source species A"},
	{Name: "B", Value: 7.0, Min: 0.1, Max: 20.0, Exponent: 1, Description: "Concentration of source species B"},
	{Name: "mu_x", Value: 1.0, Min: 0.01, Max: 10.0, Exponent: 0.5, Description: "Diffusion coefficient of X"},
	{Name: "mu_y", Value: 8.0, Min: 0.01, Max: 40.0, Exponent: 0.5, Description: "Diffusion coefficient of Y"},
	{Name: turing.NbPos, Value: 100, Min: 0, Max: 5000, Exponent: 0.5, Description: "Number of random perturbations", DType: turing.Integer},
}

// Brusselator is the Prigogine-Lefever autocatalytic model. Turing
// patterns appear when B > (1 + A·sqrt(mu_x/mu_y))², which needs mu_y well
// above mu_x. Past B > 1 + A² the uniform state oscillates instead (Hopf).
type Brusselator struct{}

func (Brusselator) Info() turing.Info {
	return turing.Info{
		Name:           "Brusselator",
		Description:    "Prigogine-Lefever autocatalytic reaction",
		Species:        []string{"X", "Y"},
		Parameters:     table(brusselatorParams),
		Tunable:        []string{"A", "B", "mu_x", "mu_y", turing.NbPos},
		DefaultSize:    200,
		DefaultDx:      1,
		DefaultDy:      1,
		DefaultDt:      0.005,
		ContrastLimits: [2]float64{0, 10},
		Scheme:         integrators.NewEuler(),
	}
}

func (Brusselator) Laws() map[string]turing.Law {
	return map[string]turing.Law{
		"X": {
			Reaction: func(s *turing.State, out turing.Field) {
				a, b := s.Params.Float("A"), s.Params.Float("B")
				x, y := s.Fields["X"].Data, s.Fields["Y"].Data
				for i := range out.Data {
					out.Data[i] = a - (b+1)*x[i] + x[i]*x[i]*y[i]
				}
			},
			Diffusion: diffuse("X", "mu_x"),
			Init:      baseline(func(p *turing.Parameters) float64 { return p.Float("A") }, 1),
		},
		"Y": {
			Reaction: func(s *turing.State, out turing.Field) {
				b := s.Params.Float("B")
				x, y := s.Fields["X"].Data, s.Fields["Y"].Data
				for i := range out.Data {
					out.Data[i] = b*x[i] - x[i]*x[i]*y[i]
				}
			},
			Diffusion: diffuse("Y", "mu_y"),
			Init:      baseline(func(p *turing.Parameters) float64 { return p.Float("B") / p.Float("A") }, -1),
		},
	}
}

func NewBrusselator(opts ...turing.Option) (*turing.Pattern, error) {
	return turing.New(Brusselator{}, opts...)
}
