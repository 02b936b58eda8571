package models

import (
	"github.com/san-kum/rdsim/internal/integrators"
	"github.com/san-kum/rdsim/internal/turing"
)

var grayScottParams = []turing.Parameter{
	{Name: "F", Value: 0.055, Min: 0.001, Max: 0.1, Exponent: 1, Description: "Feed rate of U"},
	{Name: "k", Value: 0.062, Min: 0.001, Max: 0.1, Exponent: 1, Description: "Kill rate of V"},
	{Name: "mu_u", Value: 0.16, Min: 0.01, Max: 0.25, Exponent: 1, Description: "Diffusion coefficient of U"},
	{Name: "mu_v", Value: 0.08, Min: 0.01, Max: 0.25, Exponent: 1, Description: "Diffusion coefficient of V"},
	{Name: turing.NbPos, Value: 200, Min: 0, Max: 10000, Exponent: 0.5, Description: "Number of random perturbations", DType: turing.Integer},
}

// GrayScott is the cubic autocatalysis model U + 2V -> 3V.
type GrayScott struct{}

func (GrayScott) Info() turing.Info {
	return turing.Info{
		Name:           "GrayScott",
		Description:    "Gray-Scott cubic autocatalysis",
		Species:        []string{"U", "V"},
		Parameters:     table(grayScottParams),
		Tunable:        []string{"F", "k", "mu_u", "mu_v", turing.NbPos},
		DefaultSize:    200,
		DefaultDx:      1,
		DefaultDy:      1,
		DefaultDt:      1,
		ContrastLimits: [2]float64{0, 1},
		Scheme:         integrators.NewEuler(),
	}
}

func (GrayScott) Laws() map[string]turing.Law {
	return map[string]turing.Law{
		"U": {
			Reaction: func(s *turing.State, out turing.Field) {
				f := s.Params.Float("F")
				u, v := s.Fields["U"].Data, s.Fields["V"].Data
				for i := range out.Data {
					out.Data[i] = -u[i]*v[i]*v[i] + f*(1-u[i])
				}
			},
			Diffusion: diffuse("U", "mu_u"),
			Init:      baseline(constant(1), -1),
		},
		"V": {
			Reaction: func(s *turing.State, out turing.Field) {
				f, k := s.Params.Float("F"), s.Params.Float("k")
				u, v := s.Fields["U"].Data, s.Fields["V"].Data
				for i := range out.Data {
					out.Data[i] = u[i]*v[i]*v[i] - (f+k)*v[i]
				}
			},
			Diffusion: diffuse("V", "mu_v"),
			Init:      baseline(constant(0), 1),
		},
	}
}

func NewGrayScott(opts ...turing.Option) (*turing.Pattern, error) {
	return turing.New(GrayScott{}, opts...)
}
