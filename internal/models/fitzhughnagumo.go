package models

import (
	"github.com/san-kum/rdsim/internal/integrators"
	"github.com/san-kum/rdsim/internal/turing"
)

var fitzHughNagumoParams = []turing.Parameter{
	{Name: "mu_u", Value: 2.8e-4, Min: 1e-5, Max: 1e-3, Exponent: 0.3, Description: "Diffusion coefficient of the activator U"},
	{Name: "mu_v", Value: 5e-3, Min: 1e-4, Max: 1e-2, Exponent: 0.3, Description: "Diffusion coefficient of the inhibitor V"},
	{Name: "tau", Value: 0.1, Min: 0.01, Max: 1.0, Exponent: 1, Description: "Time scale of the inhibitor"},
	{Name: "k", Value: -0.005, Min: -0.1, Max: 0.1, Exponent: 1, Description: "Activator excitability offset"},
	{Name: turing.NbPos, Value: 2000, Min: 0, Max: 10000, Exponent: 0.5, Description: "Number of random perturbations", DType: turing.Integer},
}

// FitzHughNagumo is the activator-inhibitor model
//
//	dU/dt = mu_u ∇²U + U - U³ - V + k
//	dV/dt = (mu_v ∇²V + U - V) / tau
type FitzHughNagumo struct{}

func (FitzHughNagumo) Info() turing.Info {
	return turing.Info{
		Name:           "FitzHughNagumo",
		Description:    "FitzHugh-Nagumo activator-inhibitor system",
		Species:        []string{"U", "V"},
		Parameters:     table(fitzHughNagumoParams),
		Tunable:        []string{"mu_u", "mu_v", "tau", "k", turing.NbPos},
		DefaultSize:    100,
		DefaultDx:      0.02,
		DefaultDy:      0.02,
		DefaultDt:      0.001,
		ContrastLimits: [2]float64{-1, 1},
		Scheme:         integrators.NewEuler(),
	}
}

func (FitzHughNagumo) Laws() map[string]turing.Law {
	return map[string]turing.Law{
		"U": {
			Reaction: func(s *turing.State, out turing.Field) {
				k := s.Params.Float("k")
				u, v := s.Fields["U"].Data, s.Fields["V"].Data
				for i := range out.Data {
					out.Data[i] = u[i] - u[i]*u[i]*u[i] - v[i] + k
				}
			},
			Diffusion: diffuse("U", "mu_u"),
			Init:      baseline(constant(0), 1),
		},
		"V": {
			Reaction: func(s *turing.State, out turing.Field) {
				tau := s.Params.Float("tau")
				u, v := s.Fields["U"].Data, s.Fields["V"].Data
				for i := range out.Data {
					out.Data[i] = (u[i] - v[i]) / tau
				}
			},
			Diffusion: scaledDiffuse("V", "mu_v", "tau"),
			Init:      baseline(constant(0), 1),
		},
	}
}

func NewFitzHughNagumo(opts ...turing.Option) (*turing.Pattern, error) {
	return turing.New(FitzHughNagumo{}, opts...)
}
