package models

import "github.com/san-kum/rdsim/internal/turing"

// diffuse is the standard diffusion law of one species with coefficient mu.
func diffuse(species, mu string) turing.RateFunc {
	return scaledDiffuse(species, mu, "")
}

// scaledDiffuse divides mu by the parameter named div when div is set.
func scaledDiffuse(species, mu, div string) turing.RateFunc {
	return func(s *turing.State, out turing.Field) {
		coef := s.Params.Float(mu)
		if div != "" {
			coef /= s.Params.Float(div)
		}
		s.Diffuse(out, s.Fields[species], coef)
	}
}

// baseline fills a field with level(params) and adds sign*offset at every
// perturbed cell.
func baseline(level func(*turing.Parameters) float64, sign float64) turing.InitFunc {
	return func(s *turing.State, f turing.Field, p turing.Perturbation) {
		f.Fill(level(s.Params))
		p.Add(f, sign)
	}
}

func constant(v float64) func(*turing.Parameters) float64 {
	return func(*turing.Parameters) float64 { return v }
}

func zero(_ *turing.State, out turing.Field) {
	out.Fill(0)
}

// table copies a static descriptor table so callers cannot alias it.
func table(ps []turing.Parameter) []turing.Parameter {
	return append([]turing.Parameter(nil), ps...)
}
