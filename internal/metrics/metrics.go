// Package metrics provides run metrics that summarize how a pattern
// develops: spatial statistics, activity between samples and boundedness.
package metrics

import (
	"strings"

	"github.com/san-kum/rdsim/internal/sim"
)

// StabilityBound is the magnitude above which a concentration is treated
// as diverged.
const StabilityBound = 1e6

// Standard returns the default metric set for the given species.
func Standard(species []string) []sim.Metric {
	out := make([]sim.Metric, 0, 3*len(species)+1)
	for _, sp := range species {
		out = append(out, NewMean(sp), NewContrast(sp), NewActivity(sp))
	}
	return append(out, NewStability(StabilityBound))
}

// ByName builds a single metric. Per-species metrics take the species
// after an underscore, e.g. "contrast_V".
func ByName(name string) (sim.Metric, bool) {
	if name == "stability" {
		return NewStability(StabilityBound), true
	}
	for prefix, build := range map[string]func(string) sim.Metric{
		"mean_":       func(sp string) sim.Metric { return NewMean(sp) },
		"contrast_":   func(sp string) sim.Metric { return NewContrast(sp) },
		"activity_":   func(sp string) sim.Metric { return NewActivity(sp) },
		"mass_drift_": func(sp string) sim.Metric { return NewMassDrift(sp) },
	} {
		if sp, ok := strings.CutPrefix(name, prefix); ok && sp != "" {
			return build(sp), true
		}
	}
	return nil, false
}
