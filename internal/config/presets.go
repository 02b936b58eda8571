package config

import (
	"sort"

	"github.com/san-kum/rdsim/internal/models"
)

var Presets = map[string]map[string]*Config{
	"GrayScott": {
		"mitosis": {
			Model: "GrayScott", Size: 128, Steps: 10000, SampleEvery: 100,
			Params: map[string]float64{"F": 0.0367, "k": 0.0649},
		},
		"coral": {
			Model: "GrayScott", Size: 128, Steps: 10000, SampleEvery: 100,
			Params: map[string]float64{"F": 0.0545, "k": 0.062},
		},
		"spots": {
			Model: "GrayScott", Size: 128, Steps: 10000, SampleEvery: 100,
			Params: map[string]float64{"F": 0.025, "k": 0.06},
		},
	},
	"Brusselator": {
		"stripes": {
			Model: "Brusselator", Size: 100, Steps: 4000, SampleEvery: 40,
			Params: map[string]float64{"A": 4.5, "B": 6.75, "mu_x": 2, "mu_y": 16},
		},
		"hexagons": {
			Model: "Brusselator", Size: 100, Steps: 4000, SampleEvery: 40,
			Params: map[string]float64{"A": 3, "B": 9},
		},
	},
	"Oregonator": {
		"default": {
			Model: "Oregonator", Size: 200, Steps: 20000, SampleEvery: 200,
			Params: map[string]float64{"A": 1, "B": 1, "C": 0.1},
		},
	},
	"FitzHughNagumo": {
		"labyrinth": {
			Model: "FitzHughNagumo", Size: 100, Steps: 20000, SampleEvery: 200,
			Params: map[string]float64{"tau": 0.1, "k": -0.005},
		},
	},
	"GameOfLife": {
		"soup": {
			Model: "GameOfLife", Size: 100, Steps: 500, SampleEvery: 10,
			Params: map[string]float64{"nb_pos": 3000},
		},
		"highlife": {
			Model: "GameOfLife", Size: 100, Steps: 500, SampleEvery: 10,
			Params: map[string]float64{"birth": 6, "nb_pos": 3000},
		},
	},
}

// GetPreset returns a copy of the named preset. The model name is matched
// the same way as model lookup, so "gray-scott" finds GrayScott presets.
func GetPreset(model, preset string) *Config {
	modelPresets := presetsFor(model)
	if modelPresets == nil {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	out := cfg.Clone()
	out.Output = DefaultOutput
	return out
}

// ListPresets returns the preset names of a model in sorted order.
func ListPresets(model string) []string {
	modelPresets := presetsFor(model)
	if modelPresets == nil {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func presetsFor(model string) map[string]*Config {
	e, err := models.Lookup(model)
	if err != nil {
		return nil
	}
	return Presets[e.Name]
}
