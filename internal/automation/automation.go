// Package automation runs scripted sequences of experiments described in
// YAML scenario files.
package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/rdsim/internal/config"
	"github.com/san-kum/rdsim/internal/experiment"
	"github.com/san-kum/rdsim/internal/sim"
	"github.com/san-kum/rdsim/internal/storage"
)

// Scenario is a named list of runs executed in order.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one run of a scenario. Zero fields keep the value of the
// preset, or of the model defaults when no preset is named.
type ScenarioStep struct {
	Model       string             `yaml:"model"`
	Preset      string             `yaml:"preset"`
	Size        int                `yaml:"size"`
	Dt          float64            `yaml:"dt"`
	Steps       int                `yaml:"steps"`
	SampleEvery int                `yaml:"sample_every"`
	Seed        int64              `yaml:"seed"`
	Params      map[string]float64 `yaml:"params"`
	Save        bool               `yaml:"save"`
}

// StepResult is the outcome of one scenario step. RunID is empty unless the
// step was saved.
type StepResult struct {
	Index  int
	Model  string
	Seed   int64
	RunID  string
	Result *sim.Result
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if len(scenario.Steps) == 0 {
		return nil, errors.New("scenario has no steps")
	}
	return &scenario, nil
}

// Config resolves the run configuration of the step.
func (s ScenarioStep) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Model != "" {
		cfg.Model = s.Model
	}
	if s.Preset != "" {
		p := config.GetPreset(cfg.Model, s.Preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q for %s", s.Preset, cfg.Model)
		}
		cfg = p
	}

	if s.Size != 0 {
		cfg.Size = s.Size
	}
	if s.Dt != 0 {
		cfg.Dt = s.Dt
	}
	if s.Steps != 0 {
		cfg.Steps = s.Steps
	}
	if s.SampleEvery != 0 {
		cfg.SampleEvery = s.SampleEvery
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	if cfg.Params == nil {
		cfg.Params = make(map[string]float64, len(s.Params))
	}
	for k, v := range s.Params {
		cfg.Params[k] = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RunScenario executes every step in order and stops at the first failure.
// Steps marked save are recorded in st; a nil store disables saving.
func RunScenario(ctx context.Context, scenario *Scenario, st *storage.Store) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		exp, err := experiment.New(cfg)
		if err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		slog.Info("scenario step", "scenario", scenario.Name, "step", i+1, "of", len(scenario.Steps),
			"model", exp.Pattern().Name(), "seed", exp.Seed())

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Index: i + 1, Model: exp.Pattern().Name(), Seed: exp.Seed(), Result: result}
		if step.Save && st != nil {
			sr.RunID, err = st.Save(exp.Metadata(result), result.Samples)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		results = append(results, sr)
	}

	return results, nil
}
