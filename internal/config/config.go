package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/rdsim/internal/models"
	"github.com/san-kum/rdsim/internal/turing"
)

const (
	DefaultModel       = "GrayScott"
	DefaultSteps       = 5000
	DefaultSampleEvery = 50
	DefaultOutput      = ".rdsim"
)

// Config describes one run. Zero grid values (size, dx, dy, dt) fall back
// to the model defaults; a zero seed draws a time-based one.
type Config struct {
	Model       string             `yaml:"model"`
	Size        int                `yaml:"size,omitempty"`
	Dx          float64            `yaml:"dx,omitempty"`
	Dy          float64            `yaml:"dy,omitempty"`
	Dt          float64            `yaml:"dt,omitempty"`
	Steps       int                `yaml:"steps"`
	SampleEvery int                `yaml:"sample_every"`
	Seed        int64              `yaml:"seed,omitempty"`
	Params      map[string]float64 `yaml:"params,omitempty"`
	Output      string             `yaml:"output,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:       DefaultModel,
		Steps:       DefaultSteps,
		SampleEvery: DefaultSampleEvery,
		Params:      make(map[string]float64),
		Output:      DefaultOutput,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the run settings that do not depend on the model's
// parameter table. Parameter values are checked when the pattern is built.
func (c *Config) Validate() error {
	if _, err := models.Lookup(c.Model); err != nil {
		return err
	}
	switch {
	case c.Size < 0:
		return fmt.Errorf("size must not be negative, got %d", c.Size)
	case c.Dx < 0 || c.Dy < 0:
		return fmt.Errorf("spatial steps must not be negative, got dx=%g dy=%g", c.Dx, c.Dy)
	case c.Dt < 0:
		return fmt.Errorf("dt must not be negative, got %g", c.Dt)
	case c.Steps < 0:
		return fmt.Errorf("steps must not be negative, got %d", c.Steps)
	case c.SampleEvery <= 0:
		return fmt.Errorf("sample_every must be positive, got %d", c.SampleEvery)
	}
	return nil
}

// Options translates the config into pattern options.
func (c *Config) Options() []turing.Option {
	opts := make([]turing.Option, 0, 5)
	if c.Size > 0 {
		opts = append(opts, turing.WithSize(c.Size))
	}
	// An unset dx means the model's default, an unset dy means dx.
	if c.Dx > 0 || c.Dy > 0 {
		dx, dy := c.Dx, c.Dy
		if dx == 0 {
			dx = 1
			if e, err := models.Lookup(c.Model); err == nil {
				dx = e.Info().DefaultDx
			}
		}
		if dy == 0 {
			dy = dx
		}
		opts = append(opts, turing.WithSpacing(dx, dy))
	}
	if c.Dt > 0 {
		opts = append(opts, turing.WithTimeStep(c.Dt))
	}
	if len(c.Params) > 0 {
		opts = append(opts, turing.WithParams(c.Params))
	}
	if c.Seed != 0 {
		opts = append(opts, turing.WithSeed(c.Seed))
	}
	return opts
}

// Build constructs the configured pattern.
func (c *Config) Build() (*turing.Pattern, error) {
	e, err := models.Lookup(c.Model)
	if err != nil {
		return nil, err
	}
	return e.New(c.Options()...)
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Params = make(map[string]float64, len(c.Params))
	for k, v := range c.Params {
		out.Params[k] = v
	}
	return &out
}
