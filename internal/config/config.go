// Package config loads the application configuration shared by the front
// ends: world dimensions, physics tunables, display and benchmark settings.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"sandsim/internal/sims/sand"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every configurable value of the simulator.
type Config struct {
	World   WorldConfig   `yaml:"world"`
	Physics sand.Params   `yaml:"physics"`
	Display DisplayConfig `yaml:"display"`
	Bench   BenchConfig   `yaml:"bench"`
}

// WorldConfig describes the grid and how it is populated after a reset.
type WorldConfig struct {
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Seed     int64  `yaml:"seed"`
	Scenario string `yaml:"scenario"`
}

// DisplayConfig holds settings for the interactive front ends.
type DisplayConfig struct {
	Scale       int    `yaml:"scale"`
	TPS         int    `yaml:"tps"`
	HUDWidth    int    `yaml:"hud_width"`
	BrushRadius int    `yaml:"brush_radius"`
	Material    string `yaml:"material"` // initially selected brush material
}

// BenchConfig holds settings for the headless batch runner.
type BenchConfig struct {
	Seeds       int      `yaml:"seeds"`
	Ticks       int      `yaml:"ticks"`
	SampleEvery int      `yaml:"sample_every"` // ticks between telemetry samples
	Workers     int      `yaml:"workers"`      // 0 means one per CPU
	Scenarios   []string `yaml:"scenarios"`
}

// Load loads configuration from a YAML file, merging it over the embedded
// defaults. If path is empty, only the defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{Physics: sand.DefaultParams()}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Fields missing from the file keep their default.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}
	cfg.Physics.Sanitize()
	return cfg, nil
}

// Default returns the embedded defaults. It panics if they are malformed,
// which can only happen through a broken build.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Validate reports every value that would make the simulator unusable.
func (c *Config) Validate() error {
	var errs []error
	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, fmt.Errorf("world size %dx%d must be positive", c.World.Width, c.World.Height))
	}
	if c.Display.Scale <= 0 {
		errs = append(errs, fmt.Errorf("display scale %d must be positive", c.Display.Scale))
	}
	if c.Display.TPS <= 0 {
		errs = append(errs, fmt.Errorf("display tps %d must be positive", c.Display.TPS))
	}
	if c.Bench.Seeds < 0 || c.Bench.Ticks < 0 || c.Bench.Workers < 0 {
		errs = append(errs, errors.New("bench seeds, ticks and workers must not be negative"))
	}
	if c.Physics.TickDT <= 0 {
		errs = append(errs, fmt.Errorf("physics tick_dt %v must be positive", c.Physics.TickDT))
	}
	return errors.Join(errs...)
}

// Sand converts the configuration into the options of a sand world.
func (c *Config) Sand() sand.Config {
	return sand.Config{
		Width:  c.World.Width,
		Height: c.World.Height,
		Seed:   c.World.Seed,
		Params: c.Physics,
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
