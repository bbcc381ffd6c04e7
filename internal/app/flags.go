package app

import (
	"flag"

	"sandsim/internal/config"
)

// Config represents the command-line parameters for the interactive front
// ends. Zero values leave the corresponding file setting untouched.
type Config struct {
	ConfigPath string
	Scenario   string
	Scale      int
	TPS        int
	Seed       int64
	Width      int
	Height     int
	Set        config.Overrides
}

// NewConfig returns a Config that defers every setting to the config file.
func NewConfig() *Config {
	return &Config{Set: config.Overrides{}}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "path to a YAML config file merged over the defaults")
	fs.StringVar(&c.Scenario, "scenario", c.Scenario, "scenario to load after every reset")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.IntVar(&c.Width, "w", c.Width, "grid width in cells")
	fs.IntVar(&c.Height, "h", c.Height, "grid height in cells")
	if c.Set == nil {
		c.Set = config.Overrides{}
	}
	fs.Var(c.Set, "set", "override a world or physics parameter as key=value (repeatable)")
}

// Load reads the config file named by ConfigPath and applies the flag
// overrides on top of it, -set pairs last.
func (c *Config) Load() (*config.Config, error) {
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return nil, err
	}
	c.Apply(cfg)
	if err := cfg.Override(c.Set); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Apply copies every non-zero flag value into cfg.
func (c *Config) Apply(cfg *config.Config) {
	if c.Scenario != "" {
		cfg.World.Scenario = c.Scenario
	}
	if c.Scale > 0 {
		cfg.Display.Scale = c.Scale
	}
	if c.TPS > 0 {
		cfg.Display.TPS = c.TPS
	}
	if c.Seed != 0 {
		cfg.World.Seed = c.Seed
	}
	if c.Width > 0 {
		cfg.World.Width = c.Width
	}
	if c.Height > 0 {
		cfg.World.Height = c.Height
	}
}
