package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Overrides collects repeated -set key=value flags. Keys are w, h, seed and
// the physics parameter names of defaults.yaml.
type Overrides map[string]string

// String implements flag.Value.
func (o Overrides) String() string {
	parts := make([]string, 0, len(o))
	for _, k := range slices.Sorted(maps.Keys(o)) {
		parts = append(parts, k+"="+o[k])
	}
	return strings.Join(parts, ",")
}

// Set implements flag.Value. A later value for the same key wins.
func (o Overrides) Set(v string) error {
	key, value, ok := strings.Cut(v, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return fmt.Errorf("override %q is not key=value", v)
	}
	o[key] = strings.TrimSpace(value)
	return nil
}

// Override applies kv to the world and physics sections through the sand
// config's key/value parser, then revalidates.
func (c *Config) Override(kv Overrides) error {
	if len(kv) == 0 {
		return nil
	}
	sc := c.Sand()
	if err := sc.Apply(kv); err != nil {
		return fmt.Errorf("applying overrides: %w", err)
	}
	c.World.Width = sc.Width
	c.World.Height = sc.Height
	c.World.Seed = sc.Seed
	c.Physics = sc.Params
	return c.Validate()
}
