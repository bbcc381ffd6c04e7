// Package scenario holds named initial layouts for a sand world. A scenario
// is installed as the world's reset hook, so every Reset repaints it from the
// freshly seeded random source.
package scenario

import (
	"errors"
	"fmt"
	"sort"

	"sandsim/internal/sims/sand"
)

// ErrUnknown is returned when a scenario name is not registered.
var ErrUnknown = errors.New("unknown scenario")

// Scenario paints an initial layout onto an empty world.
type Scenario struct {
	Name        string
	Description string
	Build       func(w *sand.World)
}

var registry = map[string]Scenario{}

// Register adds s to the registry under s.Name, replacing any previous entry.
func Register(s Scenario) {
	if s.Name == "" || s.Build == nil {
		return
	}
	registry[s.Name] = s
}

// Lookup returns the scenario registered under name.
func Lookup(name string) (Scenario, bool) {
	s, ok := registry[name]
	return s, ok
}

// Names lists the registered scenarios alphabetically.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Install makes the named scenario the reset hook of w. The caller still has
// to Reset the world to paint it.
func Install(w *sand.World, name string) error {
	s, ok := registry[name]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknown, name)
	}
	w.OnReset(s.Build)
	return nil
}

// New builds a world from cfg with the named scenario installed and painted.
func New(cfg sand.Config, name string) (*sand.World, error) {
	w := sand.NewWithConfig(cfg)
	if err := Install(w, name); err != nil {
		return nil, err
	}
	w.Reset(cfg.Seed)
	return w, nil
}
