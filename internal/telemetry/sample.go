// Package telemetry records per-tick measurements of sand worlds as CSV and
// summarizes them for logging.
package telemetry

import (
	"time"

	"sandsim/internal/material"
	"sandsim/internal/sims/sand"
)

// Sample is one measurement of a world, taken after a tick.
type Sample struct {
	Scenario string  `csv:"scenario"`
	Seed     int64   `csv:"seed"`
	Tick     uint64  `csv:"tick"`
	SimTime  float64 `csv:"sim_time"`
	TickUS   int64   `csv:"tick_us"` // wall time of the last tick

	Occupied  int `csv:"occupied"`
	Sand      int `csv:"sand"`
	Water     int `csv:"water"`
	Salt      int `csv:"salt"`
	Wood      int `csv:"wood"`
	Fire      int `csv:"fire"`
	Smoke     int `csv:"smoke"`
	Ember     int `csv:"ember"`
	Steam     int `csv:"steam"`
	Gunpowder int `csv:"gunpowder"`
	Oil       int `csv:"oil"`
	Lava      int `csv:"lava"`
	Stone     int `csv:"stone"`
	Acid      int `csv:"acid"`
}

// Capture measures w. elapsed is the wall time spent in the tick that preceded
// the sample.
func Capture(w *sand.World, scenario string, seed int64, elapsed time.Duration) Sample {
	c := w.Census()
	return Sample{
		Scenario: scenario,
		Seed:     seed,
		Tick:     w.Tick(),
		SimTime:  w.Elapsed(),
		TickUS:   elapsed.Microseconds(),

		Occupied:  c.Total(),
		Sand:      c[material.Sand],
		Water:     c[material.Water],
		Salt:      c[material.Salt],
		Wood:      c[material.Wood],
		Fire:      c[material.Fire],
		Smoke:     c[material.Smoke],
		Ember:     c[material.Ember],
		Steam:     c[material.Steam],
		Gunpowder: c[material.Gunpowder],
		Oil:       c[material.Oil],
		Lava:      c[material.Lava],
		Stone:     c[material.Stone],
		Acid:      c[material.Acid],
	}
}
