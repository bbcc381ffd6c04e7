// Package sand implements the falling sand cellular automaton: an in-place
// grid scan that dispatches each occupied cell to its material's update rule.
package sand

import (
	"sandsim/internal/core"
	"sandsim/internal/grid"
	"sandsim/internal/material"
)

// updateFunc integrates one cell for one tick. p is a snapshot of the cell at
// dispatch time; rules write every change back through the grid.
type updateFunc func(x, y int, p material.Particle)

// stepParams are the physical parameters shared by all rules during a tick.
type stepParams struct {
	gravity  float32
	maxSpeed float32
	dt       float32
}

// World owns the grid and drives one simulation step per Update call. It is
// not safe for concurrent use.
type World struct {
	cfg Config

	w, h int
	grid *grid.Grid
	rng  *core.RNG

	rules [material.Count]updateFunc
	step  stepParams

	ticks   uint64
	elapsed float64

	onReset func(*World)
}

// New returns a world with the provided dimensions using default physics.
func New(w, h int) *World {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a world configured from the provided options. The
// dimensions must be positive.
func NewWithConfig(cfg Config) *World {
	cfg.Params.Sanitize()
	w := &World{
		cfg:  cfg,
		w:    cfg.Width,
		h:    cfg.Height,
		grid: grid.New(cfg.Width, cfg.Height),
		rng:  core.NewRNG(cfg.Seed),
	}
	w.rules = w.buildRules()
	return w
}

func (w *World) buildRules() [material.Count]updateFunc {
	var r [material.Count]updateFunc
	r[material.Sand] = w.updateSand
	r[material.Water] = w.updateWater
	r[material.Salt] = w.updateSalt
	r[material.Fire] = w.updateFire
	r[material.Smoke] = w.updateSmoke
	r[material.Ember] = w.updateEmber
	r[material.Steam] = w.updateSteam
	r[material.Gunpowder] = w.updateGunpowder
	r[material.Oil] = w.updateOil
	r[material.Lava] = w.updateLava
	r[material.Acid] = w.updateAcid
	// Wood and stone never move; they only change when another rule ignites
	// or corrodes them.
	return r
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "sand" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.w, H: w.h} }

// Pixels exposes the RGBA8 color buffer mirroring the grid.
func (w *World) Pixels() []uint8 { return w.grid.Pixels() }

// Grid exposes the underlying grid store.
func (w *World) Grid() *grid.Grid { return w.grid }

// Config returns the active configuration.
func (w *World) Config() Config { return w.cfg }

// Tick returns the number of completed updates since the last reset.
func (w *World) Tick() uint64 { return w.ticks }

// Elapsed returns the simulated seconds since the last reset.
func (w *World) Elapsed() float64 { return w.elapsed }

// RNG exposes the world's deterministic random source.
func (w *World) RNG() *core.RNG { return w.rng }

// OnReset registers a hook that repopulates the grid after every Reset.
func (w *World) OnReset(fn func(*World)) { w.onReset = fn }

// Reset clears every cell to EMPTY and reseeds randomness. A zero seed falls
// back to the configured seed.
func (w *World) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.rng.Seed(effective)
	w.grid.Reset()
	w.ticks = 0
	w.elapsed = 0
	if w.onReset != nil {
		w.onReset(w)
	}
}

// Step advances the world by the configured tick delta.
func (w *World) Step() {
	w.Update(float32(w.cfg.Params.TickDT))
}

// Update advances the world by one tick of dt seconds. Rows are scanned from
// the bottom up; the column direction alternates every tick. A particle that
// moved this tick is flagged and skipped if the scan reaches it again. A
// non-positive dt is a no-op.
func (w *World) Update(dt float32) {
	if dt <= 0 {
		return
	}
	w.step = stepParams{
		gravity:  float32(w.cfg.Params.Gravity),
		maxSpeed: float32(w.cfg.Params.MaxSpeed),
		dt:       dt,
	}
	w.grid.ClearUpdated()

	leftToRight := w.ticks%2 == 0
	for y := w.h - 1; y >= 0; y-- {
		for i := 0; i < w.w; i++ {
			x := i
			if !leftToRight {
				x = w.w - 1 - i
			}
			p := w.grid.At(w.grid.Index(x, y))
			if p.ID == material.Empty || p.Updated {
				continue
			}
			if rule := w.rules[p.ID]; rule != nil {
				rule(x, y, p)
			}
		}
	}

	w.ticks++
	w.elapsed += float64(dt)
}
