package sand

import (
	"sandsim/internal/core"
	"sandsim/internal/material"
)

func (w *World) updateSmoke(x, y int, p material.Particle) {
	w.updateGas(x, y, p, material.Empty, 0)
}

func (w *World) updateSteam(x, y int, p material.Particle) {
	w.updateGas(x, y, p, material.Water, w.cfg.Params.SteamCondenseChance)
}

// updateGas ages a gas particle and lets it rise, drifting sideways at
// random and bubbling up through denser fluids. Once its lifetime runs out
// the cell turns into residue with the given chance, otherwise EMPTY. Alpha
// fades over the last GasFadeTime seconds.
func (w *World) updateGas(x, y int, p material.Particle, residue material.ID, chance float64) {
	params := w.cfg.Params
	src := w.grid.Index(x, y)

	p.Lifetime -= w.step.dt
	if p.Lifetime <= 0 {
		if residue != material.Empty && w.rng.Chance(chance) {
			w.transform(src, residue)
		} else {
			w.grid.Write(src, material.EmptyParticle())
		}
		return
	}
	if params.GasFadeTime > 0 {
		base := float32(material.Lookup(p.ID).Alpha)
		fade := core.Clamp(p.Lifetime/float32(params.GasFadeTime), 0, 1)
		p.Color.A = uint8(base * fade)
	}

	limit := float32(params.GasMaxSpeed)
	p.Velocity.Y = core.Clamp(p.Velocity.Y-float32(params.GasLift)*w.step.dt, -limit, limit)
	dy := min(int(p.Velocity.Y), -1)
	dx := 0
	if w.rng.Chance(params.GasDriftChance) {
		dx = w.rng.Sign()
	}

	ex, ey, _ := w.traverse(x, y, dx, dy)
	if ex != x || ey != y {
		w.move(src, w.grid.Index(ex, ey), p)
		return
	}
	if _, _, ok := w.tryDisplace(x, y, 0, -1, p); ok {
		return
	}
	if _, _, ok := w.tryDiagonal(x, y, -1, p); ok {
		return
	}
	if dx != 0 && w.grid.IsEmpty(x+dx, y) {
		w.move(src, w.grid.Index(x+dx, y), p)
		return
	}
	p.Velocity.Y = 0
	w.stay(src, p)
}
