package sand

import (
	"sandsim/internal/material"
)

func (w *World) updateSand(x, y int, p material.Particle) {
	w.updatePowder(x, y, p, w.cfg.Params.SandSlipChance)
}

func (w *World) updateGunpowder(x, y int, p material.Particle) {
	w.updatePowder(x, y, p, w.cfg.Params.SandSlipChance)
}

func (w *World) updateSalt(x, y int, p material.Particle) {
	if _, ok := w.neighbor(x, y, material.Water); ok && w.rng.Chance(w.cfg.Params.SaltDissolveChance) {
		w.grid.Write(w.grid.Index(x, y), material.EmptyParticle())
		return
	}
	w.updatePowder(x, y, p, w.cfg.Params.SaltSlipChance)
}

// updatePowder integrates a granular particle: gravity along its velocity,
// punching through slow liquids, then sinking into lighter fluids below or
// slipping diagonally when it comes to rest on something. It returns the
// particle's final position.
func (w *World) updatePowder(x, y int, p material.Particle, slipChance float64) (int, int) {
	src := w.grid.Index(x, y)
	w.integrateGravity(&p)

	if w.grid.InBounds(x, y+1) && !w.grid.IsEmpty(x, y+1) && !material.IsLiquid(w.grid.Read(x, y+1).ID) {
		p.Velocity.Y /= 2
		p.Velocity.X *= float32(1 - w.cfg.Params.GroundFriction)
	}

	ex, ey, blocker := w.traverse(x, y, int(p.Velocity.X), int(p.Velocity.Y))
	if blocker >= 0 && w.canPunch(p, w.grid.At(blocker)) {
		w.punch(src, blocker, p)
		return w.grid.Coords(blocker)
	}
	if ex != x || ey != y {
		w.move(src, w.grid.Index(ex, ey), p)
		return ex, ey
	}

	if w.blockedBelow(x, y) {
		if w.grid.InBounds(x, y+1) && w.rng.Chance(w.cfg.Params.PowderSinkChance) {
			below := w.grid.Read(x, y+1)
			if below.ID != material.Empty && w.canDisplace(p, below, 1) {
				// Sinking through a fluid bleeds off speed.
				p.Velocity.Y /= 2
				w.move(src, w.grid.Index(x, y+1), p)
				return x, y + 1
			}
		}
		if w.rng.Chance(slipChance) {
			if nx, ny, ok := w.tryDiagonal(x, y, 1, p); ok {
				return nx, ny
			}
		}
	}

	w.stay(src, p)
	return x, y
}
