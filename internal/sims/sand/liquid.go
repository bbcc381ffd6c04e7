package sand

import (
	"sandsim/internal/material"
)

func (w *World) updateWater(x, y int, p material.Particle) {
	w.updateLiquid(x, y, p, w.cfg.Params.LiquidSpread)
}

func (w *World) updateOil(x, y int, p material.Particle) {
	w.updateLiquid(x, y, p, w.cfg.Params.LiquidSpread)
}

func (w *World) updateAcid(x, y int, p material.Particle) {
	nx, ny := w.updateLiquid(x, y, p, w.cfg.Params.LiquidSpread)
	params := w.cfg.Params
	for _, d := range neighbors4 {
		tx, ty := nx+d[0], ny+d[1]
		if !w.grid.InBounds(tx, ty) {
			continue
		}
		target := w.grid.Read(tx, ty)
		if !material.IsSolidLike(target.ID) || !w.rng.Chance(params.AcidCorrodeChance) {
			continue
		}
		w.grid.Write(w.grid.Index(tx, ty), material.EmptyParticle())
		if w.rng.Chance(params.AcidConsumeChance) {
			w.grid.Write(w.grid.Index(nx, ny), material.EmptyParticle())
		}
		return
	}
}

func (w *World) updateLava(x, y int, p material.Particle) {
	idx := w.grid.Index(x, y)
	p.Lifetime -= w.step.dt
	if p.Lifetime <= 0 {
		w.transform(idx, material.Stone)
		return
	}
	if water, ok := w.neighbor(x, y, material.Water); ok {
		w.transform(water, material.Steam)
		w.transform(idx, material.Stone)
		return
	}
	nx, ny := w.updateLiquid(x, y, p, w.cfg.Params.LavaSpread)
	w.igniteNeighbors(nx, ny, w.cfg.Params.LavaIgniteScale)
}

// updateLiquid integrates a fluid particle: gravity along its velocity, then
// once it rests on something, sinking into lighter fluids, sliding
// diagonally, and finally spreading sideways toward the side with more
// contiguous room. It returns the particle's final position.
func (w *World) updateLiquid(x, y int, p material.Particle, spread int) (int, int) {
	src := w.grid.Index(x, y)
	w.integrateGravity(&p)

	ex, ey, _ := w.traverse(x, y, int(p.Velocity.X), int(p.Velocity.Y))
	if ex != x || ey != y {
		w.move(src, w.grid.Index(ex, ey), p)
		return ex, ey
	}
	if !w.blockedBelow(x, y) {
		w.stay(src, p)
		return x, y
	}

	p.Velocity = material.Vec2{}
	if nx, ny, ok := w.tryDisplace(x, y, 0, 1, p); ok {
		return nx, ny
	}
	if nx, ny, ok := w.tryDiagonal(x, y, 1, p); ok {
		return nx, ny
	}
	if dx := w.spreadDistance(x, y, spread); dx != 0 {
		dst := w.grid.Index(x+dx, y)
		w.move(src, dst, p)
		return x + dx, y
	}
	w.stay(src, p)
	return x, y
}

// spreadDistance returns the signed lateral offset a liquid at (x, y) should
// flow: as far as the contiguous empty run allows, up to limit cells, on the
// side with more room. Ties are broken randomly.
func (w *World) spreadDistance(x, y, limit int) int {
	left := w.emptyRun(x, y, -1, limit)
	right := w.emptyRun(x, y, 1, limit)
	switch {
	case left == 0 && right == 0:
		return 0
	case left > right:
		return -left
	case right > left:
		return right
	}
	if w.rng.Bool() {
		return right
	}
	return -left
}

func (w *World) emptyRun(x, y, dir, limit int) int {
	n := 0
	for i := 1; i <= limit; i++ {
		if !w.grid.IsEmpty(x+dir*i, y) {
			break
		}
		n++
	}
	return n
}
