package sand

import (
	"math"

	"sandsim/internal/material"
)

func (w *World) updateFire(x, y int, p material.Particle) {
	params := w.cfg.Params
	src := w.grid.Index(x, y)

	p.Lifetime -= w.step.dt
	if p.Lifetime <= 0 {
		switch {
		case w.rng.Chance(params.FireSmokeChance):
			w.transform(src, material.Smoke)
		case w.rng.Chance(params.FireEmberChance):
			w.transform(src, material.Ember)
		default:
			w.grid.Write(src, material.EmptyParticle())
		}
		return
	}
	if water, ok := w.neighbor(x, y, material.Water); ok {
		w.transform(water, material.Steam)
		w.grid.Write(src, material.EmptyParticle())
		return
	}

	w.igniteNeighbors(x, y, params.FireSpreadScale)

	if w.rng.Chance(params.FireRiseChance) {
		nx, ny := x+w.rng.IntRange(-1, 1), y-1
		if w.grid.IsEmpty(nx, ny) {
			w.move(src, w.grid.Index(nx, ny), p)
			return
		}
	}
	w.stay(src, p)
}

func (w *World) updateEmber(x, y int, p material.Particle) {
	params := w.cfg.Params
	src := w.grid.Index(x, y)

	p.Lifetime -= w.step.dt
	if p.Lifetime <= 0 {
		if w.rng.Chance(params.EmberSmokeChance) {
			w.transform(src, material.Smoke)
		} else {
			w.grid.Write(src, material.EmptyParticle())
		}
		return
	}
	if _, ok := w.neighbor(x, y, material.Water); ok {
		w.transform(src, material.Smoke)
		return
	}

	nx, ny := w.updatePowder(x, y, p, params.EmberSlipChance)
	w.igniteNeighbors(nx, ny, params.EmberIgniteScale)
}

// igniteNeighbors gives every flammable cell around (x, y) a chance to catch
// fire, scaled by scale.
func (w *World) igniteNeighbors(x, y int, scale float64) {
	for _, d := range neighbors8 {
		nx, ny := x+d[0], y+d[1]
		if !w.grid.InBounds(nx, ny) {
			continue
		}
		w.ignite(w.grid.Index(nx, ny), scale)
	}
}

// ignite rolls the flammability of the particle at idx. Gunpowder explodes;
// everything else that burns turns into fire.
func (w *World) ignite(idx int, scale float64) {
	target := w.grid.At(idx)
	if !material.IsFlammable(target.ID) {
		return
	}
	if !w.rng.Chance(material.Lookup(target.ID).Flammability * scale) {
		return
	}
	if target.ID == material.Gunpowder {
		w.explode(w.grid.Coords(idx))
		return
	}
	w.transform(idx, material.Fire)
}

// explode fills the disc of ExplosionRadius around (cx, cy) with fire. Empty
// cells, gunpowder and flammables burn; loose powders and liquids are thrown
// away from the center.
func (w *World) explode(cx, cy int) {
	params := w.cfg.Params
	r := params.ExplosionRadius
	force := float32(params.ExplosionForce)
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy > r*r {
				continue
			}
			x, y := cx+dx, cy+dy
			if !w.grid.InBounds(x, y) {
				continue
			}
			idx := w.grid.Index(x, y)
			q := w.grid.At(idx)
			switch {
			case q.ID == material.Empty, material.IsFlammable(q.ID):
				w.transform(idx, material.Fire)
			case dx == 0 && dy == 0:
			case material.ClassOf(q.ID) == material.ClassPowder, material.IsLiquid(q.ID):
				dist := float32(math.Hypot(float64(dx), float64(dy)))
				q.Velocity = material.Vec2{X: force * float32(dx) / dist, Y: force * float32(dy) / dist}
				w.grid.Write(idx, q)
			}
		}
	}
}
