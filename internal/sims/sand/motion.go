package sand

import (
	"sandsim/internal/core"
	"sandsim/internal/material"
)

var (
	neighbors4 = [4][2]int{{0, 1}, {-1, 0}, {1, 0}, {0, -1}}
	neighbors8 = [8][2]int{{0, 1}, {-1, 1}, {1, 1}, {-1, 0}, {1, 0}, {-1, -1}, {0, -1}, {1, -1}}
)

// traverse walks the segment from (x, y) toward (x+dx, y+dy) one cell at a
// time. It returns the farthest empty cell reached and the index of the first
// occupied cell on the way, or -1 when the walk ended at the target or the
// grid edge.
func (w *World) traverse(x, y, dx, dy int) (int, int, int) {
	steps := max(core.Abs(dx), core.Abs(dy))
	ex, ey := x, y
	for i := 1; i <= steps; i++ {
		cx := x + dx*i/steps
		cy := y + dy*i/steps
		if !w.grid.InBounds(cx, cy) {
			return ex, ey, -1
		}
		if !w.grid.IsEmpty(cx, cy) {
			return ex, ey, w.grid.Index(cx, cy)
		}
		ex, ey = cx, cy
	}
	return ex, ey, -1
}

// move places p at dst and whatever occupied dst at src. Both non-empty
// particles are flagged as moved.
func (w *World) move(src, dst int, p material.Particle) {
	occupant := w.grid.At(dst)
	if occupant.ID != material.Empty {
		occupant.Updated = true
	}
	p.Updated = true
	w.grid.Write(dst, p)
	w.grid.Write(src, occupant)
}

// stay stores the rule's updated snapshot in place.
func (w *World) stay(idx int, p material.Particle) {
	w.grid.Write(idx, p)
}

// transform replaces the particle at idx with a fresh particle of id.
func (w *World) transform(idx int, id material.ID) {
	p := material.Create(id, w.rng)
	p.Updated = id != material.Empty
	w.grid.Write(idx, p)
}

// canDisplace reports whether mover may trade places with occupant when
// moving vertically in direction dy. Only mobile occupants that have not
// moved this tick are displaced: downward by heavier movers, upward by
// lighter ones.
func (w *World) canDisplace(mover, occupant material.Particle, dy int) bool {
	if occupant.ID == material.Empty {
		return true
	}
	if occupant.Updated || !material.IsMobile(occupant.ID) {
		return false
	}
	md := material.Lookup(mover.ID).Density
	od := material.Lookup(occupant.ID).Density
	switch {
	case dy > 0:
		return md > od
	case dy < 0:
		return md < od
	}
	return false
}

// canPunch reports whether a fast mover may drive straight through a liquid
// occupant instead of stopping on it.
func (w *World) canPunch(mover, occupant material.Particle) bool {
	if !material.IsLiquid(occupant.ID) || occupant.Updated {
		return false
	}
	return mover.Velocity.Len()-occupant.Velocity.Len() > float32(w.cfg.Params.DisplaceThreshold)
}

// punch moves p from src into the liquid cell dst. The liquid is thrown into
// the nearest empty slot of the window above dst with a splash impulse, or
// destroyed when the window is full.
func (w *World) punch(src, dst int, p material.Particle) {
	params := w.cfg.Params
	liquid := w.grid.At(dst)
	liquid.Velocity = material.Vec2{
		X: float32(w.rng.IntRange(-params.SplashSpreadX, params.SplashSpreadX)),
		Y: -float32(params.SplashLift),
	}
	liquid.Updated = true

	p.Updated = true
	w.grid.Write(dst, p)

	tx, ty := w.grid.Coords(dst)
	if sx, sy, ok := w.findSplashSlot(tx, ty); ok {
		w.grid.Write(w.grid.Index(sx, sy), liquid)
	}
	w.grid.Write(src, material.EmptyParticle())
}

// findSplashSlot scans the rows above (tx, ty), nearest row first and within
// a row nearest column first, for an empty cell.
func (w *World) findSplashSlot(tx, ty int) (int, int, bool) {
	window := w.cfg.Params.SplashWindow
	for dy := 1; dy <= window; dy++ {
		y := ty - dy
		if y < 0 {
			break
		}
		for k := 0; k <= window; k++ {
			if w.grid.IsEmpty(tx-k, y) {
				return tx - k, y, true
			}
			if k > 0 && w.grid.IsEmpty(tx+k, y) {
				return tx + k, y, true
			}
		}
	}
	return 0, 0, false
}

// integrateGravity accelerates p downward by one tick of gravity, clamped to
// the configured maximum speed.
func (w *World) integrateGravity(p *material.Particle) {
	p.Velocity.Y = core.Clamp(p.Velocity.Y+w.step.gravity*w.step.dt, -w.step.maxSpeed, w.step.maxSpeed)
}

// blockedBelow reports whether the cell under (x, y) can not be entered by
// free fall: it is off the grid or occupied.
func (w *World) blockedBelow(x, y int) bool {
	return !w.grid.InBounds(x, y+1) || !w.grid.IsEmpty(x, y+1)
}

// tryDisplace moves p from (x, y) by (dx, dy) if the destination is in bounds
// and empty or displaceable, returning the destination.
func (w *World) tryDisplace(x, y, dx, dy int, p material.Particle) (int, int, bool) {
	nx, ny := x+dx, y+dy
	if !w.grid.InBounds(nx, ny) {
		return x, y, false
	}
	dst := w.grid.Index(nx, ny)
	if !w.canDisplace(p, w.grid.At(dst), dy) {
		return x, y, false
	}
	w.move(w.grid.Index(x, y), dst, p)
	return nx, ny, true
}

// tryDiagonal attempts the two diagonal cells in row y+dy in random order.
func (w *World) tryDiagonal(x, y, dy int, p material.Particle) (int, int, bool) {
	dir := w.rng.Sign()
	if nx, ny, ok := w.tryDisplace(x, y, dir, dy, p); ok {
		return nx, ny, true
	}
	return w.tryDisplace(x, y, -dir, dy, p)
}

// neighbor returns the index of the first 4-neighbor of (x, y) holding id.
func (w *World) neighbor(x, y int, id material.ID) (int, bool) {
	for _, d := range neighbors4 {
		nx, ny := x+d[0], y+d[1]
		if !w.grid.InBounds(nx, ny) {
			continue
		}
		idx := w.grid.Index(nx, ny)
		if w.grid.At(idx).ID == id {
			return idx, true
		}
	}
	return 0, false
}
