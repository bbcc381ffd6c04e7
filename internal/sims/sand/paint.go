package sand

import (
	"fmt"

	"sandsim/internal/material"
)

// Paint places freshly created particles of id into the empty cells of the
// disc of the given radius around (x, y). Painting EMPTY erases the disc
// instead. The disc is clipped at the grid edge. It returns the number of
// cells changed.
func (w *World) Paint(x, y, radius int, id material.ID) int {
	if id == material.Empty {
		return w.Erase(x, y, radius)
	}
	if !material.Valid(id) {
		panic(fmt.Sprintf("material: unknown id %d", id))
	}
	changed := 0
	w.forDisc(x, y, radius, func(idx int) {
		if w.grid.At(idx).ID != material.Empty {
			return
		}
		w.grid.Write(idx, material.Create(id, w.rng))
		changed++
	})
	return changed
}

// Erase clears every occupied cell of the disc around (x, y).
func (w *World) Erase(x, y, radius int) int {
	changed := 0
	w.forDisc(x, y, radius, func(idx int) {
		if w.grid.At(idx).ID == material.Empty {
			return
		}
		w.grid.Write(idx, material.EmptyParticle())
		changed++
	})
	return changed
}

// Set overwrites the single cell (x, y) with a new particle of id. It reports
// false when the cell is out of bounds.
func (w *World) Set(x, y int, id material.ID) bool {
	if !w.grid.InBounds(x, y) {
		return false
	}
	w.grid.Write(w.grid.Index(x, y), material.Create(id, w.rng))
	return true
}

// FillRect overwrites the inclusive rectangle (x0, y0)-(x1, y1) with id,
// clipped to the grid. It returns the number of cells written.
func (w *World) FillRect(x0, y0, x1, y1 int, id material.ID) int {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, w.w-1), min(y1, w.h-1)
	n := 0
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			w.grid.Write(w.grid.Index(x, y), material.Create(id, w.rng))
			n++
		}
	}
	return n
}

func (w *World) forDisc(cx, cy, radius int, fn func(idx int)) {
	if radius < 0 {
		return
	}
	r2 := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > r2 {
				continue
			}
			x, y := cx+dx, cy+dy
			if !w.grid.InBounds(x, y) {
				continue
			}
			fn(w.grid.Index(x, y))
		}
	}
}
