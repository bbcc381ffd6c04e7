// Package grid owns the dense particle and color arrays a simulation mutates.
package grid

import (
	"fmt"

	"sandsim/internal/material"
)

// Grid stores one particle per cell in row-major order together with a
// parallel RGBA8 buffer mirroring each particle's color. Write is the only
// per-cell mutator and keeps the two arrays in lockstep.
type Grid struct {
	w, h      int
	particles []material.Particle
	pixels    []uint8
}

// New allocates an EMPTY grid with the given dimensions. Both must be positive.
func New(w, h int) *Grid {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("grid: invalid dimensions %dx%d", w, h))
	}
	return &Grid{
		w:         w,
		h:         h,
		particles: make([]material.Particle, w*h),
		pixels:    make([]uint8, 4*w*h),
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.w }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.h }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.particles) }

// Index returns the linear index for (x, y). It panics when (x, y) is
// outside the grid.
func (g *Grid) Index(x, y int) int {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("grid: cell (%d, %d) outside %dx%d", x, y, g.w, g.h))
	}
	return y*g.w + x
}

// Coords inverts Index.
func (g *Grid) Coords(idx int) (int, int) { return idx % g.w, idx / g.w }

// InBounds reports whether (x, y) addresses a cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.w && y >= 0 && y < g.h
}

// IsEmpty reports whether (x, y) is in bounds and holds no material.
func (g *Grid) IsEmpty(x, y int) bool {
	return g.InBounds(x, y) && g.particles[y*g.w+x].ID == material.Empty
}

// Read returns a copy of the particle at (x, y). It panics when (x, y) is
// outside the grid.
func (g *Grid) Read(x, y int) material.Particle {
	return g.particles[g.Index(x, y)]
}

// At returns a copy of the particle at linear index idx.
func (g *Grid) At(idx int) material.Particle {
	return g.particles[idx]
}

// Write stores p at idx and mirrors its color into the pixel buffer.
func (g *Grid) Write(idx int, p material.Particle) {
	g.particles[idx] = p
	base := idx * 4
	g.pixels[base+0] = p.Color.R
	g.pixels[base+1] = p.Color.G
	g.pixels[base+2] = p.Color.B
	g.pixels[base+3] = p.Color.A
}

// ColorAt returns the mirrored color stored for idx.
func (g *Grid) ColorAt(idx int) material.Color {
	base := idx * 4
	return material.Color{R: g.pixels[base], G: g.pixels[base+1], B: g.pixels[base+2], A: g.pixels[base+3]}
}

// Pixels exposes the RGBA8 buffer for renderers. Callers must not mutate it.
func (g *Grid) Pixels() []uint8 { return g.pixels }

// Reset clears every cell to EMPTY and the pixel buffer to transparent black.
func (g *Grid) Reset() {
	clear(g.particles)
	clear(g.pixels)
}

// ClearUpdated resets the per-tick processed flag on every cell. Colors are
// untouched.
func (g *Grid) ClearUpdated() {
	for i := range g.particles {
		g.particles[i].Updated = false
	}
}

// Count returns the number of cells holding id.
func (g *Grid) Count(id material.ID) int {
	n := 0
	for i := range g.particles {
		if g.particles[i].ID == id {
			n++
		}
	}
	return n
}

// Occupied returns the number of non-empty cells.
func (g *Grid) Occupied() int {
	return g.Len() - g.Count(material.Empty)
}
