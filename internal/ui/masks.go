package ui

import (
	"sandsim/internal/grid"
	"sandsim/internal/material"
)

// SpeedMask writes each cell's particle speed relative to maxSpeed, clamped
// to [0, 1], into dst and returns it. dst is reallocated when its length does
// not match the grid.
func SpeedMask(g *grid.Grid, dst []float32, maxSpeed float32) []float32 {
	dst = resizeMask(dst, g.Len())
	if maxSpeed <= 0 {
		maxSpeed = 1
	}
	for i := range dst {
		p := g.At(i)
		if p.ID == material.Empty {
			dst[i] = 0
			continue
		}
		dst[i] = min(p.Velocity.Len()/maxSpeed, 1)
	}
	return dst
}

// HeatMask marks burning cells: fire and lava at full intensity, embers at
// half.
func HeatMask(g *grid.Grid, dst []float32) []float32 {
	dst = resizeMask(dst, g.Len())
	for i := range dst {
		switch g.At(i).ID {
		case material.Fire, material.Lava:
			dst[i] = 1
		case material.Ember:
			dst[i] = 0.5
		default:
			dst[i] = 0
		}
	}
	return dst
}

func resizeMask(dst []float32, n int) []float32 {
	if len(dst) != n {
		return make([]float32, n)
	}
	return dst
}

// DiscOutline returns the cells on the rim of the disc of the given radius
// centered at the origin, in no particular order.
func DiscOutline(radius int) [][2]int {
	if radius <= 0 {
		return [][2]int{{0, 0}}
	}
	r2 := radius * radius
	inside := func(x, y int) bool { return x*x+y*y <= r2 }
	var rim [][2]int
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			if !inside(x, y) {
				continue
			}
			if !inside(x-1, y) || !inside(x+1, y) || !inside(x, y-1) || !inside(x, y+1) {
				rim = append(rim, [2]int{x, y})
			}
		}
	}
	return rim
}
