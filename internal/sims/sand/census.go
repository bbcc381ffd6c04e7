package sand

import "sandsim/internal/material"

// Census counts the cells holding each material.
type Census [material.Count]int

// Total returns the number of non-empty cells.
func (c Census) Total() int {
	n := 0
	for id := material.Empty + 1; id < material.Count; id++ {
		n += c[id]
	}
	return n
}

// Census tallies the grid in a single pass.
func (w *World) Census() Census {
	var c Census
	g := w.grid
	for i := 0; i < g.Len(); i++ {
		c[g.At(i).ID]++
	}
	return c
}
