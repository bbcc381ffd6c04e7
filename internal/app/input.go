package app

import "sandsim/internal/core"

// CellAt maps a cursor position in screen pixels to the grid cell under it.
// ok is false when the cursor lies outside the grid area.
func CellAt(mx, my, scale int, size core.Size) (x, y int, ok bool) {
	if scale <= 0 {
		scale = 1
	}
	if mx < 0 || my < 0 {
		return 0, 0, false
	}
	x, y = mx/scale, my/scale
	if x >= size.W || y >= size.H {
		return 0, 0, false
	}
	return x, y, true
}
