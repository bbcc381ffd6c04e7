// Package term renders a sand world in a terminal with tcell. Every text
// cell shows two grid rows using the upper half block glyph: the
// foreground carries the top row and the background the bottom row.
package term

import (
	"image/color"

	"sandsim/internal/core"
	"sandsim/internal/material"
	"sandsim/internal/render"
)

// HalfBlock is the glyph drawn in every grid cell.
const HalfBlock = '▀'

// Rows returns the number of text rows needed to show a grid of the given
// size.
func Rows(size core.Size) int {
	return (size.H + 1) / 2
}

// CellColors returns the opaque colors of the two grid cells shown by the
// text cell at (col, row). A missing bottom row yields bg.
func CellColors(pixels []byte, size core.Size, col, row int, bg color.Color) (top, bottom color.RGBA) {
	top = render.Over(render.RGBAAt(pixels, size, col, 2*row), bg)
	bottom = render.Over(render.RGBAAt(pixels, size, col, 2*row+1), bg)
	return top, bottom
}

// GridCell maps a text cell to the upper grid cell it shows.
func GridCell(col, row int) (x, y int) {
	return col, 2 * row
}

var hotkeys = map[rune]material.ID{
	'0': material.Empty,
	'1': material.Sand,
	'2': material.Water,
	'3': material.Salt,
	'4': material.Wood,
	'5': material.Fire,
	'6': material.Smoke,
	'7': material.Ember,
	'8': material.Steam,
	'9': material.Gunpowder,
	'o': material.Oil,
	'l': material.Lava,
	't': material.Stone,
	'a': material.Acid,
}

// MaterialForKey returns the material bound to a hotkey.
func MaterialForKey(r rune) (material.ID, bool) {
	id, ok := hotkeys[r]
	return id, ok
}
