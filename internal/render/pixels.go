// Package render converts a world's RGBA8 particle buffer into display
// pixels.
package render

import (
	"image/color"

	"sandsim/internal/core"
	"sandsim/internal/material"
)

// Composite blends the straight-alpha src buffer over an opaque background
// into dst. Both buffers are RGBA8; lengths that disagree are truncated to the
// shorter one.
func Composite(dst, src []byte, bg color.Color) {
	r, g, b, _ := bg.RGBA()
	br, bgG, bb := uint32(r>>8), uint32(g>>8), uint32(b>>8)
	n := min(len(dst), len(src)) &^ 3
	for i := 0; i < n; i += 4 {
		a := uint32(src[i+3])
		switch a {
		case 0:
			dst[i+0] = uint8(br)
			dst[i+1] = uint8(bgG)
			dst[i+2] = uint8(bb)
		case 255:
			dst[i+0] = src[i+0]
			dst[i+1] = src[i+1]
			dst[i+2] = src[i+2]
		default:
			inv := 255 - a
			dst[i+0] = uint8((uint32(src[i+0])*a + br*inv) / 255)
			dst[i+1] = uint8((uint32(src[i+1])*a + bgG*inv) / 255)
			dst[i+2] = uint8((uint32(src[i+2])*a + bb*inv) / 255)
		}
		dst[i+3] = 255
	}
}

// RGBAAt returns the pixel at (x, y) of a row-major RGBA8 buffer of the given
// size. Out of range coordinates yield transparent black.
func RGBAAt(buf []byte, size core.Size, x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= size.W || y >= size.H {
		return color.RGBA{}
	}
	base := (y*size.W + x) * 4
	if base+3 >= len(buf) {
		return color.RGBA{}
	}
	return color.RGBA{R: buf[base+0], G: buf[base+1], B: buf[base+2], A: buf[base+3]}
}

// Over blends c over the opaque background bg.
func Over(c color.RGBA, bg color.Color) color.RGBA {
	var px [4]byte
	Composite(px[:], []byte{c.R, c.G, c.B, c.A}, bg)
	return color.RGBA{R: px[0], G: px[1], B: px[2], A: 255}
}

// Swatch returns a representative color for id, the middle of its jitter
// range. EMPTY returns transparent black.
func Swatch(id material.ID) color.RGBA {
	info := material.Lookup(id)
	if id == material.Empty {
		return color.RGBA{}
	}
	mid := func(i int) uint8 {
		return uint8(core.Clamp(core.Lerp(info.Low[i], info.High[i], 0.5), 0, 1) * 255)
	}
	return color.RGBA{R: mid(0), G: mid(1), B: mid(2), A: info.Alpha}
}

// Palette returns the swatch of every material, indexed by id.
func Palette() []color.RGBA {
	ids := material.All()
	palette := make([]color.RGBA, len(ids))
	for _, id := range ids {
		palette[id] = Swatch(id)
	}
	return palette
}
