//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"sandsim/internal/core"
	"sandsim/internal/grid"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type gridProvider interface {
	Grid() *grid.Grid
}

// Overlay draws the brush outline and optional debugging visuals on top of
// the simulation view.
type Overlay struct {
	sim   core.Sim
	brush *Brush
	scale int

	showMotion bool
	showHeat   bool
	maskImg    *ebiten.Image
	maskBuf    []byte
	mask       []float32

	pixel *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, brush *Brush, scale int) *Overlay {
	o := &Overlay{sim: sim, brush: brush, scale: scale}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles the debug layers: 1 shows particle speed, 2 shows heat.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showMotion = !o.showMotion
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showHeat = !o.showHeat
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.sim.Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}
	if provider, ok := o.sim.(gridProvider); ok && (o.showMotion || o.showHeat) {
		total := size.Cells()
		if o.maskImg == nil || o.maskImg.Bounds().Dx() != size.W || o.maskImg.Bounds().Dy() != size.H {
			o.maskImg = ebiten.NewImage(size.W, size.H)
		}
		if len(o.maskBuf) != 4*total {
			o.maskBuf = make([]byte, 4*total)
		}
		g := provider.Grid()
		if o.showMotion {
			o.mask = SpeedMask(g, o.mask, 10)
			o.drawMask(screen, o.mask, color.RGBA{R: 64, G: 164, B: 223})
		}
		if o.showHeat {
			o.mask = HeatMask(g, o.mask)
			o.drawMask(screen, o.mask, color.RGBA{R: 255, G: 120, B: 40})
		}
	}
	o.drawBrush(screen, size)
}

// drawBrush outlines the cells the brush would paint at the cursor.
func (o *Overlay) drawBrush(screen *ebiten.Image, size core.Size) {
	if o.brush == nil {
		return
	}
	scale := o.cellScale()
	mx, my := ebiten.CursorPosition()
	cx, cy := mx/scale, my/scale
	if cx < 0 || cy < 0 || cx >= size.W || cy >= size.H {
		return
	}
	col := color.RGBA{R: 230, G: 230, B: 240, A: 110}
	for _, c := range DiscOutline(o.brush.Radius) {
		x, y := cx+c[0], cy+c[1]
		if x < 0 || y < 0 || x >= size.W || y >= size.H {
			continue
		}
		half := float64(scale) * 0.5
		o.drawPoint(screen, float64(x*scale)+half, float64(y*scale)+half, float64(scale), col)
	}
}

func (o *Overlay) cellScale() int {
	if o.scale <= 0 {
		return 1
	}
	return o.scale
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	if o.pixel == nil || size <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawMask(screen *ebiten.Image, mask []float32, tint color.RGBA) {
	const (
		maxAlpha      = 140.0
		glowBase      = 0.35
		glowRange     = 0.65
		intensityBias = 0.75
	)

	for i, v := range mask {
		base := i * 4
		intensity := clamp01(float64(v))
		if intensity == 0 {
			o.maskBuf[base+0] = 0
			o.maskBuf[base+1] = 0
			o.maskBuf[base+2] = 0
			o.maskBuf[base+3] = 0
			continue
		}

		// Premultiplied, as ebiten expects.
		alpha := math.Round(maxAlpha * math.Pow(intensity, intensityBias))
		glow := (glowBase + glowRange*math.Sqrt(intensity)) * alpha / 255
		o.maskBuf[base+0] = scaleColorComponent(tint.R, glow)
		o.maskBuf[base+1] = scaleColorComponent(tint.G, glow)
		o.maskBuf[base+2] = scaleColorComponent(tint.B, glow)
		o.maskBuf[base+3] = uint8(alpha)
	}
	o.maskImg.WritePixels(o.maskBuf)
	op := &ebiten.DrawImageOptions{}
	scale := o.cellScale()
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(o.maskImg, op)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func scaleColorComponent(value uint8, factor float64) uint8 {
	scaled := math.Round(float64(value) * factor)
	if scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}
