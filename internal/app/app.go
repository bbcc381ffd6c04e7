//go:build ebiten

package app

import (
	"image/color"
	"time"

	"sandsim/internal/core"
	"sandsim/internal/render"
	"sandsim/internal/sims/sand"
	"sandsim/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a sand world to the ebiten.Game interface.
type Game struct {
	world   *sand.World
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	brush   *ui.Brush

	background color.Color

	scale    int
	hudWidth int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided world. A hudWidth of zero hides the
// side panel.
func New(world *sand.World, brush *ui.Brush, scale, hudWidth int, seed int64) *Game {
	if scale <= 0 {
		scale = 1
	}
	size := world.Size()
	return &Game{
		world:      world,
		painter:    render.NewGridPainter(size.W, size.H),
		overlay:    ui.NewOverlay(world, brush, scale),
		hud:        ui.NewHUD(world, brush, hudWidth),
		brush:      brush,
		background: color.RGBA{R: 12, G: 12, B: 16, A: 255},
		scale:      scale,
		hudWidth:   hudWidth,
		seed:       seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.world.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	g.updateBrush()

	if g.overlay != nil {
		g.overlay.Update()
	}
	if g.hud != nil {
		g.hud.Update(g.simWidth())
	}

	if !g.paused || g.tickOnce {
		g.world.Step()
		g.tickOnce = false
	}
	return nil
}

func (g *Game) updateBrush() {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		dir := 1
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			dir = -1
		}
		g.brush.Cycle(dir)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		g.brush.Grow(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		g.brush.Grow(1)
	}

	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	if !left && !right {
		return
	}
	mx, my := ebiten.CursorPosition()
	x, y, ok := CellAt(mx, my, g.scale, g.world.Size())
	if !ok {
		return
	}
	if right {
		g.world.Erase(x, y, g.brush.Radius)
		return
	}
	g.world.Paint(x, y, g.brush.Radius, g.brush.Material)
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background)
	g.painter.Blit(screen, g.world.Pixels(), g.background, g.scale)
	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
	if g.hud != nil {
		g.hud.Draw(screen, g.simWidth(), g.scale)
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.world.Size()
	return g.simWidth() + g.hudWidth, s.H * g.scale
}

func (g *Game) simWidth() int {
	return g.world.Size().W * g.scale
}

var _ core.Sim = (*sand.World)(nil)
