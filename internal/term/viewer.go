package term

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"sandsim/internal/core"
	"sandsim/internal/sims/sand"
	"sandsim/internal/ui"

	"github.com/gdamore/tcell/v2"
)

// Viewer drives a world from a terminal screen.
type Viewer struct {
	screen tcell.Screen
	world  *sand.World
	brush  *ui.Brush
	clock  *core.FixedStep
	logger *slog.Logger

	background color.RGBA
	paused     bool
	seed       int64
}

// New initializes a terminal screen and wraps it in a Viewer.
func New(world *sand.World, brush *ui.Brush, tps int, seed int64, logger *slog.Logger) (*Viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	return NewWithScreen(screen, world, brush, tps, seed, logger), nil
}

// NewWithScreen wraps an already initialized screen.
func NewWithScreen(screen tcell.Screen, world *sand.World, brush *ui.Brush, tps int, seed int64, logger *slog.Logger) *Viewer {
	if logger == nil {
		logger = slog.Default()
	}
	screen.EnableMouse()
	screen.HideCursor()
	return &Viewer{
		screen:     screen,
		world:      world,
		brush:      brush,
		clock:      core.NewFixedStep(tps),
		logger:     logger,
		background: color.RGBA{R: 12, G: 12, B: 16, A: 255},
		seed:       seed,
	}
}

// Run processes input and advances the world until ctx is cancelled or the
// user quits. The screen is finalized before Run returns.
func (v *Viewer) Run(ctx context.Context) error {
	defer v.screen.Fini()

	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(v.screen, events, done)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !v.handleEvent(ev) {
				v.logger.Info("viewer closed", "tick", v.world.Tick())
				return nil
			}
		case <-ticker.C:
			v.advance()
			v.Draw()
		}
	}
}

// pollEvents forwards screen events until the screen is finalized or done is
// closed.
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func (v *Viewer) advance() {
	n := v.clock.Pending()
	if v.paused {
		return
	}
	for i := 0; i < n; i++ {
		v.world.Step()
	}
}

// handleEvent applies one input event. It reports false when the viewer
// should exit.
func (v *Viewer) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.handleKey(ev)
	case *tcell.EventMouse:
		v.handleMouse(ev)
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyTab:
		v.brush.Cycle(1)
		return true
	case tcell.KeyBacktab:
		v.brush.Cycle(-1)
		return true
	case tcell.KeyRune:
	default:
		return true
	}
	switch r := ev.Rune(); r {
	case 'q':
		return false
	case ' ':
		v.paused = !v.paused
	case 'n':
		v.world.Step()
	case 'r':
		v.world.Reset(v.seed)
	case 's':
		v.seed = time.Now().UnixNano()
		v.world.Reset(v.seed)
		v.logger.Info("reseeded", "seed", v.seed)
	case '[':
		v.brush.Grow(-1)
	case ']':
		v.brush.Grow(1)
	default:
		if id, ok := MaterialForKey(r); ok {
			v.brush.Select(id)
		}
	}
	return true
}

func (v *Viewer) handleMouse(ev *tcell.EventMouse) {
	buttons := ev.Buttons()
	if buttons&(tcell.Button1|tcell.Button2) == 0 {
		return
	}
	x, y := GridCell(ev.Position())
	if !v.world.Grid().InBounds(x, y) {
		return
	}
	if buttons&tcell.Button2 != 0 {
		v.world.Erase(x, y, v.brush.Radius)
		return
	}
	v.world.Paint(x, y, v.brush.Radius, v.brush.Material)
}

// Draw renders the world and a status line.
func (v *Viewer) Draw() {
	size := v.world.Size()
	pixels := v.world.Pixels()
	sw, sh := v.screen.Size()
	rows := min(Rows(size), sh-1)
	cols := min(size.W, sw)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top, bottom := CellColors(pixels, size, col, row, v.background)
			style := tcell.StyleDefault.Foreground(rgb(top)).Background(rgb(bottom))
			v.screen.SetContent(col, row, HalfBlock, nil, style)
		}
	}
	v.drawStatus(sh - 1)
	v.screen.Show()
}

func (v *Viewer) drawStatus(row int) {
	if row < 0 {
		return
	}
	status := fmt.Sprintf(" tick %d | %s r=%d | %d particles", v.world.Tick(), v.brush.Label(), v.brush.Radius, v.world.Census().Total())
	if v.paused {
		status += " | paused"
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack)
	sw, _ := v.screen.Size()
	for col := 0; col < sw; col++ {
		ch := ' '
		if col < len(status) {
			ch = rune(status[col])
		}
		v.screen.SetContent(col, row, ch, nil, style)
	}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
