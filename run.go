package goblib

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures the window and loop created by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool

	// Draw, if set, renders the frame after the scheduler has been pumped.
	Draw func(screen *ebiten.Image)
}

// game adapts a Scheduler to the ebiten.Game interface. Each tick pumps the
// scheduler once with dt = 1/TPS, so task time advances in fixed steps
// regardless of render frame rate.
type game struct {
	sched *Scheduler
	cfg   RunConfig
}

func (g *game) Update() error {
	g.sched.Pump(1.0 / float64(ebiten.TPS()))
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.cfg.Draw != nil {
		g.cfg.Draw(screen)
	}
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f",
			ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run creates a window and drives sched at ebiten's fixed tick rate until
// the window is closed. For full control, implement ebiten.Game yourself
// and call Scheduler.Pump from Update.
func Run(sched *Scheduler, cfg RunConfig) error {
	if sched == nil {
		panic("goblib: nil scheduler")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		panic("goblib: RunConfig width and height must be positive")
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	return ebiten.RunGame(&game{sched: sched, cfg: cfg})
}
