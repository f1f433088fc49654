package display

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/smasonuk/wirevis"
)

// Game adapts an App to ebiten's Update/Draw/Layout cycle.
type Game struct {
	app     *wirevis.App
	surface *Surface
	input   poller
	last    time.Time
	log     *slog.Logger
}

func NewGame(app *wirevis.App, log *slog.Logger) *Game {
	if log == nil {
		log = slog.Default()
	}
	return &Game{
		app:     app,
		surface: NewSurface(true),
		log:     log,
	}
}

func (g *Game) Update() error {
	now := time.Now()
	dt := 0.0
	if !g.last.IsZero() {
		dt = now.Sub(g.last).Seconds()
	}
	g.last = now

	g.app.Tick(dt, g.input.Poll())
	g.app.SetFPS(ebiten.ActualFPS())
	if !g.app.Running() {
		g.log.Info("quit requested")
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.Target(screen)
	g.app.Render(g.surface)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.app.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Run opens the window described by the app's config and blocks until the
// app stops or the window closes.
func Run(app *wirevis.App, log *slog.Logger) error {
	w := app.Config().Window
	ebiten.SetWindowSize(w.Width, w.Height)
	ebiten.SetWindowTitle(w.Title)
	if w.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(w.TPS)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetCursorMode(ebiten.CursorModeHidden)

	if err := ebiten.RunGame(NewGame(app, log)); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("running window: %w", err)
	}
	return nil
}
