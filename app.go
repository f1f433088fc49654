package wirevis

import (
	"fmt"
	"image/color"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// OriginTemplate is placed at the world origin on startup.
const OriginTemplate = "origin_cross"

var (
	clearColor  = color.RGBA{A: 255}
	cursorColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// App is the application context: configuration, scene, UI and the running
// flag. One is built at startup and handed to whichever loop drives it.
type App struct {
	cfg      Config
	log      *slog.Logger
	registry *Registry
	scene    *Scene
	buttons  *ButtonBar
	rng      *rand.Rand
	watcher  *Watcher

	viewport Viewport
	running  bool
	stats    RenderStats
	fps      float64
	mouse    mgl64.Vec2
}

// NewApp loads the templates for cfg.Mode and builds the scene. With strict
// templates any load error is returned and no App is built.
func NewApp(cfg Config, log *slog.Logger) (*App, error) {
	if log == nil {
		log = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := []RegistryOption{WithExtension(cfg.Templates.Extension), WithLogger(log)}
	if !cfg.Templates.Strict {
		opts = append(opts, WithLenient())
	}
	reg := NewRegistry(cfg.TemplateDir(), cfg.Mode.Dims(), opts...)
	if err := reg.Load(); err != nil {
		if cfg.Templates.Strict {
			return nil, fmt.Errorf("loading templates: %w", err)
		}
		log.Warn("some templates failed to load", "err", err)
	}

	cam, err := NewCamera(cfg)
	if err != nil {
		return nil, err
	}

	seed := uint64(cfg.Spawn.Seed)
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	a := &App{
		cfg:      cfg,
		log:      log,
		registry: reg,
		scene:    NewScene(reg, cam, log),
		buttons:  NewButtonBar(cfg.Buttons),
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		viewport: Viewport{Width: float64(cfg.Window.Width), Height: float64(cfg.Window.Height)},
		running:  true,
	}
	if _, _, err := a.scene.Add(OriginTemplate, mgl64.Vec3{}); err != nil {
		log.Warn("origin marker unavailable", "err", err)
	}
	return a, nil
}

// NewCamera builds the camera cfg.Mode asks for.
func NewCamera(cfg Config) (Camera, error) {
	switch cfg.Mode {
	case ModeOrbit:
		return NewOrbitCamera(cfg.Orbit), nil
	case ModePan:
		return NewPanCamera(cfg.Pan), nil
	case ModeFly:
		return NewFlyCamera(cfg.Fly), nil
	}
	return nil, fmt.Errorf("unknown mode %q", cfg.Mode)
}

func (a *App) Config() Config      { return a.cfg }
func (a *App) Scene() *Scene       { return a.scene }
func (a *App) Registry() *Registry { return a.registry }
func (a *App) Running() bool       { return a.running }
func (a *App) Stats() RenderStats  { return a.stats }
func (a *App) Viewport() Viewport  { return a.viewport }

// Stop clears the running flag; the driving loop finishes its frame and exits.
func (a *App) Stop() {
	a.running = false
}

// Resize updates the viewport used for projection. Sizes below one pixel are
// ignored.
func (a *App) Resize(w, h int) {
	if w < 1 || h < 1 {
		return
	}
	a.viewport = Viewport{Width: float64(w), Height: float64(h)}
}

// SetFPS overrides the measured frame rate, for backends that track their own.
func (a *App) SetFPS(fps float64) {
	a.fps = fps
}

// AttachWatcher makes Tick drain reload requests from w.
func (a *App) AttachWatcher(w *Watcher) {
	a.watcher = w
}

// Tick routes one frame of input and advances the scene by dt seconds.
func (a *App) Tick(dt float64, in *InputState) {
	if in == nil {
		in = NewInputState()
	}
	if !finite(dt) || dt < 0 {
		dt = 0
	}
	if dt > 0 {
		a.fps = 0.9*a.fps + 0.1*(1/dt)
	}
	a.mouse = in.Mouse

	if in.Quit || in.JustPressed(KeyEscape) {
		a.Stop()
		return
	}

	if a.watcher != nil {
		select {
		case <-a.watcher.Reloads():
			a.Reload()
		default:
		}
	}

	if action, ok := a.buttons.Handle(in); ok {
		a.Do(action)
	}

	if in.JustPressed(KeyF1) {
		a.ToggleDebug()
	}
	if in.JustPressed(KeyF2) {
		a.SpawnRandom(a.cfg.Spawn.Count)
	}
	if in.JustPressed(KeyF5) {
		a.Reload()
	}
	if in.ButtonClicked(MouseLeft) {
		a.Place()
	}

	a.scene.Update(dt, in)
}

// Do runs a named button action.
func (a *App) Do(action string) {
	a.log.Debug("button", "action", action)
	switch action {
	case ActionDebug:
		a.ToggleDebug()
	case ActionSpawn:
		a.SpawnRandom(a.cfg.Spawn.Count)
	case ActionReload:
		a.Reload()
	case ActionQuit:
		a.Stop()
	default:
		a.log.Warn("unknown button action", "action", action)
	}
}

func (a *App) ToggleDebug() bool {
	on := a.scene.ToggleDebug()
	a.log.Info("debug mode", "on", on)
	return on
}

// Place drops the spawn template at the camera anchor, offset so a unit shape
// is centred on it.
func (a *App) Place() (InstanceID, error) {
	pos := a.scene.Camera().Anchor().Sub(a.halfUnit())
	_, id, err := a.scene.Add(a.cfg.SpawnTemplate(), pos)
	if err != nil {
		a.log.Warn("place failed", "err", err)
	}
	return id, err
}

func (a *App) halfUnit() mgl64.Vec3 {
	if a.scene.Camera().Dims() == Dims2 {
		return mgl64.Vec3{0.5, 0.5, 0}
	}
	return mgl64.Vec3{0.5, 0.5, 0.5}
}

// SpawnRandom adds n spawn templates scattered around the camera anchor and
// returns how many were added.
func (a *App) SpawnRandom(n int) (int, error) {
	anchor := a.scene.Camera().Anchor()
	spread := a.cfg.Spawn.Spread
	flat := a.scene.Camera().Dims() == Dims2
	for i := 0; i < n; i++ {
		off := mgl64.Vec3{
			a.rng.Float64()*2*spread - spread,
			a.rng.Float64()*2*spread - spread,
			a.rng.Float64()*2*spread - spread,
		}
		if flat {
			off[2] = 0
		}
		if _, _, err := a.scene.Add(a.cfg.SpawnTemplate(), anchor.Add(off)); err != nil {
			a.log.Warn("spawn failed", "added", i, "err", err)
			return i, err
		}
	}
	a.log.Info("spawned", "count", n, "total", a.scene.Len())
	return n, nil
}

// Reload re-reads the template directory. Existing instances are untouched.
func (a *App) Reload() error {
	err := a.registry.Reload()
	if err != nil {
		a.log.Error("reload had failures", "err", err, "loaded", a.registry.Len())
		return err
	}
	a.log.Info("templates reloaded", "count", a.registry.Len())
	return nil
}

// DebugLines is the text of the debug overlay.
func (a *App) DebugLines() []string {
	info := a.scene.Camera().Describe()
	lines := []string{
		fmt.Sprintf("FPS: %.2f", a.fps),
		fmt.Sprintf("Objects (Rendered/Total): %d/%d", a.stats.Rendered, a.stats.Instances),
		"Camera Pos: " + info.PositionString(),
	}
	if info.Kind != "pan" {
		lines = append(lines, "Camera Rot: "+info.RotationString())
	} else {
		lines = append(lines, fmt.Sprintf("Camera Scale: %.2f", info.Zoom))
	}
	return lines
}

// Render clears dst, draws the scene and, when dst supports it, the UI layer.
func (a *App) Render(dst DrawSurface) RenderStats {
	dst.Clear(clearColor)
	a.stats = a.scene.Render(dst, a.viewport)

	if ov, ok := dst.(OverlaySurface); ok {
		a.buttons.Draw(ov)
		if a.scene.Debug() {
			lh := ov.LineHeight() + 4
			for i, line := range a.DebugLines() {
				ov.DrawText(line, mgl64.Vec2{10, 10 + float64(i)*lh}, textColor)
			}
		}
		ov.DrawPoint(a.mouse, cursorColor, 2)
	}
	dst.Present()
	return a.stats
}
