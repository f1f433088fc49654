package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/smasonuk/wirevis"
	"github.com/smasonuk/wirevis/raster"
)

type snapshotOptions struct {
	out    string
	frames int
	debug  bool
	spawn  int
}

func snapshot(ctx context.Context, cfg wirevis.Config, log *slog.Logger, opt snapshotOptions) error {
	app, err := wirevis.NewApp(cfg, log)
	if err != nil {
		return err
	}
	if opt.debug {
		app.ToggleDebug()
	}
	if opt.spawn > 0 {
		if _, err := app.SpawnRandom(opt.spawn); err != nil {
			return err
		}
	}

	surf := raster.NewSurface(cfg.Window.Width, cfg.Window.Height)
	app.Resize(cfg.Window.Width, cfg.Window.Height)

	loop := &wirevis.Loop{
		App:       app,
		Surface:   surf,
		TPS:       cfg.Window.TPS,
		MaxFrames: max(opt.frames, 1),
		// headless frames need no pacing
		Sleep: func(_ time.Duration) {},
	}
	n, err := loop.Run(contextOrBackground(ctx))
	if err != nil {
		return err
	}

	f, err := os.Create(opt.out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", opt.out, err)
	}
	if err := surf.WritePNG(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", opt.out, err)
	}
	st := app.Stats()
	log.Info("snapshot written", "path", opt.out, "frames", n, "rendered", st.Rendered, "total", st.Instances)
	return nil
}
