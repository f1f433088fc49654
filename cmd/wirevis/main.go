package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/smasonuk/wirevis"
	"github.com/smasonuk/wirevis/display"
)

type globalFlags struct {
	config    string
	mode      string
	templates string
	lenient   bool
	vv, v, q  bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	gf := &globalFlags{}
	root := &cobra.Command{
		Use:           "wirevis",
		Short:         "Interactive wireframe visualizer",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&gf.config, "config", "c", "wirevis.yaml", "config file (.yaml, .yml or .toml)")
	pf.StringVar(&gf.mode, "mode", "", "camera mode: orbit, pan or fly")
	pf.StringVar(&gf.templates, "templates", "", "template directory")
	pf.BoolVar(&gf.lenient, "lenient", false, "keep running when some templates fail to load")
	pf.BoolVar(&gf.vv, "vv", false, "debug logging")
	pf.BoolVarP(&gf.v, "verbose", "v", false, "info logging")
	pf.BoolVarP(&gf.q, "quiet", "q", false, "only log errors")

	root.AddCommand(newRunCmd(gf), newSnapshotCmd(gf), newValidateCmd(gf))
	return root
}

func (gf *globalFlags) logger() *slog.Logger {
	return wirevis.NewLogger(os.Stderr, wirevis.LevelFromFlags(gf.vv, gf.v, gf.q))
}

// load reads the config file and applies the flag overrides.
func (gf *globalFlags) load() (wirevis.Config, error) {
	cfg, err := wirevis.LoadConfig(gf.config)
	if err != nil {
		return cfg, err
	}
	if gf.mode != "" {
		m, err := wirevis.ParseMode(gf.mode)
		if err != nil {
			return cfg, err
		}
		cfg.Mode = m
	}
	if gf.templates != "" {
		cfg.Templates.Dir = gf.templates
	}
	if gf.lenient {
		cfg.Templates.Strict = false
	}
	return cfg, cfg.Validate()
}

func newRunCmd(gf *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Open the visualizer window",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := gf.logger()
			cfg, err := gf.load()
			if err != nil {
				return err
			}
			app, err := wirevis.NewApp(cfg, log)
			if err != nil {
				return err
			}

			if cfg.Templates.Watch {
				ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
				defer cancel()
				w, err := wirevis.NewWatcher(app.Registry().Dir(), cfg.Templates.Extension, log)
				if err != nil {
					log.Warn("template watching disabled", "err", err)
				} else {
					defer w.Close()
					w.Run(ctx)
					app.AttachWatcher(w)
				}
			}

			log.Info("starting", "mode", cfg.Mode, "templates", app.Registry().Names())
			return display.Run(app, log)
		},
	}
}

func newSnapshotCmd(gf *globalFlags) *cobra.Command {
	var (
		out    string
		frames int
		debug  bool
		spawn  int
	)
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render frames without a window and write the last one as PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := gf.load()
			if err != nil {
				return err
			}
			return snapshot(cmd.Context(), cfg, gf.logger(), snapshotOptions{
				out:    out,
				frames: frames,
				debug:  debug,
				spawn:  spawn,
			})
		},
	}
	f := cmd.Flags()
	f.StringVarP(&out, "out", "o", "wirevis.png", "output PNG path")
	f.IntVar(&frames, "frames", 1, "frames to run before writing")
	f.BoolVar(&debug, "debug", false, "turn the debug overlay on")
	f.IntVar(&spawn, "spawn", 0, "random objects to add first")
	return cmd
}

func newValidateCmd(gf *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [dir]",
		Short: "Load every template and report per file results",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := gf.load()
			if err != nil {
				return err
			}
			dir := cfg.TemplateDir()
			if len(args) == 1 {
				dir = args[0]
			}
			results, err := wirevis.ValidateDir(dir, cfg.Templates.Extension, cfg.Mode.Dims())
			if err != nil {
				return err
			}
			if failed := report(cmd.OutOrStdout(), results); failed > 0 {
				return fmt.Errorf("%d of %d templates failed", failed, len(results))
			}
			return nil
		},
	}
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
