package wirevis

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Mode selects which camera the app runs with.
type Mode string

const (
	ModeOrbit Mode = "orbit"
	ModePan   Mode = "pan"
	ModeFly   Mode = "fly"
)

func (m Mode) Dims() Dims {
	if m == ModePan {
		return Dims2
	}
	return Dims3
}

func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeOrbit, ModePan, ModeFly:
		return m, nil
	}
	return "", fmt.Errorf("unknown mode %q (want orbit, pan or fly)", s)
}

type WindowConfig struct {
	Width     int    `yaml:"width" toml:"width"`
	Height    int    `yaml:"height" toml:"height"`
	Title     string `yaml:"title" toml:"title"`
	Resizable bool   `yaml:"resizable" toml:"resizable"`
	TPS       int    `yaml:"tps" toml:"tps"`
}

type TemplatesConfig struct {
	// Dir overrides the per mode directory when set.
	Dir       string `yaml:"dir" toml:"dir"`
	Dir3D     string `yaml:"dir_3d" toml:"dir_3d"`
	Dir2D     string `yaml:"dir_2d" toml:"dir_2d"`
	Extension string `yaml:"extension" toml:"extension"`
	Strict    bool   `yaml:"strict" toml:"strict"`
	Watch     bool   `yaml:"watch" toml:"watch"`
}

type SpawnConfig struct {
	Count      int     `yaml:"count" toml:"count"`
	Spread     float64 `yaml:"spread" toml:"spread"`
	Template3D string  `yaml:"template_3d" toml:"template_3d"`
	Template2D string  `yaml:"template_2d" toml:"template_2d"`
	Seed       int64   `yaml:"seed" toml:"seed"`
}

// ButtonConfig declares one clickable rectangle in window pixels.
type ButtonConfig struct {
	ID     string  `yaml:"id" toml:"id"`
	Label  string  `yaml:"label" toml:"label"`
	X      float64 `yaml:"x" toml:"x"`
	Y      float64 `yaml:"y" toml:"y"`
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
	Action string  `yaml:"action" toml:"action"`
}

type Config struct {
	Window    WindowConfig    `yaml:"window" toml:"window"`
	Mode      Mode            `yaml:"mode" toml:"mode"`
	Templates TemplatesConfig `yaml:"templates" toml:"templates"`
	Spawn     SpawnConfig     `yaml:"spawn" toml:"spawn"`
	Orbit     OrbitSettings   `yaml:"orbit" toml:"orbit"`
	Pan       PanSettings     `yaml:"pan" toml:"pan"`
	Fly       FlySettings     `yaml:"fly" toml:"fly"`
	Buttons   []ButtonConfig  `yaml:"buttons" toml:"buttons"`
}

func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Width:     800,
			Height:    600,
			Title:     "wirevis",
			Resizable: true,
			TPS:       60,
		},
		Mode: ModeOrbit,
		Templates: TemplatesConfig{
			Dir3D:     "data/objects3d",
			Dir2D:     "data/objects2d",
			Extension: DefaultTemplateExt,
			Strict:    true,
		},
		Spawn: SpawnConfig{
			Count:      100,
			Spread:     10,
			Template3D: "cube",
			Template2D: "square",
		},
		Orbit: DefaultOrbitSettings(),
		Pan:   DefaultPanSettings(),
		Fly:   DefaultFlySettings(),
		Buttons: []ButtonConfig{
			{ID: "debug", Label: "Debug", X: 10, Y: 560, Width: 80, Height: 28, Action: ActionDebug},
			{ID: "random", Label: "Random", X: 100, Y: 560, Width: 80, Height: 28, Action: ActionSpawn},
			{ID: "reload", Label: "Reload", X: 190, Y: 560, Width: 80, Height: 28, Action: ActionReload},
		},
	}
}

// TemplateDir returns the directory to load for the configured mode.
func (c Config) TemplateDir() string {
	if c.Templates.Dir != "" {
		return c.Templates.Dir
	}
	if c.Mode.Dims() == Dims2 {
		return c.Templates.Dir2D
	}
	return c.Templates.Dir3D
}

// SpawnTemplate is the template placed by clicks and random spawns.
func (c Config) SpawnTemplate() string {
	if c.Mode.Dims() == Dims2 {
		return c.Spawn.Template2D
	}
	return c.Spawn.Template3D
}

// LoadConfig reads path over the defaults. YAML or TOML is picked from the
// extension. A missing file yields the defaults without error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return cfg, fmt.Errorf("parsing %s: %w", path, err)
		}
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("config %s: unsupported extension %q", path, ext)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values a window and camera cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width < 1 || c.Window.Height < 1 {
		errs = append(errs, fmt.Errorf("window size %dx%d: size cannot be less than 1", c.Window.Width, c.Window.Height))
	}
	if c.Window.TPS < 1 {
		errs = append(errs, fmt.Errorf("window tps %d must be positive", c.Window.TPS))
	}
	if _, err := ParseMode(string(c.Mode)); err != nil {
		errs = append(errs, err)
	}
	if !(c.Orbit.MaxZoom > 0) {
		errs = append(errs, fmt.Errorf("orbit max_zoom %v must be positive", c.Orbit.MaxZoom))
	}
	if !(c.Pan.MinScale >= 1) {
		errs = append(errs, fmt.Errorf("pan min_scale %v must be at least 1", c.Pan.MinScale))
	}
	if c.Spawn.Count < 0 {
		errs = append(errs, fmt.Errorf("spawn count %d is negative", c.Spawn.Count))
	}
	seen := map[string]bool{}
	for _, b := range c.Buttons {
		if seen[b.ID] {
			errs = append(errs, fmt.Errorf("button %q declared twice", b.ID))
		}
		seen[b.ID] = true
		if _, ok := buttonActions[b.Action]; !ok {
			errs = append(errs, fmt.Errorf("button %q: unknown action %q", b.ID, b.Action))
		}
	}
	return errors.Join(errs...)
}
