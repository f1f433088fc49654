package wirevis

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, ModeOrbit, cfg.Mode)
}

func TestLoadConfigYAML(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "wirevis.yaml", `
mode: pan
window:
  width: 1024
  height: 768
  title: test
  tps: 30
templates:
  dir: shapes
  strict: false
pan:
  scale: 12
  min_scale: 2
buttons:
  - {id: q, label: Quit, x: 1, y: 2, width: 3, height: 4, action: quit}
`)
	cfg, err := LoadConfig(p)
	require.NoError(t, err)
	assert.Equal(t, ModePan, cfg.Mode)
	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, 30, cfg.Window.TPS)
	assert.Equal(t, "shapes", cfg.TemplateDir())
	assert.False(t, cfg.Templates.Strict)
	assert.Equal(t, 12.0, cfg.Pan.Scale)
	// untouched sections keep their defaults
	assert.Equal(t, DefaultOrbitSettings(), cfg.Orbit)
	require.Len(t, cfg.Buttons, 1)
	assert.Equal(t, ActionQuit, cfg.Buttons[0].Action)
	assert.Equal(t, "square", cfg.SpawnTemplate())
}

func TestLoadConfigTOML(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "wirevis.toml", `
mode = "fly"

[window]
width = 640
height = 480
title = "toml"
tps = 60

[fly]
near_plane = 0.1
far_plane = 50.0
depth_scaling = 250.0
speed = 2.0
sens = 0.01
`)
	cfg, err := LoadConfig(p)
	require.NoError(t, err)
	assert.Equal(t, ModeFly, cfg.Mode)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 50.0, cfg.Fly.FarPlane)
	assert.Equal(t, "data/objects3d", cfg.TemplateDir())
	assert.Equal(t, "cube", cfg.SpawnTemplate())
}

func TestLoadConfigErrors(t *testing.T) {
	testCases := []struct {
		name string
		file string
		body string
	}{
		{"bad yaml", "c.yaml", "window: [1, 2"},
		{"unknown yaml field", "c.yaml", "windw:\n  width: 3\n"},
		{"bad toml", "c.toml", "mode = "},
		{"unknown toml field", "c.toml", "[windw]\nwidth = 3\n"},
		{"zero width", "c.yaml", "window:\n  width: 0\n"},
		{"bad mode", "c.yaml", "mode: sideways\n"},
		{"bad action", "c.yaml", "buttons:\n  - {id: a, action: dance}\n"},
		{"duplicate button", "c.yaml", "buttons:\n  - {id: a, action: debug}\n  - {id: a, action: spawn}\n"},
		{"negative zoom floor", "c.toml", "[orbit]\nmax_zoom = -1.0\n"},
		{"unsupported extension", "c.ini", "mode=orbit"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := writeFile(t, t.TempDir(), tc.file, tc.body)
			_, err := LoadConfig(p)
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigEmptyYAML(t *testing.T) {
	p := writeFile(t, t.TempDir(), "empty.yml", "")
	cfg, err := LoadConfig(p)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode(" Orbit ")
	require.NoError(t, err)
	assert.Equal(t, ModeOrbit, m)
	_, err = ParseMode("3d")
	assert.Error(t, err)
	assert.Equal(t, Dims2, ModePan.Dims())
	assert.Equal(t, Dims3, ModeFly.Dims())
}

func TestLevelFromFlags(t *testing.T) {
	testCases := []struct {
		vv, v, q bool
		want     string
	}{
		{true, false, false, "DEBUG"},
		{false, true, true, "INFO"},
		{false, false, true, "ERROR"},
		{false, false, false, "WARN"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, LevelFromFlags(tc.vv, tc.v, tc.q).String())
	}
}
