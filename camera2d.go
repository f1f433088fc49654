package wirevis

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type PanSettings struct {
	Scale          float64 `yaml:"scale" toml:"scale"`
	MinScale       float64 `yaml:"min_scale" toml:"min_scale"`
	Speed          float64 `yaml:"speed" toml:"speed"`
	FastMultiplier float64 `yaml:"fast_multiplier" toml:"fast_multiplier"`
	Sens           float64 `yaml:"sens" toml:"sens"`
	ZoomStep       float64 `yaml:"zoom_step" toml:"zoom_step"`
}

func DefaultPanSettings() PanSettings {
	return PanSettings{
		Scale:          30,
		MinScale:       1,
		Speed:          5,
		FastMultiplier: 4,
		Sens:           1,
		ZoomStep:       5,
	}
}

// PanCamera is the flat 2D view: keys and middle drag pan, the wheel scales.
type PanCamera struct {
	Position mgl64.Vec2
	Scale    float64

	settings PanSettings
	drag     mouseDrag
}

func NewPanCamera(s PanSettings) *PanCamera {
	if !(s.MinScale >= 1) {
		s.MinScale = 1
	}
	if !finite(s.Scale) {
		s.Scale = DefaultPanSettings().Scale
	}
	c := &PanCamera{settings: s, Scale: s.Scale}
	c.normalize()
	return c
}

func (c *PanCamera) Settings() PanSettings {
	return c.settings
}

func (c *PanCamera) Params() PanParams {
	return PanParams{Position: c.Position, Scale: c.Scale}
}

// Project drops z and maps the point through the 2D projection.
func (c *PanCamera) Project(p mgl64.Vec3, vp Viewport) (mgl64.Vec2, bool) {
	return ProjectPan(p.Vec2(), c.Params(), vp)
}

func (c *PanCamera) Update(dt float64, in *InputState) {
	step := c.settings.Speed * dt
	if in != nil && in.Modifier {
		step *= c.settings.FastMultiplier
	}
	dx := in.axis(KeyRight, KeyLeft) + in.axis(KeyD, KeyA)
	dy := in.axis(KeyUp, KeyDown) + in.axis(KeyW, KeyS)
	c.move(mgl64.Vec2{clampf(dx, -1, 1) * step, clampf(dy, -1, 1) * step})

	if delta, ok := c.drag.step(in, MouseMiddle); ok {
		off := dt * 60 / c.Scale * c.settings.Sens
		c.move(mgl64.Vec2{delta[0] * off, -delta[1] * off})
	}

	if in != nil && in.Wheel != 0 {
		c.Zoom(in.Wheel * c.settings.ZoomStep)
	}
	c.normalize()
}

func (c *PanCamera) move(d mgl64.Vec2) {
	next := c.Position.Add(d)
	if finite2(next) {
		c.Position = next
	}
}

// Zoom grows the scale by amount, never below the minimum.
func (c *PanCamera) Zoom(amount float64) {
	c.Scale = keepFinite(c.Scale, c.Scale+amount)
	c.normalize()
}

func (c *PanCamera) normalize() {
	c.Scale = math.Max(c.Scale, c.settings.MinScale)
}

// Culled reports whether the projected box of min..max misses the viewport,
// with the same one unit margin points get.
func (c *PanCamera) Culled(min, max mgl64.Vec3, vp Viewport) bool {
	p := c.Params()
	a, _ := ProjectPan(min.Vec2(), p, vp)
	b, _ := ProjectPan(max.Vec2(), p, vp)
	x0, x1 := math.Min(a[0], b[0]), math.Max(a[0], b[0])
	y0, y1 := math.Min(a[1], b[1]), math.Max(a[1], b[1])
	tol := c.Scale
	return x1 < -tol || x0 > vp.Width+tol || y1 < -tol || y0 > vp.Height+tol
}

func (c *PanCamera) Anchor() mgl64.Vec3 {
	return c.Position.Vec3(0)
}

func (c *PanCamera) Dims() Dims {
	return Dims2
}

func (c *PanCamera) Describe() CameraInfo {
	return CameraInfo{
		Kind:     "pan",
		Position: c.Position.Vec3(0),
		Zoom:     c.Scale,
	}
}
