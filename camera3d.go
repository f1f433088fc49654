package wirevis

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// OrbitSettings are the tunables of an OrbitCamera.
type OrbitSettings struct {
	Distance     float64 `yaml:"distance" toml:"distance"`
	DepthScaling float64 `yaml:"depth_scaling" toml:"depth_scaling"`
	FarPlane     float64 `yaml:"far_plane" toml:"far_plane"`
	Sens         float64 `yaml:"sens" toml:"sens"`
	ZoomFactor   float64 `yaml:"zoom_factor" toml:"zoom_factor"`
	MaxZoom      float64 `yaml:"max_zoom" toml:"max_zoom"`
}

func DefaultOrbitSettings() OrbitSettings {
	return OrbitSettings{
		Distance:     2,
		DepthScaling: 300,
		FarPlane:     20,
		Sens:         1,
		ZoomFactor:   0.2,
		MaxZoom:      0.01,
	}
}

// OrbitCamera circles a focus point at a distance. Middle drag rotates, middle
// drag with the modifier pans the focus, the wheel zooms.
type OrbitCamera struct {
	Focus    mgl64.Vec3
	Pitch    float64
	Yaw      float64
	Distance float64

	settings OrbitSettings
	drag     mouseDrag
}

func NewOrbitCamera(s OrbitSettings) *OrbitCamera {
	if !(s.MaxZoom > 0) {
		s.MaxZoom = DefaultOrbitSettings().MaxZoom
	}
	if !finite(s.Distance) {
		s.Distance = DefaultOrbitSettings().Distance
	}
	c := &OrbitCamera{settings: s}
	c.ApplyPreset(PresetReset)
	return c
}

func (c *OrbitCamera) Settings() OrbitSettings {
	return c.settings
}

// SetFarPlane changes the far clipping distance.
func (c *OrbitCamera) SetFarPlane(far float64) {
	c.settings.FarPlane = far
}

func (c *OrbitCamera) Params() OrbitParams {
	return OrbitParams{
		Focus:        c.Focus,
		Pitch:        c.Pitch,
		Yaw:          c.Yaw,
		Distance:     c.Distance,
		DepthScaling: c.settings.DepthScaling,
		FarPlane:     c.settings.FarPlane,
	}
}

func (c *OrbitCamera) Project(p mgl64.Vec3, vp Viewport) (mgl64.Vec2, bool) {
	return ProjectOrbit(p, c.Params(), vp)
}

func (c *OrbitCamera) Update(dt float64, in *InputState) {
	if p := presetFromInput(in); p != PresetNone {
		c.ApplyPreset(p)
	}

	if delta, ok := c.drag.step(in, MouseMiddle); ok {
		d := dt * c.settings.Sens
		if in.Modifier {
			c.pan(delta.Mul(d))
		} else {
			c.rotate(delta[1]*d, -delta[0]*d)
		}
	}

	if in != nil && in.Wheel != 0 {
		c.Zoom(in.Wheel * c.settings.ZoomFactor)
	}

	c.normalize()
}

func (c *OrbitCamera) rotate(dPitch, dYaw float64) {
	c.Pitch = keepFinite(c.Pitch, c.Pitch+dPitch)
	c.Yaw = keepFinite(c.Yaw, c.Yaw+dYaw)
}

// pan moves the focus along the view plane.
func (c *OrbitCamera) pan(offset mgl64.Vec2) {
	rot := mgl64.Rotate3DY(c.Yaw).Mul3(mgl64.Rotate3DX(-c.Pitch))
	move := rot.Mul3x1(mgl64.Vec3{offset[0], -offset[1], 0})
	c.Focus = keepFinite3(c.Focus, c.Focus.Add(move))
}

// Zoom moves the camera toward the focus by amount, never closer than the
// configured floor.
func (c *OrbitCamera) Zoom(amount float64) {
	c.Distance = keepFinite(c.Distance, c.Distance-amount)
	c.normalize()
}

func (c *OrbitCamera) normalize() {
	c.Pitch = wrapAngle(c.Pitch)
	c.Yaw = wrapAngle(c.Yaw)
	c.Distance = math.Max(c.Distance, c.settings.MaxZoom)
}

func (c *OrbitCamera) ApplyPreset(p ViewPreset) {
	switch p {
	case PresetReset:
		c.Focus = mgl64.Vec3{}
		c.Pitch, c.Yaw = 0, 0
		c.Distance = c.settings.Distance
	case PresetFront:
		c.Pitch, c.Yaw = 0, 0
	case PresetRight:
		c.Pitch, c.Yaw = 0, -math.Pi/2
	case PresetTop:
		c.Pitch, c.Yaw = -math.Pi/2, 0
	case PresetIso:
		c.Focus = mgl64.Vec3{1, 0, 0}
		c.Pitch, c.Yaw = -math.Pi/4, -math.Pi/4*3
	}
	c.normalize()
}

func (c *OrbitCamera) Anchor() mgl64.Vec3 {
	return c.Focus
}

func (c *OrbitCamera) Dims() Dims {
	return Dims3
}

func (c *OrbitCamera) Marker() (mgl64.Vec3, color.RGBA, float32) {
	return c.Focus, markerColor, markerRadius
}

func (c *OrbitCamera) Describe() CameraInfo {
	return CameraInfo{
		Kind:     "orbit",
		Position: c.Focus,
		Rotation: mgl64.Vec2{c.Pitch, c.Yaw},
		Zoom:     c.Distance,
	}
}
