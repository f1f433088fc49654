package wirevis

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type FlySettings struct {
	NearPlane    float64 `yaml:"near_plane" toml:"near_plane"`
	FarPlane     float64 `yaml:"far_plane" toml:"far_plane"`
	DepthScaling float64 `yaml:"depth_scaling" toml:"depth_scaling"`
	Speed        float64 `yaml:"speed" toml:"speed"`
	Sens         float64 `yaml:"sens" toml:"sens"`
}

func DefaultFlySettings() FlySettings {
	return FlySettings{
		NearPlane:    1e-5,
		FarPlane:     20,
		DepthScaling: 200,
		Speed:        3,
		Sens:         0.02,
	}
}

// FlyCamera is a free-moving first person camera. WASD moves relative to the
// heading, Space and Shift climb and sink, middle drag turns.
type FlyCamera struct {
	Position mgl64.Vec3
	Pitch    float64
	Yaw      float64

	settings FlySettings
}

func NewFlyCamera(s FlySettings) *FlyCamera {
	return &FlyCamera{settings: s}
}

func (c *FlyCamera) Settings() FlySettings {
	return c.settings
}

func (c *FlyCamera) Params() FlyParams {
	return FlyParams{
		Position:     c.Position,
		Pitch:        c.Pitch,
		Yaw:          c.Yaw,
		NearPlane:    c.settings.NearPlane,
		FarPlane:     c.settings.FarPlane,
		DepthScaling: c.settings.DepthScaling,
	}
}

func (c *FlyCamera) Project(p mgl64.Vec3, vp Viewport) (mgl64.Vec2, bool) {
	return ProjectFly(p, c.Params(), vp)
}

func (c *FlyCamera) Update(dt float64, in *InputState) {
	step := c.settings.Speed * dt
	fwd := in.axis(KeyW, KeyS)
	side := in.axis(KeyA, KeyD)
	up := in.axis(KeySpace, KeyShift)

	sy, cy := math.Sincos(c.Yaw)
	move := mgl64.Vec3{
		step*fwd*sy - step*side*cy,
		step * up,
		step*fwd*cy + step*side*sy,
	}
	c.Position = keepFinite3(c.Position, c.Position.Add(move))

	if in.ButtonDown(MouseMiddle) {
		c.Yaw = keepFinite(c.Yaw, c.Yaw+in.MouseDelta[0]*c.settings.Sens)
		c.Pitch = keepFinite(c.Pitch, c.Pitch-in.MouseDelta[1]*c.settings.Sens)
	}
	c.normalize()
}

func (c *FlyCamera) normalize() {
	c.Yaw = wrapAngle(c.Yaw)
	c.Pitch = clampf(c.Pitch, -math.Pi/2, math.Pi/2)
}

func (c *FlyCamera) Anchor() mgl64.Vec3 {
	return c.Position
}

func (c *FlyCamera) Dims() Dims {
	return Dims3
}

func (c *FlyCamera) Describe() CameraInfo {
	return CameraInfo{
		Kind:     "fly",
		Position: c.Position,
		Rotation: mgl64.Vec2{c.Pitch, c.Yaw},
	}
}
