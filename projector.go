package wirevis

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// depthBias keeps the perspective divide away from zero.
const depthBias = 1e-5

// Viewport is the drawable area in pixels.
type Viewport struct {
	Width  float64
	Height float64
}

func (v Viewport) Center() mgl64.Vec2 {
	return mgl64.Vec2{v.Width / 2, v.Height / 2}
}

func (v Viewport) contains(p mgl64.Vec2, tol float64) bool {
	return p[0] >= -tol && p[0] <= v.Width+tol && p[1] >= -tol && p[1] <= v.Height+tol
}

// OrbitParams is the camera state the orbit projection reads.
type OrbitParams struct {
	Focus        mgl64.Vec3
	Pitch, Yaw   float64
	Distance     float64
	DepthScaling float64
	FarPlane     float64
}

// rotateYawPitch applies yaw on the (x,z) plane then pitch on the (y,z) plane.
func rotateYawPitch(p mgl64.Vec3, pitch, yaw float64) mgl64.Vec3 {
	x, y, z := p[0], p[1], p[2]
	sy, cy := math.Sincos(yaw)
	x, z = x*cy-z*sy, x*sy+z*cy
	sp, cp := math.Sincos(pitch)
	y, z = y*cp-z*sp, y*sp+z*cp
	return mgl64.Vec3{x, y, z}
}

// ProjectOrbit maps p to a pixel for a camera orbiting Focus at Distance.
// The far plane is tested against the depth measured from the eye.
func ProjectOrbit(p mgl64.Vec3, c OrbitParams, vp Viewport) (mgl64.Vec2, bool) {
	r := rotateYawPitch(p.Sub(c.Focus), c.Pitch, c.Yaw)
	zs := r[2] + depthBias + c.Distance
	if !(zs > 0) {
		return mgl64.Vec2{}, false
	}
	visible := zs <= c.FarPlane

	f := c.DepthScaling / zs
	px := mgl64.Vec2{vp.Width/2 + r[0]*f, vp.Height/2 - r[1]*f}
	if !finite2(px) {
		return mgl64.Vec2{}, false
	}
	return px, visible && vp.contains(px, 0)
}

// PanParams is the camera state the 2D projection reads.
type PanParams struct {
	Position mgl64.Vec2
	Scale    float64
}

// ProjectPan maps a 2D world point to a pixel. Points up to one world unit
// outside the viewport still count as visible.
func ProjectPan(p mgl64.Vec2, c PanParams, vp Viewport) (mgl64.Vec2, bool) {
	px := mgl64.Vec2{
		p[0]*c.Scale - c.Position[0]*c.Scale + vp.Width/2,
		-p[1]*c.Scale + c.Position[1]*c.Scale + vp.Height/2,
	}
	if !finite2(px) {
		return mgl64.Vec2{}, false
	}
	return px, vp.contains(px, c.Scale)
}

// FlyParams is the camera state the free-fly projection reads.
type FlyParams struct {
	Position     mgl64.Vec3
	Pitch, Yaw   float64
	NearPlane    float64
	FarPlane     float64
	DepthScaling float64
}

// ProjectFly maps p to a pixel for a camera sitting at Position.
func ProjectFly(p mgl64.Vec3, c FlyParams, vp Viewport) (mgl64.Vec2, bool) {
	r := rotateYawPitch(p.Sub(c.Position), c.Pitch, c.Yaw)
	z := r[2] + depthBias
	if !(z >= c.NearPlane && z <= c.FarPlane) || !(z > 0) {
		return mgl64.Vec2{}, false
	}
	f := c.DepthScaling / z
	px := mgl64.Vec2{vp.Width/2 + r[0]*f, vp.Height/2 - r[1]*f}
	if !finite2(px) {
		return mgl64.Vec2{}, false
	}
	return px, vp.contains(px, 0)
}

// wrapAngle folds a into [-π, π].
func wrapAngle(a float64) float64 {
	return math.Remainder(a, 2*math.Pi)
}

func clampf(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func finite2(v mgl64.Vec2) bool {
	return finite(v[0]) && finite(v[1])
}

func finite3(v mgl64.Vec3) bool {
	return finite(v[0]) && finite(v[1]) && finite(v[2])
}

// keepFinite returns next unless it is NaN or infinite, in which case prev.
func keepFinite(prev, next float64) float64 {
	if finite(next) {
		return next
	}
	return prev
}

func keepFinite3(prev, next mgl64.Vec3) mgl64.Vec3 {
	if finite3(next) {
		return next
	}
	return prev
}
