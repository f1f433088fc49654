package wirevis

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera is the single role every view mode plays: turn world points into
// pixels and react to input.
type Camera interface {
	Project(p mgl64.Vec3, vp Viewport) (mgl64.Vec2, bool)
	Update(dt float64, in *InputState)
	// Anchor is where the debug cursor is pinned and new objects are placed.
	Anchor() mgl64.Vec3
	Dims() Dims
	Describe() CameraInfo
}

// CameraInfo is what the debug overlay prints about a camera.
type CameraInfo struct {
	Kind     string
	Position mgl64.Vec3
	// Rotation is (pitch, yaw) in radians; zero for 2D.
	Rotation mgl64.Vec2
	Zoom     float64
}

func (ci CameraInfo) PositionString() string {
	if ci.Kind == "pan" {
		return fmt.Sprintf("[%.3f %.3f]", ci.Position[0], ci.Position[1])
	}
	return fmt.Sprintf("[%.3f %.3f %.3f]", ci.Position[0], ci.Position[1], ci.Position[2])
}

func (ci CameraInfo) RotationString() string {
	return fmt.Sprintf("[%.2f %.2f]", mgl64.RadToDeg(ci.Rotation[0]), mgl64.RadToDeg(ci.Rotation[1]))
}

// Presetter is implemented by cameras with canonical snap views.
type Presetter interface {
	ApplyPreset(ViewPreset)
}

// Marker is implemented by cameras that want their anchor drawn each frame.
type Marker interface {
	Marker() (mgl64.Vec3, color.RGBA, float32)
}

// Culler is implemented by cameras that can reject a whole instance from its
// world space bounding box before any vertex is projected.
type Culler interface {
	Culled(min, max mgl64.Vec3, vp Viewport) bool
}

// mouseDrag tracks the previous mouse sample while a button is held.
type mouseDrag struct {
	last mgl64.Vec2
	have bool
}

// step returns previous minus current once a previous sample exists. Letting
// go of the button forgets the sample.
func (d *mouseDrag) step(in *InputState, b MouseButton) (mgl64.Vec2, bool) {
	if !in.ButtonDown(b) {
		d.have = false
		return mgl64.Vec2{}, false
	}
	cur := in.Mouse
	if !d.have {
		d.last, d.have = cur, true
		return mgl64.Vec2{}, false
	}
	delta := d.last.Sub(cur)
	d.last = cur
	return delta, true
}

var markerColor = color.RGBA{R: 255, A: 255}

const markerRadius = 10
