package wirevis

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dragFrames builds the input for a middle button drag through the given
// mouse positions.
func dragFrames(modifier bool, positions ...mgl64.Vec2) []*InputState {
	frames := make([]*InputState, len(positions))
	for i, p := range positions {
		in := NewInputState()
		in.Buttons[MouseMiddle] = true
		in.Mouse = p
		in.Modifier = modifier
		frames[i] = in
	}
	return frames
}

func keyFrame(keys ...Key) *InputState {
	in := NewInputState()
	for _, k := range keys {
		in.Pressed[k] = true
		in.Triggered[k] = true
	}
	return in
}

func TestOrbitCameraDefaults(t *testing.T) {
	c := NewOrbitCamera(DefaultOrbitSettings())
	assert.Equal(t, mgl64.Vec3{}, c.Focus)
	assert.Equal(t, 2.0, c.Distance)
	assert.Zero(t, c.Pitch)
	assert.Zero(t, c.Yaw)
	assert.Equal(t, Dims3, c.Dims())
}

func TestOrbitCameraRotateNeedsPreviousSample(t *testing.T) {
	c := NewOrbitCamera(DefaultOrbitSettings())
	frames := dragFrames(false, mgl64.Vec2{100, 100})
	c.Update(0.5, frames[0])
	assert.Zero(t, c.Pitch)
	assert.Zero(t, c.Yaw)
}

func TestOrbitCameraRotate(t *testing.T) {
	c := NewOrbitCamera(DefaultOrbitSettings())
	frames := dragFrames(false, mgl64.Vec2{100, 100}, mgl64.Vec2{90, 80})
	for _, f := range frames {
		c.Update(0.01, f)
	}
	// delta is previous minus current: (10, 20)
	assert.InDelta(t, 20*0.01, c.Pitch, 1e-12)
	assert.InDelta(t, -10*0.01, c.Yaw, 1e-12)
}

func TestOrbitCameraReleaseForgetsSample(t *testing.T) {
	c := NewOrbitCamera(DefaultOrbitSettings())
	c.Update(0.01, dragFrames(false, mgl64.Vec2{0, 0})[0])
	c.Update(0.01, NewInputState())
	c.Update(0.01, dragFrames(false, mgl64.Vec2{500, 500})[0])
	assert.Zero(t, c.Pitch)
	assert.Zero(t, c.Yaw)
}

func TestOrbitCameraOrientationStaysWrapped(t *testing.T) {
	c := NewOrbitCamera(DefaultOrbitSettings())
	x := 0.0
	c.Update(1, dragFrames(false, mgl64.Vec2{x, x})[0])
	for i := 0; i < 200; i++ {
		x += 37
		c.Update(0.25, dragFrames(false, mgl64.Vec2{x, -x})[0])
		require.GreaterOrEqual(t, c.Yaw, -math.Pi)
		require.LessOrEqual(t, c.Yaw, math.Pi)
		require.GreaterOrEqual(t, c.Pitch, -math.Pi)
		require.LessOrEqual(t, c.Pitch, math.Pi)
	}
}

func TestOrbitCameraPan(t *testing.T) {
	c := NewOrbitCamera(DefaultOrbitSettings())
	for _, f := range dragFrames(true, mgl64.Vec2{100, 100}, mgl64.Vec2{90, 100}) {
		c.Update(0.1, f)
	}
	// unrotated: screen delta x=10 moves the focus along +x
	assert.InDelta(t, 1.0, c.Focus[0], 1e-12)
	assert.InDelta(t, 0.0, c.Focus[1], 1e-12)
	assert.InDelta(t, 0.0, c.Focus[2], 1e-12)
	assert.Zero(t, c.Pitch, "pan does not rotate")
}

func TestOrbitCameraPanFollowsYaw(t *testing.T) {
	c := NewOrbitCamera(DefaultOrbitSettings())
	c.Yaw = math.Pi / 2
	for _, f := range dragFrames(true, mgl64.Vec2{100, 100}, mgl64.Vec2{90, 100}) {
		c.Update(0.1, f)
	}
	// Ry(π/2) maps +x to -z
	assert.InDelta(t, 0.0, c.Focus[0], 1e-12)
	assert.InDelta(t, -1.0, c.Focus[2], 1e-12)
}

func TestOrbitCameraZoomFloor(t *testing.T) {
	c := NewOrbitCamera(DefaultOrbitSettings())
	for i := 0; i < 1000; i++ {
		in := NewInputState()
		in.Wheel = float64(i % 7)
		c.Update(0.016, in)
		require.GreaterOrEqual(t, c.Distance, 0.01)
	}
	c.Zoom(1e9)
	assert.Equal(t, 0.01, c.Distance)

	c.Zoom(-0.5)
	assert.InDelta(t, 0.51, c.Distance, 1e-12)
}

func TestOrbitCameraRejectsNonFinite(t *testing.T) {
	c := NewOrbitCamera(DefaultOrbitSettings())
	c.Zoom(math.NaN())
	assert.Equal(t, 2.0, c.Distance)
	c.Zoom(math.Inf(-1))
	assert.Equal(t, 2.0, c.Distance)
	c.rotate(math.Inf(1), math.NaN())
	assert.Zero(t, c.Pitch)
	assert.Zero(t, c.Yaw)
}

func TestOrbitCameraPresets(t *testing.T) {
	testCases := []struct {
		key   Key
		focus mgl64.Vec3
		pitch float64
		yaw   float64
	}{
		{KeyKP1, mgl64.Vec3{4, 5, 6}, 0, 0},
		{KeyKP3, mgl64.Vec3{4, 5, 6}, 0, -math.Pi / 2},
		{KeyKP7, mgl64.Vec3{4, 5, 6}, -math.Pi / 2, 0},
		{KeyKP5, mgl64.Vec3{1, 0, 0}, -math.Pi / 4, -3 * math.Pi / 4},
		{KeyKP0, mgl64.Vec3{}, 0, 0},
	}
	for _, tc := range testCases {
		c := NewOrbitCamera(DefaultOrbitSettings())
		c.Focus = mgl64.Vec3{4, 5, 6}
		c.Pitch, c.Yaw, c.Distance = 1, 1, 7
		c.Update(0.016, keyFrame(tc.key))
		assert.Equal(t, tc.focus, c.Focus, "key %d", tc.key)
		assert.InDelta(t, tc.pitch, c.Pitch, 1e-12)
		assert.InDelta(t, tc.yaw, c.Yaw, 1e-12)
		if tc.key == KeyKP0 {
			assert.Equal(t, 2.0, c.Distance)
		} else {
			assert.Equal(t, 7.0, c.Distance)
		}
	}
}

func TestPanCameraKeys(t *testing.T) {
	c := NewPanCamera(DefaultPanSettings())
	c.Update(0.5, keyFrame(KeyD, KeyW))
	assert.InDelta(t, 2.5, c.Position[0], 1e-12)
	assert.InDelta(t, 2.5, c.Position[1], 1e-12)

	in := keyFrame(KeyLeft)
	in.Modifier = true
	c.Update(0.5, in)
	assert.InDelta(t, 2.5-10, c.Position[0], 1e-12)

	// opposing keys cancel, both bindings for one direction do not stack
	c.Update(0.5, keyFrame(KeyA, KeyD, KeyUp, KeyW))
	assert.InDelta(t, -7.5, c.Position[0], 1e-12)
	assert.InDelta(t, 5.0, c.Position[1], 1e-12)
}

func TestPanCameraDrag(t *testing.T) {
	c := NewPanCamera(DefaultPanSettings())
	for _, f := range dragFrames(false, mgl64.Vec2{100, 100}, mgl64.Vec2{70, 130}) {
		c.Update(0.5, f)
	}
	off := 0.5 * 60 / 30.0
	assert.InDelta(t, 30*off, c.Position[0], 1e-12)
	assert.InDelta(t, 30*off, c.Position[1], 1e-12)
}

func TestPanCameraScaleFloor(t *testing.T) {
	c := NewPanCamera(DefaultPanSettings())
	in := NewInputState()
	in.Wheel = -100
	c.Update(0.016, in)
	assert.Equal(t, 1.0, c.Scale)

	in.Wheel = 2
	c.Update(0.016, in)
	assert.Equal(t, 11.0, c.Scale)
}

func TestPanCameraCulled(t *testing.T) {
	c := NewPanCamera(DefaultPanSettings())
	assert.False(t, c.Culled(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 0}, vp800))
	assert.True(t, c.Culled(mgl64.Vec3{100, 0, 0}, mgl64.Vec3{101, 1, 0}, vp800))
	// a big box spanning the screen is never culled
	assert.False(t, c.Culled(mgl64.Vec3{-100, -100, 0}, mgl64.Vec3{100, 100, 0}, vp800))
}

func TestFlyCameraMove(t *testing.T) {
	c := NewFlyCamera(DefaultFlySettings())
	c.Update(1, keyFrame(KeyW))
	assert.InDelta(t, 3.0, c.Position[2], 1e-12)

	c = NewFlyCamera(DefaultFlySettings())
	c.Update(1, keyFrame(KeyA))
	assert.InDelta(t, -3.0, c.Position[0], 1e-12)

	c = NewFlyCamera(DefaultFlySettings())
	c.Update(0.5, keyFrame(KeySpace))
	assert.InDelta(t, 1.5, c.Position[1], 1e-12)
}

func TestFlyCameraPitchClamped(t *testing.T) {
	c := NewFlyCamera(DefaultFlySettings())
	for i := 0; i < 100; i++ {
		in := NewInputState()
		in.Buttons[MouseMiddle] = true
		in.MouseDelta = mgl64.Vec2{500, -500}
		c.Update(0.016, in)
		require.LessOrEqual(t, c.Pitch, math.Pi/2)
		require.GreaterOrEqual(t, c.Yaw, -math.Pi)
		require.LessOrEqual(t, c.Yaw, math.Pi)
	}
	assert.Equal(t, math.Pi/2, c.Pitch)
}
