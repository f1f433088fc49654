package wirevis

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// DrawSurface receives screen space primitives from the scene.
type DrawSurface interface {
	Clear(c color.RGBA)
	DrawPoint(pos mgl64.Vec2, c color.RGBA, radius float32)
	DrawLine(a, b mgl64.Vec2, c color.RGBA, width float32)
	Present()
}

// OverlaySurface is a DrawSurface that can also draw the flat UI layer.
type OverlaySurface interface {
	DrawSurface
	DrawRect(min, max mgl64.Vec2, fill, stroke color.RGBA)
	DrawText(s string, pos mgl64.Vec2, c color.RGBA)
	// LineHeight is the vertical advance of one line of DrawText output.
	LineHeight() float64
}

const (
	pointRadius float32 = 3
	lineWidth   float32 = 1
)
