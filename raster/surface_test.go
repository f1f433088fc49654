package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	black = color.RGBA{A: 255}
	red   = color.RGBA{R: 255, A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

func TestSurfaceClear(t *testing.T) {
	s := NewSurface(8, 4)
	s.Clear(red)
	assert.Equal(t, red, s.Image().RGBAAt(0, 0))
	assert.Equal(t, red, s.Image().RGBAAt(7, 3))
}

func TestSurfaceMinimumSize(t *testing.T) {
	s := NewSurface(0, -3)
	assert.Equal(t, image.Rect(0, 0, 1, 1), s.Image().Bounds())
}

func TestSurfaceDrawPoint(t *testing.T) {
	s := NewSurface(32, 32)
	s.Clear(black)
	s.DrawPoint(mgl64.Vec2{10, 10}, red, 3)
	assert.Equal(t, red, s.Image().RGBAAt(10, 10))
	assert.Equal(t, black, s.Image().RGBAAt(20, 20))
}

func TestSurfaceDrawLine(t *testing.T) {
	s := NewSurface(40, 40)
	s.Clear(black)
	s.DrawLine(mgl64.Vec2{0, 20}, mgl64.Vec2{30, 20}, white, 4)
	assert.Equal(t, white, s.Image().RGBAAt(15, 20))
	assert.Equal(t, black, s.Image().RGBAAt(15, 30))
	assert.Equal(t, black, s.Image().RGBAAt(35, 20))

	// degenerate lines become dots
	s.DrawLine(mgl64.Vec2{5, 5}, mgl64.Vec2{5, 5}, red, 6)
	assert.Equal(t, red, s.Image().RGBAAt(5, 5))
}

func TestSurfaceDrawTextAndRect(t *testing.T) {
	s := NewSurface(100, 40)
	s.Clear(black)
	s.DrawRect(mgl64.Vec2{60, 0}, mgl64.Vec2{99, 39}, red, white)
	assert.Equal(t, red, s.Image().RGBAAt(80, 20))
	assert.Equal(t, black, s.Image().RGBAAt(50, 20))

	s.DrawText("Debug", mgl64.Vec2{10, 10}, white)
	lit := 0
	for y := 10; y < 10+int(s.LineHeight()); y++ {
		for x := 10; x < 50; x++ {
			if s.Image().RGBAAt(x, y) != black {
				lit++
			}
		}
	}
	assert.Positive(t, lit)
	assert.Equal(t, 13.0, s.LineHeight())
}

func TestSurfaceWritePNG(t *testing.T) {
	s := NewSurface(16, 9)
	s.Clear(red)
	s.Present()
	assert.Equal(t, 1, s.Frames())

	var buf bytes.Buffer
	require.NoError(t, s.WritePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 9), img.Bounds())
	r, g, b, a := img.At(3, 3).RGBA()
	assert.Equal(t, []uint32{0xffff, 0, 0, 0xffff}, []uint32{r, g, b, a})
}
