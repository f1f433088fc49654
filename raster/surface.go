// Package raster draws scene primitives into an in-memory RGBA image, for
// snapshots and for running without a window.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

const circleSegments = 24

// Surface is a software DrawSurface backed by an *image.RGBA.
type Surface struct {
	img    *image.RGBA
	z      *vector.Rasterizer
	face   font.Face
	frames int
}

func NewSurface(width, height int) *Surface {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Surface{
		img:  image.NewRGBA(image.Rect(0, 0, width, height)),
		z:    vector.NewRasterizer(width, height),
		face: basicfont.Face7x13,
	}
}

func (s *Surface) Image() *image.RGBA {
	return s.img
}

// Frames is how many times Present has been called.
func (s *Surface) Frames() int {
	return s.frames
}

func (s *Surface) Clear(c color.RGBA) {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

func (s *Surface) DrawPoint(p mgl64.Vec2, c color.RGBA, radius float32) {
	r := float64(radius)
	if r < 0.5 {
		r = 0.5
	}
	s.begin()
	for i := 0; i <= circleSegments; i++ {
		a := 2 * math.Pi * float64(i) / circleSegments
		x := float32(p[0] + r*math.Cos(a))
		y := float32(p[1] + r*math.Sin(a))
		if i == 0 {
			s.z.MoveTo(x, y)
		} else {
			s.z.LineTo(x, y)
		}
	}
	s.fill(c)
}

// DrawLine rasterizes the segment as a quad width pixels across.
func (s *Surface) DrawLine(a, b mgl64.Vec2, c color.RGBA, width float32) {
	d := b.Sub(a)
	l := d.Len()
	if l == 0 {
		s.DrawPoint(a, c, width/2)
		return
	}
	h := float64(width) / 2
	if h < 0.5 {
		h = 0.5
	}
	n := mgl64.Vec2{-d[1] / l * h, d[0] / l * h}

	s.begin()
	s.moveTo(a.Add(n))
	s.lineTo(b.Add(n))
	s.lineTo(b.Sub(n))
	s.lineTo(a.Sub(n))
	s.fill(c)
}

func (s *Surface) DrawRect(min, max mgl64.Vec2, fill, stroke color.RGBA) {
	r := image.Rect(int(min[0]), int(min[1]), int(max[0]), int(max[1]))
	draw.Draw(s.img, r, image.NewUniform(fill), image.Point{}, draw.Over)
	corners := []mgl64.Vec2{min, {max[0], min[1]}, max, {min[0], max[1]}}
	for i := range corners {
		s.DrawLine(corners[i], corners[(i+1)%len(corners)], stroke, 1)
	}
}

// DrawText draws s with its top left corner at p.
func (s *Surface) DrawText(str string, p mgl64.Vec2, c color.RGBA) {
	d := font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(c),
		Face: s.face,
		Dot:  fixed.P(int(p[0]), int(p[1])+s.face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(str)
}

func (s *Surface) LineHeight() float64 {
	return float64(s.face.Metrics().Height.Ceil())
}

func (s *Surface) Present() {
	s.frames++
}

// WritePNG encodes the current image.
func (s *Surface) WritePNG(w io.Writer) error {
	if err := png.Encode(w, s.img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

func (s *Surface) begin() {
	b := s.img.Bounds()
	s.z.Reset(b.Dx(), b.Dy())
	s.z.DrawOp = draw.Over
}

func (s *Surface) moveTo(p mgl64.Vec2) {
	s.z.MoveTo(float32(p[0]), float32(p[1]))
}

func (s *Surface) lineTo(p mgl64.Vec2) {
	s.z.LineTo(float32(p[0]), float32(p[1]))
}

func (s *Surface) fill(c color.RGBA) {
	s.z.ClosePath()
	s.z.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{})
}
