package display

import (
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// debugLineHeight is the glyph height of the ebitenutil debug font.
const debugLineHeight = 16

var (
	whiteImage = ebiten.NewImage(3, 3)
	whiteSub   *ebiten.Image
)

func init() {
	whiteImage.Fill(color.White)
	whiteSub = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// Surface draws scene primitives and the UI layer onto an ebiten image. The
// target changes every frame.
type Surface struct {
	dst       *ebiten.Image
	antialias bool
}

func NewSurface(antialias bool) *Surface {
	return &Surface{antialias: antialias}
}

func (s *Surface) Target(dst *ebiten.Image) {
	s.dst = dst
}

func (s *Surface) Clear(c color.RGBA) {
	s.dst.Fill(c)
}

func (s *Surface) DrawPoint(p mgl64.Vec2, c color.RGBA, radius float32) {
	vector.DrawFilledCircle(s.dst, float32(p[0]), float32(p[1]), radius, c, s.antialias)
}

func (s *Surface) DrawLine(a, b mgl64.Vec2, c color.RGBA, width float32) {
	vector.StrokeLine(s.dst, float32(a[0]), float32(a[1]), float32(b[0]), float32(b[1]), width, c, s.antialias)
}

func (s *Surface) DrawRect(min, max mgl64.Vec2, fill, stroke color.RGBA) {
	xp := []float32{float32(min[0]), float32(max[0]), float32(max[0]), float32(min[0])}
	yp := []float32{float32(min[1]), float32(min[1]), float32(max[1]), float32(max[1])}
	fillConvexPolygon(s.dst, xp, yp, fill)
	drawPolygonOutline(s.dst, xp, yp, 1, stroke)
}

// DrawText uses the built in debug font, which is always white.
func (s *Surface) DrawText(str string, p mgl64.Vec2, _ color.RGBA) {
	ebitenutil.DebugPrintAt(s.dst, str, int(p[0]), int(p[1]))
}

func (s *Surface) LineHeight() float64 {
	return debugLineHeight
}

// Present is a no-op; ebiten swaps buffers after Draw returns.
func (s *Surface) Present() {}

func colorScale(clr color.RGBA) (r, g, b, a float32) {
	return float32(clr.R) / 255, float32(clr.G) / 255, float32(clr.B) / 255, float32(clr.A) / 255
}

func fillConvexPolygon(dst *ebiten.Image, xp, yp []float32, clr color.RGBA) {
	if len(xp) < 3 {
		return
	}
	indices := make([]uint16, 0, (len(xp)-2)*3)
	for i := 2; i < len(xp); i++ {
		indices = append(indices, 0, uint16(i-1), uint16(i))
	}

	cr, cg, cb, ca := colorScale(clr)
	vertices := make([]ebiten.Vertex, len(xp))
	for i := range xp {
		vertices[i] = ebiten.Vertex{
			DstX: xp[i], DstY: yp[i],
			SrcX: 1, SrcY: 1,
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
		}
	}
	dst.DrawTriangles(vertices, indices, whiteSub, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func drawPolygonOutline(dst *ebiten.Image, xp, yp []float32, strokeWidth float32, clr color.RGBA) {
	if len(xp) < 2 {
		return
	}
	var path vector.Path
	path.MoveTo(xp[0], yp[0])
	for i := 1; i < len(xp); i++ {
		path.LineTo(xp[i], yp[i])
	}
	path.Close()

	vertices, indices := path.AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{Width: strokeWidth})
	cr, cg, cb, ca := colorScale(clr)
	for i := range vertices {
		vertices[i].ColorR = cr
		vertices[i].ColorG = cg
		vertices[i].ColorB = cb
		vertices[i].ColorA = ca
		vertices[i].SrcX = 1
		vertices[i].SrcY = 1
	}
	dst.DrawTriangles(vertices, indices, whiteSub, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}
