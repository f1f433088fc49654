package wirevis

import (
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
)

type drawnPoint struct {
	pos    mgl64.Vec2
	color  color.RGBA
	radius float32
}

type drawnLine struct {
	a, b  mgl64.Vec2
	color color.RGBA
}

// recordingSurface is a mock DrawSurface that keeps every call.
type recordingSurface struct {
	clears   int
	points   []drawnPoint
	lines    []drawnLine
	presents int
}

func (r *recordingSurface) Clear(color.RGBA) { r.clears++ }

func (r *recordingSurface) DrawPoint(p mgl64.Vec2, c color.RGBA, radius float32) {
	r.points = append(r.points, drawnPoint{p, c, radius})
}

func (r *recordingSurface) DrawLine(a, b mgl64.Vec2, c color.RGBA, _ float32) {
	r.lines = append(r.lines, drawnLine{a, b, c})
}

func (r *recordingSurface) Present() { r.presents++ }

// overlaySurface also records UI calls.
type overlaySurface struct {
	recordingSurface
	rects int
	texts []string
}

func (o *overlaySurface) DrawRect(_, _ mgl64.Vec2, _, _ color.RGBA) { o.rects++ }

func (o *overlaySurface) DrawText(s string, _ mgl64.Vec2, _ color.RGBA) {
	o.texts = append(o.texts, s)
}

func (o *overlaySurface) LineHeight() float64 { return 13 }

func intp(i int) *int { return &i }

// lineRecord is a two vertex template with one white line.
func lineRecord(name string) TemplateRecord {
	return TemplateRecord{
		Name:     name,
		Vertices: [][]float64{{0, 0, 0}, {1, 0, 0}},
		Edges:    [][]int{{0, 1}},
		Colors:   map[string][]int{"w": {255, 255, 255}},
		Render:   []RenderRecord{{Type: "line", Pos: intp(0), Color: "w"}},
	}
}

func pointRecord(name string) TemplateRecord {
	return TemplateRecord{
		Name:     name,
		Vertices: [][]float64{{0, 0, 0}},
		Edges:    [][]int{},
		Colors:   map[string][]int{"r": {255, 0, 0}},
		Render:   []RenderRecord{{Type: "point", Pos: intp(0), Color: "r"}},
	}
}

func mustTemplate(t *testing.T, rec TemplateRecord, dims Dims) *Template {
	t.Helper()
	tpl, err := NewTemplate(rec, dims)
	require.NoError(t, err)
	return tpl
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

// testRegistry returns an in-memory registry holding the given records.
func testRegistry(t *testing.T, dims Dims, recs ...TemplateRecord) *Registry {
	t.Helper()
	reg := NewRegistry(t.TempDir(), dims, WithLogger(discardLogger()))
	for _, r := range recs {
		reg.Add(mustTemplate(t, r, dims))
	}
	return reg
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
