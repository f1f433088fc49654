package wirevis

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/go-gl/mathgl/mgl64"
)

// TemplateRecord is the on-disk shape of one template file.
type TemplateRecord struct {
	Name     string           `json:"name"`
	Vertices [][]float64      `json:"vertices"`
	Edges    [][]int          `json:"edges"`
	Faces    [][]int          `json:"faces,omitempty"`
	Colors   map[string][]int `json:"colors"`
	Render   []RenderRecord   `json:"render"`
}

// RenderRecord is one entry of a record's render list.
type RenderRecord struct {
	Type  string `json:"type"`
	Pos   *int   `json:"pos"`
	Color string `json:"color"`
}

var errMissing = errors.New("missing required field")

// ParseTemplate decodes a single JSON template record from r and validates it.
func ParseTemplate(r io.Reader, dims Dims) (*Template, error) {
	var rec TemplateRecord
	dec := json.NewDecoder(r)
	if err := dec.Decode(&rec); err != nil {
		return nil, &TemplateLoadError{Err: fmt.Errorf("decoding record: %w", err)}
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, &TemplateLoadError{Err: errors.New("trailing data after record")}
	}
	return NewTemplate(rec, dims)
}

// NewTemplate validates rec and builds the immutable template from it.
func NewTemplate(rec TemplateRecord, dims Dims) (*Template, error) {
	if dims != Dims2 && dims != Dims3 {
		return nil, &TemplateLoadError{Field: "vertices", Err: fmt.Errorf("unsupported dimension %d", dims)}
	}
	switch {
	case rec.Name == "":
		return nil, &TemplateLoadError{Field: "name", Err: errMissing}
	case rec.Vertices == nil:
		return nil, &TemplateLoadError{Field: "vertices", Err: errMissing}
	case rec.Edges == nil:
		return nil, &TemplateLoadError{Field: "edges", Err: errMissing}
	case rec.Colors == nil:
		return nil, &TemplateLoadError{Field: "colors", Err: errMissing}
	case rec.Render == nil:
		return nil, &TemplateLoadError{Field: "render", Err: errMissing}
	}

	t := &Template{
		name:     rec.Name,
		dims:     dims,
		vertices: make([]mgl64.Vec3, len(rec.Vertices)),
		edges:    make([][2]int, len(rec.Edges)),
		colors:   make(map[string]color.RGBA, len(rec.Colors)),
		items:    make([]RenderItem, len(rec.Render)),
	}

	for i, v := range rec.Vertices {
		if len(v) != int(dims) {
			return nil, &TemplateLoadError{
				Field: "vertices",
				Err:   fmt.Errorf("vertex %d has %d components, want %d", i, len(v), dims),
			}
		}
		copy(t.vertices[i][:], v)
	}

	for i, e := range rec.Edges {
		if len(e) != 2 {
			return nil, &TemplateLoadError{Field: "edges", Err: fmt.Errorf("edge %d has %d indices, want 2", i, len(e))}
		}
		for _, idx := range e {
			if idx < 0 || idx >= len(t.vertices) {
				return nil, &TemplateReferenceError{Template: t.name, Item: i, Kind: "edge", Index: idx}
			}
		}
		t.edges[i] = [2]int{e[0], e[1]}
	}

	if dims == Dims3 && len(rec.Faces) > 0 {
		t.faces = make([][]int, len(rec.Faces))
		for i, f := range rec.Faces {
			if len(f) < 3 {
				return nil, &TemplateLoadError{Field: "faces", Err: fmt.Errorf("face %d has %d indices, want at least 3", i, len(f))}
			}
			for _, idx := range f {
				if idx < 0 || idx >= len(t.vertices) {
					return nil, &TemplateReferenceError{Template: t.name, Item: i, Kind: "face", Index: idx}
				}
			}
			t.faces[i] = append([]int(nil), f...)
		}
	}

	for name, rgb := range rec.Colors {
		c, err := parseRGB(rgb)
		if err != nil {
			return nil, &TemplateLoadError{Field: "colors", Err: fmt.Errorf("color %q: %w", name, err)}
		}
		t.colors[name] = c
	}

	for i, r := range rec.Render {
		item, err := t.newRenderItem(i, r)
		if err != nil {
			return nil, err
		}
		t.items[i] = item
	}

	t.calcBounds()
	return t, nil
}

func (t *Template) newRenderItem(i int, r RenderRecord) (RenderItem, error) {
	var kind ItemKind
	switch r.Type {
	case "point":
		kind = ItemPoint
	case "line":
		kind = ItemLine
	case "":
		return RenderItem{}, &TemplateLoadError{Field: "render", Err: fmt.Errorf("item %d: missing type", i)}
	default:
		return RenderItem{}, &TemplateLoadError{Field: "render", Err: fmt.Errorf("item %d: unknown type %q", i, r.Type)}
	}
	if r.Pos == nil {
		return RenderItem{}, &TemplateLoadError{Field: "render", Err: fmt.Errorf("item %d: missing pos", i)}
	}

	limit := len(t.vertices)
	if kind == ItemLine {
		limit = len(t.edges)
	}
	if *r.Pos < 0 || *r.Pos >= limit {
		return RenderItem{}, &TemplateReferenceError{Template: t.name, Item: i, Kind: kind.String(), Index: *r.Pos}
	}
	if _, ok := t.colors[r.Color]; !ok {
		return RenderItem{}, &TemplateReferenceError{Template: t.name, Item: i, Kind: kind.String(), Color: r.Color}
	}
	return RenderItem{Kind: kind, Index: *r.Pos, Color: r.Color}, nil
}

func parseRGB(rgb []int) (color.RGBA, error) {
	if len(rgb) != 3 {
		return color.RGBA{}, fmt.Errorf("has %d components, want 3", len(rgb))
	}
	for _, c := range rgb {
		if c < 0 || c > 255 {
			return color.RGBA{}, fmt.Errorf("component %d outside 0..255", c)
		}
	}
	return color.RGBA{R: uint8(rgb[0]), G: uint8(rgb[1]), B: uint8(rgb[2]), A: 255}, nil
}
