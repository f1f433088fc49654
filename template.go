package wirevis

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// Dims is the number of components a template's vertices carry.
type Dims int

const (
	Dims2 Dims = 2
	Dims3 Dims = 3
)

// ItemKind is the closed set of primitives a render item can draw.
type ItemKind int

const (
	ItemPoint ItemKind = iota
	ItemLine
)

func (k ItemKind) String() string {
	switch k {
	case ItemPoint:
		return "point"
	case ItemLine:
		return "line"
	}
	return "unknown"
}

// RenderItem is one draw directive. Index is a vertex index for points and an
// edge index for lines.
type RenderItem struct {
	Kind  ItemKind
	Index int
	Color string
}

// Template is immutable shape data shared by every Instance created from it.
// All fields are unexported so an instance can read the geometry but never
// change it.
type Template struct {
	name     string
	dims     Dims
	vertices []mgl64.Vec3
	edges    [][2]int
	faces    [][]int
	colors   map[string]color.RGBA
	items    []RenderItem

	boundsMin mgl64.Vec3
	boundsMax mgl64.Vec3
}

func (t *Template) Name() string {
	return t.name
}

func (t *Template) Dims() Dims {
	return t.dims
}

func (t *Template) VertexCount() int {
	return len(t.vertices)
}

// Vertex returns the local-space vertex at i. 2D templates have a zero Z.
func (t *Template) Vertex(i int) (mgl64.Vec3, bool) {
	if i < 0 || i >= len(t.vertices) {
		return mgl64.Vec3{}, false
	}
	return t.vertices[i], true
}

func (t *Template) EdgeCount() int {
	return len(t.edges)
}

func (t *Template) Edge(i int) ([2]int, bool) {
	if i < 0 || i >= len(t.edges) {
		return [2]int{}, false
	}
	return t.edges[i], true
}

// Faces returns a copy of the face index lists. Faces are carried for
// completeness only and are never drawn.
func (t *Template) Faces() [][]int {
	out := make([][]int, len(t.faces))
	for i, f := range t.faces {
		out[i] = append([]int(nil), f...)
	}
	return out
}

func (t *Template) Color(name string) (color.RGBA, bool) {
	c, ok := t.colors[name]
	return c, ok
}

func (t *Template) ItemCount() int {
	return len(t.items)
}

func (t *Template) Item(i int) (RenderItem, bool) {
	if i < 0 || i >= len(t.items) {
		return RenderItem{}, false
	}
	return t.items[i], true
}

// Bounds returns the local axis aligned bounding box of the vertices.
func (t *Template) Bounds() (mgl64.Vec3, mgl64.Vec3) {
	return t.boundsMin, t.boundsMax
}

func (t *Template) calcBounds() {
	if len(t.vertices) == 0 {
		t.boundsMin, t.boundsMax = mgl64.Vec3{}, mgl64.Vec3{}
		return
	}
	minP, maxP := t.vertices[0], t.vertices[0]
	for _, v := range t.vertices[1:] {
		for a := 0; a < 3; a++ {
			if v[a] < minP[a] {
				minP[a] = v[a]
			}
			if v[a] > maxP[a] {
				maxP[a] = v[a]
			}
		}
	}
	t.boundsMin, t.boundsMax = minP, maxP
}
