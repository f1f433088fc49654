package wirevis

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// primitive is one projected, visible draw call waiting to be issued.
type primitive struct {
	line  bool
	a, b  mgl64.Vec2
	color color.RGBA
}

// collect projects every render item of in and appends the visible ones to
// buf. A reference the template cannot resolve aborts the whole instance.
func (s *Scene) collect(buf []primitive, in *Instance, vp Viewport) ([]primitive, error) {
	t := in.template
	for i := 0; i < t.ItemCount(); i++ {
		item, _ := t.Item(i)
		c, ok := t.Color(item.Color)
		if !ok {
			return buf, &TemplateReferenceError{Template: t.Name(), Item: i, Kind: item.Kind.String(), Color: item.Color}
		}

		switch item.Kind {
		case ItemPoint:
			v, ok := in.WorldVertex(item.Index)
			if !ok {
				return buf, &TemplateReferenceError{Template: t.Name(), Item: i, Kind: "point", Index: item.Index}
			}
			if px, vis := s.camera.Project(v, vp); vis {
				buf = append(buf, primitive{a: px, color: c})
			}
		case ItemLine:
			e, ok := t.Edge(item.Index)
			if !ok {
				return buf, &TemplateReferenceError{Template: t.Name(), Item: i, Kind: "line", Index: item.Index}
			}
			va, okA := in.WorldVertex(e[0])
			vb, okB := in.WorldVertex(e[1])
			if !okA || !okB {
				return buf, &TemplateReferenceError{Template: t.Name(), Item: i, Kind: "edge", Index: item.Index}
			}
			pa, visA := s.camera.Project(va, vp)
			pb, visB := s.camera.Project(vb, vp)
			// no clipping: both ends must be on screen
			if visA && visB {
				buf = append(buf, primitive{line: true, a: pa, b: pb, color: c})
			}
		default:
			return buf, fmt.Errorf("item %d: unknown kind %d", i, item.Kind)
		}
	}
	return buf, nil
}
