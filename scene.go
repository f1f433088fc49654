package wirevis

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
)

// DebugCursorTemplate is instanced at the camera anchor while debug mode is on.
const DebugCursorTemplate = "debug_cursor"

// RenderStats summarizes one Render pass.
type RenderStats struct {
	Instances int
	// Rendered counts instances that were not culled and drew at least one
	// primitive.
	Rendered int
	Points   int
	Lines    int
	// Skipped counts instances dropped for the frame because of a bad reference.
	Skipped int
}

// Scene is the ordered list of instances plus the camera that views them.
type Scene struct {
	registry  *Registry
	camera    Camera
	instances []*Instance
	nextID    InstanceID
	log       *slog.Logger

	debug       bool
	debugCursor InstanceID
	hasCursor   bool
}

func NewScene(reg *Registry, cam Camera, log *slog.Logger) *Scene {
	if log == nil {
		log = slog.Default()
	}
	return &Scene{registry: reg, camera: cam, log: log, nextID: 1}
}

func (s *Scene) Camera() Camera {
	return s.camera
}

func (s *Scene) Registry() *Registry {
	return s.registry
}

// Add instances a template at pos and appends it.
func (s *Scene) Add(name string, pos mgl64.Vec3) (int, InstanceID, error) {
	in, err := s.registry.Instantiate(name, pos)
	if err != nil {
		return -1, 0, err
	}
	in.id = s.nextID
	s.nextID++
	s.instances = append(s.instances, in)
	return len(s.instances) - 1, in.id, nil
}

// Remove deletes the instance at index; later instances shift down by one.
func (s *Scene) Remove(index int) error {
	if index < 0 || index >= len(s.instances) {
		return fmt.Errorf("remove %d of %d: %w", index, len(s.instances), ErrIndexOutOfRange)
	}
	id := s.instances[index].id
	copy(s.instances[index:], s.instances[index+1:])
	s.instances[len(s.instances)-1] = nil
	s.instances = s.instances[:len(s.instances)-1]
	if s.hasCursor && id == s.debugCursor {
		s.hasCursor = false
	}
	return nil
}

func (s *Scene) RemoveID(id InstanceID) bool {
	i := s.IndexOf(id)
	if i < 0 {
		return false
	}
	return s.Remove(i) == nil
}

// IndexOf returns the current index of id, or -1.
func (s *Scene) IndexOf(id InstanceID) int {
	for i, in := range s.instances {
		if in.id == id {
			return i
		}
	}
	return -1
}

func (s *Scene) Instance(id InstanceID) (*Instance, bool) {
	if i := s.IndexOf(id); i >= 0 {
		return s.instances[i], true
	}
	return nil, false
}

func (s *Scene) At(index int) (*Instance, bool) {
	if index < 0 || index >= len(s.instances) {
		return nil, false
	}
	return s.instances[index], true
}

func (s *Scene) Len() int {
	return len(s.instances)
}

// Instances returns a copy of the instance list in draw order.
func (s *Scene) Instances() []*Instance {
	return append([]*Instance(nil), s.instances...)
}

func (s *Scene) Debug() bool {
	return s.debug
}

// DebugCursor returns the tracked cursor instance, if it still exists.
func (s *Scene) DebugCursor() (InstanceID, bool) {
	return s.debugCursor, s.hasCursor
}

// ToggleDebug flips debug mode. Turning it on adds a cursor instance at the
// camera anchor; turning it off removes that instance if it is still present.
func (s *Scene) ToggleDebug() bool {
	s.debug = !s.debug
	if s.debug {
		_, id, err := s.Add(DebugCursorTemplate, s.camera.Anchor())
		if err != nil {
			s.log.Warn("debug cursor unavailable", "err", err)
		} else {
			s.debugCursor, s.hasCursor = id, true
		}
		return s.debug
	}
	if s.hasCursor {
		s.RemoveID(s.debugCursor)
		s.hasCursor = false
	}
	return s.debug
}

// Update advances the camera then pins the debug cursor to its anchor.
func (s *Scene) Update(dt float64, in *InputState) {
	s.camera.Update(dt, in)
	if !s.debug || !s.hasCursor {
		return
	}
	if c, ok := s.Instance(s.debugCursor); ok {
		c.Position = s.camera.Anchor()
	}
}

// Render projects and draws every instance in list order. It does not change
// the scene.
func (s *Scene) Render(dst DrawSurface, vp Viewport) RenderStats {
	stats := RenderStats{Instances: len(s.instances)}
	culler, _ := s.camera.(Culler)

	var buf []primitive
	for _, in := range s.instances {
		if culler != nil {
			lo, hi := in.template.Bounds()
			if culler.Culled(lo.Add(in.Position), hi.Add(in.Position), vp) {
				continue
			}
		}
		var err error
		buf, err = s.collect(buf[:0], in, vp)
		if err != nil {
			stats.Skipped++
			s.log.Debug("instance skipped", "id", in.id, "template", in.template.Name(), "err", err)
			continue
		}
		if len(buf) == 0 {
			continue
		}
		stats.Rendered++
		for _, p := range buf {
			if p.line {
				dst.DrawLine(p.a, p.b, p.color, lineWidth)
				stats.Lines++
			} else {
				dst.DrawPoint(p.a, p.color, pointRadius)
				stats.Points++
			}
		}
	}

	if m, ok := s.camera.(Marker); ok {
		pos, c, r := m.Marker()
		if px, vis := s.camera.Project(pos, vp); vis {
			dst.DrawPoint(px, c, r)
		}
	}
	return stats
}
