package wirevis

import "github.com/go-gl/mathgl/mgl64"

// InstanceID identifies an instance for the lifetime of its scene. IDs are
// never reused.
type InstanceID uint64

// Instance is one placed copy of a template. It only owns its position; the
// geometry is read through the shared template.
type Instance struct {
	id       InstanceID
	template *Template

	Position mgl64.Vec3
}

func (in *Instance) ID() InstanceID {
	return in.id
}

func (in *Instance) Template() *Template {
	return in.template
}

// WorldVertex returns vertex i offset by the instance position.
func (in *Instance) WorldVertex(i int) (mgl64.Vec3, bool) {
	v, ok := in.template.Vertex(i)
	if !ok {
		return mgl64.Vec3{}, false
	}
	return v.Add(in.Position), true
}
