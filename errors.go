package wirevis

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned when a scene index does not refer to an instance.
var ErrIndexOutOfRange = errors.New("instance index out of range")

// TemplateLoadError reports a malformed template record: a missing field,
// a vertex with the wrong number of components, or undecodable JSON.
type TemplateLoadError struct {
	Path  string
	Field string
	Err   error
}

func (e *TemplateLoadError) Error() string {
	switch {
	case e.Path != "" && e.Field != "":
		return fmt.Sprintf("template %s: field %q: %v", e.Path, e.Field, e.Err)
	case e.Path != "":
		return fmt.Sprintf("template %s: %v", e.Path, e.Err)
	case e.Field != "":
		return fmt.Sprintf("template field %q: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("template: %v", e.Err)
}

func (e *TemplateLoadError) Unwrap() error {
	return e.Err
}

// TemplateReferenceError reports a render item (or edge) pointing at a vertex,
// edge or color that the template does not define.
type TemplateReferenceError struct {
	Template string
	Item     int
	Kind     string
	Index    int
	Color    string
}

func (e *TemplateReferenceError) Error() string {
	if e.Color != "" {
		return fmt.Sprintf("template %q: %s %d references unknown color %q", e.Template, e.Kind, e.Item, e.Color)
	}
	return fmt.Sprintf("template %q: %s %d references out of range index %d", e.Template, e.Kind, e.Item, e.Index)
}

// UnknownTemplateError is returned when instancing a name that was never loaded.
type UnknownTemplateError struct {
	Name string
}

func (e *UnknownTemplateError) Error() string {
	return fmt.Sprintf("unknown template %q", e.Name)
}
