package wirevis

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

const DefaultTemplateExt = ".obj"

// Registry holds every loaded template keyed by name.
type Registry struct {
	dir    string
	ext    string
	dims   Dims
	strict bool
	log    *slog.Logger

	templates map[string]*Template
	sources   map[string]string
}

type RegistryOption func(*Registry)

// WithExtension changes the file extension scanned for records.
func WithExtension(ext string) RegistryOption {
	return func(r *Registry) {
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if ext != "" {
			r.ext = ext
		}
	}
}

// WithLenient makes Load keep whatever loaded even when some files fail.
func WithLenient() RegistryOption {
	return func(r *Registry) {
		r.strict = false
	}
}

func WithLogger(l *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

func NewRegistry(dir string, dims Dims, opts ...RegistryOption) *Registry {
	r := &Registry{
		dir:       dir,
		ext:       DefaultTemplateExt,
		dims:      dims,
		strict:    true,
		log:       slog.Default(),
		templates: map[string]*Template{},
		sources:   map[string]string{},
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *Registry) Dir() string {
	return r.dir
}

func (r *Registry) Dims() Dims {
	return r.dims
}

// Load scans the directory and replaces the registry contents. Every bad file
// contributes one error to the joined result. In strict mode any error leaves
// the registry untouched; otherwise the good files are kept.
func (r *Registry) Load() error {
	templates, sources, err := r.scan()
	if templates == nil || (err != nil && r.strict) {
		return err
	}
	r.templates, r.sources = templates, sources
	return err
}

// Reload re-reads the directory with per-file isolation regardless of the
// strict setting. Templates whose file now fails are dropped. Instances that
// already point at an old template keep it.
func (r *Registry) Reload() error {
	templates, sources, err := r.scan()
	if templates == nil {
		// directory unreadable, keep what we have
		return err
	}
	for name := range r.templates {
		if _, ok := templates[name]; !ok {
			r.log.Warn("template dropped on reload", "name", name, "path", r.sources[name])
		}
	}
	r.templates, r.sources = templates, sources
	return err
}

func (r *Registry) scan() (map[string]*Template, map[string]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, nil, fmt.Errorf("reading template dir %s: %w", r.dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), r.ext) {
			continue
		}
		paths = append(paths, filepath.Join(r.dir, e.Name()))
	}
	sort.Strings(paths)

	templates := make(map[string]*Template, len(paths))
	sources := make(map[string]string, len(paths))
	var errs []error
	for _, p := range paths {
		t, err := r.loadFile(p)
		if err != nil {
			r.log.Debug("template load failed", "path", p, "err", err)
			errs = append(errs, err)
			continue
		}
		if prev, dup := sources[t.Name()]; dup {
			r.log.Warn("duplicate template name, later file wins", "name", t.Name(), "previous", prev, "path", p)
		}
		templates[t.Name()] = t
		sources[t.Name()] = p
	}
	r.log.Info("templates loaded", "dir", r.dir, "count", len(templates), "failed", len(errs))
	return templates, sources, errors.Join(errs...)
}

func (r *Registry) loadFile(path string) (*Template, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &TemplateLoadError{Path: path, Err: err}
	}
	defer f.Close()

	t, err := ParseTemplate(f, r.dims)
	if err != nil {
		var le *TemplateLoadError
		if errors.As(err, &le) {
			le.Path = path
			return nil, le
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Add registers a template directly, bypassing the filesystem.
func (r *Registry) Add(t *Template) {
	r.templates[t.Name()] = t
	r.sources[t.Name()] = ""
}

func (r *Registry) Get(name string) (*Template, bool) {
	t, ok := r.templates[name]
	return t, ok
}

// Source returns the file a template was read from.
func (r *Registry) Source(name string) (string, bool) {
	p, ok := r.sources[name]
	return p, ok
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.templates))
	for n := range r.templates {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Len() int {
	return len(r.templates)
}

// Instantiate creates an unattached instance of the named template. The
// returned instance has no ID until a Scene adopts it.
func (r *Registry) Instantiate(name string, pos mgl64.Vec3) (*Instance, error) {
	t, ok := r.templates[name]
	if !ok {
		return nil, &UnknownTemplateError{Name: name}
	}
	return &Instance{template: t, Position: pos}, nil
}

// ValidateDir loads every record under dir and reports per-file results in
// lexical path order. It never touches a registry.
func ValidateDir(dir, ext string, dims Dims) ([]FileResult, error) {
	if ext == "" {
		ext = DefaultTemplateExt
	}
	var results []FileResult
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ext) {
			return nil
		}
		res := FileResult{Path: path}
		f, err := os.Open(path)
		if err != nil {
			res.Err = err
		} else {
			t, perr := ParseTemplate(f, dims)
			f.Close()
			if perr != nil {
				res.Err = perr
			} else {
				res.Name = t.Name()
				res.Items = t.ItemCount()
			}
		}
		results = append(results, res)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	return results, nil
}

// FileResult is one line of a validation report.
type FileResult struct {
	Path  string
	Name  string
	Items int
	Err   error
}
