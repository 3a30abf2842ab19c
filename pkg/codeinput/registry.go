package codeinput

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/goliatone/go-codeinput/pkg/dom"
)

var (
	// ErrNilTemplate is returned when Register receives a nil template.
	ErrNilTemplate = errors.New("codeinput: template is nil")
)

// templateRef names a template. The zero value is the unnamed reference used
// before any default exists, which keeps "no name" apart from "".
type templateRef struct {
	name  string
	named bool
}

func named(name string) templateRef {
	return templateRef{name: name, named: true}
}

func (r templateRef) String() string {
	if !r.named {
		return "<unnamed>"
	}
	return fmt.Sprintf("%q", r.name)
}

// Registry stores named templates and the queue of instances waiting for a
// template that has not been registered yet. The first registered name
// becomes the default for instances without a template attribute.
type Registry struct {
	mu         sync.Mutex
	templates  map[string]*Template
	defaultRef templateRef
	queue      map[templateRef][]*Instance
	logger     *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used by the registry and its instances.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRegistry creates an empty registry with no default template.
func NewRegistry(opts ...Option) *Registry {
	reg := &Registry{
		templates: make(map[string]*Template),
		queue:     make(map[templateRef][]*Instance),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(reg)
		}
	}
	return reg
}

// Register stores tpl under name, replacing any previous template with that
// name. Instances queued for name are set up in the order they were queued.
// When no default exists yet, name becomes the default and instances that
// asked for no template are set up with tpl as well.
func (r *Registry) Register(name string, tpl *Template) error {
	if tpl == nil {
		return fmt.Errorf("%w: %q", ErrNilTemplate, name)
	}

	r.mu.Lock()
	r.templates[name] = tpl
	waiting := r.take(named(name))
	if !r.defaultRef.named {
		r.defaultRef = named(name)
		waiting = append(waiting, r.take(templateRef{})...)
	}
	r.mu.Unlock()

	r.logger.Debug("template registered", "template", name, "flushed", len(waiting))
	for _, inst := range waiting {
		inst.templateAvailable(tpl)
	}
	return nil
}

// MustRegister mirrors Register but panics on error.
func (r *Registry) MustRegister(name string, tpl *Template) {
	if err := r.Register(name, tpl); err != nil {
		panic(err)
	}
}

// Resolve returns the template inst should use. When it is not registered
// yet, inst is queued under the requested name, or under the unnamed bucket
// when it requested none and no default exists, and ok is false.
func (r *Registry) Resolve(inst *Instance) (*Template, bool) {
	requested, hasAttr := inst.host.Attribute(AttrTemplate)

	r.mu.Lock()
	defer r.mu.Unlock()

	ref := r.defaultRef
	if hasAttr {
		ref = named(requested)
	}
	if ref.named {
		if tpl, ok := r.templates[ref.name]; ok {
			return tpl, true
		}
	}

	r.forget(inst)
	r.queue[ref] = append(r.queue[ref], inst)
	r.logger.Debug("instance queued", "template", ref.String(), "position", len(r.queue[ref]))
	return nil, false
}

// Lookup returns the template registered under name. An empty name falls
// back to the default template.
func (r *Registry) Lookup(name string) (*Template, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if name == "" {
		if !r.defaultRef.named {
			return nil, false
		}
		name = r.defaultRef.name
	}
	tpl, ok := r.templates[name]
	return tpl, ok
}

// Default returns the default template name and whether one is set.
func (r *Registry) Default() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.defaultRef.name, r.defaultRef.named
}

// Names returns the sorted registered template names.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Pending returns the number of instances waiting for name.
func (r *Registry) Pending(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queue[named(name)])
}

// PendingUnnamed returns the number of instances waiting for a default.
func (r *Registry) PendingUnnamed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queue[templateRef{}])
}

// Forget removes inst from whichever queue bucket holds it.
func (r *Registry) Forget(inst *Instance) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.forget(inst)
}

// Logger returns the logger shared with instances.
func (r *Registry) Logger() *slog.Logger {
	return r.logger
}

// NewInstance wraps host as a widget instance bound to this registry. The
// instance stays inert until Attach.
func (r *Registry) NewInstance(host *dom.Element) *Instance {
	return newInstance(r, host)
}

func (r *Registry) take(ref templateRef) []*Instance {
	waiting := r.queue[ref]
	delete(r.queue, ref)
	return waiting
}

func (r *Registry) forget(inst *Instance) {
	for ref, waiting := range r.queue {
		idx := slices.Index(waiting, inst)
		if idx < 0 {
			continue
		}
		waiting = slices.Delete(waiting, idx, idx+1)
		if len(waiting) == 0 {
			delete(r.queue, ref)
		} else {
			r.queue[ref] = waiting
		}
		return
	}
}
