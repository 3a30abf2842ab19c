package codeinput

import (
	"maps"
	"slices"

	"github.com/goliatone/go-codeinput/pkg/dom"
)

// RenderFunc produces the final overlay markup. overlay is the innermost
// overlay node holding the escaped text; inst is nil unless the template was
// built with WithInstanceInRender.
type RenderFunc func(overlay *dom.Element, inst *Instance)

// Template describes how an instance renders its overlay. Templates are
// immutable once built and shared read-only by every instance using them.
type Template struct {
	render           RenderFunc
	includeInstance  bool
	preOverlayStyled bool
	isCode           bool
	plugins          []Plugin
	extras           map[string]any
}

// TemplateOption configures a Template during NewTemplate.
type TemplateOption func(*Template)

// NewTemplate builds a template around render. A nil render leaves the
// escaped text in place.
func NewTemplate(render RenderFunc, opts ...TemplateOption) *Template {
	tpl := &Template{render: render}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(tpl)
	}
	return tpl
}

// WithInstanceInRender passes the instance to the render function.
func WithInstanceInRender(enabled bool) TemplateOption {
	return func(t *Template) {
		t.includeInstance = enabled
	}
}

// WithPreOverlayStyled makes the overlay container, rather than the innermost
// node, the presentation and scroll target.
func WithPreOverlayStyled(enabled bool) TemplateOption {
	return func(t *Template) {
		t.preOverlayStyled = enabled
	}
}

// WithCode enables language class annotation.
func WithCode(enabled bool) TemplateOption {
	return func(t *Template) {
		t.isCode = enabled
	}
}

// WithPlugins appends plugins in dispatch order. Nil entries are dropped.
func WithPlugins(plugins ...Plugin) TemplateOption {
	return func(t *Template) {
		for _, plugin := range plugins {
			if plugin != nil {
				t.plugins = append(t.plugins, plugin)
			}
		}
	}
}

// WithExtra stores template specific configuration alongside the flags.
func WithExtra(key string, value any) TemplateOption {
	return func(t *Template) {
		if t.extras == nil {
			t.extras = make(map[string]any)
		}
		t.extras[key] = value
	}
}

// IncludesInstance reports whether the render function receives the instance.
func (t *Template) IncludesInstance() bool { return t.includeInstance }

// PreOverlayStyled reports whether the overlay container is the styling and
// scroll target.
func (t *Template) PreOverlayStyled() bool { return t.preOverlayStyled }

// IsCode reports whether language classes apply.
func (t *Template) IsCode() bool { return t.isCode }

// Plugins returns a copy of the plugin list in dispatch order.
func (t *Template) Plugins() []Plugin {
	return slices.Clone(t.plugins)
}

// Extra returns a template specific configuration value.
func (t *Template) Extra(key string) (any, bool) {
	value, ok := t.extras[key]
	return value, ok
}

// Extras returns a copy of every template specific configuration value.
func (t *Template) Extras() map[string]any {
	return maps.Clone(t.extras)
}

// ObservedAttributes lists attribute names declared by the template plugins.
func (t *Template) ObservedAttributes() []string {
	var names []string
	for _, plugin := range t.plugins {
		for _, name := range plugin.ObservedAttributes() {
			if name == "" || slices.Contains(names, name) {
				continue
			}
			names = append(names, name)
		}
	}
	return names
}

// Highlight runs the render function against overlay.
func (t *Template) Highlight(overlay *dom.Element, inst *Instance) {
	if t.render == nil {
		return
	}
	if t.includeInstance {
		t.render(overlay, inst)
		return
	}
	t.render(overlay, nil)
}
