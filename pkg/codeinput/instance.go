package codeinput

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/goliatone/go-codeinput/pkg/dom"
)

// Attribute names with built-in reactions.
const (
	AttrValue       = "value"
	AttrPlaceholder = "placeholder"
	AttrLang        = "lang"
	AttrTemplate    = "template"
	AttrName        = "name"
)

// Presentation classes maintained on the host and overlay.
const (
	ClassRegistered       = "code-input_registered"
	ClassPreOverlayStyled = "code-input_pre-element-styled"
	ClassNoLanguage       = "language-none"
	languageClassPrefix   = "language-"
)

var baseObservedAttributes = []string{AttrValue, AttrPlaceholder, AttrLang, AttrTemplate}

// State is the lifecycle position of an instance.
type State int

const (
	StateUnattached State = iota
	StateAwaitingTemplate
	StateReady
	StateDetached
)

func (s State) String() string {
	switch s {
	case StateUnattached:
		return "unattached"
	case StateAwaitingTemplate:
		return "awaiting-template"
	case StateReady:
		return "ready"
	case StateDetached:
		return "detached"
	default:
		return "unknown"
	}
}

type mutation struct {
	name     string
	oldValue string
	newValue string
}

// Instance is one code-input widget bound to a host element. Instances are not
// safe for concurrent use.
type Instance struct {
	registry *Registry
	logger   *slog.Logger

	host    *dom.Element
	surface *dom.Element
	overlay *dom.Element
	code    *dom.Element

	template *Template
	state    State

	pending  []mutation
	reacting bool
}

func newInstance(reg *Registry, host *dom.Element) *Instance {
	if host == nil {
		host = dom.NewElement("code-input")
	}
	return &Instance{
		registry: reg,
		logger:   reg.logger,
		host:     host,
	}
}

// LanguageClass returns the overlay class for lang. Language tags are case
// insensitive.
func LanguageClass(lang string) string {
	return languageClassPrefix + strings.ToLower(lang)
}

// Attach resolves the template and builds the surfaces when it is available.
// Otherwise the instance waits in the registry queue until the template is
// registered. Attach is a no-op on instances that are already attached.
func (in *Instance) Attach() {
	in.react(func() {
		if in.state != StateUnattached {
			return
		}
		in.state = StateAwaitingTemplate
		tpl, ok := in.registry.Resolve(in)
		if !ok {
			return
		}
		in.template = tpl
		in.setup()
	})
}

// Detach ends the instance lifetime. A queued instance is dropped from the
// registry queue; later calls have no effect.
func (in *Instance) Detach() {
	if in.state == StateDetached {
		return
	}
	if in.state == StateAwaitingTemplate {
		in.registry.Forget(in)
	}
	in.state = StateDetached
	in.pending = nil
	in.logger.Debug("instance detached")
}

func (in *Instance) templateAvailable(tpl *Template) {
	in.react(func() {
		if in.state != StateAwaitingTemplate {
			return
		}
		in.template = tpl
		in.setup()
	})
}

func (in *Instance) setup() {
	tpl := in.template
	in.host.AddClass(ClassRegistered)
	if tpl.PreOverlayStyled() {
		in.host.AddClass(ClassPreOverlayStyled)
	}

	in.Dispatch(HookBeforeElementsAdded)

	lang := in.host.GetAttribute(AttrLang)
	placeholder := in.host.GetAttribute(AttrPlaceholder)
	if placeholder == "" {
		placeholder = lang
	}
	value := in.host.GetAttribute(AttrValue)
	if value == "" {
		value = in.host.TextContent()
	}

	in.host.Clear()

	surface := dom.NewElement("textarea")
	surface.SetPlaceholder(placeholder)
	surface.SetValue(value)
	surface.SetAttribute("spellcheck", "false")
	if name := in.host.GetAttribute(AttrName); name != "" {
		surface.SetAttribute(AttrName, name)
		in.host.RemoveAttribute(AttrName)
	}
	in.host.Append(surface)

	code := dom.NewElement("code")
	overlay := dom.NewElement("pre")
	overlay.SetAttribute("aria-hidden", "true")
	overlay.Append(code)
	in.host.Append(overlay)

	if tpl.IsCode() && lang != "" {
		code.AddClass(LanguageClass(lang))
	}

	in.surface, in.overlay, in.code = surface, overlay, code

	in.Dispatch(HookAfterElementsAdded)

	in.render(value)
	in.state = StateReady
	in.logger.Debug("instance ready", "lang", lang, "length", len(value))
}

// SetAttribute updates a host attribute as the host platform would, reacting
// to it when the attribute is observed.
func (in *Instance) SetAttribute(name, value string) {
	in.react(func() {
		in.setHostAttribute(name, value)
	})
}

// RemoveAttribute removes a host attribute; observers see an empty new value.
func (in *Instance) RemoveAttribute(name string) {
	in.react(func() {
		old, existed := in.host.RemoveAttribute(name)
		if existed {
			in.notify(name, old, "")
		}
	})
}

func (in *Instance) setHostAttribute(name, value string) {
	old, _ := in.host.SetAttribute(name, value)
	in.notify(name, old, value)
}

func (in *Instance) notify(name, oldValue, newValue string) {
	name = strings.ToLower(name)
	if !slices.Contains(in.ObservedAttributes(), name) {
		return
	}
	in.pending = append(in.pending, mutation{name: name, oldValue: oldValue, newValue: newValue})
}

// react runs fn and then drains attribute mutations raised meanwhile, one
// reaction at a time. Nested calls run inline and leave draining to the
// outermost call.
func (in *Instance) react(fn func()) {
	if in.reacting {
		fn()
		return
	}
	in.reacting = true
	defer func() { in.reacting = false }()

	fn()
	for len(in.pending) > 0 {
		next := in.pending[0]
		in.pending = in.pending[1:]
		in.attributeChanged(next)
	}
}

// ObservedAttributes lists the attributes whose changes reach the instance:
// the built-in set plus those declared by the current template's plugins.
func (in *Instance) ObservedAttributes() []string {
	names := slices.Clone(baseObservedAttributes)
	if in.template == nil {
		return names
	}
	for _, name := range in.template.ObservedAttributes() {
		name = strings.ToLower(name)
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	return names
}

// Attribute returns a host attribute, or an empty string when absent.
func (in *Instance) Attribute(name string) string {
	return in.host.GetAttribute(name)
}

// Value returns the value attribute.
func (in *Instance) Value() string {
	return in.host.GetAttribute(AttrValue)
}

// SetValue sets the value attribute.
func (in *Instance) SetValue(value string) {
	in.SetAttribute(AttrValue, value)
}

// Placeholder returns the placeholder attribute.
func (in *Instance) Placeholder() string {
	return in.host.GetAttribute(AttrPlaceholder)
}

// SetPlaceholder sets the placeholder attribute.
func (in *Instance) SetPlaceholder(value string) {
	in.SetAttribute(AttrPlaceholder, value)
}

// Lang returns the lower-cased lang attribute.
func (in *Instance) Lang() string {
	return strings.ToLower(in.host.GetAttribute(AttrLang))
}

// State reports the lifecycle state.
func (in *Instance) State() State { return in.state }

// Template returns the template in use, or nil before setup.
func (in *Instance) Template() *Template { return in.template }

// Registry returns the registry the instance resolves templates from.
func (in *Instance) Registry() *Registry { return in.registry }

// Host returns the host element.
func (in *Instance) Host() *dom.Element { return in.host }

// Surface returns the editable surface, or nil before setup.
func (in *Instance) Surface() *dom.Element { return in.surface }

// Overlay returns the innermost overlay node, or nil before setup.
func (in *Instance) Overlay() *dom.Element { return in.code }

// OverlayContainer returns the element wrapping the overlay, or nil before
// setup.
func (in *Instance) OverlayContainer() *dom.Element { return in.overlay }

// Logger returns the instance logger.
func (in *Instance) Logger() *slog.Logger { return in.logger }
