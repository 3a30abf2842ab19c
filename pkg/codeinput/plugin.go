package codeinput

// Hook identifies a lifecycle stage plugins may observe.
type Hook int

const (
	HookBeforeHighlight Hook = iota
	HookAfterHighlight
	HookBeforeElementsAdded
	HookAfterElementsAdded
	HookAttributeChanged
)

// String returns the hook name used in logs.
func (h Hook) String() string {
	switch h {
	case HookBeforeHighlight:
		return "beforeHighlight"
	case HookAfterHighlight:
		return "afterHighlight"
	case HookBeforeElementsAdded:
		return "beforeElementsAdded"
	case HookAfterElementsAdded:
		return "afterElementsAdded"
	case HookAttributeChanged:
		return "attributeChanged"
	default:
		return "unknown"
	}
}

// Plugin is the base contract every plugin satisfies. Lifecycle hooks are
// separate optional interfaces; a plugin implements only the ones it needs.
type Plugin interface {
	// ObservedAttributes lists extra instance attributes whose changes should
	// reach AttributeChanged.
	ObservedAttributes() []string
}

// BeforeHighlighter runs after the escaped text is placed in the overlay and
// before the template render function.
type BeforeHighlighter interface {
	BeforeHighlight(inst *Instance)
}

// AfterHighlighter runs after the template render function.
type AfterHighlighter interface {
	AfterHighlight(inst *Instance)
}

// BeforeElementsAdder runs before setup builds the surfaces.
type BeforeElementsAdder interface {
	BeforeElementsAdded(inst *Instance)
}

// AfterElementsAdder runs once the surfaces exist, before the first render.
type AfterElementsAdder interface {
	AfterElementsAdded(inst *Instance)
}

// AttributeChangeHandler receives changes of observed attributes that have no
// built-in reaction.
type AttributeChangeHandler interface {
	AttributeChanged(inst *Instance, name, oldValue, newValue string)
}

// HookFilter lets a plugin that satisfies a hook interface statically opt out
// of individual hooks at dispatch time.
type HookFilter interface {
	Handles(hook Hook) bool
}

// PluginFuncs adapts plain functions into a plugin. Nil fields are treated as
// hooks the plugin does not implement.
type PluginFuncs struct {
	Attributes            []string
	OnBeforeHighlight     func(inst *Instance)
	OnAfterHighlight      func(inst *Instance)
	OnBeforeElementsAdded func(inst *Instance)
	OnAfterElementsAdded  func(inst *Instance)
	OnAttributeChanged    func(inst *Instance, name, oldValue, newValue string)
}

func (p PluginFuncs) ObservedAttributes() []string { return p.Attributes }

func (p PluginFuncs) Handles(hook Hook) bool {
	switch hook {
	case HookBeforeHighlight:
		return p.OnBeforeHighlight != nil
	case HookAfterHighlight:
		return p.OnAfterHighlight != nil
	case HookBeforeElementsAdded:
		return p.OnBeforeElementsAdded != nil
	case HookAfterElementsAdded:
		return p.OnAfterElementsAdded != nil
	case HookAttributeChanged:
		return p.OnAttributeChanged != nil
	}
	return false
}

func (p PluginFuncs) BeforeHighlight(inst *Instance) { p.OnBeforeHighlight(inst) }

func (p PluginFuncs) AfterHighlight(inst *Instance) { p.OnAfterHighlight(inst) }

func (p PluginFuncs) BeforeElementsAdded(inst *Instance) { p.OnBeforeElementsAdded(inst) }

func (p PluginFuncs) AfterElementsAdded(inst *Instance) { p.OnAfterElementsAdded(inst) }

func (p PluginFuncs) AttributeChanged(inst *Instance, name, oldValue, newValue string) {
	p.OnAttributeChanged(inst, name, oldValue, newValue)
}

// Implements reports whether plugin handles hook.
func Implements(plugin Plugin, hook Hook) bool {
	if plugin == nil {
		return false
	}
	if filter, ok := plugin.(HookFilter); ok && !filter.Handles(hook) {
		return false
	}
	switch hook {
	case HookBeforeHighlight:
		_, ok := plugin.(BeforeHighlighter)
		return ok
	case HookAfterHighlight:
		_, ok := plugin.(AfterHighlighter)
		return ok
	case HookBeforeElementsAdded:
		_, ok := plugin.(BeforeElementsAdder)
		return ok
	case HookAfterElementsAdded:
		_, ok := plugin.(AfterElementsAdder)
		return ok
	case HookAttributeChanged:
		_, ok := plugin.(AttributeChangeHandler)
		return ok
	}
	return false
}

// Dispatch invokes hook on every plugin of the instance's current template,
// in template order. Plugins that do not implement the hook are skipped. For
// HookAttributeChanged args carries the attribute name, old and new value.
func (in *Instance) Dispatch(hook Hook, args ...string) {
	if in.template == nil {
		return
	}
	for _, plugin := range in.template.plugins {
		if !Implements(plugin, hook) {
			continue
		}
		switch hook {
		case HookBeforeHighlight:
			plugin.(BeforeHighlighter).BeforeHighlight(in)
		case HookAfterHighlight:
			plugin.(AfterHighlighter).AfterHighlight(in)
		case HookBeforeElementsAdded:
			plugin.(BeforeElementsAdder).BeforeElementsAdded(in)
		case HookAfterElementsAdded:
			plugin.(AfterElementsAdder).AfterElementsAdded(in)
		case HookAttributeChanged:
			plugin.(AttributeChangeHandler).AttributeChanged(in, argAt(args, 0), argAt(args, 1), argAt(args, 2))
		}
	}
}

func argAt(args []string, idx int) string {
	if idx < len(args) {
		return args[idx]
	}
	return ""
}
