package codeinput

import (
	"strings"

	"github.com/goliatone/go-codeinput/pkg/dom"
)

// effect is one built-in reaction to an attribute mutation.
type effect int

const (
	effectRender effect = iota
	effectPlaceholder
	effectTemplate
	effectLanguage
	effectPluginHook
)

// attributeEffects lists, per attribute, the reactions a mutation triggers in
// order. A template change always re-applies the language classes as well.
// Attributes missing from the table are forwarded to plugins.
var attributeEffects = map[string][]effect{
	AttrValue:       {effectRender},
	AttrPlaceholder: {effectPlaceholder},
	// The language step after a template change re-applies the current lang
	// as both old and new value; the template values are not used.
	AttrTemplate: {effectTemplate, effectLanguage},
	AttrLang:     {effectLanguage},
}

var pluginOnly = []effect{effectPluginHook}

func effectsFor(name string) []effect {
	if effects, ok := attributeEffects[name]; ok {
		return effects
	}
	return pluginOnly
}

func (in *Instance) attributeChanged(m mutation) {
	// Hosts may report mutations before the surfaces exist.
	if in.state != StateReady {
		return
	}
	for _, eff := range effectsFor(m.name) {
		switch eff {
		case effectRender:
			in.render(m.newValue)
		case effectPlaceholder:
			in.surface.SetPlaceholder(m.newValue)
		case effectTemplate:
			in.switchTemplate(m.newValue)
		case effectLanguage:
			if m.name == AttrLang {
				in.swapLanguage(m.oldValue, m.newValue)
				continue
			}
			lang := in.host.GetAttribute(AttrLang)
			in.swapLanguage(lang, lang)
		case effectPluginHook:
			in.Dispatch(HookAttributeChanged, m.name, m.oldValue, m.newValue)
		}
	}
}

func (in *Instance) switchTemplate(name string) {
	if tpl, ok := in.registry.Lookup(name); ok {
		in.template = tpl
	} else {
		in.logger.Warn("template not registered, keeping current", "template", name)
	}
	in.host.ToggleClass(ClassPreOverlayStyled, in.template.PreOverlayStyled())
	in.render(in.Value())
}

func (in *Instance) swapLanguage(oldLang, newLang string) {
	oldClass := LanguageClass(oldLang)
	for _, el := range []*dom.Element{in.code, in.overlay} {
		el.RemoveClass(oldClass, ClassNoLanguage)
	}
	if newLang != "" {
		in.code.AddClass(LanguageClass(newLang))
	}
	oldLang, newLang = strings.ToLower(oldLang), strings.ToLower(newLang)
	if in.surface.Placeholder() == oldLang {
		in.surface.SetPlaceholder(newLang)
	}
	in.render(in.Value())
}
