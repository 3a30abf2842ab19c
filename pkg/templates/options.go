package templates

import (
	"github.com/goliatone/go-codeinput/pkg/codeinput"
	"github.com/goliatone/go-codeinput/pkg/dom"
)

// Option keys understood by FromOptions. Each flag has a legacy alias.
const (
	OptionHighlight        = "highlight"
	OptionPreOverlayStyled = "preOverlayStyled"
	OptionPreElementStyled = "preElementStyled"
	OptionIsCode           = "isCode"
	OptionIncludeInstance  = "includeInstanceInRenderFunc"
	OptionIncludeCodeInput = "includeCodeInputInHighlightFunc"
	OptionPlugins          = "plugins"
)

var reservedOptions = map[string]struct{}{
	OptionHighlight:        {},
	OptionPreOverlayStyled: {},
	OptionPreElementStyled: {},
	OptionIsCode:           {},
	OptionIncludeInstance:  {},
	OptionIncludeCodeInput: {},
	OptionPlugins:          {},
}

// FromOptions builds a template from a loosely typed option map, mirroring
// the Custom defaults. highlight may be a codeinput.RenderFunc, a plain
// function of the same shape, a single-argument function or a Highlighter.
// Unknown keys are kept as template extras; values of the wrong type are
// ignored.
func FromOptions(options map[string]any) *codeinput.Template {
	render := renderOption(options[OptionHighlight])

	opts := []codeinput.TemplateOption{
		codeinput.WithPreOverlayStyled(boolOption(options, true, OptionPreOverlayStyled, OptionPreElementStyled)),
		codeinput.WithCode(boolOption(options, true, OptionIsCode)),
		codeinput.WithInstanceInRender(boolOption(options, false, OptionIncludeInstance, OptionIncludeCodeInput)),
	}
	if plugins, ok := options[OptionPlugins].([]codeinput.Plugin); ok {
		opts = append(opts, codeinput.WithPlugins(plugins...))
	}
	for key, value := range options {
		if _, reserved := reservedOptions[key]; reserved {
			continue
		}
		opts = append(opts, codeinput.WithExtra(key, value))
	}
	return codeinput.NewTemplate(render, opts...)
}

func renderOption(raw any) codeinput.RenderFunc {
	switch fn := raw.(type) {
	case codeinput.RenderFunc:
		return fn
	case func(*dom.Element, *codeinput.Instance):
		return fn
	case func(*dom.Element):
		return func(overlay *dom.Element, _ *codeinput.Instance) { fn(overlay) }
	case Highlighter:
		return func(overlay *dom.Element, _ *codeinput.Instance) { fn.HighlightElement(overlay) }
	}
	return nil
}

// boolOption returns the first key holding a bool, or fallback.
func boolOption(options map[string]any, fallback bool, keys ...string) bool {
	for _, key := range keys {
		if value, ok := options[key].(bool); ok {
			return value
		}
	}
	return fallback
}
