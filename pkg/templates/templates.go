package templates

import (
	"github.com/goliatone/go-codeinput/pkg/codeinput"
	"github.com/goliatone/go-codeinput/pkg/dom"
)

// Built-in template identifiers used by configuration files and the CLI.
const (
	KindCustom         = "custom"
	KindPrism          = "prism"
	KindHLJS           = "hljs"
	KindCharacterLimit = "characterLimit"
	KindRainbowText    = "rainbowText"
)

// Highlighter is the collaborator prism and hljs style templates delegate to.
// HighlightElement receives the innermost overlay node holding the text and
// rewrites its content in place.
type Highlighter interface {
	HighlightElement(code *dom.Element)
}

// HighlighterFunc adapts a function into a Highlighter.
type HighlighterFunc func(code *dom.Element)

func (f HighlighterFunc) HighlightElement(code *dom.Element) { f(code) }

// Custom builds a template around a caller supplied render function. It is
// pre styled and code aware by default and does not receive the instance;
// opts override those defaults.
func Custom(render codeinput.RenderFunc, opts ...codeinput.TemplateOption) *codeinput.Template {
	defaults := []codeinput.TemplateOption{
		codeinput.WithPreOverlayStyled(true),
		codeinput.WithCode(true),
		codeinput.WithInstanceInRender(false),
	}
	return codeinput.NewTemplate(render, append(defaults, opts...)...)
}

// Prism builds a template for Prism-like highlighters, which style and
// scroll the overlay container.
func Prism(highlighter Highlighter, plugins ...codeinput.Plugin) *codeinput.Template {
	return highlighterTemplate(highlighter, true, plugins)
}

// HLJS builds a template for highlight.js-like highlighters, which style and
// scroll the innermost node.
func HLJS(highlighter Highlighter, plugins ...codeinput.Plugin) *codeinput.Template {
	return highlighterTemplate(highlighter, false, plugins)
}

func highlighterTemplate(highlighter Highlighter, preStyled bool, plugins []codeinput.Plugin) *codeinput.Template {
	var render codeinput.RenderFunc
	if highlighter != nil {
		render = func(overlay *dom.Element, _ *codeinput.Instance) {
			highlighter.HighlightElement(overlay)
		}
	}
	return codeinput.NewTemplate(render,
		codeinput.WithInstanceInRender(false),
		codeinput.WithPreOverlayStyled(preStyled),
		codeinput.WithCode(true),
		codeinput.WithPlugins(plugins...),
	)
}
