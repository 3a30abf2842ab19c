package preview

import (
	"bytes"
	"fmt"
	"io"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-codeinput/pkg/codeinput"
)

// PageTemplate is the built-in page template name.
const PageTemplate = "page"

// Widget is the template view of one instance. Templates reach the
// instance itself through the widget filters.
type Widget struct {
	Label    string
	Template string
	Lang     string
	State    string
	Instance *codeinput.Instance
}

// Page is the data handed to the page template.
type Page struct {
	Title       string
	Stylesheets []string
	CSS         string
	Widgets     []Widget
}

func (p Page) context() pongo2.Context {
	widgets := make([]pongo2.Context, 0, len(p.Widgets))
	for _, w := range p.Widgets {
		widgets = append(widgets, pongo2.Context{
			"label":    w.Label,
			"template": w.Template,
			"lang":     w.Lang,
			"state":    w.State,
			"instance": w.Instance,
		})
	}
	return pongo2.Context{
		"title":       p.Title,
		"stylesheets": p.Stylesheets,
		"css":         p.CSS,
		"widgets":     widgets,
	}
}

// PageOption customises NewPage.
type PageOption func(*Page)

// WithTitle sets the document title.
func WithTitle(title string) PageOption {
	return func(p *Page) {
		p.Title = title
	}
}

// WithStylesheets links external stylesheets, such as a highlighter theme.
func WithStylesheets(hrefs ...string) PageOption {
	return func(p *Page) {
		p.Stylesheets = append(p.Stylesheets, hrefs...)
	}
}

// WithCSS inlines a stylesheet.
func WithCSS(css string) PageOption {
	return func(p *Page) {
		p.CSS = css
	}
}

// WithCSSFrom inlines the stylesheet written by fn, typically a
// highlighter's CSS method.
func WithCSSFrom(fn func(io.Writer) error) PageOption {
	return func(p *Page) {
		if fn == nil {
			return
		}
		var buf bytes.Buffer
		if err := fn(&buf); err == nil {
			p.CSS = buf.String()
		}
	}
}

// NewPage builds page data from instances in the given order.
func NewPage(instances []*codeinput.Instance, opts ...PageOption) Page {
	page := Page{Title: "code-input preview"}
	for idx, inst := range instances {
		if inst == nil {
			continue
		}
		page.Widgets = append(page.Widgets, widgetFor(idx, inst))
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&page)
		}
	}
	return page
}

func widgetFor(idx int, inst *codeinput.Instance) Widget {
	template := inst.Attribute(codeinput.AttrTemplate)
	if !inst.Host().HasAttribute(codeinput.AttrTemplate) {
		if name, ok := inst.Registry().Default(); ok {
			template = name
		}
	}

	label := fmt.Sprintf("#%d", idx+1)
	if surface := inst.Surface(); surface != nil {
		if name := surface.GetAttribute(codeinput.AttrName); name != "" {
			label = fmt.Sprintf("#%d %s", idx+1, name)
		}
	}

	return Widget{
		Label:    label,
		Template: template,
		Lang:     inst.Lang(),
		State:    inst.State().String(),
		Instance: inst,
	}
}
