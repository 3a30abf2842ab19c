// Package document binds code-input widgets to the <code-input> elements of
// a parsed HTML page and serializes the page once they are set up.
package document

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"golang.org/x/net/html"

	"github.com/goliatone/go-codeinput/pkg/codeinput"
	"github.com/goliatone/go-codeinput/pkg/dom"
)

// TagName is the element name recognised as a widget host.
const TagName = "code-input"

// Document is a parsed page and the widget instances found in it.
type Document struct {
	root      *html.Node
	registry  *codeinput.Registry
	instances []*codeinput.Instance
	logger    *slog.Logger
}

// Option customises Parse.
type Option func(*Document)

// WithLogger overrides the registry logger for document events.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Document) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// Parse reads an HTML document, creates an instance for every code-input
// element and attaches them in document order. Instances whose template is
// not registered yet wait in the registry queue.
func Parse(r io.Reader, reg *codeinput.Registry, opts ...Option) (*Document, error) {
	if reg == nil {
		return nil, fmt.Errorf("document: registry is nil")
	}
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("document: parse: %w", err)
	}

	doc := &Document{root: root, registry: reg, logger: reg.Logger()}
	for _, opt := range opts {
		if opt != nil {
			opt(doc)
		}
	}

	for node := range root.Descendants() {
		if node.Type == html.ElementNode && node.Data == TagName {
			doc.instances = append(doc.instances, reg.NewInstance(dom.Wrap(node)))
		}
	}
	doc.logger.Debug("document parsed", "instances", len(doc.instances))

	for _, inst := range doc.instances {
		inst.Attach()
	}
	return doc, nil
}

// Instances returns the widgets in document order.
func (d *Document) Instances() []*codeinput.Instance {
	return slices.Clone(d.instances)
}

// Instance returns the widget at idx in document order.
func (d *Document) Instance(idx int) (*codeinput.Instance, bool) {
	if idx < 0 || idx >= len(d.instances) {
		return nil, false
	}
	return d.instances[idx], true
}

// Len reports the number of widgets in the document.
func (d *Document) Len() int {
	return len(d.instances)
}

// Pending lists the widgets still waiting for their template.
func (d *Document) Pending() []*codeinput.Instance {
	var out []*codeinput.Instance
	for _, inst := range d.instances {
		if inst.State() == codeinput.StateAwaitingTemplate {
			out = append(out, inst)
		}
	}
	return out
}

// Detach ends every widget of the document. Queued widgets leave the registry
// queue.
func (d *Document) Detach() {
	for _, inst := range d.instances {
		inst.Detach()
	}
}

// Render writes the whole page, including the surfaces built by setup.
func (d *Document) Render(w io.Writer) error {
	if err := html.Render(w, d.root); err != nil {
		return fmt.Errorf("document: render: %w", err)
	}
	return nil
}
