package preview

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

//go:embed templates/*.html
var builtinTemplates embed.FS

const templateExt = ".html"

// Option configures an Engine before construction.
type Option func(*config)

type config struct {
	baseDir   string
	templates fs.FS
}

// WithBaseDir loads templates from a directory on disk, ahead of the built-in
// set.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from files, ahead of the built-in set.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// Engine renders preview pages with a pongo2 template set. Parsed templates
// are cached by name.
type Engine struct {
	mu        sync.Mutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
}

// New constructs an Engine. The built-in templates are always available;
// WithBaseDir and WithFS add overrides that are searched first.
func New(options ...Option) (*Engine, error) {
	cfg := &config{}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("preview: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	if cfg.templates != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))
	}
	builtin, err := fs.Sub(builtinTemplates, "templates")
	if err != nil {
		return nil, fmt.Errorf("preview: open built-in templates: %w", err)
	}
	loaders = append(loaders, pongo2.NewFSLoader(builtin))

	if err := registerWidgetFilters(); err != nil {
		return nil, err
	}
	return &Engine{
		set:       pongo2.NewSet("codeinput-preview", loaders...),
		templates: make(map[string]*pongo2.Template),
	}, nil
}

// RenderPage renders page with the built-in page template, or a template of
// the same name supplied through WithFS or WithBaseDir. The result is also
// written to every out writer.
func (e *Engine) RenderPage(page Page, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("preview: engine is nil")
	}
	tmpl, err := e.template(PageTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(page.context(), &buf); err != nil {
		return "", fmt.Errorf("preview: execute %q: %w", PageTemplate, err)
	}
	rendered := buf.String()
	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", fmt.Errorf("preview: write %q: %w", PageTemplate, err)
		}
	}
	return rendered, nil
}

func (e *Engine) template(name string) (*pongo2.Template, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[name]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(name + templateExt)
	if err != nil {
		return nil, fmt.Errorf("preview: load template %q: %w", name, err)
	}
	e.templates[name] = tmpl
	return tmpl, nil
}
