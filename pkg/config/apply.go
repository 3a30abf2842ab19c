package config

import (
	"fmt"
	"io"
	"log/slog"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-codeinput/pkg/codeinput"
	"github.com/goliatone/go-codeinput/pkg/highlight"
	"github.com/goliatone/go-codeinput/pkg/plugins"
	"github.com/goliatone/go-codeinput/pkg/templates"
)

// HighlighterFactory builds the highlighter for a prism or hljs template.
type HighlighterFactory func(tc TemplateConfig) templates.Highlighter

// Option customises Apply.
type Option func(*applier)

type applier struct {
	catalog     plugins.Catalog
	highlighter HighlighterFactory
	themes      theme.ThemeSelector
	logger      *slog.Logger
}

// WithCatalog replaces the plugin catalog. Defaults to plugins.DefaultCatalog.
func WithCatalog(catalog plugins.Catalog) Option {
	return func(a *applier) {
		if catalog != nil {
			a.catalog = catalog
		}
	}
}

// WithHighlighterFactory replaces the chroma highlighter used for prism and
// hljs templates.
func WithHighlighterFactory(factory HighlighterFactory) Option {
	return func(a *applier) {
		if factory != nil {
			a.highlighter = factory
		}
	}
}

// WithThemeSelector resolves rainbow palettes for templates that name a theme.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(a *applier) {
		a.themes = selector
	}
}

// WithLogger passes logger to plugins built from the catalog.
func WithLogger(logger *slog.Logger) Option {
	return func(a *applier) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// ChromaHighlighter is the default HighlighterFactory.
func ChromaHighlighter(tc TemplateConfig) templates.Highlighter {
	return highlight.New(
		highlight.WithStyle(tc.Style),
		highlight.WithFallbackLanguage(tc.Language),
	)
}

func newApplier(opts []Option) *applier {
	a := &applier{
		catalog:     plugins.DefaultCatalog(),
		highlighter: ChromaHighlighter,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Apply builds every template and registers it with reg, the default first.
// All templates are built before any is registered, so a failing file leaves
// the registry untouched.
func (c *Config) Apply(reg *codeinput.Registry, opts ...Option) error {
	if reg == nil {
		return fmt.Errorf("config: registry is nil")
	}
	if c == nil {
		return nil
	}
	a := newApplier(opts)

	names := c.Names()
	built := make([]*codeinput.Template, len(names))
	for idx, name := range names {
		tpl, err := a.build(name, c.Templates[name])
		if err != nil {
			return fmt.Errorf("config: template %q (file %s): %w", name, c.Source, err)
		}
		built[idx] = tpl
	}

	for idx, name := range names {
		if err := reg.Register(name, built[idx]); err != nil {
			return fmt.Errorf("config: register %q: %w", name, err)
		}
	}
	return nil
}

// Build constructs a single template from tc without registering it.
func Build(tc TemplateConfig, opts ...Option) (*codeinput.Template, error) {
	return newApplier(opts).build("", tc)
}

func (a *applier) build(name string, tc TemplateConfig) (*codeinput.Template, error) {
	pluginList := make([]codeinput.Plugin, 0, len(tc.Plugins))
	for _, pluginName := range tc.Plugins {
		plugin, ok := a.catalog.Build(pluginName, a.logger.With("template", name))
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownPlugin, pluginName)
		}
		pluginList = append(pluginList, plugin)
	}

	switch tc.Kind {
	case templates.KindCustom, "":
		return templates.Custom(nil,
			codeinput.WithPreOverlayStyled(boolOr(tc.PreOverlayStyled, true)),
			codeinput.WithCode(boolOr(tc.IsCode, true)),
			codeinput.WithPlugins(pluginList...),
		), nil
	case templates.KindPrism:
		return templates.Prism(a.highlighter(tc), pluginList...), nil
	case templates.KindHLJS:
		return templates.HLJS(a.highlighter(tc), pluginList...), nil
	case templates.KindCharacterLimit:
		return templates.CharacterLimit(pluginList...), nil
	case templates.KindRainbowText:
		colors := tc.Colors
		if tc.Theme != "" && len(colors) == 0 {
			palette, err := templates.ThemePalette(a.themes, tc.Theme, tc.Variant)
			if err != nil {
				return nil, err
			}
			colors = palette
		}
		return templates.RainbowText(colors, tc.Delimiter, pluginList...), nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownKind, tc.Kind)
}

func boolOr(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}
