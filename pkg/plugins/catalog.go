package plugins

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/goliatone/go-codeinput/pkg/codeinput"
)

// Names under which the bundled plugins are registered in DefaultCatalog.
const (
	NameLogging      = "logging"
	NameSanitize     = "sanitize"
	NameAutoLanguage = "autoLanguage"
)

// Factory builds a plugin instance. logger may be nil.
type Factory func(logger *slog.Logger) codeinput.Plugin

// Catalog maps configuration names to plugin factories.
type Catalog map[string]Factory

// DefaultCatalog returns a catalog holding the bundled plugins.
func DefaultCatalog() Catalog {
	return Catalog{
		NameLogging:      func(logger *slog.Logger) codeinput.Plugin { return NewLogging(logger) },
		NameSanitize:     func(*slog.Logger) codeinput.Plugin { return NewSanitize() },
		NameAutoLanguage: func(*slog.Logger) codeinput.Plugin { return NewAutoLanguage() },
	}
}

// Build instantiates the plugin registered as name.
func (c Catalog) Build(name string, logger *slog.Logger) (codeinput.Plugin, bool) {
	factory, ok := c[name]
	if !ok || factory == nil {
		return nil, false
	}
	return factory(logger), true
}

// Names returns the catalog entries in sorted order.
func (c Catalog) Names() []string {
	return slices.Sorted(maps.Keys(c))
}
