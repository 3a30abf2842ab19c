// Package config loads template definitions from YAML or JSON files and
// registers them with a codeinput registry.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-codeinput/pkg/templates"
)

var (
	// ErrUnknownKind is returned for template kinds the loader cannot build.
	ErrUnknownKind = errors.New("config: unknown template kind")
	// ErrUnknownPlugin is returned when a template names a plugin missing from
	// the catalog.
	ErrUnknownPlugin = errors.New("config: unknown plugin")
)

var knownKinds = []string{
	templates.KindCustom,
	templates.KindPrism,
	templates.KindHLJS,
	templates.KindCharacterLimit,
	templates.KindRainbowText,
}

// Config is a parsed template configuration file.
type Config struct {
	Default   string                    `json:"default" yaml:"default"`
	Templates map[string]TemplateConfig `json:"templates" yaml:"templates"`

	// Source records the file the configuration was read from.
	Source string `json:"-" yaml:"-"`
}

// TemplateConfig describes one named template.
type TemplateConfig struct {
	Kind     string   `json:"kind" yaml:"kind"`
	Style    string   `json:"style,omitempty" yaml:"style,omitempty"`
	Language string   `json:"language,omitempty" yaml:"language,omitempty"`
	Plugins  []string `json:"plugins,omitempty" yaml:"plugins,omitempty"`

	Colors    []string `json:"colors,omitempty" yaml:"colors,omitempty"`
	Delimiter string   `json:"delimiter,omitempty" yaml:"delimiter,omitempty"`
	Theme     string   `json:"theme,omitempty" yaml:"theme,omitempty"`
	Variant   string   `json:"variant,omitempty" yaml:"variant,omitempty"`

	PreOverlayStyled *bool `json:"preOverlayStyled,omitempty" yaml:"preOverlayStyled,omitempty"`
	IsCode           *bool `json:"isCode,omitempty" yaml:"isCode,omitempty"`
}

// Load reads and parses path from fsys.
func Load(fsys fs.FS, path string) (*Config, error) {
	if fsys == nil {
		return nil, fmt.Errorf("config: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadFile reads and parses a file from the host filesystem.
func LoadFile(path string) (*Config, error) {
	clean := filepath.Clean(path)
	return Load(os.DirFS(filepath.Dir(clean)), filepath.Base(clean))
}

// Parse decodes data as JSON, falling back to YAML, and validates it. source
// names the input in error messages.
func Parse(data []byte, source string) (*Config, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("config: file %s is empty", source)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		cfg = Config{}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: invalid JSON or YAML", source)
		}
	}
	cfg.Source = source

	if err := cfg.normalise(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalise() error {
	normalised := make(map[string]TemplateConfig, len(c.Templates))
	for rawName, tc := range c.Templates {
		name := strings.TrimSpace(rawName)
		if name == "" {
			return fmt.Errorf("config: file %s defines an empty template name", c.Source)
		}
		if _, exists := normalised[name]; exists {
			return fmt.Errorf("config: duplicate template %q (file %s)", name, c.Source)
		}
		tc.Kind = strings.TrimSpace(tc.Kind)
		if tc.Kind == "" {
			tc.Kind = templates.KindCustom
		}
		if !slices.Contains(knownKinds, tc.Kind) {
			return fmt.Errorf("%w %q for template %q (file %s)", ErrUnknownKind, tc.Kind, name, c.Source)
		}
		normalised[name] = tc
	}
	c.Templates = normalised

	c.Default = strings.TrimSpace(c.Default)
	if c.Default != "" {
		if _, ok := c.Templates[c.Default]; !ok {
			return fmt.Errorf("config: default template %q is not defined (file %s)", c.Default, c.Source)
		}
	}
	return nil
}

// Names returns the template names in registration order: the default first,
// then the rest sorted.
func (c *Config) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.Templates))
	for name := range c.Templates {
		if name != c.Default {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	if c.Default != "" {
		names = append([]string{c.Default}, names...)
	}
	return names
}
