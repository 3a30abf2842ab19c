package templates

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-codeinput/pkg/codeinput"
)

// Palette tokens read from theme manifests. Either a single "rainbow" token
// with a comma separated list, or indexed "rainbow.N" tokens.
const (
	TokenRainbow       = "rainbow"
	tokenRainbowPrefix = TokenRainbow + "."
)

// ErrNoPalette is returned when a theme defines no rainbow tokens.
var ErrNoPalette = errors.New("templates: theme defines no rainbow palette")

// ThemePalette resolves a rainbow palette from a go-theme selection. Variant
// tokens override manifest tokens.
func ThemePalette(selector theme.ThemeSelector, name, variant string) ([]string, error) {
	if selector == nil {
		return nil, fmt.Errorf("templates: theme selector is nil")
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("templates: select theme %q: %w", name, err)
	}
	if selection == nil || selection.Manifest == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoPalette, name)
	}

	tokens := make(map[string]string)
	maps.Copy(tokens, selection.Manifest.Tokens)
	if v, ok := selection.Manifest.Variants[selection.Variant]; ok {
		maps.Copy(tokens, v.Tokens)
	}

	palette := paletteFromTokens(tokens)
	if len(palette) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoPalette, selection.Theme)
	}
	return palette, nil
}

// RainbowTheme builds a rainbow text template colored by a theme palette.
func RainbowTheme(selector theme.ThemeSelector, name, variant, delimiter string) (*codeinput.Template, error) {
	palette, err := ThemePalette(selector, name, variant)
	if err != nil {
		return nil, err
	}
	return RainbowText(palette, delimiter), nil
}

func paletteFromTokens(tokens map[string]string) []string {
	if list := strings.TrimSpace(tokens[TokenRainbow]); list != "" {
		var palette []string
		for _, color := range strings.Split(list, ",") {
			if color = strings.TrimSpace(color); color != "" {
				palette = append(palette, color)
			}
		}
		return palette
	}

	type indexed struct {
		idx   int
		color string
	}
	var entries []indexed
	for key, color := range tokens {
		suffix, ok := strings.CutPrefix(key, tokenRainbowPrefix)
		if !ok {
			continue
		}
		idx, err := strconv.Atoi(suffix)
		if err != nil || strings.TrimSpace(color) == "" {
			continue
		}
		entries = append(entries, indexed{idx: idx, color: strings.TrimSpace(color)})
	}
	slices.SortFunc(entries, func(a, b indexed) int { return a.idx - b.idx })

	palette := make([]string, 0, len(entries))
	for _, entry := range entries {
		palette = append(palette, entry.color)
	}
	return palette
}
