package templates

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-codeinput/pkg/codeinput"
	"github.com/goliatone/go-codeinput/pkg/dom"
)

// Extra keys stored on rainbow text templates.
const (
	ExtraRainbowColors = "rainbow_colors"
	ExtraDelimiter     = "delimiter"
)

// DefaultRainbowColors is the palette used when none is configured.
var DefaultRainbowColors = []string{
	"red", "orangered", "orange", "goldenrod", "gold",
	"green", "darkgreen", "navy", "blue", "magenta",
}

// RainbowText builds a template that splits the value on delimiter and colors
// each segment by cycling through colors. An empty delimiter colors every
// character.
func RainbowText(colors []string, delimiter string, plugins ...codeinput.Plugin) *codeinput.Template {
	if len(colors) == 0 {
		colors = DefaultRainbowColors
	}
	return codeinput.NewTemplate(renderRainbow,
		codeinput.WithInstanceInRender(true),
		codeinput.WithPreOverlayStyled(true),
		codeinput.WithCode(false),
		codeinput.WithPlugins(plugins...),
		codeinput.WithExtra(ExtraRainbowColors, append([]string(nil), colors...)),
		codeinput.WithExtra(ExtraDelimiter, delimiter),
	)
}

func renderRainbow(overlay *dom.Element, inst *codeinput.Instance) {
	tpl := inst.Template()
	colors := stringSlice(tpl, ExtraRainbowColors)
	if len(colors) == 0 {
		colors = DefaultRainbowColors
	}
	delimiter := stringValue(tpl, ExtraDelimiter)

	sections := strings.Split(inst.Value(), delimiter)
	parts := make([]string, len(sections))
	for idx, section := range sections {
		parts[idx] = fmt.Sprintf(`<span style="color: %s">%s</span>`,
			codeinput.EscapeHTML(colors[idx%len(colors)]), codeinput.EscapeHTML(section))
	}
	overlay.SetInnerHTML(strings.Join(parts, codeinput.EscapeHTML(delimiter)))
}

func stringSlice(tpl *codeinput.Template, key string) []string {
	raw, ok := tpl.Extra(key)
	if !ok {
		return nil
	}
	switch v := raw.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func stringValue(tpl *codeinput.Template, key string) string {
	raw, ok := tpl.Extra(key)
	if !ok {
		return ""
	}
	s, _ := raw.(string)
	return s
}
