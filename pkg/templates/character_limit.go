package templates

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/go-codeinput/pkg/codeinput"
	"github.com/goliatone/go-codeinput/pkg/dom"
)

// Attributes read by the character limit template at render time.
const (
	AttrCharacterLimit = "data-character-limit"
	AttrOverflowMsg    = "data-overflow-msg"
)

// DefaultOverflowMsg is shown when no data-overflow-msg attribute is set.
const DefaultOverflowMsg = "(Character limit reached)"

// CharacterLimit builds a template that marks text past the instance's
// data-character-limit as overflow and appends an overflow message once the
// limit is exceeded.
func CharacterLimit(plugins ...codeinput.Plugin) *codeinput.Template {
	return codeinput.NewTemplate(renderCharacterLimit,
		codeinput.WithInstanceInRender(true),
		codeinput.WithPreOverlayStyled(true),
		codeinput.WithCode(false),
		codeinput.WithPlugins(plugins...),
	)
}

func renderCharacterLimit(overlay *dom.Element, inst *codeinput.Instance) {
	value := []rune(inst.Value())
	cut := limitIndex(inst.Attribute(AttrCharacterLimit), len(value))

	normal := codeinput.EscapeHTML(string(value[:cut]))
	overflow := codeinput.EscapeHTML(string(value[cut:]))

	var b strings.Builder
	b.WriteString(normal)
	b.WriteString(`<mark class="overflow">`)
	b.WriteString(overflow)
	b.WriteString(`</mark>`)
	if overflow != "" {
		msg := inst.Attribute(AttrOverflowMsg)
		if msg == "" {
			msg = DefaultOverflowMsg
		}
		b.WriteString(` <mark class="overflow-msg">`)
		b.WriteString(codeinput.EscapeHTML(msg))
		b.WriteString(`</mark>`)
	}
	overlay.SetInnerHTML(b.String())
}

// limitIndex converts a data-character-limit value into a cut index in
// [0, length]. Negative limits count from the end. Missing or malformed
// limits are zero; limits too large for an int clamp to the text bounds.
func limitIndex(raw string, length int) int {
	raw = strings.TrimSpace(raw)
	limit, err := strconv.Atoi(raw)
	if err == nil {
		if limit < 0 {
			limit += length
		}
		return max(0, min(limit, length))
	}

	f, ferr := strconv.ParseFloat(raw, 64)
	if ferr != nil && !errors.Is(ferr, strconv.ErrRange) {
		return 0
	}
	switch {
	case math.IsNaN(f):
		return 0
	case f >= float64(length):
		return length
	case f <= -float64(length):
		return 0
	case f < 0:
		return length + int(f)
	}
	return int(f)
}
