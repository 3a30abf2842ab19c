package plugins

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-codeinput/pkg/codeinput"
)

var (
	overlayPolicyOnce sync.Once
	overlayPolicy     *bluemonday.Policy
)

// Sanitize strips anything but presentation markup from the overlay after the
// template rendered it.
type Sanitize struct {
	Policy *bluemonday.Policy
}

// NewSanitize returns a sanitizer using the overlay policy.
func NewSanitize() *Sanitize {
	return &Sanitize{Policy: OverlayPolicy()}
}

func (s *Sanitize) ObservedAttributes() []string { return nil }

func (s *Sanitize) AfterHighlight(inst *codeinput.Instance) {
	overlay := inst.Overlay()
	if overlay == nil {
		return
	}
	policy := s.Policy
	if policy == nil {
		policy = OverlayPolicy()
	}
	markup := overlay.InnerHTML()
	if cleaned := policy.Sanitize(markup); cleaned != markup {
		overlay.SetInnerHTML(cleaned)
	}
}

// OverlayPolicy allows the inline elements highlighters and the bundled
// templates emit, with class and a small set of color styles.
func OverlayPolicy() *bluemonday.Policy {
	overlayPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("span", "mark", "b", "i", "em", "strong", "u", "s", "br")
		policy.AllowAttrs("class").Globally()
		policy.AllowStyles(
			"color", "background-color", "font-weight", "font-style", "text-decoration",
		).OnElements("span", "mark")
		overlayPolicy = policy
	})
	return overlayPolicy
}
