package codeinput

import "strings"

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;")

// EscapeHTML escapes & and < so text can be assigned as raw overlay markup.
// Each character is replaced once; existing entities are not left alone, so
// a literal "&amp;" in text becomes "&amp;amp;".
func EscapeHTML(text string) string {
	return htmlEscaper.Replace(text)
}

// Render updates the instance to show text: the value attribute and the
// editable surface are brought in line, then the overlay is re-rendered
// through the template with the highlight hooks around it. Render does
// nothing before setup.
func (in *Instance) Render(text string) {
	in.react(func() {
		if in.state != StateReady {
			return
		}
		in.render(text)
	})
}

func (in *Instance) render(text string) {
	if in.Value() != text {
		in.setHostAttribute(AttrValue, text)
	}
	if in.surface.Value() != text {
		in.surface.SetValue(text)
	}

	// A trailing newline would leave the overlay one line short of the
	// surface.
	if strings.HasSuffix(text, "\n") {
		text += " "
	}
	in.code.SetInnerHTML(EscapeHTML(text))

	in.Dispatch(HookBeforeHighlight)
	in.template.Highlight(in.code, in)
	in.Dispatch(HookAfterHighlight)
}

// SyncScroll copies the surface scroll offsets onto the overlay, or onto its
// container for pre-styled templates.
func (in *Instance) SyncScroll() {
	if in.state != StateReady {
		return
	}
	target := in.code
	if in.template.PreOverlayStyled() {
		target = in.overlay
	}
	target.ScrollTop = in.surface.ScrollTop
	target.ScrollLeft = in.surface.ScrollLeft
}

// Input handles an input event: text is what the surface now holds.
func (in *Instance) Input(text string) {
	in.react(func() {
		if in.state != StateReady {
			return
		}
		in.surface.SetValue(text)
		in.render(in.surface.Value())
		in.SyncScroll()
	})
}

// Scroll handles a scroll event on the surface. No hooks run and nothing is
// re-rendered.
func (in *Instance) Scroll(top, left int) {
	if in.state != StateReady {
		return
	}
	in.surface.ScrollTop = top
	in.surface.ScrollLeft = left
	in.SyncScroll()
}
