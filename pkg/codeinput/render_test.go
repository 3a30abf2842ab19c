package codeinput

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/goliatone/go-codeinput/pkg/dom"
)

func TestEscapeHTML(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "plain", want: "plain"},
		{in: "a < b && c > d", want: "a &lt; b &amp;&amp; c > d"},
		{in: "&amp;", want: "&amp;amp;"},
		{in: "&lt;", want: "&amp;lt;"},
		{in: "<<&&", want: "&lt;&lt;&amp;&amp;"},
	}
	for _, tc := range cases {
		if got := EscapeHTML(tc.in); got != tc.want {
			t.Fatalf("EscapeHTML(%q): want %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestRenderOverlayShowsEscapedText(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister("x", NewTemplate(nil))
	inst := attach(reg)

	inst.Render("if a < b && c { x = \"&amp;\" }")

	got := inst.Overlay().InnerHTML()
	if !strings.Contains(got, "a &lt; b &amp;&amp; c") {
		t.Fatalf("expected escaped operators, got %q", got)
	}
	if !strings.Contains(got, "&amp;amp;") || strings.Contains(got, "&amp;amp;amp;") {
		t.Fatalf("literal entity should be escaped exactly once, got %q", got)
	}
}

func TestRenderCallsTemplateWithInstanceOnlyWhenRequested(t *testing.T) {
	var received []*Instance
	record := func(_ *dom.Element, inst *Instance) { received = append(received, inst) }

	reg := NewRegistry()
	reg.MustRegister("without", NewTemplate(record))
	reg.MustRegister("with", NewTemplate(record, WithInstanceInRender(true)))

	attach(reg, "template", "without", "value", "a")
	inst := attach(reg, "template", "with", "value", "b")

	if len(received) != 2 {
		t.Fatalf("expected two render calls, got %d", len(received))
	}
	if received[0] != nil {
		t.Fatalf("instance must not be passed without the flag")
	}
	if received[1] != inst {
		t.Fatalf("instance should be passed with the flag")
	}
}

func TestRenderKeepsValueSurfaceAndOverlayInSync(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister("x", NewTemplate(nil))
	inst := attach(reg)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("render syncs every surface", prop.ForAll(
		func(text string) bool {
			inst.Render(text)
			padded := text
			if strings.HasSuffix(padded, "\n") {
				padded += " "
			}
			return inst.Value() == text &&
				inst.Surface().Value() == text &&
				inst.Overlay().TextContent() == padded
		},
		markupText(),
	))

	properties.Property("escaping never compounds", prop.ForAll(
		func(text string) bool {
			escaped := EscapeHTML(text)
			return strings.Count(escaped, "&amp;") == strings.Count(text, "&") &&
				strings.Count(escaped, "&lt;") == strings.Count(text, "<") &&
				!strings.Contains(escaped, "<")
		},
		markupText(),
	))

	properties.TestingRun(t)
}

// markupText generates strings biased towards characters that matter for
// markup escaping.
func markupText() gopter.Gen {
	alphabet := []string{"a", "Z", " ", "\n", "\t", "&", "<", ">", "\"", "'", "&amp;", "&lt;", "é", "→"}
	return gen.SliceOf(gen.IntRange(0, len(alphabet)-1)).Map(func(picks []int) string {
		var b strings.Builder
		for _, idx := range picks {
			b.WriteString(alphabet[idx])
		}
		return b.String()
	})
}
