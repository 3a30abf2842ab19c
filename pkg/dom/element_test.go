package dom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestElementAttributes(t *testing.T) {
	el := NewElement("code-input")

	if _, ok := el.Attribute("lang"); ok {
		t.Fatalf("expected lang to be absent")
	}
	if old, existed := el.SetAttribute("LANG", "go"); existed || old != "" {
		t.Fatalf("unexpected previous value %q (existed=%v)", old, existed)
	}
	if got := el.GetAttribute("lang"); got != "go" {
		t.Fatalf("expected case-insensitive lookup, got %q", got)
	}
	if old, existed := el.SetAttribute("lang", "rust"); !existed || old != "go" {
		t.Fatalf("expected previous go, got %q (existed=%v)", old, existed)
	}
	if old, existed := el.RemoveAttribute("lang"); !existed || old != "rust" {
		t.Fatalf("expected removal of rust, got %q (existed=%v)", old, existed)
	}
	if el.HasAttribute("lang") {
		t.Fatalf("lang should be gone")
	}
}

func TestElementClasses(t *testing.T) {
	el := NewElement("code")
	el.AddClass("language-go", "hljs", "language-go")

	if diff := cmp.Diff([]string{"language-go", "hljs"}, el.Classes()); diff != "" {
		t.Fatalf("classes mismatch (-want +got):\n%s", diff)
	}

	el.RemoveClass("language-go", "missing")
	if !el.HasClass("hljs") || el.HasClass("language-go") {
		t.Fatalf("unexpected classes: %v", el.Classes())
	}

	el.ToggleClass("hljs", false)
	if el.HasAttribute("class") {
		t.Fatalf("empty class attribute should be removed, got %q", el.GetAttribute("class"))
	}
}

func TestElementInnerHTMLRoundTrip(t *testing.T) {
	code := NewElement("code")
	code.SetInnerHTML(`a &amp;&amp; b &lt; c<span class="k">if</span>`)

	if got, want := code.TextContent(), "a && b < cif"; got != want {
		t.Fatalf("text content: want %q, got %q", want, got)
	}
	if got, want := code.InnerHTML(), `a &amp;&amp; b &lt; c<span class="k">if</span>`; got != want {
		t.Fatalf("inner html: want %q, got %q", want, got)
	}
}

func TestElementAppendAndParent(t *testing.T) {
	pre := NewElement("pre")
	code := NewElement("code")
	pre.Append(code)
	code.SetTextContent("x")

	if code.Parent() != pre {
		t.Fatalf("expected parent to be pre")
	}
	if got, want := pre.OuterHTML(), "<pre><code>x</code></pre>"; got != want {
		t.Fatalf("outer html: want %q, got %q", want, got)
	}

	pre.Clear()
	if pre.InnerHTML() != "" {
		t.Fatalf("expected cleared children")
	}
}

func TestElementValue(t *testing.T) {
	area := NewElement("textarea")
	area.SetValue("x < y")
	if area.Value() != "x < y" {
		t.Fatalf("unexpected value %q", area.Value())
	}
	if got, want := area.OuterHTML(), "<textarea>x &lt; y</textarea>"; got != want {
		t.Fatalf("outer html: want %q, got %q", want, got)
	}
	area.SetValue("")
	if area.Value() != "" {
		t.Fatalf("expected empty value")
	}
}
