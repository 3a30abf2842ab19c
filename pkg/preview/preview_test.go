package preview

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-codeinput/pkg/codeinput"
	"github.com/goliatone/go-codeinput/pkg/dom"
)

func instances(t *testing.T) (*codeinput.Registry, []*codeinput.Instance) {
	t.Helper()
	reg := codeinput.NewRegistry()
	reg.MustRegister("code", codeinput.NewTemplate(nil, codeinput.WithCode(true)))

	first := reg.NewInstance(nil)
	first.SetAttribute("lang", "go")
	first.SetAttribute("value", "a < b")
	first.Attach()

	host := dom.NewElement("code-input")
	host.SetAttribute("template", "later")
	host.SetAttribute("name", "src")
	second := reg.NewInstance(host)
	second.Attach()

	return reg, []*codeinput.Instance{first, second}
}

func TestNewPage(t *testing.T) {
	_, list := instances(t)
	page := NewPage(list, WithTitle("demo"), WithStylesheets("/theme.css"), WithCSS(".k{}"))

	var labels, templates, states []string
	for _, widget := range page.Widgets {
		labels = append(labels, widget.Label)
		templates = append(templates, widget.Template)
		states = append(states, widget.State)
	}
	if diff := cmp.Diff([]string{"#1", "#2"}, labels); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"code", "later"}, templates); diff != "" {
		t.Fatalf("templates mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"ready", "awaiting-template"}, states); diff != "" {
		t.Fatalf("states mismatch (-want +got):\n%s", diff)
	}
	if page.Title != "demo" || page.CSS != ".k{}" || len(page.Stylesheets) != 1 {
		t.Fatalf("options not applied: %+v", page)
	}
}

func TestRenderPage(t *testing.T) {
	reg, list := instances(t)
	reg.MustRegister("later", codeinput.NewTemplate(nil))

	engine, err := New()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	css := func(w io.Writer) error {
		_, err := io.WriteString(w, ".chroma .k { color: blue }")
		return err
	}
	var buf bytes.Buffer
	out, err := engine.RenderPage(NewPage(list, WithTitle("a & b"), WithStylesheets("/theme.css"), WithCSSFrom(css)), &buf)
	if err != nil {
		t.Fatalf("render page: %v", err)
	}
	if out != buf.String() {
		t.Fatalf("writer output differs from returned string")
	}

	for _, fragment := range []string{
		"<title>a &amp; b</title>",
		`<link rel="stylesheet" href="/theme.css">`,
		".chroma .k { color: blue }",
		`data-template="code"`,
		`<h2>#1 <small>go, 5 chars</small></h2>`,
		`<h2>#2 src <small>plain text, 0 chars</small></h2>`,
		`<code class="language-go">a &lt; b</code>`,
	} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in page:\n%s", fragment, out)
		}
	}
	if got := strings.Count(out, "<textarea"); got != 2 {
		t.Fatalf("expected 2 surfaces, got %d", got)
	}
}

func TestRenderEmptyPage(t *testing.T) {
	engine, err := New()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	out, err := engine.RenderPage(NewPage(nil))
	if err != nil {
		t.Fatalf("render page: %v", err)
	}
	if !strings.Contains(out, "No code-input elements.") {
		t.Fatalf("expected empty notice, got:\n%s", out)
	}
}

func TestTemplateOverrides(t *testing.T) {
	files := fstest.MapFS{
		"page.html": &fstest.MapFile{Data: []byte(`{{ title }}:{% for w in widgets %}{{ w.state }}/{{ w.instance|widget_language }};{% endfor %}`)},
	}
	engine, err := New(WithFS(files))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	_, list := instances(t)
	out, err := engine.RenderPage(NewPage(list, WithTitle("demo")))
	if err != nil {
		t.Fatalf("render page: %v", err)
	}
	if want := "demo:ready/go;awaiting-template/plain text;"; out != want {
		t.Fatalf("override: want %q, got %q", want, out)
	}
}

func TestWidgetFilters(t *testing.T) {
	files := fstest.MapFS{
		"page.html": &fstest.MapFile{Data: []byte(`{% for w in widgets %}[{{ w.instance|widget_html }}|{{ w.instance|widget_language }}|{{ w.instance|widget_length }}]{% endfor %}`)},
	}
	engine, err := New(WithFS(files))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	reg := codeinput.NewRegistry()
	reg.MustRegister("code", codeinput.NewTemplate(nil))
	inst := reg.NewInstance(nil)
	inst.SetAttribute("value", "héllo")
	inst.Attach()

	page := Page{Widgets: []Widget{{Instance: inst}, {}}}
	out, err := engine.RenderPage(page)
	if err != nil {
		t.Fatalf("render page: %v", err)
	}
	want := "[" + inst.Host().OuterHTML() + "|plain text|5][|plain text|0]"
	if out != want {
		t.Fatalf("filters:\nwant %q\ngot  %q", want, out)
	}
}

func TestWidgetFilterRejectsOtherValues(t *testing.T) {
	files := fstest.MapFS{
		"page.html": &fstest.MapFile{Data: []byte(`{{ title|widget_html }}`)},
	}
	engine, err := New(WithFS(files))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if _, err := engine.RenderPage(NewPage(nil, WithTitle("x"))); err == nil {
		t.Fatalf("expected error for a non-instance value")
	}
}

func TestNilEngineRenderPage(t *testing.T) {
	var engine *Engine
	if _, err := engine.RenderPage(Page{}); err == nil {
		t.Fatalf("expected error for nil engine")
	}
}
