package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-codeinput/pkg/codeinput"
	"github.com/goliatone/go-codeinput/pkg/dom"
	"github.com/goliatone/go-codeinput/pkg/templates"
)

const sampleYAML = `
default: code
templates:
  code:
    kind: hljs
    style: github
    plugins: [logging, sanitize]
  limited:
    kind: characterLimit
  rainbow:
    kind: rainbowText
    colors: [red, blue]
    delimiter: ","
  plain:
    preOverlayStyled: false
    isCode: false
`

func boldHighlighter(TemplateConfig) templates.Highlighter {
	return templates.HighlighterFunc(func(code *dom.Element) {
		code.SetInnerHTML("<b>" + codeinput.EscapeHTML(code.TextContent()) + "</b>")
	})
}

func TestParseYAML(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML), "codeinput.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff([]string{"code", "limited", "plain", "rainbow"}, cfg.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.Templates["plain"].Kind; got != templates.KindCustom {
		t.Fatalf("missing kind should default to custom, got %q", got)
	}
	if diff := cmp.Diff([]string{"logging", "sanitize"}, cfg.Templates["code"].Plugins); diff != "" {
		t.Fatalf("plugins mismatch (-want +got):\n%s", diff)
	}
	if cfg.Source != "codeinput.yaml" {
		t.Fatalf("source not recorded: %q", cfg.Source)
	}
}

func TestLoadJSON(t *testing.T) {
	fsys := fstest.MapFS{
		"conf/codeinput.json": &fstest.MapFile{Data: []byte(`{"templates":{"b":{"kind":"prism"},"a":{"kind":"custom"}}}`)},
	}
	cfg, err := Load(fsys, "conf/codeinput.json")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, cfg.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	if _, err := Load(fsys, "missing.yaml"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name   string
		data   string
		target error
	}{
		{name: "empty", data: "  \n"},
		{name: "invalid", data: "templates: [unclosed"},
		{name: "unknown kind", data: "templates:\n  x:\n    kind: monaco\n", target: ErrUnknownKind},
		{name: "missing default", data: "default: nope\ntemplates:\n  x:\n    kind: custom\n"},
		{name: "blank name", data: "templates:\n  \" \":\n    kind: custom\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.data), "bad.yaml")
			if err == nil {
				t.Fatalf("expected error")
			}
			if tc.target != nil && !errors.Is(err, tc.target) {
				t.Fatalf("expected %v, got %v", tc.target, err)
			}
		})
	}
}

func TestApplyRegistersDefaultFirst(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML), "codeinput.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	reg := codeinput.NewRegistry()
	waiting := reg.NewInstance(nil)
	waiting.SetAttribute("value", "a<b")
	waiting.Attach()
	if waiting.State() != codeinput.StateAwaitingTemplate {
		t.Fatalf("expected queued instance, got %s", waiting.State())
	}

	if err := cfg.Apply(reg, WithHighlighterFactory(boldHighlighter)); err != nil {
		t.Fatalf("apply: %v", err)
	}

	if name, ok := reg.Default(); !ok || name != "code" {
		t.Fatalf("default: want code, got %q (%v)", name, ok)
	}
	if diff := cmp.Diff([]string{"code", "limited", "plain", "rainbow"}, reg.Names()); diff != "" {
		t.Fatalf("registered names mismatch (-want +got):\n%s", diff)
	}
	if waiting.State() != codeinput.StateReady {
		t.Fatalf("queued instance should flush, got %s", waiting.State())
	}
	if got, want := waiting.Overlay().InnerHTML(), "<b>a&lt;b</b>"; got != want {
		t.Fatalf("overlay: want %q, got %q", want, got)
	}

	plain, _ := reg.Lookup("plain")
	if plain.PreOverlayStyled() || plain.IsCode() {
		t.Fatalf("plain flags not applied")
	}
}

func TestApplyUnknownPluginLeavesRegistryUntouched(t *testing.T) {
	cfg, err := Parse([]byte("templates:\n  a:\n    kind: custom\n  b:\n    plugins: [missing]\n"), "bad.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	reg := codeinput.NewRegistry()
	if err := cfg.Apply(reg); !errors.Is(err, ErrUnknownPlugin) {
		t.Fatalf("expected ErrUnknownPlugin, got %v", err)
	}
	if names := reg.Names(); len(names) != 0 {
		t.Fatalf("registry should be untouched, got %v", names)
	}
}

type stubThemeSelector struct {
	selection *theme.Selection
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	return s.selection, nil
}

func TestBuildRainbowFromTheme(t *testing.T) {
	selector := &stubThemeSelector{selection: &theme.Selection{Theme: "acme", Manifest: &theme.Manifest{
		Name:   "acme",
		Tokens: map[string]string{"rainbow": "teal,olive"},
	}}}

	tpl, err := Build(TemplateConfig{Kind: templates.KindRainbowText, Theme: "acme"}, WithThemeSelector(selector))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	colors, _ := tpl.Extra(templates.ExtraRainbowColors)
	if diff := cmp.Diff([]string{"teal", "olive"}, colors); diff != "" {
		t.Fatalf("palette mismatch (-want +got):\n%s", diff)
	}

	if _, err := Build(TemplateConfig{Kind: templates.KindRainbowText, Theme: "acme"}); err == nil {
		t.Fatalf("expected error without a theme selector")
	}
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "codeinput.yaml")
	if err := os.WriteFile(path, []byte("default: a\ntemplates:\n  a: {kind: custom}\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *Config, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(cfg *Config, err error) {
			if err == nil {
				reloaded <- cfg
			}
		}, WithDebounce(10*time.Millisecond))
	}()

	updated := []byte("default: b\ntemplates:\n  b: {kind: prism}\n")
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()

	for {
		select {
		case cfg := <-reloaded:
			if cfg.Default != "b" {
				continue
			}
			cancel()
			if err := <-done; err != nil {
				t.Fatalf("watch returned %v", err)
			}
			return
		case <-tick.C:
			if err := os.WriteFile(path, updated, 0o644); err != nil {
				t.Fatalf("rewrite: %v", err)
			}
		case <-deadline:
			t.Fatalf("timed out waiting for reload")
		}
	}
}
