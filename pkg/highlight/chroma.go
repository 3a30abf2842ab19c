package highlight

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/goliatone/go-codeinput/pkg/dom"
)

// DefaultStyle is the chroma style used for CSS output when none is set.
const DefaultStyle = "github"

// Chroma highlights overlay nodes in place using chroma lexers. The language
// is read from the language-* class on the node or its container, the same
// way browser highlighters discover it.
type Chroma struct {
	formatter *chromahtml.Formatter
	style     *chroma.Style
	fallback  string
	logger    *slog.Logger
}

// Option configures a Chroma highlighter.
type Option func(*Chroma)

// WithStyle selects the chroma style used by CSS. Unknown names fall back to
// the chroma default style.
func WithStyle(name string) Option {
	return func(c *Chroma) {
		if strings.TrimSpace(name) != "" {
			c.style = styles.Get(name)
		}
	}
}

// WithFallbackLanguage sets the language used when a node carries no
// language class.
func WithFallbackLanguage(name string) Option {
	return func(c *Chroma) {
		c.fallback = strings.ToLower(strings.TrimSpace(name))
	}
}

// WithLogger routes lexer failures to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Chroma) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New constructs a class based chroma highlighter.
func New(opts ...Option) *Chroma {
	c := &Chroma{
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),
			chromahtml.PreventSurroundingPre(true),
		),
		style:  styles.Get(DefaultStyle),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// HighlightElement replaces the node's text with highlighted markup. Nodes
// without a known language are left untouched.
func (c *Chroma) HighlightElement(code *dom.Element) {
	if code == nil {
		return
	}
	language := Language(code)
	if language == "" {
		language = c.fallback
	}
	if language == "" {
		return
	}

	var buf bytes.Buffer
	if err := c.Highlight(&buf, language, code.TextContent()); err != nil {
		c.logger.Debug("highlight skipped", "language", language, "error", err)
		return
	}
	code.SetInnerHTML(buf.String())
}

// Highlight writes text tokenized for language as class annotated spans. The
// output holds exactly the input text once tags are stripped.
func (c *Chroma) Highlight(w io.Writer, language, text string) error {
	lexer := lexers.Get(language)
	if lexer == nil {
		return fmt.Errorf("highlight: no lexer for %q", language)
	}
	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, text)
	if err != nil {
		return fmt.Errorf("highlight: tokenise %q: %w", language, err)
	}
	tokens := trimAddedNewline(iterator.Tokens(), text)
	if err := c.formatter.Format(w, c.style, chroma.Literator(tokens...)); err != nil {
		return fmt.Errorf("highlight: format %q: %w", language, err)
	}
	return nil
}

// CSS writes the stylesheet for the configured style.
func (c *Chroma) CSS(w io.Writer) error {
	if err := c.formatter.WriteCSS(w, c.style); err != nil {
		return fmt.Errorf("highlight: write css: %w", err)
	}
	return nil
}

// Language reports the language named by a language-* or lang-* class on el
// or its parent. "none" counts as no language.
func Language(el *dom.Element) string {
	for node := el; node != nil; node = node.Parent() {
		for _, class := range node.Classes() {
			lower := strings.ToLower(class)
			for _, prefix := range []string{"language-", "lang-"} {
				if name, ok := strings.CutPrefix(lower, prefix); ok {
					if name == "none" {
						return ""
					}
					return name
				}
			}
		}
		if node != el {
			break
		}
	}
	return ""
}

// trimAddedNewline drops the trailing newline some lexers append so the
// overlay text stays aligned with the editing surface.
func trimAddedNewline(tokens []chroma.Token, text string) []chroma.Token {
	if strings.HasSuffix(text, "\n") || len(tokens) == 0 {
		return tokens
	}
	last := &tokens[len(tokens)-1]
	last.Value = strings.TrimSuffix(last.Value, "\n")
	if last.Value == "" {
		tokens = tokens[:len(tokens)-1]
	}
	return tokens
}
