package dom

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element is a handle over an html.Node element. It adds the pieces of live
// browser state a parsed tree does not carry: a form control value and the
// scroll offsets of the element's viewport.
type Element struct {
	node   *html.Node
	parent *Element

	// ScrollTop and ScrollLeft mirror the element's scroll offsets in pixels.
	ScrollTop  int
	ScrollLeft int
}

// NewElement creates a detached element with the provided tag name.
func NewElement(tag string) *Element {
	tag = strings.ToLower(strings.TrimSpace(tag))
	return &Element{
		node: &html.Node{
			Type:     html.ElementNode,
			DataAtom: atom.Lookup([]byte(tag)),
			Data:     tag,
		},
	}
}

// Wrap returns a handle for an existing element node, typically one obtained
// by parsing a document. Wrap returns nil for non-element nodes.
func Wrap(node *html.Node) *Element {
	if node == nil || node.Type != html.ElementNode {
		return nil
	}
	return &Element{node: node}
}

// Node exposes the underlying html.Node.
func (e *Element) Node() *html.Node {
	return e.node
}

// Tag reports the lower-cased tag name.
func (e *Element) Tag() string {
	return e.node.Data
}

// Parent returns the element this one was appended to through Append, or nil.
func (e *Element) Parent() *Element {
	return e.parent
}

// Attribute returns the attribute value and whether it is present.
func (e *Element) Attribute(name string) (string, bool) {
	key := normalizeName(name)
	for _, attr := range e.node.Attr {
		if attr.Namespace == "" && attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// GetAttribute returns the attribute value, or an empty string when absent.
func (e *Element) GetAttribute(name string) string {
	value, _ := e.Attribute(name)
	return value
}

// HasAttribute reports whether the attribute is present.
func (e *Element) HasAttribute(name string) bool {
	_, ok := e.Attribute(name)
	return ok
}

// SetAttribute stores value under name and returns the previous value.
func (e *Element) SetAttribute(name, value string) (old string, existed bool) {
	key := normalizeName(name)
	if key == "" {
		return "", false
	}
	for idx, attr := range e.node.Attr {
		if attr.Namespace == "" && attr.Key == key {
			old = attr.Val
			e.node.Attr[idx].Val = value
			return old, true
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: key, Val: value})
	return "", false
}

// RemoveAttribute deletes the attribute and returns its previous value.
func (e *Element) RemoveAttribute(name string) (old string, existed bool) {
	key := normalizeName(name)
	for idx, attr := range e.node.Attr {
		if attr.Namespace == "" && attr.Key == key {
			e.node.Attr = append(e.node.Attr[:idx], e.node.Attr[idx+1:]...)
			return attr.Val, true
		}
	}
	return "", false
}

// Append adds child as the last child of e.
func (e *Element) Append(child *Element) {
	if child == nil {
		return
	}
	if child.node.Parent != nil {
		child.node.Parent.RemoveChild(child.node)
	}
	e.node.AppendChild(child.node)
	child.parent = e
}

// Clear removes every child node.
func (e *Element) Clear() {
	for child := e.node.FirstChild; child != nil; {
		next := child.NextSibling
		e.node.RemoveChild(child)
		child = next
	}
}

// InnerHTML serializes the element's children.
func (e *Element) InnerHTML() string {
	var buf bytes.Buffer
	for child := e.node.FirstChild; child != nil; child = child.NextSibling {
		_ = html.Render(&buf, child)
	}
	return buf.String()
}

// SetInnerHTML replaces the children with the parsed markup. Markup is parsed
// as a fragment in the context of this element, so text is taken verbatim
// and entities are decoded the way a browser would decode them.
func (e *Element) SetInnerHTML(markup string) {
	nodes, err := html.ParseFragment(strings.NewReader(markup), e.contextNode())
	e.Clear()
	if err != nil {
		e.node.AppendChild(&html.Node{Type: html.TextNode, Data: markup})
		return
	}
	for _, node := range nodes {
		if node.Parent != nil {
			node.Parent.RemoveChild(node)
		}
		e.node.AppendChild(node)
	}
}

// OuterHTML serializes the element including its own tag.
func (e *Element) OuterHTML() string {
	var buf bytes.Buffer
	_ = html.Render(&buf, e.node)
	return buf.String()
}

// TextContent concatenates every descendant text node.
func (e *Element) TextContent() string {
	var buf strings.Builder
	collectText(&buf, e.node)
	return buf.String()
}

// SetTextContent replaces the children with a single text node.
func (e *Element) SetTextContent(text string) {
	e.Clear()
	if text == "" {
		return
	}
	e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// Value returns the form control value. Controls keep their value as text
// content so serialization reflects what the user typed.
func (e *Element) Value() string {
	return e.TextContent()
}

// SetValue replaces the form control value.
func (e *Element) SetValue(value string) {
	e.SetTextContent(value)
}

// Placeholder returns the placeholder attribute.
func (e *Element) Placeholder() string {
	return e.GetAttribute("placeholder")
}

// SetPlaceholder updates the placeholder attribute.
func (e *Element) SetPlaceholder(value string) {
	e.SetAttribute("placeholder", value)
}

func (e *Element) contextNode() *html.Node {
	if e.node.DataAtom != 0 {
		return e.node
	}
	// Unknown custom elements parse like a generic flow container.
	return &html.Node{Type: html.ElementNode, DataAtom: atom.Div, Data: "div"}
}

func collectText(buf *strings.Builder, node *html.Node) {
	if node.Type == html.TextNode {
		buf.WriteString(node.Data)
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		collectText(buf, child)
	}
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
