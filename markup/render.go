package markup

import (
	"io"
	"strings"
)

// String renders the tree.
func (t *Tree) String() string {
	var b strings.Builder
	renderContent(&b, t.Content, t.Options)
	return b.String()
}

// Render writes the serialized tree to w.
func (t *Tree) Render(w io.Writer) error {
	_, err := io.WriteString(w, t.String())
	return err
}

// RenderContent serializes a content sequence with the given options.
func RenderContent(content Content, opts RenderOptions) string {
	var b strings.Builder
	renderContent(&b, content, opts)
	return b.String()
}

// RenderNode serializes a single element.
func RenderNode(n *Node, opts RenderOptions) string {
	var b strings.Builder
	renderNode(&b, n, opts)
	return b.String()
}

func renderContent(b *strings.Builder, content Content, opts RenderOptions) {
	for _, item := range content {
		switch v := item.(type) {
		case Text:
			b.WriteString(string(v))
		case *Node:
			if v != nil {
				renderNode(b, v, opts)
			}
		}
	}
}

func renderNode(b *strings.Builder, n *Node, opts RenderOptions) {
	if n.Tag == "" {
		renderContent(b, n.Content, opts)
		return
	}

	b.WriteByte('<')
	b.WriteString(n.Tag)
	for _, attr := range n.Attrs {
		renderAttr(b, attr, opts)
	}

	void := IsVoidElement(n.Tag)
	if void && len(n.Content) == 0 {
		b.WriteByte('>')
		return
	}
	if n.SelfClosing && len(n.Content) == 0 {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')

	renderContent(b, n.Content, opts)

	b.WriteString("</")
	b.WriteString(n.Tag)
	b.WriteByte('>')
}

func renderAttr(b *strings.Builder, attr Attr, opts RenderOptions) {
	b.WriteByte(' ')
	b.WriteString(attr.Key)
	if attr.Bool {
		return
	}
	if !opts.QuoteAllAttributes {
		if attr.Value == "" {
			return
		}
		if canUnquote(attr.Value) {
			b.WriteByte('=')
			b.WriteString(attr.Value)
			return
		}
	}

	quote := byte('"')
	if !opts.QuoteAllAttributes && strings.Contains(attr.Value, `"`) && !strings.Contains(attr.Value, "'") {
		quote = '\''
	}
	b.WriteByte('=')
	b.WriteByte(quote)
	b.WriteString(escapeAttr(attr.Value, quote))
	b.WriteByte(quote)
}

// canUnquote reports whether value is a valid unquoted attribute value.
func canUnquote(value string) bool {
	return !strings.ContainsAny(value, " \t\n\f\r\"'=<>`&")
}

// escapeAttr escapes the quote character and every ampersand that would
// otherwise be read as the start of a character reference.
func escapeAttr(value string, quote byte) string {
	if !strings.ContainsAny(value, "&\"'") {
		return value
	}
	var b strings.Builder
	b.Grow(len(value) + 8)
	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case c == quote && quote == '"':
			b.WriteString("&quot;")
		case c == quote:
			b.WriteString("&#39;")
		case c == '&' && isAmbiguousAmpersand(value[i+1:]):
			b.WriteString("&amp;")
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// isAmbiguousAmpersand reports whether the text following an ampersand
// looks like a character reference.
func isAmbiguousAmpersand(rest string) bool {
	if strings.HasPrefix(rest, "#") {
		return true
	}
	n := 0
	for n < len(rest) && isAlnum(rest[n]) {
		n++
	}
	return n > 0 && n < len(rest) && rest[n] == ';'
}

func isAlnum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
