package markup

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// voidElements never have content or an end tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "keygen": true, "link": true,
	"meta": true, "param": true, "source": true, "track": true, "wbr": true,
}

// IsVoidElement reports whether tag is an HTML void element.
func IsVoidElement(tag string) bool {
	return voidElements[strings.ToLower(tag)]
}

// Opening one of these tags closes the open element on top of the stack
// while that element is listed.
var impliedEnd = map[string][]string{
	"li":       {"li"},
	"option":   {"option"},
	"optgroup": {"option", "optgroup"},
	"dt":       {"dt", "dd"},
	"dd":       {"dt", "dd"},
	"tr":       {"tr", "td", "th"},
	"td":       {"td", "th"},
	"th":       {"td", "th"},
	"tbody":    {"thead", "tbody", "tr", "td", "th"},
	"tfoot":    {"thead", "tbody", "tr", "td", "th"},
}

// Block elements that close an open <p>.
var closesParagraph = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"div": true, "dl": true, "fieldset": true, "footer": true, "form": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hr": true, "main": true, "nav": true, "ol": true,
	"p": true, "pre": true, "section": true, "table": true, "ul": true,
}

// ParseString parses an HTML document or fragment.
func ParseString(s string) (*Tree, error) {
	return Parse(strings.NewReader(s))
}

// Parse reads HTML from r and builds a tree without inserting implied
// elements. Tag names keep their source case; attribute names are
// lowercased by the tokenizer and values are unescaped.
func Parse(r io.Reader) (*Tree, error) {
	z := html.NewTokenizer(r)
	root := &Node{}
	stack := []*Node{root}

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, err
			}
			return NewTree(root.Content), nil

		case html.TextToken, html.CommentToken, html.DoctypeToken:
			top := stack[len(stack)-1]
			top.Content = append(top.Content, Text(z.Raw()))

		case html.StartTagToken, html.SelfClosingTagToken:
			raw := string(z.Raw())
			n := readElement(z, raw)
			lower := strings.ToLower(n.Tag)

			stack = closeImplied(stack, lower)
			top := stack[len(stack)-1]
			top.Content = append(top.Content, n)

			if tt == html.SelfClosingTagToken {
				n.SelfClosing = true
				continue
			}
			if voidElements[lower] {
				continue
			}
			stack = append(stack, n)

		case html.EndTagToken:
			name, _ := z.TagName()
			stack = closeElement(stack, string(name))
		}
	}
}

func readElement(z *html.Tokenizer, raw string) *Node {
	n := &Node{Tag: rawTagName(raw)}
	_, hasAttr := z.TagName()
	if !hasAttr {
		return n
	}
	explicit := explicitValues(raw)
	n.Attrs = Attrs{}
	for i := 0; hasAttr; i++ {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		attr := Attr{Key: string(key), Value: string(val)}
		if attr.Value == "" && (i >= len(explicit) || !explicit[i]) {
			attr.Bool = true
		}
		n.Attrs = append(n.Attrs, attr)
	}
	return n
}

// rawTagName returns the tag name as written in the source.
func rawTagName(raw string) string {
	name := strings.TrimPrefix(raw, "<")
	end := strings.IndexAny(name, " \t\n\f\r/>")
	if end >= 0 {
		name = name[:end]
	}
	return name
}

// explicitValues scans the attributes of a raw start tag in source order
// and reports for each one whether it was written with "=", which tells
// `a=""` apart from a bare `a`.
func explicitValues(raw string) []bool {
	var flags []bool
	i := 1 + len(rawTagName(raw))
	for i < len(raw) {
		for i < len(raw) && (isTagSpace(raw[i]) || raw[i] == '/') {
			i++
		}
		if i >= len(raw) || raw[i] == '>' {
			break
		}
		// A leading '=' belongs to the name.
		i++
		for i < len(raw) && !isTagSpace(raw[i]) && raw[i] != '/' && raw[i] != '>' && raw[i] != '=' {
			i++
		}
		j := i
		for j < len(raw) && isTagSpace(raw[j]) {
			j++
		}
		if j >= len(raw) || raw[j] != '=' {
			flags = append(flags, false)
			continue
		}
		i = j + 1
		for i < len(raw) && isTagSpace(raw[i]) {
			i++
		}
		if i < len(raw) && (raw[i] == '"' || raw[i] == '\'') {
			quote := raw[i]
			i++
			for i < len(raw) && raw[i] != quote {
				i++
			}
			i++
		} else {
			for i < len(raw) && !isTagSpace(raw[i]) && raw[i] != '>' {
				i++
			}
		}
		flags = append(flags, true)
	}
	return flags
}

func isTagSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}

func closeImplied(stack []*Node, tag string) []*Node {
	for len(stack) > 1 {
		top := strings.ToLower(stack[len(stack)-1].Tag)
		if top == "p" && closesParagraph[tag] {
			stack = stack[:len(stack)-1]
			continue
		}
		closed := false
		for _, t := range impliedEnd[tag] {
			if top == t {
				stack = stack[:len(stack)-1]
				closed = true
				break
			}
		}
		if !closed {
			break
		}
	}
	return stack
}

// closeElement pops the stack down to the nearest open element named tag.
// Stray end tags are dropped.
func closeElement(stack []*Node, tag string) []*Node {
	for i := len(stack) - 1; i > 0; i-- {
		if strings.EqualFold(stack[i].Tag, tag) {
			return stack[:i]
		}
	}
	return stack
}
