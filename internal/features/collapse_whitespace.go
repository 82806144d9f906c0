package features

import (
	"context"
	"strings"

	"github.com/alnah/go-htmlmin/feature"
	"github.com/alnah/go-htmlmin/markup"
)

// Collapse modes.
const (
	collapseConservative = "conservative"
	collapseAggressive   = "aggressive"
	collapseAll          = "all"
)

// Whitespace inside these elements is significant.
var noWhitespaceCollapse = map[string]bool{
	"script": true, "style": true, "pre": true, "textarea": true,
}

// Inline elements that keep the whitespace around them in aggressive mode.
// "comment" stands for comment items.
var noTrimAround = map[string]bool{
	"a": true, "abbr": true, "acronym": true, "b": true, "bdi": true, "bdo": true,
	"big": true, "button": true, "cite": true, "code": true, "del": true, "dfn": true,
	"em": true, "font": true, "i": true, "ins": true, "kbd": true, "label": true,
	"mark": true, "math": true, "nobr": true, "object": true, "q": true, "rp": true,
	"rt": true, "rtc": true, "ruby": true, "s": true, "samp": true, "select": true,
	"small": true, "span": true, "strike": true, "strong": true, "sub": true,
	"sup": true, "svg": true, "textarea": true, "time": true, "tt": true, "u": true,
	"var": true, "comment": true, "img": true, "input": true, "wbr": true,
}

// Inline elements whose first and last whitespace is kept in aggressive mode.
var noTrimInside = map[string]bool{
	"a": true, "abbr": true, "acronym": true, "b": true, "big": true, "del": true,
	"em": true, "font": true, "i": true, "ins": true, "kbd": true, "mark": true,
	"nobr": true, "rp": true, "s": true, "samp": true, "small": true, "span": true,
	"strike": true, "strong": true, "sub": true, "sup": true, "time": true, "tt": true,
	"u": true, "var": true,
}

// CollapseWhitespace collapses whitespace runs in text to a single space.
// "conservative" only trims text at the top level and directly inside html
// and head; "aggressive" also trims next to block elements; "all" trims
// every text item. Text left empty is removed. Unknown modes fall back to
// conservative.
func CollapseWhitespace() *feature.Module {
	return &feature.Module{
		Default: func(_ context.Context, tree *markup.Tree, _ *feature.Options, featureOpts any) (*markup.Tree, error) {
			mode := feature.String(featureOpts, collapseConservative)
			switch mode {
			case collapseConservative, collapseAggressive, collapseAll:
			default:
				mode = collapseConservative
			}
			tree.Content = collapseContent(tree.Content, mode, nil)
			return tree, nil
		},
	}
}

func collapseContent(content markup.Content, mode string, parent *markup.Node) markup.Content {
	parentTag := ""
	if parent != nil {
		parentTag = strings.ToLower(parent.Tag)
	}
	topLevel := parentTag == "" || parentTag == "html" || parentTag == "head"

	out := make(markup.Content, 0, len(content))
	for i, item := range content {
		switch v := item.(type) {
		case markup.Text:
			var prev, next markup.Item
			if i > 0 {
				prev = content[i-1]
			}
			if i+1 < len(content) {
				next = content[i+1]
			}
			shouldTrim := mode == collapseAll || topLevel || mode == collapseAggressive
			text := collapseText(string(v), mode, shouldTrim, parentTag, prev, next)
			if text == "" {
				continue
			}
			out = append(out, markup.Text(text))

		case *markup.Node:
			if len(v.Content) > 0 && !noWhitespaceCollapse[strings.ToLower(v.Tag)] {
				v.Content = collapseContent(v.Content, mode, v)
			}
			out = append(out, v)

		default:
			out = append(out, item)
		}
	}
	return out
}

func collapseText(text, mode string, shouldTrim bool, parentTag string, prev, next markup.Item) string {
	if text == "" {
		return ""
	}
	if !markup.IsComment(text) {
		text = collapseRuns(text)
	}
	if !shouldTrim {
		return text
	}
	if mode != collapseAggressive {
		return strings.TrimFunc(text, isWhitespace)
	}
	if noTrimInside[parentTag] {
		return text
	}
	if !noTrimAround[itemTag(prev)] {
		text = strings.TrimLeftFunc(text, isWhitespace)
	}
	if !noTrimAround[itemTag(next)] {
		text = strings.TrimRightFunc(text, isWhitespace)
	}
	return text
}

// itemTag names an item for the noTrimAround lookup.
func itemTag(item markup.Item) string {
	switch v := item.(type) {
	case *markup.Node:
		return strings.ToLower(v.Tag)
	case markup.Text:
		if markup.IsComment(string(v)) {
			return "comment"
		}
	}
	return ""
}

// collapseRuns replaces each whitespace run with a single space.
func collapseRuns(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inRun := false
	for _, r := range s {
		if isWhitespace(r) {
			if !inRun {
				b.WriteByte(' ')
			}
			inRun = true
			continue
		}
		inRun = false
		b.WriteRune(r)
	}
	return b.String()
}
