package features

import (
	"strings"

	"github.com/alnah/go-htmlmin/feature"
	"github.com/alnah/go-htmlmin/markup"
)

// metadataContent may precede the body content without an explicit <body>.
var metadataContent = toSet("meta", "link", "script", "style", "template")

// RemoveOptionalTags drops <html>, <head> and <body> wrappers that carry no
// attributes when the HTML parsing rules allow both their start and end
// tags to be omitted. Their children stay in place.
func RemoveOptionalTags() *feature.Module {
	return &feature.Module{
		Default: feature.TreeTransform(func(tree *markup.Tree) {
			removeOptionalTags(tree.Content)
		}),
	}
}

func removeOptionalTags(content markup.Content) {
	for i, item := range content {
		n, ok := item.(*markup.Node)
		if !ok || n == nil {
			continue
		}
		removeOptionalTags(n.Content)

		var next markup.Item
		if i+1 < len(content) {
			next = content[i+1]
		}
		if len(n.Attrs) == 0 && canOmitTags(n, next) {
			n.Tag = ""
		}
	}
}

func canOmitTags(n *markup.Node, next markup.Item) bool {
	first := firstItem(n.Content)
	switch strings.ToLower(n.Tag) {
	case "html":
		return !isCommentItem(first) && !isCommentItem(next)
	case "head":
		if first != nil {
			if _, isNode := first.(*markup.Node); !isNode {
				return false
			}
		}
		return !startsWithSpace(next) && !isCommentItem(next)
	case "body":
		if first != nil {
			if startsWithSpace(first) || isCommentItem(first) {
				return false
			}
			if fn, isNode := first.(*markup.Node); isNode && metadataContent[strings.ToLower(fn.Tag)] {
				return false
			}
		}
		return !isCommentItem(next)
	}
	return false
}

func firstItem(content markup.Content) markup.Item {
	if len(content) == 0 {
		return nil
	}
	return content[0]
}

func isCommentItem(item markup.Item) bool {
	t, ok := item.(markup.Text)
	return ok && markup.IsComment(string(t))
}

func startsWithSpace(item markup.Item) bool {
	t, ok := item.(markup.Text)
	return ok && t != "" && isWhitespace(rune(t[0]))
}
