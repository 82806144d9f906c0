package markup

import (
	"regexp"
	"strings"
)

var conditionalCommentPattern = regexp.MustCompile(`(?s)<!--\[if\s+?[^<>\[\]]+?]>.+?<!\[endif\]-->`)

// IsComment reports whether text is an HTML comment, ignoring surrounding
// whitespace.
func IsComment(text string) bool {
	trimmed := strings.TrimSpace(text)
	return strings.HasPrefix(trimmed, "<!--") && strings.HasSuffix(trimmed, "-->")
}

// IsConditionalComment reports whether text holds an Internet Explorer
// conditional comment.
func IsConditionalComment(text string) bool {
	return conditionalCommentPattern.MatchString(text)
}

// IsAmpBoilerplate reports whether the node carries the amp-boilerplate
// attribute.
func IsAmpBoilerplate(n *Node) bool {
	return n != nil && n.Attrs.Has("amp-boilerplate")
}

// IsStyleNode reports whether n is a <style> element with content that is
// not the AMP boilerplate.
func IsStyleNode(n *Node) bool {
	return n.HasTag("style") && len(n.Content) > 0 && !IsAmpBoilerplate(n)
}

// ExtractCSS joins the text items of a style node with single spaces.
func ExtractCSS(n *Node) string {
	parts := make([]string, 0, len(n.Content))
	for _, item := range n.Content {
		if t, ok := item.(Text); ok {
			parts = append(parts, string(t))
		}
	}
	return strings.Join(parts, " ")
}
