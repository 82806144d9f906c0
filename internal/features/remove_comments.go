package features

import (
	"regexp"
	"strings"

	"github.com/alnah/go-htmlmin/feature"
	"github.com/alnah/go-htmlmin/markup"
)

var excerptPattern = regexp.MustCompile(`(?i)^<!-- ?more ?-->$`)

// commentFilter decides whether a comment is removed.
type commentFilter func(comment string) bool

// RemoveComments drops HTML comments. The option selects which:
// "safe" (or true) keeps conditional comments, <!--more-->, noindex,
// server-side exclude and SSI directives; "all" drops every comment; a
// *regexp.Regexp or func(string) bool drops the comments it matches.
func RemoveComments() *feature.Module {
	return &feature.Module{
		OnContent: func(_ *feature.Options, featureOpts any) feature.ContentHandler {
			remove := newCommentFilter(featureOpts)
			if remove == nil {
				return nil
			}
			return func(content markup.Content, _ *markup.Node) markup.Content {
				kept := content[:0]
				for _, item := range content {
					if t, ok := item.(markup.Text); ok && isRemovableComment(string(t), remove) {
						continue
					}
					kept = append(kept, item)
				}
				return kept
			}
		},
		OnNode: func(_ *feature.Options, featureOpts any) feature.NodeHandler {
			remove := newCommentFilter(featureOpts)
			if remove == nil {
				return nil
			}
			return func(item markup.Item) markup.Item {
				if t, ok := item.(markup.Text); ok && isRemovableComment(string(t), remove) {
					return nil
				}
				return item
			}
		},
	}
}

func newCommentFilter(featureOpts any) commentFilter {
	switch v := featureOpts.(type) {
	case *regexp.Regexp:
		return v.MatchString
	case func(string) bool:
		return v
	case string:
		switch v {
		case "all":
			return func(string) bool { return true }
		case "safe":
			return isUnsafeComment
		}
		return nil
	case bool:
		if v {
			return isUnsafeComment
		}
	}
	return nil
}

func isRemovableComment(text string, remove commentFilter) bool {
	if !markup.IsComment(text) {
		return false
	}
	return remove(strings.TrimSpace(text))
}

// isUnsafeComment reports whether a comment carries no meaning for
// browsers, CMSs or servers.
func isUnsafeComment(comment string) bool {
	switch comment {
	case "<!--noindex-->", "<!--/noindex-->", "<!--sse-->", "<!--/sse-->":
		return false
	}
	if markup.IsConditionalComment(comment) || excerptPattern.MatchString(comment) {
		return false
	}
	return !strings.HasPrefix(comment, "<!--#")
}
