package features

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/goccy/go-json"

	"github.com/alnah/go-htmlmin/feature"
	"github.com/alnah/go-htmlmin/markup"
)

// MinifyJSON compacts the body of JSON <script> elements
// (application/json, application/ld+json and other +json types).
// Invalid JSON is left untouched.
func MinifyJSON() *feature.Module {
	return &feature.Module{
		OnContent: func(*feature.Options, any) feature.ContentHandler {
			return func(content markup.Content, node *markup.Node) markup.Content {
				if !node.HasTag("script") || !isJSONType(scriptType(node.Attrs)) {
					return content
				}
				src := node.TextContent()
				var buf bytes.Buffer
				if err := json.Compact(&buf, []byte(src)); err != nil {
					return content
				}
				return markup.Content{markup.Text(buf.String())}
			}
		},
	}
}

func isJSONType(t string) bool {
	return t == "application/json" || strings.HasSuffix(t, "+json")
}

var (
	conditionalCommentParts = regexp.MustCompile(`(?s)^(\s*<!--\[if\s+?[^<>\[\]]+?]>)(.+?)(<!\[endif\]-->\s*)$`)
	spaceBetweenTags        = regexp.MustCompile(`>\s+<`)
)

// MinifyConditionalComments collapses the whitespace inside Internet
// Explorer conditional comments.
func MinifyConditionalComments() *feature.Module {
	return &feature.Module{
		OnNode: func(*feature.Options, any) feature.NodeHandler {
			return func(item markup.Item) markup.Item {
				t, ok := item.(markup.Text)
				if !ok || !markup.IsConditionalComment(string(t)) {
					return item
				}
				return markup.Text(minifyConditionalComment(string(t)))
			}
		},
	}
}

func minifyConditionalComment(comment string) string {
	m := conditionalCommentParts.FindStringSubmatch(comment)
	if m == nil {
		return comment
	}
	body := collapseRuns(m[2])
	body = spaceBetweenTags.ReplaceAllString(body, "><")
	return m[1] + strings.TrimFunc(body, isWhitespace) + m[3]
}
