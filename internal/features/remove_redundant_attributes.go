package features

import (
	"strings"

	"github.com/alnah/go-htmlmin/feature"
	"github.com/alnah/go-htmlmin/markup"
)

// redundantRule reports whether an attribute value equals the default the
// browser would apply anyway. attrs is the full attribute list of the node.
type redundantRule func(value string, attrs markup.Attrs) bool

func defaultIs(want string) redundantRule {
	return func(value string, _ markup.Attrs) bool {
		return strings.EqualFold(strings.TrimSpace(value), want)
	}
}

var redundantAttributes = map[string]map[string]redundantRule{
	"form":   {"method": defaultIs("get")},
	"input":  {"type": defaultIs("text")},
	"button": {"type": defaultIs("submit")},
	"script": {
		"language": defaultIs("javascript"),
		"type": func(value string, _ markup.Attrs) bool {
			t := strings.ToLower(strings.TrimSpace(value))
			return t == "text/javascript" || t == "application/javascript"
		},
		// charset only applies to external scripts.
		"charset": func(_ string, attrs markup.Attrs) bool {
			return !attrs.Has("src")
		},
	},
	"style": {
		"media": defaultIs("all"),
		"type":  defaultIs("text/css"),
	},
	"link": {
		"media": defaultIs("all"),
		"type": func(value string, attrs markup.Attrs) bool {
			return strings.EqualFold(attrs.Value("rel"), "stylesheet") &&
				strings.EqualFold(strings.TrimSpace(value), "text/css")
		},
	},
	"area":     {"shape": defaultIs("rect")},
	"img":      {"decoding": defaultIs("auto")},
	"textarea": {"wrap": defaultIs("soft")},
	"ol":       {"type": func(value string, _ markup.Attrs) bool { return value == "1" }},
	"track":    {"kind": defaultIs("subtitles")},
}

// RemoveRedundantAttributes drops attributes whose value is the default.
func RemoveRedundantAttributes() *feature.Module {
	return &feature.Module{
		OnAttrs: func(*feature.Options, any) feature.AttrsHandler {
			return func(attrs markup.Attrs, node *markup.Node) markup.Attrs {
				rules := redundantAttributes[strings.ToLower(node.Tag)]
				if len(rules) == 0 {
					return attrs
				}
				out := attrs[:0:0]
				for _, a := range attrs {
					if rule, ok := rules[a.Key]; ok && !a.Bool && rule(a.Value, attrs) {
						continue
					}
					out = append(out, a)
				}
				return out
			}
		},
	}
}
