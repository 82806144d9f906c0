package features

import (
	"slices"
	"strings"

	"github.com/alnah/go-htmlmin/feature"
	"github.com/alnah/go-htmlmin/markup"
)

// caseInsensitiveValues lists enumerated attributes whose values are
// ASCII case-insensitive. A nil tag list means the attribute is global.
var caseInsensitiveValues = map[string][]string{
	"autocomplete":    {"form"},
	"charset":         {"meta", "script"},
	"contenteditable": nil,
	"crossorigin":     {"audio", "img", "link", "script", "video"},
	"dir":             nil,
	"draggable":       nil,
	"dropzone":        nil,
	"formmethod":      {"button", "input"},
	"inputmode":       nil,
	"kind":            {"track"},
	"method":          {"form"},
	"preload":         {"audio", "video"},
	"referrerpolicy":  nil,
	"sandbox":         {"iframe"},
	"spellcheck":      nil,
	"scope":           {"th"},
	"shape":           {"area"},
	"sizes":           {"link"},
	"step":            {"input"},
	"translate":       nil,
	"type":            {"a", "link", "button", "embed", "object", "script", "source", "style", "input", "menu", "menuitem"},
	"wrap":            {"textarea"},
}

// NormalizeAttributeValues lowercases the values of case-insensitive
// enumerated attributes so that later gzip passes see repeated strings.
func NormalizeAttributeValues() *feature.Module {
	return &feature.Module{
		OnAttrs: func(*feature.Options, any) feature.AttrsHandler {
			return func(attrs markup.Attrs, node *markup.Node) markup.Attrs {
				tag := strings.ToLower(node.Tag)
				for i := range attrs {
					a := &attrs[i]
					if a.Bool || a.Value == "" {
						continue
					}
					tags, known := caseInsensitiveValues[a.Key]
					if !known || (tags != nil && !slices.Contains(tags, tag)) {
						continue
					}
					a.Value = strings.ToLower(a.Value)
				}
				return attrs
			}
		},
	}
}
