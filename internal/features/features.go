// Package features implements the built-in feature modules.
//
// Each constructor returns the module descriptor for one feature name.
// Attribute and content handlers run inside the single tree walk of a
// minification run; transforms run before it, one after another.
package features

import (
	"strings"

	"github.com/alnah/go-htmlmin/feature"
	"github.com/alnah/go-htmlmin/markup"
)

// Builtin maps every recognized feature name to its module constructor.
var Builtin = map[string]func() *feature.Module{
	"removeComments":              RemoveComments,
	"removeEmptyAttributes":       RemoveEmptyAttributes,
	"removeAttributeQuotes":       RemoveAttributeQuotes,
	"collapseAttributeWhitespace": CollapseAttributeWhitespace,
	"collapseWhitespace":          CollapseWhitespace,
	"collapseBooleanAttributes":   CollapseBooleanAttributes,
	"deduplicateAttributeValues":  DeduplicateAttributeValues,
	"mergeStyles":                 MergeStyles,
	"mergeScripts":                MergeScripts,
	"minifyCss":                   MinifyCSS,
	"minifyConditionalComments":   MinifyConditionalComments,
	"minifyJs":                    MinifyJS,
	"minifyJson":                  MinifyJSON,
	"minifySvg":                   MinifySVG,
	"minifyUrls":                  MinifyURLs,
	"normalizeAttributeValues":    NormalizeAttributeValues,
	"removeRedundantAttributes":   RemoveRedundantAttributes,
	"removeOptionalTags":          RemoveOptionalTags,
	"removeUnusedCss":             RemoveUnusedCSS,
	"sortAttributes":              SortAttributes,
	"sortAttributesWithLists":     SortAttributesWithLists,
	"custom":                      Custom,
}

// attributesWithLists hold whitespace-separated token lists.
var attributesWithLists = map[string]bool{
	"class":    true,
	"dropzone": true,
	"rel":      true,
	"ping":     true,
	"sandbox":  true,
	"sizes":    true,
	"headers":  true,
}

// isEventHandler reports whether an attribute name is an inline event
// handler such as onclick.
func isEventHandler(name string) bool {
	return len(name) > 2 && strings.HasPrefix(name, "on")
}

// isWhitespace matches the HTML whitespace set.
func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\f', '\r', '\v':
		return true
	}
	return false
}

func isBlank(s string) bool {
	return strings.TrimFunc(s, isWhitespace) == ""
}

// scriptType returns the lowercased type of a script element, defaulting to
// text/javascript.
func scriptType(attrs markup.Attrs) string {
	t := strings.ToLower(strings.TrimSpace(attrs.Value("type")))
	if t == "" {
		return "text/javascript"
	}
	return t
}

func isJSType(t string) bool {
	switch t {
	case "text/javascript", "application/javascript", "module",
		"application/x-javascript", "text/ecmascript", "application/ecmascript":
		return true
	}
	return false
}
