package features

import (
	"slices"
	"strings"

	"github.com/alnah/go-htmlmin/feature"
	"github.com/alnah/go-htmlmin/markup"
)

// Attributes that mean nothing when empty.
var safeToRemoveEmpty = map[string]bool{
	"id": true, "class": true, "style": true, "title": true, "lang": true, "dir": true,
}

// RemoveEmptyAttributes drops empty or whitespace-only values of attributes
// whose absence means the same thing.
func RemoveEmptyAttributes() *feature.Module {
	return &feature.Module{
		OnAttrs: func(*feature.Options, any) feature.AttrsHandler {
			return func(attrs markup.Attrs, _ *markup.Node) markup.Attrs {
				return slices.DeleteFunc(attrs, func(a markup.Attr) bool {
					if !safeToRemoveEmpty[a.Key] && !isEventHandler(a.Key) {
						return false
					}
					return a.Bool || isBlank(a.Value)
				})
			}
		},
	}
}

// RemoveAttributeQuotes renders attribute values without quotes where the
// HTML syntax allows it.
func RemoveAttributeQuotes() *feature.Module {
	return &feature.Module{
		Default: feature.TreeTransform(func(tree *markup.Tree) {
			tree.Options.QuoteAllAttributes = false
		}),
	}
}

// Attributes whose whole value is a single token, trimmed by
// CollapseAttributeWhitespace.
var singleValueAttributes = map[string]bool{
	"action": true, "background": true, "cite": true, "codebase": true, "data": true,
	"formaction": true, "href": true, "icon": true, "longdesc": true, "manifest": true,
	"poster": true, "profile": true, "src": true, "usemap": true, "xmlns": true,
	"id": true, "name": true, "for": true, "type": true, "method": true, "lang": true,
}

// CollapseAttributeWhitespace collapses whitespace runs in list attributes
// and trims single-valued and event-handler attributes.
func CollapseAttributeWhitespace() *feature.Module {
	return &feature.Module{
		OnAttrs: func(*feature.Options, any) feature.AttrsHandler {
			return func(attrs markup.Attrs, _ *markup.Node) markup.Attrs {
				for i := range attrs {
					a := &attrs[i]
					if a.Bool {
						continue
					}
					switch {
					case attributesWithLists[a.Key]:
						a.Value = strings.Join(strings.FieldsFunc(a.Value, isWhitespace), " ")
					case singleValueAttributes[a.Key] || isEventHandler(a.Key):
						a.Value = strings.TrimFunc(a.Value, isWhitespace)
					}
				}
				return attrs
			}
		},
	}
}

// DeduplicateAttributeValues removes repeated tokens from list attributes.
// Whitespace is kept as written.
func DeduplicateAttributeValues() *feature.Module {
	return &feature.Module{
		OnAttrs: func(*feature.Options, any) feature.AttrsHandler {
			return func(attrs markup.Attrs, _ *markup.Node) markup.Attrs {
				for i := range attrs {
					if attributesWithLists[attrs[i].Key] && !attrs[i].Bool {
						attrs[i].Value = deduplicateTokens(attrs[i].Value)
					}
				}
				return attrs
			}
		},
	}
}

// deduplicateTokens splits on every single whitespace character, so empty
// tokens stand for extra whitespace and are always kept.
func deduplicateTokens(value string) string {
	tokens := splitEachWhitespace(value)
	seen := make(map[string]bool, len(tokens))
	out := tokens[:0]
	for _, tok := range tokens {
		if tok == "" {
			out = append(out, tok)
			continue
		}
		if seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return strings.Join(out, " ")
}

func splitEachWhitespace(s string) []string {
	var tokens []string
	start := 0
	for i, r := range s {
		if isWhitespace(r) {
			tokens = append(tokens, s[start:i])
			start = i + len(string(r))
		}
	}
	return append(tokens, s[start:])
}
