package features

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/alnah/go-htmlmin/feature"
	"github.com/alnah/go-htmlmin/markup"
)

// Sort orders accepted by sortAttributes and sortAttributesWithLists.
const (
	SortAlphabetical = "alphabetical"
	SortFrequency    = "frequency"
)

func sortMode(featureOpts any) string {
	if featureOpts == true {
		return SortAlphabetical
	}
	switch mode := feature.String(featureOpts, ""); mode {
	case SortAlphabetical, SortFrequency:
		return mode
	}
	return ""
}

// frequencyOrder ranks names by descending count, ties broken by first
// appearance.
type frequencyOrder struct {
	count map[string]int
	first map[string]int
}

func newFrequencyOrder() *frequencyOrder {
	return &frequencyOrder{count: make(map[string]int), first: make(map[string]int)}
}

func (f *frequencyOrder) add(name string) {
	if _, seen := f.first[name]; !seen {
		f.first[name] = len(f.first)
	}
	f.count[name]++
}

func (f *frequencyOrder) compare(a, b string) int {
	if c := cmp.Compare(f.count[b], f.count[a]); c != 0 {
		return c
	}
	return cmp.Compare(f.first[a], f.first[b])
}

// SortAttributes reorders attributes to help gzip. true or "alphabetical"
// sorts names alphabetically; "frequency" puts the names used most often
// across the document first.
func SortAttributes() *feature.Module {
	return &feature.Module{
		OnAttrs: func(_ *feature.Options, featureOpts any) feature.AttrsHandler {
			if sortMode(featureOpts) != SortAlphabetical {
				return nil
			}
			return func(attrs markup.Attrs, _ *markup.Node) markup.Attrs {
				slices.SortStableFunc(attrs, func(a, b markup.Attr) int {
					return strings.Compare(a.Key, b.Key)
				})
				return attrs
			}
		},
		Default: func(_ context.Context, tree *markup.Tree, _ *feature.Options, featureOpts any) (*markup.Tree, error) {
			if sortMode(featureOpts) != SortFrequency {
				return tree, nil
			}
			order := newFrequencyOrder()
			tree.Match(func(n *markup.Node) {
				for _, a := range n.Attrs {
					order.add(a.Key)
				}
			})
			tree.Match(func(n *markup.Node) {
				slices.SortStableFunc(n.Attrs, func(a, b markup.Attr) int {
					return order.compare(a.Key, b.Key)
				})
			})
			return tree, nil
		},
	}
}

// SortAttributesWithLists sorts the tokens of list-valued attributes such
// as class and rel, with the same modes as SortAttributes. Sorted lists are
// joined with single spaces.
func SortAttributesWithLists() *feature.Module {
	return &feature.Module{
		OnAttrs: func(_ *feature.Options, featureOpts any) feature.AttrsHandler {
			if sortMode(featureOpts) != SortAlphabetical {
				return nil
			}
			return func(attrs markup.Attrs, _ *markup.Node) markup.Attrs {
				for i := range attrs {
					sortListAttr(&attrs[i], strings.Compare)
				}
				return attrs
			}
		},
		Default: func(_ context.Context, tree *markup.Tree, _ *feature.Options, featureOpts any) (*markup.Tree, error) {
			if sortMode(featureOpts) != SortFrequency {
				return tree, nil
			}
			order := newFrequencyOrder()
			tree.Match(func(n *markup.Node) {
				for _, a := range n.Attrs {
					if attributesWithLists[a.Key] && !a.Bool {
						for _, tok := range strings.FieldsFunc(a.Value, isWhitespace) {
							order.add(tok)
						}
					}
				}
			})
			tree.Match(func(n *markup.Node) {
				for i := range n.Attrs {
					sortListAttr(&n.Attrs[i], order.compare)
				}
			})
			return tree, nil
		},
	}
}

func sortListAttr(a *markup.Attr, compare func(a, b string) int) {
	if !attributesWithLists[a.Key] || a.Bool {
		return
	}
	tokens := strings.FieldsFunc(a.Value, isWhitespace)
	if len(tokens) < 2 {
		return
	}
	slices.SortStableFunc(tokens, compare)
	a.Value = strings.Join(tokens, " ")
}
