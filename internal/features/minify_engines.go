package features

import (
	"context"
	"strings"

	"github.com/alnah/go-htmlmin/engine"
	"github.com/alnah/go-htmlmin/feature"
	"github.com/alnah/go-htmlmin/markup"
)

var inlineParams = map[string]string{"inline": "1"}

// MinifyCSS minifies <style> elements and style attributes with the css
// engine. Without the engine the tree is returned unchanged. Content the
// engine rejects is kept as written.
func MinifyCSS() *feature.Module {
	return &feature.Module{
		Default: func(ctx context.Context, tree *markup.Tree, _ *feature.Options, _ any) (*markup.Tree, error) {
			css, ok := engine.FromContext(ctx).Lookup(engine.CSS)
			if !ok {
				return tree, nil
			}
			tree.Match(func(n *markup.Node) {
				if markup.IsStyleNode(n) && isCSSType(n.Attrs.Value("type")) {
					src := markup.ExtractCSS(n)
					if out, err := css.Minify(src, nil); err == nil {
						n.Content = markup.Content{markup.Text(out)}
					}
				}
				for i := range n.Attrs {
					a := &n.Attrs[i]
					if a.Key != "style" || a.Bool || isBlank(a.Value) {
						continue
					}
					if out, err := css.Minify(a.Value, inlineParams); err == nil {
						a.Value = out
					}
				}
			})
			return tree, nil
		},
	}
}

func isCSSType(t string) bool {
	t = strings.ToLower(strings.TrimSpace(t))
	return t == "" || t == "text/css"
}

// MinifyJS minifies inline JavaScript <script> elements and event handler
// attributes with the js engine. Scripts carrying an integrity hash are
// skipped, since changing their body would break the hash.
func MinifyJS() *feature.Module {
	return &feature.Module{
		Default: func(ctx context.Context, tree *markup.Tree, _ *feature.Options, _ any) (*markup.Tree, error) {
			js, ok := engine.FromContext(ctx).Lookup(engine.JS)
			if !ok {
				return tree, nil
			}
			tree.Match(func(n *markup.Node) {
				if n.HasTag("script") && len(n.Content) > 0 && !n.Attrs.Has("src") &&
					!n.Attrs.Has("integrity") && isJSType(scriptType(n.Attrs)) {
					if src := n.TextContent(); !isBlank(src) {
						if out, err := js.Minify(src, nil); err == nil {
							n.Content = markup.Content{markup.Text(out)}
						}
					}
				}
				for i := range n.Attrs {
					a := &n.Attrs[i]
					if !isEventHandler(a.Key) || a.Bool || isBlank(a.Value) {
						continue
					}
					if out, err := js.Minify(a.Value, nil); err == nil && out != "" {
						a.Value = out
					}
				}
			})
			return tree, nil
		},
	}
}

// MinifySVG replaces each <svg> subtree with the output of the svg engine.
func MinifySVG() *feature.Module {
	return &feature.Module{
		Default: func(ctx context.Context, tree *markup.Tree, _ *feature.Options, _ any) (*markup.Tree, error) {
			svg, ok := engine.FromContext(ctx).Lookup(engine.SVG)
			if !ok {
				return tree, nil
			}
			opts := markup.RenderOptions{QuoteAllAttributes: true}
			tree.Walk(func(item markup.Item) markup.Item {
				n, isNode := item.(*markup.Node)
				if !isNode || !n.HasTag("svg") {
					return item
				}
				out, err := svg.Minify(markup.RenderNode(n, opts), nil)
				if err != nil {
					return item
				}
				return markup.Text(out)
			})
			return tree, nil
		},
	}
}
