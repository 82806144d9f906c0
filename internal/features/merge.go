package features

import (
	"fmt"
	"strings"

	"github.com/alnah/go-htmlmin/feature"
	"github.com/alnah/go-htmlmin/markup"
)

// MergeStyles merges inline <style> elements sharing a type and media into
// the first of them. Scoped and AMP boilerplate styles are left alone.
func MergeStyles() *feature.Module {
	return &feature.Module{
		Default: feature.TreeTransform(func(tree *markup.Tree) {
			first := make(map[string]*markup.Node)
			tree.Walk(func(item markup.Item) markup.Item {
				n, ok := item.(*markup.Node)
				if !ok || !n.HasTag("style") {
					return item
				}
				if n.Attrs.Has("scoped") || markup.IsAmpBoilerplate(n) {
					return item
				}
				styleType := n.Attrs.Value("type")
				if styleType == "" {
					styleType = "text/css"
				}
				media := n.Attrs.Value("media")
				if media == "" {
					media = "all"
				}
				key := styleType + "_" + media
				if target, seen := first[key]; seen {
					target.Content = append(target.Content, markup.Text(" "+markup.ExtractCSS(n)))
					return nil
				}
				first[key] = n
				return item
			})
		}),
	}
}

// MergeScripts merges consecutive inline JavaScript <script> elements that
// share id, class, type and defer/async flags into the last of them.
// External scripts split the groups.
func MergeScripts() *feature.Module {
	return &feature.Module{
		Default: feature.TreeTransform(func(tree *markup.Tree) {
			groups := make(map[string][]*markup.Node)
			var order []string
			srcIndex := 1

			tree.Match(func(n *markup.Node) {
				if !n.HasTag("script") {
					return
				}
				if n.Attrs.Has("src") || n.Attrs.Has("integrity") {
					srcIndex++
					return
				}
				typ := scriptType(n.Attrs)
				if typ != "text/javascript" && typ != "application/javascript" {
					return
				}
				key := fmt.Sprintf("%s|%s|%s|%t|%t|%d",
					n.Attrs.Value("id"), n.Attrs.Value("class"), typ,
					n.Attrs.Has("defer"), n.Attrs.Has("async"), srcIndex)
				if _, ok := groups[key]; !ok {
					order = append(order, key)
				}
				groups[key] = append(groups[key], n)
			})

			for _, key := range order {
				nodes := groups[key]
				last := nodes[len(nodes)-1]
				for i := len(nodes) - 2; i >= 0; i-- {
					n := nodes[i]
					script := strings.TrimSpace(n.TextContent())
					if !strings.HasSuffix(script, ";") {
						script += ";"
					}
					last.Content = append(markup.Content{markup.Text(script)}, last.Content...)
					n.Tag = ""
					n.Attrs = nil
					n.Content = nil
				}
			}
		}),
	}
}
