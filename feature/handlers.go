package feature

import "github.com/alnah/go-htmlmin/markup"

// Handlers holds the composed handler chains of a run, in registration
// order. A nil handler is never stored.
type Handlers struct {
	Attrs   []AttrsHandler
	Content []ContentHandler
	Node    []NodeHandler
}

// Add appends the non-nil handlers to their chains.
func (h *Handlers) Add(attrs AttrsHandler, content ContentHandler, node NodeHandler) {
	if attrs != nil {
		h.Attrs = append(h.Attrs, attrs)
	}
	if content != nil {
		h.Content = append(h.Content, content)
	}
	if node != nil {
		h.Node = append(h.Node, node)
	}
}

// Empty reports whether no handler of any kind was registered.
func (h *Handlers) Empty() bool {
	return h == nil || len(h.Attrs)+len(h.Content)+len(h.Node) == 0
}

// Run walks the tree once. For every node it lowercases attribute names
// and threads the attributes through the attribute chain, then the
// non-empty content through the content chain. Every item, text included,
// then goes through the node chain; a nil result removes it and stops the
// chain. Children are visited after their parent's handlers ran.
func (h *Handlers) Run(tree *markup.Tree) {
	if h.Empty() || tree == nil {
		return
	}
	tree.Walk(h.visit)
}

func (h *Handlers) visit(item markup.Item) markup.Item {
	if n, ok := item.(*markup.Node); ok && n != nil {
		if n.Attrs != nil {
			attrs := n.Attrs.Lowered()
			for _, handle := range h.Attrs {
				attrs = handle(attrs, n)
			}
			n.Attrs = attrs
		}
		if len(n.Content) > 0 {
			content := n.Content
			for _, handle := range h.Content {
				content = handle(content, n)
			}
			n.Content = content
		}
	}
	for _, handle := range h.Node {
		item = handle(item)
		if isNilItem(item) {
			return nil
		}
	}
	return item
}

func isNilItem(item markup.Item) bool {
	if item == nil {
		return true
	}
	n, ok := item.(*markup.Node)
	return ok && n == nil
}
