package markup

import "strings"

// Item is an entry of a Content sequence: a *Node or a Text.
type Item interface {
	isItem()
}

// Text is a raw markup chunk: character data, a comment, a doctype or any
// other non-element token, stored exactly as it appeared in the source.
type Text string

func (Text) isItem() {}

// Node is an element. A node with an empty Tag renders only its content,
// which lets transformations drop a wrapper while keeping its children.
type Node struct {
	Tag         string
	Attrs       Attrs   // nil when the element has no attribute list
	Content     Content // nil when the element has no children
	SelfClosing bool    // written as <tag/> in the source
}

func (*Node) isItem() {}

// Content is an ordered sequence of items.
type Content []Item

// Tree is a parsed document or fragment.
type Tree struct {
	Content Content
	Options RenderOptions
}

// RenderOptions controls serialization.
type RenderOptions struct {
	// QuoteAllAttributes writes every attribute value in double quotes.
	// When false, values that need no quoting are written bare.
	QuoteAllAttributes bool
}

// DefaultRenderOptions returns the options a freshly parsed tree starts with.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{QuoteAllAttributes: true}
}

// NewTree returns a tree over content with default render options.
func NewTree(content Content) *Tree {
	return &Tree{Content: content, Options: DefaultRenderOptions()}
}

// Walk visits every item of the tree in pre-order. fn returns the item to
// keep in place of the visited one, or nil to remove it. Children of the
// returned node are visited after fn returns.
func (t *Tree) Walk(fn func(Item) Item) {
	t.Content = walkContent(t.Content, fn)
}

// Walk visits the node's descendants the same way Tree.Walk does.
// The node itself is not visited.
func (n *Node) Walk(fn func(Item) Item) {
	n.Content = walkContent(n.Content, fn)
}

func walkContent(content Content, fn func(Item) Item) Content {
	if content == nil {
		return nil
	}
	kept := content[:0]
	for _, item := range content {
		result := fn(item)
		if result == nil {
			continue
		}
		if n, ok := result.(*Node); ok && n != nil && len(n.Content) > 0 {
			n.Content = walkContent(n.Content, fn)
		}
		kept = append(kept, result)
	}
	// Clear the tail so removed items can be collected.
	for i := len(kept); i < len(content); i++ {
		content[i] = nil
	}
	return kept
}

// Match calls fn for every element node, in pre-order, without the ability
// to replace nodes.
func (t *Tree) Match(fn func(*Node)) {
	matchContent(t.Content, fn)
}

func matchContent(content Content, fn func(*Node)) {
	for _, item := range content {
		if n, ok := item.(*Node); ok && n != nil {
			fn(n)
			matchContent(n.Content, fn)
		}
	}
}

// TextContent concatenates the Text items directly under the node.
func (n *Node) TextContent() string {
	var b strings.Builder
	for _, item := range n.Content {
		if t, ok := item.(Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String()
}

// HasTag reports whether the node's tag equals one of tags, case-insensitively.
func (n *Node) HasTag(tags ...string) bool {
	if n == nil {
		return false
	}
	for _, tag := range tags {
		if strings.EqualFold(n.Tag, tag) {
			return true
		}
	}
	return false
}
