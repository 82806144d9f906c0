package feature

import (
	"context"

	"github.com/alnah/go-htmlmin/markup"
)

// AttrsHandler rewrites the attribute list of an element.
type AttrsHandler func(attrs markup.Attrs, node *markup.Node) markup.Attrs

// ContentHandler rewrites the children of an element.
type ContentHandler func(content markup.Content, node *markup.Node) markup.Content

// NodeHandler rewrites a single item of the tree. Returning nil removes it.
type NodeHandler func(item markup.Item) markup.Item

// Transform rewrites the whole tree. It receives the effective options of
// the run and the option value of its own feature.
type Transform func(ctx context.Context, tree *markup.Tree, opts *Options, featureOpts any) (*markup.Tree, error)

// Handler factories. A nil result means the feature contributes no handler
// of that kind for the given options.
type (
	AttrsFactory   func(opts *Options, featureOpts any) AttrsHandler
	ContentFactory func(opts *Options, featureOpts any) ContentHandler
	NodeFactory    func(opts *Options, featureOpts any) NodeHandler
)

// TreeFunc is a caller-supplied tree rewrite run by the custom feature.
type TreeFunc func(ctx context.Context, tree *markup.Tree, opts *Options) (*markup.Tree, error)

// TreeTransform adapts an in-place tree mutation to a Transform.
func TreeTransform(fn func(tree *markup.Tree)) Transform {
	return func(_ context.Context, tree *markup.Tree, _ *Options, _ any) (*markup.Tree, error) {
		fn(tree)
		return tree, nil
	}
}

// Module describes a feature implementation. At least one field must be set.
type Module struct {
	OnAttrs   AttrsFactory
	OnContent ContentFactory
	OnNode    NodeFactory
	Default   Transform
}

// HasHandlers reports whether the module declares any handler factory.
func (m *Module) HasHandlers() bool {
	return m != nil && (m.OnAttrs != nil || m.OnContent != nil || m.OnNode != nil)
}

// Valid reports whether the module declares a factory or a transform.
func (m *Module) Valid() bool {
	return m.HasHandlers() || (m != nil && m.Default != nil)
}

// DefaultExporter is implemented by values that wrap a module, or another
// wrapper, behind a "default" export.
type DefaultExporter interface {
	DefaultExport() any
}
