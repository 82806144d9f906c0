package script

import (
	"reflect"

	"github.com/traefik/yaegi/interp"

	"github.com/alnah/go-htmlmin/feature"
	"github.com/alnah/go-htmlmin/markup"
)

// Symbols exposes the markup and feature packages to interpreted scripts.
var Symbols = interp.Exports{
	"github.com/alnah/go-htmlmin/markup/markup": {
		// types
		"Attr":          reflect.ValueOf((*markup.Attr)(nil)),
		"Attrs":         reflect.ValueOf((*markup.Attrs)(nil)),
		"Content":       reflect.ValueOf((*markup.Content)(nil)),
		"Item":          reflect.ValueOf((*markup.Item)(nil)),
		"Node":          reflect.ValueOf((*markup.Node)(nil)),
		"RenderOptions": reflect.ValueOf((*markup.RenderOptions)(nil)),
		"Text":          reflect.ValueOf((*markup.Text)(nil)),
		"Tree":          reflect.ValueOf((*markup.Tree)(nil)),

		// functions
		"DefaultRenderOptions": reflect.ValueOf(markup.DefaultRenderOptions),
		"ExtractCSS":           reflect.ValueOf(markup.ExtractCSS),
		"IsAmpBoilerplate":     reflect.ValueOf(markup.IsAmpBoilerplate),
		"IsComment":            reflect.ValueOf(markup.IsComment),
		"IsConditionalComment": reflect.ValueOf(markup.IsConditionalComment),
		"IsStyleNode":          reflect.ValueOf(markup.IsStyleNode),
		"IsVoidElement":        reflect.ValueOf(markup.IsVoidElement),
		"NewTree":              reflect.ValueOf(markup.NewTree),
		"ParseString":          reflect.ValueOf(markup.ParseString),
		"RenderContent":        reflect.ValueOf(markup.RenderContent),
		"RenderNode":           reflect.ValueOf(markup.RenderNode),
	},
	"github.com/alnah/go-htmlmin/feature/feature": {
		// types
		"AttrsHandler":   reflect.ValueOf((*feature.AttrsHandler)(nil)),
		"ContentHandler": reflect.ValueOf((*feature.ContentHandler)(nil)),
		"NodeHandler":    reflect.ValueOf((*feature.NodeHandler)(nil)),
		"Options":        reflect.ValueOf((*feature.Options)(nil)),
		"Pair":           reflect.ValueOf((*feature.Pair)(nil)),
		"Transform":      reflect.ValueOf((*feature.Transform)(nil)),

		// functions
		"Bool":    reflect.ValueOf(feature.Bool),
		"Enabled": reflect.ValueOf(feature.Enabled),
		"Map":     reflect.ValueOf(feature.Map),
		"String":  reflect.ValueOf(feature.String),
		"Strings": reflect.ValueOf(feature.Strings),
	},
}
