// Package htmlmin minifies HTML by running an ordered set of named features
// over a parsed markup tree.
//
// # Quick Start
//
// Minify a string with the safe preset:
//
//	out, err := htmlmin.Process(ctx, page, htmlmin.Options{}, htmlmin.Safe())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Register the tdewolff engines with a blank import to enable CSS, JS and
// SVG minification:
//
//	import _ "github.com/alnah/go-htmlmin/engines/tdewolff"
//
// Without them, minifyCss, minifyJs and minifySvg log a warning and leave
// content unchanged.
//
// # Presets and Options
//
// A preset is an ordered list of feature options. The caller's
// Options.Features are spread over it: an existing key keeps its position
// and takes the new value, a new key is appended. The resulting order is
// the execution order.
//
//	features := feature.NewOptions(
//	    feature.Pair{Key: "removeComments", Value: "all"},
//	    feature.Pair{Key: "minifySvg", Value: false},
//	)
//	out, err := htmlmin.Process(ctx, page, htmlmin.Options{Features: features}, htmlmin.Max())
//
// The built-in presets are safe (the default), ampSafe and max. A false,
// nil, empty or zero value disables a feature; any other value enables it
// and is passed to the module as its own options.
//
// # Config Files
//
// Unless Options.SkipConfigLoading is set, the first of .htmlminrc,
// .htmlminrc.json, .htmlminrc.yaml, .htmlminrc.yml, .htmlminrc.toml and
// htmlmin.config.{json,yaml,yml,toml} found from the working directory
// upward is merged under the caller's options. A "preset" key selects a
// built-in preset when the caller passed none.
//
// # Pipeline
//
// Each run:
//
//  1. Resolves the effective options (preset, config file, caller)
//  2. For each enabled feature, probes its optional engines and resolves
//     its module from the Registry
//  3. Runs the whole-tree transforms in option order
//  4. Walks the tree once, applying attribute, content and node handlers
//
// # Custom Modules
//
// Registry.Register replaces a built-in implementation. The custom feature
// runs caller functions or Go scripts interpreted at run time:
//
//	features := feature.NewOptions(feature.Pair{Key: "custom", Value: "./strip-ids.go"})
//
// See the feature package for the module contract.
package htmlmin
