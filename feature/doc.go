// Package feature defines the contract between the minification pipeline
// and the modules that implement individual features.
//
// A feature module contributes up to four things:
//
//   - OnAttrs: a factory returning a handler over an element's attributes
//   - OnContent: a factory returning a handler over an element's children
//   - OnNode: a factory returning a handler over any item of the tree
//   - Default: a whole-tree transform
//
// Factories receive the effective options of the run and the feature's own
// option value, and may return nil when they have nothing to do for that
// configuration.
//
// Modules reach the pipeline through loaders whose results can be wrapped in
// "default" layers (map bundles, DefaultExporter values). Unwrap normalizes
// any of those shapes into a *Module.
//
// Options is an insertion-ordered map: the order of its keys is the order in
// which features run.
package feature
