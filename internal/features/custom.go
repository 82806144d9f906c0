package features

import (
	"context"
	"errors"
	"fmt"

	"github.com/alnah/go-htmlmin/feature"
	"github.com/alnah/go-htmlmin/internal/script"
	"github.com/alnah/go-htmlmin/markup"
)

// ErrInvalidCustom is returned when a custom entry is neither a function nor
// a script path.
var ErrInvalidCustom = errors.New("invalid custom module")

// Custom runs caller-provided code. The option is one entry or a []any of
// entries, applied in order. An entry returning a nil tree leaves the
// current tree in place. An entry is a feature.TreeFunc (or the same
// unnamed signature), a feature.Transform, a *feature.Module, or the path of
// a Go script loaded with the script package.
func Custom() *feature.Module {
	return &feature.Module{Default: runCustom}
}

func runCustom(ctx context.Context, tree *markup.Tree, opts *feature.Options, featureOpts any) (*markup.Tree, error) {
	entries, ok := featureOpts.([]any)
	if !ok {
		entries = []any{featureOpts}
	}
	for i, entry := range entries {
		next, err := applyCustom(ctx, tree, opts, entry)
		if err != nil {
			return nil, fmt.Errorf("custom[%d]: %w", i, err)
		}
		if next != nil {
			tree = next
		}
	}
	return tree, nil
}

func applyCustom(ctx context.Context, tree *markup.Tree, opts *feature.Options, entry any) (*markup.Tree, error) {
	switch fn := entry.(type) {
	case feature.TreeFunc:
		return fn(ctx, tree, opts)
	case func(context.Context, *markup.Tree, *feature.Options) (*markup.Tree, error):
		return fn(ctx, tree, opts)
	case *feature.Module:
		return applyModule(ctx, tree, opts, fn)
	case string:
		bundle, err := script.Load(fn)
		if err != nil {
			return nil, err
		}
		mod, err := feature.Unwrap(bundle)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fn, err)
		}
		return applyModule(ctx, tree, opts, mod)
	}
	if t, ok := feature.AsTransform(entry); ok {
		return t(ctx, tree, opts, nil)
	}
	return nil, fmt.Errorf("%w: %T", ErrInvalidCustom, entry)
}

// applyModule runs a module outside the main pipeline: its transform first,
// then its handlers in a walk of their own.
func applyModule(ctx context.Context, tree *markup.Tree, opts *feature.Options, mod *feature.Module) (*markup.Tree, error) {
	if mod.Default != nil {
		next, err := mod.Default(ctx, tree, opts, nil)
		if err != nil {
			return nil, err
		}
		if next != nil {
			tree = next
		}
	}
	var h feature.Handlers
	if mod.OnAttrs != nil {
		h.Add(mod.OnAttrs(opts, nil), nil, nil)
	}
	if mod.OnContent != nil {
		h.Add(nil, mod.OnContent(opts, nil), nil)
	}
	if mod.OnNode != nil {
		h.Add(nil, nil, mod.OnNode(opts, nil))
	}
	h.Run(tree)
	return tree, nil
}
