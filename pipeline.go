package htmlmin

import (
	"context"
	"fmt"
	"time"

	"github.com/alnah/go-htmlmin/feature"
	"github.com/alnah/go-htmlmin/markup"
)

// plan is the composed work of one run: whole-tree transforms in option
// order, then a single walk running the handler chains.
type plan struct {
	effective  *feature.Options
	transforms []boundTransform
	handlers   feature.Handlers
}

type boundTransform struct {
	name        string
	fn          feature.Transform
	featureOpts any
}

// compose builds the plan of effective. Disabled entries are skipped.
// Every enabled entry must name a known feature; its engines are probed
// and its module resolved before the next entry is looked at.
func (m *Minifier) compose(ctx context.Context, effective *feature.Options, skipWarnings bool) (*plan, error) {
	p := &plan{effective: effective}
	pr := prober{engines: m.engines, logger: m.logger, metrics: m.metrics, skipWarnings: skipWarnings}

	for name, value := range effective.All() {
		if !feature.Enabled(value) {
			continue
		}
		if !IsFeature(name) {
			return nil, fmt.Errorf("%w: %s", ErrFeatureNotDefined, name)
		}
		if err := pr.probe(ctx, name); err != nil {
			return nil, err
		}

		mod, err := m.registry.Resolve(ctx, name)
		m.metrics.observeResolve(name, err)
		if err != nil {
			return nil, err
		}

		p.bind(name, mod, value)
	}
	return p, nil
}

func (p *plan) bind(name string, mod *feature.Module, value any) {
	var (
		attrs   feature.AttrsHandler
		content feature.ContentHandler
		node    feature.NodeHandler
	)
	if mod.OnAttrs != nil {
		attrs = mod.OnAttrs(p.effective, value)
	}
	if mod.OnContent != nil {
		content = mod.OnContent(p.effective, value)
	}
	if mod.OnNode != nil {
		node = mod.OnNode(p.effective, value)
	}
	p.handlers.Add(attrs, content, node)

	if mod.Default != nil {
		p.transforms = append(p.transforms, boundTransform{name: name, fn: mod.Default, featureOpts: value})
	}
}

// execute runs the transforms in order, each on the previous result, then
// walks the tree once with the handler chains. A transform returning a nil
// tree leaves the current tree in place.
func (p *plan) execute(ctx context.Context, tree *markup.Tree, metrics *Metrics) (*markup.Tree, error) {
	for _, t := range p.transforms {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()
		next, err := t.fn(ctx, tree, p.effective, t.featureOpts)
		metrics.observeTransform(t.name, start)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", t.name, err)
		}
		if next != nil {
			tree = next
		}
	}

	p.handlers.Run(tree)
	return tree, nil
}
