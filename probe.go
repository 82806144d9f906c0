package htmlmin

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-htmlmin/engine"
	"github.com/alnah/go-htmlmin/feature"
)

// optionalDependencies lists the engines each feature delegates to.
var optionalDependencies = map[string][]string{
	"minifyCss":  {engine.CSS},
	"minifyJs":   {engine.JS},
	"minifyUrls": {engine.JS},
	"minifySvg":  {engine.SVG},
}

// prober checks the optional engines of one feature before its module
// is resolved.
type prober struct {
	engines      *engine.Registry
	logger       *slog.Logger
	metrics      *Metrics
	skipWarnings bool
}

// probe opens every engine of the feature concurrently. An absent engine is
// logged and tolerated; any other failure aborts the run.
func (p prober) probe(ctx context.Context, name string) error {
	deps := optionalDependencies[name]
	if len(deps) == 0 {
		return nil
	}

	results := make([]engine.Result, len(deps))
	var g errgroup.Group
	for i, dep := range deps {
		g.Go(func() error {
			res := p.engines.Probe(dep)
			results[i] = res
			if res.Status == engine.Failed {
				return fmt.Errorf("%w: %s for %s: %w", ErrOptionalDependencyProbe, res.Name, name, res.Err)
			}
			return nil
		})
	}
	err := g.Wait()

	for _, res := range results {
		p.metrics.observeProbe(res)
		if res.Status == engine.Absent && !p.skipWarnings && err == nil {
			p.logger.WarnContext(ctx, "optional engine not installed, feature runs without it",
				"engine", res.Name, "feature", name)
		}
	}
	return err
}

// RequiredEngines lists, sorted and without duplicates, the engines used by
// the features enabled for opts and preset. Config files are consulted as
// they would be by Minify.
func RequiredEngines(opts Options, preset Preset) ([]string, error) {
	features, preset, _, err := LoadConfig(opts, preset)
	if err != nil {
		return nil, err
	}
	return requiredEngines(preset.Features.Merge(features)), nil
}

func requiredEngines(effective *feature.Options) []string {
	var names []string
	for name, value := range effective.All() {
		if !feature.Enabled(value) {
			continue
		}
		for _, dep := range optionalDependencies[name] {
			if !slices.Contains(names, dep) {
				names = append(names, dep)
			}
		}
	}
	slices.Sort(names)
	return names
}
