package htmlmin

import (
	"context"
	"log/slog"
	"time"

	"github.com/alnah/go-htmlmin/engine"
	"github.com/alnah/go-htmlmin/markup"
)

// Minifier runs the feature pipeline over markup trees. It holds no
// per-run state and is safe for concurrent use on distinct trees.
type Minifier struct {
	registry *Registry
	engines  *engine.Registry
	logger   *slog.Logger
	metrics  *Metrics
}

// Option configures a Minifier.
type Option func(*Minifier)

// WithLogger sets the logger receiving engine warnings and run details.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Minifier) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithMetrics records runs into metrics.
func WithMetrics(metrics *Metrics) Option {
	return func(m *Minifier) {
		m.metrics = metrics
	}
}

// WithRegistry resolves feature modules from r instead of DefaultRegistry.
func WithRegistry(r *Registry) Option {
	return func(m *Minifier) {
		if r != nil {
			m.registry = r
		}
	}
}

// WithEngines uses r for optional engines instead of the process-wide
// engine registry.
func WithEngines(r *engine.Registry) Option {
	return func(m *Minifier) {
		if r != nil {
			m.engines = r
		}
	}
}

// New creates a Minifier.
func New(opts ...Option) *Minifier {
	m := &Minifier{
		registry: DefaultRegistry,
		engines:  engine.Default(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Minify resolves the effective options of opts and preset, then applies
// every enabled feature to tree. A zero preset means the safe one.
// The returned tree may be tree itself, modified in place.
func (m *Minifier) Minify(ctx context.Context, tree *markup.Tree, opts Options, preset Preset) (*markup.Tree, error) {
	if tree == nil {
		return nil, ErrNilTree
	}
	start := time.Now()
	out, err := m.minify(ctx, tree, opts, preset)
	m.metrics.observeRun(start, err)
	return out, err
}

func (m *Minifier) minify(ctx context.Context, tree *markup.Tree, opts Options, preset Preset) (*markup.Tree, error) {
	features, preset, meta, err := LoadConfig(opts, preset)
	if err != nil {
		return nil, err
	}
	if meta.ConfigPath != "" {
		m.logger.DebugContext(ctx, "config file merged", "path", meta.ConfigPath)
	}

	effective := preset.Features.Merge(features)
	m.logger.DebugContext(ctx, "effective options", "preset", preset.Name, "features", effective.String())

	ctx = engine.WithRegistry(ctx, m.engines)
	p, err := m.compose(ctx, effective, meta.SkipInternalWarnings)
	if err != nil {
		return nil, err
	}
	return p.execute(ctx, tree, m.metrics)
}

// Process parses html, minifies it and renders the result.
func (m *Minifier) Process(ctx context.Context, html string, opts Options, preset Preset) (string, error) {
	tree, err := markup.ParseString(html)
	if err != nil {
		return "", err
	}
	tree, err = m.Minify(ctx, tree, opts, preset)
	if err != nil {
		return "", err
	}
	out := tree.String()
	m.metrics.observeBytes(len(html), len(out))
	return out, nil
}

// Minify runs a default Minifier.
func Minify(ctx context.Context, tree *markup.Tree, opts Options, preset Preset) (*markup.Tree, error) {
	return New().Minify(ctx, tree, opts, preset)
}

// Process runs a default Minifier over an HTML string.
func Process(ctx context.Context, html string, opts Options, preset Preset) (string, error) {
	return New().Process(ctx, html, opts, preset)
}
