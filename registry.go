package htmlmin

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/alnah/go-htmlmin/feature"
	"github.com/alnah/go-htmlmin/internal/features"
)

// ErrNilLoader is returned by Register when the loader is nil.
var ErrNilLoader = errors.New("loader cannot be nil")

// Loader obtains the raw value of a feature module. The value may be a
// feature.Module, a *feature.Module, a map bundle or a
// feature.DefaultExporter, nested behind up to two default layers.
type Loader func(ctx context.Context) (any, error)

// Registry maps feature names to loaders and memoizes the unwrapped
// modules. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	loaders map[string]Loader
	modules map[string]*feature.Module
	group   singleflight.Group
}

// NewRegistry returns a registry holding the built-in modules.
func NewRegistry() *Registry {
	r := &Registry{
		loaders: make(map[string]Loader, len(features.Builtin)),
		modules: make(map[string]*feature.Module),
	}
	for name, newModule := range features.Builtin {
		r.loaders[name] = builtinLoader(newModule)
	}
	return r
}

// DefaultRegistry is shared by minifiers created without WithRegistry.
var DefaultRegistry = NewRegistry()

func builtinLoader(newModule func() *feature.Module) Loader {
	return func(context.Context) (any, error) {
		return newModule(), nil
	}
}

// Register replaces the implementation of a recognized feature and drops
// its memoized module.
func (r *Registry) Register(name string, loader Loader) error {
	if !IsFeature(name) {
		return fmt.Errorf("%w: %s", ErrModuleNotDefined, name)
	}
	if loader == nil {
		return fmt.Errorf("registering %s: %w", name, ErrNilLoader)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaders[name] = loader
	delete(r.modules, name)
	return nil
}

// Resolve returns the module of a recognized feature, loading and
// unwrapping it on first use. Concurrent first calls share one load.
// Failed loads are retried on the next call.
func (r *Registry) Resolve(ctx context.Context, name string) (*feature.Module, error) {
	if !IsFeature(name) {
		return nil, fmt.Errorf("%w: %s", ErrModuleNotDefined, name)
	}

	r.mu.RLock()
	mod, cached := r.modules[name]
	r.mu.RUnlock()
	if cached {
		return mod, nil
	}

	v, err, _ := r.group.Do(name, func() (any, error) {
		return r.load(ctx, name)
	})
	if err != nil {
		return nil, err
	}
	return v.(*feature.Module), nil
}

func (r *Registry) load(ctx context.Context, name string) (*feature.Module, error) {
	r.mu.RLock()
	mod, cached := r.modules[name]
	loader, ok := r.loaders[name]
	r.mu.RUnlock()
	if cached {
		return mod, nil
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s has no loader", ErrModuleNotDefined, name)
	}

	raw, err := loader(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading module %s: %w", name, err)
	}
	mod, err = feature.Unwrap(raw)
	if err != nil {
		return nil, fmt.Errorf("module %s: %w", name, err)
	}

	r.mu.Lock()
	r.modules[name] = mod
	r.mu.Unlock()
	return mod, nil
}

// Cached reports whether the module of name is memoized.
func (r *Registry) Cached(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.modules[name]
	return ok
}
