// Package engine is the registry of optional minification engines.
//
// Engines are registered by name, usually from the init function of a
// package imported for its side effects:
//
//	import _ "github.com/alnah/go-htmlmin/engines/tdewolff"
//
// A feature that needs an engine probes for it before running and looks it
// up again through the context when it processes content. A missing engine
// is not an error: the feature leaves that content unchanged.
package engine

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
)

// Engine names used by the built-in features.
const (
	CSS = "css"
	JS  = "js"
	SVG = "svg"
)

// ErrNotInstalled marks an opener failure that means the engine is simply
// not available. Probe reports it as Absent instead of Failed.
var ErrNotInstalled = errors.New("engine not installed")

// Engine minifies one kind of source text. params are engine-specific
// hints such as {"inline": "1"} for CSS declarations of a style attribute.
type Engine interface {
	Minify(src string, params map[string]string) (string, error)
}

// Opener creates an engine. It runs once per registry on first successful use.
type Opener func() (Engine, error)

// Status is the outcome of a probe.
type Status int

const (
	Available Status = iota
	Absent
	Failed
)

func (s Status) String() string {
	switch s {
	case Available:
		return "available"
	case Absent:
		return "absent"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Result is the outcome of probing one engine.
type Result struct {
	Name   string
	Status Status
	Err    error // set for Absent when the opener reported it, and for Failed
}

// Registry maps engine names to openers and caches opened engines.
// It is safe for concurrent use.
type Registry struct {
	mu      sync.Mutex
	openers map[string]Opener
	opened  map[string]Engine
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		openers: make(map[string]Opener),
		opened:  make(map[string]Engine),
	}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry that Register populates.
func Default() *Registry {
	return defaultRegistry
}

// Register adds an opener to the default registry. It panics if opener is
// nil or name is already registered.
func Register(name string, opener Opener) {
	if opener == nil {
		panic("engine: Register opener is nil")
	}
	if !defaultRegistry.add(name, opener) {
		panic("engine: Register called twice for " + name)
	}
}

func (r *Registry) add(name string, opener Opener) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.openers[name]; dup {
		return false
	}
	r.openers[name] = opener
	return true
}

// Set adds or replaces an opener and drops any engine opened from the
// previous one.
func (r *Registry) Set(name string, opener Opener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.openers[name] = opener
	delete(r.opened, name)
}

// Names lists the registered engine names, sorted.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.openers))
	for name := range r.openers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Open returns the named engine, opening it on first use.
// An unregistered name yields an error wrapping ErrNotInstalled.
func (r *Registry) Open(name string) (Engine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.opened[name]; ok {
		return e, nil
	}
	opener, ok := r.openers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotInstalled, name)
	}
	e, err := opener()
	if err != nil {
		return nil, fmt.Errorf("opening engine %s: %w", name, err)
	}
	if e == nil {
		return nil, fmt.Errorf("%w: %s opener returned no engine", ErrNotInstalled, name)
	}
	r.opened[name] = e
	return e, nil
}

// Probe classifies the availability of an engine.
func (r *Registry) Probe(name string) Result {
	_, err := r.Open(name)
	switch {
	case err == nil:
		return Result{Name: name, Status: Available}
	case errors.Is(err, ErrNotInstalled):
		return Result{Name: name, Status: Absent, Err: err}
	default:
		return Result{Name: name, Status: Failed, Err: err}
	}
}

// Lookup returns the engine if it can be opened, and false otherwise.
func (r *Registry) Lookup(name string) (Engine, bool) {
	e, err := r.Open(name)
	return e, err == nil
}

type ctxKey struct{}

// WithRegistry returns a context carrying r.
func WithRegistry(ctx context.Context, r *Registry) context.Context {
	return context.WithValue(ctx, ctxKey{}, r)
}

// FromContext returns the registry carried by ctx, or the default one.
func FromContext(ctx context.Context) *Registry {
	if ctx != nil {
		if r, ok := ctx.Value(ctxKey{}).(*Registry); ok && r != nil {
			return r
		}
	}
	return defaultRegistry
}
