// Package script loads feature modules written as Go source files and
// interpreted at run time.
//
// A script is a package main file that declares any of:
//
//	func OnAttrs(opts *feature.Options, featureOpts any) feature.AttrsHandler
//	func OnContent(opts *feature.Options, featureOpts any) feature.ContentHandler
//	func OnNode(opts *feature.Options, featureOpts any) feature.NodeHandler
//	func Transform(ctx context.Context, tree *markup.Tree, opts *feature.Options, featureOpts any) (*markup.Tree, error)
//
// The standard library and the markup and feature packages are importable.
// Load returns the declarations as a module bundle for feature.Unwrap.
package script

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/alnah/go-htmlmin/feature"
)

// Sentinel errors.
var (
	ErrEmptyScript = errors.New("script is empty")
	ErrNoExports   = errors.New("script declares none of OnAttrs, OnContent, OnNode, Transform")
	ErrNotFunc     = errors.New("script export is not a function")
)

// exports maps script identifiers to module bundle keys.
var exports = []struct {
	name string
	key  string
}{
	{"OnAttrs", feature.KeyOnAttrs},
	{"OnContent", feature.KeyOnContent},
	{"OnNode", feature.KeyOnNode},
	{"Transform", feature.KeyDefault},
}

type entry struct {
	modTime time.Time
	size    int64
	bundle  map[string]any
}

// Loader interprets scripts and caches the result per path until the file
// changes on disk.
type Loader struct {
	mu    sync.Mutex
	cache map[string]entry
}

// NewLoader returns an empty loader.
func NewLoader() *Loader {
	return &Loader{cache: make(map[string]entry)}
}

var defaultLoader = NewLoader()

// Load interprets path with the shared loader.
func Load(path string) (map[string]any, error) {
	return defaultLoader.Load(path)
}

// Load interprets the script at path and returns its module bundle.
func (l *Loader) Load(path string) (map[string]any, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("script: stat %s: %w", path, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok := l.cache[path]; ok && e.modTime.Equal(info.ModTime()) && e.size == info.Size() {
		return e.bundle, nil
	}

	bundle, err := interpret(path)
	if err != nil {
		return nil, err
	}
	l.cache[path] = entry{modTime: info.ModTime(), size: info.Size(), bundle: bundle}
	return bundle, nil
}

func interpret(path string) (map[string]any, error) {
	code, err := os.ReadFile(path) // #nosec G304 -- user-provided script path
	if err != nil {
		return nil, fmt.Errorf("script: read %s: %w", path, err)
	}
	if strings.TrimSpace(string(code)) == "" {
		return nil, fmt.Errorf("script: %s: %w", path, ErrEmptyScript)
	}

	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("script: loading stdlib symbols: %w", err)
	}
	if err := i.Use(Symbols); err != nil {
		return nil, fmt.Errorf("script: loading module symbols: %w", err)
	}
	if _, err := i.EvalPath(path); err != nil {
		return nil, fmt.Errorf("script: interpret %s: %w", path, err)
	}

	bundle := make(map[string]any, len(exports))
	for _, exp := range exports {
		v, err := i.Eval(exp.name)
		if err != nil || !v.IsValid() {
			continue
		}
		if v.Kind() != reflect.Func {
			return nil, fmt.Errorf("script: %s: %s: %w", path, exp.name, ErrNotFunc)
		}
		bundle[exp.key] = v.Interface()
	}
	if len(bundle) == 0 {
		return nil, fmt.Errorf("script: %s: %w", path, ErrNoExports)
	}
	return bundle, nil
}
