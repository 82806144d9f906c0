package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-json"

	"github.com/alnah/go-htmlmin/feature"
	"github.com/alnah/go-htmlmin/internal/fileutil"
	"github.com/alnah/go-htmlmin/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound    = errors.New("config file not found")
	ErrConfigParse       = errors.New("failed to parse config")
	ErrUnsupportedFormat = errors.New("unsupported config format")
)

// FileNames lists the file names searched in each directory, in order.
var FileNames = []string{
	".htmlminrc",
	".htmlminrc.json",
	".htmlminrc.yaml",
	".htmlminrc.yml",
	".htmlminrc.toml",
	"htmlmin.config.json",
	"htmlmin.config.yaml",
	"htmlmin.config.yml",
	"htmlmin.config.toml",
}

// Decoder maps file content to ordered options.
type Decoder func(data []byte) (*feature.Options, error)

// decoders by file extension; the empty extension sniffs JSON or YAML.
var decoders = map[string]Decoder{
	"":      decodeRC,
	".json": decodeJSON,
	".yaml": decodeYAML,
	".yml":  decodeYAML,
	".toml": decodeTOML,
}

// File is a loaded configuration file.
type File struct {
	Path    string
	Options *feature.Options
}

// Load reads and decodes the file at path.
// A missing file yields ErrConfigNotFound.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if strings.HasPrefix(filepath.Base(path), ".") && filepath.Ext(strings.TrimPrefix(filepath.Base(path), ".")) == "" {
		ext = ""
	}
	decode, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	opts, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
	}
	return &File{Path: path, Options: opts}, nil
}

// Find searches for a config file starting in dir and walking up to stop
// (inclusive) or the filesystem root. It returns "" when nothing is found,
// along with every path tried.
func Find(dir, stop string) (string, []string) {
	var tried []string
	dir = filepath.Clean(dir)
	if stop != "" {
		stop = filepath.Clean(stop)
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if fileutil.FileExists(candidate) {
				return candidate, tried
			}
			tried = append(tried, candidate)
		}
		if dir == stop {
			return "", tried
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", tried
		}
		dir = parent
	}
}

// Discover loads the explicit path when set. Otherwise it searches upward
// from the working directory to the home directory. It returns a nil File
// when no config exists.
func Discover(explicit string) (*File, error) {
	if explicit != "" {
		return Load(explicit)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}
	home, _ := os.UserHomeDir()
	if home != "" && !isWithin(wd, home) {
		home = ""
	}
	path, _ := Find(wd, home)
	if path == "" {
		return nil, nil
	}
	return Load(path)
}

func isWithin(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func decodeRC(data []byte) (*feature.Options, error) {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		return decodeJSON(data)
	}
	return decodeYAML(data)
}

func decodeYAML(data []byte) (*feature.Options, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return feature.NewOptions(), nil
	}
	entries, err := yamlutil.UnmarshalOrdered(data)
	if err != nil {
		return nil, err
	}
	opts := feature.NewOptions()
	for _, e := range entries {
		opts.Set(e.Key, e.Value)
	}
	return opts, nil
}

// decodeJSON walks the top-level object token by token to keep key order.
func decodeJSON(data []byte) (*feature.Options, error) {
	opts := feature.NewOptions()
	if len(bytes.TrimSpace(data)) == 0 {
		return opts, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("top-level value is not an object")
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		opts.Set(key, normalizeNumbers(value))
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return opts, nil
}

// normalizeNumbers turns json.Number values into int64 or float64.
func normalizeNumbers(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		f, _ := x.Float64()
		return f
	case map[string]any:
		for k, item := range x {
			x[k] = normalizeNumbers(item)
		}
	case []any:
		for i, item := range x {
			x[i] = normalizeNumbers(item)
		}
	}
	return v
}

func decodeTOML(data []byte) (*feature.Options, error) {
	var raw map[string]any
	meta, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, err
	}
	opts := feature.NewOptions()
	for _, key := range meta.Keys() {
		if len(key) != 1 {
			continue
		}
		opts.Set(key[0], raw[key[0]])
	}
	return opts, nil
}
