package config

// Notes:
// - Discover's upward search from the working directory is exercised through
//   Find with explicit start and stop directories; changing the process
//   working directory would prevent parallel tests.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

// ---------------------------------------------------------------------------
// TestLoad - Decoding by file name keeps key order
// ---------------------------------------------------------------------------

func TestLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		file     string
		content  string
		wantKeys []string
		wantVals map[string]any
	}{
		{
			name:     "json",
			file:     "htmlmin.config.json",
			content:  `{"sortAttributes": true, "collapseWhitespace": "all", "preset": "max", "limit": 3}`,
			wantKeys: []string{"sortAttributes", "collapseWhitespace", "preset", "limit"},
			wantVals: map[string]any{"sortAttributes": true, "collapseWhitespace": "all", "preset": "max", "limit": int64(3)},
		},
		{
			name:     "yaml",
			file:     ".htmlminrc.yaml",
			content:  "removeComments: all\ncollapseBooleanAttributes:\n  amphtml: true\n",
			wantKeys: []string{"removeComments", "collapseBooleanAttributes"},
			wantVals: map[string]any{"removeComments": "all", "collapseBooleanAttributes": map[string]any{"amphtml": true}},
		},
		{
			name:     "toml",
			file:     "htmlmin.config.toml",
			content:  "minifyJs = false\nremoveComments = \"safe\"\n\n[collapseBooleanAttributes]\namphtml = true\n",
			wantKeys: []string{"minifyJs", "removeComments", "collapseBooleanAttributes"},
			wantVals: map[string]any{"minifyJs": false, "removeComments": "safe", "collapseBooleanAttributes": map[string]any{"amphtml": true}},
		},
		{
			name:     "rc as json",
			file:     ".htmlminrc",
			content:  ` {"collapseWhitespace": "all"}`,
			wantKeys: []string{"collapseWhitespace"},
			wantVals: map[string]any{"collapseWhitespace": "all"},
		},
		{
			name:     "rc as yaml",
			file:     ".htmlminrc",
			content:  "collapseWhitespace: all\n",
			wantKeys: []string{"collapseWhitespace"},
			wantVals: map[string]any{"collapseWhitespace": "all"},
		},
		{
			name:     "empty file",
			file:     "htmlmin.config.json",
			content:  "",
			wantKeys: nil,
			wantVals: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), tt.file)
			writeFile(t, path, tt.content)

			f, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if f.Path != path {
				t.Errorf("Path = %q, want %q", f.Path, path)
			}
			if diff := cmp.Diff(tt.wantKeys, f.Options.Keys()); diff != "" {
				t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantVals, f.Options.Map()); diff != "" {
				t.Errorf("values mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tests := []struct {
		name    string
		file    string
		content string
		wantErr error
	}{
		{name: "missing file", file: "absent.json", wantErr: ErrConfigNotFound},
		{name: "broken json", file: "a.json", content: `{"a": `, wantErr: ErrConfigParse},
		{name: "json array", file: "b.json", content: `[1, 2]`, wantErr: ErrConfigParse},
		{name: "broken yaml", file: "c.yaml", content: "a: [unclosed", wantErr: ErrConfigParse},
		{name: "broken toml", file: "d.toml", content: "a = = 1", wantErr: ErrConfigParse},
		{name: "unknown extension", file: "e.ini", content: "a=1", wantErr: ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(dir, tt.file)
			if tt.content != "" {
				writeFile(t, path, tt.content)
			}
			_, err := Load(path)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestFind - Upward search honors name order and stop directory
// ---------------------------------------------------------------------------

func TestFind(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	deep := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(deep, 0o750); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(root, "a", "htmlmin.config.json"), "{}")
	writeFile(t, filepath.Join(root, "a", ".htmlminrc.yaml"), "a: 1")
	writeFile(t, filepath.Join(root, ".htmlminrc"), "{}")

	t.Run("nearest directory wins, first name wins", func(t *testing.T) {
		t.Parallel()
		got, tried := Find(deep, root)
		if want := filepath.Join(root, "a", ".htmlminrc.yaml"); got != want {
			t.Errorf("Find() = %q, want %q", got, want)
		}
		if len(tried) != 2*len(FileNames)+2 {
			t.Errorf("tried %d paths, want %d", len(tried), 2*len(FileNames)+2)
		}
	})

	t.Run("stop directory bounds the search", func(t *testing.T) {
		t.Parallel()
		got, _ := Find(deep, filepath.Join(root, "a", "b"))
		if got != "" {
			t.Errorf("Find() = %q, want nothing", got)
		}
	})

	t.Run("start directory itself", func(t *testing.T) {
		t.Parallel()
		got, _ := Find(root, root)
		if want := filepath.Join(root, ".htmlminrc"); got != want {
			t.Errorf("Find() = %q, want %q", got, want)
		}
	})
}

func TestDiscover_Explicit(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "custom.yml")
	writeFile(t, path, "collapseWhitespace: all\n")

	f, err := Discover(path)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if f == nil || f.Options.Value("collapseWhitespace") != "all" {
		t.Errorf("Discover() = %+v", f)
	}

	if _, err := Discover(filepath.Join(t.TempDir(), "nope.yml")); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("Discover(missing) error = %v, want ErrConfigNotFound", err)
	}
}

func TestIsWithin(t *testing.T) {
	t.Parallel()

	base := filepath.Join(string(filepath.Separator), "home", "u")
	if !isWithin(filepath.Join(base, "proj"), base) {
		t.Error("child should be within base")
	}
	if !isWithin(base, base) {
		t.Error("base should be within itself")
	}
	if isWithin(filepath.Join(string(filepath.Separator), "tmp"), base) {
		t.Error("/tmp should not be within base")
	}
}
