package feature

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-htmlmin/markup"
)

// ---------------------------------------------------------------------------
// TestOptions_Order - Insertion order and spread semantics
// ---------------------------------------------------------------------------

func TestOptions_Order(t *testing.T) {
	t.Parallel()

	o := NewOptions(Pair{"b", 1}, Pair{"a", 2}, Pair{"b", 3})
	if diff := cmp.Diff([]string{"b", "a"}, o.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	if got := o.Value("b"); got != 3 {
		t.Errorf("Value(b) = %v, want 3", got)
	}

	o.Delete("b")
	o.Set("b", 4)
	if diff := cmp.Diff([]string{"a", "b"}, o.Keys()); diff != "" {
		t.Errorf("Keys() after re-add mismatch (-want +got):\n%s", diff)
	}
}

func TestOptions_Merge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		base     *Options
		over     *Options
		wantKeys []string
		wantVals map[string]any
	}{
		{
			name:     "existing key keeps position and takes later value",
			base:     NewOptions(Pair{"x", 1}, Pair{"y", 2}),
			over:     NewOptions(Pair{"x", 9}),
			wantKeys: []string{"x", "y"},
			wantVals: map[string]any{"x": 9, "y": 2},
		},
		{
			name:     "new key appended",
			base:     NewOptions(Pair{"x", 1}),
			over:     NewOptions(Pair{"z", true}),
			wantKeys: []string{"x", "z"},
			wantVals: map[string]any{"x": 1, "z": true},
		},
		{
			name:     "nil base",
			base:     nil,
			over:     NewOptions(Pair{"z", true}),
			wantKeys: []string{"z"},
			wantVals: map[string]any{"z": true},
		},
		{
			name:     "nil override",
			base:     NewOptions(Pair{"x", 1}),
			over:     nil,
			wantKeys: []string{"x"},
			wantVals: map[string]any{"x": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.base.Merge(tt.over)
			if diff := cmp.Diff(tt.wantKeys, got.Keys()); diff != "" {
				t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantVals, got.Map()); diff != "" {
				t.Errorf("Map() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOptions_MergeDoesNotMutate(t *testing.T) {
	t.Parallel()

	base := NewOptions(Pair{"x", 1})
	_ = base.Merge(NewOptions(Pair{"x", 2}, Pair{"y", 3}))
	if base.Len() != 1 || base.Value("x") != 1 {
		t.Errorf("base mutated: %v", base.Map())
	}
}

// ---------------------------------------------------------------------------
// TestEnabled - Falsy values switch a feature off
// ---------------------------------------------------------------------------

func TestEnabled(t *testing.T) {
	t.Parallel()

	var nilFunc func()
	tests := []struct {
		name string
		v    any
		want bool
	}{
		{"nil", nil, false},
		{"false", false, false},
		{"true", true, true},
		{"empty string", "", false},
		{"string", "safe", true},
		{"zero int", 0, false},
		{"int", 1, true},
		{"zero float", 0.0, false},
		{"zero uint8", uint8(0), false},
		{"empty map", map[string]any{}, true},
		{"nil func", nilFunc, false},
		{"func", func() {}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Enabled(tt.v); got != tt.want {
				t.Errorf("Enabled(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestAccessors(t *testing.T) {
	t.Parallel()

	if got := String(true, "safe"); got != "safe" {
		t.Errorf("String(true) = %q, want safe", got)
	}
	if got := String("all", "safe"); got != "all" {
		t.Errorf("String(all) = %q, want all", got)
	}

	m := Map(map[string]any{"amphtml": true, "list": []any{"a", 1, "b"}})
	if !Bool(m, "amphtml", false) {
		t.Error("Bool(amphtml) = false, want true")
	}
	if Bool(m, "missing", false) {
		t.Error("Bool(missing) = true, want fallback false")
	}
	if diff := cmp.Diff([]string{"a", "b"}, Strings(m, "list")); diff != "" {
		t.Errorf("Strings() mismatch (-want +got):\n%s", diff)
	}
	if got := Map(true); len(got) != 0 {
		t.Errorf("Map(true) = %v, want empty", got)
	}
}

// ---------------------------------------------------------------------------
// TestUnwrap - Module shapes behind zero, one and two default layers
// ---------------------------------------------------------------------------

type exporter struct{ v any }

func (e exporter) DefaultExport() any { return e.v }

type selfExporter struct{}

func (s *selfExporter) DefaultExport() any { return s }

func TestUnwrap(t *testing.T) {
	t.Parallel()

	onAttrs := AttrsFactory(func(*Options, any) AttrsHandler { return nil })
	transform := Transform(func(_ context.Context, tree *markup.Tree, _ *Options, _ any) (*markup.Tree, error) {
		return tree, nil
	})
	rawTransform := func(_ context.Context, tree *markup.Tree, _ *Options, _ any) (*markup.Tree, error) {
		return tree, nil
	}
	rawFactory := func(*Options, any) NodeHandler { return nil }

	tests := []struct {
		name        string
		raw         any
		wantAttrs   bool
		wantNode    bool
		wantDefault bool
		wantErr     bool
	}{
		{
			name:      "module value",
			raw:       Module{OnAttrs: onAttrs},
			wantAttrs: true,
		},
		{
			name:        "module pointer with default only",
			raw:         &Module{Default: transform},
			wantDefault: true,
		},
		{
			name:      "bundle with factory",
			raw:       map[string]any{KeyOnAttrs: onAttrs},
			wantAttrs: true,
		},
		{
			name:      "bundle one layer deep",
			raw:       map[string]any{KeyDefault: map[string]any{KeyOnAttrs: onAttrs}},
			wantAttrs: true,
		},
		{
			name: "bundle two layers deep",
			raw: map[string]any{KeyDefault: map[string]any{
				KeyDefault: map[string]any{KeyOnNode: rawFactory},
			}},
			wantNode: true,
		},
		{
			name:        "bundle with transform default",
			raw:         map[string]any{KeyDefault: rawTransform},
			wantDefault: true,
		},
		{
			name:        "transform default two layers deep",
			raw:         map[string]any{KeyDefault: map[string]any{KeyDefault: transform}},
			wantDefault: true,
		},
		{
			name:      "exporter around module",
			raw:       exporter{v: &Module{OnAttrs: onAttrs}},
			wantAttrs: true,
		},
		{
			name:        "exporter around bundle with transform",
			raw:         exporter{v: map[string]any{KeyDefault: transform}},
			wantDefault: true,
		},
		{
			name:    "empty bundle",
			raw:     map[string]any{},
			wantErr: true,
		},
		{
			name:    "empty module",
			raw:     Module{},
			wantErr: true,
		},
		{
			name:    "bare transform",
			raw:     transform,
			wantErr: true,
		},
		{
			name:    "default is not a module",
			raw:     map[string]any{KeyDefault: "nope"},
			wantErr: true,
		},
		{
			name:    "factory with wrong signature",
			raw:     map[string]any{KeyOnAttrs: func() {}},
			wantErr: true,
		},
		{
			name:    "nil",
			raw:     nil,
			wantErr: true,
		},
		{
			name:    "cyclic exporter",
			raw:     &selfExporter{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, err := Unwrap(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidModuleShape) {
					t.Fatalf("Unwrap() error = %v, want ErrInvalidModuleShape", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unwrap() unexpected error: %v", err)
			}
			if got := m.OnAttrs != nil; got != tt.wantAttrs {
				t.Errorf("OnAttrs set = %v, want %v", got, tt.wantAttrs)
			}
			if got := m.OnNode != nil; got != tt.wantNode {
				t.Errorf("OnNode set = %v, want %v", got, tt.wantNode)
			}
			if got := m.Default != nil; got != tt.wantDefault {
				t.Errorf("Default set = %v, want %v", got, tt.wantDefault)
			}
			if !m.Valid() {
				t.Error("Valid() = false for resolved module")
			}
		})
	}
}

func TestUnwrap_HandlersWinOverOuterDefault(t *testing.T) {
	t.Parallel()

	outer := Transform(func(context.Context, *markup.Tree, *Options, any) (*markup.Tree, error) {
		return nil, errors.New("outer")
	})
	inner := map[string]any{
		KeyOnContent: func(*Options, any) ContentHandler { return nil },
	}
	m, err := Unwrap(exporter{v: map[string]any{KeyDefault: inner, "unused": outer}})
	if err != nil {
		t.Fatalf("Unwrap() error = %v", err)
	}
	if m.OnContent == nil || m.Default != nil {
		t.Errorf("Unwrap() = %+v, want the inner content module", m)
	}
}
