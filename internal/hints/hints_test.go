package hints

// Notes:
// - ForConfigNotFound and ForMissingEngines tests cannot use t.Parallel()
//   because they use t.Setenv() or replace the package-level InCI variable.
// These are acceptable gaps: we test observable behavior through environment manipulation.

import (
	"strings"
	"testing"
)

func TestForConfigNotFound(t *testing.T) {
	t.Setenv("HTMLMIN_CONFIG", "")
	hint := ForConfigNotFound()
	if !strings.Contains(hint, "hint:") || !strings.Contains(hint, "--config") {
		t.Errorf("unexpected hint %q", hint)
	}
	if strings.Contains(hint, "HTMLMIN_CONFIG") {
		t.Error("should not mention HTMLMIN_CONFIG when unset")
	}

	t.Setenv("HTMLMIN_CONFIG", "/tmp/x.yaml")
	if hint := ForConfigNotFound(); !strings.Contains(hint, "HTMLMIN_CONFIG") {
		t.Errorf("expected HTMLMIN_CONFIG mention, got %q", hint)
	}
}

func TestForFeatureNotDefined(t *testing.T) {
	t.Parallel()

	known := []string{"minifyCss", "minifyJs"}
	tests := []struct {
		name     string
		msg      string
		contains string
	}{
		{"case mismatch", "feature is not defined: minifyCSS", "did you mean minifyCss?"},
		{"no close match", "feature is not defined: minifyPhp", "--print-config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if hint := ForFeatureNotDefined(tt.msg, known); !strings.Contains(hint, tt.contains) {
				t.Errorf("expected hint to contain %q, got %q", tt.contains, hint)
			}
		})
	}
}

func TestForMissingEngines(t *testing.T) {
	orig := InCI
	defer func() { InCI = orig }()

	t.Setenv("HTMLMIN_SKIP_WARNINGS", "")

	InCI = func() bool { return false }
	if hint := ForMissingEngines(); hint != "" {
		t.Errorf("expected no hint outside CI, got %q", hint)
	}

	InCI = func() bool { return true }
	if hint := ForMissingEngines(); !strings.Contains(hint, "HTMLMIN_SKIP_WARNINGS") {
		t.Errorf("expected HTMLMIN_SKIP_WARNINGS suggestion in CI, got %q", hint)
	}

	t.Setenv("HTMLMIN_SKIP_WARNINGS", "1")
	if hint := ForMissingEngines(); hint != "" {
		t.Errorf("should not suggest when already set, got %q", hint)
	}
}

func TestStaticHints(t *testing.T) {
	t.Parallel()

	for name, hint := range map[string]string{
		"engine probe":     ForEngineProbe(),
		"output directory": ForOutputDirectory(),
		"preset path":      ForPresetPath(),
	} {
		if !strings.HasPrefix(hint, "\n  hint: ") {
			t.Errorf("%s: missing hint prefix in %q", name, hint)
		}
	}
}
