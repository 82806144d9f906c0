package htmlmin

import "errors"

// Sentinel errors for library operations.
var (
	// ErrUnknownPreset is returned when a preset name is not one of Presets.
	ErrUnknownPreset = errors.New("unknown preset")

	// ErrFeatureNotDefined is returned when an enabled option names no
	// known feature. The run aborts before the tree is touched.
	ErrFeatureNotDefined = errors.New("feature is not defined")

	// ErrModuleNotDefined is returned by Registry.Resolve for names outside
	// the recognized feature set.
	ErrModuleNotDefined = errors.New("module is not defined")

	// ErrOptionalDependencyProbe wraps engine failures other than absence.
	ErrOptionalDependencyProbe = errors.New("optional dependency probe failed")

	// ErrNilTree is returned when Minify is called without a tree.
	ErrNilTree = errors.New("tree cannot be nil")
)
