package htmlmin

import (
	"fmt"
	"slices"
	"strings"

	"github.com/alnah/go-htmlmin/feature"
)

// Preset names.
const (
	PresetSafe    = "safe"
	PresetAmpSafe = "ampSafe"
	PresetMax     = "max"
)

// Preset is a named, ordered set of feature options. The order of the
// features is the order in which they run.
type Preset struct {
	Name     string
	Features *feature.Options
}

// IsZero reports whether p is the zero Preset, meaning "none chosen".
func (p Preset) IsZero() bool {
	return p.Name == "" && p.Features == nil
}

// pair is shorthand for preset literals.
func pair(key string, value any) feature.Pair {
	return feature.Pair{Key: key, Value: value}
}

func safeFeatures() *feature.Options {
	return feature.NewOptions(
		pair("removeComments", "safe"),
		pair("removeEmptyAttributes", true),
		pair("removeAttributeQuotes", false),
		pair("collapseAttributeWhitespace", true),
		pair("collapseWhitespace", "conservative"),
		pair("collapseBooleanAttributes", map[string]any{"amphtml": false}),
		pair("deduplicateAttributeValues", true),
		pair("mergeStyles", true),
		pair("mergeScripts", true),
		pair("minifyCss", map[string]any{}),
		pair("minifyConditionalComments", false),
		pair("minifyJs", map[string]any{}),
		pair("minifyJson", map[string]any{}),
		pair("minifySvg", false),
		pair("minifyUrls", false),
		pair("normalizeAttributeValues", true),
		pair("removeRedundantAttributes", false),
		pair("removeOptionalTags", false),
		pair("removeUnusedCss", false),
		pair("sortAttributes", false),
		pair("sortAttributesWithLists", "alphabetical"),
		pair("custom", false),
	)
}

// recognized is the authoritative feature name set, taken from the safe
// preset whichever preset is active.
var recognized = func() map[string]bool {
	set := make(map[string]bool)
	for _, k := range safeFeatures().Keys() {
		set[k] = true
	}
	return set
}()

// IsFeature reports whether name is a recognized feature.
func IsFeature(name string) bool {
	return recognized[name]
}

// Features lists the recognized feature names in safe-preset order.
func Features() []string {
	return safeFeatures().Keys()
}

// Safe returns the conservative default preset.
func Safe() Preset {
	return Preset{Name: PresetSafe, Features: safeFeatures()}
}

// AmpSafe returns the safe preset adjusted for AMP pages.
func AmpSafe() Preset {
	return Preset{Name: PresetAmpSafe, Features: safeFeatures().Merge(feature.NewOptions(
		pair("collapseBooleanAttributes", map[string]any{"amphtml": true}),
		pair("minifyJs", false),
	))}
}

// Max returns the aggressive preset. It may break pages that rely on
// whitespace, comments or unused-looking CSS.
func Max() Preset {
	return Preset{Name: PresetMax, Features: safeFeatures().Merge(feature.NewOptions(
		pair("collapseWhitespace", "all"),
		pair("removeComments", "all"),
		pair("removeAttributeQuotes", true),
		pair("removeRedundantAttributes", true),
		pair("removeOptionalTags", true),
		pair("removeUnusedCss", true),
		pair("minifyConditionalComments", true),
		pair("sortAttributes", true),
		pair("minifySvg", map[string]any{}),
	))}
}

// Presets returns fresh copies of the built-in presets.
func Presets() []Preset {
	return []Preset{Safe(), AmpSafe(), Max()}
}

// PresetNames lists the built-in preset names.
func PresetNames() []string {
	return []string{PresetSafe, PresetAmpSafe, PresetMax}
}

// PresetByName returns a fresh copy of the named preset.
func PresetByName(name string) (Preset, error) {
	i := slices.Index(PresetNames(), name)
	if i < 0 {
		return Preset{}, fmt.Errorf("%w: %s (available: %s)", ErrUnknownPreset, name, strings.Join(PresetNames(), ", "))
	}
	return Presets()[i], nil
}
