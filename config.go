package htmlmin

import (
	"github.com/alnah/go-htmlmin/feature"
	"github.com/alnah/go-htmlmin/internal/config"
)

// Config-file meta keys. They are stripped before the file's entries are
// merged as feature options.
const (
	configPresetKey       = "preset"
	configSkipWarningsKey = "skipInternalWarnings"
)

// LoadConfig resolves the feature options and preset of a run.
//
// Unless opts.SkipConfigLoading is set, the config file named by
// opts.ConfigPath, or else the first one found by searching upward from the
// working directory, is merged under the caller's options: the result is
// the file's entries followed by opts.Features, the caller winning per key.
// A "preset" entry in the file selects that built-in preset when preset is
// zero and the name is known. The safe preset is used when none is chosen.
// Neither argument is modified.
func LoadConfig(opts Options, preset Preset) (*feature.Options, Preset, Meta, error) {
	meta := Meta{SkipInternalWarnings: opts.SkipInternalWarnings}
	features := opts.Features.Clone()

	if opts.SkipConfigLoading {
		return features, orSafe(preset), meta, nil
	}

	file, err := config.Discover(opts.ConfigPath)
	if err != nil {
		return nil, Preset{}, meta, err
	}
	if file == nil {
		return features, orSafe(preset), meta, nil
	}

	meta.ConfigPath = file.Path
	fileOpts := file.Options.Clone()

	if v, ok := fileOpts.Get(configPresetKey); ok {
		fileOpts.Delete(configPresetKey)
		if name, isString := v.(string); isString && preset.IsZero() {
			if named, err := PresetByName(name); err == nil {
				preset = named
			}
		}
	}
	if v, ok := fileOpts.Get(configSkipWarningsKey); ok {
		fileOpts.Delete(configSkipWarningsKey)
		if !opts.SkipInternalWarnings {
			meta.SkipInternalWarnings = feature.Enabled(v)
		}
	}

	return fileOpts.Merge(features), orSafe(preset), meta, nil
}

func orSafe(preset Preset) Preset {
	if preset.IsZero() {
		return Safe()
	}
	return preset
}
