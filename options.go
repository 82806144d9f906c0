package htmlmin

import "github.com/alnah/go-htmlmin/feature"

// Options are the caller-supplied settings of a run.
type Options struct {
	// Features overrides preset and config-file entries key by key.
	// A new key is appended after the preset's keys.
	Features *feature.Options

	// SkipConfigLoading disables config-file discovery.
	SkipConfigLoading bool

	// SkipInternalWarnings silences warnings about absent engines.
	SkipInternalWarnings bool

	// ConfigPath names an explicit config file. A missing file is an error.
	ConfigPath string
}

// Meta describes where the effective settings came from.
type Meta struct {
	// ConfigPath is the config file that was merged, or "".
	ConfigPath string

	// SkipInternalWarnings is the caller's flag, or the config file's when
	// the caller did not set it.
	SkipInternalWarnings bool
}
