package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-htmlmin/feature"
)

// envConfig holds configuration from environment variables.
type envConfig struct {
	Preset       string // HTMLMIN_PRESET: preset name
	ConfigPath   string // HTMLMIN_CONFIG: config file path
	Workers      int    // HTMLMIN_WORKERS: parallel workers
	SkipWarnings bool   // HTMLMIN_SKIP_WARNINGS: silence engine warnings
}

// knownEnvVars lists valid HTMLMIN_* environment variables.
var knownEnvVars = map[string]bool{
	"HTMLMIN_PRESET":        true,
	"HTMLMIN_CONFIG":        true,
	"HTMLMIN_WORKERS":       true,
	"HTMLMIN_SKIP_WARNINGS": true,
}

// loadEnvConfig reads the HTMLMIN_* variables. Malformed numbers are
// ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		Preset:     os.Getenv("HTMLMIN_PRESET"),
		ConfigPath: os.Getenv("HTMLMIN_CONFIG"),
	}

	if workers := os.Getenv("HTMLMIN_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	if skip := os.Getenv("HTMLMIN_SKIP_WARNINGS"); skip != "" {
		if b, err := strconv.ParseBool(skip); err == nil {
			cfg.SkipWarnings = b
		} else {
			cfg.SkipWarnings = feature.Enabled(skip)
		}
	}

	return cfg
}

// warnUnknownEnvVars reports unrecognized HTMLMIN_* variables, which are
// usually typos.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "HTMLMIN_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig fills flags left at their zero value. Flags set on the
// command line always win.
func applyEnvConfig(env *envConfig, f *cliFlags) {
	if env.Preset != "" && f.preset == "" {
		f.preset = env.Preset
	}
	if env.ConfigPath != "" && f.config == "" {
		f.config = env.ConfigPath
	}
	if env.Workers > 0 && f.workers == 0 {
		f.workers = env.Workers
	}
	if env.SkipWarnings {
		f.skipWarnings = true
	}
}
