// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"
)

// InCI reports whether the process runs under a CI service.
var InCI = func() bool {
	return os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""
}

// ForConfigNotFound returns hints for a missing explicit config file.
func ForConfigNotFound() string {
	hint := "check the --config path"
	if os.Getenv("HTMLMIN_CONFIG") != "" {
		hint += " and HTMLMIN_CONFIG"
	}
	return format(hint + ", or drop it to search for .htmlminrc")
}

// ForFeatureNotDefined suggests the known feature matching a misspelled
// name in msg, differing only by case.
func ForFeatureNotDefined(msg string, known []string) string {
	for _, word := range strings.FieldsFunc(msg, isSeparator) {
		for _, k := range known {
			if word != k && strings.EqualFold(word, k) {
				return format("did you mean " + k + "?")
			}
		}
	}
	return format("run htmlmin --print-config to list the effective options")
}

// ForEngineProbe returns hints for engines that failed to initialize.
func ForEngineProbe() string {
	return format("run htmlmin --check-engines for details, or disable the feature")
}

// ForMissingEngines returns hints for absent optional engines.
// In CI, silencing the warnings is suggested.
func ForMissingEngines() string {
	if InCI() && os.Getenv("HTMLMIN_SKIP_WARNINGS") == "" {
		return format("set HTMLMIN_SKIP_WARNINGS=1 to silence engine warnings in CI")
	}
	return ""
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForPresetPath returns a hint when a preset argument looks like a file.
func ForPresetPath() string {
	return format("config files are passed with --config, not --preset")
}

func isSeparator(r rune) bool {
	return r == ' ' || r == ':' || r == ','
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
