package main

import (
	"errors"
	"os"

	htmlmin "github.com/alnah/go-htmlmin"
	"github.com/alnah/go-htmlmin/internal/config"
	"github.com/alnah/go-htmlmin/internal/fileutil"
)

// Exit codes for the htmlmin CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful minification
	ExitGeneral = 1 // General/unexpected error, unknown preset
	ExitUsage   = 2 // Invalid flags, config, or feature options
	ExitIO      = 3 // File not found, permission denied
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, htmlmin.ErrUnknownPreset) {
		return ExitGeneral
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, fileutil.ErrNotADir) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrUnsupportedFormat) ||
		errors.Is(err, htmlmin.ErrFeatureNotDefined) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrOutputRequired) ||
		errors.Is(err, ErrTooManyInputs) {
		return ExitUsage
	}

	return ExitGeneral
}
