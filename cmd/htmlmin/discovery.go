package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/alnah/go-htmlmin/internal/fileutil"
)

// maxWorkers bounds the batch worker count.
const maxWorkers = 32

// Sentinel errors for input discovery.
var (
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrOutputRequired     = errors.New("directory input requires --output directory")
	ErrTooManyInputs      = errors.New("only one input may be given")
)

// htmlExtensions are the files minified in directory mode.
var htmlExtensions = []string{".html", ".htm"}

// FileToMinify pairs an input file with its output path.
type FileToMinify struct {
	InputPath  string
	OutputPath string
}

// discoverFiles lists the HTML files below inputDir and maps each to the
// same relative path under outputDir.
func discoverFiles(inputDir, outputDir string) ([]FileToMinify, error) {
	if outputDir == "" {
		return nil, ErrOutputRequired
	}
	paths, err := fileutil.FilesWithExt(inputDir, htmlExtensions...)
	if err != nil {
		return nil, err
	}

	files := make([]FileToMinify, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(inputDir, p)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}
		files = append(files, FileToMinify{InputPath: p, OutputPath: filepath.Join(outputDir, rel)})
	}
	return files, nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > maxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, maxWorkers)
	}
	return nil
}
