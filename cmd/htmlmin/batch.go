package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	htmlmin "github.com/alnah/go-htmlmin"
	"github.com/alnah/go-htmlmin/internal/fileutil"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for file operations.
var (
	ErrReadInput   = errors.New("failed to read input")
	ErrWriteOutput = errors.New("failed to write output")
)

// Processor is the part of htmlmin.Minifier used by the CLI.
type Processor interface {
	Process(ctx context.Context, html string, opts htmlmin.Options, preset htmlmin.Preset) (string, error)
}

var _ Processor = (*htmlmin.Minifier)(nil)

// runParams carries the per-run settings shared by every file.
type runParams struct {
	opts   htmlmin.Options
	preset htmlmin.Preset
}

// MinifyResult holds the outcome of a single file.
type MinifyResult struct {
	InputPath  string
	OutputPath string
	InSize     int
	OutSize    int
	Err        error
	Duration   time.Duration
}

// minifyBatch processes files concurrently with the given worker count.
// Results keep the order of files.
func minifyBatch(ctx context.Context, proc Processor, files []FileToMinify, workers int, params runParams) []MinifyResult {
	if len(files) == 0 {
		return nil
	}
	concurrency := min(workers, len(files))

	results := make([]MinifyResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = MinifyResult{InputPath: files[idx].InputPath, Err: ctx.Err()}
					continue
				}
				results[idx] = minifyFile(ctx, proc, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// minifyFile processes a single file and returns the result.
func minifyFile(ctx context.Context, proc Processor, f FileToMinify, params runParams) (result MinifyResult) {
	start := time.Now()
	result = MinifyResult{InputPath: f.InputPath, OutputPath: f.OutputPath}
	defer func() { result.Duration = time.Since(start) }()

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %w", ErrReadInput, err)
		return result
	}
	result.InSize = len(content)

	out, err := proc.Process(ctx, string(content), params.opts, params.preset)
	if err != nil {
		result.Err = fmt.Errorf("%s: %w", f.InputPath, err)
		return result
	}
	result.OutSize = len(out)

	if err := writeOutput(f.OutputPath, []byte(out)); err != nil {
		result.Err = err
	}
	return result
}

// writeOutput creates the parent directory and writes data atomically.
func writeOutput(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return fmt.Errorf("%w: creating directory: %w", ErrWriteOutput, err)
	}
	if err := fileutil.WriteAtomic(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}
