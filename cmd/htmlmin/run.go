package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	flag "github.com/spf13/pflag"

	htmlmin "github.com/alnah/go-htmlmin"
	"github.com/alnah/go-htmlmin/engine"
	"github.com/alnah/go-htmlmin/internal/config"
	"github.com/alnah/go-htmlmin/internal/fileutil"
	"github.com/alnah/go-htmlmin/internal/hints"
)

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, env *Environment) int {
	flags, inputs, err := parseFlags(args, env.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}
	if flags.version {
		fmt.Fprintf(env.Stdout, "htmlmin %s\n", Version)
		return ExitSuccess
	}

	if !flags.quiet {
		warnUnknownEnvVars(env.Stderr)
	}
	applyEnvConfig(loadEnvConfig(), flags)

	preset, err := resolvePreset(flags.preset)
	if err != nil {
		fmt.Fprintf(env.Stderr, "Unknown preset: %s. Available presets: %s\n",
			flags.preset, strings.Join(htmlmin.PresetNames(), ", "))
		if fileutil.IsFilePath(flags.preset) {
			fmt.Fprintln(env.Stderr, strings.TrimPrefix(hints.ForPresetPath(), "\n"))
		}
		return exitCodeFor(err)
	}

	opts := htmlmin.Options{
		ConfigPath:           flags.config,
		SkipConfigLoading:    flags.noConfig,
		SkipInternalWarnings: flags.skipWarnings,
	}

	if flags.checkEngines {
		required, err := htmlmin.RequiredEngines(opts, preset)
		if err != nil {
			return reportError(env.Stderr, err)
		}
		return runCheckEngines(env, engine.Default(), required, flags.jsonOutput)
	}
	if flags.printConfig {
		if err := printEffectiveConfig(env.Stdout, opts, preset); err != nil {
			return reportError(env.Stderr, err)
		}
		return ExitSuccess
	}

	var reg *prometheus.Registry
	minifierOpts := []htmlmin.Option{htmlmin.WithLogger(newLogger(env.Stderr, flags))}
	if flags.metricsFile != "" {
		reg = prometheus.NewRegistry()
		minifierOpts = append(minifierOpts, htmlmin.WithMetrics(htmlmin.NewMetrics(reg)))
	}
	m := htmlmin.New(minifierOpts...)

	err = minifyInputs(ctx, env, m, inputs, flags, runParams{opts: opts, preset: preset})

	if reg != nil {
		if werr := prometheus.WriteToTextfile(flags.metricsFile, reg); werr != nil {
			fmt.Fprintf(env.Stderr, "warning: writing metrics: %v\n", werr)
		}
	}
	if err != nil {
		return reportError(env.Stderr, err)
	}
	return ExitSuccess
}

// resolvePreset maps a flag value to a preset. An empty name yields the
// zero preset, letting a config file choose.
func resolvePreset(name string) (htmlmin.Preset, error) {
	if name == "" {
		return htmlmin.Preset{}, nil
	}
	return htmlmin.PresetByName(name)
}

// newLogger logs warnings by default, debug details with --verbose and
// errors only with --quiet.
func newLogger(w io.Writer, flags *cliFlags) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case flags.quiet:
		level = slog.LevelError
	case flags.verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// minifyInputs dispatches on the positional input: none or "-" reads
// stdin, a directory runs a batch, anything else is a single file.
func minifyInputs(ctx context.Context, env *Environment, proc Processor, inputs []string, flags *cliFlags, params runParams) error {
	if len(inputs) > 1 {
		return fmt.Errorf("%w: got %d", ErrTooManyInputs, len(inputs))
	}
	input := "-"
	if len(inputs) == 1 {
		input = inputs[0]
	}

	if input != "-" && fileutil.DirExists(input) {
		return minifyDirectory(ctx, env, proc, input, flags, params)
	}

	var src []byte
	var err error
	if input == "-" {
		src, err = io.ReadAll(env.Stdin)
	} else {
		src, err = os.ReadFile(input) // #nosec G304 -- user-provided input path
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	out, err := proc.Process(ctx, string(src), params.opts, params.preset)
	if err != nil {
		return err
	}

	if flags.output == "" || flags.output == "-" {
		_, err = io.WriteString(env.Stdout, out)
		return err
	}
	return writeOutput(flags.output, []byte(out))
}

func minifyDirectory(ctx context.Context, env *Environment, proc Processor, dir string, flags *cliFlags, params runParams) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}
	files, err := discoverFiles(dir, flags.output)
	if err != nil {
		return err
	}

	start := env.Now()
	workers := resolvePoolSize(flags.workers)
	results := minifyBatch(ctx, proc, files, workers, params)

	var firstErr error
	var done, in, out int
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "error: %v\n", r.Err)
			if firstErr == nil {
				firstErr = r.Err
			}
			continue
		}
		done++
		in += r.InSize
		out += r.OutSize
		if flags.verbose {
			fmt.Fprintf(env.Stderr, "%s -> %s (%d -> %d bytes, %s)\n", r.InputPath, r.OutputPath, r.InSize, r.OutSize, r.Duration)
		}
	}
	if !flags.quiet {
		fmt.Fprintf(env.Stderr, "Minified %d/%d files with %d workers, %d -> %d bytes in %s\n",
			done, len(files), workers, in, out, env.Now().Sub(start).Round(time.Millisecond))
	}
	return firstErr
}

// reportError prints err with a hint and returns its exit code.
func reportError(w io.Writer, err error) int {
	fmt.Fprintf(w, "error: %v%s\n", err, hintFor(err))
	return exitCodeFor(err)
}

func hintFor(err error) string {
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound()
	case errors.Is(err, htmlmin.ErrFeatureNotDefined):
		return hints.ForFeatureNotDefined(err.Error(), htmlmin.Features())
	case errors.Is(err, htmlmin.ErrOptionalDependencyProbe):
		return hints.ForEngineProbe()
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}
