package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// cliFlags holds every command-line flag.
type cliFlags struct {
	output       string
	preset       string
	config       string
	noConfig     bool
	workers      int
	quiet        bool
	verbose      bool
	skipWarnings bool
	checkEngines bool
	jsonOutput   bool
	printConfig  bool
	metricsFile  string
	version      bool
}

// parseFlags parses args (without the program name) and returns the flags
// and the positional arguments. Usage goes to stderr on a parse error or
// --help, in which case flag.ErrHelp is returned.
func parseFlags(args []string, stderr io.Writer) (*cliFlags, []string, error) {
	f := &cliFlags{}
	fs := flag.NewFlagSet("htmlmin", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory (default stdout)")
	fs.StringVarP(&f.preset, "preset", "p", "", "preset: safe, ampSafe, max")
	fs.StringVarP(&f.config, "config", "c", "", "config file path")
	fs.BoolVar(&f.noConfig, "no-config", false, "do not search for a config file")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers for directories (0 = auto)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only print errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "print debug details")
	fs.BoolVar(&f.skipWarnings, "skip-warnings", false, "silence missing engine warnings")
	fs.BoolVar(&f.checkEngines, "check-engines", false, "report optional engine status and exit")
	fs.BoolVar(&f.jsonOutput, "json", false, "with --check-engines, print JSON")
	fs.BoolVar(&f.printConfig, "print-config", false, "print the effective options and exit")
	fs.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	fs.Usage = func() { printUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
