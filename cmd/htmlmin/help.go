package main

import (
	"fmt"
	"io"
	"strings"

	htmlmin "github.com/alnah/go-htmlmin"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: htmlmin [input] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Minify HTML. Input is a file, a directory, or - for stdin (the default).")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file, or output directory for a directory input")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers for directories (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintf(w, "  -p, --preset <name>       Preset: %s (default safe)\n", strings.Join(htmlmin.PresetNames(), ", "))
	fmt.Fprintln(w, "  -c, --config <path>       Config file (default: search .htmlminrc upward)")
	fmt.Fprintln(w, "      --no-config           Do not search for a config file")
	fmt.Fprintln(w, "      --skip-warnings       Silence missing engine warnings")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Diagnostics:")
	fmt.Fprintln(w, "      --check-engines       Report CSS, JS and SVG engine status")
	fmt.Fprintln(w, "      --json                JSON output for --check-engines")
	fmt.Fprintln(w, "      --print-config        Print the effective feature options as YAML")
	fmt.Fprintln(w, "      --metrics-file <path> Write Prometheus metrics on exit")
	fmt.Fprintln(w, "  -q, --quiet               Only print errors")
	fmt.Fprintln(w, "  -v, --verbose             Print debug details")
	fmt.Fprintln(w, "      --version             Print version")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  HTMLMIN_PRESET, HTMLMIN_CONFIG, HTMLMIN_WORKERS, HTMLMIN_SKIP_WARNINGS")
	fmt.Fprintln(w, "  Flags take precedence over environment variables.")
}
