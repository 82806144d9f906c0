package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/goccy/go-json"

	"github.com/alnah/go-htmlmin/engine"
	"github.com/alnah/go-htmlmin/internal/hints"
)

// engineReport holds the outcome of --check-engines.
type engineReport struct {
	Status   string       `json:"status"` // "ready", "warnings", "errors"
	Engines  []engineInfo `json:"engines"`
	Warnings []string     `json:"warnings,omitempty"`
	Errors   []string     `json:"errors,omitempty"`
}

// engineInfo describes one engine.
type engineInfo struct {
	Name     string `json:"name"`
	Status   string `json:"status"`
	Required bool   `json:"required"`
	Error    string `json:"error,omitempty"`
}

// runCheckEngines probes every registered or required engine and returns
// an exit code. Exit codes: 0 = OK (including warnings), 1 = errors found.
func runCheckEngines(env *Environment, engines *engine.Registry, required []string, jsonOutput bool) int {
	report := checkEngines(engines, required)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(report)
	} else {
		printEngineReport(env.Stdout, report)
	}

	if report.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

func checkEngines(engines *engine.Registry, required []string) *engineReport {
	report := &engineReport{Status: "ready"}

	names := engines.Names()
	for _, name := range required {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	for _, name := range names {
		res := engines.Probe(name)
		info := engineInfo{
			Name:     name,
			Status:   res.Status.String(),
			Required: slices.Contains(required, name),
		}
		if res.Err != nil {
			info.Error = res.Err.Error()
		}
		report.Engines = append(report.Engines, info)

		switch {
		case res.Status == engine.Failed:
			report.Errors = append(report.Errors, fmt.Sprintf("engine %s failed: %v", name, res.Err))
		case res.Status == engine.Absent && info.Required:
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("engine %s is not installed; content it handles is left as is", name))
		}
	}

	if len(report.Errors) > 0 {
		report.Status = "errors"
	} else if len(report.Warnings) > 0 {
		report.Status = "warnings"
	}
	return report
}

func printEngineReport(w io.Writer, report *engineReport) {
	fmt.Fprintln(w, "Engines:")
	for _, e := range report.Engines {
		mark := "  "
		if e.Required {
			mark = "* "
		}
		fmt.Fprintf(w, "  %s%-5s %s\n", mark, e.Name, e.Status)
	}
	fmt.Fprintln(w, "  (* required by the enabled features)")

	for _, msg := range report.Warnings {
		fmt.Fprintf(w, "warning: %s\n", msg)
	}
	if hint := hints.ForMissingEngines(); hint != "" && len(report.Warnings) > 0 {
		fmt.Fprintln(w, strings.TrimSpace(hint))
	}
	for _, msg := range report.Errors {
		fmt.Fprintf(w, "error: %s\n", msg)
	}
	fmt.Fprintf(w, "Status: %s\n", report.Status)
}
