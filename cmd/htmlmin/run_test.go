package main

// Notes:
// - run is exercised end to end with in-memory stdio. --no-config keeps a
//   config file in a parent directory from changing the outcome.
// - The tdewolff engines are registered by the blank import in main.go.
// - TestRun_EnvPreset uses t.Setenv and cannot run in parallel.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

const sample = " <div><!-- foo --><i>Hello</i> <i>world!</i></div> \n"

func newTestEnv(stdin string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Environment{
		Now:    time.Now,
		Stdin:  strings.NewReader(stdin),
		Stdout: &stdout,
		Stderr: &stderr,
	}, &stdout, &stderr
}

// ---------------------------------------------------------------------------
// TestRun_Stdio - stdin to stdout with each preset
// ---------------------------------------------------------------------------

func TestRun_Stdio(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"default preset", []string{"--no-config"}, "<div><i>Hello</i> <i>world!</i></div>"},
		{"explicit stdin", []string{"--no-config", "-"}, "<div><i>Hello</i> <i>world!</i></div>"},
		{"max", []string{"--no-config", "-p", "max"}, "<div><i>Hello</i><i>world!</i></div>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := newTestEnv(sample)
			if code := run(context.Background(), tt.args, env); code != ExitSuccess {
				t.Fatalf("run() = %d, want %d; stderr: %s", code, ExitSuccess, stderr)
			}
			if got := stdout.String(); got != tt.want {
				t.Errorf("stdout = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRun_UnknownPreset - message, exit code and empty stdout
// ---------------------------------------------------------------------------

func TestRun_UnknownPreset(t *testing.T) {
	t.Parallel()

	env, stdout, stderr := newTestEnv(sample)
	code := run(context.Background(), []string{"--no-config", "-p", "invalid"}, env)

	if code != ExitGeneral {
		t.Errorf("run() = %d, want %d", code, ExitGeneral)
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", stdout.String())
	}
	const want = "Unknown preset: invalid. Available presets: safe, ampSafe, max\n"
	if !strings.Contains(stderr.String(), want) {
		t.Errorf("stderr = %q, want it to contain %q", stderr.String(), want)
	}
}

// ---------------------------------------------------------------------------
// TestRun_Files - file and directory inputs
// ---------------------------------------------------------------------------

func TestRun_Files(t *testing.T) {
	t.Parallel()

	t.Run("file to file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := filepath.Join(dir, "in.html")
		out := filepath.Join(dir, "nested", "out.html")
		if err := os.WriteFile(in, []byte(sample), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		env, _, stderr := newTestEnv("")
		if code := run(context.Background(), []string{"--no-config", in, "-o", out}, env); code != ExitSuccess {
			t.Fatalf("run() = %d; stderr: %s", code, stderr)
		}
		got, err := os.ReadFile(out)
		if err != nil {
			t.Fatalf("reading output: %v", err)
		}
		if string(got) != "<div><i>Hello</i> <i>world!</i></div>" {
			t.Errorf("output = %q", got)
		}
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		src := t.TempDir()
		dst := t.TempDir()
		for _, name := range []string{"a.html", "sub/b.htm", "skip.txt"} {
			path := filepath.Join(src, name)
			if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
				t.Fatalf("setup: %v", err)
			}
			if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
				t.Fatalf("setup: %v", err)
			}
		}

		env, _, stderr := newTestEnv("")
		if code := run(context.Background(), []string{"--no-config", "-w", "2", src, "-o", dst}, env); code != ExitSuccess {
			t.Fatalf("run() = %d; stderr: %s", code, stderr)
		}
		for _, name := range []string{"a.html", "sub/b.htm"} {
			if _, err := os.Stat(filepath.Join(dst, name)); err != nil {
				t.Errorf("%s not written: %v", name, err)
			}
		}
		if _, err := os.Stat(filepath.Join(dst, "skip.txt")); err == nil {
			t.Error("non-HTML file copied")
		}
		if !strings.Contains(stderr.String(), "Minified 2/2 files") {
			t.Errorf("stderr = %q, want a summary", stderr.String())
		}
	})
}

// ---------------------------------------------------------------------------
// TestRun_Errors - exit codes of usage, config and I/O failures
// ---------------------------------------------------------------------------

func TestRun_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tests := []struct {
		name     string
		args     []string
		wantCode int
		contains string
	}{
		{"directory without output", []string{"--no-config", dir}, ExitUsage, "--output"},
		{"too many inputs", []string{"--no-config", "a", "b"}, ExitUsage, "only one input"},
		{"missing input", []string{"--no-config", filepath.Join(dir, "none.html")}, ExitIO, "failed to read input"},
		{"missing config", []string{"-c", filepath.Join(dir, ".htmlminrc")}, ExitUsage, "hint:"},
		{"bad flag", []string{"--nope"}, ExitUsage, "unknown flag"},
		{"invalid workers", []string{"--no-config", "-w", "-1", dir, "-o", dir}, ExitUsage, "invalid worker count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, _, stderr := newTestEnv("")
			if code := run(context.Background(), tt.args, env); code != tt.wantCode {
				t.Errorf("run() = %d, want %d; stderr: %s", code, tt.wantCode, stderr)
			}
			if !strings.Contains(stderr.String(), tt.contains) {
				t.Errorf("stderr = %q, want it to contain %q", stderr.String(), tt.contains)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRun_Config - config file selection and printing
// ---------------------------------------------------------------------------

func TestRun_Config(t *testing.T) {
	t.Parallel()

	t.Run("config file selects preset", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".htmlminrc.json")
		if err := os.WriteFile(path, []byte(`{"preset": "max"}`), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		env, stdout, stderr := newTestEnv(sample)
		if code := run(context.Background(), []string{"-c", path}, env); code != ExitSuccess {
			t.Fatalf("run() = %d; stderr: %s", code, stderr)
		}
		if got := stdout.String(); got != "<div><i>Hello</i><i>world!</i></div>" {
			t.Errorf("stdout = %q", got)
		}
	})

	t.Run("print config", func(t *testing.T) {
		t.Parallel()

		env, stdout, stderr := newTestEnv("")
		if code := run(context.Background(), []string{"--no-config", "--print-config", "-p", "ampSafe"}, env); code != ExitSuccess {
			t.Fatalf("run() = %d; stderr: %s", code, stderr)
		}
		out := stdout.String()
		for _, want := range []string{"# preset: ampSafe", "minifyJs: false", "removeComments: safe"} {
			if !strings.Contains(out, want) {
				t.Errorf("stdout missing %q:\n%s", want, out)
			}
		}
		if strings.Index(out, "removeComments") > strings.Index(out, "custom") {
			t.Error("options not printed in execution order")
		}
	})
}

// ---------------------------------------------------------------------------
// TestRun_Diagnostics - version, engine check and metrics file
// ---------------------------------------------------------------------------

func TestRun_Diagnostics(t *testing.T) {
	t.Parallel()

	t.Run("version", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := newTestEnv("")
		if code := run(context.Background(), []string{"--version"}, env); code != ExitSuccess {
			t.Fatalf("run() = %d", code)
		}
		if !strings.HasPrefix(stdout.String(), "htmlmin ") {
			t.Errorf("stdout = %q", stdout.String())
		}
	})

	t.Run("check engines json", func(t *testing.T) {
		t.Parallel()

		env, stdout, stderr := newTestEnv("")
		if code := run(context.Background(), []string{"--no-config", "--check-engines", "--json", "-p", "max"}, env); code != ExitSuccess {
			t.Fatalf("run() = %d; stderr: %s", code, stderr)
		}
		var report engineReport
		if err := json.Unmarshal(stdout.Bytes(), &report); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, stdout)
		}
		if report.Status != "ready" {
			t.Errorf("Status = %q, want ready", report.Status)
		}
		if len(report.Engines) != 3 {
			t.Errorf("len(Engines) = %d, want 3", len(report.Engines))
		}
	})

	t.Run("metrics file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "htmlmin.prom")
		env, _, stderr := newTestEnv(sample)
		if code := run(context.Background(), []string{"--no-config", "--metrics-file", path}, env); code != ExitSuccess {
			t.Fatalf("run() = %d; stderr: %s", code, stderr)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading metrics: %v", err)
		}
		if !strings.Contains(string(data), `htmlmin_runs_total{status="ok"} 1`) {
			t.Errorf("metrics file missing run counter:\n%s", data)
		}
	})
}

func TestRun_EnvPreset(t *testing.T) {
	t.Setenv("HTMLMIN_PRESET", "max")

	env, stdout, stderr := newTestEnv(sample)
	if code := run(context.Background(), []string{"--no-config"}, env); code != ExitSuccess {
		t.Fatalf("run() = %d; stderr: %s", code, stderr)
	}
	if got := stdout.String(); got != "<div><i>Hello</i><i>world!</i></div>" {
		t.Errorf("stdout = %q", got)
	}

	env, stdout, _ = newTestEnv(sample)
	if code := run(context.Background(), []string{"--no-config", "-p", "safe"}, env); code != ExitSuccess {
		t.Fatalf("run() = %d", code)
	}
	if got := stdout.String(); got != "<div><i>Hello</i> <i>world!</i></div>" {
		t.Errorf("flag did not win over env: %q", got)
	}
}
