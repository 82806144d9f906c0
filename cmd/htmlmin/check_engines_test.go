package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-htmlmin/engine"
)

type nopEngine struct{}

func (nopEngine) Minify(src string, _ map[string]string) (string, error) { return src, nil }

func TestCheckEngines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		setup      func(r *engine.Registry)
		required   []string
		wantStatus string
		wantCode   int
	}{
		{
			name:       "all available",
			setup:      func(r *engine.Registry) { r.Set(engine.CSS, func() (engine.Engine, error) { return nopEngine{}, nil }) },
			required:   []string{engine.CSS},
			wantStatus: "ready",
			wantCode:   ExitSuccess,
		},
		{
			name:       "required engine absent",
			setup:      func(*engine.Registry) {},
			required:   []string{engine.JS},
			wantStatus: "warnings",
			wantCode:   ExitSuccess,
		},
		{
			name: "engine fails",
			setup: func(r *engine.Registry) {
				r.Set(engine.SVG, func() (engine.Engine, error) { return nil, errors.New("bad build") })
			},
			wantStatus: "errors",
			wantCode:   ExitGeneral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := engine.NewRegistry()
			tt.setup(r)
			env, stdout, _ := newTestEnv("")

			if code := runCheckEngines(env, r, tt.required, false); code != tt.wantCode {
				t.Errorf("runCheckEngines() = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(stdout.String(), "Status: "+tt.wantStatus) {
				t.Errorf("stdout = %q, want status %s", stdout.String(), tt.wantStatus)
			}
		})
	}
}

func TestPrintEngineReport_MarksRequired(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printEngineReport(&buf, &engineReport{
		Status:  "ready",
		Engines: []engineInfo{{Name: "css", Status: "available", Required: true}, {Name: "svg", Status: "available"}},
	})
	if !strings.Contains(buf.String(), "* css") {
		t.Errorf("required engine not marked: %q", buf.String())
	}
	if strings.Contains(buf.String(), "* svg") {
		t.Errorf("optional engine marked: %q", buf.String())
	}
}
