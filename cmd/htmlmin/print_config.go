package main

import (
	"fmt"
	"io"

	htmlmin "github.com/alnah/go-htmlmin"
	"github.com/alnah/go-htmlmin/internal/yamlutil"
)

// printEffectiveConfig writes the options a run would use, in execution
// order, as YAML.
func printEffectiveConfig(w io.Writer, opts htmlmin.Options, preset htmlmin.Preset) error {
	features, preset, meta, err := htmlmin.LoadConfig(opts, preset)
	if err != nil {
		return err
	}
	effective := preset.Features.Merge(features)

	entries := make([]yamlutil.Entry, 0, effective.Len())
	for k, v := range effective.All() {
		entries = append(entries, yamlutil.Entry{Key: k, Value: v})
	}
	data, err := yamlutil.MarshalOrdered(entries)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "# preset: %s\n", preset.Name)
	if meta.ConfigPath != "" {
		fmt.Fprintf(w, "# config: %s\n", meta.ConfigPath)
	}
	_, err = w.Write(data)
	return err
}
