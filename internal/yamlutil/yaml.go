// Package yamlutil wraps YAML parsing to isolate the external dependency.
// This allows swapping the underlying YAML library without modifying callers.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData       = errors.New("yamlutil: nil or empty data")
	ErrInputTooLarge = errors.New("yamlutil: input exceeds maximum size")
	ErrNotMapping    = errors.New("yamlutil: top-level value is not a mapping")
)

// Entry is one key of a top-level mapping.
type Entry struct {
	Key   string
	Value any
}

func validateInput(data []byte) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	return nil
}

// UnmarshalOrdered decodes a top-level mapping keeping the order of its
// keys. Nested mappings decode to map[string]any.
func UnmarshalOrdered(data []byte) ([]Entry, error) {
	if err := validateInput(data); err != nil {
		return nil, err
	}
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	if raw == nil {
		return nil, nil
	}
	if _, ok := raw.(map[string]any); !ok {
		return nil, fmt.Errorf("%w: got %T", ErrNotMapping, raw)
	}

	var ms yaml.MapSlice
	if err := yaml.Unmarshal(data, &ms); err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	entries := make([]Entry, 0, len(ms))
	for _, item := range ms {
		entries = append(entries, Entry{Key: fmt.Sprint(item.Key), Value: item.Value})
	}
	return entries, nil
}

// MarshalOrdered encodes entries as a mapping in the given order.
func MarshalOrdered(entries []Entry) ([]byte, error) {
	ms := make(yaml.MapSlice, 0, len(entries))
	for _, e := range entries {
		ms = append(ms, yaml.MapItem{Key: e.Key, Value: e.Value})
	}
	result, err := yaml.Marshal(ms)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return result, nil
}
