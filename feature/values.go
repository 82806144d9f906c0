package feature

import "reflect"

// Enabled reports whether an option value switches its feature on.
// nil, false, the empty string and numeric zero are off; anything else,
// including an empty map, is on.
func Enabled(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case int:
		return x != 0
	case int64:
		return x != 0
	case uint64:
		return x != 0
	case float64:
		return x != 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Func, reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}

// String returns v when it is a non-empty string, else fallback.
func String(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}

// Map returns v as a map when it is one, else an empty map.
// *Options values are flattened.
func Map(v any) map[string]any {
	switch m := v.(type) {
	case map[string]any:
		return m
	case *Options:
		return m.Map()
	}
	return map[string]any{}
}

// Bool reads a boolean entry of a map option.
func Bool(m map[string]any, key string, fallback bool) bool {
	if b, ok := m[key].(bool); ok {
		return b
	}
	return fallback
}

// Strings reads a list of strings from a map option. Non-string entries
// are skipped.
func Strings(m map[string]any, key string) []string {
	switch list := m[key].(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return []string{list}
	}
	return nil
}
