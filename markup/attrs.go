package markup

import "strings"

// Attr is a single attribute. Bool marks an attribute written without a
// value (<input disabled>); Value is then ignored by the renderer.
type Attr struct {
	Key   string
	Value string
	Bool  bool
}

// Attrs is an ordered attribute list.
type Attrs []Attr

// Index returns the position of key, or -1.
func (a Attrs) Index(key string) int {
	for i := range a {
		if a[i].Key == key {
			return i
		}
	}
	return -1
}

// Has reports whether key is present.
func (a Attrs) Has(key string) bool {
	return a.Index(key) >= 0
}

// Get returns the value of key and whether it is present.
// A bare attribute reports an empty value.
func (a Attrs) Get(key string) (string, bool) {
	i := a.Index(key)
	if i < 0 {
		return "", false
	}
	if a[i].Bool {
		return "", true
	}
	return a[i].Value, true
}

// Value returns the value of key, or "" when absent.
func (a Attrs) Value(key string) string {
	v, _ := a.Get(key)
	return v
}

// Set assigns a value to key, keeping its position when it already exists.
func (a Attrs) Set(key, value string) Attrs {
	if i := a.Index(key); i >= 0 {
		a[i].Value = value
		a[i].Bool = false
		return a
	}
	return append(a, Attr{Key: key, Value: value})
}

// SetBool marks key as a bare attribute, adding it when missing.
func (a Attrs) SetBool(key string) Attrs {
	if i := a.Index(key); i >= 0 {
		a[i].Value = ""
		a[i].Bool = true
		return a
	}
	return append(a, Attr{Key: key, Bool: true})
}

// Delete removes key and returns the shortened list.
func (a Attrs) Delete(key string) Attrs {
	i := a.Index(key)
	if i < 0 {
		return a
	}
	return append(a[:i], a[i+1:]...)
}

// Clone returns a copy that shares nothing with a.
func (a Attrs) Clone() Attrs {
	if a == nil {
		return nil
	}
	out := make(Attrs, len(a))
	copy(out, a)
	return out
}

// Lowered returns a copy with every key lowercased. When two keys collapse
// to the same name the first position is kept and the last value wins.
func (a Attrs) Lowered() Attrs {
	out := make(Attrs, 0, len(a))
	for _, attr := range a {
		attr.Key = strings.ToLower(attr.Key)
		if i := out.Index(attr.Key); i >= 0 {
			out[i].Value = attr.Value
			out[i].Bool = attr.Bool
			continue
		}
		out = append(out, attr)
	}
	return out
}
