package feature

import (
	"iter"
	"maps"
	"slices"
	"strings"
)

// Options is an insertion-ordered string-keyed map of feature options.
// The zero value is empty and ready to use. A nil *Options reads as empty.
type Options struct {
	keys   []string
	values map[string]any
}

// Pair is a key/value entry used to build Options literals.
type Pair struct {
	Key   string
	Value any
}

// NewOptions returns options holding pairs in the given order. A repeated
// key keeps its first position and takes the last value.
func NewOptions(pairs ...Pair) *Options {
	o := &Options{}
	for _, p := range pairs {
		o.Set(p.Key, p.Value)
	}
	return o
}

// FromMap builds options from an unordered map. Keys are sorted so the
// result is deterministic.
func FromMap(m map[string]any) *Options {
	o := &Options{}
	for _, k := range slices.Sorted(maps.Keys(m)) {
		o.Set(k, m[k])
	}
	return o
}

// Set stores value under key. An existing key keeps its position.
func (o *Options) Set(key string, value any) *Options {
	if o.values == nil {
		o.values = make(map[string]any)
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
	return o
}

// Get returns the value stored under key.
func (o *Options) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Value returns the value stored under key, or nil.
func (o *Options) Value(key string) any {
	v, _ := o.Get(key)
	return v
}

// Has reports whether key is present.
func (o *Options) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Delete removes key.
func (o *Options) Delete(key string) {
	if o == nil {
		return
	}
	if _, ok := o.values[key]; !ok {
		return
	}
	delete(o.values, key)
	o.keys = slices.DeleteFunc(o.keys, func(k string) bool { return k == key })
}

// Len returns the number of keys.
func (o *Options) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns the keys in insertion order.
func (o *Options) Keys() []string {
	if o == nil {
		return nil
	}
	return slices.Clone(o.keys)
}

// All iterates over the entries in insertion order.
func (o *Options) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if o == nil {
			return
		}
		for _, k := range o.keys {
			if !yield(k, o.values[k]) {
				return
			}
		}
	}
}

// Clone returns a shallow copy. Nested values are shared.
func (o *Options) Clone() *Options {
	out := &Options{}
	for k, v := range o.All() {
		out.Set(k, v)
	}
	return out
}

// Merge returns a new Options holding the entries of o followed by the
// entries of others, like successive object spreads: a key already present
// keeps its position and takes the later value.
func (o *Options) Merge(others ...*Options) *Options {
	out := o.Clone()
	for _, other := range others {
		for k, v := range other.All() {
			out.Set(k, v)
		}
	}
	return out
}

// Map returns the entries as an unordered map.
func (o *Options) Map() map[string]any {
	out := make(map[string]any, o.Len())
	for k, v := range o.All() {
		out[k] = v
	}
	return out
}

// String lists the keys in order, for logging.
func (o *Options) String() string {
	return "{" + strings.Join(o.Keys(), ", ") + "}"
}
