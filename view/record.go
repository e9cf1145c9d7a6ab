package view

import (
	"slices"
	"sort"
)

// Field is a single key/value pair of a renderable record.
type Field struct {
	Key   string
	Value any
}

// Record is the plain, ordered key/value form of anything handed to the
// renderer. Field order is the display order.
type Record []Field

// Recordable is implemented by values that can normalize themselves into a
// Record. Store entities implement it so the renderer never sees them directly.
type Recordable interface {
	ToRecord() Record
}

// ToRecord makes a plain Record usable wherever a Recordable is expected.
func (r Record) ToRecord() Record {
	return r
}

// FromMap builds a Record from a map. Keys are sorted so the result does not
// depend on map iteration order.
func FromMap(m map[string]any) Record {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rec := make(Record, 0, len(keys))
	for _, k := range keys {
		rec = append(rec, Field{Key: k, Value: m[k]})
	}
	return rec
}

// Keys returns the field keys in record order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for _, f := range r {
		keys = append(keys, f.Key)
	}
	return keys
}

// Get returns the value stored under key and whether the key is present.
func (r Record) Get(key string) (any, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Without returns a copy of the record with the given keys removed.
func (r Record) Without(keys ...string) Record {
	out := make(Record, 0, len(r))
	for _, f := range r {
		if slices.Contains(keys, f.Key) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Records adapts a slice of entities into the renderer's input form.
func Records[T Recordable](items []T) []Recordable {
	out := make([]Recordable, 0, len(items))
	for _, it := range items {
		out = append(out, it)
	}
	return out
}
