package db

import (
	"cmp"
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"time"
)

// document is the JSON form of a stored value. Numbers decode as float64.
type document map[string]any

func toDocument(v any) (document, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshaling document: %w", err)
	}
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	return doc, nil
}

func fromDocument[T any](doc document) (*T, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshaling document: %w", err)
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	return &out, nil
}

// jsonValue converts a filter or update value into the form it takes inside
// a decoded document, so that 7, int64(7) and 7.0 compare equal.
func jsonValue(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshaling value: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decoding value: %w", err)
	}
	return out, nil
}

func (d document) matches(filter Filter) (bool, error) {
	for field, want := range filter {
		got, ok := d[field]
		if !ok {
			return false, nil
		}
		want, err := jsonValue(want)
		if err != nil {
			return false, err
		}
		if !reflect.DeepEqual(got, want) {
			return false, nil
		}
	}
	return true, nil
}

// merge returns a copy of d with fields applied on top.
func (d document) merge(fields Fields) (document, error) {
	out := make(document, len(d)+len(fields))
	for k, v := range d {
		out[k] = v
	}
	for k, v := range fields {
		jv, err := jsonValue(v)
		if err != nil {
			return nil, err
		}
		out[k] = jv
	}
	return out, nil
}

// compareValues orders two decoded values. Timestamps stored as RFC 3339
// text compare as instants. Missing values sort first.
func compareValues(a, b any) int {
	switch av := a.(type) {
	case nil:
		if b == nil {
			return 0
		}
		return -1
	case float64:
		if bv, ok := b.(float64); ok {
			return cmp.Compare(av, bv)
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0
			case !av:
				return -1
			default:
				return 1
			}
		}
	case string:
		if bv, ok := b.(string); ok {
			at, aErr := time.Parse(time.RFC3339Nano, av)
			bt, bErr := time.Parse(time.RFC3339Nano, bv)
			if aErr == nil && bErr == nil {
				return at.Compare(bt)
			}
			return cmp.Compare(av, bv)
		}
	}
	if b == nil {
		return 1
	}
	return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func sortDocuments(docs []document, s *Sort) {
	if s == nil || s.Field == "" {
		return
	}
	slices.SortStableFunc(docs, func(a, b document) int {
		c := compareValues(a[s.Field], b[s.Field])
		if s.Desc {
			return -c
		}
		return c
	})
}

// keyText is the canonical text of a document's unique key.
func keyText(doc document, schema Schema) (string, error) {
	v, ok := doc[schema.Key]
	if !ok || v == nil {
		return "", fmt.Errorf("%s document has no %q key", schema.Name, schema.Key)
	}
	if s, ok := v.(string); ok {
		return s, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshaling %q key: %w", schema.Key, err)
	}
	return string(raw), nil
}
