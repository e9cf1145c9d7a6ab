package view

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// LongDateLayout renders dates as "November 3, 2025".
const LongDateLayout = "January 2, 2006"

var (
	// InternalFields are storage bookkeeping keys that are never displayed.
	InternalFields = []string{"_id", "__v"}

	// ReviewNoiseFields are hidden from introspected tables: the viewer of a
	// pending-review list does not need the review status or the notes.
	ReviewNoiseFields = []string{"isReviewed", "reviewNotes"}
)

// Formatter turns a field value into display text.
type Formatter func(value any) string

// Column describes one displayed field: the record key it reads, the header
// label, an optional CSS width and the value formatter.
type Column struct {
	Key    string
	Label  string
	Width  string
	Format Formatter
}

// NewColumn builds a column whose label and formatter are derived from key.
func NewColumn(key string) Column {
	return Column{
		Key:    key,
		Label:  Label(key),
		Format: FormatterFor(key),
	}
}

// WithLabel returns a copy of the column with a fixed header label.
func (c Column) WithLabel(label string) Column {
	c.Label = label
	return c
}

// WithWidth returns a copy of the column with a CSS width, e.g. "25%".
func (c Column) WithWidth(width string) Column {
	c.Width = width
	return c
}

// Cell renders the column for one record. A missing key yields an empty cell.
func (c Column) Cell(rec Record) string {
	v, ok := rec.Get(c.Key)
	if !ok {
		return ""
	}
	if c.Format == nil {
		return FormatValue(c.Key, v)
	}
	return c.Format(v)
}

// DeriveColumns introspects the keys of first, skipping excluded keys.
func DeriveColumns(first Record, exclude ...string) []Column {
	cols := make([]Column, 0, len(first))
	for _, key := range first.Keys() {
		if slices.Contains(exclude, key) {
			continue
		}
		cols = append(cols, NewColumn(key))
	}
	return cols
}

// Label converts a field key to a display label by inserting a space before
// every internal capital letter and capitalizing the first letter:
// "matchDate" becomes "Match Date".
func Label(key string) string {
	if key == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(key) + 4)
	for i, r := range key {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}

	s := b.String()
	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(first)) + s[size:]
}

// IsDateField reports whether a key names a calendar date.
func IsDateField(key string) bool {
	return key == "date" || strings.HasSuffix(key, "Date")
}

// FormatterFor picks the formatter matching a key.
func FormatterFor(key string) Formatter {
	if IsDateField(key) {
		return FormatDate
	}
	return FormatText
}

// FormatValue renders value the way a column keyed by key would.
func FormatValue(key string, value any) string {
	return FormatterFor(key)(value)
}

// FormatDate renders a valid date long-form in UTC. Values that are not
// dates fall back to their raw text.
func FormatDate(value any) string {
	if t, ok := asTime(value); ok {
		return t.UTC().Format(LongDateLayout)
	}
	return FormatText(value)
}

// FormatText renders the raw value as text.
func FormatText(value any) string {
	if isNil(value) {
		return ""
	}

	switch v := value.(type) {
	case string:
		return v
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	case *time.Time:
		return v.UTC().Format(time.RFC3339)
	case fmt.Stringer:
		return v.String()
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Pointer {
		return FormatText(rv.Elem().Interface())
	}
	return fmt.Sprintf("%v", value)
}

var dateLayouts = []string{time.RFC3339Nano, time.DateTime, time.DateOnly}

func asTime(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, !v.IsZero()
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return *v, !v.IsZero()
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
