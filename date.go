package datefilter

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// ErrMalformedDate is returned by ParseDate for values that are not dates.
var ErrMalformedDate = errors.New("malformed date")

// layouts are tried in order by ParseDate.
var layouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05 -0700",
	time.RFC1123Z,
	time.RFC1123,
	"Jan 2, 2006",
	"January 2, 2006",
	"2006/01/02",
}

// ParseDate converts a raw date attribute into a time.
// Strings without a zone are read as UTC. Numbers are milliseconds since the Unix epoch.
func ParseDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		return d, nil
	case *time.Time:
		if d != nil {
			return *d, nil
		}
	case string:
		return parseString(d)
	case fmt.Stringer:
		if d != nil && !isNilPointer(d) {
			return parseString(d.String())
		}
	case int:
		return time.UnixMilli(int64(d)).UTC(), nil
	case int64:
		return time.UnixMilli(d).UTC(), nil
	case int32:
		return time.UnixMilli(int64(d)).UTC(), nil
	case float64:
		if d == d { // NaN is never a date
			return time.UnixMilli(int64(d)).UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("ParseDate: %w: %v", ErrMalformedDate, v)
}

func parseString(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("ParseDate: %w: empty", ErrMalformedDate)
	}
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("ParseDate: %w: %q", ErrMalformedDate, s)
}

// DateOf returns the raw date attribute of item, reporting false when item
// has none. The value is returned as-is; it is not parsed.
func DateOf(item any) (any, bool) {
	if item == nil {
		return nil, false
	}
	if d, ok := item.(Dated); ok {
		if isNilPointer(d) {
			return nil, false
		}
		return d.DateKey(), true
	}
	switch m := item.(type) {
	case map[string]any:
		v, ok := m["date"]
		return v, ok
	case map[string]string:
		v, ok := m["date"]
		return v, ok
	}
	return reflectDate(reflect.ValueOf(item))
}

func reflectDate(v reflect.Value) (any, bool) {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		e := v.MapIndex(reflect.ValueOf("date").Convert(v.Type().Key()))
		if !e.IsValid() {
			return nil, false
		}
		return e.Interface(), true
	case reflect.Struct:
		if i, ok := dateField(v.Type()); ok {
			return v.Field(i).Interface(), true
		}
	}
	return nil, false
}

// dateField finds the exported field holding the date of a struct type.
// A field tagged "date" wins over one named Date.
func dateField(t reflect.Type) (int, bool) {
	named := -1
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		for _, key := range []string{"json", "toml", "yaml"} {
			name, _, _ := strings.Cut(f.Tag.Get(key), ",")
			if name == "date" {
				return i, true
			}
		}
		if f.Name == "Date" && named < 0 {
			named = i
		}
	}
	return named, named >= 0
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
