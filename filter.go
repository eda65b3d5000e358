package datefilter

import (
	"fmt"
	"reflect"
)

// FilterExact returns the items whose key equals date, in their original order.
// The result is never nil.
func FilterExact[T any, K comparable](items []T, key func(T) K, date K) []T {
	r := make([]T, 0)
	for _, item := range items {
		if key(item) == date {
			r = append(r, item)
		}
	}
	return r
}

// FilterDated keeps the items whose DateKey equals date. See FilterExact.
func FilterDated[T Dated](items []T, date string) []T {
	return FilterExact(items, func(item T) string { return item.DateKey() }, date)
}

// Filter is the template form of FilterExact. An item matches when its raw
// date has the same type as date and is equal to it. Items without a date
// never match.
func Filter(data any, date any) ([]any, error) {
	items, err := collection(data)
	if err != nil {
		return nil, err
	}
	r := make([]any, 0)
	for _, item := range items {
		if raw, ok := DateOf(item); ok && strictEqual(raw, date) {
			r = append(r, item)
		}
	}
	return r, nil
}

// strictEqual compares two values without conversion.
// Arrays and structs holding interfaces are compared only when the values
// they hold are comparable, so a slice inside never panics.
func strictEqual(a, b any) bool {
	if a == nil || b == nil {
		return false
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	if !reflect.ValueOf(a).Comparable() || !reflect.ValueOf(b).Comparable() {
		return false
	}
	return a == b
}

// collection turns a slice or array into a []any.
func collection(data any) ([]any, error) {
	switch d := data.(type) {
	case nil:
		return []any{}, nil
	case []any:
		return append([]any{}, d...), nil
	}
	v := reflect.ValueOf(data)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return []any{}, nil
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
	default:
		return nil, fmt.Errorf("%w: %T", ErrNotCollection, data)
	}
	r := make([]any, v.Len())
	for i := range r {
		r[i] = v.Index(i).Interface()
	}
	return r, nil
}
