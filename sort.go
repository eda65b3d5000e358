package datefilter

import (
	"slices"
	"time"
)

// keyed pairs an item with its parsed date.
type keyed[T any] struct {
	item T
	t    time.Time
	ok   bool
}

// compareKeyed orders malformed dates first, then by time.
func compareKeyed[T any](a, b keyed[T]) int {
	switch {
	case !a.ok && !b.ok:
		return 0
	case !a.ok:
		return -1
	case !b.ok:
		return 1
	}
	return a.t.Compare(b.t)
}

// sortBy sorts a copy of items by the date returned from date.
// Each date is parsed once.
func sortBy[T any](items []T, date func(T) (any, bool)) []T {
	k := make([]keyed[T], len(items))
	for i, item := range items {
		k[i].item = item
		if raw, ok := date(item); ok {
			t, err := ParseDate(raw)
			k[i].t, k[i].ok = t, err == nil
		}
	}
	slices.SortStableFunc(k, compareKeyed[T])
	r := make([]T, len(k))
	for i := range k {
		r[i] = k[i].item
	}
	return r
}

// SortAscending returns a new slice holding items sorted by date, earliest first.
// The sort is stable. Items whose date does not parse come first.
func SortAscending[T any](items []T, date func(T) string) []T {
	return sortBy(items, func(item T) (any, bool) { return date(item), true })
}

// SortDated sorts items by their DateKey. See SortAscending.
func SortDated[T Dated](items []T) []T {
	return SortAscending(items, func(item T) string { return item.DateKey() })
}

// Ascending is the template form of SortAscending. It accepts any slice or
// array and finds each date with DateOf. A nil collection gives an empty result.
func Ascending(data any) ([]any, error) {
	items, err := collection(data)
	if err != nil {
		return nil, err
	}
	return sortBy(items, DateOf), nil
}

// Keys returns the distinct dates of items in ascending order.
func Keys[T any](items []T, date func(T) string) []string {
	sorted := SortAscending(items, date)
	r := make([]string, 0, len(sorted))
	seen := make(map[string]bool, len(sorted))
	for _, item := range sorted {
		d := date(item)
		if !seen[d] {
			seen[d] = true
			r = append(r, d)
		}
	}
	return r
}

// DateKeys is the template form of Keys. Only string dates become keys, since
// Filter compares raw values; items dated with a time.Time or any other type
// are sorted by Ascending but skipped here.
func DateKeys(data any) ([]string, error) {
	items, err := collection(data)
	if err != nil {
		return nil, err
	}
	var dated []string
	for _, item := range items {
		if raw, ok := DateOf(item); ok {
			if s, ok := raw.(string); ok {
				dated = append(dated, s)
			}
		}
	}
	return Keys(dated, func(s string) string { return s }), nil
}
