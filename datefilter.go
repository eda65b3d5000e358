/*
Package datefilter shapes collections of dated items for use in site templates.

An item is any value that carries a "date" attribute. The attribute is found by DateOf,
which understands the following kinds of items:

	Dated                  DateKey() is the date
	map[string]T           the "date" key
	struct or *struct      the field tagged json, toml or yaml "date", or else the field named Date

Two operations are provided, each in a typed form for Go callers and an untyped
form for templates:

	SortAscending / Ascending
		Sort by date, earliest first
	FilterExact / Filter
		Keep items whose date equals the given key

Neither operation changes its input. Sorting always returns a new slice and is stable,
so items with equal dates keep their relative order. Dates that cannot be parsed by
ParseDate (including missing dates) sort before all valid dates.

Filtering never parses anything. The raw date attribute is compared against the key
with strict equality, so "2021-04-13" does not match "2021-04-13T00:00:00Z".

All functions are safe for concurrent use.
*/
package datefilter

import (
	"errors"
)

// ErrNotCollection is returned when a template function is given something
// other than a slice or array.
var ErrNotCollection = errors.New("not a collection")

// Dated is implemented by items that know their own date.
type Dated interface {
	DateKey() string
}
