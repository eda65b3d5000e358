package site

import (
	"errors"
	"fmt"
	"html/template"
	"reflect"
	"sort"
	"unicode"

	"github.com/ancientlore/datefilter"
)

var (
	// ErrDuplicateFilter is returned when a filter name is already registered.
	ErrDuplicateFilter = errors.New("filter already registered")
	// ErrInvalidFilter is returned for bad filter names or values that are not functions.
	ErrInvalidFilter = errors.New("invalid filter")
)

// Filters maps names to the functions a host makes available to templates.
// The zero value is not usable; call NewFilters or DefaultFilters.
type Filters struct {
	funcs map[string]any
}

// NewFilters returns an empty set of filters.
func NewFilters() *Filters {
	return &Filters{funcs: make(map[string]any)}
}

// DefaultFilters returns the filters every site gets:
//
//	date_ascending(items) []any
//		Sort items by date, earliest first
//	date_filter(items, date) []any
//		Keep items whose date equals date exactly
//	date_keys(items) []string
//		Distinct dates of the items, earliest first
func DefaultFilters() *Filters {
	f := NewFilters()
	f.MustAdd("date_ascending", datefilter.Ascending)
	f.MustAdd("date_filter", datefilter.Filter)
	f.MustAdd("date_keys", datefilter.DateKeys)
	return f
}

// Add registers fn under name. The name must be a valid template identifier
// and fn must be a function returning one value, or a value and an error.
func (f *Filters) Add(name string, fn any) error {
	if !validName(name) {
		return fmt.Errorf("Add: %w: bad name %q", ErrInvalidFilter, name)
	}
	if err := checkFunc(fn); err != nil {
		return fmt.Errorf("Add %q: %w", name, err)
	}
	if _, ok := f.funcs[name]; ok {
		return fmt.Errorf("Add: %w: %q", ErrDuplicateFilter, name)
	}
	f.funcs[name] = fn
	return nil
}

// MustAdd is like Add but panics on error.
func (f *Filters) MustAdd(name string, fn any) {
	if err := f.Add(name, fn); err != nil {
		panic(err)
	}
}

// Lookup returns the filter registered under name.
func (f *Filters) Lookup(name string) (any, bool) {
	fn, ok := f.funcs[name]
	return fn, ok
}

// Names returns the registered names in sorted order.
func (f *Filters) Names() []string {
	names := make([]string, 0, len(f.funcs))
	for name := range f.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered filters.
func (f *Filters) Len() int {
	return len(f.funcs)
}

// Clone returns a copy that can be extended without changing f.
func (f *Filters) Clone() *Filters {
	c := NewFilters()
	for name, fn := range f.funcs {
		c.funcs[name] = fn
	}
	return c
}

// FuncMap returns the filters in the form html/template and text/template expect.
func (f *Filters) FuncMap() template.FuncMap {
	m := make(template.FuncMap, len(f.funcs))
	for name, fn := range f.funcs {
		m[name] = fn
	}
	return m
}

// validName follows the identifier rules of text/template.
func validName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_':
		case i == 0 && !unicode.IsLetter(r):
			return false
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			return false
		}
	}
	return true
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// checkFunc mirrors the checks text/template makes when a FuncMap is added.
func checkFunc(fn any) error {
	if fn == nil {
		return fmt.Errorf("%w: nil", ErrInvalidFilter)
	}
	t := reflect.TypeOf(fn)
	if t.Kind() != reflect.Func {
		return fmt.Errorf("%w: %T is not a function", ErrInvalidFilter, fn)
	}
	if reflect.ValueOf(fn).IsNil() {
		return fmt.Errorf("%w: nil function", ErrInvalidFilter)
	}
	switch {
	case t.NumOut() == 1:
	case t.NumOut() == 2 && t.Out(1) == errorType:
	default:
		return fmt.Errorf("%w: %T must return a value, optionally followed by an error", ErrInvalidFilter, fn)
	}
	return nil
}
