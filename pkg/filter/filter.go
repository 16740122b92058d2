// Package filter implements the sanitisation steps a form runs over
// submitted values before validation. A Filter wraps a function plus fixed
// extra parameters and two exclusion lists; filters chain in application
// order so later steps observe earlier output.
package filter

import (
	"slices"

	"github.com/goliatone/go-formtree/pkg/value"
)

// Func transforms one scalar value. params are the filter's fixed extra
// arguments.
type Func func(v any, params ...any) any

// Filter is one sanitisation step.
type Filter struct {
	name         string
	fn           Func
	params       []any
	excludeTypes []string
	excludeNames []string
}

// Option customises a Filter.
type Option func(*Filter)

// WithParams appends fixed extra arguments passed on every call.
func WithParams(params ...any) Option {
	return func(f *Filter) {
		f.params = append(f.params, params...)
	}
}

// ExcludeTypes skips controls whose logical type is listed.
func ExcludeTypes(types ...string) Option {
	return func(f *Filter) {
		f.excludeTypes = append(f.excludeTypes, types...)
	}
}

// ExcludeNames skips controls whose name is listed.
func ExcludeNames(names ...string) Option {
	return func(f *Filter) {
		f.excludeNames = append(f.excludeNames, names...)
	}
}

// New constructs a filter. name only labels the filter in logs.
func New(name string, fn Func, opts ...Option) *Filter {
	f := &Filter{name: name, fn: fn}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

func (f *Filter) Name() string            { return f.name }
func (f *Filter) Params() []any           { return slices.Clone(f.params) }
func (f *Filter) ExcludedTypes() []string { return slices.Clone(f.excludeTypes) }
func (f *Filter) ExcludedNames() []string { return slices.Clone(f.excludeNames) }

// Excludes reports whether the control is skipped by this filter.
func (f *Filter) Excludes(typ, name string) bool {
	return slices.Contains(f.excludeTypes, typ) || slices.Contains(f.excludeNames, name)
}

// Apply runs the filter for a control of the given type and name. Excluded
// controls get v back unchanged; collections are filtered member-wise.
func (f *Filter) Apply(v any, typ, name string) any {
	if f == nil || f.fn == nil || f.Excludes(typ, name) {
		return v
	}
	if value.IsCollection(v) {
		items := value.List(v)
		for i, item := range items {
			items[i] = f.fn(item, f.params...)
		}
		return items
	}
	return f.fn(v, f.params...)
}

// Chain applies filters in order.
type Chain []*Filter

func (c Chain) Apply(v any, typ, name string) any {
	for _, f := range c {
		v = f.Apply(v, typ, name)
	}
	return v
}
