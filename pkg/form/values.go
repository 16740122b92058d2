package form

import (
	"fmt"

	"github.com/goliatone/go-formtree/pkg/element"
	"github.com/goliatone/go-formtree/pkg/filter"
)

// AddFilter appends a filter to the chain.
func (f *Form) AddFilter(flt *filter.Filter) {
	if flt != nil {
		f.filters = append(f.filters, flt)
	}
}

func (f *Form) AddFilters(filters ...*filter.Filter) {
	for _, flt := range filters {
		f.AddFilter(flt)
	}
}

func (f *Form) ClearFilters() { f.filters = nil }

func (f *Form) Filters() filter.Chain {
	return append(filter.Chain(nil), f.filters...)
}

// FieldValue returns the named field's logical value.
func (f *Form) FieldValue(name string) (any, bool) {
	el := f.Field(name)
	if el == nil {
		return nil, false
	}
	return el.Value(), true
}

// SetFieldValue sets the named field's value as is, without filtering.
func (f *Form) SetFieldValue(name string, v any) error {
	el := f.Field(name)
	if el == nil {
		return fmt.Errorf("%w: %q", ErrFieldNotFound, name)
	}
	el.SetValue(v)
	return nil
}

// Values maps every field name to its logical value.
func (f *Form) Values() map[string]any {
	out := map[string]any{}
	for _, el := range f.Fields() {
		out[el.Name()] = el.Value()
	}
	return out
}

// SetFieldValues binds a submission. Buttons are skipped. Checkboxes follow
// presence: a submitted key checks the box whatever its value. Other fields
// take the submitted value or are reset when the key is missing or nil. The
// filter chain runs over every field afterwards.
func (f *Form) SetFieldValues(values map[string]any) {
	for _, el := range f.Fields() {
		if el.IsButton() {
			continue
		}
		v, ok := lookup(values, el.Name())
		if isCheckbox(el) {
			el.SetValue(ok)
			continue
		}
		if ok && v != nil {
			el.SetValue(v)
		} else {
			el.ResetValue()
		}
	}
	f.FilterValues()
}

func lookup(values map[string]any, name string) (any, bool) {
	if v, ok := values[name]; ok {
		return v, true
	}
	v, ok := values[name+element.MultiMarker]
	return v, ok
}

func isCheckbox(el element.Element) bool {
	return el.Kind() == element.KindInput && el.Type() == "checkbox"
}

// FilterValue runs v through the chain without a control context.
func (f *Form) FilterValue(v any) any {
	return f.filters.Apply(v, "", "")
}

// FilterField runs the field's value through the chain and stores the result
// unless it came out nil, empty, or false.
func (f *Form) FilterField(el element.Element) any {
	filtered := f.filters.Apply(el.Value(), el.Type(), el.Name())
	if keepFiltered(filtered) {
		el.SetValue(filtered)
	}
	return filtered
}

func keepFiltered(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	default:
		return true
	}
}

// FilterValues filters every field in place and returns the filtered
// values by name.
func (f *Form) FilterValues() map[string]any {
	out := map[string]any{}
	for _, el := range f.Fields() {
		out[el.Name()] = f.FilterField(el)
	}
	if len(f.filters) > 0 {
		f.logger.Debug("form filtered", "form", f.Prefix(), "fields", len(out), "filters", len(f.filters))
	}
	if f.observer != nil {
		f.observer.Filtered(f.Prefix(), len(out))
	}
	return out
}
