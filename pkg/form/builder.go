package form

import (
	"fmt"
)

// FieldDefinition is one entry of a field list. A definition either names a
// field and its configuration record, or holds a nested Group of fields
// rendered together.
type FieldDefinition struct {
	Name   string            `json:"name" yaml:"name"`
	Config map[string]any    `json:"config" yaml:"config"`
	Group  []FieldDefinition `json:"group,omitempty" yaml:"group,omitempty"`
}

// IsGroup reports whether the definition holds nested fields.
func (d FieldDefinition) IsGroup() bool { return len(d.Group) > 0 }

// Section describes one fieldset.
type Section struct {
	Legend    string            `json:"legend" yaml:"legend"`
	Container string            `json:"container" yaml:"container"`
	Fields    []FieldDefinition `json:"fields" yaml:"fields"`
}

// AddFieldsFromConfig creates fields through the factory and appends them to
// the current fieldset. The first group shares the fieldset's open group;
// every later one starts a new group.
func (f *Form) AddFieldsFromConfig(defs []FieldDefinition) error {
	if len(f.fieldsets) == 0 {
		f.CreateFieldset("", "")
	}
	groups := 0
	for _, def := range defs {
		if !def.IsGroup() {
			if err := f.AddFieldFromConfig(def.Name, def.Config); err != nil {
				return err
			}
			continue
		}
		if groups > 0 {
			f.fieldsets[f.current].CreateGroup()
		}
		groups++
		for _, member := range def.Group {
			if member.IsGroup() {
				return fmt.Errorf("form: group %q: nested groups are not supported", member.Name)
			}
			if err := f.AddFieldFromConfig(member.Name, member.Config); err != nil {
				return err
			}
		}
	}
	return nil
}

// AddFieldsetsFromConfig creates one fieldset per section. container is the
// fallback group tag for sections that do not name one.
func (f *Form) AddFieldsetsFromConfig(sections []Section, container string) error {
	for i, section := range sections {
		tag := section.Container
		if tag == "" {
			tag = container
		}
		f.CreateFieldset(section.Legend, tag)
		if err := f.AddFieldsFromConfig(section.Fields); err != nil {
			return fmt.Errorf("form: fieldset %d: %w", i+1, err)
		}
	}
	return nil
}

// FromConfig builds a single-fieldset form from field definitions.
func FromConfig(defs []FieldDefinition, opts ...Option) (*Form, error) {
	f := New(opts...)
	if err := f.AddFieldsFromConfig(defs); err != nil {
		return nil, err
	}
	return f, nil
}

// FromSections builds a form with one fieldset per section.
func FromSections(sections []Section, opts ...Option) (*Form, error) {
	f := New(opts...)
	if err := f.AddFieldsetsFromConfig(sections, ""); err != nil {
		return nil, err
	}
	return f, nil
}
