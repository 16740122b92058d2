package form

import (
	"github.com/goliatone/go-formtree/pkg/dom"
	"github.com/goliatone/go-formtree/pkg/element"
)

// OptionView is the template data for one option of a composite control.
type OptionView struct {
	Value    any    `json:"value"`
	Label    string `json:"label"`
	Group    string `json:"group,omitempty"`
	Selected bool   `json:"selected"`
}

// FieldView is the flattened presentation data for one field.
type FieldView struct {
	Name       string            `json:"name"`
	Type       string            `json:"type"`
	Kind       string            `json:"kind"`
	Label      string            `json:"label,omitempty"`
	Hint       string            `json:"hint,omitempty"`
	Value      any               `json:"value"`
	Required   bool              `json:"required"`
	Disabled   bool              `json:"disabled"`
	Readonly   bool              `json:"readonly"`
	Multiple   bool              `json:"multiple"`
	Taxonomy   string            `json:"taxonomy,omitempty"`
	ErrorPre   bool              `json:"error_pre"`
	Errors     []string          `json:"errors,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	LabelAttrs map[string]string `json:"label_attributes,omitempty"`
	HintAttrs  map[string]string `json:"hint_attributes,omitempty"`
	Options    []OptionView      `json:"options,omitempty"`
	Legend     string            `json:"legend,omitempty"`
	Template   string            `json:"template,omitempty"`
	// BranchDisabled is set for term chain pickers that only accept leaves.
	BranchDisabled bool `json:"branch_disabled,omitempty"`
	Fieldset       int  `json:"fieldset"`
	Group          int  `json:"group"`
}

// optionLister is satisfied by every composite control.
type optionLister interface {
	Options() []*element.Option
}

// PrepareForView flattens every field into presentation data keyed by name.
func (f *Form) PrepareForView() map[string]FieldView {
	out := map[string]FieldView{}
	for fsIdx, fs := range f.fieldsets {
		for groupIdx, group := range fs.Groups() {
			for _, el := range group {
				view := View(el)
				view.Fieldset = fsIdx
				view.Group = groupIdx
				out[el.Name()] = view
			}
		}
	}
	return out
}

// View builds the presentation data for one control.
func View(el element.Element) FieldView {
	el.Prepare()
	view := FieldView{
		Name:       el.Name(),
		Type:       el.Type(),
		Kind:       el.Kind().String(),
		Label:      el.Label(),
		Hint:       el.Hint(),
		Value:      el.Value(),
		Required:   el.Required(),
		Disabled:   el.Disabled(),
		Readonly:   el.Readonly(),
		Multiple:   el.Multiple(),
		Taxonomy:   el.Taxonomy(),
		ErrorPre:   el.ErrorBeforeControl(),
		Errors:     el.Errors(),
		Attributes: el.Node().AttributeMap(),
		LabelAttrs: attrMap(el.LabelAttributes()),
		HintAttrs:  attrMap(el.HintAttributes()),
	}
	if lister, ok := el.(optionLister); ok {
		for _, opt := range lister.Options() {
			view.Options = append(view.Options, OptionView{
				Value:    opt.Value(),
				Label:    opt.Label(),
				Group:    opt.Group(),
				Selected: opt.Selected(),
			})
		}
	}
	if legend, ok := el.(element.Legend); ok {
		view.Legend = legend.Legend()
	}
	if tpl, ok := el.(element.Templated); ok {
		view.Template = tpl.Template()
	}
	if picker, ok := el.(*element.TermChainPicker); ok {
		view.BranchDisabled = picker.BranchDisabled()
	}
	return view
}

func attrMap(attrs []dom.Attr) map[string]string {
	if len(attrs) == 0 {
		return nil
	}
	out := make(map[string]string, len(attrs))
	for _, attr := range attrs {
		out[attr.Name] = attr.Value
	}
	return out
}
