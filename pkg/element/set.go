package element

import (
	"strconv"

	"github.com/goliatone/go-formtree/pkg/dom"
	"github.com/goliatone/go-formtree/pkg/submission"
	"github.com/goliatone/go-formtree/pkg/value"
)

// choiceSet renders each choice as a container holding an input and its
// label.
type choiceSet struct {
	composite
	legend     string
	legendNode *dom.Node
}

func newChoiceSet(name, inputType string, kind Kind, choices []Choice) choiceSet {
	set := choiceSet{composite: composite{Base: NewBase("div", name, inputType, kind, false)}}
	inputName := name
	wrapperClass := "custom-control custom-radio"
	set.node.SetAttribute("class", "radio-fieldset")
	if inputType == "checkbox" {
		inputName = name + MultiMarker
		wrapperClass = "custom-control custom-checkbox"
		set.node.SetAttribute("class", "checkbox-fieldset")
	}
	for i, choice := range choices {
		id := name
		if i > 0 {
			id = name + strconv.Itoa(i)
		}
		input := dom.New("input").
			SetAttribute("type", inputType).
			SetAttribute("name", inputName).
			SetAttribute("class", "custom-control-input").
			SetAttribute("id", id).
			SetAttribute("value", value.String(choice.Value))
		label := dom.NewText("label", choice.Label).
			SetAttribute("class", "custom-control-label").
			SetAttribute("for", id)
		wrapper := dom.New("div").SetAttribute("class", wrapperClass)
		wrapper.AddChildren(input, label)
		set.node.AddChild(wrapper)
		set.options = append(set.options, &Option{
			node:  input,
			value: choice.Value,
			label: choice.Label,
			group: choice.Group,
			state: "checked",
		})
	}
	return set
}

func (s *choiceSet) SetDisabled(disabled bool) {
	s.Base.SetDisabled(disabled)
	for _, opt := range s.options {
		toggle(opt.node, "disabled", disabled)
	}
}

func (s *choiceSet) SetReadonly(readonly bool) {
	s.Base.SetReadonly(readonly)
	for _, opt := range s.options {
		toggle(opt.node, "readonly", readonly)
		if readonly {
			opt.node.SetAttribute("onclick", "return false;")
		} else {
			opt.node.RemoveAttribute("onclick")
		}
	}
}

// SetControlAttributes applies attrs to every generated input. A numeric
// tabindex increases by one per input.
func (s *choiceSet) SetControlAttributes(attrs ...dom.Attr) {
	for i, opt := range s.options {
		for _, attr := range attrs {
			val := attr.Value
			if attr.Name == "tabindex" {
				if start, err := strconv.Atoi(val); err == nil {
					val = strconv.Itoa(start + i)
				}
			}
			opt.node.SetAttribute(attr.Name, val)
		}
	}
}

func (s *choiceSet) Legend() string          { return s.legend }
func (s *choiceSet) SetLegend(legend string) { s.legend = legend }

// Prepare appends the legend node once; later calls refresh its text.
func (s *choiceSet) Prepare() {
	if s.legend == "" {
		return
	}
	if s.legendNode == nil {
		s.legendNode = dom.New("legend")
		s.node.AddChild(s.legendNode)
	}
	s.legendNode.SetText(s.legend)
}

// CheckboxSet is a group of checkboxes sharing one multi-valued name. Its
// value is always a list.
type CheckboxSet struct {
	choiceSet
	checked []any
}

func NewCheckboxSet(name string, choices []Choice, checked any) *CheckboxSet {
	s := &CheckboxSet{choiceSet: newChoiceSet(name, "checkbox", KindCheckboxSet, choices)}
	s.multiple = true
	s.SetValue(checked)
	return s
}

func (s *CheckboxSet) Type() string {
	if s.taxonomy != "" {
		return "term-checklist"
	}
	return "multicheckbox"
}

func (s *CheckboxSet) Value() any { return append([]any{}, s.checked...) }

func (s *CheckboxSet) SetValue(v any) {
	s.checked = value.List(v)
	s.mark(func(opt *Option) bool {
		return value.Contains(s.checked, opt.value)
	})
}

func (s *CheckboxSet) ResetValue() { s.SetValue(nil) }

func (s *CheckboxSet) Validate(*submission.Context) bool {
	return s.Check(s.Value(), len(s.checked) == 0, nil)
}

// RadioSet is a group of radio inputs. Its value is nil or one scalar.
type RadioSet struct {
	choiceSet
	checked any
}

func NewRadioSet(name string, choices []Choice, checked any) *RadioSet {
	s := &RadioSet{choiceSet: newChoiceSet(name, "radio", KindRadioSet, choices)}
	s.SetValue(checked)
	return s
}

func (s *RadioSet) Type() string { return "radio" }

func (s *RadioSet) Value() any { return s.checked }

func (s *RadioSet) SetValue(v any) {
	s.checked = v
	s.mark(func(opt *Option) bool {
		return v != nil && value.Equal(opt.value, v)
	})
}

func (s *RadioSet) ResetValue() { s.SetValue(nil) }

func (s *RadioSet) Validate(*submission.Context) bool {
	return s.Check(s.checked, value.Empty(s.checked), nil)
}

var (
	_ Element           = (*Select)(nil)
	_ Element           = (*SelectMultiple)(nil)
	_ Element           = (*CheckboxSet)(nil)
	_ Element           = (*RadioSet)(nil)
	_ ControlAttributes = (*CheckboxSet)(nil)
	_ ControlAttributes = (*RadioSet)(nil)
	_ Legend            = (*RadioSet)(nil)
	_ Element           = (*Input)(nil)
	_ Element           = (*Number)(nil)
	_ Element           = (*Password)(nil)
	_ Element           = (*Checkbox)(nil)
	_ Element           = (*File)(nil)
	_ Element           = (*Textarea)(nil)
	_ Element           = (*Editor)(nil)
	_ Element           = (*Button)(nil)
	_ Element           = (*TemplateInput)(nil)
	_ Element           = (*TermChainPicker)(nil)
	_ Element           = (*Heading)(nil)
	_ Element           = (*Token)(nil)
)
