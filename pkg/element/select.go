package element

import (
	"github.com/goliatone/go-formtree/pkg/dom"
	"github.com/goliatone/go-formtree/pkg/submission"
	"github.com/goliatone/go-formtree/pkg/value"
)

type composite struct {
	Base
	options []*Option
}

// Options returns the option children in document order, optgroups
// flattened.
func (c *composite) Options() []*Option {
	return append([]*Option(nil), c.options...)
}

// Choices reports the options as plain choices.
func (c *composite) Choices() []Choice {
	out := make([]Choice, len(c.options))
	for i, opt := range c.options {
		out[i] = Choice{Value: opt.value, Label: opt.label, Group: opt.group}
	}
	return out
}

func (c *composite) mark(selected func(opt *Option) bool) {
	for _, opt := range c.options {
		opt.set(selected(opt))
	}
}

type selectBase struct {
	composite
}

func newSelectBase(name, nameAttr string, kind Kind, choices []Choice) selectBase {
	s := selectBase{composite: composite{Base: NewBase("select", name, "select", kind, true)}}
	s.node.SetAttribute("name", nameAttr).SetAttribute("id", name)
	groups := map[string]*dom.Node{}
	for _, choice := range choices {
		opt := &Option{
			node:  dom.NewText("option", choice.Label),
			value: choice.Value,
			label: choice.Label,
			group: choice.Group,
			state: "selected",
		}
		opt.node.SetAttribute("value", value.String(choice.Value))
		s.options = append(s.options, opt)
		if choice.Group == "" {
			s.node.AddChild(opt.node)
			continue
		}
		group, ok := groups[choice.Group]
		if !ok {
			group = dom.New("optgroup").SetAttribute("label", choice.Group)
			groups[choice.Group] = group
			s.node.AddChild(group)
		}
		group.AddChild(opt.node)
	}
	return s
}

func (s *selectBase) SetDisabled(disabled bool) {
	s.Base.SetDisabled(disabled)
	s.applyFlags()
}

func (s *selectBase) SetReadonly(readonly bool) {
	s.Base.SetReadonly(readonly)
	s.applyFlags()
}

// applyFlags derives option flags from the control flags. A read-only
// select leaves only its selected options submittable.
func (s *selectBase) applyFlags() {
	for _, opt := range s.options {
		opt.node.RemoveAttribute("disabled").RemoveAttribute("readonly")
		switch {
		case s.disabled:
			opt.node.SetAttribute("disabled", "disabled")
		case s.readonly && opt.Selected():
			opt.node.SetAttribute("readonly", "readonly")
		case s.readonly:
			opt.node.SetAttribute("disabled", "disabled")
		}
	}
}

// Select is a single-choice dropdown. Its value is nil or one scalar.
type Select struct {
	selectBase
	selected any
}

// NewSelect builds a single-choice select with selected applied.
func NewSelect(name string, choices []Choice, selected any) *Select {
	s := &Select{selectBase: newSelectBase(name, name, KindSelect, choices)}
	s.SetValue(selected)
	return s
}

func (s *Select) Type() string {
	if s.taxonomy != "" {
		return "term-select"
	}
	return "select"
}

func (s *Select) Value() any { return s.selected }

func (s *Select) SetValue(v any) {
	s.selected = v
	s.mark(func(opt *Option) bool {
		return v != nil && value.Equal(opt.value, v)
	})
	s.applyFlags()
}

func (s *Select) ResetValue() { s.SetValue(nil) }

func (s *Select) Validate(*submission.Context) bool {
	return s.Check(s.selected, value.Empty(s.selected), nil)
}

// SelectMultiple is a multi-choice list box. Its value is always a list.
type SelectMultiple struct {
	selectBase
	selected []any
}

// NewSelectMultiple builds a multi-choice select. selected may be a scalar or a list.
func NewSelectMultiple(name string, choices []Choice, selected any) *SelectMultiple {
	s := &SelectMultiple{selectBase: newSelectBase(name, name+MultiMarker, KindSelectMultiple, choices)}
	s.node.SetAttribute("multiple", "multiple")
	s.multiple = true
	s.SetValue(selected)
	return s
}

func (s *SelectMultiple) Type() string {
	if s.taxonomy != "" {
		return "term-multiselect"
	}
	return "multiselect"
}

func (s *SelectMultiple) Value() any { return append([]any{}, s.selected...) }

func (s *SelectMultiple) SetValue(v any) {
	s.selected = value.List(v)
	s.mark(func(opt *Option) bool {
		return value.Contains(s.selected, opt.value)
	})
	s.applyFlags()
}

func (s *SelectMultiple) ResetValue() { s.SetValue(nil) }

func (s *SelectMultiple) Validate(*submission.Context) bool {
	return s.Check(s.Value(), len(s.selected) == 0, nil)
}
