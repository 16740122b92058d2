package element

import (
	"fmt"
	"slices"

	"github.com/goliatone/go-formtree/pkg/dom"
	"github.com/goliatone/go-formtree/pkg/validator"
)

// Base carries the state shared by every control. Concrete controls embed it
// and supply the value accessors plus Validate. Custom controls registered
// with the field factory can embed it too.
type Base struct {
	node     *dom.Node
	kind     Kind
	name     string
	typ      string
	label    string
	hint     string
	labelAtt []dom.Attr
	hintAtt  []dom.Attr

	required  bool
	disabled  bool
	readonly  bool
	errorPre  bool
	multiple  bool
	taxonomy  string
	flagAttrs bool

	rules  []validator.Rule
	errors []string
}

// NewBase initialises a Base around a fresh node. When flagAttrs is set the
// required/disabled/readonly flags are mirrored as attributes on the node.
func NewBase(tag, name, typ string, kind Kind, flagAttrs bool) Base {
	return Base{
		node:      dom.New(tag),
		kind:      kind,
		name:      name,
		typ:       typ,
		flagAttrs: flagAttrs,
	}
}

func (b *Base) Node() *dom.Node { return b.node }
func (b *Base) Kind() Kind      { return b.kind }
func (b *Base) Name() string    { return b.name }
func (b *Base) Type() string    { return b.typ }

func (b *Base) Label() string         { return b.label }
func (b *Base) SetLabel(label string) { b.label = label }
func (b *Base) Hint() string          { return b.hint }
func (b *Base) SetHint(hint string)   { b.hint = hint }

func (b *Base) LabelAttributes() []dom.Attr {
	return slices.Clone(b.labelAtt)
}

func (b *Base) SetLabelAttribute(name, value string) {
	b.labelAtt = setAttr(b.labelAtt, name, value)
}

func (b *Base) HintAttributes() []dom.Attr {
	return slices.Clone(b.hintAtt)
}

func (b *Base) SetHintAttribute(name, value string) {
	b.hintAtt = setAttr(b.hintAtt, name, value)
}

func setAttr(list []dom.Attr, name, value string) []dom.Attr {
	for i := range list {
		if list[i].Name == name {
			list[i].Value = value
			return list
		}
	}
	return append(list, dom.Attr{Name: name, Value: value})
}

func (b *Base) Required() bool { return b.required }
func (b *Base) Disabled() bool { return b.disabled }
func (b *Base) Readonly() bool { return b.readonly }

func (b *Base) SetRequired(required bool) {
	b.required = required
	b.mirror("required", required)
}

func (b *Base) SetDisabled(disabled bool) {
	b.disabled = disabled
	b.mirror("disabled", disabled)
}

func (b *Base) SetReadonly(readonly bool) {
	b.readonly = readonly
	b.mirror("readonly", readonly)
}

func (b *Base) mirror(attr string, on bool) {
	if !b.flagAttrs {
		return
	}
	toggle(b.node, attr, on)
}

func toggle(n *dom.Node, attr string, on bool) {
	if on {
		n.SetAttribute(attr, attr)
	} else {
		n.RemoveAttribute(attr)
	}
}

func (b *Base) ErrorBeforeControl() bool       { return b.errorPre }
func (b *Base) SetErrorBeforeControl(pre bool) { b.errorPre = pre }
func (b *Base) Multiple() bool                 { return b.multiple }
func (b *Base) SetMultiple(multiple bool)      { b.multiple = multiple }
func (b *Base) Taxonomy() string               { return b.taxonomy }
func (b *Base) SetTaxonomy(taxonomy string)    { b.taxonomy = taxonomy }

func (b *Base) AddValidator(rules ...validator.Rule) {
	for _, rule := range rules {
		if rule.Valid() {
			b.rules = append(b.rules, rule)
		}
	}
}

func (b *Base) Validators() []validator.Rule {
	return slices.Clone(b.rules)
}

func (b *Base) Errors() []string {
	return slices.Clone(b.errors)
}

func (b *Base) HasErrors() bool { return len(b.errors) > 0 }

func (b *Base) ClearErrors() { b.errors = nil }

// AddError records msg unless the field already carries it.
func (b *Base) AddError(msg string) {
	if msg == "" || slices.Contains(b.errors, msg) {
		return
	}
	b.errors = append(b.errors, msg)
}

func (b *Base) IsButton() bool { return false }

func (b *Base) Prepare() {}

// RequiredMessage is recorded when a required control is empty.
func (b *Base) RequiredMessage() string {
	subject := b.label
	if subject == "" {
		subject = b.name
	}
	return fmt.Sprintf("%s is a required field.", subject)
}

// Check runs the validation contract: errors are reset, the required check
// runs when empty is true, then every rule is evaluated in order. When
// measure is non-nil, threshold rules receive measure(v) instead of v.
func (b *Base) Check(v any, empty bool, measure func(any) any) bool {
	b.errors = nil
	if b.required && empty {
		b.AddError(b.RequiredMessage())
	}
	for _, rule := range b.rules {
		input := v
		if measure != nil && rule.IsThreshold() {
			input = measure(v)
		}
		if msg, failed := rule.Apply(input); failed {
			b.AddError(msg)
		}
	}
	return len(b.errors) == 0
}
