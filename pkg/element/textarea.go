package element

import (
	"strings"

	"github.com/goliatone/go-formtree/pkg/submission"
	"github.com/goliatone/go-formtree/pkg/value"
)

// Textarea keeps its value as the node's text content.
type Textarea struct {
	Base
	value any
}

func NewTextarea(name string, v any) *Textarea {
	return newTextarea(name, "textarea", v)
}

func newTextarea(name, typ string, v any) *Textarea {
	t := &Textarea{Base: NewBase("textarea", name, typ, KindTextarea, true)}
	t.node.SetAttribute("name", name).SetAttribute("id", name)
	t.SetValue(v)
	return t
}

func (t *Textarea) Value() any { return t.value }

func (t *Textarea) SetValue(v any) {
	t.value = v
	t.node.SetText(value.String(v))
}

func (t *Textarea) ResetValue() {
	t.value = nil
	t.node.SetText("")
}

func (t *Textarea) Validate(*submission.Context) bool {
	return t.Check(t.value, value.Empty(t.value), nil)
}

// Button is a <button> or submit/reset <input>. Buttons are never bound to
// submitted values and always validate.
type Button struct {
	Base
	value  any
	asNode bool
}

// NewButton builds a <button>. The type attribute follows the name: "submit"
// and "reset" map to themselves, anything else is a plain button.
func NewButton(name string, v any) *Button {
	b := &Button{Base: NewBase("button", name, "button", KindButton, false), asNode: true}
	b.node.SetAttribute("name", name).SetAttribute("id", name).SetAttribute("type", buttonType(name))
	if v != nil {
		b.SetValue(v)
	}
	return b
}

// NewInputButton builds an <input> button of the given type.
func NewInputButton(name, typ string, v any) *Button {
	if typ != "submit" && typ != "reset" {
		typ = "button"
	}
	b := &Button{Base: NewBase("input", name, typ, KindButton, false)}
	b.node.SetAttribute("type", typ).SetAttribute("name", name).SetAttribute("id", name)
	b.SetValue(v)
	return b
}

func buttonType(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "submit":
		return "submit"
	case "reset":
		return "reset"
	default:
		return "button"
	}
}

func (b *Button) Value() any { return b.value }

func (b *Button) SetValue(v any) {
	b.value = v
	if b.asNode {
		b.node.SetText(value.String(v))
		return
	}
	b.node.SetAttribute("value", value.String(v))
}

func (b *Button) ResetValue() { b.SetValue(nil) }

func (b *Button) IsButton() bool { return true }

func (b *Button) Validate(*submission.Context) bool {
	b.ClearErrors()
	return true
}
