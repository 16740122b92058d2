package element

import (
	"strings"

	"github.com/goliatone/go-formtree/pkg/submission"
	"github.com/goliatone/go-formtree/pkg/value"
)

// Input is a single <input> control whose value lives in the value
// attribute.
type Input struct {
	Base
	value any
}

// NewInput builds an input of the given HTML type. The logical type matches
// the HTML type.
func NewInput(name, typ string, v any) *Input {
	return newInput(name, typ, typ, v)
}

func newInput(name, attrType, typ string, v any) *Input {
	in := &Input{Base: NewBase("input", name, typ, KindInput, true)}
	in.node.SetAttribute("type", attrType).
		SetAttribute("name", name).
		SetAttribute("id", name)
	in.SetValue(v)
	return in
}

func (in *Input) Value() any { return in.value }

func (in *Input) SetValue(v any) {
	in.value = v
	in.node.SetAttribute("value", attrString(v))
}

func (in *Input) ResetValue() {
	in.value = nil
	in.node.SetAttribute("value", "")
}

// SetMultiple switches the submitted name to the multi-value convention.
func (in *Input) SetMultiple(multiple bool) {
	in.Base.SetMultiple(multiple)
	name := in.name
	if multiple {
		name += MultiMarker
	}
	in.node.SetAttribute("name", name)
}

func (in *Input) Validate(*submission.Context) bool {
	return in.Check(in.value, value.Empty(in.value), nil)
}

func attrString(v any) string {
	if value.IsCollection(v) {
		return strings.Join(value.Strings(v), ",")
	}
	return value.String(v)
}

// Number is a numeric input ("number" or "range") with optional bounds. A
// zero value satisfies the required check.
type Number struct {
	*Input
}

// NewNumber builds a number or range input. Nil or false bounds are omitted.
func NewNumber(name, typ string, min, max, v any) *Number {
	if typ != "range" {
		typ = "number"
	}
	n := &Number{Input: NewInput(name, typ, v)}
	n.SetBounds(min, max)
	return n
}

// SetBounds sets the min/max attributes.
func (n *Number) SetBounds(min, max any) {
	bounds := []struct {
		attr  string
		value any
	}{{"min", min}, {"max", max}}
	for _, bound := range bounds {
		if bound.value == nil || bound.value == false {
			n.node.RemoveAttribute(bound.attr)
			continue
		}
		n.node.SetAttribute(bound.attr, value.String(bound.value))
	}
}

func (n *Number) Validate(*submission.Context) bool {
	empty := value.Empty(n.value)
	if num, ok := value.Number(n.value); ok && num == 0 {
		empty = false
	}
	return n.Check(n.value, empty, nil)
}

// Password never echoes its value into markup unless asked to.
type Password struct {
	*Input
	renderValue bool
}

func NewPassword(name string, v any, renderValue bool) *Password {
	return &Password{Input: NewInput(name, "password", v), renderValue: renderValue}
}

func (p *Password) RenderValue() bool               { return p.renderValue }
func (p *Password) SetRenderValue(renderValue bool) { p.renderValue = renderValue }

func (p *Password) Prepare() {
	if p.renderValue {
		p.node.SetAttribute("value", attrString(p.value))
		return
	}
	p.node.SetAttribute("value", "")
}

// Checkbox is a single boolean input. Its logical value is the checked state;
// non-boolean values set the submitted value attribute instead.
type Checkbox struct {
	*Input
	checked bool
}

func NewCheckbox(name string, submitValue any, checked bool) *Checkbox {
	c := &Checkbox{Input: newInput(name, "checkbox", "checkbox", nil)}
	if submitValue != nil {
		c.node.SetAttribute("value", value.String(submitValue))
	}
	c.setChecked(checked)
	return c
}

func (c *Checkbox) Value() any { return c.checked }

func (c *Checkbox) SetValue(v any) {
	switch t := v.(type) {
	case nil:
		c.setChecked(false)
	case bool:
		c.setChecked(t)
	default:
		c.node.SetAttribute("value", value.String(v))
	}
}

func (c *Checkbox) ResetValue() { c.setChecked(false) }

func (c *Checkbox) Checked() bool { return c.checked }

func (c *Checkbox) setChecked(on bool) {
	c.checked = on
	toggle(c.node, "checked", on)
}

func (c *Checkbox) Validate(*submission.Context) bool {
	return c.Check(c.checked, !c.checked, nil)
}

// File is an upload input. Validation reads the upload from the submission
// context; threshold validators compare the upload size.
type File struct {
	*Input
	maxSize   int64
	mimeTypes []string
}

func NewFile(name string, v any) *File {
	return &File{Input: NewInput(name, "file", v)}
}

func (f *File) SetMaxSize(bytes int64) { f.maxSize = bytes }
func (f *File) MaxSize() int64         { return f.maxSize }

func (f *File) SetMimeTypes(types []string) {
	f.mimeTypes = append([]string(nil), types...)
	if len(f.mimeTypes) > 0 {
		f.node.SetAttribute("accept", strings.Join(f.mimeTypes, ","))
	} else {
		f.node.RemoveAttribute("accept")
	}
}

func (f *File) MimeTypes() []string { return append([]string(nil), f.mimeTypes...) }

// Validate checks the upload received for the field. When nothing new was
// uploaded but the field already holds a stored value, the field is valid
// and upload validators are skipped.
func (f *File) Validate(ctx *submission.Context) bool {
	upload, ok := ctx.Upload(f.name)
	if !ok {
		if !value.Empty(f.value) {
			f.ClearErrors()
			return true
		}
		return f.Check(nil, true, nil)
	}
	return f.Check(upload, false, func(v any) any {
		return upload.Size
	})
}

var _ FileConstraints = (*File)(nil)
