package form

import (
	"errors"
	"fmt"
	"slices"

	"github.com/goliatone/go-formtree/pkg/dom"
	"github.com/goliatone/go-formtree/pkg/element"
)

// Fieldset is an ordered grouping of fields. Fields live in one or more
// groups; groups only affect presentation.
type Fieldset struct {
	node      *dom.Node
	legend    string
	container string
	groups    [][]element.Element
	current   int
}

// NewFieldset constructs an empty fieldset with one group.
func NewFieldset() *Fieldset {
	return &Fieldset{
		node:      dom.New("fieldset"),
		container: "div",
		groups:    [][]element.Element{nil},
	}
}

func (fs *Fieldset) Node() *dom.Node         { return fs.node }
func (fs *Fieldset) Legend() string          { return fs.legend }
func (fs *Fieldset) SetLegend(legend string) { fs.legend = legend }
func (fs *Fieldset) Container() string       { return fs.container }

// SetContainer overrides the tag wrapping each group. Empty restores "div".
func (fs *Fieldset) SetContainer(tag string) {
	if tag == "" {
		tag = "div"
	}
	fs.container = tag
}

// CreateGroup starts a new group; later fields are appended to it.
func (fs *Fieldset) CreateGroup() {
	fs.groups = append(fs.groups, nil)
	fs.current = len(fs.groups) - 1
}

// Groups returns the fields of every group.
func (fs *Fieldset) Groups() [][]element.Element {
	out := make([][]element.Element, len(fs.groups))
	for i, group := range fs.groups {
		out[i] = slices.Clone(group)
	}
	return out
}

// AddField appends to the current group.
func (fs *Fieldset) AddField(el element.Element) {
	if el == nil {
		return
	}
	fs.groups[fs.current] = append(fs.groups[fs.current], el)
}

func (fs *Fieldset) AddFields(els ...element.Element) {
	for _, el := range els {
		fs.AddField(el)
	}
}

// Fields returns every field in document order.
func (fs *Fieldset) Fields() []element.Element {
	var out []element.Element
	for _, group := range fs.groups {
		out = append(out, group...)
	}
	return out
}

func (fs *Fieldset) Count() int {
	n := 0
	for _, group := range fs.groups {
		n += len(group)
	}
	return n
}

func (fs *Fieldset) locate(name string) (int, int, bool) {
	for g, group := range fs.groups {
		for i, el := range group {
			if el.Name() == name {
				return g, i, true
			}
		}
	}
	return 0, 0, false
}

func (fs *Fieldset) HasField(name string) bool {
	_, _, ok := fs.locate(name)
	return ok
}

// Field returns the named field or nil.
func (fs *Fieldset) Field(name string) element.Element {
	g, i, ok := fs.locate(name)
	if !ok {
		return nil
	}
	return fs.groups[g][i]
}

// InsertFieldBefore places el in front of the named field.
func (fs *Fieldset) InsertFieldBefore(name string, el element.Element) bool {
	return fs.insert(name, el, 0)
}

// InsertFieldAfter places el behind the named field.
func (fs *Fieldset) InsertFieldAfter(name string, el element.Element) bool {
	return fs.insert(name, el, 1)
}

func (fs *Fieldset) insert(name string, el element.Element, offset int) bool {
	g, i, ok := fs.locate(name)
	if !ok || el == nil {
		return false
	}
	fs.groups[g] = slices.Insert(fs.groups[g], i+offset, el)
	return true
}

// RemoveField drops the named field.
func (fs *Fieldset) RemoveField(name string) bool {
	g, i, ok := fs.locate(name)
	if !ok {
		return false
	}
	fs.groups[g] = slices.Delete(fs.groups[g], i, i+1)
	return true
}

// Prepare rebuilds the fieldset markup: legend, then one container per
// non-empty group holding each field's wrapper.
func (fs *Fieldset) Prepare(prefix string) error {
	fs.node.RemoveChildren()
	if fs.legend != "" {
		fs.node.AddChild(dom.NewText("legend", fs.legend))
	}
	for _, group := range fs.groups {
		if len(group) == 0 {
			continue
		}
		wrapper := dom.New(fs.container).SetAttribute("class", prefix+"-group")
		for _, el := range group {
			fieldNode, err := fieldMarkup(el, prefix)
			if err != nil {
				return err
			}
			wrapper.AddChild(fieldNode)
		}
		fs.node.AddChild(wrapper)
	}
	return nil
}

// fieldMarkup wraps one control with its label, hint, and errors.
func fieldMarkup(el element.Element, prefix string) (*dom.Node, error) {
	el.Prepare()
	wrapper := dom.New("div").
		SetAttribute("class", fmt.Sprintf("%s-field %s-field-%s", prefix, prefix, el.Type())).
		SetAttribute("id", el.Name()+"-field")
	if el.HasErrors() {
		wrapper.SetAttribute("class", wrapper.AttributeValue("class")+" has-errors")
	}

	errorsNode := errorList(el.Errors())
	if el.ErrorBeforeControl() {
		wrapper.AddChild(errorsNode)
	}

	control, err := controlMarkup(el)
	if err != nil {
		return nil, err
	}
	_, templated := el.(element.Templated)
	if el.Label() != "" && !el.IsButton() && !templated {
		label := dom.NewText("label", el.Label()).SetAttribute("for", el.Name())
		label.SetAttributes(el.LabelAttributes()...)
		if el.Required() {
			label.AddChild(dom.NewText("span", "*").SetAttribute("class", "required"))
		}
		wrapper.AddChild(label)
	}
	wrapper.AddChild(control)
	if el.Hint() != "" {
		hint := dom.NewText("small", el.Hint()).SetAttribute("class", prefix+"-hint")
		hint.SetAttributes(el.HintAttributes()...)
		wrapper.AddChild(hint)
	}
	if !el.ErrorBeforeControl() {
		wrapper.AddChild(errorsNode)
	}
	return wrapper, nil
}

func controlMarkup(el element.Element) (*dom.Node, error) {
	tpl, ok := el.(element.Templated)
	if !ok {
		return el.Node(), nil
	}
	markup, err := tpl.Render()
	switch {
	case err == nil:
		return dom.NewRaw(markup), nil
	case errors.Is(err, element.ErrNoRenderer):
		return el.Node(), nil
	default:
		return nil, fmt.Errorf("form: render %q: %w", el.Name(), err)
	}
}

func errorList(messages []string) *dom.Node {
	if len(messages) == 0 {
		return nil
	}
	list := dom.New("ul").SetAttribute("class", "errors")
	for _, msg := range messages {
		list.AddChild(dom.NewText("li", msg))
	}
	return list
}
