package element

import (
	"errors"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/goliatone/go-formtree/pkg/submission"
	"github.com/goliatone/go-formtree/pkg/value"
)

// ErrNoRenderer is returned by Render when no callback was attached.
var ErrNoRenderer = errors.New("element: no renderer attached")

type templated struct {
	self     Element
	template string
	render   RenderFunc
}

func (t *templated) Template() string          { return t.template }
func (t *templated) SetRenderer(fn RenderFunc) { t.render = fn }

func (t *templated) Render() (string, error) {
	if t.render == nil {
		return "", ErrNoRenderer
	}
	return t.render(t.self, t.template)
}

// Editor is a rich text textarea rendered through a template.
type Editor struct {
	*Textarea
	templated
}

func NewEditor(name string, v any) *Editor {
	e := &Editor{Textarea: newTextarea(name, "editor", v)}
	e.templated = templated{self: e, template: "editor-field"}
	return e
}

// TemplateInput is an input whose markup is produced by a template: price,
// listing tags, listing category.
type TemplateInput struct {
	*Input
	templated
	counted bool
}

func newTemplateInput(name, typ, template string, counted bool, v any) *TemplateInput {
	in := &TemplateInput{Input: newInput(name, "text", typ, v), counted: counted}
	in.templated = templated{self: in, template: template}
	return in
}

func NewPrice(name string, v any) *TemplateInput {
	return newTemplateInput(name, "price", "pricing-field", false, v)
}

// NewListingTags builds the tag picker. Its value is a JSON array and
// threshold validators compare the number of submitted tags.
func NewListingTags(name string, v any) *TemplateInput {
	return newTemplateInput(name, "listing-tags", "listing-tags-field", true, v)
}

// NewListingCategory builds the category picker; values behave like tags.
func NewListingCategory(name string, v any) *TemplateInput {
	return newTemplateInput(name, "listing-category", "listing-category-field", true, v)
}

func (t *TemplateInput) Validate(*submission.Context) bool {
	if !t.counted {
		return t.Check(t.value, value.Empty(t.value), nil)
	}
	count := CountItems(t.value)
	return t.Check(t.value, count == 0, func(any) any { return count })
}

// CountItems counts the members of a collection value or of a JSON array
// string. Escaped quotes are unescaped first; undecodable input counts as 0.
func CountItems(v any) int {
	if value.IsCollection(v) {
		return value.Len(v)
	}
	raw := strings.TrimSpace(strings.ReplaceAll(value.String(v), `\"`, `"`))
	if raw == "" {
		return 0
	}
	var items []any
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return 0
	}
	return len(items)
}

// TermChainPicker selects a term through a chain of dependent dropdowns.
type TermChainPicker struct {
	*Input
	templated
	branchDisabled bool
}

func NewTermChainPicker(name string, v any) *TermChainPicker {
	p := &TermChainPicker{Input: newInput(name, "hidden", "term-chain-picker", v)}
	p.templated = templated{self: p, template: "term-chain-dropdown-field"}
	return p
}

// SetBranchDisabled prevents selecting non-leaf terms.
func (p *TermChainPicker) SetBranchDisabled(disabled bool) { p.branchDisabled = disabled }
func (p *TermChainPicker) BranchDisabled() bool            { return p.branchDisabled }

// Heading is a presentation-only container; it never carries a value.
type Heading struct {
	Base
	templated
}

func NewHeading(name string, text any) *Heading {
	h := &Heading{Base: NewBase("h3", name, "heading", KindContainer, false)}
	h.templated = templated{self: h, template: "heading-field"}
	h.node.SetAttribute("id", name)
	if text != nil {
		h.label = value.String(text)
	}
	return h
}

func (h *Heading) Value() any   { return false }
func (h *Heading) SetValue(any) {}
func (h *Heading) ResetValue()  {}

// Prepare copies the label into the heading node for tree rendering.
func (h *Heading) Prepare() { h.node.SetText(h.label) }

func (h *Heading) Validate(*submission.Context) bool {
	return h.Check(false, false, nil)
}

var (
	_ Templated = (*Editor)(nil)
	_ Templated = (*TemplateInput)(nil)
	_ Templated = (*TermChainPicker)(nil)
	_ Templated = (*Heading)(nil)
)
