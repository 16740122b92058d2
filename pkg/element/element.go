package element

import (
	"github.com/goliatone/go-formtree/pkg/dom"
	"github.com/goliatone/go-formtree/pkg/submission"
	"github.com/goliatone/go-formtree/pkg/validator"
)

// Kind is the closed set of control variants.
type Kind int

const (
	KindInput Kind = iota
	KindSelect
	KindSelectMultiple
	KindCheckboxSet
	KindRadioSet
	KindTextarea
	KindButton
	KindContainer
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindSelect:
		return "select"
	case KindSelectMultiple:
		return "select-multiple"
	case KindCheckboxSet:
		return "checkbox-set"
	case KindRadioSet:
		return "radio-set"
	case KindTextarea:
		return "textarea"
	case KindButton:
		return "button"
	case KindContainer:
		return "container"
	default:
		return "unknown"
	}
}

// MultiMarker is appended to submitted names of multi-valued controls.
const MultiMarker = "[]"

// Element is the contract every form control satisfies.
type Element interface {
	Node() *dom.Node
	Kind() Kind
	Name() string
	// Type is the logical control type used for filter exclusion and
	// rendering lookups ("text", "file", "multicheckbox", ...).
	Type() string

	Value() any
	SetValue(v any)
	ResetValue()

	Label() string
	SetLabel(label string)
	LabelAttributes() []dom.Attr
	SetLabelAttribute(name, value string)
	Hint() string
	SetHint(hint string)
	HintAttributes() []dom.Attr
	SetHintAttribute(name, value string)

	Required() bool
	SetRequired(required bool)
	Disabled() bool
	SetDisabled(disabled bool)
	Readonly() bool
	SetReadonly(readonly bool)
	ErrorBeforeControl() bool
	SetErrorBeforeControl(pre bool)
	Multiple() bool
	SetMultiple(multiple bool)
	Taxonomy() string
	SetTaxonomy(taxonomy string)

	AddValidator(rules ...validator.Rule)
	Validators() []validator.Rule
	// Validate resets the error list, evaluates the required check and every
	// validator against the logical value, and reports whether no errors were
	// recorded.
	Validate(ctx *submission.Context) bool
	Errors() []string
	HasErrors() bool
	ClearErrors()

	// IsButton reports controls that are never bound to submitted values.
	IsButton() bool
	// Prepare finalises markup-only state (legends, hidden password values)
	// before the node is emitted.
	Prepare()
}

// FileConstraints is implemented by controls that accept upload limits.
type FileConstraints interface {
	SetMaxSize(bytes int64)
	MaxSize() int64
	SetMimeTypes(types []string)
	MimeTypes() []string
}

// ControlAttributes is implemented by sets whose configured attributes apply
// to each generated input rather than the container.
type ControlAttributes interface {
	SetControlAttributes(attrs ...dom.Attr)
}

// Legend is implemented by grouped controls that render a legend.
type Legend interface {
	Legend() string
	SetLegend(legend string)
}

// RenderFunc produces markup for a template-backed control.
type RenderFunc func(el Element, template string) (string, error)

// Templated is implemented by controls whose markup comes from an external
// render callback instead of the node tree.
type Templated interface {
	Template() string
	SetRenderer(fn RenderFunc)
	Render() (string, error)
}
