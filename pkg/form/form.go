package form

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/goliatone/go-formtree/internal/logging"
	"github.com/goliatone/go-formtree/pkg/dom"
	"github.com/goliatone/go-formtree/pkg/element"
	"github.com/goliatone/go-formtree/pkg/fields"
	"github.com/goliatone/go-formtree/pkg/filter"
	"github.com/goliatone/go-formtree/pkg/submission"
)

// DefaultPrefix names fieldsets, columns, and wrappers when the form has no
// id of its own.
const DefaultPrefix = "formtree-form"

// ErrFieldNotFound is returned when an operation names an unknown field.
var ErrFieldNotFound = errors.New("form: field not found")

// Observer receives pipeline events, e.g. for metrics.
type Observer interface {
	Validated(form string, valid bool, failed []string, elapsed time.Duration)
	Filtered(form string, fields int)
}

// Option customises a Form.
type Option func(*Form)

// WithAction sets the form's action attribute.
func WithAction(action string) Option {
	return func(f *Form) { f.node.SetAttribute("action", action) }
}

// WithMethod sets the submission method, lowercased.
func WithMethod(method string) Option {
	return func(f *Form) { f.node.SetAttribute("method", strings.ToLower(method)) }
}

// WithID sets the form id, which also becomes its prefix.
func WithID(id string) Option {
	return func(f *Form) { f.node.SetAttribute("id", id) }
}

// WithClass sets the form's class attribute.
func WithClass(class string) Option {
	return func(f *Form) { f.node.SetAttribute("class", class) }
}

// WithLogger routes validation and filter diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithObserver reports validation and filter runs to observer.
func WithObserver(observer Observer) Option {
	return func(f *Form) { f.observer = observer }
}

// WithFactory sets the factory used by the config builders.
func WithFactory(factory *fields.Factory) Option {
	return func(f *Form) {
		if factory != nil {
			f.factory = factory
		}
	}
}

// WithFilters appends filters to the chain.
func WithFilters(filters ...*filter.Filter) Option {
	return func(f *Form) { f.AddFilters(filters...) }
}

// WithDefaultFilters installs the standard sanitising chain for the types
// the form's factory knows.
func WithDefaultFilters() Option {
	return func(f *Form) { f.defaultFilters = true }
}

// Column groups fieldsets for presentation. Fieldsets holds zero-based
// fieldset indexes.
type Column struct {
	Class     string
	Fieldsets []int
}

// Form is the aggregate of fieldsets, filters, and presentation columns.
type Form struct {
	node           *dom.Node
	fieldsets      []*Fieldset
	filters        filter.Chain
	columns        []Column
	current        int
	logger         *slog.Logger
	observer       Observer
	factory        *fields.Factory
	defaultFilters bool
}

// New constructs an empty form posting to "#".
func New(opts ...Option) *Form {
	f := &Form{
		node:   dom.New("form").SetAttribute("action", "#").SetAttribute("method", "post"),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	if f.factory == nil {
		f.factory = fields.New(fields.WithLogger(f.logger))
	}
	if f.defaultFilters {
		f.AddFilters(filter.Defaults(f.factory.Types())...)
	}
	return f
}

func (f *Form) Node() *dom.Node             { return f.node }
func (f *Form) Factory() *fields.Factory    { return f.factory }
func (f *Form) Action() string              { return f.node.AttributeValue("action") }
func (f *Form) Method() string              { return f.node.AttributeValue("method") }
func (f *Form) SetAction(action string)     { f.node.SetAttribute("action", action) }
func (f *Form) SetMethod(method string)     { f.node.SetAttribute("method", strings.ToLower(method)) }
func (f *Form) SetAttribute(name, v string) { f.node.SetAttribute(name, v) }

// Prefix is the form id, or DefaultPrefix when unset.
func (f *Form) Prefix() string {
	if id := f.node.AttributeValue("id"); id != "" {
		return id
	}
	return DefaultPrefix
}

// CreateFieldset appends a fieldset, makes it current, and derives its id
// and class from the form prefix.
func (f *Form) CreateFieldset(legend, container string) *Fieldset {
	fs := NewFieldset()
	fs.SetLegend(legend)
	if container != "" {
		fs.SetContainer(container)
	}
	f.AddFieldset(fs)
	prefix := f.Prefix()
	fs.Node().
		SetAttribute("id", fmt.Sprintf("%s-fieldset-%d", prefix, f.current+1)).
		SetAttribute("class", prefix+"-fieldset")
	return fs
}

// AddFieldset appends fs and makes it current.
func (f *Form) AddFieldset(fs *Fieldset) {
	if fs == nil {
		return
	}
	f.fieldsets = append(f.fieldsets, fs)
	f.current = len(f.fieldsets) - 1
}

// RemoveFieldset drops the fieldset at index i and clamps the cursor.
func (f *Form) RemoveFieldset(i int) {
	if i < 0 || i >= len(f.fieldsets) {
		return
	}
	f.fieldsets = append(f.fieldsets[:i], f.fieldsets[i+1:]...)
	if f.current >= len(f.fieldsets) {
		f.current = max(len(f.fieldsets)-1, 0)
	}
}

func (f *Form) Fieldsets() []*Fieldset {
	return append([]*Fieldset(nil), f.fieldsets...)
}

// Fieldset returns the current fieldset or nil.
func (f *Form) Fieldset() *Fieldset {
	if f.current < len(f.fieldsets) {
		return f.fieldsets[f.current]
	}
	return nil
}

func (f *Form) Current() int { return f.current }

// SetCurrent moves the cursor, creating fieldsets up to index i.
func (f *Form) SetCurrent(i int) {
	if i < 0 {
		i = 0
	}
	for len(f.fieldsets) <= i {
		f.CreateFieldset("", "")
	}
	f.current = i
}

func (f *Form) Legend() string {
	if fs := f.Fieldset(); fs != nil {
		return fs.Legend()
	}
	return ""
}

func (f *Form) SetLegend(legend string) {
	if fs := f.Fieldset(); fs != nil {
		fs.SetLegend(legend)
	}
}

// ColumnName returns the generated class for the n-th column (1-based).
func (f *Form) ColumnName(n int) string {
	return fmt.Sprintf("%s-column-%d", f.Prefix(), n)
}

// AddColumn groups 1-based fieldset numbers under class. An empty class gets
// a generated name. Re-adding a class replaces its fieldsets.
func (f *Form) AddColumn(class string, fieldsets ...int) {
	if class == "" {
		class = f.ColumnName(len(f.columns) + 1)
	}
	indexes := make([]int, len(fieldsets))
	for i, n := range fieldsets {
		indexes[i] = n - 1
	}
	for i := range f.columns {
		if f.columns[i].Class == class {
			f.columns[i].Fieldsets = indexes
			return
		}
	}
	f.columns = append(f.columns, Column{Class: class, Fieldsets: indexes})
}

func (f *Form) Column(class string) ([]int, bool) {
	for _, col := range f.columns {
		if col.Class == class {
			return append([]int(nil), col.Fieldsets...), true
		}
	}
	return nil, false
}

func (f *Form) HasColumn(class string) bool {
	_, ok := f.Column(class)
	return ok
}

func (f *Form) RemoveColumn(class string) {
	for i, col := range f.columns {
		if col.Class == class {
			f.columns = append(f.columns[:i], f.columns[i+1:]...)
			return
		}
	}
}

func (f *Form) Columns() []Column {
	out := make([]Column, len(f.columns))
	for i, col := range f.columns {
		out[i] = Column{Class: col.Class, Fieldsets: append([]int(nil), col.Fieldsets...)}
	}
	return out
}

// AddField appends to the current fieldset, creating one when needed.
func (f *Form) AddField(el element.Element) {
	if len(f.fieldsets) == 0 {
		f.CreateFieldset("", "")
	}
	f.fieldsets[f.current].AddField(el)
}

func (f *Form) AddFields(els ...element.Element) {
	for _, el := range els {
		f.AddField(el)
	}
}

// AddFieldFromConfig creates a field through the form's factory and adds it.
func (f *Form) AddFieldFromConfig(name string, raw map[string]any) error {
	el, err := f.factory.CreateFromMap(name, raw)
	if err != nil {
		return fmt.Errorf("form: add field %q: %w", name, err)
	}
	f.AddField(el)
	return nil
}

func (f *Form) InsertFieldBefore(name string, el element.Element) error {
	for _, fs := range f.fieldsets {
		if fs.InsertFieldBefore(name, el) {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrFieldNotFound, name)
}

func (f *Form) InsertFieldAfter(name string, el element.Element) error {
	for _, fs := range f.fieldsets {
		if fs.InsertFieldAfter(name, el) {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrFieldNotFound, name)
}

// RemoveField drops the named field from whichever fieldset holds it.
func (f *Form) RemoveField(name string) bool {
	removed := false
	for _, fs := range f.fieldsets {
		if fs.RemoveField(name) {
			removed = true
		}
	}
	return removed
}

// Fields returns every field in document order.
func (f *Form) Fields() []element.Element {
	var out []element.Element
	for _, fs := range f.fieldsets {
		out = append(out, fs.Fields()...)
	}
	return out
}

// Names returns the field names in document order.
func (f *Form) Names() []string {
	all := f.Fields()
	out := make([]string, len(all))
	for i, el := range all {
		out[i] = el.Name()
	}
	return out
}

// Field returns the named field or nil.
func (f *Form) Field(name string) element.Element {
	for _, fs := range f.fieldsets {
		if el := fs.Field(name); el != nil {
			return el
		}
	}
	return nil
}

func (f *Form) Count() int {
	n := 0
	for _, fs := range f.fieldsets {
		n += fs.Count()
	}
	return n
}

// Render prepares the form and writes its markup.
func (f *Form) Render(w io.Writer) error {
	if err := f.Prepare(); err != nil {
		return err
	}
	return f.node.Render(w, 0)
}

// Prepare rebuilds the form markup from its fieldsets, honouring columns.
// Forms holding file fields switch to multipart encoding.
func (f *Form) Prepare() error {
	if f.node.AttributeValue("id") == "" {
		f.node.SetAttribute("id", DefaultPrefix)
	}
	if f.node.AttributeValue("class") == "" {
		f.node.SetAttribute("class", f.Prefix())
	}
	prefix := f.Prefix()
	f.node.RemoveChildren()

	if len(f.columns) == 0 {
		for _, fs := range f.fieldsets {
			if err := fs.Prepare(prefix); err != nil {
				return err
			}
			f.node.AddChild(fs.Node())
		}
	} else {
		for _, col := range f.columns {
			column := dom.New("div").SetAttribute("class", col.Class)
			for _, idx := range col.Fieldsets {
				if idx < 0 || idx >= len(f.fieldsets) {
					continue
				}
				fs := f.fieldsets[idx]
				if err := fs.Prepare(prefix); err != nil {
					return err
				}
				column.AddChild(fs.Node())
			}
			f.node.AddChild(column)
		}
	}

	for _, el := range f.Fields() {
		if el.Type() == "file" {
			f.node.SetAttribute("enctype", "multipart/form-data")
			break
		}
	}
	return nil
}

// AddCSRF appends a hidden token field bound to token and returns it.
func (f *Form) AddCSRF(name, token string) *element.Token {
	if name == "" {
		name = "csrf_token"
	}
	tok := element.NewToken(name, token)
	f.AddField(tok)
	return tok
}

// Validate runs every field's validators and reports whether all passed.
// No field short-circuits another; each keeps its own errors.
func (f *Form) Validate(ctx *submission.Context) bool {
	start := time.Now()
	valid := true
	var failed []string
	for _, el := range f.Fields() {
		if !el.Validate(ctx) {
			valid = false
			failed = append(failed, stripMarker(el.Name()))
		}
	}
	elapsed := time.Since(start)
	f.logger.Debug("form validated",
		"form", f.Prefix(),
		"valid", valid,
		"failed", failed,
		"elapsed", elapsed,
	)
	if f.observer != nil {
		f.observer.Validated(f.Prefix(), valid, failed, elapsed)
	}
	return valid
}

// IsValid validates without an upload or token context.
func (f *Form) IsValid() bool {
	return f.Validate(nil)
}

// Errors returns the named field's errors.
func (f *Form) Errors(name string) []string {
	if el := f.Field(name); el != nil {
		return el.Errors()
	}
	return nil
}

// AllErrors maps field names (multi-value marker stripped) to their errors,
// including only failing fields.
func (f *Form) AllErrors() map[string][]string {
	out := map[string][]string{}
	for _, el := range f.Fields() {
		if el.HasErrors() {
			out[stripMarker(el.Name())] = el.Errors()
		}
	}
	return out
}

func stripMarker(name string) string {
	return strings.ReplaceAll(name, element.MultiMarker, "")
}

// Reset empties every value-bound field.
func (f *Form) Reset() {
	for _, el := range f.Fields() {
		if !el.IsButton() {
			el.ResetValue()
		}
	}
}
