package fields

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formtree/internal/logging"
	"github.com/goliatone/go-formtree/pkg/element"
	"github.com/goliatone/go-formtree/pkg/validator"
	"github.com/spf13/cast"
)

// DefaultUploadLimit is the upload ceiling used when neither the record nor
// the factory sets one.
const DefaultUploadLimit int64 = 2 << 20

// Constructor builds a control for a registered type.
type Constructor func(name string, cfg Config) (element.Element, error)

// Option customises a Factory.
type Option func(*Factory)

// WithLogger sets the logger used for construction diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Factory) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithTermSource sets the taxonomy lookup used by composite controls.
func WithTermSource(source element.TermSource) Option {
	return func(f *Factory) {
		f.terms = source
	}
}

// WithUploadLimit sets the host upload ceiling applied to file fields that
// do not declare max_size.
func WithUploadLimit(bytes int64) Option {
	return func(f *Factory) {
		if bytes > 0 {
			f.uploadLimit = bytes
		}
	}
}

// WithAllowedMimeTypes sets the media types file fields accept when the
// record does not list its own. Empty means any type.
func WithAllowedMimeTypes(types ...string) Option {
	return func(f *Factory) {
		f.mimeTypes = append([]string(nil), types...)
	}
}

// WithRenderer attaches a render callback to every template-backed control.
func WithRenderer(fn element.RenderFunc) Option {
	return func(f *Factory) {
		f.renderer = fn
	}
}

// Factory creates controls from field records. It is safe for concurrent
// use once configured.
type Factory struct {
	mu          sync.RWMutex
	registry    map[string]Constructor
	logger      *slog.Logger
	terms       element.TermSource
	uploadLimit int64
	mimeTypes   []string
	renderer    element.RenderFunc
}

// New constructs a factory with the standard registered types.
func New(opts ...Option) *Factory {
	f := &Factory{
		registry:    make(map[string]Constructor),
		logger:      logging.NewNop(),
		uploadLimit: DefaultUploadLimit,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	f.registerDefaults()
	return f
}

// Register adds or replaces the constructor for a type. Built-in types take
// precedence and cannot be overridden.
func (f *Factory) Register(typ string, ctor Constructor) error {
	key := normalizeType(typ)
	if key == "" {
		return fmt.Errorf("fields: register: type is required")
	}
	if ctor == nil {
		return fmt.Errorf("fields: register %q: constructor is nil", typ)
	}
	if _, builtin := builtinTypes[key]; builtin {
		return fmt.Errorf("fields: register %q: shadows a built-in type", typ)
	}
	f.mu.Lock()
	f.registry[key] = ctor
	f.mu.Unlock()
	return nil
}

// Types lists every type the factory can create, sorted.
func (f *Factory) Types() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]string, 0, len(builtinTypes)+len(f.registry))
	for typ := range builtinTypes {
		out = append(out, typ)
	}
	for typ := range f.registry {
		out = append(out, typ)
	}
	sort.Strings(out)
	return out
}

// CreateFromMap decodes a loosely typed record and creates the control.
func (f *Factory) CreateFromMap(name string, raw map[string]any) (element.Element, error) {
	if _, ok := raw["type"]; !ok {
		return nil, &ConfigurationError{Field: name, Err: ErrMissingType}
	}
	cfg, err := DecodeConfig(raw)
	if err != nil {
		return nil, &ConfigurationError{Field: name, Type: cast.ToString(raw["type"]), Err: err}
	}
	return f.Create(name, cfg)
}

// Create builds the control described by cfg.
func (f *Factory) Create(name string, cfg Config) (element.Element, error) {
	typ := normalizeType(cfg.Type)
	if typ == "" {
		return nil, &ConfigurationError{Field: name, Err: ErrMissingType}
	}

	el, err := f.construct(name, typ, cfg)
	if err != nil {
		return nil, err
	}
	if err := f.apply(el, cfg); err != nil {
		return nil, &ConfigurationError{Field: name, Type: cfg.Type, Err: err}
	}
	f.logger.Debug("field created",
		"field", name,
		"type", el.Type(),
		"kind", el.Kind().String(),
		"validators", len(el.Validators()),
	)
	return el, nil
}

func (f *Factory) construct(name, typ string, cfg Config) (element.Element, error) {
	if build, ok := builtinTypes[typ]; ok {
		el, err := build(f, name, typ, cfg)
		if err != nil {
			return nil, &ConfigurationError{Field: name, Type: cfg.Type, Err: err}
		}
		return el, nil
	}

	f.mu.RLock()
	ctor, ok := f.registry[typ]
	f.mu.RUnlock()
	if !ok {
		f.logger.Warn("unknown field type", "field", name, "type", cfg.Type)
		return nil, &ConfigurationError{Field: name, Type: cfg.Type, Err: ErrUnknownType}
	}
	el, err := ctor(name, cfg)
	if err != nil {
		return nil, &ConfigurationError{Field: name, Type: cfg.Type, Err: err}
	}
	if el == nil {
		return nil, &ConfigurationError{Field: name, Type: cfg.Type, Err: fmt.Errorf("constructor returned nil")}
	}
	return el, nil
}

// apply wires the cross-cutting record keys onto a constructed control.
func (f *Factory) apply(el element.Element, cfg Config) error {
	if cfg.Label != "" {
		el.SetLabel(cfg.Label)
	}
	for _, attr := range attrs(cfg.LabelAttributes) {
		el.SetLabelAttribute(attr.Name, attr.Value)
	}
	if cfg.Hint != "" {
		el.SetHint(cfg.Hint)
	}
	for _, attr := range attrs(cfg.HintAttributes) {
		el.SetHintAttribute(attr.Name, attr.Value)
	}
	if cfg.Required {
		el.SetRequired(true)
	}
	if cfg.Disabled {
		el.SetDisabled(true)
	}
	if cfg.Value != nil && !el.IsButton() {
		el.SetValue(cfg.Value)
	}
	// readonly after the value so selects mark the final selection
	if cfg.Readonly {
		el.SetReadonly(true)
	}
	el.SetErrorBeforeControl(strings.EqualFold(cfg.Error, "pre"))
	if cfg.Placeholder != "" {
		el.Node().SetAttribute("placeholder", cfg.Placeholder)
	}
	if cfg.Taxonomy != "" {
		el.SetTaxonomy(cfg.Taxonomy)
	}
	if cfg.Indent != "" {
		el.Node().SetIndent(cfg.Indent)
	}
	if fc, ok := el.(element.FileConstraints); ok {
		if cfg.MaxSize > 0 {
			fc.SetMaxSize(cfg.MaxSize)
		}
		if len(cfg.AllowedMimeTypes) > 0 {
			fc.SetMimeTypes(cfg.AllowedMimeTypes)
		}
	}
	if cfg.Multiple {
		el.SetMultiple(true)
	}
	if list := attrs(cfg.Attributes); len(list) > 0 {
		if set, ok := el.(element.ControlAttributes); ok {
			set.SetControlAttributes(list...)
		} else {
			el.Node().SetAttributes(list...)
		}
	}
	if cfg.Legend != "" {
		if legend, ok := el.(element.Legend); ok {
			legend.SetLegend(cfg.Legend)
		}
	}
	if tpl, ok := el.(element.Templated); ok && f.renderer != nil {
		tpl.SetRenderer(f.renderer)
	}

	rules, err := validator.Rules(cfg.Validators)
	if err != nil {
		return err
	}
	el.AddValidator(rules...)
	f.addTypeValidators(el)
	return nil
}

// addTypeValidators appends the checks certain control types always carry.
// File fields get a size ceiling and a media type check on top of whatever
// the record configured.
func (f *Factory) addTypeValidators(el element.Element) {
	switch el.Type() {
	case "file":
		maxSize := f.uploadLimit
		var mimeTypes []string
		if fc, ok := el.(element.FileConstraints); ok {
			if fc.MaxSize() > 0 {
				maxSize = fc.MaxSize()
			}
			mimeTypes = fc.MimeTypes()
		}
		if len(mimeTypes) == 0 {
			mimeTypes = f.mimeTypes
		}
		el.AddValidator(
			validator.FromValidator(validator.MaxSize(maxSize)),
			validator.FromValidator(validator.MimeType(mimeTypes...)),
		)
	case "email":
		el.AddValidator(validator.FromValidator(validator.Email()))
	case "url":
		el.AddValidator(validator.FromValidator(validator.URL()))
	}
}

func normalizeType(typ string) string {
	return strings.ToLower(strings.TrimSpace(typ))
}
