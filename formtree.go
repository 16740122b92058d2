// Package formtree is the quick-start entry point: it wires the field
// factory with the embedded widget templates and builds forms from
// definition files or OpenAPI operations.
package formtree

import (
	"bytes"
	"context"
	"io/fs"
	"log/slog"

	"github.com/goliatone/go-formtree/internal/logging"
	"github.com/goliatone/go-formtree/internal/openapi"
	"github.com/goliatone/go-formtree/pkg/config"
	"github.com/goliatone/go-formtree/pkg/element"
	"github.com/goliatone/go-formtree/pkg/fields"
	"github.com/goliatone/go-formtree/pkg/form"
	"github.com/goliatone/go-formtree/pkg/render/template"
	"github.com/goliatone/go-formtree/pkg/render/template/pongo"
)

// Option configures the helpers in this package.
type Option func(*settings)

type settings struct {
	templates fs.FS
	baseDir   string
	terms     element.TermSource
	logger    *slog.Logger
	filters   bool
	formOpts  []form.Option
}

// WithTemplates overrides widget templates from an fs.FS.
func WithTemplates(files fs.FS) Option {
	return func(s *settings) { s.templates = files }
}

// WithTemplateDir overrides widget templates from a directory.
func WithTemplateDir(dir string) Option {
	return func(s *settings) { s.baseDir = dir }
}

// WithTermSource resolves taxonomy-backed choices.
func WithTermSource(source element.TermSource) Option {
	return func(s *settings) { s.terms = source }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithoutFilters skips the default sanitising chain.
func WithoutFilters() Option {
	return func(s *settings) { s.filters = false }
}

// WithFormOptions appends options applied to every built form.
func WithFormOptions(opts ...form.Option) Option {
	return func(s *settings) { s.formOpts = append(s.formOpts, opts...) }
}

func resolve(opts []Option) *settings {
	s := &settings{logger: logging.NewNop(), filters: true}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// EmbeddedTemplates exposes the built-in widget templates so callers can
// copy or extend them.
func EmbeddedTemplates() fs.FS {
	return template.Widgets()
}

// NewFactory builds a field factory whose widget controls render through
// the pongo2 engine.
func NewFactory(opts ...Option) (*fields.Factory, error) {
	return resolve(opts).factory()
}

func (s *settings) factory() (*fields.Factory, error) {
	var engineOpts []pongo.Option
	if s.baseDir != "" {
		engineOpts = append(engineOpts, pongo.WithBaseDir(s.baseDir))
	}
	if s.templates != nil {
		engineOpts = append(engineOpts, pongo.WithFS(s.templates))
	}
	engine, err := pongo.New(engineOpts...)
	if err != nil {
		return nil, err
	}
	factoryOpts := []fields.Option{
		fields.WithLogger(s.logger),
		fields.WithRenderer(template.RenderFunc(engine)),
	}
	if s.terms != nil {
		factoryOpts = append(factoryOpts, fields.WithTermSource(s.terms))
	}
	return fields.New(factoryOpts...), nil
}

func (s *settings) formOptions() ([]form.Option, error) {
	factory, err := s.factory()
	if err != nil {
		return nil, err
	}
	out := []form.Option{form.WithLogger(s.logger), form.WithFactory(factory)}
	if s.filters {
		out = append(out, form.WithDefaultFilters())
	}
	return append(out, s.formOpts...), nil
}

// FormOptions returns the form options the helpers use, for callers that
// build forms themselves.
func FormOptions(opts ...Option) ([]form.Option, error) {
	return resolve(opts).formOptions()
}

// LoadForm builds the form described by a YAML or JSON definition file.
func LoadForm(fsys fs.FS, name string, opts ...Option) (*form.Form, error) {
	doc, err := config.Load(fsys, name)
	if err != nil {
		return nil, err
	}
	formOpts, err := FormOptions(opts...)
	if err != nil {
		return nil, err
	}
	return doc.Build(formOpts...)
}

// FromOpenAPI builds the form for an operation's request body.
func FromOpenAPI(ctx context.Context, fsys fs.FS, name, operationID string, opts ...Option) (*form.Form, error) {
	im, err := openapi.LoadFile(ctx, fsys, name)
	if err != nil {
		return nil, err
	}
	formOpts, err := FormOptions(opts...)
	if err != nil {
		return nil, err
	}
	return im.Build(operationID, formOpts...)
}

// RenderHTML renders the form markup.
func RenderHTML(f *form.Form) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
