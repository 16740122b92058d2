// Package openapi turns OpenAPI request body schemas into form field
// definitions, so a form can be generated for an operation and bound back to
// the same payload shape.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formtree/pkg/form"
)

var (
	// ErrOperationNotFound is returned for an unknown operation id.
	ErrOperationNotFound = errors.New("openapi: operation not found")
	// ErrNoRequestBody is returned when an operation has no usable body schema.
	ErrNoRequestBody = errors.New("openapi: operation has no request body schema")
)

// mediaTypes lists the body encodings tried first, in order.
var mediaTypes = []string{"application/x-www-form-urlencoded", "multipart/form-data", "application/json"}

var methods = []string{"GET", "PUT", "POST", "DELETE", "PATCH", "HEAD", "OPTIONS", "TRACE"}

// Option configures document loading.
type Option func(*options)

type options struct {
	validate bool
}

// WithValidation validates the document after loading.
func WithValidation(enabled bool) Option {
	return func(o *options) { o.validate = enabled }
}

// Operation identifies one path operation.
type Operation struct {
	ID      string
	Method  string
	Path    string
	Summary string
	HasBody bool
	op      *openapi3.Operation
}

// Result is the field list generated for an operation.
type Result struct {
	Operation Operation
	MediaType string
	Fields    []form.FieldDefinition
}

// Importer holds a loaded document.
type Importer struct {
	doc        *openapi3.T
	operations []Operation
}

// LoadFile reads a document from fsys.
func LoadFile(ctx context.Context, fsys fs.FS, name string, opts ...Option) (*Importer, error) {
	if fsys == nil {
		return nil, errors.New("openapi: filesystem is not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("openapi: read %s: %w", name, err)
	}
	return Load(ctx, data, opts...)
}

// Load parses a JSON or YAML document.
func Load(ctx context.Context, data []byte, opts ...Option) (*Importer, error) {
	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if len(data) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if cfg.validate {
		if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate: %w", err)
		}
	}

	im := &Importer{doc: doc}
	if doc.Paths != nil {
		for _, path := range doc.Paths.InMatchingOrder() {
			item := doc.Paths.Value(path)
			if item == nil {
				continue
			}
			for _, method := range methods {
				op := item.GetOperation(method)
				if op == nil {
					continue
				}
				id := op.OperationID
				if id == "" {
					id = strings.ToLower(method) + ":" + path
				}
				im.operations = append(im.operations, Operation{
					ID:      id,
					Method:  method,
					Path:    path,
					Summary: op.Summary,
					HasBody: op.RequestBody != nil && op.RequestBody.Value != nil,
					op:      op,
				})
			}
		}
	}
	slices.SortStableFunc(im.operations, func(a, b Operation) int {
		return strings.Compare(a.ID, b.ID)
	})
	return im, nil
}

// Title returns the document title.
func (im *Importer) Title() string {
	if im.doc.Info == nil {
		return ""
	}
	return im.doc.Info.Title
}

// Operations lists every operation sorted by id.
func (im *Importer) Operations() []Operation {
	return slices.Clone(im.operations)
}

// Fields builds the field definitions for the operation's request body.
func (im *Importer) Fields(operationID string) (Result, error) {
	idx := slices.IndexFunc(im.operations, func(op Operation) bool { return op.ID == operationID })
	if idx < 0 {
		return Result{}, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}
	op := im.operations[idx]
	if !op.HasBody {
		return Result{}, fmt.Errorf("%w: %q", ErrNoRequestBody, operationID)
	}

	mediaType, schema := requestSchema(op.op.RequestBody.Value.Content)
	if schema == nil || schema.Value == nil {
		return Result{}, fmt.Errorf("%w: %q", ErrNoRequestBody, operationID)
	}
	return Result{
		Operation: op,
		MediaType: mediaType,
		Fields:    objectFields(schema.Value),
	}, nil
}

// Build generates a form for the operation: action and method come from the
// operation, fields from its body schema.
func (im *Importer) Build(operationID string, opts ...form.Option) (*form.Form, error) {
	res, err := im.Fields(operationID)
	if err != nil {
		return nil, err
	}
	base := []form.Option{
		form.WithAction(res.Operation.Path),
		form.WithMethod(res.Operation.Method),
		form.WithID(formID(res.Operation.ID)),
	}
	f, err := form.FromConfig(res.Fields, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("openapi: build %q: %w", operationID, err)
	}
	if res.Operation.Summary != "" {
		f.SetLegend(res.Operation.Summary)
	}
	return f, nil
}

func requestSchema(content openapi3.Content) (string, *openapi3.SchemaRef) {
	for _, mediaType := range mediaTypes {
		if mt, ok := content[mediaType]; ok && mt != nil {
			return mediaType, mt.Schema
		}
	}
	keys := make([]string, 0, len(content))
	for key := range content {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		if mt := content[key]; mt != nil && mt.Schema != nil {
			return key, mt.Schema
		}
	}
	return "", nil
}

func formID(operationID string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(operationID) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
