package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/goccy/go-json"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formtree/pkg/form"
)

// Format selects the document syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

var (
	// ErrUnsupportedFormat is returned for unknown formats or file extensions.
	ErrUnsupportedFormat = errors.New("config: unsupported format")
	// ErrInvalidDocument is returned when the document shape is wrong.
	ErrInvalidDocument = errors.New("config: invalid document")
)

// Header holds the form element attributes.
type Header struct {
	ID     string `mapstructure:"id" json:"id,omitempty" yaml:"id,omitempty"`
	Action string `mapstructure:"action" json:"action,omitempty" yaml:"action,omitempty"`
	Method string `mapstructure:"method" json:"method,omitempty" yaml:"method,omitempty"`
	Class  string `mapstructure:"class" json:"class,omitempty" yaml:"class,omitempty"`
}

// Column groups 1-based fieldset numbers under a class.
type Column struct {
	Class     string `mapstructure:"class" json:"class,omitempty" yaml:"class,omitempty"`
	Fieldsets []int  `mapstructure:"fieldsets" json:"fieldsets" yaml:"fieldsets"`
}

// Document is a parsed form definition.
type Document struct {
	Form     Header
	Columns  []Column
	Sections []form.Section
}

// FormatFor maps a file extension to a format.
func FormatFor(name string) (Format, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// Load reads and parses a document, picking the format from the extension.
func Load(fsys fs.FS, name string) (*Document, error) {
	format, err := FormatFor(name)
	if err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", name, err)
	}
	doc, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", name, err)
	}
	return doc, nil
}

// Parse decodes a document in the given format.
func Parse(data []byte, format Format) (*Document, error) {
	var (
		tree map[string]any
		err  error
	)
	switch format {
	case FormatYAML:
		tree, err = decodeYAML(data)
	case FormatJSON:
		err = json.Unmarshal(data, &tree)
		if err != nil {
			err = fmt.Errorf("config: decode json: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}
	if tree == nil {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidDocument)
	}
	return fromTree(tree)
}

func fromTree(tree map[string]any) (*Document, error) {
	doc := &Document{}
	if raw, ok := tree["form"]; ok {
		if err := decode(raw, &doc.Form); err != nil {
			return nil, fmt.Errorf("%w: form: %v", ErrInvalidDocument, err)
		}
	}
	if raw, ok := tree["columns"]; ok {
		if err := decode(raw, &doc.Columns); err != nil {
			return nil, fmt.Errorf("%w: columns: %v", ErrInvalidDocument, err)
		}
	}

	fieldsets, hasSets := tree["fieldsets"]
	fields, hasFields := tree["fields"]
	switch {
	case hasSets && hasFields:
		return nil, fmt.Errorf("%w: fields and fieldsets are exclusive", ErrInvalidDocument)
	case hasFields:
		defs, err := definitions(fields)
		if err != nil {
			return nil, err
		}
		doc.Sections = []form.Section{{Fields: defs}}
	case hasSets:
		list, ok := fieldsets.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: fieldsets must be a list", ErrInvalidDocument)
		}
		for i, item := range list {
			section, err := sectionFrom(item)
			if err != nil {
				return nil, fmt.Errorf("fieldset %d: %w", i+1, err)
			}
			doc.Sections = append(doc.Sections, section)
		}
	}
	return doc, nil
}

func sectionFrom(item any) (form.Section, error) {
	m, ok := item.(map[string]any)
	if !ok {
		return form.Section{}, fmt.Errorf("%w: fieldset must be a mapping", ErrInvalidDocument)
	}
	var section form.Section
	if err := decode(map[string]any{"legend": m["legend"], "container": m["container"]}, &section); err != nil {
		return form.Section{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	defs, err := definitions(m["fields"])
	if err != nil {
		return form.Section{}, err
	}
	section.Fields = defs
	return section, nil
}

func definitions(raw any) ([]form.FieldDefinition, error) {
	if raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: fields must be a list", ErrInvalidDocument)
	}
	out := make([]form.FieldDefinition, 0, len(list))
	for i, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: field %d must be a mapping", ErrInvalidDocument, i+1)
		}
		if group, ok := m["group"]; ok {
			members, err := definitions(group)
			if err != nil {
				return nil, fmt.Errorf("group %d: %w", i+1, err)
			}
			out = append(out, form.FieldDefinition{Name: stringOf(m["name"]), Group: members})
			continue
		}
		name := stringOf(m["name"])
		if name == "" {
			return nil, fmt.Errorf("%w: field %d has no name", ErrInvalidDocument, i+1)
		}
		cfg := make(map[string]any, len(m))
		for k, v := range m {
			if k != "name" {
				cfg[k] = v
			}
		}
		out = append(out, form.FieldDefinition{Name: name, Config: cfg})
	}
	return out, nil
}

func stringOf(v any) string {
	s, _ := v.(string)
	return s
}

func decode(input, target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

// Build constructs the form. Extra options apply after the header ones.
func (d *Document) Build(opts ...form.Option) (*form.Form, error) {
	var base []form.Option
	if d.Form.ID != "" {
		base = append(base, form.WithID(d.Form.ID))
	}
	if d.Form.Action != "" {
		base = append(base, form.WithAction(d.Form.Action))
	}
	if d.Form.Method != "" {
		base = append(base, form.WithMethod(d.Form.Method))
	}
	if d.Form.Class != "" {
		base = append(base, form.WithClass(d.Form.Class))
	}
	f, err := form.FromSections(d.Sections, append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	for _, col := range d.Columns {
		f.AddColumn(col.Class, col.Fieldsets...)
	}
	return f, nil
}

// decodeYAML decodes through yaml.Node so that mappings under "values"
// become ordered choice lists.
func decodeYAML(data []byte) (map[string]any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if root.Kind == 0 {
		return nil, nil
	}
	node := &root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must be a mapping", ErrInvalidDocument)
	}
	tree, err := nodeValue(node, "")
	if err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	return tree.(map[string]any), nil
}

func nodeValue(node *yaml.Node, key string) (any, error) {
	switch node.Kind {
	case yaml.AliasNode:
		return nodeValue(node.Alias, key)
	case yaml.SequenceNode:
		out := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			v, err := nodeValue(child, "")
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.MappingNode:
		if key == "values" {
			return orderedChoices(node)
		}
		out := make(map[string]any, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			k := node.Content[i].Value
			v, err := nodeValue(node.Content[i+1], k)
			if err != nil {
				return nil, err
			}
			out[k] = v
		}
		return out, nil
	default:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
}

// orderedChoices turns value: label pairs into choice records. A nested
// mapping becomes an option group.
func orderedChoices(node *yaml.Node) ([]any, error) {
	out := make([]any, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		if valNode.Kind == yaml.MappingNode {
			options, err := orderedChoices(valNode)
			if err != nil {
				return nil, err
			}
			out = append(out, map[string]any{"label": keyNode.Value, "options": options})
			continue
		}
		var key, label any
		if err := keyNode.Decode(&key); err != nil {
			return nil, err
		}
		if err := valNode.Decode(&label); err != nil {
			return nil, err
		}
		out = append(out, map[string]any{"value": key, "label": label})
	}
	return out, nil
}
