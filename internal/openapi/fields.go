package openapi

import (
	"slices"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/spf13/cast"

	"github.com/goliatone/go-formtree/pkg/form"
)

// Vendor extensions read from property schemas.
const (
	extType   = "x-formtree-type"
	extOrder  = "x-formtree-order"
	extLabel  = "x-formtree-label"
	extHidden = "x-formtree-hidden"
)

// longText is the maxLength above which strings become textareas.
const longText = 255

type property struct {
	name   string
	schema *openapi3.Schema
	order  int
}

// objectFields maps the object's properties to field definitions. Properties
// are ordered by x-formtree-order, then name. Nested objects, read-only
// properties, and unsupported arrays are skipped.
func objectFields(obj *openapi3.Schema) []form.FieldDefinition {
	var props []property
	for name, ref := range obj.Properties {
		if ref == nil || ref.Value == nil {
			continue
		}
		order := 1 << 20
		if raw, ok := ref.Value.Extensions[extOrder]; ok {
			order = cast.ToInt(raw)
		}
		props = append(props, property{name: name, schema: ref.Value, order: order})
	}
	slices.SortFunc(props, func(a, b property) int {
		if a.order != b.order {
			return a.order - b.order
		}
		return strings.Compare(a.name, b.name)
	})

	out := make([]form.FieldDefinition, 0, len(props))
	for _, p := range props {
		cfg, ok := fieldConfig(p.name, p.schema, slices.Contains(obj.Required, p.name))
		if !ok {
			continue
		}
		out = append(out, form.FieldDefinition{Name: p.name, Config: cfg})
	}
	return out
}

func fieldConfig(name string, s *openapi3.Schema, required bool) (map[string]any, bool) {
	if s.ReadOnly || cast.ToBool(s.Extensions[extHidden]) {
		return nil, false
	}
	typ, multiple, ok := fieldType(s)
	if !ok {
		return nil, false
	}

	cfg := map[string]any{
		"type":  typ,
		"label": label(name, s),
	}
	if s.Description != "" {
		cfg["hint"] = s.Description
	}
	if required {
		cfg["required"] = true
	}
	if multiple {
		cfg["multiple"] = true
	}
	if s.Default != nil {
		switch typ {
		case "checkbox":
			cfg["checked"] = cast.ToBool(s.Default)
		case "radio", "multicheckbox":
			cfg["checked"] = s.Default
		case "select", "multiselect":
			cfg["selected"] = s.Default
		default:
			cfg["value"] = s.Default
		}
	}
	if enum := enumValues(s); len(enum) > 0 {
		cfg["values"] = enum
	}
	if s.Min != nil {
		cfg["min"] = *s.Min
	}
	if s.Max != nil {
		cfg["max"] = *s.Max
	}
	if placeholder := cast.ToString(s.Example); placeholder != "" && typ != "checkbox" {
		cfg["placeholder"] = placeholder
	}
	if rules := validators(s, typ); len(rules) > 0 {
		cfg["validators"] = rules
	}
	return cfg, true
}

// fieldType picks the control type. The x-formtree-type extension wins.
func fieldType(s *openapi3.Schema) (string, bool, bool) {
	if typ := cast.ToString(s.Extensions[extType]); typ != "" {
		return typ, false, true
	}
	switch schemaType(s) {
	case openapi3.TypeString:
		if len(s.Enum) > 0 {
			return "select", false, true
		}
		switch s.Format {
		case "email":
			return "email", false, true
		case "uri", "url":
			return "url", false, true
		case "date":
			return "date", false, true
		case "date-time":
			return "datetime-local", false, true
		case "time":
			return "time", false, true
		case "password":
			return "password", false, true
		case "binary":
			return "file", false, true
		}
		if s.MaxLength != nil && *s.MaxLength > longText {
			return "textarea", false, true
		}
		return "text", false, true
	case openapi3.TypeInteger, openapi3.TypeNumber:
		if len(s.Enum) > 0 {
			return "select", false, true
		}
		return "number", false, true
	case openapi3.TypeBoolean:
		return "checkbox", false, true
	case openapi3.TypeArray:
		if s.Items == nil || s.Items.Value == nil {
			return "", false, false
		}
		items := s.Items.Value
		switch {
		case len(items.Enum) > 0:
			return "multicheckbox", false, true
		case schemaType(items) == openapi3.TypeString && items.Format == "binary":
			return "file", true, true
		}
	}
	return "", false, false
}

func schemaType(s *openapi3.Schema) string {
	if s.Type == nil {
		return ""
	}
	for _, typ := range s.Type.Slice() {
		if typ != "null" {
			return typ
		}
	}
	return ""
}

func enumValues(s *openapi3.Schema) []any {
	enum := s.Enum
	if schemaType(s) == openapi3.TypeArray && s.Items != nil && s.Items.Value != nil {
		enum = s.Items.Value.Enum
	}
	if len(enum) == 0 {
		return nil
	}
	out := make([]any, 0, len(enum))
	for _, v := range enum {
		if v != nil {
			out = append(out, v)
		}
	}
	return out
}

func validators(s *openapi3.Schema, typ string) []any {
	var rules []any
	if typ == "text" || typ == "textarea" || typ == "password" {
		if s.MinLength > 0 || s.MaxLength != nil {
			rule := map[string]any{"name": "length", "min": s.MinLength}
			if s.MaxLength != nil {
				rule["max"] = *s.MaxLength
			}
			rules = append(rules, rule)
		}
		if s.Pattern != "" {
			rules = append(rules, map[string]any{"name": "regex", "pattern": s.Pattern})
		}
	}
	if typ == "number" {
		if s.Min != nil && s.ExclusiveMin {
			rules = append(rules, map[string]any{"name": "greater_than", "value": *s.Min})
		} else if s.Min != nil {
			rules = append(rules, map[string]any{"name": "greater_than_equal", "value": *s.Min})
		}
		if s.Max != nil && s.ExclusiveMax {
			rules = append(rules, map[string]any{"name": "less_than", "value": *s.Max})
		} else if s.Max != nil {
			rules = append(rules, map[string]any{"name": "less_than_equal", "value": *s.Max})
		}
	}
	if typ == "file" && s.MaxLength != nil {
		rules = append(rules, map[string]any{"name": "max_size", "value": *s.MaxLength})
	}
	return rules
}

// label prefers the extension, then the title, then the humanised name.
func label(name string, s *openapi3.Schema) string {
	if l := cast.ToString(s.Extensions[extLabel]); l != "" {
		return l
	}
	if s.Title != "" {
		return s.Title
	}
	words := strings.FieldsFunc(name, func(r rune) bool { return r == '_' || r == '-' || r == '.' })
	if len(words) == 0 {
		return name
	}
	text := strings.ToLower(strings.Join(words, " "))
	return strings.ToUpper(text[:1]) + text[1:]
}
