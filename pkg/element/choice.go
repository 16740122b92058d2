package element

import (
	"fmt"
	"sort"

	"github.com/goliatone/go-formtree/pkg/dom"
	"github.com/goliatone/go-formtree/pkg/value"
	"github.com/spf13/cast"
)

// Choice is one selectable entry of a composite control. Group places select
// options inside an optgroup of that label.
type Choice struct {
	Value any    `json:"value" yaml:"value" mapstructure:"value"`
	Label string `json:"label" yaml:"label" mapstructure:"label"`
	Group string `json:"group,omitempty" yaml:"group,omitempty" mapstructure:"group"`
}

// TermSource supplies choices for a taxonomy identifier.
type TermSource interface {
	Terms(taxonomy string) ([]Choice, error)
}

// ResolveChoices returns the taxonomy terms when a taxonomy is named and a
// source is available, otherwise the static choices.
func ResolveChoices(source TermSource, taxonomy string, static []Choice) ([]Choice, error) {
	if taxonomy == "" || source == nil {
		return static, nil
	}
	terms, err := source.Terms(taxonomy)
	if err != nil {
		return nil, fmt.Errorf("element: terms for %q: %w", taxonomy, err)
	}
	return terms, nil
}

// ParseChoices normalises the loose shapes accepted for `values`:
//   - []Choice
//   - a list of {value, label[, group]} maps, {label, options} groups, or scalars
//   - a map of value to label, where a nested map becomes an optgroup
//
// Plain maps have no order, so their keys are sorted. Loaders that need
// declaration order produce lists.
func ParseChoices(raw any) ([]Choice, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []Choice:
		return append([]Choice(nil), v...), nil
	case []string:
		out := make([]Choice, len(v))
		for i, s := range v {
			out[i] = Choice{Value: s, Label: s}
		}
		return out, nil
	case map[string]string:
		keys := sortedKeys(v)
		out := make([]Choice, 0, len(keys))
		for _, k := range keys {
			out = append(out, Choice{Value: k, Label: v[k]})
		}
		return out, nil
	case map[string]any:
		return choicesFromMap(v, "")
	case []any:
		var out []Choice
		for idx, item := range v {
			parsed, err := choiceItem(item)
			if err != nil {
				return nil, fmt.Errorf("element: choice %d: %w", idx, err)
			}
			out = append(out, parsed...)
		}
		return out, nil
	default:
		if value.IsCollection(raw) {
			return ParseChoices(value.List(raw))
		}
		return nil, fmt.Errorf("element: unsupported choices %T", raw)
	}
}

func choiceItem(item any) ([]Choice, error) {
	switch t := item.(type) {
	case Choice:
		return []Choice{t}, nil
	case map[string]any:
		if opts, ok := t["options"]; ok {
			group := cast.ToString(t["label"])
			nested, err := ParseChoices(opts)
			if err != nil {
				return nil, err
			}
			for i := range nested {
				nested[i].Group = group
			}
			return nested, nil
		}
		val, ok := t["value"]
		if !ok {
			return nil, fmt.Errorf("missing value")
		}
		label := cast.ToString(t["label"])
		if label == "" {
			label = value.String(val)
		}
		return []Choice{{Value: val, Label: label, Group: cast.ToString(t["group"])}}, nil
	default:
		if value.IsCollection(item) {
			return nil, fmt.Errorf("unsupported nested list")
		}
		return []Choice{{Value: item, Label: value.String(item)}}, nil
	}
}

func choicesFromMap(m map[string]any, group string) ([]Choice, error) {
	var out []Choice
	for _, k := range sortedKeys(m) {
		switch nested := m[k].(type) {
		case map[string]any:
			if group != "" {
				return nil, fmt.Errorf("element: optgroup %q nested too deep", k)
			}
			items, err := choicesFromMap(nested, k)
			if err != nil {
				return nil, err
			}
			out = append(out, items...)
		case map[string]string:
			for _, nk := range sortedKeys(nested) {
				out = append(out, Choice{Value: nk, Label: nested[nk], Group: k})
			}
		default:
			out = append(out, Choice{Value: k, Label: value.String(nested), Group: group})
		}
	}
	return out, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Option is a child of a composite control. For selects it wraps an
// <option>; for sets it wraps the generated <input>.
type Option struct {
	node  *dom.Node
	value any
	label string
	group string
	state string
}

func (o *Option) Node() *dom.Node { return o.node }
func (o *Option) Value() any      { return o.value }
func (o *Option) Label() string   { return o.label }
func (o *Option) Group() string   { return o.group }

// Selected reports the selected (or checked) state.
func (o *Option) Selected() bool { return o.node.HasAttribute(o.state) }

func (o *Option) set(on bool) { toggle(o.node, o.state, on) }
