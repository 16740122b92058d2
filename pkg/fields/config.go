package fields

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/goliatone/go-formtree/pkg/dom"
	"github.com/goliatone/go-formtree/pkg/element"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
)

// Config is one field record.
type Config struct {
	Type             string            `mapstructure:"type" json:"type" yaml:"type"`
	Value            any               `mapstructure:"value" json:"value,omitempty" yaml:"value,omitempty"`
	Values           []element.Choice  `mapstructure:"values" json:"values,omitempty" yaml:"values,omitempty"`
	Label            string            `mapstructure:"label" json:"label,omitempty" yaml:"label,omitempty"`
	LabelAttributes  map[string]string `mapstructure:"label-attributes" json:"label-attributes,omitempty" yaml:"label-attributes,omitempty"`
	Hint             string            `mapstructure:"hint" json:"hint,omitempty" yaml:"hint,omitempty"`
	HintAttributes   map[string]string `mapstructure:"hint-attributes" json:"hint-attributes,omitempty" yaml:"hint-attributes,omitempty"`
	Indent           string            `mapstructure:"indent" json:"indent,omitempty" yaml:"indent,omitempty"`
	Checked          any               `mapstructure:"checked" json:"checked,omitempty" yaml:"checked,omitempty"`
	Selected         any               `mapstructure:"selected" json:"selected,omitempty" yaml:"selected,omitempty"`
	Required         bool              `mapstructure:"required" json:"required,omitempty" yaml:"required,omitempty"`
	Disabled         bool              `mapstructure:"disabled" json:"disabled,omitempty" yaml:"disabled,omitempty"`
	Readonly         bool              `mapstructure:"readonly" json:"readonly,omitempty" yaml:"readonly,omitempty"`
	Attributes       map[string]string `mapstructure:"attributes" json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Validators       any               `mapstructure:"validators" json:"validators,omitempty" yaml:"validators,omitempty"`
	Multiple         bool              `mapstructure:"multiple" json:"multiple,omitempty" yaml:"multiple,omitempty"`
	Min              any               `mapstructure:"min" json:"min,omitempty" yaml:"min,omitempty"`
	Max              any               `mapstructure:"max" json:"max,omitempty" yaml:"max,omitempty"`
	MaxSize          int64             `mapstructure:"max_size" json:"max_size,omitempty" yaml:"max_size,omitempty"`
	AllowedMimeTypes []string          `mapstructure:"allowed_mime_types" json:"allowed_mime_types,omitempty" yaml:"allowed_mime_types,omitempty"`
	Taxonomy         string            `mapstructure:"taxonomy" json:"taxonomy,omitempty" yaml:"taxonomy,omitempty"`
	Placeholder      string            `mapstructure:"placeholder" json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Error            string            `mapstructure:"error" json:"error,omitempty" yaml:"error,omitempty"`
	Legend           string            `mapstructure:"legend" json:"legend,omitempty" yaml:"legend,omitempty"`
	Render           bool              `mapstructure:"render" json:"render,omitempty" yaml:"render,omitempty"`
	BranchDisabled   bool              `mapstructure:"branch_disabled" json:"branch_disabled,omitempty" yaml:"branch_disabled,omitempty"`
}

// keyAliases maps alternative spellings onto the canonical record keys.
var keyAliases = map[string]string{
	"maxsize":            "max_size",
	"max-size":           "max_size",
	"allowedmimetypes":   "allowed_mime_types",
	"allowed-mime-types": "allowed_mime_types",
	"mime_types":         "allowed_mime_types",
	"labelattributes":    "label-attributes",
	"label_attributes":   "label-attributes",
	"hintattributes":     "hint-attributes",
	"hint_attributes":    "hint-attributes",
	"branchdisabled":     "branch_disabled",
	"validator":          "validators",
	"options":            "values",
}

var choicesType = reflect.TypeOf([]element.Choice(nil))

// DecodeConfig decodes a loosely typed record (as read from YAML or JSON)
// into a Config.
func DecodeConfig(raw map[string]any) (Config, error) {
	normalized := make(map[string]any, len(raw))
	for key, val := range raw {
		canonical := strings.ToLower(strings.TrimSpace(key))
		if alias, ok := keyAliases[canonical]; ok {
			canonical = alias
		}
		normalized[canonical] = val
	}

	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			choicesHook,
			stringMapHook,
		),
	})
	if err != nil {
		return Config{}, fmt.Errorf("fields: decoder: %w", err)
	}
	if err := decoder.Decode(normalized); err != nil {
		return Config{}, fmt.Errorf("fields: decode record: %w", err)
	}
	return cfg, nil
}

func choicesHook(from, to reflect.Type, data any) (any, error) {
	if to != choicesType {
		return data, nil
	}
	return element.ParseChoices(data)
}

func stringMapHook(from, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(map[string]string(nil)) || data == nil {
		return data, nil
	}
	return cast.ToStringMapStringE(data)
}

// attrs converts a record attribute map into name-sorted attributes.
func attrs(m map[string]string) []dom.Attr {
	if len(m) == 0 {
		return nil
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]dom.Attr, len(names))
	for i, name := range names {
		out[i] = dom.Attr{Name: name, Value: m[name]}
	}
	return out
}
