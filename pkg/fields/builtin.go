package fields

import (
	"github.com/goliatone/go-formtree/pkg/element"
	"github.com/goliatone/go-formtree/pkg/value"
	"github.com/spf13/cast"
)

type builder func(f *Factory, name, typ string, cfg Config) (element.Element, error)

// builtinTypes are dispatched before the registry is consulted.
var builtinTypes = map[string]builder{
	"button":           buildButton,
	"input-button":     buildInputButton,
	"submit":           buildInputButton,
	"reset":            buildInputButton,
	"select":           buildSelect,
	"term-select":      buildSelect,
	"select-multiple":  buildSelectMultiple,
	"multiselect":      buildSelectMultiple,
	"term-multiselect": buildSelectMultiple,
	"editor":           buildEditor,
	"textarea":         buildTextarea,
	"checkbox":         buildCheckbox,
	"checkboxset":      buildCheckboxSet,
	"multicheckbox":    buildCheckboxSet,
	"term-checklist":   buildCheckboxSet,
	"radio":            buildRadioSet,
	"radioset":         buildRadioSet,
	"number":           buildNumber,
	"range":            buildNumber,
}

func buildButton(_ *Factory, name, _ string, cfg Config) (element.Element, error) {
	return element.NewButton(name, cfg.Value), nil
}

func buildInputButton(_ *Factory, name, typ string, cfg Config) (element.Element, error) {
	if typ == "input-button" {
		typ = "button"
	}
	return element.NewInputButton(name, typ, cfg.Value), nil
}

func (f *Factory) choices(cfg Config) ([]element.Choice, error) {
	return element.ResolveChoices(f.terms, cfg.Taxonomy, cfg.Values)
}

func buildSelect(f *Factory, name, _ string, cfg Config) (element.Element, error) {
	choices, err := f.choices(cfg)
	if err != nil {
		return nil, err
	}
	return element.NewSelect(name, choices, cfg.Selected), nil
}

func buildSelectMultiple(f *Factory, name, _ string, cfg Config) (element.Element, error) {
	choices, err := f.choices(cfg)
	if err != nil {
		return nil, err
	}
	return element.NewSelectMultiple(name, choices, cfg.Selected), nil
}

func buildEditor(_ *Factory, name, _ string, cfg Config) (element.Element, error) {
	return element.NewEditor(name, cfg.Value), nil
}

func buildTextarea(_ *Factory, name, _ string, cfg Config) (element.Element, error) {
	return element.NewTextarea(name, cfg.Value), nil
}

func buildCheckbox(_ *Factory, name, _ string, cfg Config) (element.Element, error) {
	return element.NewCheckbox(name, cfg.Value, value.Truthy(cfg.Checked)), nil
}

func buildCheckboxSet(f *Factory, name, _ string, cfg Config) (element.Element, error) {
	choices, err := f.choices(cfg)
	if err != nil {
		return nil, err
	}
	return element.NewCheckboxSet(name, choices, cfg.Checked), nil
}

func buildRadioSet(f *Factory, name, _ string, cfg Config) (element.Element, error) {
	choices, err := f.choices(cfg)
	if err != nil {
		return nil, err
	}
	return element.NewRadioSet(name, choices, cfg.Checked), nil
}

func buildNumber(_ *Factory, name, typ string, cfg Config) (element.Element, error) {
	return element.NewNumber(name, typ, cfg.Min, cfg.Max, cfg.Value), nil
}

// plainInputTypes are HTML input types created by convention with no extra
// behaviour.
var plainInputTypes = []string{
	"text", "email", "url", "tel", "search", "date", "datetime-local",
	"time", "month", "week", "color", "hidden",
}

func (f *Factory) registerDefaults() {
	for _, typ := range plainInputTypes {
		f.registry[typ] = func(name string, cfg Config) (element.Element, error) {
			return element.NewInput(name, typ, cfg.Value), nil
		}
	}
	f.registry["password"] = func(name string, cfg Config) (element.Element, error) {
		return element.NewPassword(name, cfg.Value, cfg.Render), nil
	}
	f.registry["file"] = func(name string, cfg Config) (element.Element, error) {
		return element.NewFile(name, cfg.Value), nil
	}
	f.registry["price"] = func(name string, cfg Config) (element.Element, error) {
		return element.NewPrice(name, cfg.Value), nil
	}
	f.registry["listing-tags"] = func(name string, cfg Config) (element.Element, error) {
		return element.NewListingTags(name, cfg.Value), nil
	}
	f.registry["listing-category"] = func(name string, cfg Config) (element.Element, error) {
		return element.NewListingCategory(name, cfg.Value), nil
	}
	f.registry["term-chain-picker"] = func(name string, cfg Config) (element.Element, error) {
		picker := element.NewTermChainPicker(name, cfg.Value)
		picker.SetBranchDisabled(cfg.BranchDisabled)
		return picker, nil
	}
	f.registry["heading"] = func(name string, cfg Config) (element.Element, error) {
		return element.NewHeading(name, cfg.Label), nil
	}
	f.registry["csrf"] = func(name string, cfg Config) (element.Element, error) {
		return element.NewToken(name, cast.ToString(cfg.Value)), nil
	}
}
