package config_test

import (
	"errors"
	"os"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formtree/pkg/config"
	"github.com/goliatone/go-formtree/pkg/element"
	"github.com/goliatone/go-formtree/pkg/form"
	"github.com/google/go-cmp/cmp"
)

func TestLoadYAMLBuildsForm(t *testing.T) {
	doc, err := config.Load(os.DirFS("testdata"), "signup.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := config.Header{ID: "signup", Action: "/signup", Method: "POST"}
	if diff := cmp.Diff(want, doc.Form); diff != "" {
		t.Fatalf("header mismatch (-want +got):\n%s", diff)
	}

	f, err := doc.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if diff := cmp.Diff([]string{"first", "last", "email", "plan", "send"}, f.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if f.Method() != "post" || f.Action() != "/signup" {
		t.Fatalf("unexpected form attributes %q %q", f.Method(), f.Action())
	}
	if diff := cmp.Diff([]form.Column{{Class: "main", Fieldsets: []int{0, 1}}}, f.Columns()); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
	if groups := f.Fieldsets()[0].Groups(); len(groups) != 2 {
		t.Fatalf("expected two groups, got %d", len(groups))
	}
	if f.Fieldsets()[1].Container() != "section" {
		t.Fatalf("expected section container")
	}
}

func TestYAMLValuesKeepDeclarationOrder(t *testing.T) {
	doc, err := config.Load(os.DirFS("testdata"), "signup.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	f, err := doc.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	sel, ok := f.Field("plan").(*element.Select)
	if !ok {
		t.Fatalf("expected select, got %T", f.Field("plan"))
	}
	want := []element.Choice{
		{Value: "pro", Label: "Professional"},
		{Value: "basic", Label: "Basic"},
		{Value: "old", Label: "Old plan", Group: "legacy"},
	}
	if diff := cmp.Diff(want, sel.Choices()); diff != "" {
		t.Fatalf("choices mismatch (-want +got):\n%s", diff)
	}
	if sel.Value() != "basic" {
		t.Fatalf("expected basic selected, got %v", sel.Value())
	}
}

func TestParseJSONFlatFields(t *testing.T) {
	doc, err := config.Parse([]byte(`{
		"form": {"id": "contact"},
		"fields": [
			{"name": "name", "type": "text", "required": "true"},
			{"name": "topic", "type": "select", "values": [{"value": "b", "label": "B"}, {"value": "a", "label": "A"}]}
		]
	}`), config.FormatJSON)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	f, err := doc.Build(form.WithAction("/contact"))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if f.Action() != "/contact" || f.Prefix() != "contact" {
		t.Fatalf("unexpected attributes %q %q", f.Action(), f.Prefix())
	}
	if !f.Field("name").Required() {
		t.Fatalf("expected weakly typed required flag")
	}
	sel := f.Field("topic").(*element.Select)
	if diff := cmp.Diff([]element.Choice{{Value: "b", Label: "B"}, {Value: "a", Label: "A"}}, sel.Choices()); diff != "" {
		t.Fatalf("choices mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	cases := map[string]struct {
		data   string
		format config.Format
		want   error
	}{
		"format":     {data: `{}`, format: "toml", want: config.ErrUnsupportedFormat},
		"exclusive":  {data: `{"fields": [], "fieldsets": []}`, format: config.FormatJSON, want: config.ErrInvalidDocument},
		"no name":    {data: "fields:\n  - type: text\n", format: config.FormatYAML, want: config.ErrInvalidDocument},
		"not list":   {data: "fields: nope\n", format: config.FormatYAML, want: config.ErrInvalidDocument},
		"empty":      {data: `null`, format: config.FormatJSON, want: config.ErrInvalidDocument},
		"top scalar": {data: "just text\n", format: config.FormatYAML, want: config.ErrInvalidDocument},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Parse([]byte(tc.data), tc.format)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	fsys := fstest.MapFS{"form.toml": {Data: []byte("x")}}
	if _, err := config.Load(fsys, "form.toml"); !errors.Is(err, config.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}
