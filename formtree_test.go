package formtree_test

import (
	"context"
	"io/fs"
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formtree"
	"github.com/goliatone/go-formtree/pkg/element"
	"github.com/goliatone/go-formtree/pkg/terms"
)

func TestEmbeddedTemplatesListWidgets(t *testing.T) {
	names, err := fs.Glob(formtree.EmbeddedTemplates(), "*.tpl")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(names) != 6 {
		t.Fatalf("expected 6 widget templates, got %v", names)
	}
}

func TestLoadFormWithTermsAndOverrides(t *testing.T) {
	fsys := fstest.MapFS{
		"listing.yaml": {Data: []byte(`
fields:
  - name: region
    type: select
    taxonomy: regions
  - name: intro
    type: heading
    label: Listing
`)},
	}
	source := terms.NewStatic(map[string][]element.Choice{
		"regions": {{Value: "n", Label: "North"}, {Value: "s", Label: "South"}},
	})
	overrides := fstest.MapFS{"heading-field.tpl": {Data: []byte(`<h2>{{ field.label }}</h2>`)}}

	f, err := formtree.LoadForm(fsys, "listing.yaml",
		formtree.WithTermSource(source),
		formtree.WithTemplates(overrides),
	)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	html, err := formtree.RenderHTML(f)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := string(html)
	for _, want := range []string{`<option value="n">North</option>`, `<h2>Listing</h2>`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestFromOpenAPI(t *testing.T) {
	f, err := formtree.FromOpenAPI(context.Background(), os.DirFS("internal/openapi/testdata"), "petstore.yaml", "createPet")
	if err != nil {
		t.Fatalf("from openapi: %v", err)
	}
	if f.Field("species") == nil || f.Action() != "/pets" {
		t.Fatalf("unexpected form: %v", f.Names())
	}
}
