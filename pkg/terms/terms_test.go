package terms_test

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formtree/pkg/element"
	"github.com/goliatone/go-formtree/pkg/terms"
	"github.com/google/go-cmp/cmp"
)

const termsYAML = `
listing_types:
  - value: 10
    label: Shop
  - value: 11
listing_categories:
  - value: food
    label: Food
    children:
      - value: pizza
        label: Pizza
      - value: sushi
`

func TestLoadYAMLTerms(t *testing.T) {
	fsys := fstest.MapFS{"terms.yaml": {Data: []byte(termsYAML)}}
	source, err := terms.Load(fsys, "terms.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	got, err := source.Terms("listing_types")
	if err != nil {
		t.Fatalf("terms: %v", err)
	}
	want := []element.Choice{{Value: 10, Label: "Shop"}, {Value: 11, Label: "11"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("listing types mismatch (-want +got):\n%s", diff)
	}

	got, _ = source.Terms("listing_categories")
	want = []element.Choice{
		{Value: "pizza", Label: "Pizza", Group: "Food"},
		{Value: "sushi", Label: "sushi", Group: "Food"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("categories mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"listing_categories", "listing_types"}, source.Taxonomies()); diff != "" {
		t.Fatalf("taxonomies mismatch (-want +got):\n%s", diff)
	}
}

func TestStaticUnknownTaxonomy(t *testing.T) {
	source := terms.NewStatic(nil)
	if _, err := source.Terms("nope"); !errors.Is(err, terms.ErrUnknownTaxonomy) {
		t.Fatalf("expected ErrUnknownTaxonomy, got %v", err)
	}
	source.Set("nope", []element.Choice{{Value: 1, Label: "One"}})
	if got, err := source.Terms("nope"); err != nil || len(got) != 1 {
		t.Fatalf("expected term after Set, got %v err=%v", got, err)
	}
}

func TestParseRejectsTermsWithoutValue(t *testing.T) {
	if _, err := terms.Parse([]byte("tax:\n  - label: Missing\n")); err == nil {
		t.Fatalf("expected error for term without value")
	}
}
