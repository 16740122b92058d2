package openapi_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formtree/internal/openapi"
	"github.com/goliatone/go-formtree/pkg/element"
)

func loadPetstore(t *testing.T) *openapi.Importer {
	t.Helper()
	im, err := openapi.LoadFile(context.Background(), os.DirFS("testdata"), "petstore.yaml", openapi.WithValidation(true))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return im
}

func TestOperationsSortedByID(t *testing.T) {
	im := loadPetstore(t)
	var ids []string
	for _, op := range im.Operations() {
		ids = append(ids, op.ID)
	}
	if diff := cmp.Diff([]string{"createPet", "listPets", "uploadPhoto"}, ids); diff != "" {
		t.Fatalf("operations mismatch (-want +got):\n%s", diff)
	}
	if im.Title() != "Pet Store" {
		t.Fatalf("unexpected title %q", im.Title())
	}
}

func TestFieldsFollowSchema(t *testing.T) {
	res, err := loadPetstore(t).Fields("createPet")
	if err != nil {
		t.Fatalf("fields: %v", err)
	}
	if res.MediaType != "application/json" {
		t.Fatalf("unexpected media type %q", res.MediaType)
	}

	var names, types []string
	for _, def := range res.Fields {
		names = append(names, def.Name)
		types = append(types, def.Config["type"].(string))
	}
	wantNames := []string{"name", "species", "age", "notes", "owner_email", "size", "tags", "vaccinated"}
	wantTypes := []string{"text", "select", "number", "textarea", "email", "radio", "multicheckbox", "checkbox"}
	if diff := cmp.Diff(wantNames, names); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantTypes, types); diff != "" {
		t.Fatalf("types mismatch (-want +got):\n%s", diff)
	}

	species := res.Fields[1].Config
	if species["required"] != true || species["selected"] != "dog" {
		t.Fatalf("unexpected species config %v", species)
	}
	if got := res.Fields[3].Config["label"]; got != "Extra notes" {
		t.Fatalf("expected title as label, got %v", got)
	}
	if got := res.Fields[4].Config["label"]; got != "Owner email" {
		t.Fatalf("expected humanised label, got %v", got)
	}
}

func TestBuildProducesWorkingForm(t *testing.T) {
	f, err := loadPetstore(t).Build("createPet")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if f.Action() != "/pets" || f.Method() != "post" || f.Prefix() != "createpet" {
		t.Fatalf("unexpected form attributes %q %q %q", f.Action(), f.Method(), f.Prefix())
	}
	if f.Legend() != "Add a pet" {
		t.Fatalf("unexpected legend %q", f.Legend())
	}

	f.SetFieldValues(map[string]any{"name": "R", "species": "cat", "age": 60})
	if f.IsValid() {
		t.Fatalf("expected invalid submission")
	}
	errs := f.AllErrors()
	if diff := cmp.Diff([]string{"The value must be between 2 and 40 characters long."}, errs["name"]); diff != "" {
		t.Fatalf("name errors mismatch (-want +got):\n%s", diff)
	}
	if _, ok := errs["age"]; !ok {
		t.Fatalf("expected age bound error, got %v", errs)
	}

	if _, ok := f.Field("tags").(*element.CheckboxSet); !ok {
		t.Fatalf("expected checkbox set for tags, got %T", f.Field("tags"))
	}
}

func TestSetDefaultsBecomeInitialSelection(t *testing.T) {
	f, err := loadPetstore(t).Build("createPet")
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if _, ok := f.Field("size").(*element.RadioSet); !ok {
		t.Fatalf("expected radio set for size, got %T", f.Field("size"))
	}
	if got, _ := f.FieldValue("size"); got != "small" {
		t.Fatalf("expected size default small, got %v", got)
	}
	got, _ := f.FieldValue("tags")
	if diff := cmp.Diff([]any{"playful"}, got); diff != "" {
		t.Fatalf("tags default mismatch (-want +got):\n%s", diff)
	}
	if got, _ := f.FieldValue("species"); got != "dog" {
		t.Fatalf("expected species default dog, got %v", got)
	}
}

func TestMultipartUploadOperation(t *testing.T) {
	im := loadPetstore(t)
	res, err := im.Fields("uploadPhoto")
	if err != nil {
		t.Fatalf("fields: %v", err)
	}
	if res.MediaType != "multipart/form-data" || res.Fields[0].Config["type"] != "file" {
		t.Fatalf("unexpected upload result %+v", res)
	}
	f, err := im.Build("uploadPhoto")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := f.Prepare(); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if f.Node().AttributeValue("enctype") != "multipart/form-data" {
		t.Fatalf("expected multipart form")
	}
}

func TestFieldsErrors(t *testing.T) {
	im := loadPetstore(t)
	if _, err := im.Fields("nope"); !errors.Is(err, openapi.ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
	if _, err := im.Fields("listPets"); !errors.Is(err, openapi.ErrNoRequestBody) {
		t.Fatalf("expected ErrNoRequestBody, got %v", err)
	}
	if _, err := openapi.Load(context.Background(), nil); err == nil {
		t.Fatalf("expected error for empty payload")
	}
}
