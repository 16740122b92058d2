package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
)

const contactDefinition = `
form:
  id: contact
fields:
  - name: name
    type: text
    label: Name
    required: true
  - name: email
    type: email
  - name: intro
    type: heading
    label: Say hi
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd(&out, &errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	def := writeFile(t, dir, "contact.yaml", contactDefinition)
	bad := writeFile(t, dir, "bad.json", `{"email": "nope"}`)
	good := writeFile(t, dir, "good.json", `{"data": {"name": "<b>Ada</b>", "email": "ada@example.com"}}`)

	out, err := run(t, "validate", def, "--values", bad)
	if !errors.Is(err, errInvalidSubmission) {
		t.Fatalf("expected invalid submission, got %v", err)
	}
	var rep report
	if err := json.Unmarshal([]byte(out), &rep); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out)
	}
	var failed []string
	for name := range rep.Errors {
		failed = append(failed, name)
	}
	if len(failed) != 2 || rep.Errors["name"] == nil || rep.Errors["email"] == nil {
		t.Fatalf("expected name and email errors, got %v", rep.Errors)
	}

	out, err = run(t, "validate", def, "--values", good, "--root", "data")
	if err != nil {
		t.Fatalf("validate good: %v\n%s", err, out)
	}
	if err := json.Unmarshal([]byte(out), &rep); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if !rep.Valid || rep.Values["name"] != "Ada" {
		t.Fatalf("unexpected report %+v", rep)
	}
}

func TestRenderCommandUsesWidgets(t *testing.T) {
	dir := t.TempDir()
	def := writeFile(t, dir, "contact.yaml", contactDefinition)

	out, err := run(t, "render", def)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		`<form action="#" method="post" id="contact" class="contact">`,
		`<h3 class="heading-field" id="intro">Say hi</h3>`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestOpenAPICommand(t *testing.T) {
	doc := filepath.Join("..", "..", "internal", "openapi", "testdata", "petstore.yaml")

	out, err := run(t, "openapi", doc, "--list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var ids []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		ids = append(ids, strings.Fields(strings.TrimPrefix(line, "*"))[0])
	}
	if diff := cmp.Diff([]string{"createPet", "listPets", "uploadPhoto"}, ids); diff != "" {
		t.Fatalf("operations mismatch (-want +got):\n%s", diff)
	}

	out, err = run(t, "openapi", doc, "--operation", "createPet", "--emit")
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	dir := t.TempDir()
	def := writeFile(t, dir, "pet.yaml", out)
	if _, err := run(t, "render", def); err != nil {
		t.Fatalf("emitted definition does not render: %v\n%s", err, out)
	}
}

func TestTypesCommand(t *testing.T) {
	out, err := run(t, "types")
	if err != nil {
		t.Fatalf("types: %v", err)
	}
	for _, want := range []string{"text", "multicheckbox", "term-chain-picker"} {
		if !strings.Contains(out, want+"\n") {
			t.Fatalf("expected %q in types:\n%s", want, out)
		}
	}
}
