package form_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestApplyErrorsMapsPathsToFields(t *testing.T) {
	f := contactForm(t)
	formLevel := f.ApplyErrors(map[string][]string{
		"/data/email": {"Email already taken.", " Email already taken. "},
		"#/topics/0":  {"Unknown topic."},
		"name":        {""},
		"_form":       {"Try again later."},
		"shipping":    {"Shipping is unavailable."},
	})

	want := []string{"Try again later.", "Shipping is unavailable."}
	if diff := cmp.Diff(want, formLevel); diff != "" {
		t.Fatalf("form-level mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Email already taken."}, f.Errors("email")); diff != "" {
		t.Fatalf("email errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Unknown topic."}, f.Errors("topics")); diff != "" {
		t.Fatalf("topics errors mismatch (-want +got):\n%s", diff)
	}
	if got := f.Errors("name"); len(got) != 0 {
		t.Fatalf("expected blank messages to be dropped, got %v", got)
	}
}

func TestApplyErrorsEmptyPayload(t *testing.T) {
	f := contactForm(t)
	if got := f.ApplyErrors(nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}
