package prompt_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formtree/pkg/form"
	"github.com/goliatone/go-formtree/pkg/prompt"
)

type stubDriver struct {
	inputs    []string
	selects   []int
	multis    [][]int
	confirms  []bool
	textAreas []string
	info      []string
	asked     []string
}

func (s *stubDriver) Input(_ context.Context, cfg prompt.InputConfig) (string, error) {
	s.asked = append(s.asked, cfg.Message)
	if len(s.inputs) == 0 {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[0]
	s.inputs = s.inputs[1:]
	return val, nil
}

func (s *stubDriver) Password(ctx context.Context, cfg prompt.InputConfig) (string, error) {
	return s.Input(ctx, cfg)
}

func (s *stubDriver) Confirm(_ context.Context, cfg prompt.ConfirmConfig) (bool, error) {
	s.asked = append(s.asked, cfg.Message)
	if len(s.confirms) == 0 {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirms[0]
	s.confirms = s.confirms[1:]
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg prompt.SelectConfig) (int, error) {
	s.asked = append(s.asked, cfg.Message)
	if len(s.selects) == 0 {
		return -1, errors.New("no select scripted")
	}
	val := s.selects[0]
	s.selects = s.selects[1:]
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, cfg prompt.SelectConfig) ([]int, error) {
	s.asked = append(s.asked, cfg.Message)
	if len(s.multis) == 0 {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multis[0]
	s.multis = s.multis[1:]
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, cfg prompt.InputConfig) (string, error) {
	s.asked = append(s.asked, cfg.Message)
	if len(s.textAreas) == 0 {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[0]
	s.textAreas = s.textAreas[1:]
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.info = append(s.info, msg)
	return nil
}

func signupForm(t *testing.T) *form.Form {
	t.Helper()
	f, err := form.FromConfig([]form.FieldDefinition{
		{Name: "name", Config: map[string]any{"type": "text", "label": "Name", "required": true}},
		{Name: "plan", Config: map[string]any{"type": "select", "label": "Plan", "values": []any{"free", "pro"}}},
		{Name: "topics", Config: map[string]any{"type": "multicheckbox", "values": []any{"news", "offers"}}},
		{Name: "bio", Config: map[string]any{"type": "textarea", "label": "Bio"}},
		{Name: "agree", Config: map[string]any{"type": "checkbox", "label": "Agree"}},
		{Name: "token", Config: map[string]any{"type": "hidden", "value": "x"}},
		{Name: "send", Config: map[string]any{"type": "submit"}},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return f
}

func TestFillAsksEachPromptableField(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Ada"},
		selects:   []int{2},
		multis:    [][]int{{1}},
		textAreas: []string{""},
		confirms:  []bool{true},
	}
	f := signupForm(t)
	values, err := prompt.New(driver).Fill(context.Background(), f)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}

	want := map[string]any{"name": "Ada", "plan": "pro", "topics": []any{"offers"}, "agree": true, "token": "x"}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Name *", "Plan", "topics", "Bio", "Agree"}, driver.asked); diff != "" {
		t.Fatalf("prompts mismatch (-want +got):\n%s", diff)
	}
	if got, _ := f.FieldValue("plan"); got != "pro" {
		t.Fatalf("expected form bound, got %v", got)
	}
}

func TestFillRepromptsInvalidFields(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"", "Ada"},
		selects:   []int{0},
		multis:    [][]int{nil},
		textAreas: []string{"hi"},
		confirms:  []bool{false},
	}
	values, err := prompt.New(driver).Fill(context.Background(), signupForm(t))
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if values["name"] != "Ada" {
		t.Fatalf("expected second answer kept, got %v", values["name"])
	}
	if diff := cmp.Diff([]string{"Name *: Name is a required field."}, driver.info); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestFillGivesUpAfterAttempts(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"", ""},
		selects:   []int{0},
		multis:    [][]int{nil},
		textAreas: []string{""},
		confirms:  []bool{false},
	}
	_, err := prompt.New(driver, prompt.WithAttempts(2)).Fill(context.Background(), signupForm(t))
	if !errors.Is(err, prompt.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestFillKeepsValuesOfFieldsNotAsked(t *testing.T) {
	f, err := form.FromConfig([]form.FieldDefinition{
		{Name: "country", Config: map[string]any{"type": "text", "readonly": true, "required": true, "value": "NZ"}},
		{Name: "plan", Config: map[string]any{"type": "hidden", "value": "pro"}},
		{Name: "name", Config: map[string]any{"type": "text", "required": true}},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	driver := &stubDriver{inputs: []string{"Ada"}}

	values, err := prompt.New(driver).Fill(context.Background(), f)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	want := map[string]any{"country": "NZ", "plan": "pro", "name": "Ada"}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"name *"}, driver.asked); diff != "" {
		t.Fatalf("prompts mismatch (-want +got):\n%s", diff)
	}
	if got, _ := f.FieldValue("country"); got != "NZ" {
		t.Fatalf("expected readonly value kept, got %v", got)
	}
}

func TestFillStopsWhenOnlyUnaskedFieldsFail(t *testing.T) {
	f, err := form.FromConfig([]form.FieldDefinition{
		{Name: "country", Config: map[string]any{"type": "text", "disabled": true, "required": true}},
		{Name: "name", Config: map[string]any{"type": "text"}},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	driver := &stubDriver{inputs: []string{"Ada"}}

	_, err = prompt.New(driver).Fill(context.Background(), f)
	if !errors.Is(err, prompt.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if len(driver.asked) != 1 || len(driver.info) != 0 {
		t.Fatalf("expected a single round, asked %v info %v", driver.asked, driver.info)
	}
}
