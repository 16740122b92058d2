package element_test

import (
	"testing"

	"github.com/goliatone/go-formtree/pkg/dom"
	"github.com/goliatone/go-formtree/pkg/element"
	"github.com/google/go-cmp/cmp"
)

var days = []element.Choice{
	{Value: "mon", Label: "Monday"},
	{Value: "tue", Label: "Tuesday"},
	{Value: "wed", Label: "Wednesday"},
}

func TestCheckboxSetStructure(t *testing.T) {
	set := element.NewCheckboxSet("days", days, []any{"tue"})

	if got := set.Node().AttributeValue("class"); got != "checkbox-fieldset" {
		t.Fatalf("unexpected container class %q", got)
	}
	var ids, names []string
	for _, opt := range set.Options() {
		ids = append(ids, opt.Node().AttributeValue("id"))
		names = append(names, opt.Node().AttributeValue("name"))
	}
	if diff := cmp.Diff([]string{"days", "days1", "days2"}, ids); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"days[]", "days[]", "days[]"}, names); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	label := set.Node().Children()[0].Children()[1]
	if label.Tag() != "label" || label.AttributeValue("for") != "days" || label.Text() != "Monday" {
		t.Fatalf("unexpected label node %+v", label.AttributeMap())
	}
	if diff := cmp.Diff([]any{"tue"}, selectedValues(set.Options())); diff != "" {
		t.Fatalf("checked mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckboxSetValueLifecycle(t *testing.T) {
	set := element.NewCheckboxSet("days", days, nil)
	if diff := cmp.Diff([]any{}, set.Value()); diff != "" {
		t.Fatalf("initial value mismatch (-want +got):\n%s", diff)
	}

	set.SetValue("wed")
	if diff := cmp.Diff([]any{"wed"}, selectedValues(set.Options())); diff != "" {
		t.Fatalf("scalar set mismatch (-want +got):\n%s", diff)
	}

	set.SetValue([]string{"mon", "wed"})
	if diff := cmp.Diff([]any{"mon", "wed"}, selectedValues(set.Options())); diff != "" {
		t.Fatalf("list set mismatch (-want +got):\n%s", diff)
	}

	set.ResetValue()
	if got := selectedValues(set.Options()); len(got) != 0 {
		t.Fatalf("expected nothing checked, got %v", got)
	}
}

func TestChoiceSetControlAttributesIncrementTabindex(t *testing.T) {
	set := element.NewRadioSet("day", days, nil)
	set.SetControlAttributes(dom.Attr{Name: "tabindex", Value: "4"}, dom.Attr{Name: "data-x", Value: "y"})

	var got []string
	for _, opt := range set.Options() {
		got = append(got, opt.Node().AttributeValue("tabindex")+"/"+opt.Node().AttributeValue("data-x"))
	}
	if diff := cmp.Diff([]string{"4/y", "5/y", "6/y"}, got); diff != "" {
		t.Fatalf("attributes mismatch (-want +got):\n%s", diff)
	}
}

func TestChoiceSetFlagsPropagateToInputs(t *testing.T) {
	set := element.NewRadioSet("day", days, "mon")
	set.SetDisabled(true)
	set.SetReadonly(true)

	for _, opt := range set.Options() {
		n := opt.Node()
		if !n.HasAttribute("disabled") || !n.HasAttribute("readonly") {
			t.Fatalf("expected flags on %s, got %v", n.AttributeValue("id"), n.AttributeMap())
		}
		if n.AttributeValue("onclick") != "return false;" {
			t.Fatalf("expected click guard on %s", n.AttributeValue("id"))
		}
	}
	if set.Node().HasAttribute("disabled") {
		t.Fatalf("container should not carry the disabled attribute")
	}

	set.SetReadonly(false)
	if set.Options()[0].Node().HasAttribute("onclick") {
		t.Fatalf("expected click guard removed")
	}
}

func TestRadioSetLooseEquality(t *testing.T) {
	set := element.NewRadioSet("rating", []element.Choice{
		{Value: 1, Label: "1"},
		{Value: 2, Label: "2"},
	}, nil)

	set.SetValue("2")
	if diff := cmp.Diff([]any{2}, selectedValues(set.Options())); diff != "" {
		t.Fatalf("selection mismatch (-want +got):\n%s", diff)
	}
	set.ResetValue()
	if set.Value() != nil || len(selectedValues(set.Options())) != 0 {
		t.Fatalf("expected empty state after reset")
	}
}

func TestChoiceSetLegendAddedOnce(t *testing.T) {
	set := element.NewCheckboxSet("days", days, nil)
	set.SetLegend("Pick days")
	set.Prepare()
	set.Prepare()

	legends := 0
	for _, child := range set.Node().Children() {
		if child.Tag() == "legend" {
			legends++
			if child.Text() != "Pick days" {
				t.Fatalf("unexpected legend text %q", child.Text())
			}
		}
	}
	if legends != 1 {
		t.Fatalf("expected one legend, got %d", legends)
	}
}

func TestCheckboxSetTypeFollowsTaxonomy(t *testing.T) {
	set := element.NewCheckboxSet("days", days, nil)
	if set.Type() != "multicheckbox" {
		t.Fatalf("unexpected type %q", set.Type())
	}
	set.SetTaxonomy("listings-types")
	if set.Type() != "term-checklist" {
		t.Fatalf("unexpected term type %q", set.Type())
	}
}
