package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-formtree/pkg/element"
	"github.com/goliatone/go-formtree/pkg/form"
	"github.com/goliatone/go-formtree/pkg/metrics"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metric:
		for _, m := range mf.GetMetric() {
			for _, pair := range m.GetLabel() {
				if want, ok := labels[pair.GetName()]; ok && want != pair.GetValue() {
					continue metric
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

func TestObserverCountsPipelineRuns(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := metrics.New("formtree", reg)
	if err != nil {
		t.Fatalf("new observer: %v", err)
	}

	f := form.New(form.WithID("signup"), form.WithObserver(obs))
	name := element.NewInput("name", "text", nil)
	name.SetRequired(true)
	f.AddFields(name, element.NewInput("city", "text", nil))

	f.SetFieldValues(map[string]any{"city": "Oslo"})
	f.IsValid()
	f.SetFieldValues(map[string]any{"name": "Ada"})
	f.IsValid()

	checks := []struct {
		metric string
		labels map[string]string
		want   float64
	}{
		{"formtree_form_validations_total", map[string]string{"form": "signup", "result": "invalid"}, 1},
		{"formtree_form_validations_total", map[string]string{"form": "signup", "result": "valid"}, 1},
		{"formtree_form_field_failures_total", map[string]string{"form": "signup", "field": "name"}, 1},
		{"formtree_form_filtered_fields_total", map[string]string{"form": "signup"}, 4},
	}
	for _, c := range checks {
		if got := counterValue(t, reg, c.metric, c.labels); got != c.want {
			t.Fatalf("%s%v: expected %v, got %v", c.metric, c.labels, c.want, got)
		}
	}
}

func TestNewRejectsDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := metrics.New("dup", reg); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if _, err := metrics.New("dup", reg); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
}

func TestNewLeavesRegistryCleanOnConflict(t *testing.T) {
	reg := prometheus.NewRegistry()
	clash := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "formtree",
		Name:      "form_validation_duration_seconds",
		Help:      "Occupied name.",
	})
	if err := reg.Register(clash); err != nil {
		t.Fatalf("register clash: %v", err)
	}

	if _, err := metrics.New("formtree", reg); err == nil {
		t.Fatalf("expected registration conflict")
	}

	reg.Unregister(clash)
	if _, err := metrics.New("formtree", reg); err != nil {
		t.Fatalf("expected earlier collectors to be unregistered, got %v", err)
	}
}
