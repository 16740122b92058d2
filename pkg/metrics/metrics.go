// Package metrics exports form pipeline events as Prometheus metrics.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-formtree/pkg/form"
)

// Observer records validation and filtering runs. It satisfies form.Observer.
type Observer struct {
	validations   *prometheus.CounterVec
	fieldFailures *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	filtered      *prometheus.CounterVec
}

var _ form.Observer = (*Observer)(nil)

// New builds an observer and registers its collectors on reg. A nil reg
// uses the default registerer.
func New(namespace string, reg prometheus.Registerer) (*Observer, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	o := &Observer{
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "form_validations_total",
			Help:      "Form validation runs by outcome.",
		}, []string{"form", "result"}),
		fieldFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "form_field_failures_total",
			Help:      "Fields that failed validation.",
		}, []string{"form", "field"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "form_validation_duration_seconds",
			Help:      "Time spent validating a form.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"form"}),
		filtered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "form_filtered_fields_total",
			Help:      "Field values passed through the filter chain.",
		}, []string{"form"}),
	}
	collectors := []prometheus.Collector{o.validations, o.fieldFailures, o.duration, o.filtered}
	for i, c := range collectors {
		if err := reg.Register(c); err != nil {
			for _, done := range collectors[:i] {
				reg.Unregister(done)
			}
			return nil, fmt.Errorf("metrics: register: %w", err)
		}
	}
	return o, nil
}

func (o *Observer) Validated(name string, valid bool, failed []string, elapsed time.Duration) {
	result := "valid"
	if !valid {
		result = "invalid"
	}
	o.validations.WithLabelValues(name, result).Inc()
	o.duration.WithLabelValues(name).Observe(elapsed.Seconds())
	for _, field := range failed {
		o.fieldFailures.WithLabelValues(name, field).Inc()
	}
}

func (o *Observer) Filtered(name string, fields int) {
	o.filtered.WithLabelValues(name).Add(float64(fields))
}
