// Package prompt fills a form interactively on a terminal. Each value-bound
// field is asked with the prompt matching its control, the answers are bound
// through the form's sanitise-then-validate pipeline, and failing fields are
// asked again.
package prompt

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/goliatone/go-formtree/internal/logging"
	"github.com/goliatone/go-formtree/pkg/element"
	"github.com/goliatone/go-formtree/pkg/form"
	"github.com/goliatone/go-formtree/pkg/submission"
	"github.com/goliatone/go-formtree/pkg/value"
)

// DefaultAttempts bounds how many times invalid fields are asked again.
const DefaultAttempts = 3

// none labels the empty choice offered for optional selects.
const none = "(none)"

// Option configures a Filler.
type Option func(*Filler)

// WithAttempts sets how many rounds of prompting run before Fill gives up.
func WithAttempts(n int) Option {
	return func(fl *Filler) {
		if n > 0 {
			fl.attempts = n
		}
	}
}

// WithLogger sets the logger for retry diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(fl *Filler) {
		if logger != nil {
			fl.logger = logger
		}
	}
}

// WithContext sets the submission context used for validation.
func WithContext(sub *submission.Context) Option {
	return func(fl *Filler) { fl.submission = sub }
}

// Filler asks for field values through a Driver.
type Filler struct {
	driver     Driver
	attempts   int
	logger     *slog.Logger
	submission *submission.Context
}

// New builds a Filler that prompts through driver.
func New(driver Driver, opts ...Option) *Filler {
	fl := &Filler{driver: driver, attempts: DefaultAttempts, logger: logging.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(fl)
		}
	}
	return fl
}

// Fill asks every promptable field, binds the answers, and repeats the
// failing fields until the form validates. It returns the submitted values;
// ErrInvalid wraps the final failure.
func (fl *Filler) Fill(ctx context.Context, f *form.Form) (map[string]any, error) {
	pending := promptable(f.Fields())
	values := fixedValues(f.Fields(), pending)

	for attempt := 1; ; attempt++ {
		for _, el := range pending {
			v, present, err := fl.ask(ctx, el)
			if err != nil {
				return nil, fmt.Errorf("prompt: %s: %w", el.Name(), err)
			}
			if present {
				values[el.Name()] = v
			} else {
				delete(values, el.Name())
			}
		}

		f.SetFieldValues(values)
		if f.Validate(fl.submission) {
			return values, nil
		}

		failed := f.AllErrors()
		fl.logger.Debug("prompted values invalid", "attempt", attempt, "fields", len(failed))
		if attempt >= fl.attempts {
			return values, fmt.Errorf("%w after %d attempts", ErrInvalid, attempt)
		}

		pending = pending[:0]
		for _, el := range promptable(f.Fields()) {
			errs := el.Errors()
			if len(errs) == 0 {
				continue
			}
			if err := fl.driver.Info(ctx, fmt.Sprintf("%s: %s", title(el), strings.Join(errs, " "))); err != nil {
				return nil, err
			}
			pending = append(pending, el)
		}
		if len(pending) == 0 {
			return values, fmt.Errorf("%w: %s cannot be answered", ErrInvalid, strings.Join(sortedKeys(failed), ", "))
		}
	}
}

// fixedValues carries the current value of every field that is not asked
// (readonly, disabled, hidden, tokens) so binding does not reset it.
func fixedValues(fields, asked []element.Element) map[string]any {
	skip := make(map[element.Element]struct{}, len(asked))
	for _, el := range asked {
		skip[el] = struct{}{}
	}
	values := map[string]any{}
	for _, el := range fields {
		if _, ok := skip[el]; ok || el.IsButton() || el.Kind() == element.KindContainer {
			continue
		}
		// An unchecked checkbox is left out: presence means checked.
		if v := el.Value(); v != nil && v != false {
			values[el.Name()] = v
		}
	}
	return values
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func promptable(fields []element.Element) []element.Element {
	var out []element.Element
	for _, el := range fields {
		if el.IsButton() || el.Kind() == element.KindContainer || el.Disabled() || el.Readonly() {
			continue
		}
		switch el.Type() {
		case "csrf", "file", "hidden", "term-chain-picker":
			continue
		}
		out = append(out, el)
	}
	return out
}

type optionLister interface {
	Options() []*element.Option
}

// ask prompts for one field. present=false means the key is left out of
// the submission, which unchecks checkboxes and resets other fields.
func (fl *Filler) ask(ctx context.Context, el element.Element) (any, bool, error) {
	message := title(el)
	help := el.Hint()

	switch el.Kind() {
	case element.KindSelect, element.KindRadioSet:
		opts := el.(optionLister).Options()
		labels, current := optionLabels(opts)
		offset := 0
		if !el.Required() {
			labels = append([]string{none}, labels...)
			offset = 1
		}
		def := 0
		if len(current) > 0 {
			def = current[0] + offset
		}
		idx, err := fl.driver.Select(ctx, SelectConfig{Message: message, Options: labels, DefaultIndex: def, Help: help})
		if err != nil {
			return nil, false, err
		}
		idx -= offset
		if idx < 0 || idx >= len(opts) {
			return nil, false, nil
		}
		return opts[idx].Value(), true, nil

	case element.KindSelectMultiple, element.KindCheckboxSet:
		opts := el.(optionLister).Options()
		labels, current := optionLabels(opts)
		picked, err := fl.driver.MultiSelect(ctx, SelectConfig{Message: message, Options: labels, Defaults: current, Help: help})
		if err != nil {
			return nil, false, err
		}
		out := make([]any, 0, len(picked))
		for _, idx := range picked {
			if idx >= 0 && idx < len(opts) {
				out = append(out, opts[idx].Value())
			}
		}
		return out, len(out) > 0, nil

	case element.KindTextarea:
		text, err := fl.driver.TextArea(ctx, InputConfig{Message: message, Default: value.String(el.Value()), Help: help})
		return text, text != "", err
	}

	switch el.Type() {
	case "checkbox":
		on, err := fl.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: el.Value() == true, Help: help})
		return on, on, err
	case "password":
		text, err := fl.driver.Password(ctx, InputConfig{Message: message, Help: help})
		return text, text != "", err
	default:
		text, err := fl.driver.Input(ctx, InputConfig{Message: message, Default: value.String(el.Value()), Help: help})
		return text, text != "", err
	}
}

func optionLabels(opts []*element.Option) ([]string, []int) {
	labels := make([]string, len(opts))
	var selected []int
	for i, opt := range opts {
		label := opt.Label()
		if opt.Group() != "" {
			label = opt.Group() + " / " + label
		}
		labels[i] = label
		if opt.Selected() {
			selected = append(selected, i)
		}
	}
	return labels, selected
}

func title(el element.Element) string {
	label := el.Label()
	if label == "" {
		label = el.Name()
	}
	if el.Required() {
		label += " *"
	}
	return label
}
