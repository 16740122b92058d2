// Package validator defines the capability every control validates against
// plus a small catalogue of built-in checks. Elements hold an ordered list of
// Rules; a Rule wraps either a Validator (predicate + message) or a Func
// callable whose non-nil error becomes the message.
package validator

import (
	"errors"
	"fmt"
)

// Validator evaluates a control's logical value and exposes the message shown
// when evaluation fails.
type Validator interface {
	Evaluate(value any) bool
	Message() string
}

// Threshold marks numeric comparison validators. Controls whose logical value
// has a natural magnitude (upload size, number of tags) feed that magnitude to
// Threshold validators instead of the raw value.
type Threshold interface {
	Validator
	Limit() float64
}

// Func is the callable validator form. A nil return passes; the error text is
// recorded otherwise.
type Func func(value any) error

// Rule is one entry in an element's validator chain.
type Rule struct {
	validator Validator
	fn        Func
}

// FromValidator wraps a Validator.
func FromValidator(v Validator) Rule {
	return Rule{validator: v}
}

// FromFunc wraps a callable.
func FromFunc(fn Func) Rule {
	return Rule{fn: fn}
}

// Valid reports whether the rule wraps anything.
func (r Rule) Valid() bool {
	return r.validator != nil || r.fn != nil
}

// Validator returns the wrapped Validator when the rule is not a callable.
func (r Rule) Validator() (Validator, bool) {
	return r.validator, r.validator != nil
}

// IsThreshold reports whether the rule wraps a Threshold validator.
func (r Rule) IsThreshold() bool {
	_, ok := r.validator.(Threshold)
	return ok
}

// Apply evaluates the rule, returning the failure message and true when the
// value is rejected.
func (r Rule) Apply(value any) (string, bool) {
	switch {
	case r.validator != nil:
		if r.validator.Evaluate(value) {
			return "", false
		}
		return r.validator.Message(), true
	case r.fn != nil:
		if err := r.fn(value); err != nil {
			return err.Error(), true
		}
		return "", false
	default:
		return "", false
	}
}

// ErrUnsupportedRule is returned by Rules for entries that are neither a
// Validator nor a callable.
var ErrUnsupportedRule = errors.New("validator: unsupported rule")

// Rules normalises the loose shapes accepted in field configuration into an
// ordered rule list: a Validator, a Rule, a Func or plain func(any) error, a
// func(any) string returning a message, a validator name, a {name: ...} spec
// map, or any slice of those.
func Rules(raw any) ([]Rule, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case Rule:
		return []Rule{v}, nil
	case []Rule:
		return append([]Rule(nil), v...), nil
	case Validator:
		return []Rule{FromValidator(v)}, nil
	case []Validator:
		out := make([]Rule, 0, len(v))
		for _, item := range v {
			out = append(out, FromValidator(item))
		}
		return out, nil
	case Func:
		return []Rule{FromFunc(v)}, nil
	case func(any) error:
		return []Rule{FromFunc(v)}, nil
	case func(any) string:
		return []Rule{FromFunc(func(value any) error {
			if msg := v(value); msg != "" {
				return errors.New(msg)
			}
			return nil
		})}, nil
	case string:
		built, err := Build(v, nil)
		if err != nil {
			return nil, err
		}
		return []Rule{FromValidator(built)}, nil
	case map[string]any:
		built, err := BuildSpec(v)
		if err != nil {
			return nil, err
		}
		return []Rule{FromValidator(built)}, nil
	case []any:
		var out []Rule
		for idx, item := range v {
			rules, err := Rules(item)
			if err != nil {
				return nil, fmt.Errorf("validator: entry %d: %w", idx, err)
			}
			out = append(out, rules...)
		}
		return out, nil
	case []map[string]any:
		var out []Rule
		for idx, item := range v {
			built, err := BuildSpec(item)
			if err != nil {
				return nil, fmt.Errorf("validator: entry %d: %w", idx, err)
			}
			out = append(out, FromValidator(built))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedRule, raw)
	}
}

type withMessage struct {
	Validator
	message string
}

func (w withMessage) Message() string {
	return w.message
}

type thresholdWithMessage struct {
	Threshold
	message string
}

func (w thresholdWithMessage) Message() string {
	return w.message
}

// WithMessage overrides the failure message of v, keeping its Threshold
// capability when present.
func WithMessage(v Validator, message string) Validator {
	if v == nil || message == "" {
		return v
	}
	if t, ok := v.(Threshold); ok {
		return thresholdWithMessage{Threshold: t, message: message}
	}
	return withMessage{Validator: v, message: message}
}
