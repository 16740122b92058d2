package validator

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	playground "github.com/go-playground/validator/v10"
	"github.com/goliatone/go-formtree/pkg/submission"
	"github.com/goliatone/go-formtree/pkg/value"
)

// NotEmpty rejects values the loose emptiness check treats as blank.
func NotEmpty() Validator {
	return notEmpty{}
}

type notEmpty struct{}

func (notEmpty) Evaluate(v any) bool { return !value.Empty(v) }
func (notEmpty) Message() string     { return "This field is required." }

type comparison struct {
	limit   float64
	op      string
	message string
}

func (c comparison) Limit() float64 { return c.limit }
func (c comparison) Message() string {
	return c.message
}

func (c comparison) Evaluate(v any) bool {
	n, ok := magnitude(v)
	if !ok {
		return false
	}
	switch c.op {
	case "<":
		return n < c.limit
	case "<=":
		return n <= c.limit
	case ">":
		return n > c.limit
	case ">=":
		return n >= c.limit
	}
	return false
}

// magnitude resolves the number a threshold compares: numeric scalars as-is,
// collections by their length, uploads by byte size.
func magnitude(v any) (float64, bool) {
	switch t := v.(type) {
	case nil:
		return 0, true
	case submission.Upload:
		return float64(t.Size), true
	}
	if n, ok := value.Number(v); ok {
		return n, true
	}
	if value.IsCollection(v) {
		return float64(value.Len(v)), true
	}
	return 0, false
}

// LessThan requires the value to be strictly below limit.
func LessThan(limit float64) Threshold {
	return comparison{limit: limit, op: "<", message: fmt.Sprintf("The value must be less than %s.", formatNumber(limit))}
}

// LessThanEqual requires the value to be at most limit.
func LessThanEqual(limit float64) Threshold {
	return comparison{limit: limit, op: "<=", message: fmt.Sprintf("The value must be less than or equal to %s.", formatNumber(limit))}
}

// GreaterThan requires the value to be strictly above limit.
func GreaterThan(limit float64) Threshold {
	return comparison{limit: limit, op: ">", message: fmt.Sprintf("The value must be greater than %s.", formatNumber(limit))}
}

// GreaterThanEqual requires the value to be at least limit.
func GreaterThanEqual(limit float64) Threshold {
	return comparison{limit: limit, op: ">=", message: fmt.Sprintf("The value must be greater than or equal to %s.", formatNumber(limit))}
}

// MaxSize caps an upload's byte size. It is a Threshold so file controls
// compare the upload size against it.
func MaxSize(bytes int64) Threshold {
	return comparison{limit: float64(bytes), op: "<=", message: fmt.Sprintf("The file exceeds the maximum size of %s.", formatBytes(bytes))}
}

func formatNumber(f float64) string {
	return value.String(f)
}

func formatBytes(n int64) string {
	const unit = 1024
	switch {
	case n >= unit*unit && n%(unit*unit) == 0:
		return fmt.Sprintf("%dMB", n/(unit*unit))
	case n >= unit && n%unit == 0:
		return fmt.Sprintf("%dKB", n/unit)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}

// Length bounds the rune length of strings, or the size of collections. A
// zero max means unbounded.
func Length(min, max int) Validator {
	return length{min: min, max: max}
}

type length struct {
	min, max int
}

func (l length) Evaluate(v any) bool {
	var n int
	if value.IsCollection(v) {
		n = value.Len(v)
	} else {
		n = utf8.RuneCountInString(value.String(v))
	}
	if n < l.min {
		return false
	}
	return l.max <= 0 || n <= l.max
}

func (l length) Message() string {
	switch {
	case l.max <= 0:
		return fmt.Sprintf("The value must be at least %d characters long.", l.min)
	case l.min <= 0:
		return fmt.Sprintf("The value must be at most %d characters long.", l.max)
	default:
		return fmt.Sprintf("The value must be between %d and %d characters long.", l.min, l.max)
	}
}

// Regex requires the stringified value to match pattern. Empty values pass so
// the check composes with Required.
func Regex(pattern *regexp.Regexp) Validator {
	return regex{pattern: pattern}
}

type regex struct {
	pattern *regexp.Regexp
}

func (r regex) Evaluate(v any) bool {
	if r.pattern == nil || value.Empty(v) {
		return true
	}
	for _, item := range value.Strings(v) {
		if !r.pattern.MatchString(item) {
			return false
		}
	}
	return true
}

func (regex) Message() string { return "The value is not in the expected format." }

// InList requires every submitted member to be loosely equal to one of the
// allowed values.
func InList(allowed ...any) Validator {
	return inList{allowed: allowed}
}

type inList struct {
	allowed []any
}

func (l inList) Evaluate(v any) bool {
	if v == nil {
		return true
	}
	for _, item := range value.List(v) {
		if !value.Contains(l.allowed, item) {
			return false
		}
	}
	return true
}

func (inList) Message() string { return "The selected value is not allowed." }

var playgroundValidate = playground.New()

type tagged struct {
	tag     string
	message string
}

func (t tagged) Evaluate(v any) bool {
	if value.Empty(v) {
		return true
	}
	for _, item := range value.Strings(v) {
		if err := playgroundValidate.Var(item, t.tag); err != nil {
			return false
		}
	}
	return true
}

func (t tagged) Message() string { return t.message }

// Email requires a syntactically valid e-mail address.
func Email() Validator {
	return tagged{tag: "email", message: "The value must be a valid email address."}
}

// URL requires an absolute URL.
func URL() Validator {
	return tagged{tag: "url", message: "The value must be a valid URL."}
}

// Tag adapts any go-playground validation tag, e.g. "alphanum" or "hexcolor".
func Tag(tag, message string) Validator {
	if message == "" {
		message = fmt.Sprintf("The value failed the %q check.", tag)
	}
	return tagged{tag: tag, message: message}
}

// MimeType restricts uploads to the listed media types. Entries may use a
// wildcard subtype ("image/*") or a bare extension ("pdf").
func MimeType(allowed ...string) Validator {
	normalized := make([]string, 0, len(allowed))
	for _, item := range allowed {
		item = strings.ToLower(strings.TrimSpace(item))
		if item != "" {
			normalized = append(normalized, item)
		}
	}
	return mimeType{allowed: normalized}
}

type mimeType struct {
	allowed []string
}

func (m mimeType) Evaluate(v any) bool {
	if len(m.allowed) == 0 {
		return true
	}
	switch t := v.(type) {
	case nil:
		return true
	case submission.Upload:
		return m.matches(strings.ToLower(t.MimeType), t.Extension())
	case string:
		if t == "" {
			return true
		}
		return m.matches(strings.ToLower(t), "")
	}
	return false
}

func (m mimeType) matches(mime, ext string) bool {
	for _, allowed := range m.allowed {
		switch {
		case allowed == mime:
			return true
		case strings.HasSuffix(allowed, "/*") && strings.HasPrefix(mime, strings.TrimSuffix(allowed, "*")):
			return true
		case !strings.Contains(allowed, "/") && ext != "" && allowed == ext:
			return true
		}
	}
	return false
}

func (m mimeType) Message() string {
	return fmt.Sprintf("The file type is not allowed. Allowed types: %s.", strings.Join(m.allowed, ", "))
}
