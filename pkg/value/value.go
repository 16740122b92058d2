// Package value holds the coercive comparison helpers shared by controls,
// filters, and validators. Submitted form data arrives as strings while
// configured option values may be numbers or booleans, so selection state is
// matched with loose equality: numeric strings compare numerically against
// numbers ("2" == 2, "1.0" == "1"), booleans compare by truthiness, and nil
// equals "" and false. Non-numeric strings only equal identical strings.
package value

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

var numericPattern = regexp.MustCompile(`^\s*[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?\s*$`)

// Equal reports whether a and b are loosely equal.
func Equal(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if ab, ok := a.(bool); ok {
		return ab == Truthy(b)
	}
	if bb, ok := b.(bool); ok {
		return bb == Truthy(a)
	}
	if a == nil {
		return nilEqual(b)
	}
	if b == nil {
		return nilEqual(a)
	}

	an, aNum := Number(a)
	bn, bNum := Number(b)
	if aNum && bNum {
		return an == bn
	}

	as, aScalar := scalarString(a)
	bs, bScalar := scalarString(b)
	if aScalar && bScalar {
		return as == bs
	}
	return reflect.DeepEqual(a, b)
}

func nilEqual(v any) bool {
	switch t := v.(type) {
	case string:
		return t == ""
	default:
		if n, ok := Number(v); ok {
			return n == 0
		}
		return Len(v) == 0 && isCollection(v)
	}
}

// Number converts numeric kinds and numeric strings to float64.
func Number(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	case string:
		if !IsNumeric(t) {
			return 0, false
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// IsNumeric reports whether s is a plain decimal number, optionally signed
// and with an exponent. Hex, NaN and Inf spellings are not numeric.
func IsNumeric(s string) bool {
	return numericPattern.MatchString(s)
}

func scalarString(v any) (string, bool) {
	if isCollection(v) {
		return "", false
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", false
	}
	return s, true
}

// String stringifies scalars. Nil becomes the empty string.
func String(v any) string {
	if v == nil {
		return ""
	}
	return cast.ToString(v)
}

// Empty mirrors the loose notion of "nothing submitted": nil, "", "0", zero
// numbers, false, and empty collections.
func Empty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == "" || t == "0"
	case bool:
		return !t
	}
	if n, ok := Number(v); ok {
		return n == 0
	}
	if isCollection(v) {
		return Len(v) == 0
	}
	return false
}

// Truthy is the inverse of Empty.
func Truthy(v any) bool {
	return !Empty(v)
}

// Len returns the length of slices, arrays and maps, and 0 otherwise.
func Len(v any) int {
	if v == nil {
		return 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len()
	default:
		return 0
	}
}

// IsCollection reports whether v is a slice or array (byte slices excluded).
func IsCollection(v any) bool {
	return isCollection(v)
}

func isCollection(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := v.([]byte); ok {
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return true
	default:
		return false
	}
}

// List wraps a scalar in a one element list and normalises slices into []any.
// Nil yields an empty list.
func List(v any) []any {
	switch t := v.(type) {
	case nil:
		return []any{}
	case []any:
		return append([]any{}, t...)
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out
	}
	if !isCollection(v) {
		return []any{v}
	}
	rv := reflect.ValueOf(v)
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// Strings stringifies every member of List(v).
func Strings(v any) []string {
	items := List(v)
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = String(item)
	}
	return out
}

// Contains reports whether any member of list is loosely equal to v.
func Contains(list []any, v any) bool {
	for _, item := range list {
		if Equal(item, v) {
			return true
		}
	}
	return false
}
