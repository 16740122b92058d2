package validator

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/cast"
)

// Builder constructs a validator from configuration parameters.
type Builder func(params map[string]any) (Validator, error)

// ErrUnknownValidator is returned when a name has no registered builder.
var ErrUnknownValidator = errors.New("validator: unknown validator")

var (
	buildersMu sync.RWMutex
	builders   = map[string]Builder{
		"required":           func(map[string]any) (Validator, error) { return NotEmpty(), nil },
		"not_empty":          func(map[string]any) (Validator, error) { return NotEmpty(), nil },
		"less_than":          thresholdBuilder(LessThan),
		"less_than_equal":    thresholdBuilder(LessThanEqual),
		"greater_than":       thresholdBuilder(GreaterThan),
		"greater_than_equal": thresholdBuilder(GreaterThanEqual),
		"length":             buildLength,
		"min_length":         buildLength,
		"max_length":         buildLength,
		"regex":              buildRegex,
		"in":                 buildInList,
		"email":              func(map[string]any) (Validator, error) { return Email(), nil },
		"url":                func(map[string]any) (Validator, error) { return URL(), nil },
		"tag":                buildTag,
		"max_size":           buildMaxSize,
		"mime_type":          buildMimeType,
	}
)

// Register adds or replaces a named builder.
func Register(name string, builder Builder) error {
	name = normalizeName(name)
	if name == "" {
		return errors.New("validator: name is required")
	}
	if builder == nil {
		return fmt.Errorf("validator: builder for %q is nil", name)
	}
	buildersMu.Lock()
	builders[name] = builder
	buildersMu.Unlock()
	return nil
}

// Names lists registered builders in sorted order.
func Names() []string {
	buildersMu.RLock()
	defer buildersMu.RUnlock()
	out := make([]string, 0, len(builders))
	for name := range builders {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Build constructs the named validator. A "message" parameter overrides the
// default failure message.
func Build(name string, params map[string]any) (Validator, error) {
	key := normalizeName(name)
	buildersMu.RLock()
	builder, ok := builders[key]
	buildersMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownValidator, name)
	}
	if params == nil {
		params = map[string]any{}
	}
	if _, set := params["__name"]; !set {
		params = withName(params, key)
	}
	v, err := builder(params)
	if err != nil {
		return nil, fmt.Errorf("validator: build %q: %w", name, err)
	}
	return WithMessage(v, cast.ToString(params["message"])), nil
}

// BuildSpec constructs a validator from a {name: ..., ...params} mapping.
func BuildSpec(spec map[string]any) (Validator, error) {
	name := cast.ToString(spec["name"])
	if name == "" {
		return nil, errors.New("validator: spec is missing name")
	}
	params := make(map[string]any, len(spec))
	for key, val := range spec {
		if key != "name" {
			params[key] = val
		}
	}
	return Build(name, params)
}

func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer("-", "_", " ", "_").Replace(name)
}

func withName(params map[string]any, name string) map[string]any {
	out := make(map[string]any, len(params)+1)
	for key, val := range params {
		out[key] = val
	}
	out["__name"] = name
	return out
}

func thresholdBuilder(ctor func(float64) Threshold) Builder {
	return func(params map[string]any) (Validator, error) {
		raw, ok := params["value"]
		if !ok {
			return nil, errors.New("missing value")
		}
		limit, err := cast.ToFloat64E(raw)
		if err != nil {
			return nil, fmt.Errorf("value: %w", err)
		}
		return ctor(limit), nil
	}
}

func buildLength(params map[string]any) (Validator, error) {
	min := cast.ToInt(params["min"])
	max := cast.ToInt(params["max"])
	if v, ok := params["value"]; ok {
		switch params["__name"] {
		case "min_length":
			min = cast.ToInt(v)
		case "max_length":
			max = cast.ToInt(v)
		}
	}
	if min < 0 || max < 0 || (max > 0 && min > max) {
		return nil, fmt.Errorf("invalid bounds %d..%d", min, max)
	}
	return Length(min, max), nil
}

func buildRegex(params map[string]any) (Validator, error) {
	pattern := cast.ToString(params["pattern"])
	if pattern == "" {
		pattern = cast.ToString(params["value"])
	}
	if pattern == "" {
		return nil, errors.New("missing pattern")
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return Regex(re), nil
}

func buildInList(params map[string]any) (Validator, error) {
	raw, ok := params["values"]
	if !ok {
		raw = params["value"]
	}
	allowed, err := cast.ToSliceE(raw)
	if err != nil {
		return nil, fmt.Errorf("values: %w", err)
	}
	return InList(allowed...), nil
}

func buildTag(params map[string]any) (Validator, error) {
	tag := cast.ToString(params["value"])
	if tag == "" {
		return nil, errors.New("missing tag")
	}
	return Tag(tag, ""), nil
}

func buildMaxSize(params map[string]any) (Validator, error) {
	size, err := cast.ToInt64E(params["value"])
	if err != nil || size <= 0 {
		return nil, fmt.Errorf("invalid size %v", params["value"])
	}
	return MaxSize(size), nil
}

func buildMimeType(params map[string]any) (Validator, error) {
	raw, ok := params["values"]
	if !ok {
		raw = params["value"]
	}
	if s, isString := raw.(string); isString {
		return MimeType(strings.Split(s, ",")...), nil
	}
	allowed, err := cast.ToStringSliceE(raw)
	if err != nil {
		return nil, fmt.Errorf("values: %w", err)
	}
	return MimeType(allowed...), nil
}
