package fields

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingType is reported when a record has no type.
	ErrMissingType = errors.New("fields: field type was not set")
	// ErrUnknownType is reported when no constructor matches the type.
	ErrUnknownType = errors.New("fields: unknown field type")
)

// ConfigurationError describes a field record that cannot be turned into a
// control. It wraps ErrMissingType, ErrUnknownType, or the decoding error.
type ConfigurationError struct {
	Field string
	Type  string
	Err   error
}

func (e *ConfigurationError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("fields: configure %q: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("fields: configure %q (type %q): %v", e.Field, e.Type, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }
