package form

import (
	"errors"

	"github.com/tidwall/gjson"
)

// ErrInvalidJSON is returned when a submission body is not a JSON object.
var ErrInvalidJSON = errors.New("form: submission is not a JSON object")

// ValuesFromJSON decodes a JSON object submission into the map accepted by
// SetFieldValues. Numbers decode as float64, arrays as []any, and null keys
// count as absent.
func ValuesFromJSON(data []byte) (map[string]any, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	parsed := gjson.ParseBytes(data)
	if !parsed.IsObject() {
		return nil, ErrInvalidJSON
	}
	out := map[string]any{}
	parsed.ForEach(func(key, val gjson.Result) bool {
		if val.Type == gjson.Null {
			return true
		}
		out[key.String()] = val.Value()
		return true
	})
	return out, nil
}

// BindJSON binds a JSON object submission. Only the path selected by root is
// bound when root is non-empty, e.g. "data.attributes".
func (f *Form) BindJSON(data []byte, root string) error {
	if root != "" {
		if !gjson.ValidBytes(data) {
			return ErrInvalidJSON
		}
		data = []byte(gjson.GetBytes(data, root).Raw)
	}
	values, err := ValuesFromJSON(data)
	if err != nil {
		return err
	}
	f.SetFieldValues(values)
	return nil
}
