package form

import (
	"sort"
	"strconv"
	"strings"
)

type errorRecorder interface {
	AddError(msg string)
}

var formLevelKeys = map[string]struct{}{
	"":       {},
	"_":      {},
	"_form":  {},
	"form":   {},
	"global": {},
	"#":      {},
	"/":      {},
}

var wrapperSegments = map[string]struct{}{
	"body":       {},
	"request":    {},
	"payload":    {},
	"data":       {},
	"attributes": {},
}

// ApplyErrors attaches errors reported by a backend to the matching fields.
// Keys may be plain field names, dotted paths or JSON pointers such as
// "/data/email" or "#/topics/0". Messages whose key matches no field are
// returned as form-level errors, trimmed and deduplicated in order.
func (f *Form) ApplyErrors(payload map[string][]string) []string {
	if len(payload) == 0 {
		return nil
	}
	index := make(map[string]string)
	for _, el := range f.Fields() {
		index[stripMarker(el.Name())] = el.Name()
	}

	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var formLevel []string
	for _, key := range keys {
		messages := normalizeMessages(payload[key])
		if len(messages) == 0 {
			continue
		}
		name, ok := matchErrorPath(key, index)
		if !ok {
			formLevel = append(formLevel, messages...)
			continue
		}
		target, ok := f.Field(name).(errorRecorder)
		if !ok {
			formLevel = append(formLevel, messages...)
			continue
		}
		for _, msg := range messages {
			target.AddError(msg)
		}
	}
	return normalizeMessages(formLevel)
}

func matchErrorPath(raw string, index map[string]string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if _, ok := formLevelKeys[strings.ToLower(trimmed)]; ok {
		return "", false
	}
	if name, ok := index[stripMarker(trimmed)]; ok {
		return name, true
	}
	segments := pathSegments(trimmed)
	for len(segments) > 0 {
		if _, ok := wrapperSegments[strings.ToLower(segments[0])]; !ok {
			break
		}
		segments = segments[1:]
	}
	segments = dropIndexes(segments)
	// Longest dotted prefix wins so "address.city" beats "address".
	for n := len(segments); n > 0; n-- {
		if name, ok := index[strings.Join(segments[:n], ".")]; ok {
			return name, true
		}
	}
	return "", false
}

func pathSegments(path string) []string {
	clean := strings.TrimLeft(path, "#$/.")
	clean = strings.NewReplacer("[", ".", "]", "").Replace(clean)
	parts := strings.FieldsFunc(clean, func(r rune) bool { return r == '.' || r == '/' })
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		part = strings.ReplaceAll(part, "~1", "/")
		out = append(out, strings.ReplaceAll(part, "~0", "~"))
	}
	return out
}

func dropIndexes(segments []string) []string {
	out := segments[:0:0]
	for _, seg := range segments {
		if _, err := strconv.Atoi(seg); err == nil {
			continue
		}
		out = append(out, seg)
	}
	return out
}

func normalizeMessages(messages []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(messages))
	for _, msg := range messages {
		msg = strings.TrimSpace(msg)
		if msg == "" {
			continue
		}
		if _, dup := seen[msg]; dup {
			continue
		}
		seen[msg] = struct{}{}
		out = append(out, msg)
	}
	return out
}
