package store

import (
	"encoding/json"
	"strconv"
	"strings"
)

// NoteKey holds the raw description text when it cannot be decoded into fields.
const NoteKey = "note"

// maxDetailLayers bounds how many JSON-string encodings are peeled off a description.
const maxDetailLayers = 8

// Detail decodes the alternative's description payload.
func (a Alternative) Detail() map[string]string {
	return DecodeDetail(a.Description)
}

// DecodeDetail turns an alternative description into a flat key/value record.
//
// Descriptions are written by the admin UI as a JSON object, sometimes encoded
// twice, and sometimes with a whole object stored under one field (historically
// "education"). Encoded layers are peeled while they still parse. Nested objects,
// encoded or not, are flattened one level as "parent.child". If any layer fails
// to decode, or the peeled value is not an object, the result is a single
// NoteKey entry holding raw unchanged.
func DecodeDetail(raw string) map[string]string {
	if strings.TrimSpace(raw) == "" {
		return map[string]string{}
	}

	obj, ok := peelObject(raw)
	if !ok {
		return map[string]string{NoteKey: raw}
	}

	out := make(map[string]string, len(obj))
	for k, val := range obj {
		if nested, ok := asObject(val); ok {
			for nk, nv := range nested {
				out[k+"."+nk] = formatDetailValue(nv)
			}
			continue
		}
		out[k] = formatDetailValue(val)
	}
	return out
}

// peelObject decodes text and then every JSON string layer inside it, up to
// maxDetailLayers, and reports whether the result is an object.
func peelObject(text string) (map[string]any, bool) {
	var v any
	for i := 0; i <= maxDetailLayers; i++ {
		if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &v); err != nil {
			return nil, false
		}
		s, ok := v.(string)
		if !ok {
			break
		}
		text = s
	}
	obj, ok := v.(map[string]any)
	return obj, ok
}

// asObject accepts either a decoded object or a string holding an object
// encoded one or more times.
func asObject(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case string:
		return peelObject(t)
	}
	return nil, false
}

func formatDetailValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			parts = append(parts, formatDetailValue(item))
		}
		return strings.Join(parts, ", ")
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
