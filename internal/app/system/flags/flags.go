// Package flags normalizes the loosely typed boolean flags the civic API
// returns. The backend encodes the same flag as true, 1, "1", "true", or
// even a JSON-stringified object depending on the code path that wrote
// it, so every read goes through one of these functions instead of
// sniffing shapes at the call site.
//
// Normalization never fails: anything that cannot be parsed is false.
package flags

import (
	"encoding/json"
	"strconv"
	"strings"
)

// True reports whether v is one of the accepted truthy encodings:
// bool true, any non-zero number (including json.Number and the float64
// that encoding/json produces), or the strings "1" and "true" (case and
// whitespace insensitive). Everything else, including nil and malformed
// input, is false.
func True(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	case string:
		return truthyString(t)
	case json.RawMessage:
		return RawTrue(t)
	case []byte:
		return RawTrue(t)
	default:
		return false
	}
}

// RawTrue normalizes a raw JSON value (as captured with json.RawMessage)
// into a boolean. It accepts the same encodings as True, with quoted
// forms ("1", "true") unwrapped first.
func RawTrue(raw []byte) bool {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return false
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		// Not valid JSON; fall back to treating the bytes as a bare
		// string ("1", "true").
		return truthyString(s)
	}

	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return truthyString(t)
	default:
		return false
	}
}

// BenefitsEnabled decides whether the "My Benefits" feature is switched
// on for a profile. The flag has been observed as a bool, a number, a
// string, a JSON object {"my_benefits": true}, and a JSON-stringified
// copy of that object. Inability to parse means disabled, never an
// error.
func BenefitsEnabled(raw []byte) bool {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return false
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return truthyString(s)
	}
	return benefitsValue(v)
}

func benefitsValue(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		// Could be a plain truthy string or a JSON-stringified object.
		if truthyString(t) {
			return true
		}
		var inner any
		if err := json.Unmarshal([]byte(t), &inner); err != nil {
			return false
		}
		// Guard against pathological nesting of stringified strings.
		if _, again := inner.(string); again {
			return false
		}
		return benefitsValue(inner)
	case map[string]any:
		for _, key := range []string{"my_benefits", "my_benefits_enabled", "enabled"} {
			if inner, ok := t[key]; ok {
				return benefitsValue(inner)
			}
		}
		return false
	default:
		return false
	}
}

func truthyString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "true" {
		return true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f != 0
	}
	return false
}
