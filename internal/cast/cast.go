// Package cast converts the loosely typed values found in decoded JSON and YAML
// documents (map[string]any trees) into the concrete types of the settings model.
package cast

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// IsBlank reports whether v carries no value: nil, a whitespace-only string,
// or an empty slice or map.
func IsBlank(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	case []any:
		return len(x) == 0
	case []string:
		return len(x) == 0
	case map[string]any:
		return len(x) == 0
	default:
		return false
	}
}

// ToString returns v as a trimmed string. Numbers and booleans are formatted;
// other types are rejected.
func ToString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x), true
	case json.Number:
		return x.String(), true
	case bool:
		return strconv.FormatBool(x), true
	}
	if f, ok := ToFloat64(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64), true
	}
	return "", false
}

// ToFloat64 converts a numeric value, a json.Number or a numeric string to float64.
// NaN and infinities are rejected.
func ToFloat64(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case int32:
		f = float64(x)
	case uint:
		f = float64(x)
	case uint32:
		f = float64(x)
	case uint64:
		f = float64(x)
	case json.Number:
		parsed, err := x.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ToInt64 converts v to int64. Floats must be integral; values beyond the int64
// range are clamped.
func ToInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case int32:
		return int64(x), true
	case uint:
		if uint64(x) > math.MaxInt64 {
			return math.MaxInt64, true
		}
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint64:
		if x > math.MaxInt64 {
			return math.MaxInt64, true
		}
		return int64(x), true
	}
	f, ok := ToFloat64(v)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	switch {
	case f >= math.MaxInt64:
		return math.MaxInt64, true
	case f <= math.MinInt64:
		return math.MinInt64, true
	}
	return int64(f), true
}

// ToStringSlice converts v to []string. Accepts []string, or []any where each
// element is a string.
func ToStringSlice(v any) ([]string, bool) {
	if ss, ok := v.([]string); ok {
		return ss, true
	}
	slice, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(slice))
	for _, e := range slice {
		s, ok := e.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// ToMapSlice converts v to []map[string]any. Accepts []map[string]any, or []any
// where each element is a map[string]any.
func ToMapSlice(v any) ([]map[string]any, bool) {
	if ms, ok := v.([]map[string]any); ok {
		return ms, true
	}
	slice, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]map[string]any, 0, len(slice))
	for _, e := range slice {
		m, ok := e.(map[string]any)
		if !ok {
			return nil, false
		}
		out = append(out, m)
	}
	return out, true
}
