package article

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Loose coercion helpers for raw model output. Anything that cannot be
// coerced degrades to the zero value instead of failing the caller.

func stringFromAny(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == math.Trunc(t) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", t))
	}
}

func intFromAny(v any) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case int:
		return t
	case int64:
		return int(t)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n
		}
	}
	return 0
}

func mapFromAny(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return nil
}

func sliceFromAny(v any) []any {
	if s, ok := v.([]any); ok {
		return s
	}
	return nil
}

// stringSliceFromAny drops elements that do not coerce to a non-empty string.
func stringSliceFromAny(v any) []string {
	out := []string{}
	for _, e := range sliceFromAny(v) {
		if s := stringFromAny(e); s != "" {
			out = append(out, s)
		}
	}
	return out
}
