package view

import (
	"fmt"
	"strconv"
	"time"
)

// Str formats a decoded JSON value for display.
func Str(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Num formats a decoded JSON number, "-" when absent.
func Num(v any) string {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case nil:
		return "-"
	}
	return fmt.Sprint(v)
}

// Fixed formats a decoded JSON number with one decimal.
func Fixed(v any) string {
	if x, ok := v.(float64); ok {
		return strconv.FormatFloat(x, 'f', 1, 64)
	}
	return Num(v)
}

// When formats an RFC 3339 timestamp as a short date and time.
func When(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return s
	}
	return t.Format("Jan 2 15:04")
}

// Strings returns the string elements of a decoded JSON array.
func Strings(v any) []string {
	items, _ := v.([]any)
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
