package entity

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Profile is an educator profile record. Every field is optional and readers
// apply their own fallback; unknown fields are carried through untouched.
type Profile map[string]any

// Editable profile fields, in form order.
const (
	FieldName       = "name"
	FieldEmail      = "email"
	FieldRole       = "role"
	FieldDepartment = "department"
	FieldPhone      = "phone"
	FieldBio        = "bio"

	FieldStats       = "stats"
	FieldPreferences = "preferences"
	FieldLastLogin   = "last_login"
	FieldJoinedDate  = "joined_date"
	FieldEducatorID  = "educator_id"
)

// EditableFields lists the fields an educator may change from the portal.
var EditableFields = []string{FieldName, FieldEmail, FieldRole, FieldDepartment, FieldPhone, FieldBio}

// ProfileFromEnvelope extracts the record from an API body: "profile" first,
// then "data", then the body itself.
func ProfileFromEnvelope(body map[string]any) Profile {
	for _, key := range []string{"profile", "data"} {
		if nested, ok := body[key].(map[string]any); ok {
			return Profile(nested)
		}
	}
	return Profile(body)
}

// Text returns the field as display text, or fallback when it is missing or empty.
func (p Profile) Text(key, fallback string) string {
	if s := stringify(p[key]); s != "" {
		return s
	}
	return fallback
}

// Stat reads a counter from the stats sub-mapping; missing or non-numeric is 0.
func (p Profile) Stat(key string) int64 {
	stats, _ := p[FieldStats].(map[string]any)
	return toInt64(stats[key])
}

// Preference reads a value from the preferences sub-mapping.
func (p Profile) Preference(key string) (any, bool) {
	prefs, _ := p[FieldPreferences].(map[string]any)
	v, ok := prefs[key]
	return v, ok
}

// PreferenceEnabled reports whether a boolean preference is set.
func (p Profile) PreferenceEnabled(key string) bool {
	v, _ := p.Preference(key)
	b, _ := v.(bool)
	return b
}

// Time parses a timestamp field, or returns fallback when missing or unparseable.
func (p Profile) Time(key string, fallback time.Time) time.Time {
	switch v := p[key].(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
			if t, err := time.Parse(layout, v); err == nil {
				return t
			}
		}
	case float64:
		return time.UnixMilli(int64(v)).UTC()
	case int64:
		return time.UnixMilli(v).UTC()
	}
	return fallback
}

// Merge returns a copy of p with fields laid over it.
func (p Profile) Merge(fields Profile) Profile {
	out := p.Clone()
	if out == nil {
		out = Profile{}
	}
	for k, v := range fields {
		out[k] = cloneValue(v)
	}
	return out
}

// Clone deep-copies nested maps and slices.
func (p Profile) Clone() Profile {
	if p == nil {
		return nil
	}
	out := make(Profile, len(p))
	for k, v := range p {
		out[k] = cloneValue(v)
	}
	return out
}

// Editable returns only the editable fields present in p.
func (p Profile) Editable() Profile {
	out := Profile{}
	for _, k := range EditableFields {
		if v, ok := p[k]; ok {
			out[k] = v
		}
	}
	return out
}

// MarshalIndent serializes p as pretty-printed JSON.
func (p Profile) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(map[string]any(p), "", "  ")
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(x))
		for k, vv := range x {
			m[k] = cloneValue(vv)
		}
		return m
	case Profile:
		return map[string]any(x.Clone())
	case []any:
		s := make([]any, len(x))
		for i, vv := range x {
			s[i] = cloneValue(vv)
		}
		return s
	default:
		return v
	}
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		if !x {
			return ""
		}
		return "true"
	case float64:
		if x == 0 {
			return ""
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int, int32, int64:
		s := fmt.Sprintf("%d", x)
		if s == "0" {
			return ""
		}
		return s
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", x))
	}
}

func toInt64(v any) int64 {
	switch x := v.(type) {
	case float64:
		return int64(x)
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	case json.Number:
		n, _ := x.Int64()
		return n
	case string:
		n, _ := strconv.ParseInt(x, 10, 64)
		return n
	}
	return 0
}
