package schemas

import (
	"fmt"
	"strings"
)

// FieldError describes one validation failure.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationResult aggregates every problem found in a candidate tool call.
// A call is never partially valid: any error rejects it wholesale.
type ValidationResult struct {
	Valid  bool         `json:"valid"`
	Errors []FieldError `json:"errors,omitempty"`
}

// Message summarizes all errors in a single line.
func (v *ValidationResult) Message() string {
	if v.Valid {
		return ""
	}
	parts := make([]string, 0, len(v.Errors))
	for _, e := range v.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field, e.Reason))
	}
	return strings.Join(parts, "; ")
}

// Validate checks the arguments against the definition. All missing-field and
// constraint errors are collected rather than short-circuited, so the caller
// sees every problem in one round trip.
func (d *Definition) Validate(args map[string]any) *ValidationResult {
	result := &ValidationResult{Valid: true}

	for _, f := range d.Fields {
		value, present := args[f.Name]

		if !present || isEmpty(value) {
			if f.Required {
				result.add(f.Name, "required field is missing or empty")
			}
			continue
		}

		if reason := f.check(value); reason != "" {
			result.add(f.Name, reason)
		}
	}

	return result
}

func (v *ValidationResult) add(field, reason string) {
	v.Valid = false
	v.Errors = append(v.Errors, FieldError{Field: field, Reason: reason})
}

// check validates a present value against the field's type and constraints.
func (f *FieldSpec) check(value any) string {
	switch f.Type {
	case FieldString:
		s, ok := value.(string)
		if !ok {
			return "must be a string"
		}
		if len(f.Enum) > 0 && !contains(f.Enum, s) {
			return fmt.Sprintf("must be one of: %s", strings.Join(f.Enum, ", "))
		}

	case FieldInteger:
		n, ok := asInt(value)
		if !ok {
			return "must be an integer"
		}
		if f.Min != nil && n < *f.Min {
			return fmt.Sprintf("must be at least %d", *f.Min)
		}
		if f.Max != nil && n > *f.Max {
			return fmt.Sprintf("must be at most %d", *f.Max)
		}

	case FieldArray:
		items, ok := asStrings(value)
		if !ok {
			return "must be an array of strings"
		}
		if len(items) < f.MinItems {
			return fmt.Sprintf("must have at least %d items", f.MinItems)
		}
	}

	return ""
}

// isEmpty reports whether a present value counts as missing.
func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	default:
		return false
	}
}

// asInt accepts native ints and the float64 values JSON decoding produces,
// rejecting fractional numbers.
func asInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}

// asStrings accepts []string and the []any values JSON decoding produces.
func asStrings(value any) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return v, true
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			items = append(items, s)
		}
		return items, true
	default:
		return nil, false
	}
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
