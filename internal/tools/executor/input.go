package executor

import "time"

// Date and time layouts accepted by the meeting and task handlers.
const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

func stringArg(input map[string]any, key string) string {
	s, _ := input[key].(string)
	return s
}

func intArg(input map[string]any, key string) (int, bool) {
	switch v := input[key].(type) {
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

func stringsArg(input map[string]any, key string) []string {
	switch v := input[key].(type) {
	case []string:
		return v
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				items = append(items, s)
			}
		}
		return items
	default:
		return nil
	}
}

// validDate reports whether s is a parseable YYYY-MM-DD date.
func validDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// validTime reports whether s is a parseable HH:MM time.
func validTime(s string) bool {
	_, err := time.Parse(timeLayout, s)
	return err == nil
}

func oneOf(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
