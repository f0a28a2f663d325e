package email

import (
	"regexp"
	"strings"
)

var addressRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

// ValidAddress reports whether s looks like a single email address.
func ValidAddress(s string) bool {
	return addressRe.MatchString(s) && !strings.ContainsAny(s, " \t\n")
}

// ExtractAddresses returns all email addresses found in text, in order.
func ExtractAddresses(text string) []string {
	return addressRe.FindAllString(text, -1)
}

// Sanitize strips markup-significant characters and truncates long input.
func Sanitize(text string, maxLength int) string {
	if text == "" {
		return ""
	}

	cleaned := strings.NewReplacer("<", "", ">", "", `"`, "", "'", "").Replace(text)
	cleaned = strings.TrimSpace(cleaned)

	if maxLength > 0 && len(cleaned) > maxLength {
		cleaned = cleaned[:maxLength] + "..."
	}

	return cleaned
}
