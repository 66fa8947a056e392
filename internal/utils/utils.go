package utils

import "strings"

// Ellipsis is appended to text shortened by Truncate and TruncateForLog.
const Ellipsis = "..."

// TruncateForLog shortens the provided string to the specified limit, appending an ellipsis when truncated.
func TruncateForLog(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	return Truncate(s, limit)
}

// Truncate keeps the first limit runes of s and appends Ellipsis when anything was cut.
// Text that already fits is returned verbatim.
func Truncate(s string, limit int) string {
	if limit < 0 {
		limit = 0
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + Ellipsis
}
