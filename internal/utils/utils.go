package utils

import "strings"

// TruncateForLog turns s into a single-line preview of at most limit runes,
// appending an ellipsis when truncated. Runs of whitespace become one space.
func TruncateForLog(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
