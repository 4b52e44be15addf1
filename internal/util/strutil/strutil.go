// Package strutil has small string helpers shared across the CLI and
// display code.
package strutil

import "strings"

// Truncate shortens s to maxLen runes, appending "..." when it cuts.
// maxLen values below 4 return the bare cut without the ellipsis.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 4 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// Sanitize trims s and collapses internal whitespace runs to single
// spaces, matching how form inputs are cleaned before submission.
func Sanitize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
