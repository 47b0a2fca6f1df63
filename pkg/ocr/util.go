package ocr

import "strings"

// snippet returns a shortened single-line version of text for logging.
func snippet(s string, max int) string {
	s = strings.Join(strings.Fields(strings.ReplaceAll(s, "\n", " ")), " ")
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
