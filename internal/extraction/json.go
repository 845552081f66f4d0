package extraction

import "strings"

// ExtractJSON returns the span from the first '{' to the last '}' in s,
// across newlines. ok is false when there is no such span.
//
// The span is returned byte-for-byte and is not validated; nested or
// trailing braces in surrounding prose are included.
func ExtractJSON(s string) (span string, ok bool) {
	start := strings.Index(s, "{")
	if start < 0 {
		return "", false
	}
	end := strings.LastIndex(s, "}")
	if end < start {
		return "", false
	}
	return s[start : end+1], true
}
