package quizgen

import "strings"

// ExtractJSON cuts the outermost {...} span out of raw text. Generators
// that ignore the "JSON only" instruction tend to wrap the payload in
// prose or markdown fences; the span between the first '{' and the last
// '}' is what gets parsed.
//
// This is a deliberate heuristic, kept in one place so a stricter
// approach (structured output mode, fenced-block parsing) can replace it
// without touching the consistency checks. Multiple candidate spans are
// not disambiguated; the first match wins.
func ExtractJSON(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	if start < 0 {
		return "", false
	}
	end := strings.LastIndex(raw, "}")
	if end < start {
		return "", false
	}
	return raw[start : end+1], true
}
