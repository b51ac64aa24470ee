package inference

import "strings"

// StripCodeFences removes markdown code fences and surrounding prose from a
// model response so the embedded JSON object can be decoded. Models asked
// for "only JSON" still occasionally wrap the object in ```json fences or
// lead-in text.
func StripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		return strings.TrimSpace(s)
	}

	// Fall back to the outermost braces when the object is embedded in prose.
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}
