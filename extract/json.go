package extract

import (
	"strings"

	"github.com/skosovsky/geminikit/internal/jsonx"
)

// EmbeddedJSON recovers the JSON object in a model reply. Markdown fence
// markers around the object are stripped first; when the remainder is not an
// object, the span from the first "{" to the last "}" is tried. On failure it
// returns an empty map and false.
func EmbeddedJSON(text string) (map[string]any, bool) {
	body := stripFence(text)
	if obj, ok := decodeObject(body); ok {
		return obj, true
	}
	start, end := strings.IndexByte(body, '{'), strings.LastIndexByte(body, '}')
	if start >= 0 && end > start {
		if obj, ok := decodeObject(body[start : end+1]); ok {
			return obj, true
		}
	}
	return map[string]any{}, false
}

func stripFence(text string) string {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimLeft(s, "`")
		if len(s) >= 4 && strings.EqualFold(s[:4], "json") {
			s = s[4:]
		}
	}
	s = strings.TrimRight(strings.TrimSpace(s), "`")
	return strings.TrimSpace(s)
}

func decodeObject(s string) (map[string]any, bool) {
	var obj map[string]any
	if err := jsonx.Unmarshal([]byte(s), &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}
