package extract

import "encoding/json"

// DefaultMaxContentLength is the display truncation bound applied when
// FormatContent is called with maxLen <= 0.
const DefaultMaxContentLength = 100

// FormatContent renders an event's content field for display.
//
// String content is returned as-is when it fits, otherwise truncated to
// exactly maxLen runes with "..." appended. Object and array content is
// JSON-encoded first and truncated the same way. Absent, null, and
// other primitive content (numbers, booleans) render as the empty
// string.
func FormatContent(event map[string]any, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultMaxContentLength
	}
	if event == nil {
		return ""
	}

	switch content := event["content"].(type) {
	case string:
		return truncate(content, maxLen)
	case map[string]any:
		return truncate(marshalContent(content), maxLen)
	case []any:
		return truncate(marshalContent(content), maxLen)
	default:
		return ""
	}
}

// marshalContent JSON-encodes structured content, best effort.
func marshalContent(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

// truncate bounds s to maxLen runes plus a literal "..." suffix.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
