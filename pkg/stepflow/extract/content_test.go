package extract_test

import (
	"strings"
	"testing"

	"github.com/randalmurphal/stepflow/pkg/stepflow/extract"
	"github.com/stretchr/testify/assert"
)

// TestFormatContent verifies display formatting per content shape.
func TestFormatContent(t *testing.T) {
	tests := []struct {
		name   string
		event  map[string]any
		maxLen int
		want   string
	}{
		{"short string", map[string]any{"content": "hello"}, 100, "hello"},
		{"exactly at limit", map[string]any{"content": strings.Repeat("x", 100)}, 100, strings.Repeat("x", 100)},
		{"empty string", map[string]any{"content": ""}, 100, ""},
		{"object content", map[string]any{"content": map[string]any{"a": 1.0}}, 100, `{"a":1}`},
		{"array content", map[string]any{"content": []any{"a", "b"}}, 100, `["a","b"]`},
		{"null content", map[string]any{"content": nil}, 100, ""},
		{"missing content", map[string]any{"other": "x"}, 100, ""},
		{"number content", map[string]any{"content": 42.0}, 100, ""},
		{"bool content", map[string]any{"content": true}, 100, ""},
		{"nil event", nil, 100, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extract.FormatContent(tt.event, tt.maxLen)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestFormatContent_Truncation verifies the exact truncation shape:
// maxLen characters plus the three-character ellipsis.
func TestFormatContent_Truncation(t *testing.T) {
	got := extract.FormatContent(map[string]any{"content": strings.Repeat("A", 150)}, 100)

	assert.Len(t, got, 103)
	assert.Equal(t, strings.Repeat("A", 100)+"...", got)
}

// TestFormatContent_TruncatesObjects verifies structured content is
// encoded before truncation.
func TestFormatContent_TruncatesObjects(t *testing.T) {
	event := map[string]any{
		"content": map[string]any{"long": strings.Repeat("z", 200)},
	}

	got := extract.FormatContent(event, 50)
	assert.Len(t, got, 53)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.True(t, strings.HasPrefix(got, `{"long":"`))
}

// TestFormatContent_DefaultLimit verifies maxLen <= 0 falls back to 100.
func TestFormatContent_DefaultLimit(t *testing.T) {
	event := map[string]any{"content": strings.Repeat("b", 150)}

	got := extract.FormatContent(event, 0)
	assert.Len(t, got, extract.DefaultMaxContentLength+3)

	got = extract.FormatContent(event, -1)
	assert.Len(t, got, extract.DefaultMaxContentLength+3)
}

// TestFormatContent_NonASCII verifies truncation counts runes, not bytes.
func TestFormatContent_NonASCII(t *testing.T) {
	event := map[string]any{"content": strings.Repeat("é", 150)}

	got := extract.FormatContent(event, 100)
	assert.Equal(t, strings.Repeat("é", 100)+"...", got)
}
