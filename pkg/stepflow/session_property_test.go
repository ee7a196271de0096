package stepflow

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// With dedup enabled, history length equals the number of distinct
// event ids regardless of delivery order or repetition.
func TestProperty_DedupCountsDistinctIDs(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ids := rapid.SliceOfN(rapid.StringMatching(`ev-[0-9]{1,3}`), 1, 50).Draw(t, "ids")

		s := New()
		distinct := map[string]struct{}{}
		for _, id := range ids {
			s.Process(map[string]any{
				"type":  "debug_event_info",
				"event": map[string]any{"id": id},
			})
			distinct[id] = struct{}{}
		}

		require.Len(t, s.Snapshot().EventHistory, len(distinct))
	})
}

// Processing any recognized message never panics out of the session
// and always yields a non-nil result.
func TestProperty_RecognizedMessagesAlwaysYieldResult(t *testing.T) {
	types := []string{
		"debug_input_request", "debug_event_info", "debug_stats",
		"debug_help", "debug_error", "debug_breakpoints_list",
		"debug_breakpoint_added", "debug_breakpoint_removed",
		"debug_breakpoint_cleared", "debug_print", "print",
	}

	rapid.Check(t, func(t *rapid.T) {
		typ := rapid.SampledFrom(types).Draw(t, "type")
		data := map[string]any{"type": typ}
		if rapid.Bool().Draw(t, "extra") {
			data["content"] = rapid.String().Draw(t, "content")
		}

		s := New()
		res := s.Process(data)
		require.NotNil(t, res)
	})
}
