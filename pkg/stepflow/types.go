package stepflow

import (
	"encoding/json"

	"github.com/randalmurphal/stepflow/pkg/stepflow/message"
)

// Breakpoint pauses the debugger when a matching event is about to be
// delivered. The wire carries either a bare event-type string or a
// structured filter object; both forms are preserved.
type Breakpoint struct {
	// EventType is the bare form. Empty when Spec is set.
	EventType string

	// Spec is the structured form as received. Nil for the bare form.
	Spec map[string]any
}

// EventBreakpoint creates a bare event-type breakpoint.
func EventBreakpoint(eventType string) Breakpoint {
	return Breakpoint{EventType: eventType}
}

// ParseBreakpoint converts a wire value (string or object) into a
// Breakpoint. Returns false for any other shape.
func ParseBreakpoint(v any) (Breakpoint, bool) {
	switch bp := v.(type) {
	case string:
		return Breakpoint{EventType: bp}, true
	case map[string]any:
		if bp == nil {
			return Breakpoint{}, false
		}
		return Breakpoint{Spec: bp}, true
	default:
		return Breakpoint{}, false
	}
}

// Key returns a stable identity for set semantics: the event type for
// the bare form, canonical JSON for the structured form (map keys are
// marshaled in sorted order, so equal specs produce equal keys).
func (b Breakpoint) Key() string {
	if b.Spec == nil {
		return b.EventType
	}
	data, err := json.Marshal(b.Spec)
	if err != nil {
		return b.EventType
	}
	return string(data)
}

// String implements fmt.Stringer.
func (b Breakpoint) String() string {
	return b.Key()
}

// parseBreakpoints converts a wire array, skipping malformed entries.
// Always returns a non-nil slice with duplicates removed.
func parseBreakpoints(items []any) []Breakpoint {
	result := make([]Breakpoint, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		bp, ok := ParseBreakpoint(item)
		if !ok {
			continue
		}
		key := bp.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, bp)
	}
	return result
}

// Participant is an agent or human taking part in the flow, derived
// from the runner's participant announcements.
type Participant struct {
	ID     string
	Name   string
	IsUser bool
}

// parseParticipants maps a wire participant array. Entries without a
// string name are skipped; a missing id defaults to the name. An entry
// is a user when it says so directly or when its human input mode is
// anything but NEVER.
func parseParticipants(items []any) []Participant {
	result := make([]Participant, 0, len(items))
	for _, item := range items {
		o, ok := message.AsObject(item)
		if !ok {
			continue
		}
		name, ok := o.String("name")
		if !ok {
			continue
		}
		id, ok := o.String("id")
		if !ok || id == "" {
			id = name
		}

		isUser := false
		if b, ok := o.Bool("isUser"); ok {
			isUser = b
		} else if mode, ok := o.String("humanInputMode"); ok {
			isUser = mode != "NEVER"
		}

		result = append(result, Participant{ID: id, Name: name, IsUser: isUser})
	}
	return result
}

// ControlRequest is a pending request for debugger control input.
type ControlRequest struct {
	RequestID string
	Prompt    string
}

// InputRequest is an active request for user input addressed to the
// workflow itself (as opposed to debugger control).
type InputRequest struct {
	RequestID string
	Prompt    string
	Password  bool
}
