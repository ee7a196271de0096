package extract

import "github.com/randalmurphal/stepflow/pkg/stepflow/message"

// Meta carries the participants and event type found in an event
// payload. The Has flags distinguish an empty string value from an
// absent field.
type Meta struct {
	Sender    string
	Recipient string
	EventType string

	HasSender    bool
	HasRecipient bool
	HasEventType bool
}

// nestedKeys is the traversal order for nested sub-objects. Later
// entries override earlier sender/recipient findings; the FIRST entry
// with a string type wins for the event type.
var nestedKeys = [...]string{"event", "data", "content", "message"}

// Participants resolves sender, recipient and event type from an event
// payload.
//
// Sender and recipient are last-wins: a direct field is overridden by
// event, then data, then content, then message sub-objects. The event
// type is first-wins: the direct field, or failing that the first
// nested sub-object with a string type, and later objects never
// override it. content.speaker, when present, overrides the sender no
// matter where it was found. The two rules are deliberately asymmetric;
// consumers pin this behavior, do not "fix" it.
//
// Non-string values are treated as absent. A nil event yields an empty
// Meta.
func Participants(event map[string]any) Meta {
	var meta Meta
	o, ok := message.AsObject(event)
	if !ok {
		return meta
	}

	if s, ok := o.String("sender"); ok {
		meta.Sender, meta.HasSender = s, true
	}
	if r, ok := o.String("recipient"); ok {
		meta.Recipient, meta.HasRecipient = r, true
	}
	if t, ok := o.String("type"); ok {
		meta.EventType, meta.HasEventType = t, true
	}

	var speaker string
	var hasSpeaker bool

	for _, key := range nestedKeys {
		nested, ok := o.Map(key)
		if !ok {
			continue
		}
		no := message.Object(nested)

		if s, ok := no.String("sender"); ok {
			meta.Sender, meta.HasSender = s, true
		}
		if r, ok := no.String("recipient"); ok {
			meta.Recipient, meta.HasRecipient = r, true
		}
		if t, ok := no.String("type"); ok && !meta.HasEventType {
			meta.EventType, meta.HasEventType = t, true
		}
		if key == "content" {
			if s, ok := no.String("speaker"); ok {
				speaker, hasSpeaker = s, true
			}
		}
	}

	// Group-chat speaker takes priority over every sender finding.
	if hasSpeaker {
		meta.Sender, meta.HasSender = speaker, true
	}

	return meta
}
