package message

import "strings"

// Kind identifies a recognized debug message kind.
type Kind int

// Recognized kinds. KindUnknown means the type discriminant does not
// match any kind; the message may still belong to the step-by-step
// channel (see CanProcess) or be a plain chat message.
const (
	KindUnknown Kind = iota
	KindInputRequest
	KindEventInfo
	KindStats
	KindHelp
	KindError
	KindBreakpointsList
	KindBreakpointAdded
	KindBreakpointRemoved
	KindBreakpointCleared
	KindPrint
)

// Type discriminants understood on the wire. The runner historically
// emitted both debug_-prefixed and bare aliases for several kinds, so
// both spellings are accepted.
const (
	TypeInputRequest      = "debug_input_request"
	TypeEventInfo         = "debug_event_info"
	TypeStats             = "debug_stats"
	TypeHelp              = "debug_help"
	TypeError             = "debug_error"
	TypeBreakpointsList   = "debug_breakpoints_list"
	TypeBreakpointAdded   = "debug_breakpoint_added"
	TypeBreakpointRemoved = "debug_breakpoint_removed"
	TypeBreakpointCleared = "debug_breakpoint_cleared"
	TypeDebugPrint        = "debug_print"
	TypePrint             = "print"

	// DebugPrefix marks a type as belonging to the step-by-step channel
	// even when no specific kind matches.
	DebugPrefix = "debug_"
)

// kinds maps every accepted type discriminant to its kind.
var kinds = map[string]Kind{
	TypeInputRequest:      KindInputRequest,
	TypeEventInfo:         KindEventInfo,
	"event_info":          KindEventInfo,
	TypeStats:             KindStats,
	"stats":               KindStats,
	TypeHelp:              KindHelp,
	"help":                KindHelp,
	TypeError:             KindError,
	"error":               KindError,
	TypeBreakpointsList:   KindBreakpointsList,
	"breakpoints_list":    KindBreakpointsList,
	TypeBreakpointAdded:   KindBreakpointAdded,
	"breakpoint_added":    KindBreakpointAdded,
	TypeBreakpointRemoved: KindBreakpointRemoved,
	"breakpoint_removed":  KindBreakpointRemoved,
	TypeBreakpointCleared: KindBreakpointCleared,
	"breakpoint_cleared":  KindBreakpointCleared,
	TypeDebugPrint:        KindPrint,
	TypePrint:             KindPrint,
}

// kindNames maps kinds to their canonical names, used in structural
// error messages.
var kindNames = map[Kind]string{
	KindInputRequest:      TypeInputRequest,
	KindEventInfo:         TypeEventInfo,
	KindStats:             TypeStats,
	KindHelp:              TypeHelp,
	KindError:             TypeError,
	KindBreakpointsList:   TypeBreakpointsList,
	KindBreakpointAdded:   TypeBreakpointAdded,
	KindBreakpointRemoved: TypeBreakpointRemoved,
	KindBreakpointCleared: TypeBreakpointCleared,
	KindPrint:             TypeDebugPrint,
}

// KindOf returns the kind for a type discriminant, or KindUnknown.
func KindOf(typ string) Kind {
	return kinds[typ]
}

// Name returns the canonical type discriminant for the kind.
func (k Kind) Name() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// CanProcess reports whether a decoded value belongs to the
// step-by-step debug channel: an object whose string "type" carries the
// debug_ prefix, equals "print", or is a recognized bare alias.
// Everything else falls through to generic chat processing.
func CanProcess(v any) bool {
	o, ok := AsObject(v)
	if !ok {
		return false
	}
	typ, ok := o.String("type")
	if !ok {
		return false
	}
	if strings.HasPrefix(typ, DebugPrefix) || typ == TypePrint {
		return true
	}
	return kinds[typ] != KindUnknown
}

// Guard predicates. Each returns true iff the value is an object whose
// type matches the kind and whose required fields are present with the
// correct JSON type. They are total: any input is accepted, none panic.

// IsInputRequest reports whether v is a well-formed input request:
// string request_id and string prompt.
func IsInputRequest(v any) bool {
	o, ok := kindObject(v, KindInputRequest)
	if !ok {
		return false
	}
	if _, ok := o.String("request_id"); !ok {
		return false
	}
	_, ok = o.String("prompt")
	return ok
}

// IsEventInfo reports whether v is a well-formed event info message:
// an object event payload.
func IsEventInfo(v any) bool {
	o, ok := kindObject(v, KindEventInfo)
	if !ok {
		return false
	}
	_, ok = o.Map("event")
	return ok
}

// IsStats reports whether v is a well-formed stats message: an object
// stats payload.
func IsStats(v any) bool {
	o, ok := kindObject(v, KindStats)
	if !ok {
		return false
	}
	_, ok = o.Map("stats")
	return ok
}

// IsHelp reports whether v is a well-formed help message: an array of
// help sections.
func IsHelp(v any) bool {
	o, ok := kindObject(v, KindHelp)
	if !ok {
		return false
	}
	_, ok = o.Slice("help")
	return ok
}

// IsError reports whether v is a well-formed error message: a string
// error description.
func IsError(v any) bool {
	o, ok := kindObject(v, KindError)
	if !ok {
		return false
	}
	_, ok = o.String("error")
	return ok
}

// IsBreakpointsList reports whether v is a well-formed breakpoints
// list: an array of breakpoints.
func IsBreakpointsList(v any) bool {
	o, ok := kindObject(v, KindBreakpointsList)
	if !ok {
		return false
	}
	_, ok = o.Slice("breakpoints")
	return ok
}

// IsBreakpointAdded reports whether v is a well-formed breakpoint-added
// message: a breakpoint that is either a string or an object.
func IsBreakpointAdded(v any) bool {
	o, ok := kindObject(v, KindBreakpointAdded)
	return ok && hasBreakpointField(o)
}

// IsBreakpointRemoved reports whether v is a well-formed
// breakpoint-removed message.
func IsBreakpointRemoved(v any) bool {
	o, ok := kindObject(v, KindBreakpointRemoved)
	return ok && hasBreakpointField(o)
}

// IsBreakpointCleared reports whether v is a well-formed
// breakpoint-cleared message: a string confirmation.
func IsBreakpointCleared(v any) bool {
	o, ok := kindObject(v, KindBreakpointCleared)
	if !ok {
		return false
	}
	_, ok = o.String("message")
	return ok
}

// IsPrint reports whether v is a print-kind message (debug_print or
// print). Print payloads are validated by the handler, not here,
// because the two spellings carry different fields.
func IsPrint(v any) bool {
	_, ok := kindObject(v, KindPrint)
	return ok
}

// kindObject returns v as an Object if its type maps to want.
func kindObject(v any, want Kind) (Object, bool) {
	o, ok := AsObject(v)
	if !ok {
		return nil, false
	}
	typ, ok := o.String("type")
	if !ok || kinds[typ] != want {
		return nil, false
	}
	return o, true
}

// hasBreakpointField checks the breakpoint field is a string or object.
func hasBreakpointField(o Object) bool {
	v, ok := o["breakpoint"]
	if !ok {
		return false
	}
	switch bp := v.(type) {
	case string:
		return true
	case map[string]any:
		return bp != nil
	default:
		return false
	}
}
