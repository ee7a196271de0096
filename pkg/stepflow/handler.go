package stepflow

import "github.com/randalmurphal/stepflow/pkg/stepflow/message"

// Handler processes one kind of debug message.
//
// Handlers are pure functions of the payload: the HandlerContext is
// informational and must not influence the result. This invariant is
// what keeps processing replayable and is verified by tests.
type Handler interface {
	// CanHandle reports whether this handler accepts the type
	// discriminant.
	CanHandle(typ string) bool

	// Handle validates the payload and produces a processing result.
	// It never panics and never returns nil.
	Handle(data map[string]any, hctx HandlerContext) *Result
}

// HandlerContext carries ambient session facts. Handlers ignore it by
// contract; it exists so middleware-style wrappers and logging hooks
// can observe where a message landed.
type HandlerContext struct {
	RequestID string
	FlowID    string
}

// invalidStructure builds the uniform structural error result for a
// kind, keeping the offending payload reference-equal to the input.
func invalidStructure(kind message.Kind, data map[string]any) *Result {
	return &Result{Err: &StructError{
		Message:  "Invalid " + kind.Name() + " structure",
		Original: data,
	}}
}
