package stepflow

import (
	"github.com/randalmurphal/stepflow/pkg/stepflow/message"
)

// Processor dispatches raw inbound messages to per-kind handlers. The
// zero value is not usable; construct with NewProcessor.
//
// A Processor holds no mutable state and is safe for concurrent use.
type Processor struct {
	handlers []Handler
}

// NewProcessor creates a processor over the given handler chain. With
// no handlers the default chain is installed.
func NewProcessor(handlers ...Handler) *Processor {
	if len(handlers) == 0 {
		handlers = DefaultHandlers()
	}
	return &Processor{handlers: handlers}
}

// Process classifies and dispatches one raw message.
//
// It returns nil when the value is outside the step-by-step channel
// (not an object, no string type, or an unprefixed unknown type) so
// the caller can fall back to its generic pipeline. Recognized
// messages always yield a non-nil Result; a debug_-prefixed type with
// no handler yields a structural error rather than a silent drop.
func (p *Processor) Process(raw any, hctx HandlerContext) *Result {
	if !message.CanProcess(raw) {
		return nil
	}
	data, _ := message.AsObject(raw)
	typ := data.Type()

	for _, h := range p.handlers {
		if h.CanHandle(typ) {
			return h.Handle(data, hctx)
		}
	}

	return &Result{Err: &StructError{
		Message:  "Unknown debug message type: " + typ,
		Original: data,
	}}
}
