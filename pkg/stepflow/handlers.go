package stepflow

import (
	"github.com/randalmurphal/stepflow/pkg/stepflow/extract"
	"github.com/randalmurphal/stepflow/pkg/stepflow/message"
)

// DefaultHandlers returns the full per-kind handler chain in dispatch
// order. The chain is stateless and can be shared across sessions.
func DefaultHandlers() []Handler {
	return []Handler{
		inputRequestHandler{},
		printHandler{},
		statsHandler{},
		eventInfoHandler{},
		helpHandler{},
		errorHandler{},
		breakpointsListHandler{},
		breakpointAddedHandler{},
		breakpointRemovedHandler{},
		breakpointClearedHandler{},
	}
}

// inputRequestHandler handles debug_input_request: the runner is
// paused and waits for a control command.
type inputRequestHandler struct{}

func (inputRequestHandler) CanHandle(typ string) bool {
	return message.KindOf(typ) == message.KindInputRequest
}

func (inputRequestHandler) Handle(data map[string]any, _ HandlerContext) *Result {
	if !message.IsInputRequest(data) {
		return invalidStructure(message.KindInputRequest, data)
	}
	o := message.Object(data)
	id, _ := o.String("request_id")
	prompt, _ := o.String("prompt")

	return &Result{
		Message: data,
		Update: &StateUpdate{
			PendingInput: Some(&ControlRequest{RequestID: id, Prompt: prompt}),
		},
		Action: &ControlAction{
			Type:      ActionInputRequestReceived,
			RequestID: id,
			Prompt:    prompt,
		},
	}
}

// printHandler handles the print kind, which carries two distinct
// responsibilities on the same discriminant: debug_print lines are
// scanned for workflow lifecycle markers, while bare print messages
// with a participants array announce the flow roster.
type printHandler struct{}

func (printHandler) CanHandle(typ string) bool {
	return message.KindOf(typ) == message.KindPrint
}

func (printHandler) Handle(data map[string]any, _ HandlerContext) *Result {
	o := message.Object(data)

	if o.Type() == message.TypePrint {
		if items, ok := o.Slice("participants"); ok {
			return &Result{
				Message: data,
				Update:  &StateUpdate{Participants: Some(parseParticipants(items))},
			}
		}
		// Plain print passthrough. Lifecycle markers can arrive on
		// either spelling, so scan string content here too.
		res := &Result{Message: data}
		if content, ok := o.String("content"); ok {
			applyEndMarkers(res, content)
		}
		return res
	}

	content, ok := o.String("content")
	if !ok {
		return invalidStructure(message.KindPrint, data)
	}
	res := &Result{Message: data}
	applyEndMarkers(res, content)
	return res
}

// applyEndMarkers marks a result as a workflow termination when the
// content carries a banner-prefixed end marker, clearing any pending
// request state.
func applyEndMarkers(res *Result, content string) {
	if !extract.IsWorkflowEnd(content) {
		return
	}
	res.WorkflowEnd = true
	res.EndReason = extract.EndReason(content)
	res.Action = &ControlAction{
		Type:   ActionWorkflowEnded,
		Reason: res.EndReason,
	}
	res.Update = &StateUpdate{
		ActiveRequest: Some[*InputRequest](nil),
		PendingInput:  Some[*ControlRequest](nil),
	}
}

// statsHandler handles debug_stats: a snapshot of debugger counters
// plus the effective step mode, auto-continue flag and breakpoints.
type statsHandler struct{}

func (statsHandler) CanHandle(typ string) bool {
	return message.KindOf(typ) == message.KindStats
}

func (statsHandler) Handle(data map[string]any, _ HandlerContext) *Result {
	if !message.IsStats(data) {
		return invalidStructure(message.KindStats, data)
	}
	o := message.Object(data)
	stats, _ := o.Map("stats")
	so := message.Object(stats)

	// Absent step_mode/auto_continue still overwrite session state
	// with their zero value: the stats snapshot is authoritative.
	stepMode, _ := so.Bool("step_mode")
	autoContinue, _ := so.Bool("auto_continue")

	// A null or missing breakpoint list normalizes to empty.
	breakpoints := []Breakpoint{}
	if items, ok := so.Slice("breakpoints"); ok {
		breakpoints = parseBreakpoints(items)
	}

	return &Result{
		Message: data,
		Update: &StateUpdate{
			Stats:        Some(stats),
			StepMode:     Some(stepMode),
			AutoContinue: Some(autoContinue),
			Breakpoints:  Some(breakpoints),
		},
	}
}

// eventInfoHandler handles debug_event_info: a workflow event destined
// for session history.
type eventInfoHandler struct{}

func (eventInfoHandler) CanHandle(typ string) bool {
	return message.KindOf(typ) == message.KindEventInfo
}

func (eventInfoHandler) Handle(data map[string]any, _ HandlerContext) *Result {
	if !message.IsEventInfo(data) {
		return invalidStructure(message.KindEventInfo, data)
	}
	event, _ := message.Object(data).Map("event")
	return &Result{Message: data, Event: event}
}

// helpHandler handles debug_help: command documentation pushed by the
// runner, passed through for display.
type helpHandler struct{}

func (helpHandler) CanHandle(typ string) bool {
	return message.KindOf(typ) == message.KindHelp
}

func (helpHandler) Handle(data map[string]any, _ HandlerContext) *Result {
	if !message.IsHelp(data) {
		return invalidStructure(message.KindHelp, data)
	}
	return &Result{Message: data}
}

// errorHandler handles debug_error: a runner-side failure description.
type errorHandler struct{}

func (errorHandler) CanHandle(typ string) bool {
	return message.KindOf(typ) == message.KindError
}

func (errorHandler) Handle(data map[string]any, _ HandlerContext) *Result {
	if !message.IsError(data) {
		return invalidStructure(message.KindError, data)
	}
	errText, _ := message.Object(data).String("error")
	return &Result{
		Message: data,
		Update:  &StateUpdate{LastError: Some(errText)},
	}
}

// breakpointsListHandler handles debug_breakpoints_list: the full
// current breakpoint set.
type breakpointsListHandler struct{}

func (breakpointsListHandler) CanHandle(typ string) bool {
	return message.KindOf(typ) == message.KindBreakpointsList
}

func (breakpointsListHandler) Handle(data map[string]any, _ HandlerContext) *Result {
	if !message.IsBreakpointsList(data) {
		return invalidStructure(message.KindBreakpointsList, data)
	}
	items, _ := message.Object(data).Slice("breakpoints")
	return &Result{
		Message: data,
		Update:  &StateUpdate{Breakpoints: Some(parseBreakpoints(items))},
	}
}

// breakpointAddedHandler handles debug_breakpoint_added.
type breakpointAddedHandler struct{}

func (breakpointAddedHandler) CanHandle(typ string) bool {
	return message.KindOf(typ) == message.KindBreakpointAdded
}

func (breakpointAddedHandler) Handle(data map[string]any, _ HandlerContext) *Result {
	if !message.IsBreakpointAdded(data) {
		return invalidStructure(message.KindBreakpointAdded, data)
	}
	bp, _ := ParseBreakpoint(data["breakpoint"])
	return &Result{
		Message: data,
		Update:  &StateUpdate{AddBreakpoint: &bp},
	}
}

// breakpointRemovedHandler handles debug_breakpoint_removed.
type breakpointRemovedHandler struct{}

func (breakpointRemovedHandler) CanHandle(typ string) bool {
	return message.KindOf(typ) == message.KindBreakpointRemoved
}

func (breakpointRemovedHandler) Handle(data map[string]any, _ HandlerContext) *Result {
	if !message.IsBreakpointRemoved(data) {
		return invalidStructure(message.KindBreakpointRemoved, data)
	}
	bp, _ := ParseBreakpoint(data["breakpoint"])
	return &Result{
		Message: data,
		Update:  &StateUpdate{RemoveBreakpoint: &bp},
	}
}

// breakpointClearedHandler handles debug_breakpoint_cleared.
type breakpointClearedHandler struct{}

func (breakpointClearedHandler) CanHandle(typ string) bool {
	return message.KindOf(typ) == message.KindBreakpointCleared
}

func (breakpointClearedHandler) Handle(data map[string]any, _ HandlerContext) *Result {
	if !message.IsBreakpointCleared(data) {
		return invalidStructure(message.KindBreakpointCleared, data)
	}
	return &Result{
		Message: data,
		Update:  &StateUpdate{ClearBreakpoints: true},
	}
}
