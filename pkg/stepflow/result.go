package stepflow

// Opt is an optional value: Set distinguishes "update this field" from
// "leave it alone" when a StateUpdate is merged. A set nil pointer
// clears the field, mirroring an explicit null on the wire.
type Opt[T any] struct {
	Value T
	Set   bool
}

// Some wraps a value as a present Opt.
func Some[T any](v T) Opt[T] {
	return Opt[T]{Value: v, Set: true}
}

// Control action types emitted by handlers for side-effecting
// consumers.
const (
	// ActionInputRequestReceived signals the runner is waiting for a
	// debugger control command.
	ActionInputRequestReceived = "debug_input_request_received"

	// ActionWorkflowEnded signals the workflow terminated; Reason
	// carries why.
	ActionWorkflowEnded = "workflow_ended"
)

// ControlAction is a derived signal distinct from state mutation,
// meant for side-effecting consumers (sending a response, UI toast).
type ControlAction struct {
	Type      string
	RequestID string
	Prompt    string
	Reason    string
}

// StructError describes a message whose type matched a known kind but
// whose required fields were missing or mis-typed. Always recoverable:
// the session records it and continues.
type StructError struct {
	// Message has the fixed form "Invalid <kind> structure" for
	// structural failures.
	Message string

	// Original is the offending payload, reference-equal to the
	// handler's input.
	Original map[string]any
}

// StateUpdate is a partial update to session state. Only fields with
// Set=true are merged; set-operations on breakpoints are expressed
// explicitly so handlers stay pure of the current state.
type StateUpdate struct {
	Active        Opt[bool]
	StepMode      Opt[bool]
	AutoContinue  Opt[bool]
	Breakpoints   Opt[[]Breakpoint]
	Participants  Opt[[]Participant]
	PendingInput  Opt[*ControlRequest]
	ActiveRequest Opt[*InputRequest]
	Stats         Opt[map[string]any]
	Timeline      Opt[map[string]any]
	LastError     Opt[string]

	AddBreakpoint    *Breakpoint
	RemoveBreakpoint *Breakpoint
	ClearBreakpoints bool
}

// Result is the outcome of processing one inbound message. Exactly one
// of Err or the success fields (Message/Update/Action/Event) is
// meaningful per invocation; handlers never populate Err alongside a
// state update.
type Result struct {
	// Message is the recognized payload, passed through for display.
	Message map[string]any

	// Update is the partial state transition to merge, if any.
	Update *StateUpdate

	// Action is a derived control signal, if any.
	Action *ControlAction

	// Event is a workflow event to append to session history, if any.
	Event map[string]any

	// Err reports a structural validation failure.
	Err *StructError

	// WorkflowEnd is true when the message carried a termination
	// marker; EndReason then holds why (completed, user_stopped,
	// error).
	WorkflowEnd bool

	// EndReason classifies a workflow termination. Empty unless
	// WorkflowEnd is true.
	EndReason string
}
