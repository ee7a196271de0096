package message

// ControlResponseType is the type discriminant of outbound control
// messages answering a debug input request.
const ControlResponseType = "debug_input_response"

// Debugger commands accepted by the runner in a control response.
const (
	CommandContinue         = "continue"
	CommandStep             = "step"
	CommandRun              = "run"
	CommandQuit             = "quit"
	CommandInfo             = "info"
	CommandHelp             = "help"
	CommandStats            = "stats"
	CommandListBreakpoints  = "list_breakpoints"
	CommandAddBreakpoint    = "add_breakpoint"
	CommandRemoveBreakpoint = "remove_breakpoint"
	CommandClearBreakpoints = "clear_breakpoints"
)

// ControlResponse is the fixed wire shape of an outbound control
// message: {type: "debug_input_response", request_id, data}.
type ControlResponse struct {
	Type      string `json:"type"`
	RequestID string `json:"request_id"`
	Data      string `json:"data"`
}

// NewControlResponse builds a control response for a pending input
// request. Total over all string inputs, including empty strings.
func NewControlResponse(requestID, command string) ControlResponse {
	return ControlResponse{
		Type:      ControlResponseType,
		RequestID: requestID,
		Data:      command,
	}
}
