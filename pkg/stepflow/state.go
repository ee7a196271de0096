package stepflow

// State is the full debugger-session state. Snapshot returns copies;
// mutate only through Session methods.
type State struct {
	// Active reports whether a workflow is currently running under the
	// debugger.
	Active bool

	// Show controls whether passthrough print output should be
	// surfaced to the user.
	Show bool

	// StepMode pauses before every event when true.
	StepMode bool

	// AutoContinue answers control requests without user interaction.
	AutoContinue bool

	// Breakpoints is the current breakpoint set as last confirmed by
	// the runner.
	Breakpoints []Breakpoint

	// Participants is the flow roster from the latest announcement.
	Participants []Participant

	// EventHistory holds received events most-recent-first. It is not
	// capped; display truncation is the consumer's concern.
	EventHistory []map[string]any

	// PendingInput is the outstanding debugger control request, if any.
	PendingInput *ControlRequest

	// ActiveRequest is the outstanding workflow input request, if any.
	ActiveRequest *InputRequest

	// Stats is the latest stats snapshot payload.
	Stats map[string]any

	// Timeline is auxiliary timeline data attached by the consumer.
	Timeline map[string]any

	// LastError is the most recent runner or structural error text.
	LastError string
}

// merge applies a partial update in place. Only set fields change;
// set-operations run after whole-field assignment so a handler can
// never observe stale state.
func (s *State) merge(u *StateUpdate) {
	if u == nil {
		return
	}
	if u.Active.Set {
		s.Active = u.Active.Value
	}
	if u.StepMode.Set {
		s.StepMode = u.StepMode.Value
	}
	if u.AutoContinue.Set {
		s.AutoContinue = u.AutoContinue.Value
	}
	if u.Breakpoints.Set {
		s.Breakpoints = u.Breakpoints.Value
	}
	if u.Participants.Set {
		s.Participants = u.Participants.Value
	}
	if u.PendingInput.Set {
		s.PendingInput = u.PendingInput.Value
	}
	if u.ActiveRequest.Set {
		s.ActiveRequest = u.ActiveRequest.Value
	}
	if u.Stats.Set {
		s.Stats = u.Stats.Value
	}
	if u.Timeline.Set {
		s.Timeline = u.Timeline.Value
	}
	if u.LastError.Set {
		s.LastError = u.LastError.Value
	}

	if u.ClearBreakpoints {
		s.Breakpoints = []Breakpoint{}
	}
	if u.AddBreakpoint != nil {
		s.addBreakpoint(*u.AddBreakpoint)
	}
	if u.RemoveBreakpoint != nil {
		s.removeBreakpoint(*u.RemoveBreakpoint)
	}
}

// addBreakpoint inserts with set semantics keyed by Breakpoint.Key.
func (s *State) addBreakpoint(bp Breakpoint) {
	key := bp.Key()
	for _, existing := range s.Breakpoints {
		if existing.Key() == key {
			return
		}
	}
	s.Breakpoints = append(s.Breakpoints, bp)
}

// removeBreakpoint deletes by key. A miss is not an error.
func (s *State) removeBreakpoint(bp Breakpoint) {
	key := bp.Key()
	for i, existing := range s.Breakpoints {
		if existing.Key() == key {
			s.Breakpoints = append(s.Breakpoints[:i], s.Breakpoints[i+1:]...)
			return
		}
	}
}

// clone returns a copy with its own slices. Event payload maps are
// shared and must be treated as read-only by consumers.
func (s *State) clone() State {
	out := *s
	if s.Breakpoints != nil {
		out.Breakpoints = append([]Breakpoint(nil), s.Breakpoints...)
	}
	if s.Participants != nil {
		out.Participants = append([]Participant(nil), s.Participants...)
	}
	if s.EventHistory != nil {
		out.EventHistory = append([]map[string]any(nil), s.EventHistory...)
	}
	if s.PendingInput != nil {
		pi := *s.PendingInput
		out.PendingInput = &pi
	}
	if s.ActiveRequest != nil {
		ar := *s.ActiveRequest
		out.ActiveRequest = &ar
	}
	return out
}
