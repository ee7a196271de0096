package stepflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/randalmurphal/stepflow/pkg/stepflow/extract"
	"github.com/randalmurphal/stepflow/pkg/stepflow/history"
	"github.com/randalmurphal/stepflow/pkg/stepflow/message"
	"github.com/randalmurphal/stepflow/pkg/stepflow/observability"
)

// Hook preprocesses a raw inbound value before classification. It
// reports whether it fully consumed the message; a non-nil replacement
// substitutes the value handed to the processor.
type Hook func(raw any) (handled bool, replacement any)

// workflowFailedError is the session error text recorded when a
// workflow terminates with the failure marker.
const workflowFailedError = "Workflow execution failed"

// Session owns the state of one debug session and applies handler
// results to it. All methods are safe for concurrent use, though the
// protocol itself delivers one message at a time.
type Session struct {
	mu        sync.Mutex
	id        string
	flowID    string
	state     State
	initial   State
	processor *Processor
	hook      Hook

	dedup   bool
	keyFunc KeyFunc
	seen    *seenCache

	logger     *slog.Logger
	metrics    observability.MetricsRecorder
	spans      observability.SpanManager
	transcript history.Store

	spanCtx     context.Context
	sessionSpan trace.Span
}

// New creates a session with defaults: step mode on, deduplication on
// with the default cache size, the default handler chain, no-op
// metrics, and no transcript store.
func New(opts ...Option) *Session {
	s := &Session{
		id: uuid.NewString(),
		state: State{
			StepMode:    true,
			Breakpoints: []Breakpoint{},
		},
		processor: NewProcessor(),
		dedup:     true,
		keyFunc:   DefaultKeyFunc,
		metrics:   observability.NoopMetrics{},
		spans:     observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.seen == nil {
		s.seen = newSeenCache(DefaultDedupCacheSize)
	}
	if s.logger != nil {
		s.logger = observability.EnrichLogger(s.logger, s.id, s.flowID)
	}
	s.spanCtx, s.sessionSpan = s.spans.StartSessionSpan(context.Background(), s.id, s.flowID)
	s.initial = s.state.clone()
	return s
}

// Close ends the session trace span. The session stays readable after
// Close.
func (s *Session) Close() {
	s.spans.EndSpanWithError(s.sessionSpan, nil)
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// FlowID returns the workflow identifier this session is attached to.
func (s *Session) FlowID() string {
	return s.flowID
}

// Process classifies one raw inbound message, dispatches it, and
// applies the result to session state. It returns nil for messages
// outside the step-by-step channel so callers can fall back to their
// generic pipeline.
func (s *Session) Process(raw any) *Result {
	return s.ProcessContext(context.Background(), raw)
}

// ProcessContext is Process with a caller-supplied context for
// metrics recording. Message spans are parented on the session span.
// Hook and handler panics are recovered and surface as a structural
// error on the result and as LastError on the session.
func (s *Session) ProcessContext(ctx context.Context, raw any) (res *Result) {
	start := time.Now()
	msgType := ""
	if o, ok := message.AsObject(raw); ok {
		msgType = o.Type()
	}

	_, span := s.spans.StartMessageSpan(s.spanCtx, msgType)

	defer func() {
		if r := recover(); r != nil {
			observability.LogPanic(s.logger, msgType, r)
			data, _ := message.AsObject(raw)
			res = &Result{Err: &StructError{
				Message:  fmt.Sprintf("Error processing message: %v", r),
				Original: data,
			}}
			s.applyError(res.Err)
		}
		var spanErr error
		if res != nil && res.Err != nil {
			spanErr = errors.New(res.Err.Message)
		}
		s.spans.EndSpanWithError(span, spanErr)
	}()

	if s.hook != nil {
		handled, replacement := s.hook(raw)
		if handled {
			return nil
		}
		if replacement != nil {
			raw = replacement
			if o, ok := message.AsObject(raw); ok {
				msgType = o.Type()
			}
		}
	}

	res = s.processor.Process(raw, HandlerContext{FlowID: s.flowID})
	if res == nil {
		return nil
	}

	s.apply(ctx, res)
	elapsed := time.Since(start)
	s.metrics.RecordMessage(ctx, msgType, elapsed, res.Err != nil)
	observability.LogMessage(s.logger, msgType, float64(elapsed.Milliseconds()))
	return res
}

// apply folds one result into session state.
func (s *Session) apply(ctx context.Context, res *Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if res.Err != nil {
		s.state.LastError = res.Err.Message
		observability.LogStructuralError(s.logger, message.Object(res.Err.Original).Type(), res.Err.Message)
		return
	}

	s.state.merge(res.Update)

	if res.Event != nil {
		s.addEventLocked(ctx, res.Event)
	}

	if res.WorkflowEnd {
		s.state.Active = false
		if res.EndReason == extract.ReasonError {
			s.state.LastError = workflowFailedError
		}
		s.metrics.RecordWorkflowEnd(ctx, res.EndReason)
		observability.LogWorkflowEnd(s.logger, res.EndReason, len(s.state.EventHistory))
	}
}

// applyError records a structural error produced outside the normal
// apply path (panic recovery).
func (s *Session) applyError(serr *StructError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.LastError = serr.Message
}

// addEventLocked appends an event to history, most recent first,
// dropping duplicates when deduplication is enabled. Transcript
// persistence is best effort; a store failure never blocks the
// session.
func (s *Session) addEventLocked(ctx context.Context, event map[string]any) bool {
	key := s.keyFunc(event)
	if s.dedup && !s.seen.Admit(key) {
		s.metrics.RecordDedupDrop(ctx)
		observability.LogDedupDrop(s.logger, key)
		return false
	}

	s.state.EventHistory = append([]map[string]any{event}, s.state.EventHistory...)

	if s.transcript != nil {
		data, err := json.Marshal(event)
		if err == nil {
			err = s.transcript.Append(s.id, key, data)
		}
		if err != nil {
			observability.LogTranscriptError(s.logger, "append", err)
		}
	}
	return true
}

// AddEvent records an event directly, subject to the same
// deduplication as events arriving through Process. Reports whether
// the event was admitted.
func (s *Session) AddEvent(event map[string]any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addEventLocked(context.Background(), event)
}

// RemoveEvent removes the first history entry matching the event's
// key and forgets the key, so an identical event can be admitted
// again. Reports whether an entry was removed.
func (s *Session) RemoveEvent(event map[string]any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := s.keyFunc(event)
	s.seen.Forget(key)
	for i, e := range s.state.EventHistory {
		if s.keyFunc(e) == key {
			s.state.EventHistory = append(s.state.EventHistory[:i], s.state.EventHistory[i+1:]...)
			return true
		}
	}
	return false
}

// ClearEvents drops all history and resets the dedup cache.
func (s *Session) ClearEvents() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.EventHistory = nil
	s.seen.Reset()
}

// SetActive marks the workflow as running or stopped.
func (s *Session) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Active = active
}

// SetShow toggles surfacing of passthrough print output.
func (s *Session) SetShow(show bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Show = show
}

// SetError records an error string on the session.
func (s *Session) SetError(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.LastError = text
}

// SetTimeline attaches consumer timeline data to the session.
func (s *Session) SetTimeline(timeline map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Timeline = timeline
}

// SetParticipants replaces the flow roster.
func (s *Session) SetParticipants(participants []Participant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Participants = participants
}

// SetActiveRequest records or clears the outstanding workflow input
// request.
func (s *Session) SetActiveRequest(req *InputRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ActiveRequest = req
}

// SetPendingInput records or clears the outstanding control request.
func (s *Session) SetPendingInput(req *ControlRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.PendingInput = req
}

// Reset restores the session to its initial configured state and
// clears the dedup cache. The session and flow identifiers are kept.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.initial.clone()
	s.seen.Reset()
}

// Snapshot returns a copy of the current state. Slices are copied;
// event payload maps are shared and must be treated as read-only.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}
