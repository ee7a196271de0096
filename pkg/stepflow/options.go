package stepflow

import (
	"log/slog"

	"github.com/randalmurphal/stepflow/pkg/stepflow/history"
	"github.com/randalmurphal/stepflow/pkg/stepflow/observability"
)

// Option configures a Session at construction time.
type Option func(*Session)

// WithSessionID overrides the generated session identifier.
func WithSessionID(id string) Option {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

// WithFlowID attaches the session to a workflow identifier.
func WithFlowID(flowID string) Option {
	return func(s *Session) {
		s.flowID = flowID
	}
}

// WithLogger enables structured logging. The logger is enriched with
// session and flow identifiers.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithMetrics sets the metrics recorder. Defaults to a no-op.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(s *Session) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithTracing sets the trace span manager. Defaults to a no-op.
func WithTracing(sm observability.SpanManager) Option {
	return func(s *Session) {
		if sm != nil {
			s.spans = sm
		}
	}
}

// WithTranscript persists admitted events to the given store. Writes
// are best effort and never block processing.
func WithTranscript(store history.Store) Option {
	return func(s *Session) {
		s.transcript = store
	}
}

// WithHandlers replaces the default handler chain.
func WithHandlers(handlers ...Handler) Option {
	return func(s *Session) {
		if len(handlers) > 0 {
			s.processor = NewProcessor(handlers...)
		}
	}
}

// WithHook installs a preprocessing hook that runs before
// classification on every inbound value.
func WithHook(hook Hook) Option {
	return func(s *Session) {
		s.hook = hook
	}
}

// WithKeyFunc sets the event deduplication key function. Defaults to
// DefaultKeyFunc.
func WithKeyFunc(fn KeyFunc) Option {
	return func(s *Session) {
		if fn != nil {
			s.keyFunc = fn
		}
	}
}

// WithDedup enables or disables event deduplication. Enabled by
// default.
func WithDedup(enabled bool) Option {
	return func(s *Session) {
		s.dedup = enabled
	}
}

// WithDedupCacheSize bounds the seen-key cache. Values below one fall
// back to DefaultDedupCacheSize.
func WithDedupCacheSize(n int) Option {
	return func(s *Session) {
		s.seen = newSeenCache(n)
	}
}

// WithStepMode sets the initial step mode. Step mode is on by default.
func WithStepMode(enabled bool) Option {
	return func(s *Session) {
		s.state.StepMode = enabled
	}
}

// WithAutoContinue sets the initial auto-continue flag.
func WithAutoContinue(enabled bool) Option {
	return func(s *Session) {
		s.state.AutoContinue = enabled
	}
}

// WithShow sets the initial visibility of passthrough print output.
func WithShow(show bool) Option {
	return func(s *Session) {
		s.state.Show = show
	}
}

// WithBreakpoints seeds the initial breakpoint set.
func WithBreakpoints(bps ...Breakpoint) Option {
	return func(s *Session) {
		s.state.Breakpoints = parseBreakpointsFromSlice(bps)
	}
}

// parseBreakpointsFromSlice dedupes a caller-supplied breakpoint list.
func parseBreakpointsFromSlice(bps []Breakpoint) []Breakpoint {
	result := make([]Breakpoint, 0, len(bps))
	seen := make(map[string]struct{}, len(bps))
	for _, bp := range bps {
		key := bp.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, bp)
	}
	return result
}
