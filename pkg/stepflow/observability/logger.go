// Package observability provides structured logging, metrics, and
// distributed tracing for stepflow sessions.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds session context to a logger.
// Returns a new logger with session_id and flow_id fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "sess-123", "flow-42")
//	enriched.Info("processing") // includes session_id, flow_id
func EnrichLogger(logger *slog.Logger, sessionID, flowID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("session_id", sessionID),
		slog.String("flow_id", flowID),
	)
}

// LogMessage logs a processed debug message at debug level.
func LogMessage(logger *slog.Logger, msgType string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("message processed",
		slog.String("type", msgType),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogStructuralError logs a message that matched a known kind but
// failed validation.
func LogStructuralError(logger *slog.Logger, msgType, detail string) {
	if logger == nil {
		return
	}
	logger.Warn("invalid message structure",
		slog.String("type", msgType),
		slog.String("detail", detail),
	)
}

// LogDedupDrop logs a duplicate event that was dropped.
func LogDedupDrop(logger *slog.Logger, key string) {
	if logger == nil {
		return
	}
	logger.Debug("duplicate event dropped",
		slog.String("key", key),
	)
}

// LogWorkflowEnd logs workflow termination with its reason.
func LogWorkflowEnd(logger *slog.Logger, reason string, eventCount int) {
	if logger == nil {
		return
	}
	logger.Info("workflow ended",
		slog.String("reason", reason),
		slog.Int("events", eventCount),
	)
}

// LogTranscriptError logs a transcript persistence failure (non-fatal).
func LogTranscriptError(logger *slog.Logger, op string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("transcript write failed",
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
}

// LogPanic logs a recovered handler panic.
func LogPanic(logger *slog.Logger, msgType string, recovered any) {
	if logger == nil {
		return
	}
	logger.Error("handler panic recovered",
		slog.String("type", msgType),
		slog.Any("panic", recovered),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}
