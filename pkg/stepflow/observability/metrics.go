package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records session metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordMessage records one processed message with its duration and
	// whether it failed structural validation.
	RecordMessage(ctx context.Context, msgType string, duration time.Duration, invalid bool)

	// RecordDedupDrop records a duplicate event drop.
	RecordDedupDrop(ctx context.Context)

	// RecordWorkflowEnd records a workflow termination.
	RecordWorkflowEnd(ctx context.Context, reason string)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	messages       metric.Int64Counter
	messageLatency metric.Float64Histogram
	structErrors   metric.Int64Counter
	dedupDrops     metric.Int64Counter
	workflowEnds   metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("stepflow")

	messages, err := meter.Int64Counter("stepflow.messages",
		metric.WithDescription("Number of processed debug messages"),
	)
	if err != nil {
		return nil, err
	}

	messageLatency, err := meter.Float64Histogram("stepflow.message.latency_ms",
		metric.WithDescription("Message processing latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	structErrors, err := meter.Int64Counter("stepflow.message.structural_errors",
		metric.WithDescription("Number of structurally invalid messages"),
	)
	if err != nil {
		return nil, err
	}

	dedupDrops, err := meter.Int64Counter("stepflow.event.dedup_drops",
		metric.WithDescription("Number of duplicate events dropped"),
	)
	if err != nil {
		return nil, err
	}

	workflowEnds, err := meter.Int64Counter("stepflow.workflow.ends",
		metric.WithDescription("Number of workflow terminations"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		messages:       messages,
		messageLatency: messageLatency,
		structErrors:   structErrors,
		dedupDrops:     dedupDrops,
		workflowEnds:   workflowEnds,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordMessage records a processed message.
func (m *otelMetrics) RecordMessage(ctx context.Context, msgType string, duration time.Duration, invalid bool) {
	attrs := []attribute.KeyValue{
		attribute.String("message_type", msgType),
	}

	m.messages.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.messageLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if invalid {
		m.structErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordDedupDrop records a duplicate event drop.
func (m *otelMetrics) RecordDedupDrop(ctx context.Context) {
	m.dedupDrops.Add(ctx, 1)
}

// RecordWorkflowEnd records a workflow termination.
func (m *otelMetrics) RecordWorkflowEnd(ctx context.Context, reason string) {
	m.workflowEnds.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", reason),
	))
}
