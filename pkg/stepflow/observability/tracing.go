package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the stepflow tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("stepflow")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartSessionSpan starts a span covering a debug session.
	// Returns the context with span and the span itself.
	StartSessionSpan(ctx context.Context, sessionID, flowID string) (context.Context, trace.Span)

	// StartMessageSpan starts a span for processing one message.
	// The message span should be a child of the session span.
	StartMessageSpan(ctx context.Context, msgType string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartSessionSpan starts a span covering a debug session.
func (m *otelSpanManager) StartSessionSpan(ctx context.Context, sessionID, flowID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "stepflow.session",
		trace.WithAttributes(
			attribute.String("session.id", sessionID),
			attribute.String("flow.id", flowID),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartMessageSpan starts a span for processing one message.
func (m *otelSpanManager) StartMessageSpan(ctx context.Context, msgType string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "stepflow.message."+msgType,
		trace.WithAttributes(
			attribute.String("message.type", msgType),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
