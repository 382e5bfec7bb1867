package operations

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"retailcli/internal/infrastructure"
)

// OperationTracer provides OpenTelemetry instrumentation for operations
type OperationTracer struct {
	tracer  trace.Tracer
	metrics *infrastructure.PipelineMetrics
}

// NewOperationTracer creates a tracer backed by providers. A nil providers
// value yields a no-op tracer without metrics.
func NewOperationTracer(providers *infrastructure.OTelProviders) (*OperationTracer, error) {
	if providers == nil {
		return &OperationTracer{tracer: noop.NewTracerProvider().Tracer("")}, nil
	}

	metrics, err := infrastructure.CreatePipelineMetrics(providers.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline metrics: %w", err)
	}

	return &OperationTracer{
		tracer:  providers.Tracer,
		metrics: metrics,
	}, nil
}

// TraceOperationExecution creates a span for the entire operation execution
func (pt *OperationTracer) TraceOperationExecution(ctx context.Context, operationID string, steps int) (context.Context, trace.Span) {
	return pt.tracer.Start(ctx, "operation.execute",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("operation.id", operationID),
			attribute.Int("operation.steps", steps),
		),
	)
}

// TraceStageExecution creates a span for individual Step execution
func (pt *OperationTracer) TraceStageExecution(ctx context.Context, operationID string, step Step) (context.Context, trace.Span) {
	return pt.tracer.Start(ctx, "operation.step."+step.ID(),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("operation.id", operationID),
			attribute.String("step.id", step.ID()),
			attribute.String("step.name", step.Name()),
		),
	)
}

// RecordStageCompletion ends a Step span and records its metrics
func (pt *OperationTracer) RecordStageCompletion(ctx context.Context, span trace.Span, state *StepState, err error) {
	duration := state.Duration()

	attrs := map[string]interface{}{
		"step.status":      string(state.GetStatus()),
		"step.duration_ms": duration.Milliseconds(),
	}
	if rows, ok := state.GetMetadata(MetadataRows); ok {
		if n, ok := rows.(int); ok {
			attrs["step.rows"] = n
			infrastructure.RecordRows(ctx, pt.metrics, state.ID, n)
		}
	}
	infrastructure.SetSpanAttributes(ctx, attrs)
	endSpan(ctx, span, err)

	infrastructure.RecordOperationStepMetrics(ctx, pt.metrics, state.ID, duration, err)
}

// RecordOperationCompletion ends the operation span and records its metrics
func (pt *OperationTracer) RecordOperationCompletion(ctx context.Context, span trace.Span, state *OperationState) {
	duration := state.Duration()
	success := state.Status == OperationStatusCompleted

	infrastructure.SetSpanAttributes(ctx, map[string]interface{}{
		"operation.status":      string(state.Status),
		"operation.duration_ms": duration.Milliseconds(),
		"operation.artifacts":   len(state.GetArtifacts()),
		"operation.skipped":     len(state.GetSkippedStages()),
	})
	endSpan(ctx, span, state.Error)

	infrastructure.RecordOperationMetrics(ctx, pt.metrics, state.ID, duration, success)
}

// endSpan sets the span status from err and ends it. ctx must carry span.
func endSpan(ctx context.Context, span trace.Span, err error) {
	if err != nil {
		infrastructure.RecordError(ctx, err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
