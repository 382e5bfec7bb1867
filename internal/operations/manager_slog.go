package operations

import (
	"context"
	"log/slog"

	"retailcli/internal/infrastructure"
)

// logOperationStart logs the start of an operation execution. When spans are
// exported the otel trace ID is logged so the record can be matched to them.
func (m *Manager) logOperationStart(ctx context.Context, operationID string, steps []string) {
	attrs := []any{
		slog.String("operation_id", operationID),
		slog.Int("step_count", len(steps)),
		slog.Any("steps", steps),
	}
	if spanTraceID := infrastructure.TraceIDFromContext(ctx); spanTraceID != "" {
		attrs = append(attrs, slog.String("otel_trace_id", spanTraceID))
	}
	m.logger.InfoContext(ctx, "operation_start", attrs...)
}

// logOperationComplete logs the completion of an operation execution
func (m *Manager) logOperationComplete(ctx context.Context, operationID string, state *OperationState) {
	m.logger.InfoContext(ctx, "operation_complete",
		slog.String("operation_id", operationID),
		slog.String("status", string(state.Status)),
		slog.Int("completed_steps", len(state.GetCompletedStages())),
		slog.Duration("duration", state.Duration()),
		slog.Int("artifacts", len(state.GetArtifacts())))
}

// logOperationError logs an operation error
func (m *Manager) logOperationError(ctx context.Context, operationID string, state *OperationState, err error) {
	m.logger.ErrorContext(ctx, "operation_error",
		slog.String("operation_id", operationID),
		slog.String("status", string(state.Status)),
		slog.Any("failed_steps", state.GetFailedStages()),
		slog.Any("skipped_steps", state.GetSkippedStages()),
		slog.String("error", err.Error()))
}

// logStageStart logs the start of a Step execution
func (m *Manager) logStageStart(ctx context.Context, operationID, stageID string) {
	m.logger.InfoContext(ctx, "stage_start",
		slog.String("operation_id", operationID),
		slog.String("step", stageID))
}

// logStageComplete logs the completion of a Step execution
func (m *Manager) logStageComplete(ctx context.Context, operationID string, state *StepState) {
	attrs := []any{
		slog.String("operation_id", operationID),
		slog.String("step", state.ID),
		slog.Duration("duration", state.Duration()),
	}
	if rows, ok := state.GetMetadata(MetadataRows); ok {
		attrs = append(attrs, slog.Any("rows", rows))
	}
	m.logger.InfoContext(ctx, "stage_complete", attrs...)
}

// logStageError logs a Step error
func (m *Manager) logStageError(ctx context.Context, operationID, stageID string, err error) {
	m.logger.ErrorContext(ctx, "stage_error",
		slog.String("operation_id", operationID),
		slog.String("step", stageID),
		slog.String("error", err.Error()))
}
