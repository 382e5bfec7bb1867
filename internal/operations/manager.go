package operations

import (
	"context"
	"fmt"
	"log/slog"

	"retailcli/internal/infrastructure"
)

// Manager orchestrates operation execution
type Manager struct {
	registry *Registry
	tracer   *OperationTracer
	logger   *slog.Logger
}

// NewManager creates a new operation manager
func NewManager(registry *Registry, tracer *OperationTracer, logger *slog.Logger) *Manager {
	if registry == nil {
		registry = NewRegistry()
	}
	if tracer == nil {
		tracer, _ = NewOperationTracer(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Manager{
		registry: registry,
		tracer:   tracer,
		logger:   logger.With("component", "operation_manager"),
	}
}

// RegisterStage registers a Step with the operation
func (m *Manager) RegisterStage(step Step) error {
	return m.registry.Register(step)
}

// Execute runs every registered Step in registration order. The first
// failure stops the run and the remaining steps are marked skipped.
func (m *Manager) Execute(ctx context.Context, req OperationRequest) (*OperationResponse, error) {
	if req.ID == "" {
		req.ID = infrastructure.GetTraceID(ctx)
	}
	if req.ID == "" {
		req.ID = infrastructure.GenerateTraceID()
	}

	state := NewOperationState(req.ID)
	steps := m.registry.List()
	for _, step := range steps {
		state.SetStage(step.ID(), NewStepState(step.ID(), step.Name()))
	}

	ctx, span := m.tracer.TraceOperationExecution(ctx, req.ID, len(steps))
	m.logOperationStart(ctx, req.ID, m.registry.ListIDs())

	state.Start()
	err := m.executeSequential(ctx, state, steps)

	switch GetErrorType(err) {
	case "":
		state.Complete()
	case ErrorTypeCancellation:
		state.Cancel(err)
	default:
		state.Fail(err)
	}

	m.tracer.RecordOperationCompletion(ctx, span, state)
	if err != nil {
		m.logOperationError(ctx, req.ID, state, err)
	} else {
		m.logOperationComplete(ctx, req.ID, state)
	}

	return m.createResponse(state, steps), err
}

// executeSequential executes steps one by one
func (m *Manager) executeSequential(ctx context.Context, state *OperationState, steps []Step) error {
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			m.logger.WarnContext(ctx, "operation_cancelled",
				slog.String("operation_id", state.ID),
				slog.String("step", step.ID()))
			m.skipRemaining(state, steps[i:], "operation cancelled")
			return NewCancellationError(step.ID(), err)
		}

		m.logger.InfoContext(ctx, "executing_stage",
			slog.String("operation_id", state.ID),
			slog.String("step", step.ID()),
			slog.Int("stage_number", i+1),
			slog.Int("total_stages", len(steps)))

		if err := m.executeStage(ctx, state, step); err != nil {
			m.skipRemaining(state, steps[i+1:], fmt.Sprintf("Previous Step %s failed", step.ID()))
			return err
		}
	}
	return nil
}

// executeStage executes a single Step inside its own span
func (m *Manager) executeStage(ctx context.Context, state *OperationState, step Step) error {
	stepState := state.GetStage(step.ID())
	if stepState == nil {
		return NewFatalError(fmt.Sprintf("state of step %s not found", step.ID()), nil)
	}

	ctx, span := m.tracer.TraceStageExecution(ctx, state.ID, step)
	m.logStageStart(ctx, state.ID, step.ID())

	stepState.Start()
	err := step.Execute(ctx, state)
	if err != nil {
		stepState.Fail(err)
		m.tracer.RecordStageCompletion(ctx, span, stepState, err)
		m.logStageError(ctx, state.ID, step.ID(), err)
		return NewExecutionError(step.ID(), err)
	}

	stepState.Complete()
	m.tracer.RecordStageCompletion(ctx, span, stepState, nil)
	m.logStageComplete(ctx, state.ID, stepState)
	return nil
}

// skipRemaining marks steps that never ran as skipped
func (m *Manager) skipRemaining(state *OperationState, steps []Step, reason string) {
	for _, step := range steps {
		if s := state.GetStage(step.ID()); s != nil && s.GetStatus() == StepStatusPending {
			s.Skip(reason)
		}
	}
}

// createResponse creates an operation response from state
func (m *Manager) createResponse(state *OperationState, steps []Step) *OperationResponse {
	resp := &OperationResponse{
		ID:        state.ID,
		Status:    state.Status,
		Duration:  state.Duration(),
		Steps:     make([]*StepState, 0, len(steps)),
		Artifacts: state.GetArtifacts(),
	}
	for _, step := range steps {
		resp.Steps = append(resp.Steps, state.GetStage(step.ID()))
	}

	if state.Error != nil {
		resp.Error = state.Error.Error()
	}

	return resp
}
