package operations

import (
	"sync"
	"time"

	"retailcli/internal/analytics"
	"retailcli/internal/dataprocessing"
	"retailcli/pkg/contracts/domain"
)

// OperationStatusValue represents the overall operation status enum
type OperationStatusValue string

const (
	OperationStatusPending   OperationStatusValue = "pending"
	OperationStatusRunning   OperationStatusValue = "running"
	OperationStatusCompleted OperationStatusValue = "completed"
	OperationStatusFailed    OperationStatusValue = "failed"
	OperationStatusCancelled OperationStatusValue = "cancelled"
)

// OperationState represents the complete state of an operation execution.
// Besides bookkeeping it carries the data each Step hands to the next.
type OperationState struct {
	mu sync.RWMutex

	ID        string               `json:"id"`
	Status    OperationStatusValue `json:"status"`
	StartTime time.Time            `json:"start_time"`
	EndTime   *time.Time           `json:"end_time,omitempty"`

	// Step states
	Steps map[string]*StepState `json:"steps"`
	order []string

	// Data passed between steps
	Tables     *domain.Tables                    `json:"-"`
	Rows       []domain.JoinedRow                `json:"-"`
	MergeStats dataprocessing.MergeStatistics    `json:"merge_stats"`
	CleanStats dataprocessing.CleaningStatistics `json:"clean_stats"`
	Summary    *analytics.Summary                `json:"-"`
	Customers  []domain.RFMRecord                `json:"-"`
	StoredRows int                               `json:"stored_rows"`

	// Files written by the run
	Artifacts []string `json:"artifacts"`

	// Error if operation failed
	Error error `json:"error,omitempty"`
}

// NewOperationState creates a new operation state
func NewOperationState(id string) *OperationState {
	return &OperationState{
		ID:        id,
		Status:    OperationStatusPending,
		StartTime: time.Now(),
		Steps:     make(map[string]*StepState),
	}
}

// Start marks the operation as running
func (p *OperationState) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Status = OperationStatusRunning
	p.StartTime = time.Now()
}

// Complete marks the operation as completed
func (p *OperationState) Complete() {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := time.Now()
	p.EndTime = &now
	p.Status = OperationStatusCompleted
}

// Fail marks the operation as failed
func (p *OperationState) Fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := time.Now()
	p.EndTime = &now
	p.Status = OperationStatusFailed
	p.Error = err
}

// Cancel marks the operation as cancelled
func (p *OperationState) Cancel(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := time.Now()
	p.EndTime = &now
	p.Status = OperationStatusCancelled
	p.Error = err
}

// GetStage returns the state of a specific Step
func (p *OperationState) GetStage(stageID string) *StepState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.Steps[stageID]
}

// SetStage updates the state of a specific Step
func (p *OperationState) SetStage(stageID string, state *StepState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.Steps[stageID]; !exists {
		p.order = append(p.order, stageID)
	}
	p.Steps[stageID] = state
}

// AddArtifact records a written file
func (p *OperationState) AddArtifact(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Artifacts = append(p.Artifacts, path)
}

// GetArtifacts returns the written files in write order
func (p *OperationState) GetArtifacts() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]string(nil), p.Artifacts...)
}

// Duration returns the duration of the operation execution
func (p *OperationState) Duration() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.EndTime != nil {
		return p.EndTime.Sub(p.StartTime)
	}
	return time.Since(p.StartTime)
}

// stagesWithStatus returns the IDs of the steps currently in status, in the
// order the steps were added
func (p *OperationState) stagesWithStatus(status StepStatus) []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	var matched []string
	for _, id := range p.order {
		if p.Steps[id].GetStatus() == status {
			matched = append(matched, id)
		}
	}
	return matched
}

// GetCompletedStages returns the IDs of all completed steps
func (p *OperationState) GetCompletedStages() []string {
	return p.stagesWithStatus(StepStatusCompleted)
}

// GetFailedStages returns the IDs of all failed steps
func (p *OperationState) GetFailedStages() []string {
	return p.stagesWithStatus(StepStatusFailed)
}

// GetSkippedStages returns the IDs of all skipped steps
func (p *OperationState) GetSkippedStages() []string {
	return p.stagesWithStatus(StepStatusSkipped)
}
