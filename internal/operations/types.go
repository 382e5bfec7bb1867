package operations

import (
	"time"
)

// Step IDs
const (
	StageIDLoad      = "load"
	StageIDMerge     = "merge"
	StageIDClean     = "clean"
	StageIDAggregate = "aggregate"
	StageIDSegment   = "segment"
	StageIDCharts    = "charts"
	StageIDExport    = "export"
	StageIDWorkbook  = "workbook"
	StageIDStore     = "store"
	StageIDReport    = "report"
)

// Step names
const (
	StageNameLoad      = "Load Tables"
	StageNameMerge     = "Merge Tables"
	StageNameClean     = "Clean Sales"
	StageNameAggregate = "Aggregate Sales"
	StageNameSegment   = "Segment Customers"
	StageNameCharts    = "Render Charts"
	StageNameExport    = "Export CSV"
	StageNameWorkbook  = "Export Workbook"
	StageNameStore     = "Store Sales Data"
	StageNameReport    = "Print Report"
)

// Metadata keys steps record on their StepState
const (
	MetadataRows      = "rows"
	MetadataArtifacts = "artifacts"
)

// OperationRequest represents a request to execute an operation
type OperationRequest struct {
	ID string `json:"id"`
}

// OperationResponse represents the response from an operation execution
type OperationResponse struct {
	ID        string               `json:"id"`
	Status    OperationStatusValue `json:"status"`
	Duration  time.Duration        `json:"duration"`
	Steps     []*StepState         `json:"steps"`
	Artifacts []string             `json:"artifacts"`
	Error     string               `json:"error,omitempty"`
}
