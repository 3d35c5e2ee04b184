package recorder

import (
	"github.com/google/uuid"

	"MondayRange/internal/analysis"
)

// RunSnapshot holds everything recorded for one analysis run.
type RunSnapshot struct {
	RunID  uuid.UUID
	Source string
	Result *analysis.Result
}

// NewRunSnapshot stamps res with a fresh run id.
func NewRunSnapshot(source string, res *analysis.Result) *RunSnapshot {
	return &RunSnapshot{RunID: uuid.New(), Source: source, Result: res}
}

// Recorder persists run history for later inspection.
type Recorder interface {
	RecordRun(snap *RunSnapshot) error
	Close() error
}
