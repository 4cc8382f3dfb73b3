package models

import "time"

// RunStatus defines the lifecycle states of one graph run.
type RunStatus string

const (
	RunStatusPending   RunStatus = "pending"
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
	RunStatusCancelled RunStatus = "cancelled"
)

// StepStatus is the outcome of a single node within a run.
type StepStatus string

const (
	StepStatusSuccess StepStatus = "success"
	StepStatusFailure StepStatus = "failure"
	StepStatusSkipped StepStatus = "skipped"
)

// StepResult records the outcome of one node execution. OutputValues maps
// each fired output port to its payload; only fired ports appear.
type StepResult struct {
	NodeID       string                    `json:"node_id"`
	ToolID       string                    `json:"tool_id"`
	Status       StepStatus                `json:"status"`
	DurationMs   int64                     `json:"duration_ms"`
	OutputValues map[string]map[string]any `json:"output_values,omitempty"`
	Error        string                    `json:"error,omitempty"`
}

// RunReport is the structured result of one graph run. Steps are ordered by
// execution; skipped nodes appear after executed ones.
type RunReport struct {
	RunID      string       `json:"run_id"`
	GraphName  string       `json:"graph_name"`
	Status     RunStatus    `json:"status"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Steps      []StepResult `json:"steps"`
}

// StepFor returns the step record for nodeID, or nil when the node does not
// appear in the report.
func (r *RunReport) StepFor(nodeID string) *StepResult {
	for i := range r.Steps {
		if r.Steps[i].NodeID == nodeID {
			return &r.Steps[i]
		}
	}

	return nil
}

// ExecutedCount returns the number of steps that actually ran (success or
// failure, not skipped).
func (r *RunReport) ExecutedCount() int {
	count := 0

	for _, s := range r.Steps {
		if s.Status != StepStatusSkipped {
			count++
		}
	}

	return count
}
