package models

import "time"

// StepStatus is the lifecycle state of a simulated step.
type StepStatus string

const (
	StepStatusPending   StepStatus = "pending"
	StepStatusRunning   StepStatus = "running"
	StepStatusCompleted StepStatus = "completed"
	StepStatusFailed    StepStatus = "failed"
)

// SimulationStatus is the aggregate outcome of a run.
type SimulationStatus string

const (
	SimulationStatusSuccess SimulationStatus = "success"
	SimulationStatusError   SimulationStatus = "error"
)

// SimulationStep records the mock execution of one node, in resolved
// execution order. Timestamps are monotonically non-decreasing across the
// sequence.
type SimulationStep struct {
	NodeID    string         `json:"nodeId"`
	NodeKind  NodeKind       `json:"nodeType"`
	NodeTitle string         `json:"nodeTitle"`
	Status    StepStatus     `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Details   string         `json:"details"`
	Output    map[string]any `json:"output,omitempty"`
}

// SimulationResult is the ephemeral trace of one run. It is never
// persisted; every run recomputes it.
type SimulationResult struct {
	WorkflowID    string           `json:"workflowId"`
	Status        SimulationStatus `json:"status"`
	Steps         []SimulationStep `json:"steps"`
	Errors        []string         `json:"errors"`
	StartTime     time.Time        `json:"startTime"`
	EndTime       time.Time        `json:"endTime"`
	TotalDuration int64            `json:"totalDuration"` // milliseconds, end - start
}
