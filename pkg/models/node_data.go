package models

import "encoding/json"

// NodeData is the tagged union of per-kind node payloads. Every consumer
// (validator, simulator, API mapper) switches exhaustively on the concrete
// variant rather than poking at a dynamic record.
type NodeData interface {
	Kind() NodeKind
}

// BaseData carries the fields shared by every variant. ID mirrors the
// owning node id; Content is a legacy free-text field kept for older
// documents.
type BaseData struct {
	ID      string `json:"id"`
	Content string `json:"content,omitempty"`
}

// StartData is the payload of the single entry node.
type StartData struct {
	BaseData

	Title    string            `json:"title"`
	Metadata map[string]string `json:"metadata"`
}

func (StartData) Kind() NodeKind { return KindStart }

// TaskData describes a manual HR task with an assignee and a due date.
type TaskData struct {
	BaseData

	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Assignee     string            `json:"assignee"`
	DueDate      string            `json:"dueDate"`
	CustomFields map[string]string `json:"customFields"`
}

func (TaskData) Kind() NodeKind { return KindTask }

// ApprovalData describes an approval gate. AutoApproveThreshold of 0 means
// no auto-approval.
type ApprovalData struct {
	BaseData

	Title                string  `json:"title"`
	ApproverRole         string  `json:"approverRole"`
	AutoApproveThreshold float64 `json:"autoApproveThreshold"`
}

func (ApprovalData) Kind() NodeKind { return KindApproval }

// AutomatedStepData references an automation action from the catalog,
// with parameters keyed by the action's declared parameter names.
type AutomatedStepData struct {
	BaseData

	Title            string         `json:"title"`
	Action           string         `json:"action"`
	ActionParameters map[string]any `json:"actionParameters"`
}

func (AutomatedStepData) Kind() NodeKind { return KindAutomatedStep }

// EndData terminates the workflow.
type EndData struct {
	BaseData

	EndMessage  string `json:"endMessage"`
	ShowSummary bool   `json:"showSummary"`
}

func (EndData) Kind() NodeKind { return KindEnd }

// UnknownData preserves the payload of a node whose kind tag is not
// registered. It is never valid input to save but must not crash decoding.
type UnknownData struct {
	Raw json.RawMessage

	kind NodeKind
}

func (u UnknownData) Kind() NodeKind { return u.kind }

// MarshalJSON emits the original payload untouched.
func (u UnknownData) MarshalJSON() ([]byte, error) {
	if len(u.Raw) == 0 {
		return []byte("{}"), nil
	}

	return u.Raw, nil
}

// Approver roles offered by the editing UI. The validator does not
// hard-enforce this set.
const (
	RoleManager  = "Manager"
	RoleHRBP     = "HRBP"
	RoleDirector = "Director"
	RoleVP       = "VP"
	RoleCLevel   = "C-Level"
)

// ApproverRoles returns the fixed role set in display order.
func ApproverRoles() []string {
	return []string{RoleManager, RoleHRBP, RoleDirector, RoleVP, RoleCLevel}
}
