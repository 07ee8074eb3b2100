package registry

import "github.com/flowhr/flowhr/pkg/models"

func float64Ptr(v float64) *float64 { return &v }

// registerDefaultSchemas registers the five built-in node kinds. Field
// order matches the editing forms and is the order validation findings are
// reported in.
func (r *Registry) registerDefaultSchemas() {
	r.RegisterSchema(&models.NodeSchema{
		Kind:        models.KindStart,
		Title:       "Start",
		Description: "Entry point of the workflow",
		Fields: []models.FieldSpec{
			{Name: "title", Label: "Title", Type: models.FieldTypeString, Required: true, Message: "Title is required"},
			{Name: "metadata", Label: "Metadata", Type: models.FieldTypeMap, Default: map[string]string{}},
		},
	})

	r.RegisterSchema(&models.NodeSchema{
		Kind:        models.KindTask,
		Title:       "Task",
		Description: "Manual HR task with an assignee and due date",
		Fields: []models.FieldSpec{
			{Name: "title", Label: "Title", Type: models.FieldTypeString, Required: true, Message: "Title is required"},
			{Name: "description", Label: "Description", Type: models.FieldTypeString, Required: true, Message: "Description is required"},
			{Name: "assignee", Label: "Assignee", Type: models.FieldTypeString, Required: true, Message: "Assignee is required"},
			{Name: "dueDate", Label: "Due date", Type: models.FieldTypeString, Required: true, Message: "Due date is required"},
			{Name: "customFields", Label: "Custom fields", Type: models.FieldTypeMap, Default: map[string]string{}},
		},
	})

	r.RegisterSchema(&models.NodeSchema{
		Kind:        models.KindApproval,
		Title:       "Approval",
		Description: "Approval gate decided by the configured role",
		Fields: []models.FieldSpec{
			{Name: "title", Label: "Title", Type: models.FieldTypeString, Required: true, Message: "Title is required"},
			{Name: "approverRole", Label: "Approver role", Type: models.FieldTypeString, Required: true, Message: "Approver role is required", Enum: models.ApproverRoles()},
			{Name: "autoApproveThreshold", Label: "Auto-approve threshold", Type: models.FieldTypeNumber, Min: float64Ptr(0), Message: "Threshold must be non-negative", Default: 0},
		},
	})

	r.RegisterSchema(&models.NodeSchema{
		Kind:        models.KindAutomatedStep,
		Title:       "Automated Step",
		Description: "Executes an automation action from the catalog",
		Fields: []models.FieldSpec{
			{Name: "title", Label: "Title", Type: models.FieldTypeString, Required: true, Message: "Title is required"},
			{Name: "action", Label: "Action", Type: models.FieldTypeString, Required: true, Message: "Action is required"},
			{Name: "actionParameters", Label: "Action parameters", Type: models.FieldTypeMap, Default: map[string]any{}},
		},
	})

	r.RegisterSchema(&models.NodeSchema{
		Kind:        models.KindEnd,
		Title:       "End",
		Description: "Terminates the workflow",
		Fields: []models.FieldSpec{
			{Name: "endMessage", Label: "End message", Type: models.FieldTypeString, Required: true, Message: "End message is required"},
			{Name: "showSummary", Label: "Show summary", Type: models.FieldTypeBoolean, Default: false},
		},
	})
}
