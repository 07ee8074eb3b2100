// Package validation implements per-field node data validation and the
// workflow-level structural checks run before save.
package validation

import (
	"fmt"
	"strings"

	"github.com/flowhr/flowhr/pkg/models"
)

// ValidateNode checks the typed data payload of a single node and returns
// one finding per violated field, in field-declaration order. It is pure:
// the same payload always yields the same findings.
func ValidateNode(data models.NodeData) []models.FieldError {
	var errs []models.FieldError

	switch d := data.(type) {
	case models.StartData:
		if d.Title == "" {
			errs = append(errs, models.FieldError{Field: "title", Message: "Title is required"})
		}
	case models.TaskData:
		switch {
		case d.Title == "":
			errs = append(errs, models.FieldError{Field: "title", Message: "Title is required"})
		case strings.TrimSpace(d.Title) == "":
			errs = append(errs, models.FieldError{Field: "title", Message: "Title cannot be empty or whitespace only"})
		}

		if d.Description == "" {
			errs = append(errs, models.FieldError{Field: "description", Message: "Description is required"})
		}

		if d.Assignee == "" {
			errs = append(errs, models.FieldError{Field: "assignee", Message: "Assignee is required"})
		}

		if d.DueDate == "" {
			errs = append(errs, models.FieldError{Field: "dueDate", Message: "Due date is required"})
		}
	case models.ApprovalData:
		if d.Title == "" {
			errs = append(errs, models.FieldError{Field: "title", Message: "Title is required"})
		}

		if d.ApproverRole == "" {
			errs = append(errs, models.FieldError{Field: "approverRole", Message: "Approver role is required"})
		}

		if d.AutoApproveThreshold < 0 {
			errs = append(errs, models.FieldError{Field: "autoApproveThreshold", Message: "Threshold must be non-negative"})
		}
	case models.AutomatedStepData:
		if d.Title == "" {
			errs = append(errs, models.FieldError{Field: "title", Message: "Title is required"})
		}

		if d.Action == "" {
			errs = append(errs, models.FieldError{Field: "action", Message: "Action is required"})
		}
	case models.EndData:
		if d.EndMessage == "" {
			errs = append(errs, models.FieldError{Field: "endMessage", Message: "End message is required"})
		}
	default:
		errs = append(errs, models.FieldError{Message: fmt.Sprintf("Unknown node type: %s", data.Kind())})
	}

	return errs
}
