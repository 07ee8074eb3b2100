package models

import (
	"fmt"
	"strings"
)

// ErrorKind classifies a validation finding.
type ErrorKind string

const (
	ErrorKindError   ErrorKind = "error"
	ErrorKindWarning ErrorKind = "warning"
)

// FieldError is a single per-field finding from node data validation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is a workflow-level finding. NodeID and Field are set
// when the finding is attributable to a specific node or field.
type ValidationError struct {
	Kind    ErrorKind `json:"type"`
	Message string    `json:"message"`
	NodeID  string    `json:"nodeId,omitempty"`
	Field   string    `json:"field,omitempty"`
}

// FormatValidationErrors renders findings as the numbered list shown to the
// user before save.
func FormatValidationErrors(errs []ValidationError) string {
	if len(errs) == 0 {
		return ""
	}

	lines := make([]string, 0, len(errs))

	for i, err := range errs {
		switch {
		case err.NodeID != "" && err.Field != "":
			lines = append(lines, fmt.Sprintf("%d. %s: %s (Node: %s)", i+1, err.Field, err.Message, err.NodeID))
		case err.NodeID != "":
			lines = append(lines, fmt.Sprintf("%d. %s (Node: %s)", i+1, err.Message, err.NodeID))
		default:
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, err.Message))
		}
	}

	return strings.Join(lines, "\n")
}
