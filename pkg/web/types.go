// Package web provides HTTP request and response types for the workflow API.
package web

import "github.com/flowhr/flowhr/pkg/models"

// CreateWorkflowRequest represents the request body for creating a new workflow.
type CreateWorkflowRequest struct {
	Name string `json:"name" validate:"required,min=1"`
}

// RenameWorkflowRequest represents the request body for renaming a workflow.
type RenameWorkflowRequest struct {
	Name string `json:"name" validate:"required,min=1"`
}

// SaveWorkflowRequest represents the request body for replacing a workflow's
// graph. Nodes and edges are saved as a unit.
type SaveWorkflowRequest struct {
	Nodes []models.Node `json:"nodes"`
	Edges []models.Edge `json:"edges"`
}

// GraphRequest carries an ad-hoc graph for validation or simulation without
// persisting it first.
type GraphRequest struct {
	Nodes []models.Node `json:"nodes"`
	Edges []models.Edge `json:"edges"`
}

// ValidationResponse is the result of running workflow validation. Valid is
// true when no finding of kind error is present; warnings do not block.
type ValidationResponse struct {
	Valid     bool                     `json:"valid"`
	Errors    []models.ValidationError `json:"errors"`
	Formatted string                   `json:"formatted,omitempty"`
}

// NewValidationResponse builds a response from validator findings.
func NewValidationResponse(errs []models.ValidationError) ValidationResponse {
	valid := true

	for _, err := range errs {
		if err.Kind == models.ErrorKindError {
			valid = false

			break
		}
	}

	if errs == nil {
		errs = []models.ValidationError{}
	}

	return ValidationResponse{
		Valid:     valid,
		Errors:    errs,
		Formatted: models.FormatValidationErrors(errs),
	}
}
