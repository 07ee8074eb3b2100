package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"

	"github.com/flowhr/flowhr/pkg/models"
	"github.com/flowhr/flowhr/pkg/persistence"
)

// ErrInvalidFormat indicates an import payload is not a valid serialized
// workflow document. Nothing is persisted when it is returned.
var ErrInvalidFormat = errors.New("invalid workflow format")

// importedNameSuffix marks workflows created through import.
const importedNameSuffix = " (Imported)"

// importSchema is the structural contract of a serialized workflow: the
// four top-level fields must be present and correctly typed. Everything
// else is passed through opaquely, including edges whose endpoints no
// longer resolve to nodes.
var importSchema = map[string]any{
	"type":     "object",
	"required": []string{"id", "name", "nodes", "edges"},
	"properties": map[string]any{
		"id":    map[string]any{"type": "string"},
		"name":  map[string]any{"type": "string"},
		"nodes": map[string]any{"type": "array"},
		"edges": map[string]any{"type": "array"},
	},
}

// Import validates and persists a serialized workflow document. The stored
// copy always gets a fresh id, so importing can never collide with the
// source workflow, and the name is suffixed with " (Imported)".
func (r *Repository) Import(ctx context.Context, data []byte) (*models.Workflow, error) {
	if err := validateImportPayload(data); err != nil {
		return nil, err
	}

	var workflow models.Workflow
	if err := json.Unmarshal(data, &workflow); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, err.Error())
	}

	now := time.Now().UTC()
	workflow.ID = uuid.New().String()
	workflow.Name += importedNameSuffix
	workflow.CreatedAt = now
	workflow.UpdatedAt = now

	if workflow.Nodes == nil {
		workflow.Nodes = []models.Node{}
	}

	if workflow.Edges == nil {
		workflow.Edges = []models.Edge{}
	}

	if err := r.store.Set(ctx, &workflow); err != nil {
		return nil, persistence.NewWorkflowError("Import", workflow.ID, err)
	}

	return &workflow, nil
}

func validateImportPayload(data []byte) error {
	if !json.Valid(data) {
		return fmt.Errorf("%w: payload is not valid JSON", ErrInvalidFormat)
	}

	schemaLoader := gojsonschema.NewGoLoader(importSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidFormat, err.Error())
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}

		return fmt.Errorf("%w: %s", ErrInvalidFormat, strings.Join(details, "; "))
	}

	return nil
}
