// Package workflow implements the repository: CRUD, import and export of
// named workflows over a pluggable key-value store.
package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/flowhr/flowhr/pkg/models"
	"github.com/flowhr/flowhr/pkg/persistence"
)

// Repository owns workflow lifecycle and timestamps. Callers never set
// CreatedAt or UpdatedAt themselves.
type Repository struct {
	store persistence.Store
}

// NewRepository creates a repository over the given store.
func NewRepository(store persistence.Store) *Repository {
	return &Repository{store: store}
}

// HealthCheck reports the health of the underlying store.
func (r *Repository) HealthCheck(ctx context.Context) (string, bool) {
	if r.store == nil {
		return "Persistence layer not initialized", false
	}

	if err := r.store.HealthCheck(ctx); err != nil {
		return "Persistence layer is unhealthy: " + err.Error(), false
	}

	return "Persistence layer is healthy", true
}

// Create persists a new workflow with the given name and an empty graph.
func (r *Repository) Create(ctx context.Context, name string) (*models.Workflow, error) {
	now := time.Now().UTC()

	workflow := &models.Workflow{
		ID:        uuid.New().String(),
		Name:      name,
		Nodes:     []models.Node{},
		Edges:     []models.Edge{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := r.store.Set(ctx, workflow); err != nil {
		return nil, persistence.NewWorkflowError("Create", workflow.ID, err)
	}

	return workflow, nil
}

// GetByID fetches a workflow, or persistence.ErrWorkflowNotFound.
func (r *Repository) GetByID(ctx context.Context, id string) (*models.Workflow, error) {
	workflow, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, persistence.NewWorkflowError("GetByID", id, err)
	}

	if workflow == nil {
		return nil, persistence.NewWorkflowError("GetByID", id, persistence.ErrWorkflowNotFound)
	}

	return workflow, nil
}

// GetAll returns every workflow, most recently updated first.
func (r *Repository) GetAll(ctx context.Context) ([]*models.Workflow, error) {
	workflows, err := r.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflows: %w", err)
	}

	sort.Slice(workflows, func(i, j int) bool {
		return workflows[i].UpdatedAt.After(workflows[j].UpdatedAt)
	})

	return workflows, nil
}

// Save merges a graph snapshot into an existing workflow and bumps
// UpdatedAt. An unknown id yields persistence.ErrWorkflowNotFound.
func (r *Repository) Save(ctx context.Context, id string, nodes []models.Node, edges []models.Edge) (*models.Workflow, error) {
	existing, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, persistence.NewWorkflowError("Save", id, err)
	}

	if existing == nil {
		return nil, persistence.NewWorkflowError("Save", id, persistence.ErrWorkflowNotFound)
	}

	existing.Nodes = nodes
	existing.Edges = edges
	existing.UpdatedAt = time.Now().UTC()

	if err := r.store.Set(ctx, existing); err != nil {
		return nil, persistence.NewWorkflowError("Save", id, err)
	}

	return existing, nil
}

// Rename changes the workflow name and bumps UpdatedAt.
func (r *Repository) Rename(ctx context.Context, id, name string) (*models.Workflow, error) {
	existing, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, persistence.NewWorkflowError("Rename", id, err)
	}

	if existing == nil {
		return nil, persistence.NewWorkflowError("Rename", id, persistence.ErrWorkflowNotFound)
	}

	existing.Name = name
	existing.UpdatedAt = time.Now().UTC()

	if err := r.store.Set(ctx, existing); err != nil {
		return nil, persistence.NewWorkflowError("Rename", id, err)
	}

	return existing, nil
}

// Delete removes a workflow and reports whether it existed.
func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	removed, err := r.store.Delete(ctx, id)
	if err != nil {
		return false, persistence.NewWorkflowError("Delete", id, err)
	}

	return removed, nil
}

// Export serializes a workflow as an indented JSON document.
func (r *Repository) Export(ctx context.Context, id string) ([]byte, error) {
	workflow, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(workflow, "", "  ")
	if err != nil {
		return nil, persistence.NewWorkflowError("Export", id, err)
	}

	return data, nil
}
