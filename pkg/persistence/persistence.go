// Package persistence defines the durable key-value store contract the
// workflow repository persists through, and the standard error types every
// implementation uses.
package persistence

import (
	"context"

	"github.com/flowhr/flowhr/pkg/models"
)

// Store is the opaque key-value capability over workflow ids. It is the
// repository's sole persistence dependency and is swappable without
// affecting any other component. Writes are overwrite-on-save: last writer
// wins, no merge.
type Store interface {
	// Get returns the workflow for the id, or nil when the id is unknown.
	Get(ctx context.Context, id string) (*models.Workflow, error)

	// Set stores the workflow under its id, overwriting any previous value.
	Set(ctx context.Context, workflow *models.Workflow) error

	// Delete removes the workflow and reports whether it existed.
	Delete(ctx context.Context, id string) (bool, error)

	// List returns all stored workflows in unspecified order.
	List(ctx context.Context) ([]*models.Workflow, error)

	// HealthCheck reports whether the store is reachable.
	HealthCheck(ctx context.Context) error

	// Close releases any resources held by the store.
	Close(ctx context.Context) error
}
