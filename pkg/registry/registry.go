// Package registry is the single source of truth for node kind schemas and
// the automation action catalog.
package registry

import (
	"log/slog"

	"github.com/flowhr/flowhr/pkg/models"
)

// Registry maps each node kind to its data schema and exposes the catalog
// of automation actions an AutomatedStep may reference.
type Registry struct {
	logger  *slog.Logger
	schemas map[models.NodeKind]*models.NodeSchema
	order   []models.NodeKind
	actions []models.AutomationAction
}

// NewRegistry creates a registry with the built-in kind schemas and the
// default automation catalog registered.
func NewRegistry(log *slog.Logger) *Registry {
	r := &Registry{
		logger:  log,
		schemas: make(map[models.NodeKind]*models.NodeSchema),
	}

	r.registerDefaultSchemas()
	r.registerDefaultActions()

	return r
}

// RegisterSchema registers or replaces the schema for a node kind.
func (r *Registry) RegisterSchema(schema *models.NodeSchema) {
	if _, exists := r.schemas[schema.Kind]; !exists {
		r.order = append(r.order, schema.Kind)
	}

	r.schemas[schema.Kind] = schema
}

// SchemaFor resolves the schema for a kind. A kind without a schema is
// never valid input to any other component.
func (r *Registry) SchemaFor(kind models.NodeKind) (*models.NodeSchema, bool) {
	schema, ok := r.schemas[kind]

	return schema, ok
}

// HealthCheck reports whether the registry holds usable schemas.
func (r *Registry) HealthCheck() (string, bool) {
	if len(r.schemas) == 0 {
		return "no node schemas registered", false
	}

	return "ok", true
}

// Schemas returns all registered schemas in registration order.
func (r *Registry) Schemas() []*models.NodeSchema {
	schemas := make([]*models.NodeSchema, 0, len(r.order))
	for _, kind := range r.order {
		schemas = append(schemas, r.schemas[kind])
	}

	return schemas
}
