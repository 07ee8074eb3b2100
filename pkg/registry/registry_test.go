package registry

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowhr/flowhr/pkg/models"
)

func TestNewRegistry_BuiltinSchemas(t *testing.T) {
	reg := NewRegistry(slog.Default())

	for _, kind := range models.Kinds() {
		schema, ok := reg.SchemaFor(kind)
		require.True(t, ok, "expected schema for kind %s", kind)
		assert.Equal(t, kind, schema.Kind)
		assert.NotEmpty(t, schema.Fields)
	}
}

func TestRegistry_SchemaFor_UnknownKind(t *testing.T) {
	reg := NewRegistry(slog.Default())

	schema, ok := reg.SchemaFor(models.NodeKind("decision"))
	assert.False(t, ok)
	assert.Nil(t, schema)
}

func TestRegistry_Schemas_Order(t *testing.T) {
	reg := NewRegistry(slog.Default())

	schemas := reg.Schemas()
	require.Len(t, schemas, 5)

	kinds := make([]models.NodeKind, 0, len(schemas))
	for _, schema := range schemas {
		kinds = append(kinds, schema.Kind)
	}

	assert.Equal(t, models.Kinds(), kinds)
}

func TestRegistry_ApprovalThresholdField(t *testing.T) {
	reg := NewRegistry(slog.Default())

	schema, ok := reg.SchemaFor(models.KindApproval)
	require.True(t, ok)

	field := schema.Field("autoApproveThreshold")
	require.NotNil(t, field)
	assert.False(t, field.Required)
	require.NotNil(t, field.Min)
	assert.Equal(t, 0.0, *field.Min)
}

func TestRegistry_Actions(t *testing.T) {
	reg := NewRegistry(slog.Default())

	actions := reg.Actions()
	require.Len(t, actions, 6)

	action := reg.ActionByID("send_email")
	require.NotNil(t, action)
	assert.Equal(t, "Send Email", action.Label)
	assert.Equal(t, []string{"to", "subject", "body"}, action.Params)

	assert.Nil(t, reg.ActionByID("launch_rocket"))
}
