package file

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowhr/flowhr/pkg/models"
)

func TestStore_SetGetRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	workflow := &models.Workflow{
		ID:   "wf-1",
		Name: "Onboarding",
		Nodes: []models.Node{
			{
				ID:   "start-1",
				Kind: models.KindStart,
				Data: models.StartData{
					BaseData: models.BaseData{ID: "start-1"},
					Title:    "Start",
					Metadata: map[string]string{"department": "People Ops"},
				},
			},
		},
		Edges:     []models.Edge{},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		UpdatedAt: time.Now().UTC().Truncate(time.Second),
	}

	require.NoError(t, store.Set(t.Context(), workflow))

	loaded, err := store.Get(t.Context(), "wf-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "Onboarding", loaded.Name)
	require.Len(t, loaded.Nodes, 1)

	// The data payload decodes back into the typed variant.
	data, ok := loaded.Nodes[0].Data.(models.StartData)
	require.True(t, ok)
	assert.Equal(t, "Start", data.Title)
	assert.Equal(t, map[string]string{"department": "People Ops"}, data.Metadata)
}

func TestStore_GetMissingReturnsNil(t *testing.T) {
	store := NewStore(t.TempDir())

	workflow, err := store.Get(t.Context(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, workflow)
}

func TestStore_Delete(t *testing.T) {
	store := NewStore(t.TempDir())

	workflow := &models.Workflow{ID: "wf-1", Name: "Offboarding"}
	require.NoError(t, store.Set(t.Context(), workflow))

	removed, err := store.Delete(t.Context(), "wf-1")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = store.Delete(t.Context(), "wf-1")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestStore_List(t *testing.T) {
	store := NewStore(t.TempDir())

	list, err := store.List(t.Context())
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, store.Set(t.Context(), &models.Workflow{ID: "a", Name: "A"}))
	require.NoError(t, store.Set(t.Context(), &models.Workflow{ID: "b", Name: "B"}))

	list, err = store.List(t.Context())
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
