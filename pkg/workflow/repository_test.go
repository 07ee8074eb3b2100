package workflow

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowhr/flowhr/pkg/models"
	"github.com/flowhr/flowhr/pkg/persistence"
	"github.com/flowhr/flowhr/pkg/persistence/memory"
)

func newTestRepository() *Repository {
	return NewRepository(memory.NewStore())
}

func sampleGraph() ([]models.Node, []models.Edge) {
	nodes := []models.Node{
		{
			ID:   "start-1",
			Kind: models.KindStart,
			Data: models.StartData{BaseData: models.BaseData{ID: "start-1"}, Title: "Start", Metadata: map[string]string{}},
		},
		{
			ID:       "task-1",
			Kind:     models.KindTask,
			Position: models.Position{X: 220, Y: 80},
			Data: models.TaskData{
				BaseData:     models.BaseData{ID: "task-1"},
				Title:        "Prepare contract",
				Description:  "Draft and send the employment contract",
				Assignee:     "casey",
				DueDate:      "2026-09-15",
				CustomFields: map[string]string{},
			},
		},
		{
			ID:   "end-1",
			Kind: models.KindEnd,
			Data: models.EndData{BaseData: models.BaseData{ID: "end-1"}, EndMessage: "Onboarding complete"},
		},
	}

	edges := []models.Edge{
		{ID: "e1", Source: "start-1", Target: "task-1", Type: "default"},
		{ID: "e2", Source: "task-1", Target: "end-1", Type: "default"},
	}

	return nodes, edges
}

func TestRepository_Create(t *testing.T) {
	repo := newTestRepository()

	created, err := repo.Create(t.Context(), "Onboarding")
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Onboarding", created.Name)
	assert.Empty(t, created.Nodes)
	assert.Empty(t, created.Edges)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo := newTestRepository()

	workflow, err := repo.GetByID(t.Context(), "ghost")
	require.Error(t, err)
	assert.Nil(t, workflow)
	assert.True(t, persistence.IsWorkflowNotFound(err))
}

func TestRepository_Save_BumpsUpdatedAt(t *testing.T) {
	repo := newTestRepository()

	created, err := repo.Create(t.Context(), "Onboarding")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	nodes, edges := sampleGraph()

	saved, err := repo.Save(t.Context(), created.ID, nodes, edges)
	require.NoError(t, err)
	require.NotNil(t, saved)

	assert.Len(t, saved.Nodes, 3)
	assert.Len(t, saved.Edges, 2)
	assert.Equal(t, created.CreatedAt, saved.CreatedAt)
	assert.True(t, saved.UpdatedAt.After(created.UpdatedAt), "UpdatedAt must advance on every save")
}

func TestRepository_Save_UnknownID(t *testing.T) {
	repo := newTestRepository()

	nodes, edges := sampleGraph()

	saved, err := repo.Save(t.Context(), "ghost", nodes, edges)
	require.Error(t, err)
	assert.Nil(t, saved)
	assert.True(t, persistence.IsWorkflowNotFound(err))
}

func TestRepository_GetAll_SortedByUpdatedAtDesc(t *testing.T) {
	repo := newTestRepository()

	first, err := repo.Create(t.Context(), "First")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	second, err := repo.Create(t.Context(), "Second")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	// Saving the older workflow makes it the most recently updated.
	nodes, edges := sampleGraph()
	_, err = repo.Save(t.Context(), first.ID, nodes, edges)
	require.NoError(t, err)

	all, err := repo.GetAll(t.Context())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, second.ID, all[1].ID)
}

func TestRepository_Delete(t *testing.T) {
	repo := newTestRepository()

	created, err := repo.Create(t.Context(), "Disposable")
	require.NoError(t, err)

	removed, err := repo.Delete(t.Context(), created.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Delete(t.Context(), created.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestRepository_Import_MissingEdgesFails(t *testing.T) {
	repo := newTestRepository()

	payload := []byte(`{"id":"wf-1","name":"Broken","nodes":[]}`)

	imported, err := repo.Import(t.Context(), payload)
	require.Error(t, err)
	assert.Nil(t, imported)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestRepository_Import_NotJSONFails(t *testing.T) {
	repo := newTestRepository()

	imported, err := repo.Import(t.Context(), []byte("not json at all"))
	require.Error(t, err)
	assert.Nil(t, imported)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestRepository_Import_AssignsFreshID(t *testing.T) {
	repo := newTestRepository()

	payload := []byte(`{"id":"source-id","name":"Relocation","nodes":[],"edges":[]}`)

	imported, err := repo.Import(t.Context(), payload)
	require.NoError(t, err)
	require.NotNil(t, imported)

	assert.NotEqual(t, "source-id", imported.ID, "import never reuses the source id")
	assert.Equal(t, "Relocation (Imported)", imported.Name)

	// The stored copy is retrievable under the new id only.
	_, err = repo.GetByID(t.Context(), imported.ID)
	require.NoError(t, err)

	_, err = repo.GetByID(t.Context(), "source-id")
	require.Error(t, err)
}

func TestRepository_Import_AllowsDanglingEdges(t *testing.T) {
	repo := newTestRepository()

	// Edges referencing removed nodes are accepted; referential integrity
	// is the validator's concern, not the importer's.
	payload := []byte(`{"id":"x","name":"Legacy","nodes":[],"edges":[{"id":"e1","source":"gone","target":"also-gone","sourceHandle":null,"targetHandle":null,"type":"default","animated":false}]}`)

	imported, err := repo.Import(t.Context(), payload)
	require.NoError(t, err)
	require.Len(t, imported.Edges, 1)
	assert.Equal(t, "gone", imported.Edges[0].Source)
}

func TestRepository_ExportImport_RoundTrip(t *testing.T) {
	repo := newTestRepository()

	created, err := repo.Create(t.Context(), "Onboarding")
	require.NoError(t, err)

	nodes, edges := sampleGraph()
	_, err = repo.Save(t.Context(), created.ID, nodes, edges)
	require.NoError(t, err)

	exported, err := repo.Export(t.Context(), created.ID)
	require.NoError(t, err)

	imported, err := repo.Import(t.Context(), exported)
	require.NoError(t, err)

	assert.NotEqual(t, created.ID, imported.ID)
	assert.True(t, strings.HasSuffix(imported.Name, " (Imported)"))
	assert.Equal(t, nodes, imported.Nodes)
	assert.Equal(t, edges, imported.Edges)
}

func TestRepository_Export_UnknownID(t *testing.T) {
	repo := newTestRepository()

	data, err := repo.Export(t.Context(), "ghost")
	require.Error(t, err)
	assert.Nil(t, data)
	assert.True(t, persistence.IsWorkflowNotFound(err))
}

func TestRepository_Import_PreservesUnknownFields(t *testing.T) {
	repo := newTestRepository()

	payload := []byte(`{"id":"x","name":"Tagged","nodes":[],"edges":[],"labels":["hr","onboarding"]}`)

	imported, err := repo.Import(t.Context(), payload)
	require.NoError(t, err)

	exported, err := repo.Export(t.Context(), imported.ID)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(exported, &doc))
	assert.JSONEq(t, `["hr","onboarding"]`, string(doc["labels"]))
}
