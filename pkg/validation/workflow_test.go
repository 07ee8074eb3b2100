package validation

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowhr/flowhr/pkg/models"
	"github.com/flowhr/flowhr/pkg/registry"
)

func newTestValidator() *Validator {
	return NewValidator(registry.NewRegistry(slog.Default()))
}

func startNode(id string) models.Node {
	return models.Node{
		ID:   id,
		Kind: models.KindStart,
		Data: models.StartData{
			BaseData: models.BaseData{ID: id},
			Title:    "Start",
			Metadata: map[string]string{},
		},
	}
}

func taskNode(id string) models.Node {
	return models.Node{
		ID:   id,
		Kind: models.KindTask,
		Data: models.TaskData{
			BaseData:     models.BaseData{ID: id},
			Title:        "Collect documents",
			Description:  "Gather signed forms",
			Assignee:     "casey",
			DueDate:      "2026-09-15",
			CustomFields: map[string]string{},
		},
	}
}

func endNode(id string) models.Node {
	return models.Node{
		ID:   id,
		Kind: models.KindEnd,
		Data: models.EndData{
			BaseData:   models.BaseData{ID: id},
			EndMessage: "Done",
		},
	}
}

func edge(id, source, target string) models.Edge {
	return models.Edge{ID: id, Source: source, Target: target, Type: "default"}
}

func TestValidateWorkflow_EmptyGraphShortCircuits(t *testing.T) {
	v := newTestValidator()

	errs := v.ValidateWorkflow(nil, nil)
	require.Len(t, errs, 1)
	assert.Equal(t, "Workflow must contain at least one node", errs[0].Message)
}

func TestValidateWorkflow_ValidGraphHasNoErrors(t *testing.T) {
	v := newTestValidator()

	nodes := []models.Node{startNode("a"), taskNode("b"), endNode("c")}
	edges := []models.Edge{edge("e1", "a", "b"), edge("e2", "b", "c")}

	assert.Empty(t, v.ValidateWorkflow(nodes, edges))
}

func TestValidateWorkflow_MissingStartNode(t *testing.T) {
	v := newTestValidator()

	nodes := []models.Node{taskNode("b"), endNode("c")}
	edges := []models.Edge{edge("e1", "b", "c")}

	errs := v.ValidateWorkflow(nodes, edges)

	messages := messagesOf(errs)
	assert.Contains(t, messages, "Workflow must have at least one Start Node")
	assert.NotContains(t, messages, "Workflow can only have one Start Node")
}

func TestValidateWorkflow_MultipleStartNodes(t *testing.T) {
	v := newTestValidator()

	second := startNode("a2")
	nodes := []models.Node{startNode("a"), second, endNode("c")}
	edges := []models.Edge{edge("e1", "a", "c"), edge("e2", "a2", "c")}

	errs := v.ValidateWorkflow(nodes, edges)
	assert.Contains(t, messagesOf(errs), "Workflow can only have one Start Node")
}

func TestValidateWorkflow_MissingEndNode(t *testing.T) {
	v := newTestValidator()

	nodes := []models.Node{startNode("a"), taskNode("b")}
	edges := []models.Edge{edge("e1", "a", "b")}

	errs := v.ValidateWorkflow(nodes, edges)
	assert.Contains(t, messagesOf(errs), "Workflow must have at least one End Node")
}

func TestValidateWorkflow_NoEdgesBlocksPerNodeChecks(t *testing.T) {
	v := newTestValidator()

	nodes := []models.Node{startNode("a"), taskNode("b"), endNode("c")}

	errs := v.ValidateWorkflow(nodes, nil)

	messages := messagesOf(errs)
	assert.Contains(t, messages, "Nodes must be connected with edges")
	assert.NotContains(t, messages, "Node is not connected to the workflow")
	assert.NotContains(t, messages, "Node must have an outgoing connection (except End Nodes)")
}

func TestValidateWorkflow_DisconnectedNode(t *testing.T) {
	v := newTestValidator()

	nodes := []models.Node{startNode("a"), taskNode("b"), taskNode("orphan"), endNode("c")}
	edges := []models.Edge{edge("e1", "a", "b"), edge("e2", "b", "c")}

	errs := v.ValidateWorkflow(nodes, edges)

	var found bool

	for _, err := range errs {
		if err.Message == "Node is not connected to the workflow" && err.NodeID == "orphan" {
			found = true
		}
	}

	assert.True(t, found, "expected a disconnected finding for node 'orphan'")
}

func TestValidateWorkflow_MissingConnections(t *testing.T) {
	v := newTestValidator()

	// b has an incoming edge but no outgoing one, and no End node follows it.
	nodes := []models.Node{startNode("a"), taskNode("b"), endNode("c")}
	edges := []models.Edge{edge("e1", "a", "b"), edge("e2", "a", "c")}

	errs := v.ValidateWorkflow(nodes, edges)

	var outgoing bool

	for _, err := range errs {
		if err.Message == "Node must have an outgoing connection (except End Nodes)" && err.NodeID == "b" {
			outgoing = true
		}
	}

	assert.True(t, outgoing)
}

func TestValidateWorkflow_FieldErrorsTaggedWithNode(t *testing.T) {
	v := newTestValidator()

	task := taskNode("b")
	data := task.Data.(models.TaskData)
	data.Assignee = ""
	task.Data = data

	nodes := []models.Node{startNode("a"), task, endNode("c")}
	edges := []models.Edge{edge("e1", "a", "b"), edge("e2", "b", "c")}

	errs := v.ValidateWorkflow(nodes, edges)
	require.Len(t, errs, 1)
	assert.Equal(t, "assignee", errs[0].Field)
	assert.Equal(t, "b", errs[0].NodeID)
	assert.Equal(t, "Assignee is required", errs[0].Message)
}

func TestValidateWorkflow_UnknownKind(t *testing.T) {
	v := newTestValidator()

	unknown := models.Node{ID: "x", Kind: models.NodeKind("decision")}
	nodes := []models.Node{startNode("a"), unknown, endNode("c")}
	edges := []models.Edge{edge("e1", "a", "x"), edge("e2", "x", "c")}

	errs := v.ValidateWorkflow(nodes, edges)
	require.Len(t, errs, 1)
	assert.Equal(t, "Unknown node type: decision", errs[0].Message)
	assert.Equal(t, "x", errs[0].NodeID)
}

func TestFormatValidationErrors(t *testing.T) {
	errs := []models.ValidationError{
		{Kind: models.ErrorKindError, Message: "Assignee is required", NodeID: "b", Field: "assignee"},
		{Kind: models.ErrorKindError, Message: "Node is not connected to the workflow", NodeID: "orphan"},
		{Kind: models.ErrorKindError, Message: "Workflow must have at least one End Node"},
	}

	formatted := models.FormatValidationErrors(errs)
	assert.Equal(t,
		"1. assignee: Assignee is required (Node: b)\n"+
			"2. Node is not connected to the workflow (Node: orphan)\n"+
			"3. Workflow must have at least one End Node",
		formatted)

	assert.Empty(t, models.FormatValidationErrors(nil))
}

func messagesOf(errs []models.ValidationError) []string {
	messages := make([]string, 0, len(errs))
	for _, err := range errs {
		messages = append(messages, err.Message)
	}

	return messages
}
