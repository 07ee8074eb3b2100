// Package testutil provides test data builders and utilities for testing.
package testutil

import (
	"github.com/flowhr/flowhr/pkg/models"
	"github.com/google/uuid"
)

// StartNode builds a start node with a fresh id unless one is given.
func StartNode(id string, overrides ...func(*models.StartData)) models.Node {
	if id == "" {
		id = uuid.New().String()
	}

	data := models.StartData{
		BaseData: models.BaseData{ID: id},
		Title:    "New Hire Onboarding",
		Metadata: map[string]string{},
	}

	for _, override := range overrides {
		override(&data)
	}

	return models.Node{ID: id, Kind: models.KindStart, Data: data}
}

// TaskNode builds a task node with required fields populated.
func TaskNode(id string, overrides ...func(*models.TaskData)) models.Node {
	if id == "" {
		id = uuid.New().String()
	}

	data := models.TaskData{
		BaseData:     models.BaseData{ID: id},
		Title:        "Collect paperwork",
		Description:  "Gather signed forms",
		Assignee:     "hr-ops",
		DueDate:      "2026-01-15",
		CustomFields: map[string]string{},
	}

	for _, override := range overrides {
		override(&data)
	}

	return models.Node{ID: id, Kind: models.KindTask, Data: data}
}

// ApprovalNode builds an approval node with a manager approver.
func ApprovalNode(id string, overrides ...func(*models.ApprovalData)) models.Node {
	if id == "" {
		id = uuid.New().String()
	}

	data := models.ApprovalData{
		BaseData:     models.BaseData{ID: id},
		Title:        "Manager sign-off",
		ApproverRole: models.RoleManager,
	}

	for _, override := range overrides {
		override(&data)
	}

	return models.Node{ID: id, Kind: models.KindApproval, Data: data}
}

// AutomatedStepNode builds an automated step referencing a catalog action.
func AutomatedStepNode(id string, overrides ...func(*models.AutomatedStepData)) models.Node {
	if id == "" {
		id = uuid.New().String()
	}

	data := models.AutomatedStepData{
		BaseData:         models.BaseData{ID: id},
		Title:            "Welcome email",
		Action:           "send_email",
		ActionParameters: map[string]any{"to": "{{employee.email}}"},
	}

	for _, override := range overrides {
		override(&data)
	}

	return models.Node{ID: id, Kind: models.KindAutomatedStep, Data: data}
}

// EndNode builds an end node.
func EndNode(id string, overrides ...func(*models.EndData)) models.Node {
	if id == "" {
		id = uuid.New().String()
	}

	data := models.EndData{
		BaseData:   models.BaseData{ID: id},
		EndMessage: "Workflow completed",
	}

	for _, override := range overrides {
		override(&data)
	}

	return models.Node{ID: id, Kind: models.KindEnd, Data: data}
}

// Edge builds an edge between two nodes.
func Edge(id, source, target string) models.Edge {
	if id == "" {
		id = uuid.New().String()
	}

	return models.Edge{ID: id, Source: source, Target: target}
}

// LinearGraph wires the given nodes into a chain and returns both slices.
func LinearGraph(nodes ...models.Node) ([]models.Node, []models.Edge) {
	edges := make([]models.Edge, 0, len(nodes))

	for i := 1; i < len(nodes); i++ {
		edges = append(edges, Edge("", nodes[i-1].ID, nodes[i].ID))
	}

	return nodes, edges
}
