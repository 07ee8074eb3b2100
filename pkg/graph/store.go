// Package graph holds the live node/edge state of one workflow editing
// session. All mutations go through the Store; it is owned by a single
// logical actor and performs no locking of its own.
package graph

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/flowhr/flowhr/pkg/models"
)

var (
	// ErrNodeNotFound indicates a mutation referenced a node id not present
	// in the graph.
	ErrNodeNotFound = errors.New("node not found")

	// ErrNodeConflict indicates a node id matched more than one node. Ids
	// are unique by construction, so this is a programming-contract
	// violation and is surfaced loudly rather than resolved by picking one.
	ErrNodeConflict = errors.New("node id matches more than one node")
)

// Store is the in-memory graph for one workflow.
type Store struct {
	nodes          []models.Node // insertion order, not topological
	edges          []models.Edge
	selectedNodeID *string
}

// NewStore creates an empty graph store.
func NewStore() *Store {
	return &Store{}
}

// Load replaces the graph with a persisted snapshot and clears the
// selection.
func (s *Store) Load(nodes []models.Node, edges []models.Edge) {
	s.nodes = append([]models.Node(nil), nodes...)
	s.edges = append([]models.Edge(nil), edges...)
	s.selectedNodeID = nil
}

// Reset empties the graph and clears the selection.
func (s *Store) Reset() {
	s.nodes = nil
	s.edges = nil
	s.selectedNodeID = nil
}

// AddNode appends a node to the graph.
func (s *Store) AddNode(node models.Node) {
	s.nodes = append(s.nodes, node)
}

// RemoveNodes removes the given nodes and, in the same operation, every
// edge that has one of them as source or target.
func (s *Store) RemoveNodes(ids []string) {
	removed := make(map[string]bool, len(ids))
	for _, id := range ids {
		removed[id] = true
	}

	nodes := s.nodes[:0]

	for _, node := range s.nodes {
		if !removed[node.ID] {
			nodes = append(nodes, node)
		}
	}

	s.nodes = nodes

	edges := s.edges[:0]

	for _, edge := range s.edges {
		if !removed[edge.Source] && !removed[edge.Target] {
			edges = append(edges, edge)
		}
	}

	s.edges = edges
}

// AddEdge connects two nodes. The connect attempt is rejected as a silent
// no-op when the source node already has an outgoing edge or when either
// endpoint is not in the graph.
func (s *Store) AddEdge(edge models.Edge) {
	if s.findNode(edge.Source) == nil || s.findNode(edge.Target) == nil {
		return
	}

	for _, existing := range s.edges {
		if existing.Source == edge.Source {
			return
		}
	}

	s.edges = append(s.edges, edge)
}

// RemoveEdges removes the edges with the given ids.
func (s *Store) RemoveEdges(ids []string) {
	removed := make(map[string]bool, len(ids))
	for _, id := range ids {
		removed[id] = true
	}

	edges := s.edges[:0]

	for _, edge := range s.edges {
		if !removed[edge.ID] {
			edges = append(edges, edge)
		}
	}

	s.edges = edges
}

// RepositionNodes bulk-replaces node positions after drag operations.
// Unknown ids are ignored.
func (s *Store) RepositionNodes(positions map[string]models.Position) {
	for i := range s.nodes {
		if pos, ok := positions[s.nodes[i].ID]; ok {
			s.nodes[i].Position = pos
		}
	}
}

// PatchNodeData merges partial fields into the node's existing data,
// keeping the variant type of the node's kind. Zero or multiple id matches
// violate the id-uniqueness contract and fail loudly.
func (s *Store) PatchNodeData(nodeID string, patch map[string]any) error {
	matches := make([]int, 0, 1)

	for i := range s.nodes {
		if s.nodes[i].ID == nodeID {
			matches = append(matches, i)
		}
	}

	switch {
	case len(matches) == 0:
		return fmt.Errorf("patch node %s: %w", nodeID, ErrNodeNotFound)
	case len(matches) > 1:
		return fmt.Errorf("patch node %s: %w", nodeID, ErrNodeConflict)
	}

	node := &s.nodes[matches[0]]

	merged, err := mergeNodeData(node.Kind, node.Data, patch)
	if err != nil {
		return fmt.Errorf("patch node %s: %w", nodeID, err)
	}

	node.Data = merged

	return nil
}

// SelectNode tracks the current editing target. Passing nil clears the
// selection. No existence check is performed.
func (s *Store) SelectNode(id *string) {
	s.selectedNodeID = id
}

// SelectedNodeID returns the current editing target, or nil.
func (s *Store) SelectedNodeID() *string {
	return s.selectedNodeID
}

// Nodes returns a copy of the node sequence in insertion order.
func (s *Store) Nodes() []models.Node {
	return append([]models.Node(nil), s.nodes...)
}

// Edges returns a copy of the edge set.
func (s *Store) Edges() []models.Edge {
	return append([]models.Edge(nil), s.edges...)
}

func (s *Store) findNode(id string) *models.Node {
	for i := range s.nodes {
		if s.nodes[i].ID == id {
			return &s.nodes[i]
		}
	}

	return nil
}

// mergeNodeData round-trips the typed variant through a generic map to
// apply the partial patch, then decodes back into the variant for the kind.
func mergeNodeData(kind models.NodeKind, data models.NodeData, patch map[string]any) (models.NodeData, error) {
	current, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if err := json.Unmarshal(current, &fields); err != nil {
		return nil, err
	}

	for key, value := range patch {
		fields[key] = value
	}

	merged, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}

	return models.DecodeNodeData(kind, merged)
}
