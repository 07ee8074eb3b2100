package models

import (
	"encoding/json"
	"time"
)

// Workflow is the persisted entity: a named graph snapshot plus the
// repository-owned timestamps. UpdatedAt advances on every save.
//
// Extra holds top-level document fields beyond the known ones; they are
// carried through import/export opaquely.
type Workflow struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Nodes     []Node    `json:"nodes"`
	Edges     []Edge    `json:"edges"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Extra map[string]json.RawMessage `json:"-"`
}

// workflowAlias avoids recursing into the custom (un)marshalers.
type workflowAlias Workflow

var workflowKnownKeys = []string{"id", "name", "nodes", "edges", "createdAt", "updatedAt"}

// UnmarshalJSON decodes the known fields and keeps every other top-level
// field opaquely in Extra.
func (w *Workflow) UnmarshalJSON(data []byte) error {
	var alias workflowAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	for _, key := range workflowKnownKeys {
		delete(raw, key)
	}

	if len(raw) > 0 {
		alias.Extra = raw
	}

	*w = Workflow(alias)

	return nil
}

// MarshalJSON emits the known fields plus any opaque extras. Known fields
// win on key collision.
func (w Workflow) MarshalJSON() ([]byte, error) {
	known, err := json.Marshal(workflowAlias(w))
	if err != nil {
		return nil, err
	}

	if len(w.Extra) == 0 {
		return known, nil
	}

	doc := make(map[string]json.RawMessage, len(w.Extra)+len(workflowKnownKeys))
	for key, value := range w.Extra {
		doc[key] = value
	}

	var knownFields map[string]json.RawMessage
	if err := json.Unmarshal(known, &knownFields); err != nil {
		return nil, err
	}

	for key, value := range knownFields {
		doc[key] = value
	}

	return json.Marshal(doc)
}

// FindNode returns the node with the given id, or nil.
func (w *Workflow) FindNode(id string) *Node {
	for i := range w.Nodes {
		if w.Nodes[i].ID == id {
			return &w.Nodes[i]
		}
	}

	return nil
}
