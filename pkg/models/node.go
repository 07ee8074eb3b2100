// Package models defines the core domain models for the HR workflow builder.
package models

import (
	"encoding/json"
	"fmt"
)

// NodeKind is the closed set of node variants a workflow graph may contain.
type NodeKind string

const (
	KindStart         NodeKind = "start"
	KindTask          NodeKind = "task"
	KindApproval      NodeKind = "approval"
	KindAutomatedStep NodeKind = "automated_step"
	KindEnd           NodeKind = "end"
)

// Kinds returns all built-in node kinds in declaration order.
func Kinds() []NodeKind {
	return []NodeKind{KindStart, KindTask, KindApproval, KindAutomatedStep, KindEnd}
}

// Position is the canvas coordinate of a node, owned by the graph and
// mutated by drag operations.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is a single step instance in a workflow graph.
type Node struct {
	ID       string   `json:"id"`
	Kind     NodeKind `json:"type"`
	Position Position `json:"position"`
	Data     NodeData `json:"data"`
}

type nodeEnvelope struct {
	ID       string          `json:"id"`
	Kind     NodeKind        `json:"type"`
	Position Position        `json:"position"`
	Data     json.RawMessage `json:"data"`
}

// UnmarshalJSON decodes the node envelope and dispatches the data payload
// on the kind tag. Unrecognized kinds decode into UnknownData so callers
// can report them instead of failing the whole document.
func (n *Node) UnmarshalJSON(raw []byte) error {
	var env nodeEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return err
	}

	data, err := DecodeNodeData(env.Kind, env.Data)
	if err != nil {
		return fmt.Errorf("node %s: %w", env.ID, err)
	}

	n.ID = env.ID
	n.Kind = env.Kind
	n.Position = env.Position
	n.Data = data

	return nil
}

// DecodeNodeData decodes a raw data payload into the typed variant for the
// given kind. A nil or empty payload yields the zero variant.
func DecodeNodeData(kind NodeKind, raw json.RawMessage) (NodeData, error) {
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}

	switch kind {
	case KindStart:
		var data StartData
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, err
		}

		if data.Metadata == nil {
			data.Metadata = map[string]string{}
		}

		return data, nil
	case KindTask:
		var data TaskData
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, err
		}

		if data.CustomFields == nil {
			data.CustomFields = map[string]string{}
		}

		return data, nil
	case KindApproval:
		var data ApprovalData
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, err
		}

		return data, nil
	case KindAutomatedStep:
		var data AutomatedStepData
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, err
		}

		if data.ActionParameters == nil {
			data.ActionParameters = map[string]any{}
		}

		return data, nil
	case KindEnd:
		var data EndData
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, err
		}

		return data, nil
	default:
		return UnknownData{kind: kind, Raw: append(json.RawMessage(nil), raw...)}, nil
	}
}

// Edge connects the output of one node to the input of another. Handles
// name the sub-port on each endpoint; Type and Animated are rendering hints
// carried through unchanged.
type Edge struct {
	ID           string  `json:"id"`
	Source       string  `json:"source"`
	Target       string  `json:"target"`
	SourceHandle *string `json:"sourceHandle"`
	TargetHandle *string `json:"targetHandle"`
	Type         string  `json:"type"`
	Animated     bool    `json:"animated"`
}
