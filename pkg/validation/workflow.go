package validation

import (
	"fmt"

	"github.com/flowhr/flowhr/pkg/models"
	"github.com/flowhr/flowhr/pkg/registry"
)

// Validator runs the workflow-level structural checks. Node kind schemas
// are resolved through the registry.
type Validator struct {
	registry *registry.Registry
}

// NewValidator creates a workflow validator backed by the given registry.
func NewValidator(reg *registry.Registry) *Validator {
	return &Validator{registry: reg}
}

// ValidateWorkflow runs every sub-check and collects all findings; it never
// fails fast, with one exception: an empty graph returns a single finding
// and skips everything else.
func (v *Validator) ValidateWorkflow(nodes []models.Node, edges []models.Edge) []models.ValidationError {
	errs := []models.ValidationError{}

	if len(nodes) == 0 {
		return append(errs, models.ValidationError{
			Kind:    models.ErrorKindError,
			Message: "Workflow must contain at least one node",
		})
	}

	errs = append(errs, v.validateStartNode(nodes)...)
	errs = append(errs, v.validateEndNode(nodes)...)
	errs = append(errs, v.validateConnections(nodes, edges)...)
	errs = append(errs, v.validateRequiredFields(nodes)...)

	return errs
}

// validateStartNode enforces exactly one Start node. The zero and
// more-than-one cases are independent checks even though they are mutually
// exclusive by construction.
func (v *Validator) validateStartNode(nodes []models.Node) []models.ValidationError {
	var errs []models.ValidationError

	startCount := 0

	for _, node := range nodes {
		if node.Kind == models.KindStart {
			startCount++
		}
	}

	if startCount == 0 {
		errs = append(errs, models.ValidationError{
			Kind:    models.ErrorKindError,
			Message: "Workflow must have at least one Start Node",
		})
	}

	if startCount > 1 {
		errs = append(errs, models.ValidationError{
			Kind:    models.ErrorKindError,
			Message: "Workflow can only have one Start Node",
		})
	}

	return errs
}

func (v *Validator) validateEndNode(nodes []models.Node) []models.ValidationError {
	for _, node := range nodes {
		if node.Kind == models.KindEnd {
			return nil
		}
	}

	return []models.ValidationError{{
		Kind:    models.ErrorKindError,
		Message: "Workflow must have at least one End Node",
	}}
}

// validateConnections checks that every node participates in the edge graph
// as its kind requires. A multi-node graph with no edges at all is reported
// as one blocking finding and the per-node checks are skipped for that call.
func (v *Validator) validateConnections(nodes []models.Node, edges []models.Edge) []models.ValidationError {
	var errs []models.ValidationError

	if len(nodes) > 1 && len(edges) == 0 {
		return append(errs, models.ValidationError{
			Kind:    models.ErrorKindError,
			Message: "Nodes must be connected with edges",
		})
	}

	connected := make(map[string]bool, len(nodes))
	hasOutgoing := make(map[string]bool, len(nodes))
	hasIncoming := make(map[string]bool, len(nodes))

	for _, edge := range edges {
		connected[edge.Source] = true
		connected[edge.Target] = true
		hasOutgoing[edge.Source] = true
		hasIncoming[edge.Target] = true
	}

	for _, node := range nodes {
		if !connected[node.ID] && node.Kind != models.KindStart {
			errs = append(errs, models.ValidationError{
				Kind:    models.ErrorKindError,
				Message: "Node is not connected to the workflow",
				NodeID:  node.ID,
			})
		}
	}

	for _, node := range nodes {
		if !hasOutgoing[node.ID] && node.Kind != models.KindEnd {
			errs = append(errs, models.ValidationError{
				Kind:    models.ErrorKindError,
				Message: "Node must have an outgoing connection (except End Nodes)",
				NodeID:  node.ID,
			})
		}
	}

	for _, node := range nodes {
		if !hasIncoming[node.ID] && node.Kind != models.KindStart {
			errs = append(errs, models.ValidationError{
				Kind:    models.ErrorKindError,
				Message: "Node must have an incoming connection (except Start Nodes)",
				NodeID:  node.ID,
			})
		}
	}

	return errs
}

func (v *Validator) validateRequiredFields(nodes []models.Node) []models.ValidationError {
	var errs []models.ValidationError

	for _, node := range nodes {
		if _, ok := v.registry.SchemaFor(node.Kind); !ok {
			errs = append(errs, models.ValidationError{
				Kind:    models.ErrorKindError,
				Message: fmt.Sprintf("Unknown node type: %s", node.Kind),
				NodeID:  node.ID,
			})

			continue
		}

		for _, fieldErr := range ValidateNode(node.Data) {
			errs = append(errs, models.ValidationError{
				Kind:    models.ErrorKindError,
				Message: fieldErr.Message,
				NodeID:  node.ID,
				Field:   fieldErr.Field,
			})
		}
	}

	return errs
}
