// Package simulation computes execution order over the edge graph and runs
// the deterministic mock execution that produces a step-by-step trace.
package simulation

import "github.com/flowhr/flowhr/pkg/models"

// ResolveOrder walks the edge graph breadth-first from the start node and
// returns the node ids in visit order. Each node is visited at most once:
// a cycle simply never re-enqueues an already-visited node, so cyclic
// graphs terminate without an error. Fan-out is followed in edge order
// even though graphs built through the store have at most one outgoing
// edge per node.
func ResolveOrder(edges []models.Edge, startNodeID string) []string {
	if startNodeID == "" {
		return nil
	}

	order := make([]string, 0)
	visited := make(map[string]bool)
	queue := []string{startNodeID}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}

		visited[current] = true
		order = append(order, current)

		for _, edge := range edges {
			if edge.Source == current && !visited[edge.Target] {
				queue = append(queue, edge.Target)
			}
		}
	}

	return order
}
