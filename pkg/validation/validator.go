// Package validation inspects a graph document for structural problems:
// cycles, orphaned nodes and type-incompatible connections. Validation is
// advisory — callers decide what to block — except that the execution engine
// always refuses to start a run while error-level issues exist.
package validation

import (
	"fmt"

	"github.com/toolweave/toolweave/pkg/catalog"
	"github.com/toolweave/toolweave/pkg/models"
)

// Kind classifies a validation issue.
type Kind string

const (
	KindCircularDependency Kind = "circular_dependency"
	KindNoConnections      Kind = "no_connections"
	KindIncompatibleTypes  Kind = "incompatible_types"
)

// Issue is one finding. NodeID is set for node-scoped issues,
// ConnectionID for connection-scoped ones.
type Issue struct {
	NodeID       string `json:"node_id,omitempty"`
	ConnectionID string `json:"connection_id,omitempty"`
	Kind         Kind   `json:"kind"`
	Message      string `json:"message"`
}

// Result groups findings by severity. Errors block execution; warnings do not.
type Result struct {
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// HasErrors reports whether any error-level issue was found.
func (r Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// Validate inspects the document against the catalog without mutating
// either. Runs in O(V+E).
func Validate(doc *models.GraphDocument, cat *catalog.Catalog) Result {
	var result Result

	result.Errors = append(result.Errors, cycleErrors(doc)...)
	result.Errors = append(result.Errors, typeErrors(doc, cat)...)
	result.Warnings = append(result.Warnings, orphanWarnings(doc, cat)...)

	return result
}

// cycleErrors runs a depth-first search with a recursion (on-stack) set over
// the directed node graph. A global visited set guarantees each node is
// explored once regardless of fan-out. Every node discovered on a cycle is
// reported.
func cycleErrors(doc *models.GraphDocument) []Issue {
	adjacency := make(map[string][]string, len(doc.Nodes))
	for _, conn := range doc.Connections {
		adjacency[conn.SourceNodeID] = append(adjacency[conn.SourceNodeID], conn.TargetNodeID)
	}

	visited := make(map[string]bool, len(doc.Nodes))
	onStack := make(map[string]bool, len(doc.Nodes))
	inCycle := make(map[string]bool)

	var stack []string

	var visit func(nodeID string)
	visit = func(nodeID string) {
		visited[nodeID] = true
		onStack[nodeID] = true
		stack = append(stack, nodeID)

		for _, next := range adjacency[nodeID] {
			if onStack[next] {
				// Every node on the stack from the revisited node onward
				// participates in the cycle.
				for i := len(stack) - 1; i >= 0; i-- {
					inCycle[stack[i]] = true
					if stack[i] == next {
						break
					}
				}

				continue
			}

			if !visited[next] {
				visit(next)
			}
		}

		onStack[nodeID] = false
		stack = stack[:len(stack)-1]
	}

	for _, node := range doc.Nodes {
		if !visited[node.ID] {
			visit(node.ID)
		}
	}

	issues := make([]Issue, 0, len(inCycle))

	for _, node := range doc.Nodes {
		if inCycle[node.ID] {
			issues = append(issues, Issue{
				NodeID:  node.ID,
				Kind:    KindCircularDependency,
				Message: fmt.Sprintf("node %s participates in a circular dependency", node.ID),
			})
		}
	}

	return issues
}

// orphanWarnings flags nodes with no connections at all. Trigger-category
// nodes are exempt: they are legitimately sourceless before being wired.
func orphanWarnings(doc *models.GraphDocument, cat *catalog.Catalog) []Issue {
	degree := make(map[string]int, len(doc.Nodes))
	for _, conn := range doc.Connections {
		degree[conn.SourceNodeID]++
		degree[conn.TargetNodeID]++
	}

	var issues []Issue

	for _, node := range doc.Nodes {
		if degree[node.ID] > 0 || cat.IsTrigger(node.ToolID) {
			continue
		}

		issues = append(issues, Issue{
			NodeID:  node.ID,
			Kind:    KindNoConnections,
			Message: fmt.Sprintf("node %s has no connections", node.ID),
		})
	}

	return issues
}

// typeErrors flags connections whose endpoint port types are both concrete
// and different. Ports typed "any" are compatible with everything, as are
// ports the catalog does not know about (unknown tool ids are left to the
// engine's catalog lookup to reject).
func typeErrors(doc *models.GraphDocument, cat *catalog.Catalog) []Issue {
	var issues []Issue

	for _, conn := range doc.Connections {
		source := doc.NodeByID(conn.SourceNodeID)
		target := doc.NodeByID(conn.TargetNodeID)

		if source == nil || target == nil {
			continue
		}

		sourceDef, err := cat.Get(source.ToolID)
		if err != nil {
			continue
		}

		targetDef, err := cat.Get(target.ToolID)
		if err != nil {
			continue
		}

		sourceType, ok := sourceDef.PortType(conn.SourcePort, models.PortDirectionOutput)
		if !ok {
			continue
		}

		targetType, ok := targetDef.PortType(conn.TargetPort, models.PortDirectionInput)
		if !ok {
			continue
		}

		if !sourceType.Compatible(targetType) {
			issues = append(issues, Issue{
				ConnectionID: conn.ID,
				Kind:         KindIncompatibleTypes,
				Message: fmt.Sprintf("connection %s: output %s:%s (%s) is not compatible with input %s:%s (%s)",
					conn.ID, conn.SourceNodeID, conn.SourcePort, sourceType,
					conn.TargetNodeID, conn.TargetPort, targetType),
			})
		}
	}

	return issues
}
