package graph

import (
	"fmt"

	"github.com/toolweave/toolweave/pkg/models"
	"github.com/xeipuuv/gojsonschema"
)

// documentSchema is the structural JSON Schema a graph document must satisfy
// before semantic checks run. Field-level semantics (dangling endpoints,
// unknown ports) are checked separately so they can report precise errors.
var documentSchema = map[string]any{
	"type":     "object",
	"required": []string{"nodes", "connections", "metadata"},
	"properties": map[string]any{
		"nodes": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []string{"id", "tool_id"},
			},
		},
		"connections": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []string{"id", "source_node_id", "source_port", "target_node_id", "target_port"},
			},
		},
		"metadata": map[string]any{
			"type":     "object",
			"required": []string{"name", "version"},
		},
	},
}

// Export produces the portable document for the current graph state. It is a
// pure function of that state: exporting twice without mutations yields
// equal documents (modulo nothing; CreatedAt is part of graph state).
func (g *Graph) Export() *models.GraphDocument {
	g.mu.RLock()
	defer g.mu.RUnlock()

	doc := &models.GraphDocument{
		Nodes:       make([]*models.Node, 0, len(g.nodeOrder)),
		Connections: make([]*models.Connection, 0, len(g.connOrder)),
		Metadata: models.DocumentMetadata{
			Name:        g.name,
			Description: g.description,
			Version:     models.DocumentVersion,
			CreatedAt:   g.createdAt,
		},
	}

	for _, id := range g.nodeOrder {
		doc.Nodes = append(doc.Nodes, g.nodes[id].Clone())
	}

	for _, id := range g.connOrder {
		doc.Connections = append(doc.Connections, g.conns[id].Clone())
	}

	return doc
}

// Import replaces the graph contents entirely with the document's: it never
// merges. Node and connection ids are preserved verbatim. The graph is left
// untouched when the document is rejected.
func (g *Graph) Import(doc *models.GraphDocument) error {
	if err := CheckDocument(doc); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.name = doc.Metadata.Name
	g.description = doc.Metadata.Description
	if !doc.Metadata.CreatedAt.IsZero() {
		g.createdAt = doc.Metadata.CreatedAt
	}

	g.nodes = make(map[string]*models.Node, len(doc.Nodes))
	g.nodeOrder = make([]string, 0, len(doc.Nodes))
	g.conns = make(map[string]*models.Connection, len(doc.Connections))
	g.connOrder = make([]string, 0, len(doc.Connections))
	g.nodeSeq = 0
	g.connSeq = 0

	for _, node := range doc.Nodes {
		clone := node.Clone()
		if clone.Config == nil {
			clone.Config = make(map[string]any)
		}

		g.nodes[clone.ID] = clone
		g.nodeOrder = append(g.nodeOrder, clone.ID)
	}

	for _, conn := range doc.Connections {
		clone := conn.Clone()
		g.conns[clone.ID] = clone
		g.connOrder = append(g.connOrder, clone.ID)
	}

	return nil
}

// CheckDocument verifies a graph document without applying it: version gate
// first, then structural schema, then referential integrity.
func CheckDocument(doc *models.GraphDocument) error {
	if doc == nil {
		return fmt.Errorf("%w: empty document", models.ErrMalformedDocument)
	}

	if doc.Metadata.Version != models.DocumentVersion {
		return fmt.Errorf("%w: %q", models.ErrUnsupportedVersion, doc.Metadata.Version)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(documentSchema),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrMalformedDocument, err)
	}

	if !result.Valid() {
		return fmt.Errorf("%w: %s", models.ErrMalformedDocument, result.Errors()[0].String())
	}

	seen := make(map[string]bool, len(doc.Nodes))

	for _, node := range doc.Nodes {
		if node.ID == "" || node.ToolID == "" {
			return fmt.Errorf("%w: node missing id or tool_id", models.ErrMalformedDocument)
		}

		if seen[node.ID] {
			return fmt.Errorf("%w: duplicate node id %s", models.ErrMalformedDocument, node.ID)
		}

		seen[node.ID] = true
	}

	for _, conn := range doc.Connections {
		source := doc.NodeByID(conn.SourceNodeID)
		if source == nil {
			return fmt.Errorf("%w: connection %s references unknown node %s",
				models.ErrMalformedDocument, conn.ID, conn.SourceNodeID)
		}

		target := doc.NodeByID(conn.TargetNodeID)
		if target == nil {
			return fmt.Errorf("%w: connection %s references unknown node %s",
				models.ErrMalformedDocument, conn.ID, conn.TargetNodeID)
		}

		if !source.HasOutput(conn.SourcePort) {
			return fmt.Errorf("%w: connection %s references unknown output port %s:%s",
				models.ErrMalformedDocument, conn.ID, conn.SourceNodeID, conn.SourcePort)
		}

		if !target.HasInput(conn.TargetPort) {
			return fmt.Errorf("%w: connection %s references unknown input port %s:%s",
				models.ErrMalformedDocument, conn.ID, conn.TargetNodeID, conn.TargetPort)
		}
	}

	return nil
}
