// Package testutil provides test data builders shared across package tests.
package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/toolweave/toolweave/pkg/models"
)

// CreateTestNode creates a node with default values that can be overridden.
func CreateTestNode(overrides ...func(*models.Node)) *models.Node {
	node := &models.Node{
		ID:          uuid.NewString(),
		ToolID:      "log",
		DisplayName: "Test Node",
		Config:      map[string]any{"message": "test", "level": "info"},
		PositionX:   100,
		PositionY:   200,
		Inputs:      []string{"input"},
		Outputs:     []string{"logged"},
	}

	for _, override := range overrides {
		override(node)
	}

	return node
}

// WithID sets the node id.
func WithID(id string) func(*models.Node) {
	return func(n *models.Node) {
		n.ID = id
	}
}

// WithTool sets the tool id and its port names.
func WithTool(toolID string, inputs, outputs []string) func(*models.Node) {
	return func(n *models.Node) {
		n.ToolID = toolID
		n.Inputs = inputs
		n.Outputs = outputs
	}
}

// WithConfig sets the node configuration.
func WithConfig(config map[string]any) func(*models.Node) {
	return func(n *models.Node) {
		n.Config = config
	}
}

// WithTriggerNode configures the node as a manual trigger.
func WithTriggerNode() func(*models.Node) {
	return func(n *models.Node) {
		n.ToolID = models.ToolTypeTriggerManual
		n.Inputs = nil
		n.Outputs = []string{"triggered"}
		n.Config = map[string]any{}
	}
}

// CreateTestDocument assembles a valid graph document from nodes and
// connections.
func CreateTestDocument(nodes []*models.Node, conns []*models.Connection) *models.GraphDocument {
	return &models.GraphDocument{
		Nodes:       nodes,
		Connections: conns,
		Metadata: models.DocumentMetadata{
			Name:      "test-graph",
			Version:   models.DocumentVersion,
			CreatedAt: time.Now().UTC(),
		},
	}
}

// ConnectNodes builds a connection between two nodes.
func ConnectNodes(id string, source *models.Node, sourcePort string, target *models.Node, targetPort string) *models.Connection {
	return &models.Connection{
		ID:           id,
		SourceNodeID: source.ID,
		SourcePort:   sourcePort,
		TargetNodeID: target.ID,
		TargetPort:   targetPort,
	}
}
