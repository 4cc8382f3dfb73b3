// Package graph implements the in-memory workflow graph: an arena-style
// store of nodes and directed connections owned by a single Graph value.
// All structural mutations go through the public operations below, which are
// atomic with respect to each other; read-only consumers (validator, engine,
// export) work from a snapshot document.
package graph

import (
	"fmt"
	"sync"
	"time"

	"github.com/toolweave/toolweave/pkg/catalog"
	"github.com/toolweave/toolweave/pkg/models"
)

// Graph is the aggregate of all nodes and connections for one workflow
// definition. Node and connection ids are sequential and scoped to one Graph
// instance; Clear resets the counters.
type Graph struct {
	mu sync.RWMutex

	name        string
	description string
	createdAt   time.Time

	catalog *catalog.Catalog

	nodes     map[string]*models.Node
	nodeOrder []string
	conns     map[string]*models.Connection
	connOrder []string

	nodeSeq int
	connSeq int
}

// New creates an empty graph backed by the given tool catalog.
func New(cat *catalog.Catalog, name, description string) *Graph {
	return &Graph{
		name:        name,
		description: description,
		createdAt:   time.Now().UTC(),
		catalog:     cat,
		nodes:       make(map[string]*models.Node),
		conns:       make(map[string]*models.Connection),
	}
}

// Name returns the graph name.
func (g *Graph) Name() string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.name
}

// SetName updates the graph name.
func (g *Graph) SetName(name string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.name = name
}

// SetDescription updates the graph description.
func (g *Graph) SetDescription(description string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.description = description
}

// AddNode creates a node of the given tool type at the given canvas
// position. The node's ports are fixed from the catalog entry and its config
// starts empty. Fails with models.ErrUnknownTool for unregistered tool ids.
func (g *Graph) AddNode(toolID string, x, y int) (*models.Node, error) {
	def, err := g.catalog.Get(toolID)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	node := &models.Node{
		ID:          g.nextNodeID(),
		ToolID:      toolID,
		DisplayName: def.DisplayName,
		Config:      make(map[string]any),
		PositionX:   x,
		PositionY:   y,
		Inputs:      def.InputNames(),
		Outputs:     def.OutputNames(),
	}

	g.nodes[node.ID] = node
	g.nodeOrder = append(g.nodeOrder, node.ID)

	return node.Clone(), nil
}

// RemoveNode deletes a node and cascades removal of every connection
// touching it. Removing a nonexistent node is a no-op.
func (g *Graph) RemoveNode(nodeID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.nodes[nodeID]; !ok {
		return
	}

	delete(g.nodes, nodeID)
	g.nodeOrder = removeID(g.nodeOrder, nodeID)

	for _, connID := range append([]string(nil), g.connOrder...) {
		conn := g.conns[connID]
		if conn.SourceNodeID == nodeID || conn.TargetNodeID == nodeID {
			delete(g.conns, connID)
			g.connOrder = removeID(g.connOrder, connID)
		}
	}
}

// Connect creates a directed connection from an output port to an input
// port. If the target input port already has an incoming connection, the old
// connection is removed first: an input port accepts a single upstream
// producer. Connect does not check for cycles; that is the validator's job
// and the engine re-validates before every run.
func (g *Graph) Connect(sourceNodeID, sourcePort, targetNodeID, targetPort string) (*models.Connection, error) {
	if sourceNodeID == targetNodeID {
		return nil, fmt.Errorf("%w: %s", models.ErrSelfLoop, sourceNodeID)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	source, ok := g.nodes[sourceNodeID]
	if !ok {
		return nil, fmt.Errorf("%w: source node %s", models.ErrInvalidPort, sourceNodeID)
	}

	target, ok := g.nodes[targetNodeID]
	if !ok {
		return nil, fmt.Errorf("%w: target node %s", models.ErrInvalidPort, targetNodeID)
	}

	if !source.HasOutput(sourcePort) {
		return nil, fmt.Errorf("%w: %s has no output port %q", models.ErrInvalidPort, sourceNodeID, sourcePort)
	}

	if !target.HasInput(targetPort) {
		return nil, fmt.Errorf("%w: %s has no input port %q", models.ErrInvalidPort, targetNodeID, targetPort)
	}

	// Supersede the previous producer of this input port, if any.
	for _, connID := range g.connOrder {
		conn := g.conns[connID]
		if conn.TargetNodeID == targetNodeID && conn.TargetPort == targetPort {
			delete(g.conns, connID)
			g.connOrder = removeID(g.connOrder, connID)

			break
		}
	}

	conn := &models.Connection{
		ID:           g.nextConnID(),
		SourceNodeID: sourceNodeID,
		SourcePort:   sourcePort,
		TargetNodeID: targetNodeID,
		TargetPort:   targetPort,
	}

	g.conns[conn.ID] = conn
	g.connOrder = append(g.connOrder, conn.ID)

	return conn.Clone(), nil
}

// Disconnect removes a connection. Removing a nonexistent connection is a
// no-op.
func (g *Graph) Disconnect(connectionID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.conns[connectionID]; !ok {
		return
	}

	delete(g.conns, connectionID)
	g.connOrder = removeID(g.connOrder, connectionID)
}

// UpdateNodeConfig upserts one config key on a node after validating the key
// and value kind against the tool's config schema.
func (g *Graph) UpdateNodeConfig(nodeID, key string, value any) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	node, ok := g.nodes[nodeID]
	if !ok {
		return fmt.Errorf("%w: %s", models.ErrNodeNotFound, nodeID)
	}

	def, err := g.catalog.Get(node.ToolID)
	if err != nil {
		return err
	}

	if err := def.ValidateConfigKey(key, value); err != nil {
		return err
	}

	node.Config[key] = value

	return nil
}

// UpdateNodeDisplay updates the presentation-only fields of a node.
func (g *Graph) UpdateNodeDisplay(nodeID, displayName, description string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	node, ok := g.nodes[nodeID]
	if !ok {
		return fmt.Errorf("%w: %s", models.ErrNodeNotFound, nodeID)
	}

	node.DisplayName = displayName
	node.Description = description

	return nil
}

// MoveNode updates a node's canvas position. Position has no execution effect.
func (g *Graph) MoveNode(nodeID string, x, y int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	node, ok := g.nodes[nodeID]
	if !ok {
		return fmt.Errorf("%w: %s", models.ErrNodeNotFound, nodeID)
	}

	node.PositionX = x
	node.PositionY = y

	return nil
}

// Node returns a copy of the node with the given id.
func (g *Graph) Node(nodeID string) (*models.Node, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	node, ok := g.nodes[nodeID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrNodeNotFound, nodeID)
	}

	return node.Clone(), nil
}

// Clear removes all nodes and connections and resets the id counters. New
// ids may repeat earlier ones; ids are scoped to one Graph instance.
func (g *Graph) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.nodes = make(map[string]*models.Node)
	g.nodeOrder = nil
	g.conns = make(map[string]*models.Connection)
	g.connOrder = nil
	g.nodeSeq = 0
	g.connSeq = 0
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.nodes)
}

// ConnectionCount returns the number of connections.
func (g *Graph) ConnectionCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.conns)
}

// nextNodeID issues the next free sequential node id. Imported documents may
// occupy arbitrary ids, so collisions are skipped.
func (g *Graph) nextNodeID() string {
	for {
		g.nodeSeq++

		id := fmt.Sprintf("node-%d", g.nodeSeq)
		if _, taken := g.nodes[id]; !taken {
			return id
		}
	}
}

func (g *Graph) nextConnID() string {
	for {
		g.connSeq++

		id := fmt.Sprintf("conn-%d", g.connSeq)
		if _, taken := g.conns[id]; !taken {
			return id
		}
	}
}

func removeID(ids []string, id string) []string {
	for i, candidate := range ids {
		if candidate == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}

	return ids
}
