// Package models defines the core domain models for the tool-chaining graph engine.
package models

// CategoryType represents the category of a tool.
type CategoryType string

const (
	CategoryTypeAction  CategoryType = "action"  // Regular action tools (sms, call, scoring, etc.)
	CategoryTypeTrigger CategoryType = "trigger" // Trigger tools (manual, webhook, schedule)
)

// Built-in trigger tool types.
const (
	ToolTypeTriggerManual   = "trigger:manual"
	ToolTypeTriggerWebhook  = "trigger:webhook"
	ToolTypeTriggerSchedule = "trigger:schedule"
)

// PortDirection represents the direction of data flow for a port.
type PortDirection string

const (
	PortDirectionInput  PortDirection = "input"
	PortDirectionOutput PortDirection = "output"
)

// Node is one configured tool instance in a graph. Its port sets are fixed
// by the catalog entry for ToolID at creation time and never change; swapping
// tool types means deleting and recreating the node.
type Node struct {
	ID          string         `json:"id"           validate:"required"`
	ToolID      string         `json:"tool_id"      validate:"required"`
	DisplayName string         `json:"display_name"`
	Description string         `json:"description"`
	Config      map[string]any `json:"config"`
	PositionX   int            `json:"position_x"`
	PositionY   int            `json:"position_y"`
	Inputs      []string       `json:"inputs"`
	Outputs     []string       `json:"outputs"`
}

// HasInput reports whether name is one of the node's input ports.
func (n *Node) HasInput(name string) bool {
	for _, p := range n.Inputs {
		if p == name {
			return true
		}
	}

	return false
}

// HasOutput reports whether name is one of the node's output ports.
func (n *Node) HasOutput(name string) bool {
	for _, p := range n.Outputs {
		if p == name {
			return true
		}
	}

	return false
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	clone := *n

	clone.Config = make(map[string]any, len(n.Config))
	for k, v := range n.Config {
		clone.Config[k] = v
	}

	clone.Inputs = append([]string(nil), n.Inputs...)
	clone.Outputs = append([]string(nil), n.Outputs...)

	return &clone
}

// Connection is a directed edge from one node's output port to another
// node's input port. At most one connection may terminate at a given
// (TargetNodeID, TargetPort) pair; an output port may fan out freely.
type Connection struct {
	ID           string `json:"id"             validate:"required"`
	SourceNodeID string `json:"source_node_id" validate:"required"`
	SourcePort   string `json:"source_port"    validate:"required"`
	TargetNodeID string `json:"target_node_id" validate:"required"`
	TargetPort   string `json:"target_port"    validate:"required"`
}

// Clone returns a copy of the connection.
func (c *Connection) Clone() *Connection {
	clone := *c

	return &clone
}
