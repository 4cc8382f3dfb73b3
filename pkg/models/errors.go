// Package models provides the shared error taxonomy for graph operations.
package models

import (
	"errors"
	"fmt"
)

// Structural errors are rejected synchronously at the mutating call site and
// never leave the graph in a partial state.
var (
	// ErrUnknownTool indicates a tool id with no catalog entry.
	ErrUnknownTool = errors.New("unknown tool")

	// ErrNodeNotFound indicates a node id not present in the graph.
	ErrNodeNotFound = errors.New("node not found")

	// ErrConnectionNotFound indicates a connection id not present in the graph.
	ErrConnectionNotFound = errors.New("connection not found")

	// ErrInvalidPort indicates a connect endpoint that does not exist or has
	// the wrong direction (source must be an output, target an input).
	ErrInvalidPort = errors.New("invalid port")

	// ErrSelfLoop indicates a connection whose source and target node are the same.
	ErrSelfLoop = errors.New("self loop connection")

	// ErrInvalidConfig indicates a config key or value rejected by the tool's
	// config schema.
	ErrInvalidConfig = errors.New("invalid node config")

	// ErrValidation indicates the graph has unresolved validation errors and
	// a run may not start.
	ErrValidation = errors.New("graph validation failed")

	// ErrNoEntryPoint indicates a run was requested on a graph with no
	// trigger node and no caller-designated entry point.
	ErrNoEntryPoint = errors.New("no entry point")

	// ErrMalformedDocument indicates a graph document missing required fields
	// or referencing nonexistent nodes.
	ErrMalformedDocument = errors.New("malformed graph document")

	// ErrUnsupportedVersion indicates a graph document with an unknown
	// schema version.
	ErrUnsupportedVersion = errors.New("unsupported document version")
)

// ToolExecutionError wraps a tool executor failure with the node it was
// executing for. A timeout surfaces here with context.DeadlineExceeded as
// the underlying error.
type ToolExecutionError struct {
	NodeID string
	ToolID string
	Err    error
}

func (e *ToolExecutionError) Error() string {
	return fmt.Sprintf("tool %s failed on node %s: %v", e.ToolID, e.NodeID, e.Err)
}

func (e *ToolExecutionError) Unwrap() error {
	return e.Err
}

// NewToolExecutionError creates a ToolExecutionError for the given node.
func NewToolExecutionError(nodeID, toolID string, err error) *ToolExecutionError {
	return &ToolExecutionError{NodeID: nodeID, ToolID: toolID, Err: err}
}
