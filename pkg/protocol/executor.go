// Package protocol defines the contracts between the execution engine and
// pluggable tool implementations.
package protocol

import (
	"context"

	"github.com/toolweave/toolweave/pkg/catalog"
)

// Outputs maps output port name to the value record the tool produced on
// that port. A tool with multiple output ports that fires only some of them
// (a branching tool) returns only the fired ports; downstream nodes hanging
// off absent ports are skipped.
type Outputs = map[string]map[string]any

// Inputs maps input port name to the value record deposited by the upstream
// producer of that port. Ports with no incoming connection are absent.
type Inputs = map[string]map[string]any

// ToolExecutor performs one node's work during a run. Execute must honor ctx
// cancellation and deadlines; the engine derives a per-node deadline from the
// node's timeout policy.
type ToolExecutor interface {
	Execute(ctx context.Context, config map[string]any, inputs Inputs) (Outputs, error)
}

// ExecutorFactory describes one tool type and creates its executor instances.
type ExecutorFactory interface {
	// ID returns the tool id this factory serves, e.g. "sms_sender".
	ID() string

	// Definition returns the catalog entry for this tool type.
	Definition() catalog.ToolDefinition

	// Create builds an executor. Node config is passed at Execute time, not
	// here, so a single executor instance may serve many nodes.
	Create(ctx context.Context) (ToolExecutor, error)
}
