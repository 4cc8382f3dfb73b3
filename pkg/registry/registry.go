// Package registry wires executor factories to the catalog and dispatches
// tool executions by tool id. One Registry instance backs a whole process;
// the engine only sees its Catalog and CreateExecutor.
package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/toolweave/toolweave/pkg/catalog"
	"github.com/toolweave/toolweave/pkg/models"
	"github.com/toolweave/toolweave/pkg/protocol"
)

type Registry struct {
	logger    *slog.Logger
	factories map[string]protocol.ExecutorFactory
	order     []string
}

func NewRegistry(log *slog.Logger) *Registry {
	return &Registry{
		logger:    log,
		factories: make(map[string]protocol.ExecutorFactory),
	}
}

// Register adds an executor factory. Registering the same tool id twice
// replaces the earlier factory.
func (r *Registry) Register(factory protocol.ExecutorFactory) {
	id := factory.ID()

	if _, exists := r.factories[id]; !exists {
		r.order = append(r.order, id)
	}

	r.factories[id] = factory

	r.logger.Debug("registered tool factory", "tool_id", id)
}

// CreateExecutor builds an executor for the given tool id.
func (r *Registry) CreateExecutor(ctx context.Context, toolID string) (protocol.ToolExecutor, error) {
	factory, ok := r.factories[toolID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrUnknownTool, toolID)
	}

	return factory.Create(ctx)
}

// Catalog assembles the tool catalog from every registered factory, in
// registration order.
func (r *Registry) Catalog() *catalog.Catalog {
	cat := catalog.New()
	for _, id := range r.order {
		cat.Register(r.factories[id].Definition())
	}

	return cat
}
