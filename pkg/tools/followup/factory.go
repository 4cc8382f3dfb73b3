package followup

import (
	"context"
	"log/slog"

	"github.com/toolweave/toolweave/pkg/catalog"
	"github.com/toolweave/toolweave/pkg/models"
	"github.com/toolweave/toolweave/pkg/protocol"
)

const ToolID = "customer_followup"

// Factory creates follow-up executors.
type Factory struct {
	logger *slog.Logger
}

// NewFactory creates the follow-up factory.
func NewFactory(logger *slog.Logger) protocol.ExecutorFactory {
	return &Factory{logger: logger}
}

// ID returns the tool id.
func (f *Factory) ID() string {
	return ToolID
}

// Definition returns the catalog entry.
func (f *Factory) Definition() catalog.ToolDefinition {
	return catalog.ToolDefinition{
		ID:          ToolID,
		DisplayName: "Customer Follow-up",
		Icon:        "user-check",
		Category:    models.CategoryTypeAction,
		Inputs: []catalog.PortDef{
			{Name: InputPortCustomer, Type: models.ValueTypeStructured, Description: "Customer record to follow up with"},
		},
		Outputs: []catalog.PortDef{
			{Name: OutputPortQueued, Type: models.ValueTypeStructured, Description: "Queued task record"},
		},
		ConfigSchema: []catalog.ConfigField{
			{Key: "channel", Type: "string", Label: "Channel", Required: true},
			{Key: "message", Type: "string", Label: "Message"},
		},
	}
}

// Create builds the executor.
func (f *Factory) Create(_ context.Context) (protocol.ToolExecutor, error) {
	return &Executor{logger: f.logger}, nil
}
