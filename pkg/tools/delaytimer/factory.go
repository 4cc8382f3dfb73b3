package delaytimer

import (
	"context"

	"github.com/toolweave/toolweave/pkg/catalog"
	"github.com/toolweave/toolweave/pkg/models"
	"github.com/toolweave/toolweave/pkg/protocol"
)

const ToolID = "delay_timer"

// Factory creates delay timer executors.
type Factory struct{}

// NewFactory creates the delay timer factory.
func NewFactory() protocol.ExecutorFactory {
	return &Factory{}
}

// ID returns the tool id.
func (f *Factory) ID() string {
	return ToolID
}

// Definition returns the catalog entry.
func (f *Factory) Definition() catalog.ToolDefinition {
	return catalog.ToolDefinition{
		ID:          ToolID,
		DisplayName: "Delay Timer",
		Icon:        "timer",
		Category:    models.CategoryTypeAction,
		Inputs: []catalog.PortDef{
			{Name: InputPortInput, Type: models.ValueTypeAny, Description: "Value passed through after the delay"},
		},
		Outputs: []catalog.PortDef{
			{Name: OutputPortDone, Type: models.ValueTypeAny, Description: "Input plus delay bookkeeping"},
		},
		ConfigSchema: []catalog.ConfigField{
			{Key: "delay_seconds", Type: "number", Label: "Delay (seconds)", Required: true},
		},
	}
}

// Create builds the executor.
func (f *Factory) Create(_ context.Context) (protocol.ToolExecutor, error) {
	return &Executor{}, nil
}
