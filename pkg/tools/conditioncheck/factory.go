package conditioncheck

import (
	"context"

	"github.com/toolweave/toolweave/pkg/catalog"
	"github.com/toolweave/toolweave/pkg/models"
	"github.com/toolweave/toolweave/pkg/protocol"
)

const ToolID = "condition_check"

// Factory creates condition check executors.
type Factory struct{}

// NewFactory creates the condition check factory.
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
		DisplayName: "Condition Check",
		Icon:        "git-branch",
		Category:    models.CategoryTypeAction,
		Inputs: []catalog.PortDef{
			{Name: InputPortInput, Type: models.ValueTypeAny, Description: "Value the condition may reference"},
		},
		Outputs: []catalog.PortDef{
			{Name: OutputPortTruePath, Type: models.ValueTypeAny, Description: "Fired when the condition holds"},
			{Name: OutputPortFalsePath, Type: models.ValueTypeAny, Description: "Fired when the condition fails"},
		},
		ConfigSchema: []catalog.ConfigField{
			{Key: "condition", Type: "string", Label: "Condition expression", Required: true},
		},
	}
}

// Create builds the executor.
func (f *Factory) Create(_ context.Context) (protocol.ToolExecutor, error) {
	return &Executor{}, nil
}
