package leadscoring

import (
	"context"

	"github.com/toolweave/toolweave/pkg/catalog"
	"github.com/toolweave/toolweave/pkg/models"
	"github.com/toolweave/toolweave/pkg/protocol"
)

const ToolID = "lead_scoring"

// Factory creates lead scoring executors.
type Factory struct{}

// NewFactory creates the lead scoring factory.
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
		DisplayName: "Lead Scoring",
		Icon:        "target",
		Category:    models.CategoryTypeAction,
		Inputs: []catalog.PortDef{
			{Name: InputPortLead, Type: models.ValueTypeStructured, Description: "Lead record to grade"},
		},
		Outputs: []catalog.PortDef{
			{Name: OutputPortScored, Type: models.ValueTypeStructured, Description: "Score, qualified flag and the original lead"},
		},
		ConfigSchema: []catalog.ConfigField{
			{Key: "threshold", Type: "number", Label: "Qualification threshold", Default: defaultThreshold},
		},
	}
}

// Create builds the executor.
func (f *Factory) Create(_ context.Context) (protocol.ToolExecutor, error) {
	return &Executor{}, nil
}
