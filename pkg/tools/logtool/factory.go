package logtool

import (
	"context"
	"log/slog"

	"github.com/toolweave/toolweave/pkg/catalog"
	"github.com/toolweave/toolweave/pkg/models"
	"github.com/toolweave/toolweave/pkg/protocol"
)

const ToolID = "log"

// Factory creates log executors.
type Factory struct {
	logger *slog.Logger
}

// NewFactory creates the log factory.
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
		DisplayName: "Log",
		Icon:        "file-text",
		Category:    models.CategoryTypeAction,
		Inputs: []catalog.PortDef{
			{Name: InputPortInput, Type: models.ValueTypeAny, Description: "Value passed through after logging"},
		},
		Outputs: []catalog.PortDef{
			{Name: OutputPortLogged, Type: models.ValueTypeAny, Description: "Input plus log bookkeeping"},
		},
		ConfigSchema: []catalog.ConfigField{
			{Key: "message", Type: "string", Label: "Message", Required: true},
			{Key: "level", Type: "string", Label: "Level", Default: "info"},
		},
	}
}

// Create builds the executor.
func (f *Factory) Create(_ context.Context) (protocol.ToolExecutor, error) {
	return &Executor{logger: f.logger}, nil
}
