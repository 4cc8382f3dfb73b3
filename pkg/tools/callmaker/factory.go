package callmaker

import (
	"context"
	"log/slog"

	"github.com/toolweave/toolweave/pkg/catalog"
	"github.com/toolweave/toolweave/pkg/models"
	"github.com/toolweave/toolweave/pkg/protocol"
)

const ToolID = "call_maker"

// Factory creates call maker executors.
type Factory struct {
	dialer Dialer
}

// NewFactory creates the call factory with the logging dialer.
func NewFactory(logger *slog.Logger) protocol.ExecutorFactory {
	return &Factory{dialer: &logDialer{logger: logger}}
}

// NewFactoryWithDialer creates the call factory with a custom telephony
// backend.
func NewFactoryWithDialer(dialer Dialer) protocol.ExecutorFactory {
	return &Factory{dialer: dialer}
}

// ID returns the tool id.
func (f *Factory) ID() string {
	return ToolID
}

// Definition returns the catalog entry.
func (f *Factory) Definition() catalog.ToolDefinition {
	return catalog.ToolDefinition{
		ID:          ToolID,
		DisplayName: "Call Maker",
		Icon:        "phone",
		Category:    models.CategoryTypeAction,
		Inputs: []catalog.PortDef{
			{Name: InputPortInput, Type: models.ValueTypeAny, Description: "Record the script may template against"},
		},
		Outputs: []catalog.PortDef{
			{Name: OutputPortCompleted, Type: models.ValueTypeStructured, Description: "Call outcome record"},
		},
		ConfigSchema: []catalog.ConfigField{
			{Key: "phone_number", Type: "string", Label: "Phone number", Required: true},
			{Key: "script", Type: "string", Label: "Call script"},
		},
	}
}

// Create builds the executor.
func (f *Factory) Create(_ context.Context) (protocol.ToolExecutor, error) {
	return &Executor{dialer: f.dialer}, nil
}
