package smssender

import (
	"context"
	"log/slog"

	"github.com/toolweave/toolweave/pkg/catalog"
	"github.com/toolweave/toolweave/pkg/models"
	"github.com/toolweave/toolweave/pkg/protocol"
)

const ToolID = "sms_sender"

// Factory creates SMS sender executors.
type Factory struct {
	sender Sender
}

// NewFactory creates the SMS factory with the logging sender.
func NewFactory(logger *slog.Logger) protocol.ExecutorFactory {
	return &Factory{sender: &logSender{logger: logger}}
}

// NewFactoryWithSender creates the SMS factory with a custom delivery
// backend.
func NewFactoryWithSender(sender Sender) protocol.ExecutorFactory {
	return &Factory{sender: sender}
}

// ID returns the tool id.
func (f *Factory) ID() string {
	return ToolID
}

// Definition returns the catalog entry.
func (f *Factory) Definition() catalog.ToolDefinition {
	return catalog.ToolDefinition{
		ID:          ToolID,
		DisplayName: "SMS Sender",
		Icon:        "message-square",
		Category:    models.CategoryTypeAction,
		Inputs: []catalog.PortDef{
			{Name: InputPortInput, Type: models.ValueTypeAny, Description: "Record the message may template against"},
		},
		Outputs: []catalog.PortDef{
			{Name: OutputPortSent, Type: models.ValueTypeStructured, Description: "Delivery record"},
		},
		ConfigSchema: []catalog.ConfigField{
			{Key: "phone_number", Type: "string", Label: "Phone number", Required: true},
			{Key: "message", Type: "string", Label: "Message", Required: true},
		},
	}
}

// Create builds the executor.
func (f *Factory) Create(_ context.Context) (protocol.ToolExecutor, error) {
	return &Executor{sender: f.sender}, nil
}
