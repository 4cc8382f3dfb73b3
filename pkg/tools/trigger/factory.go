package trigger

import (
	"context"

	"github.com/toolweave/toolweave/pkg/catalog"
	"github.com/toolweave/toolweave/pkg/models"
	"github.com/toolweave/toolweave/pkg/protocol"
)

// Factory creates trigger executors for one trigger kind.
type Factory struct {
	def catalog.ToolDefinition
}

// NewManualFactory creates the factory for user-initiated runs.
func NewManualFactory() protocol.ExecutorFactory {
	return &Factory{def: catalog.ToolDefinition{
		ID:          ToolIDManual,
		DisplayName: "Manual Trigger",
		Icon:        "play",
		Category:    models.CategoryTypeTrigger,
		Outputs: []catalog.PortDef{
			{Name: OutputPortTriggered, Type: models.ValueTypeStructured, Description: "Run start record"},
		},
	}}
}

// NewWebhookFactory creates the factory for webhook-initiated runs.
func NewWebhookFactory() protocol.ExecutorFactory {
	return &Factory{def: catalog.ToolDefinition{
		ID:          ToolIDWebhook,
		DisplayName: "Webhook Trigger",
		Icon:        "webhook",
		Category:    models.CategoryTypeTrigger,
		Outputs: []catalog.PortDef{
			{Name: OutputPortTriggered, Type: models.ValueTypeStructured, Description: "Webhook payload record"},
		},
		ConfigSchema: []catalog.ConfigField{
			{Key: "path", Type: "string", Label: "Webhook path", Required: true},
		},
	}}
}

// NewScheduleFactory creates the factory for cron-scheduled runs.
func NewScheduleFactory() protocol.ExecutorFactory {
	return &Factory{def: catalog.ToolDefinition{
		ID:          ToolIDSchedule,
		DisplayName: "Schedule Trigger",
		Icon:        "clock",
		Category:    models.CategoryTypeTrigger,
		Outputs: []catalog.PortDef{
			{Name: OutputPortTriggered, Type: models.ValueTypeStructured, Description: "Schedule fire record"},
		},
		ConfigSchema: []catalog.ConfigField{
			{Key: "cron_expression", Type: "string", Label: "Cron expression", Required: true},
		},
	}}
}

// ID returns the tool id this factory serves.
func (f *Factory) ID() string {
	return f.def.ID
}

// Definition returns the catalog entry.
func (f *Factory) Definition() catalog.ToolDefinition {
	return f.def
}

// Create builds the executor.
func (f *Factory) Create(_ context.Context) (protocol.ToolExecutor, error) {
	return &Executor{kind: f.def.ID}, nil
}
