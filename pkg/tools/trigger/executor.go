// Package trigger provides the trigger tool implementations that start graph
// runs: manual, webhook and schedule. Triggers do no work of their own; they
// emit a single record describing how the run was started so downstream
// nodes can template against it.
package trigger

import (
	"context"
	"time"

	"github.com/toolweave/toolweave/pkg/protocol"
)

const (
	ToolIDManual   = "trigger:manual"
	ToolIDWebhook  = "trigger:webhook"
	ToolIDSchedule = "trigger:schedule"

	OutputPortTriggered = "triggered"
)

// Executor implements all three trigger kinds; the kind only changes the
// emitted source tag.
type Executor struct {
	kind string
}

// Execute emits the trigger record on the triggered port. Webhook payloads
// and schedule fire times arrive via the "payload" config key, injected by
// the webhook handler or the scheduler.
func (e *Executor) Execute(_ context.Context, config map[string]any, _ protocol.Inputs) (protocol.Outputs, error) {
	record := map[string]any{
		"source":       e.kind,
		"triggered_at": time.Now().UTC().Format(time.RFC3339),
	}

	if payload, ok := config["payload"]; ok {
		record["payload"] = payload
	}

	return protocol.Outputs{
		OutputPortTriggered: record,
	}, nil
}
