// Package followup provides the customer follow-up tool: it queues a
// follow-up task on a chosen channel for a later touchpoint.
package followup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/toolweave/toolweave/pkg/protocol"
)

const (
	InputPortCustomer = "customer"
	OutputPortQueued  = "queued"
)

var validChannels = map[string]bool{
	"email": true,
	"sms":   true,
	"call":  true,
}

// Executor queues follow-up tasks. The queue is a log record for now; the
// emitted task id lets an external CRM pick the task up.
type Executor struct {
	logger *slog.Logger
}

// Execute queues one follow-up and emits the task record.
func (e *Executor) Execute(_ context.Context, config map[string]any, inputs protocol.Inputs) (protocol.Outputs, error) {
	channel, ok := config["channel"].(string)
	if !ok || channel == "" {
		return nil, errors.New("missing required field 'channel'")
	}

	if !validChannels[channel] {
		return nil, fmt.Errorf("unsupported follow-up channel %q", channel)
	}

	message, _ := config["message"].(string)

	taskID := uuid.NewString()

	e.logger.Info("follow-up queued",
		"task_id", taskID,
		"channel", channel,
		"message", message,
	)

	record := map[string]any{
		"task_id":   taskID,
		"channel":   channel,
		"message":   message,
		"queued_at": time.Now().UTC().Format(time.RFC3339),
	}
	if customer, ok := inputs[InputPortCustomer]; ok {
		record["customer"] = customer
	}

	return protocol.Outputs{OutputPortQueued: record}, nil
}
