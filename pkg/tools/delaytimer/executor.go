// Package delaytimer provides the delay tool: it holds the run for a
// configured duration, then forwards its input untouched.
package delaytimer

import (
	"context"
	"errors"
	"time"

	"github.com/toolweave/toolweave/pkg/protocol"
)

const (
	InputPortInput = "input"
	OutputPortDone = "done"

	maxDelaySeconds = 3600
)

// Executor sleeps for the configured duration, honoring ctx cancellation and
// the node's timeout deadline.
type Executor struct{}

// Execute waits delay_seconds, then emits a record carrying the input
// through.
func (e *Executor) Execute(ctx context.Context, config map[string]any, inputs protocol.Inputs) (protocol.Outputs, error) {
	seconds, ok := config["delay_seconds"].(float64)
	if !ok {
		return nil, errors.New("missing required field 'delay_seconds'")
	}

	if seconds < 0 || seconds > maxDelaySeconds {
		return nil, errors.New("delay_seconds must be between 0 and 3600")
	}

	timer := time.NewTimer(time.Duration(seconds * float64(time.Second)))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	record := map[string]any{
		"delayed_seconds": seconds,
		"resumed_at":      time.Now().UTC().Format(time.RFC3339),
	}
	if input, ok := inputs[InputPortInput]; ok {
		record["input"] = input
	}

	return protocol.Outputs{OutputPortDone: record}, nil
}
