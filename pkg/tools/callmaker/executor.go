// Package callmaker provides the outbound call tool. Like the SMS tool it
// abstracts the telephony backend behind a Dialer interface, defaulting to a
// logging stub.
package callmaker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/toolweave/toolweave/pkg/protocol"
)

const (
	InputPortInput      = "input"
	OutputPortCompleted = "completed"
)

// Dialer places one outbound call and returns its terminal status.
type Dialer interface {
	Dial(ctx context.Context, phoneNumber, script string) (string, error)
}

// Executor places a call using the configured script.
type Executor struct {
	dialer Dialer
}

// Execute dials the configured number and emits a call record.
func (e *Executor) Execute(ctx context.Context, config map[string]any, _ protocol.Inputs) (protocol.Outputs, error) {
	phoneNumber, ok := config["phone_number"].(string)
	if !ok || phoneNumber == "" {
		return nil, errors.New("missing required field 'phone_number'")
	}

	script, _ := config["script"].(string)

	status, err := e.dialer.Dial(ctx, phoneNumber, script)
	if err != nil {
		return nil, fmt.Errorf("call failed: %w", err)
	}

	return protocol.Outputs{
		OutputPortCompleted: {
			"phone_number": phoneNumber,
			"call_status":  status,
			"completed_at": time.Now().UTC().Format(time.RFC3339),
		},
	}, nil
}

type logDialer struct {
	logger *slog.Logger
}

func (d *logDialer) Dial(_ context.Context, phoneNumber, script string) (string, error) {
	d.logger.Info("call placed", "phone_number", phoneNumber, "script", script)

	return "completed", nil
}
