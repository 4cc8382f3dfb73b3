// Package smssender provides the SMS dispatch tool. Delivery goes through a
// Sender so tests and local runs use the logging sender while deployments
// plug in a real gateway.
package smssender

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/toolweave/toolweave/pkg/protocol"
)

const (
	InputPortInput = "input"
	OutputPortSent = "sent"
)

// Sender delivers one SMS message.
type Sender interface {
	Send(ctx context.Context, phoneNumber, message string) error
}

// Executor sends a templated SMS and emits a delivery record.
type Executor struct {
	sender Sender
}

// Execute sends the configured message. The message string has already been
// template-rendered against the node's inputs by the engine.
func (e *Executor) Execute(ctx context.Context, config map[string]any, _ protocol.Inputs) (protocol.Outputs, error) {
	phoneNumber, ok := config["phone_number"].(string)
	if !ok || phoneNumber == "" {
		return nil, errors.New("missing required field 'phone_number'")
	}

	message, ok := config["message"].(string)
	if !ok || message == "" {
		return nil, errors.New("missing required field 'message'")
	}

	if err := e.sender.Send(ctx, phoneNumber, message); err != nil {
		return nil, fmt.Errorf("sms delivery failed: %w", err)
	}

	return protocol.Outputs{
		OutputPortSent: {
			"phone_number": phoneNumber,
			"message":      message,
			"sent_at":      time.Now().UTC().Format(time.RFC3339),
		},
	}, nil
}

// logSender is the default Sender: it records the message instead of
// delivering it.
type logSender struct {
	logger *slog.Logger
}

func (s *logSender) Send(_ context.Context, phoneNumber, message string) error {
	s.logger.Info("sms dispatched", "phone_number", phoneNumber, "message", message)

	return nil
}
