// Package logtool provides the log tool: it writes a templated message to
// the structured log and passes its input through, useful for tracing graph
// runs without side effects.
package logtool

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/toolweave/toolweave/pkg/protocol"
)

const (
	InputPortInput   = "input"
	OutputPortLogged = "logged"
)

// Executor writes one log line per execution.
type Executor struct {
	logger *slog.Logger
}

// Execute logs the configured message at the configured level and forwards
// the input record.
func (e *Executor) Execute(_ context.Context, config map[string]any, inputs protocol.Inputs) (protocol.Outputs, error) {
	message, ok := config["message"].(string)
	if !ok || message == "" {
		return nil, errors.New("missing required field 'message'")
	}

	level := "info"
	if lvl, ok := config["level"].(string); ok && lvl != "" {
		level = lvl
	}

	switch level {
	case "debug":
		e.logger.Debug(message)
	case "info":
		e.logger.Info(message)
	case "warn":
		e.logger.Warn(message)
	case "error":
		e.logger.Error(message)
	default:
		return nil, errors.New("level must be one of debug, info, warn, error")
	}

	record := map[string]any{
		"message":   message,
		"level":     level,
		"logged_at": time.Now().UTC().Format(time.RFC3339),
	}
	if input, ok := inputs[InputPortInput]; ok {
		record["input"] = input
	}

	return protocol.Outputs{OutputPortLogged: record}, nil
}
