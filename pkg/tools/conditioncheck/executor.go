// Package conditioncheck provides the branching tool: it evaluates a
// configured condition and fires exactly one of its two output ports, which
// is what makes downstream branch skipping work.
package conditioncheck

import (
	"context"
	"errors"
	"strconv"

	"github.com/toolweave/toolweave/pkg/protocol"
)

const (
	InputPortInput      = "input_value"
	OutputPortTruePath  = "true_path"
	OutputPortFalsePath = "false_path"
)

// Executor evaluates the rendered condition value and routes accordingly.
type Executor struct{}

// Execute returns a result on exactly one output port. The engine treats the
// absent port as never fired, so the losing branch is skipped rather than
// starved.
func (e *Executor) Execute(_ context.Context, config map[string]any, inputs protocol.Inputs) (protocol.Outputs, error) {
	condition, ok := config["condition"]
	if !ok {
		return nil, errors.New("missing required field 'condition'")
	}

	verdict := truthy(condition)

	record := map[string]any{
		"condition_result": verdict,
		"evaluated_value":  condition,
	}
	if input, ok := inputs[InputPortInput]; ok {
		record["input"] = input
	}

	port := OutputPortFalsePath
	if verdict {
		port = OutputPortTruePath
	}

	return protocol.Outputs{port: record}, nil
}

// truthy converts a rendered condition value to a boolean verdict.
func truthy(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}

		return v != ""
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	case nil:
		return false
	default:
		return false
	}
}
