package conditioncheck

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toolweave/toolweave/pkg/protocol"
)

func TestExecute_FiresExactlyOnePort(t *testing.T) {
	exec := &Executor{}

	outputs, err := exec.Execute(context.Background(), map[string]any{"condition": true}, nil)
	require.NoError(t, err)
	require.Len(t, outputs, 1)

	record, ok := outputs[OutputPortTruePath]
	require.True(t, ok, "true condition must fire the true path")
	assert.Equal(t, true, record["condition_result"])

	outputs, err = exec.Execute(context.Background(), map[string]any{"condition": false}, nil)
	require.NoError(t, err)
	require.Len(t, outputs, 1)

	_, ok = outputs[OutputPortFalsePath]
	require.True(t, ok, "false condition must fire the false path")
}

func TestExecute_ForwardsInput(t *testing.T) {
	exec := &Executor{}

	inputs := protocol.Inputs{
		InputPortInput: {"score": 91.0},
	}

	outputs, err := exec.Execute(context.Background(), map[string]any{"condition": "yes"}, inputs)
	require.NoError(t, err)

	record := outputs[OutputPortTruePath]
	assert.Equal(t, inputs[InputPortInput], record["input"])
}

func TestExecute_MissingCondition(t *testing.T) {
	exec := &Executor{}

	_, err := exec.Execute(context.Background(), map[string]any{}, nil)
	require.Error(t, err)
}

func TestTruthy(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  bool
	}{
		{"bool true", true, true},
		{"bool false", false, false},
		{"parseable true", "true", true},
		{"parseable false", "false", false},
		{"non-empty string", "anything", true},
		{"empty string", "", false},
		{"zero float", 0.0, false},
		{"non-zero float", 0.5, true},
		{"zero int", 0, false},
		{"non-zero int", 7, true},
		{"empty slice", []any{}, false},
		{"non-empty slice", []any{1}, true},
		{"empty map", map[string]any{}, false},
		{"non-empty map", map[string]any{"k": 1}, true},
		{"nil", nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, truthy(tc.value))
		})
	}
}
