package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toolweave/toolweave/pkg/models"
)

func smsDefinition() ToolDefinition {
	return ToolDefinition{
		ID:          "sms_sender",
		DisplayName: "SMS Sender",
		Category:    models.CategoryTypeAction,
		Inputs:      []PortDef{{Name: "input", Type: models.ValueTypeAny}},
		Outputs:     []PortDef{{Name: "sent", Type: models.ValueTypeStructured}},
		ConfigSchema: []ConfigField{
			{Key: "phone_number", Type: "string", Label: "Phone number", Required: true},
			{Key: "message", Type: "string", Label: "Message", Required: true},
		},
	}
}

func TestCatalog_GetAndList(t *testing.T) {
	cat := New(smsDefinition())

	def, err := cat.Get("sms_sender")
	require.NoError(t, err)
	assert.Equal(t, "SMS Sender", def.DisplayName)

	_, err = cat.Get("nope")
	require.ErrorIs(t, err, models.ErrUnknownTool)

	cat.Register(ToolDefinition{ID: "log", Category: models.CategoryTypeAction})

	list := cat.List()
	require.Len(t, list, 2)
	assert.Equal(t, "sms_sender", list[0].ID)
	assert.Equal(t, "log", list[1].ID)
}

func TestCatalog_IsTrigger(t *testing.T) {
	cat := New(
		smsDefinition(),
		ToolDefinition{ID: models.ToolTypeTriggerManual, Category: models.CategoryTypeTrigger},
	)

	assert.True(t, cat.IsTrigger(models.ToolTypeTriggerManual))
	assert.False(t, cat.IsTrigger("sms_sender"))
	assert.False(t, cat.IsTrigger("unknown"))
}

func TestToolDefinition_PortType(t *testing.T) {
	def := smsDefinition()

	typ, ok := def.PortType("sent", models.PortDirectionOutput)
	require.True(t, ok)
	assert.Equal(t, models.ValueTypeStructured, typ)

	_, ok = def.PortType("sent", models.PortDirectionInput)
	assert.False(t, ok)
}

func TestValidateConfig(t *testing.T) {
	def := smsDefinition()

	err := def.ValidateConfig(map[string]any{
		"phone_number": "+15550100",
		"message":      "hi",
	})
	require.NoError(t, err)

	// Unknown keys are rejected.
	err = def.ValidateConfig(map[string]any{"bogus": 1})
	require.ErrorIs(t, err, models.ErrInvalidConfig)

	// Missing required keys are rejected.
	err = def.ValidateConfig(map[string]any{"message": "hi"})
	require.ErrorIs(t, err, models.ErrInvalidConfig)

	// Wrong value kind is rejected.
	err = def.ValidateConfig(map[string]any{
		"phone_number": "+15550100",
		"message":      42,
	})
	require.ErrorIs(t, err, models.ErrInvalidConfig)
}

func TestValidateConfigKey_BasePolicyFields(t *testing.T) {
	def := smsDefinition()

	// Execution policy keys are accepted on every tool.
	require.NoError(t, def.ValidateConfigKey("timeout_seconds", 10.0))
	require.NoError(t, def.ValidateConfigKey("retries", 3.0))
	require.NoError(t, def.ValidateConfigKey("error_handling", "continue"))

	err := def.ValidateConfigKey("timeout_seconds", "soon")
	require.ErrorIs(t, err, models.ErrInvalidConfig)
}
