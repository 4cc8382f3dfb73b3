package catalog

import (
	"fmt"

	"github.com/toolweave/toolweave/pkg/models"
	"github.com/xeipuuv/gojsonschema"
)

// ValidateConfig checks a full config mapping against the tool's config
// schema. Unknown keys are rejected.
func (d ToolDefinition) ValidateConfig(config map[string]any) error {
	for key := range config {
		if !d.hasConfigKey(key) {
			return fmt.Errorf("%w: unknown key %q for tool %s", models.ErrInvalidConfig, key, d.ID)
		}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(d.JSONSchema()),
		gojsonschema.NewGoLoader(config),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrInvalidConfig, err)
	}

	if !result.Valid() {
		return fmt.Errorf("%w: %s", models.ErrInvalidConfig, result.Errors()[0].String())
	}

	return nil
}

// ValidateConfigKey checks a single key/value pair against the tool's config
// schema without requiring the rest of the config to be present. Used by
// UpdateNodeConfig to fail fast on a bad upsert.
func (d ToolDefinition) ValidateConfigKey(key string, value any) error {
	field, ok := d.configField(key)
	if !ok {
		return fmt.Errorf("%w: unknown key %q for tool %s", models.ErrInvalidConfig, key, d.ID)
	}

	fieldSchema := map[string]any{"type": field.Type}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(fieldSchema),
		gojsonschema.NewGoLoader(value),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrInvalidConfig, err)
	}

	if !result.Valid() {
		return fmt.Errorf("%w: key %q: %s", models.ErrInvalidConfig, key, result.Errors()[0].String())
	}

	return nil
}

// baseFields are the execution policy keys accepted on every tool in
// addition to its own config schema.
var baseFields = []ConfigField{
	{Key: "timeout_seconds", Type: "number", Label: "Timeout (seconds)", Default: 30},
	{Key: "retries", Type: "number", Label: "Retry attempts", Default: 0},
	{Key: "error_handling", Type: "string", Label: "On error", Default: "stop"},
}

func (d ToolDefinition) hasConfigKey(key string) bool {
	_, ok := d.configField(key)

	return ok
}

func (d ToolDefinition) configField(key string) (ConfigField, bool) {
	for _, field := range d.ConfigSchema {
		if field.Key == key {
			return field, true
		}
	}

	for _, field := range baseFields {
		if field.Key == key {
			return field, true
		}
	}

	return ConfigField{}, false
}
