// Package catalog describes the tool types a graph may instantiate: their
// display metadata, port schemas and config schemas. The catalog is populated
// once at startup from the registered executor factories and is read-only
// from the engine's perspective.
package catalog

import (
	"fmt"

	"github.com/toolweave/toolweave/pkg/models"
)

// PortDef declares one named port on a tool, with its value type tag.
type PortDef struct {
	Name        string           `json:"name"`
	Type        models.ValueType `json:"type"`
	Description string           `json:"description,omitempty"`
}

// ConfigField declares one entry of a tool's config schema.
type ConfigField struct {
	Key      string `json:"key"`
	Type     string `json:"type"` // JSON Schema primitive: "string", "number", "boolean", "object"
	Label    string `json:"label"`
	Default  any    `json:"default,omitempty"`
	Required bool   `json:"required,omitempty"`
}

// ToolDefinition is the catalog entry for one tool type.
type ToolDefinition struct {
	ID           string              `json:"id"`
	DisplayName  string              `json:"display_name"`
	Icon         string              `json:"icon"`
	Category     models.CategoryType `json:"category"`
	Inputs       []PortDef           `json:"inputs"`
	Outputs      []PortDef           `json:"outputs"`
	ConfigSchema []ConfigField       `json:"config_schema"`
}

// InputNames returns the ordered input port names.
func (d ToolDefinition) InputNames() []string {
	names := make([]string, 0, len(d.Inputs))
	for _, p := range d.Inputs {
		names = append(names, p.Name)
	}

	return names
}

// OutputNames returns the ordered output port names.
func (d ToolDefinition) OutputNames() []string {
	names := make([]string, 0, len(d.Outputs))
	for _, p := range d.Outputs {
		names = append(names, p.Name)
	}

	return names
}

// PortType returns the declared value type of the named port in the given
// direction, and whether the port exists.
func (d ToolDefinition) PortType(name string, direction models.PortDirection) (models.ValueType, bool) {
	ports := d.Inputs
	if direction == models.PortDirectionOutput {
		ports = d.Outputs
	}

	for _, p := range ports {
		if p.Name == name {
			return p.Type, true
		}
	}

	return "", false
}

// JSONSchema builds a JSON Schema document for the tool's config, suitable
// for gojsonschema validation and UI form generation.
func (d ToolDefinition) JSONSchema() map[string]any {
	properties := make(map[string]any, len(d.ConfigSchema))
	required := make([]string, 0)

	for _, field := range d.ConfigSchema {
		prop := map[string]any{
			"type":  field.Type,
			"title": field.Label,
		}
		if field.Default != nil {
			prop["default"] = field.Default
		}

		properties[field.Key] = prop

		if field.Required {
			required = append(required, field.Key)
		}
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}

	return schema
}

// Catalog holds tool definitions keyed by tool id, preserving registration
// order for listings.
type Catalog struct {
	defs  map[string]ToolDefinition
	order []string
}

// New creates a catalog from the given definitions.
func New(defs ...ToolDefinition) *Catalog {
	c := &Catalog{defs: make(map[string]ToolDefinition, len(defs))}
	for _, def := range defs {
		c.Register(def)
	}

	return c
}

// Register adds or replaces a tool definition.
func (c *Catalog) Register(def ToolDefinition) {
	if _, exists := c.defs[def.ID]; !exists {
		c.order = append(c.order, def.ID)
	}

	c.defs[def.ID] = def
}

// Get returns the definition for toolID, or models.ErrUnknownTool.
func (c *Catalog) Get(toolID string) (ToolDefinition, error) {
	def, ok := c.defs[toolID]
	if !ok {
		return ToolDefinition{}, fmt.Errorf("%w: %s", models.ErrUnknownTool, toolID)
	}

	return def, nil
}

// List returns all definitions in registration order.
func (c *Catalog) List() []ToolDefinition {
	defs := make([]ToolDefinition, 0, len(c.order))
	for _, id := range c.order {
		defs = append(defs, c.defs[id])
	}

	return defs
}

// IsTrigger reports whether toolID names a trigger-category tool. Unknown
// tool ids are not triggers.
func (c *Catalog) IsTrigger(toolID string) bool {
	def, ok := c.defs[toolID]

	return ok && def.Category == models.CategoryTypeTrigger
}
