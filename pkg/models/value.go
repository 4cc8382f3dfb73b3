package models

// ValueType is the declared type tag of a port payload. Ports with
// ValueTypeAny accept or produce anything; the validator only rejects a
// connection when both endpoint types are concrete and different.
type ValueType string

const (
	ValueTypeString     ValueType = "string"
	ValueTypeNumber     ValueType = "number"
	ValueTypeBoolean    ValueType = "boolean"
	ValueTypeStructured ValueType = "structured"
	ValueTypeAny        ValueType = "any"
)

// Compatible reports whether a value of type v may flow into a port of
// type other.
func (v ValueType) Compatible(other ValueType) bool {
	if v == ValueTypeAny || other == ValueTypeAny {
		return true
	}

	return v == other
}
