package models

// FieldType describes the primitive type of a schema field.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeMap     FieldType = "map"
)

// FieldSpec declares one field of a node data schema. Message is the
// human-readable text emitted when the requirement is violated.
type FieldSpec struct {
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
	Message  string    `json:"message,omitempty"`
	Min      *float64  `json:"min,omitempty"`
	Enum     []string  `json:"enum,omitempty"`
	Default  any       `json:"default,omitempty"`
}

// NodeSchema is the declared data shape of a node kind. Field order is the
// deterministic order validation findings are reported in.
type NodeSchema struct {
	Kind        NodeKind    `json:"kind"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Fields      []FieldSpec `json:"fields"`
}

// Field returns the spec for the named field, or nil.
func (s *NodeSchema) Field(name string) *FieldSpec {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}

	return nil
}
