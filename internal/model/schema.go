package model

// FieldType is the primitive type a target field is declared with.
type FieldType string

const (
	FieldString FieldType = "string"
	FieldNumber FieldType = "number"
	FieldDate   FieldType = "date"
)

// TargetFieldSchema describes a single field of a target entity.
// Derivable marks required fields the entity's enricher can synthesize:
// they do not gate mapping completeness but are still enforced when the
// enriched rows are validated.
type TargetFieldSchema struct {
	Key         string    `json:"key"`
	Description string    `json:"description"`
	Type        FieldType `json:"type"`
	Required    bool      `json:"required"`
	Derivable   bool      `json:"derivable,omitempty"`
}

// TargetSchema is the ordered field list of a target entity
type TargetSchema struct {
	Fields []TargetFieldSchema `json:"fields"`
}

// Field returns the schema entry for key, if declared.
func (s TargetSchema) Field(key string) (TargetFieldSchema, bool) {
	for _, f := range s.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return TargetFieldSchema{}, false
}

// RequiredKeys returns the keys of all required fields in declaration order.
func (s TargetSchema) RequiredKeys() []string {
	var keys []string
	for _, f := range s.Fields {
		if f.Required {
			keys = append(keys, f.Key)
		}
	}
	return keys
}

// Keys returns all field keys in declaration order.
func (s TargetSchema) Keys() []string {
	keys := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		keys = append(keys, f.Key)
	}
	return keys
}
