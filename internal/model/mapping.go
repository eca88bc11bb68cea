package model

import (
	"sort"
	"strings"
)

// ConstColumn is the sentinel source column meaning "use ConstantValue
// instead of reading a cell".
const ConstColumn = "__const__"

// KeyFieldsKey is the reserved sub-key under which a confirmed duplicate
// key spec is persisted alongside an entity's mapping.
const KeyFieldsKey = "__keyFields"

// MappingOp selects how one or two source columns produce a target value.
type MappingOp string

const (
	OpDirect   MappingOp = "direct"
	OpCoalesce MappingOp = "coalesce"
	OpConcat   MappingOp = "concat"
)

// MappingConfig is the per-target-field rule for deriving a value from a
// source row.
type MappingConfig struct {
	SourceColumn    string    `json:"sourceColumn"`
	TransformID     string    `json:"transformId,omitempty"`
	ConstantValue   string    `json:"constantValue,omitempty"`
	Op              MappingOp `json:"op,omitempty"`
	SecondaryColumn string    `json:"secondaryColumn,omitempty"`
	Separator       string    `json:"separator,omitempty"` // concat only, defaults to a single space
}

// Operation returns the configured operation, defaulting to direct.
func (c MappingConfig) Operation() MappingOp {
	if c.Op == "" {
		return OpDirect
	}
	return c.Op
}

// Satisfied reports whether this config can actually produce a value:
// a constant mapping needs a constant, a concat needs its second column,
// anything else needs a source column.
func (c MappingConfig) Satisfied() bool {
	if c.SourceColumn == ConstColumn {
		return c.ConstantValue != ""
	}
	if c.Operation() == OpConcat && c.SecondaryColumn == "" {
		return false
	}
	return c.SourceColumn != ""
}

// MappingSet maps target field keys to their mapping rules. It may cover
// only a subset of the target schema.
type MappingSet map[string]MappingConfig

// Signature derives the stable lookup key for persisting a mapping:
// the entity key plus the sorted source column list.
func Signature(entityKey string, sourceColumns []string) string {
	cols := make([]string, len(sourceColumns))
	copy(cols, sourceColumns)
	sort.Strings(cols)
	return entityKey + "_" + strings.Join(cols, "|")
}

// DuplicateKeySpec is the ordered field list whose concatenated values
// identify a logical record.
type DuplicateKeySpec struct {
	Fields []string `json:"fields"`
}
