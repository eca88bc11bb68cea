package pipeline

import (
	"strings"
	"unicode"

	"go-import-pipeline/internal/model"
)

// ------------------- Mapping suggestion -------------------

// Suggest derives a default mapping from the source columns: for every
// target field, the first source column matching case-insensitively wins;
// failing that, the first column matching after stripping every
// non-alphanumeric character from both sides. Unmatched fields are left
// unmapped. The result is deterministic for identical input.
func Suggest(sourceColumns []string, schema model.TargetSchema) model.MappingSet {
	set := make(model.MappingSet)
	for _, field := range schema.Fields {
		if col, ok := matchColumn(field.Key, sourceColumns); ok {
			set[field.Key] = model.MappingConfig{SourceColumn: col, Op: model.OpDirect}
		}
	}
	return set
}

func matchColumn(fieldKey string, columns []string) (string, bool) {
	for _, col := range columns {
		if strings.EqualFold(col, fieldKey) {
			return col, true
		}
	}
	want := foldKey(fieldKey)
	for _, col := range columns {
		if foldKey(col) == want {
			return col, true
		}
	}
	return "", false
}

// foldKey lower-cases and strips everything non-alphanumeric so that
// "Vendor ID", "vendor_id" and "VendorId" all compare equal.
func foldKey(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// ------------------- Mapping completeness -------------------

// IsComplete reports whether every required schema field is satisfied by
// the mapping set. It agrees with MissingRequired by construction.
func IsComplete(set model.MappingSet, schema model.TargetSchema) bool {
	return MissingRequired(set, schema) == 0
}

// MissingRequired counts required schema fields not yet satisfied by the
// mapping set, for user-facing "N fields left" messages. Derivable fields
// are exempt: the entity's enricher synthesizes them before validation.
func MissingRequired(set model.MappingSet, schema model.TargetSchema) int {
	missing := 0
	for _, field := range schema.Fields {
		if !field.Required || field.Derivable {
			continue
		}
		cfg, ok := set[field.Key]
		if !ok || !cfg.Satisfied() {
			missing++
		}
	}
	return missing
}

// ValidateTransforms rejects a mapping that references transform ids the
// catalog never registered, so a stale persisted mapping fails before any
// row is processed rather than mid-batch.
func ValidateTransforms(set model.MappingSet, catalog *Catalog) error {
	for key, cfg := range set {
		if cfg.TransformID != "" && !catalog.Has(cfg.TransformID) {
			return &model.UnknownTransformError{ID: cfg.TransformID, Field: key}
		}
	}
	return nil
}
