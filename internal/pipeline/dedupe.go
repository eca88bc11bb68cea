package pipeline

import (
	"strings"

	"go-import-pipeline/internal/model"
	"go-import-pipeline/pkg/utils"
)

// ------------------- Duplicate detection -------------------

// keySeparator joins key field values. The ASCII unit separator never
// survives spreadsheet decoding, so it cannot collide with cell content.
const keySeparator = "\x1f"

// ComputeKey concatenates the row's key field values into its identity
// key. Missing fields contribute the empty string.
func ComputeKey(row model.TargetRow, keyFields []string) string {
	parts := make([]string, len(keyFields))
	for i, field := range keyFields {
		parts[i] = utils.ToString(row[field])
	}
	return strings.Join(parts, keySeparator)
}

// HasDuplicates reports whether any two rows share an identity key under
// the given key fields. Single seen-set pass, order independent.
func HasDuplicates(rows []model.TargetRow, keyFields []string) bool {
	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		key := ComputeKey(row, keyFields)
		if seen[key] {
			return true
		}
		seen[key] = true
	}
	return false
}

// DuplicateKeys returns each colliding key once, in first-occurrence
// order, for presenting the conflict to the user.
func DuplicateKeys(rows []model.TargetRow, keyFields []string) []string {
	seen := make(map[string]int, len(rows))
	var dups []string
	for _, row := range rows {
		key := ComputeKey(row, keyFields)
		seen[key]++
		if seen[key] == 2 {
			dups = append(dups, key)
		}
	}
	return dups
}
