package pipeline

import (
	"fmt"

	"go-import-pipeline/internal/model"
	"go-import-pipeline/pkg/utils"
)

// ------------------- Validation gate -------------------

// Validate checks enriched rows against the target schema: required fields
// must be present and non-empty, number-typed fields must parse after
// locale normalization ("1.234,56" → 1234.56). Failing rows are excluded
// from the valid set and produce one message each naming the row and the
// failing field. Data-quality failures never error; only a structurally
// missing schema does.
func Validate(rows []model.TargetRow, schema model.TargetSchema) ([]model.TargetRow, []string, error) {
	if len(schema.Fields) == 0 {
		return nil, nil, fmt.Errorf("validate: target schema has no fields")
	}

	valid := make([]model.TargetRow, 0, len(rows))
	var errs []string

	for i, row := range rows {
		if msg := validateRow(row, schema); msg != "" {
			errs = append(errs, fmt.Sprintf("row %d: %s", i+1, msg))
			continue
		}
		valid = append(valid, row)
	}
	return valid, errs, nil
}

func validateRow(row model.TargetRow, schema model.TargetSchema) string {
	for _, field := range schema.Fields {
		value, present := row[field.Key]

		if field.Required && (!present || utils.IsEmpty(value)) {
			return fmt.Sprintf("required field %s is missing or empty", field.Key)
		}
		if field.Type == model.FieldNumber && present && !utils.IsEmpty(value) {
			if _, err := utils.ParseDecimal(value); err != nil {
				return fmt.Sprintf("field %s is not a number: %v", field.Key, value)
			}
		}
	}
	return ""
}
