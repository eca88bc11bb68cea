package pipeline

import (
	"strings"

	"go-import-pipeline/internal/model"
	"go-import-pipeline/pkg/utils"
)

// ------------------- Row transformation -------------------

// ApplyMapping builds a target row from one source row by applying each
// field's mapping config. Fields without a config are omitted; the
// enricher or the validation gate deals with them later. The operation
// (direct/coalesce/concat) always runs before the optional transform, so
// transforms never see un-merged multi-column values.
func ApplyMapping(row model.SourceRow, set model.MappingSet, schema model.TargetSchema, catalog *Catalog) (model.TargetRow, error) {
	out := make(model.TargetRow)
	for _, field := range schema.Fields {
		cfg, ok := set[field.Key]
		if !ok {
			continue
		}

		value := resolveValue(row, cfg)
		if cfg.TransformID != "" {
			transformed, err := catalog.Apply(value, cfg.TransformID, field.Key)
			if err != nil {
				return nil, err
			}
			value = transformed
		}
		out[field.Key] = value
	}
	return out, nil
}

func resolveValue(row model.SourceRow, cfg model.MappingConfig) interface{} {
	if cfg.SourceColumn == model.ConstColumn {
		return cfg.ConstantValue
	}

	primary := row[cfg.SourceColumn]
	var secondary interface{}
	if cfg.SecondaryColumn != "" {
		secondary = row[cfg.SecondaryColumn]
	}

	switch cfg.Operation() {
	case model.OpCoalesce:
		if utils.IsEmpty(primary) {
			return secondary
		}
		return primary
	case model.OpConcat:
		sep := cfg.Separator
		if sep == "" {
			sep = " "
		}
		var parts []string
		for _, v := range []interface{}{primary, secondary} {
			if !utils.IsEmpty(v) {
				parts = append(parts, utils.ToString(v))
			}
		}
		return strings.TrimSpace(strings.Join(parts, sep))
	default:
		return primary
	}
}
