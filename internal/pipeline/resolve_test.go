package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-import-pipeline/internal/model"
)

func testSchema() model.TargetSchema {
	return model.TargetSchema{Fields: []model.TargetFieldSchema{
		{Key: "VendorId", Type: model.FieldString, Required: true},
		{Key: "Amount", Type: model.FieldNumber, Required: true},
		{Key: "Currency", Type: model.FieldString, Required: true},
		{Key: "Description", Type: model.FieldString},
	}}
}

func TestSuggestExactAndFoldedMatch(t *testing.T) {
	columns := []string{"vendor id", "AMOUNT", "Notes"}
	set := Suggest(columns, testSchema())

	// folded match: "vendor id" → VendorId
	assert.Equal(t, "vendor id", set["VendorId"].SourceColumn)
	// case-insensitive exact match
	assert.Equal(t, "AMOUNT", set["Amount"].SourceColumn)
	// no plausible column: left unmapped
	_, mapped := set["Currency"]
	assert.False(t, mapped)
	_, mapped = set["Description"]
	assert.False(t, mapped)
}

func TestSuggestExactWinsOverFolded(t *testing.T) {
	// both columns fold to "vendorid" but the exact one must win
	columns := []string{"Vendor_Id", "VendorId"}
	set := Suggest(columns, testSchema())
	assert.Equal(t, "VendorId", set["VendorId"].SourceColumn)
}

func TestSuggestDeterministic(t *testing.T) {
	columns := []string{"Vendor Name", "Amt", "currency"}
	first := Suggest(columns, testSchema())
	second := Suggest(columns, testSchema())
	assert.Equal(t, first, second)
}

func TestMappingCompleteness(t *testing.T) {
	schema := testSchema()

	set := model.MappingSet{
		"VendorId": {SourceColumn: "Vendor"},
		"Amount":   {SourceColumn: "Amt"},
		"Currency": {SourceColumn: model.ConstColumn, ConstantValue: "EUR"},
	}
	assert.True(t, IsComplete(set, schema))
	assert.Equal(t, 0, MissingRequired(set, schema))

	// constant without a value does not satisfy
	set["Currency"] = model.MappingConfig{SourceColumn: model.ConstColumn}
	assert.False(t, IsComplete(set, schema))
	assert.Equal(t, 1, MissingRequired(set, schema))

	// concat without its second column does not satisfy
	set["Currency"] = model.MappingConfig{SourceColumn: "Cur", Op: model.OpConcat}
	assert.Equal(t, 1, MissingRequired(set, schema))
	set["Currency"] = model.MappingConfig{SourceColumn: "Cur", Op: model.OpConcat, SecondaryColumn: "Cur2"}
	assert.True(t, IsComplete(set, schema))

	// missing config counts once per required field
	delete(set, "VendorId")
	delete(set, "Amount")
	assert.Equal(t, 2, MissingRequired(set, schema))
	assert.False(t, IsComplete(set, schema))
}

func TestMappingPredicatesAgree(t *testing.T) {
	schema := testSchema()
	sets := []model.MappingSet{
		{},
		{"VendorId": {SourceColumn: "V"}},
		{"VendorId": {SourceColumn: "V"}, "Amount": {SourceColumn: "A"}, "Currency": {SourceColumn: "C"}},
		{"VendorId": {SourceColumn: model.ConstColumn}},
	}
	for _, set := range sets {
		assert.Equal(t, MissingRequired(set, schema) == 0, IsComplete(set, schema))
	}
}

func TestValidateTransforms(t *testing.T) {
	catalog := DefaultCatalog()
	ok := model.MappingSet{"Currency": {SourceColumn: "Cur", TransformID: "currency-normalize"}}
	assert.NoError(t, ValidateTransforms(ok, catalog))

	stale := model.MappingSet{"Currency": {SourceColumn: "Cur", TransformID: "removed-transform"}}
	err := ValidateTransforms(stale, catalog)
	var unknownErr *model.UnknownTransformError
	assert.ErrorAs(t, err, &unknownErr)
}
