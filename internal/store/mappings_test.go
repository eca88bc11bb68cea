package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-import-pipeline/internal/model"
)

func testMappings(t *testing.T) *Mappings {
	t.Helper()
	m, err := NewMappings(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	return m
}

func TestMappingRoundTrip(t *testing.T) {
	m := testMappings(t)

	sig := model.Signature("ledger-entries", []string{"Amt", "Vendor Name"})
	set := model.MappingSet{
		"VendorId": {SourceColumn: "Vendor Name"},
		"Amount":   {SourceColumn: "Amt", TransformID: "decimal-normalize"},
		"Currency": {SourceColumn: model.ConstColumn, ConstantValue: "EUR"},
	}
	require.NoError(t, m.SetMapping(sig, set))

	got, ok, err := m.GetMapping(sig)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, set, got)
}

func TestMappingMissing(t *testing.T) {
	m := testMappings(t)
	_, ok, err := m.GetMapping("never-stored")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKeyFieldsStoredUnderReservedKey(t *testing.T) {
	m := testMappings(t)
	sig := model.Signature("ledger-entries", []string{"A", "B"})

	// key fields live beside the mapping without clobbering it
	require.NoError(t, m.SetMapping(sig, model.MappingSet{"VendorId": {SourceColumn: "A"}}))
	require.NoError(t, m.SetKeyFields(sig, []string{"DocumentId", "LineId", "Amount"}))

	fields, ok, err := m.GetKeyFields(sig)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"DocumentId", "LineId", "Amount"}, fields)

	set, ok, err := m.GetMapping(sig)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "A", set["VendorId"].SourceColumn)
}

func TestKeyFieldsMissing(t *testing.T) {
	m := testMappings(t)
	_, ok, err := m.GetKeyFields("no-signature")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSignatureStableUnderColumnOrder(t *testing.T) {
	a := model.Signature("ledger-entries", []string{"B", "A"})
	b := model.Signature("ledger-entries", []string{"A", "B"})
	assert.Equal(t, a, b)
	assert.Equal(t, "ledger-entries_A|B", a)
}
