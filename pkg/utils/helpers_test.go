package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValue(t *testing.T) {
	assert.Equal(t, 42, ParseValue("42"))
	assert.Equal(t, 3.14, ParseValue(" 3.14 "))
	assert.Equal(t, true, ParseValue("true"))
	assert.Equal(t, "hello", ParseValue(" hello "))
	assert.Equal(t, "", ParseValue("   "))
}

func TestNormalizeDecimal(t *testing.T) {
	tests := map[string]string{
		"1.234,56":  "1234.56",
		"1,234.56":  "1234.56",
		"1234.56":   "1234.56",
		"12,5": "12.5",
		" 99 ": "99",
		"":     "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeDecimal(in), "input %q", in)
	}
}

func TestNormalizeDecimalGroupingDots(t *testing.T) {
	// rightmost separator wins: the comma makes the dots grouping
	assert.Equal(t, "1234567.89", NormalizeDecimal("1.234.567,89"))
	// and vice versa
	assert.Equal(t, "1234567.89", NormalizeDecimal("1,234,567.89"))
}

func TestParseDecimal(t *testing.T) {
	d, err := ParseDecimal("1.234,56")
	require.NoError(t, err)
	assert.Equal(t, "1234.56", d.String())

	d, err = ParseDecimal(42)
	require.NoError(t, err)
	assert.Equal(t, "42", d.String())

	d, err = ParseDecimal(12.5)
	require.NoError(t, err)
	assert.Equal(t, "12.5", d.String())

	_, err = ParseDecimal("not a number")
	assert.Error(t, err)
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(nil))
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("  "))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty(0))
	assert.False(t, IsEmpty(false))
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", FirstNonEmpty(nil, "", "b", "c"))
	assert.Nil(t, FirstNonEmpty(nil, ""))
}

func TestToString(t *testing.T) {
	assert.Equal(t, "", ToString(nil))
	assert.Equal(t, "abc", ToString("abc"))
	assert.Equal(t, "12.5", ToString(12.5))
	assert.Equal(t, "7", ToString(7))
}

func TestNumeric(t *testing.T) {
	assert.Equal(t, 42.0, Numeric(42))
	assert.Equal(t, 1234.56, Numeric("1.234,56"))
	assert.Equal(t, 0.0, Numeric("abc"))
}
