package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseValue turns a raw cell string into the most specific scalar it
// parses as: int, float64, bool, else the trimmed string.
func ParseValue(s string) interface{} {
	s = strings.TrimSpace(s)

	// try int
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	// try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	// try bool
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}

// ToString renders any scalar cell value as a string; nil becomes "".
func ToString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// IsEmpty reports whether a cell value is nil or an empty string.
func IsEmpty(v interface{}) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

// FirstNonEmpty returns the first value that is not empty per IsEmpty.
func FirstNonEmpty(values ...interface{}) interface{} {
	for _, v := range values {
		if !IsEmpty(v) {
			return v
		}
	}
	return nil
}

// NormalizeDecimal rewrites a human-formatted number into canonical
// dot-decimal form. When both "." and "," appear, the rightmost of the two
// is the decimal separator and the other is stripped as grouping; a lone
// "," is treated as the decimal separator. "1.234,56" and "1,234.56" both
// normalize to "1234.56".
func NormalizeDecimal(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	dot := strings.LastIndex(s, ".")
	comma := strings.LastIndex(s, ",")
	switch {
	case dot >= 0 && comma >= 0:
		if comma > dot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case comma >= 0:
		s = strings.Replace(s, ",", ".", 1)
	}
	return strings.ReplaceAll(s, " ", "")
}

// ParseDecimal parses a cell value as a decimal after locale
// normalization.
func ParseDecimal(v interface{}) (decimal.Decimal, error) {
	switch val := v.(type) {
	case int:
		return decimal.NewFromInt(int64(val)), nil
	case int64:
		return decimal.NewFromInt(val), nil
	case float64:
		return decimal.NewFromFloat(val), nil
	case float32:
		return decimal.NewFromFloat32(val), nil
	case string:
		return decimal.NewFromString(NormalizeDecimal(val))
	default:
		return decimal.NewFromString(NormalizeDecimal(fmt.Sprintf("%v", v)))
	}
}

// Numeric converts supported scalar types to float64, returning 0 for
// anything non-numeric.
func Numeric(v interface{}) float64 {
	switch val := v.(type) {
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case float64:
		return val
	case float32:
		return float64(val)
	case string:
		if d, err := ParseDecimal(val); err == nil {
			return d.InexactFloat64()
		}
		return 0
	default:
		return 0
	}
}
