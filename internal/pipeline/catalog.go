package pipeline

import (
	"fmt"
	"strings"
	"time"

	"go-import-pipeline/internal/model"
	"go-import-pipeline/pkg/utils"
)

// TransformFunc is a pure value transform. It must not keep state: the
// coordinator re-applies transforms during re-processing and tests rely on
// repeated application yielding identical results.
type TransformFunc func(value interface{}, fieldKey string) interface{}

// TransformInfo identifies a transform for listing in a mapping editor.
type TransformInfo struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type transform struct {
	TransformInfo
	fields map[string]bool // empty set = available for every field
	fn     TransformFunc
}

// Catalog is a registry of named transforms, scoped per target field key.
// Registration happens at startup; duplicate ids are a programming error.
type Catalog struct {
	byID  map[string]*transform
	order []string
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{byID: make(map[string]*transform)}
}

// Register adds a transform. An empty fields list makes it available for
// all target fields. Registering the same id twice panics.
func (c *Catalog) Register(id, label string, fields []string, fn TransformFunc) {
	if _, exists := c.byID[id]; exists {
		panic(fmt.Sprintf("transform %q registered twice", id))
	}
	t := &transform{
		TransformInfo: TransformInfo{ID: id, Label: label},
		fields:        make(map[string]bool, len(fields)),
		fn:            fn,
	}
	for _, f := range fields {
		t.fields[f] = true
	}
	c.byID[id] = t
	c.order = append(c.order, id)
}

// ListTransforms returns the transforms available for a target field, in
// registration order.
func (c *Catalog) ListTransforms(fieldKey string) []TransformInfo {
	var out []TransformInfo
	for _, id := range c.order {
		t := c.byID[id]
		if len(t.fields) == 0 || t.fields[fieldKey] {
			out = append(out, t.TransformInfo)
		}
	}
	return out
}

// Apply runs the named transform against a value.
func (c *Catalog) Apply(value interface{}, id, fieldKey string) (interface{}, error) {
	t, ok := c.byID[id]
	if !ok {
		return nil, &model.UnknownTransformError{ID: id, Field: fieldKey}
	}
	return t.fn(value, fieldKey), nil
}

// Has reports whether an id is registered, letting callers reject a stale
// persisted mapping before any row is touched.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// currencyAliases maps common spreadsheet spellings to ISO codes.
var currencyAliases = map[string]string{
	"EURO":  "EUR",
	"EUROS": "EUR",
	"€":     "EUR",
	"$":     "USD",
	"US$":   "USD",
	"£":     "GBP",
	"RMB":   "CNY",
}

// DefaultCatalog registers the built-in transforms for the ledger entity.
func DefaultCatalog() *Catalog {
	c := NewCatalog()

	c.Register("currency-normalize", "Normalize currency code", []string{"Currency"},
		func(v interface{}, _ string) interface{} {
			code := strings.ToUpper(strings.TrimSpace(utils.ToString(v)))
			if iso, ok := currencyAliases[code]; ok {
				return iso
			}
			return code
		})

	c.Register("period-normalize", "Period to YYYY-MM", []string{"Period"},
		func(v interface{}, _ string) interface{} {
			return NormalizePeriod(utils.ToString(v))
		})

	c.Register("date-iso", "Date to YYYY-MM-DD", []string{"PostingDate"},
		func(v interface{}, _ string) interface{} {
			s := strings.TrimSpace(utils.ToString(v))
			if s == "" {
				return s
			}
			layouts := []string{"2006-01-02", "02.01.2006", "02-01-2006", "01/02/2006", "2006/01/02", "20060102", "02-Jan-2006"}
			for _, l := range layouts {
				if t, err := time.Parse(l, s); err == nil {
					return t.Format("2006-01-02")
				}
			}
			return s
		})

	c.Register("decimal-normalize", "Normalize decimal separators", []string{"Amount"},
		func(v interface{}, _ string) interface{} {
			if s, ok := v.(string); ok {
				return utils.NormalizeDecimal(s)
			}
			return v
		})

	c.Register("text-trim", "Trim whitespace", nil,
		func(v interface{}, _ string) interface{} {
			if s, ok := v.(string); ok {
				return strings.TrimSpace(s)
			}
			return v
		})

	c.Register("text-upper", "Upper case", nil,
		func(v interface{}, _ string) interface{} {
			if s, ok := v.(string); ok {
				return strings.ToUpper(s)
			}
			return v
		})

	return c
}
