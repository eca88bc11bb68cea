package pipeline

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"

	"go-import-pipeline/internal/model"
	"go-import-pipeline/pkg/utils"
)

// ------------------- Enrichment -------------------

// EnrichFunc fills required-but-derivable fields across a whole batch.
// It receives the rows in original source order; fallbacks that depend on
// row position (line sequences) must use that order.
type EnrichFunc func(rows []model.TargetRow) error

var enrichers = map[string]EnrichFunc{}

// RegisterEnricher adds a per-entity enrichment chain. New entities bring
// their own function with the same first-success-wins discipline.
func RegisterEnricher(key string, fn EnrichFunc) {
	if _, exists := enrichers[key]; exists {
		panic(fmt.Sprintf("enricher %q registered twice", key))
	}
	enrichers[key] = fn
}

// EnrichRows runs the entity's enrichment chain in place. Entities without
// a registered enricher pass through untouched.
func EnrichRows(enricherKey string, rows []model.TargetRow) error {
	fn, ok := enrichers[enricherKey]
	if !ok {
		return nil
	}
	return fn(rows)
}

func init() {
	RegisterEnricher("ledger-entries", enrichLedgerRows)
}

var (
	periodRe      = regexp.MustCompile(`^(\d{2})[.\-](\d{4})$`)
	isoPeriodRe   = regexp.MustCompile(`^(\d{4})-(\d{2})$`)
	postingDateRe = regexp.MustCompile(`^(\d{4})-\d{2}-\d{2}`)
)

// NormalizePeriod rewrites "MM.YYYY" or "MM-YYYY" to "YYYY-MM"; anything
// else passes through unchanged.
func NormalizePeriod(s string) string {
	if m := periodRe.FindStringSubmatch(s); m != nil {
		return m[2] + "-" + m[1]
	}
	return s
}

// enrichLedgerRows fills the derivable ledger fields. Each field uses a
// strict fallback order evaluated top to bottom, first success wins:
//
//	FiscalYear:  explicit int → period YYYY-MM prefix → posting date prefix → current year
//	LineId:      explicit int → 1-based position in the batch
//	DocumentId:  explicit → generated uuid, unique per row
//	PostingDate: explicit → "{period}-01" when the period is YYYY-MM
func enrichLedgerRows(rows []model.TargetRow) error {
	for i, row := range rows {
		if p, ok := row["Period"]; ok && !utils.IsEmpty(p) {
			row["Period"] = NormalizePeriod(utils.ToString(p))
		}

		if year, ok := deriveFiscalYear(row); ok {
			row["FiscalYear"] = year
		} else {
			row["FiscalYear"] = time.Now().Year()
		}

		if n, ok := coerceInt(row["LineId"]); ok {
			row["LineId"] = n
		} else {
			row["LineId"] = i + 1
		}

		if utils.IsEmpty(row["DocumentId"]) {
			row["DocumentId"] = uuid.NewString()
		}

		if utils.IsEmpty(row["PostingDate"]) {
			if period := utils.ToString(row["Period"]); isoPeriodRe.MatchString(period) {
				row["PostingDate"] = period + "-01"
			}
		}
	}
	return nil
}

func deriveFiscalYear(row model.TargetRow) (int, bool) {
	if n, ok := coerceInt(row["FiscalYear"]); ok {
		return n, true
	}
	if m := isoPeriodRe.FindStringSubmatch(utils.ToString(row["Period"])); m != nil {
		year, _ := strconv.Atoi(m[1])
		return year, true
	}
	if m := postingDateRe.FindStringSubmatch(utils.ToString(row["PostingDate"])); m != nil {
		year, _ := strconv.Atoi(m[1])
		return year, true
	}
	return 0, false
}

func coerceInt(v interface{}) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case float64:
		return int(val), true
	case string:
		if n, err := strconv.Atoi(val); err == nil {
			return n, true
		}
	}
	return 0, false
}
