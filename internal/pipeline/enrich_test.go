package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-import-pipeline/internal/model"
)

func TestNormalizePeriod(t *testing.T) {
	assert.Equal(t, "2025-03", NormalizePeriod("03.2025"))
	assert.Equal(t, "2025-03", NormalizePeriod("03-2025"))
	assert.Equal(t, "2025-03", NormalizePeriod("2025-03"))
	assert.Equal(t, "garbage", NormalizePeriod("garbage"))
}

func TestEnrichFiscalYearFromPeriod(t *testing.T) {
	rows := []model.TargetRow{{"Period": "2025-03"}}
	require.NoError(t, EnrichRows("ledger-entries", rows))
	assert.Equal(t, 2025, rows[0]["FiscalYear"])
}

func TestEnrichFiscalYearFallbackOrder(t *testing.T) {
	// explicit value wins over the period
	rows := []model.TargetRow{{"FiscalYear": "2023", "Period": "2025-03"}}
	require.NoError(t, EnrichRows("ledger-entries", rows))
	assert.Equal(t, 2023, rows[0]["FiscalYear"])

	// posting date used when no period
	rows = []model.TargetRow{{"PostingDate": "2024-11-30"}}
	require.NoError(t, EnrichRows("ledger-entries", rows))
	assert.Equal(t, 2024, rows[0]["FiscalYear"])

	// nothing derivable: current calendar year
	rows = []model.TargetRow{{}}
	require.NoError(t, EnrichRows("ledger-entries", rows))
	assert.Equal(t, time.Now().Year(), rows[0]["FiscalYear"])
}

func TestEnrichLineSequence(t *testing.T) {
	rows := []model.TargetRow{{}, {"LineId": "7"}, {}}
	require.NoError(t, EnrichRows("ledger-entries", rows))
	assert.Equal(t, 1, rows[0]["LineId"])
	assert.Equal(t, 7, rows[1]["LineId"]) // explicit value kept
	assert.Equal(t, 3, rows[2]["LineId"]) // 1-based batch position
}

func TestEnrichDocumentIdGenerated(t *testing.T) {
	rows := []model.TargetRow{{}, {}, {"DocumentId": "DOC-1"}}
	require.NoError(t, EnrichRows("ledger-entries", rows))

	assert.Equal(t, "DOC-1", rows[2]["DocumentId"])
	first := rows[0]["DocumentId"].(string)
	second := rows[1]["DocumentId"].(string)
	assert.NotEmpty(t, first)
	assert.NotEmpty(t, second)
	assert.NotEqual(t, first, second)
}

func TestEnrichPostingDateFromPeriod(t *testing.T) {
	rows := []model.TargetRow{{"Period": "03.2025"}}
	require.NoError(t, EnrichRows("ledger-entries", rows))
	assert.Equal(t, "2025-03", rows[0]["Period"])
	assert.Equal(t, "2025-03-01", rows[0]["PostingDate"])

	// explicit posting date untouched
	rows = []model.TargetRow{{"Period": "2025-03", "PostingDate": "2025-03-15"}}
	require.NoError(t, EnrichRows("ledger-entries", rows))
	assert.Equal(t, "2025-03-15", rows[0]["PostingDate"])
}

func TestEnrichUnknownEntityPassesThrough(t *testing.T) {
	rows := []model.TargetRow{{"X": 1}}
	require.NoError(t, EnrichRows("no-such-entity", rows))
	assert.Equal(t, model.TargetRow{"X": 1}, rows[0])
}

func TestRegisterEnricherTwicePanics(t *testing.T) {
	RegisterEnricher("enrich-test-dup", func([]model.TargetRow) error { return nil })
	assert.Panics(t, func() {
		RegisterEnricher("enrich-test-dup", func([]model.TargetRow) error { return nil })
	})
}
