package exchange_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/work-ledger/exchange"
	"github.com/xuri/excelize/v2"
)

func TestWriteWeeklyReport(t *testing.T) {
	// GIVEN: A sample ledger for 2026
	cfg, days := sampleLedger(t)

	// WHEN: The report is written
	var buf bytes.Buffer
	require.NoError(t, exchange.WriteWeeklyReport(&buf, cfg, days))

	// THEN: One sheet, a header row, 53 weeks and a totals row
	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{exchange.ReportSheet}, f.GetSheetList())

	header, err := f.GetCellValue(exchange.ReportSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Setmana", header)

	headerStyle, err := f.GetCellStyle(exchange.ReportSheet, "H1")
	require.NoError(t, err)
	assert.NotZero(t, headerStyle)

	first, err := f.GetCellValue(exchange.ReportSheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "2025-12-29", first)

	total, err := f.GetCellValue(exchange.ReportSheet, "A55")
	require.NoError(t, err)
	assert.Equal(t, "Total", total)

	remaining, err := f.GetCellValue(exchange.ReportSheet, "A57")
	require.NoError(t, err)
	assert.Equal(t, "Vacances restants (dies)", remaining)
}
