package exchange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestSheetWriter_KeepsFirstError(t *testing.T) {
	// GIVEN: A workbook with the report sheet
	f := excelize.NewFile()
	defer f.Close()
	_, err := f.NewSheet(ReportSheet)
	require.NoError(t, err)
	sw := &sheetWriter{f: f, sheet: ReportSheet}

	// WHEN: A write targets an invalid coordinate, then a valid one follows
	sw.set(1, 1, "ok")
	sw.set(0, 2, "bad")
	sw.set(1, 3, "skipped")

	// THEN: The first error is kept and later writes are skipped
	require.Error(t, sw.err)
	first, err := f.GetCellValue(ReportSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "ok", first)
	skipped, err := f.GetCellValue(ReportSheet, "A3")
	require.NoError(t, err)
	assert.Empty(t, skipped)
}

func TestSheetWriter_UnknownSheet(t *testing.T) {
	// GIVEN: A writer pointed at a sheet the workbook does not have
	f := excelize.NewFile()
	defer f.Close()
	sw := &sheetWriter{f: f, sheet: "Missing"}

	// WHEN: A value and a style are written
	sw.set(1, 1, "x")
	sw.style(1, 1, 2, 1, 0)

	// THEN: The excelize error surfaces
	assert.Error(t, sw.err)
}

func TestSheetWriter_InvalidStyleRange(t *testing.T) {
	// GIVEN: A workbook with the report sheet
	f := excelize.NewFile()
	defer f.Close()
	_, err := f.NewSheet(ReportSheet)
	require.NoError(t, err)
	sw := &sheetWriter{f: f, sheet: ReportSheet}

	// WHEN: A style range has an invalid end cell
	sw.style(1, 1, 0, 1, 0)

	// THEN: The coordinate error is recorded
	assert.Error(t, sw.err)
}
