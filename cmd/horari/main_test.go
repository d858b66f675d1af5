package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/work-ledger/exchange"
	"github.com/warp/work-ledger/generic"
	"github.com/warp/work-ledger/timesheet"
	"github.com/xuri/excelize/v2"
)

// withDatabase points the commands at a fresh sqlite file.
func withDatabase(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HORARI_DB_PATH", filepath.Join(dir, "horari.db"))
	t.Setenv("HORARI_LOG_LEVEL", "error")
	return dir
}

func run(t *testing.T, args ...string) (*app, string, error) {
	t.Helper()
	a := &app{}
	var out bytes.Buffer
	err := execute(a, args, &out)
	return a, out.String(), err
}

func writeExport(t *testing.T, dir string) string {
	t.Helper()
	cfg := timesheet.DefaultConfig(2026)
	rec := timesheet.DayRecord{
		Date: generic.MustParseDate("2026-03-02"),
		Kind: timesheet.PersonalLeave{Hours: generic.Hours(2), Approval: timesheet.RequestApproved},
	}
	cfg.UsedAPHours = generic.Hours(2)
	doc := exchange.Export(cfg, timesheet.Days{rec.Key(): rec}, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	path := filepath.Join(dir, "backup.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestImportThenExport(t *testing.T) {
	// GIVEN: An export document on disk
	dir := withDatabase(t)
	path := writeExport(t, dir)

	// WHEN: It is imported and the ledger exported to stdout
	_, _, err := run(t, "import", path)
	require.NoError(t, err)
	_, out, err := run(t, "export")
	require.NoError(t, err)

	// THEN: The stored ledger is the imported one
	doc, err := exchange.Decode(bytes.NewReader([]byte(out)))
	require.NoError(t, err)
	assert.Contains(t, doc.DaysData, "2026-03-02")
	assert.Equal(t, 2.0, doc.Config.UsedAPHours)
}

func TestExportToFile(t *testing.T) {
	dir := withDatabase(t)
	path := filepath.Join(dir, "out.json")

	_, out, err := run(t, "export", path)

	require.NoError(t, err)
	assert.Empty(t, out)
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	_, err = exchange.Decode(f)
	assert.NoError(t, err)
}

func TestReport(t *testing.T) {
	dir := withDatabase(t)
	path := filepath.Join(dir, "report.xlsx")

	_, _, err := run(t, "report", path)

	require.NoError(t, err)
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{exchange.ReportSheet}, f.GetSheetList())
}

func TestReset_RequiresConfirmation(t *testing.T) {
	dir := withDatabase(t)
	_, _, err := run(t, "import", writeExport(t, dir))
	require.NoError(t, err)

	_, _, err = run(t, "reset")
	require.Error(t, err)

	_, out, err := run(t, "export")
	require.NoError(t, err)
	assert.Contains(t, out, "2026-03-02", "refused reset keeps the data")

	_, _, err = run(t, "reset", "--yes")
	require.NoError(t, err)
	_, out, err = run(t, "export")
	require.NoError(t, err)
	assert.NotContains(t, out, "2026-03-02")
}

func TestFailingCommandClosesStore(t *testing.T) {
	// GIVEN: A command that fails after the store was opened
	dir := withDatabase(t)

	// WHEN: Importing a file that does not exist
	a, _, err := run(t, "import", filepath.Join(dir, "missing.json"))

	// THEN: The error is returned and the store released
	require.Error(t, err)
	assert.NotNil(t, a.service, "store was opened")
	assert.Nil(t, a.store)
}
