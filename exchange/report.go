package exchange

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/warp/work-ledger/timesheet"
	"github.com/xuri/excelize/v2"
)

// ReportSheet is the worksheet WriteWeeklyReport fills.
const ReportSheet = "Setmanes"

var reportHeader = []string{
	"Setmana", "Inici", "Fi", "Teòriques (h)", "Treballades (h)", "Diferència (h)", "Diferència", "Flexibilitat (h)",
}

// WriteWeeklyReport writes an xlsx workbook with one row per week of the
// configured calendar year, followed by a totals row and the pool status.
func WriteWeeklyReport(w io.Writer, cfg timesheet.UserConfig, days timesheet.Days) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(ReportSheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}

	for _, cw := range []struct {
		from, to string
		width    float64
	}{{"A", "A", 10}, {"B", "C", 12}, {"D", "H", 16}} {
		if err := f.SetColWidth(ReportSheet, cw.from, cw.to, cw.width); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	hoursStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return fmt.Errorf("create hours style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, NumFmt: 2})
	if err != nil {
		return fmt.Errorf("create total style: %w", err)
	}

	sw := &sheetWriter{f: f, sheet: ReportSheet}
	for i, h := range reportHeader {
		sw.set(i+1, 1, h)
	}
	sw.style(1, 1, len(reportHeader), 1, headerStyle)

	totalTheoretical, totalWorked := decimal.Zero, decimal.Zero
	row := 2
	for _, wk := range timesheet.YearSummaries(days, cfg) {
		diff := timesheet.NormalizeHoursDifference(wk.Difference)
		sw.set(1, row, wk.WeekNumber)
		sw.set(2, row, wk.StartDate.String())
		sw.set(3, row, wk.EndDate.String())
		sw.set(4, row, wk.TheoreticalHours.InexactFloat64())
		sw.set(5, row, wk.WorkedHours.InexactFloat64())
		sw.set(6, row, diff.InexactFloat64())
		sw.set(7, row, timesheet.FormatSignedHours(diff))
		sw.set(8, row, wk.FlexibilityGained.InexactFloat64())
		sw.style(4, row, 6, row, hoursStyle)
		sw.style(8, row, 8, row, hoursStyle)

		totalTheoretical = totalTheoretical.Add(wk.TheoreticalHours)
		totalWorked = totalWorked.Add(wk.WorkedHours)
		row++
	}

	totalDiff := timesheet.NormalizeHoursDifference(totalWorked.Sub(totalTheoretical))
	sw.set(1, row, "Total")
	sw.set(4, row, totalTheoretical.InexactFloat64())
	sw.set(5, row, totalWorked.InexactFloat64())
	sw.set(6, row, totalDiff.InexactFloat64())
	sw.set(7, row, timesheet.FormatSignedHours(totalDiff))
	sw.style(1, row, 6, row, totalStyle)

	status := timesheet.StatusFor(cfg, days)
	row += 2
	for _, line := range [][2]any{
		{"Vacances restants (dies)", status.Vacation.Remaining.Float64()},
		{"Vacances sol·licitades (dies)", status.Vacation.Requested},
		{"AP restants (h)", status.PersonalLeave.Remaining.Float64()},
		{"Flexibilitat disponible (h)", status.Flex.Available.Float64()},
	} {
		sw.set(1, row, line[0])
		sw.set(4, row, line[1])
		row++
	}
	if sw.err != nil {
		return fmt.Errorf("fill sheet: %w", sw.err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// sheetWriter keeps the first error of a run of cell writes; later writes
// are skipped once one has failed.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (sw *sheetWriter) set(col, row int, value any) {
	if sw.err != nil {
		return
	}
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		sw.err = err
		return
	}
	sw.err = sw.f.SetCellValue(sw.sheet, name, value)
}

func (sw *sheetWriter) style(fromCol, fromRow, toCol, toRow, style int) {
	if sw.err != nil {
		return
	}
	from, err := excelize.CoordinatesToCellName(fromCol, fromRow)
	if err != nil {
		sw.err = err
		return
	}
	to, err := excelize.CoordinatesToCellName(toCol, toRow)
	if err != nil {
		sw.err = err
		return
	}
	sw.err = sw.f.SetCellStyle(sw.sheet, from, to, style)
}
