package timesheet_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/warp/work-ledger/generic"
	"github.com/warp/work-ledger/timesheet"
)

// =============================================================================
// TEST INFRASTRUCTURE
// =============================================================================
// The week of 2026-03-02 (Mon) to 2026-03-08 (Sun) is winter schedule in the
// default config (7.5h per weekday) and holds no default holiday, so a full
// week is 37.5 theoretical hours.
// =============================================================================

const (
	monday    = "2026-03-02"
	tuesday   = "2026-03-03"
	wednesday = "2026-03-04"
	thursday  = "2026-03-05"
	friday    = "2026-03-06"
	saturday  = "2026-03-07"
)

func defaultConfig() timesheet.UserConfig {
	return timesheet.DefaultConfig(2026)
}

func hours(h float64) decimal.Decimal {
	return decimal.NewFromFloat(h)
}

func date(s string) generic.TimePoint {
	return generic.MustParseDate(s)
}

func shift(t *testing.T, start, end string) timesheet.Shift {
	t.Helper()
	s, err := timesheet.NewShift(start, end)
	if err != nil {
		t.Fatalf("shift %s-%s: %v", start, end, err)
	}
	return s
}

func worked(t *testing.T, day, start, end string) timesheet.DayRecord {
	t.Helper()
	return timesheet.DayRecord{
		Date:    date(day),
		Shift1:  shift(t, start, end),
		DayType: timesheet.DayPresencial,
		Kind:    timesheet.Working{},
	}
}

func withKind(day string, kind timesheet.DayKind) timesheet.DayRecord {
	return timesheet.DayRecord{
		Date:    date(day),
		DayType: timesheet.DayPresencial,
		Kind:    kind,
	}
}

func daysOf(records ...timesheet.DayRecord) timesheet.Days {
	out := timesheet.Days{}
	for _, r := range records {
		out[r.Key()] = r
	}
	return out
}

// fullWeek is Monday to Thursday at exactly 7.5h each.
func fullWeek(t *testing.T) timesheet.Days {
	return daysOf(
		worked(t, monday, "07:30", "15:00"),
		worked(t, tuesday, "07:30", "15:00"),
		worked(t, wednesday, "07:30", "15:00"),
		worked(t, thursday, "07:30", "15:00"),
	)
}

func assertHours(t *testing.T, expected float64, actual decimal.Decimal) {
	t.Helper()
	assert.Truef(t, actual.Equal(hours(expected)), "expected %vh, got %sh", expected, actual.String())
}
