package timesheet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/warp/work-ledger/timesheet"
)

func TestFormatHoursMinutes(t *testing.T) {
	assert.Equal(t, "7h 30min", timesheet.FormatHoursMinutes(hours(7.5)))
	assert.Equal(t, "0h 0min", timesheet.FormatHoursMinutes(hours(0)))
	assert.Equal(t, "2h 15min", timesheet.FormatHoursMinutes(hours(-2.25)))
}

func TestFormatSignedHours(t *testing.T) {
	assert.Equal(t, "+1h 0min", timesheet.FormatSignedHours(hours(1)))
	assert.Equal(t, "-0h 15min", timesheet.FormatSignedHours(hours(-0.25)))
	assert.Equal(t, "+0h 0min", timesheet.FormatSignedHours(hours(0)))
}

func TestFormatClockHours(t *testing.T) {
	assert.Equal(t, "07:30", timesheet.FormatClockHours(hours(7.5)))
	assert.Equal(t, "25:00", timesheet.FormatClockHours(hours(25)))
}

func TestNormalizeHoursDifference(t *testing.T) {
	assert.True(t, timesheet.NormalizeHoursDifference(hours(-0.0001)).IsZero())
	assertHours(t, 0.5, timesheet.NormalizeHoursDifference(hours(0.5)))
	assertHours(t, -1.25, timesheet.NormalizeHoursDifference(hours(-1.2501)))
}
