package timesheet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/warp/work-ledger/generic"
	"github.com/warp/work-ledger/timesheet"
)

func TestStatusFor(t *testing.T) {
	// GIVEN: One approved and one pending vacation day, AP and flex in use
	cfg := defaultConfig()
	cfg.UsedVacationDays = 1
	cfg.UsedAPHours = hours(12.5)
	cfg.FlexibilityHours = hours(6)
	cfg.UsedFlexHours = hours(2)
	days := daysOf(
		withKind(monday, timesheet.Vacation{Approval: timesheet.RequestApproved}),
		withKind(tuesday, timesheet.Vacation{Approval: timesheet.RequestPending}),
		worked(t, wednesday, "07:30", "15:00"),
	)

	s := timesheet.StatusFor(cfg, days)

	// THEN: Remaining vacation counts every request, pending included
	assert.Equal(t, 2, s.Vacation.Requested)
	assert.Equal(t, 1, s.Vacation.Pending)
	assertHours(t, 1, s.Vacation.Used.Value)
	assertHours(t, 23, s.Vacation.Remaining.Value)
	assert.Equal(t, generic.UnitDays, s.Vacation.Total.Unit)

	assertHours(t, 77.5, s.PersonalLeave.Remaining.Value)
	assert.Equal(t, generic.UnitHours, s.PersonalLeave.Remaining.Unit)

	assertHours(t, 4, s.Flex.Available.Value)
	assertHours(t, 25, s.Flex.Max.Value)
	assert.Zero(t, s.CoverageGaps)
}

func TestStatusFor_RemainingNeverNegative(t *testing.T) {
	cfg := defaultConfig()
	cfg.TotalVacationDays = 1
	days := daysOf(
		withKind(monday, timesheet.Vacation{}),
		withKind(tuesday, timesheet.Vacation{}),
	)

	s := timesheet.StatusFor(cfg, days)

	assert.True(t, s.Vacation.Remaining.IsZero())
}
