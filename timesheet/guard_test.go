package timesheet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/work-ledger/generic"
	"github.com/warp/work-ledger/timesheet"
)

func TestCheckEdit_VacationRefusedWhenAllDaysRequested(t *testing.T) {
	// GIVEN: Two vacation days allowed, two already requested
	cfg := defaultConfig()
	cfg.TotalVacationDays = 2
	days := daysOf(
		withKind(monday, timesheet.Vacation{Approval: timesheet.RequestApproved}),
		withKind(tuesday, timesheet.Vacation{Approval: timesheet.RequestPending}),
	)

	// WHEN: A third day is requested
	_, err := timesheet.CheckEdit(cfg, days, nil, withKind(wednesday, timesheet.Vacation{Approval: timesheet.RequestPending}))

	// THEN: It is refused with the vacation pool named
	var quota *generic.QuotaError
	require.ErrorAs(t, err, &quota)
	assert.Equal(t, "vacation", quota.Pool)
	assert.True(t, quota.Available.IsZero())
}

func TestCheckEdit_VacationApprovalOfExistingRequestAllowed(t *testing.T) {
	// GIVEN: The pool is fully requested
	cfg := defaultConfig()
	cfg.TotalVacationDays = 1
	prev := withKind(monday, timesheet.Vacation{Approval: timesheet.RequestPending})
	days := daysOf(prev)

	// WHEN: That same request is approved
	_, err := timesheet.CheckEdit(cfg, days, &prev, withKind(monday, timesheet.Vacation{Approval: timesheet.RequestApproved}))

	// THEN: It passes
	assert.NoError(t, err)
}

func TestCheckEdit_APOverRemainingRefused(t *testing.T) {
	cfg := defaultConfig()
	cfg.TotalAPHours = hours(10)
	cfg.UsedAPHours = hours(8)

	_, err := timesheet.CheckEdit(cfg, timesheet.Days{}, nil, withKind(monday, timesheet.PersonalLeave{Hours: hours(3)}))

	var quota *generic.QuotaError
	require.ErrorAs(t, err, &quota)
	assert.Equal(t, "ap", quota.Pool)
	assertHours(t, 2, quota.Available.Value)
	assertHours(t, 3, quota.Requested.Value)
}

func TestCheckEdit_APCountsHoursAlreadyHeldByDay(t *testing.T) {
	// GIVEN: 8 of 10h used, 2 of them on this very day
	cfg := defaultConfig()
	cfg.TotalAPHours = hours(10)
	cfg.UsedAPHours = hours(8)
	prev := withKind(monday, timesheet.PersonalLeave{Hours: hours(2)})

	// WHEN: The day is raised to 4h
	_, err := timesheet.CheckEdit(cfg, daysOf(prev), &prev, withKind(monday, timesheet.PersonalLeave{Hours: hours(4)}))

	// THEN: 2 free + 2 held = 4 available
	assert.NoError(t, err)
	assertHours(t, 4, timesheet.AvailableAPHours(cfg, &prev))
}

func TestCheckEdit_FlexCappedToAvailable(t *testing.T) {
	// GIVEN: 3h of unused credit
	cfg := defaultConfig()
	cfg.FlexibilityHours = hours(5)
	cfg.UsedFlexHours = hours(2)

	// WHEN: 6h of flex leave is requested
	next, err := timesheet.CheckEdit(cfg, timesheet.Days{}, nil, withKind(monday, timesheet.FlexLeave{Hours: hours(6)}))

	// THEN: Accepted, capped at 3h
	require.NoError(t, err)
	assertHours(t, 3, next.FlexLeaveHours())
}

func TestAvailableFlexHours_CappedByTheoreticalHours(t *testing.T) {
	cfg := defaultConfig()
	cfg.FlexibilityHours = hours(20)

	assertHours(t, 7.5, timesheet.AvailableFlexHours(cfg, nil, date(monday)))
	assertHours(t, 0, timesheet.AvailableFlexHours(cfg, nil, date(saturday)))
}

func TestCheckEdit_WorkingAlwaysPasses(t *testing.T) {
	cfg := defaultConfig()
	cfg.TotalAPHours = hours(0)
	_, err := timesheet.CheckEdit(cfg, timesheet.Days{}, nil, worked(t, monday, "06:00", "20:00"))
	assert.NoError(t, err)
}
