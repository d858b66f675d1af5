package timesheet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/warp/work-ledger/timesheet"
)

func TestWeeklySummary_FullWeek(t *testing.T) {
	// GIVEN: Monday-Thursday at 7.5h and Friday at 8h
	days := fullWeek(t)
	rec := worked(t, friday, "07:30", "15:30")
	days[rec.Key()] = rec

	// WHEN: The week is summarised from a mid-week date
	s := timesheet.WeeklySummaryFor(date(wednesday), days, defaultConfig())

	// THEN: Aligned to Monday, +0.5h, which is enough to earn flex
	assert.Equal(t, monday, s.StartDate.String())
	assert.Equal(t, "2026-03-08", s.EndDate.String())
	assert.Equal(t, 10, s.WeekNumber)
	assertHours(t, 37.5, s.TheoreticalHours)
	assertHours(t, 38, s.WorkedHours)
	assertHours(t, 0.5, s.Difference)
	assertHours(t, 0.5, s.FlexibilityGained)
}

func TestWeeklySummary_VacationExcludedBothSides(t *testing.T) {
	// GIVEN: A vacation Friday in an otherwise full week
	days := fullWeek(t)
	vac := withKind(friday, timesheet.Vacation{Approval: timesheet.RequestPending})
	days[vac.Key()] = vac

	s := timesheet.WeeklySummaryFor(date(monday), days, defaultConfig())

	// THEN: Friday is neither demanded nor credited
	assertHours(t, 30, s.TheoreticalHours)
	assertHours(t, 30, s.WorkedHours)
	assertHours(t, 0, s.Difference)
}

func TestWeeklySummary_HolidayExcluded(t *testing.T) {
	// GIVEN: Friday declared a holiday
	cfg := defaultConfig().ToggleHoliday(date(friday))

	s := timesheet.WeeklySummaryFor(date(monday), fullWeek(t), cfg)

	assertHours(t, 30, s.TheoreticalHours)
	assertHours(t, 0, s.Difference)
}

func TestWeeklySummary_DeficitEarnsNothing(t *testing.T) {
	s := timesheet.WeeklySummaryFor(date(monday), fullWeek(t), defaultConfig())
	assertHours(t, -7.5, s.Difference)
	assertHours(t, 0, s.FlexibilityGained)
}

func TestWeeklySummary_GainLimitedByHeadroom(t *testing.T) {
	cfg := defaultConfig()
	cfg.FlexibilityHours = hours(25)
	days := fullWeek(t)
	rec := worked(t, friday, "07:00", "15:30")
	days[rec.Key()] = rec

	s := timesheet.WeeklySummaryFor(date(monday), days, cfg)

	assertHours(t, 1, s.Difference)
	assertHours(t, 0, s.FlexibilityGained)
}

func TestYearSummaries_CoverCalendarYear(t *testing.T) {
	weeks := timesheet.YearSummaries(timesheet.Days{}, defaultConfig())

	// 2026 starts on a Thursday and ends on a Thursday
	assert.Len(t, weeks, 53)
	assert.Equal(t, "2025-12-29", weeks[0].StartDate.String())
	assert.Equal(t, "2026-12-28", weeks[len(weeks)-1].StartDate.String())
}
