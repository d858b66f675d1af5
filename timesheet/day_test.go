package timesheet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/work-ledger/generic"
	"github.com/warp/work-ledger/timesheet"
)

func TestParseClock(t *testing.T) {
	c, err := timesheet.ParseClock("07:30")
	require.NoError(t, err)
	assert.Equal(t, 450, c.Minutes())
	assert.Equal(t, "07:30", c.String())

	for _, s := range []string{"7:30", "24:00", "12:60", "ab:cd", "07-30", ""} {
		_, err := timesheet.ParseClock(s)
		assert.ErrorIs(t, err, generic.ErrInvalidClock, "input %q", s)
	}
}

func TestShiftHours(t *testing.T) {
	assertHours(t, 8, shift(t, "07:30", "15:30").Hours())
	assertHours(t, 0, shift(t, "15:00", "07:30").Hours())
	assertHours(t, 0, shift(t, "07:30", "").Hours())
	assertHours(t, 0, timesheet.Shift{}.Hours())
}

func TestWorkedHours_LaboralDay(t *testing.T) {
	// GIVEN: A laboral day 07:30-15:30
	rec := worked(t, monday, "07:30", "15:30")

	// THEN: 8h worked, no absence extra
	assertHours(t, 8, rec.WorkedHours())
	assertHours(t, 8, rec.EffectiveHours())
}

func TestEffectiveHours_SplitShiftPlusAbsence(t *testing.T) {
	// GIVEN: 08:00-12:00 and 13:00-14:30 plus 2h of AP
	rec := timesheet.DayRecord{
		Date:   date(monday),
		Shift1: shift(t, "08:00", "12:00"),
		Shift2: shift(t, "13:00", "14:30"),
		Kind:   timesheet.PersonalLeave{Hours: hours(2), Approval: timesheet.RequestPending},
	}

	assertHours(t, 5.5, rec.WorkedHours())
	assertHours(t, 7.5, rec.EffectiveHours())
	assertHours(t, 2, rec.PersonalLeaveHours())
	assertHours(t, 0, rec.FlexLeaveHours())
}

func TestEffectiveHours_CappedAtDailyMax(t *testing.T) {
	rec := worked(t, monday, "06:00", "18:00")
	assertHours(t, 12, rec.WorkedHours())
	assertHours(t, 9.5, rec.EffectiveHours())
}

func TestEffectiveHours_VacationIsZero(t *testing.T) {
	rec := withKind(monday, timesheet.Vacation{Approval: timesheet.RequestApproved})
	rec.Shift1 = shift(t, "07:30", "15:00")
	assertHours(t, 0, rec.EffectiveHours())
	assert.True(t, rec.IsApprovedVacation())

	// Normalize strips the shifts a vacation day cannot carry
	assert.True(t, rec.Normalize().Shift1.IsZero())
}

func TestNegativeAbsenceHoursCountAsZero(t *testing.T) {
	rec := withKind(monday, timesheet.OtherLeave{Hours: hours(-3), Comment: "metge"})
	assertHours(t, 0, rec.EffectiveHours())
}

func TestKindFor_DropsForeignFields(t *testing.T) {
	k := timesheet.KindFor(timesheet.StatusVacances, timesheet.RequestPending, hours(4), "x")
	assert.Equal(t, timesheet.Vacation{Approval: timesheet.RequestPending}, k)

	k = timesheet.KindFor(timesheet.StatusAltres, timesheet.RequestNone, hours(1.5), "metge")
	other, ok := k.(timesheet.OtherLeave)
	require.True(t, ok)
	assert.Equal(t, "metge", other.Comment)
	assertHours(t, 1.5, other.ExtraHours())

	assert.Equal(t, timesheet.Working{}, timesheet.KindFor("bogus", timesheet.RequestNone, hours(1), ""))
}

func TestIsEmptyFor(t *testing.T) {
	cfg := defaultConfig()
	assert.True(t, timesheet.NewDayRecord(date(monday), cfg).IsEmptyFor(cfg))
	assert.True(t, timesheet.DayRecord{Date: date(monday)}.IsEmptyFor(cfg), "nil kind reads as laboral")

	withNotes := timesheet.NewDayRecord(date(monday), cfg)
	withNotes.Notes = "reunió"
	assert.False(t, withNotes.IsEmptyFor(cfg))
	assert.False(t, worked(t, monday, "07:30", "15:00").IsEmptyFor(cfg))
	assert.False(t, withKind(monday, timesheet.Holiday{}).IsEmptyFor(cfg))
}

func TestIsEmptyFor_DayTypeOverride(t *testing.T) {
	cfg := defaultConfig()

	// Monday is presencial in the weekly pattern
	override := timesheet.NewDayRecord(date(monday), cfg)
	override.DayType = timesheet.DayTeletreball
	assert.False(t, override.IsEmptyFor(cfg))

	// Thursday is already teletreball
	thursday := timesheet.NewDayRecord(date("2026-03-05"), cfg)
	assert.Equal(t, timesheet.DayTeletreball, thursday.DayType)
	assert.True(t, thursday.IsEmptyFor(cfg))
}

func TestDraftDayRecord_PrefillsWeekdays(t *testing.T) {
	cfg := defaultConfig()

	draft := timesheet.DraftDayRecord(date(thursday), cfg)
	require.NotNil(t, draft.Shift1.Start)
	assert.Equal(t, "07:30", draft.Shift1.Start.String())
	assert.Equal(t, "15:00", draft.Shift1.End.String())
	assert.Equal(t, timesheet.DayTeletreball, draft.DayType)

	assert.True(t, timesheet.DraftDayRecord(date(saturday), cfg).Shift1.IsZero())
	assert.True(t, timesheet.DraftDayRecord(date("2026-12-25"), cfg).Shift1.IsZero())
}
