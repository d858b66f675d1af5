/*
calendar.go - Calendar math

PURPOSE:
  Classifies dates (weekend, holiday, weekday key), resolves which schedule
  profile applies on a date and turns that into theoretical hours.

TOTALITY:
  TheoreticalHoursForDate never fails. A weekday not covered by any schedule
  period gets winter hours, so an incomplete period table degrades the result
  instead of breaking every calculation built on it. CoverageGaps (config.go)
  reports how many days are affected.

SEE ALSO:
  - config.go: SchedulePeriod and the weekly presence pattern
  - summary.go: Weekly aggregation built on these functions
*/
package timesheet

import (
	"slices"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/work-ledger/generic"
)

// IsWeekend reports whether the date falls on Saturday or Sunday.
func IsWeekend(date generic.TimePoint) bool {
	return date.IsWeekend()
}

// IsHoliday tests the canonical date key against the holiday list.
func IsHoliday(date generic.TimePoint, holidays []string) bool {
	return slices.Contains(holidays, date.String())
}

// WeekdayKeyFor returns the weekly-pattern key of the date; false on weekends.
func WeekdayKeyFor(date generic.TimePoint) (WeekdayKey, bool) {
	k, ok := weekdayKeys[date.Weekday()]
	return k, ok
}

// ScheduleTypeForDate returns the type of the first period, by ascending start
// date, whose inclusive range contains the date.
func ScheduleTypeForDate(date generic.TimePoint, periods []SchedulePeriod) (ScheduleType, bool) {
	for _, p := range SortedPeriods(periods) {
		if p.Period().Contains(date) {
			return p.Type, true
		}
	}
	return "", false
}

// TheoreticalHoursForDate is 0 on weekends and the schedule profile's hours
// otherwise, defaulting to winter hours where no period covers the date.
func TheoreticalHoursForDate(date generic.TimePoint, cfg UserConfig) decimal.Decimal {
	if _, ok := WeekdayKeyFor(date); !ok {
		return decimal.Zero
	}
	st, ok := ScheduleTypeForDate(date, cfg.SchedulePeriods)
	if !ok {
		return ScheduleHivern.Hours()
	}
	return st.Hours()
}

// DayTypeForDate reads the weekly pattern. Weekends, and weekdays missing from
// the pattern, are presencial.
func DayTypeForDate(date generic.TimePoint, cfg UserConfig) DayType {
	key, ok := WeekdayKeyFor(date)
	if !ok {
		return DayPresencial
	}
	if t, ok := cfg.WeeklyConfig[key]; ok && t.IsValid() {
		return t
	}
	return DayPresencial
}

// SortedPeriods returns a copy of the periods ordered by start date.
func SortedPeriods(periods []SchedulePeriod) []SchedulePeriod {
	out := slices.Clone(periods)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out
}

// =============================================================================
// DEFAULT HOLIDAYS
// =============================================================================

// fixedHolidays are the Barcelona public holidays that fall on the same
// month/day every year.
var fixedHolidays = []struct {
	Month time.Month
	Day   int
}{
	{time.January, 1},    // Cap d'Any
	{time.January, 6},    // Reis
	{time.May, 1},        // Festa del Treball
	{time.June, 24},      // Sant Joan
	{time.August, 15},    // L'Assumpció
	{time.September, 11}, // Diada de Catalunya
	{time.September, 24}, // La Mercè
	{time.October, 12},   // Festa Nacional d'Espanya
	{time.November, 1},   // Tots Sants
	{time.December, 8},   // La Immaculada
	{time.December, 25},  // Nadal
	{time.December, 26},  // Sant Esteve
}

// DefaultHolidays returns the Barcelona public holidays of the year, Good
// Friday and Easter Monday included, sorted.
func DefaultHolidays(year int) []string {
	set := generic.DateSet{}
	for _, h := range fixedHolidays {
		set[generic.NewTimePoint(year, h.Month, h.Day).String()] = struct{}{}
	}
	easter := generic.EasterSunday(year)
	set[easter.AddDays(-2).String()] = struct{}{}
	set[easter.AddDays(1).String()] = struct{}{}
	return set.Sorted()
}
