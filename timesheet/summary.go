package timesheet

import (
	"github.com/shopspring/decimal"
	"github.com/warp/work-ledger/generic"
)

// =============================================================================
// WEEKLY SUMMARY
// =============================================================================

// WeeklySummary compares demanded and credited hours over one Monday-Sunday
// week.
type WeeklySummary struct {
	WeekNumber       int
	StartDate        generic.TimePoint
	EndDate          generic.TimePoint
	TheoreticalHours decimal.Decimal
	WorkedHours      decimal.Decimal
	Difference       decimal.Decimal // worked - theoretical, signed
	// FlexibilityGained is the display value of the flex the week earns. The
	// engine computes its own accrual; see Reconcile.
	FlexibilityGained decimal.Decimal
}

// WeeklySummaryFor aggregates the week starting at weekStart (aligned back to
// Monday if needed). Weekends, holidays and vacation days count on neither
// side.
func WeeklySummaryFor(weekStart generic.TimePoint, days Days, cfg UserConfig) WeeklySummary {
	week := generic.WeekOf(weekStart)
	holidays := cfg.HolidayCalendar()

	theoretical := decimal.Zero
	worked := decimal.Zero
	for _, day := range week.Days() {
		if !day.IsWorkdayWithHolidays(holidays) {
			continue
		}
		rec, ok := days[day.String()]
		if ok && rec.Status() == StatusVacances {
			continue
		}
		theoretical = theoretical.Add(TheoreticalHoursForDate(day, cfg))
		if ok {
			worked = worked.Add(rec.EffectiveHours())
		}
	}

	diff := worked.Sub(theoretical)
	gained := decimal.Zero
	if diff.GreaterThanOrEqual(MinWeeklySurplusForFlexibility) {
		headroom := generic.NonNegative(MaxFlexibilityHours.Sub(cfg.FlexibilityHours))
		gained = decimal.Min(diff, headroom)
	}

	return WeeklySummary{
		WeekNumber:        week.Start.ISOWeek(),
		StartDate:         week.Start,
		EndDate:           week.End,
		TheoreticalHours:  theoretical,
		WorkedHours:       worked,
		Difference:        diff,
		FlexibilityGained: gained,
	}
}

// eligibleSurplus is the part of a week's difference that becomes flex credit
// before any cap: the whole difference once it reaches the threshold.
func eligibleSurplus(s WeeklySummary) decimal.Decimal {
	if s.Difference.GreaterThanOrEqual(MinWeeklySurplusForFlexibility) {
		return s.Difference
	}
	return decimal.Zero
}

// YearSummaries returns the summary of every week that touches the calendar
// year, in order.
func YearSummaries(days Days, cfg UserConfig) []WeeklySummary {
	year := generic.YearPeriod(cfg.CalendarYear)
	var out []WeeklySummary
	for start := year.Start.StartOfWeek(); start.BeforeOrEqual(year.End); start = start.AddDays(7) {
		out = append(out, WeeklySummaryFor(start, days, cfg))
	}
	return out
}
