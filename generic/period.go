package generic

import "fmt"

// =============================================================================
// PERIOD - Inclusive calendar range
// =============================================================================

// Period is an inclusive [Start, End] range of calendar days.
//
// Examples:
//   - Calendar year 2026: Jan 1 - Dec 31
//   - Summer schedule: Jun 1 - Sep 30
//   - ISO week: Monday - Sunday
type Period struct {
	Start TimePoint
	End   TimePoint
}

// NewPeriod builds a period and rejects ranges that end before they start.
func NewPeriod(start, end TimePoint) (Period, error) {
	if end.Before(start) {
		return Period{}, fmt.Errorf("%w: %s > %s", ErrInvalidPeriod, start, end)
	}
	return Period{Start: start, End: end}, nil
}

// Contains returns true if the time point is within the period [Start, End]
func (p Period) Contains(t TimePoint) bool {
	return t.AfterOrEqual(p.Start) && t.BeforeOrEqual(p.End)
}

// Overlaps returns true if the two periods share at least one day.
func (p Period) Overlaps(o Period) bool {
	return p.Start.BeforeOrEqual(o.End) && o.Start.BeforeOrEqual(p.End)
}

// Days returns all days in the period as a slice of TimePoints.
func (p Period) Days() []TimePoint {
	var days []TimePoint
	current := p.Start
	for current.BeforeOrEqual(p.End) {
		days = append(days, current)
		current = current.AddDays(1)
	}
	return days
}

// Len returns the number of days in the period (0 for inverted ranges).
func (p Period) Len() int {
	if p.End.Before(p.Start) {
		return 0
	}
	return DaysBetween(p.Start, p.End) + 1
}

// String returns a string representation of the period.
func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}

// YearPeriod returns Jan 1 - Dec 31 of the year.
func YearPeriod(year int) Period {
	return Period{Start: StartOfYear(year), End: EndOfYear(year)}
}

// WeekOf returns the Monday-Sunday week containing the date.
func WeekOf(date TimePoint) Period {
	start := date.StartOfWeek()
	return Period{Start: start, End: start.AddDays(6)}
}
