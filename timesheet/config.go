/*
config.go - Schedule and entitlement configuration

PURPOSE:
  UserConfig is the single per-user settings value: the weekly presence
  pattern, the schedule periods that decide theoretical hours, the holiday
  list and the three entitlement pools the reconciliation engine adjusts.

POOLS:
  Vacation:  TotalVacationDays / UsedVacationDays      (whole days)
  AP:        TotalAPHours / UsedAPHours                (decimal hours)
  Flex:      FlexibilityHours / UsedFlexHours          (decimal hours)
             0 <= UsedFlexHours <= FlexibilityHours <= MaxFlexibilityHours

VALUE SEMANTICS:
  UserConfig is passed and returned by value. Clone deep-copies the slices
  and the weekly map so a reconciled config never aliases its input.

SEE ALSO:
  - calendar.go: Consumers of SchedulePeriods and WeeklyConfig
  - reconcile.go: The only code that moves the pools on day edits
*/
package timesheet

import (
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warp/work-ledger/generic"
)

// =============================================================================
// SCHEDULE PERIOD
// =============================================================================

// SchedulePeriod assigns a winter/summer profile to an inclusive date range.
type SchedulePeriod struct {
	ID    string
	Start generic.TimePoint
	End   generic.TimePoint
	Type  ScheduleType
}

func (p SchedulePeriod) Period() generic.Period {
	return generic.Period{Start: p.Start, End: p.End}
}

// =============================================================================
// USER CONFIG
// =============================================================================

type UserConfig struct {
	CalendarYear     int
	FirstName        string
	DefaultStartTime Clock
	DefaultEndTime   Clock

	WeeklyConfig    map[WeekdayKey]DayType
	SchedulePeriods []SchedulePeriod
	Holidays        []string

	TotalVacationDays int
	UsedVacationDays  int

	TotalAPHours decimal.Decimal
	UsedAPHours  decimal.Decimal

	FlexibilityHours decimal.Decimal
	UsedFlexHours    decimal.Decimal
}

// DefaultConfig returns the first-run configuration anchored on year.
func DefaultConfig(year int) UserConfig {
	if year <= 0 {
		year = DefaultCalendarYear
	}
	return UserConfig{
		CalendarYear:     year,
		DefaultStartTime: Clock{Hour: 7, Minute: 30},
		DefaultEndTime:   Clock{Hour: 15, Minute: 0},
		WeeklyConfig: map[WeekdayKey]DayType{
			Monday:    DayPresencial,
			Tuesday:   DayPresencial,
			Wednesday: DayPresencial,
			Thursday:  DayTeletreball,
			Friday:    DayTeletreball,
		},
		SchedulePeriods:   DefaultSchedulePeriods(year),
		Holidays:          DefaultHolidays(year),
		TotalVacationDays: 25,
		TotalAPHours:      decimal.NewFromInt(90),
		UsedAPHours:       decimal.Zero,
		FlexibilityHours:  decimal.Zero,
		UsedFlexHours:     decimal.Zero,
	}
}

// DefaultSchedulePeriods covers the whole year: summer hours over the
// Christmas/New Year and Easter weeks and from June to September.
func DefaultSchedulePeriods(year int) []SchedulePeriod {
	d := func(m time.Month, day int) generic.TimePoint { return generic.NewTimePoint(year, m, day) }
	return []SchedulePeriod{
		{ID: "default-1", Start: d(time.January, 1), End: d(time.January, 10), Type: ScheduleEstiu},
		{ID: "default-2", Start: d(time.January, 11), End: d(time.March, 29), Type: ScheduleHivern},
		{ID: "default-3", Start: d(time.March, 30), End: d(time.April, 6), Type: ScheduleEstiu},
		{ID: "default-4", Start: d(time.April, 7), End: d(time.May, 31), Type: ScheduleHivern},
		{ID: "default-5", Start: d(time.June, 1), End: d(time.September, 30), Type: ScheduleEstiu},
		{ID: "default-6", Start: d(time.October, 1), End: d(time.December, 14), Type: ScheduleHivern},
		{ID: "default-7", Start: d(time.December, 15), End: d(time.December, 31), Type: ScheduleEstiu},
	}
}

// Clone deep-copies the reference-typed fields.
func (c UserConfig) Clone() UserConfig {
	c.WeeklyConfig = maps.Clone(c.WeeklyConfig)
	c.SchedulePeriods = slices.Clone(c.SchedulePeriods)
	c.Holidays = slices.Clone(c.Holidays)
	return c
}

// Equal compares every field, decimals by value.
func (c UserConfig) Equal(o UserConfig) bool {
	return c.CalendarYear == o.CalendarYear &&
		c.FirstName == o.FirstName &&
		c.DefaultStartTime == o.DefaultStartTime &&
		c.DefaultEndTime == o.DefaultEndTime &&
		maps.Equal(c.WeeklyConfig, o.WeeklyConfig) &&
		slices.EqualFunc(c.SchedulePeriods, o.SchedulePeriods, func(a, b SchedulePeriod) bool {
			return a.ID == b.ID && a.Type == b.Type && a.Start.Equal(b.Start) && a.End.Equal(b.End)
		}) &&
		slices.Equal(c.Holidays, o.Holidays) &&
		c.TotalVacationDays == o.TotalVacationDays &&
		c.UsedVacationDays == o.UsedVacationDays &&
		c.TotalAPHours.Equal(o.TotalAPHours) &&
		c.UsedAPHours.Equal(o.UsedAPHours) &&
		c.FlexibilityHours.Equal(o.FlexibilityHours) &&
		c.UsedFlexHours.Equal(o.UsedFlexHours)
}

// Sanitize restores the pool invariants and fills anything a partial or
// legacy document left empty. It never fails.
func (c UserConfig) Sanitize() UserConfig {
	c = c.Clone()
	def := DefaultConfig(c.CalendarYear)
	if c.CalendarYear <= 0 {
		c.CalendarYear = def.CalendarYear
	}
	if c.WeeklyConfig == nil {
		c.WeeklyConfig = def.WeeklyConfig
	}
	for _, k := range Weekdays {
		if t, ok := c.WeeklyConfig[k]; !ok || !t.IsValid() {
			c.WeeklyConfig[k] = def.WeeklyConfig[k]
		}
	}
	if len(c.SchedulePeriods) == 0 {
		c.SchedulePeriods = def.SchedulePeriods
	}
	if c.Holidays == nil {
		c.Holidays = def.Holidays
	}
	c.Holidays = generic.NewDateSet(c.Holidays).Sorted()

	if c.TotalVacationDays < 0 {
		c.TotalVacationDays = 0
	}
	c.UsedVacationDays = generic.ClampInt(c.UsedVacationDays, 0, c.TotalVacationDays)

	c.TotalAPHours = generic.NonNegative(c.TotalAPHours)
	c.UsedAPHours = generic.Clamp(c.UsedAPHours, decimal.Zero, c.TotalAPHours)

	c.FlexibilityHours = generic.Clamp(c.FlexibilityHours, decimal.Zero, MaxFlexibilityHours)
	c.UsedFlexHours = generic.Clamp(c.UsedFlexHours, decimal.Zero, c.FlexibilityHours)
	return c
}

// HolidayCalendar exposes the holiday list as a lookup set.
func (c UserConfig) HolidayCalendar() generic.HolidayCalendar {
	return generic.NewDateSet(c.Holidays)
}

// ToggleHoliday adds the date to the holiday list, or removes it if present.
func (c UserConfig) ToggleHoliday(date generic.TimePoint) UserConfig {
	c = c.Clone()
	key := date.String()
	if i := slices.Index(c.Holidays, key); i >= 0 {
		c.Holidays = slices.Delete(c.Holidays, i, i+1)
		return c
	}
	c.Holidays = generic.NewDateSet(append(c.Holidays, key)).Sorted()
	return c
}

// SetFlexibility overrides the accumulated flex credit, clamped to
// [0, MaxFlexibilityHours]. Consumption is re-clamped under the new credit.
func (c UserConfig) SetFlexibility(hours decimal.Decimal) UserConfig {
	c = c.Clone()
	c.FlexibilityHours = generic.Clamp(hours, decimal.Zero, MaxFlexibilityHours)
	if c.UsedFlexHours.GreaterThan(c.FlexibilityHours) {
		c.UsedFlexHours = c.FlexibilityHours
	}
	return c
}

// AddSchedulePeriod appends a period with a fresh ID.
func (c UserConfig) AddSchedulePeriod(start, end generic.TimePoint, st ScheduleType) (UserConfig, SchedulePeriod, error) {
	if _, err := generic.NewPeriod(start, end); err != nil {
		return c, SchedulePeriod{}, err
	}
	p := SchedulePeriod{ID: uuid.NewString(), Start: start, End: end, Type: st}
	c = c.Clone()
	c.SchedulePeriods = append(c.SchedulePeriods, p)
	return c, p, nil
}

// RemoveSchedulePeriod drops the period with the given ID.
func (c UserConfig) RemoveSchedulePeriod(id string) (UserConfig, bool) {
	c = c.Clone()
	n := len(c.SchedulePeriods)
	c.SchedulePeriods = slices.DeleteFunc(c.SchedulePeriods, func(p SchedulePeriod) bool { return p.ID == id })
	return c, len(c.SchedulePeriods) != n
}

// =============================================================================
// PERIOD VALIDATION - advisory only
// =============================================================================

// CoverageGaps counts the days of [Jan 1, Dec 31] of year that no period
// contains. Theoretical hours stay defined on those days (winter fallback).
func CoverageGaps(periods []SchedulePeriod, year int) int {
	missing := 0
	for _, day := range generic.YearPeriod(year).Days() {
		if _, ok := ScheduleTypeForDate(day, periods); !ok {
			missing++
		}
	}
	return missing
}

// PeriodIssue describes a malformed or overlapping schedule period.
type PeriodIssue struct {
	PeriodID string
	OtherID  string // set for overlaps
	Problem  string
}

const (
	ProblemInverted    = "end_before_start"
	ProblemOverlap     = "overlap"
	ProblemUnknownType = "unknown_schedule_type"
)

// ValidatePeriods lists inverted ranges, unknown profiles and overlaps.
func ValidatePeriods(periods []SchedulePeriod) []PeriodIssue {
	var issues []PeriodIssue
	sorted := SortedPeriods(periods)
	for i, p := range sorted {
		if p.End.Before(p.Start) {
			issues = append(issues, PeriodIssue{PeriodID: p.ID, Problem: ProblemInverted})
			continue
		}
		if !p.Type.IsValid() {
			issues = append(issues, PeriodIssue{PeriodID: p.ID, Problem: ProblemUnknownType})
		}
		for _, q := range sorted[i+1:] {
			if q.End.Before(q.Start) {
				continue
			}
			if p.Period().Overlaps(q.Period()) {
				issues = append(issues, PeriodIssue{PeriodID: p.ID, OtherID: q.ID, Problem: ProblemOverlap})
			}
		}
	}
	return issues
}
