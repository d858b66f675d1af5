package timesheet

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp/work-ledger/generic"
)

// =============================================================================
// CLOCK - HH:MM wall-clock time
// =============================================================================

type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses "HH:MM" (00:00 - 23:59).
func ParseClock(s string) (Clock, error) {
	var c Clock
	if len(s) != 5 || s[2] != ':' {
		return Clock{}, fmt.Errorf("%w: %q", generic.ErrInvalidClock, s)
	}
	if _, err := fmt.Sscanf(s, "%02d:%02d", &c.Hour, &c.Minute); err != nil {
		return Clock{}, fmt.Errorf("%w: %q", generic.ErrInvalidClock, s)
	}
	if c.Hour < 0 || c.Hour > 23 || c.Minute < 0 || c.Minute > 59 {
		return Clock{}, fmt.Errorf("%w: %q", generic.ErrInvalidClock, s)
	}
	return c, nil
}

// MustParseClock is ParseClock for literals. Panics on malformed input.
func MustParseClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ClockPtr parses s and returns a pointer, or nil when s is empty.
func ClockPtr(s string) (*Clock, error) {
	if s == "" {
		return nil, nil
	}
	c, err := ParseClock(s)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (c Clock) Minutes() int { return c.Hour*60 + c.Minute }

func (c Clock) String() string { return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute) }

// =============================================================================
// SHIFT - one start/end pair
// =============================================================================

// Shift is one work interval. Either endpoint may be missing, in which case
// the shift contributes nothing.
type Shift struct {
	Start *Clock
	End   *Clock
}

// NewShift builds a shift from "HH:MM" strings; empty strings mean missing.
func NewShift(start, end string) (Shift, error) {
	s, err := ClockPtr(start)
	if err != nil {
		return Shift{}, err
	}
	e, err := ClockPtr(end)
	if err != nil {
		return Shift{}, err
	}
	return Shift{Start: s, End: e}, nil
}

func (s Shift) IsZero() bool { return s.Start == nil && s.End == nil }

// Hours returns max(0, end-start) in hours, or 0 if an endpoint is missing.
func (s Shift) Hours() decimal.Decimal {
	return ShiftHours(s.Start, s.End)
}

// ShiftHours returns max(0, end-start) in hours, or 0 if an endpoint is missing.
func ShiftHours(start, end *Clock) decimal.Decimal {
	if start == nil || end == nil {
		return decimal.Zero
	}
	minutes := end.Minutes() - start.Minutes()
	if minutes <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60))
}

// =============================================================================
// DAY KIND - tagged variant replacing status + optional hour fields
// =============================================================================

// DayKind classifies what a day was used for. The set of implementations is
// closed: Working, Holiday, Vacation, PersonalLeave, FlexLeave, OtherLeave.
type DayKind interface {
	Status() DayStatus
	Request() RequestStatus
	// ExtraHours is the absence time credited on top of worked shifts.
	ExtraHours() decimal.Decimal
	isDayKind()
}

type Working struct{}

type Holiday struct{}

type Vacation struct {
	Approval RequestStatus
}

// PersonalLeave is an "assumpte propi" (AP) absence of Hours.
type PersonalLeave struct {
	Hours    decimal.Decimal
	Approval RequestStatus
}

// FlexLeave spends Hours of accumulated flexible-time credit (FX).
type FlexLeave struct {
	Hours    decimal.Decimal
	Approval RequestStatus
}

type OtherLeave struct {
	Hours    decimal.Decimal
	Comment  string
	Approval RequestStatus
}

func (Working) Status() DayStatus       { return StatusLaboral }
func (Holiday) Status() DayStatus       { return StatusFestiu }
func (Vacation) Status() DayStatus      { return StatusVacances }
func (PersonalLeave) Status() DayStatus { return StatusAssumptePropi }
func (FlexLeave) Status() DayStatus     { return StatusFlexibilitat }
func (OtherLeave) Status() DayStatus    { return StatusAltres }

func (Working) Request() RequestStatus         { return RequestNone }
func (Holiday) Request() RequestStatus         { return RequestNone }
func (k Vacation) Request() RequestStatus      { return k.Approval }
func (k PersonalLeave) Request() RequestStatus { return k.Approval }
func (k FlexLeave) Request() RequestStatus     { return k.Approval }
func (k OtherLeave) Request() RequestStatus    { return k.Approval }

func (Working) ExtraHours() decimal.Decimal         { return decimal.Zero }
func (Holiday) ExtraHours() decimal.Decimal         { return decimal.Zero }
func (Vacation) ExtraHours() decimal.Decimal        { return decimal.Zero }
func (k PersonalLeave) ExtraHours() decimal.Decimal { return generic.NonNegative(k.Hours) }
func (k FlexLeave) ExtraHours() decimal.Decimal     { return generic.NonNegative(k.Hours) }
func (k OtherLeave) ExtraHours() decimal.Decimal    { return generic.NonNegative(k.Hours) }

func (Working) isDayKind()       {}
func (Holiday) isDayKind()       {}
func (Vacation) isDayKind()      {}
func (PersonalLeave) isDayKind() {}
func (FlexLeave) isDayKind()     {}
func (OtherLeave) isDayKind()    {}

// KindFor builds the variant for a wire-level status. hours is used only by
// the kinds that carry hours, comment only by OtherLeave; everything that does
// not belong to the status is dropped.
func KindFor(status DayStatus, request RequestStatus, hours decimal.Decimal, comment string) DayKind {
	switch status {
	case StatusFestiu:
		return Holiday{}
	case StatusVacances:
		return Vacation{Approval: request}
	case StatusAssumptePropi:
		return PersonalLeave{Hours: hours, Approval: request}
	case StatusFlexibilitat:
		return FlexLeave{Hours: hours, Approval: request}
	case StatusAltres:
		return OtherLeave{Hours: hours, Comment: comment, Approval: request}
	default:
		return Working{}
	}
}

// =============================================================================
// DAY RECORD
// =============================================================================

// DayRecord is everything recorded for one calendar date.
type DayRecord struct {
	Date    generic.TimePoint
	Shift1  Shift
	Shift2  Shift
	DayType DayType
	Kind    DayKind
	Notes   string
}

// Days maps a canonical date key to its record.
type Days map[string]DayRecord

// Clone returns a shallow copy of the map.
func (d Days) Clone() Days {
	out := make(Days, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// NewDayRecord returns the empty laboral record for the date, with the day
// type resolved from the weekly pattern.
func NewDayRecord(date generic.TimePoint, cfg UserConfig) DayRecord {
	return DayRecord{
		Date:    date,
		DayType: DayTypeForDate(date, cfg),
		Kind:    Working{},
	}
}

// DraftDayRecord is the record offered when a date is opened for the first
// time: the default shift prefilled on weekdays.
func DraftDayRecord(date generic.TimePoint, cfg UserConfig) DayRecord {
	rec := NewDayRecord(date, cfg)
	if date.IsWorkday() && !IsHoliday(date, cfg.Holidays) {
		start, end := cfg.DefaultStartTime, cfg.DefaultEndTime
		rec.Shift1 = Shift{Start: &start, End: &end}
	}
	return rec
}

func (r DayRecord) Key() string { return r.Date.String() }

func (r DayRecord) kind() DayKind {
	if r.Kind == nil {
		return Working{}
	}
	return r.Kind
}

func (r DayRecord) Status() DayStatus      { return r.kind().Status() }
func (r DayRecord) Request() RequestStatus { return r.kind().Request() }

// Normalize fills a missing kind and removes shifts from vacation days.
func (r DayRecord) Normalize() DayRecord {
	r.Kind = r.kind()
	if _, ok := r.Kind.(Vacation); ok {
		r.Shift1, r.Shift2 = Shift{}, Shift{}
	}
	return r
}

// IsEmptyFor reports whether the record carries nothing beyond the default
// laboral day of cfg. A day type that differs from the weekly pattern is
// kept. Empty records are not persisted.
func (r DayRecord) IsEmptyFor(cfg UserConfig) bool {
	if _, working := r.kind().(Working); !working {
		return false
	}
	if !r.Shift1.IsZero() || !r.Shift2.IsZero() || r.Notes != "" {
		return false
	}
	return !r.DayType.IsValid() || r.DayType == DayTypeForDate(r.Date, cfg)
}

// WorkedHours sums both shifts.
func (r DayRecord) WorkedHours() decimal.Decimal {
	return r.Shift1.Hours().Add(r.Shift2.Hours())
}

// EffectiveHours is worked plus absence hours, capped at MaxDailyWorkHours.
// Vacation days return 0: the weekly summary excludes them instead.
func (r DayRecord) EffectiveHours() decimal.Decimal {
	if r.Status() == StatusVacances {
		return decimal.Zero
	}
	total := r.WorkedHours().Add(r.kind().ExtraHours())
	return generic.Clamp(total, decimal.Zero, MaxDailyWorkHours)
}

// IsApprovedVacation is the only state that consumes a vacation day.
func (r DayRecord) IsApprovedVacation() bool {
	v, ok := r.kind().(Vacation)
	return ok && v.Approval == RequestApproved
}

// PersonalLeaveHours is the AP contribution of the record.
func (r DayRecord) PersonalLeaveHours() decimal.Decimal {
	if k, ok := r.kind().(PersonalLeave); ok {
		return k.ExtraHours()
	}
	return decimal.Zero
}

// FlexLeaveHours is the FX contribution of the record.
func (r DayRecord) FlexLeaveHours() decimal.Decimal {
	if k, ok := r.kind().(FlexLeave); ok {
		return k.ExtraHours()
	}
	return decimal.Zero
}

// personalLeaveOf and flexLeaveOf treat a nil record as contributing nothing.
func personalLeaveOf(r *DayRecord) decimal.Decimal {
	if r == nil {
		return decimal.Zero
	}
	return r.PersonalLeaveHours()
}

func flexLeaveOf(r *DayRecord) decimal.Decimal {
	if r == nil {
		return decimal.Zero
	}
	return r.FlexLeaveHours()
}

func approvedVacation(r *DayRecord) bool {
	return r != nil && r.IsApprovedVacation()
}
