// Package timesheet implements the work-hours ledger: calendar math, day
// records, the schedule/entitlement configuration, weekly summaries and the
// balance reconciliation engine that keeps the vacation, AP and flex pools in
// step with every day edit.
package timesheet

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// LIMITS
// =============================================================================

var (
	// MaxFlexibilityHours caps accumulated flexible-time credit.
	MaxFlexibilityHours = decimal.NewFromInt(25)

	// MinWeeklySurplusForFlexibility is the smallest weekly surplus (30 min)
	// that turns into flex credit.
	MinWeeklySurplusForFlexibility = decimal.NewFromFloat(0.5)

	// MaxDailyWorkHours caps worked plus absence hours on a single day.
	MaxDailyWorkHours = decimal.NewFromFloat(9.5)
)

// DefaultCalendarYear anchors the default schedule periods and holidays.
const DefaultCalendarYear = 2026

// =============================================================================
// DAY TYPE - presence vs remote
// =============================================================================

type DayType string

const (
	DayPresencial  DayType = "presencial"
	DayTeletreball DayType = "teletreball"
)

func (t DayType) IsValid() bool {
	return t == DayPresencial || t == DayTeletreball
}

// =============================================================================
// DAY STATUS - what the day was used for
// =============================================================================

type DayStatus string

const (
	StatusLaboral       DayStatus = "laboral"
	StatusFestiu        DayStatus = "festiu"
	StatusVacances      DayStatus = "vacances"
	StatusAssumptePropi DayStatus = "assumpte_propi"
	StatusFlexibilitat  DayStatus = "flexibilitat"
	StatusAltres        DayStatus = "altres"
)

func (s DayStatus) String() string { return string(s) }

func (s DayStatus) IsValid() bool {
	switch s {
	case StatusLaboral, StatusFestiu, StatusVacances, StatusAssumptePropi, StatusFlexibilitat, StatusAltres:
		return true
	}
	return false
}

// =============================================================================
// REQUEST STATUS - approval state of a declared absence
// =============================================================================

// RequestStatus is empty ("null") for days that are not requestable absences.
type RequestStatus string

const (
	RequestNone     RequestStatus = ""
	RequestPending  RequestStatus = "pendent"
	RequestApproved RequestStatus = "aprovat"
)

func (r RequestStatus) IsValid() bool {
	return r == RequestNone || r == RequestPending || r == RequestApproved
}

// =============================================================================
// SCHEDULE TYPE - winter/summer hour profile
// =============================================================================

type ScheduleType string

const (
	ScheduleHivern ScheduleType = "hivern"
	ScheduleEstiu  ScheduleType = "estiu"
)

func (s ScheduleType) IsValid() bool {
	return s == ScheduleHivern || s == ScheduleEstiu
}

// Hours returns the theoretical hours per weekday of the profile. Unknown
// profiles get winter hours.
func (s ScheduleType) Hours() decimal.Decimal {
	if s == ScheduleEstiu {
		return decimal.NewFromInt(7)
	}
	return decimal.NewFromFloat(7.5)
}

// =============================================================================
// WEEKDAY KEY - monday..friday
// =============================================================================

type WeekdayKey string

const (
	Monday    WeekdayKey = "monday"
	Tuesday   WeekdayKey = "tuesday"
	Wednesday WeekdayKey = "wednesday"
	Thursday  WeekdayKey = "thursday"
	Friday    WeekdayKey = "friday"
)

// Weekdays lists the keys of the weekly pattern in calendar order.
var Weekdays = []WeekdayKey{Monday, Tuesday, Wednesday, Thursday, Friday}

func (k WeekdayKey) IsValid() bool {
	switch k {
	case Monday, Tuesday, Wednesday, Thursday, Friday:
		return true
	}
	return false
}

var weekdayKeys = map[time.Weekday]WeekdayKey{
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
}
