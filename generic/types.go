/*
Package generic provides the domain-agnostic building blocks of the ledger.

PURPOSE:
  This package contains the quantity, calendar and error types that the
  work-hours ledger is built on. Nothing here knows about vacation days,
  personal-matter leave or flexible time; the timesheet package gives those
  meaning.

KEY CONCEPTS IN THIS FILE (types.go):
  - Amount: A quantity with a unit (e.g., 5 days, 7.5 hours)
  - Clamp:  Saturating arithmetic used by every balance pool

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal to avoid floating-point drift when the
     same hours are added and removed many times
  2. Saturation: Pool arithmetic clamps instead of failing
  3. Type Safety: Units travel with the value

USAGE:
  used := generic.NewAmountFromDecimal(generic.Hours(3), generic.UnitHours)
  left := generic.NewAmountFromInt(90, generic.UnitHours).Sub(used).NonNegative()

SEE ALSO:
  - time.go: TimePoint, holidays and week math
  - period.go: Inclusive date ranges
  - errors.go: Sentinel and structured errors
*/
package generic

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// AMOUNT - Quantity with unit
// =============================================================================

type Amount struct {
	Value decimal.Decimal
	Unit  Unit
}

type Unit string

const (
	UnitDays  Unit = "days"
	UnitHours Unit = "hours"
)

func NewAmountFromInt(value int, unit Unit) Amount {
	return Amount{Value: decimal.NewFromInt(int64(value)), Unit: unit}
}

func NewAmountFromDecimal(value decimal.Decimal, unit Unit) Amount {
	return Amount{Value: value, Unit: unit}
}

func (a Amount) Zero() Amount        { return Amount{Value: decimal.Zero, Unit: a.Unit} }
func (a Amount) Sub(b Amount) Amount { return Amount{Value: a.Value.Sub(b.Value), Unit: a.Unit} }
func (a Amount) IsNegative() bool    { return a.Value.IsNegative() }
func (a Amount) IsZero() bool        { return a.Value.IsZero() }
func (a Amount) Float64() float64    { return a.Value.InexactFloat64() }

// NonNegative returns the amount, or zero if it is negative.
func (a Amount) NonNegative() Amount {
	if a.IsNegative() {
		return a.Zero()
	}
	return a
}

// =============================================================================
// SATURATING ARITHMETIC
// =============================================================================

// Hours converts a float literal to a decimal hour value.
func Hours(h float64) decimal.Decimal {
	return decimal.NewFromFloat(h)
}

// Clamp bounds d into [lo, hi]. If hi < lo, lo wins.
func Clamp(d, lo, hi decimal.Decimal) decimal.Decimal {
	if d.GreaterThan(hi) {
		d = hi
	}
	if d.LessThan(lo) {
		d = lo
	}
	return d
}

// ClampInt bounds n into [lo, hi]. If hi < lo, lo wins.
func ClampInt(n, lo, hi int) int {
	if n > hi {
		n = hi
	}
	if n < lo {
		n = lo
	}
	return n
}

// NonNegative returns d, or zero if d is negative.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
