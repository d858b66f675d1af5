package timesheet

import (
	"github.com/shopspring/decimal"
	"github.com/warp/work-ledger/generic"
)

// =============================================================================
// EDIT GUARDRAILS
// =============================================================================
//
// These checks belong in front of the engine (the host's form handling), not
// inside it: Reconcile accepts any record and saturates. CheckEdit is what a
// host calls before submitting an edit so that a request for more than is
// left is refused with a reason instead of being silently clamped.

// AvailableAPHours is what an AP request on the date may use: the unused
// pool plus the AP the previous record already holds.
func AvailableAPHours(cfg UserConfig, prev *DayRecord) decimal.Decimal {
	return generic.NonNegative(cfg.TotalAPHours.Sub(cfg.UsedAPHours).Add(personalLeaveOf(prev)))
}

// AvailableFlexHours is the unused flex credit plus what the previous record
// already spends, capped at MaxFlexibilityHours and at the date's theoretical
// hours.
func AvailableFlexHours(cfg UserConfig, prev *DayRecord, date generic.TimePoint) decimal.Decimal {
	credit := generic.NonNegative(cfg.FlexibilityHours.Sub(cfg.UsedFlexHours).Add(flexLeaveOf(prev)))
	credit = decimal.Min(credit, MaxFlexibilityHours)
	return decimal.Min(credit, TheoreticalHoursForDate(date, cfg))
}

// RequestedVacationDays counts vacation records of any approval state.
func RequestedVacationDays(days Days) int {
	n := 0
	for _, rec := range days {
		if rec.Status() == StatusVacances {
			n++
		}
	}
	return n
}

// CheckEdit validates next against the pools. Vacation and AP requests that
// exceed what is left are refused with a *generic.QuotaError; FX hours are
// capped to what is available and the adjusted record is returned.
func CheckEdit(cfg UserConfig, days Days, prev *DayRecord, next DayRecord) (DayRecord, error) {
	next = next.Normalize()

	switch k := next.Kind.(type) {
	case Vacation:
		if prev != nil && prev.Status() == StatusVacances {
			return next, nil
		}
		requested := RequestedVacationDays(days)
		if _, ok := days[next.Key()]; ok && days[next.Key()].Status() == StatusVacances {
			requested--
		}
		if requested >= cfg.TotalVacationDays {
			return next, &generic.QuotaError{
				Pool:      "vacation",
				Available: generic.NewAmountFromInt(max(0, cfg.TotalVacationDays-requested), generic.UnitDays),
				Requested: generic.NewAmountFromInt(1, generic.UnitDays),
			}
		}

	case PersonalLeave:
		available := AvailableAPHours(cfg, prev)
		if k.ExtraHours().GreaterThan(available) {
			return next, &generic.QuotaError{
				Pool:      "ap",
				Available: generic.NewAmountFromDecimal(available, generic.UnitHours),
				Requested: generic.NewAmountFromDecimal(k.ExtraHours(), generic.UnitHours),
			}
		}

	case FlexLeave:
		available := AvailableFlexHours(cfg, prev, next.Date)
		if k.ExtraHours().GreaterThan(available) {
			k.Hours = available
			next.Kind = k
		}
	}
	return next, nil
}
