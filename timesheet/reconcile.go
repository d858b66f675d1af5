/*
reconcile.go - Balance reconciliation engine

PURPOSE:
  Keeps the three entitlement pools consistent with the day records. Every
  edit of a day is handed to Reconcile together with the record it replaces;
  the engine removes whatever the old record contributed and adds whatever
  the new record contributes.

KEY INSIGHT:
  Pools only ever reflect the CURRENT record of each day. An edit is a
  reversal of the previous record followed by an application of the next
  one, so editing a day ten times leaves the same totals as editing it once.
  Nothing is accumulated per edit.

PASSES (independent, same (prev, next, cfg) triple):
  1. Vacation:  +1 day when next becomes approved vacation, -1 when prev was
                approved vacation and next is not. Clamped to [0, total].
  2. AP:        UsedAPHours += nextAP - prevAP, clamped to [0, TotalAPHours].
                Pending AP counts: hours are reserved while awaiting approval.
  3. Flex used: UsedFlexHours += nextFX - prevFX, clamped to
                [0, FlexibilityHours] (credit before this edit's accrual).
  4. Accrual:   The Monday-Sunday week holding the date is summarised with
                the old and the new record. The change in eligible surplus
                (difference when >= 0.5h, else 0) moves FlexibilityHours,
                clamped to [0, MaxFlexibilityHours]. Other weeks are untouched.
  5. Final:     UsedFlexHours <= FlexibilityHours.

FAILURE SEMANTICS:
  Saturating arithmetic only. Reconcile cannot fail and never panics.

EXAMPLE:
  prev: 2026-03-02 assumpte_propi 3h (pendent)   used AP = 3
  next: 2026-03-02 laboral 08:00-15:30
  => used AP = 0; the week gains the 7.5h worked on Monday.

SEE ALSO:
  - summary.go: WeeklySummaryFor used by pass 4
  - service.go: Loads prev/days, persists next and the new config
*/
package timesheet

import (
	"github.com/shopspring/decimal"
	"github.com/warp/work-ledger/generic"
)

// Reconcile returns the configuration after replacing prev with next.
//
// days is the stored day map before the edit. The edited date inside it is
// overridden by prev for the old view and by next for the new view, so the
// result is a function of the arguments alone. prev is nil when the date had
// no record.
func Reconcile(cfg UserConfig, days Days, prev *DayRecord, next DayRecord) UserConfig {
	out := cfg.Clone()

	// 1. Vacation pool
	wasVacation := approvedVacation(prev)
	isVacation := next.IsApprovedVacation()
	switch {
	case isVacation && !wasVacation:
		out.UsedVacationDays = generic.ClampInt(out.UsedVacationDays+1, 0, out.TotalVacationDays)
	case wasVacation && !isVacation:
		out.UsedVacationDays = generic.ClampInt(out.UsedVacationDays-1, 0, out.TotalVacationDays)
	}

	// 2. AP pool
	apDelta := next.PersonalLeaveHours().Sub(personalLeaveOf(prev))
	out.UsedAPHours = generic.Clamp(out.UsedAPHours.Add(apDelta), decimal.Zero, out.TotalAPHours)

	// 3. Flex consumption, against the credit as it stands before accrual
	fxDelta := next.FlexLeaveHours().Sub(flexLeaveOf(prev))
	out.UsedFlexHours = generic.Clamp(out.UsedFlexHours.Add(fxDelta), decimal.Zero, out.FlexibilityHours)

	// 4. Weekly flex accrual
	before, after := weekViews(days, prev, next)
	oldWeek := WeeklySummaryFor(next.Date, before, cfg)
	newWeek := WeeklySummaryFor(next.Date, after, cfg)
	accrual := eligibleSurplus(newWeek).Sub(eligibleSurplus(oldWeek))
	out.FlexibilityHours = generic.Clamp(out.FlexibilityHours.Add(accrual), decimal.Zero, MaxFlexibilityHours)

	// 5. Consumption never exceeds credit
	if out.UsedFlexHours.GreaterThan(out.FlexibilityHours) {
		out.UsedFlexHours = out.FlexibilityHours
	}
	return out
}

// weekViews copies the week of next.Date out of days twice: once with prev in
// place of the edited date, once with next.
func weekViews(days Days, prev *DayRecord, next DayRecord) (before, after Days) {
	before, after = Days{}, Days{}
	for _, day := range generic.WeekOf(next.Date).Days() {
		if rec, ok := days[day.String()]; ok {
			before[day.String()] = rec
			after[day.String()] = rec
		}
	}
	key := next.Key()
	delete(before, key)
	if prev != nil {
		before[key] = *prev
	}
	after[key] = next
	return before, after
}

// =============================================================================
// POOL CHANGES - what an edit moved, for logs and API responses
// =============================================================================

type PoolChanges struct {
	VacationDays     int
	APHours          decimal.Decimal
	UsedFlexHours    decimal.Decimal
	FlexibilityHours decimal.Decimal
}

// ChangesBetween reports the per-pool difference after - before.
func ChangesBetween(before, after UserConfig) PoolChanges {
	return PoolChanges{
		VacationDays:     after.UsedVacationDays - before.UsedVacationDays,
		APHours:          after.UsedAPHours.Sub(before.UsedAPHours),
		UsedFlexHours:    after.UsedFlexHours.Sub(before.UsedFlexHours),
		FlexibilityHours: after.FlexibilityHours.Sub(before.FlexibilityHours),
	}
}

func (p PoolChanges) IsZero() bool {
	return p.VacationDays == 0 && p.APHours.IsZero() && p.UsedFlexHours.IsZero() && p.FlexibilityHours.IsZero()
}
