package timesheet

import (
	"github.com/warp/work-ledger/generic"
)

// PoolStatus is one entitlement pool as shown to the user.
type PoolStatus struct {
	Total     generic.Amount
	Used      generic.Amount
	Remaining generic.Amount
}

// VacationStatus separates approved days (the pool) from requested ones.
type VacationStatus struct {
	PoolStatus
	Requested int
	Pending   int
}

// FlexStatus is the accumulated credit and how much of it is spent.
type FlexStatus struct {
	Credit    generic.Amount
	Used      generic.Amount
	Available generic.Amount
	Max       generic.Amount
}

type Status struct {
	Vacation      VacationStatus
	PersonalLeave PoolStatus
	Flex          FlexStatus
	// CoverageGaps is the number of days of the calendar year without a
	// schedule period.
	CoverageGaps int
}

// StatusFor summarises the pools. Remaining vacation is measured against
// requested days, pending ones included, so a pending request already reduces
// what can still be asked for.
func StatusFor(cfg UserConfig, days Days) Status {
	requested := 0
	pending := 0
	for _, rec := range days {
		if rec.Status() != StatusVacances {
			continue
		}
		requested++
		if rec.Request() == RequestPending {
			pending++
		}
	}

	apTotal := generic.NewAmountFromDecimal(cfg.TotalAPHours, generic.UnitHours)
	apUsed := generic.NewAmountFromDecimal(cfg.UsedAPHours, generic.UnitHours)
	credit := generic.NewAmountFromDecimal(cfg.FlexibilityHours, generic.UnitHours)
	flexUsed := generic.NewAmountFromDecimal(cfg.UsedFlexHours, generic.UnitHours)

	return Status{
		Vacation: VacationStatus{
			PoolStatus: PoolStatus{
				Total:     generic.NewAmountFromInt(cfg.TotalVacationDays, generic.UnitDays),
				Used:      generic.NewAmountFromInt(cfg.UsedVacationDays, generic.UnitDays),
				Remaining: generic.NewAmountFromInt(max(0, cfg.TotalVacationDays-requested), generic.UnitDays),
			},
			Requested: requested,
			Pending:   pending,
		},
		PersonalLeave: PoolStatus{
			Total:     apTotal,
			Used:      apUsed,
			Remaining: apTotal.Sub(apUsed).NonNegative(),
		},
		Flex: FlexStatus{
			Credit:    credit,
			Used:      flexUsed,
			Available: credit.Sub(flexUsed).NonNegative(),
			Max:       generic.NewAmountFromDecimal(MaxFlexibilityHours, generic.UnitHours),
		},
		CoverageGaps: CoverageGaps(cfg.SchedulePeriods, cfg.CalendarYear),
	}
}
