/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. Config and day
  payloads share their wire shape with the export document
  (exchange.ConfigDTO, exchange.DayDTO) so the UI reads and writes one
  format. Responses add the derived numbers the UI displays.

NAMING CONVENTION:
  - *DTO:      Response types returned to clients
  - *Request:  Request body types from clients
  - *Response: Complex response wrappers

VALIDATION:
  Config and day bodies are validated by the exchange package's struct
  tags before reaching the service.

SEE ALSO:
  - handlers.go: Uses these types
  - exchange/document.go: Shared wire types
*/
package api

import (
	"github.com/shopspring/decimal"
	"github.com/warp/work-ledger/exchange"
	"github.com/warp/work-ledger/generic"
	"github.com/warp/work-ledger/timesheet"
)

// =============================================================================
// DAYS
// =============================================================================

// DayDTO is a day record with its derived hours.
type DayDTO struct {
	exchange.DayDTO
	// DayType is always present here, unlike in exports.
	DayType          string  `json:"dayType"`
	TheoreticalHours float64 `json:"theoreticalHours"`
	WorkedHours      float64 `json:"workedHours"`
	EffectiveHours   float64 `json:"effectiveHours"`
	IsHoliday        bool    `json:"isHoliday"`
	// Stored is false for a draft offered for a date with no record.
	Stored bool `json:"stored"`
}

func toDayDTO(rec timesheet.DayRecord, cfg timesheet.UserConfig, stored bool) DayDTO {
	return DayDTO{
		DayDTO:           *exchange.DayToDTO(rec, cfg),
		DayType:          string(rec.DayType),
		TheoreticalHours: timesheet.TheoreticalHoursForDate(rec.Date, cfg).InexactFloat64(),
		WorkedHours:      rec.WorkedHours().InexactFloat64(),
		EffectiveHours:   rec.EffectiveHours().InexactFloat64(),
		IsHoliday:        timesheet.IsHoliday(rec.Date, cfg.Holidays),
		Stored:           stored,
	}
}

// EditResponse is returned by PUT and DELETE on a day.
type EditResponse struct {
	Day     DayDTO             `json:"day"`
	Deleted bool               `json:"deleted"`
	Config  exchange.ConfigDTO `json:"config"`
	Changes PoolChangesDTO     `json:"changes"`
	Week    WeekDTO            `json:"week"`
}

type PoolChangesDTO struct {
	VacationDays     int     `json:"vacationDays"`
	APHours          float64 `json:"apHours"`
	UsedFlexHours    float64 `json:"usedFlexHours"`
	FlexibilityHours float64 `json:"flexibilityHours"`
}

func toEditResponse(res timesheet.EditResult) EditResponse {
	return EditResponse{
		Day:     toDayDTO(res.Record, res.Config, !res.Deleted),
		Deleted: res.Deleted,
		Config:  exchange.ConfigToDTO(res.Config),
		Changes: PoolChangesDTO{
			VacationDays:     res.Changes.VacationDays,
			APHours:          res.Changes.APHours.InexactFloat64(),
			UsedFlexHours:    res.Changes.UsedFlexHours.InexactFloat64(),
			FlexibilityHours: res.Changes.FlexibilityHours.InexactFloat64(),
		},
		Week: toWeekDTO(res.Week),
	}
}

// =============================================================================
// WEEKS
// =============================================================================

type WeekDTO struct {
	WeekNumber        int     `json:"weekNumber"`
	StartDate         string  `json:"startDate"`
	EndDate           string  `json:"endDate"`
	TheoreticalHours  float64 `json:"theoreticalHours"`
	WorkedHours       float64 `json:"workedHours"`
	Difference        float64 `json:"difference"`
	DifferenceText    string  `json:"differenceText"`
	FlexibilityGained float64 `json:"flexibilityGained"`
}

func toWeekDTO(s timesheet.WeeklySummary) WeekDTO {
	diff := timesheet.NormalizeHoursDifference(s.Difference)
	return WeekDTO{
		WeekNumber:        s.WeekNumber,
		StartDate:         s.StartDate.String(),
		EndDate:           s.EndDate.String(),
		TheoreticalHours:  s.TheoreticalHours.InexactFloat64(),
		WorkedHours:       s.WorkedHours.InexactFloat64(),
		Difference:        diff.InexactFloat64(),
		DifferenceText:    timesheet.FormatSignedHours(diff),
		FlexibilityGained: s.FlexibilityGained.InexactFloat64(),
	}
}

// =============================================================================
// STATUS
// =============================================================================

// AmountDTO mirrors the display shape used by the pools.
type AmountDTO struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
	Text  string  `json:"text,omitempty"`
}

func toAmountDTO(a generic.Amount) AmountDTO {
	dto := AmountDTO{Value: a.Float64(), Unit: string(a.Unit)}
	if a.Unit == generic.UnitHours {
		dto.Text = timesheet.FormatHoursMinutes(a.Value)
	}
	return dto
}

type PoolDTO struct {
	Total     AmountDTO `json:"total"`
	Used      AmountDTO `json:"used"`
	Remaining AmountDTO `json:"remaining"`
}

func toPoolDTO(p timesheet.PoolStatus) PoolDTO {
	return PoolDTO{
		Total:     toAmountDTO(p.Total),
		Used:      toAmountDTO(p.Used),
		Remaining: toAmountDTO(p.Remaining),
	}
}

type VacationDTO struct {
	PoolDTO
	Requested int `json:"requested"`
	Pending   int `json:"pending"`
}

type FlexDTO struct {
	Credit    AmountDTO `json:"credit"`
	Used      AmountDTO `json:"used"`
	Available AmountDTO `json:"available"`
	Max       AmountDTO `json:"max"`
}

type StatusDTO struct {
	Vacation      VacationDTO `json:"vacation"`
	PersonalLeave PoolDTO     `json:"personalLeave"`
	Flex          FlexDTO     `json:"flex"`
	CoverageGaps  int         `json:"coverageGaps"`
}

func toStatusDTO(s timesheet.Status) StatusDTO {
	return StatusDTO{
		Vacation: VacationDTO{
			PoolDTO:   toPoolDTO(s.Vacation.PoolStatus),
			Requested: s.Vacation.Requested,
			Pending:   s.Vacation.Pending,
		},
		PersonalLeave: toPoolDTO(s.PersonalLeave),
		Flex: FlexDTO{
			Credit:    toAmountDTO(s.Flex.Credit),
			Used:      toAmountDTO(s.Flex.Used),
			Available: toAmountDTO(s.Flex.Available),
			Max:       toAmountDTO(s.Flex.Max),
		},
		CoverageGaps: s.CoverageGaps,
	}
}

// =============================================================================
// CONFIG
// =============================================================================

type CoverageDTO struct {
	Year   int              `json:"year"`
	Gaps   int              `json:"gaps"`
	Issues []PeriodIssueDTO `json:"issues"`
}

type PeriodIssueDTO struct {
	PeriodID string `json:"periodId"`
	OtherID  string `json:"otherId,omitempty"`
	Problem  string `json:"problem"`
}

// FlexibilityRequest sets the flex credit by hand.
type FlexibilityRequest struct {
	Hours float64 `json:"hours"`
}

func (r FlexibilityRequest) hours() decimal.Decimal {
	return decimal.NewFromFloat(r.Hours)
}

// AddPeriodRequest appends a schedule period.
type AddPeriodRequest struct {
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	ScheduleType string `json:"scheduleType"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}
