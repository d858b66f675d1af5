/*
Package exchange moves a ledger in and out of the process: the JSON
export/import document, the YAML holiday calendar and the xlsx weekly report.

DOCUMENT:
  {
    "config":     { ...UserConfig... },
    "daysData":   { "2026-03-02": { ...DayRecord... }, ... },
    "exportDate": "2026-10-17T09:00:00Z",
    "version":    "1.0"
  }

CANONICAL EXPORT:
  Anything Calendar Math can rebuild is left out: theoretical hours, the day
  type when it matches the weekly pattern, and missing shift times. Import
  puts them back. Documents from older versions that still carry
  theoreticalHours (per day or per weekday) are accepted; the values are
  ignored.

HOUR FIELDS:
  apHours, flexHours and otherHours are read only for the matching dayStatus.
  A stray field on another status is dropped.

SEE ALSO:
  - validate.go: Size limit and schema checks run before Import
  - timesheet/config.go: Sanitize completes partial configs
*/
package exchange

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/work-ledger/generic"
	"github.com/warp/work-ledger/timesheet"
)

// FormatVersion is written into every export.
const FormatVersion = "1.0"

// =============================================================================
// WIRE TYPES
// =============================================================================

type Document struct {
	Config     ConfigDTO          `json:"config"`
	DaysData   map[string]*DayDTO `json:"daysData" validate:"dive,keys,isodate,endkeys,required"`
	ExportDate string             `json:"exportDate" validate:"required"`
	Version    string             `json:"version" validate:"required,max=20"`
}

type ConfigDTO struct {
	CalendarYear     int         `json:"calendarYear,omitempty" validate:"omitempty,min=1970,max=2100"`
	FirstName        string      `json:"firstName" validate:"max=100"`
	DefaultStartTime string      `json:"defaultStartTime,omitempty" validate:"omitempty,hhmm"`
	DefaultEndTime   string      `json:"defaultEndTime,omitempty" validate:"omitempty,hhmm"`
	WeeklyConfig     WeeklyDTO   `json:"weeklyConfig"`
	SchedulePeriods  []PeriodDTO `json:"schedulePeriods,omitempty" validate:"max=100,dive"`
	Holidays         []string    `json:"holidays" validate:"max=100,dive,isodate"`

	TotalVacationDays int     `json:"totalVacationDays" validate:"min=0,max=365"`
	UsedVacationDays  int     `json:"usedVacationDays" validate:"min=0,max=365"`
	TotalAPHours      float64 `json:"totalAPHours" validate:"min=0,max=500"`
	UsedAPHours       float64 `json:"usedAPHours" validate:"min=0,max=500"`
	FlexibilityHours  float64 `json:"flexibilityHours" validate:"min=0,max=25"`
	UsedFlexHours     float64 `json:"usedFlexHours,omitempty" validate:"min=0,max=25"`
}

type WeeklyDTO struct {
	Monday    *WeekdayDTO `json:"monday" validate:"required"`
	Tuesday   *WeekdayDTO `json:"tuesday" validate:"required"`
	Wednesday *WeekdayDTO `json:"wednesday" validate:"required"`
	Thursday  *WeekdayDTO `json:"thursday" validate:"required"`
	Friday    *WeekdayDTO `json:"friday" validate:"required"`
}

type WeekdayDTO struct {
	DayType string `json:"dayType" validate:"required,oneof=presencial teletreball"`
	// TheoreticalHours is read from older documents and ignored.
	TheoreticalHours *float64 `json:"theoreticalHours,omitempty"`
}

type PeriodDTO struct {
	ID           string `json:"id" validate:"max=100"`
	StartDate    string `json:"startDate" validate:"required,isodate"`
	EndDate      string `json:"endDate" validate:"required,isodate"`
	ScheduleType string `json:"scheduleType" validate:"required,oneof=hivern estiu"`
}

type DayDTO struct {
	Date             string   `json:"date" validate:"required,isodate"`
	TheoreticalHours *float64 `json:"theoreticalHours,omitempty" validate:"omitempty,min=0,max=24"`
	StartTime        *string  `json:"startTime,omitempty" validate:"omitempty,hhmm"`
	EndTime          *string  `json:"endTime,omitempty" validate:"omitempty,hhmm"`
	StartTime2       *string  `json:"startTime2,omitempty" validate:"omitempty,hhmm"`
	EndTime2         *string  `json:"endTime2,omitempty" validate:"omitempty,hhmm"`
	DayType          string   `json:"dayType,omitempty" validate:"omitempty,oneof=presencial teletreball"`
	DayStatus        string   `json:"dayStatus" validate:"required,oneof=laboral festiu vacances assumpte_propi flexibilitat altres"`
	RequestStatus    *string  `json:"requestStatus" validate:"omitempty,oneof=pendent aprovat"`
	APHours          *float64 `json:"apHours,omitempty" validate:"omitempty,min=0,max=24"`
	FlexHours        *float64 `json:"flexHours,omitempty" validate:"omitempty,min=0,max=24"`
	OtherHours       *float64 `json:"otherHours,omitempty" validate:"omitempty,min=0,max=24"`
	Notes            string   `json:"notes,omitempty" validate:"max=1000"`
	OtherComment     string   `json:"otherComment,omitempty" validate:"max=1000"`
}

// =============================================================================
// EXPORT
// =============================================================================

// Export builds the canonical document for cfg and days.
func Export(cfg timesheet.UserConfig, days timesheet.Days, at time.Time) Document {
	doc := Document{
		Config:     ConfigToDTO(cfg),
		DaysData:   make(map[string]*DayDTO, len(days)),
		ExportDate: at.UTC().Format(time.RFC3339),
		Version:    FormatVersion,
	}
	for key, rec := range days {
		rec = rec.Normalize()
		if rec.IsEmptyFor(cfg) {
			continue
		}
		doc.DaysData[key] = DayToDTO(rec, cfg)
	}
	return doc
}

// ConfigToDTO is the wire form of cfg.
func ConfigToDTO(cfg timesheet.UserConfig) ConfigDTO {
	weekday := func(k timesheet.WeekdayKey) *WeekdayDTO {
		return &WeekdayDTO{DayType: string(cfg.WeeklyConfig[k])}
	}
	periods := make([]PeriodDTO, 0, len(cfg.SchedulePeriods))
	for _, p := range timesheet.SortedPeriods(cfg.SchedulePeriods) {
		periods = append(periods, PeriodDTO{
			ID:           p.ID,
			StartDate:    p.Start.String(),
			EndDate:      p.End.String(),
			ScheduleType: string(p.Type),
		})
	}
	return ConfigDTO{
		CalendarYear:     cfg.CalendarYear,
		FirstName:        cfg.FirstName,
		DefaultStartTime: cfg.DefaultStartTime.String(),
		DefaultEndTime:   cfg.DefaultEndTime.String(),
		WeeklyConfig: WeeklyDTO{
			Monday:    weekday(timesheet.Monday),
			Tuesday:   weekday(timesheet.Tuesday),
			Wednesday: weekday(timesheet.Wednesday),
			Thursday:  weekday(timesheet.Thursday),
			Friday:    weekday(timesheet.Friday),
		},
		SchedulePeriods:   periods,
		Holidays:          append([]string{}, cfg.Holidays...),
		TotalVacationDays: cfg.TotalVacationDays,
		UsedVacationDays:  cfg.UsedVacationDays,
		TotalAPHours:      cfg.TotalAPHours.InexactFloat64(),
		UsedAPHours:       cfg.UsedAPHours.InexactFloat64(),
		FlexibilityHours:  cfg.FlexibilityHours.InexactFloat64(),
		UsedFlexHours:     cfg.UsedFlexHours.InexactFloat64(),
	}
}

// DayToDTO is the canonical wire form of rec; see the package comment.
func DayToDTO(rec timesheet.DayRecord, cfg timesheet.UserConfig) *DayDTO {
	dto := &DayDTO{
		Date:       rec.Key(),
		StartTime:  clockString(rec.Shift1.Start),
		EndTime:    clockString(rec.Shift1.End),
		StartTime2: clockString(rec.Shift2.Start),
		EndTime2:   clockString(rec.Shift2.End),
		DayStatus:  string(rec.Status()),
		Notes:      rec.Notes,
	}
	if rec.DayType != timesheet.DayTypeForDate(rec.Date, cfg) {
		dto.DayType = string(rec.DayType)
	}
	if r := rec.Request(); r != timesheet.RequestNone {
		s := string(r)
		dto.RequestStatus = &s
	}

	switch k := rec.Kind.(type) {
	case timesheet.PersonalLeave:
		dto.APHours = hoursPtr(k.ExtraHours())
	case timesheet.FlexLeave:
		dto.FlexHours = hoursPtr(k.ExtraHours())
	case timesheet.OtherLeave:
		dto.OtherHours = hoursPtr(k.ExtraHours())
		dto.OtherComment = k.Comment
	}
	return dto
}

func clockString(c *timesheet.Clock) *string {
	if c == nil {
		return nil
	}
	s := c.String()
	return &s
}

func hoursPtr(d decimal.Decimal) *float64 {
	f := d.InexactFloat64()
	return &f
}

// =============================================================================
// IMPORT
// =============================================================================

// Import rebuilds the config and day map from a validated document. The
// config is sanitised first so day types can be derived from it.
func Import(doc Document) (timesheet.UserConfig, timesheet.Days, error) {
	cfg, err := ConfigFromDTO(doc.Config)
	if err != nil {
		return timesheet.UserConfig{}, nil, err
	}

	days := make(timesheet.Days, len(doc.DaysData))
	for _, dto := range doc.DaysData {
		if dto == nil {
			continue
		}
		rec, err := DayFromDTO(*dto, cfg)
		if err != nil {
			return timesheet.UserConfig{}, nil, err
		}
		if rec.IsEmptyFor(cfg) {
			continue
		}
		days[rec.Key()] = rec
	}
	return cfg, days, nil
}

// ConfigFromDTO rebuilds and sanitises a config. dto is assumed validated.
func ConfigFromDTO(dto ConfigDTO) (timesheet.UserConfig, error) {
	def := timesheet.DefaultConfig(dto.CalendarYear)
	cfg := timesheet.UserConfig{
		CalendarYear:      dto.CalendarYear,
		FirstName:         dto.FirstName,
		DefaultStartTime:  def.DefaultStartTime,
		DefaultEndTime:    def.DefaultEndTime,
		WeeklyConfig:      map[timesheet.WeekdayKey]timesheet.DayType{},
		Holidays:          dto.Holidays,
		TotalVacationDays: dto.TotalVacationDays,
		UsedVacationDays:  dto.UsedVacationDays,
		TotalAPHours:      decimal.NewFromFloat(dto.TotalAPHours),
		UsedAPHours:       decimal.NewFromFloat(dto.UsedAPHours),
		FlexibilityHours:  decimal.NewFromFloat(dto.FlexibilityHours),
		UsedFlexHours:     decimal.NewFromFloat(dto.UsedFlexHours),
	}
	if dto.DefaultStartTime != "" {
		c, err := timesheet.ParseClock(dto.DefaultStartTime)
		if err != nil {
			return cfg, err
		}
		cfg.DefaultStartTime = c
	}
	if dto.DefaultEndTime != "" {
		c, err := timesheet.ParseClock(dto.DefaultEndTime)
		if err != nil {
			return cfg, err
		}
		cfg.DefaultEndTime = c
	}

	for key, wd := range map[timesheet.WeekdayKey]*WeekdayDTO{
		timesheet.Monday:    dto.WeeklyConfig.Monday,
		timesheet.Tuesday:   dto.WeeklyConfig.Tuesday,
		timesheet.Wednesday: dto.WeeklyConfig.Wednesday,
		timesheet.Thursday:  dto.WeeklyConfig.Thursday,
		timesheet.Friday:    dto.WeeklyConfig.Friday,
	} {
		if wd != nil {
			cfg.WeeklyConfig[key] = timesheet.DayType(wd.DayType)
		}
	}

	for _, p := range dto.SchedulePeriods {
		start, err := generic.ParseDate(p.StartDate)
		if err != nil {
			return cfg, err
		}
		end, err := generic.ParseDate(p.EndDate)
		if err != nil {
			return cfg, err
		}
		cfg.SchedulePeriods = append(cfg.SchedulePeriods, timesheet.SchedulePeriod{
			ID: p.ID, Start: start, End: end, Type: timesheet.ScheduleType(p.ScheduleType),
		})
	}
	return cfg.Sanitize(), nil
}

// DayFromDTO rebuilds a record, deriving the day type from cfg when absent.
func DayFromDTO(dto DayDTO, cfg timesheet.UserConfig) (timesheet.DayRecord, error) {
	date, err := generic.ParseDate(dto.Date)
	if err != nil {
		return timesheet.DayRecord{}, err
	}
	s1, err := shiftFrom(dto.StartTime, dto.EndTime)
	if err != nil {
		return timesheet.DayRecord{}, err
	}
	s2, err := shiftFrom(dto.StartTime2, dto.EndTime2)
	if err != nil {
		return timesheet.DayRecord{}, err
	}

	status := timesheet.DayStatus(dto.DayStatus)
	var request timesheet.RequestStatus
	if dto.RequestStatus != nil {
		request = timesheet.RequestStatus(*dto.RequestStatus)
	}
	var hours *float64
	switch status {
	case timesheet.StatusAssumptePropi:
		hours = dto.APHours
	case timesheet.StatusFlexibilitat:
		hours = dto.FlexHours
	case timesheet.StatusAltres:
		hours = dto.OtherHours
	}
	h := decimal.Zero
	if hours != nil {
		h = decimal.NewFromFloat(*hours)
	}

	dayType := timesheet.DayType(dto.DayType)
	if !dayType.IsValid() {
		dayType = timesheet.DayTypeForDate(date, cfg)
	}

	rec := timesheet.DayRecord{
		Date:    date,
		Shift1:  s1,
		Shift2:  s2,
		DayType: dayType,
		Kind:    timesheet.KindFor(status, request, h, dto.OtherComment),
		Notes:   dto.Notes,
	}
	return rec.Normalize(), nil
}

func shiftFrom(start, end *string) (timesheet.Shift, error) {
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	return timesheet.NewShift(deref(start), deref(end))
}
