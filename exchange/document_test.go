package exchange_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/work-ledger/exchange"
	"github.com/warp/work-ledger/generic"
	"github.com/warp/work-ledger/timesheet"
)

func sampleLedger(t *testing.T) (timesheet.UserConfig, timesheet.Days) {
	t.Helper()
	cfg := timesheet.DefaultConfig(2026)
	cfg.FirstName = "Núria"
	cfg.UsedVacationDays = 1
	cfg.UsedAPHours = generic.Hours(2.5)
	cfg.FlexibilityHours = generic.Hours(4)
	cfg.UsedFlexHours = generic.Hours(1)

	s1, err := timesheet.NewShift("07:30", "15:30")
	require.NoError(t, err)
	days := timesheet.Days{}
	for _, rec := range []timesheet.DayRecord{
		{Date: generic.MustParseDate("2026-03-02"), Shift1: s1, DayType: timesheet.DayPresencial, Kind: timesheet.Working{}, Notes: "kick-off"},
		{Date: generic.MustParseDate("2026-03-03"), DayType: timesheet.DayTeletreball, Kind: timesheet.Working{}, Notes: "moved"},
		{Date: generic.MustParseDate("2026-03-04"), DayType: timesheet.DayPresencial, Kind: timesheet.Vacation{Approval: timesheet.RequestApproved}},
		{Date: generic.MustParseDate("2026-03-05"), DayType: timesheet.DayTeletreball, Kind: timesheet.PersonalLeave{Hours: generic.Hours(2.5), Approval: timesheet.RequestPending}},
		{Date: generic.MustParseDate("2026-03-06"), DayType: timesheet.DayTeletreball, Kind: timesheet.FlexLeave{Hours: generic.Hours(1), Approval: timesheet.RequestApproved}},
		{Date: generic.MustParseDate("2026-03-09"), DayType: timesheet.DayPresencial, Kind: timesheet.OtherLeave{Hours: generic.Hours(1.5), Comment: "metge"}},
	} {
		days[rec.Key()] = rec
	}
	return cfg, days
}

func encode(t *testing.T, doc exchange.Document) []byte {
	t.Helper()
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	return data
}

func TestExportImport_RoundTrip(t *testing.T) {
	// GIVEN: A ledger with one record of every kind
	cfg, days := sampleLedger(t)

	// WHEN: Exported, serialised, decoded and imported
	doc := exchange.Export(cfg, days, time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC))
	decoded, err := exchange.Decode(bytes.NewReader(encode(t, doc)))
	require.NoError(t, err)
	gotCfg, gotDays, err := exchange.Import(decoded)
	require.NoError(t, err)

	// THEN: Config and records come back unchanged
	assert.True(t, cfg.Equal(gotCfg))
	require.Len(t, gotDays, len(days))
	for key, want := range days {
		got := gotDays[key]
		assert.Equal(t, want.Status(), got.Status(), key)
		assert.Equal(t, want.Request(), got.Request(), key)
		assert.Equal(t, want.DayType, got.DayType, key)
		assert.Equal(t, want.Notes, got.Notes, key)
		assert.True(t, want.Kind.ExtraHours().Equal(got.Kind.ExtraHours()), key)
		assert.True(t, want.WorkedHours().Equal(got.WorkedHours()), key)
	}
	assert.Equal(t, "2026-10-17T09:00:00Z", decoded.ExportDate)
	assert.Equal(t, exchange.FormatVersion, decoded.Version)
}

func TestExport_IsCanonical(t *testing.T) {
	cfg, days := sampleLedger(t)
	empty := timesheet.NewDayRecord(generic.MustParseDate("2026-03-10"), cfg)
	days[empty.Key()] = empty

	doc := exchange.Export(cfg, days, time.Now())

	// Empty records are not exported
	assert.NotContains(t, doc.DaysData, "2026-03-10")

	// Day type only when it differs from the weekly pattern
	assert.Empty(t, doc.DaysData["2026-03-02"].DayType)
	assert.Equal(t, "teletreball", doc.DaysData["2026-03-03"].DayType)

	// Request status is null for non-requests, hours only for the matching kind
	assert.Nil(t, doc.DaysData["2026-03-02"].RequestStatus)
	ap := doc.DaysData["2026-03-05"]
	require.NotNil(t, ap.APHours)
	assert.Equal(t, 2.5, *ap.APHours)
	assert.Nil(t, ap.FlexHours)
	assert.Nil(t, ap.OtherHours)
	assert.Equal(t, "metge", doc.DaysData["2026-03-09"].OtherComment)
}

func TestDayFromDTO_DropsHoursOfOtherStatus(t *testing.T) {
	// GIVEN: A laboral day that still carries an apHours field
	ap := 4.0
	dto := exchange.DayDTO{Date: "2026-03-02", DayStatus: "laboral", APHours: &ap}

	rec, err := exchange.DayFromDTO(dto, timesheet.DefaultConfig(2026))

	// THEN: The stray field is ignored
	require.NoError(t, err)
	assert.True(t, rec.PersonalLeaveHours().IsZero())
	assert.Equal(t, timesheet.DayPresencial, rec.DayType, "derived from the weekly pattern")
}

func TestDecode_LegacyDocument(t *testing.T) {
	// GIVEN: A single-shift document with per-day and per-weekday
	// theoretical hours and a field this version does not know
	legacy := `{
	  "config": {
	    "firstName": "Jordi",
	    "lastName": "Puig",
	    "weeklyConfig": {
	      "monday":    {"dayType": "presencial",  "theoreticalHours": 7.5},
	      "tuesday":   {"dayType": "presencial",  "theoreticalHours": 7.5},
	      "wednesday": {"dayType": "presencial",  "theoreticalHours": 7.5},
	      "thursday":  {"dayType": "teletreball", "theoreticalHours": 7.5},
	      "friday":    {"dayType": "teletreball", "theoreticalHours": 7.5}
	    },
	    "holidays": ["2026-01-01"],
	    "totalVacationDays": 22,
	    "usedVacationDays": 0,
	    "totalAPHours": 90,
	    "usedAPHours": 0,
	    "flexibilityHours": 0
	  },
	  "daysData": {
	    "2026-03-02": {
	      "date": "2026-03-02",
	      "theoreticalHours": 7.5,
	      "startTime": "07:30",
	      "endTime": "15:00",
	      "dayType": "presencial",
	      "dayStatus": "laboral",
	      "requestStatus": null
	    }
	  },
	  "exportDate": "2025-12-01T10:00:00.000Z",
	  "version": "1.0"
	}`

	doc, err := exchange.Decode(bytes.NewBufferString(legacy))
	require.NoError(t, err)
	cfg, days, err := exchange.Import(doc)
	require.NoError(t, err)

	// THEN: Missing config parts are filled, records read normally
	assert.Equal(t, timesheet.DefaultCalendarYear, cfg.CalendarYear)
	assert.Equal(t, 22, cfg.TotalVacationDays)
	assert.NotEmpty(t, cfg.SchedulePeriods)
	require.Contains(t, days, "2026-03-02")
	assert.True(t, days["2026-03-02"].WorkedHours().Equal(generic.Hours(7.5)))
}

func TestExportImport_KeepsDayTypeOverride(t *testing.T) {
	// GIVEN: A Monday marked teletreball with no shifts or notes
	cfg := timesheet.DefaultConfig(2026)
	rec := timesheet.NewDayRecord(generic.MustParseDate("2026-03-02"), cfg)
	rec.DayType = timesheet.DayTeletreball

	// WHEN: Exported and imported back
	doc := exchange.Export(cfg, timesheet.Days{rec.Key(): rec}, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	require.Contains(t, doc.DaysData, "2026-03-02")
	assert.Equal(t, "teletreball", doc.DaysData["2026-03-02"].DayType)

	_, days, err := exchange.Import(doc)

	// THEN: The override survives
	require.NoError(t, err)
	require.Contains(t, days, "2026-03-02")
	assert.Equal(t, timesheet.DayTeletreball, days["2026-03-02"].DayType)
}
