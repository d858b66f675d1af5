/*
Package sqlite provides a SQLite-backed timesheet.Store.

PURPOSE:
  Keeps one ledger on disk: a single config row and one row per non-empty
  day. The same schema works on PostgreSQL with minor dialect changes.

KEY TABLES:
  config:       Single row (id = 1). Pools as TEXT decimals, weekly
                pattern, periods and holidays as JSON.
  day_records:  One row per date (YYYY-MM-DD primary key). Absence hours as a
                TEXT decimal, shifts as nullable HH:MM columns.

TOLERANT DECODING:
  Rows written by older versions or edited by hand are read leniently:
  malformed decimals become 0, malformed clocks become missing, unknown
  statuses become laboral and a config with missing fields is completed by
  Sanitize. Every fallback is logged as a warning. A row whose date cannot
  be parsed is skipped.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. SQLite is opened in WAL mode so
  readers do not block the writer.

USAGE:
  store, err := sqlite.New("./horari.db", logrus.StandardLogger())
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New().

SEE ALSO:
  - timesheet/store.go: Interface definition
  - store/memory: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/warp/work-ledger/generic"
	"github.com/warp/work-ledger/timesheet"
)

// Store implements timesheet.Store using SQLite.
type Store struct {
	db  *sql.DB
	mu  sync.RWMutex
	log logrus.FieldLogger
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string, log logrus.FieldLogger) (*Store, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// each pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db, log: log.WithField("component", "sqlite")}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS config (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		calendar_year INTEGER NOT NULL,
		first_name TEXT NOT NULL DEFAULT '',
		default_start TEXT NOT NULL DEFAULT '',
		default_end TEXT NOT NULL DEFAULT '',
		weekly_json TEXT,
		periods_json TEXT,
		holidays_json TEXT,
		total_vacation_days INTEGER NOT NULL DEFAULT 0,
		used_vacation_days INTEGER NOT NULL DEFAULT 0,
		total_ap_hours TEXT NOT NULL DEFAULT '0',
		used_ap_hours TEXT NOT NULL DEFAULT '0',
		flexibility_hours TEXT NOT NULL DEFAULT '0',
		used_flex_hours TEXT NOT NULL DEFAULT '0',
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS day_records (
		date TEXT PRIMARY KEY,
		shift1_start TEXT,
		shift1_end TEXT,
		shift2_start TEXT,
		shift2_end TEXT,
		day_type TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'laboral',
		request_status TEXT NOT NULL DEFAULT '',
		hours TEXT NOT NULL DEFAULT '0',
		comment TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_day_records_status
		ON day_records(status);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// CONFIG
// =============================================================================

type periodRow struct {
	ID    string `json:"id"`
	Start string `json:"start"`
	End   string `json:"end"`
	Type  string `json:"type"`
}

// LoadConfig returns the stored config, sanitised.
func (s *Store) LoadConfig(ctx context.Context) (timesheet.UserConfig, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		cfg                                   timesheet.UserConfig
		defaultStart, defaultEnd              string
		weeklyJSON, periodsJSON, holidaysJSON sql.NullString
		totalAP, usedAP, flex, usedFlex       string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT calendar_year, first_name, default_start, default_end,
		       weekly_json, periods_json, holidays_json,
		       total_vacation_days, used_vacation_days,
		       total_ap_hours, used_ap_hours, flexibility_hours, used_flex_hours
		FROM config WHERE id = 1
	`).Scan(
		&cfg.CalendarYear, &cfg.FirstName, &defaultStart, &defaultEnd,
		&weeklyJSON, &periodsJSON, &holidaysJSON,
		&cfg.TotalVacationDays, &cfg.UsedVacationDays,
		&totalAP, &usedAP, &flex, &usedFlex,
	)
	if err == sql.ErrNoRows {
		return timesheet.UserConfig{}, false, nil
	}
	if err != nil {
		return timesheet.UserConfig{}, false, fmt.Errorf("failed to load config: %w", err)
	}

	def := timesheet.DefaultConfig(cfg.CalendarYear)
	cfg.DefaultStartTime = s.clockOr(defaultStart, def.DefaultStartTime, "default_start")
	cfg.DefaultEndTime = s.clockOr(defaultEnd, def.DefaultEndTime, "default_end")

	if weeklyJSON.Valid {
		weekly := map[timesheet.WeekdayKey]timesheet.DayType{}
		if err := json.Unmarshal([]byte(weeklyJSON.String), &weekly); err != nil {
			s.log.WithError(err).Warn("malformed weekly pattern, using defaults")
		} else {
			cfg.WeeklyConfig = weekly
		}
	}
	if periodsJSON.Valid {
		var rows []periodRow
		if err := json.Unmarshal([]byte(periodsJSON.String), &rows); err != nil {
			s.log.WithError(err).Warn("malformed schedule periods, using defaults")
		} else {
			cfg.SchedulePeriods = s.decodePeriods(rows)
		}
	}
	if holidaysJSON.Valid {
		var holidays []string
		if err := json.Unmarshal([]byte(holidaysJSON.String), &holidays); err != nil {
			s.log.WithError(err).Warn("malformed holidays, using defaults")
		} else {
			cfg.Holidays = holidays
		}
	}

	cfg.TotalAPHours = s.decimalOr(totalAP, "total_ap_hours")
	cfg.UsedAPHours = s.decimalOr(usedAP, "used_ap_hours")
	cfg.FlexibilityHours = s.decimalOr(flex, "flexibility_hours")
	cfg.UsedFlexHours = s.decimalOr(usedFlex, "used_flex_hours")

	return cfg.Sanitize(), true, nil
}

func (s *Store) decodePeriods(rows []periodRow) []timesheet.SchedulePeriod {
	out := make([]timesheet.SchedulePeriod, 0, len(rows))
	for _, r := range rows {
		start, err1 := generic.ParseDate(r.Start)
		end, err2 := generic.ParseDate(r.End)
		if err1 != nil || err2 != nil {
			s.log.WithField("period", r.ID).Warn("skipping schedule period with malformed dates")
			continue
		}
		out = append(out, timesheet.SchedulePeriod{
			ID: r.ID, Start: start, End: end, Type: timesheet.ScheduleType(r.Type),
		})
	}
	return out
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// SaveConfig upserts the single config row.
func (s *Store) SaveConfig(ctx context.Context, cfg timesheet.UserConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.saveConfig(ctx, s.db, cfg)
}

func (s *Store) saveConfig(ctx context.Context, db execer, cfg timesheet.UserConfig) error {
	weeklyJSON, _ := json.Marshal(cfg.WeeklyConfig)
	periods := make([]periodRow, 0, len(cfg.SchedulePeriods))
	for _, p := range cfg.SchedulePeriods {
		periods = append(periods, periodRow{ID: p.ID, Start: p.Start.String(), End: p.End.String(), Type: string(p.Type)})
	}
	periodsJSON, _ := json.Marshal(periods)
	holidaysJSON, _ := json.Marshal(cfg.Holidays)

	_, err := db.ExecContext(ctx, `
		INSERT INTO config
		(id, calendar_year, first_name, default_start, default_end,
		 weekly_json, periods_json, holidays_json,
		 total_vacation_days, used_vacation_days,
		 total_ap_hours, used_ap_hours, flexibility_hours, used_flex_hours, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			calendar_year = excluded.calendar_year,
			first_name = excluded.first_name,
			default_start = excluded.default_start,
			default_end = excluded.default_end,
			weekly_json = excluded.weekly_json,
			periods_json = excluded.periods_json,
			holidays_json = excluded.holidays_json,
			total_vacation_days = excluded.total_vacation_days,
			used_vacation_days = excluded.used_vacation_days,
			total_ap_hours = excluded.total_ap_hours,
			used_ap_hours = excluded.used_ap_hours,
			flexibility_hours = excluded.flexibility_hours,
			used_flex_hours = excluded.used_flex_hours,
			updated_at = excluded.updated_at
	`,
		cfg.CalendarYear, cfg.FirstName,
		cfg.DefaultStartTime.String(), cfg.DefaultEndTime.String(),
		string(weeklyJSON), string(periodsJSON), string(holidaysJSON),
		cfg.TotalVacationDays, cfg.UsedVacationDays,
		cfg.TotalAPHours.String(), cfg.UsedAPHours.String(),
		cfg.FlexibilityHours.String(), cfg.UsedFlexHours.String(),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// =============================================================================
// DAY RECORDS
// =============================================================================

const dayColumns = `date, shift1_start, shift1_end, shift2_start, shift2_end,
	day_type, status, request_status, hours, comment, notes`

// LoadDays returns every stored record.
func (s *Store) LoadDays(ctx context.Context) (timesheet.Days, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT `+dayColumns+` FROM day_records ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("failed to query days: %w", err)
	}
	defer rows.Close()

	days := make(timesheet.Days)
	for rows.Next() {
		rec, ok, err := s.scanDay(rows)
		if err != nil {
			return nil, err
		}
		if ok {
			days[rec.Key()] = rec
		}
	}
	return days, rows.Err()
}

// LoadDay returns the record stored for date.
func (s *Store) LoadDay(ctx context.Context, date generic.TimePoint) (timesheet.DayRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `SELECT `+dayColumns+` FROM day_records WHERE date = ?`, date.String())
	rec, ok, err := s.scanDay(row)
	if err == sql.ErrNoRows {
		return timesheet.DayRecord{}, false, nil
	}
	return rec, ok, err
}

type scanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanDay(row scanner) (timesheet.DayRecord, bool, error) {
	var (
		dateStr                        string
		s1Start, s1End, s2Start, s2End sql.NullString
		dayType, status, request       string
		hours, comment, notes          string
	)
	if err := row.Scan(&dateStr, &s1Start, &s1End, &s2Start, &s2End,
		&dayType, &status, &request, &hours, &comment, &notes); err != nil {
		if err == sql.ErrNoRows {
			return timesheet.DayRecord{}, false, err
		}
		return timesheet.DayRecord{}, false, fmt.Errorf("failed to scan day: %w", err)
	}

	date, err := generic.ParseDate(dateStr)
	if err != nil {
		s.log.WithField("date", dateStr).Warn("skipping day with malformed date")
		return timesheet.DayRecord{}, false, nil
	}
	log := s.log.WithField("date", dateStr)

	st := timesheet.DayStatus(status)
	if !st.IsValid() {
		log.WithField("status", status).Warn("unknown status, reading as laboral")
		st = timesheet.StatusLaboral
	}
	rs := timesheet.RequestStatus(request)
	if !rs.IsValid() {
		log.WithField("request_status", request).Warn("unknown request status, dropping")
		rs = timesheet.RequestNone
	}

	rec := timesheet.DayRecord{
		Date: date,
		Shift1: timesheet.Shift{
			Start: s.nullClock(s1Start, log),
			End:   s.nullClock(s1End, log),
		},
		Shift2: timesheet.Shift{
			Start: s.nullClock(s2Start, log),
			End:   s.nullClock(s2End, log),
		},
		DayType: timesheet.DayType(dayType),
		Kind:    timesheet.KindFor(st, rs, s.decimalOr(hours, "hours"), comment),
		Notes:   notes,
	}
	return rec.Normalize(), true, nil
}

// SaveDay upserts the record for its date.
func (s *Store) SaveDay(ctx context.Context, rec timesheet.DayRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.saveDay(ctx, s.db, rec)
}

func (s *Store) saveDay(ctx context.Context, db execer, rec timesheet.DayRecord) error {
	rec = rec.Normalize()
	var comment string
	if k, ok := rec.Kind.(timesheet.OtherLeave); ok {
		comment = k.Comment
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO day_records (`+dayColumns+`, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			shift1_start = excluded.shift1_start,
			shift1_end = excluded.shift1_end,
			shift2_start = excluded.shift2_start,
			shift2_end = excluded.shift2_end,
			day_type = excluded.day_type,
			status = excluded.status,
			request_status = excluded.request_status,
			hours = excluded.hours,
			comment = excluded.comment,
			notes = excluded.notes,
			updated_at = excluded.updated_at
	`,
		rec.Key(),
		clockValue(rec.Shift1.Start), clockValue(rec.Shift1.End),
		clockValue(rec.Shift2.Start), clockValue(rec.Shift2.End),
		string(rec.DayType), string(rec.Status()), string(rec.Request()),
		rec.Kind.ExtraHours().String(), comment, rec.Notes,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save day %s: %w", rec.Key(), err)
	}
	return nil
}

// DeleteDay removes the record for date, if any.
func (s *Store) DeleteDay(ctx context.Context, date generic.TimePoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM day_records WHERE date = ?`, date.String()); err != nil {
		return fmt.Errorf("failed to delete day %s: %w", date, err)
	}
	return nil
}

// Replace writes cfg and swaps the whole day table in one transaction. On
// any failure neither the config nor the days change.
func (s *Store) Replace(ctx context.Context, cfg timesheet.UserConfig, days timesheet.Days) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.saveConfig(ctx, tx, cfg); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM day_records`); err != nil {
		return fmt.Errorf("failed to clear days: %w", err)
	}
	for _, rec := range days {
		if err := s.saveDay(ctx, tx, rec); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Reset drops the config row and every day record.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{`DELETE FROM day_records`, `DELETE FROM config`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to reset: %w", err)
		}
	}
	return tx.Commit()
}

// =============================================================================
// HELPERS
// =============================================================================

func clockValue(c *timesheet.Clock) any {
	if c == nil {
		return nil
	}
	return c.String()
}

func (s *Store) nullClock(v sql.NullString, log logrus.FieldLogger) *timesheet.Clock {
	if !v.Valid || v.String == "" {
		return nil
	}
	c, err := timesheet.ParseClock(v.String)
	if err != nil {
		log.WithField("value", v.String).Warn("malformed clock, reading as missing")
		return nil
	}
	return &c
}

func (s *Store) clockOr(v string, fallback timesheet.Clock, field string) timesheet.Clock {
	c, err := timesheet.ParseClock(v)
	if err != nil {
		s.log.WithField("field", field).Warn("malformed clock, using default")
		return fallback
	}
	return c
}

func (s *Store) decimalOr(v, field string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		s.log.WithFields(logrus.Fields{"field": field, "value": v}).Warn("malformed decimal, reading as 0")
		return decimal.Zero
	}
	return d
}
