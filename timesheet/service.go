/*
service.go - Ledger operations over a Store

PURPOSE:
  Service is what hosts (the HTTP API, the CLI) call. It loads the state,
  runs the guardrails and the pure engine, and persists the outcome.

PERSISTENCE RULES:
  - The edited day is stored by date, or deleted when it reduces to the
    empty laboral default.
  - The config is stored only if the engine changed it.
  - Both writes are attempted independently. A failure is logged and joined
    into the returned error; the other write is not rolled back.

CONCURRENCY:
  A mutex serialises read-reconcile-write sequences so two edits of the same
  ledger never reconcile against the same stale config.

SEE ALSO:
  - reconcile.go: The pure engine
  - guard.go: Quota checks run before reconciling
*/
package timesheet

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/warp/work-ledger/generic"
)

type Service struct {
	store       Store
	log         logrus.FieldLogger
	defaultYear int
	mu          sync.Mutex
}

// NewService builds a Service. defaultYear anchors the first-run config;
// a nil logger falls back to the logrus standard logger.
func NewService(store Store, log logrus.FieldLogger, defaultYear int) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if defaultYear <= 0 {
		defaultYear = DefaultCalendarYear
	}
	return &Service{store: store, log: log, defaultYear: defaultYear}
}

// EditResult is the outcome of one day edit.
type EditResult struct {
	Record  DayRecord
	Deleted bool
	Config  UserConfig
	Changes PoolChanges
	Week    WeeklySummary
}

// =============================================================================
// READS
// =============================================================================

// Config returns the stored config, or the default one on first run.
func (s *Service) Config(ctx context.Context) (UserConfig, error) {
	cfg, found, err := s.store.LoadConfig(ctx)
	if err != nil {
		return UserConfig{}, fmt.Errorf("load config: %w", err)
	}
	if !found {
		return DefaultConfig(s.defaultYear), nil
	}
	return cfg.Sanitize(), nil
}

// Days returns every stored record, day types filled from the weekly pattern
// where missing.
func (s *Service) Days(ctx context.Context) (Days, error) {
	cfg, err := s.Config(ctx)
	if err != nil {
		return nil, err
	}
	return s.days(ctx, cfg)
}

func (s *Service) days(ctx context.Context, cfg UserConfig) (Days, error) {
	days, err := s.store.LoadDays(ctx)
	if err != nil {
		return nil, fmt.Errorf("load days: %w", err)
	}
	for k, rec := range days {
		if !rec.DayType.IsValid() {
			rec.DayType = DayTypeForDate(rec.Date, cfg)
		}
		days[k] = rec.Normalize()
	}
	return days, nil
}

// Day returns the stored record for date, or the draft offered for a date
// that has none. found reports which.
func (s *Service) Day(ctx context.Context, date generic.TimePoint) (DayRecord, bool, error) {
	cfg, err := s.Config(ctx)
	if err != nil {
		return DayRecord{}, false, err
	}
	rec, found, err := s.store.LoadDay(ctx, date)
	if err != nil {
		return DayRecord{}, false, fmt.Errorf("load day %s: %w", date, err)
	}
	if !found {
		return DraftDayRecord(date, cfg), false, nil
	}
	if !rec.DayType.IsValid() {
		rec.DayType = DayTypeForDate(date, cfg)
	}
	return rec.Normalize(), true, nil
}

// Range returns the stored records within period, ordered by date.
func (s *Service) Range(ctx context.Context, period generic.Period) ([]DayRecord, error) {
	days, err := s.Days(ctx)
	if err != nil {
		return nil, err
	}
	var out []DayRecord
	for _, rec := range days {
		if period.Contains(rec.Date) {
			out = append(out, rec)
		}
	}
	slices.SortFunc(out, func(a, b DayRecord) int { return a.Date.Time.Compare(b.Date.Time) })
	return out, nil
}

// Week summarises the Monday-Sunday week containing date.
func (s *Service) Week(ctx context.Context, date generic.TimePoint) (WeeklySummary, error) {
	cfg, err := s.Config(ctx)
	if err != nil {
		return WeeklySummary{}, err
	}
	days, err := s.days(ctx, cfg)
	if err != nil {
		return WeeklySummary{}, err
	}
	return WeeklySummaryFor(date, days, cfg), nil
}

// Year summarises every week of the configured calendar year.
func (s *Service) Year(ctx context.Context) ([]WeeklySummary, error) {
	cfg, err := s.Config(ctx)
	if err != nil {
		return nil, err
	}
	days, err := s.days(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return YearSummaries(days, cfg), nil
}

func (s *Service) Status(ctx context.Context) (Status, error) {
	cfg, err := s.Config(ctx)
	if err != nil {
		return Status{}, err
	}
	days, err := s.days(ctx, cfg)
	if err != nil {
		return Status{}, err
	}
	return StatusFor(cfg, days), nil
}

// Snapshot returns the config and every record, for export.
func (s *Service) Snapshot(ctx context.Context) (UserConfig, Days, error) {
	cfg, err := s.Config(ctx)
	if err != nil {
		return UserConfig{}, nil, err
	}
	days, err := s.days(ctx, cfg)
	if err != nil {
		return UserConfig{}, nil, err
	}
	return cfg, days, nil
}

// =============================================================================
// DAY EDITS
// =============================================================================

// ApplyEdit replaces the record at next.Date. Vacation and AP requests over
// the remaining pool are refused with a *generic.QuotaError and nothing is
// written; FX hours are capped to the available credit.
func (s *Service) ApplyEdit(ctx context.Context, next DayRecord) (EditResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(ctx, next, true)
}

// ResetDay returns date to the empty laboral default, releasing whatever its
// record held.
func (s *Service) ResetDay(ctx context.Context, date generic.TimePoint) (EditResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.Config(ctx)
	if err != nil {
		return EditResult{}, err
	}
	return s.apply(ctx, NewDayRecord(date, cfg), false)
}

func (s *Service) apply(ctx context.Context, next DayRecord, guard bool) (EditResult, error) {
	cfg, err := s.Config(ctx)
	if err != nil {
		return EditResult{}, err
	}
	days, err := s.days(ctx, cfg)
	if err != nil {
		return EditResult{}, err
	}

	if !next.DayType.IsValid() {
		next.DayType = DayTypeForDate(next.Date, cfg)
	}
	next = next.Normalize()

	var prev *DayRecord
	if rec, ok := days[next.Key()]; ok {
		prev = &rec
	}

	if guard {
		if next, err = CheckEdit(cfg, days, prev, next); err != nil {
			s.log.WithFields(logrus.Fields{
				"date":   next.Key(),
				"status": next.Status(),
			}).WithError(err).Info("edit refused")
			return EditResult{}, err
		}
	}

	newCfg := Reconcile(cfg, days, prev, next)

	after := days.Clone()
	after[next.Key()] = next
	result := EditResult{
		Record:  next,
		Deleted: next.IsEmptyFor(cfg),
		Config:  newCfg,
		Changes: ChangesBetween(cfg, newCfg),
		Week:    WeeklySummaryFor(next.Date, after, newCfg),
	}

	var errs []error
	if result.Deleted {
		if err := s.store.DeleteDay(ctx, next.Date); err != nil {
			s.log.WithField("date", next.Key()).WithError(err).Error("delete day failed")
			errs = append(errs, fmt.Errorf("delete day %s: %w", next.Key(), err))
		}
	} else {
		if err := s.store.SaveDay(ctx, next); err != nil {
			s.log.WithField("date", next.Key()).WithError(err).Error("save day failed")
			errs = append(errs, fmt.Errorf("save day %s: %w", next.Key(), err))
		}
	}
	if !newCfg.Equal(cfg) {
		if err := s.store.SaveConfig(ctx, newCfg); err != nil {
			s.log.WithField("date", next.Key()).WithError(err).Error("save config failed")
			errs = append(errs, fmt.Errorf("save config: %w", err))
		}
	}

	s.log.WithFields(logrus.Fields{
		"date":          next.Key(),
		"status":        next.Status(),
		"deleted":       result.Deleted,
		"vacation_days": result.Changes.VacationDays,
		"ap_hours":      result.Changes.APHours.String(),
		"flex_used":     result.Changes.UsedFlexHours.String(),
		"flex_credit":   result.Changes.FlexibilityHours.String(),
	}).Debug("day reconciled")

	return result, errors.Join(errs...)
}

// =============================================================================
// CONFIG EDITS - none of these re-run the engine over stored days
// =============================================================================

// UpdateConfig stores cfg after sanitising it.
func (s *Service) UpdateConfig(ctx context.Context, cfg UserConfig) (UserConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg = cfg.Sanitize()
	if err := s.store.SaveConfig(ctx, cfg); err != nil {
		return UserConfig{}, fmt.Errorf("save config: %w", err)
	}
	s.log.WithField("year", cfg.CalendarYear).Info("config updated")
	return cfg, nil
}

// ToggleHoliday flips date in the holiday list.
func (s *Service) ToggleHoliday(ctx context.Context, date generic.TimePoint) (UserConfig, error) {
	return s.updateConfig(ctx, func(c UserConfig) (UserConfig, error) {
		return c.ToggleHoliday(date), nil
	})
}

// SetFlexibility overrides the flex credit.
func (s *Service) SetFlexibility(ctx context.Context, hours decimal.Decimal) (UserConfig, error) {
	return s.updateConfig(ctx, func(c UserConfig) (UserConfig, error) {
		return c.SetFlexibility(hours), nil
	})
}

// AddSchedulePeriod appends a period to the config.
func (s *Service) AddSchedulePeriod(ctx context.Context, start, end generic.TimePoint, st ScheduleType) (SchedulePeriod, error) {
	var added SchedulePeriod
	_, err := s.updateConfig(ctx, func(c UserConfig) (UserConfig, error) {
		out, p, err := c.AddSchedulePeriod(start, end, st)
		added = p
		return out, err
	})
	return added, err
}

// RemoveSchedulePeriod drops a period by ID. Returns generic.ErrNotFound if
// no period has that ID.
func (s *Service) RemoveSchedulePeriod(ctx context.Context, id string) error {
	_, err := s.updateConfig(ctx, func(c UserConfig) (UserConfig, error) {
		out, ok := c.RemoveSchedulePeriod(id)
		if !ok {
			return c, fmt.Errorf("schedule period %q: %w", id, generic.ErrNotFound)
		}
		return out, nil
	})
	return err
}

func (s *Service) updateConfig(ctx context.Context, fn func(UserConfig) (UserConfig, error)) (UserConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.Config(ctx)
	if err != nil {
		return UserConfig{}, err
	}
	out, err := fn(cfg)
	if err != nil {
		return UserConfig{}, err
	}
	if out.Equal(cfg) {
		return out, nil
	}
	if err := s.store.SaveConfig(ctx, out); err != nil {
		return UserConfig{}, fmt.Errorf("save config: %w", err)
	}
	return out, nil
}

// =============================================================================
// BULK
// =============================================================================

// Replace overwrites the whole ledger, as an import does. Empty records are
// dropped. The store writes config and days together, so a failure leaves the
// previous ledger in place.
func (s *Service) Replace(ctx context.Context, cfg UserConfig, days Days) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg = cfg.Sanitize()
	kept := make(Days, len(days))
	for _, rec := range days {
		rec = rec.Normalize()
		if !rec.IsEmptyFor(cfg) {
			kept[rec.Key()] = rec
		}
	}

	if err := s.store.Replace(ctx, cfg, kept); err != nil {
		return fmt.Errorf("replace ledger: %w", err)
	}
	s.log.WithFields(logrus.Fields{
		"year": cfg.CalendarYear,
		"days": len(kept),
	}).Info("ledger replaced")
	return nil
}

// Reset erases the config and every record.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Reset(ctx); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	s.log.Warn("ledger reset")
	return nil
}
