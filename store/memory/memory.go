// Package memory provides an in-process timesheet.Store.
package memory

import (
	"context"
	"sync"

	"github.com/warp/work-ledger/generic"
	"github.com/warp/work-ledger/timesheet"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Store struct {
	mu     sync.RWMutex
	config *timesheet.UserConfig
	days   timesheet.Days
}

func New() *Store {
	return &Store{days: make(timesheet.Days)}
}

func (s *Store) LoadConfig(_ context.Context) (timesheet.UserConfig, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.config == nil {
		return timesheet.UserConfig{}, false, nil
	}
	return s.config.Clone(), true, nil
}

func (s *Store) SaveConfig(_ context.Context, cfg timesheet.UserConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := cfg.Clone()
	s.config = &c
	return nil
}

func (s *Store) LoadDays(_ context.Context) (timesheet.Days, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.days.Clone(), nil
}

func (s *Store) LoadDay(_ context.Context, date generic.TimePoint) (timesheet.DayRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.days[date.String()]
	return rec, ok, nil
}

func (s *Store) SaveDay(_ context.Context, rec timesheet.DayRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.days[rec.Key()] = rec
	return nil
}

func (s *Store) DeleteDay(_ context.Context, date generic.TimePoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.days, date.String())
	return nil
}

func (s *Store) Replace(_ context.Context, cfg timesheet.UserConfig, days timesheet.Days) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := cfg.Clone()
	s.config = &c
	s.days = days.Clone()
	return nil
}

func (s *Store) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = nil
	s.days = make(timesheet.Days)
	return nil
}
