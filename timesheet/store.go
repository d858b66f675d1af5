package timesheet

import (
	"context"

	"github.com/warp/work-ledger/generic"
)

// =============================================================================
// STORE - persistence of the config and the sparse day map
// =============================================================================

// Store persists one user's ledger: a single UserConfig and the day records.
// Only non-empty days are stored; a day reduced to the default laboral record
// is deleted instead.
//
// Implementations:
//   - store/memory: in-process, for tests and ephemeral runs
//   - store/sqlite: on-disk
type Store interface {
	// LoadConfig returns the stored config. found is false on first run.
	LoadConfig(ctx context.Context) (cfg UserConfig, found bool, err error)
	SaveConfig(ctx context.Context, cfg UserConfig) error

	// LoadDays returns every stored record keyed by date.
	LoadDays(ctx context.Context) (Days, error)
	// LoadDay returns the record for date. found is false if none is stored.
	LoadDay(ctx context.Context, date generic.TimePoint) (rec DayRecord, found bool, err error)
	SaveDay(ctx context.Context, rec DayRecord) error
	// DeleteDay is a no-op when nothing is stored for date.
	DeleteDay(ctx context.Context, date generic.TimePoint) error
	// Replace stores cfg and swaps every record for days in one step: either
	// both land or neither does.
	Replace(ctx context.Context, cfg UserConfig, days Days) error

	// Reset removes the config and all records.
	Reset(ctx context.Context) error
}
