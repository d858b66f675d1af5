package generic_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/work-ledger/generic"
)

func TestParseDate_CanonicalKey(t *testing.T) {
	d, err := generic.ParseDate("2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", d.String())
	assert.Equal(t, time.Monday, d.Weekday())
}

func TestParseDate_RejectsMalformed(t *testing.T) {
	for _, s := range []string{"", "2026-3-2", "02/03/2026", "2026-02-30", "tomorrow"} {
		_, err := generic.ParseDate(s)
		assert.ErrorIs(t, err, generic.ErrInvalidDate, "input %q", s)
		assert.True(t, generic.IsClientError(err))
	}
}

func TestStartOfWeek_AlignsToMonday(t *testing.T) {
	// GIVEN: Dates across one Monday-Sunday week
	// THEN: All align to the same Monday
	for _, s := range []string{"2026-03-02", "2026-03-05", "2026-03-08"} {
		assert.Equal(t, "2026-03-02", generic.MustParseDate(s).StartOfWeek().String(), s)
	}
	assert.Equal(t, 10, generic.MustParseDate("2026-03-04").ISOWeek())
}

func TestEasterSunday(t *testing.T) {
	assert.Equal(t, "2025-04-20", generic.EasterSunday(2025).String())
	assert.Equal(t, "2026-04-05", generic.EasterSunday(2026).String())
	assert.Equal(t, "2027-03-28", generic.EasterSunday(2027).String())
}

func TestDateSet_SortedDeduplicates(t *testing.T) {
	set := generic.NewDateSet([]string{"2026-12-25", "2026-01-01", "2026-12-25"})
	assert.Equal(t, []string{"2026-01-01", "2026-12-25"}, set.Sorted())
	assert.True(t, set.IsHoliday(generic.MustParseDate("2026-12-25")))
	assert.False(t, generic.MustParseDate("2026-12-25").IsWorkdayWithHolidays(set))
}

func TestClamp(t *testing.T) {
	lo, hi := generic.Hours(0), generic.Hours(25)
	assert.True(t, generic.Clamp(generic.Hours(26), lo, hi).Equal(hi))
	assert.True(t, generic.Clamp(generic.Hours(-1), lo, hi).Equal(lo))
	assert.True(t, generic.Clamp(generic.Hours(3.5), lo, hi).Equal(generic.Hours(3.5)))
	assert.Equal(t, 0, generic.ClampInt(-1, 0, 25))
	assert.Equal(t, 25, generic.ClampInt(26, 0, 25))
}

func TestQuotaError_WrapsSentinel(t *testing.T) {
	err := &generic.QuotaError{
		Pool:      "ap",
		Available: generic.NewAmountFromDecimal(generic.Hours(2), generic.UnitHours),
		Requested: generic.NewAmountFromDecimal(generic.Hours(3.5), generic.UnitHours),
	}
	assert.ErrorIs(t, err, generic.ErrQuotaExceeded)
	assert.True(t, err.Shortfall().Equal(generic.Hours(1.5)))
	assert.Contains(t, err.Error(), "ap")
}
