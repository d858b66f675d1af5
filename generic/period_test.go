package generic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/work-ledger/generic"
)

func TestNewPeriod_RejectsInverted(t *testing.T) {
	_, err := generic.NewPeriod(generic.MustParseDate("2026-02-01"), generic.MustParseDate("2026-01-31"))
	assert.ErrorIs(t, err, generic.ErrInvalidPeriod)

	p, err := generic.NewPeriod(generic.MustParseDate("2026-02-01"), generic.MustParseDate("2026-02-01"))
	require.NoError(t, err)
	assert.Equal(t, 1, p.Len())
}

func TestPeriod_ContainsIsInclusive(t *testing.T) {
	p := generic.Period{Start: generic.MustParseDate("2026-06-01"), End: generic.MustParseDate("2026-09-30")}
	assert.True(t, p.Contains(generic.MustParseDate("2026-06-01")))
	assert.True(t, p.Contains(generic.MustParseDate("2026-09-30")))
	assert.False(t, p.Contains(generic.MustParseDate("2026-05-31")))
	assert.False(t, p.Contains(generic.MustParseDate("2026-10-01")))
}

func TestPeriod_Overlaps(t *testing.T) {
	a := generic.Period{Start: generic.MustParseDate("2026-01-01"), End: generic.MustParseDate("2026-01-10")}
	b := generic.Period{Start: generic.MustParseDate("2026-01-10"), End: generic.MustParseDate("2026-01-20")}
	c := generic.Period{Start: generic.MustParseDate("2026-01-11"), End: generic.MustParseDate("2026-01-20")}
	assert.True(t, a.Overlaps(b), "shared boundary day overlaps")
	assert.False(t, a.Overlaps(c))
}

func TestYearPeriod_LeapYear(t *testing.T) {
	assert.Equal(t, 365, generic.YearPeriod(2026).Len())
	assert.Equal(t, 366, generic.YearPeriod(2028).Len())
}

func TestWeekOf(t *testing.T) {
	w := generic.WeekOf(generic.MustParseDate("2026-01-01"))
	assert.Equal(t, "2025-12-29", w.Start.String())
	assert.Equal(t, "2026-01-04", w.End.String())
	assert.Len(t, w.Days(), 7)
}
