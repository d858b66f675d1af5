package timesheet

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var sixty = decimal.NewFromInt(60)

// totalMinutes rounds |hours| to whole minutes.
func totalMinutes(hours decimal.Decimal) int64 {
	return hours.Abs().Mul(sixty).Round(0).IntPart()
}

// FormatHoursMinutes renders |hours| as "7h 30min".
func FormatHoursMinutes(hours decimal.Decimal) string {
	m := totalMinutes(hours)
	return fmt.Sprintf("%dh %dmin", m/60, m%60)
}

// FormatSignedHours renders a balance as "+7h 30min" or "-0h 15min".
func FormatSignedHours(hours decimal.Decimal) string {
	sign := "+"
	if hours.IsNegative() {
		sign = "-"
	}
	return sign + FormatHoursMinutes(hours)
}

// FormatClockHours renders hours as a wall-clock style "07:30".
func FormatClockHours(hours decimal.Decimal) string {
	m := totalMinutes(hours)
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// NormalizeHoursDifference rounds to the minute and snaps anything under a
// minute to zero, so -0.0001h is shown as an exact balance.
func NormalizeHoursDifference(hours decimal.Decimal) decimal.Decimal {
	minutes := hours.Mul(sixty).Round(0)
	if minutes.IsZero() {
		return decimal.Zero
	}
	return minutes.Div(sixty)
}
