/*
errors.go - Centralized error types

PURPOSE:
  All error types in one place for consistency and discoverability.
  Domain packages wrap these errors with additional context.

ERROR CATEGORIES:
  1. Parse errors - Malformed dates, clock times, periods
  2. Document errors - Import documents rejected by validation
  3. Quota errors - Edit guardrails (requests beyond what is left)
  4. Store errors - Missing records

The balance engine itself never returns errors: pool arithmetic saturates.
These errors belong to the boundaries around it.

USAGE:
  if errors.Is(err, generic.ErrQuotaExceeded) {
      var q *generic.QuotaError
      errors.As(err, &q)
  }
*/
package generic

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidDate is returned when a date key is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidClock is returned when a clock time is not HH:MM.
	ErrInvalidClock = errors.New("invalid clock time")

	// ErrInvalidPeriod is returned when a period is malformed (end before start).
	ErrInvalidPeriod = errors.New("invalid period: end before start")

	// ErrInvalidDocument is returned when an import document fails validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrDocumentTooLarge is returned when an import exceeds the size limit.
	ErrDocumentTooLarge = errors.New("document too large")

	// ErrQuotaExceeded is returned by edit guardrails when a request asks for
	// more than the pool has left.
	ErrQuotaExceeded = errors.New("quota exceeded")

	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// QuotaError provides details about a pool shortage.
type QuotaError struct {
	Pool      string
	Available Amount
	Requested Amount
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("quota exceeded for %s: available %v %s, requested %v %s",
		e.Pool, e.Available.Value, e.Available.Unit, e.Requested.Value, e.Requested.Unit)
}

func (e *QuotaError) Unwrap() error {
	return ErrQuotaExceeded
}

// Shortfall returns how much the request exceeds what is available.
func (e *QuotaError) Shortfall() decimal.Decimal {
	return NonNegative(e.Requested.Value.Sub(e.Available.Value))
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidClock) ||
		errors.Is(err, ErrInvalidPeriod) ||
		errors.Is(err, ErrInvalidDocument) ||
		errors.Is(err, ErrDocumentTooLarge) ||
		errors.Is(err, ErrQuotaExceeded)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
