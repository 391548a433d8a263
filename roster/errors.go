/*
errors.go - Centralized error types for the reconciliation engine

PURPOSE:
  All engine error values in one place. The API layer maps these onto
  HTTP statuses and {success, message} envelopes; store implementations
  wrap their own failures around them so every surfaced error still
  carries the underlying storage message.

ERROR CATEGORIES:
  1. Validation errors - Bad operator input, rejected before any mutation
  2. Not-found errors  - Pre-flight lookups that came back empty
  3. Conflict errors   - A day already resolved by an earlier call
  4. Store errors      - Persistence failures, wrapped with context

SEE ALSO:
  - validate.go: Produces the validation errors
  - assign.go: Produces the conflict and not-found errors
*/
package roster

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrLeaveNotFound is returned when a referenced leave request doesn't exist.
	ErrLeaveNotFound = errors.New("leave not found")

	// ErrLeaveDayNotFound is returned when a referenced leave day doesn't exist.
	ErrLeaveDayNotFound = errors.New("leave day not found")

	// ErrPersonnelNotFound is returned when a referenced personnel doesn't exist.
	ErrPersonnelNotFound = errors.New("personnel not found")

	// ErrJokerNotFound is returned when a referenced joker doesn't exist.
	ErrJokerNotFound = errors.New("joker personnel not found")

	// ErrInvalidPeriod is returned when a period is malformed (end before start,
	// or a bound missing).
	ErrInvalidPeriod = errors.New("invalid period: end before start")

	// ErrPeriodOutOfBounds is returned when a replacement period leaves the
	// parent leave's date range.
	ErrPeriodOutOfBounds = errors.New("period outside leave range")

	// ErrPeriodOverlap is returned when a replacement period intersects another
	// period staged in the same session.
	ErrPeriodOverlap = errors.New("period overlaps another replacement period")

	// ErrMissingReplacement is returned when a replacement payload names
	// neither a personnel nor a joker.
	ErrMissingReplacement = errors.New("replacement target missing")

	// ErrDayAlreadyResolved is returned when a replacement call touches a
	// leave day that an earlier call already resolved. Re-resolving requires
	// deleting and recreating the parent leave.
	ErrDayAlreadyResolved = errors.New("leave day already resolved")

	// ErrDuplicateLeaveDay is returned by stores when a second expansion of
	// the same leave tries to insert a (leave, date) row that already exists.
	ErrDuplicateLeaveDay = errors.New("duplicate leave day")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// PeriodOverlapError reports which staged period the proposal collides with.
type PeriodOverlapError struct {
	Proposed DateRange
	Existing DateRange
}

func (e *PeriodOverlapError) Error() string {
	return fmt.Sprintf("period %s overlaps existing period %s", e.Proposed, e.Existing)
}

func (e *PeriodOverlapError) Unwrap() error { return ErrPeriodOverlap }

// DayResolvedError reports which dates of a requested sub-range were already
// resolved by an earlier replacement call.
type DayResolvedError struct {
	LeaveID LeaveID
	Dates   []Date
}

func (e *DayResolvedError) Error() string {
	if len(e.Dates) == 1 {
		return fmt.Sprintf("leave day %s already resolved", e.Dates[0])
	}
	return fmt.Sprintf("%d leave days already resolved (first: %s)", len(e.Dates), e.Dates[0])
}

func (e *DayResolvedError) Unwrap() error { return ErrDayAlreadyResolved }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsValidation returns true if the error is due to invalid operator input.
// Validation failures happen before any store mutation.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidPeriod) ||
		errors.Is(err, ErrPeriodOutOfBounds) ||
		errors.Is(err, ErrPeriodOverlap) ||
		errors.Is(err, ErrMissingReplacement)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrLeaveNotFound) ||
		errors.Is(err, ErrLeaveDayNotFound) ||
		errors.Is(err, ErrPersonnelNotFound) ||
		errors.Is(err, ErrJokerNotFound)
}

// IsConflict returns true if the error indicates a collision with state
// written by an earlier call.
func IsConflict(err error) bool {
	return errors.Is(err, ErrDayAlreadyResolved) ||
		errors.Is(err, ErrDuplicateLeaveDay)
}
