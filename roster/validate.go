/*
validate.go - Conflict/Range Validator

PURPOSE:
  Pure, side-effect-free checks run before a replacement period is
  accepted from the operator. Nothing here touches a store; a rejected
  period never causes a mutation.

RULES:
  - start <= end (a period with a cleared end is not yet submittable)
  - the period lies entirely inside the parent leave's [start, end]
  - the period intersects no other period staged in the same session,
    using the inclusive-bounds test a.start <= b.end AND a.end >= b.start

ORDERING POLICY:
  Staged periods are otherwise unordered. The first period is not
  privileged beyond a UX default (its lower bound defaults to the leave
  start); any in-range start is accepted.

SEE ALSO:
  - assign.go: Re-checks committed state (cross-session overlap) before
    writing; this file only validates periods staged together
*/
package roster

import "fmt"

// ValidateReplacementPeriod checks one proposed period against the parent
// leave bounds and the other periods staged in the same session. A nil
// return means the period is acceptable.
func ValidateReplacementPeriod(period DateRange, others []DateRange, leaveBounds DateRange) error {
	if period.Start.IsZero() || period.End.IsZero() {
		return fmt.Errorf("period %s: %w", period, ErrInvalidPeriod)
	}
	if period.End.Before(period.Start) {
		return fmt.Errorf("period %s: %w", period, ErrInvalidPeriod)
	}
	if !leaveBounds.ContainsRange(period) {
		return fmt.Errorf("period %s not within leave %s: %w", period, leaveBounds, ErrPeriodOutOfBounds)
	}
	for _, other := range others {
		if period.Overlaps(other) {
			return &PeriodOverlapError{Proposed: period, Existing: other}
		}
	}
	return nil
}

// ValidateReplacementPeriods checks a whole staged set pairwise. Each
// period is validated against the bounds and against the periods before
// it, so the first offending period is the one reported.
func ValidateReplacementPeriods(periods []DateRange, leaveBounds DateRange) error {
	for i, period := range periods {
		if err := ValidateReplacementPeriod(period, periods[:i], leaveBounds); err != nil {
			return err
		}
	}
	return nil
}

// AdjustPeriodEnd applies the start-edit rule: when the operator moves a
// period's start past its current end, the end is cleared (to be re-chosen)
// rather than auto-corrected.
func AdjustPeriodEnd(period DateRange, newStart Date) DateRange {
	period.Start = newStart
	if !period.End.IsZero() && period.End.Before(newStart) {
		period.End = Date{}
	}
	return period
}
