package roster_test

import (
	"errors"
	"testing"
	"time"

	"github.com/warp/roster-engine/roster"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func date(y int, m time.Month, d int) roster.Date { return roster.NewDate(y, m, d) }

func span(start, end roster.Date) roster.DateRange {
	return roster.DateRange{Start: start, End: end}
}

// =============================================================================
// RANGE AND BOUNDS TESTS
// =============================================================================

func TestValidate_PeriodInsideLeave_Accepted(t *testing.T) {
	// GIVEN: Leave [2024-01-01, 2024-01-31]
	// WHEN: Proposing [2024-01-10, 2024-01-15] with no other periods
	// THEN: Accepted

	leave := span(date(2024, time.January, 1), date(2024, time.January, 31))
	period := span(date(2024, time.January, 10), date(2024, time.January, 15))

	if err := roster.ValidateReplacementPeriod(period, nil, leave); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_StartBeforeLeaveStart_Rejected(t *testing.T) {
	// GIVEN: Leave [2024-02-01, 2024-02-10]
	// WHEN: Proposing [2024-01-30, 2024-02-05]
	// THEN: Rejected as out of bounds

	leave := span(date(2024, time.February, 1), date(2024, time.February, 10))
	period := span(date(2024, time.January, 30), date(2024, time.February, 5))

	err := roster.ValidateReplacementPeriod(period, nil, leave)
	if !errors.Is(err, roster.ErrPeriodOutOfBounds) {
		t.Fatalf("expected ErrPeriodOutOfBounds, got %v", err)
	}
}

func TestValidate_EndAfterLeaveEnd_Rejected(t *testing.T) {
	leave := span(date(2024, time.February, 1), date(2024, time.February, 10))
	period := span(date(2024, time.February, 8), date(2024, time.February, 12))

	err := roster.ValidateReplacementPeriod(period, nil, leave)
	if !errors.Is(err, roster.ErrPeriodOutOfBounds) {
		t.Fatalf("expected ErrPeriodOutOfBounds, got %v", err)
	}
}

func TestValidate_EndBeforeStart_Rejected(t *testing.T) {
	leave := span(date(2024, time.January, 1), date(2024, time.January, 31))
	period := span(date(2024, time.January, 15), date(2024, time.January, 10))

	err := roster.ValidateReplacementPeriod(period, nil, leave)
	if !errors.Is(err, roster.ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
}

func TestValidate_MissingEnd_Rejected(t *testing.T) {
	// A period whose end was cleared by a start edit is not yet submittable.
	leave := span(date(2024, time.January, 1), date(2024, time.January, 31))
	period := roster.DateRange{Start: date(2024, time.January, 15)}

	err := roster.ValidateReplacementPeriod(period, nil, leave)
	if !errors.Is(err, roster.ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
}

// =============================================================================
// OVERLAP TESTS
// =============================================================================

func TestValidate_OverlappingPeriods_Rejected(t *testing.T) {
	// GIVEN: P1 = [2024-01-10, 2024-01-15] already staged
	// WHEN: Proposing P2 = [2024-01-14, 2024-01-20]
	// THEN: Rejected with an overlap reason naming P1

	leave := span(date(2024, time.January, 1), date(2024, time.January, 31))
	p1 := span(date(2024, time.January, 10), date(2024, time.January, 15))
	p2 := span(date(2024, time.January, 14), date(2024, time.January, 20))

	err := roster.ValidateReplacementPeriod(p2, []roster.DateRange{p1}, leave)
	if !errors.Is(err, roster.ErrPeriodOverlap) {
		t.Fatalf("expected ErrPeriodOverlap, got %v", err)
	}

	var overlap *roster.PeriodOverlapError
	if !errors.As(err, &overlap) {
		t.Fatalf("expected *PeriodOverlapError, got %T", err)
	}
	if !overlap.Existing.Start.Equal(p1.Start) {
		t.Errorf("overlap should name P1, got %s", overlap.Existing)
	}
}

func TestValidate_AdjacentPeriods_Accepted(t *testing.T) {
	// GIVEN: P1 = [2024-01-10, 2024-01-15] already staged
	// WHEN: Proposing P2 = [2024-01-16, 2024-01-20] (touching, not overlapping)
	// THEN: Accepted

	leave := span(date(2024, time.January, 1), date(2024, time.January, 31))
	p1 := span(date(2024, time.January, 10), date(2024, time.January, 15))
	p2 := span(date(2024, time.January, 16), date(2024, time.January, 20))

	if err := roster.ValidateReplacementPeriod(p2, []roster.DateRange{p1}, leave); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_SharedBoundary_Rejected(t *testing.T) {
	// Inclusive bounds: sharing a single day counts as overlap.
	leave := span(date(2024, time.January, 1), date(2024, time.January, 31))
	p1 := span(date(2024, time.January, 10), date(2024, time.January, 15))
	p2 := span(date(2024, time.January, 15), date(2024, time.January, 20))

	err := roster.ValidateReplacementPeriod(p2, []roster.DateRange{p1}, leave)
	if !errors.Is(err, roster.ErrPeriodOverlap) {
		t.Fatalf("expected ErrPeriodOverlap, got %v", err)
	}
}

func TestValidate_PeriodSet_FirstOffenderReported(t *testing.T) {
	leave := span(date(2024, time.March, 1), date(2024, time.March, 31))
	periods := []roster.DateRange{
		span(date(2024, time.March, 1), date(2024, time.March, 5)),
		span(date(2024, time.March, 6), date(2024, time.March, 10)),
		span(date(2024, time.March, 9), date(2024, time.March, 12)), // overlaps the second
	}

	err := roster.ValidateReplacementPeriods(periods, leave)
	if !errors.Is(err, roster.ErrPeriodOverlap) {
		t.Fatalf("expected ErrPeriodOverlap, got %v", err)
	}
}

// =============================================================================
// START-EDIT RULE
// =============================================================================

func TestAdjustPeriodEnd_StartMovedPastEnd_EndCleared(t *testing.T) {
	// GIVEN: Period [2024-01-10, 2024-01-15]
	// WHEN: The operator edits the start to 2024-01-20
	// THEN: The end is cleared (to be re-chosen), not auto-corrected

	period := span(date(2024, time.January, 10), date(2024, time.January, 15))
	adjusted := roster.AdjustPeriodEnd(period, date(2024, time.January, 20))

	if !adjusted.Start.Equal(date(2024, time.January, 20)) {
		t.Errorf("start not updated: %s", adjusted.Start)
	}
	if !adjusted.End.IsZero() {
		t.Errorf("end should be cleared, got %s", adjusted.End)
	}
}

func TestAdjustPeriodEnd_StartStillBeforeEnd_EndKept(t *testing.T) {
	period := span(date(2024, time.January, 10), date(2024, time.January, 15))
	adjusted := roster.AdjustPeriodEnd(period, date(2024, time.January, 12))

	if !adjusted.End.Equal(date(2024, time.January, 15)) {
		t.Errorf("end should be kept, got %s", adjusted.End)
	}
}

// =============================================================================
// DATE RANGE PRIMITIVES
// =============================================================================

func TestDateRange_Days_InclusiveBounds(t *testing.T) {
	r := span(date(2024, time.March, 1), date(2024, time.March, 3))
	days := r.Days()

	if len(days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(days))
	}
	if !days[0].Equal(date(2024, time.March, 1)) || !days[2].Equal(date(2024, time.March, 3)) {
		t.Errorf("unexpected day bounds: %s..%s", days[0], days[2])
	}
}

func TestDateRange_SingleDay(t *testing.T) {
	r := span(date(2024, time.March, 1), date(2024, time.March, 1))
	if r.Len() != 1 {
		t.Fatalf("expected length 1, got %d", r.Len())
	}
}
