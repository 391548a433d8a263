/*
assign.go - Replacement Assigner

PURPOSE:
  Resolves an operator-chosen sub-range of a leave period to a substitute:
  removes the leave-holder's roster rows date by date and inserts rows
  attributing the original shift pattern to the chosen registered
  personnel or joker, then marks the covered leave days resolved.

ORIGINAL SHIFT RECOVERY:
  The shift a substitute should work is reconstructed from the
  leave-holder's ordinary assignment on the representative date. That row
  is usually already the leave placeholder, so codes in
  PlaceholderShiftCodes are never propagated; when nothing real is found
  the assigner falls back to DefaultShiftCode. Best-effort reconstruction,
  not a hard dependency.

ATOMICITY WINDOW:
  Joker persistence and all pre-flight checks happen before any roster
  mutation. The per-date deletes then run best-effort, and the substitute
  batch insert is all-or-nothing. A failure after the deletes leaves a
  known non-atomic window; retrying the same call is safe because the
  deletes are idempotent and the insert either fully lands or not at all.

CROSS-SESSION OVERLAP:
  Unlike the in-session validator, the assigner re-checks committed state:
  a call whose sub-range touches an already-resolved leave day is rejected
  with ErrDayAlreadyResolved instead of silently overwriting the earlier
  resolution. Disjoint sub-ranges of the same leave still resolve
  progressively.

SEE ALSO:
  - validate.go: In-session period validation
  - sync.go: Creates the placeholders this replaces
*/
package roster

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// AssignInput identifies what to resolve and with whom.
type AssignInput struct {
	// LeaveDayID is a representative day within the leave, used to recover
	// the leave-holder and the nominal date.
	LeaveDayID LeaveDayID

	// Replacement is the substitute choice (tagged union).
	Replacement Replacement

	// Schedule is the duty roster being reconciled.
	Schedule ScheduleID

	// Span is the sub-range to resolve. When nil it defaults to the single
	// representative day.
	Span *DateRange
}

// AssignResult reports a committed replacement.
type AssignResult struct {
	LeaveID       LeaveID
	Span          DateRange
	DaysAssigned  int
	Type          ReplacementType
	SubstituteTag string // human-readable substitute label for the operator
}

// substitute is the resolved target of a replacement, after lookups and
// lazy joker creation.
type substitute struct {
	resType     ReplacementType
	personnelID PersonnelID
	jokerID     JokerID
	jokerInfo   *JokerInfo
	label       string
}

// AssignReplacement commits one replacement period. See the file header
// for the ordering and failure contract.
func (e *Engine) AssignReplacement(ctx context.Context, tenant TenantID, in AssignInput) (AssignResult, error) {
	if err := in.Replacement.Validate(); err != nil {
		return AssignResult{}, err
	}

	day, err := e.Leaves.GetLeaveDay(ctx, tenant, in.LeaveDayID)
	if err != nil {
		return AssignResult{}, err
	}

	leave, err := e.Leaves.GetLeave(ctx, tenant, day.LeaveID)
	if err != nil {
		return AssignResult{}, err
	}

	span := DateRange{Start: day.Date, End: day.Date}
	if in.Span != nil {
		span = *in.Span
	}
	if err := ValidateReplacementPeriod(span, nil, leave.Period); err != nil {
		return AssignResult{}, err
	}

	// Cross-session guard: never silently overwrite an earlier resolution.
	if err := e.checkSpanUnresolved(ctx, tenant, leave.ID, span); err != nil {
		return AssignResult{}, err
	}

	// Recover the shift pattern that would have applied without the leave.
	shift, start, end := e.recoverOriginalShift(ctx, tenant, in.Schedule, day)

	// Resolve (and if needed persist) the substitute before any roster
	// mutation; a joker persistence failure aborts with nothing written.
	sub, err := e.resolveSubstitute(ctx, tenant, in.Replacement)
	if err != nil {
		return AssignResult{}, err
	}

	// Per-date cleanup, then one atomic insert of the substitute rows.
	rows := make([]DutyAssignment, 0, span.Len())
	for _, date := range span.Days() {
		if err := e.Roster.DeleteOrdinaryAssignment(ctx, tenant, in.Schedule, day.PersonnelID, date); err != nil {
			e.log.WithFields(logrus.Fields{
				"tenant":    tenant,
				"leave":     leave.ID,
				"personnel": day.PersonnelID,
				"date":      date.String(),
			}).WithError(err).Warn("cleanup of prior assignment failed")
		}
		rows = append(rows, substituteAssignment(tenant, in.Schedule, day, date, sub, shift, start, end))
	}
	if err := e.Roster.InsertAssignments(ctx, tenant, rows); err != nil {
		return AssignResult{}, fmt.Errorf("assign replacement for leave %s: %w", leave.ID, err)
	}

	// Mark the covered leave days resolved.
	res := Resolution{Type: sub.resType, PersonnelID: sub.personnelID, Joker: sub.jokerInfo}
	marked, err := e.Leaves.MarkLeaveDaysResolved(ctx, tenant, leave.ID, span, res)
	if err != nil {
		return AssignResult{}, fmt.Errorf("mark leave days for leave %s: %w", leave.ID, err)
	}

	return AssignResult{
		LeaveID:       leave.ID,
		Span:          span,
		DaysAssigned:  marked,
		Type:          sub.resType,
		SubstituteTag: sub.label,
	}, nil
}

// checkSpanUnresolved rejects the call if any leave day inside the span has
// already been resolved by an earlier call.
func (e *Engine) checkSpanUnresolved(ctx context.Context, tenant TenantID, leaveID LeaveID, span DateRange) error {
	days, err := e.Leaves.ListLeaveDays(ctx, tenant, leaveID)
	if err != nil {
		return fmt.Errorf("load leave days for %s: %w", leaveID, err)
	}
	var taken []Date
	for _, d := range days {
		if span.Contains(d.Date) && d.Resolved() {
			taken = append(taken, d.Date)
		}
	}
	if len(taken) > 0 {
		return &DayResolvedError{LeaveID: leaveID, Dates: taken}
	}
	return nil
}

// recoverOriginalShift looks up the leave-holder's ordinary assignment on
// the representative date and returns its shift and bounds, unless the row
// is absent or carries a placeholder code, in which case the defaults
// apply. Never fails: recovery is best-effort.
func (e *Engine) recoverOriginalShift(ctx context.Context, tenant TenantID, schedule ScheduleID, day *LeaveDay) (ShiftCode, ClockTime, ClockTime) {
	prior, err := e.Roster.GetOrdinaryAssignment(ctx, tenant, schedule, day.PersonnelID, day.Date)
	if err != nil {
		e.log.WithFields(logrus.Fields{
			"tenant":    tenant,
			"personnel": day.PersonnelID,
			"date":      day.Date.String(),
		}).WithError(err).Warn("original shift lookup failed, using default")
		return DefaultShiftCode, defaultShiftStart, defaultShiftEnd
	}
	if prior == nil || IsPlaceholderShift(prior.ShiftType) {
		return DefaultShiftCode, defaultShiftStart, defaultShiftEnd
	}
	return prior.ShiftType, prior.StartTime, prior.EndTime
}

// Default bounds for a reconstructed work shift when the original row is gone.
var (
	defaultShiftStart = ClockTime{Hour: 8, Minute: 0}
	defaultShiftEnd   = ClockTime{Hour: 16, Minute: 0}
)

// resolveSubstitute turns the replacement union into a concrete substitute,
// lazily persisting a fresh joker when the operator supplied new details.
func (e *Engine) resolveSubstitute(ctx context.Context, tenant TenantID, r Replacement) (substitute, error) {
	switch r.Kind() {
	case ReplaceWithPersonnel:
		p, err := e.Personnel.GetPersonnel(ctx, tenant, r.personnelID)
		if err != nil {
			return substitute{}, err
		}
		return substitute{
			resType:     ReplacementPersonnel,
			personnelID: p.ID,
			label:       p.Name,
		}, nil

	case ReplaceWithExistingJoker:
		j, err := e.Personnel.GetJoker(ctx, tenant, r.jokerID)
		if err != nil {
			return substitute{}, err
		}
		info := j.JokerInfo
		return substitute{
			resType:   ReplacementJoker,
			jokerID:   j.ID,
			jokerInfo: &info,
			label:     j.Name,
		}, nil

	case ReplaceWithNewJoker:
		joker := JokerPersonnel{
			ID:        JokerID(NewID()),
			TenantID:  tenant,
			JokerInfo: r.newJoker,
		}
		if err := e.Personnel.InsertJoker(ctx, tenant, joker); err != nil {
			return substitute{}, fmt.Errorf("persist joker %q: %w", joker.Name, err)
		}
		info := joker.JokerInfo
		return substitute{
			resType:   ReplacementJoker,
			jokerID:   joker.ID,
			jokerInfo: &info,
			label:     joker.Name,
		}, nil
	}
	return substitute{}, ErrMissingReplacement
}

// substituteAssignment builds the roster row attributing the leave-holder's
// original shift pattern to the substitute for one date.
func substituteAssignment(tenant TenantID, schedule ScheduleID, day *LeaveDay, date Date, sub substitute, shift ShiftCode, start, end ClockTime) DutyAssignment {
	row := DutyAssignment{
		ID:                  AssignmentID(NewID()),
		TenantID:            tenant,
		ScheduleID:          schedule,
		DutyDate:            date,
		ShiftType:           shift,
		StartTime:           start,
		EndTime:             end,
		OriginalPersonnelID: day.PersonnelID,
		OriginalShiftType:   shift,
		Notes:               fmt.Sprintf("Covering for %s (leave %s)", day.PersonnelID, day.LeaveID),
	}
	if sub.resType == ReplacementPersonnel {
		row.PersonnelID = sub.personnelID
	} else {
		// Joker rows keep the leave-holder as the keyed personnel so the
		// layered-substitute invariant on (schedule, personnel, date) holds.
		row.PersonnelID = day.PersonnelID
		row.IsJoker = true
		row.JokerID = sub.jokerID
		row.JokerInfo = sub.jokerInfo
	}
	return row
}
