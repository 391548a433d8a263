/*
sync.go - Schedule Synchronizer

PURPOSE:
  Mirrors the not-yet-replaced days of a leave onto a duty roster as
  placeholder assignments. After a successful sync, every unresolved
  LeaveDay has exactly one ordinary roster row marking the leave-holder
  as on leave for that date, and no ordinary work shift remains for that
  (personnel, date).

FAILURE CONTRACT:
  - Deleting a prior ordinary assignment is best-effort: an absent row is
    the expected case, and a failed delete is logged but never aborts the
    batch.
  - The placeholder batch insert is all-or-nothing. If it is rejected, no
    placeholder from this call exists and the error carries the
    underlying storage message.
  - Re-invoking the sync is safe while the unresolved day set is
    unchanged: the deletes are idempotent and the insert replaces the
    placeholders wholesale.

SEE ALSO:
  - expand.go: Produces the day rows this mirrors
  - assign.go: Replaces the placeholders with substitutes
*/
package roster

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// SyncResult reports what a synchronization call did.
type SyncResult struct {
	// MirroredCount is how many leave days received a placeholder row.
	// Zero with a nil error means there was nothing left to mirror.
	MirroredCount int
}

// SyncLeaveToSchedule upserts roster placeholders for every unresolved day
// of the leave. Days already resolved to a substitute are left alone.
func (e *Engine) SyncLeaveToSchedule(ctx context.Context, tenant TenantID, leaveID LeaveID, schedule ScheduleID) (SyncResult, error) {
	days, err := e.Leaves.ListUnresolvedLeaveDays(ctx, tenant, leaveID)
	if err != nil {
		return SyncResult{}, fmt.Errorf("sync leave %s: %w", leaveID, err)
	}
	if len(days) == 0 {
		// Nothing to mirror; a fully resolved (or empty) leave is a no-op.
		return SyncResult{}, nil
	}

	// Best-effort cleanup: any ordinary shift the leave-holder still has on
	// these dates gives way to the placeholder. Absence is not an error and
	// a failed delete must not abort the batch.
	for _, day := range days {
		if err := e.Roster.DeleteOrdinaryAssignment(ctx, tenant, schedule, day.PersonnelID, day.Date); err != nil {
			e.log.WithFields(logrus.Fields{
				"tenant":    tenant,
				"leave":     leaveID,
				"personnel": day.PersonnelID,
				"date":      day.Date.String(),
			}).WithError(err).Warn("cleanup of prior assignment failed")
		}
	}

	rows := make([]DutyAssignment, 0, len(days))
	for _, day := range days {
		rows = append(rows, placeholderAssignment(day, schedule))
	}

	if err := e.Roster.InsertAssignments(ctx, tenant, rows); err != nil {
		return SyncResult{}, fmt.Errorf("sync leave %s: insert placeholders: %w", leaveID, err)
	}
	return SyncResult{MirroredCount: len(rows)}, nil
}

// placeholderAssignment builds the ordinary roster row that marks a
// leave-holder unavailable for one date. The shift type is the leave code
// itself, with full-day bounds, so roster views show the leave directly.
func placeholderAssignment(day LeaveDay, schedule ScheduleID) DutyAssignment {
	return DutyAssignment{
		ID:          AssignmentID(NewID()),
		TenantID:    day.TenantID,
		ScheduleID:  schedule,
		PersonnelID: day.PersonnelID,
		DutyDate:    day.Date,
		ShiftType:   day.LeaveType,
		StartTime:   DayStart,
		EndTime:     DayEnd,
		IsJoker:     false,
		Notes:       fmt.Sprintf("On leave (%s), placeholder for leave %s", day.LeaveType, day.LeaveID),
	}
}
