/*
expand.go - Leave Expander

PURPOSE:
  Turns an approved leave request into one LeaveDay per calendar day of
  the inclusive [start, end] range, all at replacement_type none and
  tagged with whether the day falls on a weekend.

NOT IDEMPOTENT:
  Expansion runs exactly once per leave, at creation time. Calling it
  again would produce duplicate day rows; the stores back this up with a
  unique (leave, date) constraint that fails the second batch loudly
  (ErrDuplicateLeaveDay) instead of duplicating silently.

PARTIAL FAILURE:
  If the day batch cannot be written, the leave request may exist without
  a complete day set. That inconsistency is surfaced, not repaired: the
  leave-details view shows the day set, and the operator deletes and
  recreates the leave.

SEE ALSO:
  - sync.go: Mirrors the expanded days onto a roster
*/
package roster

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// ExpandLeaveToDays expands a leave request into its per-day records.
// Pure: nothing is persisted. The result covers every calendar day from
// Period.Start to Period.End inclusive, in chronological order.
func ExpandLeaveToDays(leave LeaveRequest) []LeaveDay {
	var days []LeaveDay
	for _, date := range leave.Period.Days() {
		days = append(days, LeaveDay{
			ID:              LeaveDayID(NewID()),
			LeaveID:         leave.ID,
			TenantID:        leave.TenantID,
			PersonnelID:     leave.PersonnelID,
			Date:            date,
			LeaveType:       leave.LeaveType,
			Weekend:         date.IsWeekend(),
			ReplacementType: ReplacementNone,
		})
	}
	return days
}

// LeaveTotalDays returns the day count of a period as a decimal. Half-day
// leave types scale this after the fact; the expansion itself always works
// in whole calendar days.
func LeaveTotalDays(period DateRange) decimal.Decimal {
	return decimal.NewFromInt(int64(period.Len()))
}

// CreateLeave persists a new leave request and its expanded day batch.
// The request row is written first; if the day batch then fails, the
// request exists without a complete day set (reported, not rolled back).
func (e *Engine) CreateLeave(ctx context.Context, tenant TenantID, leave LeaveRequest) ([]LeaveDay, error) {
	if !leave.Period.Valid() {
		return nil, fmt.Errorf("leave %s: %w", leave.ID, ErrInvalidPeriod)
	}
	if leave.ID == "" {
		leave.ID = LeaveID(NewID())
	}
	leave.TenantID = tenant
	if leave.TotalDays.IsZero() {
		leave.TotalDays = LeaveTotalDays(leave.Period)
	}

	if err := e.Leaves.InsertLeave(ctx, tenant, leave); err != nil {
		return nil, fmt.Errorf("create leave: %w", err)
	}

	days := ExpandLeaveToDays(leave)
	if err := e.Leaves.InsertLeaveDays(ctx, tenant, days); err != nil {
		// The leave row is already committed; the incomplete day set is
		// visible in the leave-details view for the operator to act on.
		return nil, fmt.Errorf("expand leave %s: %w", leave.ID, err)
	}
	return days, nil
}

// DeleteLeave removes a leave request and all of its day rows. This is the
// only path that reverts resolved days (by destroying them).
func (e *Engine) DeleteLeave(ctx context.Context, tenant TenantID, id LeaveID) error {
	if _, err := e.Leaves.GetLeave(ctx, tenant, id); err != nil {
		return err
	}
	if err := e.Leaves.DeleteLeave(ctx, tenant, id); err != nil {
		return fmt.Errorf("delete leave %s: %w", id, err)
	}
	return nil
}
