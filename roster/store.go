/*
store.go - Persistence interfaces for leaves, roster rows, and personnel

PURPOSE:
  Defines the boundary between the engine and the tenant-scoped relational
  store. Every method takes an explicit TenantID; the engine never relies
  on ambient tenant state, and never issues a cross-tenant query.

CONTRACTS:
  - Batch inserts (leave days, duty assignments) are atomic: either every
    row in the batch is written or none is.
  - DeleteOrdinaryAssignment is delete-if-exists: deleting a row that is
    not there is a successful no-op, so the delete half of every
    reconciliation step is naturally idempotent and retryable.
  - Lookups that find nothing return the package's not-found sentinels
    (ErrLeaveNotFound, ErrLeaveDayNotFound, ...), wrapped or bare.

IMPLEMENTATIONS:
  - store/sqlite: production adapter (same SQL applies to PostgreSQL)
  - roster/store: in-memory adapter for tests and dev

SEE ALSO:
  - expand.go, sync.go, assign.go: The operations issuing these calls
*/
package roster

import "context"

// =============================================================================
// LEAVE STORE - leave_requests and leave_days tables
// =============================================================================

// Resolution is what MarkLeaveDaysResolved stamps onto a range of leave days
// when a replacement is committed.
type Resolution struct {
	Type        ReplacementType
	PersonnelID PersonnelID // when Type == personnel
	Joker       *JokerInfo  // when Type == joker
}

// LeaveStore persists leave requests and their per-day children.
type LeaveStore interface {
	// InsertLeave persists a new leave request.
	InsertLeave(ctx context.Context, tenant TenantID, leave LeaveRequest) error

	// GetLeave returns a leave request, or ErrLeaveNotFound.
	GetLeave(ctx context.Context, tenant TenantID, id LeaveID) (*LeaveRequest, error)

	// DeleteLeave removes a leave request and all of its leave days.
	DeleteLeave(ctx context.Context, tenant TenantID, id LeaveID) error

	// InsertLeaveDays persists a day batch atomically. A (leave, date) pair
	// that already exists fails the whole batch with ErrDuplicateLeaveDay.
	InsertLeaveDays(ctx context.Context, tenant TenantID, days []LeaveDay) error

	// GetLeaveDay returns a single leave day, or ErrLeaveDayNotFound.
	GetLeaveDay(ctx context.Context, tenant TenantID, id LeaveDayID) (*LeaveDay, error)

	// ListLeaveDays returns all days of a leave ordered by date.
	ListLeaveDays(ctx context.Context, tenant TenantID, leaveID LeaveID) ([]LeaveDay, error)

	// ListUnresolvedLeaveDays returns the days of a leave still at
	// replacement_type none, ordered by date.
	ListUnresolvedLeaveDays(ctx context.Context, tenant TenantID, leaveID LeaveID) ([]LeaveDay, error)

	// MarkLeaveDaysResolved stamps the resolution onto every day of the leave
	// in [from, to] and returns how many rows changed.
	MarkLeaveDaysResolved(ctx context.Context, tenant TenantID, leaveID LeaveID, span DateRange, res Resolution) (int, error)
}

// =============================================================================
// ROSTER STORE - duty_assignments table
// =============================================================================

// RosterStore persists duty assignments.
type RosterStore interface {
	// InsertAssignments persists a batch of roster rows atomically.
	InsertAssignments(ctx context.Context, tenant TenantID, rows []DutyAssignment) error

	// GetOrdinaryAssignment returns the single non-joker row for
	// (schedule, personnel, date), or nil if there is none.
	GetOrdinaryAssignment(ctx context.Context, tenant TenantID, schedule ScheduleID, personnel PersonnelID, date Date) (*DutyAssignment, error)

	// DeleteOrdinaryAssignment removes the non-joker row for
	// (schedule, personnel, date). Absence is not an error.
	DeleteOrdinaryAssignment(ctx context.Context, tenant TenantID, schedule ScheduleID, personnel PersonnelID, date Date) error

	// ListAssignments returns every roster row on the schedule whose duty
	// date falls in the span, ordered by date.
	ListAssignments(ctx context.Context, tenant TenantID, schedule ScheduleID, span DateRange) ([]DutyAssignment, error)
}

// =============================================================================
// PERSONNEL STORE - personnel and joker_personnel tables
// =============================================================================

// PersonnelStore resolves registered staff and persists ad-hoc jokers.
type PersonnelStore interface {
	// GetPersonnel returns a registered staff member, or ErrPersonnelNotFound.
	GetPersonnel(ctx context.Context, tenant TenantID, id PersonnelID) (*Personnel, error)

	// ListPersonnel returns all registered staff for the tenant.
	ListPersonnel(ctx context.Context, tenant TenantID) ([]Personnel, error)

	// GetJoker returns an existing joker, or ErrJokerNotFound.
	GetJoker(ctx context.Context, tenant TenantID, id JokerID) (*JokerPersonnel, error)

	// InsertJoker persists a freshly supplied joker.
	InsertJoker(ctx context.Context, tenant TenantID, joker JokerPersonnel) error

	// ListJokers returns all jokers for the tenant.
	ListJokers(ctx context.Context, tenant TenantID) ([]JokerPersonnel, error)
}
