/*
Package roster provides the leave-to-duty-schedule reconciliation engine.

PURPOSE:
  This package contains the domain types and algorithms that keep an
  approved leave period and a duty roster in agreement about who is on
  duty on a given date. It expands a leave into per-day records, mirrors
  unresolved days onto the roster as placeholders, and resolves sub-ranges
  of the leave to substitutes (registered personnel or ad-hoc jokers).

KEY CONCEPTS IN THIS FILE (types.go):
  - LeaveRequest / LeaveDay: One request plus one child row per calendar day
  - DutyAssignment: One roster row per (personnel, date), ordinary or joker
  - Replacement types: none -> personnel | joker, never reverting
  - PlaceholderShiftCodes: shift codes that are never a "real" original shift

DESIGN PRINCIPLES:
  1. Explicit tenancy: every operation carries a TenantID; no ambient state
  2. Delete-then-insert: a resolved day is replaced, never updated in place
  3. Type safety: strong typing for IDs prevents mixing leave/roster keys
  4. Traceability: substitute rows always name the original personnel/shift

SEE ALSO:
  - expand.go: Leave Expander
  - sync.go: Schedule Synchronizer
  - assign.go: Replacement Assigner
  - validate.go: Conflict/Range Validator
  - store.go: Persistence interfaces
*/
package roster

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type TenantID string
type LeaveID string
type LeaveDayID string
type PersonnelID string
type JokerID string
type ScheduleID string
type AssignmentID string

// NewID returns a fresh row identifier. All generated IDs are UUIDv4.
func NewID() string { return uuid.NewString() }

// =============================================================================
// SHIFT CODES
// =============================================================================

// ShiftCode identifies what a duty assignment represents on the roster:
// either a work shift (day, night, ...) or a leave/placeholder code.
type ShiftCode string

const (
	ShiftDay   ShiftCode = "day"
	ShiftNight ShiftCode = "night"
	ShiftSwing ShiftCode = "swing"

	// Leave codes double as placeholder shift codes on the roster.
	ShiftAnnualLeave ShiftCode = "annual_leave"
	ShiftSickLeave   ShiftCode = "sick_leave"
	ShiftUnpaidLeave ShiftCode = "unpaid_leave"
	ShiftExcuseLeave ShiftCode = "excuse_leave"
)

// DefaultShiftCode is the fallback used when a leave-holder's original shift
// cannot be recovered (e.g. it was already overwritten by the placeholder).
const DefaultShiftCode = ShiftDay

// PlaceholderShiftCodes is the set of codes that must never be treated as a
// "real" original shift when reconstructing what a substitute should work.
// Single point of maintenance: add new leave codes here and nowhere else.
var PlaceholderShiftCodes = map[ShiftCode]bool{
	ShiftAnnualLeave: true,
	ShiftSickLeave:   true,
	ShiftUnpaidLeave: true,
	ShiftExcuseLeave: true,
}

// IsPlaceholderShift reports whether the code is a leave/placeholder code.
func IsPlaceholderShift(code ShiftCode) bool { return PlaceholderShiftCodes[code] }

// =============================================================================
// LEAVE REQUEST - One row per approved leave
// =============================================================================

type LeaveStatus string

const (
	LeavePending   LeaveStatus = "pending"
	LeaveApproved  LeaveStatus = "approved"
	LeaveRejected  LeaveStatus = "rejected"
	LeaveCancelled LeaveStatus = "cancelled"
)

// LeaveRequest is the parent record of a leave period. Once its child
// LeaveDays have been synchronized to a roster it is immutable except for
// administrative edit/delete.
type LeaveRequest struct {
	ID          LeaveID
	TenantID    TenantID
	PersonnelID PersonnelID
	LeaveType   ShiftCode
	Period      DateRange
	// TotalDays is fractional because half-day leave types exist.
	TotalDays  decimal.Decimal
	Status     LeaveStatus
	DocumentID string // optional attachment reference, opaque to the engine
}

// =============================================================================
// LEAVE DAY - One row per calendar day covered by a leave
// =============================================================================

type ReplacementType string

const (
	ReplacementNone      ReplacementType = "none"
	ReplacementPersonnel ReplacementType = "personnel"
	ReplacementJoker     ReplacementType = "joker"
)

// JokerInfo is the snapshot of an ad-hoc contractor attached to a resolved
// leave day or joker duty assignment.
type JokerInfo struct {
	Name       string
	Phone      string
	NationalID string
	Company    string
}

// LeaveDay is one calendar day of a leave. Exactly one exists per
// (leave, date) covering every day of the period. ReplacementType moves
// only none -> {personnel|joker}; it never reverts except via deletion of
// the parent leave.
type LeaveDay struct {
	ID          LeaveDayID
	LeaveID     LeaveID
	TenantID    TenantID
	PersonnelID PersonnelID
	Date        Date
	LeaveType   ShiftCode
	Weekend     bool

	ReplacementType        ReplacementType
	ReplacementPersonnelID PersonnelID // set when ReplacementType == personnel
	Joker                  *JokerInfo  // set when ReplacementType == joker
}

// Resolved reports whether the day has been assigned a substitute.
func (d LeaveDay) Resolved() bool { return d.ReplacementType != ReplacementNone }

// =============================================================================
// DUTY ASSIGNMENT - One roster row per (personnel, date)
// =============================================================================

// DutyAssignment is a roster row. For a (schedule, personnel, date) key at
// most one non-joker row may exist (an ordinary shift or a leave
// placeholder); joker rows layer on top to represent substitutes.
// A resolution is always delete-then-insert; rows are never updated in
// place once a placement is made.
type DutyAssignment struct {
	ID          AssignmentID
	TenantID    TenantID
	ScheduleID  ScheduleID
	PersonnelID PersonnelID
	DutyDate    Date
	ShiftType   ShiftCode
	StartTime   ClockTime
	EndTime     ClockTime

	IsJoker   bool
	JokerID   JokerID    // set when IsJoker
	JokerInfo *JokerInfo // snapshot, set when IsJoker

	// Traceability back to the leave-holder this row substitutes for.
	OriginalPersonnelID PersonnelID
	OriginalShiftType   ShiftCode

	Notes string
}

// Ordinary reports whether this is a non-joker row (work shift or placeholder).
func (a DutyAssignment) Ordinary() bool { return !a.IsJoker }

// =============================================================================
// REFERENCE ENTITIES - Opaque to the engine beyond identity/attribution
// =============================================================================

// Personnel is a registered staff member, referenced but never mutated here.
type Personnel struct {
	ID       PersonnelID
	TenantID TenantID
	Name     string
	Phone    string
}

// JokerPersonnel is an ad-hoc contractor. The engine creates one lazily when
// an operator supplies fresh joker details instead of selecting an existing
// contractor.
type JokerPersonnel struct {
	ID       JokerID
	TenantID TenantID
	JokerInfo
}
