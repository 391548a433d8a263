/*
dto.go - Request/response data structures for the HTTP API

PURPOSE:
  Wire shapes between the UI collaborators and the engine. Dates are
  "YYYY-MM-DD" strings, shift bounds are "HH:MM"; payloads are validated
  with go-playground/validator before the engine sees them.

ENVELOPE:
  Every mutation answers {success, message, ...}. Failures always carry
  the underlying error message so the operator sees what the store said.
*/
package api

import (
	"github.com/warp/roster-engine/roster"
)

// =============================================================================
// REQUEST PAYLOADS
// =============================================================================

// CreateLeaveRequest records a leave and expands it into day rows.
// When schedule_id is set the new leave is synchronized immediately.
type CreateLeaveRequest struct {
	PersonnelID string `json:"personnel_id" validate:"required"`
	LeaveType   string `json:"leave_type" validate:"required"`
	StartDate   string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date" validate:"required,datetime=2006-01-02"`
	DocumentID  string `json:"document_id,omitempty"`
	ScheduleID  string `json:"schedule_id,omitempty"`
}

// SyncLeaveRequest mirrors a leave's unresolved days onto a schedule.
type SyncLeaveRequest struct {
	ScheduleID string `json:"schedule_id" validate:"required"`
}

// JokerPayload carries fresh contractor details.
type JokerPayload struct {
	Name       string `json:"name" validate:"required"`
	Phone      string `json:"phone,omitempty"`
	NationalID string `json:"national_id,omitempty"`
	Company    string `json:"company,omitempty"`
}

// AssignReplacementRequest resolves a sub-range of a leave to a substitute.
// Exactly one of personnel_id, joker_id, or joker must be set, matching
// replacement_type.
type AssignReplacementRequest struct {
	LeaveDayID      string        `json:"leave_day_id" validate:"required"`
	ReplacementType string        `json:"replacement_type" validate:"required,oneof=personnel joker"`
	PersonnelID     string        `json:"personnel_id,omitempty"`
	JokerID         string        `json:"joker_id,omitempty"`
	Joker           *JokerPayload `json:"joker,omitempty"`
	ScheduleID      string        `json:"schedule_id" validate:"required"`
	StartDate       string        `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate         string        `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// PeriodDTO is one operator-defined replacement period.
type PeriodDTO struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

// ValidatePeriodRequest checks a proposed period against the periods staged
// in the same session and the parent leave bounds.
type ValidatePeriodRequest struct {
	Period       PeriodDTO   `json:"period" validate:"required"`
	OtherPeriods []PeriodDTO `json:"other_periods" validate:"dive"`
	LeaveStart   string      `json:"leave_start" validate:"required,datetime=2006-01-02"`
	LeaveEnd     string      `json:"leave_end" validate:"required,datetime=2006-01-02"`
}

// =============================================================================
// RESPONSE SHAPES
// =============================================================================

// Envelope is the uniform mutation response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ValidationResult is the validator's verdict on a proposed period.
type ValidationResult struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

type LeaveDTO struct {
	ID          string        `json:"id"`
	PersonnelID string        `json:"personnel_id"`
	LeaveType   string        `json:"leave_type"`
	StartDate   string        `json:"start_date"`
	EndDate     string        `json:"end_date"`
	TotalDays   string        `json:"total_days"`
	Status      string        `json:"status"`
	DocumentID  string        `json:"document_id,omitempty"`
	Days        []LeaveDayDTO `json:"days,omitempty"`
}

type LeaveDayDTO struct {
	ID                     string        `json:"id"`
	Date                   string        `json:"date"`
	LeaveType              string        `json:"leave_type"`
	Weekend                bool          `json:"weekend"`
	ReplacementType        string        `json:"replacement_type"`
	ReplacementPersonnelID string        `json:"replacement_personnel_id,omitempty"`
	Joker                  *JokerPayload `json:"joker,omitempty"`
}

type AssignmentDTO struct {
	ID                  string        `json:"id"`
	ScheduleID          string        `json:"schedule_id"`
	PersonnelID         string        `json:"personnel_id"`
	DutyDate            string        `json:"duty_date"`
	ShiftType           string        `json:"shift_type"`
	StartTime           string        `json:"start_time"`
	EndTime             string        `json:"end_time"`
	IsJoker             bool          `json:"is_joker"`
	JokerID             string        `json:"joker_id,omitempty"`
	Joker               *JokerPayload `json:"joker,omitempty"`
	OriginalPersonnelID string        `json:"original_personnel_id,omitempty"`
	OriginalShiftType   string        `json:"original_shift_type,omitempty"`
	Notes               string        `json:"notes,omitempty"`
}

type PersonnelDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

type JokerDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Phone      string `json:"phone,omitempty"`
	NationalID string `json:"national_id,omitempty"`
	Company    string `json:"company,omitempty"`
}

// =============================================================================
// CONVERTERS
// =============================================================================

func leaveDTO(leave roster.LeaveRequest, days []roster.LeaveDay) LeaveDTO {
	dto := LeaveDTO{
		ID:          string(leave.ID),
		PersonnelID: string(leave.PersonnelID),
		LeaveType:   string(leave.LeaveType),
		StartDate:   leave.Period.Start.String(),
		EndDate:     leave.Period.End.String(),
		TotalDays:   leave.TotalDays.String(),
		Status:      string(leave.Status),
		DocumentID:  leave.DocumentID,
	}
	for _, d := range days {
		dto.Days = append(dto.Days, leaveDayDTO(d))
	}
	return dto
}

func leaveDayDTO(d roster.LeaveDay) LeaveDayDTO {
	dto := LeaveDayDTO{
		ID:                     string(d.ID),
		Date:                   d.Date.String(),
		LeaveType:              string(d.LeaveType),
		Weekend:                d.Weekend,
		ReplacementType:        string(d.ReplacementType),
		ReplacementPersonnelID: string(d.ReplacementPersonnelID),
	}
	if d.Joker != nil {
		dto.Joker = jokerPayload(*d.Joker)
	}
	return dto
}

func assignmentDTO(a roster.DutyAssignment) AssignmentDTO {
	dto := AssignmentDTO{
		ID:                  string(a.ID),
		ScheduleID:          string(a.ScheduleID),
		PersonnelID:         string(a.PersonnelID),
		DutyDate:            a.DutyDate.String(),
		ShiftType:           string(a.ShiftType),
		StartTime:           a.StartTime.String(),
		EndTime:             a.EndTime.String(),
		IsJoker:             a.IsJoker,
		JokerID:             string(a.JokerID),
		OriginalPersonnelID: string(a.OriginalPersonnelID),
		OriginalShiftType:   string(a.OriginalShiftType),
		Notes:               a.Notes,
	}
	if a.JokerInfo != nil {
		dto.Joker = jokerPayload(*a.JokerInfo)
	}
	return dto
}

func jokerPayload(info roster.JokerInfo) *JokerPayload {
	return &JokerPayload{
		Name:       info.Name,
		Phone:      info.Phone,
		NationalID: info.NationalID,
		Company:    info.Company,
	}
}
