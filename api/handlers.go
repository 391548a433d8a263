/*
handlers.go - HTTP API handlers for the reconciliation engine

PURPOSE:
  Exposes the leave/roster reconciliation engine via REST. Handles HTTP
  request/response, JSON serialization, payload validation, and delegates
  to the engine.

ENDPOINTS:
  Leaves:
    POST   /api/leaves                    Create leave (expand + optional sync)
    GET    /api/leaves/{id}               Leave details incl. day set
    DELETE /api/leaves/{id}               Administrative delete (bulk-removes days)
    POST   /api/leaves/{id}/sync          Mirror unresolved days onto a schedule

  Replacements:
    POST   /api/replacements              Resolve a sub-range to a substitute
    POST   /api/replacements/validate     Validate a staged period

  Roster:
    GET    /api/schedules/{id}/assignments?from=&to=

  Reference data:
    GET    /api/personnel
    GET    /api/jokers
    POST   /api/jokers

TENANCY:
  Every request carries X-Tenant-ID; middleware rejects its absence and
  the resolved tenant is passed explicitly into every engine call.

ERROR HANDLING:
  - 400: payload/validation errors (nothing was mutated)
  - 404: leave/leave-day/personnel/joker not found
  - 409: day already resolved, duplicate expansion
  - 500: storage failures (message carries the store error)
  Every mutation answers the {success, message} envelope.

SEE ALSO:
  - dto.go: Wire shapes
  - server.go: Router setup and tenant middleware
*/
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/warp/roster-engine/roster"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Engine   *roster.Engine
	validate *validator.Validate
	log      *logrus.Logger
}

// NewHandler creates a new handler around the engine.
func NewHandler(engine *roster.Engine, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{
		Engine:   engine,
		validate: validator.New(),
		log:      log,
	}
}

// =============================================================================
// LEAVE HANDLERS
// =============================================================================

// CreateLeave records a leave, expands it into day rows, and optionally
// synchronizes it onto a schedule in the same call.
// POST /api/leaves
func (h *Handler) CreateLeave(w http.ResponseWriter, r *http.Request) {
	tenant := tenantFrom(r)

	var req CreateLeaveRequest
	if !h.decode(w, r, &req) {
		return
	}

	period, err := parsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid leave period", err)
		return
	}

	leave := roster.LeaveRequest{
		PersonnelID: roster.PersonnelID(req.PersonnelID),
		LeaveType:   roster.ShiftCode(req.LeaveType),
		Period:      period,
		TotalDays:   roster.LeaveTotalDays(period),
		Status:      roster.LeaveApproved,
		DocumentID:  req.DocumentID,
	}

	days, err := h.Engine.CreateLeave(r.Context(), tenant, leave)
	if err != nil {
		writeError(w, errorStatus(err), "Failed to create leave", err)
		return
	}
	leave.ID = days[0].LeaveID

	if req.ScheduleID != "" {
		if _, err := h.Engine.SyncLeaveToSchedule(r.Context(), tenant, leave.ID, roster.ScheduleID(req.ScheduleID)); err != nil {
			// The leave exists; only the mirror failed. Surface it as such.
			writeError(w, errorStatus(err), "Leave created but schedule sync failed", err)
			return
		}
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Leave created with %d day(s)", len(days)),
		"leave":   leaveDTO(leave, days),
	})
}

// GetLeave returns a leave with its full day set. This is the view an
// operator uses to spot an incomplete expansion.
// GET /api/leaves/{id}
func (h *Handler) GetLeave(w http.ResponseWriter, r *http.Request) {
	tenant := tenantFrom(r)
	id := roster.LeaveID(chi.URLParam(r, "id"))

	leave, err := h.Engine.Leaves.GetLeave(r.Context(), tenant, id)
	if err != nil {
		writeError(w, errorStatus(err), "Failed to load leave", err)
		return
	}
	days, err := h.Engine.Leaves.ListLeaveDays(r.Context(), tenant, id)
	if err != nil {
		writeError(w, errorStatus(err), "Failed to load leave days", err)
		return
	}

	writeJSON(w, http.StatusOK, leaveDTO(*leave, days))
}

// DeleteLeave removes a leave and all of its day rows.
// DELETE /api/leaves/{id}
func (h *Handler) DeleteLeave(w http.ResponseWriter, r *http.Request) {
	tenant := tenantFrom(r)
	id := roster.LeaveID(chi.URLParam(r, "id"))

	if err := h.Engine.DeleteLeave(r.Context(), tenant, id); err != nil {
		writeError(w, errorStatus(err), "Failed to delete leave", err)
		return
	}
	writeJSON(w, http.StatusOK, Envelope{Success: true, Message: "Leave deleted"})
}

// SyncLeave mirrors a leave's unresolved days onto a schedule.
// POST /api/leaves/{id}/sync
func (h *Handler) SyncLeave(w http.ResponseWriter, r *http.Request) {
	tenant := tenantFrom(r)
	id := roster.LeaveID(chi.URLParam(r, "id"))

	var req SyncLeaveRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.Engine.SyncLeaveToSchedule(r.Context(), tenant, id, roster.ScheduleID(req.ScheduleID))
	if err != nil {
		writeError(w, errorStatus(err), "Failed to synchronize leave", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"message":        fmt.Sprintf("%d day(s) mirrored to schedule", result.MirroredCount),
		"resolved_count": result.MirroredCount,
	})
}

// =============================================================================
// REPLACEMENT HANDLERS
// =============================================================================

// AssignReplacement resolves a sub-range of a leave to a substitute.
// POST /api/replacements
func (h *Handler) AssignReplacement(w http.ResponseWriter, r *http.Request) {
	tenant := tenantFrom(r)

	var req AssignReplacementRequest
	if !h.decode(w, r, &req) {
		return
	}

	replacement, err := replacementFrom(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid replacement payload", err)
		return
	}

	input := roster.AssignInput{
		LeaveDayID:  roster.LeaveDayID(req.LeaveDayID),
		Replacement: replacement,
		Schedule:    roster.ScheduleID(req.ScheduleID),
	}
	if req.StartDate != "" || req.EndDate != "" {
		span, err := parsePeriod(req.StartDate, req.EndDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid replacement period", err)
			return
		}
		input.Span = &span
	}

	result, err := h.Engine.AssignReplacement(r.Context(), tenant, input)
	if err != nil {
		writeError(w, errorStatus(err), "Failed to assign replacement", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("%s covers %s (%d day(s))", result.SubstituteTag, result.Span, result.DaysAssigned),
		"span":    PeriodDTO{StartDate: result.Span.Start.String(), EndDate: result.Span.End.String()},
		"type":    string(result.Type),
	})
}

// ValidatePeriod checks a proposed replacement period without mutating
// anything. Always answers 200 with a {valid, reason} body.
// POST /api/replacements/validate
func (h *Handler) ValidatePeriod(w http.ResponseWriter, r *http.Request) {
	var req ValidatePeriodRequest
	if !h.decode(w, r, &req) {
		return
	}

	period, err := parsePeriod(req.Period.StartDate, req.Period.EndDate)
	if err != nil {
		writeJSON(w, http.StatusOK, ValidationResult{Valid: false, Reason: err.Error()})
		return
	}
	bounds, err := parsePeriod(req.LeaveStart, req.LeaveEnd)
	if err != nil {
		writeJSON(w, http.StatusOK, ValidationResult{Valid: false, Reason: err.Error()})
		return
	}
	others := make([]roster.DateRange, 0, len(req.OtherPeriods))
	for _, p := range req.OtherPeriods {
		other, err := parsePeriod(p.StartDate, p.EndDate)
		if err != nil {
			writeJSON(w, http.StatusOK, ValidationResult{Valid: false, Reason: err.Error()})
			return
		}
		others = append(others, other)
	}

	if err := roster.ValidateReplacementPeriod(period, others, bounds); err != nil {
		writeJSON(w, http.StatusOK, ValidationResult{Valid: false, Reason: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, ValidationResult{Valid: true})
}

// =============================================================================
// ROSTER AND REFERENCE HANDLERS
// =============================================================================

// ListAssignments returns a roster window.
// GET /api/schedules/{id}/assignments?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	tenant := tenantFrom(r)
	schedule := roster.ScheduleID(chi.URLParam(r, "id"))

	span, err := parsePeriod(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date window", err)
		return
	}

	rows, err := h.Engine.Roster.ListAssignments(r.Context(), tenant, schedule, span)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list assignments", err)
		return
	}

	dtos := make([]AssignmentDTO, 0, len(rows))
	for _, a := range rows {
		dtos = append(dtos, assignmentDTO(a))
	}
	writeJSON(w, http.StatusOK, map[string]any{"assignments": dtos})
}

// ListPersonnel returns registered staff for the tenant.
// GET /api/personnel
func (h *Handler) ListPersonnel(w http.ResponseWriter, r *http.Request) {
	tenant := tenantFrom(r)

	people, err := h.Engine.Personnel.ListPersonnel(r.Context(), tenant)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list personnel", err)
		return
	}

	dtos := make([]PersonnelDTO, 0, len(people))
	for _, p := range people {
		dtos = append(dtos, PersonnelDTO{ID: string(p.ID), Name: p.Name, Phone: p.Phone})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ListJokers returns the tenant's contractors.
// GET /api/jokers
func (h *Handler) ListJokers(w http.ResponseWriter, r *http.Request) {
	tenant := tenantFrom(r)

	jokers, err := h.Engine.Personnel.ListJokers(r.Context(), tenant)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list jokers", err)
		return
	}

	dtos := make([]JokerDTO, 0, len(jokers))
	for _, j := range jokers {
		dtos = append(dtos, JokerDTO{
			ID: string(j.ID), Name: j.Name, Phone: j.Phone,
			NationalID: j.NationalID, Company: j.Company,
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateJoker registers a contractor ahead of time (the assigner can also
// create one lazily from fresh details).
// POST /api/jokers
func (h *Handler) CreateJoker(w http.ResponseWriter, r *http.Request) {
	tenant := tenantFrom(r)

	var req JokerPayload
	if !h.decode(w, r, &req) {
		return
	}

	joker := roster.JokerPersonnel{
		ID:       roster.JokerID(roster.NewID()),
		TenantID: tenant,
		JokerInfo: roster.JokerInfo{
			Name:       req.Name,
			Phone:      req.Phone,
			NationalID: req.NationalID,
			Company:    req.Company,
		},
	}
	if err := h.Engine.Personnel.InsertJoker(r.Context(), tenant, joker); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create joker", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Joker created",
		"id":      string(joker.ID),
	})
}

// =============================================================================
// HELPERS
// =============================================================================

// decode parses and validates a JSON payload; on failure it answers 400 and
// returns false.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload", err)
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Payload validation failed", err)
		return false
	}
	return true
}

// replacementFrom maps the wire discriminator onto the tagged union.
func replacementFrom(req AssignReplacementRequest) (roster.Replacement, error) {
	switch req.ReplacementType {
	case "personnel":
		if req.PersonnelID == "" {
			return roster.Replacement{}, roster.ErrMissingReplacement
		}
		return roster.PersonnelReplacement(roster.PersonnelID(req.PersonnelID)), nil
	case "joker":
		if req.JokerID != "" {
			return roster.ExistingJokerReplacement(roster.JokerID(req.JokerID)), nil
		}
		if req.Joker != nil {
			return roster.NewJokerReplacement(roster.JokerInfo{
				Name:       req.Joker.Name,
				Phone:      req.Joker.Phone,
				NationalID: req.Joker.NationalID,
				Company:    req.Joker.Company,
			}), nil
		}
		return roster.Replacement{}, roster.ErrMissingReplacement
	}
	return roster.Replacement{}, roster.ErrMissingReplacement
}

func parsePeriod(start, end string) (roster.DateRange, error) {
	s, err := roster.ParseDate(start)
	if err != nil {
		return roster.DateRange{}, err
	}
	e, err := roster.ParseDate(end)
	if err != nil {
		return roster.DateRange{}, err
	}
	return roster.DateRange{Start: s, End: e}, nil
}

// errorStatus maps engine errors onto HTTP statuses.
func errorStatus(err error) int {
	switch {
	case roster.IsValidation(err):
		return http.StatusBadRequest
	case roster.IsNotFound(err):
		return http.StatusNotFound
	case roster.IsConflict(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	writeJSON(w, status, Envelope{
		Success: false,
		Message: fmt.Sprintf("%s: %v", message, err),
	})
}
