// Package store provides in-memory store implementations (for testing/dev).
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/roster-engine/roster"
)

// =============================================================================
// MEMORY STORE - Implements LeaveStore, RosterStore, PersonnelStore
// =============================================================================

// Memory is a single in-memory backend for all three store interfaces,
// keyed by tenant the same way the relational schema is.
type Memory struct {
	mu          sync.RWMutex
	leaves      map[leaveKey]roster.LeaveRequest
	leaveDays   map[dayKey]roster.LeaveDay
	assignments map[tenantKey][]roster.DutyAssignment
	personnel   map[personKey]roster.Personnel
	jokers      map[jokerKey]roster.JokerPersonnel

	// Fail hooks let tests inject storage failures per operation.
	FailInsertAssignments bool
	FailDeleteAssignment  bool
	FailInsertJoker       bool
	FailInsertLeaveDays   bool
}

type leaveKey struct {
	Tenant roster.TenantID
	ID     roster.LeaveID
}
type dayKey struct {
	Tenant roster.TenantID
	ID     roster.LeaveDayID
}
type tenantKey struct {
	Tenant roster.TenantID
}
type personKey struct {
	Tenant roster.TenantID
	ID     roster.PersonnelID
}
type jokerKey struct {
	Tenant roster.TenantID
	ID     roster.JokerID
}

func NewMemory() *Memory {
	return &Memory{
		leaves:      make(map[leaveKey]roster.LeaveRequest),
		leaveDays:   make(map[dayKey]roster.LeaveDay),
		assignments: make(map[tenantKey][]roster.DutyAssignment),
		personnel:   make(map[personKey]roster.Personnel),
		jokers:      make(map[jokerKey]roster.JokerPersonnel),
	}
}

// =============================================================================
// LEAVE STORE
// =============================================================================

func (m *Memory) InsertLeave(_ context.Context, tenant roster.TenantID, leave roster.LeaveRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leaves[leaveKey{tenant, leave.ID}] = leave
	return nil
}

func (m *Memory) GetLeave(_ context.Context, tenant roster.TenantID, id roster.LeaveID) (*roster.LeaveRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	leave, ok := m.leaves[leaveKey{tenant, id}]
	if !ok {
		return nil, roster.ErrLeaveNotFound
	}
	return &leave, nil
}

func (m *Memory) DeleteLeave(_ context.Context, tenant roster.TenantID, id roster.LeaveID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.leaves, leaveKey{tenant, id})
	for k, d := range m.leaveDays {
		if k.Tenant == tenant && d.LeaveID == id {
			delete(m.leaveDays, k)
		}
	}
	return nil
}

func (m *Memory) InsertLeaveDays(_ context.Context, tenant roster.TenantID, days []roster.LeaveDay) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailInsertLeaveDays {
		return errInjected
	}
	// Uniqueness check first so the batch stays atomic.
	for _, day := range days {
		for _, existing := range m.leaveDays {
			if existing.TenantID == tenant && existing.LeaveID == day.LeaveID && existing.Date.Equal(day.Date) {
				return roster.ErrDuplicateLeaveDay
			}
		}
	}
	for _, day := range days {
		m.leaveDays[dayKey{tenant, day.ID}] = day
	}
	return nil
}

func (m *Memory) GetLeaveDay(_ context.Context, tenant roster.TenantID, id roster.LeaveDayID) (*roster.LeaveDay, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	day, ok := m.leaveDays[dayKey{tenant, id}]
	if !ok {
		return nil, roster.ErrLeaveDayNotFound
	}
	return &day, nil
}

func (m *Memory) ListLeaveDays(_ context.Context, tenant roster.TenantID, leaveID roster.LeaveID) ([]roster.LeaveDay, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listDaysLocked(tenant, leaveID, false), nil
}

func (m *Memory) ListUnresolvedLeaveDays(_ context.Context, tenant roster.TenantID, leaveID roster.LeaveID) ([]roster.LeaveDay, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listDaysLocked(tenant, leaveID, true), nil
}

func (m *Memory) listDaysLocked(tenant roster.TenantID, leaveID roster.LeaveID, unresolvedOnly bool) []roster.LeaveDay {
	var days []roster.LeaveDay
	for k, d := range m.leaveDays {
		if k.Tenant != tenant || d.LeaveID != leaveID {
			continue
		}
		if unresolvedOnly && d.Resolved() {
			continue
		}
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	return days
}

func (m *Memory) MarkLeaveDaysResolved(_ context.Context, tenant roster.TenantID, leaveID roster.LeaveID, span roster.DateRange, res roster.Resolution) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	marked := 0
	for k, d := range m.leaveDays {
		if k.Tenant != tenant || d.LeaveID != leaveID || !span.Contains(d.Date) {
			continue
		}
		d.ReplacementType = res.Type
		d.ReplacementPersonnelID = res.PersonnelID
		if res.Joker != nil {
			info := *res.Joker
			d.Joker = &info
		} else {
			d.Joker = nil
		}
		m.leaveDays[k] = d
		marked++
	}
	return marked, nil
}

// =============================================================================
// ROSTER STORE
// =============================================================================

func (m *Memory) InsertAssignments(_ context.Context, tenant roster.TenantID, rows []roster.DutyAssignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailInsertAssignments {
		return errInjected
	}
	k := tenantKey{tenant}
	m.assignments[k] = append(m.assignments[k], rows...)
	return nil
}

func (m *Memory) GetOrdinaryAssignment(_ context.Context, tenant roster.TenantID, schedule roster.ScheduleID, personnel roster.PersonnelID, date roster.Date) (*roster.DutyAssignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.assignments[tenantKey{tenant}] {
		if a.ScheduleID == schedule && a.PersonnelID == personnel && a.DutyDate.Equal(date) && a.Ordinary() {
			row := a
			return &row, nil
		}
	}
	return nil, nil
}

func (m *Memory) DeleteOrdinaryAssignment(_ context.Context, tenant roster.TenantID, schedule roster.ScheduleID, personnel roster.PersonnelID, date roster.Date) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailDeleteAssignment {
		return errInjected
	}
	k := tenantKey{tenant}
	kept := m.assignments[k][:0]
	for _, a := range m.assignments[k] {
		if a.ScheduleID == schedule && a.PersonnelID == personnel && a.DutyDate.Equal(date) && a.Ordinary() {
			continue
		}
		kept = append(kept, a)
	}
	m.assignments[k] = kept
	return nil
}

func (m *Memory) ListAssignments(_ context.Context, tenant roster.TenantID, schedule roster.ScheduleID, span roster.DateRange) ([]roster.DutyAssignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var rows []roster.DutyAssignment
	for _, a := range m.assignments[tenantKey{tenant}] {
		if a.ScheduleID == schedule && span.Contains(a.DutyDate) {
			rows = append(rows, a)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].DutyDate.Before(rows[j].DutyDate) })
	return rows, nil
}

// =============================================================================
// PERSONNEL STORE
// =============================================================================

func (m *Memory) GetPersonnel(_ context.Context, tenant roster.TenantID, id roster.PersonnelID) (*roster.Personnel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.personnel[personKey{tenant, id}]
	if !ok {
		return nil, roster.ErrPersonnelNotFound
	}
	return &p, nil
}

func (m *Memory) ListPersonnel(_ context.Context, tenant roster.TenantID) ([]roster.Personnel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []roster.Personnel
	for k, p := range m.personnel {
		if k.Tenant == tenant {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// AddPersonnel seeds a registered staff member (tests/dev).
func (m *Memory) AddPersonnel(p roster.Personnel) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.personnel[personKey{p.TenantID, p.ID}] = p
}

func (m *Memory) GetJoker(_ context.Context, tenant roster.TenantID, id roster.JokerID) (*roster.JokerPersonnel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	j, ok := m.jokers[jokerKey{tenant, id}]
	if !ok {
		return nil, roster.ErrJokerNotFound
	}
	return &j, nil
}

func (m *Memory) InsertJoker(_ context.Context, tenant roster.TenantID, joker roster.JokerPersonnel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailInsertJoker {
		return errInjected
	}
	m.jokers[jokerKey{tenant, joker.ID}] = joker
	return nil
}

func (m *Memory) ListJokers(_ context.Context, tenant roster.TenantID) ([]roster.JokerPersonnel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []roster.JokerPersonnel
	for k, j := range m.jokers {
		if k.Tenant == tenant {
			out = append(out, j)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// errInjected is returned by the fail hooks.
var errInjected = injectedError{}

type injectedError struct{}

func (injectedError) Error() string { return "injected store failure" }
