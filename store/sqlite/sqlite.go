/*
Package sqlite provides a SQLite-backed implementation of the storage interfaces.

PURPOSE:
  Implements roster.LeaveStore, roster.RosterStore, and roster.PersonnelStore
  using SQLite. In production the same patterns apply to PostgreSQL - only
  minor SQL dialect differences.

TENANCY:
  Every table carries tenant_id and every statement filters on it. There is
  no session-global tenant: callers pass the tenant into every method, and
  a cross-tenant read is impossible by construction.

KEY TABLES:
  leave_requests:   One row per leave period
  leave_days:       One child row per calendar day of a leave
  duty_assignments: One roster row per (personnel, date), ordinary or joker
  personnel:        Registered staff (reference data)
  joker_personnel:  Ad-hoc contractors, created lazily by the engine

INVARIANT-BEARING INDEXES:
  idx_unique_leave_day:        One leave_day per (tenant, leave, date); a
                               second expansion of the same leave fails
                               loudly instead of duplicating rows
  idx_unique_ordinary_duty:    At most one non-joker assignment per
                               (tenant, schedule, personnel, date); joker
                               rows layer freely on top

BATCH SEMANTICS:
  Day batches and assignment batches are written inside one sql.Tx, so a
  rejected batch leaves nothing behind. Deletes are plain DELETE ... WHERE;
  deleting an absent row affects zero rows and is a successful no-op.

WAL MODE:
  SQLite is opened with WAL and foreign keys on, as usual.

USAGE:
  db, err := sqlite.New("./data/roster.db")
  engine := roster.NewEngine(db, db, db, logger)

SEE ALSO:
  - roster/store.go: Interface definitions and contracts
  - roster/store/memory.go: In-memory implementation for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/roster-engine/roster"
)

// Store implements all three storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS leave_requests (
		id TEXT PRIMARY KEY,
		tenant_id TEXT NOT NULL,
		personnel_id TEXT NOT NULL,
		leave_type TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		total_days TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'approved',
		document_id TEXT,
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	);

	CREATE INDEX IF NOT EXISTS idx_leaves_tenant_personnel
		ON leave_requests(tenant_id, personnel_id);

	CREATE TABLE IF NOT EXISTS leave_days (
		id TEXT PRIMARY KEY,
		leave_id TEXT NOT NULL REFERENCES leave_requests(id) ON DELETE CASCADE,
		tenant_id TEXT NOT NULL,
		personnel_id TEXT NOT NULL,
		date TEXT NOT NULL,
		leave_type TEXT NOT NULL,
		weekend BOOLEAN NOT NULL DEFAULT FALSE,
		replacement_type TEXT NOT NULL DEFAULT 'none',
		replacement_personnel_id TEXT,
		joker_name TEXT,
		joker_phone TEXT,
		joker_national_id TEXT,
		joker_company TEXT
	);

	-- One day row per (tenant, leave, date): a second expansion of the same
	-- leave must fail, not duplicate.
	CREATE UNIQUE INDEX IF NOT EXISTS idx_unique_leave_day
		ON leave_days(tenant_id, leave_id, date);
	CREATE INDEX IF NOT EXISTS idx_leave_days_unresolved
		ON leave_days(tenant_id, leave_id, replacement_type);

	CREATE TABLE IF NOT EXISTS duty_assignments (
		id TEXT PRIMARY KEY,
		tenant_id TEXT NOT NULL,
		schedule_id TEXT NOT NULL,
		personnel_id TEXT NOT NULL,
		duty_date TEXT NOT NULL,
		shift_type TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		is_joker BOOLEAN NOT NULL DEFAULT FALSE,
		joker_id TEXT,
		joker_name TEXT,
		joker_phone TEXT,
		joker_national_id TEXT,
		joker_company TEXT,
		original_personnel_id TEXT,
		original_shift_type TEXT,
		notes TEXT
	);

	-- At most one ordinary (non-joker) row per (tenant, schedule, personnel,
	-- date); jokers layer on top without limit.
	CREATE UNIQUE INDEX IF NOT EXISTS idx_unique_ordinary_duty
		ON duty_assignments(tenant_id, schedule_id, personnel_id, duty_date)
		WHERE is_joker = FALSE;
	CREATE INDEX IF NOT EXISTS idx_duty_schedule_date
		ON duty_assignments(tenant_id, schedule_id, duty_date);

	CREATE TABLE IF NOT EXISTS personnel (
		id TEXT PRIMARY KEY,
		tenant_id TEXT NOT NULL,
		name TEXT NOT NULL,
		phone TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_personnel_tenant
		ON personnel(tenant_id);

	CREATE TABLE IF NOT EXISTS joker_personnel (
		id TEXT PRIMARY KEY,
		tenant_id TEXT NOT NULL,
		name TEXT NOT NULL,
		phone TEXT,
		national_id TEXT,
		company TEXT,
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	);

	CREATE INDEX IF NOT EXISTS idx_jokers_tenant
		ON joker_personnel(tenant_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// LEAVE STORE (roster.LeaveStore interface)
// =============================================================================

// InsertLeave persists a leave request.
func (s *Store) InsertLeave(ctx context.Context, tenant roster.TenantID, leave roster.LeaveRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO leave_requests
		(id, tenant_id, personnel_id, leave_type, start_date, end_date, total_days, status, document_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		leave.ID, tenant, leave.PersonnelID, leave.LeaveType,
		leave.Period.Start.String(), leave.Period.End.String(),
		leave.TotalDays.String(), leave.Status, leave.DocumentID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert leave: %w", err)
	}
	return nil
}

// GetLeave returns a leave request by id.
func (s *Store) GetLeave(ctx context.Context, tenant roster.TenantID, id roster.LeaveID) (*roster.LeaveRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, personnel_id, leave_type, start_date, end_date, total_days, status, COALESCE(document_id, '')
		FROM leave_requests WHERE tenant_id = ? AND id = ?`, tenant, id)

	var leave roster.LeaveRequest
	var start, end, totalDays string
	err := row.Scan(&leave.ID, &leave.PersonnelID, &leave.LeaveType, &start, &end, &totalDays, &leave.Status, &leave.DocumentID)
	if err == sql.ErrNoRows {
		return nil, roster.ErrLeaveNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load leave: %w", err)
	}

	leave.TenantID = tenant
	if leave.Period.Start, err = roster.ParseDate(start); err != nil {
		return nil, err
	}
	if leave.Period.End, err = roster.ParseDate(end); err != nil {
		return nil, err
	}
	if leave.TotalDays, err = decimal.NewFromString(totalDays); err != nil {
		return nil, fmt.Errorf("failed to parse total_days: %w", err)
	}
	return &leave, nil
}

// DeleteLeave removes a leave and, via FK cascade, all of its day rows.
func (s *Store) DeleteLeave(ctx context.Context, tenant roster.TenantID, id roster.LeaveID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM leave_requests WHERE tenant_id = ? AND id = ?`, tenant, id); err != nil {
		return fmt.Errorf("failed to delete leave: %w", err)
	}
	return nil
}

// InsertLeaveDays persists a day batch atomically.
func (s *Store) InsertLeaveDays(ctx context.Context, tenant roster.TenantID, days []roster.LeaveDay) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, day := range days {
		joker := day.Joker
		if joker == nil {
			joker = &roster.JokerInfo{}
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO leave_days
			(id, leave_id, tenant_id, personnel_id, date, leave_type, weekend,
			 replacement_type, replacement_personnel_id,
			 joker_name, joker_phone, joker_national_id, joker_company)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			day.ID, day.LeaveID, tenant, day.PersonnelID, day.Date.String(),
			day.LeaveType, day.Weekend, day.ReplacementType, day.ReplacementPersonnelID,
			joker.Name, joker.Phone, joker.NationalID, joker.Company,
		)
		if err != nil {
			if isUniqueConstraintError(err) {
				return roster.ErrDuplicateLeaveDay
			}
			return fmt.Errorf("failed to insert leave day: %w", err)
		}
	}
	return tx.Commit()
}

// GetLeaveDay returns a single leave day by id.
func (s *Store) GetLeaveDay(ctx context.Context, tenant roster.TenantID, id roster.LeaveDayID) (*roster.LeaveDay, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.queryLeaveDays(ctx, tenant, `WHERE tenant_id = ? AND id = ?`, tenant, id)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, roster.ErrLeaveDayNotFound
	}
	return &rows[0], nil
}

// ListLeaveDays returns all days of a leave ordered by date.
func (s *Store) ListLeaveDays(ctx context.Context, tenant roster.TenantID, leaveID roster.LeaveID) ([]roster.LeaveDay, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryLeaveDays(ctx, tenant, `WHERE tenant_id = ? AND leave_id = ? ORDER BY date ASC`, tenant, leaveID)
}

// ListUnresolvedLeaveDays returns the days still at replacement_type none.
func (s *Store) ListUnresolvedLeaveDays(ctx context.Context, tenant roster.TenantID, leaveID roster.LeaveID) ([]roster.LeaveDay, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryLeaveDays(ctx, tenant,
		`WHERE tenant_id = ? AND leave_id = ? AND replacement_type = 'none' ORDER BY date ASC`,
		tenant, leaveID)
}

func (s *Store) queryLeaveDays(ctx context.Context, tenant roster.TenantID, where string, args ...any) ([]roster.LeaveDay, error) {
	query := `
		SELECT id, leave_id, personnel_id, date, leave_type, weekend,
		       replacement_type, COALESCE(replacement_personnel_id, ''),
		       COALESCE(joker_name, ''), COALESCE(joker_phone, ''),
		       COALESCE(joker_national_id, ''), COALESCE(joker_company, '')
		FROM leave_days ` + where

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave days: %w", err)
	}
	defer rows.Close()

	var days []roster.LeaveDay
	for rows.Next() {
		var day roster.LeaveDay
		var date string
		var joker roster.JokerInfo
		if err := rows.Scan(&day.ID, &day.LeaveID, &day.PersonnelID, &date, &day.LeaveType, &day.Weekend,
			&day.ReplacementType, &day.ReplacementPersonnelID,
			&joker.Name, &joker.Phone, &joker.NationalID, &joker.Company); err != nil {
			return nil, fmt.Errorf("failed to scan leave day: %w", err)
		}
		if day.Date, err = roster.ParseDate(date); err != nil {
			return nil, err
		}
		day.TenantID = tenant
		if day.ReplacementType == roster.ReplacementJoker {
			day.Joker = &joker
		}
		days = append(days, day)
	}
	return days, rows.Err()
}

// MarkLeaveDaysResolved stamps the resolution onto every day in the span.
func (s *Store) MarkLeaveDaysResolved(ctx context.Context, tenant roster.TenantID, leaveID roster.LeaveID, span roster.DateRange, res roster.Resolution) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	joker := res.Joker
	if joker == nil {
		joker = &roster.JokerInfo{}
	}
	result, err := s.db.ExecContext(ctx, `
		UPDATE leave_days
		SET replacement_type = ?, replacement_personnel_id = ?,
		    joker_name = ?, joker_phone = ?, joker_national_id = ?, joker_company = ?
		WHERE tenant_id = ? AND leave_id = ? AND date >= ? AND date <= ?`,
		res.Type, res.PersonnelID, joker.Name, joker.Phone, joker.NationalID, joker.Company,
		tenant, leaveID, span.Start.String(), span.End.String(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark leave days: %w", err)
	}
	n, err := result.RowsAffected()
	return int(n), err
}

// =============================================================================
// ROSTER STORE (roster.RosterStore interface)
// =============================================================================

// InsertAssignments persists a batch of roster rows atomically.
func (s *Store) InsertAssignments(ctx context.Context, tenant roster.TenantID, assignments []roster.DutyAssignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, a := range assignments {
		joker := a.JokerInfo
		if joker == nil {
			joker = &roster.JokerInfo{}
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO duty_assignments
			(id, tenant_id, schedule_id, personnel_id, duty_date, shift_type, start_time, end_time,
			 is_joker, joker_id, joker_name, joker_phone, joker_national_id, joker_company,
			 original_personnel_id, original_shift_type, notes)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ID, tenant, a.ScheduleID, a.PersonnelID, a.DutyDate.String(),
			a.ShiftType, a.StartTime.String(), a.EndTime.String(),
			a.IsJoker, a.JokerID, joker.Name, joker.Phone, joker.NationalID, joker.Company,
			a.OriginalPersonnelID, a.OriginalShiftType, a.Notes,
		)
		if err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
	}
	return tx.Commit()
}

// GetOrdinaryAssignment returns the non-joker row for the key, or nil.
func (s *Store) GetOrdinaryAssignment(ctx context.Context, tenant roster.TenantID, schedule roster.ScheduleID, personnel roster.PersonnelID, date roster.Date) (*roster.DutyAssignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.queryAssignments(ctx, tenant, `
		WHERE tenant_id = ? AND schedule_id = ? AND personnel_id = ? AND duty_date = ? AND is_joker = FALSE`,
		tenant, schedule, personnel, date.String())
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// DeleteOrdinaryAssignment removes the non-joker row for the key.
// Deleting an absent row is a successful no-op.
func (s *Store) DeleteOrdinaryAssignment(ctx context.Context, tenant roster.TenantID, schedule roster.ScheduleID, personnel roster.PersonnelID, date roster.Date) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		DELETE FROM duty_assignments
		WHERE tenant_id = ? AND schedule_id = ? AND personnel_id = ? AND duty_date = ? AND is_joker = FALSE`,
		tenant, schedule, personnel, date.String())
	if err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	return nil
}

// ListAssignments returns every roster row on the schedule in the span.
func (s *Store) ListAssignments(ctx context.Context, tenant roster.TenantID, schedule roster.ScheduleID, span roster.DateRange) ([]roster.DutyAssignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryAssignments(ctx, tenant, `
		WHERE tenant_id = ? AND schedule_id = ? AND duty_date >= ? AND duty_date <= ?
		ORDER BY duty_date ASC, is_joker ASC`,
		tenant, schedule, span.Start.String(), span.End.String())
}

func (s *Store) queryAssignments(ctx context.Context, tenant roster.TenantID, where string, args ...any) ([]roster.DutyAssignment, error) {
	query := `
		SELECT id, schedule_id, personnel_id, duty_date, shift_type, start_time, end_time,
		       is_joker, COALESCE(joker_id, ''),
		       COALESCE(joker_name, ''), COALESCE(joker_phone, ''),
		       COALESCE(joker_national_id, ''), COALESCE(joker_company, ''),
		       COALESCE(original_personnel_id, ''), COALESCE(original_shift_type, ''),
		       COALESCE(notes, '')
		FROM duty_assignments ` + where

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var out []roster.DutyAssignment
	for rows.Next() {
		var a roster.DutyAssignment
		var date, start, end string
		var joker roster.JokerInfo
		if err := rows.Scan(&a.ID, &a.ScheduleID, &a.PersonnelID, &date, &a.ShiftType, &start, &end,
			&a.IsJoker, &a.JokerID, &joker.Name, &joker.Phone, &joker.NationalID, &joker.Company,
			&a.OriginalPersonnelID, &a.OriginalShiftType, &a.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		a.TenantID = tenant
		if a.DutyDate, err = roster.ParseDate(date); err != nil {
			return nil, err
		}
		if a.StartTime, err = roster.ParseClockTime(start); err != nil {
			return nil, err
		}
		if a.EndTime, err = roster.ParseClockTime(end); err != nil {
			return nil, err
		}
		if a.IsJoker {
			a.JokerInfo = &joker
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// =============================================================================
// PERSONNEL STORE (roster.PersonnelStore interface)
// =============================================================================

// GetPersonnel returns a registered staff member.
func (s *Store) GetPersonnel(ctx context.Context, tenant roster.TenantID, id roster.PersonnelID) (*roster.Personnel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var p roster.Personnel
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, COALESCE(phone, '') FROM personnel WHERE tenant_id = ? AND id = ?`,
		tenant, id).Scan(&p.ID, &p.Name, &p.Phone)
	if err == sql.ErrNoRows {
		return nil, roster.ErrPersonnelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load personnel: %w", err)
	}
	p.TenantID = tenant
	return &p, nil
}

// ListPersonnel returns all registered staff for the tenant.
func (s *Store) ListPersonnel(ctx context.Context, tenant roster.TenantID) ([]roster.Personnel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, COALESCE(phone, '') FROM personnel WHERE tenant_id = ? ORDER BY name ASC`, tenant)
	if err != nil {
		return nil, fmt.Errorf("failed to query personnel: %w", err)
	}
	defer rows.Close()

	var out []roster.Personnel
	for rows.Next() {
		var p roster.Personnel
		if err := rows.Scan(&p.ID, &p.Name, &p.Phone); err != nil {
			return nil, fmt.Errorf("failed to scan personnel: %w", err)
		}
		p.TenantID = tenant
		out = append(out, p)
	}
	return out, rows.Err()
}

// AddPersonnel seeds a registered staff member (reference data; normally
// owned by the external personnel service).
func (s *Store) AddPersonnel(ctx context.Context, p roster.Personnel) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO personnel (id, tenant_id, name, phone) VALUES (?, ?, ?, ?)`,
		p.ID, p.TenantID, p.Name, p.Phone)
	if err != nil {
		return fmt.Errorf("failed to insert personnel: %w", err)
	}
	return nil
}

// GetJoker returns an existing joker.
func (s *Store) GetJoker(ctx context.Context, tenant roster.TenantID, id roster.JokerID) (*roster.JokerPersonnel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var j roster.JokerPersonnel
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(phone, ''), COALESCE(national_id, ''), COALESCE(company, '')
		FROM joker_personnel WHERE tenant_id = ? AND id = ?`,
		tenant, id).Scan(&j.ID, &j.Name, &j.Phone, &j.NationalID, &j.Company)
	if err == sql.ErrNoRows {
		return nil, roster.ErrJokerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load joker: %w", err)
	}
	j.TenantID = tenant
	return &j, nil
}

// InsertJoker persists a freshly supplied joker.
func (s *Store) InsertJoker(ctx context.Context, tenant roster.TenantID, joker roster.JokerPersonnel) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO joker_personnel (id, tenant_id, name, phone, national_id, company)
		VALUES (?, ?, ?, ?, ?, ?)`,
		joker.ID, tenant, joker.Name, joker.Phone, joker.NationalID, joker.Company)
	if err != nil {
		return fmt.Errorf("failed to insert joker: %w", err)
	}
	return nil
}

// ListJokers returns all jokers for the tenant.
func (s *Store) ListJokers(ctx context.Context, tenant roster.TenantID) ([]roster.JokerPersonnel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(phone, ''), COALESCE(national_id, ''), COALESCE(company, '')
		FROM joker_personnel WHERE tenant_id = ? ORDER BY name ASC`, tenant)
	if err != nil {
		return nil, fmt.Errorf("failed to query jokers: %w", err)
	}
	defer rows.Close()

	var out []roster.JokerPersonnel
	for rows.Next() {
		var j roster.JokerPersonnel
		if err := rows.Scan(&j.ID, &j.Name, &j.Phone, &j.NationalID, &j.Company); err != nil {
			return nil, fmt.Errorf("failed to scan joker: %w", err)
		}
		j.TenantID = tenant
		out = append(out, j)
	}
	return out, rows.Err()
}

// =============================================================================
// HELPERS
// =============================================================================

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
