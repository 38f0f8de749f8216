/*
Package sqlite provides a SQLite-backed implementation of staff.Store.

PURPOSE:
  Persists the four entity tables, the settings singleton and the history
  ledger in a single database file. Use ":memory:" for an ephemeral store.

KEY TABLES:
  employees, attendance, credits, tasks: one table per entity kind
  settings:  singleton row (id = 1); leave deduction as two flat columns,
             weekendDays as a JSON array string
  history:   bounded audit ledger, newest-first by rowid

ENCODING:
  Timestamps are RFC3339 strings, calendar dates are "YYYY-MM-DD" strings
  (fixed-width, so lexicographic comparison works in SQL too). Snapshots in
  the history table are JSON text.

LEDGER BOUND:
  AppendHistory trims rows past the limit inside the same transaction as the
  insert, so the bound holds after every append.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. SQLite is opened with WAL
  (Write-Ahead Logging): multiple readers don't block, single writer at a
  time, better crash recovery.

USAGE:
  store, err := sqlite.New("./data/staffdesk.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - staff/store.go: Interface definition
  - store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/staffdesk/staff"
)

// Store implements staff.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a SQLite store at the given path and migrates the schema.
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

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		salary REAL NOT NULL,
		joiningDate TEXT NOT NULL,
		mobile TEXT NOT NULL,
		email TEXT NOT NULL,
		role TEXT NOT NULL,
		profilePhoto TEXT,
		status TEXT NOT NULL DEFAULT 'active',
		createdAt TEXT NOT NULL,
		updatedAt TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS attendance (
		id TEXT PRIMARY KEY,
		employeeId TEXT NOT NULL,
		date TEXT NOT NULL,
		status TEXT NOT NULL,
		createdAt TEXT NOT NULL,
		updatedAt TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_attendance_employee ON attendance(employeeId);
	CREATE INDEX IF NOT EXISTS idx_attendance_date ON attendance(date);
	-- One mark per employee per date. The facade checks first so it can
	-- report the existing status; this index backstops the invariant.
	CREATE UNIQUE INDEX IF NOT EXISTS idx_attendance_employee_date
		ON attendance(employeeId, date);

	CREATE TABLE IF NOT EXISTS credits (
		id TEXT PRIMARY KEY,
		employeeId TEXT NOT NULL,
		amount REAL NOT NULL,
		dateTaken TEXT NOT NULL,
		promiseReturnDate TEXT NOT NULL,
		isPaid INTEGER NOT NULL DEFAULT 0,
		createdAt TEXT NOT NULL,
		updatedAt TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_credits_employee ON credits(employeeId);

	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		employeeId TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		deadline TEXT NOT NULL DEFAULT '',
		priority TEXT NOT NULL DEFAULT 'medium',
		isCompleted INTEGER NOT NULL DEFAULT 0,
		createdAt TEXT NOT NULL,
		updatedAt TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_employee ON tasks(employeeId);

	CREATE TABLE IF NOT EXISTS settings (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		organizationName TEXT NOT NULL,
		leaveDeductionType TEXT NOT NULL,
		leaveDeductionValue REAL NOT NULL,
		workStart TEXT,
		workEnd TEXT,
		weekendDays TEXT,
		autoMarkAbsent INTEGER NOT NULL DEFAULT 0,
		emailNotifications INTEGER NOT NULL DEFAULT 0,
		backupFrequency TEXT NOT NULL DEFAULT '',
		companyAddress TEXT NOT NULL DEFAULT '',
		companyPhone TEXT NOT NULL DEFAULT '',
		companyEmail TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS history (
		id TEXT PRIMARY KEY,
		timestamp TEXT NOT NULL,
		action TEXT NOT NULL,
		entity TEXT NOT NULL,
		entityId TEXT NOT NULL,
		oldData TEXT,
		newData TEXT,
		description TEXT NOT NULL
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	defaults := staff.DefaultSettings()
	_, err := s.db.Exec(`
		INSERT OR IGNORE INTO settings (id, organizationName, leaveDeductionType, leaveDeductionValue)
		VALUES (1, ?, ?, ?)`,
		defaults.OrganizationName, defaults.LeaveDeduction.Type, defaults.LeaveDeduction.Value,
	)
	return err
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func (s *Store) PutEmployee(ctx context.Context, e staff.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO employees (id, name, salary, joiningDate, mobile, email, role, profilePhoto, status, createdAt, updatedAt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			salary = excluded.salary,
			joiningDate = excluded.joiningDate,
			mobile = excluded.mobile,
			email = excluded.email,
			role = excluded.role,
			profilePhoto = excluded.profilePhoto,
			status = excluded.status,
			updatedAt = excluded.updatedAt
	`
	_, err := s.db.ExecContext(ctx, query,
		e.ID, e.Name, e.Salary, e.JoiningDate, e.Mobile, e.Email, e.Role,
		nullString(e.ProfilePhoto), e.Status, e.CreatedAt, e.UpdatedAt,
	)
	return err
}

func (s *Store) GetEmployee(ctx context.Context, id string) (*staff.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, salary, joiningDate, mobile, email, role, profilePhoto, status, createdAt, updatedAt
		 FROM employees WHERE id = ?`, id)

	e, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]staff.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, salary, joiningDate, mobile, email, role, profilePhoto, status, createdAt, updatedAt
		 FROM employees ORDER BY createdAt`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []staff.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (s *Store) DeleteEmployee(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteOne(ctx, "DELETE FROM employees WHERE id = ?", id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (staff.Employee, error) {
	var (
		e     staff.Employee
		photo sql.NullString
	)
	err := row.Scan(&e.ID, &e.Name, &e.Salary, &e.JoiningDate, &e.Mobile,
		&e.Email, &e.Role, &photo, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	e.ProfilePhoto = photo.String
	return e, err
}

// =============================================================================
// ATTENDANCE
// =============================================================================

func (s *Store) PutAttendance(ctx context.Context, a staff.Attendance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO attendance (id, employeeId, date, status, createdAt, updatedAt)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			status = excluded.status,
			updatedAt = excluded.updatedAt
	`
	_, err := s.db.ExecContext(ctx, query,
		a.ID, a.EmployeeID, a.Date, a.Status, a.CreatedAt, a.UpdatedAt)
	return err
}

func (s *Store) GetAttendance(ctx context.Context, id string) (*staff.Attendance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryOneAttendance(ctx,
		`SELECT id, employeeId, date, status, createdAt, updatedAt FROM attendance WHERE id = ?`, id)
}

func (s *Store) ListAttendance(ctx context.Context) ([]staff.Attendance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryAttendance(ctx,
		`SELECT id, employeeId, date, status, createdAt, updatedAt FROM attendance ORDER BY date`)
}

func (s *Store) ListAttendanceByEmployee(ctx context.Context, employeeID string) ([]staff.Attendance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryAttendance(ctx,
		`SELECT id, employeeId, date, status, createdAt, updatedAt FROM attendance WHERE employeeId = ? ORDER BY date`,
		employeeID)
}

func (s *Store) ListAttendanceByDate(ctx context.Context, date string) ([]staff.Attendance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryAttendance(ctx,
		`SELECT id, employeeId, date, status, createdAt, updatedAt FROM attendance WHERE date = ?`, date)
}

func (s *Store) FindAttendance(ctx context.Context, employeeID, date string) (*staff.Attendance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryOneAttendance(ctx,
		`SELECT id, employeeId, date, status, createdAt, updatedAt FROM attendance WHERE employeeId = ? AND date = ?`,
		employeeID, date)
}

func (s *Store) DeleteAttendance(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteOne(ctx, "DELETE FROM attendance WHERE id = ?", id)
}

func (s *Store) DeleteAttendanceByDate(ctx context.Context, date string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteMany(ctx, "DELETE FROM attendance WHERE date = ?", date)
}

func (s *Store) DeleteAttendanceByEmployee(ctx context.Context, employeeID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteMany(ctx, "DELETE FROM attendance WHERE employeeId = ?", employeeID)
}

func (s *Store) queryOneAttendance(ctx context.Context, query string, args ...any) (*staff.Attendance, error) {
	var a staff.Attendance
	err := s.db.QueryRowContext(ctx, query, args...).
		Scan(&a.ID, &a.EmployeeID, &a.Date, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Store) queryAttendance(ctx context.Context, query string, args ...any) ([]staff.Attendance, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []staff.Attendance
	for rows.Next() {
		var a staff.Attendance
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.Date, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

// =============================================================================
// CREDITS
// =============================================================================

func (s *Store) PutCredit(ctx context.Context, c staff.Credit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO credits (id, employeeId, amount, dateTaken, promiseReturnDate, isPaid, createdAt, updatedAt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			amount = excluded.amount,
			dateTaken = excluded.dateTaken,
			promiseReturnDate = excluded.promiseReturnDate,
			isPaid = excluded.isPaid,
			updatedAt = excluded.updatedAt
	`
	_, err := s.db.ExecContext(ctx, query,
		c.ID, c.EmployeeID, c.Amount, c.DateTaken, c.PromiseReturnDate,
		c.IsPaid, c.CreatedAt, c.UpdatedAt)
	return err
}

func (s *Store) GetCredit(ctx context.Context, id string) (*staff.Credit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var c staff.Credit
	err := s.db.QueryRowContext(ctx,
		`SELECT id, employeeId, amount, dateTaken, promiseReturnDate, isPaid, createdAt, updatedAt
		 FROM credits WHERE id = ?`, id).
		Scan(&c.ID, &c.EmployeeID, &c.Amount, &c.DateTaken, &c.PromiseReturnDate,
			&c.IsPaid, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) ListCredits(ctx context.Context) ([]staff.Credit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryCredits(ctx,
		`SELECT id, employeeId, amount, dateTaken, promiseReturnDate, isPaid, createdAt, updatedAt
		 FROM credits ORDER BY createdAt`)
}

func (s *Store) ListCreditsByEmployee(ctx context.Context, employeeID string) ([]staff.Credit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryCredits(ctx,
		`SELECT id, employeeId, amount, dateTaken, promiseReturnDate, isPaid, createdAt, updatedAt
		 FROM credits WHERE employeeId = ? ORDER BY createdAt`, employeeID)
}

func (s *Store) DeleteCredit(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteOne(ctx, "DELETE FROM credits WHERE id = ?", id)
}

func (s *Store) DeleteCreditsByEmployee(ctx context.Context, employeeID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteMany(ctx, "DELETE FROM credits WHERE employeeId = ?", employeeID)
}

func (s *Store) queryCredits(ctx context.Context, query string, args ...any) ([]staff.Credit, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var credits []staff.Credit
	for rows.Next() {
		var c staff.Credit
		if err := rows.Scan(&c.ID, &c.EmployeeID, &c.Amount, &c.DateTaken,
			&c.PromiseReturnDate, &c.IsPaid, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		credits = append(credits, c)
	}
	return credits, rows.Err()
}

// =============================================================================
// TASKS
// =============================================================================

func (s *Store) PutTask(ctx context.Context, t staff.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO tasks (id, employeeId, title, description, deadline, priority, isCompleted, createdAt, updatedAt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			deadline = excluded.deadline,
			priority = excluded.priority,
			isCompleted = excluded.isCompleted,
			updatedAt = excluded.updatedAt
	`
	_, err := s.db.ExecContext(ctx, query,
		t.ID, t.EmployeeID, t.Title, t.Description, t.Deadline, t.Priority,
		t.IsCompleted, t.CreatedAt, t.UpdatedAt)
	return err
}

func (s *Store) GetTask(ctx context.Context, id string) (*staff.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var t staff.Task
	err := s.db.QueryRowContext(ctx,
		`SELECT id, employeeId, title, description, deadline, priority, isCompleted, createdAt, updatedAt
		 FROM tasks WHERE id = ?`, id).
		Scan(&t.ID, &t.EmployeeID, &t.Title, &t.Description, &t.Deadline,
			&t.Priority, &t.IsCompleted, &t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Store) ListTasks(ctx context.Context) ([]staff.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryTasks(ctx,
		`SELECT id, employeeId, title, description, deadline, priority, isCompleted, createdAt, updatedAt
		 FROM tasks ORDER BY createdAt`)
}

func (s *Store) ListTasksByEmployee(ctx context.Context, employeeID string) ([]staff.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryTasks(ctx,
		`SELECT id, employeeId, title, description, deadline, priority, isCompleted, createdAt, updatedAt
		 FROM tasks WHERE employeeId = ? ORDER BY createdAt`, employeeID)
}

func (s *Store) DeleteTask(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteOne(ctx, "DELETE FROM tasks WHERE id = ?", id)
}

func (s *Store) DeleteTasksByEmployee(ctx context.Context, employeeID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteMany(ctx, "DELETE FROM tasks WHERE employeeId = ?", employeeID)
}

func (s *Store) queryTasks(ctx context.Context, query string, args ...any) ([]staff.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []staff.Task
	for rows.Next() {
		var t staff.Task
		if err := rows.Scan(&t.ID, &t.EmployeeID, &t.Title, &t.Description,
			&t.Deadline, &t.Priority, &t.IsCompleted, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// =============================================================================
// SETTINGS
// =============================================================================

func (s *Store) GetSettings(ctx context.Context) (staff.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		set                staff.Settings
		workStart, workEnd sql.NullString
		weekendDays        sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT organizationName, leaveDeductionType, leaveDeductionValue,
		        workStart, workEnd, weekendDays, autoMarkAbsent, emailNotifications,
		        backupFrequency, companyAddress, companyPhone, companyEmail
		 FROM settings WHERE id = 1`).
		Scan(&set.OrganizationName, &set.LeaveDeduction.Type, &set.LeaveDeduction.Value,
			&workStart, &workEnd, &weekendDays, &set.AutoMarkAbsent, &set.EmailNotifications,
			&set.BackupFrequency, &set.CompanyAddress, &set.CompanyPhone, &set.CompanyEmail)
	if err != nil {
		return staff.Settings{}, err
	}

	if workStart.Valid && workEnd.Valid {
		set.WorkingHours = &staff.WorkingHours{Start: workStart.String, End: workEnd.String}
	}
	if weekendDays.Valid && weekendDays.String != "" {
		if err := json.Unmarshal([]byte(weekendDays.String), &set.WeekendDays); err != nil {
			return staff.Settings{}, fmt.Errorf("failed to decode weekendDays: %w", err)
		}
	}
	return set, nil
}

func (s *Store) PutSettings(ctx context.Context, set staff.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var workStart, workEnd any
	if set.WorkingHours != nil {
		workStart = set.WorkingHours.Start
		workEnd = set.WorkingHours.End
	}
	var weekendDays any
	if set.WeekendDays != nil {
		data, err := json.Marshal(set.WeekendDays)
		if err != nil {
			return err
		}
		weekendDays = string(data)
	}

	query := `
		INSERT INTO settings (id, organizationName, leaveDeductionType, leaveDeductionValue,
			workStart, workEnd, weekendDays, autoMarkAbsent, emailNotifications,
			backupFrequency, companyAddress, companyPhone, companyEmail)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			organizationName = excluded.organizationName,
			leaveDeductionType = excluded.leaveDeductionType,
			leaveDeductionValue = excluded.leaveDeductionValue,
			workStart = excluded.workStart,
			workEnd = excluded.workEnd,
			weekendDays = excluded.weekendDays,
			autoMarkAbsent = excluded.autoMarkAbsent,
			emailNotifications = excluded.emailNotifications,
			backupFrequency = excluded.backupFrequency,
			companyAddress = excluded.companyAddress,
			companyPhone = excluded.companyPhone,
			companyEmail = excluded.companyEmail
	`
	_, err := s.db.ExecContext(ctx, query,
		set.OrganizationName, set.LeaveDeduction.Type, set.LeaveDeduction.Value,
		workStart, workEnd, weekendDays, set.AutoMarkAbsent, set.EmailNotifications,
		set.BackupFrequency, set.CompanyAddress, set.CompanyPhone, set.CompanyEmail)
	return err
}

// =============================================================================
// HISTORY LEDGER
// =============================================================================

// AppendHistory inserts the entry and trims the ledger past HistoryLimit in
// the same transaction, so the bound holds after every append.
func (s *Store) AppendHistory(ctx context.Context, entry staff.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO history (id, timestamp, action, entity, entityId, oldData, newData, description)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Timestamp, entry.Action, entry.Entity, entry.EntityID,
		nullRaw(entry.OldData), nullRaw(entry.NewData), entry.Description)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM history WHERE rowid NOT IN (
			SELECT rowid FROM history ORDER BY rowid DESC LIMIT ?
		)`, staff.HistoryLimit)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// ListHistory returns the ledger newest-first.
func (s *Store) ListHistory(ctx context.Context) ([]staff.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, timestamp, action, entity, entityId, oldData, newData, description
		 FROM history ORDER BY rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []staff.HistoryEntry
	for rows.Next() {
		e, err := scanHistoryEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) GetHistoryEntry(ctx context.Context, id string) (*staff.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, timestamp, action, entity, entityId, oldData, newData, description
		 FROM history WHERE id = ?`, id)

	e, err := scanHistoryEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Store) SetHistoryDescription(ctx context.Context, id, description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"UPDATE history SET description = ? WHERE id = ?", description, id)
	return err
}

func scanHistoryEntry(row rowScanner) (staff.HistoryEntry, error) {
	var (
		e                staff.HistoryEntry
		oldData, newData sql.NullString
	)
	err := row.Scan(&e.ID, &e.Timestamp, &e.Action, &e.Entity, &e.EntityID,
		&oldData, &newData, &e.Description)
	if err != nil {
		return e, err
	}
	if oldData.Valid {
		e.OldData = json.RawMessage(oldData.String)
	}
	if newData.Valid {
		e.NewData = json.RawMessage(newData.String)
	}
	return e, nil
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo) and restores default settings.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{"history", "attendance", "credits", "tasks", "employees", "settings"}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}

	defaults := staff.DefaultSettings()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (id, organizationName, leaveDeductionType, leaveDeductionValue)
		 VALUES (1, ?, ?, ?)`,
		defaults.OrganizationName, defaults.LeaveDeduction.Type, defaults.LeaveDeduction.Value)
	return err
}

func (s *Store) deleteOne(ctx context.Context, query string, args ...any) (bool, error) {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (s *Store) deleteMany(ctx context.Context, query string, args ...any) (int, error) {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func nullString(v string) sql.NullString {
	if v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}

func nullRaw(v json.RawMessage) any {
	if len(v) == 0 {
		return nil
	}
	return string(v)
}
