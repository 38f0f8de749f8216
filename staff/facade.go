/*
facade.go - Store facade: the single entry point for all entity mutation

PURPOSE:
  Wraps every mutation so that (a) business invariants are checked,
  (b) the history ledger is appended, (c) callers get the committed or
  rejected result. The facade is the ONLY writer to the history ledger.

FAILURE SEMANTICS:
  - Not found: (nil, nil) from lookups/updates, (false, nil) from deletes.
    Absence is an expected outcome, never an error.
  - Validation failure: raised as an error wrapping ErrValidation with a
    human-readable message. The operation has no partial effect - no record
    written, no history entry appended.
  - Storage failure: bubbled up unchanged.

CONCURRENCY:
  A single mutex serializes mutations. The attendance uniqueness check is
  a check-then-act sequence, so it must not interleave with a concurrent
  create for the same (employee, date). Reads take the same lock only when
  they feed a mutation in the same call.

CASCADE CLEANUP:
  Deleting an employee removes all dependent attendance, credit and task
  records first. Each dependent table registers a cleanup hook at
  construction, keeping the dependency direction explicit. Every non-empty
  cleanup is logged as its own ledger entry before the employee's delete
  entry.

SEE ALSO:
  - store.go: Low-level table access
  - undo.go: Snapshot-based reversal
  - payroll.go: Derived salary breakdown
*/
package staff

import (
	"context"
	"fmt"
	"sync"
)

// Facade coordinates entity tables, invariant checks and the history ledger.
// Construct once at process start and inject into request handlers.
type Facade struct {
	mu       sync.Mutex
	store    Store
	cleanups []cleanupHook
}

// cleanupHook removes one dependent table's records when an employee is
// deleted. describe builds the ledger message for a non-empty cleanup.
type cleanupHook struct {
	entity   string
	run      func(ctx context.Context, employeeID string) (int, error)
	describe func(n int) string
}

// NewFacade creates a facade over the given store and registers the
// dependent-table cleanup hooks for employee deletion.
func NewFacade(store Store) *Facade {
	f := &Facade{store: store}
	f.cleanups = []cleanupHook{
		{
			entity: EntityAttendance,
			run:    store.DeleteAttendanceByEmployee,
			describe: func(n int) string {
				return fmt.Sprintf("Cleaned up %d attendance records for deleted employee", n)
			},
		},
		{
			entity: EntityCredit,
			run:    store.DeleteCreditsByEmployee,
			describe: func(n int) string {
				return fmt.Sprintf("Cleaned up %d credit records for deleted employee", n)
			},
		},
		{
			entity: EntityTask,
			run:    store.DeleteTasksByEmployee,
			describe: func(n int) string {
				return fmt.Sprintf("Cleaned up %d task records for deleted employee", n)
			},
		},
	}
	return f
}

// Store exposes the underlying store for read-only wiring (tests, seeding).
func (f *Facade) Store() Store { return f.store }

// =============================================================================
// EMPLOYEES
// =============================================================================

// CreateEmployee stores a new employee. ID and timestamps are generated here;
// any values on the input are ignored.
func (f *Facade) CreateEmployee(ctx context.Context, e Employee) (Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if e.Name == "" {
		return Employee{}, validationf("employee name is required")
	}
	if e.Salary < 0 {
		return Employee{}, validationf("salary must not be negative")
	}
	if e.Status == "" {
		e.Status = StatusActive
	}

	now := Now()
	e.ID = NewID()
	e.CreatedAt = now
	e.UpdatedAt = now

	if err := f.store.PutEmployee(ctx, e); err != nil {
		return Employee{}, err
	}

	entry := newHistoryEntry(ActionCreate, EntityEmployee, e.ID,
		fmt.Sprintf("Created employee: %s", e.Name), nil, e)
	if err := f.store.AppendHistory(ctx, entry); err != nil {
		return Employee{}, err
	}
	return e, nil
}

// Employee returns the record, or nil if the id does not exist.
func (f *Facade) Employee(ctx context.Context, id string) (*Employee, error) {
	return f.store.GetEmployee(ctx, id)
}

// Employees returns all employee records.
func (f *Facade) Employees(ctx context.Context) ([]Employee, error) {
	return f.store.ListEmployees(ctx)
}

// UpdateEmployee merges the partial update onto the existing record.
// Returns nil if the id does not exist.
func (f *Facade) UpdateEmployee(ctx context.Context, id string, upd EmployeeUpdate) (*Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	old, err := f.store.GetEmployee(ctx, id)
	if err != nil || old == nil {
		return nil, err
	}

	e := *old
	if upd.Name != nil {
		e.Name = *upd.Name
	}
	if upd.Salary != nil {
		if *upd.Salary < 0 {
			return nil, validationf("salary must not be negative")
		}
		e.Salary = *upd.Salary
	}
	if upd.JoiningDate != nil {
		e.JoiningDate = *upd.JoiningDate
	}
	if upd.Mobile != nil {
		e.Mobile = *upd.Mobile
	}
	if upd.Email != nil {
		e.Email = *upd.Email
	}
	if upd.Role != nil {
		e.Role = *upd.Role
	}
	if upd.ProfilePhoto != nil {
		e.ProfilePhoto = *upd.ProfilePhoto
	}
	if upd.Status != nil {
		e.Status = *upd.Status
	}
	e.UpdatedAt = Now()

	if err := f.store.PutEmployee(ctx, e); err != nil {
		return nil, err
	}

	entry := newHistoryEntry(ActionUpdate, EntityEmployee, id,
		fmt.Sprintf("Updated employee: %s", old.Name), old, e)
	if err := f.store.AppendHistory(ctx, entry); err != nil {
		return nil, err
	}
	return &e, nil
}

// DeleteEmployee removes the employee and cascades over dependent records.
// Returns false if the id did not exist (no-op, nothing logged).
func (f *Facade) DeleteEmployee(ctx context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	old, err := f.store.GetEmployee(ctx, id)
	if err != nil || old == nil {
		return false, err
	}

	for _, hook := range f.cleanups {
		n, err := hook.run(ctx, id)
		if err != nil {
			return false, err
		}
		if n > 0 {
			entry := newHistoryEntry(ActionDelete, hook.entity, "cleanup",
				hook.describe(n), nil, nil)
			if err := f.store.AppendHistory(ctx, entry); err != nil {
				return false, err
			}
		}
	}

	deleted, err := f.store.DeleteEmployee(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}

	entry := newHistoryEntry(ActionDelete, EntityEmployee, id,
		fmt.Sprintf("Deleted employee: %s", old.Name), old, nil)
	if err := f.store.AppendHistory(ctx, entry); err != nil {
		return false, err
	}
	return true, nil
}

// =============================================================================
// ATTENDANCE
// =============================================================================

// CreateAttendance marks an employee for a date. The employee must exist and
// must not already have a record for the date; on a duplicate the error names
// the existing status and nothing is written.
func (f *Facade) CreateAttendance(ctx context.Context, a Attendance) (Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	emp, err := f.store.GetEmployee(ctx, a.EmployeeID)
	if err != nil {
		return Attendance{}, err
	}
	if emp == nil {
		return Attendance{}, validationf("employee %s does not exist", a.EmployeeID)
	}

	existing, err := f.store.FindAttendance(ctx, a.EmployeeID, a.Date)
	if err != nil {
		return Attendance{}, err
	}
	if existing != nil {
		return Attendance{}, &DuplicateAttendanceError{
			EmployeeID:     a.EmployeeID,
			Date:           a.Date,
			ExistingStatus: existing.Status,
		}
	}

	now := Now()
	a.ID = NewID()
	a.CreatedAt = now
	a.UpdatedAt = now

	if err := f.store.PutAttendance(ctx, a); err != nil {
		return Attendance{}, err
	}

	entry := newHistoryEntry(ActionCreate, EntityAttendance, a.ID,
		fmt.Sprintf("Marked %s as %s on %s", emp.Name, a.Status, a.Date), nil, a)
	if err := f.store.AppendHistory(ctx, entry); err != nil {
		return Attendance{}, err
	}
	return a, nil
}

func (f *Facade) Attendance(ctx context.Context, id string) (*Attendance, error) {
	return f.store.GetAttendance(ctx, id)
}

func (f *Facade) AllAttendance(ctx context.Context) ([]Attendance, error) {
	return f.store.ListAttendance(ctx)
}

func (f *Facade) AttendanceByEmployee(ctx context.Context, employeeID string) ([]Attendance, error) {
	return f.store.ListAttendanceByEmployee(ctx, employeeID)
}

func (f *Facade) AttendanceByDate(ctx context.Context, date string) ([]Attendance, error) {
	return f.store.ListAttendanceByDate(ctx, date)
}

// UpdateAttendance merges the partial update. Returns nil if missing.
func (f *Facade) UpdateAttendance(ctx context.Context, id string, upd AttendanceUpdate) (*Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	old, err := f.store.GetAttendance(ctx, id)
	if err != nil || old == nil {
		return nil, err
	}

	a := *old
	if upd.Date != nil && *upd.Date != a.Date {
		// Moving a mark to another date must not collide with an existing one.
		existing, err := f.store.FindAttendance(ctx, a.EmployeeID, *upd.Date)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, &DuplicateAttendanceError{
				EmployeeID:     a.EmployeeID,
				Date:           *upd.Date,
				ExistingStatus: existing.Status,
			}
		}
		a.Date = *upd.Date
	}
	if upd.Status != nil {
		a.Status = *upd.Status
	}
	a.UpdatedAt = Now()

	if err := f.store.PutAttendance(ctx, a); err != nil {
		return nil, err
	}

	name := f.employeeName(ctx, a.EmployeeID)
	entry := newHistoryEntry(ActionUpdate, EntityAttendance, id,
		fmt.Sprintf("Updated attendance for %s on %s", name, old.Date), old, a)
	if err := f.store.AppendHistory(ctx, entry); err != nil {
		return nil, err
	}
	return &a, nil
}

// DeleteAttendance removes one mark. Returns false if missing.
func (f *Facade) DeleteAttendance(ctx context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	old, err := f.store.GetAttendance(ctx, id)
	if err != nil || old == nil {
		return false, err
	}

	deleted, err := f.store.DeleteAttendance(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}

	name := f.employeeName(ctx, old.EmployeeID)
	entry := newHistoryEntry(ActionDelete, EntityAttendance, id,
		fmt.Sprintf("Deleted attendance for %s on %s", name, old.Date), old, nil)
	if err := f.store.AppendHistory(ctx, entry); err != nil {
		return false, err
	}
	return true, nil
}

// ResetDailyAttendance bulk-deletes attendance for the date (today if empty).
// Returns the count removed; logged when anything was deleted.
func (f *Facade) ResetDailyAttendance(ctx context.Context, date string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if date == "" {
		date = Today()
	}

	count, err := f.store.DeleteAttendanceByDate(ctx, date)
	if err != nil || count == 0 {
		return count, err
	}

	entry := newHistoryEntry(ActionDelete, EntityAttendance, "bulk",
		fmt.Sprintf("Reset attendance for %s - deleted %d records", date, count), nil, nil)
	if err := f.store.AppendHistory(ctx, entry); err != nil {
		return count, err
	}
	return count, nil
}

// HasAttendanceForDate returns how many marks exist for the date.
// Used for the auto-reset "should I reset" check.
func (f *Facade) HasAttendanceForDate(ctx context.Context, date string) (int, error) {
	records, err := f.store.ListAttendanceByDate(ctx, date)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

// =============================================================================
// CREDITS
// =============================================================================

// CreateCredit records a salary advance.
func (f *Facade) CreateCredit(ctx context.Context, c Credit) (Credit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if c.Amount < 0 {
		return Credit{}, validationf("credit amount must not be negative")
	}

	now := Now()
	c.ID = NewID()
	c.CreatedAt = now
	c.UpdatedAt = now

	if err := f.store.PutCredit(ctx, c); err != nil {
		return Credit{}, err
	}

	name := f.employeeName(ctx, c.EmployeeID)
	entry := newHistoryEntry(ActionCreate, EntityCredit, c.ID,
		fmt.Sprintf("Added credit: %.2f for %s", c.Amount, name), nil, c)
	if err := f.store.AppendHistory(ctx, entry); err != nil {
		return Credit{}, err
	}
	return c, nil
}

func (f *Facade) Credit(ctx context.Context, id string) (*Credit, error) {
	return f.store.GetCredit(ctx, id)
}

func (f *Facade) Credits(ctx context.Context) ([]Credit, error) {
	return f.store.ListCredits(ctx)
}

func (f *Facade) CreditsByEmployee(ctx context.Context, employeeID string) ([]Credit, error) {
	return f.store.ListCreditsByEmployee(ctx, employeeID)
}

func (f *Facade) UpdateCredit(ctx context.Context, id string, upd CreditUpdate) (*Credit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	old, err := f.store.GetCredit(ctx, id)
	if err != nil || old == nil {
		return nil, err
	}

	c := *old
	if upd.Amount != nil {
		if *upd.Amount < 0 {
			return nil, validationf("credit amount must not be negative")
		}
		c.Amount = *upd.Amount
	}
	if upd.DateTaken != nil {
		c.DateTaken = *upd.DateTaken
	}
	if upd.PromiseReturnDate != nil {
		c.PromiseReturnDate = *upd.PromiseReturnDate
	}
	if upd.IsPaid != nil {
		c.IsPaid = *upd.IsPaid
	}
	c.UpdatedAt = Now()

	if err := f.store.PutCredit(ctx, c); err != nil {
		return nil, err
	}

	name := f.employeeName(ctx, c.EmployeeID)
	entry := newHistoryEntry(ActionUpdate, EntityCredit, id,
		fmt.Sprintf("Updated credit: %.2f for %s", old.Amount, name), old, c)
	if err := f.store.AppendHistory(ctx, entry); err != nil {
		return nil, err
	}
	return &c, nil
}

func (f *Facade) DeleteCredit(ctx context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	old, err := f.store.GetCredit(ctx, id)
	if err != nil || old == nil {
		return false, err
	}

	deleted, err := f.store.DeleteCredit(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}

	name := f.employeeName(ctx, old.EmployeeID)
	entry := newHistoryEntry(ActionDelete, EntityCredit, id,
		fmt.Sprintf("Deleted credit: %.2f for %s", old.Amount, name), old, nil)
	if err := f.store.AppendHistory(ctx, entry); err != nil {
		return false, err
	}
	return true, nil
}

// =============================================================================
// TASKS
// =============================================================================

// CreateTask assigns a task to an employee.
func (f *Facade) CreateTask(ctx context.Context, t Task) (Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if t.Title == "" {
		return Task{}, validationf("task title is required")
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}

	now := Now()
	t.ID = NewID()
	t.CreatedAt = now
	t.UpdatedAt = now

	if err := f.store.PutTask(ctx, t); err != nil {
		return Task{}, err
	}

	name := f.employeeName(ctx, t.EmployeeID)
	entry := newHistoryEntry(ActionCreate, EntityTask, t.ID,
		fmt.Sprintf("Created task: %s for %s", t.Title, name), nil, t)
	if err := f.store.AppendHistory(ctx, entry); err != nil {
		return Task{}, err
	}
	return t, nil
}

func (f *Facade) Task(ctx context.Context, id string) (*Task, error) {
	return f.store.GetTask(ctx, id)
}

func (f *Facade) Tasks(ctx context.Context) ([]Task, error) {
	return f.store.ListTasks(ctx)
}

func (f *Facade) TasksByEmployee(ctx context.Context, employeeID string) ([]Task, error) {
	return f.store.ListTasksByEmployee(ctx, employeeID)
}

func (f *Facade) UpdateTask(ctx context.Context, id string, upd TaskUpdate) (*Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	old, err := f.store.GetTask(ctx, id)
	if err != nil || old == nil {
		return nil, err
	}

	t := *old
	if upd.Title != nil {
		t.Title = *upd.Title
	}
	if upd.Description != nil {
		t.Description = *upd.Description
	}
	if upd.Deadline != nil {
		t.Deadline = *upd.Deadline
	}
	if upd.Priority != nil {
		t.Priority = *upd.Priority
	}
	if upd.IsCompleted != nil {
		t.IsCompleted = *upd.IsCompleted
	}
	t.UpdatedAt = Now()

	if err := f.store.PutTask(ctx, t); err != nil {
		return nil, err
	}

	name := f.employeeName(ctx, t.EmployeeID)
	entry := newHistoryEntry(ActionUpdate, EntityTask, id,
		fmt.Sprintf("Updated task: %s for %s", old.Title, name), old, t)
	if err := f.store.AppendHistory(ctx, entry); err != nil {
		return nil, err
	}
	return &t, nil
}

func (f *Facade) DeleteTask(ctx context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	old, err := f.store.GetTask(ctx, id)
	if err != nil || old == nil {
		return false, err
	}

	deleted, err := f.store.DeleteTask(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}

	name := f.employeeName(ctx, old.EmployeeID)
	entry := newHistoryEntry(ActionDelete, EntityTask, id,
		fmt.Sprintf("Deleted task: %s for %s", old.Title, name), old, nil)
	if err := f.store.AppendHistory(ctx, entry); err != nil {
		return false, err
	}
	return true, nil
}

// =============================================================================
// SETTINGS
// =============================================================================

func (f *Facade) Settings(ctx context.Context) (Settings, error) {
	return f.store.GetSettings(ctx)
}

// UpdateSettings merges the partial update into the singleton.
func (f *Facade) UpdateSettings(ctx context.Context, upd SettingsUpdate) (Settings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, err := f.store.GetSettings(ctx)
	if err != nil {
		return Settings{}, err
	}

	if upd.OrganizationName != nil {
		s.OrganizationName = *upd.OrganizationName
	}
	if upd.LeaveDeduction != nil {
		if upd.LeaveDeduction.Type != DeductionPercentage && upd.LeaveDeduction.Type != DeductionFixed {
			return Settings{}, validationf("leave deduction type must be %q or %q",
				DeductionPercentage, DeductionFixed)
		}
		if upd.LeaveDeduction.Value < 0 {
			return Settings{}, validationf("leave deduction value must not be negative")
		}
		s.LeaveDeduction = *upd.LeaveDeduction
	}
	if upd.WorkingHours != nil {
		s.WorkingHours = upd.WorkingHours
	}
	if upd.WeekendDays != nil {
		s.WeekendDays = *upd.WeekendDays
	}
	if upd.AutoMarkAbsent != nil {
		s.AutoMarkAbsent = *upd.AutoMarkAbsent
	}
	if upd.EmailNotifications != nil {
		s.EmailNotifications = *upd.EmailNotifications
	}
	if upd.BackupFrequency != nil {
		s.BackupFrequency = *upd.BackupFrequency
	}
	if upd.CompanyAddress != nil {
		s.CompanyAddress = *upd.CompanyAddress
	}
	if upd.CompanyPhone != nil {
		s.CompanyPhone = *upd.CompanyPhone
	}
	if upd.CompanyEmail != nil {
		s.CompanyEmail = *upd.CompanyEmail
	}

	if err := f.store.PutSettings(ctx, s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// =============================================================================
// HISTORY & STATS
// =============================================================================

// History returns the full ledger, newest first, bounded at HistoryLimit.
func (f *Facade) History(ctx context.Context) ([]HistoryEntry, error) {
	return f.store.ListHistory(ctx)
}

// Stats computes the dashboard aggregate counts.
func (f *Facade) Stats(ctx context.Context) (Stats, error) {
	employees, err := f.store.ListEmployees(ctx)
	if err != nil {
		return Stats{}, err
	}
	todays, err := f.store.ListAttendanceByDate(ctx, Today())
	if err != nil {
		return Stats{}, err
	}
	presentToday := 0
	for _, a := range todays {
		if a.Status == AttendancePresent {
			presentToday++
		}
	}
	tasks, err := f.store.ListTasks(ctx)
	if err != nil {
		return Stats{}, err
	}
	pending := 0
	for _, t := range tasks {
		if !t.IsCompleted {
			pending++
		}
	}
	credits, err := f.store.ListCredits(ctx)
	if err != nil {
		return Stats{}, err
	}
	outstanding := 0
	for _, c := range credits {
		if !c.IsPaid {
			outstanding++
		}
	}

	return Stats{
		TotalEmployees:     len(employees),
		AttendanceToday:    presentToday,
		PendingTasks:       pending,
		OutstandingCredits: outstanding,
	}, nil
}

// employeeName resolves an employee's display name for ledger descriptions.
func (f *Facade) employeeName(ctx context.Context, id string) string {
	emp, err := f.store.GetEmployee(ctx, id)
	if err != nil || emp == nil {
		return "Unknown"
	}
	return emp.Name
}
