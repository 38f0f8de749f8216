/*
store.go - Persistence interface for entity tables and the history ledger

PURPOSE:
  Defines the interface between the store facade and the database. One
  method set per entity table, plus the history ledger operations.
  Implementations exist for SQLite (production) and in-memory (tests/dev).

OWNERSHIP CONTRACT:
  Entity tables are exclusively owned by the Facade. Nothing outside this
  package should write through a Store directly - the Facade is the only
  mutation path, so every committed change lands in the history ledger.
  The one exception is the undo engine, which restores snapshots through
  the same low-level table access on purpose: restored state must not be
  re-recorded (single-level undo, not a redo-able stack).

SENTINEL SEMANTICS:
  - GetX returns (nil, nil) when the id does not exist.
  - DeleteX returns (false, nil) when there was nothing to delete.
  - PutX is an upsert: used for create, update and undo-restore alike.

HISTORY LEDGER:
  AppendHistory inserts at the head and trims the tail so the ledger never
  exceeds HistoryLimit entries. ListHistory is newest-first. The only
  permitted update is SetHistoryDescription (the undo marker).

IMPLEMENTATIONS:
  - store/sqlite: single-file SQLite database
  - store: in-memory maps for tests and dev

SEE ALSO:
  - facade.go: The coordination layer on top of this interface
*/
package staff

import "context"

// HistoryLimit caps the ledger size; oldest entries are evicted first.
const HistoryLimit = 100

// Store handles persistence of entity tables and the history ledger.
type Store interface {
	// Employees.
	PutEmployee(ctx context.Context, e Employee) error
	GetEmployee(ctx context.Context, id string) (*Employee, error)
	ListEmployees(ctx context.Context) ([]Employee, error)
	DeleteEmployee(ctx context.Context, id string) (bool, error)

	// Attendance.
	PutAttendance(ctx context.Context, a Attendance) error
	GetAttendance(ctx context.Context, id string) (*Attendance, error)
	ListAttendance(ctx context.Context) ([]Attendance, error)
	ListAttendanceByEmployee(ctx context.Context, employeeID string) ([]Attendance, error)
	ListAttendanceByDate(ctx context.Context, date string) ([]Attendance, error)
	// FindAttendance returns the record for (employeeID, date), or nil.
	FindAttendance(ctx context.Context, employeeID, date string) (*Attendance, error)
	DeleteAttendance(ctx context.Context, id string) (bool, error)
	// DeleteAttendanceByDate removes every record for the date. Returns the count.
	DeleteAttendanceByDate(ctx context.Context, date string) (int, error)
	// DeleteAttendanceByEmployee removes every record for the employee. Returns the count.
	DeleteAttendanceByEmployee(ctx context.Context, employeeID string) (int, error)

	// Credits.
	PutCredit(ctx context.Context, c Credit) error
	GetCredit(ctx context.Context, id string) (*Credit, error)
	ListCredits(ctx context.Context) ([]Credit, error)
	ListCreditsByEmployee(ctx context.Context, employeeID string) ([]Credit, error)
	DeleteCredit(ctx context.Context, id string) (bool, error)
	DeleteCreditsByEmployee(ctx context.Context, employeeID string) (int, error)

	// Tasks.
	PutTask(ctx context.Context, t Task) error
	GetTask(ctx context.Context, id string) (*Task, error)
	ListTasks(ctx context.Context) ([]Task, error)
	ListTasksByEmployee(ctx context.Context, employeeID string) ([]Task, error)
	DeleteTask(ctx context.Context, id string) (bool, error)
	DeleteTasksByEmployee(ctx context.Context, employeeID string) (int, error)

	// Settings singleton.
	GetSettings(ctx context.Context) (Settings, error)
	PutSettings(ctx context.Context, s Settings) error

	// History ledger. AppendHistory trims the tail past HistoryLimit.
	AppendHistory(ctx context.Context, entry HistoryEntry) error
	ListHistory(ctx context.Context) ([]HistoryEntry, error)
	GetHistoryEntry(ctx context.Context, id string) (*HistoryEntry, error)
	SetHistoryDescription(ctx context.Context, id, description string) error

	// Reset clears all data (for testing/demo).
	Reset(ctx context.Context) error

	Close() error
}
