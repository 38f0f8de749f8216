/*
types.go - Domain records for the employee management store

PURPOSE:
  Defines the five record kinds managed by the store facade (Employee,
  Attendance, Credit, Task, Settings) plus the history ledger entry.
  All records are plain value types: reads from the store return copies,
  so callers can mutate freely without touching stored state.

DATE/TIME CONVENTIONS:
  - Timestamps (createdAt/updatedAt, history timestamp): RFC3339 strings.
  - Calendar dates (attendance date, joining date, deadlines): "YYYY-MM-DD"
    strings. The format is fixed-width and big-endian in field order, so
    lexicographic comparison is safe and is used throughout.

ID GENERATION:
  Record IDs are Unix-millis in base36 plus a random base36 suffix:
  non-sequential, unique in practice at this scale, not guaranteed
  collision-free. History entries use UUIDs instead since they are never
  typed or compared by humans.

SEE ALSO:
  - store.go: Persistence interface over these records
  - facade.go: The only mutation path
*/
package staff

import (
	"encoding/json"
	"math/rand"
	"strconv"
	"time"
)

// DateOnly is the layout for all calendar-date strings.
const DateOnly = "2006-01-02"

// Employee statuses.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Attendance statuses.
const (
	AttendancePresent   = "present"
	AttendanceAbsent    = "absent"
	AttendanceHalfDay   = "half-day"
	AttendanceSickLeave = "sick-leave"
	AttendancePaidLeave = "paid-leave"
)

// Task priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Leave deduction modes.
const (
	DeductionPercentage = "percentage"
	DeductionFixed      = "fixed"
)

// Employee is a staff member record.
type Employee struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Salary       float64 `json:"salary"`
	JoiningDate  string  `json:"joiningDate"`
	Mobile       string  `json:"mobile"`
	Email        string  `json:"email"`
	Role         string  `json:"role"`
	ProfilePhoto string  `json:"profilePhoto,omitempty"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

// EmployeeUpdate carries a partial update; nil fields keep their prior value.
type EmployeeUpdate struct {
	Name         *string  `json:"name,omitempty"`
	Salary       *float64 `json:"salary,omitempty"`
	JoiningDate  *string  `json:"joiningDate,omitempty"`
	Mobile       *string  `json:"mobile,omitempty"`
	Email        *string  `json:"email,omitempty"`
	Role         *string  `json:"role,omitempty"`
	ProfilePhoto *string  `json:"profilePhoto,omitempty"`
	Status       *string  `json:"status,omitempty"`
}

// Attendance is one employee's mark for one date.
// Invariant: at most one record per (employeeId, date) pair.
type Attendance struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employeeId"`
	Date       string `json:"date"`
	Status     string `json:"status"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

type AttendanceUpdate struct {
	Date   *string `json:"date,omitempty"`
	Status *string `json:"status,omitempty"`
}

// Credit is a salary advance, tracked as owed until marked paid.
type Credit struct {
	ID                string  `json:"id"`
	EmployeeID        string  `json:"employeeId"`
	Amount            float64 `json:"amount"`
	DateTaken         string  `json:"dateTaken"`
	PromiseReturnDate string  `json:"promiseReturnDate"`
	IsPaid            bool    `json:"isPaid"`
	CreatedAt         string  `json:"createdAt"`
	UpdatedAt         string  `json:"updatedAt"`
}

type CreditUpdate struct {
	Amount            *float64 `json:"amount,omitempty"`
	DateTaken         *string  `json:"dateTaken,omitempty"`
	PromiseReturnDate *string  `json:"promiseReturnDate,omitempty"`
	IsPaid            *bool    `json:"isPaid,omitempty"`
}

// Task is a unit of assigned work.
type Task struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employeeId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Deadline    string `json:"deadline"`
	Priority    string `json:"priority"`
	IsCompleted bool   `json:"isCompleted"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

type TaskUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Deadline    *string `json:"deadline,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	IsCompleted *bool   `json:"isCompleted,omitempty"`
}

// LeaveDeduction configures how non-paid leave reduces salary.
type LeaveDeduction struct {
	Type  string  `json:"type"` // percentage | fixed
	Value float64 `json:"value"`
}

// WorkingHours is an optional daily schedule window.
type WorkingHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Settings is the organization-wide singleton. Updates merge field by field;
// unspecified fields keep their prior value.
type Settings struct {
	OrganizationName   string         `json:"organizationName"`
	LeaveDeduction     LeaveDeduction `json:"leaveDeduction"`
	WorkingHours       *WorkingHours  `json:"workingHours,omitempty"`
	WeekendDays        []string       `json:"weekendDays,omitempty"`
	AutoMarkAbsent     bool           `json:"autoMarkAbsent,omitempty"`
	EmailNotifications bool           `json:"emailNotifications,omitempty"`
	BackupFrequency    string         `json:"backupFrequency,omitempty"`
	CompanyAddress     string         `json:"companyAddress,omitempty"`
	CompanyPhone       string         `json:"companyPhone,omitempty"`
	CompanyEmail       string         `json:"companyEmail,omitempty"`
}

type SettingsUpdate struct {
	OrganizationName   *string         `json:"organizationName,omitempty"`
	LeaveDeduction     *LeaveDeduction `json:"leaveDeduction,omitempty"`
	WorkingHours       *WorkingHours   `json:"workingHours,omitempty"`
	WeekendDays        *[]string       `json:"weekendDays,omitempty"`
	AutoMarkAbsent     *bool           `json:"autoMarkAbsent,omitempty"`
	EmailNotifications *bool           `json:"emailNotifications,omitempty"`
	BackupFrequency    *string         `json:"backupFrequency,omitempty"`
	CompanyAddress     *string         `json:"companyAddress,omitempty"`
	CompanyPhone       *string         `json:"companyPhone,omitempty"`
	CompanyEmail       *string         `json:"companyEmail,omitempty"`
}

// DefaultSettings is the singleton's initial state on an empty store.
func DefaultSettings() Settings {
	return Settings{
		OrganizationName: "My Company",
		LeaveDeduction: LeaveDeduction{
			Type:  DeductionPercentage,
			Value: 10,
		},
	}
}

// History actions and entity kinds.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

const (
	EntityEmployee   = "employee"
	EntityAttendance = "attendance"
	EntityCredit     = "credit"
	EntityTask       = "task"
)

// HistoryEntry records one mutation. oldData is absent for creates, newData
// is absent for deletes. Entries are immutable except for the single allowed
// mutation: appending the "(UNDONE)" marker to the description.
type HistoryEntry struct {
	ID          string          `json:"id"`
	Timestamp   string          `json:"timestamp"`
	Action      string          `json:"action"`
	Entity      string          `json:"entity"`
	EntityID    string          `json:"entityId"`
	OldData     json.RawMessage `json:"oldData,omitempty"`
	NewData     json.RawMessage `json:"newData,omitempty"`
	Description string          `json:"description"`
}

// Stats is the dashboard aggregate.
type Stats struct {
	TotalEmployees     int `json:"totalEmployees"`
	AttendanceToday    int `json:"attendanceToday"`
	PendingTasks       int `json:"pendingTasks"`
	OutstandingCredits int `json:"outstandingCredits"`
}

// NewID generates a record ID: current Unix millis in base36 plus a random
// base36 suffix. Non-sequential and unique in practice at this scale.
func NewID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 36) +
		strconv.FormatInt(rand.Int63n(1<<40), 36)
}

// Now returns the current timestamp in the store's wire format.
func Now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Today returns the current date in server-local time.
func Today() string {
	return time.Now().Format(DateOnly)
}

// CurrentMonth returns the "YYYY-MM" prefix used for monthly filtering.
func CurrentMonth() string {
	return time.Now().Format("2006-01")
}
