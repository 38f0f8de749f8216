/*
facade_test.go - Facade mutation semantics

Tests for:
- Attendance uniqueness and atomicity on rejection
- Cascade delete with per-table cleanup ledger entries
- Daily attendance reset
- Settings partial merge and validation
- Not-found sentinels
- Dashboard stats
*/
package staff_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/staffdesk/staff"
	"github.com/warp/staffdesk/store"
)

func newFacade(t *testing.T) *staff.Facade {
	t.Helper()
	return staff.NewFacade(store.NewMemory())
}

func createEmployee(t *testing.T, f *staff.Facade, name string, salary float64) staff.Employee {
	t.Helper()
	e, err := f.CreateEmployee(context.Background(), staff.Employee{
		Name:        name,
		Salary:      salary,
		JoiningDate: "2024-01-01",
		Mobile:      "+15550000000",
		Email:       name + "@example.com",
		Role:        "Staff",
	})
	require.NoError(t, err)
	return e
}

func TestCreateEmployeeValidation(t *testing.T) {
	f := newFacade(t)
	ctx := context.Background()

	_, err := f.CreateEmployee(ctx, staff.Employee{Salary: 1000})
	require.Error(t, err)
	assert.True(t, staff.IsValidation(err))

	_, err = f.CreateEmployee(ctx, staff.Employee{Name: "Alice", Salary: -1})
	require.Error(t, err)
	assert.True(t, staff.IsValidation(err))

	// Rejected creates leave no trace.
	employees, err := f.Employees(ctx)
	require.NoError(t, err)
	assert.Empty(t, employees)
	history, err := f.History(ctx)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestDuplicateAttendanceAtomic(t *testing.T) {
	f := newFacade(t)
	ctx := context.Background()
	emp := createEmployee(t, f, "Alice", 50000)

	_, err := f.CreateAttendance(ctx, staff.Attendance{
		EmployeeID: emp.ID, Date: "2024-06-10", Status: staff.AttendancePresent,
	})
	require.NoError(t, err)

	recordsBefore, err := f.AllAttendance(ctx)
	require.NoError(t, err)
	historyBefore, err := f.History(ctx)
	require.NoError(t, err)

	_, err = f.CreateAttendance(ctx, staff.Attendance{
		EmployeeID: emp.ID, Date: "2024-06-10", Status: staff.AttendanceAbsent,
	})
	require.Error(t, err)

	var dup *staff.DuplicateAttendanceError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, staff.AttendancePresent, dup.ExistingStatus)
	assert.Contains(t, err.Error(), "Current status: present")

	// No partial effect: record count and ledger length unchanged.
	recordsAfter, err := f.AllAttendance(ctx)
	require.NoError(t, err)
	assert.Len(t, recordsAfter, len(recordsBefore))
	historyAfter, err := f.History(ctx)
	require.NoError(t, err)
	assert.Len(t, historyAfter, len(historyBefore))
}

func TestAttendanceRequiresEmployee(t *testing.T) {
	f := newFacade(t)

	_, err := f.CreateAttendance(context.Background(), staff.Attendance{
		EmployeeID: "ghost", Date: "2024-06-10", Status: staff.AttendancePresent,
	})
	require.Error(t, err)
	assert.True(t, staff.IsValidation(err))
}

func TestUpdateAttendanceDateCollision(t *testing.T) {
	f := newFacade(t)
	ctx := context.Background()
	emp := createEmployee(t, f, "Alice", 50000)

	a1, err := f.CreateAttendance(ctx, staff.Attendance{
		EmployeeID: emp.ID, Date: "2024-06-10", Status: staff.AttendancePresent,
	})
	require.NoError(t, err)
	_, err = f.CreateAttendance(ctx, staff.Attendance{
		EmployeeID: emp.ID, Date: "2024-06-11", Status: staff.AttendanceAbsent,
	})
	require.NoError(t, err)

	// Moving the first mark onto the second mark's date must fail.
	target := "2024-06-11"
	_, err = f.UpdateAttendance(ctx, a1.ID, staff.AttendanceUpdate{Date: &target})
	require.Error(t, err)
	var dup *staff.DuplicateAttendanceError
	assert.True(t, errors.As(err, &dup))
}

func TestDeleteEmployeeCascades(t *testing.T) {
	f := newFacade(t)
	ctx := context.Background()
	emp := createEmployee(t, f, "Alice", 50000)
	other := createEmployee(t, f, "Bob", 40000)

	_, err := f.CreateAttendance(ctx, staff.Attendance{
		EmployeeID: emp.ID, Date: "2024-06-10", Status: staff.AttendancePresent,
	})
	require.NoError(t, err)
	_, err = f.CreateCredit(ctx, staff.Credit{
		EmployeeID: emp.ID, Amount: 500, DateTaken: "2024-06-01", PromiseReturnDate: "2024-07-01",
	})
	require.NoError(t, err)
	_, err = f.CreateTask(ctx, staff.Task{EmployeeID: emp.ID, Title: "Report"})
	require.NoError(t, err)
	_, err = f.CreateTask(ctx, staff.Task{EmployeeID: other.ID, Title: "Other work"})
	require.NoError(t, err)

	deleted, err := f.DeleteEmployee(ctx, emp.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	// All dependent records are gone; the other employee's are untouched.
	att, err := f.AttendanceByEmployee(ctx, emp.ID)
	require.NoError(t, err)
	assert.Empty(t, att)
	credits, err := f.CreditsByEmployee(ctx, emp.ID)
	require.NoError(t, err)
	assert.Empty(t, credits)
	tasks, err := f.TasksByEmployee(ctx, emp.ID)
	require.NoError(t, err)
	assert.Empty(t, tasks)
	otherTasks, err := f.TasksByEmployee(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, otherTasks, 1)

	// Each non-empty cleanup logged its own entry, then the delete entry.
	history, err := f.History(ctx)
	require.NoError(t, err)
	var descriptions []string
	for _, e := range history {
		descriptions = append(descriptions, e.Description)
	}
	assert.Contains(t, descriptions, "Deleted employee: Alice")
	assert.Contains(t, descriptions, "Cleaned up 1 attendance records for deleted employee")
	assert.Contains(t, descriptions, "Cleaned up 1 credit records for deleted employee")
	assert.Contains(t, descriptions, "Cleaned up 1 task records for deleted employee")
	// Newest-first: the employee delete entry precedes its cleanups.
	assert.Equal(t, "Deleted employee: Alice", history[0].Description)
}

func TestNotFoundSentinels(t *testing.T) {
	f := newFacade(t)
	ctx := context.Background()

	e, err := f.Employee(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, e)

	name := "X"
	upd, err := f.UpdateEmployee(ctx, "missing", staff.EmployeeUpdate{Name: &name})
	require.NoError(t, err)
	assert.Nil(t, upd)

	deleted, err := f.DeleteEmployee(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, deleted)

	// A no-op delete leaves no ledger entry.
	history, err := f.History(ctx)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestResetDailyAttendance(t *testing.T) {
	f := newFacade(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		emp := createEmployee(t, f, fmt.Sprintf("Emp%d", i), 30000)
		_, err := f.CreateAttendance(ctx, staff.Attendance{
			EmployeeID: emp.ID, Date: "2024-06-10", Status: staff.AttendancePresent,
		})
		require.NoError(t, err)
	}

	count, err := f.ResetDailyAttendance(ctx, "2024-06-10")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	remaining, err := f.AttendanceByDate(ctx, "2024-06-10")
	require.NoError(t, err)
	assert.Empty(t, remaining)

	history, err := f.History(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Reset attendance for 2024-06-10 - deleted 3 records", history[0].Description)

	// Resetting an empty date is a silent no-op.
	before := len(history)
	count, err = f.ResetDailyAttendance(ctx, "2024-06-10")
	require.NoError(t, err)
	assert.Zero(t, count)
	history, err = f.History(ctx)
	require.NoError(t, err)
	assert.Len(t, history, before)
}

func TestUpdateSettingsMerge(t *testing.T) {
	f := newFacade(t)
	ctx := context.Background()

	name := "Acme Corp"
	s, err := f.UpdateSettings(ctx, staff.SettingsUpdate{OrganizationName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", s.OrganizationName)
	// Untouched fields keep defaults.
	assert.Equal(t, staff.DeductionPercentage, s.LeaveDeduction.Type)
	assert.Equal(t, 10.0, s.LeaveDeduction.Value)

	_, err = f.UpdateSettings(ctx, staff.SettingsUpdate{
		LeaveDeduction: &staff.LeaveDeduction{Type: "weekly", Value: 5},
	})
	require.Error(t, err)
	assert.True(t, staff.IsValidation(err))

	_, err = f.UpdateSettings(ctx, staff.SettingsUpdate{
		LeaveDeduction: &staff.LeaveDeduction{Type: staff.DeductionFixed, Value: -1},
	})
	require.Error(t, err)
	assert.True(t, staff.IsValidation(err))
}

func TestStats(t *testing.T) {
	f := newFacade(t)
	ctx := context.Background()

	a := createEmployee(t, f, "Alice", 50000)
	b := createEmployee(t, f, "Bob", 40000)

	_, err := f.CreateAttendance(ctx, staff.Attendance{
		EmployeeID: a.ID, Date: staff.Today(), Status: staff.AttendancePresent,
	})
	require.NoError(t, err)
	// Absent today does not count toward attendanceToday.
	_, err = f.CreateAttendance(ctx, staff.Attendance{
		EmployeeID: b.ID, Date: staff.Today(), Status: staff.AttendanceAbsent,
	})
	require.NoError(t, err)

	_, err = f.CreateTask(ctx, staff.Task{EmployeeID: a.ID, Title: "Open"})
	require.NoError(t, err)
	done, err := f.CreateTask(ctx, staff.Task{EmployeeID: a.ID, Title: "Done"})
	require.NoError(t, err)
	completed := true
	_, err = f.UpdateTask(ctx, done.ID, staff.TaskUpdate{IsCompleted: &completed})
	require.NoError(t, err)

	_, err = f.CreateCredit(ctx, staff.Credit{
		EmployeeID: b.ID, Amount: 500, DateTaken: "2024-06-01", PromiseReturnDate: "2024-07-01",
	})
	require.NoError(t, err)

	stats, err := f.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalEmployees)
	assert.Equal(t, 1, stats.AttendanceToday)
	assert.Equal(t, 1, stats.PendingTasks)
	assert.Equal(t, 1, stats.OutstandingCredits)
}

func TestSeedSampleData(t *testing.T) {
	f := newFacade(t)
	ctx := context.Background()

	require.NoError(t, staff.SeedSampleData(ctx, f))
	employees, err := f.Employees(ctx)
	require.NoError(t, err)
	assert.Len(t, employees, 2)

	todays, err := f.AttendanceByDate(ctx, staff.Today())
	require.NoError(t, err)
	assert.Len(t, todays, 2)

	// Seeding a populated store is a no-op.
	require.NoError(t, staff.SeedSampleData(ctx, f))
	employees, err = f.Employees(ctx)
	require.NoError(t, err)
	assert.Len(t, employees, 2)
}
