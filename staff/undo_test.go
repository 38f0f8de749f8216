/*
undo_test.go - Single-level reversal

Tests for:
- Undo of update restores the before-image
- Undo of create deletes the record (all entity kinds)
- Undo of delete restores the record
- Double undo rejected by the engine
- Attendance restore refused when the (employee, date) pair is reoccupied
- Bulk entries and unknown ids are not reversible
- Undo itself leaves no new ledger entry
*/
package staff_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/staffdesk/staff"
)

func TestUndoUpdateRestoresSalary(t *testing.T) {
	f := newFacade(t)
	ctx := context.Background()
	emp := createEmployee(t, f, "Alice", 1000)

	salary := 2000.0
	_, err := f.UpdateEmployee(ctx, emp.ID, staff.EmployeeUpdate{Salary: &salary})
	require.NoError(t, err)

	history, err := f.History(ctx)
	require.NoError(t, err)
	entry := history[0]
	require.Equal(t, staff.ActionUpdate, entry.Action)

	ledgerLen := len(history)
	assert.True(t, f.Undo(ctx, entry.ID))

	restored, err := f.Employee(ctx, emp.ID)
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, 1000.0, restored.Salary)

	// The entry is marked, not re-recorded: same length, UNDONE suffix.
	history, err = f.History(ctx)
	require.NoError(t, err)
	assert.Len(t, history, ledgerLen)
	assert.True(t, history[0].Undone())
}

func TestDoubleUndoRejected(t *testing.T) {
	f := newFacade(t)
	ctx := context.Background()
	emp := createEmployee(t, f, "Alice", 1000)

	salary := 2000.0
	_, err := f.UpdateEmployee(ctx, emp.ID, staff.EmployeeUpdate{Salary: &salary})
	require.NoError(t, err)

	history, err := f.History(ctx)
	require.NoError(t, err)
	entry := history[0]

	require.True(t, f.Undo(ctx, entry.ID))
	assert.False(t, f.Undo(ctx, entry.ID))

	// Still the restored value; the rejected undo had no effect.
	emp2, err := f.Employee(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, emp2.Salary)
}

func TestUndoCreateDeletesRecord(t *testing.T) {
	f := newFacade(t)
	ctx := context.Background()
	emp := createEmployee(t, f, "Alice", 50000)

	task, err := f.CreateTask(ctx, staff.Task{EmployeeID: emp.ID, Title: "Report"})
	require.NoError(t, err)

	history, err := f.History(ctx)
	require.NoError(t, err)
	entry := history[0]
	require.Equal(t, staff.ActionCreate, entry.Action)
	require.Equal(t, staff.EntityTask, entry.Entity)

	assert.True(t, f.Undo(ctx, entry.ID))

	gone, err := f.Task(ctx, task.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestUndoDeleteRestoresRecord(t *testing.T) {
	f := newFacade(t)
	ctx := context.Background()
	emp := createEmployee(t, f, "Alice", 50000)

	credit, err := f.CreateCredit(ctx, staff.Credit{
		EmployeeID: emp.ID, Amount: 500, DateTaken: "2024-06-01", PromiseReturnDate: "2024-07-01",
	})
	require.NoError(t, err)
	deleted, err := f.DeleteCredit(ctx, credit.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	history, err := f.History(ctx)
	require.NoError(t, err)
	entry := history[0]
	require.Equal(t, staff.ActionDelete, entry.Action)

	assert.True(t, f.Undo(ctx, entry.ID))

	restored, err := f.Credit(ctx, credit.ID)
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, 500.0, restored.Amount)
}

func TestUndoDeleteRefusedWhenDateReoccupied(t *testing.T) {
	f := newFacade(t)
	ctx := context.Background()
	emp := createEmployee(t, f, "Alice", 50000)

	first, err := f.CreateAttendance(ctx, staff.Attendance{
		EmployeeID: emp.ID, Date: "2024-06-10", Status: staff.AttendancePresent,
	})
	require.NoError(t, err)
	deleted, err := f.DeleteAttendance(ctx, first.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	history, err := f.History(ctx)
	require.NoError(t, err)
	deleteEntry := history[0]
	require.Equal(t, staff.ActionDelete, deleteEntry.Action)

	// A fresh mark now occupies the same (employee, date) pair; restoring
	// the deleted one would break the one-mark-per-date invariant.
	_, err = f.CreateAttendance(ctx, staff.Attendance{
		EmployeeID: emp.ID, Date: "2024-06-10", Status: staff.AttendanceSickLeave,
	})
	require.NoError(t, err)

	assert.False(t, f.Undo(ctx, deleteEntry.ID))

	records, err := f.AttendanceByEmployee(ctx, emp.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, staff.AttendanceSickLeave, records[0].Status)

	// The rejected undo left the entry unmarked, so it stays actionable.
	entry, err := f.Store().GetHistoryEntry(ctx, deleteEntry.ID)
	require.NoError(t, err)
	assert.False(t, entry.Undone())
}

func TestUndoUpdateRefusedWhenOldDateReoccupied(t *testing.T) {
	f := newFacade(t)
	ctx := context.Background()
	emp := createEmployee(t, f, "Alice", 50000)

	a, err := f.CreateAttendance(ctx, staff.Attendance{
		EmployeeID: emp.ID, Date: "2024-06-10", Status: staff.AttendancePresent,
	})
	require.NoError(t, err)
	moved := "2024-06-11"
	_, err = f.UpdateAttendance(ctx, a.ID, staff.AttendanceUpdate{Date: &moved})
	require.NoError(t, err)

	history, err := f.History(ctx)
	require.NoError(t, err)
	updateEntry := history[0]
	require.Equal(t, staff.ActionUpdate, updateEntry.Action)

	// The vacated date gets a new mark; undoing the move must not collide.
	_, err = f.CreateAttendance(ctx, staff.Attendance{
		EmployeeID: emp.ID, Date: "2024-06-10", Status: staff.AttendanceAbsent,
	})
	require.NoError(t, err)

	assert.False(t, f.Undo(ctx, updateEntry.ID))

	records, err := f.AttendanceByEmployee(ctx, emp.ID)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestUndoUpdateStatusOnlySucceeds(t *testing.T) {
	f := newFacade(t)
	ctx := context.Background()
	emp := createEmployee(t, f, "Alice", 50000)

	a, err := f.CreateAttendance(ctx, staff.Attendance{
		EmployeeID: emp.ID, Date: "2024-06-10", Status: staff.AttendancePresent,
	})
	require.NoError(t, err)
	status := staff.AttendanceHalfDay
	_, err = f.UpdateAttendance(ctx, a.ID, staff.AttendanceUpdate{Status: &status})
	require.NoError(t, err)

	history, err := f.History(ctx)
	require.NoError(t, err)

	// The record itself occupies the pair; restoring over it is no conflict.
	require.True(t, f.Undo(ctx, history[0].ID))

	restored, err := f.Attendance(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, staff.AttendancePresent, restored.Status)
}

func TestUndoUnknownID(t *testing.T) {
	f := newFacade(t)
	assert.False(t, f.Undo(context.Background(), "no-such-entry"))
}

func TestUndoBulkEntryRejected(t *testing.T) {
	f := newFacade(t)
	ctx := context.Background()
	emp := createEmployee(t, f, "Alice", 50000)

	_, err := f.CreateAttendance(ctx, staff.Attendance{
		EmployeeID: emp.ID, Date: "2024-06-10", Status: staff.AttendancePresent,
	})
	require.NoError(t, err)
	count, err := f.ResetDailyAttendance(ctx, "2024-06-10")
	require.NoError(t, err)
	require.Equal(t, 1, count)

	history, err := f.History(ctx)
	require.NoError(t, err)
	bulk := history[0]
	require.Equal(t, "bulk", bulk.EntityID)

	// Bulk entries carry no snapshot and cannot be reversed.
	assert.False(t, f.Undo(ctx, bulk.ID))
}
