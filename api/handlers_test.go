/*
handlers_test.go - HTTP contract tests

Tests for:
- Envelope shape and status codes on the happy path
- Validation failures passing their message through as 400
- Not-found sentinels mapping to 404
- Undo and bulk-reset endpoints
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/staffdesk/staff"
	"github.com/warp/staffdesk/store"
)

func newTestServer(t *testing.T) (*httptest.Server, *staff.Facade) {
	t.Helper()
	facade := staff.NewFacade(store.NewMemory())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(NewRouter(NewHandler(facade), logger, []string{"*"}))
	t.Cleanup(srv.Close)
	return srv, facade
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, apiResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp, envelope
}

// decodeData re-marshals the envelope's data field into a concrete type.
func decodeData[T any](t *testing.T, envelope apiResponse) T {
	t.Helper()
	raw, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestCreateEmployee(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, envelope := doJSON(t, http.MethodPost, srv.URL+"/api/employees", map[string]any{
		"name":        "Alice",
		"salary":      50000,
		"joiningDate": "2024-03-01",
		"mobile":      "+15550001111",
		"email":       "alice@example.com",
		"role":        "Engineer",
	})

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, envelope.Success)

	created := decodeData[staff.Employee](t, envelope)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Alice", created.Name)
	assert.Equal(t, staff.StatusActive, created.Status)
	assert.NotEmpty(t, created.CreatedAt)
}

func TestCreateEmployeeValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, envelope := doJSON(t, http.MethodPost, srv.URL+"/api/employees", map[string]any{
		"salary": 50000,
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, envelope.Success)
	assert.Contains(t, envelope.Error, "name is required")
}

func TestGetEmployeeNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, envelope := doJSON(t, http.MethodGet, srv.URL+"/api/employees/missing", nil)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, envelope.Success)
	assert.Contains(t, envelope.Error, "not found")
}

func TestDuplicateAttendanceRejected(t *testing.T) {
	srv, facade := newTestServer(t)
	ctx := context.Background()

	emp, err := facade.CreateEmployee(ctx, staff.Employee{Name: "Bob", Salary: 40000})
	require.NoError(t, err)

	mark := map[string]any{
		"employeeId": emp.ID,
		"date":       "2024-06-10",
		"status":     staff.AttendancePresent,
	}

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/attendance", mark)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Second mark for the same employee/date fails and names the status.
	mark["status"] = staff.AttendanceAbsent
	resp, envelope := doJSON(t, http.MethodPost, srv.URL+"/api/attendance", mark)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, envelope.Success)
	assert.Contains(t, envelope.Error, "Attendance already marked")
	assert.Contains(t, envelope.Error, staff.AttendancePresent)
}

func TestAttendanceForUnknownEmployee(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, envelope := doJSON(t, http.MethodPost, srv.URL+"/api/attendance", map[string]any{
		"employeeId": "ghost",
		"date":       "2024-06-10",
		"status":     staff.AttendancePresent,
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, envelope.Error, "does not exist")
}

func TestResetAttendance(t *testing.T) {
	srv, facade := newTestServer(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		emp, err := facade.CreateEmployee(ctx, staff.Employee{
			Name: fmt.Sprintf("Emp %d", i), Salary: 30000,
		})
		require.NoError(t, err)
		_, err = facade.CreateAttendance(ctx, staff.Attendance{
			EmployeeID: emp.ID, Date: "2024-06-10", Status: staff.AttendancePresent,
		})
		require.NoError(t, err)
	}

	resp, envelope := doJSON(t, http.MethodDelete,
		srv.URL+"/api/attendance/reset?date=2024-06-10", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := decodeData[map[string]any](t, envelope)
	assert.Equal(t, float64(3), data["deletedCount"])
	assert.Equal(t, "2024-06-10", data["date"])
}

func TestAutoResetStatus(t *testing.T) {
	srv, facade := newTestServer(t)
	ctx := context.Background()

	resp, envelope := doJSON(t, http.MethodGet, srv.URL+"/api/attendance/auto-reset", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := decodeData[map[string]any](t, envelope)
	assert.Equal(t, false, data["hasAttendanceToday"])

	emp, err := facade.CreateEmployee(ctx, staff.Employee{Name: "Cara", Salary: 30000})
	require.NoError(t, err)
	_, err = facade.CreateAttendance(ctx, staff.Attendance{
		EmployeeID: emp.ID, Date: staff.Today(), Status: staff.AttendancePresent,
	})
	require.NoError(t, err)

	_, envelope = doJSON(t, http.MethodGet, srv.URL+"/api/attendance/auto-reset", nil)
	data = decodeData[map[string]any](t, envelope)
	assert.Equal(t, true, data["hasAttendanceToday"])
	assert.Equal(t, float64(1), data["attendanceCount"])
}

func TestUndoEndpoint(t *testing.T) {
	srv, facade := newTestServer(t)
	ctx := context.Background()

	emp, err := facade.CreateEmployee(ctx, staff.Employee{Name: "Dana", Salary: 1000})
	require.NoError(t, err)
	newSalary := 2000.0
	_, err = facade.UpdateEmployee(ctx, emp.ID, staff.EmployeeUpdate{Salary: &newSalary})
	require.NoError(t, err)

	history, err := facade.History(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, history)
	updateEntry := history[0]

	resp, envelope := doJSON(t, http.MethodPost,
		srv.URL+"/api/history/"+updateEntry.ID+"/undo", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, envelope.Success)

	restored, err := facade.Employee(ctx, emp.ID)
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, 1000.0, restored.Salary)

	// Second undo of the same entry is rejected.
	resp, envelope = doJSON(t, http.MethodPost,
		srv.URL+"/api/history/"+updateEntry.ID+"/undo", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, envelope.Error, "cannot undo")
}

func TestStats(t *testing.T) {
	srv, facade := newTestServer(t)
	ctx := context.Background()

	emp, err := facade.CreateEmployee(ctx, staff.Employee{Name: "Eve", Salary: 30000})
	require.NoError(t, err)
	_, err = facade.CreateAttendance(ctx, staff.Attendance{
		EmployeeID: emp.ID, Date: staff.Today(), Status: staff.AttendancePresent,
	})
	require.NoError(t, err)
	_, err = facade.CreateTask(ctx, staff.Task{EmployeeID: emp.ID, Title: "Ship it"})
	require.NoError(t, err)

	resp, envelope := doJSON(t, http.MethodGet, srv.URL+"/api/stats", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	stats := decodeData[staff.Stats](t, envelope)
	assert.Equal(t, 1, stats.TotalEmployees)
	assert.Equal(t, 1, stats.AttendanceToday)
	assert.Equal(t, 1, stats.PendingTasks)
	assert.Equal(t, 0, stats.OutstandingCredits)
}

func TestSettingsRoundTrip(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, envelope := doJSON(t, http.MethodGet, srv.URL+"/api/settings", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	settings := decodeData[staff.Settings](t, envelope)
	assert.Equal(t, "My Company", settings.OrganizationName)

	resp, envelope = doJSON(t, http.MethodPut, srv.URL+"/api/settings", map[string]any{
		"organizationName": "Acme Corp",
		"leaveDeduction":   map[string]any{"type": "fixed", "value": 500},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	settings = decodeData[staff.Settings](t, envelope)
	assert.Equal(t, "Acme Corp", settings.OrganizationName)
	assert.Equal(t, staff.DeductionFixed, settings.LeaveDeduction.Type)

	// Invalid deduction type passes the validation message through.
	resp, envelope = doJSON(t, http.MethodPut, srv.URL+"/api/settings", map[string]any{
		"leaveDeduction": map[string]any{"type": "weekly", "value": 5},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, envelope.Error, "leave deduction type")
}

func TestInvalidBody(t *testing.T) {
	srv, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/employees",
		bytes.NewBufferString("{not json"))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
