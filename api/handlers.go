/*
handlers.go - HTTP handlers for the employee management API

PURPOSE:
  Exposes the store facade over REST. Handles HTTP request/response and
  JSON serialization; every mutation delegates to the facade so invariant
  checks and history recording happen in exactly one place.

ENDPOINTS:
  Employees:
    GET    /api/employees                 List all employees
    POST   /api/employees                 Create employee
    GET    /api/employees/{id}            Get employee
    PUT    /api/employees/{id}            Partial update
    DELETE /api/employees/{id}            Delete (cascades)
    GET    /api/employees/{id}/salary     Salary breakdown

  Attendance:
    GET    /api/attendance                        List all
    POST   /api/attendance                        Mark attendance
    GET    /api/attendance/{id}                   Get one mark
    PUT    /api/attendance/{id}                   Partial update
    DELETE /api/attendance/{id}                   Delete one mark
    GET    /api/attendance/employee/{employeeId}  By employee
    GET    /api/attendance/date/{date}            By date
    DELETE /api/attendance/reset?date=YYYY-MM-DD  Bulk reset
    GET    /api/attendance/auto-reset             Reset status check
    POST   /api/attendance/auto-reset             Trigger reset (cron-able)

  Credits, Tasks: same CRUD shape + /employee/{employeeId}

  Settings:  GET/PUT /api/settings
  History:   GET /api/history, POST /api/history/{id}/undo
  Stats:     GET /api/stats

ERROR HANDLING:
  - 400: Validation errors (message passed through), malformed body
  - 404: Record not found
  - 500: Storage failure (generic message, detail logged)

SECURITY NOTE:
  No authentication middleware. The service is a single-tenant backend
  for a trusted dashboard.

SEE ALSO:
  - dto.go: Envelope and decode helpers
  - server.go: Router setup and middleware
  - staff/facade.go: Mutation semantics
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/warp/staffdesk/staff"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Facade *staff.Facade
}

// NewHandler creates a handler over the given facade.
func NewHandler(f *staff.Facade) *Handler {
	return &Handler{Facade: f}
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Facade.Employees(r.Context())
	if err != nil {
		writeFacadeError(w, r, err)
		return
	}
	if employees == nil {
		employees = []staff.Employee{}
	}
	writeJSON(w, http.StatusOK, employees)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var e staff.Employee
	if !decodeBody(w, r, &e) {
		return
	}
	created, err := h.Facade.CreateEmployee(r.Context(), e)
	if err != nil {
		writeFacadeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	e, err := h.Facade.Employee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeFacadeError(w, r, err)
		return
	}
	if e == nil {
		writeNotFound(w, "employee")
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var upd staff.EmployeeUpdate
	if !decodeBody(w, r, &upd) {
		return
	}
	e, err := h.Facade.UpdateEmployee(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		writeFacadeError(w, r, err)
		return
	}
	if e == nil {
		writeNotFound(w, "employee")
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.Facade.DeleteEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeFacadeError(w, r, err)
		return
	}
	if !deleted {
		writeNotFound(w, "employee")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// GetSalaryBreakdown answers the payroll derivation for one employee.
func (h *Handler) GetSalaryBreakdown(w http.ResponseWriter, r *http.Request) {
	breakdown, err := h.Facade.SalaryBreakdown(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeFacadeError(w, r, err)
		return
	}
	if breakdown == nil {
		writeNotFound(w, "employee")
		return
	}
	writeJSON(w, http.StatusOK, breakdown)
}

// =============================================================================
// ATTENDANCE
// =============================================================================

func (h *Handler) ListAttendance(w http.ResponseWriter, r *http.Request) {
	records, err := h.Facade.AllAttendance(r.Context())
	if err != nil {
		writeFacadeError(w, r, err)
		return
	}
	if records == nil {
		records = []staff.Attendance{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *Handler) CreateAttendance(w http.ResponseWriter, r *http.Request) {
	var a staff.Attendance
	if !decodeBody(w, r, &a) {
		return
	}
	created, err := h.Facade.CreateAttendance(r.Context(), a)
	if err != nil {
		writeFacadeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) GetAttendance(w http.ResponseWriter, r *http.Request) {
	a, err := h.Facade.Attendance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeFacadeError(w, r, err)
		return
	}
	if a == nil {
		writeNotFound(w, "attendance record")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *Handler) UpdateAttendance(w http.ResponseWriter, r *http.Request) {
	var upd staff.AttendanceUpdate
	if !decodeBody(w, r, &upd) {
		return
	}
	a, err := h.Facade.UpdateAttendance(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		writeFacadeError(w, r, err)
		return
	}
	if a == nil {
		writeNotFound(w, "attendance record")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *Handler) DeleteAttendance(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.Facade.DeleteAttendance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeFacadeError(w, r, err)
		return
	}
	if !deleted {
		writeNotFound(w, "attendance record")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *Handler) ListAttendanceByEmployee(w http.ResponseWriter, r *http.Request) {
	records, err := h.Facade.AttendanceByEmployee(r.Context(), chi.URLParam(r, "employeeId"))
	if err != nil {
		writeFacadeError(w, r, err)
		return
	}
	if records == nil {
		records = []staff.Attendance{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *Handler) ListAttendanceByDate(w http.ResponseWriter, r *http.Request) {
	records, err := h.Facade.AttendanceByDate(r.Context(), chi.URLParam(r, "date"))
	if err != nil {
		writeFacadeError(w, r, err)
		return
	}
	if records == nil {
		records = []staff.Attendance{}
	}
	writeJSON(w, http.StatusOK, records)
}

// ResetAttendance bulk-deletes all marks for a date (?date=, default today).
func (h *Handler) ResetAttendance(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = staff.Today()
	}
	count, err := h.Facade.ResetDailyAttendance(r.Context(), date)
	if err != nil {
		writeFacadeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"deletedCount": count,
		"date":         date,
	})
}

// AutoResetStatus reports whether today already has attendance marks, so a
// caller can decide whether a reset is due.
func (h *Handler) AutoResetStatus(w http.ResponseWriter, r *http.Request) {
	today := staff.Today()
	count, err := h.Facade.HasAttendanceForDate(r.Context(), today)
	if err != nil {
		writeFacadeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"date":               today,
		"hasAttendanceToday": count > 0,
		"attendanceCount":    count,
	})
}

// TriggerAutoReset clears today's attendance. Safe to call from cron: a day
// with no marks is a no-op.
func (h *Handler) TriggerAutoReset(w http.ResponseWriter, r *http.Request) {
	today := staff.Today()
	count, err := h.Facade.ResetDailyAttendance(r.Context(), today)
	if err != nil {
		writeFacadeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"deletedCount":  count,
		"date":          today,
		"hadAttendance": count > 0,
	})
}

// =============================================================================
// CREDITS
// =============================================================================

func (h *Handler) ListCredits(w http.ResponseWriter, r *http.Request) {
	credits, err := h.Facade.Credits(r.Context())
	if err != nil {
		writeFacadeError(w, r, err)
		return
	}
	if credits == nil {
		credits = []staff.Credit{}
	}
	writeJSON(w, http.StatusOK, credits)
}

func (h *Handler) CreateCredit(w http.ResponseWriter, r *http.Request) {
	var c staff.Credit
	if !decodeBody(w, r, &c) {
		return
	}
	created, err := h.Facade.CreateCredit(r.Context(), c)
	if err != nil {
		writeFacadeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) GetCredit(w http.ResponseWriter, r *http.Request) {
	c, err := h.Facade.Credit(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeFacadeError(w, r, err)
		return
	}
	if c == nil {
		writeNotFound(w, "credit")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) UpdateCredit(w http.ResponseWriter, r *http.Request) {
	var upd staff.CreditUpdate
	if !decodeBody(w, r, &upd) {
		return
	}
	c, err := h.Facade.UpdateCredit(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		writeFacadeError(w, r, err)
		return
	}
	if c == nil {
		writeNotFound(w, "credit")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) DeleteCredit(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.Facade.DeleteCredit(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeFacadeError(w, r, err)
		return
	}
	if !deleted {
		writeNotFound(w, "credit")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *Handler) ListCreditsByEmployee(w http.ResponseWriter, r *http.Request) {
	credits, err := h.Facade.CreditsByEmployee(r.Context(), chi.URLParam(r, "employeeId"))
	if err != nil {
		writeFacadeError(w, r, err)
		return
	}
	if credits == nil {
		credits = []staff.Credit{}
	}
	writeJSON(w, http.StatusOK, credits)
}

// =============================================================================
// TASKS
// =============================================================================

func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.Facade.Tasks(r.Context())
	if err != nil {
		writeFacadeError(w, r, err)
		return
	}
	if tasks == nil {
		tasks = []staff.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var t staff.Task
	if !decodeBody(w, r, &t) {
		return
	}
	created, err := h.Facade.CreateTask(r.Context(), t)
	if err != nil {
		writeFacadeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	t, err := h.Facade.Task(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeFacadeError(w, r, err)
		return
	}
	if t == nil {
		writeNotFound(w, "task")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var upd staff.TaskUpdate
	if !decodeBody(w, r, &upd) {
		return
	}
	t, err := h.Facade.UpdateTask(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		writeFacadeError(w, r, err)
		return
	}
	if t == nil {
		writeNotFound(w, "task")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.Facade.DeleteTask(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeFacadeError(w, r, err)
		return
	}
	if !deleted {
		writeNotFound(w, "task")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *Handler) ListTasksByEmployee(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.Facade.TasksByEmployee(r.Context(), chi.URLParam(r, "employeeId"))
	if err != nil {
		writeFacadeError(w, r, err)
		return
	}
	if tasks == nil {
		tasks = []staff.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

// =============================================================================
// SETTINGS
// =============================================================================

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Facade.Settings(r.Context())
	if err != nil {
		writeFacadeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var upd staff.SettingsUpdate
	if !decodeBody(w, r, &upd) {
		return
	}
	settings, err := h.Facade.UpdateSettings(r.Context(), upd)
	if err != nil {
		writeFacadeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// =============================================================================
// HISTORY, UNDO, STATS
// =============================================================================

func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Facade.History(r.Context())
	if err != nil {
		writeFacadeError(w, r, err)
		return
	}
	if entries == nil {
		entries = []staff.HistoryEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// UndoAction reverses the mutation behind a history entry. Undo never raises;
// any failure (absent entry, already undone, irreversible bulk entry) is the
// same 404 from the caller's point of view.
func (h *Handler) UndoAction(w http.ResponseWriter, r *http.Request) {
	if !h.Facade.Undo(r.Context(), chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "cannot undo this action")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"undone": true})
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Facade.Stats(r.Context())
	if err != nil {
		writeFacadeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
