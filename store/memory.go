// Package store provides staff.Store implementations.
package store

import (
	"context"
	"sync"

	"github.com/warp/staffdesk/staff"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory keeps all tables in maps and the history ledger in a newest-first
// slice. Reads return copies so callers never hold live references into the
// store.
type Memory struct {
	mu         sync.RWMutex
	employees  map[string]staff.Employee
	attendance map[string]staff.Attendance
	credits    map[string]staff.Credit
	tasks      map[string]staff.Task
	settings   staff.Settings
	history    []staff.HistoryEntry
}

func NewMemory() *Memory {
	return &Memory{
		employees:  make(map[string]staff.Employee),
		attendance: make(map[string]staff.Attendance),
		credits:    make(map[string]staff.Credit),
		tasks:      make(map[string]staff.Task),
		settings:   staff.DefaultSettings(),
	}
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func (m *Memory) PutEmployee(_ context.Context, e staff.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.employees[e.ID] = e
	return nil
}

func (m *Memory) GetEmployee(_ context.Context, id string) (*staff.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.employees[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (m *Memory) ListEmployees(_ context.Context) ([]staff.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]staff.Employee, 0, len(m.employees))
	for _, e := range m.employees {
		result = append(result, e)
	}
	return result, nil
}

func (m *Memory) DeleteEmployee(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.employees[id]; !ok {
		return false, nil
	}
	delete(m.employees, id)
	return true, nil
}

// =============================================================================
// ATTENDANCE
// =============================================================================

func (m *Memory) PutAttendance(_ context.Context, a staff.Attendance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attendance[a.ID] = a
	return nil
}

func (m *Memory) GetAttendance(_ context.Context, id string) (*staff.Attendance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.attendance[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (m *Memory) ListAttendance(_ context.Context) ([]staff.Attendance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]staff.Attendance, 0, len(m.attendance))
	for _, a := range m.attendance {
		result = append(result, a)
	}
	return result, nil
}

func (m *Memory) ListAttendanceByEmployee(_ context.Context, employeeID string) ([]staff.Attendance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []staff.Attendance
	for _, a := range m.attendance {
		if a.EmployeeID == employeeID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (m *Memory) ListAttendanceByDate(_ context.Context, date string) ([]staff.Attendance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []staff.Attendance
	for _, a := range m.attendance {
		if a.Date == date {
			result = append(result, a)
		}
	}
	return result, nil
}

func (m *Memory) FindAttendance(_ context.Context, employeeID, date string) (*staff.Attendance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.attendance {
		if a.EmployeeID == employeeID && a.Date == date {
			found := a
			return &found, nil
		}
	}
	return nil, nil
}

func (m *Memory) DeleteAttendance(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.attendance[id]; !ok {
		return false, nil
	}
	delete(m.attendance, id)
	return true, nil
}

func (m *Memory) DeleteAttendanceByDate(_ context.Context, date string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for id, a := range m.attendance {
		if a.Date == date {
			delete(m.attendance, id)
			count++
		}
	}
	return count, nil
}

func (m *Memory) DeleteAttendanceByEmployee(_ context.Context, employeeID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for id, a := range m.attendance {
		if a.EmployeeID == employeeID {
			delete(m.attendance, id)
			count++
		}
	}
	return count, nil
}

// =============================================================================
// CREDITS
// =============================================================================

func (m *Memory) PutCredit(_ context.Context, c staff.Credit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.credits[c.ID] = c
	return nil
}

func (m *Memory) GetCredit(_ context.Context, id string) (*staff.Credit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.credits[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *Memory) ListCredits(_ context.Context) ([]staff.Credit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]staff.Credit, 0, len(m.credits))
	for _, c := range m.credits {
		result = append(result, c)
	}
	return result, nil
}

func (m *Memory) ListCreditsByEmployee(_ context.Context, employeeID string) ([]staff.Credit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []staff.Credit
	for _, c := range m.credits {
		if c.EmployeeID == employeeID {
			result = append(result, c)
		}
	}
	return result, nil
}

func (m *Memory) DeleteCredit(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.credits[id]; !ok {
		return false, nil
	}
	delete(m.credits, id)
	return true, nil
}

func (m *Memory) DeleteCreditsByEmployee(_ context.Context, employeeID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for id, c := range m.credits {
		if c.EmployeeID == employeeID {
			delete(m.credits, id)
			count++
		}
	}
	return count, nil
}

// =============================================================================
// TASKS
// =============================================================================

func (m *Memory) PutTask(_ context.Context, t staff.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks[t.ID] = t
	return nil
}

func (m *Memory) GetTask(_ context.Context, id string) (*staff.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tasks[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (m *Memory) ListTasks(_ context.Context) ([]staff.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]staff.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		result = append(result, t)
	}
	return result, nil
}

func (m *Memory) ListTasksByEmployee(_ context.Context, employeeID string) ([]staff.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []staff.Task
	for _, t := range m.tasks {
		if t.EmployeeID == employeeID {
			result = append(result, t)
		}
	}
	return result, nil
}

func (m *Memory) DeleteTask(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[id]; !ok {
		return false, nil
	}
	delete(m.tasks, id)
	return true, nil
}

func (m *Memory) DeleteTasksByEmployee(_ context.Context, employeeID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for id, t := range m.tasks {
		if t.EmployeeID == employeeID {
			delete(m.tasks, id)
			count++
		}
	}
	return count, nil
}

// =============================================================================
// SETTINGS
// =============================================================================

func (m *Memory) GetSettings(_ context.Context) (staff.Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copySettings(m.settings), nil
}

func (m *Memory) PutSettings(_ context.Context, s staff.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = copySettings(s)
	return nil
}

// copySettings duplicates the pointer and slice fields so neither side can
// reach into the other's state through them.
func copySettings(s staff.Settings) staff.Settings {
	if s.WorkingHours != nil {
		hours := *s.WorkingHours
		s.WorkingHours = &hours
	}
	if s.WeekendDays != nil {
		s.WeekendDays = append([]string(nil), s.WeekendDays...)
	}
	return s
}

// =============================================================================
// HISTORY LEDGER
// =============================================================================

// AppendHistory inserts at the head and trims the tail past HistoryLimit.
func (m *Memory) AppendHistory(_ context.Context, entry staff.HistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = append([]staff.HistoryEntry{entry}, m.history...)
	if len(m.history) > staff.HistoryLimit {
		m.history = m.history[:staff.HistoryLimit]
	}
	return nil
}

func (m *Memory) ListHistory(_ context.Context) ([]staff.HistoryEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]staff.HistoryEntry, len(m.history))
	for i, e := range m.history {
		result[i] = copyEntry(e)
	}
	return result, nil
}

func (m *Memory) GetHistoryEntry(_ context.Context, id string) (*staff.HistoryEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.history {
		if e.ID == id {
			found := copyEntry(e)
			return &found, nil
		}
	}
	return nil, nil
}

func (m *Memory) SetHistoryDescription(_ context.Context, id, description string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.history {
		if m.history[i].ID == id {
			m.history[i].Description = description
			return nil
		}
	}
	return nil
}

// copyEntry duplicates snapshot bytes so callers cannot mutate stored state.
func copyEntry(e staff.HistoryEntry) staff.HistoryEntry {
	if e.OldData != nil {
		e.OldData = append([]byte(nil), e.OldData...)
	}
	if e.NewData != nil {
		e.NewData = append([]byte(nil), e.NewData...)
	}
	return e
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.employees = make(map[string]staff.Employee)
	m.attendance = make(map[string]staff.Attendance)
	m.credits = make(map[string]staff.Credit)
	m.tasks = make(map[string]staff.Task)
	m.settings = staff.DefaultSettings()
	m.history = nil
	return nil
}

func (m *Memory) Close() error { return nil }
