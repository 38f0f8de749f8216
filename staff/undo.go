/*
undo.go - Single-level reversal of recorded mutations

PURPOSE:
  Given a history entry id, reverses the mutation it describes by restoring
  the captured snapshot (update/delete) or removing the created record
  (create). This is deliberately a single-level design:

  - Undo writes bypass history recording, so an undo cannot be undone.
  - A successful undo appends the "(UNDONE)" marker to the entry's
    description, and the engine itself rejects an already-undone entry.
    The guard is enforced here, not left to callers.
  - Undo of a create deletes the created record, uniformly for every
    entity kind.

  Undo never raises: all failure paths return false. It is a best-effort
  user convenience, not a critical path.

SEE ALSO:
  - facade.go: The forward mutation path
  - history.go: Entry construction and the UNDONE marker
*/
package staff

import (
	"context"
	"encoding/json"
)

// Undo reverses the mutation described by the history entry. Returns false
// if the entry is absent, already undone, describes an unsupported reversal,
// or the restore itself fails.
func (f *Facade) Undo(ctx context.Context, historyID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry, err := f.store.GetHistoryEntry(ctx, historyID)
	if err != nil || entry == nil {
		return false
	}
	if entry.Undone() {
		return false
	}

	if !f.applyUndo(ctx, entry) {
		return false
	}

	// The single allowed ledger mutation: mark the entry as reversed.
	if err := f.store.SetHistoryDescription(ctx, entry.ID, entry.Description+UndoneSuffix); err != nil {
		return false
	}
	return true
}

// applyUndo dispatches on (action, entity). Writes go through low-level table
// access on purpose: restored state is not re-recorded in the ledger.
func (f *Facade) applyUndo(ctx context.Context, entry *HistoryEntry) bool {
	switch entry.Action {
	case ActionCreate:
		return f.undoCreate(ctx, entry)
	case ActionUpdate, ActionDelete:
		return f.restoreSnapshot(ctx, entry)
	default:
		return false
	}
}

// undoCreate removes the record the entry created.
func (f *Facade) undoCreate(ctx context.Context, entry *HistoryEntry) bool {
	var (
		deleted bool
		err     error
	)
	switch entry.Entity {
	case EntityEmployee:
		deleted, err = f.store.DeleteEmployee(ctx, entry.EntityID)
	case EntityAttendance:
		deleted, err = f.store.DeleteAttendance(ctx, entry.EntityID)
	case EntityCredit:
		deleted, err = f.store.DeleteCredit(ctx, entry.EntityID)
	case EntityTask:
		deleted, err = f.store.DeleteTask(ctx, entry.EntityID)
	default:
		return false
	}
	return err == nil && deleted
}

// restoreSnapshot writes the entry's oldData back under its entityId.
// Bulk entries (attendance reset, cascade cleanup) carry no snapshot and are
// not reversible. An attendance restore re-checks the one-mark-per-date
// invariant: if another record now occupies the (employee, date) pair, the
// restore is refused rather than producing a duplicate.
func (f *Facade) restoreSnapshot(ctx context.Context, entry *HistoryEntry) bool {
	if len(entry.OldData) == 0 {
		return false
	}

	var err error
	switch entry.Entity {
	case EntityEmployee:
		var e Employee
		if err = json.Unmarshal(entry.OldData, &e); err == nil {
			err = f.store.PutEmployee(ctx, e)
		}
	case EntityAttendance:
		var a Attendance
		if err = json.Unmarshal(entry.OldData, &a); err != nil {
			return false
		}
		existing, err := f.store.FindAttendance(ctx, a.EmployeeID, a.Date)
		if err != nil {
			return false
		}
		if existing != nil && existing.ID != a.ID {
			return false
		}
		err = f.store.PutAttendance(ctx, a)
		return err == nil
	case EntityCredit:
		var c Credit
		if err = json.Unmarshal(entry.OldData, &c); err == nil {
			err = f.store.PutCredit(ctx, c)
		}
	case EntityTask:
		var t Task
		if err = json.Unmarshal(entry.OldData, &t); err == nil {
			err = f.store.PutTask(ctx, t)
		}
	default:
		return false
	}
	return err == nil
}
