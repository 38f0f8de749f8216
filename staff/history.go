package staff

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// =============================================================================
// HISTORY ENTRIES - Audit trail construction
// =============================================================================

// UndoneSuffix marks an entry whose mutation has been reversed. An entry
// carrying it is rejected by the undo engine; this is the only mutation a
// ledger entry ever receives.
const UndoneSuffix = " (UNDONE)"

// Undone reports whether this entry's mutation has already been reversed.
func (e *HistoryEntry) Undone() bool {
	return strings.HasSuffix(e.Description, UndoneSuffix)
}

// newHistoryEntry builds a ledger entry with before/after snapshots.
// oldData/newData may be nil (create has no before, delete has no after).
func newHistoryEntry(action, entity, entityID, description string, oldData, newData any) HistoryEntry {
	return HistoryEntry{
		ID:          uuid.NewString(),
		Timestamp:   Now(),
		Action:      action,
		Entity:      entity,
		EntityID:    entityID,
		OldData:     snapshot(oldData),
		NewData:     snapshot(newData),
		Description: description,
	}
}

// snapshot serializes a record for the ledger. Records are flat value types,
// so marshaling cannot fail for any input this package produces.
func snapshot(v any) json.RawMessage {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}
