package region

import (
	"sqv/pkg/schema"
)

// RosterIndex provides employee-id lookup over the reference roster.
// An identifier can map to several roster rows (historical snapshots);
// entries keep their source order.
type RosterIndex struct {
	ByEmployeeID map[string][]*schema.ReferenceRecord `json:"byEmployeeId"`
	Stats        IndexStats                           `json:"stats"`
}

// IndexStats contains aggregate statistics about the roster index.
type IndexStats struct {
	TotalRecords int `json:"totalRecords"`
	UniqueIDs    int `json:"uniqueIds"`
	ActiveCount  int `json:"activeCount"`
	OnLeaveCount int `json:"onLeaveCount"`
}

// BuildRosterIndex constructs a RosterIndex from roster records.
func BuildRosterIndex(records []*schema.ReferenceRecord) *RosterIndex {
	index := &RosterIndex{
		ByEmployeeID: make(map[string][]*schema.ReferenceRecord, len(records)),
	}

	for _, rec := range records {
		if rec.EmployeeID == "" {
			continue
		}
		index.ByEmployeeID[rec.EmployeeID] = append(index.ByEmployeeID[rec.EmployeeID], rec)
		if rec.IsActive() {
			index.Stats.ActiveCount++
		}
		if rec.IsOnLeave() {
			index.Stats.OnLeaveCount++
		}
	}

	index.Stats.TotalRecords = len(records)
	index.Stats.UniqueIDs = len(index.ByEmployeeID)
	return index
}

// Lookup returns the roster entries for an employee identifier, in source
// order. Nil when the identifier is absent.
func (ix *RosterIndex) Lookup(id string) []*schema.ReferenceRecord {
	return ix.ByEmployeeID[id]
}
