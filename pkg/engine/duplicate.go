package engine

import (
	"sqv/pkg/schema"
)

// DuplicateGroup is one employee identifier that occurs on more than one
// quota record within the selected submission period, with its full
// occurrence list in source order.
type DuplicateGroup struct {
	EmployeeID string                `json:"employeeId"`
	Records    []*schema.QuotaRecord `json:"records"`
}

// CheckDuplicates groups non-placeholder records by employee identifier
// within the records matching the selected submission period. Identifiers
// with a single occurrence are not reported; there is no cross-period
// comparison. Groups keep first-occurrence order.
func CheckDuplicates(records []*schema.QuotaRecord, period schema.Period) []DuplicateGroup {
	byID := make(map[string][]*schema.QuotaRecord)
	var order []string

	for _, rec := range records {
		if rec.HasPlaceholderID() {
			continue
		}
		if !period.Matches(rec.Period) {
			continue
		}
		if _, seen := byID[rec.EmployeeID]; !seen {
			order = append(order, rec.EmployeeID)
		}
		byID[rec.EmployeeID] = append(byID[rec.EmployeeID], rec)
	}

	var groups []DuplicateGroup
	for _, id := range order {
		if occurrences := byID[id]; len(occurrences) > 1 {
			groups = append(groups, DuplicateGroup{EmployeeID: id, Records: occurrences})
		}
	}

	return groups
}
