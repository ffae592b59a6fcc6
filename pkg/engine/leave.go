package engine

import (
	"sqv/pkg/region"
	"sqv/pkg/schema"
)

// ColumnValue is one (column, observed value) pair that triggered a finding.
type ColumnValue struct {
	Column string           `json:"column"`
	Value  schema.CellValue `json:"value"`
}

// LeaveFinding is one LMS record whose employee is active but currently on
// leave while still carrying quota for the processing month.
type LeaveFinding struct {
	Record  *schema.LmsQuotaRecord  `json:"record"`
	Roster  *schema.ReferenceRecord `json:"roster"`
	Month   int                     `json:"month"`
	Amounts []ColumnValue           `json:"amounts"`
}

// CheckLeaveQuota finds records whose roster shows an active employee on
// leave (active status and on-leave both "Yes") carrying a positive amount
// for the selected processing month in any applicable stream. Processing
// months outside the six-month window yield no findings.
func CheckLeaveQuota(records []*schema.LmsQuotaRecord, ix *region.RosterIndex, month int) []LeaveFinding {
	if month < 1 || month > lmsWindowEnd {
		return nil
	}

	var findings []LeaveFinding
	for _, rec := range records {
		entry := onLeaveEntry(ix.Lookup(rec.EmployeeID))
		if entry == nil {
			continue
		}

		var amounts []ColumnValue
		if rec.Component.ChecksLicense() {
			if v := rec.License[month]; v.IsPositive() {
				amounts = append(amounts, ColumnValue{Column: schema.LmsColumnName(StreamLicense, month), Value: v})
			}
		}
		if rec.Component.ChecksServices() {
			if v := rec.Services[month]; v.IsPositive() {
				amounts = append(amounts, ColumnValue{Column: schema.LmsColumnName(StreamServices, month), Value: v})
			}
		}

		if len(amounts) > 0 {
			findings = append(findings, LeaveFinding{
				Record:  rec,
				Roster:  entry,
				Month:   month,
				Amounts: amounts,
			})
		}
	}

	return findings
}

// onLeaveEntry returns the first roster entry marking the employee both
// active and on leave, or nil.
func onLeaveEntry(entries []*schema.ReferenceRecord) *schema.ReferenceRecord {
	for _, entry := range entries {
		if entry.IsActive() && entry.IsOnLeave() {
			return entry
		}
	}
	return nil
}
