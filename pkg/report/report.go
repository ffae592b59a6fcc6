// Package report aggregates per-check results into the immutable run
// report handed to export and presentation collaborators.
package report

import (
	"github.com/google/uuid"

	"sqv/pkg/engine"
	"sqv/pkg/region"
	"sqv/pkg/schema"
)

// RecordResolution ties a source record to its region-resolution outcome,
// keeping the include/exclude decision auditable per sheet/row.
type RecordResolution struct {
	Sheet      string            `json:"sheet,omitempty"`
	Row        int               `json:"row"`
	EmployeeID string            `json:"employeeId"`
	Resolution region.Resolution `json:"resolution"`
}

// HalfSummary tallies one fiscal-half run.
type HalfSummary struct {
	TotalRecords    int `json:"totalRecords"`
	Included        int `json:"included"`
	Excluded        int `json:"excluded"`
	Pass            int `json:"pass"`
	Fail            int `json:"fail"`
	Skip            int `json:"skip"`
	DuplicateGroups int `json:"duplicateGroups"`
	IncompleteCount int `json:"incompleteCount"`
	MissingMonths   int `json:"missingMonths"`
}

// HalfReport is the complete result of one fiscal-half validation run: the
// three check outputs plus resolution audit and summary. It is an immutable
// snapshot of one run.
type HalfReport struct {
	RunID  string        `json:"runId"`
	Region region.Region `json:"region"`
	Period schema.Period `json:"period"`
	Half   schema.Half   `json:"half"`

	Resolutions  []RecordResolution          `json:"resolutions"`
	Identity     []engine.IdentityResult     `json:"identity"`
	Duplicates   []engine.DuplicateGroup     `json:"duplicates"`
	Completeness []engine.CompletenessResult `json:"completeness"`

	Summary HalfSummary `json:"summary"`
}

// BuildHalfReport runs the fiscal-half validation pipeline: resolve each
// record's region, then run the identity, duplicate, and completeness
// checks over the included set. A pure function of its inputs; running it
// twice on identical inputs yields identical results apart from the run id.
func BuildHalfReport(
	quotas []*schema.QuotaRecord,
	roster []*schema.ReferenceRecord,
	period schema.Period,
	selected region.Region,
	tables *region.Tables,
) *HalfReport {
	ix := region.BuildRosterIndex(roster)

	report := &HalfReport{
		RunID:  uuid.NewString(),
		Region: selected,
		Period: period,
		Half:   schema.HalfFor(period),
	}

	var included []*schema.QuotaRecord
	for _, rec := range quotas {
		res := region.Resolve(rec, ix, tables, selected)
		report.Resolutions = append(report.Resolutions, RecordResolution{
			Sheet:      rec.Sheet,
			Row:        rec.Row,
			EmployeeID: rec.EmployeeID,
			Resolution: res,
		})
		if res.Included {
			included = append(included, rec)
		}
	}

	report.Identity = engine.CheckIdentity(included, ix, tables, selected)
	report.Duplicates = engine.CheckDuplicates(included, period)
	report.Completeness = engine.CheckCompleteness(included, period)
	report.Summary = summarizeHalf(report, len(quotas), len(included))

	return report
}

func summarizeHalf(r *HalfReport, total, included int) HalfSummary {
	s := HalfSummary{
		TotalRecords:    total,
		Included:        included,
		Excluded:        total - included,
		DuplicateGroups: len(r.Duplicates),
		IncompleteCount: len(r.Completeness),
	}

	for _, res := range r.Identity {
		switch res.Verdict {
		case engine.VerdictPass:
			s.Pass++
		case engine.VerdictFail:
			s.Fail++
		case engine.VerdictSkip:
			s.Skip++
		}
	}

	for _, c := range r.Completeness {
		for _, b := range c.Buckets {
			s.MissingMonths += len(b.MissingMonths)
		}
	}

	return s
}

// LmsSummary tallies one LMS monthly-processing run.
type LmsSummary struct {
	TotalRecords    int `json:"totalRecords"`
	Included        int `json:"included"`
	Excluded        int `json:"excluded"`
	MisalignedCount int `json:"misalignedCount"`
	IssueCount      int `json:"issueCount"`
	LeaveFindings   int `json:"leaveFindings"`
}

// LmsReport is the complete result of one LMS validation run.
type LmsReport struct {
	RunID  string        `json:"runId"`
	Region region.Region `json:"region"`
	Period schema.Period `json:"period"`

	Resolutions []RecordResolution       `json:"resolutions"`
	Alignment   []engine.AlignmentResult `json:"alignment"`
	Leave       []engine.LeaveFinding    `json:"leave"`

	Summary LmsSummary `json:"summary"`
}

// BuildLmsReport runs the LMS validation pipeline: the simpler
// roster-country region filter, then the quota-alignment and
// on-leave-with-quota checks over the included set. The processing month is
// the period's calendar month.
func BuildLmsReport(
	records []*schema.LmsQuotaRecord,
	roster []*schema.ReferenceRecord,
	period schema.Period,
	selected region.Region,
	tables *region.Tables,
) *LmsReport {
	ix := region.BuildRosterIndex(roster)

	report := &LmsReport{
		RunID:  uuid.NewString(),
		Region: selected,
		Period: period,
	}

	var included []*schema.LmsQuotaRecord
	for _, rec := range records {
		res := region.ResolveLms(rec, ix, tables, selected)
		report.Resolutions = append(report.Resolutions, RecordResolution{
			Row:        rec.Row,
			EmployeeID: rec.EmployeeID,
			Resolution: res,
		})
		if res.Included {
			included = append(included, rec)
		}
	}

	report.Alignment = engine.CheckAlignment(included)
	report.Leave = engine.CheckLeaveQuota(included, ix, int(period.Month))
	report.Summary = summarizeLms(report, len(records), len(included))

	return report
}

func summarizeLms(r *LmsReport, total, included int) LmsSummary {
	s := LmsSummary{
		TotalRecords:    total,
		Included:        included,
		Excluded:        total - included,
		MisalignedCount: len(r.Alignment),
		LeaveFindings:   len(r.Leave),
	}
	for _, a := range r.Alignment {
		s.IssueCount += len(a.Issues)
	}
	return s
}
