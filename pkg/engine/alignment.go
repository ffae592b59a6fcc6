package engine

import (
	"fmt"

	"sqv/pkg/schema"
)

// IssueKind classifies one quota-alignment deviation.
type IssueKind string

const (
	IssueMissingAmount  IssueKind = "missing_amount"
	IssueShouldBeZero   IssueKind = "should_be_zero"
	IssueOKRHasAmount   IssueKind = "okr_has_amount"
	IssueStreamMismatch IssueKind = "stream_mismatch"
)

// Stream names as reports reference them.
const (
	StreamLicense  = "License"
	StreamServices = "Services"
)

// AlignmentIssue is one deviation between an observed amount and the
// expected-active-month policy, tied to a specific column and month.
type AlignmentIssue struct {
	Kind     IssueKind        `json:"kind"`
	Column   string           `json:"column"`
	Month    int              `json:"month"`
	Expected string           `json:"expected"`
	Observed schema.CellValue `json:"observed"`
}

// AlignmentResult is one LMS record with at least one alignment issue.
// Issues are ordered license stream before services stream, then by
// calendar month ascending.
type AlignmentResult struct {
	Record         *schema.LmsQuotaRecord `json:"record"`
	EffectiveMonth int                    `json:"effectiveMonth"`
	Issues         []AlignmentIssue       `json:"issues"`
}

// CheckAlignment verifies each LMS record's monthly amounts against its
// plan type and component over the six-month window (calendar months 1-6),
// driven by the record's own effective date. Records effective after the
// window are skipped; effective months before January clamp to January.
func CheckAlignment(records []*schema.LmsQuotaRecord) []AlignmentResult {
	var results []AlignmentResult

	for _, rec := range records {
		effective, inWindow := effectiveMonth(rec)
		if !inWindow {
			continue
		}

		var issues []AlignmentIssue

		// License (primary) stream first. Services-only components get the
		// all-zero scan instead of the plan policy.
		if rec.Component == schema.ComponentServicesOnly {
			issues = append(issues, licenseMismatchScan(rec)...)
		} else if rec.Component.ChecksLicense() {
			issues = append(issues, streamIssues(rec, StreamLicense, rec.License, effective)...)
		}

		if rec.Component.ChecksServices() {
			issues = append(issues, streamIssues(rec, StreamServices, rec.Services, effective)...)
		}

		if len(issues) > 0 {
			results = append(results, AlignmentResult{
				Record:         rec,
				EffectiveMonth: effective,
				Issues:         issues,
			})
		}
	}

	return results
}

// effectiveMonth derives the record's effective calendar month, clamped to
// the window start. The second return is false when the record has no
// applicable window (effective after June). Records without an effective
// date are treated as active from January.
func effectiveMonth(rec *schema.LmsQuotaRecord) (int, bool) {
	if rec.Effective == nil {
		return 1, true
	}
	m := int(rec.Effective.Month())
	if m > lmsWindowEnd {
		return 0, false
	}
	if m < 1 {
		m = 1
	}
	return m, true
}

const lmsWindowEnd = 6

// expectation is what the policy wants for one month: an amount or a zero.
type expectation struct {
	positive bool
	reason   string
}

// expectedFor evaluates the expected-active-month policy for plan type at
// month m, given the effective month.
func expectedFor(plan schema.PlanType, planRaw string, effective, m int) expectation {
	if plan == schema.PlanOKR {
		return expectation{positive: false, reason: "expected 0 (OKR plan)"}
	}
	if m < effective {
		return expectation{
			positive: false,
			reason:   fmt.Sprintf("expected 0 before effective month (%s)", monthName(effective)),
		}
	}

	switch plan {
	case schema.PlanSemi:
		return expectation{
			positive: true,
			reason:   fmt.Sprintf("expected > 0 (Semi plan active from %s)", monthName(effective)),
		}
	case schema.PlanQtrly:
		quarterEnd := 3
		if effective > 3 {
			quarterEnd = lmsWindowEnd
		}
		if m <= quarterEnd {
			return expectation{
				positive: true,
				reason:   fmt.Sprintf("expected > 0 (Qtrly plan through %s)", monthName(quarterEnd)),
			}
		}
		return expectation{
			positive: false,
			reason:   fmt.Sprintf("expected 0 after quarter end (%s)", monthName(quarterEnd)),
		}
	}

	// Unknown plan strings take the permissive default: expect presence and
	// flag only absences.
	return expectation{
		positive: true,
		reason:   fmt.Sprintf("expected > 0 (unrecognized plan %q)", planRaw),
	}
}

// streamIssues scans one amount stream over the window against the policy.
func streamIssues(rec *schema.LmsQuotaRecord, stream string, series schema.MonthSeries, effective int) []AlignmentIssue {
	var issues []AlignmentIssue

	for m := 1; m <= lmsWindowEnd; m++ {
		exp := expectedFor(rec.PlanType, rec.PlanTypeRaw, effective, m)
		value := series[m]

		if exp.positive && !value.IsPositive() {
			issues = append(issues, AlignmentIssue{
				Kind:     IssueMissingAmount,
				Column:   schema.LmsColumnName(stream, m),
				Month:    m,
				Expected: exp.reason,
				Observed: value,
			})
			continue
		}
		if !exp.positive && value.IsPositive() {
			kind := IssueShouldBeZero
			if rec.PlanType == schema.PlanOKR {
				kind = IssueOKRHasAmount
			}
			issues = append(issues, AlignmentIssue{
				Kind:     kind,
				Column:   schema.LmsColumnName(stream, m),
				Month:    m,
				Expected: exp.reason,
				Observed: value,
			})
		}
	}

	return issues
}

// licenseMismatchScan flags any positive license amount on a services-only
// component: the primary stream must stay entirely empty or zero.
func licenseMismatchScan(rec *schema.LmsQuotaRecord) []AlignmentIssue {
	var issues []AlignmentIssue

	for m := 1; m <= lmsWindowEnd; m++ {
		value := rec.License[m]
		if value.IsPositive() {
			issues = append(issues, AlignmentIssue{
				Kind:     IssueStreamMismatch,
				Column:   schema.LmsColumnName(StreamLicense, m),
				Month:    m,
				Expected: "expected 0 on license stream (services-only component)",
				Observed: value,
			})
		}
	}

	return issues
}

func monthName(m int) string {
	return schema.MonthAbbrev(m)
}
