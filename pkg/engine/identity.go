package engine

import (
	"fmt"
	"strings"

	"sqv/pkg/region"
	"sqv/pkg/schema"
)

// IdentityVerdict is the per-record outcome of the identity check.
type IdentityVerdict string

const (
	VerdictPass IdentityVerdict = "pass"
	VerdictFail IdentityVerdict = "fail"
	VerdictSkip IdentityVerdict = "skip"
)

// nameAdvisoryThreshold is the similarity score below which a passing
// record gets a name-mismatch advisory against its roster entry.
const nameAdvisoryThreshold = 0.5

// IdentityResult is one record's identity-check outcome.
type IdentityResult struct {
	Record  *schema.QuotaRecord `json:"record"`
	Verdict IdentityVerdict     `json:"verdict"`
	Reason  string              `json:"reason"`
	// Matched is the roster entry that satisfied all conditions, set on pass.
	Matched *schema.ReferenceRecord `json:"matched,omitempty"`
	// NameAdvisory flags a low-similarity display name on a passing record.
	// Advisories never change the verdict.
	NameAdvisory string `json:"nameAdvisory,omitempty"`
}

// CheckIdentity validates every record against the roster. Placeholder
// identifiers skip; unknown identifiers fail; otherwise the first roster
// entry violating none of the conditions (active "Yes", on-leave blank,
// country in the selected region) passes. When every entry violates
// something, the reason lists the violations of the last examined entry.
func CheckIdentity(records []*schema.QuotaRecord, ix *region.RosterIndex, tables *region.Tables, selected region.Region) []IdentityResult {
	results := make([]IdentityResult, 0, len(records))

	for _, rec := range records {
		results = append(results, checkOne(rec, ix, tables, selected))
	}

	return results
}

func checkOne(rec *schema.QuotaRecord, ix *region.RosterIndex, tables *region.Tables, selected region.Region) IdentityResult {
	if rec.HasPlaceholderID() {
		return IdentityResult{
			Record:  rec,
			Verdict: VerdictSkip,
			Reason:  "placeholder employee id",
		}
	}

	entries := ix.Lookup(rec.EmployeeID)
	if len(entries) == 0 {
		return IdentityResult{
			Record:  rec,
			Verdict: VerdictFail,
			Reason:  fmt.Sprintf("employee id %q not found in reference roster", rec.EmployeeID),
		}
	}

	var lastViolations []string
	for _, entry := range entries {
		violations := entryViolations(entry, tables, selected)
		if len(violations) == 0 {
			return IdentityResult{
				Record:       rec,
				Verdict:      VerdictPass,
				Reason:       "active roster entry in region",
				Matched:      entry,
				NameAdvisory: nameAdvisory(rec, entry),
			}
		}
		lastViolations = violations
	}

	// No entry passed. The reason carries the last examined entry's
	// violations, matching the original tool's iteration-order reporting.
	return IdentityResult{
		Record:  rec,
		Verdict: VerdictFail,
		Reason:  strings.Join(lastViolations, "; "),
	}
}

// entryViolations collects every condition a roster entry violates for the
// selected region.
func entryViolations(entry *schema.ReferenceRecord, tables *region.Tables, selected region.Region) []string {
	var violations []string

	if !entry.IsActive() {
		violations = append(violations, fmt.Sprintf("active status is %q, want \"Yes\"", entry.ActiveStatus))
	}
	if entry.OnLeave != "" {
		violations = append(violations, fmt.Sprintf("on-leave flag is %q, want blank", entry.OnLeave))
	}
	if entry.Country == "" {
		violations = append(violations, "country is blank")
	} else if !tables.InRegion(entry.Country, selected) {
		violations = append(violations, fmt.Sprintf("country %q is outside %s", entry.Country, selected))
	}

	return violations
}

// nameAdvisory compares the record's display name against the matched
// roster name and returns a note when they look like different people.
func nameAdvisory(rec *schema.QuotaRecord, entry *schema.ReferenceRecord) string {
	a := schema.NormalizeName(rec.DisplayName)
	b := schema.NormalizeName(entry.FullName)
	if a == "" || b == "" {
		return ""
	}
	if similarity(a, b) < nameAdvisoryThreshold {
		return fmt.Sprintf("display name %q differs from roster name %q", rec.DisplayName, entry.FullName)
	}
	return ""
}
