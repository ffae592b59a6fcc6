package engine

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"sqv/pkg/schema"
)

func amountSeries(amounts ...int64) schema.MonthSeries {
	series := make(schema.MonthSeries, len(amounts))
	for i, a := range amounts {
		if a < 0 {
			series[i+1] = schema.EmptyCell()
			continue
		}
		series[i+1] = schema.NumberCell(decimal.NewFromInt(a))
	}
	return series
}

func effectiveOn(month time.Month) *time.Time {
	t := time.Date(2026, month, 1, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestCheckAlignmentSemiPlan(t *testing.T) {
	// Semi plan effective February: January must be zero, February through
	// June must carry amounts. March is empty here.
	rec := &schema.LmsQuotaRecord{
		EmployeeID: "E1",
		Component:  schema.ComponentLicenseOnly,
		PlanType:   schema.PlanSemi,
		Effective:  effectiveOn(time.February),
		License:    amountSeries(0, 100, -1, 100, 100, 100),
	}

	results := CheckAlignment([]*schema.LmsQuotaRecord{rec})
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	r := results[0]
	if r.EffectiveMonth != 2 {
		t.Errorf("EffectiveMonth = %d, want 2", r.EffectiveMonth)
	}
	if len(r.Issues) != 1 {
		t.Fatalf("got %d issues, want 1: %+v", len(r.Issues), r.Issues)
	}
	issue := r.Issues[0]
	if issue.Kind != IssueMissingAmount || issue.Month != 3 || issue.Column != "License Mar" {
		t.Errorf("issue = %+v, want missing_amount License Mar", issue)
	}
}

func TestCheckAlignmentQtrlyQuarterBoundary(t *testing.T) {
	// Qtrly effective February: active through March only; amounts in
	// April through June are deviations.
	rec := &schema.LmsQuotaRecord{
		EmployeeID: "E1",
		Component:  schema.ComponentLicenseOnly,
		PlanType:   schema.PlanQtrly,
		Effective:  effectiveOn(time.February),
		License:    amountSeries(0, 100, 100, 100, 0, 0),
	}

	results := CheckAlignment([]*schema.LmsQuotaRecord{rec})
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	issues := results[0].Issues
	if len(issues) != 1 {
		t.Fatalf("got %d issues, want 1: %+v", len(issues), issues)
	}
	if issues[0].Kind != IssueShouldBeZero || issues[0].Month != 4 {
		t.Errorf("issue = %+v, want should_be_zero in April", issues[0])
	}
}

func TestCheckAlignmentQtrlyLateEffective(t *testing.T) {
	// Qtrly effective May sits in the second quarter: active through June.
	rec := &schema.LmsQuotaRecord{
		EmployeeID: "E1",
		Component:  schema.ComponentLicenseOnly,
		PlanType:   schema.PlanQtrly,
		Effective:  effectiveOn(time.May),
		License:    amountSeries(0, 0, 0, 0, 100, 100),
	}
	if results := CheckAlignment([]*schema.LmsQuotaRecord{rec}); len(results) != 0 {
		t.Errorf("got %d results, want none: %+v", len(results), results)
	}
}

func TestCheckAlignmentOKRAllZero(t *testing.T) {
	rec := &schema.LmsQuotaRecord{
		EmployeeID: "E1",
		Component:  schema.ComponentLicenseOnly,
		PlanType:   schema.PlanOKR,
		License:    amountSeries(0, 0, 50, 0, 0, 0),
	}

	results := CheckAlignment([]*schema.LmsQuotaRecord{rec})
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	issues := results[0].Issues
	if len(issues) != 1 || issues[0].Kind != IssueOKRHasAmount || issues[0].Month != 3 {
		t.Errorf("issues = %+v, want okr_has_amount in March", issues)
	}
}

func TestCheckAlignmentServicesOnlyStreamMismatch(t *testing.T) {
	// Services-only component: services follows the plan policy, while any
	// positive license amount is a stream mismatch.
	rec := &schema.LmsQuotaRecord{
		EmployeeID: "E1",
		Component:  schema.ComponentServicesOnly,
		PlanType:   schema.PlanSemi,
		License:    amountSeries(0, 75, 0, 0, 0, 0),
		Services:   amountSeries(100, 100, 100, 100, 100, 100),
	}

	results := CheckAlignment([]*schema.LmsQuotaRecord{rec})
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	issues := results[0].Issues
	if len(issues) != 1 {
		t.Fatalf("got %d issues, want 1: %+v", len(issues), issues)
	}
	if issues[0].Kind != IssueStreamMismatch || issues[0].Column != "License Feb" {
		t.Errorf("issue = %+v, want stream_mismatch on License Feb", issues[0])
	}
}

func TestCheckAlignmentIssueOrdering(t *testing.T) {
	// Both streams misaligned: license issues come first, then services,
	// months ascending within each.
	rec := &schema.LmsQuotaRecord{
		EmployeeID: "E1",
		Component:  schema.ComponentBoth,
		PlanType:   schema.PlanSemi,
		License:    amountSeries(-1, 100, -1, 100, 100, 100),
		Services:   amountSeries(100, -1, 100, 100, 100, 100),
	}

	results := CheckAlignment([]*schema.LmsQuotaRecord{rec})
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	issues := results[0].Issues
	want := []string{"License Jan", "License Mar", "Services Feb"}
	if len(issues) != len(want) {
		t.Fatalf("got %d issues, want %d: %+v", len(issues), len(want), issues)
	}
	for i, col := range want {
		if issues[i].Column != col {
			t.Errorf("issue %d column = %q, want %q", i, issues[i].Column, col)
		}
	}
}

func TestCheckAlignmentEffectiveAfterWindowSkips(t *testing.T) {
	rec := &schema.LmsQuotaRecord{
		EmployeeID: "E1",
		Component:  schema.ComponentLicenseOnly,
		PlanType:   schema.PlanSemi,
		Effective:  effectiveOn(time.September),
		License:    amountSeries(-1, -1, -1, -1, -1, -1),
	}
	if results := CheckAlignment([]*schema.LmsQuotaRecord{rec}); len(results) != 0 {
		t.Errorf("got %d results, want none for an out-of-window record", len(results))
	}
}

func TestCheckAlignmentUnknownPlanPermissive(t *testing.T) {
	// Unrecognized plan strings only flag absences, never presences.
	rec := &schema.LmsQuotaRecord{
		EmployeeID:  "E1",
		Component:   schema.ComponentLicenseOnly,
		PlanType:    schema.PlanUnknown,
		PlanTypeRaw: "Monthly",
		License:     amountSeries(100, 100, 100, 100, 100, -1),
	}

	results := CheckAlignment([]*schema.LmsQuotaRecord{rec})
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	issues := results[0].Issues
	if len(issues) != 1 || issues[0].Kind != IssueMissingAmount || issues[0].Month != 6 {
		t.Errorf("issues = %+v, want one missing_amount in June", issues)
	}
}
