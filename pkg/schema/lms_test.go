package schema

import "testing"

// lmsRow builds a full-width row: metadata in the first 13 columns, then
// License, Services, and Bookings month blocks of six cells each.
func lmsRow(meta []string, license, services, bookings []string) []string {
	row := make([]string, LmsColumnCount)
	copy(row, meta)
	copy(row[lmsColLicenseJan:], license)
	copy(row[lmsColServicesJan:], services)
	copy(row[lmsColBookingsJan:], bookings)
	return row
}

func TestBuildLmsRecords(t *testing.T) {
	header := make([]string, LmsColumnCount)
	rows := [][]string{
		header,
		lmsRow(
			[]string{"E100", "aiko@example.com", "Aiko Tanaka", "M1", "Mgr", "APAC", "T1", "ENT", "Team A", "License Only", "Semi Annual", "2026-01-01", "note"},
			[]string{"100", "100", "100", "100", "100", "100"},
			[]string{"", "", "", "", "", ""},
			[]string{"5", "5", "5", "5", "5", "5"},
		),
		{"", "skipped", "blank id"},
		lmsRow(
			[]string{"E200", "", "Lars Nilsen", "", "", "WW", "", "", "", "Services Only", "Qtrly", "", ""},
			nil,
			[]string{"10", "20", "30", "0", "-", ""},
			nil,
		),
	}

	records := BuildLmsRecords(rows)
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2 (blank id skipped)", len(records))
	}

	first := records[0]
	if first.Row != 2 || first.EmployeeID != "E100" || first.GeoCode != "APAC" {
		t.Errorf("first record = %+v", first)
	}
	if first.Component != ComponentLicenseOnly || first.PlanType != PlanSemi {
		t.Errorf("classification = %s/%s, want license_only/Semi", first.Component, first.PlanType)
	}
	if first.Effective == nil || first.Effective.Month() != 1 {
		t.Errorf("Effective = %v, want January 2026", first.Effective)
	}
	if !first.License[1].IsPositive() || !first.License[6].IsPositive() {
		t.Errorf("license series = %+v, want positive Jan and Jun", first.License)
	}
	if first.Services[1].Kind != CellEmpty {
		t.Errorf("services Jan = %+v, want empty", first.Services[1])
	}

	second := records[1]
	if second.Row != 4 || second.Component != ComponentServicesOnly || second.PlanType != PlanQtrly {
		t.Errorf("second record = %+v", second)
	}
	if !second.Services[3].IsPositive() {
		t.Errorf("services Mar = %+v, want positive", second.Services[3])
	}
	if !second.Services[4].IsMissing() || !second.Services[5].IsMissing() || !second.Services[6].IsMissing() {
		t.Error("zero, dash, and blank services cells should all count as missing")
	}
}

func TestClassifyComponent(t *testing.T) {
	tests := []struct {
		raw  string
		want Component
	}{
		{"Non-SAV", ComponentNonSAV},
		{"non sav", ComponentNonSAV},
		{"License Only", ComponentLicenseOnly},
		{"Services Only", ComponentServicesOnly},
		{"License+Services", ComponentBoth},
		{"License & Services", ComponentBoth},
		{"", ComponentUnknown},
		{"Hardware", ComponentUnknown},
	}
	for _, tt := range tests {
		if got := ClassifyComponent(tt.raw); got != tt.want {
			t.Errorf("ClassifyComponent(%q) = %s, want %s", tt.raw, got, tt.want)
		}
	}
}

func TestComponentStreamChecks(t *testing.T) {
	if !ComponentNonSAV.ChecksLicense() || ComponentNonSAV.ChecksServices() {
		t.Error("non_sav should check license only")
	}
	if ComponentServicesOnly.ChecksLicense() || !ComponentServicesOnly.ChecksServices() {
		t.Error("services_only should check services only")
	}
	if !ComponentBoth.ChecksLicense() || !ComponentBoth.ChecksServices() {
		t.Error("license_services should check both streams")
	}
	// Unknown components get the conservative license check.
	if !ComponentUnknown.ChecksLicense() {
		t.Error("unknown component should still check license")
	}
}

func TestClassifyPlanType(t *testing.T) {
	tests := []struct {
		raw  string
		want PlanType
	}{
		{"Semi", PlanSemi},
		{"Semi-Annual", PlanSemi},
		{"Qtrly", PlanQtrly},
		{"Quarterly", PlanQtrly},
		{"OKR", PlanOKR},
		{"Objectives", PlanOKR},
		{"", PlanUnknown},
		{"Monthly", PlanUnknown},
	}
	for _, tt := range tests {
		if got := ClassifyPlanType(tt.raw); got != tt.want {
			t.Errorf("ClassifyPlanType(%q) = %s, want %s", tt.raw, got, tt.want)
		}
	}
}

func TestLmsColumnName(t *testing.T) {
	if got := LmsColumnName("License", 3); got != "License Mar" {
		t.Errorf("LmsColumnName = %q, want License Mar", got)
	}
	if got := LmsColumnName("Services", 6); got != "Services Jun" {
		t.Errorf("LmsColumnName = %q, want Services Jun", got)
	}
}
