package schema

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CellKind tags the typed content of an amount cell.
type CellKind string

const (
	CellEmpty  CellKind = "empty"
	CellNumber CellKind = "number"
	CellText   CellKind = "text"
)

// CellValue is one observed spreadsheet cell: a number, a non-numeric
// placeholder string, or absent. Amounts are decimals so that zero and
// positivity tests are exact.
type CellValue struct {
	Kind   CellKind        `json:"kind"`
	Number decimal.Decimal `json:"number,omitempty"`
	Text   string          `json:"text,omitempty"`
}

// EmptyCell returns the absent cell value.
func EmptyCell() CellValue {
	return CellValue{Kind: CellEmpty}
}

// NumberCell returns a numeric cell value.
func NumberCell(d decimal.Decimal) CellValue {
	return CellValue{Kind: CellNumber, Number: d}
}

// TextCell returns a non-numeric placeholder cell value.
func TextCell(s string) CellValue {
	return CellValue{Kind: CellText, Text: s}
}

// IsMissing reports whether the cell counts as a missing amount:
// absent, a blank or dash placeholder, or numeric zero.
func (c CellValue) IsMissing() bool {
	switch c.Kind {
	case CellEmpty:
		return true
	case CellText:
		t := strings.TrimSpace(c.Text)
		return t == "" || t == "-" || t == "–"
	case CellNumber:
		return c.Number.IsZero()
	}
	return true
}

// IsPositive reports whether the cell holds a numeric value greater than zero.
func (c CellValue) IsPositive() bool {
	return c.Kind == CellNumber && c.Number.IsPositive()
}

// Display renders the cell for report output.
func (c CellValue) Display() string {
	switch c.Kind {
	case CellNumber:
		return c.Number.String()
	case CellText:
		return c.Text
	}
	return ""
}

// MonthSeries maps a calendar month (1-12) to the cell observed for it.
type MonthSeries map[int]CellValue

// AmountBucket is one optional set of monthly amounts. A nil *AmountBucket
// means the source schema did not expose the bucket; a present bucket with
// empty cells means it was exposed but unfilled. The two cases stay distinct.
type AmountBucket struct {
	Label  string      `json:"label"`
	Months MonthSeries `json:"months"`
}

// Bucket labels as they appear in reports.
const (
	BucketPrimaryY1    = "primary_y1"
	BucketPrimaryY23   = "primary_y2y3"
	BucketSecondaryY1  = "secondary_y1"
	BucketSecondaryY23 = "secondary_y2y3"
)

// QuotaRecord is one quota-plan line for one employee-period from the
// fiscal-half schema. Built once per source row; immutable afterwards.
type QuotaRecord struct {
	Sheet       string `json:"sheet"`
	Row         int    `json:"row"`
	EmployeeID  string `json:"employeeId"`
	DisplayName string `json:"displayName"`
	JobLevel    string `json:"jobLevel"`
	RegionHint  string `json:"regionHint"`
	MetricFlag  string `json:"metricFlag"`

	QuotaStart *time.Time `json:"quotaStart,omitempty"`
	// Period is the submission period at month granularity.
	Period *time.Time `json:"period,omitempty"`

	PrimaryY1    *AmountBucket `json:"primaryY1,omitempty"`
	PrimaryY23   *AmountBucket `json:"primaryY2Y3,omitempty"`
	SecondaryY1  *AmountBucket `json:"secondaryY1,omitempty"`
	SecondaryY23 *AmountBucket `json:"secondaryY2Y3,omitempty"`
}

// IsDualMetric reports whether the record tracks two compensation components.
func (r *QuotaRecord) IsDualMetric() bool {
	return strings.Contains(strings.ToLower(r.MetricFlag), "dual")
}

// HasPlaceholderID reports whether the employee identifier is blank or one of
// the recognized placeholder tokens.
func (r *QuotaRecord) HasPlaceholderID() bool {
	return IsPlaceholderID(r.EmployeeID)
}

// placeholderIDs are identifier spellings that mean "no real employee yet"
// (open headcount, to-be-hired rows).
var placeholderIDs = map[string]bool{
	"":    true,
	"-":   true,
	"–":   true,
	"tbd": true,
	"tbh": true,
	"n/a": true,
	"na":  true,
}

// IsPlaceholderID reports whether the identifier is blank or a placeholder.
func IsPlaceholderID(id string) bool {
	return placeholderIDs[strings.ToLower(strings.TrimSpace(id))]
}

// ReferenceRecord is one employee's HR roster snapshot. Multiple records may
// share an employee identifier (historical rows).
type ReferenceRecord struct {
	EmployeeID   string `json:"employeeId"`
	FullName     string `json:"fullName"`
	ActiveStatus string `json:"activeStatus"`
	OnLeave      string `json:"onLeave"`
	Country      string `json:"country,omitempty"`
	JobTitle     string `json:"jobTitle,omitempty"`
}

// IsActive reports whether the roster row marks the employee active.
// The HR export uses the literal "Yes".
func (r *ReferenceRecord) IsActive() bool {
	return r.ActiveStatus == "Yes"
}

// IsOnLeave reports whether the roster row marks the employee on leave.
func (r *ReferenceRecord) IsOnLeave() bool {
	return r.OnLeave == "Yes"
}

// Component classifies which revenue streams an LMS record carries quota for.
type Component string

const (
	ComponentNonSAV       Component = "non_sav"
	ComponentLicenseOnly  Component = "license_only"
	ComponentServicesOnly Component = "services_only"
	ComponentBoth         Component = "license_services"
	ComponentUnknown      Component = "unknown"
)

// ChecksLicense reports whether the license stream is subject to alignment checks.
func (c Component) ChecksLicense() bool {
	switch c {
	case ComponentNonSAV, ComponentLicenseOnly, ComponentBoth, ComponentUnknown:
		return true
	}
	return false
}

// ChecksServices reports whether the services stream is subject to alignment checks.
func (c Component) ChecksServices() bool {
	return c == ComponentServicesOnly || c == ComponentBoth
}

// ClassifyComponent maps the raw component cell to a Component.
func ClassifyComponent(raw string) Component {
	t := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case t == "":
		return ComponentUnknown
	case strings.Contains(t, "non-sav") || strings.Contains(t, "non sav"):
		return ComponentNonSAV
	case strings.Contains(t, "license") && strings.Contains(t, "service"):
		return ComponentBoth
	case strings.Contains(t, "license"):
		return ComponentLicenseOnly
	case strings.Contains(t, "service"):
		return ComponentServicesOnly
	}
	return ComponentUnknown
}

// PlanType classifies the quota plan cadence of an LMS record.
type PlanType string

const (
	PlanSemi    PlanType = "Semi"
	PlanQtrly   PlanType = "Qtrly"
	PlanOKR     PlanType = "OKR"
	PlanUnknown PlanType = "Unknown"
)

// ClassifyPlanType maps the raw plan-type cell to a PlanType. Unknown
// spellings keep the permissive default downstream.
func ClassifyPlanType(raw string) PlanType {
	t := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.HasPrefix(t, "semi"):
		return PlanSemi
	case strings.HasPrefix(t, "qtr") || strings.HasPrefix(t, "quarter"):
		return PlanQtrly
	case t == "okr" || strings.Contains(t, "objective"):
		return PlanOKR
	}
	return PlanUnknown
}

// LmsQuotaRecord is one employee line from the LMS monthly-processing schema.
type LmsQuotaRecord struct {
	Row         int    `json:"row"`
	EmployeeID  string `json:"employeeId"`
	Email       string `json:"email,omitempty"`
	Name        string `json:"name"`
	ManagerID   string `json:"managerId,omitempty"`
	ManagerName string `json:"managerName,omitempty"`
	GeoCode     string `json:"geoCode"`
	Tier        string `json:"tier,omitempty"`
	Segment     string `json:"segment,omitempty"`
	Team        string `json:"team,omitempty"`

	Component    Component `json:"component"`
	ComponentRaw string    `json:"componentRaw"`
	PlanType     PlanType  `json:"planType"`
	PlanTypeRaw  string    `json:"planTypeRaw"`

	Effective *time.Time `json:"effective,omitempty"`
	Notes     string     `json:"notes,omitempty"`

	// License and Services cover the six-month processing window (Jan-Jun).
	License  MonthSeries `json:"license"`
	Services MonthSeries `json:"services"`
	Bookings MonthSeries `json:"bookings"`
}

// HasPlaceholderID reports whether the employee identifier is blank or a placeholder.
func (r *LmsQuotaRecord) HasPlaceholderID() bool {
	return IsPlaceholderID(r.EmployeeID)
}
