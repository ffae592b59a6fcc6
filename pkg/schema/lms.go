package schema

import "strings"

// Fixed column layout of the LMS monthly-processing schema: 38 columns by
// position, header on the first row, data from the second. Only the columns
// the checks consume are named; the remainder (cost center, comp plan id,
// approval columns) are carried in the file but not read.
const (
	lmsColEmployeeID  = 0
	lmsColEmail       = 1
	lmsColName        = 2
	lmsColManagerID   = 3
	lmsColManagerName = 4
	lmsColGeo         = 5
	lmsColTier        = 6
	lmsColSegment     = 7
	lmsColTeam        = 8
	lmsColComponent   = 9
	lmsColPlanType    = 10
	lmsColEffective   = 11
	lmsColNotes       = 12

	lmsColLicenseJan  = 13 // Jan..Jun at 13..18
	lmsColServicesJan = 19 // Jan..Jun at 19..24
	lmsColBookingsJan = 25 // Jan..Jun at 25..30

	// LmsColumnCount is the full fixed width of the LMS sheet.
	LmsColumnCount = 38
)

// lmsWindowMonths is the processing window: calendar months 1-6.
const lmsWindowMonths = 6

// BuildLmsRecords maps the raw rows of the LMS sheet into LmsQuotaRecords.
// The header occupies the first row; rows with a blank employee identifier
// are skipped. Row numbers are 1-based spreadsheet rows.
func BuildLmsRecords(rows [][]string) []*LmsQuotaRecord {
	var records []*LmsQuotaRecord

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		id := strings.TrimSpace(cellAt(row, lmsColEmployeeID))
		if id == "" {
			continue
		}

		componentRaw := strings.TrimSpace(cellAt(row, lmsColComponent))
		planRaw := strings.TrimSpace(cellAt(row, lmsColPlanType))

		records = append(records, &LmsQuotaRecord{
			Row:          i + 1,
			EmployeeID:   id,
			Email:        strings.TrimSpace(cellAt(row, lmsColEmail)),
			Name:         strings.TrimSpace(cellAt(row, lmsColName)),
			ManagerID:    strings.TrimSpace(cellAt(row, lmsColManagerID)),
			ManagerName:  strings.TrimSpace(cellAt(row, lmsColManagerName)),
			GeoCode:      strings.TrimSpace(cellAt(row, lmsColGeo)),
			Tier:         strings.TrimSpace(cellAt(row, lmsColTier)),
			Segment:      strings.TrimSpace(cellAt(row, lmsColSegment)),
			Team:         strings.TrimSpace(cellAt(row, lmsColTeam)),
			Component:    ClassifyComponent(componentRaw),
			ComponentRaw: componentRaw,
			PlanType:     ClassifyPlanType(planRaw),
			PlanTypeRaw:  planRaw,
			Effective:    ParseDate(cellAt(row, lmsColEffective)),
			Notes:        strings.TrimSpace(cellAt(row, lmsColNotes)),
			License:      lmsSeries(row, lmsColLicenseJan),
			Services:     lmsSeries(row, lmsColServicesJan),
			Bookings:     lmsSeries(row, lmsColBookingsJan),
		})
	}

	return records
}

// lmsSeries reads six consecutive month columns (Jan..Jun) starting at first.
func lmsSeries(row []string, first int) MonthSeries {
	months := make(MonthSeries, lmsWindowMonths)
	for m := 1; m <= lmsWindowMonths; m++ {
		months[m] = ParseCell(cellAt(row, first+m-1))
	}
	return months
}

// LmsColumnName renders the column identity for a stream/month pair the way
// reports reference it, e.g. "License Mar".
func LmsColumnName(stream string, month int) string {
	return stream + " " + monthAbbrevs[month-1]
}
