package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrHeaderNotFound marks a required header row or label that could not be
// located. Input-shape errors are fatal to a run.
var ErrHeaderNotFound = errors.New("required header not found")

// Fixed layout of the fiscal-half quota sheets: a banner row, the header
// row, a units sub-header, then data.
const (
	QuotaHeaderRowIndex    = 1
	QuotaFirstDataRowIndex = 3
)

// BuildQuotaRecords maps the raw rows of one quota sheet into QuotaRecords
// using an inferred column map. Fully blank rows are dropped; rows with a
// blank identifier are kept (placeholder headcount is a real case the
// checks handle). Row numbers are 1-based spreadsheet rows.
func BuildQuotaRecords(sheetName string, rows [][]string, cm *ColumnMap) []*QuotaRecord {
	var records []*QuotaRecord

	for i := QuotaFirstDataRowIndex; i < len(rows); i++ {
		row := rows[i]
		if rowBlank(row) {
			continue
		}

		rec := &QuotaRecord{
			Sheet:       sheetName,
			Row:         i + 1,
			EmployeeID:  strings.TrimSpace(cellAt(row, cm.EmployeeID)),
			DisplayName: strings.TrimSpace(cellAt(row, cm.Name)),
			JobLevel:    strings.TrimSpace(cellAt(row, cm.Level)),
			RegionHint:  strings.TrimSpace(cellAt(row, cm.RegionHint)),
			MetricFlag:  strings.TrimSpace(cellAt(row, cm.MetricFlag)),
			QuotaStart:  ParseDate(cellAt(row, cm.QuotaStart)),
			Period:      ParseDate(cellAt(row, cm.Period)),
		}

		// Bucket presence is a fixed function of the detected schema and
		// the dual-metric flag; buckets are never partially populated.
		rec.PrimaryY1 = buildBucket(BucketPrimaryY1, row, cm.PrimaryY1)
		if cm.PrimaryY23 != nil {
			rec.PrimaryY23 = buildBucket(BucketPrimaryY23, row, cm.PrimaryY23)
		}
		if rec.IsDualMetric() {
			if cm.SecondaryY1 != nil {
				rec.SecondaryY1 = buildBucket(BucketSecondaryY1, row, cm.SecondaryY1)
			}
			if cm.SecondaryY23 != nil {
				rec.SecondaryY23 = buildBucket(BucketSecondaryY23, row, cm.SecondaryY23)
			}
		}

		records = append(records, rec)
	}

	return records
}

// buildBucket reads every mapped month column into an AmountBucket.
func buildBucket(label string, row []string, cols MonthColumns) *AmountBucket {
	months := make(MonthSeries, len(cols))
	for month, col := range cols {
		months[month] = ParseCell(cellAt(row, col))
	}
	return &AmountBucket{Label: label, Months: months}
}

// ParseCell canonicalizes a raw cell into a typed CellValue. Thousands
// separators and a leading currency sign are tolerated on numbers;
// anything else non-blank stays as placeholder text.
func ParseCell(raw string) CellValue {
	s := strings.TrimSpace(raw)
	if s == "" {
		return EmptyCell()
	}

	numeric := strings.ReplaceAll(s, ",", "")
	numeric = strings.TrimPrefix(numeric, "$")
	if d, err := decimal.NewFromString(numeric); err == nil {
		return NumberCell(d)
	}

	return TextCell(s)
}

// rosterHeaderScanLimit bounds the search for the roster header row.
const rosterHeaderScanLimit = 20

// Roster header labels, matched exactly (case-insensitive) on the located
// header row, with fixed fallback positions when a label is absent.
var rosterLabels = []struct {
	label    string
	fallback int
}{
	{"Employee Name", 1},
	{"Active Status", 2},
	{"On Leave", 3},
	{"Country", 4},
	{"Job Title", 5},
}

// BuildRosterRecords locates the roster header row by scanning the first 20
// rows for a cell containing "employee id" (case-insensitive), resolves the
// remaining columns by exact label match, and builds one ReferenceRecord
// per data row. Rows with a blank identifier are dropped.
func BuildRosterRecords(rows [][]string) ([]*ReferenceRecord, error) {
	headerRow, idCol, ok := findRosterHeader(rows)
	if !ok {
		return nil, fmt.Errorf("%w: no \"employee id\" header in first %d rows", ErrHeaderNotFound, rosterHeaderScanLimit)
	}

	header := rows[headerRow]
	cols := make([]int, len(rosterLabels))
	for i, rl := range rosterLabels {
		cols[i] = rl.fallback
		for c, cell := range header {
			if strings.EqualFold(strings.TrimSpace(cell), rl.label) {
				cols[i] = c
				break
			}
		}
	}

	var records []*ReferenceRecord
	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		id := strings.TrimSpace(cellAt(row, idCol))
		if id == "" {
			continue
		}
		records = append(records, &ReferenceRecord{
			EmployeeID:   id,
			FullName:     strings.TrimSpace(cellAt(row, cols[0])),
			ActiveStatus: strings.TrimSpace(cellAt(row, cols[1])),
			OnLeave:      strings.TrimSpace(cellAt(row, cols[2])),
			Country:      strings.TrimSpace(cellAt(row, cols[3])),
			JobTitle:     strings.TrimSpace(cellAt(row, cols[4])),
		})
	}

	return records, nil
}

// findRosterHeader returns the header row index and the employee-id column.
func findRosterHeader(rows [][]string) (int, int, bool) {
	limit := rosterHeaderScanLimit
	if len(rows) < limit {
		limit = len(rows)
	}
	for r := 0; r < limit; r++ {
		for c, cell := range rows[r] {
			if strings.Contains(strings.ToLower(cell), "employee id") {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// cellAt returns the cell at idx, or "" when the row is too short.
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func rowBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
