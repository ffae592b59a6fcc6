package schema

import (
	"strings"
)

// MonthColumns maps a calendar month (1-12) to the column index holding
// that month's amount.
type MonthColumns map[int]int

// ColumnMap is the per-file column layout inferred from a header row.
// Computed once per sheet and passed explicitly to record construction;
// there is no implicit column-position state.
type ColumnMap struct {
	EmployeeID int `json:"employeeId"`
	Name       int `json:"name"`
	Level      int `json:"level"`
	RegionHint int `json:"regionHint"`
	MetricFlag int `json:"metricFlag"`
	QuotaStart int `json:"quotaStart"`
	Period     int `json:"period"`

	// PrimaryY1 is always fully populated: undetected months take the
	// legacy fixed-position layout. The other buckets are nil when no
	// column was detected for any month.
	PrimaryY1    MonthColumns `json:"primaryY1"`
	PrimaryY23   MonthColumns `json:"primaryY2Y3,omitempty"`
	SecondaryY1  MonthColumns `json:"secondaryY1,omitempty"`
	SecondaryY23 MonthColumns `json:"secondaryY2Y3,omitempty"`
}

// fiscalMonthOrder lists calendar months in fiscal order (Jul..Jun), the
// order amount columns appear in the legacy fixed layout.
var fiscalMonthOrder = [12]int{7, 8, 9, 10, 11, 12, 1, 2, 3, 4, 5, 6}

// legacyPrimaryY1First is the first amount column of the legacy layout.
const legacyPrimaryY1First = 9

// Header marker tokens for bucket classification.
var (
	secondaryMarkers = []string{"secondary"}
	year2Markers     = []string{"y2", "year 2", "yr 2"}
)

// MapColumns infers the column layout from a header row. Month columns are
// classified per cell: the cell must name a month (exact abbreviation or
// "<label> - <MON>" variants), and marker tokens route it to the secondary
// and/or Y2&Y3 buckets. First match wins per (bucket, month); later
// duplicates are ignored.
func MapColumns(header []string) *ColumnMap {
	cm := &ColumnMap{
		PrimaryY1:    make(MonthColumns),
		PrimaryY23:   make(MonthColumns),
		SecondaryY1:  make(MonthColumns),
		SecondaryY23: make(MonthColumns),
	}

	for i, cell := range header {
		month, ok := headerMonth(cell)
		if !ok {
			continue
		}
		bucket := cm.bucketFor(cell)
		if _, taken := bucket[month]; !taken {
			bucket[month] = i
		}
	}

	// Undetected primary/Y1 months fall back to the legacy fixed layout.
	for idx, m := range fiscalMonthOrder {
		if _, ok := cm.PrimaryY1[m]; !ok {
			cm.PrimaryY1[m] = legacyPrimaryY1First + idx
		}
	}

	// Optional buckets exist only if at least one month column was detected.
	if len(cm.PrimaryY23) == 0 {
		cm.PrimaryY23 = nil
	}
	if len(cm.SecondaryY1) == 0 {
		cm.SecondaryY1 = nil
	}
	if len(cm.SecondaryY23) == 0 {
		cm.SecondaryY23 = nil
	}

	cm.EmployeeID = locateColumn(header, metadataProbes["employeeId"])
	cm.Name = locateColumn(header, metadataProbes["name"])
	cm.Level = locateColumn(header, metadataProbes["level"])
	cm.RegionHint = locateColumn(header, metadataProbes["regionHint"])
	cm.MetricFlag = locateColumn(header, metadataProbes["metricFlag"])
	cm.QuotaStart = locateColumn(header, metadataProbes["quotaStart"])
	cm.Period = locateColumn(header, metadataProbes["period"])

	return cm
}

// bucketFor routes a month header cell to its amount bucket by marker tokens.
func (cm *ColumnMap) bucketFor(cell string) MonthColumns {
	t := strings.ToLower(cell)
	secondary := containsAny(t, secondaryMarkers)
	year2 := containsAny(t, year2Markers)

	switch {
	case secondary && year2:
		return cm.SecondaryY23
	case secondary:
		return cm.SecondaryY1
	case year2:
		return cm.PrimaryY23
	}
	return cm.PrimaryY1
}

// headerMonth reports which calendar month a header cell names, if any.
// A cell names a month when its trimmed text equals a recognized month
// abbreviation, or ends with a separator followed by the abbreviation
// (covering variants like "Y2&Y3 Quota - Oct").
func headerMonth(cell string) (int, bool) {
	t := strings.TrimSpace(cell)
	for i, abbrev := range monthAbbrevs {
		if strings.EqualFold(t, abbrev) {
			return i + 1, true
		}
		if len(t) > len(abbrev) && strings.EqualFold(t[len(t)-len(abbrev):], abbrev) {
			sep := t[len(t)-len(abbrev)-1]
			if !isAlphanumeric(sep) {
				return i + 1, true
			}
		}
	}
	return 0, false
}

func isAlphanumeric(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

func containsAny(s string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(s, token) {
			return true
		}
	}
	return false
}

// headerProbe describes how to find a single-occurrence metadata column:
// exact spellings first, then substrings, then a fixed fallback position.
// Spellings and substrings are compared on normalized header text.
type headerProbe struct {
	exact    []string
	substr   []string
	fallback int
}

var metadataProbes = map[string]headerProbe{
	"employeeId": {
		exact:    []string{"employeeid", "empid", "eid"},
		substr:   []string{"employeeid"},
		fallback: 0,
	},
	"name": {
		exact:    []string{"name", "employeename"},
		substr:   []string{"employeename"},
		fallback: 1,
	},
	"level": {
		substr:   []string{"level"},
		fallback: 2,
	},
	"regionHint": {
		substr:   []string{"region", "segment"},
		fallback: 3,
	},
	"metricFlag": {
		substr:   []string{"dual", "metric"},
		fallback: 4,
	},
	"quotaStart": {
		substr:   []string{"quotastart", "startdate"},
		fallback: 5,
	},
	"period": {
		substr:   []string{"submission", "period"},
		fallback: 6,
	},
}

// locateColumn finds the first header cell matching the probe, falling back
// to the probe's fixed position when no label matches.
func locateColumn(header []string, probe headerProbe) int {
	for i, cell := range header {
		n := normalizeHeader(cell)
		if n == "" {
			continue
		}
		for _, e := range probe.exact {
			if n == e {
				return i
			}
		}
	}
	for i, cell := range header {
		n := normalizeHeader(cell)
		if n == "" {
			continue
		}
		for _, sub := range probe.substr {
			if strings.Contains(n, sub) {
				return i
			}
		}
	}
	return probe.fallback
}
