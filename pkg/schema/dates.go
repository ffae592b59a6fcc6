package schema

import (
	"strconv"
	"strings"
	"time"
)

// dateFormats are the spellings that show up in real quota and roster
// exports. Tried in order; first parse wins.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01-02-06",
	"1/2/06",
	"Jan 2, 2006",
	"January 2, 2006",
	"02-Jan-2006",
	"2-Jan-06",
}

// ParseDate parses a raw date cell into a time.Time, trying the known
// formats and falling back to Excel serial numbers. Returns nil when the
// cell is blank or unparseable; callers treat nil as "no date".
func ParseDate(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return &t
		}
	}

	if t, ok := fromExcelSerial(s); ok {
		return &t
	}

	return nil
}

// fromExcelSerial converts an Excel date serial (days since 1899-12-30,
// possibly fractional) to a time.Time. Serials below 61 predate the
// spreadsheet era for this data and are rejected along with garbage.
func fromExcelSerial(s string) (time.Time, bool) {
	serial, err := strconv.ParseFloat(s, 64)
	if err != nil || serial < 61 || serial > 200000 {
		return time.Time{}, false
	}
	epoch := time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
	days := int(serial)
	return epoch.AddDate(0, 0, days), true
}
