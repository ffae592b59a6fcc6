package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrBadPeriod marks an unparseable or unrecognized submission-period label.
// Period errors are fatal to a run.
var ErrBadPeriod = errors.New("invalid submission period")

// Period is a submission or processing period at month granularity.
type Period struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// ParsePeriod parses a period selector label of the form "Jan-26"
// (three-letter month abbreviation, hyphen, two-digit year).
func ParsePeriod(label string) (Period, error) {
	parts := strings.Split(strings.TrimSpace(label), "-")
	if len(parts) != 2 {
		return Period{}, fmt.Errorf("%w: %q (want MMM-YY, e.g. Jan-26)", ErrBadPeriod, label)
	}

	month, ok := monthByAbbrev(parts[0])
	if !ok {
		return Period{}, fmt.Errorf("%w: unknown month %q", ErrBadPeriod, parts[0])
	}

	yy, err := strconv.Atoi(parts[1])
	if err != nil || yy < 0 || yy > 99 {
		return Period{}, fmt.Errorf("%w: bad year %q", ErrBadPeriod, parts[1])
	}

	return Period{Year: 2000 + yy, Month: month}, nil
}

// Label renders the period back in its selector form.
func (p Period) Label() string {
	return fmt.Sprintf("%s-%02d", monthAbbrevs[int(p.Month)-1], p.Year%100)
}

// Matches reports whether a date falls in this period (year+month equality).
func (p Period) Matches(t *time.Time) bool {
	return t != nil && t.Year() == p.Year && t.Month() == p.Month
}

// fiscalYearStart is the calendar month the fiscal year begins in.
const fiscalYearStart = 7

// Half is one six-month block of the fiscal year. H1 spans calendar months
// 7-12, H2 months 1-6, both within a single calendar year.
type Half struct {
	Name       string `json:"name"` // "H1" or "H2"
	Year       int    `json:"year"`
	StartMonth int    `json:"startMonth"`
	EndMonth   int    `json:"endMonth"`
}

// HalfFor selects the fiscal half implied by a submission period: periods in
// calendar months >= 7 fall in H1, earlier months in H2.
func HalfFor(p Period) Half {
	if int(p.Month) >= fiscalYearStart {
		return Half{Name: "H1", Year: p.Year, StartMonth: fiscalYearStart, EndMonth: 12}
	}
	return Half{Name: "H2", Year: p.Year, StartMonth: 1, EndMonth: fiscalYearStart - 1}
}

// Months returns the half's calendar months in ascending order.
func (h Half) Months() []int {
	months := make([]int, 0, h.EndMonth-h.StartMonth+1)
	for m := h.StartMonth; m <= h.EndMonth; m++ {
		months = append(months, m)
	}
	return months
}

// StartsAfter reports whether a quota-start date falls strictly after the
// end of the half, by year+month comparison.
func (h Half) StartsAfter(start time.Time) bool {
	if start.Year() != h.Year {
		return start.Year() > h.Year
	}
	return int(start.Month()) > h.EndMonth
}

// EffectiveStartMonth computes the first calendar month of the half that a
// quota-start date makes subject to completeness checks. Start dates in the
// half's year clamp to the half's range; earlier years mean the quota was
// already running, so the whole half applies.
func (h Half) EffectiveStartMonth(start *time.Time) int {
	if start == nil || start.Year() < h.Year {
		return h.StartMonth
	}
	if start.Year() == h.Year && int(start.Month()) > h.StartMonth {
		return int(start.Month())
	}
	return h.StartMonth
}

// monthAbbrevs are the recognized three-letter month spellings, calendar order.
var monthAbbrevs = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// MonthAbbrev returns the three-letter spelling for a calendar month.
func MonthAbbrev(m int) string {
	if m < 1 || m > 12 {
		return ""
	}
	return monthAbbrevs[m-1]
}

// monthByAbbrev resolves a three-letter abbreviation case-insensitively.
func monthByAbbrev(s string) (time.Month, bool) {
	for i, abbrev := range monthAbbrevs {
		if strings.EqualFold(strings.TrimSpace(s), abbrev) {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}
