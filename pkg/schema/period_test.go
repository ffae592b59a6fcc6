package schema

import (
	"errors"
	"testing"
	"time"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		label string
		year  int
		month time.Month
	}{
		{"Jan-26", 2026, time.January},
		{"jul-25", 2025, time.July},
		{" Dec-99 ", 2099, time.December},
	}

	for _, tt := range tests {
		p, err := ParsePeriod(tt.label)
		if err != nil {
			t.Fatalf("ParsePeriod(%q): %v", tt.label, err)
		}
		if p.Year != tt.year || p.Month != tt.month {
			t.Errorf("ParsePeriod(%q) = %d-%d, want %d-%d", tt.label, p.Year, p.Month, tt.year, tt.month)
		}
	}
}

func TestParsePeriodInvalid(t *testing.T) {
	for _, label := range []string{"", "January-26", "Jan26", "Foo-26", "Jan-xx", "Jan-26-01"} {
		if _, err := ParsePeriod(label); !errors.Is(err, ErrBadPeriod) {
			t.Errorf("ParsePeriod(%q) err = %v, want ErrBadPeriod", label, err)
		}
	}
}

func TestPeriodLabelRoundTrip(t *testing.T) {
	p := Period{Year: 2026, Month: time.February}
	if got := p.Label(); got != "Feb-26" {
		t.Errorf("Label() = %q, want Feb-26", got)
	}
}

func TestHalfFor(t *testing.T) {
	h1 := HalfFor(Period{Year: 2025, Month: time.July})
	if h1.Name != "H1" || h1.StartMonth != 7 || h1.EndMonth != 12 || h1.Year != 2025 {
		t.Errorf("HalfFor(Jul-25) = %+v, want H1 7-12 2025", h1)
	}

	h2 := HalfFor(Period{Year: 2026, Month: time.June})
	if h2.Name != "H2" || h2.StartMonth != 1 || h2.EndMonth != 6 || h2.Year != 2026 {
		t.Errorf("HalfFor(Jun-26) = %+v, want H2 1-6 2026", h2)
	}
}

func TestHalfStartsAfter(t *testing.T) {
	h1 := HalfFor(Period{Year: 2025, Month: time.October}) // Jul-Dec 2025

	tests := []struct {
		start time.Time
		want  bool
	}{
		{time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), true},
		{time.Date(2025, time.December, 15, 0, 0, 0, 0, time.UTC), false},
		{time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		if got := h1.StartsAfter(tt.start); got != tt.want {
			t.Errorf("StartsAfter(%v) = %v, want %v", tt.start, got, tt.want)
		}
	}
}

func TestEffectiveStartMonth(t *testing.T) {
	h1 := HalfFor(Period{Year: 2025, Month: time.October}) // Jul-Dec 2025

	sep := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)
	if got := h1.EffectiveStartMonth(&sep); got != 9 {
		t.Errorf("EffectiveStartMonth(Sep 2025) = %d, want 9", got)
	}

	// A start in an earlier year means the quota already ran: the whole
	// half applies.
	early := time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC)
	if got := h1.EffectiveStartMonth(&early); got != 7 {
		t.Errorf("EffectiveStartMonth(Nov 2024) = %d, want 7", got)
	}

	// A start before the half within the same year clamps to the half.
	mar := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	if got := h1.EffectiveStartMonth(&mar); got != 7 {
		t.Errorf("EffectiveStartMonth(Mar 2025) = %d, want 7", got)
	}

	if got := h1.EffectiveStartMonth(nil); got != 7 {
		t.Errorf("EffectiveStartMonth(nil) = %d, want 7", got)
	}
}

func TestHalfMonths(t *testing.T) {
	h2 := HalfFor(Period{Year: 2026, Month: time.February})
	want := []int{1, 2, 3, 4, 5, 6}
	got := h2.Months()
	if len(got) != len(want) {
		t.Fatalf("Months() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Months() = %v, want %v", got, want)
		}
	}
}
