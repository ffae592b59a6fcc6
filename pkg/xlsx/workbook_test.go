package xlsx

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

// buildWorkbook assembles an in-memory workbook with the given sheet names,
// writing a recognizable cell into each.
func buildWorkbook(t *testing.T, names ...string) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, name := range names {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				t.Fatal(err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				t.Fatal(err)
			}
		}
		if err := f.SetCellValue(name, "A1", name); err != nil {
			t.Fatal(err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return buf
}

func TestQuotaSheetsFilter(t *testing.T) {
	buf := buildWorkbook(t, "Instructions", "APAC Quotas", "Summary", "EMEA Quota")

	wb, err := Open(buf)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer wb.Close()

	sheets, err := wb.QuotaSheets()
	if err != nil {
		t.Fatalf("QuotaSheets: %v", err)
	}
	if len(sheets) != 2 {
		t.Fatalf("got %d sheets, want 2: %+v", len(sheets), sheets)
	}
	if sheets[0].Name != "APAC Quotas" || sheets[1].Name != "EMEA Quota" {
		t.Errorf("sheets = %q, %q; want APAC Quotas, EMEA Quota", sheets[0].Name, sheets[1].Name)
	}
	if sheets[0].Rows[0][0] != "APAC Quotas" {
		t.Errorf("cell A1 = %q", sheets[0].Rows[0][0])
	}
}

func TestQuotaSheetsSkipsHidden(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName(f.GetSheetName(0), "Visible Quota"); err != nil {
		t.Fatal(err)
	}
	if _, err := f.NewSheet("Hidden Quota"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetSheetVisible("Hidden Quota", false); err != nil {
		t.Fatal(err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}

	wb, err := Open(buf)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer wb.Close()

	sheets, err := wb.QuotaSheets()
	if err != nil {
		t.Fatalf("QuotaSheets: %v", err)
	}
	if len(sheets) != 1 || sheets[0].Name != "Visible Quota" {
		t.Errorf("sheets = %+v, want Visible Quota only", sheets)
	}
}

func TestFirstSheet(t *testing.T) {
	buf := buildWorkbook(t, "Roster Export")

	wb, err := Open(buf)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer wb.Close()

	sheet, err := wb.FirstSheet()
	if err != nil {
		t.Fatalf("FirstSheet: %v", err)
	}
	if sheet.Name != "Roster Export" || sheet.Rows[0][0] != "Roster Export" {
		t.Errorf("sheet = %+v", sheet)
	}
}

func TestIsQuotaSheetName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"APAC Quotas", true},
		{"quota", true},
		{"FY26 QUOTA", true},
		{"Instructions", false},
		{"instructions", false},
		{"Summary", false},
		{"Quota Notes", false},
	}
	for _, tt := range tests {
		if got := isQuotaSheetName(tt.name); got != tt.want {
			t.Errorf("isQuotaSheetName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
