// Package xlsx is the tabular extraction adapter: it decodes an uploaded
// workbook into ordered rows of raw cell values, applying the sheet
// selection rules the validators expect. All schema interpretation happens
// downstream.
package xlsx

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet is one extracted worksheet: its name and ordered raw rows.
type Sheet struct {
	Name string     `json:"name"`
	Rows [][]string `json:"rows"`
}

// Workbook wraps an open xlsx file.
type Workbook struct {
	f *excelize.File
}

// Open reads a workbook from a stream.
func Open(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return &Workbook{f: f}, nil
}

// OpenFile reads a workbook from disk.
func OpenFile(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	return &Workbook{f: f}, nil
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.f.Close()
}

// QuotaSheets extracts the sheets subject to fiscal-half validation: names
// ending in "quota" or "quotas" (case-insensitive), excluding any sheet
// named "Instructions" and sheets the workbook marks hidden.
func (w *Workbook) QuotaSheets() ([]Sheet, error) {
	var sheets []Sheet
	for _, name := range w.f.GetSheetList() {
		if !isQuotaSheetName(name) {
			continue
		}
		visible, err := w.f.GetSheetVisible(name)
		if err != nil {
			return nil, fmt.Errorf("sheet %q visibility: %w", name, err)
		}
		if !visible {
			continue
		}
		rows, err := w.f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
		sheets = append(sheets, Sheet{Name: name, Rows: rows})
	}
	return sheets, nil
}

// FirstSheet extracts the first sheet of a single-sheet input (roster, LMS).
func (w *Workbook) FirstSheet() (Sheet, error) {
	name := w.f.GetSheetName(0)
	if name == "" {
		return Sheet{}, fmt.Errorf("workbook has no sheets")
	}
	rows, err := w.f.GetRows(name)
	if err != nil {
		return Sheet{}, fmt.Errorf("read sheet %q: %w", name, err)
	}
	return Sheet{Name: name, Rows: rows}, nil
}

// isQuotaSheetName applies the inclusion filter for quota sheets.
func isQuotaSheetName(name string) bool {
	if strings.EqualFold(name, "Instructions") {
		return false
	}
	lower := strings.ToLower(strings.TrimSpace(name))
	return strings.HasSuffix(lower, "quota") || strings.HasSuffix(lower, "quotas")
}
