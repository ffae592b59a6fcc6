package report

import (
	"encoding/json"
	"fmt"
)

// MarshalHalfReport renders a fiscal-half report as indented JSON, the
// hand-off format for export and table-rendering collaborators.
func MarshalHalfReport(r *HalfReport) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal half report: %w", err)
	}
	return data, nil
}

// UnmarshalHalfReport reconstructs a fiscal-half report from its JSON form.
func UnmarshalHalfReport(data []byte) (*HalfReport, error) {
	var r HalfReport
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("unmarshal half report: %w", err)
	}
	return &r, nil
}

// MarshalLmsReport renders an LMS report as indented JSON.
func MarshalLmsReport(r *LmsReport) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal lms report: %w", err)
	}
	return data, nil
}

// UnmarshalLmsReport reconstructs an LMS report from its JSON form.
func UnmarshalLmsReport(data []byte) (*LmsReport, error) {
	var r LmsReport
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("unmarshal lms report: %w", err)
	}
	return &r, nil
}
