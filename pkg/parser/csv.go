// Package parser ingests single-sheet CSV exports (roster dumps, LMS
// extracts) into ordered rows of raw cells, tolerating the encodings and
// ragged shapes real exports arrive in. Header interpretation belongs to
// the schema package.
package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Warning records a non-fatal issue encountered while reading a row.
type Warning struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// RowSet is the ordered raw rows of one CSV sheet plus read warnings.
type RowSet struct {
	Rows     [][]string `json:"rows"`
	Encoding string     `json:"encoding"`
	Warnings []Warning  `json:"warnings,omitempty"`
}

// ReadRows parses CSV bytes into ordered rows of raw cell values. The
// encoding is detected and converted to UTF-8 first. Rows that fail to
// parse are skipped with a warning; an empty file is an error.
func ReadRows(data []byte) (*RowSet, error) {
	decoded, encoding, err := DetectAndDecode(data)
	if err != nil {
		return nil, fmt.Errorf("encoding detection failed: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	// Variable field counts are normal in hand-edited exports; downstream
	// cell access pads missing columns itself.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	set := &RowSet{Encoding: encoding}
	rowNum := 0

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNum++

		if err != nil {
			set.Warnings = append(set.Warnings, Warning{
				Row:     rowNum,
				Message: fmt.Sprintf("parse error: %v", err),
			})
			continue
		}

		for i, cell := range row {
			row[i] = strings.TrimSpace(cell)
		}
		set.Rows = append(set.Rows, row)
	}

	if len(set.Rows) == 0 {
		return nil, fmt.Errorf("empty file: no rows found")
	}

	return set, nil
}
