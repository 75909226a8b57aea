package sheet

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// readCSV returns all records of a CSV/TSV status sheet, header included.
// A zero delimiter means tab for .tsv files and comma otherwise.
func readCSV(path string, delim rune) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	switch {
	case delim != 0:
		r.Comma = delim
	case strings.HasSuffix(strings.ToLower(path), ".tsv"):
		r.Comma = '\t'
	}
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return records, nil
}
