package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// LoadCSV reads an entire CSV file into a MemTable. The first record is the
// header. Column types are inferred: a column whose every non-missing cell
// parses as a finite number becomes numeric, anything else stays text.
// Empty cells and non-finite spellings ("nan", "inf") become the missing
// marker in every column.
func LoadCSV(path string) (*MemTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("no columns to parse from empty input")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	if err := checkColumns(header); err != nil {
		return nil, err
	}

	recs, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return fromRecords(header, recs)
}

// fromRecords builds a MemTable from raw CSV records, applying per-column
// type inference.
func fromRecords(cols []string, recs [][]string) (*MemTable, error) {
	numeric := make([]bool, len(cols))
	for i := range numeric {
		numeric[i] = true
	}
	for _, rec := range recs {
		if len(rec) != len(cols) {
			return nil, fmt.Errorf("record has %d fields, want %d", len(rec), len(cols))
		}
		for i, s := range rec {
			if MissingText(s) || !numeric[i] {
				continue
			}
			if _, ok := ParseNumber(s); !ok {
				numeric[i] = false
			}
		}
	}

	rows := make([][]any, len(recs))
	for r, rec := range recs {
		row := make([]any, len(cols))
		for i, s := range rec {
			switch {
			case MissingText(s):
				row[i] = nil
			case numeric[i]:
				f, _ := ParseNumber(s)
				row[i] = f
			default:
				row[i] = s
			}
		}
		rows[r] = row
	}
	return NewMemTable(cols, rows)
}
