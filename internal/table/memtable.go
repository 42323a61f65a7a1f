package table

import (
	"fmt"
)

// MemTable is the eager backend: an ordered column set plus fully loaded
// rows. Operations return new tables and never modify the receiver; row
// slices are shared only between tables that hold identical cells.
type MemTable struct {
	cols  []string
	index map[string]int
	rows  [][]any
}

func NewMemTable(cols []string, rows [][]any) (*MemTable, error) {
	if err := checkColumns(cols); err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != len(cols) {
			return nil, fmt.Errorf("row %d has %d values, want %d", i, len(row), len(cols))
		}
	}
	return &MemTable{cols: append([]string(nil), cols...), index: indexColumns(cols), rows: rows}, nil
}

func checkColumns(cols []string) error {
	seen := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		if _, dup := seen[c]; dup {
			return fmt.Errorf("duplicate column %q", c)
		}
		seen[c] = struct{}{}
	}
	return nil
}

func indexColumns(cols []string) map[string]int {
	idx := make(map[string]int, len(cols))
	for i, c := range cols {
		idx[c] = i
	}
	return idx
}

func (t *MemTable) Columns() []string { return append([]string(nil), t.cols...) }

func (t *MemTable) RowCount() int { return len(t.rows) }

// Missing returns the subset of names not present in the table, in input
// order.
func (t *MemTable) Missing(names []string) []string {
	var missing []string
	for _, n := range names {
		if _, ok := t.index[n]; !ok {
			missing = append(missing, n)
		}
	}
	return missing
}

// Column returns a copy of the named column's cells.
func (t *MemTable) Column(name string) ([]any, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("no column %q", name)
	}
	vals := make([]any, len(t.rows))
	for r, row := range t.rows {
		vals[r] = row[i]
	}
	return vals, nil
}

// WithColumn returns a new table with the named column replaced by values.
// Each row is re-sliced so the receiver's rows stay untouched.
func (t *MemTable) WithColumn(name string, values []any) (*MemTable, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("no column %q", name)
	}
	if len(values) != len(t.rows) {
		return nil, fmt.Errorf("column %q: %d values for %d rows", name, len(values), len(t.rows))
	}
	rows := make([][]any, len(t.rows))
	for r, row := range t.rows {
		nr := append([]any(nil), row...)
		nr[i] = values[r]
		rows[r] = nr
	}
	return &MemTable{cols: t.cols, index: t.index, rows: rows}, nil
}

// Rename returns a new table with columns renamed per mapping; cell values
// are untouched. A mapping that would produce a duplicate column name is
// rejected.
func (t *MemTable) Rename(mapping map[string]string) (*MemTable, error) {
	cols := make([]string, len(t.cols))
	for i, c := range t.cols {
		if to, ok := mapping[c]; ok {
			cols[i] = to
		} else {
			cols[i] = c
		}
	}
	if err := checkColumns(cols); err != nil {
		return nil, fmt.Errorf("rename would produce %w", err)
	}
	return &MemTable{cols: cols, index: indexColumns(cols), rows: t.rows}, nil
}

// Mask returns a new table keeping only rows where keep is true.
func (t *MemTable) Mask(keep []bool) (*MemTable, error) {
	if len(keep) != len(t.rows) {
		return nil, fmt.Errorf("mask has %d entries for %d rows", len(keep), len(t.rows))
	}
	var rows [][]any
	for r, row := range t.rows {
		if keep[r] {
			rows = append(rows, row)
		}
	}
	return &MemTable{cols: t.cols, index: t.index, rows: rows}, nil
}

func (t *MemTable) append(other *MemTable) {
	t.rows = append(t.rows, other.rows...)
}
