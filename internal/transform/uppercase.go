package transform

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"tabular/internal/pipeline"
	"tabular/internal/table"
)

// Uppercase folds the named columns to upper case. Missing markers pass
// through untouched; numeric cells are stringified first, so a column that
// held mixed values comes out as strings.
type Uppercase struct{}

func (Uppercase) Name() string { return "uppercase" }

func (Uppercase) Validate(params map[string]any) error {
	if err := requireParams(params, "columns"); err != nil {
		return err
	}
	_, err := stringList(params, "columns")
	return err
}

func (Uppercase) ApplyInMemory(t *table.MemTable, params map[string]any) (*table.MemTable, error) {
	cols, err := stringList(params, "columns")
	if err != nil {
		return nil, err
	}
	return upperColumns(t, cols)
}

func (Uppercase) ApplyPartitioned(t *table.PartTable, params map[string]any) (*table.PartTable, error) {
	cols, err := stringList(params, "columns")
	if err != nil {
		return nil, err
	}
	if missing := t.Missing(cols); len(missing) > 0 {
		return nil, &pipeline.ColumnError{Columns: missing}
	}
	return t.WithOp(func(chunk *table.MemTable) (*table.MemTable, error) {
		return upperColumns(chunk, cols)
	}, nil)
}

func upperColumns(t *table.MemTable, cols []string) (*table.MemTable, error) {
	if missing := t.Missing(cols); len(missing) > 0 {
		return nil, &pipeline.ColumnError{Columns: missing}
	}
	caser := cases.Upper(language.Und)
	out := t
	for _, name := range cols {
		cells, err := out.Column(name)
		if err != nil {
			return nil, err
		}
		for i, c := range cells {
			if s, ok := table.FormatCell(c); ok {
				cells[i] = caser.String(s)
			}
		}
		next, err := out.WithColumn(name, cells)
		if err != nil {
			return nil, err
		}
		out = next
	}
	return out, nil
}
