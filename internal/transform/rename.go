package transform

import (
	"sort"

	"tabular/internal/pipeline"
	"tabular/internal/table"
)

// Rename relabels columns by a source-to-target mapping. Its registered
// name is "map", after the pipeline vocabulary. A mapping whose targets
// collide with each other or with untouched columns is rejected.
type Rename struct{}

func (Rename) Name() string { return "map" }

func (Rename) Validate(params map[string]any) error {
	if err := requireParams(params, "mappings"); err != nil {
		return err
	}
	_, err := stringMap(params, "mappings")
	return err
}

func (Rename) ApplyInMemory(t *table.MemTable, params map[string]any) (*table.MemTable, error) {
	mappings, err := stringMap(params, "mappings")
	if err != nil {
		return nil, err
	}
	if missing := t.Missing(sources(mappings)); len(missing) > 0 {
		return nil, &pipeline.ColumnError{Columns: missing}
	}
	return t.Rename(mappings)
}

func (Rename) ApplyPartitioned(t *table.PartTable, params map[string]any) (*table.PartTable, error) {
	mappings, err := stringMap(params, "mappings")
	if err != nil {
		return nil, err
	}
	if missing := t.Missing(sources(mappings)); len(missing) > 0 {
		return nil, &pipeline.ColumnError{Columns: missing}
	}
	// Probe the rename against an empty table so collisions surface now,
	// and the schema advances before any chunk is read.
	probe, err := table.NewMemTable(t.Columns(), nil)
	if err != nil {
		return nil, err
	}
	renamed, err := probe.Rename(mappings)
	if err != nil {
		return nil, err
	}
	return t.WithOp(func(chunk *table.MemTable) (*table.MemTable, error) {
		return chunk.Rename(mappings)
	}, renamed.Columns())
}

func sources(mappings map[string]string) []string {
	out := make([]string, 0, len(mappings))
	for src := range mappings {
		out = append(out, src)
	}
	sort.Strings(out)
	return out
}
