package transform

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"tabular/internal/pipeline"
)

func TestFilter_NumericValueCoercesColumn(t *testing.T) {
	mt := memTable(t, []string{"v", "tag"},
		[][]any{{"1", "a"}, {"x", "b"}, {"3", "c"}, {nil, "d"}})
	out, err := Filter{}.ApplyInMemory(mt, map[string]any{
		"column": "v", "operator": ">", "value": 1,
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if out.RowCount() != 1 {
		t.Fatalf("want 1 row, got %d", out.RowCount())
	}
	vals, _ := out.Column("v")
	if vals[0] != 3.0 {
		t.Fatalf("column must carry the coerced number, got %#v", vals[0])
	}
	tags, _ := out.Column("tag")
	if tags[0] != "c" {
		t.Fatalf("row alignment broken: %#v", tags[0])
	}
}

func TestFilter_NumericDropsUncoercibleEvenForNotEqual(t *testing.T) {
	mt := memTable(t, []string{"v"}, [][]any{{"1"}, {"x"}, {nil}, {"2"}})
	out, err := Filter{}.ApplyInMemory(mt, map[string]any{
		"column": "v", "operator": "!=", "value": 1,
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	vals, _ := out.Column("v")
	if !reflect.DeepEqual(vals, []any{2.0}) {
		t.Fatalf("want [2], got %v", vals)
	}
}

func TestFilter_NumericEquality(t *testing.T) {
	mt := memTable(t, []string{"v"}, [][]any{{"1"}, {"2"}, {"1.0"}})
	out, err := Filter{}.ApplyInMemory(mt, map[string]any{
		"column": "v", "operator": "==", "value": 1.0,
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if out.RowCount() != 2 {
		t.Fatalf("want 2 rows, got %d", out.RowCount())
	}
}

func TestFilter_StringEquality(t *testing.T) {
	mt := memTable(t, []string{"v"}, [][]any{{"a"}, {"b"}, {nil}, {2.0}})

	out, err := Filter{}.ApplyInMemory(mt, map[string]any{
		"column": "v", "operator": "==", "value": "a",
	})
	if err != nil {
		t.Fatalf("apply ==: %v", err)
	}
	if out.RowCount() != 1 {
		t.Fatalf("want 1 row for ==, got %d", out.RowCount())
	}

	// Mismatched types are never equal and survive negation; the missing
	// cell matches nothing and is dropped either way.
	out, err = Filter{}.ApplyInMemory(mt, map[string]any{
		"column": "v", "operator": "!=", "value": "a",
	})
	if err != nil {
		t.Fatalf("apply !=: %v", err)
	}
	vals, _ := out.Column("v")
	if !reflect.DeepEqual(vals, []any{"b", 2.0}) {
		t.Fatalf("want [b 2], got %v", vals)
	}
}

func TestFilter_StringPathDropsMissingCells(t *testing.T) {
	mt := memTable(t, []string{"name"}, [][]any{{"alpha"}, {nil}, {"zebra"}})

	out, err := Filter{}.ApplyInMemory(mt, map[string]any{
		"column": "name", "operator": "!=", "value": "alpha",
	})
	if err != nil {
		t.Fatalf("apply !=: %v", err)
	}
	vals, _ := out.Column("name")
	if !reflect.DeepEqual(vals, []any{"zebra"}) {
		t.Fatalf("want [zebra], got %v", vals)
	}

	out, err = Filter{}.ApplyInMemory(mt, map[string]any{
		"column": "name", "operator": "<=", "value": "m",
	})
	if err != nil {
		t.Fatalf("ordering over a missing cell must not fail: %v", err)
	}
	vals, _ = out.Column("name")
	if !reflect.DeepEqual(vals, []any{"alpha"}) {
		t.Fatalf("want [alpha], got %v", vals)
	}
}

func TestFilter_StringOrderingIsLexicographic(t *testing.T) {
	mt := memTable(t, []string{"v"}, [][]any{{"apple"}, {"banana"}, {"cherry"}})
	out, err := Filter{}.ApplyInMemory(mt, map[string]any{
		"column": "v", "operator": ">", "value": "avocado",
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	vals, _ := out.Column("v")
	if !reflect.DeepEqual(vals, []any{"banana", "cherry"}) {
		t.Fatalf("want [banana cherry], got %v", vals)
	}
}

func TestFilter_OrderingRejectsNonStringCells(t *testing.T) {
	mt := memTable(t, []string{"v"}, [][]any{{"a"}, {2.0}})
	_, err := Filter{}.ApplyInMemory(mt, map[string]any{
		"column": "v", "operator": ">", "value": "a",
	})
	var ce *pipeline.ComparisonError
	if !errors.As(err, &ce) {
		t.Fatalf("want ComparisonError, got %v", err)
	}
	if !strings.Contains(err.Error(), "numeric cell") {
		t.Fatalf("message should name the cell kind: %v", err)
	}
}

func TestFilter_OrderingRejectsNonComparableValue(t *testing.T) {
	mt := memTable(t, []string{"v"}, [][]any{{"a"}})
	_, err := Filter{}.ApplyInMemory(mt, map[string]any{
		"column": "v", "operator": ">", "value": true,
	})
	var ce *pipeline.ComparisonError
	if !errors.As(err, &ce) {
		t.Fatalf("want ComparisonError, got %v", err)
	}
	if !strings.Contains(err.Error(), "needs a string or numeric value") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestFilter_UnknownColumn(t *testing.T) {
	mt := memTable(t, []string{"a"}, nil)
	_, err := Filter{}.ApplyInMemory(mt, map[string]any{
		"column": "ghost", "operator": "==", "value": "x",
	})
	var ce *pipeline.ColumnError
	if !errors.As(err, &ce) {
		t.Fatalf("want ColumnError, got %v", err)
	}
}

func TestFilter_Validate(t *testing.T) {
	err := Filter{}.Validate(map[string]any{"operator": ">"})
	if err == nil || !strings.Contains(err.Error(), "missing required parameters: column, value") {
		t.Fatalf("want sorted missing-parameter list, got %v", err)
	}

	err = Filter{}.Validate(map[string]any{"column": 1, "operator": ">", "value": 1})
	var pe *pipeline.ParameterError
	if !errors.As(err, &pe) {
		t.Fatalf("want ParameterError for non-string column, got %v", err)
	}

	err = Filter{}.Validate(map[string]any{"column": "v", "operator": "=", "value": 1})
	var oe *pipeline.OperatorError
	if !errors.As(err, &oe) {
		t.Fatalf("want OperatorError, got %v", err)
	}
	if oe.Operator != "=" {
		t.Fatalf("want offending operator recorded, got %q", oe.Operator)
	}
	if want := `invalid operator "=": must be one of ==, !=, >, <, >=, <=`; err.Error() != want {
		t.Fatalf("want %q, got %q", want, err.Error())
	}
}

func TestFilter_PartitionedNumeric(t *testing.T) {
	pt, err := Filter{}.ApplyPartitioned(partTable(t, "v\n1\nx\n3\n", 2),
		map[string]any{"column": "v", "operator": ">", "value": 1})
	if err != nil {
		t.Fatalf("partitioned apply: %v", err)
	}
	mt, stats, err := pt.Materialize(context.Background(), 2)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	vals, _ := mt.Column("v")
	if !reflect.DeepEqual(vals, []any{3.0}) {
		t.Fatalf("want [3], got %v", vals)
	}
	var out int
	for _, s := range stats {
		out += s.RowsOut
	}
	if out != 1 {
		t.Fatalf("stats disagree with result: %d rows out", out)
	}
}

func TestFilter_PartitionedUnknownColumnIsEager(t *testing.T) {
	_, err := Filter{}.ApplyPartitioned(partTable(t, "a\n1\n", 1),
		map[string]any{"column": "ghost", "operator": "==", "value": 1})
	var ce *pipeline.ColumnError
	if !errors.As(err, &ce) {
		t.Fatalf("want ColumnError before reading data, got %v", err)
	}
}
