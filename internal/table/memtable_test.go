package table

import (
	"reflect"
	"testing"
)

func mustTable(t *testing.T, cols []string, rows [][]any) *MemTable {
	t.Helper()
	mt, err := NewMemTable(cols, rows)
	if err != nil {
		t.Fatalf("NewMemTable: %v", err)
	}
	return mt
}

func TestNewMemTable_RejectsDuplicateColumns(t *testing.T) {
	_, err := NewMemTable([]string{"a", "b", "a"}, nil)
	if err == nil {
		t.Fatal("expected error for duplicate column names")
	}
}

func TestNewMemTable_RejectsRaggedRows(t *testing.T) {
	_, err := NewMemTable([]string{"a", "b"}, [][]any{{"x"}})
	if err == nil {
		t.Fatal("expected error for row width mismatch")
	}
}

func TestColumn_ReturnsIndependentCopy(t *testing.T) {
	mt := mustTable(t, []string{"a"}, [][]any{{"x"}, {"y"}})
	cells, err := mt.Column("a")
	if err != nil {
		t.Fatalf("Column: %v", err)
	}
	cells[0] = "mutated"
	again, _ := mt.Column("a")
	if again[0] != "x" {
		t.Fatalf("mutation leaked into table: %#v", again)
	}
}

func TestWithColumn_LeavesOriginalUntouched(t *testing.T) {
	orig := mustTable(t, []string{"a", "b"}, [][]any{{"x", 1.0}, {"y", 2.0}})
	repl, err := orig.WithColumn("a", []any{"X", "Y"})
	if err != nil {
		t.Fatalf("WithColumn: %v", err)
	}
	got, _ := repl.Column("a")
	if got[0] != "X" || got[1] != "Y" {
		t.Fatalf("replacement not applied: %#v", got)
	}
	old, _ := orig.Column("a")
	if old[0] != "x" || old[1] != "y" {
		t.Fatalf("original mutated: %#v", old)
	}
	other, _ := repl.Column("b")
	if other[0] != 1.0 || other[1] != 2.0 {
		t.Fatalf("untouched column changed: %#v", other)
	}
}

func TestWithColumn_UnknownColumn(t *testing.T) {
	mt := mustTable(t, []string{"a"}, nil)
	if _, err := mt.WithColumn("nope", nil); err == nil {
		t.Fatal("expected error for unknown column")
	}
}

func TestRename_RelabelsWithoutTouchingCells(t *testing.T) {
	mt := mustTable(t, []string{"a", "b"}, [][]any{{"x", 1.0}})
	renamed, err := mt.Rename(map[string]string{"a": "alpha"})
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if got := renamed.Columns(); !reflect.DeepEqual(got, []string{"alpha", "b"}) {
		t.Fatalf("want [alpha b], got %v", got)
	}
	cells, err := renamed.Column("alpha")
	if err != nil {
		t.Fatalf("Column(alpha): %v", err)
	}
	if cells[0] != "x" {
		t.Fatalf("cells changed: %#v", cells)
	}
}

func TestRename_RejectsCollision(t *testing.T) {
	mt := mustTable(t, []string{"a", "b"}, nil)
	if _, err := mt.Rename(map[string]string{"a": "b"}); err == nil {
		t.Fatal("expected collision error")
	}
}

func TestMask_KeepsMatchingRows(t *testing.T) {
	mt := mustTable(t, []string{"n"}, [][]any{{1.0}, {2.0}, {3.0}})
	kept, err := mt.Mask([]bool{true, false, true})
	if err != nil {
		t.Fatalf("Mask: %v", err)
	}
	if kept.RowCount() != 2 {
		t.Fatalf("want 2 rows, got %d", kept.RowCount())
	}
	cells, _ := kept.Column("n")
	if cells[0] != 1.0 || cells[1] != 3.0 {
		t.Fatalf("wrong rows kept: %#v", cells)
	}
	if mt.RowCount() != 3 {
		t.Fatalf("source table changed: %d rows", mt.RowCount())
	}
}

func TestMask_LengthMismatch(t *testing.T) {
	mt := mustTable(t, []string{"n"}, [][]any{{1.0}})
	if _, err := mt.Mask([]bool{true, false}); err == nil {
		t.Fatal("expected error for mask length mismatch")
	}
}

func TestMissing_ReportsInRequestOrder(t *testing.T) {
	mt := mustTable(t, []string{"a"}, nil)
	got := mt.Missing([]string{"z", "a", "y"})
	if !reflect.DeepEqual(got, []string{"z", "y"}) {
		t.Fatalf("want [z y], got %v", got)
	}
}
