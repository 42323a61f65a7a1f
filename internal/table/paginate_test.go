package table

import (
	"math"
	"testing"
)

func TestPaginate_SlicesAndCounts(t *testing.T) {
	rows := make([][]any, 25)
	for i := range rows {
		rows[i] = []any{float64(i)}
	}
	mt := mustTable(t, []string{"n"}, rows)

	p := Paginate(mt, 3, 10)
	if p.Total != 25 || p.Pages != 3 || p.Page != 3 || p.Size != 10 {
		t.Fatalf("wrong envelope: %+v", p)
	}
	if len(p.Items) != 5 {
		t.Fatalf("want 5 items on last page, got %d", len(p.Items))
	}
	if p.Items[0]["n"] != 20.0 {
		t.Fatalf("wrong slice start: %#v", p.Items[0])
	}

	mid := Paginate(mt, 2, 10)
	if mid.Pages != 3 || len(mid.Items) != 10 {
		t.Fatalf("wrong middle page: %+v", mid)
	}
	if mid.Items[0]["n"] != 10.0 || mid.Items[9]["n"] != 19.0 {
		t.Fatalf("middle page must hold rows 11 through 20: %#v", mid.Items)
	}
}

func TestPaginate_PageBeyondEnd(t *testing.T) {
	mt := mustTable(t, []string{"n"}, [][]any{{1.0}})
	p := Paginate(mt, 5, 10)
	if len(p.Items) != 0 {
		t.Fatalf("want empty page, got %d items", len(p.Items))
	}
	if p.Total != 1 || p.Pages != 1 {
		t.Fatalf("envelope must still describe the table: %+v", p)
	}
}

func TestPaginate_EmptyTable(t *testing.T) {
	mt := mustTable(t, []string{"n"}, nil)
	p := Paginate(mt, 1, 10)
	if len(p.Items) != 0 || p.Total != 0 || p.Pages != 0 {
		t.Fatalf("want empty envelope, got %+v", p)
	}
}

func TestPaginate_SanitizesNonFiniteValues(t *testing.T) {
	mt := mustTable(t, []string{"x"}, [][]any{{math.NaN()}, {math.Inf(1)}, {2.5}})
	p := Paginate(mt, 1, 10)
	if p.Items[0]["x"] != nil || p.Items[1]["x"] != nil {
		t.Fatalf("non-finite values must become null: %+v", p.Items)
	}
	if p.Items[2]["x"] != 2.5 {
		t.Fatalf("finite value mangled: %#v", p.Items[2])
	}
}
