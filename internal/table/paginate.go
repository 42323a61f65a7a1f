package table

import "math"

// Page is the caller-facing slice of a materialized table.
type Page struct {
	Items []map[string]any `json:"items"`
	Total int              `json:"total"`
	Page  int              `json:"page"`
	Size  int              `json:"size"`
	Pages int              `json:"pages"`
}

// Paginate slices the table using a 1-based page number. Non-finite floats
// and missing markers come out as nil so the page serializes cleanly.
func Paginate(t *MemTable, page, size int) Page {
	total := t.RowCount()
	pages := 0
	if size > 0 {
		pages = (total + size - 1) / size
	}
	start := (page - 1) * size
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	items := make([]map[string]any, 0, end-start)
	for _, row := range t.rows[start:end] {
		rec := make(map[string]any, len(t.cols))
		for i, c := range t.cols {
			rec[c] = sanitize(row[i])
		}
		items = append(items, rec)
	}
	return Page{Items: items, Total: total, Page: page, Size: size, Pages: pages}
}

func sanitize(v any) any {
	if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return nil
	}
	return v
}
