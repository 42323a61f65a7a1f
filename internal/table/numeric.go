package table

import (
	"math"
	"strconv"
	"strings"
)

// AsNumber reports v as a float64 when it already carries a numeric value.
func AsNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint64:
		return float64(x), true
	}
	return 0, false
}

// ParseNumber parses a cell's text as a finite number. Surrounding
// whitespace is ignored; empty text and the non-finite literals ParseFloat
// accepts ("nan", "inf") are not numbers.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// MissingText reports text that stands for no value: empty cells and the
// spellings of non-finite floats, which load as missing markers the way the
// nullable numeric representation treats NA.
func MissingText(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && (math.IsNaN(f) || math.IsInf(f, 0))
}

// CoerceCells converts cells to the nullable numeric representation:
// numeric cells pass through, parseable text becomes float64, everything
// else (including the missing marker) becomes the missing marker.
func CoerceCells(cells []any) []any {
	out := make([]any, len(cells))
	for i, v := range cells {
		switch x := v.(type) {
		case nil:
			out[i] = nil
		case float64:
			out[i] = x
		case string:
			if f, ok := ParseNumber(x); ok {
				out[i] = f
			} else {
				out[i] = nil
			}
		default:
			if f, ok := AsNumber(v); ok {
				out[i] = f
			} else {
				out[i] = nil
			}
		}
	}
	return out
}

// FormatCell renders a cell as text. The missing marker has no text form;
// callers decide how to treat it.
func FormatCell(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), true
	default:
		return "", false
	}
}
