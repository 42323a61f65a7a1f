package transform

import (
	"fmt"

	"tabular/internal/pipeline"
	"tabular/internal/table"
)

// operatorNames is the accepted operator set, in the order error messages
// report it.
var operatorNames = []string{"==", "!=", ">", "<", ">=", "<="}

// Filter keeps the rows of one column satisfying an operator and a
// comparison value. Missing cells match no value and are dropped by every
// operator. A numeric value first coerces the column to numbers, cell by
// cell; cells that do not coerce become missing. A string value compares
// lexicographically, and ordering operators refuse present non-string
// cells.
type Filter struct{}

func (Filter) Name() string { return "filter" }

func (Filter) Validate(params map[string]any) error {
	if err := requireParams(params, "column", "operator", "value"); err != nil {
		return err
	}
	if _, ok := params["column"].(string); !ok {
		return &pipeline.ParameterError{Reason: `parameter "column" must be a string`}
	}
	_, err := operatorOf(params)
	return err
}

func (Filter) ApplyInMemory(t *table.MemTable, params map[string]any) (*table.MemTable, error) {
	column := params["column"].(string)
	op, err := operatorOf(params)
	if err != nil {
		return nil, err
	}
	return filterRows(t, column, op, params["value"])
}

func (Filter) ApplyPartitioned(t *table.PartTable, params map[string]any) (*table.PartTable, error) {
	column := params["column"].(string)
	op, err := operatorOf(params)
	if err != nil {
		return nil, err
	}
	if missing := t.Missing([]string{column}); len(missing) > 0 {
		return nil, &pipeline.ColumnError{Columns: missing}
	}
	value := params["value"]
	return t.WithOp(func(chunk *table.MemTable) (*table.MemTable, error) {
		return filterRows(chunk, column, op, value)
	}, nil)
}

func operatorOf(params map[string]any) (string, error) {
	op, _ := params["operator"].(string)
	for _, known := range operatorNames {
		if op == known {
			return op, nil
		}
	}
	return "", &pipeline.OperatorError{Operator: fmt.Sprint(params["operator"]), Valid: operatorNames}
}

func filterRows(t *table.MemTable, column, op string, value any) (*table.MemTable, error) {
	if missing := t.Missing([]string{column}); len(missing) > 0 {
		return nil, &pipeline.ColumnError{Columns: missing}
	}
	cells, err := t.Column(column)
	if err != nil {
		return nil, err
	}

	if want, ok := table.AsNumber(value); ok {
		// The coerced column replaces the original in the output, so
		// downstream steps and the response see numbers.
		coerced := table.CoerceCells(cells)
		out, err := t.WithColumn(column, coerced)
		if err != nil {
			return nil, err
		}
		keep := make([]bool, len(coerced))
		for i, c := range coerced {
			f, isNum := c.(float64)
			keep[i] = isNum && compareFloats(op, f, want)
		}
		return out.Mask(keep)
	}

	valStr, valIsStr := value.(string)
	keep := make([]bool, len(cells))
	switch op {
	case "==", "!=":
		// Equality across mismatched types is simply false. Missing
		// cells match no value, even under negation.
		for i, c := range cells {
			if c == nil {
				continue
			}
			s, isStr := c.(string)
			eq := valIsStr && isStr && s == valStr
			keep[i] = eq == (op == "==")
		}
	default:
		if !valIsStr {
			return nil, &pipeline.ComparisonError{
				Column: column,
				Value:  value,
				Reason: fmt.Sprintf("ordering with %q needs a string or numeric value", op),
			}
		}
		for i, c := range cells {
			if c == nil {
				continue
			}
			s, isStr := c.(string)
			if !isStr {
				return nil, &pipeline.ComparisonError{
					Column: column,
					Value:  value,
					Reason: fmt.Sprintf("%q not supported between %s cell and string value", op, cellKind(c)),
				}
			}
			keep[i] = compareStrings(op, s, valStr)
		}
	}
	return t.Mask(keep)
}

func compareFloats(op string, a, b float64) bool {
	switch op {
	case "==":
		return a == b
	case "!=":
		return a != b
	case ">":
		return a > b
	case "<":
		return a < b
	case ">=":
		return a >= b
	default:
		return a <= b
	}
}

func compareStrings(op string, a, b string) bool {
	switch op {
	case ">":
		return a > b
	case "<":
		return a < b
	case ">=":
		return a >= b
	default:
		return a <= b
	}
}

func cellKind(c any) string {
	if _, ok := c.(float64); ok {
		return "numeric"
	}
	return "string"
}
