package tabulate

import "strconv"

// InferColumns turns a grid of raw cell strings into typed values,
// column by column. A column where every non-empty cell parses as an
// integer becomes int64, failing that float64, otherwise the cells stay
// text. Empty cells in a numeric column become nil; a single
// non-numeric cell keeps the whole column as text rather than failing
// the report.
func InferColumns(rows [][]string) [][]any {
	ncols := 0
	for _, r := range rows {
		if len(r) > ncols {
			ncols = len(r)
		}
	}

	typed := make([][]any, len(rows))
	for i := range typed {
		typed[i] = make([]any, ncols)
	}

	for col := 0; col < ncols; col++ {
		cells := make([]string, len(rows))
		for i, r := range rows {
			if col < len(r) {
				cells[i] = r[col]
			}
		}

		values := inferColumn(cells)
		for i, v := range values {
			typed[i][col] = v
		}
	}

	return typed
}

func inferColumn(cells []string) []any {
	if ints, ok := parseAll(cells, func(s string) (any, error) {
		return strconv.ParseInt(s, 10, 64)
	}); ok {
		return ints
	}
	if floats, ok := parseAll(cells, func(s string) (any, error) {
		return strconv.ParseFloat(s, 64)
	}); ok {
		return floats
	}

	values := make([]any, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	return values
}

func parseAll(cells []string, parse func(string) (any, error)) ([]any, bool) {
	values := make([]any, len(cells))
	numeric := false
	for i, c := range cells {
		if c == "" {
			values[i] = nil
			continue
		}
		v, err := parse(c)
		if err != nil {
			return nil, false
		}
		values[i] = v
		numeric = true
	}
	// a column of only empty cells is not numeric
	return values, numeric
}
