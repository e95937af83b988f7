package tabulate

import "slices"

// Frame is a small relational dataset: a fixed set of index columns and
// an ordered, growable set of data columns. Concatenation takes the
// union of columns (new columns keep their first-seen position at the
// end), so frames built from tables with differing column sets stack
// cleanly, with missing values left nil.
type Frame struct {
	Index   []string
	Columns []string
	Rows    []FrameRow
}

// FrameRow holds the index key of one row plus its data values. Every
// row owns its Values map; broadcast values are copied per row, never
// shared.
type FrameRow struct {
	Key    []any
	Values map[string]any
}

func NewFrame(index ...string) *Frame {
	return &Frame{Index: index}
}

func (f *Frame) Empty() bool {
	return len(f.Rows) == 0
}

func (f *Frame) ensureColumn(name string) {
	if !slices.Contains(f.Columns, name) {
		f.Columns = append(f.Columns, name)
	}
}

// Append adds one row. Column names are registered in first-seen order;
// cols and vals must be the same length.
func (f *Frame) Append(key []any, cols []string, vals []any) {
	values := make(map[string]any, len(cols))
	for i, c := range cols {
		f.ensureColumn(c)
		values[c] = vals[i]
	}
	f.Rows = append(f.Rows, FrameRow{Key: key, Values: values})
}

// InsertConst inserts a column at the given position and assigns the
// same value to every existing row.
func (f *Frame) InsertConst(pos int, name string, value any) {
	if slices.Contains(f.Columns, name) {
		return
	}
	f.Columns = slices.Insert(f.Columns, pos, name)
	for _, row := range f.Rows {
		row.Values[name] = value
	}
}

// Concat appends every row of g, taking the union of data columns.
// Both frames must share the same index shape.
func (f *Frame) Concat(g *Frame) {
	if len(f.Index) == 0 {
		f.Index = g.Index
	}
	for _, c := range g.Columns {
		f.ensureColumn(c)
	}
	f.Rows = append(f.Rows, g.Rows...)
}

// Value returns the cell for a row index and column name, nil when the
// row does not carry that column.
func (f *Frame) Value(row int, col string) any {
	return f.Rows[row].Values[col]
}
