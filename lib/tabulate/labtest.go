package tabulate

// ExtractTests reshapes the lab-test table into one record per test
// row, keyed by (Report ID, Test #). The test number is the row's
// position within the raw table, the header occupying row zero; it has
// no meaning outside this report. A document without a lab-test table
// yields an empty frame.
func ExtractTests(layout Layout, reportID string) *Frame {
	out := NewFrame("Report ID", "Test #")
	if layout.LabTest == nil {
		return out
	}

	headers := layout.LabTest[0]
	typed := InferColumns(layout.LabTest[1:])

	for i, typedRow := range typed {
		cols := make([]string, 0, len(headers))
		vals := make([]any, 0, len(headers))
		for j, name := range headers {
			cols = append(cols, name)
			if j < len(typedRow) {
				vals = append(vals, typedRow[j])
			} else {
				vals = append(vals, nil)
			}
		}
		out.Append([]any{reportID, i + 1}, cols, vals)
	}
	return out
}
