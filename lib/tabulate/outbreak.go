package tabulate

import "fmt"

const (
	locationKey        = "Location"
	affectedAnimalsKey = "Affected animals"
)

// ExtractOutbreaks reshapes every (header, species) pair of the layout
// into long-format rows keyed by (Report ID, Outbreak #). The header's
// key/value fields are broadcast onto every species row of that
// outbreak; each row receives its own copy, so outbreaks never share
// state. A document without outbreak pairs yields an empty frame.
func ExtractOutbreaks(layout Layout, reportID, country string) *Frame {
	out := NewFrame("Report ID", "Outbreak #")
	for _, pair := range layout.Pairs {
		out.Concat(extractPair(pair, reportID, country))
	}
	return out
}

func extractPair(pair OutbreakPair, reportID, country string) *Frame {
	headerKeys, headerVals := headerFields(pair.Header, country)

	speciesCols := pair.Species[0]
	typed := InferColumns(pair.Species[1:])

	frame := NewFrame("Report ID", "Outbreak #")
	for _, typedRow := range typed {
		cols := make([]string, 0, len(speciesCols)+len(headerKeys))
		vals := make([]any, 0, len(speciesCols)+len(headerKeys))

		for j, name := range speciesCols {
			cols = append(cols, name)
			if j < len(typedRow) {
				vals = append(vals, typedRow[j])
			} else {
				vals = append(vals, nil)
			}
		}
		for j, key := range headerKeys {
			cols = append(cols, key)
			vals = append(vals, headerVals[j])
		}

		frame.Append([]any{reportID, pair.Number}, cols, vals)
	}
	return frame
}

// headerFields turns an outbreak header table into ordered key/value
// pairs: the "Outbreak N" label becomes a Location key with the country
// appended, and the redundant "Affected animals" row is dropped (its
// totals live in the species table). Dropping is idempotent; a header
// without that row is fine.
func headerFields(header RawTable, country string) ([]string, []string) {
	var keys, vals []string
	for row := 0; row < header.Rows(); row++ {
		key := header.Cell(row, 0)
		value := header.Cell(row, 1)

		if row == 0 {
			key = locationKey
			value = fmt.Sprintf("%s, %s", value, country)
		}
		if key == affectedAnimalsKey {
			continue
		}

		keys = append(keys, key)
		vals = append(vals, value)
	}
	return keys, vals
}
