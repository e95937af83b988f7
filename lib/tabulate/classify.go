package tabulate

import (
	"regexp"
	"strconv"
)

// Kind tags the role a table plays inside a report document. Roles are
// recognized purely from the first-row label text, the only stable
// schema marker these documents have.
type Kind int

const (
	KindUnclassified Kind = iota
	KindMetadata
	KindOutbreakHeader
	KindSpecies
	KindLabTest
)

// Classification is the tagged result of classifying one table. Number
// is only meaningful for KindOutbreakHeader.
type Classification struct {
	Kind   Kind
	Number int
}

const (
	speciesLabel = "Species"
	labTestLabel = "Laboratory name and type"
)

// labels whose tables contribute key/value rows to the report record
var metadataLabels = map[string]bool{
	"Report type": true,
	"Source of the outbreak(s) or origin of infection": true,
	"Measures applied": true,
}

var outbreakHeaderRegex = regexp.MustCompile(`^Outbreak ([0-9]+)`)

// ClassifyTable inspects cell (0,0) of a table and tags its role.
// An empty or out-of-range first cell yields KindUnclassified, never an
// error: malformed grids are skipped, not fatal.
func ClassifyTable(t RawTable) Classification {
	label := t.Cell(0, 0)

	if match := outbreakHeaderRegex.FindStringSubmatch(label); match != nil {
		n, err := strconv.Atoi(match[1])
		if err == nil {
			return Classification{Kind: KindOutbreakHeader, Number: n}
		}
	}
	switch {
	case label == speciesLabel:
		return Classification{Kind: KindSpecies}
	case label == labTestLabel:
		return Classification{Kind: KindLabTest}
	case metadataLabels[label]:
		return Classification{Kind: KindMetadata}
	}
	return Classification{Kind: KindUnclassified}
}

// OutbreakPair couples an outbreak header table with the species table
// that must immediately follow it.
type OutbreakPair struct {
	Number  int
	Header  RawTable
	Species RawTable
}

// Layout is the classified structure of one report document, built once
// so extractors never repeat positional index arithmetic.
type Layout struct {
	// the disease/country table, always the document's second table
	Details  RawTable
	Metadata []RawTable
	Pairs    []OutbreakPair
	// nil when the document has no lab-test table
	LabTest RawTable
}

// Classify walks the ordered tables of one document and returns its
// Layout. A header table not followed by a species table violates the
// pairing invariant and fails the whole report; the invariant is
// load-bearing for correctness, so no silent skip.
func Classify(tables []RawTable) (Layout, error) {
	if len(tables) < 2 {
		return Layout{}, structuralf("disease/country table missing: document has %d tables", len(tables))
	}

	layout := Layout{Details: tables[1]}
	for i, table := range tables {
		c := ClassifyTable(table)
		switch c.Kind {
		case KindMetadata:
			layout.Metadata = append(layout.Metadata, table)
		case KindOutbreakHeader:
			if i+1 >= len(tables) || tables[i+1].Cell(0, 0) != speciesLabel {
				return Layout{}, structuralf("outbreak %d header is not followed by a species table", c.Number)
			}
			layout.Pairs = append(layout.Pairs, OutbreakPair{
				Number:  c.Number,
				Header:  table,
				Species: tables[i+1],
			})
		case KindLabTest:
			// documents carry at most one; last match wins regardless
			layout.LabTest = table
		}
	}

	return layout, nil
}
