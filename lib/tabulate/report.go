package tabulate

import (
	"fmt"
	"wahis-scraper/lib/textutil"
)

// ReportURL is the canonical location of a full report, keyed by its id.
const ReportURL = "https://www.oie.int/wahis_2/public/wahid.php/Reviewreport/Review?reportid=%s"

type Field struct {
	Name  string
	Value string
}

// Report is the single metadata record of one report document: a fixed
// Disease/Country/Url head plus whatever labeled fields the document's
// metadata tables expose.
type Report struct {
	ID     string
	Fields []Field
}

func (r Report) Get(name string) string {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

// Empty reports carry no fields at all; they come from placeholder
// documents and are dropped from the final reports dataset.
func (r Report) Empty() bool {
	return len(r.Fields) == 0
}

func (r *Report) set(name, value string) {
	for i, f := range r.Fields {
		if f.Name == name {
			r.Fields[i].Value = value
			return
		}
	}
	r.Fields = append(r.Fields, Field{Name: name, Value: value})
}

// ExtractReport builds the report record from a classified layout. The
// disease/country cell reads "<disease>, <country>"; it is split on the
// first comma. Metadata tables contribute their key/value rows in
// order, last seen wins when a label recurs. Never partial: a malformed
// details table fails the whole report.
func ExtractReport(layout Layout, reportID string) (Report, error) {
	cell := layout.Details.Cell(0, 0)
	if cell == "" {
		// some renderings place the value in the second column of a
		// label/value pair
		cell = layout.Details.Cell(0, 1)
	}
	if cell == "" {
		return Report{}, structuralf("disease/country table has no usable first row")
	}

	disease, country := textutil.PartitionComma(cell)

	report := Report{ID: reportID}
	report.set("Disease", disease)
	report.set("Country", country)
	report.set("Url", fmt.Sprintf(ReportURL, reportID))

	for _, table := range layout.Metadata {
		for row := 0; row < table.Rows(); row++ {
			key := table.Cell(row, 0)
			if key == "" {
				continue
			}
			report.set(key, table.Cell(row, 1))
		}
	}

	return report, nil
}
