package tabulate

import (
	"io"
	"wahis-scraper/lib/htmlutil"
	"wahis-scraper/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// RawTable is an ordered grid of cell text parsed from one <table>
// element. Cells carry no type information until a column is inferred.
type RawTable [][]string

// Cell returns the trimmed text at (row, col), or "" when the
// coordinate is out of range. Malformed grids are therefore safe to
// probe during classification.
func (t RawTable) Cell(row, col int) string {
	if row < 0 || row >= len(t) {
		return ""
	}
	r := t[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

func (t RawTable) Rows() int {
	return len(t)
}

// ParseTables extracts every <table> element of an HTML document into a
// RawTable, in document order. Rows belonging to a nested table are
// attributed to the inner table only, so table soup pages yield one grid
// per element rather than duplicated rows.
func ParseTables(r io.Reader) ([]RawTable, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var tables []RawTable
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		tableNode := table.Get(0)

		var grid RawTable
		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			if closestTable(row) != tableNode {
				return
			}

			var cells []string
			row.ChildrenFiltered("td,th").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, textutil.CleanCell(htmlutil.GetText(cell.Get(0))))
			})
			if len(cells) > 0 {
				grid = append(grid, cells)
			}
		})

		if len(grid) > 0 {
			tables = append(tables, grid)
		}
	})

	return tables, nil
}

func closestTable(row *goquery.Selection) *html.Node {
	closest := row.Closest("table")
	if len(closest.Nodes) == 0 {
		return nil
	}
	return closest.Get(0)
}
