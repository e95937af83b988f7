package sink

import (
	"strconv"
	"wahis-scraper/lib/scrapers/wahis"
	"wahis-scraper/lib/tabulate"

	"github.com/xuri/excelize/v2"
)

// WriteWorkbook persists the three relational datasets of one batch run
// into a single spreadsheet. Every row writes its full index key
// explicitly (no merged cells), so the outbreak and test sheets stay
// filterable.
func WriteWorkbook(path string, result tabulate.BatchResult) error {
	f := excelize.NewFile()
	defer f.Close()

	err := f.SetSheetName("Sheet1", "reports")
	if err != nil {
		return err
	}
	err = writeFrame(f, "reports", result.Reports)
	if err != nil {
		return err
	}

	for _, sheet := range []struct {
		name  string
		frame *tabulate.Frame
	}{
		{"outbreaks", result.Outbreaks},
		{"tests", result.Tests},
	} {
		_, err = f.NewSheet(sheet.name)
		if err != nil {
			return err
		}
		err = writeFrame(f, sheet.name, sheet.frame)
		if err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

func writeFrame(f *excelize.File, sheet string, frame *tabulate.Frame) error {
	col := 1
	for _, name := range frame.Index {
		err := setCell(f, sheet, col, 1, name)
		if err != nil {
			return err
		}
		col++
	}
	for _, name := range frame.Columns {
		err := setCell(f, sheet, col, 1, name)
		if err != nil {
			return err
		}
		col++
	}

	for i, row := range frame.Rows {
		col = 1
		for _, key := range row.Key {
			err := setCell(f, sheet, col, i+2, key)
			if err != nil {
				return err
			}
			col++
		}
		for _, name := range frame.Columns {
			value, ok := row.Values[name]
			if ok && value != nil {
				err := setCell(f, sheet, col, i+2, value)
				if err != nil {
					return err
				}
			}
			col++
		}
	}

	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}

// WriteSummaryLinks dumps the crawled summary urls so an interrupted
// download can resume without redriving the browser.
func WriteSummaryLinks(path string, links []wahis.SummaryLink) error {
	f := excelize.NewFile()
	defer f.Close()

	err := f.SetSheetName("Sheet1", "summary_urls")
	if err != nil {
		return err
	}
	for i, name := range []string{"year", "country", "url"} {
		err := setCell(f, "summary_urls", i+1, 1, name)
		if err != nil {
			return err
		}
	}
	for i, link := range links {
		err := setCell(f, "summary_urls", 1, i+2, link.Year)
		if err != nil {
			return err
		}
		err = setCell(f, "summary_urls", 2, i+2, link.Country)
		if err != nil {
			return err
		}
		err = setCell(f, "summary_urls", 3, i+2, link.Url)
		if err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

// ReadSummaryLinks loads a summary url list written by
// WriteSummaryLinks.
func ReadSummaryLinks(path string) ([]wahis.SummaryLink, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows("summary_urls")
	if err != nil {
		return nil, err
	}

	var links []wahis.SummaryLink
	for i, row := range rows {
		// header row
		if i == 0 || len(row) < 3 {
			continue
		}
		year, err := strconv.Atoi(row[0])
		if err != nil {
			continue
		}
		links = append(links, wahis.SummaryLink{
			Year:    year,
			Country: row[1],
			Url:     row[2],
		})
	}
	return links, nil
}
