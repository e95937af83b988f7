package sink

import (
	"path/filepath"
	"testing"
	"wahis-scraper/lib/scrapers/wahis"
	"wahis-scraper/lib/tabulate"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testBatchResult() tabulate.BatchResult {
	reports := tabulate.NewFrame("Report ID")
	reports.Append(
		[]any{"12345"},
		[]string{"Disease", "Country", "Report type"},
		[]any{"African swine fever", "Viet Nam", "Immediate notification"},
	)

	outbreaks := tabulate.NewFrame("Report ID", "Outbreak #")
	outbreaks.Append(
		[]any{"12345", 1},
		[]string{"Species", "Cases", "Location"},
		[]any{"Swine", int64(20), "Hanoi, Viet Nam"},
	)
	outbreaks.Append(
		[]any{"12345", 2},
		[]string{"Species", "Cases", "Killed"},
		[]any{"Swine", int64(8), int64(32)},
	)

	tests := tabulate.NewFrame("Report ID", "Test #")
	tests.Append(
		[]any{"12345", 1},
		[]string{"Test", "Result"},
		[]any{"real-time PCR", "Positive"},
	)

	return tabulate.BatchResult{
		Reports:   reports,
		Outbreaks: outbreaks,
		Tests:     tests,
		Parsed:    1,
	}
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports.xlsx")
	err := WriteWorkbook(path, testBatchResult())
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{"reports", "outbreaks", "tests"}, f.GetSheetList())

	rows, err := f.GetRows("reports")
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"Report ID", "Disease", "Country", "Report type"},
		{"12345", "African swine fever", "Viet Nam", "Immediate notification"},
	}, rows)

	rows, err = f.GetRows("outbreaks")
	require.NoError(t, err)
	require.Equal(t,
		[]string{"Report ID", "Outbreak #", "Species", "Cases", "Location", "Killed"},
		rows[0])
	// every row repeats its full key, nothing is merged
	require.Equal(t, []string{"12345", "1", "Swine", "20", "Hanoi, Viet Nam"}, rows[1])
	require.Equal(t, []string{"12345", "2", "Swine", "8", "", "32"}, rows[2])

	rows, err = f.GetRows("tests")
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"Report ID", "Test #", "Test", "Result"},
		{"12345", "1", "real-time PCR", "Positive"},
	}, rows)
}

func TestSummaryLinksRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary_urls.xlsx")
	links := []wahis.SummaryLink{
		{Year: 2019, Country: "Viet Nam", Url: "https://example.com/sum?id=1"},
		{Year: 2020, Country: "France", Url: "https://example.com/sum?id=2"},
	}

	err := WriteSummaryLinks(path, links)
	require.NoError(t, err)

	got, err := ReadSummaryLinks(path)
	require.NoError(t, err)
	require.Equal(t, links, got)
}
