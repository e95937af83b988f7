package tabulate

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func tableHTML(rows ...[]string) string {
	var b strings.Builder
	b.WriteString("<table>")
	for _, row := range rows {
		b.WriteString("<tr>")
		for _, cell := range row {
			b.WriteString("<td>")
			b.WriteString(cell)
			b.WriteString("</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</table>")
	return b.String()
}

func validReportHTML() []byte {
	var b strings.Builder
	b.WriteString("<html><body>")
	b.WriteString(tableHTML([]string{"World Animal Health Information Database"}))
	b.WriteString(tableHTML([]string{"African swine fever, Viet Nam"}))
	b.WriteString(tableHTML(
		[]string{"Report type", "Immediate notification"},
		[]string{"Report date", "02/03/2020"},
	))
	b.WriteString(tableHTML(
		[]string{"Outbreak 1", "Hanoi"},
		[]string{"Date of start of the outbreak", "01/03/2020"},
		[]string{"Affected animals", "see below"},
	))
	b.WriteString(tableHTML(
		[]string{"Species", "Susceptible", "Cases", "Deaths"},
		[]string{"Swine", "100", "20", "5"},
	))
	b.WriteString(tableHTML(
		[]string{"Outbreak 2", "Lang Son"},
		[]string{"Date of start of the outbreak", "05/03/2020"},
	))
	b.WriteString(tableHTML(
		[]string{"Species", "Susceptible", "Cases", "Killed"},
		[]string{"Swine", "40", "8", "32"},
	))
	b.WriteString(tableHTML(
		[]string{"Laboratory name and type", "Species", "Test", "Result"},
		[]string{"NCVD (National laboratory)", "Swine", "real-time PCR", "Positive"},
	))
	b.WriteString("</body></html>")
	return []byte(b.String())
}

func pairingViolationHTML() []byte {
	var b strings.Builder
	b.WriteString("<html><body>")
	b.WriteString(tableHTML([]string{"Banner"}))
	b.WriteString(tableHTML([]string{"African swine fever, Viet Nam"}))
	b.WriteString(tableHTML([]string{"Outbreak 2", "Lang Son"}))
	b.WriteString(tableHTML([]string{"Measures applied", "Quarantine"}))
	b.WriteString("</body></html>")
	return []byte(b.String())
}

var placeholderHTML = []byte("<html><body><h1>Application Error</h1></body></html>")

func TestProcessDocument(t *testing.T) {
	result, err := ProcessDocument(context.Background(), Document{
		ReportID: "12345",
		Body:     validReportHTML(),
	})
	require.NoError(t, err)

	require.Equal(t, "African swine fever", result.Report.Get("Disease"))
	require.Equal(t, "Viet Nam", result.Report.Get("Country"))

	outbreaks := result.Outbreaks
	require.Len(t, outbreaks.Rows, 2)
	// denormalized report fields lead the data columns
	require.Equal(t, "Disease", outbreaks.Columns[0])
	require.Equal(t, "Country", outbreaks.Columns[1])
	require.Equal(t, "Report date", outbreaks.Columns[2])
	require.Equal(t, "African swine fever", outbreaks.Value(0, "Disease"))
	require.Equal(t, "Viet Nam", outbreaks.Value(1, "Country"))
	require.Equal(t, "02/03/2020", outbreaks.Value(0, "Report date"))
	require.Equal(t, "Hanoi, Viet Nam", outbreaks.Value(0, "Location"))
	require.Equal(t, "Lang Son, Viet Nam", outbreaks.Value(1, "Location"))
	require.Equal(t, []any{"12345", 1}, outbreaks.Rows[0].Key)
	require.Equal(t, []any{"12345", 2}, outbreaks.Rows[1].Key)

	tests := result.Tests
	require.Len(t, tests.Rows, 1)
	require.Equal(t, []any{"12345", 1}, tests.Rows[0].Key)
	require.Equal(t, "African swine fever", tests.Value(0, "Disease"))
	require.Equal(t, "real-time PCR", tests.Value(0, "Test"))
}

func TestProcessDocumentPlaceholder(t *testing.T) {
	result, err := ProcessDocument(context.Background(), Document{
		ReportID: "666",
		Body:     placeholderHTML,
	})
	require.ErrorIs(t, err, ErrPlaceholder)
	require.True(t, result.Report.Empty())
	require.True(t, result.Outbreaks.Empty())
	require.True(t, result.Tests.Empty())
}

func TestProcessDocumentStructuralMismatch(t *testing.T) {
	_, err := ProcessDocument(context.Background(), Document{
		ReportID: "777",
		Body:     pairingViolationHTML(),
	})
	var structural *StructuralError
	require.ErrorAs(t, err, &structural)
}

func TestProcessBatchIsolation(t *testing.T) {
	docs := []Document{
		{ReportID: "12345", Body: validReportHTML()},
		{ReportID: "666", Body: placeholderHTML},
		{ReportID: "777", Body: pairingViolationHTML()},
	}

	result := ProcessBatch(context.Background(), docs)

	require.Equal(t, 1, result.Parsed)
	require.Equal(t, 1, result.Placeholders)
	require.Equal(t, 1, result.Failed)

	// neither the placeholder nor the failed report leaves a row behind
	require.Len(t, result.Reports.Rows, 1)
	require.Equal(t, []any{"12345"}, result.Reports.Rows[0].Key)
	require.Len(t, result.Outbreaks.Rows, 2)
	require.Len(t, result.Tests.Rows, 1)
}

func TestProcessBatchDeterminism(t *testing.T) {
	docs := []Document{
		{ReportID: "12345", Body: validReportHTML()},
		{ReportID: "666", Body: placeholderHTML},
		{ReportID: "777", Body: pairingViolationHTML()},
	}

	first := ProcessBatch(context.Background(), docs)
	second := ProcessBatch(context.Background(), docs)

	require.Empty(t, cmp.Diff(first, second))
}

func TestProcessBatchEmpty(t *testing.T) {
	result := ProcessBatch(context.Background(), nil)
	require.Zero(t, result.Parsed)
	require.True(t, result.Reports.Empty())
	require.True(t, result.Outbreaks.Empty())
	require.True(t, result.Tests.Empty())
}
