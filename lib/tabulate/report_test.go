package tabulate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractReport(t *testing.T) {
	layout := Layout{
		Details: RawTable{{"African swine fever, Viet Nam"}},
		Metadata: []RawTable{
			{
				{"Report type", "Immediate notification"},
				{"Report date", "02/03/2020"},
			},
			{
				{"Measures applied", "Stamping out"},
			},
		},
	}

	report, err := ExtractReport(layout, "12345")
	require.NoError(t, err)

	require.Equal(t, "12345", report.ID)
	require.Equal(t, "African swine fever", report.Get("Disease"))
	require.Equal(t, "Viet Nam", report.Get("Country"))
	require.Equal(t,
		"https://www.oie.int/wahis_2/public/wahid.php/Reviewreport/Review?reportid=12345",
		report.Get("Url"))
	require.Equal(t, "Immediate notification", report.Get("Report type"))
	require.Equal(t, "02/03/2020", report.Get("Report date"))
	require.Equal(t, "Stamping out", report.Get("Measures applied"))
	require.False(t, report.Empty())
}

func TestExtractReportFieldOrder(t *testing.T) {
	layout := Layout{
		Details: RawTable{{"Rabies, France"}},
		Metadata: []RawTable{
			{{"Report type", "Follow-up report No. 2"}},
		},
	}

	report, err := ExtractReport(layout, "7")
	require.NoError(t, err)

	names := make([]string, len(report.Fields))
	for i, f := range report.Fields {
		names[i] = f.Name
	}
	require.Equal(t, []string{"Disease", "Country", "Url", "Report type"}, names)
}

func TestExtractReportLastSeenWins(t *testing.T) {
	layout := Layout{
		Details: RawTable{{"Rabies, France"}},
		Metadata: []RawTable{
			{{"Report type", "Immediate notification"}},
			{{"Report type", "Follow-up report No. 1"}},
		},
	}

	report, err := ExtractReport(layout, "7")
	require.NoError(t, err)
	require.Equal(t, "Follow-up report No. 1", report.Get("Report type"))
}

func TestExtractReportValueInSecondColumn(t *testing.T) {
	layout := Layout{
		Details: RawTable{{"", "African swine fever, Viet Nam"}},
	}

	report, err := ExtractReport(layout, "12345")
	require.NoError(t, err)
	require.Equal(t, "African swine fever", report.Get("Disease"))
	require.Equal(t, "Viet Nam", report.Get("Country"))
}

func TestExtractReportNoComma(t *testing.T) {
	layout := Layout{
		Details: RawTable{{"African swine fever"}},
	}

	report, err := ExtractReport(layout, "12345")
	require.NoError(t, err)
	require.Equal(t, "African swine fever", report.Get("Disease"))
	require.Equal(t, "", report.Get("Country"))
}

func TestExtractReportMalformedDetails(t *testing.T) {
	layout := Layout{Details: RawTable{{""}}}

	_, err := ExtractReport(layout, "12345")
	var structural *StructuralError
	require.ErrorAs(t, err, &structural)
}
