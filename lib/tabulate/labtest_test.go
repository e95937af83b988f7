package tabulate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractTests(t *testing.T) {
	layout := Layout{
		LabTest: RawTable{
			{"Laboratory name and type", "Species", "Test", "Result"},
			{"NCVD (National laboratory)", "Swine", "real-time PCR", "Positive"},
			{"NCVD (National laboratory)", "Wild boar", "real-time PCR", "Negative"},
		},
	}

	frame := ExtractTests(layout, "12345")
	require.Equal(t, []string{"Report ID", "Test #"}, frame.Index)
	require.Equal(t,
		[]string{"Laboratory name and type", "Species", "Test", "Result"},
		frame.Columns)
	require.Len(t, frame.Rows, 2)

	// test numbers count row positions within the raw table, the
	// header occupying row zero
	require.Equal(t, []any{"12345", 1}, frame.Rows[0].Key)
	require.Equal(t, []any{"12345", 2}, frame.Rows[1].Key)

	require.Equal(t, "NCVD (National laboratory)", frame.Value(0, "Laboratory name and type"))
	require.Equal(t, "Positive", frame.Value(0, "Result"))
	require.Equal(t, "Negative", frame.Value(1, "Result"))
}

func TestExtractTestsAbsent(t *testing.T) {
	frame := ExtractTests(Layout{}, "12345")
	require.True(t, frame.Empty())
	require.Equal(t, []string{"Report ID", "Test #"}, frame.Index)
}
