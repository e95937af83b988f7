package tabulate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInferColumns(t *testing.T) {
	testCases := []struct {
		name     string
		rows     [][]string
		expected [][]any
	}{
		{
			name:     "integer column",
			rows:     [][]string{{"100"}, {"20"}},
			expected: [][]any{{int64(100)}, {int64(20)}},
		},
		{
			name:     "float column",
			rows:     [][]string{{"1.5"}, {"2"}},
			expected: [][]any{{1.5}, {2.0}},
		},
		{
			name:     "text column",
			rows:     [][]string{{"Swine"}, {"Cattle"}},
			expected: [][]any{{"Swine"}, {"Cattle"}},
		},
		{
			name:     "empty cells in numeric column become nil",
			rows:     [][]string{{"100"}, {""}, {"20"}},
			expected: [][]any{{int64(100)}, {nil}, {int64(20)}},
		},
		{
			name:     "one non-numeric cell keeps column as text",
			rows:     [][]string{{"100"}, {"n/a"}, {"20"}},
			expected: [][]any{{"100"}, {"n/a"}, {"20"}},
		},
		{
			name:     "all-empty column stays text",
			rows:     [][]string{{""}, {""}},
			expected: [][]any{{""}, {""}},
		},
		{
			name:     "ragged rows are padded",
			rows:     [][]string{{"Swine", "100"}, {"Cattle"}},
			expected: [][]any{{"Swine", int64(100)}, {"Cattle", nil}},
		},
		{
			name: "columns are inferred independently",
			rows: [][]string{
				{"Swine", "100", "1.5"},
				{"Cattle", "20", "2"},
			},
			expected: [][]any{
				{"Swine", int64(100), 1.5},
				{"Cattle", int64(20), 2.0},
			},
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expected, InferColumns(test.rows))
		})
	}
}
