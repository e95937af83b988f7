package wahis

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractReportIDs(t *testing.T) {
	page := `<td>
		<a href="javascript:void(0)" onclick="openFullReport('33456')">Full report</a>
		<a href="javascript:void(0)" onclick="open('33457')">Full report</a>
		<a href="javascript:void(0)" onclick="open('99')">Summary</a>
		<a href="javascript:void(0)" onclick="open('33458')">Full report</a>
	</td>`

	require.Equal(t, []string{"33456", "33457", "33458"}, ExtractReportIDs(page))
}

func TestExtractReportIDsEmpty(t *testing.T) {
	require.Nil(t, ExtractReportIDs("<html><body>No information found</body></html>"))
}

func TestNewClient(t *testing.T) {
	client, err := NewClient()
	require.NoError(t, err)
	require.NotNil(t, client.Http.GetClient().Jar)
	require.Equal(t, maxRetries, client.Http.RetryCount)
}
