package wahis

import (
	"context"
	"fmt"
	"net/http/cookiejar"
	"regexp"
	"time"
	"wahis-scraper/lib/restyutil"
	"wahis-scraper/lib/tabulate"
	"wahis-scraper/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"
)

// StartURL is the disease-information summary page the crawl begins on.
const StartURL = "https://www.oie.int/wahis_2/public/wahid.php/Diseaseinformation/Immsummary"

const maxRetries = 5

type Client struct {
	Http *resty.Client
}

func NewClient() (*Client, error) {
	client := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetTimeout(time.Second * 30)
	client.SetRetryCount(maxRetries)
	client.SetRetryWaitTime(time.Millisecond * 500)
	client.SetRetryMaxWaitTime(time.Second * 10)

	telemetry.InstrumentResty(client, "scrapers/wahis/http")
	restyutil.InstrumentClient(client, restyInstrumentOutput)

	return &Client{Http: client}, nil
}

// report ids only appear inside the "Full report" javascript links of a
// summary page
var fullReportRegex = regexp.MustCompile(`'(\d+)'\)">Full report</a>`)

// ExtractReportIDs pulls every report id out of a summary page body, in
// page order.
func ExtractReportIDs(html string) []string {
	var ids []string
	for _, match := range fullReportRegex.FindAllStringSubmatch(html, -1) {
		ids = append(ids, match[1])
	}
	return ids
}

// FetchSummary downloads one summary page and returns the report ids it
// links to.
func (c *Client) FetchSummary(ctx context.Context, url string) ([]string, error) {
	ctx, span := tracer.Start(ctx, "FetchSummary")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch summary page")
		return nil, err
	}

	return ExtractReportIDs(res.String()), nil
}

// FetchReport downloads the full report page for one report id. The
// body may be the platform's error placeholder; callers detect that
// during tabulation, not here.
func (c *Client) FetchReport(ctx context.Context, reportID string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "FetchReport")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		Get(fmt.Sprintf(tabulate.ReportURL, reportID))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch report")
		return nil, err
	}

	return res.Body(), nil
}
