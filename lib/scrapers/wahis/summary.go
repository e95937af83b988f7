package wahis

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
)

// SummaryLink points at one country/year summary page discovered on the
// disease-information site.
type SummaryLink struct {
	Year    int
	Country string
	Url     string
}

type CrawlOptions struct {
	DiseaseID int
	// "terrestrial" (default) or "aquatic"
	DiseaseType string
	MinYear     int
	MaxYear     int
}

// the summary site repopulates its listing via javascript after each
// select change; give it the same settle time the site needs in a
// real browser
const settleDelay = 10 * time.Second

// CrawlSummaryLinks drives a headless browser through the summary site:
// select the disease, then walk every year of the range and collect the
// per-country "Summary" links from the refreshed listing.
func CrawlSummaryLinks(ctx context.Context, opts CrawlOptions) ([]SummaryLink, error) {
	if opts.DiseaseType == "" {
		opts.DiseaseType = "terrestrial"
	}

	browserOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, browserOpts...)
	defer allocCancel()
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	diseaseSelect := fmt.Sprintf("#disease_id_%s", opts.DiseaseType)

	slog.InfoContext(ctx, "opening start page", "url", StartURL)
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(StartURL),
		chromedp.WaitReady(diseaseSelect),
		chromedp.SetValue(diseaseSelect, strconv.Itoa(opts.DiseaseID)),
		chromedp.Evaluate(dispatchChange(diseaseSelect), nil),
		chromedp.Sleep(settleDelay),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to select disease %d: %w", opts.DiseaseID, err)
	}

	var links []SummaryLink
	for year := opts.MinYear; year <= opts.MaxYear; year++ {
		var body string
		err := chromedp.Run(browserCtx,
			chromedp.SetValue("#year", strconv.Itoa(year)),
			chromedp.Evaluate(dispatchChange("#year"), nil),
			chromedp.Sleep(settleDelay),
			chromedp.OuterHTML("body", &body),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to load year %d: %w", year, err)
		}

		yearLinks, err := ParseSummaryListing(strings.NewReader(body), year)
		if err != nil {
			return nil, err
		}
		slog.InfoContext(ctx, "collected summary links", "year", year, "count", len(yearLinks))
		links = append(links, yearLinks...)
	}

	return links, nil
}

func dispatchChange(selector string) string {
	return fmt.Sprintf(`document.querySelector(%q).dispatchEvent(new Event("change"))`, selector)
}

// ParseSummaryListing extracts the Summary anchors of one rendered
// listing. The country cell is only rendered on the first row of each
// country block, so it is carried forward onto the rows below it.
func ParseSummaryListing(r io.Reader, year int) ([]SummaryLink, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var links []SummaryLink
	country := ""
	doc.Find(".outbreakdetails").Each(func(_ int, elem *goquery.Selection) {
		c := strings.TrimSpace(elem.Find(".outbreak_country").Text())
		if c != "" {
			country = c
		}

		elem.Find("a").Each(func(_ int, a *goquery.Selection) {
			if strings.TrimSpace(a.Text()) != "Summary" {
				return
			}
			href, ok := a.Attr("href")
			if !ok {
				return
			}
			links = append(links, SummaryLink{
				Year:    year,
				Country: country,
				Url:     href,
			})
		})
	})

	return links, nil
}
