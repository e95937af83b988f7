package wahis

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
)

// delay between requests against the source platform
const requestDelay = time.Millisecond * 500

// GetReportIDs resolves every summary url into the report ids it links
// to, serving already-resolved urls from the cache. Urls are visited in
// sorted unique order so repeated runs behave identically.
func GetReportIDs(ctx context.Context, client *Client, cache *SummaryCache, summaryUrls []string) ([]string, error) {
	ctx, span := tracer.Start(ctx, "GetReportIDs")
	defer span.End()

	seen := map[string]bool{}
	var urls []string
	for _, u := range summaryUrls {
		if !seen[u] {
			seen[u] = true
			urls = append(urls, u)
		}
	}
	sort.Strings(urls)

	var all []string
	for _, u := range urls {
		ids, err := cache.Get(ctx, u)
		if err == nil {
			all = append(all, ids...)
			continue
		}
		if !errors.Is(err, ErrNotCached) {
			return nil, err
		}

		time.Sleep(requestDelay)
		ids, err = client.FetchSummary(ctx, u)
		if err != nil {
			return nil, err
		}
		err = cache.Put(ctx, u, ids)
		if err != nil {
			return nil, err
		}
		all = append(all, ids...)
	}

	span.SetAttributes(attribute.Int("report_ids", len(all)))
	return all, nil
}

type DownloadStats struct {
	Retrieved int
	Skipped   int
}

// DownloadReports fetches every report that is not already stored.
// Fetch failures abort the download (resty has already retried), but
// everything stored so far stays on disk for the next run.
func DownloadReports(ctx context.Context, client *Client, store Store, reportIDs []string) (DownloadStats, error) {
	ctx, span := tracer.Start(ctx, "DownloadReports")
	defer span.End()

	var stats DownloadStats
	sorted := append([]string(nil), reportIDs...)
	sort.Strings(sorted)

	for _, id := range sorted {
		if store.Has(id) {
			slog.DebugContext(ctx, "skipping stored report", "report_id", id)
			stats.Skipped++
			continue
		}

		slog.DebugContext(ctx, "downloading report", "report_id", id)
		time.Sleep(requestDelay)
		body, err := client.FetchReport(ctx, id)
		if err != nil {
			return stats, err
		}
		err = store.Put(id, body)
		if err != nil {
			return stats, err
		}
		stats.Retrieved++
	}

	span.SetAttributes(
		attribute.Int("retrieved", stats.Retrieved),
		attribute.Int("skipped", stats.Skipped),
	)
	return stats, nil
}
