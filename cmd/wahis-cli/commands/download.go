package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"wahis-scraper/lib/osutil"
	"wahis-scraper/lib/restyutil"
	"wahis-scraper/lib/scrapers/wahis"
	"wahis-scraper/lib/sink"

	"github.com/spf13/cobra"
)

var (
	downloadDiseaseID *int
	downloadYearRange *string
	downloadResume    *bool
)

func init() {
	downloadDiseaseID = downloadCmd.Flags().IntP("disease-id", "d", 0, "Terrestrial disease ID. ASF is 12.")
	downloadYearRange = downloadCmd.Flags().StringP("year-range", "y", "", "Range of years, e.g. 2007-2016.")
	downloadResume = downloadCmd.Flags().Bool("resume", false, "Reuse the summary url list already in out_dir.")
	downloadCmd.MarkFlagRequired("disease-id")
	downloadCmd.MarkFlagRequired("year-range")
	rootCmd.AddCommand(downloadCmd)
}

func parseYearRange(s string) (int, int, error) {
	minStr, maxStr, found := strings.Cut(s, "-")
	if !found {
		return 0, 0, fmt.Errorf("year range must look like 2007-2016, got %q", s)
	}
	minYear, err := strconv.Atoi(minStr)
	if err != nil {
		return 0, 0, err
	}
	maxYear, err := strconv.Atoi(maxStr)
	if err != nil {
		return 0, 0, err
	}
	return minYear, maxYear, nil
}

var downloadCmd = &cobra.Command{
	Use:   "download <out_dir> -d <disease-id> -y <year-range> [--resume]",
	Short: "Crawls the summary site and downloads every full report into out_dir.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		outDir := args[0]

		minYear, maxYear, err := parseYearRange(*downloadYearRange)
		if err != nil {
			osutil.Fatal("invalid year range", err)
		}

		store, err := wahis.NewStore(outDir)
		if err != nil {
			osutil.Fatal("failed to create output directory", err)
		}

		summaryPath := filepath.Join(outDir, "summary_urls.xlsx")
		var links []wahis.SummaryLink
		if *downloadResume {
			links, err = sink.ReadSummaryLinks(summaryPath)
			if err != nil {
				osutil.Fatal("failed to read summary urls", err)
			}
		} else {
			if _, err := os.Stat(summaryPath); err == nil {
				osutil.Fatal(
					fmt.Sprintf("refusing to overwrite %s", summaryPath),
					errors.New("use --resume if you want to use what's there"),
				)
			}
			links, err = wahis.CrawlSummaryLinks(ctx, wahis.CrawlOptions{
				DiseaseID: *downloadDiseaseID,
				MinYear:   minYear,
				MaxYear:   maxYear,
			})
			if err != nil {
				osutil.Fatal("failed to crawl summary site", err)
			}
			err = sink.WriteSummaryLinks(summaryPath, links)
			if err != nil {
				osutil.Fatal("failed to write summary urls", err)
			}
		}

		if *verbose {
			wahis.SetRestyInstrumentOutput(restyutil.NewFilesystemOutput(".dev/resty/wahis"))
		}
		client, err := wahis.NewClient()
		if err != nil {
			osutil.Fatal("failed to initialize http client", err)
		}

		cache, err := wahis.OpenSummaryCache(filepath.Join(outDir, "summary_cache"))
		if err != nil {
			osutil.Fatal("failed to open summary cache", err)
		}
		defer cache.Close()

		urls := make([]string, len(links))
		for i, link := range links {
			urls[i] = link.Url
		}
		reportIDs, err := wahis.GetReportIDs(ctx, client, cache, urls)
		if err != nil {
			osutil.Fatal("failed to collect report ids", err)
		}

		stats, err := wahis.DownloadReports(ctx, client, store, reportIDs)
		if err != nil {
			osutil.Fatal("failed to download reports", err)
		}
		slog.Info("download complete",
			"retrieved", stats.Retrieved,
			"already_saved", stats.Skipped,
		)
	},
}
