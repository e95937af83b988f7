package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"wahis-scraper/lib/osutil"
	"wahis-scraper/lib/scrapers/wahis"
	"wahis-scraper/lib/sink"
	"wahis-scraper/lib/tabulate"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	tabulateGlob     *string
	tabulateXlsxName *string
)

func init() {
	tabulateGlob = tabulateCmd.Flags().String("glob", "*.html", "Glob pattern for reports to load from out_dir.")
	tabulateXlsxName = tabulateCmd.Flags().String("xlsx-name", "reports.xlsx", "Filename to dump the spreadsheet to.")
	rootCmd.AddCommand(tabulateCmd)
}

var tabulateCmd = &cobra.Command{
	Use:   "tabulate <out_dir> [--glob \"*.html\"] [--xlsx-name reports.xlsx]",
	Short: "Turns downloaded reports into a spreadsheet of data.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		outDir := args[0]

		store, err := wahis.NewStore(outDir)
		if err != nil {
			osutil.Fatal("failed to open output directory", err)
		}
		paths, err := store.Glob(*tabulateGlob)
		if err != nil {
			osutil.Fatal("invalid glob pattern", err)
		}
		if len(paths) == 0 {
			osutil.Fatal(
				fmt.Sprintf("no reports in %s match %q", outDir, *tabulateGlob),
				os.ErrNotExist,
			)
		}

		docs := make([]tabulate.Document, 0, len(paths))
		for _, path := range paths {
			body, err := os.ReadFile(path)
			if err != nil {
				osutil.Fatal("failed to read report", err)
			}
			docs = append(docs, tabulate.Document{
				ReportID: wahis.ReportIDFromPath(path),
				Body:     body,
			})
		}

		result := tabulate.ProcessBatch(ctx, docs)

		xlsxPath := filepath.Join(outDir, *tabulateXlsxName)
		slog.Info("writing output", "path", xlsxPath)
		err = sink.WriteWorkbook(xlsxPath, result)
		if err != nil {
			osutil.Fatal("failed to write spreadsheet", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"parsed", "placeholders", "failed"})
		t.AppendRow(table.Row{result.Parsed, result.Placeholders, result.Failed})
		t.Render()
	},
}
