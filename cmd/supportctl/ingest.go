package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/supportbrain/backend/internal/application/ingest"
	"github.com/supportbrain/backend/internal/wire"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Load knowledge into an organization's namespace",
}

var ingestHistoricalCmd = &cobra.Command{
	Use:   "historical",
	Short: "Extract Q&A pairs from closed helpdesk tickets",
	RunE: func(cmd *cobra.Command, args []string) error {
		org, err := requireOrg()
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")
		if limit < 0 {
			return fmt.Errorf("--limit must not be negative")
		}

		return withServices(func(s *wire.Services) error {
			report, err := s.Historical.Ingest(cmd.Context(), org, limit)
			if err != nil {
				return err
			}
			if viper.GetBool("json") {
				return printJSON(report)
			}
			printHistorical(report)
			return nil
		})
	},
}

var ingestWebCmd = &cobra.Command{
	Use:   "web URL [URL...]",
	Short: "Scrape, chunk and store web pages",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		org, err := requireOrg()
		if err != nil {
			return err
		}

		return withServices(func(s *wire.Services) error {
			report := s.Web.IngestBatch(cmd.Context(), org, args)
			if viper.GetBool("json") {
				return printJSON(report)
			}
			for _, r := range report.Results {
				switch r.Status {
				case ingest.WebStatusSuccess:
					_, _ = okColor.Printf("ok      ")
					fmt.Printf("%s (%d chunks) %s\n", r.URL, r.Chunks, r.Title)
				case ingest.WebStatusSkipped:
					_, _ = warnColor.Printf("skipped ")
					fmt.Printf("%s\n", r.URL)
				default:
					_, _ = errColor.Printf("failed  ")
					fmt.Printf("%s: %s\n", r.URL, r.Error)
				}
			}
			fmt.Printf("%d succeeded, %d failed\n", report.Succeeded, report.Failed)
			if report.Failed > 0 {
				return fmt.Errorf("%d of %d pages failed", report.Failed, len(args))
			}
			return nil
		})
	},
}

func printHistorical(report *ingest.HistoricalReport) {
	_, _ = okColor.Println("historical ingestion finished")
	fmt.Printf("  fetched:        %d\n", report.Fetched)
	fmt.Printf("  closed:         %d\n", report.Closed)
	fmt.Printf("  stored:         %d\n", report.Stored)
	if report.FailedBatches > 0 {
		_, _ = warnColor.Printf("  failed batches: %d\n", report.FailedBatches)
	}

	modes := make([]string, 0, len(report.ModeCounts))
	for mode := range report.ModeCounts {
		modes = append(modes, string(mode))
	}
	sort.Strings(modes)
	for _, mode := range modes {
		fmt.Printf("  %-15s %d\n", mode+":", report.ModeCounts[ingest.ExtractionMode(mode)])
	}
}

func init() {
	ingestHistoricalCmd.Flags().Int("limit", 0, "maximum number of tickets to read (0 reads up to the page cap)")

	ingestCmd.AddCommand(ingestHistoricalCmd)
	ingestCmd.AddCommand(ingestWebCmd)
	rootCmd.AddCommand(ingestCmd)
}
