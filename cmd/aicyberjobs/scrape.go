package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jdoner02/aicyberjobs/internal/pipeline"
)

var (
	scrapeCategory string
	scrapeDays     int
	scrapeLimit    int
	scrapeDryRun   bool
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Fetch jobs and update data/state/history",
	Long:  "Fetch jobs for the selected categories and update the latest listing,\nthe dated history snapshot, and the known-id state. With --dry-run the\npipeline runs through dedupe and writes nothing.",
	RunE:  runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
	scrapeCmd.Flags().StringVar(&scrapeCategory, "category", "both", "ai|cyber|both")
	scrapeCmd.Flags().IntVar(&scrapeDays, "days", 0, "lookback window in days (default from config)")
	scrapeCmd.Flags().IntVar(&scrapeLimit, "limit", 0, "max results per category (default from config)")
	scrapeCmd.Flags().BoolVar(&scrapeDryRun, "dry-run", false, "do not write outputs or state")
}

func runScrape(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	categories, err := parseCategories(scrapeCategory)
	if err != nil {
		return err
	}

	days := scrapeDays
	if days <= 0 {
		days = cfg.Scrape.DefaultDays
	}
	limit := scrapeLimit
	if limit <= 0 {
		limit = cfg.Scrape.ResultsLimit
	}

	st := newStore(cfg, logger)
	if !scrapeDryRun {
		if err := st.EnsureDirs(); err != nil {
			return fmt.Errorf("prepare data directories: %w", err)
		}
	}

	runner := pipeline.NewRunner(newSearcher(cfg, logger), st, pipeline.Options{
		Days:              days,
		Limit:             limit,
		DescriptionMaxLen: cfg.Scrape.DescriptionMaxLen,
		DryRun:            scrapeDryRun,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	outcomes := runner.RunAll(ctx, categories)
	for _, o := range outcomes {
		if o.Err != nil {
			continue
		}
		logger.Info("scrape summary",
			"category", o.Result.Category,
			"state", o.Result.State,
			"jobs", o.Result.Jobs,
			"new", o.Result.New,
		)
	}

	if pipeline.Failed(outcomes) {
		return fmt.Errorf("scrape failed for at least one of %d categories", len(outcomes))
	}
	return nil
}
