package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jdoner02/aicyberjobs/internal/model"
	"github.com/jdoner02/aicyberjobs/internal/notify"
)

var (
	notifyCategory string
	notifyOutDir   string
	notifySiteURL  string
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Render digest files for new jobs",
	Long:  "Renders HTML + text digest bodies from the persisted new-jobs set and\nwrites them where CI picks them up for delivery. Produces nothing when no\nnew jobs exist; the absence of output is the no-news signal.",
	RunE:  runNotify,
}

var notifySendCmd = &cobra.Command{
	Use:   "send",
	Short: "Post the run summary to the configured chat channel",
	RunE:  runNotifySend,
}

func init() {
	rootCmd.AddCommand(notifyCmd)
	notifyCmd.AddCommand(notifySendCmd)
	notifyCmd.Flags().StringVar(&notifyCategory, "category", "both", "ai|cyber|both")
	notifyCmd.Flags().StringVar(&notifyOutDir, "out", "", "output directory (default from config)")
	notifySendCmd.Flags().StringVar(&notifySiteURL, "site-url", "", "job board URL linked from the summary (default from config)")
}

func runNotify(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	categories, err := parseCategories(notifyCategory)
	if err != nil {
		return err
	}

	outDir := notifyOutDir
	if outDir == "" {
		outDir = cfg.Paths.EmailOutDir
	}
	st := newStore(cfg, logger)

	rendered := 0
	for _, c := range categories {
		jobs, err := st.LoadNewJobs(c)
		if err != nil {
			return fmt.Errorf("load new jobs for %s: %w", c, err)
		}
		if len(jobs) == 0 {
			continue
		}

		meta, err := notify.WriteEmailFiles(outDir, c, jobs)
		if err != nil {
			return fmt.Errorf("write digest files for %s: %w", c, err)
		}
		logger.Info("digest rendered", "category", c, "count", meta.Count, "subject", meta.Subject)
		rendered++
	}

	if rendered == 0 {
		logger.Info("no new jobs, no digest files produced")
	}
	return nil
}

func runNotifySend(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	siteURL := notifySiteURL
	if siteURL == "" {
		siteURL = cfg.Notify.SiteURL
	}
	st := newStore(cfg, logger)

	counts := make(map[model.Category]int, 2)
	for _, c := range model.Categories() {
		jobs, err := st.LoadLatest(c)
		if err != nil {
			return fmt.Errorf("load latest listing for %s: %w", c, err)
		}
		counts[c] = len(jobs)
	}

	n := setupNotifier(cfg, logger)
	summary := model.Summary{Date: time.Now(), SiteURL: siteURL, Counts: counts}
	if err := n.Notify(context.Background(), summary); err != nil {
		return fmt.Errorf("send summary: %w", err)
	}
	return nil
}
