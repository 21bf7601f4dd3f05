package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jdoner02/aicyberjobs/internal/browse"
	"github.com/jdoner02/aicyberjobs/internal/model"
)

var browseCategory string

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the latest listing in the terminal",
	Long:  "Opens a read-only terminal viewer over the persisted latest listing for\none category. Does not fetch and does not write.",
	RunE:  runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
	browseCmd.Flags().StringVar(&browseCategory, "category", string(model.CategoryAI), "ai|cyber")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	category, err := model.ParseCategory(browseCategory)
	if err != nil {
		return err
	}

	jobs, err := newStore(cfg, logger).LoadLatest(category)
	if err != nil {
		return fmt.Errorf("load latest listing for %s: %w", category, err)
	}

	return browse.Run(category, jobs)
}
