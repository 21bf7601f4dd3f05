package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jdoner02/aicyberjobs/internal/model"
)

var buildSiteCmd = &cobra.Command{
	Use:   "build-site",
	Short: "Mirror the latest listings into the site-data directory",
	Long:  "Re-derives the site-data mirror from the persisted latest listings\nwithout fetching anything.",
	RunE:  runBuildSite,
}

func init() {
	rootCmd.AddCommand(buildSiteCmd)
}

func runBuildSite(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	st := newStore(cfg, logger)
	if err := st.EnsureDirs(); err != nil {
		return fmt.Errorf("prepare data directories: %w", err)
	}

	for _, c := range model.Categories() {
		if err := st.SyncSiteData(c); err != nil {
			return fmt.Errorf("sync site data for %s: %w", c, err)
		}
	}

	logger.Info("site data updated")
	return nil
}
