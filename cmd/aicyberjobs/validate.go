package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the on-disk layout and persisted artifacts",
	Long:  "Verifies that the expected directories exist and that every persisted\nJSON artifact parses against its schema.",
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	st := newStore(cfg, logger)
	if err := st.EnsureDirs(); err != nil {
		return fmt.Errorf("prepare data directories: %w", err)
	}

	if err := st.CheckLayout(); err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	logger.Info("validate: OK")
	return nil
}
