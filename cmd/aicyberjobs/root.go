package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jdoner02/aicyberjobs/internal/config"
	"github.com/jdoner02/aicyberjobs/internal/model"
	"github.com/jdoner02/aicyberjobs/internal/notify"
	"github.com/jdoner02/aicyberjobs/internal/ratelimit"
	"github.com/jdoner02/aicyberjobs/internal/retry"
	"github.com/jdoner02/aicyberjobs/internal/store"
	"github.com/jdoner02/aicyberjobs/internal/usajobs"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:          "aicyberjobs",
	Short:        "AI & Cybersecurity job radar for USAJOBS",
	Long:         "aicyberjobs polls the USAJOBS Search API for AI and cybersecurity postings,\ntracks what is new since the last run, and prepares digest content for delivery.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: AICYBERJOBS_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > AICYBERJOBS_CONFIG env var > "./config.yaml".
// When no path was given and the default file does not exist, built-in
// defaults apply (credentials stay empty and the null client is selected).
func loadConfig(path string) (*config.Config, error) {
	explicit := path != ""
	if path == "" {
		if env := os.Getenv("AICYBERJOBS_CONFIG"); env != "" {
			path = env
			explicit = true
		} else {
			path = "config.yaml"
		}
	}

	cfg, err := config.Load(path)
	if err != nil && !explicit && errors.Is(err, os.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func newStore(cfg *config.Config, logger *slog.Logger) *store.Store {
	return store.New(cfg.Paths.DataDir, cfg.Paths.SiteDataDir, logger)
}

// newSearcher selects the fetch capability at startup: the real client when
// credentials are configured, the null client otherwise. Either way the
// result is wrapped with bounded retry.
func newSearcher(cfg *config.Config, logger *slog.Logger) usajobs.Searcher {
	var inner usajobs.Searcher
	if cfg.USAJobs.Configured() {
		inner = usajobs.NewClient(usajobs.ClientConfig{
			Email:      cfg.USAJobs.Email,
			APIKey:     cfg.USAJobs.APIKey,
			HTTPClient: &http.Client{Timeout: cfg.HTTP.Timeout},
			Limiter:    ratelimit.PerMinute(cfg.RateLimit.PerMinute),
			Logger:     logger,
		})
	} else {
		inner = usajobs.NewNullClient(logger)
	}
	return retry.NewSearcher(inner, 2, 5*time.Second, logger)
}

func setupNotifier(cfg *config.Config, logger *slog.Logger) model.Notifier {
	if cfg.Notify.DiscordWebhookURL != "" {
		logger.Info("using discord notifier")
		httpClient := &http.Client{Timeout: 30 * time.Second}
		return notify.NewDiscordNotifier(cfg.Notify.DiscordWebhookURL, httpClient, logger)
	}
	return notify.NewLogNotifier(logger)
}

// parseCategories expands the --category flag value (ai, cyber, or both).
func parseCategories(flag string) ([]model.Category, error) {
	if flag == "both" {
		return model.Categories(), nil
	}
	c, err := model.ParseCategory(flag)
	if err != nil {
		return nil, fmt.Errorf("%w (or \"both\")", err)
	}
	return []model.Category{c}, nil
}
