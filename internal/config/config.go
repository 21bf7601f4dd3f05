package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for the scraper.
type Config struct {
	USAJobs   USAJobsConfig
	HTTP      HTTPConfig
	RateLimit RateLimitConfig
	Scrape    ScrapeConfig
	Paths     PathsConfig
	Notify    NotifyConfig
}

// USAJobsConfig holds the Search API credentials. Both values may be empty;
// an unconfigured client degrades to returning zero records instead of
// failing the pipeline.
type USAJobsConfig struct {
	Email  string // sent as User-Agent, per the API's auth scheme
	APIKey string // sent as Authorization-Key
}

// Configured reports whether real API calls are possible.
func (u USAJobsConfig) Configured() bool {
	return u.Email != "" && u.APIKey != ""
}

// HTTPConfig controls outbound request behavior.
type HTTPConfig struct {
	Timeout time.Duration
}

// RateLimitConfig budgets requests against the Search API. One process-wide
// bucket is shared across both categories.
type RateLimitConfig struct {
	PerMinute int
}

// ScrapeConfig holds pipeline tuning defaults, overridable per run by CLI flags.
type ScrapeConfig struct {
	DefaultDays       int // lookback window
	ResultsLimit      int // max results per category
	DescriptionMaxLen int // truncation bound for job descriptions, in runes
}

// PathsConfig names the output directory roots.
type PathsConfig struct {
	DataDir     string // data/state, data/latest, data/history live here
	SiteDataDir string // mirror consumed by the static front end
	EmailOutDir string // rendered digest files for CI to deliver
}

// NotifyConfig controls the chat-channel summary notifier.
type NotifyConfig struct {
	DiscordWebhookURL string
	SiteURL           string
}

const discordWebhookPrefix = "https://discord.com/api/webhooks/"

// rawConfig is used for YAML unmarshaling (snake_case keys, durations as strings).
type rawConfig struct {
	USAJobs struct {
		Email  string `yaml:"email"`
		APIKey string `yaml:"api_key"`
	} `yaml:"usajobs"`
	HTTP struct {
		Timeout string `yaml:"timeout"`
	} `yaml:"http"`
	RateLimit struct {
		PerMinute *int `yaml:"per_minute"`
	} `yaml:"rate_limit"`
	Scrape struct {
		DefaultDays       *int `yaml:"default_days"`
		ResultsLimit      *int `yaml:"results_limit"`
		DescriptionMaxLen *int `yaml:"description_max_len"`
	} `yaml:"scrape"`
	Paths struct {
		DataDir     string `yaml:"data_dir"`
		SiteDataDir string `yaml:"site_data_dir"`
		EmailOutDir string `yaml:"email_out_dir"`
	} `yaml:"paths"`
	Notify struct {
		DiscordWebhookURL string `yaml:"discord_webhook_url"`
		SiteURL           string `yaml:"site_url"`
	} `yaml:"notify"`
}

// Default returns the configuration used when no config file exists. All
// values except credentials have working defaults.
func Default() *Config {
	return &Config{
		HTTP:      HTTPConfig{Timeout: 20 * time.Second},
		RateLimit: RateLimitConfig{PerMinute: 10},
		Scrape: ScrapeConfig{
			DefaultDays:       2,
			ResultsLimit:      50,
			DescriptionMaxLen: 600,
		},
		Paths: PathsConfig{
			DataDir:     "data",
			SiteDataDir: "docs/data",
			EmailOutDir: "out/emails",
		},
	}
}

// Load reads and parses the YAML config file at path, applies defaults for
// everything not set, validates, and returns the Config. Secrets may be
// referenced as ${ENV_VAR}; they are expanded before parsing.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()
	cfg.USAJobs.Email = strings.TrimSpace(raw.USAJobs.Email)
	cfg.USAJobs.APIKey = strings.TrimSpace(raw.USAJobs.APIKey)

	if raw.HTTP.Timeout != "" {
		d, err := time.ParseDuration(raw.HTTP.Timeout)
		if err != nil {
			return nil, fmt.Errorf("parse http.timeout %q: %w", raw.HTTP.Timeout, err)
		}
		cfg.HTTP.Timeout = d
	}
	if raw.RateLimit.PerMinute != nil {
		cfg.RateLimit.PerMinute = *raw.RateLimit.PerMinute
	}
	if raw.Scrape.DefaultDays != nil {
		cfg.Scrape.DefaultDays = *raw.Scrape.DefaultDays
	}
	if raw.Scrape.ResultsLimit != nil {
		cfg.Scrape.ResultsLimit = *raw.Scrape.ResultsLimit
	}
	if raw.Scrape.DescriptionMaxLen != nil {
		cfg.Scrape.DescriptionMaxLen = *raw.Scrape.DescriptionMaxLen
	}
	if raw.Paths.DataDir != "" {
		cfg.Paths.DataDir = raw.Paths.DataDir
	}
	if raw.Paths.SiteDataDir != "" {
		cfg.Paths.SiteDataDir = raw.Paths.SiteDataDir
	}
	if raw.Paths.EmailOutDir != "" {
		cfg.Paths.EmailOutDir = raw.Paths.EmailOutDir
	}
	cfg.Notify.DiscordWebhookURL = strings.TrimSpace(raw.Notify.DiscordWebhookURL)
	cfg.Notify.SiteURL = strings.TrimSpace(raw.Notify.SiteURL)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.HTTP.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be positive, got %v", cfg.HTTP.Timeout)
	}
	if cfg.RateLimit.PerMinute < 0 {
		return fmt.Errorf("rate_limit.per_minute must not be negative, got %d", cfg.RateLimit.PerMinute)
	}
	if cfg.Scrape.DefaultDays < 1 {
		return fmt.Errorf("scrape.default_days must be at least 1, got %d", cfg.Scrape.DefaultDays)
	}
	if cfg.Scrape.ResultsLimit < 1 || cfg.Scrape.ResultsLimit > 500 {
		return fmt.Errorf("scrape.results_limit must be between 1 and 500, got %d", cfg.Scrape.ResultsLimit)
	}
	if cfg.Scrape.DescriptionMaxLen < 80 {
		return fmt.Errorf("scrape.description_max_len must be at least 80, got %d", cfg.Scrape.DescriptionMaxLen)
	}
	if u := cfg.Notify.DiscordWebhookURL; u != "" && !strings.HasPrefix(u, discordWebhookPrefix) {
		return fmt.Errorf("notify.discord_webhook_url must start with %s", discordWebhookPrefix)
	}
	return nil
}
