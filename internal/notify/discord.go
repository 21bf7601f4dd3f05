package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/jdoner02/aicyberjobs/internal/model"
)

// Ensure DiscordNotifier implements model.Notifier.
var _ model.Notifier = (*DiscordNotifier)(nil)

// DiscordNotifier posts the daily run summary to a Discord channel via an
// incoming webhook.
type DiscordNotifier struct {
	webhookURL string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewDiscordNotifier returns a notifier that posts summaries to the webhook.
func NewDiscordNotifier(webhookURL string, httpClient *http.Client, logger *slog.Logger) *DiscordNotifier {
	return &DiscordNotifier{
		webhookURL: webhookURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Notify sends one summary message. A 429 response is retried once after the
// advertised delay.
func (d *DiscordNotifier) Notify(ctx context.Context, s model.Summary) error {
	body, err := json.Marshal(buildWebhookPayload(s))
	if err != nil {
		return fmt.Errorf("marshal discord payload: %w", err)
	}

	resp, err := d.post(ctx, body)
	if err != nil {
		return fmt.Errorf("post to discord: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		secs, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		if secs <= 0 {
			secs = 1
		}
		d.logger.Warn("discord rate limited, retrying", "retry_after_secs", secs)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(secs) * time.Second):
		}

		resp2, err := d.post(ctx, body)
		if err != nil {
			return fmt.Errorf("post to discord (retry): %w", err)
		}
		defer resp2.Body.Close()
		if resp2.StatusCode >= 300 {
			return fmt.Errorf("discord returned %d on retry", resp2.StatusCode)
		}
		d.logger.Info("discord summary sent", "total", s.Total(), "retried", true)
		return nil
	}

	if resp.StatusCode >= 300 {
		return fmt.Errorf("discord returned %d", resp.StatusCode)
	}
	d.logger.Info("discord summary sent", "total", s.Total())
	return nil
}

func (d *DiscordNotifier) post(ctx context.Context, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return d.httpClient.Do(req)
}

// Webhook payload types (Discord embed format).

type webhookPayload struct {
	Content string  `json:"content,omitempty"`
	Embeds  []embed `json:"embeds,omitempty"`
}

type embed struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Color       int          `json:"color"`
	Fields      []embedField `json:"fields"`
	URL         string       `json:"url,omitempty"`
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

const embedColor = 0x61DAFB

func buildWebhookPayload(s model.Summary) webhookPayload {
	e := embed{
		Title:       "🔍 Daily Job Update",
		Description: fmt.Sprintf("New government tech jobs available as of %s", s.Date.Format("January 2, 2006")),
		Color:       embedColor,
		URL:         s.SiteURL,
		Fields: []embedField{
			{Name: "🤖 AI Jobs", Value: strconv.Itoa(s.Counts[model.CategoryAI]), Inline: true},
			{Name: "🔒 Cybersecurity Jobs", Value: strconv.Itoa(s.Counts[model.CategoryCyber]), Inline: true},
			{Name: "📊 Total Opportunities", Value: strconv.Itoa(s.Total()), Inline: true},
		},
	}
	content := ""
	if s.SiteURL != "" {
		content = fmt.Sprintf("Browse all openings: %s", s.SiteURL)
	}
	return webhookPayload{Content: content, Embeds: []embed{e}}
}
