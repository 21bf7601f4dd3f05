package notify

import (
	"context"
	"log/slog"

	"github.com/jdoner02/aicyberjobs/internal/model"
)

// Ensure LogNotifier implements model.Notifier.
var _ model.Notifier = (*LogNotifier)(nil)

// LogNotifier writes the run summary to the logger. It is the fallback when
// no webhook is configured.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, s model.Summary) error {
	n.logger.Info("job update summary",
		"date", s.Date.Format("2006-01-02"),
		"ai", s.Counts[model.CategoryAI],
		"cyber", s.Counts[model.CategoryCyber],
		"total", s.Total(),
		"site_url", s.SiteURL,
	)
	return nil
}
