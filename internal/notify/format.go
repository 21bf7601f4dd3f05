// Package notify renders digest content for new postings and announces run
// summaries to chat channels. Rendering has no side effects; delivery of the
// rendered email bodies is done by CI, not by this process.
package notify

import (
	"fmt"
	"html"
	"strings"

	"github.com/jdoner02/aicyberjobs/internal/model"
)

// Subject builds the digest subject line for a category and new-job count.
func Subject(c model.Category, count int) string {
	return fmt.Sprintf("New %s Jobs (%d) – USAJOBS", c.DisplayName(), count)
}

// RenderBodies renders the HTML and plain-text digests from the same ordered
// job slice, so the two renditions can differ only in markup, never content.
// Callers must not invoke this with an empty slice; absence of output is the
// "no news" signal downstream.
func RenderBodies(jobs []model.Job) (htmlBody, textBody string) {
	htmlItems := make([]string, 0, len(jobs))
	textItems := make([]string, 0, len(jobs))
	for _, j := range jobs {
		htmlItems = append(htmlItems, fmt.Sprintf(
			"<li><strong>%s</strong>: %s <a href='%s'>Apply</a></li>",
			html.EscapeString(j.JobID),
			html.EscapeString(j.Description),
			j.URL,
		))
		textItems = append(textItems, fmt.Sprintf("- %s: %s\n  %s", j.JobID, j.Description, j.URL))
	}

	htmlBody = strings.TrimSpace(fmt.Sprintf(`
<!doctype html>
<html><body>
  <p>New postings found on USAJOBS:</p>
  <ul>
    %s
  </ul>
</body></html>
`, strings.Join(htmlItems, "\n    ")))

	textBody = "New postings found on USAJOBS:\n\n" + strings.Join(textItems, "\n\n")
	return htmlBody, textBody
}
