package normalize

import (
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jdoner02/aicyberjobs/internal/model"
	"github.com/jdoner02/aicyberjobs/internal/usajobs"
)

// FallbackURL stands in when a record carries no usable apply link.
const FallbackURL = "https://www.usajobs.gov"

// Ellipsis marks a truncated description.
const Ellipsis = "…"

var errMissingID = errors.New("record has no MatchedObjectId")

// Normalize maps raw search-result records into canonical Jobs. A malformed
// record is skipped and counted, never fatal to the batch. Duplicate raw
// records that map to the same job_id collapse to the first occurrence, so
// the output id set is unique regardless of input order.
func Normalize(items []usajobs.SearchResultItem, maxLen int, logger *slog.Logger) ([]model.Job, int) {
	jobs := make([]model.Job, 0, len(items))
	seen := make(map[string]bool, len(items))
	skipped := 0

	for _, it := range items {
		job, err := mapItem(it, maxLen)
		if err != nil {
			skipped++
			logger.Warn("skipping malformed record", "error", err)
			continue
		}
		if seen[job.JobID] {
			logger.Debug("collapsing duplicate record", "job_id", job.JobID)
			continue
		}
		seen[job.JobID] = true
		jobs = append(jobs, job)
	}

	return jobs, skipped
}

// mapItem maps one raw record onto the Job schema, applying the field
// fallback chains the Search API needs in practice.
func mapItem(it usajobs.SearchResultItem, maxLen int) (model.Job, error) {
	id := strings.TrimSpace(it.MatchedObjectID)
	if id == "" {
		return model.Job{}, errMissingID
	}
	d := it.Descriptor

	org := d.OrganizationName
	if org == "" {
		org = d.DepartmentName
	}

	var locations []string
	for _, loc := range d.PositionLocation {
		if name := CleanText(loc.LocationName); name != "" {
			locations = append(locations, name)
		}
	}
	if len(locations) == 0 {
		locations = []string{"Various"}
	}

	applyURL := ""
	if len(d.ApplyURI) > 0 {
		applyURL = d.ApplyURI[0]
	}
	if applyURL == "" {
		applyURL = d.PositionURI
	}
	if !isAbsoluteURL(applyURL) {
		applyURL = FallbackURL
	}

	summary := d.UserArea.Details.JobSummary
	if summary == "" {
		summary = d.PositionSummary
	}

	return model.Job{
		JobID:        id,
		Title:        CleanText(d.PositionTitle),
		Organization: CleanText(org),
		Locations:    locations,
		Description:  Truncate(StripHTML(summary), maxLen),
		URL:          applyURL,
		PostedAt:     parsePostedAt(d.PublicationStartDate, d.PositionStartDate),
		Grade:        gradeRange(d.UserArea.Details.LowGrade, d.UserArea.Details.HighGrade),
	}, nil
}

// parsePostedAt tries the publication date first, then the position start
// date. Unparseable values become the zero time rather than the wall clock,
// so identical input always serializes to identical bytes.
func parsePostedAt(candidates ...string) time.Time {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, raw := range candidates {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		for _, layout := range layouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t.UTC()
			}
		}
	}
	return time.Time{}
}

func gradeRange(low, high string) string {
	switch {
	case low == "":
		return ""
	case high == "" || high == low:
		return low
	default:
		return fmt.Sprintf("%s-%s", low, high)
	}
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	return err == nil && u.IsAbs() && u.Host != ""
}

// StripHTML converts an HTML or HTML-encoded summary to plain text and
// collapses whitespace. Entities are unescaped first (the API double-encodes
// some summaries). Tag boundaries are padded with a space before parsing so
// adjacent elements do not run words together once the markup is gone.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	unescaped := html.UnescapeString(s)
	padded := strings.ReplaceAll(unescaped, "<", " <")
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(padded))
	if err != nil {
		return CleanText(unescaped)
	}
	return CleanText(doc.Text())
}

// CleanText collapses runs of whitespace (including non-breaking spaces)
// into single spaces and trims the result.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.Join(strings.Fields(s), " ")
}

// Truncate bounds s to max runes without splitting mid-word, appending the
// ellipsis marker when anything was cut. max <= 0 disables truncation.
func Truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	cut := string(runes[:max])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + Ellipsis
}
