package normalize

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jdoner02/aicyberjobs/internal/usajobs"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fullItem() usajobs.SearchResultItem {
	it := usajobs.SearchResultItem{MatchedObjectID: "834921700"}
	it.Descriptor.PositionTitle = "Computer Scientist (Machine Learning)"
	it.Descriptor.OrganizationName = "National Institute of Standards and Technology"
	it.Descriptor.PositionLocation = []usajobs.PositionLocation{
		{LocationName: "Gaithersburg, Maryland"},
		{LocationName: "Boulder, Colorado"},
	}
	it.Descriptor.ApplyURI = []string{"https://www.usajobs.gov/job/834921700"}
	it.Descriptor.PublicationStartDate = "2026-08-28"
	it.Descriptor.UserArea.Details.JobSummary = "<p>Research in <b>machine learning</b> &amp; AI.</p>"
	it.Descriptor.UserArea.Details.LowGrade = "12"
	it.Descriptor.UserArea.Details.HighGrade = "14"
	return it
}

func TestNormalize_MapsFields(t *testing.T) {
	jobs, skipped := Normalize([]usajobs.SearchResultItem{fullItem()}, 600, discardLogger())
	require.Zero(t, skipped)
	require.Len(t, jobs, 1)

	j := jobs[0]
	require.Equal(t, "834921700", j.JobID)
	require.Equal(t, "Computer Scientist (Machine Learning)", j.Title)
	require.Equal(t, "National Institute of Standards and Technology", j.Organization)
	require.Equal(t, []string{"Gaithersburg, Maryland", "Boulder, Colorado"}, j.Locations)
	require.Equal(t, "https://www.usajobs.gov/job/834921700", j.URL)
	require.Equal(t, "Research in machine learning & AI.", j.Description)
	require.Equal(t, time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), j.PostedAt)
	require.Equal(t, "12-14", j.Grade)
}

func TestNormalize_SkipsRecordWithoutID(t *testing.T) {
	bad := usajobs.SearchResultItem{}
	jobs, skipped := Normalize([]usajobs.SearchResultItem{bad, fullItem()}, 600, discardLogger())
	require.Equal(t, 1, skipped)
	require.Len(t, jobs, 1)
	require.Equal(t, "834921700", jobs[0].JobID)
}

func TestNormalize_CollapsesDuplicateIDs(t *testing.T) {
	a := fullItem()
	b := fullItem()
	b.Descriptor.PositionTitle = "Edited Title"

	jobs, skipped := Normalize([]usajobs.SearchResultItem{a, b}, 600, discardLogger())
	require.Zero(t, skipped)
	require.Len(t, jobs, 1)
	// First occurrence wins regardless of later edits.
	require.Equal(t, "Computer Scientist (Machine Learning)", jobs[0].Title)
}

func TestNormalize_Fallbacks(t *testing.T) {
	it := usajobs.SearchResultItem{MatchedObjectID: "1"}
	it.Descriptor.DepartmentName = "Department of Defense"
	it.Descriptor.PositionURI = "not-a-url"
	it.Descriptor.PositionSummary = "Plain summary."

	jobs, skipped := Normalize([]usajobs.SearchResultItem{it}, 600, discardLogger())
	require.Zero(t, skipped)
	require.Len(t, jobs, 1)

	j := jobs[0]
	require.Equal(t, "Department of Defense", j.Organization)
	require.Equal(t, []string{"Various"}, j.Locations)
	require.Equal(t, FallbackURL, j.URL)
	require.Equal(t, "Plain summary.", j.Description)
	require.True(t, j.PostedAt.IsZero())
	require.Empty(t, j.Grade)
}

func TestStripHTML(t *testing.T) {
	cases := map[string]string{
		"":                                     "",
		"no markup at all":                     "no markup at all",
		"<p>Hello</p><p>World</p>":             "Hello World",
		"lots\n  of\t whitespace":              "lots of whitespace",
		"&lt;b&gt;Bold&lt;/b&gt; &amp; plain":  "Bold & plain", // double-encoded input
		"<ul><li>secure</li><li>code</li></ul>": "secure code",
	}
	for in, want := range cases {
		require.Equal(t, want, StripHTML(in), "input %q", in)
	}
}

func TestTruncate_WordBoundary(t *testing.T) {
	s := "The quick brown fox jumps over the lazy dog"

	require.Equal(t, s, Truncate(s, len(s)))
	require.Equal(t, s, Truncate(s, 1000))

	got := Truncate(s, 10)
	require.Equal(t, "The quick"+Ellipsis, got)
	require.LessOrEqual(t, len([]rune(got)), 10+len([]rune(Ellipsis)))
	// Never ends mid-word: the rune before the marker is a full word's end.
	require.False(t, strings.Contains(got, "bro"))
}

func TestTruncate_RuneSafe(t *testing.T) {
	s := strings.Repeat("héllo wörld ", 100)
	got := Truncate(s, 50)
	require.True(t, strings.HasSuffix(got, Ellipsis))
	require.LessOrEqual(t, len([]rune(got)), 50+len([]rune(Ellipsis)))
}

func TestTruncate_BoundsRenderedLength(t *testing.T) {
	// Property from the formatter contract: rendered length never exceeds
	// max plus the marker.
	for _, max := range []int{80, 200, 600} {
		long := strings.Repeat("wordy ", 300)
		got := Truncate(long, max)
		require.LessOrEqual(t, len([]rune(got)), max+len([]rune(Ellipsis)))
	}
}
