package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jdoner02/aicyberjobs/internal/model"
	"github.com/jdoner02/aicyberjobs/internal/store"
	"github.com/jdoner02/aicyberjobs/internal/usajobs"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeSearcher serves canned results per category and can fail selectively.
type fakeSearcher struct {
	items map[model.Category][]usajobs.SearchResultItem
	errs  map[model.Category]error
	calls int
}

func (f *fakeSearcher) Search(ctx context.Context, q model.Query) ([]usajobs.SearchResultItem, error) {
	f.calls++
	if err := f.errs[q.Category]; err != nil {
		return nil, err
	}
	return f.items[q.Category], nil
}

func item(id string) usajobs.SearchResultItem {
	it := usajobs.SearchResultItem{MatchedObjectID: id}
	it.Descriptor.PositionTitle = "Title " + id
	it.Descriptor.OrganizationName = "Agency"
	it.Descriptor.ApplyURI = []string{"https://www.usajobs.gov/job/" + id}
	it.Descriptor.PublicationStartDate = "2026-08-25"
	it.Descriptor.UserArea.Details.JobSummary = "Summary for " + id
	return it
}

func newEnv(t *testing.T, fetcher *fakeSearcher) (*Runner, *store.Store, string) {
	t.Helper()
	base := t.TempDir()
	dataDir := filepath.Join(base, "data")
	st := store.New(dataDir, filepath.Join(base, "docs", "data"), discardLogger())
	require.NoError(t, st.EnsureDirs())

	opts := Options{Days: 2, Limit: 50, DescriptionMaxLen: 600}
	r := NewRunner(fetcher, st, opts, discardLogger())
	r.now = func() time.Time { return time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC) }
	return r, st, dataDir
}

func TestRun_BootstrapBaselinesWithoutNewJobs(t *testing.T) {
	fetcher := &fakeSearcher{items: map[model.Category][]usajobs.SearchResultItem{
		model.CategoryAI: {item("A"), item("B")},
	}}
	r, st, _ := newEnv(t, fetcher)

	res, err := r.Run(context.Background(), model.CategoryAI)
	require.NoError(t, err)
	require.True(t, res.Bootstrap)
	require.Equal(t, StateSkipped, res.State)
	require.Equal(t, 2, res.Jobs)
	require.Zero(t, res.New)

	ids, found, err := st.LoadKnownIDs(model.CategoryAI)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []string{"A", "B"}, ids.SortedIDs())

	latest, err := st.LoadLatest(model.CategoryAI)
	require.NoError(t, err)
	require.Len(t, latest, 2)
}

func TestRun_DetectsNewJobsOnSubsequentRuns(t *testing.T) {
	fetcher := &fakeSearcher{items: map[model.Category][]usajobs.SearchResultItem{
		model.CategoryAI: {item("A"), item("B")},
	}}
	r, st, dataDir := newEnv(t, fetcher)

	_, err := r.Run(context.Background(), model.CategoryAI)
	require.NoError(t, err)

	// Second run sees one extra posting.
	fetcher.items[model.CategoryAI] = []usajobs.SearchResultItem{item("A"), item("B"), item("C")}
	res, err := r.Run(context.Background(), model.CategoryAI)
	require.NoError(t, err)
	require.False(t, res.Bootstrap)
	require.Equal(t, StateNotified, res.State)
	require.Equal(t, 1, res.New)
	require.Equal(t, "C", res.NewJobs[0].JobID)

	newJobs, err := st.LoadNewJobs(model.CategoryAI)
	require.NoError(t, err)
	require.Len(t, newJobs, 1)
	require.Equal(t, "C", newJobs[0].JobID)

	// Third run with identical input: nothing new and identical bytes.
	latestPath := filepath.Join(dataDir, "latest", "ai_jobs.json")
	before, err := os.ReadFile(latestPath)
	require.NoError(t, err)

	res, err = r.Run(context.Background(), model.CategoryAI)
	require.NoError(t, err)
	require.Equal(t, StateSkipped, res.State)
	require.Zero(t, res.New)

	after, err := os.ReadFile(latestPath)
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	fetcher := &fakeSearcher{items: map[model.Category][]usajobs.SearchResultItem{
		model.CategoryAI: {item("A")},
	}}
	r, st, _ := newEnv(t, fetcher)
	r.opts.DryRun = true

	res, err := r.Run(context.Background(), model.CategoryAI)
	require.NoError(t, err)
	require.Equal(t, StateDryRun, res.State)

	_, found, err := st.LoadKnownIDs(model.CategoryAI)
	require.NoError(t, err)
	require.False(t, found)

	latest, err := st.LoadLatest(model.CategoryAI)
	require.NoError(t, err)
	require.Empty(t, latest)
}

func TestRun_CountsMalformedRecords(t *testing.T) {
	fetcher := &fakeSearcher{items: map[model.Category][]usajobs.SearchResultItem{
		model.CategoryAI: {item("A"), {}, item("A")},
	}}
	r, _, _ := newEnv(t, fetcher)

	res, err := r.Run(context.Background(), model.CategoryAI)
	require.NoError(t, err)
	require.Equal(t, 3, res.Fetched)
	require.Equal(t, 1, res.Malformed)
	require.Equal(t, 1, res.Jobs) // duplicate id collapsed
}

// failingStore passes through to the real store except for history writes,
// which fail for the configured category.
type failingStore struct {
	*store.Store
	failCategory model.Category
	historyErr   error
}

func (f *failingStore) WriteHistory(c model.Category, jobs []model.Job, runDate time.Time) error {
	if f.historyErr != nil && c == f.failCategory {
		return f.historyErr
	}
	return f.Store.WriteHistory(c, jobs, runDate)
}

func TestRun_PersistFailureLeavesKnownIDsUntouched(t *testing.T) {
	fetcher := &fakeSearcher{items: map[model.Category][]usajobs.SearchResultItem{
		model.CategoryAI: {item("A")},
	}}
	r, st, _ := newEnv(t, fetcher)
	failing := &failingStore{Store: st, failCategory: model.CategoryAI}
	r.store = failing

	_, err := r.Run(context.Background(), model.CategoryAI)
	require.NoError(t, err)

	// Disk fills up before the second run's history write.
	diskErr := errors.New("no space left on device")
	failing.historyErr = diskErr
	fetcher.items[model.CategoryAI] = []usajobs.SearchResultItem{item("A"), item("B")}

	_, err = r.Run(context.Background(), model.CategoryAI)
	require.ErrorIs(t, err, diskErr)

	// Known ids are written last, so the failed run must not have marked B
	// as seen.
	ids, found, err := st.LoadKnownIDs(model.CategoryAI)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []string{"A"}, ids.SortedIDs())

	// Once the store recovers, the replayed run still reports B as new.
	failing.historyErr = nil
	res, err := r.Run(context.Background(), model.CategoryAI)
	require.NoError(t, err)
	require.Equal(t, StateNotified, res.State)
	require.Equal(t, 1, res.New)
	require.Equal(t, "B", res.NewJobs[0].JobID)
}

func TestRunAll_PersistFailureIsolatedPerCategory(t *testing.T) {
	fetcher := &fakeSearcher{items: map[model.Category][]usajobs.SearchResultItem{
		model.CategoryAI:    {item("A")},
		model.CategoryCyber: {item("C")},
	}}
	r, st, _ := newEnv(t, fetcher)
	diskErr := errors.New("no space left on device")
	r.store = &failingStore{Store: st, failCategory: model.CategoryCyber, historyErr: diskErr}

	outcomes := r.RunAll(context.Background(), model.Categories())
	require.True(t, Failed(outcomes))

	byCategory := map[model.Category]Outcome{}
	for _, o := range outcomes {
		byCategory[o.Result.Category] = o
	}
	require.NoError(t, byCategory[model.CategoryAI].Err)
	require.ErrorIs(t, byCategory[model.CategoryCyber].Err, diskErr)

	// The healthy category completed its run, state included.
	ids, found, err := st.LoadKnownIDs(model.CategoryAI)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []string{"A"}, ids.SortedIDs())

	_, found, err = st.LoadKnownIDs(model.CategoryCyber)
	require.NoError(t, err)
	require.False(t, found)
}

func TestRunAll_IsolatesCategoryFailures(t *testing.T) {
	fetchErr := errors.New("usajobs unavailable")
	fetcher := &fakeSearcher{
		items: map[model.Category][]usajobs.SearchResultItem{
			model.CategoryAI: {item("A")},
		},
		errs: map[model.Category]error{model.CategoryCyber: fetchErr},
	}
	r, st, _ := newEnv(t, fetcher)

	outcomes := r.RunAll(context.Background(), model.Categories())
	require.Len(t, outcomes, 2)
	require.True(t, Failed(outcomes))

	byCategory := map[model.Category]Outcome{}
	for _, o := range outcomes {
		byCategory[o.Result.Category] = o
	}
	require.NoError(t, byCategory[model.CategoryAI].Err)
	require.ErrorIs(t, byCategory[model.CategoryCyber].Err, fetchErr)

	// The healthy category persisted; the failed one left no state behind.
	latest, err := st.LoadLatest(model.CategoryAI)
	require.NoError(t, err)
	require.Len(t, latest, 1)

	_, found, err := st.LoadKnownIDs(model.CategoryCyber)
	require.NoError(t, err)
	require.False(t, found)
}

func TestFailed(t *testing.T) {
	require.False(t, Failed(nil))
	require.False(t, Failed([]Outcome{{}}))
	require.True(t, Failed([]Outcome{{}, {Err: errors.New("boom")}}))
}
