package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/jdoner02/aicyberjobs/internal/model"
)

var csvHeader = []string{"job_id", "title", "organization", "locations", "url", "posted_at"}

// WriteLatest replaces the current full listing for a category: the JSON and
// CSV artifacts plus the site-data mirror. Output is sorted posted_at
// descending with job_id ascending as tie-break, so identical input always
// produces byte-identical files — the change-detection diff gate in the
// surrounding automation depends on that.
func (s *Store) WriteLatest(c model.Category, jobs []model.Job) error {
	sorted := sortJobs(jobs)

	data, err := marshalJobs(sorted)
	if err != nil {
		return fmt.Errorf("latest %s: %w", c, err)
	}
	if err := writeFileAtomic(s.latestJSONPath(c), data); err != nil {
		return fmt.Errorf("latest %s: %w", c, err)
	}
	if err := s.writeCSV(c, sorted); err != nil {
		return fmt.Errorf("latest %s: %w", c, err)
	}
	if err := writeFileAtomic(s.sitePath(c), data); err != nil {
		return fmt.Errorf("latest %s site mirror: %w", c, err)
	}

	s.logger.Debug("latest written", "category", c, "jobs", len(sorted))
	return nil
}

// WriteHistory writes the dated snapshot for runDate. A rerun on the same
// calendar day overwrites that day's snapshot; older snapshots are never
// touched.
func (s *Store) WriteHistory(c model.Category, jobs []model.Job, runDate time.Time) error {
	data, err := marshalJobs(sortJobs(jobs))
	if err != nil {
		return fmt.Errorf("history %s: %w", c, err)
	}
	path := s.historyPath(c, runDate.UTC().Format("2006-01-02"))
	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("history %s: %w", c, err)
	}
	return nil
}

// WriteNewJobs persists the new-jobs subset for the notify command to render
// later. Order is the deduper's stable partition order, not the listing sort.
func (s *Store) WriteNewJobs(c model.Category, jobs []model.Job) error {
	data, err := marshalJobs(jobs)
	if err != nil {
		return fmt.Errorf("new jobs %s: %w", c, err)
	}
	if err := writeFileAtomic(s.newJobsPath(c), data); err != nil {
		return fmt.Errorf("new jobs %s: %w", c, err)
	}
	return nil
}

// LoadLatest reads the current full listing. A missing file is an empty
// listing, not an error.
func (s *Store) LoadLatest(c model.Category) ([]model.Job, error) {
	return s.loadJobs(s.latestJSONPath(c))
}

// LoadNewJobs reads the persisted new-jobs subset from the last run.
func (s *Store) LoadNewJobs(c model.Category) ([]model.Job, error) {
	return s.loadJobs(s.newJobsPath(c))
}

func (s *Store) loadJobs(path string) ([]model.Job, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var jobs []model.Job
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return jobs, nil
}

// SyncSiteData re-mirrors the latest JSON into the site-data directory. When
// no listing exists yet the mirror gets an empty array so the front end has
// valid JSON to load.
func (s *Store) SyncSiteData(c model.Category) error {
	data, err := os.ReadFile(s.latestJSONPath(c))
	if os.IsNotExist(err) {
		data = []byte("[]")
	} else if err != nil {
		return fmt.Errorf("site data %s: %w", c, err)
	}
	if err := writeFileAtomic(s.sitePath(c), data); err != nil {
		return fmt.Errorf("site data %s: %w", c, err)
	}
	return nil
}

func (s *Store) writeCSV(c model.Category, jobs []model.Job) error {
	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, j := range jobs {
		row := []string{
			j.JobID,
			j.Title,
			j.Organization,
			strings.Join(j.Locations, ", "),
			j.URL,
			j.PostedAt.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return writeFileAtomic(s.latestCSVPath(c), []byte(b.String()))
}

// sortJobs returns a copy ordered by the listing's total order: posted_at
// descending, then job_id ascending.
func sortJobs(jobs []model.Job) []model.Job {
	sorted := make([]model.Job, len(jobs))
	copy(sorted, jobs)
	sort.SliceStable(sorted, func(i, k int) bool {
		if !sorted[i].PostedAt.Equal(sorted[k].PostedAt) {
			return sorted[i].PostedAt.After(sorted[k].PostedAt)
		}
		return sorted[i].JobID < sorted[k].JobID
	})
	return sorted
}

func marshalJobs(jobs []model.Job) ([]byte, error) {
	if jobs == nil {
		jobs = []model.Job{}
	}
	data, err := json.MarshalIndent(jobs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling jobs: %w", err)
	}
	return append(data, '\n'), nil
}
