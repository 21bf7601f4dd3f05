// Package store owns every persisted artifact: the latest listing (JSON,
// CSV, site mirror), the dated history snapshots, and the known-id state
// files. No other package reads or writes these paths directly.
package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jdoner02/aicyberjobs/internal/model"
)

// Store is the file-backed state store. All writes go through a temp-file
// plus rename so a crash mid-write leaves the previous state intact.
type Store struct {
	dataDir     string
	siteDataDir string
	logger      *slog.Logger
}

// New creates a store rooted at dataDir with a site-data mirror directory.
func New(dataDir, siteDataDir string, logger *slog.Logger) *Store {
	return &Store{
		dataDir:     dataDir,
		siteDataDir: siteDataDir,
		logger:      logger,
	}
}

func (s *Store) stateDir() string   { return filepath.Join(s.dataDir, "state") }
func (s *Store) latestDir() string  { return filepath.Join(s.dataDir, "latest") }
func (s *Store) historyDir(c model.Category) string {
	return filepath.Join(s.dataDir, "history", string(c))
}

func (s *Store) knownIDsPath(c model.Category) string {
	return filepath.Join(s.stateDir(), fmt.Sprintf("known_%s_ids.json", c))
}

func (s *Store) latestJSONPath(c model.Category) string {
	return filepath.Join(s.latestDir(), fmt.Sprintf("%s_jobs.json", c))
}

func (s *Store) latestCSVPath(c model.Category) string {
	return filepath.Join(s.latestDir(), fmt.Sprintf("%s_jobs.csv", c))
}

func (s *Store) newJobsPath(c model.Category) string {
	return filepath.Join(s.latestDir(), fmt.Sprintf("new_%s_jobs.json", c))
}

func (s *Store) historyPath(c model.Category, date string) string {
	return filepath.Join(s.historyDir(c), date+".json")
}

func (s *Store) sitePath(c model.Category) string {
	return filepath.Join(s.siteDataDir, fmt.Sprintf("%s_jobs.json", c))
}

// EnsureDirs creates the full on-disk layout.
func (s *Store) EnsureDirs() error {
	dirs := []string{s.stateDir(), s.latestDir(), s.siteDataDir}
	for _, c := range model.Categories() {
		dirs = append(dirs, s.historyDir(c))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return nil
}

// writeFileAtomic writes data to path via a temp file in the same directory
// and an atomic rename.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming %s to %s: %w", tmpName, path, err)
	}
	return nil
}
