package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/jdoner02/aicyberjobs/internal/model"
)

// CheckLayout verifies the on-disk layout: the expected directories exist and
// every persisted artifact that is present parses against its schema. All
// problems are reported together rather than failing on the first.
func (s *Store) CheckLayout() error {
	var problems []error

	dirs := []string{s.stateDir(), s.latestDir(), s.siteDataDir}
	for _, c := range model.Categories() {
		dirs = append(dirs, s.historyDir(c))
	}
	for _, dir := range dirs {
		info, err := os.Stat(dir)
		if err != nil {
			problems = append(problems, fmt.Errorf("missing directory %s", dir))
			continue
		}
		if !info.IsDir() {
			problems = append(problems, fmt.Errorf("%s is not a directory", dir))
		}
	}

	for _, c := range model.Categories() {
		for _, path := range []string{s.latestJSONPath(c), s.newJobsPath(c), s.sitePath(c)} {
			if err := checkJSONFile(path, &[]model.Job{}); err != nil {
				problems = append(problems, err)
			}
		}
		if err := checkJSONFile(s.knownIDsPath(c), &[]string{}); err != nil {
			problems = append(problems, err)
		}
	}

	return errors.Join(problems...)
}

// checkJSONFile parses path into target if the file exists; absence is fine.
func checkJSONFile(path string, target any) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("%s does not match the expected schema: %w", path, err)
	}
	return nil
}
