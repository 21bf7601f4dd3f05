package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jdoner02/aicyberjobs/internal/dedupe"
	"github.com/jdoner02/aicyberjobs/internal/model"
)

// LoadKnownIDs reads the persisted id set for a category. found is false
// when no state file exists yet, which is what the pipeline's bootstrap
// policy keys off.
func (s *Store) LoadKnownIDs(c model.Category) (ids dedupe.KnownIDSet, found bool, err error) {
	data, err := os.ReadFile(s.knownIDsPath(c))
	if os.IsNotExist(err) {
		return dedupe.NewKnownIDSet(), false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading known ids for %s: %w", c, err)
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, false, fmt.Errorf("parsing known ids for %s: %w", c, err)
	}
	return dedupe.NewKnownIDSet(list...), true, nil
}

// WriteKnownIDs persists the id set as a sorted JSON array. Callers must
// invoke this only after the listing writes succeeded, so a crash mid-run
// never marks jobs known without having recorded them anywhere.
func (s *Store) WriteKnownIDs(c model.Category, ids dedupe.KnownIDSet) error {
	data, err := json.MarshalIndent(ids.SortedIDs(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling known ids for %s: %w", c, err)
	}
	if err := writeFileAtomic(s.knownIDsPath(c), append(data, '\n')); err != nil {
		return fmt.Errorf("known ids %s: %w", c, err)
	}
	return nil
}
