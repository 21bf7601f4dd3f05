// Package dedupe decides which jobs are new relative to the ids already seen
// in previous runs. Partitioning is pure so dry runs are idempotent; only the
// state store ever persists the id set.
package dedupe

import (
	"sort"

	"github.com/jdoner02/aicyberjobs/internal/model"
)

// KnownIDSet is the monotonically growing set of job ids already seen for a
// category. Ids are never evicted, even when a posting expires.
type KnownIDSet map[string]struct{}

// NewKnownIDSet builds a set from the given ids.
func NewKnownIDSet(ids ...string) KnownIDSet {
	s := make(KnownIDSet, len(ids))
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

func (s KnownIDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s KnownIDSet) Add(id string) {
	s[id] = struct{}{}
}

func (s KnownIDSet) Len() int { return len(s) }

// SortedIDs returns the ids in ascending order for deterministic persistence.
func (s KnownIDSet) SortedIDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Partition splits jobs into those whose id is not yet known and the rest.
// The split is stable: both slices preserve the input order. Neither jobs nor
// known is mutated.
func Partition(jobs []model.Job, known KnownIDSet) (newJobs, seenJobs []model.Job) {
	for _, j := range jobs {
		if known.Has(j.JobID) {
			seenJobs = append(seenJobs, j)
		} else {
			newJobs = append(newJobs, j)
		}
	}
	return newJobs, seenJobs
}
