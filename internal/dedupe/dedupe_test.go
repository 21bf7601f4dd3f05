package dedupe

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jdoner02/aicyberjobs/internal/model"
)

func jobs(ids ...string) []model.Job {
	out := make([]model.Job, len(ids))
	for i, id := range ids {
		out[i] = model.Job{JobID: id}
	}
	return out
}

func TestKnownIDSet_Basics(t *testing.T) {
	set := NewKnownIDSet("b", "a", "b")
	require.Equal(t, 2, set.Len())
	require.True(t, set.Has("a"))
	require.False(t, set.Has("c"))

	set.Add("c")
	require.True(t, set.Has("c"))
	require.Equal(t, []string{"a", "b", "c"}, set.SortedIDs())
}

func TestPartition_SplitsNewFromSeen(t *testing.T) {
	known := NewKnownIDSet("2", "4")

	newJobs, seenJobs := Partition(jobs("1", "2", "3", "4"), known)
	require.Equal(t, jobs("1", "3"), newJobs)
	require.Equal(t, jobs("2", "4"), seenJobs)
}

func TestPartition_EmptyKnownSet(t *testing.T) {
	known := NewKnownIDSet()

	newJobs, seenJobs := Partition(jobs("1", "2"), known)
	require.Equal(t, jobs("1", "2"), newJobs)
	require.Empty(t, seenJobs)
}

func TestPartition_DoesNotMutateKnownSet(t *testing.T) {
	known := NewKnownIDSet("1")

	Partition(jobs("1", "2", "3"), known)
	require.Equal(t, 1, known.Len())
	require.False(t, known.Has("2"))
}

func TestPartition_PreservesInputOrder(t *testing.T) {
	known := NewKnownIDSet("m")

	newJobs, _ := Partition(jobs("z", "m", "a", "k"), known)
	require.Equal(t, jobs("z", "a", "k"), newJobs)
}
