package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTaskView(t *testing.T) {
	v, err := ParseTaskView("")
	require.NoError(t, err)
	require.Equal(t, ViewMine, v)

	for _, s := range []string{"mine", "pending", "approved", "rejected"} {
		v, err := ParseTaskView(s)
		require.NoError(t, err)
		require.Equal(t, TaskView(s), v)
	}

	var verr *ValidationError
	_, err = ParseTaskView("archived")
	require.ErrorAs(t, err, &verr)
}

func TestOwnTasksNeverInReviewQueues(t *testing.T) {
	actor := uint(1)
	for _, status := range []TaskStatus{TaskPending, TaskApproved, TaskRejected} {
		require.True(t, InView(ViewMine, actor, actor, status))
		require.False(t, InView(ViewPending, actor, actor, status))
		require.False(t, InView(ViewApproved, actor, actor, status))
		require.False(t, InView(ViewRejected, actor, actor, status))
	}
}

func TestOthersPartitionIsExhaustiveAndDisjoint(t *testing.T) {
	actor := uint(1)
	other := uint(2)
	queues := []TaskView{ViewPending, ViewApproved, ViewRejected}

	for _, status := range []TaskStatus{TaskPending, TaskApproved, TaskRejected} {
		hits := 0
		for _, q := range queues {
			if InView(q, actor, other, status) {
				hits++
			}
		}
		require.Equal(t, 1, hits, "status %s must land in exactly one queue", status)
		require.False(t, InView(ViewMine, actor, other, status))
	}
}
