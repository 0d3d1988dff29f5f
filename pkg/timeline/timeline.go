// Package timeline reconstructs the author/reviewer activity sequence of a
// pull request from its comment threads and last source push.
package timeline

import (
	"sort"

	"github.com/codeGROOVE-dev/triage/pkg/types"
)

// Activities derives the activity list for one pull request. Comments from
// bot identities are dropped entirely. A source push always counts as author
// activity. No ordering is imposed; callers sort as needed.
func Activities(pr *types.PullRequest, bots map[string]bool) []types.Activity {
	var activities []types.Activity
	for _, thread := range pr.Threads {
		for _, comment := range thread.Comments {
			if IsBot(comment.AuthorKey, bots) {
				continue
			}
			activities = append(activities, types.Activity{
				Timestamp: comment.CreatedAt,
				ByAuthor:  comment.AuthorKey == pr.Author.Key,
			})
		}
	}
	if !pr.LastPushAt.IsZero() {
		activities = append(activities, types.Activity{Timestamp: pr.LastPushAt, ByAuthor: true})
	}
	return activities
}

// Split partitions activities into author and reviewer lists, each sorted
// ascending by timestamp.
func Split(activities []types.Activity) (author, reviewer []types.Activity) {
	for _, a := range activities {
		if a.ByAuthor {
			author = append(author, a)
		} else {
			reviewer = append(reviewer, a)
		}
	}
	sortAscending(author)
	sortAscending(reviewer)
	return author, reviewer
}

// Sorted returns a copy of activities in ascending timestamp order. Equal
// timestamps place author activity before reviewer activity so that round
// counting is deterministic.
func Sorted(activities []types.Activity) []types.Activity {
	sorted := make([]types.Activity, len(activities))
	copy(sorted, activities)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Timestamp.Equal(sorted[j].Timestamp) {
			return sorted[i].Timestamp.Before(sorted[j].Timestamp)
		}
		return sorted[i].ByAuthor && !sorted[j].ByAuthor
	})
	return sorted
}

func sortAscending(activities []types.Activity) {
	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Timestamp.Before(activities[j].Timestamp)
	})
}
