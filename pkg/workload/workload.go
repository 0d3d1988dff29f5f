// Package workload summarizes per-reviewer review load and responsiveness.
package workload

import (
	"sort"
	"time"

	"github.com/codeGROOVE-dev/triage/pkg/timeline"
	"github.com/codeGROOVE-dev/triage/pkg/types"
)

// Load is the three-level balance indicator.
type Load string

// Load levels.
const (
	LoadLight    Load = "light"
	LoadModerate Load = "moderate"
	LoadHeavy    Load = "heavy"
)

// Band is one threshold pair; exceeding either axis escalates the indicator.
type Band struct {
	MaxPending         int
	MaxAvgResponseDays float64
}

// Bands holds the light and moderate bands. Anything beyond the moderate
// band rates heavy.
type Bands struct {
	Light    Band
	Moderate Band
}

// DefaultBands returns the stock load bands.
func DefaultBands() Bands {
	return Bands{
		Light:    Band{MaxPending: 2, MaxAvgResponseDays: 1},
		Moderate: Band{MaxPending: 5, MaxAvgResponseDays: 3},
	}
}

// Workload is the aggregate for one reviewer.
type Workload struct {
	AvgResponseDays *float64 // nil when the reviewer has no response samples
	Reviewer        types.Identity
	Load            Load
	Assigned        int
	Pending         int
	Completed       int
}

// Aggregate builds per-reviewer workloads across all non-bot-authored pull
// requests. needingReview marks the PR ids currently classified as needing
// review. The result is sorted by pending count descending, worst bottleneck
// first.
func Aggregate(prs []types.PullRequest, needingReview map[int]bool, bots map[string]bool, bands Bands) []Workload {
	perReviewer := make(map[string]*Workload)
	samples := make(map[string][]float64)

	for i := range prs {
		pr := &prs[i]
		if timeline.IsBot(pr.Author.Key, bots) {
			continue
		}
		for _, reviewer := range pr.Reviewers {
			if timeline.IsBot(reviewer.Key, bots) {
				continue
			}
			w := perReviewer[reviewer.Key]
			if w == nil {
				w = &Workload{Reviewer: reviewer.Identity}
				perReviewer[reviewer.Key] = w
			}
			w.Assigned++
			switch {
			case reviewer.Vote >= types.VoteApprovedWithSuggestions:
				w.Completed++
			case needingReview[pr.ID]:
				w.Pending++
			}
			if days, ok := responseDays(pr, reviewer.Key); ok {
				samples[reviewer.Key] = append(samples[reviewer.Key], days)
			}
		}
	}

	result := make([]Workload, 0, len(perReviewer))
	for key, w := range perReviewer {
		if times := samples[key]; len(times) > 0 {
			avg := mean(times)
			w.AvgResponseDays = &avg
		}
		w.Load = load(w.Pending, w.AvgResponseDays, bands)
		result = append(result, *w)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Pending != result[j].Pending {
			return result[i].Pending > result[j].Pending
		}
		return result[i].Reviewer.Key < result[j].Reviewer.Key
	})
	return result
}

// responseDays is the gap between PR creation and the reviewer's earliest
// comment. Comments timestamped before creation are data anomalies and are
// discarded rather than counted as negative samples.
func responseDays(pr *types.PullRequest, reviewerKey string) (float64, bool) {
	var earliest time.Time
	for _, thread := range pr.Threads {
		for _, comment := range thread.Comments {
			if comment.AuthorKey != reviewerKey {
				continue
			}
			if earliest.IsZero() || comment.CreatedAt.Before(earliest) {
				earliest = comment.CreatedAt
			}
		}
	}
	if earliest.IsZero() {
		return 0, false
	}
	days := earliest.Sub(pr.CreatedAt).Hours() / 24
	if days < 0 {
		return 0, false
	}
	return days, true
}

// load is monotone in both axes: exceeding either axis of a band escalates
// the indicator past it. A nil average only engages the pending axis.
func load(pending int, avgDays *float64, bands Bands) Load {
	avg := 0.0
	if avgDays != nil {
		avg = *avgDays
	}
	if pending > bands.Moderate.MaxPending || avg > bands.Moderate.MaxAvgResponseDays {
		return LoadHeavy
	}
	if pending > bands.Light.MaxPending || avg > bands.Light.MaxAvgResponseDays {
		return LoadModerate
	}
	return LoadLight
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
