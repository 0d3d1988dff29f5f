// Package metrics computes per-PR review-cycle metrics and DORA
// delivery-performance indicators over a pull request snapshot.
package metrics

import (
	"sort"
	"time"

	"github.com/codeGROOVE-dev/triage/pkg/timeline"
	"github.com/codeGROOVE-dev/triage/pkg/types"
)

// PRCycle holds the review-cycle metrics for one pull request.
type PRCycle struct {
	TimeToFirstReviewDays *float64 // nil when no reviewer ever acted
	Author                string
	AgeDays               float64
	ReviewRounds          int
	ID                    int
}

// Summary aggregates cycle metrics over a group of pull requests.
type Summary struct {
	MeanTimeToFirstReviewDays *float64 // nil when no PR in the group was reviewed
	MedianAgeDays             float64
	MeanReviewRounds          float64
	UnreviewedCount           int
	PRCount                   int
}

// AuthorSummary is the same aggregation grouped by author display name.
type AuthorSummary struct {
	Author string
	Summary
}

// Report is the full cycle-metrics view of one snapshot.
type Report struct {
	PerPR    []PRCycle
	ByAuthor []AuthorSummary
	Overall  Summary
}

// Compute derives cycle metrics for every pull request. Per-author rollups
// are sorted by author name; per-PR entries keep snapshot order.
func Compute(prs []types.PullRequest, bots map[string]bool, now time.Time) Report {
	perPR := make([]PRCycle, 0, len(prs))
	byAuthor := make(map[string][]PRCycle)
	for i := range prs {
		pr := &prs[i]
		cycle := cycleOf(pr, bots, now)
		perPR = append(perPR, cycle)
		byAuthor[cycle.Author] = append(byAuthor[cycle.Author], cycle)
	}

	authors := make([]string, 0, len(byAuthor))
	for author := range byAuthor {
		authors = append(authors, author)
	}
	sort.Strings(authors)
	rollups := make([]AuthorSummary, 0, len(authors))
	for _, author := range authors {
		rollups = append(rollups, AuthorSummary{Author: author, Summary: summarize(byAuthor[author])})
	}

	return Report{PerPR: perPR, Overall: summarize(perPR), ByAuthor: rollups}
}

func cycleOf(pr *types.PullRequest, bots map[string]bool, now time.Time) PRCycle {
	activities := timeline.Sorted(timeline.Activities(pr, bots))
	cycle := PRCycle{
		ID:      pr.ID,
		Author:  pr.Author.DisplayName,
		AgeDays: now.Sub(pr.CreatedAt).Hours() / 24,
	}
	for _, a := range activities {
		if !a.ByAuthor {
			days := now.Sub(a.Timestamp).Hours() / 24
			cycle.TimeToFirstReviewDays = &days
			break
		}
	}
	cycle.ReviewRounds = reviewRounds(activities)
	return cycle
}

// reviewRounds counts transitions from an author-activity run to a reviewer
// activity across the chronological list. Consecutive same-side activities
// form a single run, so two reviewers commenting back to back count as one
// round.
func reviewRounds(sorted []types.Activity) int {
	rounds := 0
	lastWasAuthor := false
	for _, a := range sorted {
		if !a.ByAuthor && lastWasAuthor {
			rounds++
		}
		lastWasAuthor = a.ByAuthor
	}
	return rounds
}

func summarize(cycles []PRCycle) Summary {
	summary := Summary{PRCount: len(cycles)}
	if len(cycles) == 0 {
		return summary
	}
	ages := make([]float64, 0, len(cycles))
	var firstReviews []float64
	totalRounds := 0
	for _, c := range cycles {
		ages = append(ages, c.AgeDays)
		totalRounds += c.ReviewRounds
		if c.TimeToFirstReviewDays != nil {
			firstReviews = append(firstReviews, *c.TimeToFirstReviewDays)
		} else {
			summary.UnreviewedCount++
		}
	}
	summary.MedianAgeDays = median(ages)
	summary.MeanReviewRounds = float64(totalRounds) / float64(len(cycles))
	if len(firstReviews) > 0 {
		meanFirst := mean(firstReviews)
		summary.MeanTimeToFirstReviewDays = &meanFirst
	}
	return summary
}

// median is the standard even/odd median over a copy of the values.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
