// Package triage classifies pull requests into approved, needing-review, and
// waiting-on-author categories with a recommended action per PR.
package triage

import (
	"log/slog"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/codeGROOVE-dev/triage/pkg/timeline"
	"github.com/codeGROOVE-dev/triage/pkg/types"
)

// LabelRule attaches a label when any changed file matches one of its globs.
type LabelRule struct {
	Label string
	Globs []string
}

// Options configures a classification run. All identity sets hold lowercase
// exact-match keys. An empty TeamMembers set treats every author as a team
// member.
type Options struct {
	TeamMembers  map[string]bool
	IgnoredUsers map[string]bool
	BotUsers     map[string]bool
	Repository   string // tag attached to every entry in multi-repo runs
	LabelRules   []LabelRule
}

// Classify produces the triage view for one snapshot of pull requests.
func Classify(prs []types.PullRequest, opts Options) Result {
	var result Result
	for i := range prs {
		pr := &prs[i]
		if opts.IgnoredUsers[pr.Author.Key] {
			slog.Debug("Skipping PR from ignored user", "pr", pr.ID, "author", pr.Author.Key)
			continue
		}
		classifyOne(pr, opts, &result)
	}
	sortResult(&result)
	return result
}

// Merge concatenates the per-category lists of several results and re-applies
// the category sort orders. Merging is associative: merging per-repo results
// matches a single Classify call over the concatenated PR set.
func Merge(results ...Result) Result {
	var merged Result
	for _, r := range results {
		merged.Approved = append(merged.Approved, r.Approved...)
		merged.NeedingReview = append(merged.NeedingReview, r.NeedingReview...)
		merged.WaitingOnAuthor = append(merged.WaitingOnAuthor, r.WaitingOnAuthor...)
	}
	sortResult(&merged)
	return merged
}

func classifyOne(pr *types.PullRequest, opts Options, result *Result) {
	summary := summarize(pr, opts)

	if hasApprovingVote(pr, opts.BotUsers) {
		summary.Action = action(pr, opts, ActionApprove)
		result.Approved = append(result.Approved, ApprovedPR{PRSummary: summary, CreatedAt: pr.CreatedAt})
		return
	}

	author, reviewer := timeline.Split(timeline.Activities(pr, opts.BotUsers))

	if !needsReview(author, reviewer) {
		// Unreachable without reviewer activity: needsReview is false only
		// when a reviewer event is the most recent one.
		summary.Action = action(pr, opts, ActionPending)
		result.WaitingOnAuthor = append(result.WaitingOnAuthor, AuthorPendingPR{
			PRSummary:            summary,
			LastReviewerActivity: reviewer[len(reviewer)-1].Timestamp,
		})
		return
	}

	summary.Action = action(pr, opts, ActionReview)
	result.NeedingReview = append(result.NeedingReview, ReviewPendingPR{
		PRSummary:    summary,
		WaitingSince: waitingSince(pr, author, reviewer),
	})
}

// needsReview reports whether the ball is in the reviewers' court: the
// latest author activity is strictly newer than any reviewer activity, no
// reviewer has acted yet, or the PR has no activity at all.
func needsReview(author, reviewer []types.Activity) bool {
	if len(reviewer) == 0 {
		return true
	}
	if len(author) == 0 {
		return false
	}
	return author[len(author)-1].Timestamp.After(reviewer[len(reviewer)-1].Timestamp)
}

// waitingSince is how long the PR has been waiting on reviewers: the first
// author activity strictly after the last reviewer activity, or the creation
// date when no reviewer ever acted.
func waitingSince(pr *types.PullRequest, author, reviewer []types.Activity) time.Time {
	if len(reviewer) == 0 {
		return pr.CreatedAt
	}
	lastReviewer := reviewer[len(reviewer)-1].Timestamp
	for _, a := range author {
		if a.Timestamp.After(lastReviewer) {
			return a.Timestamp
		}
	}
	return pr.CreatedAt
}

func hasApprovingVote(pr *types.PullRequest, bots map[string]bool) bool {
	for _, r := range pr.Reviewers {
		if timeline.IsBot(r.Key, bots) {
			continue
		}
		if r.Vote >= types.VoteApprovedWithSuggestions {
			return true
		}
	}
	return false
}

func action(pr *types.PullRequest, opts Options, categorical Action) Action {
	if timeline.IsBot(pr.Author.Key, opts.BotUsers) {
		return ActionApprove
	}
	return categorical
}

func summarize(pr *types.PullRequest, opts Options) PRSummary {
	summary := PRSummary{
		ID:           pr.ID,
		Title:        pr.Title,
		Author:       pr.Author.DisplayName,
		URL:          pr.URL,
		Repository:   opts.Repository,
		HasConflicts: pr.HasConflicts,
		IsTeamMember: len(opts.TeamMembers) == 0 || opts.TeamMembers[pr.Author.Key],
		Labels:       detectLabels(pr.ChangedFiles, opts.LabelRules),
	}
	if pr.Size != nil {
		size := *pr.Size
		summary.Size = &size
	}
	return summary
}

func detectLabels(files []string, rules []LabelRule) []string {
	var labels []string
	for _, rule := range rules {
		if rule.Label == "" {
			continue
		}
		for _, file := range files {
			if matchesAny(file, rule.Globs) {
				labels = append(labels, rule.Label)
				break
			}
		}
	}
	return labels
}

func matchesAny(path string, globs []string) bool {
	for _, glob := range globs {
		if ok, err := doublestar.Match(glob, path); err == nil && ok {
			return true
		}
	}
	return false
}

// sortResult applies the category sort orders: approved by creation date,
// needing-review by waiting-since (oldest-waiting first, the triage
// priority), waiting-on-author by last reviewer activity. Ties fall back to
// repository then PR id so output is byte-identical across runs.
func sortResult(result *Result) {
	sort.SliceStable(result.Approved, func(i, j int) bool {
		a, b := result.Approved[i], result.Approved[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return lessSummary(a.PRSummary, b.PRSummary)
	})
	sort.SliceStable(result.NeedingReview, func(i, j int) bool {
		a, b := result.NeedingReview[i], result.NeedingReview[j]
		if !a.WaitingSince.Equal(b.WaitingSince) {
			return a.WaitingSince.Before(b.WaitingSince)
		}
		return lessSummary(a.PRSummary, b.PRSummary)
	})
	sort.SliceStable(result.WaitingOnAuthor, func(i, j int) bool {
		a, b := result.WaitingOnAuthor[i], result.WaitingOnAuthor[j]
		if !a.LastReviewerActivity.Equal(b.LastReviewerActivity) {
			return a.LastReviewerActivity.Before(b.LastReviewerActivity)
		}
		return lessSummary(a.PRSummary, b.PRSummary)
	})
}

func lessSummary(a, b PRSummary) bool {
	if a.Repository != b.Repository {
		return a.Repository < b.Repository
	}
	return a.ID < b.ID
}
