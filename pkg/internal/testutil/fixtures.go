// Package testutil provides deterministic time and record fixtures for
// engine tests.
package testutil

import (
	"time"

	"github.com/codeGROOVE-dev/triage/pkg/types"
)

// Base is the fixed "now" anchor used across tests.
var Base = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// At returns Base shifted by whole days and hours. Negative values move into
// the past.
func At(days, hours int) time.Time {
	return Base.AddDate(0, 0, days).Add(time.Duration(hours) * time.Hour)
}

// PRBuilder assembles pull request records for tests.
type PRBuilder struct {
	pr types.PullRequest
}

// NewPR starts a builder for a PR created at Base minus ten days.
func NewPR(id int, authorKey string) *PRBuilder {
	return &PRBuilder{pr: types.PullRequest{
		ID:        id,
		Title:     "change " + authorKey,
		Author:    types.Identity{DisplayName: authorKey, Key: authorKey},
		CreatedAt: At(-10, 0),
	}}
}

// CreatedAt sets the creation timestamp.
func (b *PRBuilder) CreatedAt(t time.Time) *PRBuilder {
	b.pr.CreatedAt = t
	return b
}

// Title sets the title.
func (b *PRBuilder) Title(title string) *PRBuilder {
	b.pr.Title = title
	return b
}

// Description sets the description text.
func (b *PRBuilder) Description(text string) *PRBuilder {
	b.pr.Description = text
	return b
}

// Reviewer adds an assigned reviewer with a vote.
func (b *PRBuilder) Reviewer(key string, vote int) *PRBuilder {
	b.pr.Reviewers = append(b.pr.Reviewers, types.Reviewer{
		Identity: types.Identity{DisplayName: key, Key: key},
		Vote:     vote,
	})
	return b
}

// Comment appends a comment to the first thread, creating it if needed.
func (b *PRBuilder) Comment(authorKey string, at time.Time) *PRBuilder {
	if len(b.pr.Threads) == 0 {
		b.pr.Threads = append(b.pr.Threads, types.Thread{})
	}
	b.pr.Threads[0].Comments = append(b.pr.Threads[0].Comments, types.Comment{
		AuthorKey: authorKey,
		CreatedAt: at,
	})
	return b
}

// Thread appends a whole comment thread.
func (b *PRBuilder) Thread(comments ...types.Comment) *PRBuilder {
	b.pr.Threads = append(b.pr.Threads, types.Thread{Comments: comments})
	return b
}

// Push records the last source push timestamp.
func (b *PRBuilder) Push(at time.Time) *PRBuilder {
	b.pr.LastPushAt = at
	return b
}

// Branches sets the source and target branch names.
func (b *PRBuilder) Branches(source, target string) *PRBuilder {
	b.pr.SourceBranch = source
	b.pr.TargetBranch = target
	return b
}

// Files sets the changed file paths.
func (b *PRBuilder) Files(paths ...string) *PRBuilder {
	b.pr.ChangedFiles = paths
	return b
}

// Conflicts marks the merge-conflict flag.
func (b *PRBuilder) Conflicts() *PRBuilder {
	b.pr.HasConflicts = true
	return b
}

// Merged records the merge timestamp.
func (b *PRBuilder) Merged(at time.Time) *PRBuilder {
	b.pr.MergedAt = at
	return b
}

// Build returns the assembled record.
func (b *PRBuilder) Build() types.PullRequest {
	return b.pr
}
