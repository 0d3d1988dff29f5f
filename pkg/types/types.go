// Package types contains shared data structures used across the triage engine.
//
//nolint:revive // "types" is a standard Go package name for shared data structures
package types

import "time"

// Vote values follow the hosting service's fixed review scale.
// The scale is a platform design constant, not user-configurable.
const (
	VoteApproved                = 10
	VoteApprovedWithSuggestions = 5
	VoteNoVote                  = 0
	VoteWaitingForAuthor        = -5
	VoteRejected                = -10
)

// Identity is a participant on a pull request.
type Identity struct {
	DisplayName string
	Key         string // unique lowercase identity key, exact-match only
}

// Reviewer is an assigned reviewer together with their current vote.
type Reviewer struct {
	Identity
	Vote int
}

// Comment is a single comment inside a review thread.
type Comment struct {
	CreatedAt time.Time
	AuthorKey string
}

// Thread is an ordered list of comments on a pull request.
type Thread struct {
	Comments []Comment
}

// SizeInfo summarizes the line footprint of a pull request.
type SizeInfo struct {
	Label        string
	LinesAdded   int
	LinesDeleted int
	TotalChanges int // LinesAdded + LinesDeleted
}

// PullRequest is an immutable snapshot of one open pull request, normalized
// from the hosting API by the fetching layer. The engine never mutates a
// record; every analysis produces new derived values.
type PullRequest struct {
	CreatedAt    time.Time
	LastPushAt   time.Time // zero when no source push has been observed
	MergedAt     time.Time // zero while the PR is open
	Title        string
	Description  string
	URL          string
	SourceBranch string
	TargetBranch string
	Author       Identity
	Reviewers    []Reviewer
	Threads      []Thread
	ChangedFiles []string
	Size         *SizeInfo
	ID           int
	HasConflicts bool
}

// Activity is one point on a pull request's review timeline, rebuilt from
// threads and the last push on every analysis run.
type Activity struct {
	Timestamp time.Time
	ByAuthor  bool
}
