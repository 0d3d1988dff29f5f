package triage

import (
	"time"

	"github.com/codeGROOVE-dev/triage/pkg/types"
)

// Action is the recommended next step for a pull request.
type Action string

// Recommended actions per category. Bot-authored PRs always resolve to
// ActionApprove so no human is asked to review routine automation.
const (
	ActionApprove Action = "APPROVE"
	ActionReview  Action = "REVIEW"
	ActionPending Action = "PENDING"
)

// PRSummary carries the fields shared by all three result categories.
type PRSummary struct {
	Title        string
	Author       string
	URL          string
	Repository   string // set only in multi-repo runs
	Action       Action
	Labels       []string
	Size         *types.SizeInfo
	ID           int
	HasConflicts bool
	IsTeamMember bool
}

// ApprovedPR is a pull request with at least one approving vote.
type ApprovedPR struct {
	PRSummary
	CreatedAt time.Time
}

// ReviewPendingPR is a pull request where the ball is in the reviewers' court.
type ReviewPendingPR struct {
	PRSummary
	WaitingSince time.Time
}

// AuthorPendingPR is a pull request waiting on its author to respond.
type AuthorPendingPR struct {
	PRSummary
	LastReviewerActivity time.Time
}

// Result is the triage view over one snapshot of pull requests. Every input
// PR not excluded by the ignored-user filter appears in exactly one list.
type Result struct {
	Approved        []ApprovedPR
	NeedingReview   []ReviewPendingPR
	WaitingOnAuthor []AuthorPendingPR
}
