package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeGROOVE-dev/triage/pkg/internal/testutil"
	"github.com/codeGROOVE-dev/triage/pkg/types"
)

func TestIsBot(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantBot bool
	}{
		{"bracket suffix", "dependabot[bot]", true},
		{"dash bot suffix", "renovate-bot", true},
		{"underscore bot suffix", "security_bot", true},
		{"bot dash prefix", "bot-user", true},
		{"bot underscore prefix", "bot_scanner", true},
		{"dot bot suffix", "scanner.bot", true},
		{"github actions", "github-actions", true},
		{"dependabot", "dependabot", true},
		{"renovate", "renovate", true},
		{"codecov", "codecov", true},
		{"mergify", "mergify[bot]", true},
		{"mixed case", "DependaBot", true},
		{"regular user", "johndoe", false},
		{"user with dash", "john-doe", false},
		{"user with numbers", "user123", false},
		{"bot inside a name", "abbott", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantBot, IsBot(tt.key, nil))
		})
	}
}

func TestIsBotConfiguredSet(t *testing.T) {
	bots := map[string]bool{"buildkite-ci": true}
	assert.True(t, IsBot("buildkite-ci", bots))
	assert.False(t, IsBot("buildkite-ci", nil))
}

func TestActivitiesTagsAuthorAndReviewer(t *testing.T) {
	pr := testutil.NewPR(1, "alice").
		Comment("alice", testutil.At(-5, 0)).
		Comment("bob", testutil.At(-4, 0)).
		Build()

	activities := Activities(&pr, nil)
	require.Len(t, activities, 2)
	assert.True(t, activities[0].ByAuthor)
	assert.False(t, activities[1].ByAuthor)
}

func TestActivitiesDropsBotComments(t *testing.T) {
	pr := testutil.NewPR(1, "alice").
		Comment("dependabot[bot]", testutil.At(-5, 0)).
		Comment("bob", testutil.At(-4, 0)).
		Build()

	activities := Activities(&pr, nil)
	require.Len(t, activities, 1)
	assert.False(t, activities[0].ByAuthor)
}

func TestActivitiesPushCountsAsAuthor(t *testing.T) {
	pr := testutil.NewPR(1, "alice").
		Push(testutil.At(-1, 0)).
		Build()

	activities := Activities(&pr, nil)
	require.Len(t, activities, 1)
	assert.True(t, activities[0].ByAuthor)
	assert.Equal(t, testutil.At(-1, 0), activities[0].Timestamp)
}

func TestSplitSortsAscending(t *testing.T) {
	activities := []types.Activity{
		{Timestamp: testutil.At(-1, 0), ByAuthor: true},
		{Timestamp: testutil.At(-3, 0), ByAuthor: false},
		{Timestamp: testutil.At(-5, 0), ByAuthor: true},
		{Timestamp: testutil.At(-2, 0), ByAuthor: false},
	}

	author, reviewer := Split(activities)
	require.Len(t, author, 2)
	require.Len(t, reviewer, 2)
	assert.Equal(t, testutil.At(-5, 0), author[0].Timestamp)
	assert.Equal(t, testutil.At(-1, 0), author[1].Timestamp)
	assert.Equal(t, testutil.At(-3, 0), reviewer[0].Timestamp)
	assert.Equal(t, testutil.At(-2, 0), reviewer[1].Timestamp)
}

func TestSortedTieBreaksAuthorFirst(t *testing.T) {
	at := testutil.At(-1, 0)
	activities := []types.Activity{
		{Timestamp: at, ByAuthor: false},
		{Timestamp: at, ByAuthor: true},
	}

	sorted := Sorted(activities)
	require.Len(t, sorted, 2)
	assert.True(t, sorted[0].ByAuthor)
	assert.False(t, sorted[1].ByAuthor)
	// Input slice untouched.
	assert.False(t, activities[0].ByAuthor)
}
