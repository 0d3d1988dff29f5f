package staleness

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/codeGROOVE-dev/triage/pkg/internal/testutil"
)

func TestBadgeBoundaries(t *testing.T) {
	now := testutil.Base
	thresholds := DefaultThresholds()

	tests := []struct {
		want    string
		daysAgo int
	}{
		{"", 0},
		{"", 6},
		{"Aging", 7},
		{"Aging", 13},
		{"Stale", 14},
		{"Stale", 29},
		{"Abandoned", 30},
		{"Abandoned", 400},
	}
	for _, tt := range tests {
		got := Badge(now.AddDate(0, 0, -tt.daysAgo), thresholds, now)
		assert.Equal(t, tt.want, got, "daysAgo=%d", tt.daysAgo)
	}
}

func TestBadgeFloorsPartialDays(t *testing.T) {
	now := testutil.Base
	// 6 days and 23 hours is still below the 7-day threshold.
	reference := now.Add(-(6*24 + 23) * time.Hour)
	assert.Empty(t, Badge(reference, DefaultThresholds(), now))
}

func TestBadgeEmptyThresholds(t *testing.T) {
	assert.Empty(t, Badge(testutil.At(-90, 0), nil, testutil.Base))
}

func TestBadgeFutureReference(t *testing.T) {
	assert.Empty(t, Badge(testutil.At(2, 0), DefaultThresholds(), testutil.Base))
}
