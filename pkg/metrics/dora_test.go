package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/codeGROOVE-dev/triage/pkg/internal/testutil"
	"github.com/codeGROOVE-dev/triage/pkg/types"
)

func build(daysAgo, hoursAgo int, ok bool) BuildRecord {
	return BuildRecord{FinishedAt: testutil.At(-daysAgo, -hoursAgo), Succeeded: ok}
}

func TestLeadTimeMedianAndRating(t *testing.T) {
	prs := []types.PullRequest{
		testutil.NewPR(1, "a").CreatedAt(testutil.At(-10, 0)).Merged(testutil.At(-8, 0)).Build(),  // 2 days
		testutil.NewPR(2, "b").CreatedAt(testutil.At(-20, 0)).Merged(testutil.At(-14, 0)).Build(), // 6 days
		testutil.NewPR(3, "c").CreatedAt(testutil.At(-9, 0)).Merged(testutil.At(-5, 0)).Build(),   // 4 days
		testutil.NewPR(4, "d").CreatedAt(testutil.At(-9, 0)).Build(),                              // open, excluded
	}

	metrics := Dora(prs, nil, 30, testutil.Base)
	assert.InDelta(t, 4.0, metrics.LeadTimeDays.Value, 0.001)
	assert.Equal(t, RatingHigh, metrics.LeadTimeDays.Rating)
}

func TestLeadTimeExcludesMergesOutsideWindow(t *testing.T) {
	prs := []types.PullRequest{
		testutil.NewPR(1, "a").CreatedAt(testutil.At(-60, 0)).Merged(testutil.At(-45, 0)).Build(),
	}

	metrics := Dora(prs, nil, 30, testutil.Base)
	assert.Equal(t, 0.0, metrics.LeadTimeDays.Value)
	assert.Equal(t, RatingLow, metrics.LeadTimeDays.Rating)
}

func TestDeployFrequencyPerWeek(t *testing.T) {
	builds := []BuildRecord{
		build(1, 0, true),
		build(3, 0, true),
		build(5, 0, false),
		build(6, 0, true),
	}

	metrics := Dora(nil, builds, 21, testutil.Base)
	// 3 successes over 3 weeks.
	assert.InDelta(t, 1.0, metrics.DeploysPerWeek.Value, 0.001)
	assert.Equal(t, RatingHigh, metrics.DeploysPerWeek.Rating)
}

func TestChangeFailureRate(t *testing.T) {
	builds := []BuildRecord{
		build(1, 0, true),
		build(2, 0, false),
		build(3, 0, true),
		build(4, 0, true),
	}

	metrics := Dora(nil, builds, 30, testutil.Base)
	assert.InDelta(t, 25.0, metrics.ChangeFailureRate.Value, 0.001)
	assert.Equal(t, RatingMedium, metrics.ChangeFailureRate.Rating)
}

func TestChangeFailureRateNoBuilds(t *testing.T) {
	metrics := Dora(nil, nil, 30, testutil.Base)
	assert.Equal(t, 0.0, metrics.ChangeFailureRate.Value)
	assert.Equal(t, RatingElite, metrics.ChangeFailureRate.Rating)
}

func TestTimeToRestoreStreakResets(t *testing.T) {
	builds := []BuildRecord{
		{FinishedAt: testutil.At(-10, 0), Succeeded: true},
		{FinishedAt: testutil.At(-9, 0), Succeeded: false}, // streak opens
		{FinishedAt: testutil.At(-9, 2), Succeeded: false},
		{FinishedAt: testutil.At(-9, 6), Succeeded: true}, // restored after 6h
		{FinishedAt: testutil.At(-5, 0), Succeeded: false},
		{FinishedAt: testutil.At(-5, 2), Succeeded: true}, // restored after 2h
	}

	metrics := Dora(nil, builds, 30, testutil.Base)
	// Samples are 6h and 2h; median 4h.
	assert.InDelta(t, 4.0, metrics.TimeToRestoreHours.Value, 0.001)
	assert.Equal(t, RatingHigh, metrics.TimeToRestoreHours.Rating)
}

func TestTimeToRestoreNoFailuresIsElite(t *testing.T) {
	builds := []BuildRecord{build(2, 0, true)}

	metrics := Dora(nil, builds, 30, testutil.Base)
	assert.Equal(t, 0.0, metrics.TimeToRestoreHours.Value)
	assert.Equal(t, RatingElite, metrics.TimeToRestoreHours.Rating)
}

func TestTimeToRestoreUnrecoveredFailureStaysLow(t *testing.T) {
	builds := []BuildRecord{build(2, 0, false)}

	metrics := Dora(nil, builds, 30, testutil.Base)
	assert.Equal(t, 0.0, metrics.TimeToRestoreHours.Value)
	assert.Equal(t, RatingLow, metrics.TimeToRestoreHours.Rating)
}

func TestRatingBoundaries(t *testing.T) {
	mergedAfter := func(days int) types.PullRequest {
		return testutil.NewPR(1, "a").
			CreatedAt(testutil.At(-days-1, 0)).
			Merged(testutil.At(-1, 0)).
			Build()
	}

	tests := []struct {
		want Rating
		days int
	}{
		{RatingElite, 1},
		{RatingHigh, 7},
		{RatingMedium, 30},
		{RatingLow, 31},
	}
	for _, tt := range tests {
		metrics := Dora([]types.PullRequest{mergedAfter(tt.days)}, nil, 30, testutil.Base)
		assert.Equal(t, tt.want, metrics.LeadTimeDays.Rating, "days=%d", tt.days)
	}
}

func TestTrendDirections(t *testing.T) {
	previous := DoraMetrics{
		LeadTimeDays:       Measure{Value: 10},
		DeploysPerWeek:     Measure{Value: 2},
		ChangeFailureRate:  Measure{Value: 10},
		TimeToRestoreHours: Measure{Value: 8},
	}
	current := DoraMetrics{
		LeadTimeDays:       Measure{Value: 5},    // lower is better
		DeploysPerWeek:     Measure{Value: 1},    // higher is better
		ChangeFailureRate:  Measure{Value: 10.2}, // within the 5% band
		TimeToRestoreHours: Measure{Value: 16},
	}

	trend := TrendBetween(previous, current)
	assert.Equal(t, TrendImproving, trend.LeadTime)
	assert.Equal(t, TrendDegrading, trend.DeployFrequency)
	assert.Equal(t, TrendStable, trend.ChangeFailureRate)
	assert.Equal(t, TrendDegrading, trend.TimeToRestore)
}

func TestTrendStableWhenUnchanged(t *testing.T) {
	snapshot := DoraMetrics{
		LeadTimeDays:       Measure{Value: 3},
		DeploysPerWeek:     Measure{Value: 4},
		ChangeFailureRate:  Measure{Value: 0},
		TimeToRestoreHours: Measure{Value: 0},
	}

	trend := TrendBetween(snapshot, snapshot)
	assert.Equal(t, DoraTrend{
		LeadTime:          TrendStable,
		DeployFrequency:   TrendStable,
		ChangeFailureRate: TrendStable,
		TimeToRestore:     TrendStable,
	}, trend)
}

func TestWindowClampedToOneDay(t *testing.T) {
	metrics := Dora(nil, nil, 0, time.Now())
	assert.Equal(t, 1, metrics.WindowDays)
}
