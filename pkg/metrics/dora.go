package metrics

import (
	"sort"
	"time"

	"github.com/codeGROOVE-dev/triage/pkg/types"
)

// Rating is a categorical delivery-performance band.
type Rating string

// Rating bands.
const (
	RatingElite  Rating = "elite"
	RatingHigh   Rating = "high"
	RatingMedium Rating = "medium"
	RatingLow    Rating = "low"
)

// Measure is one DORA value with its rating.
type Measure struct {
	Rating Rating
	Value  float64
}

// BuildRecord is the finish state of one CI build inside the window.
type BuildRecord struct {
	FinishedAt time.Time
	Succeeded  bool
}

// DoraMetrics holds the four delivery indicators over one time window.
type DoraMetrics struct {
	LeadTimeDays       Measure // median days from PR creation to merge
	DeploysPerWeek     Measure // successful builds per week
	ChangeFailureRate  Measure // failed-build percentage
	TimeToRestoreHours Measure // median hours from failure to next success
	WindowDays         int
}

// Dora computes the four indicators over merged PRs and builds whose
// finish/merge time falls inside the window ending at now.
func Dora(prs []types.PullRequest, builds []BuildRecord, windowDays int, now time.Time) DoraMetrics {
	if windowDays < 1 {
		windowDays = 1
	}
	windowStart := now.AddDate(0, 0, -windowDays)

	metrics := DoraMetrics{WindowDays: windowDays}
	metrics.LeadTimeDays = leadTime(prs, windowStart, now)

	inWindow := make([]BuildRecord, 0, len(builds))
	for _, b := range builds {
		if b.FinishedAt.After(windowStart) && !b.FinishedAt.After(now) {
			inWindow = append(inWindow, b)
		}
	}
	metrics.DeploysPerWeek = deployFrequency(inWindow, windowDays)
	metrics.ChangeFailureRate = changeFailureRate(inWindow)
	metrics.TimeToRestoreHours = timeToRestore(inWindow)
	return metrics
}

func leadTime(prs []types.PullRequest, windowStart, now time.Time) Measure {
	var samples []float64
	for i := range prs {
		pr := &prs[i]
		if pr.MergedAt.IsZero() || !pr.MergedAt.After(windowStart) || pr.MergedAt.After(now) {
			continue
		}
		samples = append(samples, pr.MergedAt.Sub(pr.CreatedAt).Hours()/hoursPerDay)
	}
	value := median(samples)
	rating := RatingLow
	switch {
	case len(samples) == 0:
		// No merges in the window: nothing shipped, lowest band.
	case value <= leadTimeEliteDays:
		rating = RatingElite
	case value <= leadTimeHighDays:
		rating = RatingHigh
	case value <= leadTimeMediumDays:
		rating = RatingMedium
	}
	return Measure{Value: value, Rating: rating}
}

func deployFrequency(builds []BuildRecord, windowDays int) Measure {
	successes := 0
	for _, b := range builds {
		if b.Succeeded {
			successes++
		}
	}
	value := float64(successes) / (float64(windowDays) / daysPerWeek)
	rating := RatingLow
	switch {
	case value >= deployFreqElitePerWeek:
		rating = RatingElite
	case value >= deployFreqHighPerWeek:
		rating = RatingHigh
	case value >= deployFreqMediumPerWeek:
		rating = RatingMedium
	}
	return Measure{Value: value, Rating: rating}
}

func changeFailureRate(builds []BuildRecord) Measure {
	if len(builds) == 0 {
		return Measure{Value: 0, Rating: RatingElite}
	}
	failures := 0
	for _, b := range builds {
		if !b.Succeeded {
			failures++
		}
	}
	value := float64(failures) / float64(len(builds)) * percentScale
	rating := RatingLow
	switch {
	case value <= failureRateElitePercent:
		rating = RatingElite
	case value <= failureRateHighPercent:
		rating = RatingHigh
	case value <= failureRateMediumPercent:
		rating = RatingMedium
	}
	return Measure{Value: value, Rating: rating}
}

// timeToRestore walks builds in finish order, opening a failure streak at the
// first failed build and closing it at the next success; each success resets
// the in-failure state. The value is the median restore time in hours.
func timeToRestore(builds []BuildRecord) Measure {
	sorted := make([]BuildRecord, len(builds))
	copy(sorted, builds)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].FinishedAt.Before(sorted[j].FinishedAt)
	})

	var samples []float64
	var failedAt time.Time
	inFailure := false
	sawFailure := false
	for _, b := range sorted {
		if !b.Succeeded {
			sawFailure = true
			if !inFailure {
				inFailure = true
				failedAt = b.FinishedAt
			}
			continue
		}
		if inFailure {
			samples = append(samples, b.FinishedAt.Sub(failedAt).Hours())
			inFailure = false
		}
	}

	value := median(samples)
	rating := RatingLow
	switch {
	case len(samples) == 0:
		if !sawFailure {
			// Nothing ever broke; restore time is vacuously elite.
			rating = RatingElite
		}
		// A failure streak that never recovered inside the window stays low.
	case value <= restoreEliteHours:
		rating = RatingElite
	case value <= restoreHighHours:
		rating = RatingHigh
	case value <= restoreMediumHours:
		rating = RatingMedium
	}
	return Measure{Value: value, Rating: rating}
}
