package metrics

// TrendDirection classifies how a metric moved between two windows.
type TrendDirection string

// Trend directions.
const (
	TrendImproving TrendDirection = "improving"
	TrendStable    TrendDirection = "stable"
	TrendDegrading TrendDirection = "degrading"
)

// DoraTrend is the per-metric movement between two DORA windows.
type DoraTrend struct {
	LeadTime          TrendDirection
	DeployFrequency   TrendDirection
	ChangeFailureRate TrendDirection
	TimeToRestore     TrendDirection
}

// TrendBetween compares two DORA snapshots. Changes within the stable band
// of the previous value count as stable; for lead time, failure rate, and
// restore time lower is better, for deploy frequency higher is better.
func TrendBetween(previous, current DoraMetrics) DoraTrend {
	return DoraTrend{
		LeadTime:          direction(previous.LeadTimeDays.Value, current.LeadTimeDays.Value, false),
		DeployFrequency:   direction(previous.DeploysPerWeek.Value, current.DeploysPerWeek.Value, true),
		ChangeFailureRate: direction(previous.ChangeFailureRate.Value, current.ChangeFailureRate.Value, false),
		TimeToRestore:     direction(previous.TimeToRestoreHours.Value, current.TimeToRestoreHours.Value, false),
	}
}

func direction(previous, current float64, higherIsBetter bool) TrendDirection {
	band := previous * trendBand
	if band < 0 {
		band = -band
	}
	delta := current - previous
	if delta <= band && delta >= -band {
		return TrendStable
	}
	improved := delta < 0
	if higherIsBetter {
		improved = delta > 0
	}
	if improved {
		return TrendImproving
	}
	return TrendDegrading
}
