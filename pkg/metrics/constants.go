package metrics

// DORA rating cutoffs. Each metric maps to elite/high/medium/low through
// fixed numeric boundaries; values are documented constants, not derived.
const (
	leadTimeEliteDays  = 1.0
	leadTimeHighDays   = 7.0
	leadTimeMediumDays = 30.0

	deployFreqElitePerWeek  = 7.0
	deployFreqHighPerWeek   = 1.0
	deployFreqMediumPerWeek = 0.25

	failureRateElitePercent  = 5.0
	failureRateHighPercent   = 15.0
	failureRateMediumPercent = 30.0

	restoreEliteHours  = 1.0
	restoreHighHours   = 24.0
	restoreMediumHours = 168.0

	// trendBand is the relative change below which a metric counts as stable.
	trendBand = 0.05

	hoursPerDay  = 24.0
	daysPerWeek  = 7.0
	percentScale = 100.0
)
