package recurring

import "github.com/finchwatch/finch/internal/model"

// Score point caps per factor. The factors are additive and sum to 100 at
// their maximum tiers.
const (
	countSaturation = 6 // occurrences beyond this add no points

	maxCountPoints     = 30
	maxAmountPoints    = 30
	maxTimingPoints    = 30
	maxFrequencyPoints = 10
)

// confidenceScore combines occurrence count, amount stability, timing
// stability, and frequency plausibility into a 0-100 score. Each factor is
// tiered and capped, so the score is monotonically non-increasing in both
// amount variance and day-gap spread.
func confidenceScore(count int, variancePct, gapStdDev float64, freq model.Frequency) float64 {
	return countPoints(count) + amountPoints(variancePct) + timingPoints(gapStdDev) + frequencyPoints(freq)
}

// countPoints rewards more observed occurrences, saturating at
// countSaturation.
func countPoints(count int) float64 {
	switch {
	case count >= countSaturation:
		return maxCountPoints
	case count == 5:
		return 25
	case count == 4:
		return 20
	case count == 3:
		return 15
	case count == 2:
		return 10
	default:
		return 0
	}
}

// amountPoints rewards low amount variance across descending bands.
func amountPoints(variancePct float64) float64 {
	switch {
	case variancePct <= 1:
		return maxAmountPoints
	case variancePct <= 3:
		return 25
	case variancePct <= 5:
		return 20
	case variancePct <= 10:
		return 12
	case variancePct <= 15:
		return 8
	case variancePct <= 25:
		return 4
	default:
		return 0
	}
}

// timingPoints rewards low day-gap spread across descending bands.
func timingPoints(gapStdDev float64) float64 {
	switch {
	case gapStdDev <= 1:
		return maxTimingPoints
	case gapStdDev <= 2:
		return 24
	case gapStdDev <= 3:
		return 18
	case gapStdDev <= 5:
		return 10
	default:
		return 0
	}
}

// frequencyPoints gives canonical billing intervals a small bonus over less
// common ones.
func frequencyPoints(freq model.Frequency) float64 {
	switch freq {
	case model.FrequencyMonthly, model.FrequencyAnnual:
		return maxFrequencyPoints
	case model.FrequencyWeekly, model.FrequencyBiweekly, model.FrequencyQuarterly, model.FrequencySemiannual:
		return 5
	default:
		return 0
	}
}

// confidenceLevel tiers a reported confidence value using the domain's
// cutoffs. The value and cutoffs share units: 0-1 for subscriptions, 0-100
// for bills.
func confidenceLevel(confidence float64, cfg DomainConfig) model.ConfidenceLevel {
	switch {
	case confidence >= cfg.HighCutoff:
		return model.ConfidenceHigh
	case confidence >= cfg.MediumCutoff:
		return model.ConfidenceMedium
	default:
		return model.ConfidenceLow
	}
}
