// Package recurring implements detection of recurring charges (subscriptions
// and bills) from a user's transaction history.
package recurring

import "github.com/finchwatch/finch/internal/model"

// FrequencyWindow maps a range of mean day-gaps to a billing frequency. A
// series classifies only when its mean gap falls inside exactly one window.
type FrequencyWindow struct {
	Frequency model.Frequency
	MinDays   float64
	MaxDays   float64
}

// DomainConfig parameterizes the detection pipeline for one pattern domain.
// Subscriptions and bills run the same algorithm with different thresholds:
// bills are expected to be near-fixed-amount, so their cutoffs are tighter.
type DomainConfig struct {
	Kind model.DetectionKind

	// LookbackDays bounds the input window for one run.
	LookbackDays int

	// MinAmount is the noise floor; smaller debits are ignored.
	MinAmount float64

	// MinOccurrences is the smallest series worth scoring.
	MinOccurrences int

	// NameThreshold is the minimum name similarity for two transactions to
	// join the same series.
	NameThreshold float64

	// AmountVarianceThreshold is the maximum pairwise amount variance ratio
	// |a1-a2|/max(a1,a2) for two transactions to join the same series.
	AmountVarianceThreshold float64

	// FrequencyWindows are the tolerance windows for mean day-gap
	// classification, in ascending order.
	FrequencyWindows []FrequencyWindow

	// MaxVariancePercent hard-rejects a series whose amount spread exceeds
	// this percentage. Zero disables the cap.
	MaxVariancePercent float64

	// NormalizeScore reports the 0-100 score as a 0-1 fraction.
	NormalizeScore bool

	// HighCutoff and MediumCutoff tier the reported confidence into levels,
	// in the same units the score is reported in.
	HighCutoff   float64
	MediumCutoff float64

	// CategoryKeywords maps lowercase payee substrings to a suggested
	// category. First match wins in iteration-stable order via CategoryOrder.
	CategoryKeywords map[string]string
	CategoryOrder    []string
}

// DefaultSubscriptionConfig returns the tuned subscription domain.
func DefaultSubscriptionConfig() DomainConfig {
	return DomainConfig{
		Kind:                    model.DetectionSubscription,
		LookbackDays:            180,
		MinAmount:               1.0,
		MinOccurrences:          2,
		NameThreshold:           0.8,
		AmountVarianceThreshold: 0.2,
		FrequencyWindows: []FrequencyWindow{
			{model.FrequencyWeekly, 6, 8},
			{model.FrequencyBiweekly, 13, 15},
			{model.FrequencyMonthly, 28, 31},
			{model.FrequencyQuarterly, 89, 92},
			{model.FrequencyAnnual, 360, 370},
		},
		MaxVariancePercent: 0,
		NormalizeScore:     true,
		HighCutoff:         0.85,
		MediumCutoff:       0.6,
		CategoryKeywords:   subscriptionKeywords,
		CategoryOrder:      subscriptionKeywordOrder,
	}
}

// DefaultBillConfig returns the tuned bill domain. Bills use tighter
// similarity thresholds and a hard 5% variance cap because rent and
// utility-style charges are expected to be highly stable.
func DefaultBillConfig() DomainConfig {
	return DomainConfig{
		Kind:                    model.DetectionBill,
		LookbackDays:            365,
		MinAmount:               10.0,
		MinOccurrences:          3,
		NameThreshold:           0.85,
		AmountVarianceThreshold: 0.1,
		FrequencyWindows: []FrequencyWindow{
			{model.FrequencyWeekly, 6, 8},
			{model.FrequencyBiweekly, 13, 15},
			{model.FrequencyMonthly, 28, 32},
			{model.FrequencyQuarterly, 89, 93},
			{model.FrequencySemiannual, 180, 186},
			{model.FrequencyAnnual, 360, 370},
		},
		MaxVariancePercent: 5.0,
		NormalizeScore:     false,
		HighCutoff:         80,
		MediumCutoff:       60,
		CategoryKeywords:   billKeywords,
		CategoryOrder:      billKeywordOrder,
	}
}
